package embednet

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ReadWord2VecBinary reads embeddings in the binary word2vec format. If
// normalize is true, every vector is scaled to unit length.
func ReadWord2VecBinary(r *bufio.Reader, normalize bool) (*Embeddings, error) {
	var nWords, vSize uint64
	if _, err := fmt.Fscan(r, &nWords, &vSize); err != nil {
		return nil, fmt.Errorf("reading word2vec header: %w", err)
	}

	emb := NewEmbeddings()
	raw := make([]float32, vSize)

	for w := uint64(0); w < nWords; w++ {
		word, err := r.ReadString(' ')
		if err != nil {
			return nil, fmt.Errorf("reading word %d: %w", w, err)
		}
		word = strings.TrimSpace(word)

		if err = binary.Read(r, binary.LittleEndian, raw); err != nil {
			return nil, fmt.Errorf("reading vector of %q: %w", word, err)
		}

		vec := make(Vector, vSize)
		for idx, val := range raw {
			vec[idx] = float64(val)
		}

		if normalize {
			if norm := floats.Norm(vec, 2); norm != 0 {
				floats.Scale(1/norm, vec)
			}
		}

		if err := emb.Put(word, vec); err != nil {
			return nil, err
		}
	}

	return emb, nil
}

// WriteText writes embeddings in the text format read by ReadEmbeddings.
// Coordinates are formatted with the shortest representation that
// round-trips at the given bit size (32 or 64).
func WriteText(w io.Writer, emb *Embeddings, order Order, bitSize int) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 1024)

	for _, word := range emb.Words(order) {
		buf = append(buf[:0], word...)
		for _, val := range emb.vectors[word] {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, val, 'f', -1, bitSize)
		}
		buf = append(buf, '\n')

		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("writing embeddings: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing embeddings: %w", err)
	}

	return nil
}
