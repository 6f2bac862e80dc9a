package embednet

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// maxLineSize bounds the length of a single line in a text embedding file.
const maxLineSize = 64 * 1024 * 1024

type Vector []float64

// Order determines how the words of a table are enumerated.
type Order int

const (
	// OrderSorted enumerates words in lexicographic byte order.
	OrderSorted Order = iota

	// OrderFile enumerates words in order of first appearance.
	OrderFile
)

func ParseOrder(s string) (Order, error) {
	switch s {
	case "sorted", "":
		return OrderSorted, nil
	case "file":
		return OrderFile, nil
	default:
		return 0, fmt.Errorf("unknown word order: %q (want sorted or file)", s)
	}
}

func (o Order) String() string {
	if o == OrderFile {
		return "file"
	}
	return "sorted"
}

// Embeddings is a table of word embeddings. All vectors in a table have
// the same dimensionality, which is fixed by the first vector that is
// added.
type Embeddings struct {
	words      []string
	vectors    map[string]Vector
	dims       int
	duplicates int
}

func NewEmbeddings() *Embeddings {
	return &Embeddings{
		vectors: make(map[string]Vector),
	}
}

// LoadEmbeddings reads a text embedding file.
func LoadEmbeddings(path string) (*Embeddings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading embeddings: %w", err)
	}
	defer f.Close()

	return ReadEmbeddings(f)
}

// ReadEmbeddings reads embeddings in the text format. Every non-blank line
// holds a word followed by its coordinates, separated by whitespace. When a
// word occurs more than once, the last vector wins.
func ReadEmbeddings(r io.Reader) (*Embeddings, error) {
	emb := NewEmbeddings()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		vec := make(Vector, len(fields)-1)
		for idx, token := range fields[1:] {
			val, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Token: token, Err: err}
			}
			vec[idx] = val
		}

		if err := emb.put(fields[0], vec); err != nil {
			return nil, &DomainError{Word: fields[0], Line: lineNo, Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading embeddings: %w", err)
	}

	return emb, nil
}

// Put adds the embedding of a word, replacing an earlier embedding of the
// same word.
func (e *Embeddings) Put(word string, vec Vector) error {
	if err := e.put(word, vec); err != nil {
		return &DomainError{Word: word, Err: err}
	}

	return nil
}

func (e *Embeddings) put(word string, vec Vector) error {
	if len(e.vectors) == 0 {
		e.dims = len(vec)
	} else if len(vec) != e.dims {
		return fmt.Errorf("%w: vector has %d coordinates, table has %d", ErrDimensionMismatch, len(vec), e.dims)
	}

	for _, val := range vec {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ErrNonFinite
		}
	}

	if _, ok := e.vectors[word]; ok {
		e.duplicates++
	} else {
		e.words = append(e.words, word)
	}

	e.vectors[word] = vec

	return nil
}

// Len returns the number of words in the table.
func (e *Embeddings) Len() int {
	return len(e.vectors)
}

// Dims returns the dimensionality of the vectors in the table.
func (e *Embeddings) Dims() int {
	return e.dims
}

// Duplicates returns the number of vectors that replaced an earlier
// vector for the same word.
func (e *Embeddings) Duplicates() int {
	return e.duplicates
}

// Vector returns the embedding of a word. ok is false for unknown words.
func (e *Embeddings) Vector(word string) (vec Vector, ok bool) {
	vec, ok = e.vectors[word]
	return
}

// Words returns the words of the table in the given order. The returned
// slice is a copy.
func (e *Embeddings) Words(order Order) []string {
	words := make([]string, len(e.words))
	copy(words, e.words)

	if order == OrderSorted {
		sort.Strings(words)
	}

	return words
}
