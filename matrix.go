package embednet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// rowsPerWorker is the number of matrix rows each worker computes before
// the block is written out.
const rowsPerWorker = 4

// MatrixOptions configures WriteDistanceMatrix.
type MatrixOptions struct {
	Options

	// Summary, if non-nil, receives every distance between two different
	// words.
	Summary *Summary
}

// WriteDistanceMatrix writes the cosine distance of every ordered pair of
// words to w, one distance per line. The first word of the pair varies
// slowest. A table with n words produces exactly n*n lines.
func WriteDistanceMatrix(ctx context.Context, w io.Writer, emb *Embeddings, opts MatrixOptions) error {
	space, err := newPairSpace(emb, opts.Order, opts.ZeroVectors)
	if err != nil {
		return err
	}

	n := space.len()
	workers := opts.workers()
	blockRows := min(workers*rowsPerWorker, max(n, 1))

	opts.Progress.Start(int64(n) * int64(n))

	rows := make([][]float64, blockRows)
	for idx := range rows {
		rows[idx] = make([]float64, n)
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)

	for start := 0; start < n; start += blockRows {
		end := min(start+blockRows, n)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				space.row(i, rows[i-start])
				opts.Progress.Add(int64(n))

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		for i := start; i < end; i++ {
			for j, dist := range rows[i-start] {
				buf = strconv.AppendFloat(buf[:0], dist, 'f', -1, 64)
				buf = append(buf, '\n')
				if _, err := bw.Write(buf); err != nil {
					return fmt.Errorf("writing distance matrix: %w", err)
				}

				if i != j {
					opts.Summary.Add(dist)
				}
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing distance matrix: %w", err)
	}

	opts.Progress.Finish()

	return nil
}
