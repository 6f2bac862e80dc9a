package embednet

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ZeroPolicy determines how distances to zero-magnitude vectors are
// handled.
type ZeroPolicy int

const (
	// ZeroFail rejects tables that contain a zero-magnitude vector.
	ZeroFail ZeroPolicy = iota

	// ZeroMaximal defines the distance of any pair that involves a
	// zero-magnitude vector as 1.
	ZeroMaximal
)

func ParseZeroPolicy(s string) (ZeroPolicy, error) {
	switch s {
	case "fail", "":
		return ZeroFail, nil
	case "max":
		return ZeroMaximal, nil
	default:
		return 0, fmt.Errorf("unknown zero-vector policy: %q (want fail or max)", s)
	}
}

func (p ZeroPolicy) String() string {
	if p == ZeroMaximal {
		return "max"
	}
	return "fail"
}

// CosineDistance computes 1 - cos(a, b). It returns ErrDimensionMismatch if
// the vectors differ in length and ErrZeroMagnitude if either vector has
// a norm of zero.
func CosineDistance(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	normA, normB := floats.Norm(a, 2), floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, ErrZeroMagnitude
	}

	return cosineDistance(a, b, normA, normB), nil
}

// cosineDistance assumes equal lengths and non-zero norms. Rounding can
// push the result just outside [0, 2], so it is clamped to that range.
func cosineDistance(a, b Vector, normA, normB float64) float64 {
	dist := 1 - floats.Dot(a, b)/(normA*normB)
	return math.Max(0, math.Min(2, dist))
}

// pairSpace is the indexed view of a table that the pairwise pipelines
// enumerate. Norms are computed once per word.
type pairSpace struct {
	words   []string
	vectors []Vector
	norms   []float64
}

func newPairSpace(emb *Embeddings, order Order, zeros ZeroPolicy) (*pairSpace, error) {
	words := emb.Words(order)

	space := &pairSpace{
		words:   words,
		vectors: make([]Vector, len(words)),
		norms:   make([]float64, len(words)),
	}

	for idx, word := range words {
		vec := emb.vectors[word]
		norm := floats.Norm(vec, 2)
		if norm == 0 && zeros == ZeroFail {
			return nil, &DomainError{Word: word, Err: ErrZeroMagnitude}
		}

		space.vectors[idx] = vec
		space.norms[idx] = norm
	}

	return space, nil
}

func (s *pairSpace) len() int {
	return len(s.words)
}

func (s *pairSpace) distance(i, j int) float64 {
	if s.norms[i] == 0 || s.norms[j] == 0 {
		return 1
	}

	if i == j {
		return 0
	}

	return cosineDistance(s.vectors[i], s.vectors[j], s.norms[i], s.norms[j])
}

// row stores the distances of word i to every word in dst.
func (s *pairSpace) row(i int, dst []float64) {
	for j := range s.vectors {
		dst[j] = s.distance(i, j)
	}
}
