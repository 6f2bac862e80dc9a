package embednet

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when two vectors differ in length.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrZeroMagnitude is returned when the cosine distance involves a
	// vector with a Euclidean norm of zero.
	ErrZeroMagnitude = errors.New("zero-magnitude vector")

	// ErrNonFinite is returned for NaN or infinite coordinates.
	ErrNonFinite = errors.New("non-finite coordinate")
)

// ParseError reports a coordinate that is not a valid real number.
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse coordinate %q: %v", e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DomainError reports a vector that cannot take part in distance
// computations. Line is zero when the vector did not come from a file.
type DomainError struct {
	Word string
	Line int
	Err  error
}

func (e *DomainError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: word %q: %v", e.Line, e.Word, e.Err)
	}
	return fmt.Sprintf("word %q: %v", e.Word, e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
