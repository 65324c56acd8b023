package embedding

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyVector       = errors.New("empty embedding vector")
	ErrZeroMagnitude     = errors.New("zero-magnitude vector")
	ErrDimensionMismatch = errors.New("vector dimensions differ")
)

// ProviderError reports a failed call to the embedding provider. Index is the
// position of the failing text in a batch, or -1 for single calls.
type ProviderError struct {
	Op    string
	Index int
	Err   error
}

func (e *ProviderError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("embedding provider: %s [%d]: %v", e.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("embedding provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// DegenerateInputError marks input that has no meaningful similarity, such as
// an all-zero vector or vectors of different length.
type DegenerateInputError struct {
	Reason error
}

func (e *DegenerateInputError) Error() string {
	return "degenerate input: " + e.Reason.Error()
}

func (e *DegenerateInputError) Unwrap() error { return e.Reason }
