package disjoint_set

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an element lies outside [0, N).
	ErrOutOfRange = errors.New("element out of range")

	// ErrInvalidSize is returned when a structure is built with N <= 0.
	ErrInvalidSize = errors.New("size must be a positive integer")

	// ErrCorruptState is returned when decoded state does not describe a valid partition.
	ErrCorruptState = errors.New("corrupt disjoint set state")
)

// OutOfRangeError reports the offending element and the universe size.
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("element %d out of range [0, %d)", e.Index, e.Size)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// validate checks p and q against a universe of the given size
func validate(size, p, q int) error {
	if p < 0 || p >= size {
		return &OutOfRangeError{Index: p, Size: size}
	}
	if q < 0 || q >= size {
		return &OutOfRangeError{Index: q, Size: size}
	}
	return nil
}

func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return nil
}
