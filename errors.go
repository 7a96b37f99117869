package ztrhuff

import (
	"errors"
	"fmt"
)

// Error kinds returned by this package.  Use errors.Is to test for them; most
// failures carry a *CorruptInputError that wraps one of these.
var (
	// ErrInvalidHeader indicates a code set that cannot be used: reserved
	// mode bits, an unknown preset, an empty or over-subscribed code, or a
	// malformed run-length sequence.
	ErrInvalidHeader = errors.New("invalid Huffman header")

	// ErrOutOfMemory indicates that a table or the output buffer would
	// grow past its configured limit.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrTruncatedInput indicates that the input ended before a required
	// field could be read.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrCorruptStream indicates a payload bit sequence that does not
	// match any code in the active table.
	ErrCorruptStream = errors.New("corrupt Huffman stream")

	// ErrReleased indicates use of a TableSet after Release.
	ErrReleased = errors.New("table set already released")
)

// CorruptInputError describes a failure at a known bit offset of the input.
type CorruptInputError struct {
	// Offset is the bit offset at which the problem was detected.
	Offset uint64

	// Kind is one of the Err* values of this package.
	Kind error

	// Problem is a human-readable description.
	Problem string
}

// Error fulfills the error interface.
func (err *CorruptInputError) Error() string {
	return fmt.Sprintf("%v at bit %d: %s", err.Kind, err.Offset, err.Problem)
}

// Unwrap returns Kind, so that errors.Is(err, ErrInvalidHeader) and friends
// work.
func (err *CorruptInputError) Unwrap() error {
	return err.Kind
}

var _ error = (*CorruptInputError)(nil)

func corruptf(kind error, offset uint64, format string, v ...interface{}) error {
	return &CorruptInputError{
		Offset:  offset,
		Kind:    kind,
		Problem: fmt.Sprintf(format, v...),
	}
}
