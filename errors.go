package intdict

import (
	"errors"
	"fmt"

	"github.com/hupe1980/intdict/capacity"
)

var (
	// ErrAllocation is returned by New and FromSlices when the initial
	// buffers cannot be reserved. No dictionary is returned alongside it.
	ErrAllocation = errors.New("allocation failed")

	// ErrMemory is matched by every error caused by a resize that could not
	// be applied. The mutation that triggered the resize is not rolled back.
	ErrMemory = errors.New("memory error")

	// ErrNotFound is returned by Delete when the key is absent.
	ErrNotFound = errors.New("key not found")

	// ErrClosed is returned by mutating operations after Close.
	ErrClosed = errors.New("dictionary closed")

	// ErrLengthMismatch is returned by FromSlices when keys and values differ in length.
	ErrLengthMismatch = errors.New("keys and values differ in length")
)

// ResizeError reports a capacity change that could not be applied.
//
// It matches ErrMemory with errors.Is. The original underlying error (if any)
// can be accessed via errors.Unwrap.
type ResizeError struct {
	Op     string
	Action capacity.Action
	From   int
	To     int
	cause  error
}

func (e *ResizeError) Error() string {
	return fmt.Sprintf("%s: %s: %s from %d to %d: %v", e.Op, ErrMemory, e.Action, e.From, e.To, e.cause)
}

func (e *ResizeError) Is(target error) bool { return target == ErrMemory }

func (e *ResizeError) Unwrap() error { return e.cause }

var errNoRoom = errors.New("policy left no free slot")
