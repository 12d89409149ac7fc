package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrShortBuffer indicates a read past the end of the input
	ErrShortBuffer = errors.New("short buffer")

	// ErrStringTooLong indicates a string length prefix above the limit
	ErrStringTooLong = errors.New("string too long")

	// ErrInvalidLength indicates a malformed 7-bit encoded length prefix
	ErrInvalidLength = errors.New("invalid length prefix")
)

// DecodeError records where in the input a read failed.
type DecodeError struct {
	Op     string // read that failed, e.g. "int16"
	Offset int    // cursor position when it failed
	Err    error  // underlying error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wire: read %s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
