package packets

import (
	"errors"
	"fmt"
)

// Decode and encode faults
var (
	// ErrShortHeader indicates fewer than three bytes were available
	ErrShortHeader = errors.New("short packet header")

	// ErrInvalidLength indicates a declared length outside 3..65535
	ErrInvalidLength = errors.New("invalid packet length")

	// ErrTruncated indicates the declared length exceeds the available bytes
	ErrTruncated = errors.New("truncated packet")

	// ErrLengthMismatch indicates the body was not consumed exactly
	ErrLengthMismatch = errors.New("packet length mismatch")

	// ErrPacketTooLarge indicates an encoded packet does not fit a u16 header
	ErrPacketTooLarge = errors.New("packet too large")

	// ErrUnexpectedModule indicates a module packet carrying another module type
	ErrUnexpectedModule = errors.New("unexpected module")

	// ErrNotModulePacket indicates a packet that is not a module packet
	ErrNotModulePacket = errors.New("not a module packet")
)

// Error represents a codec fault with the packet it concerns.
type Error struct {
	Op  string // "decode" or "encode"
	ID  ID     // packet id, when the header was readable
	Err error  // underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("packets: %s id %d: %v", e.Op, e.ID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, id ID, err error) *Error {
	return &Error{Op: op, ID: id, Err: err}
}
