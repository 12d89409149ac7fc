package session

import (
	"errors"
	"fmt"
)

// Session faults
var (
	// ErrSessionFaulted indicates a session ended on a corrupt frame
	ErrSessionFaulted = errors.New("session faulted")

	// ErrSlotsFull indicates every session slot is taken
	ErrSlotsFull = errors.New("no free session slot")

	// ErrSendCanceled indicates a PacketSendEvent handler canceled a send
	ErrSendCanceled = errors.New("send canceled")

	// ErrClosed indicates an operation on a closed session
	ErrClosed = errors.New("session closed")
)

// Error represents a session fault with the slot and peer it concerns.
type Error struct {
	Op      string // operation that caused the error
	Session int    // slot index
	Addr    string // remote address if known
	Err     error  // underlying error
}

func (e *Error) Error() string {
	if e.Addr != "" {
		return fmt.Sprintf("session %d %s %s: %v", e.Session, e.Op, e.Addr, e.Err)
	}
	return fmt.Sprintf("session %d %s: %v", e.Session, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, index int, addr string, err error) *Error {
	return &Error{
		Op:      op,
		Session: index,
		Addr:    addr,
		Err:     err,
	}
}
