// Package limits provides centralized size limits for the wire protocol.
// This ensures consistent validation across the codec and the session layer.
package limits

import (
	"errors"
	"fmt"
)

const (
	// HeaderLength is the size of the packet header: u16 total length + u8 id
	HeaderLength = 3

	// MaxPacketLength is the largest total length a u16 header can declare
	MaxPacketLength = 0xFFFF

	// MaxBodyLength is the largest body that fits behind a header
	MaxBodyLength = MaxPacketLength - HeaderLength

	// MaxStringLength bounds a single length-prefixed string.
	// No string can be longer than the body carrying it.
	MaxStringLength = MaxBodyLength

	// MaxTextDepth bounds NetworkText substitution nesting on decode
	MaxTextDepth = 32

	// MaxSessions is the size of the session slot table.
	// Player indices travel as a single byte, so 256 slots cover them all.
	MaxSessions = 256
)

var (
	// ErrFrameEmpty indicates an empty frame was provided
	ErrFrameEmpty = errors.New("empty frame")

	// ErrFrameTooLarge indicates a frame exceeds the maximum length
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrFrameTooShort indicates a frame shorter than the packet header
	ErrFrameTooShort = errors.New("frame too short")
)

// ValidateFrameSize validates a frame against the specified maximum size.
// Returns an error with context including the actual and maximum sizes.
func ValidateFrameSize(frame []byte, maxSize int) error {
	if len(frame) == 0 {
		return ErrFrameEmpty
	}
	if len(frame) > maxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrFrameTooLarge, len(frame), maxSize)
	}
	return nil
}

// ValidateDeclaredLength validates a total length read from a packet header.
// The length includes the header itself.
func ValidateDeclaredLength(length int) error {
	if length < HeaderLength {
		return fmt.Errorf("%w: declared length %d below header length %d", ErrFrameTooShort, length, HeaderLength)
	}
	if length > MaxPacketLength {
		return fmt.Errorf("%w: declared length %d exceeds limit %d", ErrFrameTooLarge, length, MaxPacketLength)
	}
	return nil
}

// ValidateBody validates an encoded packet body against MaxBodyLength.
// An empty body is valid: several packets carry no fields.
func ValidateBody(body []byte) error {
	if len(body) > MaxBodyLength {
		return fmt.Errorf("%w: body size %d exceeds limit %d", ErrFrameTooLarge, len(body), MaxBodyLength)
	}
	return nil
}
