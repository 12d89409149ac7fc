package session

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/opd-ai/orion/limits"
)

// ReadFrame reads one length-framed packet from r into buf, growing it when
// needed, and returns the frame including its header. It returns io.EOF only
// when r ends cleanly between frames.
func ReadFrame(r io.Reader, buf []byte) ([]byte, error) {
	if cap(buf) < limits.HeaderLength {
		buf = make([]byte, 0, 256)
	}
	head := buf[:2]
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, err
	}

	length := int(binary.LittleEndian.Uint16(head))
	if err := limits.ValidateDeclaredLength(length); err != nil {
		return nil, err
	}
	if cap(buf) < length {
		grown := make([]byte, length)
		copy(grown, head)
		buf = grown
	}
	frame := buf[:length]
	if _, err := io.ReadFull(r, frame[2:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read frame body: %w", err)
	}
	return frame, nil
}
