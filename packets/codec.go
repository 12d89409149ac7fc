package packets

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/opd-ai/orion/limits"
	"github.com/opd-ai/orion/wire"
)

// PeekHeader reads the declared length and id of the packet at the start of
// buf without decoding the body.
func PeekHeader(buf []byte) (length int, id ID, err error) {
	if len(buf) < limits.HeaderLength {
		return 0, 0, newError("decode", 0, fmt.Errorf("%w: have %d bytes", ErrShortHeader, len(buf)))
	}
	length = int(binary.LittleEndian.Uint16(buf))
	id = ID(buf[2])
	if err := limits.ValidateDeclaredLength(length); err != nil {
		return length, id, newError("decode", id, fmt.Errorf("%w: %w", ErrInvalidLength, err))
	}
	return length, id, nil
}

// Decode reads one framed packet from the start of buf and returns it with
// the number of bytes it occupied. Bytes after the frame are ignored.
//
// A packet whose type is not registered is returned as *UnknownPacket.
// A body that the packet type does not consume exactly is ErrLengthMismatch.
func Decode(buf []byte, dir Direction) (Packet, int, error) {
	length, id, err := PeekHeader(buf)
	if err != nil {
		return nil, 0, err
	}
	if length > len(buf) {
		return nil, 0, newError("decode", id, fmt.Errorf("%w: declared %d bytes, have %d", ErrTruncated, length, len(buf)))
	}
	body := buf[limits.HeaderLength:length]

	p := New(id)
	if p == nil {
		return &UnknownPacket{PacketID: id, Payload: bytes.Clone(body)}, length, nil
	}

	n, err := Read(p, body, dir)
	if err != nil {
		return nil, 0, newError("decode", id, fmt.Errorf("%w: %w", ErrLengthMismatch, err))
	}
	if n != len(body) {
		return nil, 0, newError("decode", id, fmt.Errorf("%w: consumed %d of %d body bytes", ErrLengthMismatch, n, len(body)))
	}
	return p, length, nil
}

// Encode returns the framed encoding of p.
func Encode(p Packet, dir Direction) ([]byte, error) {
	return Append(nil, p, dir)
}

// Append appends the framed encoding of p to dst. On error dst is returned
// unchanged. A nil p is a programming error and panics.
func Append(dst []byte, p Packet, dir Direction) ([]byte, error) {
	if p == nil {
		panic("packets: Append of nil packet")
	}
	start := len(dst)
	id := p.ID()

	w := wire.NewWriter(append(dst, 0, 0, byte(id)))
	if err := p.EncodeBody(w, dir); err != nil {
		return dst[:start], newError("encode", id, err)
	}
	buf := w.Bytes()

	if err := limits.ValidateBody(buf[start+limits.HeaderLength:]); err != nil {
		return dst[:start], newError("encode", id, fmt.Errorf("%w: %w", ErrPacketTooLarge, err))
	}
	binary.LittleEndian.PutUint16(buf[start:], uint16(len(buf)-start))
	return buf, nil
}

// UnknownPacket is a packet whose id has no registered type. Its body is
// kept verbatim, so encoding it reproduces the bytes it was decoded from.
type UnknownPacket struct {
	PacketID ID
	Payload  []byte
}

// ID returns the observed id.
func (p *UnknownPacket) ID() ID { return p.PacketID }

// DecodeBody captures every remaining byte.
func (p *UnknownPacket) DecodeBody(r *wire.Reader, dir Direction) {
	p.Payload = bytes.Clone(r.Rest())
}

// EncodeBody writes the captured body.
func (p *UnknownPacket) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Raw(p.Payload)
	return nil
}
