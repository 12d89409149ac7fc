package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/opd-ai/orion/limits"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Vector2 is a pair of float32 coordinates.
type Vector2 struct {
	X, Y float32
}

// IsZero reports whether both coordinates are positive zero. A negative
// zero coordinate is not zero.
func (v Vector2) IsZero() bool {
	return math.Float32bits(v.X) == 0 && math.Float32bits(v.Y) == 0
}

// Reader is a cursor over a caller-owned byte slice.
// It is not safe for concurrent use; independent Readers over independent
// slices need no coordination.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Fail records err unless an error is already recorded. Decoders use it to
// report semantic faults, such as an unknown enum value, through the same
// sticky error as short reads.
func (r *Reader) Fail(op string, err error) {
	if r.err == nil {
		r.err = &DecodeError{Op: op, Offset: r.off, Err: err}
	}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(op string, n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Remaining() < n {
		r.Fail(op, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, r.Remaining()))
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// Byte reads one byte.
func (r *Reader) Byte() uint8 {
	b := r.take("byte", 1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Bool reads one byte; any non-zero value is true.
func (r *Reader) Bool() bool {
	return r.Byte() != 0
}

// Int8 reads a signed byte.
func (r *Reader) Int8() int8 {
	return int8(r.Byte())
}

// Flags8 reads a bit byte.
func (r *Reader) Flags8() Flags8 {
	return Flags8(r.Byte())
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() uint16 {
	b := r.take("uint16", 2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Int16 reads a little-endian int16.
func (r *Reader) Int16() int16 {
	b := r.take("int16", 2)
	if b == nil {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(b))
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() uint32 {
	b := r.take("uint32", 4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() int32 {
	b := r.take("int32", 4)
	if b == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() uint64 {
	b := r.take("uint64", 8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Int64 reads a little-endian int64.
func (r *Reader) Int64() int64 {
	b := r.take("int64", 8)
	if b == nil {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(b))
}

// Float32 reads an IEEE-754 binary32 value.
func (r *Reader) Float32() float32 {
	b := r.take("float32", 4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Color reads three bytes as R, G, B.
func (r *Reader) Color() Color {
	b := r.take("color", 3)
	if b == nil {
		return Color{}
	}
	return Color{R: b[0], G: b[1], B: b[2]}
}

// Vector2 reads two float32 values as X, Y.
func (r *Reader) Vector2() Vector2 {
	x := r.Float32()
	y := r.Float32()
	return Vector2{X: x, Y: y}
}

// Bytes reads exactly n bytes. The result aliases the input slice.
func (r *Reader) Bytes(n int) []byte {
	return r.take("bytes", n)
}

// Rest reads every remaining byte. The result aliases the input slice and
// is never nil.
func (r *Reader) Rest() []byte {
	b := r.take("rest", r.Remaining())
	if b == nil {
		return []byte{}
	}
	return b
}

// Str reads a 7-bit length-prefixed UTF-8 string.
func (r *Reader) Str() string {
	if r.err != nil {
		return ""
	}
	n, size := binary.Uvarint(r.buf[r.off:])
	switch {
	case size == 0:
		r.Fail("string", fmt.Errorf("%w: need length prefix, have 0 bytes", ErrShortBuffer))
		return ""
	case size < 0 || size > 5:
		r.Fail("string", ErrInvalidLength)
		return ""
	case n > limits.MaxStringLength:
		r.Fail("string", fmt.Errorf("%w: length %d exceeds limit %d", ErrStringTooLong, n, limits.MaxStringLength))
		return ""
	}
	r.off += size
	b := r.take("string", int(n))
	if b == nil {
		return ""
	}
	return string(b)
}
