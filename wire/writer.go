package wire

import (
	"encoding/binary"
	"math"
)

// Writer appends encoded values to a growing buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer that appends to dst.
func NewWriter(dst []byte) *Writer {
	return &Writer{buf: dst}
}

// Bytes returns the encoded buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes in the buffer.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset truncates the buffer, keeping its capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// Byte appends one byte.
func (w *Writer) Byte(v uint8) {
	w.buf = append(w.buf, v)
}

// Bool appends 1 for true and 0 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.Byte(1)
		return
	}
	w.Byte(0)
}

// Int8 appends a signed byte.
func (w *Writer) Int8(v int8) {
	w.Byte(uint8(v))
}

// Flags8 appends a bit byte.
func (w *Writer) Flags8(f Flags8) {
	w.Byte(uint8(f))
}

// Uint16 appends a little-endian uint16.
func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// Int16 appends a little-endian int16.
func (w *Writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

// Uint32 appends a little-endian uint32.
func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Int32 appends a little-endian int32.
func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

// Uint64 appends a little-endian uint64.
func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// Int64 appends a little-endian int64.
func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

// Float32 appends an IEEE-754 binary32 value.
func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

// Color appends R, G, B.
func (w *Writer) Color(c Color) {
	w.buf = append(w.buf, c.R, c.G, c.B)
}

// Vector2 appends X, Y.
func (w *Writer) Vector2(v Vector2) {
	w.Float32(v.X)
	w.Float32(v.Y)
}

// Raw appends b verbatim.
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Str appends a 7-bit length-prefixed UTF-8 string.
func (w *Writer) Str(s string) {
	w.buf = binary.AppendUvarint(w.buf, uint64(len(s)))
	w.buf = append(w.buf, s...)
}
