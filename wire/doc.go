// Package wire provides the primitive codecs of the orion protocol: the
// Flags8 bit byte and cursor-based little-endian readers and writers.
//
// A Reader walks a caller-owned byte slice. Reads advance the cursor by the
// width of the value, so field offsets follow from call order rather than
// from declared struct layouts. The first short read records a sticky error;
// every later read returns a zero value and leaves the cursor in place, so a
// decoder can read all of its fields and check Err once at the end:
//
//	r := wire.NewReader(body)
//	id := r.Int16()
//	owner := r.Byte()
//	if err := r.Err(); err != nil {
//	    return err
//	}
//
// A Writer appends to a growing buffer and never fails.
//
// Strings use a 7-bit encoded (LEB128) length prefix followed by UTF-8 bytes.
// Floats are IEEE-754 binary32. Colors travel as three bytes (R, G, B) and
// vectors as two float32 values (X, Y).
package wire
