// Package limits provides centralized size constants and validation functions
// for the orion wire protocol. Every frame that crosses a session boundary is
// checked against these limits before it is decoded or written.
//
// # Size Hierarchy
//
//   - HeaderLength (3 bytes): u16 little-endian total length followed by a
//     u8 packet id. The declared length includes the header.
//
//   - MaxPacketLength (65535 bytes): the largest total length the u16 header
//     can declare.
//
//   - MaxBodyLength (65532 bytes): the largest body behind a header. Encoders
//     reject bodies above this size instead of truncating the length field.
//
//   - MaxTextDepth (32): the deepest NetworkText substitution nesting accepted
//     on decode. The wire format has no bound of its own.
//
//   - MaxSessions (256): the number of session slots. Player indices are a
//     single byte on the wire.
//
// # Validation Functions
//
//	err := limits.ValidateDeclaredLength(int(binary.LittleEndian.Uint16(hdr)))
//	if err != nil {
//	    // ErrFrameTooShort or ErrFrameTooLarge
//	}
//
// For buffers with a caller-chosen bound, such as a capture holding many
// frames, use ValidateFrameSize:
//
//	err := limits.ValidateFrameSize(capture, 16<<20)
package limits
