// Package packets implements the orion wire protocol codec: framed packets,
// the module sub-protocol carried inside the module packet, and lossless
// pass-through of ids this build does not understand.
//
// # Framing
//
// Every packet starts with a three byte header:
//
//	[total length: u16 LE][id: u8][body: total length - 3 bytes]
//
// Decode reads the header, slices exactly the declared body and dispatches
// on the id. Ids without a registered type decode to *UnknownPacket, which
// re-encodes to the bytes it was read from. Encode writes the body, then
// fills the header with 3 + len(body).
//
// # Direction
//
// Some packets change shape with the direction they travel. ClientConnect
// carries its version string only on the way to the server; ChestName
// carries its name only on the way to the client. DecodeBody and
// EncodeBody branch on the same Direction, so decoding what was encoded in
// the same direction is lossless.
//
// # Optional fields
//
// Several packets write a wire.Flags8 where bit k says optional field k
// follows. Encoders set a bit exactly when the field differs from its
// default, and decoders check the bit before reading the field. A field
// that is absent on the wire decodes to its default, which for unique id
// fields is the -1 sentinel rather than zero.
//
// # Modules
//
// ModulePacket (id 82) carries a u16 module id and a module body. Decoding
// dispatches on the module id and falls back to *UnknownModule. Call sites
// that expect one module type use ModuleAs or DecodeModule.
//
// # Concurrency
//
// The codec holds no mutable state. Decode and Encode are safe to call from
// any number of goroutines on independent buffers.
package packets
