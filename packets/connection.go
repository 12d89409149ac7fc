package packets

import (
	"github.com/opd-ai/orion/text"
	"github.com/opd-ai/orion/wire"
)

// ProtocolVersion is the version string this build speaks.
const ProtocolVersion = "Terraria194"

// ClientConnect opens a connection. The version string, such as
// "Terraria194", is only present on the way to the server.
type ClientConnect struct {
	Version string
}

func (p *ClientConnect) ID() ID { return IDClientConnect }

func (p *ClientConnect) DecodeBody(r *wire.Reader, dir Direction) {
	if dir == ToServer {
		p.Version = r.Str()
	}
}

func (p *ClientConnect) EncodeBody(w *wire.Writer, dir Direction) error {
	if dir == ToServer {
		w.Str(p.Version)
	}
	return nil
}

// ClientDisconnect closes a connection with a reason shown to the player.
type ClientDisconnect struct {
	Reason text.NetworkText
}

func (p *ClientDisconnect) ID() ID { return IDClientDisconnect }

func (p *ClientDisconnect) DecodeBody(r *wire.Reader, dir Direction) {
	p.Reason = text.Decode(r)
}

func (p *ClientDisconnect) EncodeBody(w *wire.Writer, dir Direction) error {
	return p.Reason.Encode(w)
}

// ClientPlayerIndex assigns the connecting client its player slot.
type ClientPlayerIndex struct {
	PlayerIndex uint8
}

func (p *ClientPlayerIndex) ID() ID { return IDClientPlayerIndex }

func (p *ClientPlayerIndex) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
}

func (p *ClientPlayerIndex) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	return nil
}

// ClientWorldRequest asks the server for world information. It has no body.
type ClientWorldRequest struct{}

func (p *ClientWorldRequest) ID() ID { return IDClientWorldRequest }
func (p *ClientWorldRequest) DecodeBody(r *wire.Reader, dir Direction) {}
func (p *ClientWorldRequest) EncodeBody(w *wire.Writer, dir Direction) error { return nil }

// ClientStatus updates the loading status line on the client.
type ClientStatus struct {
	StatusMax int32
	Text      text.NetworkText
}

func (p *ClientStatus) ID() ID { return IDClientStatus }

func (p *ClientStatus) DecodeBody(r *wire.Reader, dir Direction) {
	p.StatusMax = r.Int32()
	p.Text = text.Decode(r)
}

func (p *ClientStatus) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Int32(p.StatusMax)
	return p.Text.Encode(w)
}

// PasswordRequest asks the client for the server password. It has no body.
type PasswordRequest struct{}

func (p *PasswordRequest) ID() ID { return IDPasswordRequest }
func (p *PasswordRequest) DecodeBody(r *wire.Reader, dir Direction) {}
func (p *PasswordRequest) EncodeBody(w *wire.Writer, dir Direction) error { return nil }

// ClientPassword answers a PasswordRequest.
type ClientPassword struct {
	Password string
}

func (p *ClientPassword) ID() ID { return IDClientPassword }

func (p *ClientPassword) DecodeBody(r *wire.Reader, dir Direction) {
	p.Password = r.Str()
}

func (p *ClientPassword) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Str(p.Password)
	return nil
}

// ConnectionComplete tells the client it may spawn. It has no body.
type ConnectionComplete struct{}

func (p *ConnectionComplete) ID() ID { return IDConnectionComplete }
func (p *ConnectionComplete) DecodeBody(r *wire.Reader, dir Direction) {}
func (p *ConnectionComplete) EncodeBody(w *wire.Writer, dir Direction) error { return nil }

// ClientUuid carries the client's persistent identifier.
type ClientUuid struct {
	UUID string
}

func (p *ClientUuid) ID() ID { return IDClientUuid }

func (p *ClientUuid) DecodeBody(r *wire.Reader, dir Direction) {
	p.UUID = r.Str()
}

func (p *ClientUuid) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Str(p.UUID)
	return nil
}
