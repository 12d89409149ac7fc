package packets

import (
	"fmt"

	"github.com/opd-ai/orion/text"
	"github.com/opd-ai/orion/wire"
)

// LiquidChange is the new liquid state of one tile.
type LiquidChange struct {
	X      uint16
	Y      uint16
	Amount uint8
	Type   uint8
}

// LiquidModule batches liquid changes. Each tile position travels packed
// as a u32 with X in the high half.
type LiquidModule struct {
	Changes []LiquidChange
}

func (m *LiquidModule) ModuleID() ModuleID { return ModuleIDLiquid }

func (m *LiquidModule) DecodeBody(r *wire.Reader, dir Direction) {
	count := int(r.Uint16())
	m.Changes = nil
	if r.Err() != nil || count == 0 {
		return
	}
	// Each change is six bytes; refuse counts the body cannot hold before
	// allocating for them.
	if r.Remaining() < count*6 {
		r.Fail("liquid changes", fmt.Errorf("%w: %d changes need %d bytes, have %d",
			wire.ErrShortBuffer, count, count*6, r.Remaining()))
		return
	}
	m.Changes = make([]LiquidChange, count)
	for i := range m.Changes {
		pos := r.Uint32()
		m.Changes[i] = LiquidChange{
			X:      uint16(pos >> 16),
			Y:      uint16(pos),
			Amount: r.Byte(),
			Type:   r.Byte(),
		}
	}
}

func (m *LiquidModule) EncodeBody(w *wire.Writer, dir Direction) error {
	if len(m.Changes) > 0xFFFF {
		return fmt.Errorf("liquid module: %d changes exceed the u16 count", len(m.Changes))
	}
	w.Uint16(uint16(len(m.Changes)))
	for _, c := range m.Changes {
		w.Uint32(uint32(c.X)<<16 | uint32(c.Y))
		w.Byte(c.Amount)
		w.Byte(c.Type)
	}
	return nil
}

// ChatModule is a chat message. A client sends a command name and raw text;
// the server replies with the author's player index, a NetworkText message
// and a color. Fields of the other direction are ignored on encode and left
// zero on decode.
type ChatModule struct {
	// To the server.
	Command string
	Text    string

	// To the client.
	AuthorIndex uint8
	Message     text.NetworkText
	Color       wire.Color
}

// Chat commands a client sends.
const (
	ChatCommandSay   = "Say"
	ChatCommandEmote = "Emote"
	ChatCommandParty = "Party"
	ChatCommandRoll  = "Roll"
)

// ServerAuthor is the author index of messages from the server itself.
const ServerAuthor uint8 = 0xFF

func (m *ChatModule) ModuleID() ModuleID { return ModuleIDChat }

func (m *ChatModule) DecodeBody(r *wire.Reader, dir Direction) {
	if dir == ToServer {
		m.Command = r.Str()
		m.Text = r.Str()
		return
	}
	m.AuthorIndex = r.Byte()
	m.Message = text.Decode(r)
	m.Color = r.Color()
}

func (m *ChatModule) EncodeBody(w *wire.Writer, dir Direction) error {
	if dir == ToServer {
		w.Str(m.Command)
		w.Str(m.Text)
		return nil
	}
	w.Byte(m.AuthorIndex)
	if err := m.Message.Encode(w); err != nil {
		return err
	}
	w.Color(m.Color)
	return nil
}

// PingModule marks a map position for other players.
type PingModule struct {
	Position wire.Vector2
}

func (m *PingModule) ModuleID() ModuleID { return ModuleIDPing }

func (m *PingModule) DecodeBody(r *wire.Reader, dir Direction) {
	m.Position = r.Vector2()
}

func (m *PingModule) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Vector2(m.Position)
	return nil
}
