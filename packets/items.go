package packets

import (
	"github.com/opd-ai/orion/wire"
)

// ItemInfo updates a dropped item. An ItemID of zero removes it.
type ItemInfo struct {
	ItemIndex int16
	Position  wire.Vector2
	Velocity  wire.Vector2
	Stack     int16
	Prefix    uint8
	NoDelay   uint8
	ItemID    int16
}

func (p *ItemInfo) ID() ID { return IDItemInfo }

func (p *ItemInfo) DecodeBody(r *wire.Reader, dir Direction) {
	p.ItemIndex = r.Int16()
	p.Position = r.Vector2()
	p.Velocity = r.Vector2()
	p.Stack = r.Int16()
	p.Prefix = r.Byte()
	p.NoDelay = r.Byte()
	p.ItemID = r.Int16()
}

func (p *ItemInfo) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Int16(p.ItemIndex)
	w.Vector2(p.Position)
	w.Vector2(p.Velocity)
	w.Int16(p.Stack)
	w.Byte(p.Prefix)
	w.Byte(p.NoDelay)
	w.Int16(p.ItemID)
	return nil
}

// ItemOwner assigns a dropped item to a player.
type ItemOwner struct {
	ItemIndex  int16
	OwnerIndex uint8
}

func (p *ItemOwner) ID() ID { return IDItemOwner }

func (p *ItemOwner) DecodeBody(r *wire.Reader, dir Direction) {
	p.ItemIndex = r.Int16()
	p.OwnerIndex = r.Byte()
}

func (p *ItemOwner) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Int16(p.ItemIndex)
	w.Byte(p.OwnerIndex)
	return nil
}

// ChestOpenRequest asks to open the chest at a tile.
type ChestOpenRequest struct {
	X int16
	Y int16
}

func (p *ChestOpenRequest) ID() ID { return IDChestOpenRequest }

func (p *ChestOpenRequest) DecodeBody(r *wire.Reader, dir Direction) {
	p.X = r.Int16()
	p.Y = r.Int16()
}

func (p *ChestOpenRequest) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Int16(p.X)
	w.Int16(p.Y)
	return nil
}

// ChestInventorySlot sets one slot of a chest.
type ChestInventorySlot struct {
	ChestIndex int16
	Slot       uint8
	Stack      int16
	Prefix     uint8
	ItemID     int16
}

func (p *ChestInventorySlot) ID() ID { return IDChestInventorySlot }

func (p *ChestInventorySlot) DecodeBody(r *wire.Reader, dir Direction) {
	p.ChestIndex = r.Int16()
	p.Slot = r.Byte()
	p.Stack = r.Int16()
	p.Prefix = r.Byte()
	p.ItemID = r.Int16()
}

func (p *ChestInventorySlot) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Int16(p.ChestIndex)
	w.Byte(p.Slot)
	w.Int16(p.Stack)
	w.Byte(p.Prefix)
	w.Int16(p.ItemID)
	return nil
}

// ChestName requests a chest's name, or delivers it. The name is only on
// the wire on the way to the client.
type ChestName struct {
	ChestIndex int16
	X          int16
	Y          int16
	Name       string
}

func (p *ChestName) ID() ID { return IDChestName }

func (p *ChestName) DecodeBody(r *wire.Reader, dir Direction) {
	p.ChestIndex = r.Int16()
	p.X = r.Int16()
	p.Y = r.Int16()
	if dir == ToClient {
		p.Name = r.Str()
	}
}

func (p *ChestName) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Int16(p.ChestIndex)
	w.Int16(p.X)
	w.Int16(p.Y)
	if dir == ToClient {
		w.Str(p.Name)
	}
	return nil
}
