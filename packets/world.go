package packets

import (
	"github.com/opd-ai/orion/text"
	"github.com/opd-ai/orion/wire"
)

// SectionRequest asks for the world section around a tile.
type SectionRequest struct {
	X int32
	Y int32
}

func (p *SectionRequest) ID() ID { return IDSectionRequest }

func (p *SectionRequest) DecodeBody(r *wire.Reader, dir Direction) {
	p.X = r.Int32()
	p.Y = r.Int32()
}

func (p *SectionRequest) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Int32(p.X)
	w.Int32(p.Y)
	return nil
}

// TileModify changes a single tile. The meaning of Value and Style depends
// on Action.
type TileModify struct {
	Action uint8
	X      int16
	Y      int16
	Value  int16
	Style  uint8
}

func (p *TileModify) ID() ID { return IDTileModify }

func (p *TileModify) DecodeBody(r *wire.Reader, dir Direction) {
	p.Action = r.Byte()
	p.X = r.Int16()
	p.Y = r.Int16()
	p.Value = r.Int16()
	p.Style = r.Byte()
}

func (p *TileModify) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.Action)
	w.Int16(p.X)
	w.Int16(p.Y)
	w.Int16(p.Value)
	w.Byte(p.Style)
	return nil
}

// WorldTime synchronizes the world clock.
type WorldTime struct {
	DayTime  bool
	Time     int32
	SunModY  int16
	MoonModY int16
}

func (p *WorldTime) ID() ID { return IDWorldTime }

func (p *WorldTime) DecodeBody(r *wire.Reader, dir Direction) {
	p.DayTime = r.Bool()
	p.Time = r.Int32()
	p.SunModY = r.Int16()
	p.MoonModY = r.Int16()
}

func (p *WorldTime) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Bool(p.DayTime)
	w.Int32(p.Time)
	w.Int16(p.SunModY)
	w.Int16(p.MoonModY)
	return nil
}

// EntityTeleport bit positions in the Flags byte.
const (
	TeleportFlagNpc            = 0
	TeleportFlagPlayerToPlayer = 1
	TeleportFlagFromTarget     = 2
	TeleportFlagExtraInfo      = 3
)

// EntityTeleport moves a player or NPC. ExtraInfo is only on the wire when
// it is non-zero.
type EntityTeleport struct {
	Flags       wire.Flags8 // TeleportFlagExtraInfo is derived from ExtraInfo
	TargetIndex int16
	Position    wire.Vector2
	Style       uint8
	ExtraInfo   int32
}

func (p *EntityTeleport) ID() ID { return IDEntityTeleport }

func (p *EntityTeleport) DecodeBody(r *wire.Reader, dir Direction) {
	flags := r.Flags8()
	p.Flags = flags.Set(TeleportFlagExtraInfo, false)
	p.TargetIndex = r.Int16()
	p.Position = r.Vector2()
	p.Style = r.Byte()
	p.ExtraInfo = 0
	if flags.Get(TeleportFlagExtraInfo) {
		p.ExtraInfo = r.Int32()
	}
}

func (p *EntityTeleport) EncodeBody(w *wire.Writer, dir Direction) error {
	hasExtra := p.ExtraInfo != 0
	w.Flags8(p.Flags.Set(TeleportFlagExtraInfo, hasExtra))
	w.Int16(p.TargetIndex)
	w.Vector2(p.Position)
	w.Byte(p.Style)
	if hasExtra {
		w.Int32(p.ExtraInfo)
	}
	return nil
}

// ServerChat is a colored chat line wrapped at LineWidth pixels; -1 means
// the client default.
type ServerChat struct {
	Color     wire.Color
	Message   text.NetworkText
	LineWidth int16
}

func (p *ServerChat) ID() ID { return IDServerChat }

func (p *ServerChat) DecodeBody(r *wire.Reader, dir Direction) {
	p.Color = r.Color()
	p.Message = text.Decode(r)
	p.LineWidth = r.Int16()
}

func (p *ServerChat) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Color(p.Color)
	if err := p.Message.Encode(w); err != nil {
		return err
	}
	w.Int16(p.LineWidth)
	return nil
}
