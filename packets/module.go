package packets

import (
	"bytes"
	"fmt"

	"github.com/opd-ai/orion/wire"
)

// ModuleID identifies a module shape inside a ModulePacket.
type ModuleID uint16

// Module ids understood by this build.
const (
	ModuleIDLiquid ModuleID = 0
	ModuleIDChat   ModuleID = 1
	ModuleIDPing   ModuleID = 2
)

// Module is a second-level record carried by a ModulePacket. It has no
// framing of its own; the module id is written by the ModulePacket.
type Module interface {
	ModuleID() ModuleID
	DecodeBody(r *wire.Reader, dir Direction)
	EncodeBody(w *wire.Writer, dir Direction) error
}

var moduleRegistry = map[ModuleID]func() Module{
	ModuleIDLiquid: func() Module { return &LiquidModule{} },
	ModuleIDChat:   func() Module { return &ChatModule{} },
	ModuleIDPing:   func() Module { return &PingModule{} },
}

// NewModule returns an empty module for id, or nil if id is not registered.
func NewModule(id ModuleID) Module {
	ctor, ok := moduleRegistry[id]
	if !ok {
		return nil
	}
	return ctor()
}

// ModuleRegistered reports whether id has a module type in this build.
func ModuleRegistered(id ModuleID) bool {
	_, ok := moduleRegistry[id]
	return ok
}

// ModulePacket carries one module.
//
//	[module id: u16 LE][module body]
type ModulePacket struct {
	Module Module
}

// NewModulePacket wraps m.
func NewModulePacket(m Module) *ModulePacket {
	return &ModulePacket{Module: m}
}

func (p *ModulePacket) ID() ID { return IDModule }

// DecodeBody reads the module id and dispatches on it. Ids without a
// registered type are captured as *UnknownModule.
func (p *ModulePacket) DecodeBody(r *wire.Reader, dir Direction) {
	id := ModuleID(r.Uint16())
	if r.Err() != nil {
		return
	}
	m := NewModule(id)
	if m == nil {
		m = &UnknownModule{ID: id}
	}
	m.DecodeBody(r, dir)
	p.Module = m
}

func (p *ModulePacket) EncodeBody(w *wire.Writer, dir Direction) error {
	if p.Module == nil {
		return fmt.Errorf("%w: module packet without a module", ErrUnexpectedModule)
	}
	w.Uint16(uint16(p.Module.ModuleID()))
	return p.Module.EncodeBody(w, dir)
}

// ModuleAs returns the module carried by p as an M.
func ModuleAs[M Module](p Packet) (M, error) {
	var zero M
	mp, ok := p.(*ModulePacket)
	if !ok || mp == nil {
		return zero, fmt.Errorf("%w: got %T", ErrNotModulePacket, p)
	}
	m, ok := mp.Module.(M)
	if !ok {
		return zero, fmt.Errorf("%w: want %T, got %T", ErrUnexpectedModule, zero, mp.Module)
	}
	return m, nil
}

// DecodeModule decodes one framed module packet from buf and returns its
// module as an M.
func DecodeModule[M Module](buf []byte, dir Direction) (M, int, error) {
	var zero M
	p, n, err := Decode(buf, dir)
	if err != nil {
		return zero, 0, err
	}
	m, err := ModuleAs[M](p)
	if err != nil {
		return zero, 0, newError("decode", p.ID(), err)
	}
	return m, n, nil
}

// EncodeModule returns the framed encoding of m inside a ModulePacket.
func EncodeModule(m Module, dir Direction) ([]byte, error) {
	return Encode(NewModulePacket(m), dir)
}

// UnknownModule is a module whose id has no registered type. Its body is
// kept verbatim so it re-encodes losslessly.
type UnknownModule struct {
	ID      ModuleID
	Payload []byte
}

func (m *UnknownModule) ModuleID() ModuleID { return m.ID }

func (m *UnknownModule) DecodeBody(r *wire.Reader, dir Direction) {
	m.Payload = bytes.Clone(r.Rest())
}

func (m *UnknownModule) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Raw(m.Payload)
	return nil
}
