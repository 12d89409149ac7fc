package packets

import (
	"github.com/opd-ai/orion/wire"
)

// Difficulty is a character difficulty.
type Difficulty uint8

const (
	Softcore Difficulty = iota
	Mediumcore
	Hardcore
)

// PlayerInfo bit positions in the Flags byte.
const (
	PlayerFlagMediumcore     = 0
	PlayerFlagHardcore       = 1
	PlayerFlagExtraAccessory = 2
)

// PlayerInfo describes a character's appearance and difficulty.
type PlayerInfo struct {
	PlayerIndex     uint8
	SkinType        uint8
	HairType        uint8
	Name            string
	HairDye         uint8
	HiddenVisuals   wire.Flags8
	HiddenVisuals2  wire.Flags8
	HiddenMisc      wire.Flags8
	HairColor       wire.Color
	SkinColor       wire.Color
	EyeColor        wire.Color
	ShirtColor      wire.Color
	UndershirtColor wire.Color
	PantsColor      wire.Color
	ShoeColor       wire.Color
	Flags           wire.Flags8
}

func (p *PlayerInfo) ID() ID { return IDPlayerInfo }

func (p *PlayerInfo) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.SkinType = r.Byte()
	p.HairType = r.Byte()
	p.Name = r.Str()
	p.HairDye = r.Byte()
	p.HiddenVisuals = r.Flags8()
	p.HiddenVisuals2 = r.Flags8()
	p.HiddenMisc = r.Flags8()
	p.HairColor = r.Color()
	p.SkinColor = r.Color()
	p.EyeColor = r.Color()
	p.ShirtColor = r.Color()
	p.UndershirtColor = r.Color()
	p.PantsColor = r.Color()
	p.ShoeColor = r.Color()
	p.Flags = r.Flags8()
}

func (p *PlayerInfo) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	w.Byte(p.SkinType)
	w.Byte(p.HairType)
	w.Str(p.Name)
	w.Byte(p.HairDye)
	w.Flags8(p.HiddenVisuals)
	w.Flags8(p.HiddenVisuals2)
	w.Flags8(p.HiddenMisc)
	w.Color(p.HairColor)
	w.Color(p.SkinColor)
	w.Color(p.EyeColor)
	w.Color(p.ShirtColor)
	w.Color(p.UndershirtColor)
	w.Color(p.PantsColor)
	w.Color(p.ShoeColor)
	w.Flags8(p.Flags)
	return nil
}

// Difficulty decodes the difficulty bits. Hardcore wins if both are set.
func (p *PlayerInfo) Difficulty() Difficulty {
	switch {
	case p.Flags.Get(PlayerFlagHardcore):
		return Hardcore
	case p.Flags.Get(PlayerFlagMediumcore):
		return Mediumcore
	default:
		return Softcore
	}
}

// SetDifficulty replaces the difficulty bits, leaving the others alone.
func (p *PlayerInfo) SetDifficulty(d Difficulty) {
	p.Flags = p.Flags.
		Set(PlayerFlagMediumcore, d == Mediumcore).
		Set(PlayerFlagHardcore, d == Hardcore)
}

// HasExtraAccessory reports whether the character has the extra accessory slot.
func (p *PlayerInfo) HasExtraAccessory() bool {
	return p.Flags.Get(PlayerFlagExtraAccessory)
}

// PlayerInventorySlot sets one inventory slot of a player.
type PlayerInventorySlot struct {
	PlayerIndex uint8
	Slot        uint8
	Stack       int16
	Prefix      uint8
	ItemID      int16
}

func (p *PlayerInventorySlot) ID() ID { return IDPlayerInventorySlot }

func (p *PlayerInventorySlot) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.Slot = r.Byte()
	p.Stack = r.Int16()
	p.Prefix = r.Byte()
	p.ItemID = r.Int16()
}

func (p *PlayerInventorySlot) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	w.Byte(p.Slot)
	w.Int16(p.Stack)
	w.Byte(p.Prefix)
	w.Int16(p.ItemID)
	return nil
}

// PlayerSpawn spawns a player at a tile position.
type PlayerSpawn struct {
	PlayerIndex uint8
	SpawnX      int16
	SpawnY      int16
}

func (p *PlayerSpawn) ID() ID { return IDPlayerSpawn }

func (p *PlayerSpawn) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.SpawnX = r.Int16()
	p.SpawnY = r.Int16()
}

func (p *PlayerSpawn) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	w.Int16(p.SpawnX)
	w.Int16(p.SpawnY)
	return nil
}

// PlayerControl bit positions in the Misc byte.
const (
	ControlMiscPulley          = 0
	ControlMiscPulleyDirection = 1
	ControlMiscVelocity        = 2
	ControlMiscVortexStealth   = 3
	ControlMiscGravity         = 4
	ControlMiscShield          = 5
)

// PlayerControl reports a player's input state and position. The velocity
// is only on the wire when it is non-zero.
type PlayerControl struct {
	PlayerIndex  uint8
	Control      wire.Flags8
	Misc         wire.Flags8 // ControlMiscVelocity is derived from Velocity
	SelectedItem uint8
	Position     wire.Vector2
	Velocity     wire.Vector2
}

func (p *PlayerControl) ID() ID { return IDPlayerControl }

func (p *PlayerControl) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.Control = r.Flags8()
	misc := r.Flags8()
	p.Misc = misc.Set(ControlMiscVelocity, false)
	p.SelectedItem = r.Byte()
	p.Position = r.Vector2()
	p.Velocity = wire.Vector2{}
	if misc.Get(ControlMiscVelocity) {
		p.Velocity = r.Vector2()
	}
}

func (p *PlayerControl) EncodeBody(w *wire.Writer, dir Direction) error {
	hasVelocity := !p.Velocity.IsZero()
	w.Byte(p.PlayerIndex)
	w.Flags8(p.Control)
	w.Flags8(p.Misc.Set(ControlMiscVelocity, hasVelocity))
	w.Byte(p.SelectedItem)
	w.Vector2(p.Position)
	if hasVelocity {
		w.Vector2(p.Velocity)
	}
	return nil
}

// PlayerActive marks a player slot as occupied or free.
type PlayerActive struct {
	PlayerIndex uint8
	Active      bool
}

func (p *PlayerActive) ID() ID { return IDPlayerActive }

func (p *PlayerActive) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.Active = r.Bool()
}

func (p *PlayerActive) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	w.Bool(p.Active)
	return nil
}

// PlayerHealth sets a player's health.
type PlayerHealth struct {
	PlayerIndex uint8
	Health      int16
	MaxHealth   int16
}

func (p *PlayerHealth) ID() ID { return IDPlayerHealth }

func (p *PlayerHealth) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.Health = r.Int16()
	p.MaxHealth = r.Int16()
}

func (p *PlayerHealth) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	w.Int16(p.Health)
	w.Int16(p.MaxHealth)
	return nil
}

// PlayerPvp toggles a player's PvP state.
type PlayerPvp struct {
	PlayerIndex uint8
	Enabled     bool
}

func (p *PlayerPvp) ID() ID { return IDPlayerPvp }

func (p *PlayerPvp) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.Enabled = r.Bool()
}

func (p *PlayerPvp) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	w.Bool(p.Enabled)
	return nil
}

// PlayerMana sets a player's mana.
type PlayerMana struct {
	PlayerIndex uint8
	Mana        int16
	MaxMana     int16
}

func (p *PlayerMana) ID() ID { return IDPlayerMana }

func (p *PlayerMana) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.Mana = r.Int16()
	p.MaxMana = r.Int16()
}

func (p *PlayerMana) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	w.Int16(p.Mana)
	w.Int16(p.MaxMana)
	return nil
}

// PlayerTeam sets a player's team.
type PlayerTeam struct {
	PlayerIndex uint8
	Team        uint8
}

func (p *PlayerTeam) ID() ID { return IDPlayerTeam }

func (p *PlayerTeam) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.Team = r.Byte()
}

func (p *PlayerTeam) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	w.Byte(p.Team)
	return nil
}

// MaxBuffs is the number of buff slots a player has.
const MaxBuffs = 22

// PlayerBuffs replaces a player's buff list. Empty slots are zero.
type PlayerBuffs struct {
	PlayerIndex uint8
	Buffs       [MaxBuffs]uint16
}

func (p *PlayerBuffs) ID() ID { return IDPlayerBuffs }

func (p *PlayerBuffs) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	for i := range p.Buffs {
		p.Buffs[i] = r.Uint16()
	}
}

func (p *PlayerBuffs) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	for _, b := range p.Buffs {
		w.Uint16(b)
	}
	return nil
}

// PlayerAddBuff adds one buff to a player for Duration ticks.
type PlayerAddBuff struct {
	PlayerIndex uint8
	BuffID      uint16
	Duration    int32
}

func (p *PlayerAddBuff) ID() ID { return IDPlayerAddBuff }

func (p *PlayerAddBuff) DecodeBody(r *wire.Reader, dir Direction) {
	p.PlayerIndex = r.Byte()
	p.BuffID = r.Uint16()
	p.Duration = r.Int32()
}

func (p *PlayerAddBuff) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Byte(p.PlayerIndex)
	w.Uint16(p.BuffID)
	w.Int32(p.Duration)
	return nil
}
