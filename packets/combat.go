package packets

import (
	"math"

	"github.com/opd-ai/orion/wire"
)

// NpcStrike reports that a player hit an NPC with the held item.
type NpcStrike struct {
	NpcIndex    int16
	PlayerIndex uint8
}

func (p *NpcStrike) ID() ID { return IDNpcStrike }

func (p *NpcStrike) DecodeBody(r *wire.Reader, dir Direction) {
	p.NpcIndex = r.Int16()
	p.PlayerIndex = r.Byte()
}

func (p *NpcStrike) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Int16(p.NpcIndex)
	w.Byte(p.PlayerIndex)
	return nil
}

// NoUniqueID marks a projectile without a unique id.
const NoUniqueID int16 = -1

// ProjectileInfo bit positions in the optional field byte.
const (
	ProjectileFlagAI0            = 0
	ProjectileFlagAI1            = 1
	ProjectileFlagBanner         = 3
	ProjectileFlagDamage         = 4
	ProjectileFlagKnockback      = 5
	ProjectileFlagOriginalDamage = 6
	ProjectileFlagUniqueID       = 7
)

// ProjectileInfo creates or updates a projectile. Each optional field is on
// the wire only when it differs from its default: zero for all of them,
// except UniqueID whose default is NoUniqueID. Float fields compare by bit
// pattern, so a negative zero is sent and survives a round trip.
type ProjectileInfo struct {
	ProjectileIndex int16
	Position        wire.Vector2
	Velocity        wire.Vector2
	OwnerIndex      uint8
	Type            int16
	AI              [2]float32
	BannerID        uint16
	Damage          int16
	Knockback       float32
	OriginalDamage  int16
	UniqueID        int16
}

// NewProjectileInfo returns a ProjectileInfo with every optional field at
// its default.
func NewProjectileInfo(index int16, owner uint8, typ int16) *ProjectileInfo {
	return &ProjectileInfo{ProjectileIndex: index, OwnerIndex: owner, Type: typ, UniqueID: NoUniqueID}
}

func (p *ProjectileInfo) ID() ID { return IDProjectileInfo }

func (p *ProjectileInfo) flags() wire.Flags8 {
	var f wire.Flags8
	f = f.Set(ProjectileFlagAI0, math.Float32bits(p.AI[0]) != 0)
	f = f.Set(ProjectileFlagAI1, math.Float32bits(p.AI[1]) != 0)
	f = f.Set(ProjectileFlagBanner, p.BannerID != 0)
	f = f.Set(ProjectileFlagDamage, p.Damage != 0)
	f = f.Set(ProjectileFlagKnockback, math.Float32bits(p.Knockback) != 0)
	f = f.Set(ProjectileFlagOriginalDamage, p.OriginalDamage != 0)
	f = f.Set(ProjectileFlagUniqueID, p.UniqueID != NoUniqueID)
	return f
}

func (p *ProjectileInfo) DecodeBody(r *wire.Reader, dir Direction) {
	*p = ProjectileInfo{UniqueID: NoUniqueID}
	p.ProjectileIndex = r.Int16()
	p.Position = r.Vector2()
	p.Velocity = r.Vector2()
	p.OwnerIndex = r.Byte()
	p.Type = r.Int16()

	f := r.Flags8()
	if f.Get(ProjectileFlagAI0) {
		p.AI[0] = r.Float32()
	}
	if f.Get(ProjectileFlagAI1) {
		p.AI[1] = r.Float32()
	}
	if f.Get(ProjectileFlagBanner) {
		p.BannerID = r.Uint16()
	}
	if f.Get(ProjectileFlagDamage) {
		p.Damage = r.Int16()
	}
	if f.Get(ProjectileFlagKnockback) {
		p.Knockback = r.Float32()
	}
	if f.Get(ProjectileFlagOriginalDamage) {
		p.OriginalDamage = r.Int16()
	}
	if f.Get(ProjectileFlagUniqueID) {
		p.UniqueID = r.Int16()
	}
}

func (p *ProjectileInfo) EncodeBody(w *wire.Writer, dir Direction) error {
	f := p.flags()
	w.Int16(p.ProjectileIndex)
	w.Vector2(p.Position)
	w.Vector2(p.Velocity)
	w.Byte(p.OwnerIndex)
	w.Int16(p.Type)
	w.Flags8(f)
	if f.Get(ProjectileFlagAI0) {
		w.Float32(p.AI[0])
	}
	if f.Get(ProjectileFlagAI1) {
		w.Float32(p.AI[1])
	}
	if f.Get(ProjectileFlagBanner) {
		w.Uint16(p.BannerID)
	}
	if f.Get(ProjectileFlagDamage) {
		w.Int16(p.Damage)
	}
	if f.Get(ProjectileFlagKnockback) {
		w.Float32(p.Knockback)
	}
	if f.Get(ProjectileFlagOriginalDamage) {
		w.Int16(p.OriginalDamage)
	}
	if f.Get(ProjectileFlagUniqueID) {
		w.Int16(p.UniqueID)
	}
	return nil
}

// ProjectileRemove destroys a projectile owned by a player.
type ProjectileRemove struct {
	ProjectileIndex int16
	OwnerIndex      uint8
}

func (p *ProjectileRemove) ID() ID { return IDProjectileRemove }

func (p *ProjectileRemove) DecodeBody(r *wire.Reader, dir Direction) {
	p.ProjectileIndex = r.Int16()
	p.OwnerIndex = r.Byte()
}

func (p *ProjectileRemove) EncodeBody(w *wire.Writer, dir Direction) error {
	w.Int16(p.ProjectileIndex)
	w.Byte(p.OwnerIndex)
	return nil
}
