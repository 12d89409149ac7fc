package packets

import (
	"fmt"

	"github.com/opd-ai/orion/wire"
)

// ID identifies a packet shape on the wire.
type ID uint8

// Direction tells a codec which peer is reading the bytes.
type Direction uint8

const (
	// ToServer is a packet sent by a client and read by the server.
	ToServer Direction = iota
	// ToClient is a packet sent by the server and read by a client.
	ToClient
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case ToServer:
		return "to-server"
	case ToClient:
		return "to-client"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == ToServer {
		return ToClient
	}
	return ToServer
}

// Packet is a plain data record with a fixed wire id.
//
// DecodeBody reads the fields from r and records faults on r. EncodeBody
// appends the fields to w. Both must branch on dir identically.
type Packet interface {
	ID() ID
	DecodeBody(r *wire.Reader, dir Direction)
	EncodeBody(w *wire.Writer, dir Direction) error
}

// Packet ids understood by this build.
const (
	IDClientConnect       ID = 1
	IDClientDisconnect    ID = 2
	IDClientPlayerIndex   ID = 3
	IDPlayerInfo          ID = 4
	IDPlayerInventorySlot ID = 5
	IDClientWorldRequest  ID = 6
	IDSectionRequest      ID = 8
	IDClientStatus        ID = 9
	IDPlayerSpawn         ID = 12
	IDPlayerControl       ID = 13
	IDPlayerActive        ID = 14
	IDPlayerHealth        ID = 16
	IDTileModify          ID = 17
	IDWorldTime           ID = 18
	IDItemInfo            ID = 21
	IDItemOwner           ID = 22
	IDNpcStrike           ID = 24
	IDProjectileInfo      ID = 27
	IDProjectileRemove    ID = 29
	IDPlayerPvp           ID = 30
	IDChestOpenRequest    ID = 31
	IDChestInventorySlot  ID = 32
	IDPasswordRequest     ID = 37
	IDClientPassword      ID = 38
	IDPlayerMana          ID = 42
	IDPlayerTeam          ID = 45
	IDConnectionComplete  ID = 49
	IDPlayerBuffs         ID = 50
	IDPlayerAddBuff       ID = 55
	IDEntityTeleport      ID = 65
	IDClientUuid          ID = 68
	IDChestName           ID = 69
	IDModule              ID = 82
	IDServerChat          ID = 107
)

// registry maps every known id to a constructor. It is never written after
// package initialization.
var registry = map[ID]func() Packet{
	IDClientConnect:       func() Packet { return &ClientConnect{} },
	IDClientDisconnect:    func() Packet { return &ClientDisconnect{} },
	IDClientPlayerIndex:   func() Packet { return &ClientPlayerIndex{} },
	IDPlayerInfo:          func() Packet { return &PlayerInfo{} },
	IDPlayerInventorySlot: func() Packet { return &PlayerInventorySlot{} },
	IDClientWorldRequest:  func() Packet { return &ClientWorldRequest{} },
	IDSectionRequest:      func() Packet { return &SectionRequest{} },
	IDClientStatus:        func() Packet { return &ClientStatus{} },
	IDPlayerSpawn:         func() Packet { return &PlayerSpawn{} },
	IDPlayerControl:       func() Packet { return &PlayerControl{} },
	IDPlayerActive:        func() Packet { return &PlayerActive{} },
	IDPlayerHealth:        func() Packet { return &PlayerHealth{} },
	IDTileModify:          func() Packet { return &TileModify{} },
	IDWorldTime:           func() Packet { return &WorldTime{} },
	IDItemInfo:            func() Packet { return &ItemInfo{} },
	IDItemOwner:           func() Packet { return &ItemOwner{} },
	IDNpcStrike:           func() Packet { return &NpcStrike{} },
	IDProjectileInfo:      func() Packet { return &ProjectileInfo{UniqueID: NoUniqueID} },
	IDProjectileRemove:    func() Packet { return &ProjectileRemove{} },
	IDPlayerPvp:           func() Packet { return &PlayerPvp{} },
	IDChestOpenRequest:    func() Packet { return &ChestOpenRequest{} },
	IDChestInventorySlot:  func() Packet { return &ChestInventorySlot{} },
	IDPasswordRequest:     func() Packet { return &PasswordRequest{} },
	IDClientPassword:      func() Packet { return &ClientPassword{} },
	IDPlayerMana:          func() Packet { return &PlayerMana{} },
	IDPlayerTeam:          func() Packet { return &PlayerTeam{} },
	IDConnectionComplete:  func() Packet { return &ConnectionComplete{} },
	IDPlayerBuffs:         func() Packet { return &PlayerBuffs{} },
	IDPlayerAddBuff:       func() Packet { return &PlayerAddBuff{} },
	IDEntityTeleport:      func() Packet { return &EntityTeleport{} },
	IDClientUuid:          func() Packet { return &ClientUuid{} },
	IDChestName:           func() Packet { return &ChestName{} },
	IDModule:              func() Packet { return &ModulePacket{} },
	IDServerChat:          func() Packet { return &ServerChat{} },
}

// New returns an empty packet for id, or nil if id is not registered.
func New(id ID) Packet {
	ctor, ok := registry[id]
	if !ok {
		return nil
	}
	return ctor()
}

// Registered reports whether id has a packet type in this build.
func Registered(id ID) bool {
	_, ok := registry[id]
	return ok
}

// Read decodes body into p and returns the number of bytes consumed.
// Unlike Decode it does not require the whole body to be consumed.
func Read(p Packet, body []byte, dir Direction) (int, error) {
	r := wire.NewReader(body)
	p.DecodeBody(r, dir)
	return r.Offset(), r.Err()
}

// Write encodes the body of p, without a header, and appends it to dst.
func Write(dst []byte, p Packet, dir Direction) ([]byte, error) {
	w := wire.NewWriter(dst)
	if err := p.EncodeBody(w, dir); err != nil {
		return dst, err
	}
	return w.Bytes(), nil
}
