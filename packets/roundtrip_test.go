package packets

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/orion/limits"
	"github.com/opd-ai/orion/text"
	"github.com/opd-ai/orion/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRoundTrip(t *testing.T, p Packet, dir Direction) {
	t.Helper()
	out, err := Encode(p, dir)
	require.NoError(t, err)

	got, n, err := Decode(out, dir)
	require.NoError(t, err)
	assert.Equal(t, len(out), n)
	assert.Equal(t, p, got)
}

func samplePackets() []Packet {
	buffs := PlayerBuffs{PlayerIndex: 3}
	for i := range buffs.Buffs {
		buffs.Buffs[i] = uint16(i * 7)
	}
	return []Packet{
		&ClientDisconnect{Reason: text.NewLocalized("CLI.KickMessage", text.NewLiteral("spam"))},
		&ClientDisconnect{Reason: text.Empty},
		&ClientPlayerIndex{PlayerIndex: 255},
		&PlayerInfo{
			PlayerIndex: 1, SkinType: 2, HairType: 3, Name: "Alice", HairDye: 4,
			HiddenVisuals: 0x0F, HiddenVisuals2: 0x01, HiddenMisc: 0x80,
			HairColor: wire.Color{R: 1, G: 2, B: 3}, SkinColor: wire.Color{R: 4, G: 5, B: 6},
			EyeColor: wire.Color{R: 7, G: 8, B: 9}, ShirtColor: wire.Color{R: 10, G: 11, B: 12},
			UndershirtColor: wire.Color{R: 13, G: 14, B: 15}, PantsColor: wire.Color{R: 16, G: 17, B: 18},
			ShoeColor: wire.Color{R: 255, G: 254, B: 253}, Flags: wire.Flags8(0).With(PlayerFlagHardcore),
		},
		&PlayerInventorySlot{PlayerIndex: 1, Slot: 58, Stack: -1, Prefix: 81, ItemID: 4956},
		&ClientWorldRequest{},
		&SectionRequest{X: -1, Y: 2147483647},
		&ClientStatus{StatusMax: 100, Text: text.NewLocalized("Net.RequestingTileData")},
		&PlayerSpawn{PlayerIndex: 9, SpawnX: -1, SpawnY: -1},
		&PlayerActive{PlayerIndex: 2, Active: true},
		&PlayerHealth{PlayerIndex: 2, Health: 400, MaxHealth: 500},
		&TileModify{Action: 1, X: 4200, Y: 300, Value: 4, Style: 1},
		&WorldTime{DayTime: true, Time: 27000, SunModY: -3, MoonModY: 2},
		&ItemInfo{ItemIndex: 400, Position: wire.Vector2{X: 1.5, Y: -2.25}, Velocity: wire.Vector2{X: 0, Y: 3}, Stack: 999, Prefix: 1, NoDelay: 1, ItemID: 73},
		&ItemOwner{ItemIndex: 399, OwnerIndex: 255},
		&NpcStrike{NpcIndex: 199, PlayerIndex: 4},
		&ProjectileRemove{ProjectileIndex: -1, OwnerIndex: 0},
		&PlayerPvp{PlayerIndex: 1, Enabled: true},
		&ChestOpenRequest{X: 10, Y: 20},
		&ChestInventorySlot{ChestIndex: 7999, Slot: 39, Stack: 1, Prefix: 0, ItemID: -24},
		&PasswordRequest{},
		&ClientPassword{Password: ""},
		&ClientPassword{Password: strings.Repeat("p", 300)},
		&PlayerMana{PlayerIndex: 1, Mana: 20, MaxMana: 400},
		&PlayerTeam{PlayerIndex: 1, Team: 5},
		&ConnectionComplete{},
		&buffs,
		&PlayerAddBuff{PlayerIndex: 1, BuffID: 65535, Duration: -1},
		&ClientUuid{UUID: "01234567-89ab-cdef-0123-456789abcdef"},
		&ServerChat{Color: wire.Color{R: 255, G: 240, B: 20}, Message: text.NewFormattable("{0}", text.NewLiteral("hi")), LineWidth: -1},
		&UnknownPacket{PacketID: 7, Payload: []byte{1, 2, 3}},
	}
}

func TestRoundTripBothDirections(t *testing.T) {
	for _, p := range samplePackets() {
		for _, dir := range []Direction{ToServer, ToClient} {
			t.Run(strings.TrimPrefix(fmt.Sprintf("%T", p), "*packets.")+"/"+dir.String(), func(t *testing.T) {
				assertRoundTrip(t, p, dir)
			})
		}
	}
}

func TestRoundTripMaximumString(t *testing.T) {
	// The largest string a password packet can carry: the 3 byte prefix
	// plus the string fill the body exactly.
	s := strings.Repeat("x", limits.MaxBodyLength-3)
	assertRoundTrip(t, &ClientPassword{Password: s}, ToServer)

	_, err := Encode(&ClientPassword{Password: s + "x"}, ToServer)
	assert.ErrorIs(t, err, ErrPacketTooLarge)
}

func TestDirectionalShapes(t *testing.T) {
	t.Run("connect", func(t *testing.T) {
		p := &ClientConnect{Version: "Terraria194"}
		assertRoundTrip(t, p, ToServer)

		out, err := Encode(p, ToClient)
		require.NoError(t, err)
		assert.Equal(t, []byte{3, 0, 1}, out)

		got, _, err := Decode(out, ToClient)
		require.NoError(t, err)
		assert.Equal(t, &ClientConnect{}, got)

		// The shapes differ, so the opposite direction does not decode.
		toServer, err := Encode(p, ToServer)
		require.NoError(t, err)
		_, _, err = Decode(toServer, ToClient)
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("chest name", func(t *testing.T) {
		p := &ChestName{ChestIndex: 12, X: 100, Y: 200, Name: "Loot"}
		assertRoundTrip(t, p, ToClient)

		out, err := Encode(p, ToServer)
		require.NoError(t, err)
		assert.Equal(t, []byte{9, 0, 69, 12, 0, 100, 0, 200, 0}, out)

		got, _, err := Decode(out, ToServer)
		require.NoError(t, err)
		assert.Equal(t, &ChestName{ChestIndex: 12, X: 100, Y: 200}, got)
	})

	t.Run("chat module", func(t *testing.T) {
		toServer := NewModulePacket(&ChatModule{Command: ChatCommandEmote, Text: "waves"})
		assertRoundTrip(t, toServer, ToServer)

		toClient := NewModulePacket(&ChatModule{
			AuthorIndex: ServerAuthor,
			Message:     text.NewLocalized("Game.Joined", text.NewLiteral("Bob")),
			Color:       wire.Color{R: 255, G: 255, B: 0},
		})
		assertRoundTrip(t, toClient, ToClient)
	})
}

func TestProjectileInfoOptionalFields(t *testing.T) {
	base := func() *ProjectileInfo {
		p := NewProjectileInfo(25, 250, 14)
		p.Position = wire.Vector2{X: 100, Y: 200}
		p.Velocity = wire.Vector2{X: -1, Y: 1}
		return p
	}

	// Every combination of present and absent optional fields.
	optional := []int{
		ProjectileFlagAI0, ProjectileFlagAI1, ProjectileFlagBanner, ProjectileFlagDamage,
		ProjectileFlagKnockback, ProjectileFlagOriginalDamage, ProjectileFlagUniqueID,
	}
	for mask := 0; mask < 1<<len(optional); mask++ {
		p := base()
		var want wire.Flags8
		for i, bit := range optional {
			if mask&(1<<i) == 0 {
				continue
			}
			want = want.Set(bit, true)
			switch bit {
			case ProjectileFlagAI0:
				p.AI[0] = 0.5
			case ProjectileFlagAI1:
				p.AI[1] = -2
			case ProjectileFlagBanner:
				p.BannerID = 300
			case ProjectileFlagDamage:
				p.Damage = 40
			case ProjectileFlagKnockback:
				p.Knockback = 6.5
			case ProjectileFlagOriginalDamage:
				p.OriginalDamage = 35
			case ProjectileFlagUniqueID:
				p.UniqueID = 0
			}
		}

		out, err := Encode(p, ToServer)
		require.NoError(t, err)
		// header(3) + index(2) + pos(8) + vel(8) + owner(1) + type(2) = 24
		require.Greater(t, len(out), 24)
		assert.Equal(t, want, wire.Flags8(out[24]), "mask %b", mask)

		got, _, err := Decode(out, ToServer)
		require.NoError(t, err)
		assert.Equal(t, p, got, "mask %b", mask)
	}
}

func TestProjectileInfoSentinel(t *testing.T) {
	p := NewProjectileInfo(1, 2, 3)
	out, err := Encode(p, ToServer)
	require.NoError(t, err)
	assert.Equal(t, 25, len(out), "no optional field is on the wire")

	got, _, err := Decode(out, ToServer)
	require.NoError(t, err)
	assert.Equal(t, NoUniqueID, got.(*ProjectileInfo).UniqueID, "absent unique id decodes to the sentinel, not zero")

	p.UniqueID = 0
	out, err = Encode(p, ToServer)
	require.NoError(t, err)
	assert.Equal(t, 27, len(out), "zero is a real unique id")
}

func TestNegativeZeroFloatsSurvive(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))

	p := NewProjectileInfo(1, 2, 3)
	p.AI[1] = negZero
	p.Knockback = negZero
	out, err := Encode(p, ToServer)
	require.NoError(t, err)
	want := wire.Flags8(0).With(ProjectileFlagAI1, ProjectileFlagKnockback)
	assert.Equal(t, want, wire.Flags8(out[24]))

	got, _, err := Decode(out, ToServer)
	require.NoError(t, err)
	pi := got.(*ProjectileInfo)
	assert.True(t, math.Signbit(float64(pi.AI[1])))
	assert.True(t, math.Signbit(float64(pi.Knockback)))
	assert.False(t, math.Signbit(float64(pi.AI[0])), "absent fields stay positive zero")

	c := &PlayerControl{Velocity: wire.Vector2{X: negZero}}
	out, err = Encode(c, ToServer)
	require.NoError(t, err)
	got, _, err = Decode(out, ToServer)
	require.NoError(t, err)
	assert.True(t, math.Signbit(float64(got.(*PlayerControl).Velocity.X)))
}

func TestPlayerControlVelocity(t *testing.T) {
	p := &PlayerControl{
		PlayerIndex:  1,
		Control:      0x13,
		Misc:         wire.Flags8(0).With(ControlMiscPulley, ControlMiscShield),
		SelectedItem: 9,
		Position:     wire.Vector2{X: 16, Y: 32},
	}
	out, err := Encode(p, ToServer)
	require.NoError(t, err)
	assert.Equal(t, 3+1+1+1+1+8, len(out))
	assert.False(t, wire.Flags8(out[5]).Get(ControlMiscVelocity))
	assertRoundTrip(t, p, ToServer)

	p.Velocity = wire.Vector2{X: 0, Y: -4}
	out, err = Encode(p, ToServer)
	require.NoError(t, err)
	assert.Equal(t, 3+1+1+1+1+8+8, len(out))
	assert.True(t, wire.Flags8(out[5]).Get(ControlMiscVelocity))
	assertRoundTrip(t, p, ToServer)

	// A stray velocity bit in Misc is not trusted on encode.
	p.Velocity = wire.Vector2{}
	p.Misc = p.Misc.Set(ControlMiscVelocity, true)
	out, err = Encode(p, ToServer)
	require.NoError(t, err)
	assert.False(t, wire.Flags8(out[5]).Get(ControlMiscVelocity))
}

func TestPlayerControlMiscCombinations(t *testing.T) {
	for v := 0; v < 256; v++ {
		p := &PlayerControl{Control: wire.Flags8(v), Misc: wire.Flags8(v).Set(ControlMiscVelocity, false)}
		if v&1 == 1 {
			p.Velocity = wire.Vector2{X: 1}
		}
		assertRoundTrip(t, p, ToServer)
	}
}

func TestEntityTeleportExtraInfo(t *testing.T) {
	p := &EntityTeleport{Flags: wire.Flags8(0).With(TeleportFlagNpc), TargetIndex: 5, Position: wire.Vector2{X: 1, Y: 2}, Style: 1}
	out, err := Encode(p, ToClient)
	require.NoError(t, err)
	assert.Equal(t, 3+1+2+8+1, len(out))
	assertRoundTrip(t, p, ToClient)

	p.ExtraInfo = 42
	out, err = Encode(p, ToClient)
	require.NoError(t, err)
	assert.Equal(t, 3+1+2+8+1+4, len(out))
	assert.True(t, wire.Flags8(out[3]).Get(TeleportFlagExtraInfo))
	assertRoundTrip(t, p, ToClient)
}

func TestPlayerInfoDifficulty(t *testing.T) {
	var p PlayerInfo
	assert.Equal(t, Softcore, p.Difficulty())
	p.Flags = p.Flags.Set(PlayerFlagExtraAccessory, true)
	p.SetDifficulty(Mediumcore)
	assert.Equal(t, Mediumcore, p.Difficulty())
	p.SetDifficulty(Hardcore)
	assert.Equal(t, Hardcore, p.Difficulty())
	assert.False(t, p.Flags.Get(PlayerFlagMediumcore))
	assert.True(t, p.HasExtraAccessory())

	for v := 0; v < 256; v++ {
		assertRoundTrip(t, &PlayerInfo{Name: "x", Flags: wire.Flags8(v)}, ToServer)
	}
}

func TestLiquidModule(t *testing.T) {
	m := &LiquidModule{Changes: []LiquidChange{
		{X: 4200, Y: 300, Amount: 255, Type: 0},
		{X: 0, Y: 65535, Amount: 1, Type: 2},
	}}
	out, err := EncodeModule(m, ToClient)
	require.NoError(t, err)
	assert.Equal(t, 3+2+2+2*6, len(out))
	assert.Equal(t, []byte{0x2C, 0x01, 0x68, 0x10}, out[7:11], "y in the low half, x in the high half")

	got, _, err := DecodeModule[*LiquidModule](out, ToClient)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	empty, err := EncodeModule(&LiquidModule{}, ToClient)
	require.NoError(t, err)
	got, _, err = DecodeModule[*LiquidModule](empty, ToClient)
	require.NoError(t, err)
	assert.Empty(t, got.Changes)

	// A count the body cannot hold is refused before allocation.
	_, _, err = Decode([]byte{7, 0, 82, 0, 0, 0xFF, 0xFF}, ToClient)
	assert.ErrorIs(t, err, wire.ErrShortBuffer)
}

func TestPingModule(t *testing.T) {
	assertRoundTrip(t, NewModulePacket(&PingModule{Position: wire.Vector2{X: 1, Y: -1}}), ToServer)
}

func TestRegistryConsistency(t *testing.T) {
	for id, ctor := range registry {
		assert.Equal(t, id, ctor().ID(), "constructor for id %d", id)
		assert.True(t, Registered(id))
	}
	for id, ctor := range moduleRegistry {
		assert.Equal(t, id, ctor().ModuleID(), "constructor for module %d", id)
		assert.True(t, ModuleRegistered(id))
	}
	assert.Nil(t, New(250))
	assert.Nil(t, NewModule(999))
	assert.Equal(t, NoUniqueID, New(IDProjectileInfo).(*ProjectileInfo).UniqueID)
}
