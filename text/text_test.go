package text

import (
	"strings"
	"testing"

	"github.com/opd-ai/orion/limits"
	"github.com/opd-ai/orion/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v NetworkText) NetworkText {
	t.Helper()
	w := wire.NewWriter(nil)
	require.NoError(t, v.Encode(w))

	r := wire.NewReader(w.Bytes())
	got := Decode(r)
	require.NoError(t, r.Err())
	require.Equal(t, w.Len(), r.Offset(), "decode must consume exactly what encode wrote")
	return got
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value NetworkText
	}{
		{name: "empty", value: Empty},
		{name: "literal", value: NewLiteral("You were kicked.")},
		{name: "long literal", value: NewLiteral(strings.Repeat("x", 1000))},
		{name: "formattable no subs", value: NewFormattable("{0}")},
		{name: "formattable", value: NewFormattable("{0} joined {1}", NewLiteral("Alice"), NewLiteral("the game"))},
		{name: "localized", value: NewLocalized("LegacyMultiplayer.4")},
		{
			name: "nested",
			value: NewLocalized("Game.Joined",
				NewFormattable("[{0}]", NewLocalized("Team.Red")),
				NewLiteral("Bob")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip(t, tt.value)
			assert.True(t, tt.value.Equal(got), "got %+v, want %+v", got, tt.value)
			assert.Equal(t, tt.value.Hash(), got.Hash())
		})
	}
}

func TestWireLayout(t *testing.T) {
	w := wire.NewWriter(nil)
	require.NoError(t, NewFormattable("{0}", NewLiteral("a")).Encode(w))
	assert.Equal(t, []byte{1, 3, '{', '0', '}', 1, 0, 1, 'a'}, w.Bytes())

	w.Reset()
	require.NoError(t, NewLiteral("hi").Encode(w))
	assert.Equal(t, []byte{0, 2, 'h', 'i'}, w.Bytes(), "literal carries no count byte")
}

func TestStructuralEquality(t *testing.T) {
	a := NewFormattable("{0} {1}", NewLiteral("x"), NewLiteral("y"))
	b := NewFormattable("{0} {1}", NewLiteral("x"), NewLiteral("y"))
	swapped := NewFormattable("{0} {1}", NewLiteral("y"), NewLiteral("x"))
	fewer := NewFormattable("{0} {1}", NewLiteral("x"))
	otherMode := NewLocalized("{0} {1}", NewLiteral("x"), NewLiteral("y"))

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	assert.False(t, a.Equal(swapped))
	assert.NotEqual(t, a.Hash(), swapped.Hash())
	assert.False(t, a.Equal(fewer))
	assert.False(t, a.Equal(otherMode))

	assert.True(t, Empty.Equal(NewLiteral("")))
	assert.True(t, Empty.IsEmpty())
	assert.True(t, NetworkText{}.IsEmpty())
	assert.False(t, NewLiteral(" ").IsEmpty())
}

func TestDecodeInvalidMode(t *testing.T) {
	r := wire.NewReader([]byte{7, 0})
	got := Decode(r)
	assert.ErrorIs(t, r.Err(), ErrInvalidMode)
	assert.True(t, got.IsEmpty())
}

func TestDecodeTruncated(t *testing.T) {
	// Formattable with a count of 2 but only one substitution present.
	r := wire.NewReader([]byte{1, 0, 2, 0, 1, 'a'})
	Decode(r)
	assert.ErrorIs(t, r.Err(), wire.ErrShortBuffer)
}

func TestDepthGuard(t *testing.T) {
	build := func(depth int) NetworkText {
		v := NewLiteral("leaf")
		for i := 0; i < depth; i++ {
			v = NewFormattable("{0}", v)
		}
		return v
	}

	ok := build(limits.MaxTextDepth)
	got := roundTrip(t, ok)
	assert.True(t, ok.Equal(got))

	tooDeep := build(limits.MaxTextDepth + 1)
	assert.ErrorIs(t, tooDeep.Encode(wire.NewWriter(nil)), ErrTooDeep)

	// Hand-build the same nesting on the wire and make sure decode refuses it.
	w := wire.NewWriter(nil)
	for i := 0; i < limits.MaxTextDepth+1; i++ {
		w.Byte(byte(Formattable))
		w.Str("{0}")
		w.Byte(1)
	}
	NewLiteral("leaf").MustEncode(w)
	r := wire.NewReader(w.Bytes())
	Decode(r)
	assert.ErrorIs(t, r.Err(), ErrTooDeep)
}

func TestTooManySubstitutions(t *testing.T) {
	subs := make([]NetworkText, 256)
	v := NewFormattable("x", subs...)
	assert.ErrorIs(t, v.Encode(wire.NewWriter(nil)), ErrTooManySubstitutions)
	assert.Panics(t, func() { v.MustEncode(wire.NewWriter(nil)) })
}

func TestFormat(t *testing.T) {
	lookup := func(key string) string {
		return map[string]string{
			"Game.Joined": "{0} has joined.",
			"Team.Red":    "red team",
		}[key]
	}

	tests := []struct {
		name  string
		value NetworkText
		want  string
	}{
		{name: "literal", value: NewLiteral("hello {0}"), want: "hello {0}"},
		{name: "formattable", value: NewFormattable("{1}, {0}", NewLiteral("a"), NewLiteral("b")), want: "b, a"},
		{name: "localized", value: NewLocalized("Game.Joined", NewLiteral("Alice")), want: "Alice has joined."},
		{name: "unresolved key", value: NewLocalized("Missing.Key"), want: "Missing.Key"},
		{
			name:  "nested localized",
			value: NewFormattable("{0}!", NewLocalized("Team.Red")),
			want:  "red team!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Format(lookup))
		})
	}

	assert.Equal(t, "Game.Joined", NewLocalized("Game.Joined").String())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "literal", Literal.String())
	assert.Equal(t, "formattable", Formattable.String())
	assert.Equal(t, "localized", Localized.String())
	assert.Equal(t, "mode(9)", Mode(9).String())
}
