// Package text implements NetworkText, the recursive mode-tagged text value
// the protocol uses for every human-readable string a server sends: kick
// reasons, status lines, chat messages.
//
// A value is a literal string, a format string with substitutions, or a
// localization key with substitutions. Substitutions are NetworkText values
// themselves, so a value is a tree.
//
// Wire layout:
//
//	[mode: u8][text: string] if mode != Literal: [count: u8][count × NetworkText]
package text

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/opd-ai/orion/limits"
	"github.com/opd-ai/orion/wire"
)

// Mode selects how Text is interpreted.
type Mode uint8

const (
	// Literal text is displayed verbatim and has no substitutions.
	Literal Mode = iota
	// Formattable text is a format string with {0}, {1}, ... placeholders.
	Formattable
	// Localized text is a resource key resolved by the receiver.
	Localized
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Literal:
		return "literal"
	case Formattable:
		return "formattable"
	case Localized:
		return "localized"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

var (
	// ErrInvalidMode indicates an unknown mode byte on the wire
	ErrInvalidMode = errors.New("invalid network text mode")

	// ErrTooDeep indicates substitutions nested beyond limits.MaxTextDepth
	ErrTooDeep = errors.New("network text nested too deep")

	// ErrTooManySubstitutions indicates more substitutions than a count byte holds
	ErrTooManySubstitutions = errors.New("too many substitutions")
)

// NetworkText is a recursive, mode-tagged text value.
// The zero value is the empty literal.
type NetworkText struct {
	Mode          Mode
	Text          string
	Substitutions []NetworkText
}

// Empty is the canonical empty value.
var Empty = NetworkText{}

// NewLiteral returns a literal value.
func NewLiteral(s string) NetworkText {
	return NetworkText{Mode: Literal, Text: s}
}

// NewFormattable returns a format string with substitutions.
func NewFormattable(format string, subs ...NetworkText) NetworkText {
	return NetworkText{Mode: Formattable, Text: format, Substitutions: subs}
}

// NewLocalized returns a localization key with substitutions.
func NewLocalized(key string, subs ...NetworkText) NetworkText {
	return NetworkText{Mode: Localized, Text: key, Substitutions: subs}
}

// IsEmpty reports whether t is structurally equal to Empty.
func (t NetworkText) IsEmpty() bool {
	return t.Mode == Literal && t.Text == "" && len(t.Substitutions) == 0
}

// Equal reports whether t and o have the same mode, text and ordered
// substitutions. Substitutions of a literal are ignored, as they are never
// encoded.
func (t NetworkText) Equal(o NetworkText) bool {
	if t.Mode != o.Mode || t.Text != o.Text {
		return false
	}
	if t.Mode == Literal {
		return true
	}
	if len(t.Substitutions) != len(o.Substitutions) {
		return false
	}
	for i := range t.Substitutions {
		if !t.Substitutions[i].Equal(o.Substitutions[i]) {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal.
func (t NetworkText) Hash() uint64 {
	d := xxhash.New()
	t.hashInto(d)
	return d.Sum64()
}

func (t NetworkText) hashInto(d *xxhash.Digest) {
	var hdr [9]byte
	hdr[0] = byte(t.Mode)
	n := uint64(len(t.Text))
	for i := 0; i < 8; i++ {
		hdr[1+i] = byte(n >> (8 * i))
	}
	_, _ = d.Write(hdr[:])
	_, _ = d.WriteString(t.Text)
	if t.Mode == Literal {
		return
	}
	_, _ = d.Write([]byte{byte(len(t.Substitutions))})
	for _, s := range t.Substitutions {
		s.hashInto(d)
	}
}

// Encode appends t to w. Substitutions past 255 cannot be represented and
// are reported as an error; w is left unchanged in that case.
func (t NetworkText) Encode(w *wire.Writer) error {
	if err := t.validate(0); err != nil {
		return err
	}
	t.encode(w)
	return nil
}

// MustEncode is Encode for values known to be valid. It panics otherwise.
func (t NetworkText) MustEncode(w *wire.Writer) {
	if err := t.Encode(w); err != nil {
		panic("text: " + err.Error())
	}
}

func (t NetworkText) validate(depth int) error {
	if t.Mode > Localized {
		return fmt.Errorf("%w: %d", ErrInvalidMode, uint8(t.Mode))
	}
	if t.Mode == Literal {
		return nil
	}
	if len(t.Substitutions) > 0xFF {
		return fmt.Errorf("%w: %d", ErrTooManySubstitutions, len(t.Substitutions))
	}
	if depth >= limits.MaxTextDepth && len(t.Substitutions) > 0 {
		return ErrTooDeep
	}
	for _, s := range t.Substitutions {
		if err := s.validate(depth + 1); err != nil {
			return err
		}
	}
	return nil
}

func (t NetworkText) encode(w *wire.Writer) {
	w.Byte(byte(t.Mode))
	w.Str(t.Text)
	if t.Mode == Literal {
		return
	}
	w.Byte(byte(len(t.Substitutions)))
	for _, s := range t.Substitutions {
		s.encode(w)
	}
}

// Decode reads one value from r. Faults are recorded on r.
func Decode(r *wire.Reader) NetworkText {
	return decode(r, 0)
}

func decode(r *wire.Reader, depth int) NetworkText {
	mode := Mode(r.Byte())
	s := r.Str()
	if r.Err() != nil {
		return Empty
	}
	if mode > Localized {
		r.Fail("network text", fmt.Errorf("%w: %d", ErrInvalidMode, uint8(mode)))
		return Empty
	}
	t := NetworkText{Mode: mode, Text: s}
	if mode == Literal {
		return t
	}

	count := int(r.Byte())
	if count > 0 && depth >= limits.MaxTextDepth {
		r.Fail("network text", ErrTooDeep)
		return Empty
	}
	if count > 0 {
		t.Substitutions = make([]NetworkText, 0, count)
	}
	for i := 0; i < count && r.Err() == nil; i++ {
		t.Substitutions = append(t.Substitutions, decode(r, depth+1))
	}
	if r.Err() != nil {
		return Empty
	}
	return t
}

// Format renders t. Localized keys are resolved through lookup; a nil lookup,
// or one that returns "", leaves the key in place.
func (t NetworkText) Format(lookup func(key string) string) string {
	s := t.Text
	switch t.Mode {
	case Literal:
		return s
	case Localized:
		if lookup != nil {
			if v := lookup(s); v != "" {
				s = v
			}
		}
	}
	if len(t.Substitutions) == 0 {
		return s
	}

	pairs := make([]string, 0, 2*len(t.Substitutions))
	for i, sub := range t.Substitutions {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", sub.Format(lookup))
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// String renders t without localization.
func (t NetworkText) String() string {
	return t.Format(nil)
}
