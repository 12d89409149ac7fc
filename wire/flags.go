package wire

// Flags8 is a byte whose eight bits are independent booleans.
// Bit k is the value 1<<k.
type Flags8 uint8

// Get reports whether bit k is set. Bits outside 0..7 are never set.
func (f Flags8) Get(k int) bool {
	if k < 0 || k > 7 {
		return false
	}
	return f&(1<<uint(k)) != 0
}

// Set returns f with bit k set to v.
func (f Flags8) Set(k int, v bool) Flags8 {
	if k < 0 || k > 7 {
		return f
	}
	if v {
		return f | 1<<uint(k)
	}
	return f &^ (1 << uint(k))
}

// With returns f with every listed bit set.
func (f Flags8) With(bits ...int) Flags8 {
	for _, k := range bits {
		f = f.Set(k, true)
	}
	return f
}

// FlagsOf builds a Flags8 from up to eight booleans, bit 0 first.
func FlagsOf(bits ...bool) Flags8 {
	var f Flags8
	for k, v := range bits {
		if k > 7 {
			break
		}
		f = f.Set(k, v)
	}
	return f
}
