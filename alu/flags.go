package alu

import (
	"github.com/ezrec/alugold/bitfield"
)

// Bit positions of the flags when written back into a word.
const (
	FLAG_POS_C = 0
	FLAG_POS_V = 1
	FLAG_POS_Z = 2
	FLAG_POS_N = 3
)

// Flags is the condition flag register.
type Flags struct {
	N bool // Negative
	Z bool // Zero
	V bool // oVerflow
	C bool // Carry
}

// Get returns the flag stored at a write-back bit position.
func (fl Flags) Get(position uint) bool {
	switch position {
	case FLAG_POS_N:
		return fl.N
	case FLAG_POS_Z:
		return fl.Z
	case FLAG_POS_V:
		return fl.V
	case FLAG_POS_C:
		return fl.C
	}
	return false
}

// Bits returns the flags packed as NZVC, N in bit 3.
func (fl Flags) Bits() (bits uint8) {
	for _, pos := range []uint{FLAG_POS_N, FLAG_POS_Z, FLAG_POS_V, FLAG_POS_C} {
		if fl.Get(pos) {
			bits |= 1 << pos
		}
	}
	return
}

// FlagsFromBits unpacks an NZVC nibble.
func FlagsFromBits(bits uint8) Flags {
	return Flags{
		N: bitfield.Bit(uint32(bits), FLAG_POS_N),
		Z: bitfield.Bit(uint32(bits), FLAG_POS_Z),
		V: bitfield.Bit(uint32(bits), FLAG_POS_V),
		C: bitfield.Bit(uint32(bits), FLAG_POS_C),
	}
}

// String returns the flags as four binary digits, NZVC.
func (fl Flags) String() string {
	digits := []byte("0000")
	for n, set := range []bool{fl.N, fl.Z, fl.V, fl.C} {
		if set {
			digits[n] = '1'
		}
	}
	return string(digits)
}

// zeroCheck: the result is zero.
func zeroCheck(out Word) bool {
	return out == 0
}

// negativeCheck: the sign bit of the result is set.
func negativeCheck(out Word, width uint) bool {
	return bitfield.Bit(out, width-1)
}

// carryCheck tests the bit just above the width of an unmasked addition or
// left shift.
func carryCheck(unmasked uint64, width uint) bool {
	return (unmasked>>width)&1 != 0
}

// overflowAdd: both operands carry the same sign and the result does not.
func overflowAdd(a, b, out Word, width uint) bool {
	sign := width - 1
	if bitfield.Bit(a, sign) != bitfield.Bit(b, sign) {
		return false
	}
	return bitfield.Bit(a, sign) != bitfield.Bit(out, sign)
}

// overflowRol: the two most significant bits differ, so the sign changes on
// a left shift. A single bit word has no second bit and never overflows.
func overflowRol(a Word, width uint) bool {
	if width < 2 {
		return false
	}
	return bitfield.Bit(a, width-1) != bitfield.Bit(a, width-2)
}
