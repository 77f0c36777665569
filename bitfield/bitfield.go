// Package bitfield provides single-bit access to fixed-width words.
//
// Words are at most 32 bits wide. Callers that model narrower buses keep the
// width themselves and use Mask to discard the bits above it.
package bitfield

// BIT_LIMIT is the highest bit position SetBit accepts.
const BIT_LIMIT = 31

// Word is any type whose underlying representation is a 32-bit unsigned
// integer.
type Word interface {
	~uint32
}

// PowerOfTwo returns 2**exponent. There is no bounds check; exponents of 64
// or more yield 0.
func PowerOfTwo(exponent uint) uint64 {
	if exponent == 0 {
		return 1
	}
	return uint64(1) << exponent
}

// Mask returns a word with the lowest width bits set.
func Mask(width uint) uint32 {
	return uint32(PowerOfTwo(width) - 1)
}

// Bit returns true if the bit at position is set.
func Bit[T Word](word T, position uint) bool {
	return (uint64(word)>>position)&1 != 0
}

// SetBit sets (value 1) or clears (value 0) the bit at position.
// On error the word is returned unmodified.
func SetBit[T Word](word T, position uint, value uint) (out T, err error) {
	out = word

	if position > BIT_LIMIT {
		err = &ErrUpdate{Position: position, Value: value, Err: ErrPosition}
		return
	}

	switch value {
	case 0:
		out = word &^ (T(1) << position)
	case 1:
		out = word | (T(1) << position)
	default:
		err = &ErrUpdate{Position: position, Value: value, Err: ErrValue}
	}

	return
}

// Put is SetBit for a boolean bit value.
func Put[T Word](word T, position uint, set bool) (T, error) {
	var value uint
	if set {
		value = 1
	}
	return SetBit(word, position, value)
}
