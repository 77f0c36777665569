// Package golden reads and writes ALU golden files.
//
// A golden file starts with the operand width in decimal on its own line.
// Each following line is one evaluation, all numbers in binary, MSB first:
//
//	<in_a> <in_b> <opcode> <output> <NZVC>
//
// Operands and output are width digits, the opcode is 4 digits and the
// flags are the 4 digits N, Z, V and C.
package golden

import (
	"strings"

	"github.com/ezrec/alugold/alu"
	"github.com/ezrec/alugold/bitfield"
)

const (
	OPCODE_DIGITS = 4 // Digits in the opcode field.
	FLAG_DIGITS   = 4 // Digits in the flags field.
)

// Record is one evaluation in a golden file.
type Record struct {
	A     alu.Word   // Operand A.
	B     alu.Word   // Operand B.
	Op    alu.Opcode // Opcode.
	Out   alu.Word   // Output word.
	Flags alu.Flags  // Flag register after the operation.
}

// Masked returns the record as it would be read back from a golden file of
// the width.
func (rec Record) Masked(width uint) Record {
	mask := alu.Word(bitfield.Mask(width))
	rec.A &= mask
	rec.B &= mask
	rec.Op &= alu.OPCODE_COUNT - 1
	rec.Out &= mask
	return rec
}

// FormatNumber renders the low width bits of value as binary digits, MSB
// first.
func FormatNumber(value alu.Word, width uint) string {
	var sb strings.Builder
	sb.Grow(int(width))
	for n := range width {
		if bitfield.Bit(value, width-1-n) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseNumber parses exactly width binary digits, MSB first.
func ParseNumber(text string, width uint) (value alu.Word, err error) {
	if uint(len(text)) != width {
		err = ErrLength
		return
	}

	for _, c := range []byte(text) {
		value <<= 1
		switch c {
		case '0':
		case '1':
			value |= 1
		default:
			err = ErrDigits
			return
		}
	}

	return
}
