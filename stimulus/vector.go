// Package stimulus produces the operand/opcode sequences that drive the ALU.
//
// Two sources are provided: the built-in sequence (pretests, fixed boundary
// sets and a random pass), and stimulus scripts parsed by Script.
package stimulus

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/alugold/alu"
	"github.com/ezrec/alugold/bitfield"
)

// MaxIterations is the largest random iteration or repeat count accepted.
const MaxIterations = 1_000_000

// Vector is a single ALU stimulus.
type Vector struct {
	LineNo int        // Source line in a script, 0 for built-in vectors.
	A      alu.Word   // Operand A.
	B      alu.Word   // Operand B.
	Op     alu.Opcode // Opcode.
}

// Constants are the boundary operands for a width.
type Constants struct {
	Width uint
	Max   alu.Word // All ones.
	Zero  alu.Word
	One   alu.Word
	Four  alu.Word
	Max1  alu.Word // All ones except bit 0.
	First alu.Word // Only the MSB.
	Mix   alu.Word // Every other bit below the MSB, 0101...
}

// NewConstants computes the boundary operands for a width.
func NewConstants(width uint) (c Constants) {
	mask := alu.Word(bitfield.Mask(width))

	c = Constants{
		Width: width,
		Max:   mask,
		Zero:  0,
		One:   1 & mask,
		Four:  4 & mask,
	}

	c.Max1, _ = bitfield.SetBit(c.Max, 0, 0)

	if width > 0 {
		c.First = alu.Word(1) << (width - 1)
	}

	for n := uint(2); n <= width; n += 2 {
		c.Mix |= alu.Word(1) << (width - n)
	}

	return
}

// Defines returns the constants as script equates.
func (c Constants) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"WIDTH": fmt.Sprintf("%d", c.Width),
		"MAX":   fmt.Sprintf("%#x", c.Max),
		"ZERO":  fmt.Sprintf("%#x", c.Zero),
		"ONE":   fmt.Sprintf("%#x", c.One),
		"FOUR":  fmt.Sprintf("%#x", c.Four),
		"MAX_1": fmt.Sprintf("%#x", c.Max1),
		"FIRST": fmt.Sprintf("%#x", c.First),
		"MIX":   fmt.Sprintf("%#x", c.Mix),
	})
}
