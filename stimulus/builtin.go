package stimulus

import (
	"iter"
	"math/rand"
	"slices"

	"github.com/ezrec/alugold/alu"
	"github.com/ezrec/alugold/internal"
)

// pair is an operand pair used by the fixed sets.
type pair struct {
	a, b alu.Word
}

// nzvcCheck exercises each write-back opcode, dumping all flags after each
// partial write-back.
func nzvcCheck(c Constants) []Vector {
	var vecs []Vector

	dump := []Vector{
		{A: c.Zero, B: c.Max, Op: alu.ALU_UPDATE_NZVC},
		{A: c.Max, B: c.Zero, Op: alu.ALU_UPDATE_NZVC},
	}

	for n, op := range []alu.Opcode{
		alu.ALU_UPDATE_NZVC,
		alu.ALU_UPDATE_NZV,
		alu.ALU_UPDATE_NZC,
		alu.ALU_UPDATE_Z,
		alu.ALU_UPDATE_C,
	} {
		vecs = append(vecs,
			Vector{A: c.Zero, B: c.Max, Op: op},
			Vector{A: c.Max, B: c.Zero, Op: op},
			Vector{A: c.Zero, B: c.Max, Op: op},
		)
		if n > 0 {
			vecs = append(vecs, dump...)
		}
	}

	return vecs
}

// Pretests returns the pretest sequence: flag setup followed by two rounds
// of write-back checks.
func Pretests(width uint) iter.Seq[Vector] {
	c := NewConstants(width)

	var vecs []Vector
	vecs = append(vecs,
		Vector{A: c.Max, B: c.Four, Op: alu.ALU_NOT},
		Vector{A: c.Mix, B: c.Four, Op: alu.ALU_ROL},
		Vector{A: c.Max, B: c.Four, Op: alu.ALU_NOT},
	)
	vecs = append(vecs, nzvcCheck(c)...)
	vecs = append(vecs, Vector{A: c.Mix, B: c.Four, Op: alu.ALU_ROL})
	vecs = append(vecs, nzvcCheck(c)...)

	return slices.Values(vecs)
}

// harness runs an opcode on each pair twice, once after a ROL and once
// after a NOT, dumping the flags after each run.
func harness(c Constants, op alu.Opcode, pairs []pair) (vecs []Vector) {
	for _, p := range pairs {
		vecs = append(vecs,
			Vector{A: c.Mix, B: c.Four, Op: alu.ALU_ROL},
			Vector{A: p.a, B: p.b, Op: op},
			Vector{A: c.Zero, B: c.Four, Op: alu.ALU_UPDATE_NZVC},
			Vector{A: c.Max, B: c.Four, Op: alu.ALU_UPDATE_NZVC},
			Vector{A: c.Max, B: c.Four, Op: alu.ALU_NOT},
			Vector{A: p.a, B: p.b, Op: op},
			Vector{A: c.Zero, B: c.Four, Op: alu.ALU_UPDATE_NZVC},
			Vector{A: c.Max, B: c.Four, Op: alu.ALU_UPDATE_NZVC},
		)
	}
	return
}

// Fixed returns the boundary case sequence for every opcode.
func Fixed(width uint) iter.Seq[Vector] {
	c := NewConstants(width)

	standard := []pair{{c.Zero, c.Four}, {c.Max, c.Four}, {c.One, c.Four}, {c.First, c.Four}}
	addition := []pair{{c.Zero, c.Zero}, {c.Max, c.Max}, {c.Zero, c.Max}, {c.One, c.Four}, {c.Max1, c.Max1}}
	and := []pair{{c.Max, c.Four}, {c.Zero, c.Max}, {c.Max, c.Max1}}
	rol := []pair{{c.First, c.Four}, {c.Four, c.Max}}
	ror := []pair{{c.One, c.Four}, {c.Four, c.Max}, {c.First, c.Four}}

	sets := []struct {
		op    alu.Opcode
		pairs []pair
	}{
		{alu.ALU_TRANSFER, standard},
		{alu.ALU_NOT, standard},
		{alu.ALU_ADD, addition},
		{alu.ALU_AND, and},
		{alu.ALU_ROL, rol},
		{alu.ALU_ROR, ror},
		{alu.ALU_C0, standard},
		{alu.ALU_C1, standard},
		{alu.ALU_RESERVED_13, standard},
		{alu.ALU_RESERVED_14, standard},
		{alu.ALU_RESERVED_15, standard},
	}

	var vecs []Vector
	for _, set := range sets {
		vecs = append(vecs, harness(c, set.op, set.pairs)...)
	}

	return slices.Values(vecs)
}

// Random returns iterations pairs of random vectors. The first of each pair
// uses a computational or reserved opcode, the second a write-back opcode.
// Operands are uniform over the width.
func Random(width uint, iterations int, rng *rand.Rand) iter.Seq[Vector] {
	limit := int64(1) << width

	return func(yield func(Vector) bool) {
		for range iterations {
			op := alu.Opcode(rng.Intn(11))
			if op > alu.ALU_C1 {
				// 8..10 become 13..15
				op += alu.ALU_RESERVED_13 - alu.ALU_UPDATE_NZVC
			}
			vec := Vector{
				A:  alu.Word(rng.Int63n(limit)),
				B:  alu.Word(rng.Int63n(limit)),
				Op: op,
			}
			if !yield(vec) {
				return
			}

			vec = Vector{
				A:  alu.Word(rng.Int63n(limit)),
				B:  alu.Word(rng.Int63n(limit)),
				Op: alu.ALU_UPDATE_NZVC + alu.Opcode(rng.Intn(5)),
			}
			if !yield(vec) {
				return
			}
		}
	}
}

// Standard returns the complete built-in sequence: pretests, fixed sets,
// then the random pass.
func Standard(width uint, iterations int, rng *rand.Rand) iter.Seq[Vector] {
	return internal.IterSeqConcat(
		Pretests(width),
		Fixed(width),
		Random(width, iterations, rng),
	)
}
