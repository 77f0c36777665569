// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package alu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/alugold/bitfield"
)

var _alu_defines = func() map[string]string {
	defines := map[string]string{
		"WIDTH_MIN":  fmt.Sprintf("%d", WIDTH_MIN),
		"WIDTH_MAX":  fmt.Sprintf("%d", WIDTH_MAX),
		"FLAG_POS_N": fmt.Sprintf("%d", FLAG_POS_N),
		"FLAG_POS_Z": fmt.Sprintf("%d", FLAG_POS_Z),
		"FLAG_POS_V": fmt.Sprintf("%d", FLAG_POS_V),
		"FLAG_POS_C": fmt.Sprintf("%d", FLAG_POS_C),
	}
	for _, op := range Opcodes() {
		defines["ALU_"+strings.ToUpper(op.String())] = fmt.Sprintf("%d", int(op))
	}
	return defines
}()

// Alu is the simulation context for one ALU and its flag register.
type Alu struct {
	Verbose bool // Set to enable verbose logging.

	Evaluations int // Successful evaluations since the last reset.

	flags Flags // Condition flag register.
}

// handler computes the output word of one opcode, updating the flag
// register as the opcode requires. Operands are already masked for
// computational opcodes.
type handler func(alu *Alu, a, b Word, width uint) (out Word, err error)

var dispatch = [OPCODE_COUNT]handler{
	ALU_TRANSFER:    (*Alu).doTransfer,
	ALU_NOT:         (*Alu).doNot,
	ALU_ADD:         (*Alu).doAdd,
	ALU_AND:         (*Alu).doAnd,
	ALU_ROL:         (*Alu).doRol,
	ALU_ROR:         (*Alu).doRor,
	ALU_C0:          (*Alu).doCarry0,
	ALU_C1:          (*Alu).doCarry1,
	ALU_UPDATE_NZVC: (*Alu).doUpdateNZVC,
	ALU_UPDATE_NZV:  (*Alu).doUpdateNZV,
	ALU_UPDATE_NZC:  (*Alu).doUpdateNZC,
	ALU_UPDATE_Z:    (*Alu).doUpdateZ,
	ALU_UPDATE_C:    (*Alu).doUpdateC,
	ALU_RESERVED_13: (*Alu).doReserved,
	ALU_RESERVED_14: (*Alu).doReserved,
	ALU_RESERVED_15: (*Alu).doReserved,
}

// NewAlu creates a new ALU with all flags clear.
func NewAlu() (alu *Alu) {
	alu = &Alu{}

	return
}

// Defines for the ALU.
func (alu *Alu) Defines() iter.Seq2[string, string] {
	return maps.All(_alu_defines)
}

// Reset clears the flag register and the evaluation counter.
func (alu *Alu) Reset() {
	if alu.Verbose {
		log.Printf("alu: reset")
	}

	alu.flags = Flags{}
	alu.Evaluations = 0
}

// Flags returns the current flag register.
func (alu *Alu) Flags() Flags {
	return alu.flags
}

// SetFlags seeds the flag register.
func (alu *Alu) SetFlags(flags Flags) {
	alu.flags = flags
}

// Evaluate performs one ALU operation on words of the given width.
//
// The flags returned are the register contents after the operation. On
// error the register is left as it was, and neither out nor flags are
// meaningful.
func (alu *Alu) Evaluate(inA, inB Word, op Opcode, width uint) (out Word, flags Flags, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(op), err)
		}
	}()

	if width < WIDTH_MIN || width > WIDTH_MAX {
		err = ErrWidth
		return
	}

	if !op.Valid() {
		err = ErrAlu
		return
	}

	a, b := inA, inB
	if op.Class() == CLASS_COMPUTE {
		mask := Word(bitfield.Mask(width))
		a &= mask
		b &= mask
	}

	out, err = dispatch[op](alu, a, b, width)
	if err != nil {
		return
	}

	flags = alu.flags
	alu.Evaluations++

	if alu.Verbose {
		log.Printf("alu: %v %#x %#x /%d -> %#x %v", op, inA, inB, width, out, flags)
	}

	return
}

// setNZ updates N and Z from a masked result.
func (alu *Alu) setNZ(out Word, width uint) {
	alu.flags.N = negativeCheck(out, width)
	alu.flags.Z = zeroCheck(out)
}

// carryIn returns the current carry as a bit.
func (alu *Alu) carryIn() uint64 {
	if alu.flags.C {
		return 1
	}
	return 0
}

// ones returns an all ones word of the width.
func ones(width uint) Word {
	return Word(bitfield.Mask(width))
}

func (alu *Alu) doTransfer(a, b Word, width uint) (out Word, err error) {
	out = a
	alu.setNZ(out, width)
	alu.flags.V = false
	return
}

func (alu *Alu) doNot(a, b Word, width uint) (out Word, err error) {
	out = ^a & ones(width)
	alu.setNZ(out, width)
	alu.flags.V = false
	alu.flags.C = true
	return
}

func (alu *Alu) doAdd(a, b Word, width uint) (out Word, err error) {
	sum := uint64(a) + uint64(b) + alu.carryIn()
	out = Word(sum) & ones(width)
	alu.flags.C = carryCheck(sum, width)
	alu.setNZ(out, width)
	alu.flags.V = overflowAdd(a, b, out, width)
	return
}

func (alu *Alu) doAnd(a, b Word, width uint) (out Word, err error) {
	out = a & b
	alu.setNZ(out, width)
	alu.flags.V = false
	return
}

// doRol shifts left through the carry: the carry enters bit 0 and the bit
// shifted out of the width becomes the new carry.
func (alu *Alu) doRol(a, b Word, width uint) (out Word, err error) {
	shifted := (uint64(a) << 1) | alu.carryIn()
	out = Word(shifted) & ones(width)
	alu.flags.C = carryCheck(shifted, width)
	alu.flags.V = overflowRol(a, width)
	alu.setNZ(out, width)
	return
}

// doRor shifts right through the carry: the carry enters the MSB and bit 0
// becomes the new carry. V is not affected.
func (alu *Alu) doRor(a, b Word, width uint) (out Word, err error) {
	out = ((a >> 1) | Word(alu.carryIn()<<(width-1))) & ones(width)
	alu.setNZ(out, width)
	alu.flags.C = bitfield.Bit(a, 0)
	return
}

func (alu *Alu) doCarry0(a, b Word, width uint) (out Word, err error) {
	out = ones(width)
	alu.flags.C = false
	return
}

func (alu *Alu) doCarry1(a, b Word, width uint) (out Word, err error) {
	out = ones(width)
	alu.flags.C = true
	return
}

// writeBack copies the word and overwrites the listed flag positions with
// the current flag values. The flag register is only read.
func (alu *Alu) writeBack(in Word, positions ...uint) (out Word, err error) {
	out = in
	for _, pos := range positions {
		out, err = bitfield.Put(out, pos, alu.flags.Get(pos))
		if err != nil {
			err = errors.Join(ErrUpdate, err)
			return
		}
	}
	return
}

func (alu *Alu) doUpdateNZVC(a, b Word, width uint) (Word, error) {
	return alu.writeBack(a, FLAG_POS_N, FLAG_POS_Z, FLAG_POS_V, FLAG_POS_C)
}

func (alu *Alu) doUpdateNZV(a, b Word, width uint) (Word, error) {
	return alu.writeBack(a, FLAG_POS_N, FLAG_POS_Z, FLAG_POS_V)
}

func (alu *Alu) doUpdateNZC(a, b Word, width uint) (Word, error) {
	return alu.writeBack(a, FLAG_POS_N, FLAG_POS_Z, FLAG_POS_C)
}

func (alu *Alu) doUpdateZ(a, b Word, width uint) (Word, error) {
	return alu.writeBack(a, FLAG_POS_Z)
}

func (alu *Alu) doUpdateC(a, b Word, width uint) (Word, error) {
	return alu.writeBack(a, FLAG_POS_C)
}

// doReserved is shared by the unassigned opcodes 13..15.
func (alu *Alu) doReserved(a, b Word, width uint) (out Word, err error) {
	out = ones(width)
	return
}
