package alu

import (
	"strconv"
)

// Word is a bit pattern of a caller-chosen width.
type Word uint32

// Operand width limits, in bits.
const (
	WIDTH_MIN = 1
	WIDTH_MAX = 31
)

// Opcode selects one of the 16 ALU operations.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	ALU_TRANSFER    = Opcode(0)  // transfer
	ALU_NOT         = Opcode(1)  // not
	ALU_ADD         = Opcode(2)  // add
	ALU_AND         = Opcode(3)  // and
	ALU_ROL         = Opcode(4)  // rol
	ALU_ROR         = Opcode(5)  // ror
	ALU_C0          = Opcode(6)  // c0
	ALU_C1          = Opcode(7)  // c1
	ALU_UPDATE_NZVC = Opcode(8)  // update_nzvc
	ALU_UPDATE_NZV  = Opcode(9)  // update_nzv
	ALU_UPDATE_NZC  = Opcode(10) // update_nzc
	ALU_UPDATE_Z    = Opcode(11) // update_z
	ALU_UPDATE_C    = Opcode(12) // update_c
	ALU_RESERVED_13 = Opcode(13) // op13
	ALU_RESERVED_14 = Opcode(14) // op14
	ALU_RESERVED_15 = Opcode(15) // op15
)

// OPCODE_COUNT is the number of defined opcodes.
const OPCODE_COUNT = 16

// OpcodeClass groups opcodes by how they treat the flag register.
type OpcodeClass int

//go:generate go tool stringer -linecomment -type=OpcodeClass
const (
	CLASS_COMPUTE   = OpcodeClass(0) // compute
	CLASS_WRITEBACK = OpcodeClass(1) // writeback
	CLASS_RESERVED  = OpcodeClass(2) // reserved
	CLASS_INVALID   = OpcodeClass(3) // invalid
)

// Class returns the opcode class.
func (op Opcode) Class() OpcodeClass {
	switch {
	case op >= ALU_TRANSFER && op <= ALU_C1:
		return CLASS_COMPUTE
	case op >= ALU_UPDATE_NZVC && op <= ALU_UPDATE_C:
		return CLASS_WRITEBACK
	case op >= ALU_RESERVED_13 && op <= ALU_RESERVED_15:
		return CLASS_RESERVED
	}

	return CLASS_INVALID
}

// Valid returns true for opcodes 0 through 15.
func (op Opcode) Valid() bool {
	return op.Class() != CLASS_INVALID
}

// Opcodes returns all defined opcodes, in numeric order.
func Opcodes() (ops []Opcode) {
	for n := range OPCODE_COUNT {
		ops = append(ops, Opcode(n))
	}
	return
}

var mnemonicMap = func() map[string]Opcode {
	m := make(map[string]Opcode, OPCODE_COUNT)
	for _, op := range Opcodes() {
		m[op.String()] = op
	}
	// Short forms of the flag update mnemonics.
	m["nzvc"] = ALU_UPDATE_NZVC
	m["nzv"] = ALU_UPDATE_NZV
	m["nzc"] = ALU_UPDATE_NZC
	m["z"] = ALU_UPDATE_Z
	m["c"] = ALU_UPDATE_C
	return m
}()

// ParseOpcode converts a mnemonic or a number into an Opcode.
// Numbers outside 0..15 are returned as-is, and are rejected later by
// Evaluate.
func ParseOpcode(word string) (op Opcode, err error) {
	op, ok := mnemonicMap[word]
	if ok {
		return
	}

	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrOpcodeName(word)
		return
	}

	op = Opcode(v64)
	return
}
