package alu

import (
	"errors"

	"github.com/ezrec/alugold/translate"
)

var f = translate.From

var (
	// Evaluation errors
	ErrAlu    = errors.New(f("select number illegal"))
	ErrWidth  = errors.New(f("width out of range"))
	ErrUpdate = errors.New(f("flag write-back"))
)

// ErrOpcode identifies the opcode of a failed evaluation.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("opcode %d (%v)", int(eo), Opcode(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrOpcodeName is returned for a word that is neither a mnemonic nor a number.
type ErrOpcodeName string

func (err ErrOpcodeName) Error() string {
	return f("'%v' is not an opcode", string(err))
}
