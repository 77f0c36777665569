package stimulus

import (
	"errors"

	"github.com/ezrec/alugold/translate"
)

var f = translate.From

var (
	// Script errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrRepeatSyntax       = errors.New(f(".repeat syntax"))
	ErrRepeatLonely       = errors.New(f(".repeat without .endr"))
	ErrRepeatLonelyEndr   = errors.New(f(".endr without .repeat"))
	ErrBlockNesting       = errors.New(f(".macro and .repeat blocks do not nest"))
	ErrOperandExtra       = errors.New(f("excessive operands"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrWidth              = errors.New(f("width out of range"))
)

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
