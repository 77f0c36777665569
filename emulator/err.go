package emulator

import (
	"github.com/ezrec/alugold/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Index  int // Position in the vector sequence or golden file.
	LineNo int // Script or golden file line, 0 if unknown.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("vector %d %v", err.Index, err.Err)
	}
	return f("vector %d line %d %v", err.Index, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
