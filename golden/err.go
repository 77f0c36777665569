package golden

import (
	"errors"

	"github.com/ezrec/alugold/translate"
)

var f = translate.From

var (
	ErrHeader     = errors.New(f("golden header invalid"))
	ErrWrite      = errors.New(f("could not write file"))
	ErrFieldCount = errors.New(f("expected 5 fields"))
	ErrDigits     = errors.New(f("binary digits expected"))
	ErrLength     = errors.New(f("field length does not match width"))
)

// ErrFormat is a malformed golden file record.
type ErrFormat struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrFormat) Error() string {
	return f("golden line %d '%v': %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrFormat) Unwrap() error {
	return err.Err
}
