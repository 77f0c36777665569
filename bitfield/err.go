package bitfield

import (
	"errors"

	"github.com/ezrec/alugold/translate"
)

var f = translate.From

var (
	// Bit update errors
	ErrPosition = errors.New(f("position too big"))
	ErrValue    = errors.New(f("value not 0 or 1"))
)

// ErrUpdate reports a rejected single-bit update.
type ErrUpdate struct {
	Position uint
	Value    uint
	Err      error
}

func (err *ErrUpdate) Error() string {
	return f("update bit %d to %d: %v", err.Position, err.Value, err.Err)
}

func (err *ErrUpdate) Unwrap() error {
	return err.Err
}

func (err *ErrUpdate) Is(target error) (ok bool) {
	_, ok = target.(*ErrUpdate)
	return
}
