package golden

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/alugold/alu"
)

// Writer emits a golden file.
type Writer struct {
	Width uint // Operand width.
	Lines int  // Records written.

	w io.Writer
}

// NewWriter creates a golden file writer for a width.
func NewWriter(w io.Writer, width uint) *Writer {
	return &Writer{Width: width, w: w}
}

// WriteHeader writes the width line.
func (gw *Writer) WriteHeader() (err error) {
	_, err = fmt.Fprintf(gw.w, "%d\n", gw.Width)
	if err != nil {
		err = errors.Join(ErrWrite, err)
		return
	}

	return
}

// Format renders a record as a golden file line, without the newline.
func (gw *Writer) Format(rec Record) string {
	return strings.Join([]string{
		FormatNumber(rec.A, gw.Width),
		FormatNumber(rec.B, gw.Width),
		FormatNumber(alu.Word(rec.Op), OPCODE_DIGITS),
		FormatNumber(rec.Out, gw.Width),
		rec.Flags.String(),
	}, " ")
}

// Write writes one record. The line is emitted with a single write.
func (gw *Writer) Write(rec Record) (err error) {
	_, err = io.WriteString(gw.w, gw.Format(rec)+"\n")
	if err != nil {
		err = errors.Join(ErrWrite, err)
		return
	}

	gw.Lines++

	return
}
