package golden

import (
	"fmt"
	"io"

	"golang.org/x/text/message"

	"github.com/ezrec/alugold/translate"
)

// Console prints records as a human readable table.
type Console struct {
	Width uint // Operand width.

	w       io.Writer
	printer *message.Printer
}

// NewConsole creates a console table printer for a width.
func NewConsole(w io.Writer, width uint) *Console {
	return &Console{
		Width:   width,
		w:       w,
		printer: translate.Printer(),
	}
}

// Banner prints the table legend.
func (con *Console) Banner() (err error) {
	_, err = con.printer.Fprintf(con.w, "\n Decimal representations of values are always unsigned!\n")
	if err != nil {
		return
	}
	_, err = con.printer.Fprintf(con.w, "'IN_A' - 'IN_B' -- 'SELECT' -- 'OUTPUT' - 'NZVC'\n\n")
	return
}

// Note prints a free-form line, such as a phase heading.
func (con *Console) Note(text string) (err error) {
	_, err = io.WriteString(con.w, text+"\n")
	return
}

// Line prints one record. Numbers are never digit grouped.
func (con *Console) Line(rec Record) (err error) {
	_, err = fmt.Fprintf(con.w, "%3d %s - %3d %s -- %2d -- %3d %s - %s\n",
		uint32(rec.A), FormatNumber(rec.A, con.Width),
		uint32(rec.B), FormatNumber(rec.B, con.Width),
		int(rec.Op),
		uint32(rec.Out), FormatNumber(rec.Out, con.Width),
		rec.Flags.String(),
	)
	return
}
