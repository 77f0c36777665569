package golden

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/ezrec/alugold/alu"
)

// Reader parses a golden file.
type Reader struct {
	Width  uint // Operand width, valid after ReadHeader.
	LineNo int  // Line number of the last line read.

	scanner *bufio.Scanner
}

// NewReader creates a golden file reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// next returns the next line of text, or io.EOF.
func (gr *Reader) next() (line string, err error) {
	if !gr.scanner.Scan() {
		err = gr.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	gr.LineNo++
	line = gr.scanner.Text()

	return
}

// ReadHeader reads the width line.
func (gr *Reader) ReadHeader() (width uint, err error) {
	line, err := gr.next()
	if errors.Is(err, io.EOF) {
		err = ErrHeader
		return
	}
	if err != nil {
		return
	}

	value, err := strconv.ParseUint(strings.TrimSpace(line), 10, 8)
	if err != nil || value < alu.WIDTH_MIN || value > alu.WIDTH_MAX {
		err = &ErrFormat{LineNo: gr.LineNo, Line: line, Err: errors.Join(ErrHeader, err)}
		return
	}

	width = uint(value)
	gr.Width = width

	return
}

// Read returns the next record, or io.EOF after the last one.
func (gr *Reader) Read() (rec Record, err error) {
	if gr.Width == 0 {
		err = ErrHeader
		return
	}

	line, err := gr.next()
	if err != nil {
		return
	}

	defer func() {
		if err != nil {
			err = &ErrFormat{LineNo: gr.LineNo, Line: line, Err: err}
		}
	}()

	fields := strings.Fields(line)
	if len(fields) != 5 {
		err = ErrFieldCount
		return
	}

	rec.A, err = ParseNumber(fields[0], gr.Width)
	if err != nil {
		return
	}

	rec.B, err = ParseNumber(fields[1], gr.Width)
	if err != nil {
		return
	}

	op, err := ParseNumber(fields[2], OPCODE_DIGITS)
	if err != nil {
		return
	}
	rec.Op = alu.Opcode(op)

	rec.Out, err = ParseNumber(fields[3], gr.Width)
	if err != nil {
		return
	}

	bits, err := ParseNumber(fields[4], FLAG_DIGITS)
	if err != nil {
		return
	}
	rec.Flags = alu.FlagsFromBits(uint8(bits))

	return
}

// All returns an iterator over the remaining records. Iteration stops at
// the end of the file or at the first error, which is passed to the caller.
func (gr *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := gr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}
