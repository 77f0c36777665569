// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives an ALU with stimulus vectors and records the
// results as golden files.
package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/google/go-cmp/cmp"

	"github.com/ezrec/alugold/alu"
	"github.com/ezrec/alugold/golden"
	"github.com/ezrec/alugold/internal"
	"github.com/ezrec/alugold/stimulus"
)

var _emulator_defines = map[string]string{
	"MAX_ITERATIONS": fmt.Sprintf("%v", stimulus.MaxIterations),
	"OPCODE_COUNT":   fmt.Sprintf("%v", alu.OPCODE_COUNT),
}

// Emulator state. ALU + golden file outputs.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*alu.Alu      // Reference to the ALU simulation.
	Width    uint // Operand width.

	Output  *golden.Writer  // Golden file output, if not nil.
	Console *golden.Console // Console table output, if not nil.
}

// Mismatch is a golden file record that the ALU does not reproduce.
type Mismatch struct {
	Index    int           // Record index, from 0.
	LineNo   int           // Golden file line.
	Expected golden.Record // Record from the golden file.
	Actual   golden.Record // Record from the ALU.
	Diff     string        // Human readable difference.
}

// NewEmulator creates a new emulator for a width.
func NewEmulator(width uint) (emu *Emulator, err error) {
	if width < alu.WIDTH_MIN || width > alu.WIDTH_MAX {
		err = alu.ErrWidth
		return
	}

	emu = &Emulator{
		Alu:   alu.NewAlu(),
		Width: width,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Alu.Defines(),
		stimulus.NewConstants(emu.Width).Defines(),
	)
}

// Reset the ALU state.
func (emu *Emulator) Reset() {
	emu.Alu.Verbose = emu.Verbose
	emu.Alu.Reset()
}

// evaluate runs one vector and returns its record.
func (emu *Emulator) evaluate(vec stimulus.Vector) (rec golden.Record, err error) {
	emu.Alu.Verbose = emu.Verbose

	out, flags, err := emu.Alu.Evaluate(vec.A, vec.B, vec.Op, emu.Width)
	if err != nil {
		return
	}

	rec = golden.Record{
		A:     vec.A,
		B:     vec.B,
		Op:    vec.Op,
		Out:   out,
		Flags: flags,
	}

	return
}

// Step performs a single vector, writing the record to the outputs.
func (emu *Emulator) Step(vec stimulus.Vector) (rec golden.Record, err error) {
	rec, err = emu.evaluate(vec)
	if err != nil {
		return
	}

	if emu.Output != nil {
		err = emu.Output.Write(rec)
		if err != nil {
			return
		}
	}

	if emu.Console != nil {
		err = emu.Console.Line(rec)
		if err != nil {
			return
		}
	}

	return
}

// Run performs every vector of a sequence, stopping at the first error.
func (emu *Emulator) Run(seq iter.Seq[stimulus.Vector]) (count int, err error) {
	for index, vec := range internal.IterSeqIndex(seq) {
		_, err = emu.Step(vec)
		if err != nil {
			err = &ErrRuntime{Index: index, LineNo: vec.LineNo, Err: err}
			return
		}
		count++
	}

	if emu.Verbose {
		log.Printf("emulator: %d vectors", count)
	}

	return
}

// Verify replays a golden file on a reset ALU of the file's width, and
// returns every record the ALU does not reproduce. The emulator's width is
// set to the file's width.
func (emu *Emulator) Verify(gr *golden.Reader) (mismatches []Mismatch, err error) {
	width, err := gr.ReadHeader()
	if err != nil {
		return
	}

	emu.Width = width
	if emu.Console != nil {
		emu.Console.Width = width
	}
	emu.Reset()

	index := 0
	for expected, rerr := range gr.All() {
		if rerr != nil {
			err = rerr
			return
		}

		var actual golden.Record
		vec := stimulus.Vector{LineNo: gr.LineNo, A: expected.A, B: expected.B, Op: expected.Op}
		actual, err = emu.evaluate(vec)
		if err != nil {
			err = &ErrRuntime{Index: index, LineNo: gr.LineNo, Err: err}
			return
		}
		actual = actual.Masked(width)

		if emu.Console != nil {
			err = emu.Console.Line(actual)
			if err != nil {
				return
			}
		}

		if actual != expected {
			mismatch := Mismatch{
				Index:    index,
				LineNo:   gr.LineNo,
				Expected: expected,
				Actual:   actual,
				Diff:     cmp.Diff(expected, actual),
			}
			if emu.Verbose {
				log.Printf("emulator: line %d: mismatch (-expected +actual):\n%v", gr.LineNo, mismatch.Diff)
			}
			mismatches = append(mismatches, mismatch)
		}

		index++
	}

	return
}
