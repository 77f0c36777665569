package emulator

import (
	"bytes"
	"errors"
	"maps"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/alugold/alu"
	"github.com/ezrec/alugold/golden"
	"github.com/ezrec/alugold/stimulus"
)

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(8)
	assert.NoError(err)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Alu)
	assert.Equal(uint(8), emu.Width)
	assert.Nil(emu.Output)
	assert.Nil(emu.Console)

	for _, width := range []uint{0, 32} {
		_, err = NewEmulator(width)
		assert.ErrorIs(err, alu.ErrWidth, width)
	}
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(8)
	assert.NoError(err)

	defines := maps.Collect(emu.Defines())
	assert.Equal("1000000", defines["MAX_ITERATIONS"])
	assert.Equal("16", defines["OPCODE_COUNT"])
	assert.Equal("2", defines["ALU_ADD"])
	assert.Equal("15", defines["ALU_OP15"])
	assert.Equal("0xff", defines["MAX"])
	assert.Equal("8", defines["WIDTH"])
}

func TestEmulatorStep(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(4)
	assert.NoError(err)

	out := &bytes.Buffer{}
	emu.Output = golden.NewWriter(out, emu.Width)
	con := &bytes.Buffer{}
	emu.Console = golden.NewConsole(con, emu.Width)

	rec, err := emu.Step(stimulus.Vector{A: 0xf, B: 0x4, Op: alu.ALU_NOT})
	assert.NoError(err)
	assert.Equal(golden.Record{A: 0xf, B: 0x4, Op: alu.ALU_NOT, Out: 0, Flags: alu.Flags{Z: true, C: true}}, rec)

	rec, err = emu.Step(stimulus.Vector{A: 0, B: 0xf, Op: alu.ALU_UPDATE_NZVC})
	assert.NoError(err)
	assert.Equal(alu.Word(0b0101), rec.Out)

	assert.Equal("1111 0100 0001 0000 0101\n0000 1111 1000 0101 0101\n", out.String())
	assert.Equal(" 15 1111 -   4 0100 --  1 --   0 0000 - 0101\n"+
		"  0 0000 -  15 1111 --  8 --   5 0101 - 0101\n", con.String())
	assert.Equal(2, emu.Output.Lines)
	assert.Equal(2, emu.Alu.Evaluations)

	emu.Reset()
	assert.Equal(alu.Flags{}, emu.Alu.Flags())
	assert.Equal(0, emu.Alu.Evaluations)
}

func TestEmulatorScript(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(8)
	assert.NoError(err)

	sc := &stimulus.Script{Width: emu.Width}
	for key, value := range emu.Defines() {
		sc.Predefine(key, value)
	}

	program := []string{
		"c1",
		"add $(MAX >> 1) ZERO",
		"update_nzvc 0",
		"$(ALU_ROL) FIRST",
	}
	prog, err := sc.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	var recs []golden.Record
	for vec := range prog.All() {
		rec, err := emu.Step(vec)
		assert.NoError(err, program[vec.LineNo-1])
		recs = append(recs, rec)
	}

	assert.Equal(4, len(recs))
	assert.Equal(alu.Word(0x80), recs[1].Out)
	assert.Equal(alu.Flags{N: true, V: true}, recs[1].Flags)
	assert.Equal(alu.Word(0b1010), recs[2].Out)
	assert.Equal(alu.ALU_ROL, recs[3].Op)
	assert.Equal(alu.Word(0), recs[3].Out)
	assert.Equal(alu.Flags{Z: true, V: true, C: true}, recs[3].Flags)
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(8)
	assert.NoError(err)

	out := &bytes.Buffer{}
	emu.Output = golden.NewWriter(out, emu.Width)

	count, err := emu.Run(stimulus.Pretests(emu.Width))
	assert.NoError(err)
	assert.Equal(50, count)
	assert.Equal(50, strings.Count(out.String(), "\n"))
}

func TestEmulatorRunError(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(8)
	assert.NoError(err)

	vectors := []stimulus.Vector{
		{LineNo: 1, A: 1, B: 2, Op: alu.ALU_ADD},
		{LineNo: 2, A: 1, B: 2, Op: alu.ALU_AND},
		{LineNo: 3, A: 1, B: 2, Op: alu.Opcode(99)},
		{LineNo: 4, A: 1, B: 2, Op: alu.ALU_ADD},
	}

	count, err := emu.Run(slices.Values(vectors))
	assert.Equal(2, count)
	assert.ErrorIs(err, alu.ErrAlu)

	var runtime_err *ErrRuntime
	if assert.True(errors.As(err, &runtime_err)) {
		assert.Equal(2, runtime_err.Index)
		assert.Equal(3, runtime_err.LineNo)
	}

	emu.Output = golden.NewWriter(failWriter{}, emu.Width)
	count, err = emu.Run(slices.Values(vectors))
	assert.Equal(0, count)
	assert.ErrorIs(err, golden.ErrWrite)
}

func TestEmulatorVerify(t *testing.T) {
	assert := assert.New(t)

	for _, width := range []uint{1, 3, 4, 8, 16, 31} {
		emu, err := NewEmulator(width)
		assert.NoError(err)

		out := &bytes.Buffer{}
		emu.Output = golden.NewWriter(out, width)
		assert.NoError(emu.Output.WriteHeader())

		rng := rand.New(rand.NewSource(int64(width)))
		count, err := emu.Run(stimulus.Standard(width, 100, rng))
		assert.NoError(err)
		assert.Equal(count, emu.Output.Lines)

		check, err := NewEmulator(alu.WIDTH_MAX)
		assert.NoError(err)
		mismatches, err := check.Verify(golden.NewReader(out))
		assert.NoError(err, width)
		assert.Empty(mismatches, width)
		assert.Equal(width, check.Width)
		assert.Equal(count, check.Alu.Evaluations)
	}
}

func TestEmulatorVerifyMismatch(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(8)
	assert.NoError(err)

	text := strings.Join([]string{
		"4",
		"1111 0100 0001 0001 0101", // NOT MAX, wrong output
		"0000 1111 1000 0101 0101", // NZVC dump
		"0000 0000 0000 0000 0000", // TRANSFER 0, wrong flags
	}, "\n")

	mismatches, err := emu.Verify(golden.NewReader(strings.NewReader(text)))
	assert.NoError(err)
	assert.Equal(2, len(mismatches))

	assert.Equal(0, mismatches[0].Index)
	assert.Equal(2, mismatches[0].LineNo)
	assert.Equal(alu.Word(1), mismatches[0].Expected.Out)
	assert.Equal(alu.Word(0), mismatches[0].Actual.Out)
	assert.Contains(mismatches[0].Diff, "Out")

	assert.Equal(2, mismatches[1].Index)
	assert.Equal(4, mismatches[1].LineNo)
	assert.Equal(alu.Flags{Z: true, C: true}, mismatches[1].Actual.Flags)
	assert.Contains(mismatches[1].Diff, "Flags")
}

func TestEmulatorVerifyConsole(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(8)
	assert.NoError(err)

	con := &bytes.Buffer{}
	emu.Console = golden.NewConsole(con, emu.Width)

	text := "4\n1111 0100 0001 0000 0101\n"
	mismatches, err := emu.Verify(golden.NewReader(strings.NewReader(text)))
	assert.NoError(err)
	assert.Empty(mismatches)

	assert.Equal(uint(4), emu.Console.Width)
	assert.Equal(" 15 1111 -   4 0100 --  1 --   0 0000 - 0101\n", con.String())
}

func TestEmulatorVerifyErrors(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(8)
	assert.NoError(err)

	_, err = emu.Verify(golden.NewReader(strings.NewReader("")))
	assert.ErrorIs(err, golden.ErrHeader)

	_, err = emu.Verify(golden.NewReader(strings.NewReader("4\n0000 0000 0000 0000\n")))
	assert.ErrorIs(err, golden.ErrFieldCount)
}
