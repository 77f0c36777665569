package golden_test

import (
	"bytes"
	"errors"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/alugold/alu"
	"github.com/ezrec/alugold/golden"
)

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

var _ = Describe("Numbers", func() {
	It("should format MSB first", func() {
		Expect(golden.FormatNumber(0b0101, 4)).To(Equal("0101"))
		Expect(golden.FormatNumber(1, 1)).To(Equal("1"))
		Expect(golden.FormatNumber(0x80, 8)).To(Equal("10000000"))
	})

	It("should drop bits above the width", func() {
		Expect(golden.FormatNumber(0xff, 4)).To(Equal("1111"))
		Expect(golden.FormatNumber(0xf0, 4)).To(Equal("0000"))
	})

	It("should parse exactly width digits", func() {
		value, err := golden.ParseNumber("0110", 4)
		Expect(err).To(BeNil())
		Expect(value).To(Equal(alu.Word(6)))

		_, err = golden.ParseNumber("011", 4)
		Expect(err).To(MatchError(golden.ErrLength))

		_, err = golden.ParseNumber("0120", 4)
		Expect(err).To(MatchError(golden.ErrDigits))
	})
})

var _ = Describe("Record", func() {
	It("should mask to the width", func() {
		rec := golden.Record{A: 0x1f, B: 0x10, Op: alu.ALU_ADD, Out: 0x3c, Flags: alu.Flags{C: true}}
		Expect(rec.Masked(4)).To(Equal(golden.Record{A: 0xf, B: 0, Op: alu.ALU_ADD, Out: 0xc, Flags: alu.Flags{C: true}}))
	})
})

var _ = Describe("Writer", func() {
	var (
		buf *bytes.Buffer
		gw  *golden.Writer
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		gw = golden.NewWriter(buf, 4)
	})

	It("should write the width header", func() {
		Expect(gw.WriteHeader()).To(Succeed())
		Expect(buf.String()).To(Equal("4\n"))
	})

	It("should write records in binary", func() {
		rec := golden.Record{
			A:     0b0101,
			B:     0b0011,
			Op:    alu.ALU_ADD,
			Out:   0b1000,
			Flags: alu.Flags{N: true, V: true},
		}
		Expect(gw.Write(rec)).To(Succeed())
		Expect(gw.Write(golden.Record{Op: alu.ALU_RESERVED_15, Out: 0xf})).To(Succeed())

		Expect(buf.String()).To(Equal("0101 0011 0010 1000 1010\n0000 0000 1111 1111 0000\n"))
		Expect(gw.Lines).To(Equal(2))
	})

	It("should report write failures", func() {
		gw = golden.NewWriter(failWriter{}, 4)
		Expect(gw.WriteHeader()).To(MatchError(golden.ErrWrite))
		Expect(gw.Write(golden.Record{})).To(MatchError(golden.ErrWrite))
		Expect(gw.Lines).To(Equal(0))
	})
})

var _ = Describe("Reader", func() {
	read := func(text string) *golden.Reader {
		return golden.NewReader(strings.NewReader(text))
	}

	It("should read back what the writer wrote", func() {
		records := []golden.Record{
			{A: 0x55, B: 0xaa, Op: alu.ALU_AND, Out: 0, Flags: alu.Flags{Z: true}},
			{A: 0xff, B: 0x01, Op: alu.ALU_ADD, Out: 0, Flags: alu.Flags{Z: true, C: true}},
			{A: 0x80, B: 0, Op: alu.ALU_UPDATE_C, Out: 0x81, Flags: alu.Flags{N: true, V: true, C: true}},
		}

		buf := &bytes.Buffer{}
		gw := golden.NewWriter(buf, 8)
		Expect(gw.WriteHeader()).To(Succeed())
		for _, rec := range records {
			Expect(gw.Write(rec)).To(Succeed())
		}

		gr := golden.NewReader(buf)
		width, err := gr.ReadHeader()
		Expect(err).To(BeNil())
		Expect(width).To(Equal(uint(8)))

		var got []golden.Record
		for rec, err := range gr.All() {
			Expect(err).To(BeNil())
			got = append(got, rec)
		}
		Expect(got).To(Equal(records))
		Expect(gr.LineNo).To(Equal(4))
	})

	It("should return io.EOF after the last record", func() {
		gr := read("4\n0000 0000 0000 0000 0100\n")
		_, err := gr.ReadHeader()
		Expect(err).To(BeNil())

		rec, err := gr.Read()
		Expect(err).To(BeNil())
		Expect(rec.Flags).To(Equal(alu.Flags{Z: true}))

		_, err = gr.Read()
		Expect(err).To(Equal(io.EOF))
	})

	It("should require a header", func() {
		_, err := read("").ReadHeader()
		Expect(err).To(MatchError(golden.ErrHeader))

		for _, text := range []string{"0\n", "32\n", "wide\n"} {
			_, err = read(text).ReadHeader()
			Expect(err).To(MatchError(golden.ErrHeader))
		}

		_, err = read("4\n0000 0000 0000 0000 0000\n").Read()
		Expect(err).To(MatchError(golden.ErrHeader))
	})

	DescribeTable("malformed records",
		func(line string, expected error) {
			gr := read("4\n0000 0000 0000 0000 0000\n" + line + "\n")
			_, err := gr.ReadHeader()
			Expect(err).To(BeNil())
			_, err = gr.Read()
			Expect(err).To(BeNil())

			_, err = gr.Read()
			Expect(err).To(MatchError(expected))

			var format_err *golden.ErrFormat
			Expect(errors.As(err, &format_err)).To(BeTrue())
			Expect(format_err.LineNo).To(Equal(3))
			Expect(format_err.Line).To(Equal(line))
		},
		Entry("too few fields", "0000 0000 0000 0000", golden.ErrFieldCount),
		Entry("too many fields", "0000 0000 0000 0000 0000 0", golden.ErrFieldCount),
		Entry("empty line", "", golden.ErrFieldCount),
		Entry("short operand", "000 0000 0000 0000 0000", golden.ErrLength),
		Entry("long opcode", "0000 0000 00000 0000 0000", golden.ErrLength),
		Entry("bad digit", "0000 0002 0000 0000 0000", golden.ErrDigits),
		Entry("bad flags", "0000 0000 0000 0000 00x0", golden.ErrDigits),
	)
})

var _ = Describe("Console", func() {
	var (
		buf *bytes.Buffer
		con *golden.Console
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		con = golden.NewConsole(buf, 4)
	})

	It("should print the legend", func() {
		Expect(con.Banner()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("always unsigned"))
		Expect(buf.String()).To(ContainSubstring("'IN_A' - 'IN_B' -- 'SELECT' -- 'OUTPUT' - 'NZVC'"))
	})

	It("should print a table line", func() {
		rec := golden.Record{A: 5, B: 3, Op: alu.ALU_ADD, Out: 8, Flags: alu.Flags{N: true, V: true}}
		Expect(con.Line(rec)).To(Succeed())
		Expect(buf.String()).To(Equal("  5 0101 -   3 0011 --  2 --   8 1000 - 1010\n"))
	})

	It("should not group digits of wide values", func() {
		con = golden.NewConsole(buf, 12)
		rec := golden.Record{A: 1000, B: 4095, Op: alu.ALU_ADD, Out: 2047}
		Expect(con.Line(rec)).To(Succeed())
		Expect(buf.String()).To(Equal("1000 001111101000 - 4095 111111111111 --  2 -- 2047 011111111111 - 0000\n"))
	})

	It("should print notes", func() {
		Expect(con.Note("Performing pretests...")).To(Succeed())
		Expect(buf.String()).To(Equal("Performing pretests...\n"))
	})
})
