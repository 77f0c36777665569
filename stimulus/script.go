// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package stimulus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/alugold/alu"
	"github.com/ezrec/alugold/bitfield"
)

// Macro represents a macro definition in a stimulus script.
type Macro struct {
	LineNo int      // Line number of the first macro body line.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Repeat is a block of lines expanded Count times.
type Repeat struct {
	LineNo int      // Line number of the first body line.
	Count  int      // Number of expansions.
	Lines  []string // Lines of text to expand.
}

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// Script is a macro processor for ALU stimulus text.
//
// Each line is an opcode (mnemonic or number) followed by up to two operands:
//
//	add 0x7 1     ; 7 + 1 + carry
//	rol MIX
//	update_nzvc 0
//
// Operands may be numbers (0b, 0o, 0x prefixes), equates, or $(...)
// expressions over numeric equates. A leading '~' inverts an operand within
// the width.
type Script struct {
	Verbose bool // If set, verbosely logs the script lines.
	Width   uint // Operand width, 1..31.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
	Macro     map[string]*Macro // Map of macros.
	Vectors   []Vector          // Generated vectors.
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (sc *Script) Predefine(equ string, value string) {
	if sc.predefine == nil {
		sc.predefine = map[string]string{equ: value}
	} else {
		sc.predefine[equ] = value
	}
}

// mask returns the width mask.
func (sc *Script) mask() alu.Word {
	return alu.Word(bitfield.Mask(sc.Width))
}

// valueOf returns the value of a simple word.
func (sc *Script) valueOf(word string) (value alu.Word, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}

	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < 0 {
		// two's complement within the width
		value = alu.Word(v64) & sc.mask()
	} else {
		value = alu.Word(v64)
	}

	if invert {
		value = ^value & sc.mask()
	}

	return
}

// parenEval does $(...) evaluations
func (sc *Script) parenEval(expr string) (value alu.Word, err error) {
	thread := starlark.Thread{Name: "stimulus"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range sc.Equate {
		var word alu.Word
		word, err = sc.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be opcode
			// names or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(int64(word))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	if st_int64 < 0 {
		value = alu.Word(st_int64) & sc.mask()
	} else {
		value = alu.Word(st_int64)
	}
	return
}

// parseLine expands a single line into words, handling equates, $()
// expressions and macro invocations.
func (sc *Script) parseLine(line string, lineno int) (words []string, err error) {
	sc.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := sc.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := sc.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		sc.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := sc.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	macro, ok := sc.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equates for the body.
		old_equate := maps.Clone(sc.Equate)
		for n, arg := range macro.Args {
			sc.Equate[arg] = args[n]
		}
		defer func() { sc.Equate = old_equate }()

		for n, body := range macro.Lines {
			body_lineno := macro.LineNo + n

			body = strings.ReplaceAll(body, "@", fmt.Sprintf("%v_%v_", name, body_lineno))
			var body_words []string
			body_words, err = sc.parseLine(body, body_lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: body_lineno, Err: err}
				return
			}

			err = sc.parseWords(body_words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: body_lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// parseWords converts an expanded line into a vector.
func (sc *Script) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	op, err := alu.ParseOpcode(words[0])
	if err != nil {
		err = errors.Join(ErrInstructionInvalid, err)
		return
	}

	if len(words) > 3 {
		err = ErrOperandExtra
		return
	}

	vec := Vector{LineNo: lineno, Op: op}
	operands := [2]*alu.Word{&vec.A, &vec.B}
	for n, word := range words[1:] {
		*operands[n], err = sc.valueOf(word)
		if err != nil {
			return
		}
	}

	sc.Vectors = append(sc.Vectors, vec)

	return
}

// expandRepeat emits the body of a repeat block Count times. The REPEAT
// equate holds the current iteration.
func (sc *Script) expandRepeat(repeat *Repeat) (err error) {
	defer delete(sc.Equate, "REPEAT")

	for iteration := range repeat.Count {
		sc.Equate["REPEAT"] = fmt.Sprintf("%d", iteration)
		for n, line := range repeat.Lines {
			lineno := repeat.LineNo + n

			var words []string
			words, err = sc.parseLine(line, lineno)
			if err != nil {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = sc.parseWords(words, lineno)
			if err != nil {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}
	}

	return
}

// Parse parses an input stream into a Program of vectors.
func (sc *Script) Parse(input io.Reader) (prog *Program, err error) {
	if sc.Width < alu.WIDTH_MIN || sc.Width > alu.WIDTH_MAX {
		err = ErrWidth
		return
	}

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro
	var repeat *Repeat

	defer func() {
		if err == nil {
			return
		}
		var syntax_err *ErrSyntax
		if !errors.As(err, &syntax_err) {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	sc.Vectors = sc.Vectors[:0]
	if sc.Macro == nil {
		sc.Macro = make(map[string]*Macro)
	}
	clear(sc.Macro)

	sc.Equate = map[string]string{"LINENO": "0"}
	for key, value := range NewConstants(sc.Width).Defines() {
		sc.Equate[key] = value
	}
	for key, value := range sc.predefine {
		sc.Equate[key] = value
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if sc.Verbose {
			log.Printf("stimulus: %v: %v", lineno, text)
		}

		line = strings.TrimSpace(strings.Split(text, ";")[0])
		words := strings.Fields(line)

		switch {
		case len(words) > 0 && words[0] == ".macro":
			if macro != nil || repeat != nil {
				err = ErrBlockNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := sc.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   slices.Clone(words[2:]),
			}
			sc.Macro[words[1]] = macro
			continue
		case len(words) > 0 && words[0] == ".endm":
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		case len(words) > 0 && words[0] == ".repeat":
			if macro != nil || repeat != nil {
				err = ErrBlockNesting
				return
			}
			var count_words []string
			count_words, err = sc.parseLine(strings.TrimPrefix(line, ".repeat"), lineno)
			if err != nil {
				return
			}
			if len(count_words) != 1 {
				err = ErrRepeatSyntax
				return
			}
			var count alu.Word
			count, err = sc.valueOf(count_words[0])
			if err != nil {
				return
			}
			if count > MaxIterations {
				err = ErrRepeatSyntax
				return
			}
			repeat = &Repeat{
				LineNo: lineno + 1,
				Count:  int(count),
			}
			continue
		case len(words) > 0 && words[0] == ".endr":
			if repeat == nil {
				err = ErrRepeatLonelyEndr
				return
			}
			block := repeat
			repeat = nil
			err = sc.expandRepeat(block)
			if err != nil {
				return
			}
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		if repeat != nil {
			repeat.Lines = append(repeat.Lines, line)
			continue
		}

		words, err = sc.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = sc.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if repeat != nil {
		err = ErrRepeatLonely
		return
	}

	prog = &Program{
		Width:   sc.Width,
		Vectors: slices.Clone(sc.Vectors),
	}

	return
}
