// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/alugold/alu"
	"github.com/ezrec/alugold/stimulus"
	"github.com/ezrec/alugold/translate"
)

var f = translate.From

var ErrNotTerminal = errors.New(f("interactive mode requires a terminal"))

// prompter asks for settings on a line-edited terminal.
type prompter struct {
	term *term.Terminal
}

func newPrompter(rw io.ReadWriter) *prompter {
	return &prompter{term: term.NewTerminal(rw, "")}
}

// ask returns one trimmed line of input.
func (p *prompter) ask(prompt string) (line string, err error) {
	p.term.SetPrompt(prompt)
	line, err = p.term.ReadLine()
	line = strings.TrimSpace(line)
	return
}

// askUint repeats the prompt until a decimal in lo..hi is entered.
func (p *prompter) askUint(prompt string, lo, hi uint64) (value uint64, err error) {
	for {
		var line string
		line, err = p.ask(prompt)
		if err != nil {
			return
		}
		var perr error
		value, perr = strconv.ParseUint(line, 10, 64)
		if perr == nil && value >= lo && value <= hi {
			return
		}
	}
}

// askName repeats the prompt until a non-empty word is entered.
func (p *prompter) askName(prompt string) (name string, err error) {
	for {
		name, err = p.ask(prompt)
		if err != nil || len(name) > 0 {
			return
		}
	}
}

// askYesNo repeats the prompt until Y or N is entered.
func (p *prompter) askYesNo(prompt string) (yes bool, err error) {
	for {
		var line string
		line, err = p.ask(prompt)
		if err != nil {
			return
		}
		switch strings.ToUpper(line) {
		case "Y":
			yes = true
			return
		case "N":
			return
		}
	}
}

// configure fills in the settings from the prompts.
func (p *prompter) configure(cfg *config) (err error) {
	width, err := p.askUint(f("Enter bus size (%d-%d): ", alu.WIDTH_MIN, alu.WIDTH_MAX), alu.WIDTH_MIN, alu.WIDTH_MAX)
	if err != nil {
		return
	}
	cfg.width = uint(width)

	iterations, err := p.askUint(f("Enter random iteration number (0-%d): ", stimulus.MaxIterations), 0, stimulus.MaxIterations)
	if err != nil {
		return
	}
	cfg.iterations = uint(iterations)

	cfg.output, err = p.askName(f("Enter output file name: "))
	if err != nil {
		return
	}

	cfg.console, err = p.askYesNo(f("Should output be printed to console? (Y/N): "))
	if err != nil {
		return
	}

	return
}

// interactive runs the prompts on the controlling terminal.
func interactive(cfg *config) (err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		err = ErrNotTerminal
		return
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer func() {
		rerr := term.Restore(fd, state)
		if err == nil {
			err = rerr
		}
	}()

	p := newPrompter(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout})

	err = p.configure(cfg)

	return
}
