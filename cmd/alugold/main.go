// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/ezrec/alugold/emulator"
	"github.com/ezrec/alugold/golden"
	"github.com/ezrec/alugold/stimulus"
)

var (
	ErrIterations = errors.New(f("random iteration count out of range"))
	ErrMismatch   = errors.New(f("golden file mismatch"))
)

// config is the command line settings.
type config struct {
	width      uint   // Operand width.
	iterations uint   // Random iterations.
	output     string // Golden file output, '-' for stdout.
	script     string // Stimulus script, replacing the standard sequence.
	seed       int64  // Random seed, 0 for time based.
	console    bool   // Print the console table.
	check      string // Golden file to verify.
	verbose    bool   // Verbose logging.
}

// note prints a heading when the console is enabled.
func note(emu *emulator.Emulator, text string) (err error) {
	if emu.Console == nil {
		return
	}
	return emu.Console.Note(text)
}

// generate writes a golden file from the standard sequence or a script.
func generate(emu *emulator.Emulator, cfg *config, w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	defer func() {
		ferr := bw.Flush()
		if err == nil && ferr != nil {
			err = errors.Join(golden.ErrWrite, ferr)
		}
	}()

	emu.Output = golden.NewWriter(bw, cfg.width)
	err = emu.Output.WriteHeader()
	if err != nil {
		return
	}

	if emu.Console != nil {
		err = emu.Console.Banner()
		if err != nil {
			return
		}
	}

	emu.Reset()

	if len(cfg.script) != 0 {
		var inf *os.File
		inf, err = os.Open(cfg.script)
		if err != nil {
			return
		}
		defer inf.Close()

		sc := &stimulus.Script{Verbose: cfg.verbose, Width: cfg.width}
		for key, value := range emu.Defines() {
			sc.Predefine(key, value)
		}

		var prog *stimulus.Program
		prog, err = sc.Parse(inf)
		if err != nil {
			return
		}

		_, err = emu.Run(prog.All())
		return
	}

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	if cfg.verbose {
		log.Printf("alugold: seed %v", seed)
	}

	phases := []struct {
		note string
		run  func() (int, error)
	}{
		{f("Performing pretests..."), func() (int, error) { return emu.Run(stimulus.Pretests(cfg.width)) }},
		{f("Performing fix tests..."), func() (int, error) { return emu.Run(stimulus.Fixed(cfg.width)) }},
		{f("Performing random tests..."), func() (int, error) {
			return emu.Run(stimulus.Random(cfg.width, int(cfg.iterations), rng))
		}},
	}

	for _, ph := range phases {
		err = note(emu, ph.note)
		if err != nil {
			return
		}
		_, err = ph.run()
		if err != nil {
			return
		}
	}

	err = note(emu, f("Finished!"))

	return
}

// verify checks a golden file, logging every mismatch.
func verify(emu *emulator.Emulator, cfg *config) (err error) {
	inf, err := os.Open(cfg.check)
	if err != nil {
		return
	}
	defer inf.Close()

	mismatches, err := emu.Verify(golden.NewReader(inf))
	if err != nil {
		return
	}

	for _, mismatch := range mismatches {
		log.Printf("%v: line %d: (-expected +actual)\n%v", cfg.check, mismatch.LineNo, mismatch.Diff)
	}

	if len(mismatches) != 0 {
		err = ErrMismatch
		return
	}

	return
}

// run performs the configured action.
func run(cfg *config, stdout, stderr io.Writer) (err error) {
	if cfg.iterations > stimulus.MaxIterations {
		err = ErrIterations
		return
	}

	emu, err := emulator.NewEmulator(cfg.width)
	if err != nil {
		return
	}
	emu.Verbose = cfg.verbose

	if cfg.console {
		emu.Console = golden.NewConsole(stderr, cfg.width)
	}

	if len(cfg.check) != 0 {
		return verify(emu, cfg)
	}

	if cfg.output == "-" {
		return generate(emu, cfg, stdout)
	}

	ouf, err := os.Create(cfg.output)
	if err != nil {
		return
	}
	defer func() {
		cerr := ouf.Close()
		if err == nil {
			err = cerr
		}
	}()

	return generate(emu, cfg, ouf)
}

func main() {
	var cfg config
	var prompt bool

	flag.UintVar(&cfg.width, "w", 8, "Operand width in bits (1-31)")
	flag.UintVar(&cfg.iterations, "n", 1000, "Random iterations")
	flag.StringVar(&cfg.output, "o", "-", "Golden file output")
	flag.StringVar(&cfg.script, "s", "", "Stimulus script to use instead of the standard sequence")
	flag.Int64Var(&cfg.seed, "seed", 0, "Random seed, 0 for time based")
	flag.BoolVar(&cfg.console, "v", false, "Print the console table to stderr")
	flag.StringVar(&cfg.check, "check", "", "Golden file to verify")
	flag.BoolVar(&cfg.verbose, "d", false, "Verbose mode")
	flag.BoolVar(&prompt, "i", false, "Interactive prompts")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if prompt {
		err := interactive(&cfg)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
	}

	err := run(&cfg, os.Stdout, os.Stderr)
	if err != nil {
		name := cfg.output
		if len(cfg.check) != 0 {
			name = cfg.check
		}
		log.Fatalf("%v: %v", name, err)
	}
}
