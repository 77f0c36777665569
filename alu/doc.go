// Package alu implements a single-cycle ALU with a persistent N/Z/V/C
// condition flag register.
//
// The ALU operates on words of a caller-chosen width between 1 and 31 bits.
// One bit above the width is borrowed internally to detect carry-out. Eight
// computational opcodes update the flag register, five write-back opcodes
// copy the current flags into fixed bit positions of the output word, and
// three reserved opcodes produce an all-ones word without touching the flags.
//
// The flag register carries over from one evaluation to the next, so the
// carry produced by ADD, ROL or ROR becomes the carry-in of the following
// operation. An Alu must not be shared between goroutines without external
// locking.
package alu
