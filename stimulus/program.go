package stimulus

import (
	"iter"
	"slices"
)

// Program is a parsed stimulus script.
type Program struct {
	Width   uint
	Vectors []Vector
}

// All returns an iterator over the program's vectors.
func (prog *Program) All() iter.Seq[Vector] {
	return slices.Values(prog.Vectors)
}

// Len returns the number of vectors.
func (prog *Program) Len() int {
	return len(prog.Vectors)
}

// Line returns the vectors generated by a source line, in order.
func (prog *Program) Line(lineno int) iter.Seq[Vector] {
	return func(yield func(Vector) bool) {
		for _, vec := range prog.Vectors {
			if vec.LineNo != lineno {
				continue
			}
			if !yield(vec) {
				return
			}
		}
	}
}
