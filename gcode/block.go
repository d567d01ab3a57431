package gcode

import (
	"strings"
)

// Block is an ordered set of words making up a regenerated line.
type Block []Word

func (b Block) SetArg(w byte, val float64) {
	for i, g := range b {
		if g.W == w {
			b[i].Arg = val
			return
		}
	}
}

// String joins the words with single spaces.
func (b Block) String() string {
	parts := make([]string, len(b))
	for i, g := range b {
		parts[i] = g.String()
	}
	return strings.Join(parts, " ")
}
