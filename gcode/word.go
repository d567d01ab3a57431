package gcode

import (
	"strconv"
	"strings"
)

// Word is a single letter/value pair of a line, e.g. `X10.5`.
type Word struct {
	W   byte
	Arg float64
}

// IsCommand reports if the word is the command (G, M or T) of its line.
// Command numbers are at most three digits, so they are exact in Arg.
func (w Word) IsCommand() bool {
	switch w.W {
	case 'G', 'M', 'T':
		return true
	}
	return false
}

// formatFloat renders the shortest representation of f, always keeping
// at least one fractional digit (5 -> "5.0").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func (w Word) String() string {
	if w.IsCommand() {
		return string(w.W) + strconv.Itoa(int(w.Arg))
	}
	return string(w.W) + formatFloat(w.Arg)
}
