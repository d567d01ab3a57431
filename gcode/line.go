package gcode

import (
	"strconv"
	"strings"
)

type optFloat struct {
	v  float64
	ok bool
}

type optUint struct {
	v  uint64
	ok bool
}

type optString struct {
	v  string
	ok bool
}

func parseFloat(s span) optFloat {
	if !s.ok {
		return optFloat{}
	}
	v, err := strconv.ParseFloat(s.val, 64)
	if err != nil {
		return optFloat{}
	}
	return optFloat{v: v, ok: true}
}

func parseUint(s span) optUint {
	if !s.ok {
		return optUint{}
	}
	v, err := strconv.ParseUint(s.val, 10, 64)
	if err != nil {
		return optUint{}
	}
	return optUint{v: v, ok: true}
}

func trimmed(s span) optString {
	if !s.ok {
		return optString{}
	}
	return optString{v: strings.TrimSpace(s.val), ok: true}
}

// Line is a single parsed G-code line.
//
// Everything but Multipliers is computed once by Parse and never changes,
// so a Line may be read from multiple goroutines as long as Multipliers is
// not modified at the same time.
type Line struct {
	raw      string
	stripped string

	letter  byte
	number  int
	command string
	kind    Kind

	s, p          optUint
	x, y, z, e, f optFloat

	stringData optString
	comment    optString

	// Multipliers are applied by RenderNumbered only; they never alter the parsed values.
	Multipliers Multipliers
}

// Parse decomposes raw using DefaultCodes for classification. It never fails;
// unrecognized text results in an Empty line.
func Parse(raw string) *Line {
	return ParseWithCodes(raw, DefaultCodes)
}

// ParseWithCodes is like Parse but resolves the command kind with codes.
func ParseWithCodes(raw string, codes CodeTable) *Line {
	c := match(raw)
	l := &Line{
		raw:      raw,
		stripped: c.line,

		s: parseUint(c.s),
		p: parseUint(c.p),
		x: parseFloat(c.x),
		y: parseFloat(c.y),
		z: parseFloat(c.z),
		f: parseFloat(c.f),
		e: parseFloat(c.e),

		comment: trimmed(c.comment),
	}
	if c.stringData.ok {
		l.stringData = trimmed(c.stringData)
	}

	if c.commandLetter.ok {
		// at most 3 digits, cannot fail
		n, _ := strconv.Atoi(c.commandNumber.val)
		l.letter = c.commandLetter.val[0]
		l.number = n
		l.command = c.commandLetter.val + strconv.Itoa(n)
	}

	l.kind = codes.Lookup(l.command)
	if l.kind == KindNone && l.letter == 'T' {
		l.kind = KindToolChange
	}

	return l
}

// Raw returns the exact text passed to Parse.
func (l *Line) Raw() string { return l.raw }

// Stripped returns the line without its comment, trimmed of whitespace.
func (l *Line) Stripped() string { return l.stripped }

// CommandLetter returns 'G', 'M', 'T' or 0 if no command was recognized.
func (l *Line) CommandLetter() byte { return l.letter }

func (l *Line) CommandNumber() (int, bool) { return l.number, l.letter != 0 }

// Command returns the canonical command (e.g. "G1" for both "G1" and "G01"),
// or an empty string.
func (l *Line) Command() string { return l.command }

// Kind returns the command kind resolved at parse time.
func (l *Line) Kind() Kind { return l.kind }

// ToolNumber returns the selected tool for T commands.
func (l *Line) ToolNumber() (int, bool) { return l.number, l.letter == 'T' }

func (l *Line) S() (uint64, bool)  { return l.s.v, l.s.ok }
func (l *Line) P() (uint64, bool)  { return l.p.v, l.p.ok }
func (l *Line) X() (float64, bool) { return l.x.v, l.x.ok }
func (l *Line) Y() (float64, bool) { return l.y.v, l.y.ok }
func (l *Line) Z() (float64, bool) { return l.z.v, l.z.ok }
func (l *Line) E() (float64, bool) { return l.e.v, l.e.ok }

// F returns the feed rate (speed).
func (l *Line) F() (float64, bool) { return l.f.v, l.f.ok }

// StringData returns any unrecognized text following the parameters.
func (l *Line) StringData() (string, bool) { return l.stringData.v, l.stringData.ok }

// Comment returns the text following the first ';'.
func (l *Line) Comment() (string, bool) { return l.comment.v, l.comment.ok }

// Words returns the command followed by the X, Y, Z, F and E parameters
// that are present, in that order. These are the only words a regenerated
// line carries; S and P stay available through their accessors.
func (l *Line) Words() Block {
	var b Block
	if l.letter != 0 {
		b = append(b, Word{W: l.letter, Arg: float64(l.number)})
	}
	for _, f := range []struct {
		w byte
		v optFloat
	}{{'X', l.x}, {'Y', l.y}, {'Z', l.z}, {'F', l.f}, {'E', l.e}} {
		if f.v.ok {
			b = append(b, Word{W: f.w, Arg: f.v.v})
		}
	}
	return b
}

func (l *Line) String() string { return l.raw }
