package gcode

import "strings"

// span marks a captured substring; a zero span with ok == false is an absent group.
type span struct {
	val string
	ok  bool
}

// captures is the result of matching the line grammar against a single line.
type captures struct {
	line          string
	commandLetter span
	commandNumber span

	s, p, x, y, z, f, e span

	stringData span
	comment    span
}

// scanner walks the grammar left to right. Every group is optional; a group
// that fails to match leaves pos untouched.
type scanner struct {
	s   string
	pos int
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (sc *scanner) peek() (byte, bool) {
	if sc.pos >= len(sc.s) {
		return 0, false
	}
	return sc.s[sc.pos], true
}

// space consumes a single optional separator.
func (sc *scanner) space() {
	if c, ok := sc.peek(); ok && (c == ' ' || c == '\t') {
		sc.pos++
	}
}

// digits returns the end of a run of at most limit digits starting at i (limit < 0 is unbounded).
func (sc *scanner) digits(i, limit int) int {
	n := 0
	for i < len(sc.s) && isDigit(sc.s[i]) && (limit < 0 || n < limit) {
		i++
		n++
	}
	return i
}

func (sc *scanner) command() (letter, number span) {
	c, ok := sc.peek()
	if !ok || (c != 'G' && c != 'M' && c != 'T') {
		return
	}
	end := sc.digits(sc.pos+1, 3)
	if end == sc.pos+1 {
		return
	}
	letter = span{val: sc.s[sc.pos : sc.pos+1], ok: true}
	number = span{val: sc.s[sc.pos+1 : end], ok: true}
	sc.pos = end
	return
}

// integer matches `<letter>digit+`.
func (sc *scanner) integer(letter byte) span {
	if c, ok := sc.peek(); !ok || c != letter {
		return span{}
	}
	end := sc.digits(sc.pos+1, -1)
	if end == sc.pos+1 {
		return span{}
	}
	v := sc.s[sc.pos+1 : end]
	sc.pos = end
	return span{val: v, ok: true}
}

// float matches `<letter>['-']digit+['.'digit*]`.
func (sc *scanner) float(letter byte, signed bool) span {
	if c, ok := sc.peek(); !ok || c != letter {
		return span{}
	}
	start := sc.pos + 1
	i := start
	if signed && i < len(sc.s) && sc.s[i] == '-' {
		i++
	}
	end := sc.digits(i, -1)
	if end == i {
		return span{}
	}
	if end < len(sc.s) && sc.s[end] == '.' {
		end = sc.digits(end+1, -1)
	}
	sc.pos = end
	return span{val: sc.s[start:end], ok: true}
}

// match applies the line grammar to text. It never fails: text that does not
// resemble a command simply leaves every group absent.
func match(text string) captures {
	var c captures
	text = strings.TrimSpace(text)

	line := text
	if i := strings.IndexByte(text, ';'); i >= 0 {
		line = text[:i]
		c.comment = span{val: text[i+1:], ok: true}
	}
	c.line = strings.TrimSpace(line)

	sc := &scanner{s: line}
	c.commandLetter, c.commandNumber = sc.command()
	sc.space()

	c.s = sc.integer('S')
	sc.space()
	c.p = sc.integer('P')
	sc.space()
	c.x = sc.float('X', true)
	sc.space()
	c.y = sc.float('Y', true)
	sc.space()
	c.z = sc.float('Z', true)
	sc.space()
	c.f = sc.float('F', false)
	sc.space()
	c.e = sc.float('E', true)
	sc.space()

	if rest := strings.TrimSpace(line[sc.pos:]); rest != "" {
		c.stringData = span{val: rest, ok: true}
	}

	return c
}
