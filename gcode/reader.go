package gcode

import (
	"bufio"
	"io"
	"strings"
)

// Reader is a source of parsed lines.
type Reader interface {
	Read() (*Line, error)
}

// LinesReader serves Lines from memory.
type LinesReader struct {
	Lines []*Line
	n     int
}

func (r *LinesReader) Read() (*Line, error) {
	if r.n == len(r.Lines) {
		return nil, io.EOF
	}

	r.n++
	return r.Lines[r.n-1], nil
}

// Parser reads text and parses one Line per input line.
type Parser struct {
	br    *bufio.Reader
	codes CodeTable
}

func NewParser(r io.Reader) *Parser {
	return NewParserWithCodes(r, DefaultCodes)
}

func NewParserWithCodes(r io.Reader, codes CodeTable) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br, codes: codes}
	}

	return &Parser{br: bufio.NewReader(r), codes: codes}
}

// Read returns the next line, including empty and comment-only lines. It
// returns io.EOF once the input is exhausted.
func (p *Parser) Read() (*Line, error) {
	s, err := p.br.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err != nil {
		return nil, err
	}

	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return ParseWithCodes(s, p.codes), nil
}

// ParseAll parses every line of data.
func ParseAll(data string) ([]*Line, error) {
	r := NewParser(strings.NewReader(data))
	var lines []*Line
	for {
		l, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// MustParseAll is like ParseAll but panics on error.
func MustParseAll(data string) []*Line {
	lines, err := ParseAll(data)
	if err != nil {
		panic(err)
	}
	return lines
}
