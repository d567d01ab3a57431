package job

import (
	"bytes"
	"io"

	"github.com/mastercactapus/gcline/gcode"
)

// Buffer turns a gcode.Reader into a stream of numbered, checksummed
// lines ready for transmission. Empty lines are dropped.
type Buffer struct {
	gr  gcode.Reader
	buf bytes.Buffer
	err error

	mul  gcode.Multipliers
	next int64
}

var _ io.Reader = &Buffer{}

// NewBuffer numbers lines starting at start and renders each with mul.
func NewBuffer(r gcode.Reader, mul gcode.Multipliers, start int64) *Buffer {
	return &Buffer{gr: r, mul: mul, next: start}
}

// Next returns the line number that will be assigned to the next line.
func (b *Buffer) Next() int64 { return b.next }

func (b *Buffer) Read(p []byte) (n int, err error) {
	for b.err == nil && b.buf.Len() < len(p) {
		var l *gcode.Line
		l, b.err = b.gr.Read()
		if b.err != nil {
			break
		}
		if l.Empty() {
			continue
		}
		lc := *l
		lc.Multipliers = b.mul
		b.buf.WriteString(lc.RenderNumbered(b.next) + "\n")
		b.next++
	}

	if b.buf.Len() > 0 {
		return b.buf.Read(p)
	}
	return 0, b.err
}
