package gcode

import "math"

// Multipliers scale speed and extrusion at render time. A value is only
// applied when it is a finite number greater than zero; anything else is
// ignored.
type Multipliers struct {
	// Speed scales F on extrusion moves.
	Speed float64
	// Extrusion scales E.
	Extrusion float64
	// Travel scales F on travel moves.
	Travel float64
}

func active(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Active reports if Speed or Extrusion would change a rendered line.
func (m Multipliers) Active() bool {
	return active(m.Speed) || active(m.Extrusion)
}

func (l *Line) recomputedE(m Multipliers) float64 {
	if active(m.Extrusion) {
		return l.e.v * m.Extrusion
	}
	return l.e.v
}

func (l *Line) recomputedF(m Multipliers) float64 {
	switch {
	case l.IsTravelMove() && active(m.Travel):
		return l.f.v * m.Travel
	case l.IsExtrusionMove() && active(m.Speed):
		return l.f.v * m.Speed
	}
	return l.f.v
}

// Regenerate reassembles the line from its parsed fields with F and E
// recomputed under m. The comment is dropped; no checksum is added.
func (l *Line) Regenerate(m Multipliers) string {
	b := l.Words()
	b.SetArg('F', l.recomputedF(m))
	b.SetArg('E', l.recomputedE(m))

	s := b.String()
	if l.stringData.ok {
		if s != "" {
			s += " "
		}
		s += l.stringData.v
	}
	return s
}

// Render returns the line without its comment and with a checksum appended.
// Multipliers are not applied.
func (l *Line) Render() string {
	return withChecksum(l.stripped)
}

// RenderNumbered returns the transmission-ready form of the line prefixed
// with line number n. A negative n means no line number and behaves like
// Render.
//
// When a Speed or Extrusion multiplier is active the line is regenerated
// with adjusted F and E values before the checksum is computed.
func (l *Line) RenderNumbered(n int64) string {
	if n < 0 {
		return l.Render()
	}
	m := l.Multipliers
	if !m.Active() {
		return withLineNumber(n, l.Render())
	}
	return withLineNumber(n, withChecksum(l.Regenerate(m)))
}
