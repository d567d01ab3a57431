package gcode

// Empty reports that no command was recognized on the line.
func (l *Line) Empty() bool { return l.command == "" }

// IsMove reports a rapid or controlled move.
func (l *Line) IsMove() bool {
	return l.kind == KindRapidMove || l.kind == KindControlledMove
}

// IsTravelMove reports a move without an E parameter.
func (l *Line) IsTravelMove() bool { return l.IsMove() && !l.e.ok }

// IsExtrusionMove reports a move that deposits material (E > 0).
func (l *Line) IsExtrusionMove() bool { return l.IsMove() && l.e.ok && l.e.v > 0 }

// IsFullHome reports a home command naming all three axes.
func (l *Line) IsFullHome() bool {
	return l.kind == KindHome && l.x.ok && l.y.ok && l.z.ok
}

func (l *Line) IsToolChange() bool { return l.letter == 'T' }
