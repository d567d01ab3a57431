package job

import (
	"io"

	"github.com/mastercactapus/gcline/gcode"
)

// Stats summarizes the lines of a job.
type Stats struct {
	Lines           int `json:"lines"`
	Empty           int `json:"empty"`
	Moves           int `json:"moves"`
	TravelMoves     int `json:"travelMoves"`
	ExtrusionMoves  int `json:"extrusionMoves"`
	FullHomes       int `json:"fullHomes"`
	ToolChanges     int `json:"toolChanges"`
	Comments        int `json:"comments"`
	UnknownCommands int `json:"unknownCommands"`
}

// Add classifies l and records it.
func (s *Stats) Add(l *gcode.Line) {
	s.Lines++
	if _, ok := l.Comment(); ok {
		s.Comments++
	}
	if l.Empty() {
		s.Empty++
		return
	}
	if l.Kind() == gcode.KindNone {
		s.UnknownCommands++
	}
	if l.IsMove() {
		s.Moves++
	}
	if l.IsTravelMove() {
		s.TravelMoves++
	}
	if l.IsExtrusionMove() {
		s.ExtrusionMoves++
	}
	if l.IsFullHome() {
		s.FullHomes++
	}
	if l.IsToolChange() {
		s.ToolChanges++
	}
}

// Collect reads every line from r.
func Collect(r gcode.Reader) (*Stats, error) {
	var s Stats
	for {
		l, err := r.Read()
		if err == io.EOF {
			return &s, nil
		}
		if err != nil {
			return nil, err
		}
		s.Add(l)
	}
}
