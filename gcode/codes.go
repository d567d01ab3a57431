package gcode

// Kind is the semantic meaning of a command, resolved through a CodeTable.
type Kind int

const (
	KindNone Kind = iota
	KindRapidMove
	KindControlledMove
	KindDwell
	KindHome
	KindAbsolute
	KindRelative
	KindSetPosition
	KindExtruderTemp
	KindBedTemp
	KindFanOn
	KindFanOff
	KindSetLineNumber
	KindToolChange
)

var kindNames = map[Kind]string{
	KindNone:           "none",
	KindRapidMove:      "rapid_move",
	KindControlledMove: "controlled_move",
	KindDwell:          "dwell",
	KindHome:           "home",
	KindAbsolute:       "absolute",
	KindRelative:       "relative",
	KindSetPosition:    "set_position",
	KindExtruderTemp:   "extruder_temp",
	KindBedTemp:        "bed_temp",
	KindFanOn:          "fan_on",
	KindFanOff:         "fan_off",
	KindSetLineNumber:  "set_line_number",
	KindToolChange:     "tool_change",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// CodeTable maps command kinds to the canonical command text (e.g. "G1").
// Codes are expected to be unique; when two kinds share a code the lower
// Kind wins.
type CodeTable map[Kind]string

// DefaultCodes is the RepRap/Marlin flavoured table used by Parse.
var DefaultCodes = CodeTable{
	KindRapidMove:      "G0",
	KindControlledMove: "G1",
	KindDwell:          "G4",
	KindHome:           "G28",
	KindAbsolute:       "G90",
	KindRelative:       "G91",
	KindSetPosition:    "G92",
	KindExtruderTemp:   "M104",
	KindBedTemp:        "M140",
	KindFanOn:          "M106",
	KindFanOff:         "M107",
	KindSetLineNumber:  "M110",
}

// Lookup returns the kind registered for command, or KindNone.
func (t CodeTable) Lookup(command string) Kind {
	if command == "" {
		return KindNone
	}
	found := KindNone
	for k, code := range t {
		if code == command && (found == KindNone || k < found) {
			found = k
		}
	}
	return found
}
