package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine_Classify(t *testing.T) {
	cases := []struct {
		raw                                   string
		empty, move, travel, extrusion, home bool
	}{
		{raw: "G1 X10 Y20 Z5 F1500 E2.5", move: true, extrusion: true},
		{raw: "G0 X10 Y20 F3000", move: true, travel: true},
		{raw: "G1 X1 E-2", move: true},
		{raw: "G1 E0", move: true},
		{raw: "G00 X1", move: true, travel: true},
		{raw: "G28 X0 Y0 Z0", home: true},
		{raw: "G28 X0 Y0"},
		{raw: "G28"},
		{raw: "M104 S200"},
		{raw: "", empty: true},
		{raw: ";comment", empty: true},
	}

	for _, c := range cases {
		l := Parse(c.raw)
		assert.Equal(t, c.empty, l.Empty(), "empty: "+c.raw)
		assert.Equal(t, c.move, l.IsMove(), "move: "+c.raw)
		assert.Equal(t, c.travel, l.IsTravelMove(), "travel: "+c.raw)
		assert.Equal(t, c.extrusion, l.IsExtrusionMove(), "extrusion: "+c.raw)
		assert.Equal(t, c.home, l.IsFullHome(), "home: "+c.raw)
	}
}

func TestCodeTable_Lookup(t *testing.T) {
	assert.Equal(t, KindHome, DefaultCodes.Lookup("G28"))
	assert.Equal(t, KindNone, DefaultCodes.Lookup("G999"))
	assert.Equal(t, KindNone, DefaultCodes.Lookup(""))

	codes := CodeTable{KindHome: "G161"}
	l := ParseWithCodes("G161 X0 Y0 Z0", codes)
	assert.True(t, l.IsFullHome())
	assert.False(t, ParseWithCodes("G28 X0 Y0 Z0", codes).IsFullHome())
}

func TestCodeTable_LookupDuplicate(t *testing.T) {
	codes := CodeTable{KindFanOff: "M1", KindDwell: "M1", KindBedTemp: "M1"}
	for i := 0; i < 50; i++ {
		assert.Equal(t, KindDwell, codes.Lookup("M1"))
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "controlled_move", KindControlledMove.String())
	assert.Equal(t, "unknown", Kind(1000).String())
}
