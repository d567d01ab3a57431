package gcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	assert.Equal(t, 15, Checksum("G1 X10"))
	assert.Equal(t, 0, Checksum(""))
	assert.Equal(t, int('G'), Checksum("G"))
}

func TestLine_Render(t *testing.T) {
	assert.Equal(t, "G1 X10*15", Parse("G1 X10").Render())
	assert.Equal(t, "G1 X10*15", Parse("  G1 X10 ; go right").Render())
	assert.Equal(t, "M104 S200*57", Parse("M104 S200").Render())
	assert.Equal(t, "*0", Parse("; comment").Render())

	// multipliers only apply to numbered output
	l := Parse("G1 X1 E2")
	l.Multipliers = Multipliers{Extrusion: 2, Speed: 2}
	assert.Equal(t, "G1 X1 E2*104", l.Render())
}

func TestLine_RenderNumbered(t *testing.T) {
	l := Parse("G1 X10")
	assert.Equal(t, "N5 G1 X10*15", l.RenderNumbered(5))
	assert.Equal(t, "N5 "+l.Render(), l.RenderNumbered(5))
	assert.Equal(t, "N0 G1 X10*15", l.RenderNumbered(0))
	assert.Equal(t, l.Render(), l.RenderNumbered(-1))
}

func TestLine_RenderNumbered_Multipliers(t *testing.T) {
	const raw = "G1 X10 Y20 Z5 F1500 E2.5"

	cases := []struct {
		name string
		raw  string
		m    Multipliers
		exp  string
	}{
		{"none", raw, Multipliers{}, "N1 G1 X10 Y20 Z5 F1500 E2.5*21"},
		{"extrusion", raw, Multipliers{Extrusion: 2}, "N1 G1 X10.0 Y20.0 Z5.0 F1500.0 E5.0*23"},
		{"speed and extrusion", raw, Multipliers{Extrusion: 2, Speed: 2}, "N1 G1 X10.0 Y20.0 Z5.0 F3000.0 E5.0*16"},
		{"invalid only", raw, Multipliers{Extrusion: 0, Speed: -1, Travel: -3}, "N1 G1 X10 Y20 Z5 F1500 E2.5*21"},
		{"invalid extrusion", raw, Multipliers{Extrusion: -1, Speed: 1}, "N1 G1 X10.0 Y20.0 Z5.0 F1500.0 E2.5*21"},
		{"nan extrusion", raw, Multipliers{Extrusion: math.NaN(), Speed: 1}, "N1 G1 X10.0 Y20.0 Z5.0 F1500.0 E2.5*21"},
		{"inf extrusion", raw, Multipliers{Extrusion: math.Inf(1), Speed: 1}, "N1 G1 X10.0 Y20.0 Z5.0 F1500.0 E2.5*21"},
		{"travel ignored on extrusion", raw, Multipliers{Travel: 2, Speed: 1}, "N1 G1 X10.0 Y20.0 Z5.0 F1500.0 E2.5*21"},
		{"travel", "G0 X10 F1500", Multipliers{Travel: 2, Speed: 1}, "N1 G0 X10.0 F3000.0*107"},
		{"travel alone", "G0 X10 F1500", Multipliers{Travel: 2}, "N1 G0 X10 F1500*108"},
		{"absent fields", "G1 X1 E2", Multipliers{Extrusion: 2, Speed: 3, Travel: 4}, "N1 G1 X1.0 E4.0*110"},
		{"integers dropped", "M104 S200", Multipliers{Extrusion: 2}, "N1 M104*120"},
		{"large integers dropped", "M104 S18446744073709551615", Multipliers{Speed: 2}, "N1 M104*120"},
		{"dwell", "G4 P9007199254740993", Multipliers{Extrusion: 2}, "N1 G4*115"},
		{"string data", "M117 Hello world ; status", Multipliers{Speed: 1}, "N1 M117 Hello world*90"},
	}

	for _, c := range cases {
		l := Parse(c.raw)
		l.Multipliers = c.m
		assert.Equal(t, c.exp, l.RenderNumbered(1), c.name)
	}
}

func TestLine_Regenerate(t *testing.T) {
	l := Parse("G1 X1 F100 E2 ; comment")
	assert.Equal(t, "G1 X1.0 F100.0 E4.0", l.Regenerate(Multipliers{Extrusion: 2}))
	assert.Equal(t, "G1 X1.0 F100.0 E2.0", l.Regenerate(Multipliers{}))

	// parsed values are untouched
	e, _ := l.E()
	assert.Equal(t, 2.0, e)
	assert.Equal(t, "G1 X1 F100 E2 ; comment", l.Raw())
}

func TestWord_String(t *testing.T) {
	assert.Equal(t, "E5.0", Word{W: 'E', Arg: 5}.String())
	assert.Equal(t, "X-0.5", Word{W: 'X', Arg: -0.5}.String())
	assert.Equal(t, "G1", Word{W: 'G', Arg: 1}.String())
	assert.Equal(t, "M104", Word{W: 'M', Arg: 104}.String())
	assert.Equal(t, "G1 X1.0 F300.0", Block{{W: 'G', Arg: 1}, {W: 'X', Arg: 1}, {W: 'F', Arg: 300}}.String())
}
