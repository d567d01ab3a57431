package gcode

import "strconv"

// Checksum returns the XOR of every byte in s.
func Checksum(s string) int {
	var cs byte
	for i := 0; i < len(s); i++ {
		cs ^= s[i]
	}
	return int(cs)
}

// withChecksum appends `*<checksum>` with the checksum in decimal.
func withChecksum(s string) string {
	return s + "*" + strconv.Itoa(Checksum(s))
}

func withLineNumber(n int64, s string) string {
	return "N" + strconv.FormatInt(n, 10) + " " + s
}
