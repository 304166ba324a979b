package marker

import "strconv"

// Marker is one "(NxM)" token found in a string.
// Offsets are absolute indexes into the string that was scanned.
type Marker struct {
	// Start is the index of the opening parenthesis.
	Start int

	// End is the index just past the closing parenthesis, where the data region begins.
	End int

	// Chars is the number of data characters the marker governs.
	Chars int

	// Reps is the repeat multiplier.
	Reps int
}

// SpanLength returns the number of characters the token itself occupies.
func (m Marker) SpanLength() int {
	return m.End - m.Start
}

// DataEnd returns the exclusive end of the data region.
func (m Marker) DataEnd() int {
	return m.End + m.Chars
}

// Data returns the data region of m within s.
// The caller must pass the string m was scanned from.
func (m Marker) Data(s string) string {
	return s[m.End:m.DataEnd()]
}

// Token returns the marker text within s.
func (m Marker) Token(s string) string {
	return s[m.Start:m.End]
}

// String renders the marker in its canonical form, e.g. "(3x3)".
func (m Marker) String() string {
	return "(" + strconv.Itoa(m.Chars) + "x" + strconv.Itoa(m.Reps) + ")"
}
