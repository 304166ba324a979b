package marker

import (
	"iter"
	"strconv"
	"strings"
)

// Next returns the first marker that starts at or after offset.
// ok is false when the rest of s holds no complete marker token.
//
// Next only recognises tokens; it does not check that the data region fits
// in s. Use Markers or a Cursor to enumerate with the skip-ahead rule.
func Next(s string, offset int) (Marker, bool, error) {
	return scan(s, max(offset, 0), len(s))
}

// scan finds the leftmost complete token inside s[lo:hi].
func scan(s string, lo, hi int) (Marker, bool, error) {
	for pos := lo; pos < hi; {
		idx := strings.IndexByte(s[pos:hi], '(')
		if idx < 0 {
			return Marker{}, false, nil
		}
		start := pos + idx

		m, ok, err := matchAt(s, start, hi)
		if err != nil {
			return Marker{}, false, err
		}
		if ok {
			return m, true, nil
		}

		// Not a marker; the parenthesis is literal data.
		pos = start + 1
	}
	return Marker{}, false, nil
}

// matchAt tries to match "(" digits "x" digits ")" with s[start] == '('.
func matchAt(s string, start, hi int) (Marker, bool, error) {
	charsStart := start + 1
	charsEnd := skipDigits(s, charsStart, hi)
	if charsEnd == charsStart || charsEnd >= hi || s[charsEnd] != 'x' {
		return Marker{}, false, nil
	}

	repsStart := charsEnd + 1
	repsEnd := skipDigits(s, repsStart, hi)
	if repsEnd == repsStart || repsEnd >= hi || s[repsEnd] != ')' {
		return Marker{}, false, nil
	}

	end := repsEnd + 1
	chars, err := parseCount(s[charsStart:charsEnd])
	if err != nil {
		return Marker{}, false, &FormatError{Err: ErrNumericOverflow, Offset: start, Token: s[start:end]}
	}
	reps, err := parseCount(s[repsStart:repsEnd])
	if err != nil {
		return Marker{}, false, &FormatError{Err: ErrNumericOverflow, Offset: start, Token: s[start:end]}
	}

	return Marker{Start: start, End: end, Chars: chars, Reps: reps}, true, nil
}

// skipDigits returns the index of the first non-digit in s[pos:hi].
func skipDigits(s string, pos, hi int) int {
	for pos < hi && s[pos] >= '0' && s[pos] <= '9' {
		pos++
	}
	return pos
}

// parseCount parses a validated run of ASCII digits.
// The only possible failure is strconv.ErrRange.
func parseCount(digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, err //nolint:wrapcheck // Callers wrap into FormatError.
	}
	return n, nil
}

// Cursor enumerates markers within a window of a string, applying the
// skip-ahead rule: after each marker, scanning resumes at the end of its data
// region. A Cursor is a plain value; copying it forks the enumeration.
type Cursor struct {
	s   string
	pos int
	hi  int
}

// NewCursor returns a Cursor over s[lo:hi]. Bounds are clamped to s.
// Marker offsets remain absolute indexes into s.
func NewCursor(s string, lo, hi int) Cursor {
	hi = min(max(hi, 0), len(s))
	lo = min(max(lo, 0), hi)
	return Cursor{s: s, pos: lo, hi: hi}
}

// Next returns the next marker in the window.
// ok is false once the window is exhausted.
//
// A marker whose data region extends past the window is returned together
// with a *FormatError wrapping ErrTruncatedMarker; the cursor does not advance
// past it.
func (c *Cursor) Next() (Marker, bool, error) {
	if c.pos >= c.hi {
		return Marker{}, false, nil
	}

	m, ok, err := scan(c.s, c.pos, c.hi)
	if err != nil || !ok {
		return Marker{}, false, err
	}

	// Compared without computing End+Chars, which may overflow.
	if m.Chars > c.hi-m.End {
		return m, true, &FormatError{Err: ErrTruncatedMarker, Offset: m.Start, Token: m.Token(c.s)}
	}

	c.pos = m.DataEnd()
	return m, true, nil
}

// Offset returns the index at which the next search starts.
func (c *Cursor) Offset() int {
	return c.pos
}

// Markers enumerates every top-level marker in s.
// The sequence is lazy and may be ranged over any number of times.
// It stops after yielding the first error.
func Markers(s string) iter.Seq2[Marker, error] {
	return MarkersIn(s, 0, len(s))
}

// MarkersIn enumerates the top-level markers of the window s[lo:hi].
// Data regions must end within the window.
func MarkersIn(s string, lo, hi int) iter.Seq2[Marker, error] {
	return func(yield func(Marker, error) bool) {
		cursor := NewCursor(s, lo, hi)
		for {
			m, ok, err := cursor.Next()
			if err != nil {
				yield(m, err)
				return
			}
			if !ok || !yield(m, nil) {
				return
			}
		}
	}
}

// All collects the top-level markers of s.
func All(s string) ([]Marker, error) {
	var markers []Marker
	for m, err := range Markers(s) {
		if err != nil {
			return nil, err
		}
		markers = append(markers, m)
	}
	return markers, nil
}
