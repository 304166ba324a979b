package marker_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/markerlen/pkg/marker"
)

// FuzzMarkers checks enumeration invariants on arbitrary input.
func FuzzMarkers(f *testing.F) {
	seeds := []string{
		"",
		"ADVENT",
		"A(1x5)BC",
		"(3x3)XYZ",
		"A(2x2)BCD(2x2)EFG",
		"(6x1)(1x3)A",
		"X(8x2)(3x3)ABCY",
		"(27x12)(20x12)(13x14)(7x10)(1x12)A",
		"((((",
		"(1x",
		"(99999999999999999999999x1)A",
		"(5x2)AB",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		prevEnd := 0
		for m, err := range marker.Markers(input) {
			if err != nil {
				if !errors.Is(err, marker.ErrNumericOverflow) && !errors.Is(err, marker.ErrTruncatedMarker) {
					t.Fatalf("unexpected error type: %v", err)
				}
				return
			}
			if m.Start >= m.End {
				t.Fatalf("empty marker span: %+v", m)
			}
			if m.Start < prevEnd {
				t.Fatalf("marker %+v overlaps previous data region ending at %d", m, prevEnd)
			}
			if m.DataEnd() > len(input) {
				t.Fatalf("data region of %+v exceeds input length %d", m, len(input))
			}
			if m.Chars < 0 || m.Reps < 0 {
				t.Fatalf("negative counts: %+v", m)
			}
			prevEnd = m.DataEnd()
		}
	})
}
