package marker_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markerlen/pkg/marker"
)

func TestNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		offset int
		want   marker.Marker
		wantOK bool
	}{
		{"no markers", "ADVENT", 0, marker.Marker{}, false},
		{"empty input", "", 0, marker.Marker{}, false},
		{"marker at start", "(3x3)XYZ", 0, marker.Marker{Start: 0, End: 5, Chars: 3, Reps: 3}, true},
		{"marker after literal", "A(1x5)BC", 0, marker.Marker{Start: 1, End: 6, Chars: 1, Reps: 5}, true},
		{"multi digit counts", "(27x12)", 0, marker.Marker{Start: 0, End: 7, Chars: 27, Reps: 12}, true},
		{"offset skips earlier marker", "(1x1)A(2x2)BC", 1, marker.Marker{Start: 6, End: 11, Chars: 2, Reps: 2}, true},
		{"offset past end", "(1x1)A", 10, marker.Marker{}, false},
		{"negative offset clamps to zero", "(1x1)A", -3, marker.Marker{Start: 0, End: 5, Chars: 1, Reps: 1}, true},
		{"leftmost complete match wins", "((3x3)ABC", 0, marker.Marker{Start: 1, End: 6, Chars: 3, Reps: 3}, true},
		{"zero counts are legal", "(0x0)", 0, marker.Marker{Start: 0, End: 5, Chars: 0, Reps: 0}, true},
		{"leading zeros", "(007x02)", 0, marker.Marker{Start: 0, End: 8, Chars: 7, Reps: 2}, true},
		{"missing x", "(33)ABC", 0, marker.Marker{}, false},
		{"uppercase X", "(3X3)ABC", 0, marker.Marker{}, false},
		{"non-digit count", "(ax3)ABC", 0, marker.Marker{}, false},
		{"empty count", "(x3)ABC", 0, marker.Marker{}, false},
		{"empty reps", "(3x)ABC", 0, marker.Marker{}, false},
		{"sign is not a digit", "(+3x3)ABC", 0, marker.Marker{}, false},
		{"embedded space", "(3 x3)ABC", 0, marker.Marker{}, false},
		{"unterminated at end of input", "AB(3x3", 0, marker.Marker{}, false},
		{"open paren at end of input", "AB(", 0, marker.Marker{}, false},
		{
			"invalid occurrence followed by valid marker",
			"(3x)(2x2)AB",
			0,
			marker.Marker{Start: 4, End: 9, Chars: 2, Reps: 2},
			true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, ok, err := marker.Next(testCase.input, testCase.offset)
			require.NoError(t, err)
			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestNext_NumericOverflow(t *testing.T) {
	t.Parallel()

	huge := strings.Repeat("9", 40)

	t.Run("count overflow", func(t *testing.T) {
		t.Parallel()

		_, _, err := marker.Next("A("+huge+"x2)BC", 0)
		require.Error(t, err)
		require.ErrorIs(t, err, marker.ErrNumericOverflow)

		var formatErr *marker.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, 1, formatErr.Offset)
		assert.Contains(t, formatErr.Error(), "...")
	})

	t.Run("reps overflow", func(t *testing.T) {
		t.Parallel()

		_, _, err := marker.Next("(2x"+huge+")BC", 0)
		require.ErrorIs(t, err, marker.ErrNumericOverflow)
	})

	t.Run("incomplete token is literal even with huge digits", func(t *testing.T) {
		t.Parallel()

		_, ok, err := marker.Next("("+huge+"x2", 0)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMarker_Accessors(t *testing.T) {
	t.Parallel()

	input := "X(8x2)(3x3)ABCY"
	m, ok, err := marker.Next(input, 0)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 5, m.SpanLength())
	assert.Equal(t, 14, m.DataEnd())
	assert.Equal(t, "(3x3)ABC", m.Data(input))
	assert.Equal(t, "(8x2)", m.Token(input))
	assert.Equal(t, "(8x2)", m.String())
}

func TestAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []marker.Marker
	}{
		{
			name:  "no markers",
			input: "ADVENT",
			want:  nil,
		},
		{
			name:  "two markers",
			input: "A(2x2)BCD(2x2)EFG",
			want: []marker.Marker{
				{Start: 1, End: 6, Chars: 2, Reps: 2},
				{Start: 9, End: 14, Chars: 2, Reps: 2},
			},
		},
		{
			name:  "marker inside data region is skipped",
			input: "(6x1)(1x3)A",
			want: []marker.Marker{
				{Start: 0, End: 5, Chars: 6, Reps: 1},
			},
		},
		{
			name:  "scanning resumes after data region",
			input: "X(8x2)(3x3)ABCY",
			want: []marker.Marker{
				{Start: 1, End: 6, Chars: 8, Reps: 2},
			},
		},
		{
			name:  "data region may hold a partial marker",
			input: "(2x2)(3x3)ABC",
			want: []marker.Marker{
				{Start: 0, End: 5, Chars: 2, Reps: 2},
			},
		},
		{
			name:  "empty data region",
			input: "(0x9)(1x2)A",
			want: []marker.Marker{
				{Start: 0, End: 5, Chars: 0, Reps: 9},
				{Start: 5, End: 10, Chars: 1, Reps: 2},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := marker.All(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestMarkers_Truncated(t *testing.T) {
	t.Parallel()

	input := "AB(5x2)XYZ"

	var (
		seen    []marker.Marker
		lastErr error
	)
	for m, err := range marker.Markers(input) {
		if err != nil {
			lastErr = err
			seen = append(seen, m)
			break
		}
		seen = append(seen, m)
	}

	require.ErrorIs(t, lastErr, marker.ErrTruncatedMarker)
	require.Len(t, seen, 1)
	assert.Equal(t, 2, seen[0].Start, "the offending marker is reported with the error")

	_, err := marker.All(input)
	require.ErrorIs(t, err, marker.ErrTruncatedMarker)

	var formatErr *marker.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "(5x2)", formatErr.Token)
}

func TestMarkers_Restartable(t *testing.T) {
	t.Parallel()

	input := "(25x3)(3x3)ABC(2x3)XY(5x2)PQRSTX(18x9)(3x2)TWO(5x7)SEVEN"
	seq := marker.Markers(input)

	collect := func() []marker.Marker {
		var out []marker.Marker
		for m, err := range seq {
			require.NoError(t, err)
			out = append(out, m)
		}
		return out
	}

	first := collect()
	second := collect()
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)

	again, err := marker.All(input)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestMarkers_EarlyBreak(t *testing.T) {
	t.Parallel()

	count := 0
	for range marker.Markers("(1x1)A(1x1)B(1x1)C") {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestMarkersIn(t *testing.T) {
	t.Parallel()

	input := "X(8x2)(3x3)ABCY"
	outer, ok, err := marker.Next(input, 0)
	require.NoError(t, err)
	require.True(t, ok)

	var inner []marker.Marker
	for m, err := range marker.MarkersIn(input, outer.End, outer.DataEnd()) {
		require.NoError(t, err)
		inner = append(inner, m)
	}

	require.Len(t, inner, 1)
	assert.Equal(t, marker.Marker{Start: 6, End: 11, Chars: 3, Reps: 3}, inner[0])
	assert.Equal(t, "ABC", inner[0].Data(input))
}

func TestMarkersIn_WindowBoundsTruncation(t *testing.T) {
	t.Parallel()

	// The inner (3x3) needs three data characters but the window ends after two.
	input := "(7x2)(3x3)ABCDEF"

	_, err := collectErr(marker.MarkersIn(input, 5, 12))
	require.ErrorIs(t, err, marker.ErrTruncatedMarker)
}

func TestCursor(t *testing.T) {
	t.Parallel()

	input := "A(1x5)BC(2x2)DE"
	cursor := marker.NewCursor(input, 0, len(input))

	m, ok, err := cursor.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, m.Start)
	assert.Equal(t, 7, cursor.Offset())

	forked := cursor

	m, ok, err = cursor.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 8, m.Start)

	_, ok, err = cursor.Next()
	require.NoError(t, err)
	assert.False(t, ok)

	m, ok, err = forked.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 8, m.Start, "a copied cursor resumes independently")
}

func TestNewCursor_ClampsBounds(t *testing.T) {
	t.Parallel()

	cursor := marker.NewCursor("(1x1)A", -5, 99)
	m, ok, err := cursor.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, m.Start)
}

func collectErr(seq func(func(marker.Marker, error) bool)) ([]marker.Marker, error) {
	var out []marker.Marker
	for m, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, nil
}
