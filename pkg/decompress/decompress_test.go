package decompress_test

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markerlen/pkg/decompress"
	"github.com/yaklabco/markerlen/pkg/marker"
)

func TestFlatLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"no markers", "ADVENT", 6},
		{"single character repeated", "A(1x5)BC", 7},
		{"whole tail repeated", "(3x3)XYZ", 9},
		{"two markers", "A(2x2)BCD(2x2)EFG", 11},
		{"marker inside data is literal", "(6x1)(1x3)A", 6},
		{"nested marker not expanded", "X(8x2)(3x3)ABCY", 18},
		{"empty input", "", 0},
		{"zero chars removes only the token", "AB(0x5)C", 3},
		{"zero reps removes token and data", "(3x0)ABCD", 1},
		{"unmatched parens are data", "(A)(3x)B", 8},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := decompress.FlatLength(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestRecursiveLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"no markers", "ADVENT", 6},
		{"no nested markers", "(3x3)XYZ", 9},
		{"nested marker expanded", "X(8x2)(3x3)ABCY", 20},
		{"deep chain", "(27x12)(20x12)(13x14)(7x10)(1x12)A", 241920},
		{"mixed nesting", "(25x3)(3x3)ABC(2x3)XY(5x2)PQRSTX(18x9)(3x2)TWO(5x7)SEVEN", 445},
		{"empty input", "", 0},
		{"nested marker that shrinks", "(6x1)(1x1)A", 1},
		{"zero reps inside data", "(6x2)(1x0)AB", 1},
		{"zero chars inside data", "(5x3)(0x9)Z", 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := decompress.RecursiveLength(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestLength_Dispatch(t *testing.T) {
	t.Parallel()

	input := "X(8x2)(3x3)ABCY"

	flat, err := decompress.Length(input, decompress.VersionFlat)
	require.NoError(t, err)
	assert.Equal(t, int64(18), flat)

	recursive, err := decompress.Length(input, decompress.VersionRecursive)
	require.NoError(t, err)
	assert.Equal(t, int64(20), recursive)

	_, err = decompress.Length(input, decompress.Version(7))
	require.ErrorIs(t, err, decompress.ErrUnknownVersion)
}

func TestLength_FormatErrorsPropagate(t *testing.T) {
	t.Parallel()

	huge := strings.Repeat("9", 30)

	// A region repeated zero times contributes nothing but is still checked.
	hidden := "(1x" + huge + ")A"
	zeroReps := fmt.Sprintf("(%dx0)%s", len(hidden), hidden)

	tests := []struct {
		name          string
		input         string
		wantErr       error
		recursiveOnly bool
	}{
		{name: "truncated top level", input: "AB(5x2)XY", wantErr: marker.ErrTruncatedMarker},
		{name: "count overflow", input: "(" + huge + "x2)A", wantErr: marker.ErrNumericOverflow},
		{name: "reps overflow", input: "(1x" + huge + ")A", wantErr: marker.ErrNumericOverflow},
		{
			name:          "overflow inside zero-repeat region",
			input:         zeroReps,
			wantErr:       marker.ErrNumericOverflow,
			recursiveOnly: true,
		},
		{
			name:          "truncated inside zero-repeat region",
			input:         "(7x0)(9x1)AB",
			wantErr:       marker.ErrTruncatedMarker,
			recursiveOnly: true,
		},
		{
			name:          "truncated below a zero-repeat region",
			input:         "(12x0)(7x1)(9x1)AB",
			wantErr:       marker.ErrTruncatedMarker,
			recursiveOnly: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			versions := []decompress.Version{decompress.VersionFlat, decompress.VersionRecursive}
			if testCase.recursiveOnly {
				versions = versions[1:]
			}

			for _, version := range versions {
				n, err := decompress.Length(testCase.input, version)
				require.ErrorIs(t, err, testCase.wantErr, "version %s", version)
				assert.Zero(t, n)

				var formatErr *marker.FormatError
				assert.ErrorAs(t, err, &formatErr)
			}
		})
	}
}

func TestRecursiveLength_TruncatedInsideDataRegion(t *testing.T) {
	t.Parallel()

	// The outer region "(3x3)AB" is whole, but the inner marker wants three
	// characters and its window holds two.
	input := "(7x2)(3x3)ABC"

	flat, err := decompress.FlatLength(input)
	require.NoError(t, err, "flat rule never looks inside the region")
	assert.Equal(t, int64(15), flat)

	_, err = decompress.RecursiveLength(input)
	require.ErrorIs(t, err, marker.ErrTruncatedMarker)
}

func TestLength_Overflow(t *testing.T) {
	t.Parallel()

	maxInt := fmt.Sprint(int64(math.MaxInt64))

	t.Run("flat sum overflows", func(t *testing.T) {
		t.Parallel()

		input := "(1x" + maxInt + ")A(1x2)B"
		_, err := decompress.FlatLength(input)
		require.ErrorIs(t, err, decompress.ErrLengthOverflow)

		m, err := decompress.Measure(input, decompress.Options{Version: decompress.VersionFlat})
		require.NoError(t, err)
		want := new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(2))
		assert.Equal(t, 0, want.Cmp(m.Length))

		_, fits := m.Int64()
		assert.False(t, fits)
	})

	t.Run("recursive product overflows", func(t *testing.T) {
		t.Parallel()

		reps := maxInt[:10]
		inner := "(1x" + reps + ")A"
		input := fmt.Sprintf("(%dx%s)%s", len(inner), reps, inner)
		_, err := decompress.RecursiveLength(input)
		require.ErrorIs(t, err, decompress.ErrLengthOverflow)

		m, err := decompress.Measure(input, decompress.Options{})
		require.NoError(t, err)
		factor, ok := new(big.Int).SetString(reps, 10)
		require.True(t, ok)
		want := new(big.Int).Mul(factor, factor)
		assert.Equal(t, 0, want.Cmp(m.Length), "got %s", m.Length)
	})

	t.Run("exact max fits", func(t *testing.T) {
		t.Parallel()

		got, err := decompress.FlatLength("(1x" + maxInt + ")A")
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)
	})

	t.Run("huge multiplier on empty region does not overflow", func(t *testing.T) {
		t.Parallel()

		inner := "(0x" + maxInt + ")"
		input := fmt.Sprintf("(%dx%s)%s", len(inner), maxInt, inner)
		got, err := decompress.RecursiveLength(input)
		require.NoError(t, err)
		assert.Zero(t, got)
	})
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	input := "(25x3)(3x3)ABC(2x3)XY(5x2)PQRSTX(18x9)(3x2)TWO(5x7)SEVEN"

	t.Run("recursive is the default", func(t *testing.T) {
		t.Parallel()

		m, err := decompress.Measure(input, decompress.Options{})
		require.NoError(t, err)
		assert.Equal(t, decompress.VersionRecursive, m.Version)
		assert.Equal(t, len(input), m.Compressed)
		assert.Equal(t, "445", m.String())
		assert.Equal(t, 7, m.Markers)
		assert.Equal(t, 2, m.Depth)

		n, fits := m.Int64()
		assert.True(t, fits)
		assert.Equal(t, int64(445), n)
		assert.InDelta(t, 445.0/float64(len(input)), m.Ratio(), 1e-9)
	})

	t.Run("flat statistics count top level only", func(t *testing.T) {
		t.Parallel()

		m, err := decompress.Measure(input, decompress.Options{Version: decompress.VersionFlat})
		require.NoError(t, err)
		assert.Equal(t, 2, m.Markers)
		assert.Equal(t, 1, m.Depth)
	})

	t.Run("no markers", func(t *testing.T) {
		t.Parallel()

		m, err := decompress.Measure("ADVENT", decompress.Options{})
		require.NoError(t, err)
		assert.Equal(t, "6", m.String())
		assert.Zero(t, m.Markers)
		assert.Zero(t, m.Depth)
	})

	t.Run("empty input has zero ratio", func(t *testing.T) {
		t.Parallel()

		m, err := decompress.Measure("", decompress.Options{})
		require.NoError(t, err)
		assert.Zero(t, m.Ratio())
	})

	t.Run("unknown version", func(t *testing.T) {
		t.Parallel()

		_, err := decompress.Measure(input, decompress.Options{Version: 9})
		require.ErrorIs(t, err, decompress.ErrUnknownVersion)
	})
}

func TestMeasure_DepthLimit(t *testing.T) {
	t.Parallel()

	// Three levels of nesting around a single "A".
	input := "(11x1)(6x1)(1x1)A"

	_, err := decompress.Measure(input, decompress.Options{Limits: decompress.Limits{MaxDepth: 2}})
	require.ErrorIs(t, err, decompress.ErrDepthExceeded)

	m, err := decompress.Measure(input, decompress.Options{Limits: decompress.Limits{MaxDepth: 3}})
	require.NoError(t, err)
	assert.Equal(t, "1", m.String())
	assert.Equal(t, 3, m.Depth)

	// The flat rule never descends, so depth limits do not apply.
	_, err = decompress.Measure(input, decompress.Options{
		Version: decompress.VersionFlat,
		Limits:  decompress.Limits{MaxDepth: 1},
	})
	require.NoError(t, err)
}

func TestRecursiveLength_DeepNestingUsesNoCallStack(t *testing.T) {
	t.Parallel()

	const levels = 2000

	// Build from the inside out: each level wraps the previous in (len x 1).
	input := "A"
	for range levels {
		input = fmt.Sprintf("(%dx1)%s", len(input), input)
	}

	got, err := decompress.RecursiveLength(input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	m, err := decompress.Measure(input, decompress.Options{})
	require.NoError(t, err)
	assert.Equal(t, levels, m.Depth)
	assert.Equal(t, levels, m.Markers)
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    decompress.Version
		wantErr bool
	}{
		{"flat", decompress.VersionFlat, false},
		{"V1", decompress.VersionFlat, false},
		{"1", decompress.VersionFlat, false},
		{"recursive", decompress.VersionRecursive, false},
		{" v2 ", decompress.VersionRecursive, false},
		{"2", decompress.VersionRecursive, false},
		{"both", 0, true},
		{"", 0, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := decompress.ParseVersion(testCase.input)
			if testCase.wantErr {
				require.ErrorIs(t, err, decompress.ErrUnknownVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestVersion_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "flat", decompress.VersionFlat.String())
	assert.Equal(t, "recursive", decompress.VersionRecursive.String())
	assert.Equal(t, "Version(5)", decompress.Version(5).String())
}

func TestRecursiveLength_ZeroRepeatRegionIsCheckedNotCounted(t *testing.T) {
	t.Parallel()

	got, err := decompress.RecursiveLength("A(8x0)(3x9)XYZB")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)

	flat, err := decompress.FlatLength("(7x0)(9x1)AB")
	require.NoError(t, err, "the flat rule never looks inside a region")
	assert.Zero(t, flat)
}

func TestRecursiveLength_NoDepthCap(t *testing.T) {
	t.Parallel()

	const levels = 4097

	input := "A"
	for range levels {
		input = fmt.Sprintf("(%dx1)%s", len(input), input)
	}

	got, err := decompress.RecursiveLength(input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	m, err := decompress.Measure(input, decompress.Options{})
	require.NoError(t, err, "zero limits impose no cap")
	assert.Equal(t, levels, m.Depth)

	_, err = decompress.Measure(input, decompress.Options{Limits: decompress.Limits{MaxDepth: 4096}})
	require.ErrorIs(t, err, decompress.ErrDepthExceeded)
}

func TestLength_CountsCharacters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		flat      int64
		recursive int64
	}{
		{name: "repeated multi-byte character", input: "(1x3)é", flat: 3, recursive: 3},
		{name: "literal multi-byte characters", input: "é(1x2)ñü", flat: 4, recursive: 4},
		{name: "region spans whole characters", input: "(2x2)日本語", flat: 5, recursive: 5},
		{name: "nested region", input: "(6x2)(1x3)é", flat: 12, recursive: 6},
		{name: "four-byte character", input: "X(1x4)🎄Y", flat: 6, recursive: 6},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			flat, err := decompress.FlatLength(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.flat, flat)

			recursive, err := decompress.RecursiveLength(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.recursive, recursive)

			m, err := decompress.Measure(testCase.input, decompress.Options{})
			require.NoError(t, err)
			assert.Equal(t, utf8.RuneCountInString(testCase.input), m.Compressed)
		})
	}

	// Offsets in errors are character offsets too.
	_, err := decompress.RecursiveLength("éé(9x1)A")
	var formatErr *marker.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 2, formatErr.Offset)
}
