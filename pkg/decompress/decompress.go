package decompress

import (
	"math/big"

	"github.com/yaklabco/markerlen/pkg/marker"
)

// FlatLength returns the decompressed length of s under the flat rule:
// each marker's data region is repeated verbatim, without looking for markers
// inside it. A string with no markers has its own length.
//
// Lengths count characters, not bytes. Whitespace is not special; callers
// that ignore it must strip it first.
func FlatLength(s string) (int64, error) {
	n, _, err := walk[int64](marker.Fold(s), checkedInt64{}, false, Limits{})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// RecursiveLength returns the decompressed length of s under the recursive
// rule: markers inside a data region are expanded before the region is
// repeated, to any depth. Regions repeated zero times are still checked for
// malformed markers.
func RecursiveLength(s string) (int64, error) {
	n, _, err := walk[int64](marker.Fold(s), checkedInt64{}, true, Limits{})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Length dispatches to FlatLength or RecursiveLength.
func Length(s string, version Version) (int64, error) {
	switch version {
	case VersionFlat:
		return FlatLength(s)
	case VersionRecursive:
		return RecursiveLength(s)
	default:
		return 0, ErrUnknownVersion
	}
}

// Options configures Measure.
type Options struct {
	// Version selects the expansion rule. Zero means VersionRecursive.
	Version Version

	// Limits bounds resource use. The zero value imposes no bounds.
	Limits Limits
}

// Measurement is the result of measuring one compressed string.
type Measurement struct {
	// Version is the expansion rule that was applied.
	Version Version

	// Compressed is the length of the measured string in characters.
	Compressed int

	// Length is the decompressed length.
	Length *big.Int

	// Markers counts markers decoded across every level walked.
	Markers int

	// Depth is the deepest marker nesting reached; 0 when s has no markers.
	Depth int
}

// Measure computes the decompressed length of s with unbounded precision.
func Measure(s string, opts Options) (*Measurement, error) {
	version := opts.Version
	if version == 0 {
		version = VersionRecursive
	}
	if !version.IsValid() {
		return nil, ErrUnknownVersion
	}

	folded := marker.Fold(s)
	length, stats, err := walk[*big.Int](folded, unbounded{}, version == VersionRecursive, opts.Limits)
	if err != nil {
		return nil, err
	}

	return &Measurement{
		Version:    version,
		Compressed: len(folded),
		Length:     length,
		Markers:    stats.markers,
		Depth:      stats.depth,
	}, nil
}

// Int64 returns the length as an int64, and false if it does not fit.
func (m *Measurement) Int64() (int64, bool) {
	if m == nil || m.Length == nil || !m.Length.IsInt64() {
		return 0, false
	}
	return m.Length.Int64(), true
}

// Ratio returns the expansion factor Length/Compressed, or 0 for empty input.
func (m *Measurement) Ratio() float64 {
	if m == nil || m.Length == nil || m.Compressed == 0 {
		return 0
	}
	ratio, _ := new(big.Float).Quo(
		new(big.Float).SetInt(m.Length),
		new(big.Float).SetInt64(int64(m.Compressed)),
	).Float64()
	return ratio
}

// String returns the length in decimal.
func (m *Measurement) String() string {
	if m == nil || m.Length == nil {
		return "0"
	}
	return m.Length.String()
}
