package decompress

import (
	"fmt"

	"github.com/yaklabco/markerlen/pkg/marker"
)

// walkStats is collected alongside the length.
type walkStats struct {
	markers int
	depth   int
}

// frame is one window of the input awaiting evaluation.
// The window's decompressed length is literal + sum once its cursor is exhausted.
type frame[T any] struct {
	cursor marker.Cursor

	// literal counts characters outside marker tokens and data regions.
	literal int

	// sum accumulates reps * length over the markers found so far.
	sum T

	// reps is the multiplier the parent applies to this window's length.
	reps int

	// checkOnly marks a window repeated zero times. It is scanned for format
	// errors but contributes nothing, so no arithmetic is done in it.
	checkOnly bool
}

// walk computes the decompressed length of s.
//
// With recursive false every data region is opaque and contributes
// chars*reps. Otherwise each non-empty data region is pushed as a child frame
// and folded into its parent post-order. A region repeated zero times is
// still scanned, so malformed markers inside it are reported, but it is
// checked only: no sums are formed in it. An overflow in any counted frame
// therefore implies an overflow of the final result.
//
// Offsets in s are character offsets; callers pass text through marker.Fold.
func walk[T any](s string, ar arith[T], recursive bool, limits Limits) (T, walkStats, error) {
	var (
		zero  T
		stats walkStats
	)

	stack := []frame[T]{{
		cursor:  marker.NewCursor(s, 0, len(s)),
		literal: len(s),
		sum:     ar.fromInt(0),
		reps:    1,
	}}

	for {
		top := &stack[len(stack)-1]

		m, ok, err := top.cursor.Next()
		if err != nil {
			return zero, stats, err //nolint:wrapcheck // FormatError carries its own context.
		}

		if ok {
			stats.markers++
			stats.depth = max(stats.depth, len(stack))
			top.literal -= m.SpanLength() + m.Chars

			if m.Chars == 0 || (m.Reps == 0 && !recursive) {
				continue
			}

			if !recursive {
				contrib, err := ar.mulInt(ar.fromInt(m.Chars), m.Reps)
				if err != nil {
					return zero, stats, err
				}
				if top.sum, err = ar.add(top.sum, contrib); err != nil {
					return zero, stats, err
				}
				continue
			}

			if !limits.allows(len(stack)) {
				return zero, stats, fmt.Errorf("%w: %d at offset %d", ErrDepthExceeded, limits.MaxDepth, m.Start)
			}

			checkOnly := top.checkOnly || m.Reps == 0
			child := frame[T]{
				cursor:    marker.NewCursor(s, m.End, m.DataEnd()),
				literal:   m.Chars,
				reps:      m.Reps,
				checkOnly: checkOnly,
			}
			if !checkOnly {
				child.sum = ar.fromInt(0)
			}
			stack = append(stack, child)
			continue
		}

		if top.checkOnly {
			stack = stack[:len(stack)-1]
			continue
		}

		// Window exhausted: fold it into its parent.
		length, err := ar.add(top.sum, ar.fromInt(top.literal))
		if err != nil {
			return zero, stats, err
		}
		reps := top.reps
		stack = stack[:len(stack)-1]

		if len(stack) == 0 {
			return length, stats, nil
		}

		contrib, err := ar.mulInt(length, reps)
		if err != nil {
			return zero, stats, err
		}
		parent := &stack[len(stack)-1]
		if parent.sum, err = ar.add(parent.sum, contrib); err != nil {
			return zero, stats, err
		}
	}
}
