// Package decompress computes decompressed lengths of marker-compressed text
// without materializing the decompressed output.
//
// Two expansion rules are supported:
//
//   - VersionFlat: data regions are opaque; marker-like text inside them is
//     copied verbatim.
//   - VersionRecursive: data regions are themselves decompressed before their
//     repeat count is applied, to any nesting depth.
//
// Lengths are computed in time proportional to the number of markers in the
// compressed text, not to the size of the output, which may exceed any
// practical storage. The recursive rule is evaluated with an explicit work
// stack, so hostile nesting cannot exhaust the goroutine stack; Limits.MaxDepth
// optionally caps the memory it may use instead.
//
// Counts and lengths are in characters: "(1x3)é" decompresses to three
// characters, whatever their encoded size.
//
// FlatLength and RecursiveLength return int64 results and fail with
// ErrLengthOverflow when the true length does not fit. Measure returns an
// unbounded *big.Int together with scan statistics.
package decompress
