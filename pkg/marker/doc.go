// Package marker scans compressed text for repeat markers.
//
// A marker is the token "(NxM)": take the N characters that follow the
// closing parenthesis and repeat them M times. The data region governed by a
// marker is never scanned for further markers by the same pass; enumeration
// resumes at the first character after the region.
//
// Anything that does not match the full grammar
//
//	"(" digits "x" digits ")"
//
// is ordinary data. Only two conditions are errors: a count that does not fit
// in an int, and a data region that runs past the end of the text being
// scanned. Both are reported as *FormatError.
//
// Offsets are byte indexes. Counts are in characters, so text that may hold
// non-ASCII characters should be passed through Fold first; the calculators
// in package decompress do this themselves.
//
// Typical use:
//
//	for m, err := range marker.Markers(text) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(m, m.Data(text))
//	}
package marker
