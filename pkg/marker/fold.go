package marker

import (
	"strings"
	"unicode/utf8"
)

// substitute stands in for a multi-byte character in folded text. It is not
// part of the marker grammar.
const substitute = '\x1a'

// Fold returns s with every multi-byte UTF-8 character replaced by a single
// substitute byte.
//
// Marker counts and lengths are measured in characters, while the scanner
// works on byte offsets. In folded text the two coincide, and since the
// grammar is pure ASCII, folding never creates or breaks a marker. ASCII
// input is returned as is.
func Fold(s string) string {
	i := 0
	for i < len(s) && s[i] < utf8.RuneSelf {
		i++
	}
	if i == len(s) {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))
	builder.WriteString(s[:i])
	for _, r := range s[i:] {
		if r < utf8.RuneSelf {
			builder.WriteByte(byte(r))
		} else {
			builder.WriteByte(substitute)
		}
	}
	return builder.String()
}
