package source

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// StripWhitespace removes every Unicode whitespace character from s.
// Bytes that are not valid UTF-8 are kept as they are.
func StripWhitespace(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError || !unicode.IsSpace(r) {
			builder.WriteString(s[i : i+size])
		}
		i += size
	}
	return builder.String()
}
