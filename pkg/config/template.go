package config

import (
	"bytes"
	"fmt"
	"strings"
)

// DefaultTemplateHeader returns the header written at the top of generated configs.
func DefaultTemplateHeader() string {
	return `# markerlen configuration
# Measures the decompressed length of (NxM) marker-compressed text.`
}

// GenerateTemplate returns a commented configuration file holding the
// defaults. Every key is present so the file round-trips through FromYAML.
func GenerateTemplate() []byte {
	defaults := NewConfig()

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	fmt.Fprintf(&buf, `# Which lengths to compute: flat, recursive or both.
mode: %s

# Measure whitespace instead of removing it before decoding.
keep_whitespace: %t

# Extensions measured when a directory is given. Compressed files are decoded
# by extension (.gz, .zst, .lz4, .br) before measuring.
extensions: [%s]

# Glob patterns for files to skip. "**" matches any number of directories.
ignore: []

limits:
  # Deepest marker nesting followed by the recursive calculator.
  max_depth: %d
  # Largest file or stream read, in bytes.
  max_input_bytes: %d
  # Largest decoded payload of a compressed file, in bytes.
  max_decoded_bytes: %d

markdown:
  # Fenced code blocks with these info strings are measured in .md files.
  # "" matches a fence without an info string.
  languages: [%s]
`,
		defaults.Mode,
		defaults.KeepWhitespace,
		quoteList(defaults.Extensions),
		defaults.Limits.MaxDepth,
		defaults.Limits.MaxInputBytes,
		defaults.Limits.MaxDecodedBytes,
		quoteList(defaults.Markdown.Languages),
	)

	return buf.Bytes()
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}
