package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// matcher tests slash-separated relative paths against exclude patterns.
type matcher struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	glob glob.Glob

	// baseOnly patterns have no separator and also match a file's base name.
	baseOnly bool

	// dirPrefix is set for "dir/**" patterns, which also match dir itself.
	dirPrefix string

	// anywhere matches the remainder of a "**/x" pattern at the top level.
	anywhere glob.Glob
}

func newMatcher(patterns []string) (*matcher, error) {
	m := &matcher{patterns: make([]compiledPattern, 0, len(patterns))}

	for _, raw := range patterns {
		pattern := filepath.ToSlash(raw)

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", raw, err)
		}
		compiled := compiledPattern{
			glob:     g,
			baseOnly: !strings.Contains(pattern, "/"),
		}

		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
			compiled.dirPrefix = prefix
		}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
			if compiled.anywhere, err = glob.Compile(rest, '/'); err != nil {
				return nil, fmt.Errorf("compile glob %q: %w", raw, err)
			}
		}

		m.patterns = append(m.patterns, compiled)
	}

	return m, nil
}

// match reports whether relPath is excluded.
func (m *matcher) match(relPath string) bool {
	if m == nil {
		return false
	}

	relPath = filepath.ToSlash(relPath)
	base := path.Base(relPath)

	for _, p := range m.patterns {
		switch {
		case p.glob.Match(relPath):
			return true
		case p.baseOnly && p.glob.Match(base):
			return true
		case p.dirPrefix != "" && relPath == p.dirPrefix:
			return true
		case p.anywhere != nil && p.anywhere.Match(relPath):
			return true
		}
	}
	return false
}
