package source

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// DefaultMarkdownLanguages are the fenced-block info strings measured when a
// Loader has none configured. The empty string matches an unlabelled fence.
func DefaultMarkdownLanguages() []string {
	return []string{"", "text", "markers"}
}

// fencedBlock is one selected code block of a Markdown document.
type fencedBlock struct {
	// line is the 1-based line of the opening fence.
	line int
	body []byte
}

// fencedBlocks returns the fenced code blocks of src whose language is in
// languages, in document order. Blocks with no content lines are skipped.
func fencedBlocks(src []byte, languages []string) ([]fencedBlock, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	var blocks []fencedBlock
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		code, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lines := code.Lines()
		if lines.Len() == 0 || !slices.Contains(languages, string(code.Language(src))) {
			return ast.WalkSkipChildren, nil
		}

		var body bytes.Buffer
		for i := range lines.Len() {
			segment := lines.At(i)
			body.Write(segment.Value(src))
		}

		firstLine := bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
		blocks = append(blocks, fencedBlock{line: firstLine - 1, body: body.Bytes()})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return blocks, nil
}
