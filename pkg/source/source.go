package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/markerlen/pkg/fsutil"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// Input is one compressed string ready for measurement.
type Input struct {
	// Name identifies the input in reports: the path, or path#L<line> for a
	// Markdown code block.
	Name string

	// Origin is the file or stream the input was read from.
	Origin string

	// Line is the 1-based line of a Markdown code fence, or 0.
	Line int

	// Text is the compressed string, whitespace already removed unless the
	// Loader keeps it. It is always valid UTF-8.
	Text string
}

// Chars returns the length of Text in characters.
func (i Input) Chars() int {
	return utf8.RuneCountInString(i.Text)
}

// Loader reads inputs from files and streams.
// The zero value is ready to use with default limits.
type Loader struct {
	Limits Limits

	// KeepWhitespace disables whitespace stripping.
	KeepWhitespace bool

	// MarkdownLanguages selects fenced blocks in Markdown documents.
	// Nil means DefaultMarkdownLanguages.
	MarkdownLanguages []string
}

// Load reads the file at path and returns its inputs.
// A Markdown document yields one input per selected code block, possibly none.
// Any other file yields exactly one input.
func (l *Loader) Load(ctx context.Context, path string) ([]Input, error) {
	limits := l.Limits.withDefaults()

	raw, _, err := fsutil.ReadFile(ctx, path, limits.MaxInputBytes)
	if errors.Is(err, fsutil.ErrTooLarge) {
		return nil, fmt.Errorf("%w: %w", ErrInputTooLarge, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	codec, inner := CodecForPath(path)
	if err := codec.confirm(raw); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return l.inputs(ctx, path, inner, codec, raw)
}

// LoadReader reads a single stream. The codec is chosen from the stream's
// magic number; a brotli stream is only recognised through name's extension.
func (l *Loader) LoadReader(ctx context.Context, name string, r io.Reader) ([]Input, error) {
	limits := l.Limits.withDefaults()

	raw, err := io.ReadAll(io.LimitReader(r, limits.MaxInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(raw)) > limits.MaxInputBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInputTooLarge, name, limits.MaxInputBytes)
	}

	codec, inner := CodecForPath(name)
	if sniffed := Sniff(raw); sniffed != CodecNone {
		codec = sniffed
	}

	return l.inputs(ctx, name, inner, codec, raw)
}

func (l *Loader) inputs(ctx context.Context, name, inner string, codec Codec, raw []byte) ([]Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	decoded, err := codec.decode(raw, l.Limits.withDefaults().MaxDecodedBytes)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	if enry.IsBinary(decoded) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryInput, name)
	}
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, name)
	}

	if !isMarkdown(inner) {
		return []Input{{Name: name, Origin: name, Text: l.normalize(decoded)}}, nil
	}

	languages := l.MarkdownLanguages
	if languages == nil {
		languages = DefaultMarkdownLanguages()
	}

	blocks, err := fencedBlocks(decoded, languages)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	inputs := make([]Input, 0, len(blocks))
	for _, block := range blocks {
		inputs = append(inputs, Input{
			Name:   fmt.Sprintf("%s#L%d", name, block.line),
			Origin: name,
			Line:   block.line,
			Text:   l.normalize(block.body),
		})
	}
	return inputs, nil
}

func (l *Loader) normalize(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if l.KeepWhitespace {
		return string(data)
	}
	return StripWhitespace(string(data))
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}
