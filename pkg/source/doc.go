// Package source turns files and streams into the strings the length
// calculators measure.
//
// A Loader enforces size limits, decodes gzip, zstd, lz4 and brotli payloads,
// rejects binary content, extracts fenced code blocks from Markdown documents,
// and strips whitespace. Each resulting Input is measured independently.
//
//	loader := source.Loader{}
//	inputs, err := loader.Load(ctx, "input.txt.gz")
package source
