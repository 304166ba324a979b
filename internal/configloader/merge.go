package configloader

import (
	"slices"

	"github.com/yaklabco/markerlen/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: a non-zero override value wins.
//   - Booleans: only true overrides, so a file cannot unset a lower layer.
//   - Slices: a non-nil override replaces base entirely.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.KeepWhitespace {
		result.KeepWhitespace = true
	}

	if override.Limits.MaxDepth != 0 {
		result.Limits.MaxDepth = override.Limits.MaxDepth
	}
	if override.Limits.MaxInputBytes != 0 {
		result.Limits.MaxInputBytes = override.Limits.MaxInputBytes
	}
	if override.Limits.MaxDecodedBytes != 0 {
		result.Limits.MaxDecodedBytes = override.Limits.MaxDecodedBytes
	}

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Markdown.Languages != nil {
		result.Markdown.Languages = slices.Clone(override.Markdown.Languages)
	}

	return &result
}
