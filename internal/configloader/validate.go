package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/markerlen/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "limits.max_depth").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings. Zero values are
// treated as unset, so partial configurations from a single file validate.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Mode != "" && !cfg.Mode.IsValid() {
		result.fail("mode", cfg.Mode, "invalid mode %q; must be one of: flat, recursive, both", cfg.Mode)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json, summary", cfg.Format)
	}

	switch cfg.Color {
	case "", "auto", "always", "never":
	default:
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateLimits(cfg.Limits, result)

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.warn(fmt.Sprintf("extensions[%d]", i), ext, "extension %q does not start with a dot and will never match", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

func validateLimits(limits config.LimitsConfig, result *ValidationResult) {
	if limits.MaxDepth < 0 {
		result.fail("limits.max_depth", limits.MaxDepth, "max_depth must be positive")
	}
	if limits.MaxInputBytes < 0 {
		result.fail("limits.max_input_bytes", limits.MaxInputBytes, "max_input_bytes must be positive")
	}
	if limits.MaxDecodedBytes < 0 {
		result.fail("limits.max_decoded_bytes", limits.MaxDecodedBytes, "max_decoded_bytes must be positive")
	}
	if limits.MaxInputBytes > 0 && limits.MaxDecodedBytes > 0 && limits.MaxDecodedBytes < limits.MaxInputBytes {
		result.warn("limits.max_decoded_bytes", limits.MaxDecodedBytes,
			"max_decoded_bytes is below max_input_bytes; large uncompressed files will be rejected")
	}
}

// ValidateWithFile validates configuration and records filePath on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
