package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/markerlen/pkg/config"
)

// envVarPrefix is the prefix for all markerlen environment variables.
const envVarPrefix = "MARKERLEN_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds one environment variable to a config field.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MODE":              {"mode", envTypeString, "Which lengths to compute: flat, recursive or both"},
	"KEEP_WHITESPACE":   {"keep_whitespace", envTypeBool, "Measure whitespace instead of stripping it: true or false"},
	"FORMAT":            {"format", envTypeString, "Output format: text, table, json or summary"},
	"JOBS":              {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"MAX_DEPTH":         {"limits.max_depth", envTypeInt, "Deepest marker nesting followed"},
	"MAX_INPUT_BYTES":   {"limits.max_input_bytes", envTypeInt, "Largest input read, in bytes"},
	"MAX_DECODED_BYTES": {"limits.max_decoded_bytes", envTypeInt, "Largest decoded payload, in bytes"},
	"IGNORE":            {"ignore", envTypeSlice, "Comma-separated glob patterns to skip"},
	"EXTENSIONS":        {"extensions", envTypeSlice, "Comma-separated file extensions to measure"},
}

// LoadFromEnv applies MARKERLEN_* environment variables to cfg. Unset or
// empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: envVar, Value: value, Message: "invalid boolean (expected true/false/1/0)"}
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return &ValidationError{Field: envVar, Value: value, Message: "invalid integer"}
		}
		return setIntField(cfg, mapping.field, n)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated value and trims each element.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "mode":
		cfg.Mode = config.Mode(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "keep_whitespace":
		cfg.KeepWhitespace = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "jobs":
		cfg.Jobs = int(value)
	case "limits.max_depth":
		cfg.Limits.MaxDepth = int(value)
	case "limits.max_input_bytes":
		cfg.Limits.MaxInputBytes = value
	case "limits.max_decoded_bytes":
		cfg.Limits.MaxDecodedBytes = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
