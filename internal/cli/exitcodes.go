package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/markerlen/internal/configloader"
	"github.com/yaklabco/markerlen/pkg/fsutil"
	"github.com/yaklabco/markerlen/pkg/source"
)

// Exit codes for markerlen.
const (
	// ExitSuccess indicates every input was measured.
	ExitSuccess = 0

	// ExitMeasureFailed indicates at least one file or input could not be measured.
	ExitMeasureFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrMeasureFailed is returned when a run completed but some inputs failed.
	ErrMeasureFailed = errors.New("one or more inputs could not be measured")

	// ErrUsage marks invalid arguments or flags.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMeasureFailed):
		return ExitMeasureFailed
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, source.ErrInputTooLarge),
		errors.Is(err, source.ErrDecodedTooLarge),
		errors.Is(err, source.ErrBinaryInput),
		errors.Is(err, source.ErrInvalidEncoding),
		errors.Is(err, source.ErrUnknownEncoding):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// usageError wraps err so that ExitCode reports ExitInvalidUsage.
func usageError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrUsage, err)
}
