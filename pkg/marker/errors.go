package marker

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNumericOverflow indicates a count or repeat digit run that does not fit in an int.
	ErrNumericOverflow = errors.New("marker: numeric overflow")

	// ErrTruncatedMarker indicates a data region extending past the end of the input.
	ErrTruncatedMarker = errors.New("marker: truncated data region")
)

// maxTokenDisplay bounds how much of an offending token is echoed in error messages.
const maxTokenDisplay = 32

// FormatError describes malformed marker input.
type FormatError struct {
	// Err is ErrNumericOverflow or ErrTruncatedMarker.
	Err error

	// Offset is the index of the opening parenthesis of the offending marker.
	Offset int

	// Token is the marker text as it appears in the input.
	Token string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	token := e.Token
	if len(token) > maxTokenDisplay {
		token = token[:maxTokenDisplay] + "..."
	}
	return fmt.Sprintf("%v: %s at offset %d", e.Err, token, e.Offset)
}

// Unwrap returns the underlying sentinel error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
