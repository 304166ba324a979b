package source

import "errors"

var (
	// ErrInputTooLarge is returned when raw input exceeds Limits.MaxInputBytes.
	ErrInputTooLarge = errors.New("source: input too large")

	// ErrDecodedTooLarge is returned when decoded input exceeds Limits.MaxDecodedBytes.
	ErrDecodedTooLarge = errors.New("source: decoded input too large")

	// ErrBinaryInput is returned for content that does not look like text.
	ErrBinaryInput = errors.New("source: binary input")

	// ErrInvalidEncoding is returned for text that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("source: invalid UTF-8")

	// ErrUnknownEncoding is returned when a file's extension names a codec
	// its content does not match.
	ErrUnknownEncoding = errors.New("source: unknown encoding")
)
