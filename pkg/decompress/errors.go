package decompress

import "errors"

var (
	ErrLengthOverflow = errors.New("decompress: decompressed length overflows int64")
	ErrDepthExceeded  = errors.New("decompress: marker nesting exceeds depth limit")
	ErrUnknownVersion = errors.New("decompress: unknown format version")
)
