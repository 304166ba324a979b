package source

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies how an input's bytes are encoded.
type Codec int

const (
	CodecNone Codec = iota
	CodecGzip
	CodecZstd
	CodecLZ4
	CodecBrotli
)

var codecNames = map[Codec]string{ //nolint:gochecknoglobals // lookup table
	CodecNone:   "none",
	CodecGzip:   "gzip",
	CodecZstd:   "zstd",
	CodecLZ4:    "lz4",
	CodecBrotli: "brotli",
}

var codecExtensions = map[string]Codec{ //nolint:gochecknoglobals // lookup table
	".gz":   CodecGzip,
	".gzip": CodecGzip,
	".zst":  CodecZstd,
	".lz4":  CodecLZ4,
	".br":   CodecBrotli,
}

// Frame magic numbers. Brotli streams have none.
var (
	magicGzip = []byte{0x1f, 0x8b}             //nolint:gochecknoglobals // constant bytes
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd} //nolint:gochecknoglobals // constant bytes
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18} //nolint:gochecknoglobals // constant bytes
)

func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Codec(%d)", int(c))
}

// CodecForPath returns the codec implied by path's extension, and path with
// that extension removed.
func CodecForPath(path string) (Codec, string) {
	ext := strings.ToLower(filepath.Ext(path))
	if codec, ok := codecExtensions[ext]; ok {
		return codec, strings.TrimSuffix(path, filepath.Ext(path))
	}
	return CodecNone, path
}

// Sniff identifies a codec from the leading bytes of data.
// It returns CodecNone for brotli, which has no magic number.
func Sniff(data []byte) Codec {
	switch {
	case bytes.HasPrefix(data, magicGzip):
		return CodecGzip
	case bytes.HasPrefix(data, magicZstd):
		return CodecZstd
	case bytes.HasPrefix(data, magicLZ4):
		return CodecLZ4
	default:
		return CodecNone
	}
}

// confirm checks data against the codec's magic number where it has one.
func (c Codec) confirm(data []byte) error {
	switch c {
	case CodecNone, CodecBrotli:
		return nil
	default:
		if Sniff(data) != c {
			return fmt.Errorf("%w: content is not %s", ErrUnknownEncoding, c)
		}
		return nil
	}
}

// decode expands data, reading at most maxDecoded bytes of output.
func (c Codec) decode(data []byte, maxDecoded int64) ([]byte, error) {
	if c == CodecNone {
		if int64(len(data)) > maxDecoded {
			return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrDecodedTooLarge, len(data), maxDecoded)
		}
		return data, nil
	}

	var reader io.Reader
	src := bytes.NewReader(data)

	switch c {
	case CodecGzip:
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", c, err)
		}
		defer gz.Close()
		reader = gz
	case CodecZstd:
		dec, err := zstd.NewReader(src, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", c, err)
		}
		defer dec.Close()
		reader = dec
	case CodecLZ4:
		reader = lz4.NewReader(src)
	case CodecBrotli:
		reader = brotli.NewReader(src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, c)
	}

	out, err := io.ReadAll(io.LimitReader(reader, maxDecoded+1))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	if int64(len(out)) > maxDecoded {
		return nil, fmt.Errorf("%w: %s stream expands beyond %d bytes", ErrDecodedTooLarge, c, maxDecoded)
	}
	return out, nil
}
