package source

const (
	defaultMaxInputBytes   int64 = 64 << 20
	defaultMaxDecodedBytes int64 = 256 << 20
)

// Limits bounds how much data a Loader reads. Zero fields take defaults.
type Limits struct {
	// MaxInputBytes caps the raw bytes read from a file or stream.
	MaxInputBytes int64

	// MaxDecodedBytes caps the bytes produced by a codec.
	MaxDecodedBytes int64
}

// DefaultLimits returns the limits used for zero fields.
func DefaultLimits() Limits {
	return Limits{
		MaxInputBytes:   defaultMaxInputBytes,
		MaxDecodedBytes: defaultMaxDecodedBytes,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxInputBytes > 0 {
		d.MaxInputBytes = l.MaxInputBytes
	}
	if l.MaxDecodedBytes > 0 {
		d.MaxDecodedBytes = l.MaxDecodedBytes
	}
	return d
}
