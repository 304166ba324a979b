package decompress

import (
	"fmt"
	"strings"
)

// Version selects the expansion rule.
type Version int

const (
	// VersionFlat treats data regions as opaque.
	VersionFlat Version = 1

	// VersionRecursive decompresses markers found inside data regions.
	VersionRecursive Version = 2
)

// String returns the canonical name of the version.
func (v Version) String() string {
	switch v {
	case VersionFlat:
		return "flat"
	case VersionRecursive:
		return "recursive"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

// IsValid returns true if v is a known version.
func (v Version) IsValid() bool {
	return v == VersionFlat || v == VersionRecursive
}

// ParseVersion parses a version name. It accepts "flat", "v1", "1",
// "recursive", "v2" and "2", case-insensitively.
func ParseVersion(name string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flat", "v1", "1":
		return VersionFlat, nil
	case "recursive", "v2", "2":
		return VersionRecursive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, name)
	}
}
