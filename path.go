package drivepath

import (
	"fmt"
	"strings"
)

// Path represents an absolute path in the remote store.
// Paths must start with '/' and use forward slashes as separators
// (e.g., "/SharedDrive/folder/file.csv"). A trailing slash marks the target
// as a folder. Relative path components like "." and ".." are not allowed.
type Path string

// IsFolder reports whether the path explicitly denotes a folder target.
func (p Path) IsFolder() bool {
	return strings.HasSuffix(normalizeSeparators(string(p)), "/")
}

// Base returns the last segment of the path, or "" for a root-only path.
func (p Path) Base() string {
	parts, err := SplitPath(p)
	if err != nil || len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// Dir returns the path without its last segment, keeping folder intent.
func (p Path) Dir() Path {
	parts, err := SplitPath(p)
	if err != nil || len(parts) <= 1 {
		return Path("/")
	}
	return Path("/" + strings.Join(parts[:len(parts)-1], "/") + "/")
}

// Join appends a name to the path as a new final segment.
func (p Path) Join(name string) Path {
	s := normalizeSeparators(string(p))
	return Path(strings.TrimSuffix(s, "/") + "/" + name)
}

// SplitPath validates a path and splits it into its non-empty segments.
// Platform separators are normalized to '/', repeated separators collapse,
// and empty segments produced by leading, trailing or doubled slashes are
// dropped.
func SplitPath(path Path) (parts []string, err error) {
	s := normalizeSeparators(string(path))
	if s == "" {
		return nil, fmt.Errorf("empty path: %w", ErrInvalidPath)
	}
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("path '%s' must be absolute and start with '/': %w", path, ErrInvalidPath)
	}

	for _, p := range strings.Split(s, "/") {
		if p == "." || p == ".." {
			return nil, fmt.Errorf("relative path components are not allowed in '%s': %w", path, ErrInvalidPath)
		}
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}

	return parts, nil
}

func normalizeSeparators(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}
