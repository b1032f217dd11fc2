// Package fileutil resolves the Windows-style paths games use against the
// host file system.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FromGamePath converts backslash separators to the host separator.
func FromGamePath(name string) string {
	return filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
}

// FindFileCaseInsensitive searches dir for an entry named filename,
// ignoring case, and returns its path. An exact match wins.
func FindFileCaseInsensitive(dir, filename string) (string, error) {
	exact := filepath.Join(dir, filename)
	if _, err := os.Lstat(exact); err == nil {
		return exact, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if strings.EqualFold(entry.Name(), filename) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("file not found: %s (searched in %s): %w", filename, dir, os.ErrNotExist)
}

// Resolve joins name onto base and matches every component case-
// insensitively. Components that do not exist are kept as written, so the
// result is also usable for files about to be created.
func Resolve(base, name string) string {
	name = FromGamePath(name)
	path := base
	if filepath.IsAbs(name) {
		path = filepath.VolumeName(name) + string(filepath.Separator)
		name = name[len(path):]
	}

	parts := strings.Split(filepath.Clean(name), string(filepath.Separator))
	for i, part := range parts {
		if part == "" || part == "." {
			continue
		}
		found, err := FindFileCaseInsensitive(path, part)
		if err != nil {
			return filepath.Join(append([]string{path}, parts[i:]...)...)
		}
		path = found
	}
	return path
}
