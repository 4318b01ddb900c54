// Package fileutil holds file modes and write helpers for generated projects.
package fileutil

import (
	"os"
	"path/filepath"
)

// ReadableByAll is the file permission mode for generated project files
// intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the permission mode for generated project directories.
const DirReadableByAll os.FileMode = 0o755

// WriteFileAll writes data to path, creating missing parent directories.
// An existing file is truncated and overwritten.
func WriteFileAll(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirReadableByAll); err != nil {
		return err
	}
	return os.WriteFile(path, data, ReadableByAll)
}

// IsDir reports whether path exists and is a directory. The error is the
// os.Stat error when path cannot be inspected.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// WriteDir creates path and any missing parents. It succeeds if path
// already exists as a directory.
func WriteDir(path string) error {
	return os.MkdirAll(path, DirReadableByAll)
}
