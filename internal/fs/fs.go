// Package fs provides filesystem helpers.
package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// IsDir returns true if the path is a directory.
// If the path does not exist, the error from os.Stat() is returned.
func IsDir(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	return fi.IsDir(), nil
}

// FindFileInParentDirs finds a file in startPath or its parent directories.
// The function starts looking for a file called filename in startPath and then
// checks recursively its parent directories.
// It returns the absolute path of the first match.
// If it reaches the root directory without finding the file it returns
// fs.ErrNotExist.
func FindFileInParentDirs(startPath, filename string) (string, error) {
	// trailing separators are removed, otherwise the path would be
	// interpreted as the root directory
	searchDir, err := filepath.Abs(filepath.Clean(startPath))
	if err != nil {
		return "", err
	}

	for {
		p := filepath.Join(searchDir, filename)

		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", p, err)
		}

		parent := filepath.Dir(searchDir)
		if parent == searchDir {
			return "", fs.ErrNotExist
		}

		searchDir = parent
	}
}
