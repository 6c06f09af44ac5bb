// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileEntry pairs a file path with its fs.FileInfo, preserving metadata the
// caller would otherwise have to stat for a second time.
type FileEntry struct {
	Path string
	Info fs.FileInfo
}

// FindFilesByExtension searches the given root path for all regular files
// ending with the specified extension and returns their paths with metadata.
// A root that does not exist yields an empty result rather than an error.
func FindFilesByExtension(rootPath string, extension string) ([]FileEntry, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []FileEntry
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == rootPath {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), extension) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			// The file vanished between listing and stat; skip it.
			return nil
		}
		files = append(files, FileEntry{Path: path, Info: info})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
