package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// compressionExts are suffixes stacked on top of the real file extension.
var compressionExts = []string{".gz"}

// IsFile tests whether given path exists and is a file
func IsFile(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}

// IsDirectory tests whether given path exists and is a directory
func IsDirectory(dirPath string) bool {
	info, err := os.Stat(dirPath)
	return err == nil && info.IsDir()
}

// FirstFile returns the first of paths that is an existing file.
func FirstFile(paths ...string) (string, bool) {
	for _, p := range paths {
		if IsFile(p) {
			return p, true
		}
	}
	return "", false
}

// SplitExt splits path into base and extension, keeping compression suffixes
// with the extension: "a/b.asc.gz" -> ("a/b", ".asc.gz").
func SplitExt(path string) (base, ext string) {
	for _, c := range compressionExts {
		if strings.HasSuffix(path, c) {
			inner := strings.TrimSuffix(path, c)
			e := filepath.Ext(inner)
			return strings.TrimSuffix(inner, e), e + c
		}
	}
	e := filepath.Ext(path)
	return strings.TrimSuffix(path, e), e
}

// Basename returns the file name of path without directory and extension.
func Basename(path string) string {
	base, _ := SplitExt(filepath.Base(path))
	return base
}

// Replace moves src over dst. dst is removed first so the rename also works
// where the platform refuses to overwrite.
func Replace(src, dst string) error {
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}
