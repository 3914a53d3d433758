package fs

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker finds corpus files under a root using include/exclude globs.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// FileInfo describes one matched file.
type FileInfo struct {
	Path string
	Rel  string
	Size int64
}

// Walk returns every file under root matching the include patterns and
// none of the exclude patterns. Patterns are matched against paths
// relative to root.
func (w *Walker) Walk(root string) ([]FileInfo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && w.excluded(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.included(rel) || w.excluded(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: path, Rel: rel, Size: info.Size()})
		return nil
	})

	return files, err
}

func (w *Walker) included(rel string) bool {
	for _, pattern := range w.includes {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

func (w *Walker) excluded(rel string) bool {
	for _, pattern := range w.excludes {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

// ReadFile reads a file's content as a string.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
