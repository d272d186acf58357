// Package fs provides file system adapters for walking, fingerprinting and
// reading cookbooks.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root as a "/"-separated path
// relative to root. Directories, symlinks and other special files are not
// yielded. A traversal error is yielded once with an empty path and ends the walk.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", path)
			}
			if !d.Type().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
			}

			if !yield(filepath.ToSlash(rel), nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}
