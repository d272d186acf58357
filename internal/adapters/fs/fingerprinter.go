package fs

import (
	"crypto/md5" //nolint:gosec // MD5 is part of the cookbook checksum format
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pantry/internal/core/domain"
	"go.trai.ch/pantry/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter computes cookbook content identifiers from file checksums.
type Fingerprinter struct {
	walker *Walker
}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter(walker *Walker) *Fingerprinter {
	return &Fingerprinter{walker: walker}
}

// Identify checksums every regular file under root. Any unreadable file fails
// the whole fingerprint.
func (f *Fingerprinter) Identify(root string) (*domain.Identifiers, error) {
	info, err := os.Stat(root)
	if err != nil {
		sentinel := domain.ErrFileRead
		if errors.Is(err, iofs.ErrNotExist) {
			sentinel = domain.ErrCookbookNotFound
		}
		return nil, zerr.With(fmt.Errorf("%w: %w", sentinel, err), "path", root)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrCookbookNotFound, "not a directory"), "path", root)
	}

	files := make(map[string]domain.FileChecksum)
	for rel, err := range f.walker.WalkFiles(root) {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrFileRead, err)
		}
		sum, err := ComputeFileChecksum(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		files[rel] = domain.FileChecksum{Checksum: sum}
	}

	return domain.NewIdentifiers(root, "", files)
}

// ComputeFileChecksum returns the lower-case hex MD5 of a file's content.
func ComputeFileChecksum(path string) (string, error) {
	file, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(fmt.Errorf("%w: %w", domain.ErrFileRead, err), "path", path)
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	hasher := md5.New() //nolint:gosec // checksum format
	if _, err := io.Copy(hasher, file); err != nil {
		return "", zerr.With(fmt.Errorf("%w: %w", domain.ErrFileRead, err), "path", path)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
