// Package lockfile implements the JSON store for policy lock documents.
package lockfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/pantry/internal/core/domain"
	"go.trai.ch/pantry/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultName is the conventional lock file name next to a policy.
	DefaultName = "Policyfile.lock.json"

	dirPerm  = 0o750
	filePerm = 0o644
)

var _ ports.LockStore = (*Store)(nil)

// Store implements ports.LockStore using indented JSON files.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the lock document at path.
func (s *Store) Load(path string) (*domain.PolicyfileLock, error) {
	//nolint:gosec // Path is provided by trusted caller
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrLockReadFailed, err), "path", path)
	}

	var lock domain.PolicyfileLock
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrLockParseFailed, err), "path", path)
	}
	return &lock, nil
}

// Save writes lock to path unless the file already holds the same bytes.
func (s *Store) Save(path string, lock *domain.PolicyfileLock) (bool, error) {
	data, err := Encode(lock)
	if err != nil {
		return false, zerr.With(err, "path", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path = filepath.Clean(path)
	unchanged, err := sameContent(path, data)
	if err != nil {
		return false, err
	}
	if unchanged {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return false, zerr.With(fmt.Errorf("%w: %w", domain.ErrLockWriteFailed, err), "path", path)
	}
	//nolint:gosec // Path is provided by trusted caller
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return false, zerr.With(fmt.Errorf("%w: %w", domain.ErrLockWriteFailed, err), "path", path)
	}
	return true, nil
}

// Encode renders lock the way Save writes it: two-space indented JSON with a
// trailing newline. Constraint operators are written literally.
func Encode(lock *domain.PolicyfileLock) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lock); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLockWriteFailed, err)
	}
	return buf.Bytes(), nil
}

func sameContent(path string, data []byte) (bool, error) {
	//nolint:gosec // Path is provided by trusted caller
	existing, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(fmt.Errorf("%w: %w", domain.ErrLockReadFailed, err), "path", path)
	}
	return bytes.Equal(existing, data), nil
}
