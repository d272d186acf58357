package ports

import "go.trai.ch/pantry/internal/core/domain"

// LockStore persists policy lock documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Load reads the lock document at path.
	Load(path string) (*domain.PolicyfileLock, error)

	// Save writes lock to path. It reports false when the file already held
	// identical content and nothing was written.
	Save(path string, lock *domain.PolicyfileLock) (bool, error)
}
