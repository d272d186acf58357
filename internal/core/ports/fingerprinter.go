// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/pantry/internal/core/domain"

// Fingerprinter computes content identifiers for cookbook directories.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Identify checksums every regular file under path and derives the cookbook identifiers.
	// The returned Identifiers carry no semver version; callers fill it from metadata.
	Identify(path string) (*domain.Identifiers, error)
}
