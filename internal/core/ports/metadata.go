package ports

import "go.trai.ch/pantry/internal/core/domain"

// MetadataReader reads the name, version and dependencies a cookbook declares.
//
//go:generate go run go.uber.org/mock/mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataReader interface {
	// ReadMetadata returns the metadata of the cookbook rooted at path.
	// A cookbook without a metadata file yields empty metadata and no error.
	ReadMetadata(path string) (*domain.CookbookMetadata, error)
}
