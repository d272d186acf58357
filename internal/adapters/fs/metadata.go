package fs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/pantry/internal/core/domain"
	"go.trai.ch/pantry/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// MetadataJSONFile is the compiled metadata file, preferred when present.
	MetadataJSONFile = "metadata.json"
	// MetadataRubyFile is the source metadata file.
	MetadataRubyFile = "metadata.rb"
)

var _ ports.MetadataReader = (*MetadataReader)(nil)

var (
	rbNamePattern    = regexp.MustCompile(`^\s*name\s*\(?\s*['"]([^'"]+)['"]`)
	rbVersionPattern = regexp.MustCompile(`^\s*version\s*\(?\s*['"]([^'"]+)['"]`)
	rbDependsPattern = regexp.MustCompile(`^\s*depends\s*\(?\s*['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)
)

// MetadataReader reads cookbook metadata from metadata.json or metadata.rb.
type MetadataReader struct{}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

type metadataJSON struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// ReadMetadata reads the metadata of the cookbook rooted at root.
func (r *MetadataReader) ReadMetadata(root string) (*domain.CookbookMetadata, error) {
	data, err := readOptional(filepath.Join(root, MetadataJSONFile))
	if err != nil {
		return nil, err
	}
	if data != nil {
		return parseMetadataJSON(root, data)
	}

	data, err = readOptional(filepath.Join(root, MetadataRubyFile))
	if err != nil {
		return nil, err
	}
	if data != nil {
		return parseMetadataRuby(data), nil
	}

	return &domain.CookbookMetadata{}, nil
}

// readOptional returns nil content and no error when path does not exist.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrFileRead, err), "path", path)
	}
	return data, nil
}

func parseMetadataJSON(root string, data []byte) (*domain.CookbookMetadata, error) {
	var raw metadataJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrMetadataParseFailed, err), "path", filepath.Join(root, MetadataJSONFile))
	}

	meta := &domain.CookbookMetadata{Name: raw.Name, Version: raw.Version}
	names := make([]string, 0, len(raw.Dependencies))
	for name := range raw.Dependencies {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		meta.Dependencies = append(meta.Dependencies, dependencyRequest(name, raw.Dependencies[name]))
	}
	return meta, nil
}

func parseMetadataRuby(data []byte) *domain.CookbookMetadata {
	meta := &domain.CookbookMetadata{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if m := rbDependsPattern.FindStringSubmatch(line); m != nil {
			meta.Dependencies = append(meta.Dependencies, dependencyRequest(m[1], m[2]))
			continue
		}
		if m := rbNamePattern.FindStringSubmatch(line); m != nil && meta.Name == "" {
			meta.Name = m[1]
			continue
		}
		if m := rbVersionPattern.FindStringSubmatch(line); m != nil && meta.Version == "" {
			meta.Version = m[1]
		}
	}
	return meta
}

func dependencyRequest(name, constraint string) domain.DependencyRequest {
	if constraint == "" {
		constraint = domain.DefaultConstraint
	}
	return domain.DependencyRequest{Name: name, Constraint: constraint}
}
