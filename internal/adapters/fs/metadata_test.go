package fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pantry/internal/adapters/fs"
	"go.trai.ch/pantry/internal/core/domain"
)

func TestMetadataReader_JSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, fs.MetadataJSONFile, `{
  "name": "nginx",
  "version": "1.2.3",
  "dependencies": {"yum": "~> 3.4", "apt": "~> 2.3", "runit": ""}
}`)

	meta, err := fs.NewMetadataReader().ReadMetadata(root)
	require.NoError(t, err)

	assert.Equal(t, &domain.CookbookMetadata{
		Name:    "nginx",
		Version: "1.2.3",
		Dependencies: []domain.DependencyRequest{
			{Name: "apt", Constraint: "~> 2.3"},
			{Name: "runit", Constraint: ">= 0.0.0"},
			{Name: "yum", Constraint: "~> 3.4"},
		},
	}, meta)
}

func TestMetadataReader_Ruby(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, fs.MetadataRubyFile, `name             'nginx'
maintainer       'Example'
license          'Apache-2.0'
description      'Installs nginx'
version          "1.2.3"

depends 'yum', '~> 3.4'
depends "apt", ">= 2.0"
depends 'runit'
depends('ohai', '= 1.1.2')
`)

	meta, err := fs.NewMetadataReader().ReadMetadata(root)
	require.NoError(t, err)

	assert.Equal(t, "nginx", meta.Name)
	assert.Equal(t, "1.2.3", meta.Version)
	assert.Equal(t, []domain.DependencyRequest{
		{Name: "yum", Constraint: "~> 3.4"},
		{Name: "apt", Constraint: ">= 2.0"},
		{Name: "runit", Constraint: ">= 0.0.0"},
		{Name: "ohai", Constraint: "= 1.1.2"},
	}, meta.Dependencies)
}

func TestMetadataReader_PrefersJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, fs.MetadataJSONFile, `{"name": "compiled", "version": "2.0.0"}`)
	writeFile(t, root, fs.MetadataRubyFile, "name 'source'\nversion '1.0.0'\n")

	meta, err := fs.NewMetadataReader().ReadMetadata(root)
	require.NoError(t, err)
	assert.Equal(t, "compiled", meta.Name)
	assert.Equal(t, "2.0.0", meta.Version)
	assert.Empty(t, meta.Dependencies)
}

func TestMetadataReader_NoMetadata(t *testing.T) {
	meta, err := fs.NewMetadataReader().ReadMetadata(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &domain.CookbookMetadata{}, meta)
}

func TestMetadataReader_InvalidJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, fs.MetadataJSONFile, `{"name": `)

	meta, err := fs.NewMetadataReader().ReadMetadata(root)
	require.Error(t, err)
	assert.Nil(t, meta)
	assert.ErrorIs(t, err, domain.ErrMetadataParseFailed)
}
