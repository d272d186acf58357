package logger_test

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pantry/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	inner := zerr.With(zerr.New("failed to read cookbook file"), "path", "recipes/default.rb")
	outer := zerr.With(zerr.Wrap(inner, "failed to lock policy"), "policy", "policy.yaml")

	entries := logger.CollectErrorEntries(outer)

	assert.Equal(t, []logger.ErrorEntry{
		{Message: "failed to lock policy", Metadata: map[string]any{"policy": "policy.yaml"}},
		{Message: "failed to read cookbook file", Metadata: map[string]any{"path": "recipes/default.rb"}},
	}, entries)
}

func TestCollectErrorEntries_StopsAtForeignError(t *testing.T) {
	entries := logger.CollectErrorEntries(zerr.Wrap(errors.New("permission denied"), "outer"))

	assert.Len(t, entries, 2)
	assert.Equal(t, "permission denied", entries[1].Message)
	assert.Nil(t, entries[1].Metadata)
	assert.Empty(t, logger.CollectErrorEntries(nil))
}

func TestCollectErrorEntries_SentinelJoin(t *testing.T) {
	sentinel := zerr.New("failed to read lock file")
	err := zerr.With(fmt.Errorf("%w: %w", sentinel, iofs.ErrNotExist), "path", "Policyfile.lock.json")

	entries := logger.CollectErrorEntries(err)

	assert.Equal(t, []logger.ErrorEntry{
		{Message: "failed to read lock file", Metadata: map[string]any{"path": "Policyfile.lock.json"}},
		{Message: "file does not exist"},
	}, entries)
}

func TestCollectErrorEntries_EmptyMessageLayerFoldsMetadata(t *testing.T) {
	sentinel := zerr.New("cached cookbook has been modified")
	err := zerr.With(zerr.Wrap(zerr.With(zerr.Wrap(sentinel, ""), "cookbook", "nginx"), "failed to validate"), "lock", "x.json")

	entries := logger.CollectErrorEntries(err)

	assert.Equal(t, []logger.ErrorEntry{
		{Message: "failed to validate", Metadata: map[string]any{"lock": "x.json"}},
		{Message: "cached cookbook has been modified", Metadata: map[string]any{"cookbook": "nginx"}},
	}, entries)
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "sorted metadata",
			entries: []logger.ErrorEntry{{
				Message:  "error",
				Metadata: map[string]any{"version": "1.0.0", "cookbook": "nginx"},
			}},
			want: "Error: error\n       cookbook: nginx\n       version: 1.0.0",
		},
		{
			name: "multiline cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "header:\nline", Metadata: map[string]any{"k": 1}},
			},
			want: "Error: main\n\n  Caused by:\n    → header:\n      line\n      k: 1",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
