package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pantry/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the file walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// FingerprinterNodeID is the unique identifier for the fingerprinter Graft node.
	FingerprinterNodeID graft.ID = "adapter.fs.fingerprinter"
	// MetadataReaderNodeID is the unique identifier for the metadata reader Graft node.
	MetadataReaderNodeID graft.ID = "adapter.fs.metadata"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        FingerprinterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewFingerprinter(walker), nil
		},
	})

	graft.Register(graft.Node[ports.MetadataReader]{
		ID:        MetadataReaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MetadataReader, error) {
			return NewMetadataReader(), nil
		},
	})
}
