package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pantry/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pantry/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/pantry/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/pantry/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pantry/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/pantry/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.FingerprinterNodeID,
			fs.MetadataReaderNodeID,
			lockfile.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.PolicyLoader](ctx)
	if err != nil {
		return nil, err
	}

	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}

	metadata, err := graft.Dep[ports.MetadataReader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, fingerprinter, metadata, store, log, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
