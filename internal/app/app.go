// Package app implements the application layer for pantry.
package app

import (
	"context"
	"fmt"
	"runtime"

	"go.trai.ch/pantry/internal/core/domain"
	"go.trai.ch/pantry/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	policyLoader  ports.PolicyLoader
	fingerprinter ports.Fingerprinter
	metadata      ports.MetadataReader
	lockStore     ports.LockStore
	logger        ports.Logger
	telemetry     ports.Telemetry
}

// New creates a new App instance.
func New(
	loader ports.PolicyLoader,
	fingerprinter ports.Fingerprinter,
	metadata ports.MetadataReader,
	store ports.LockStore,
	log ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		policyLoader:  loader,
		fingerprinter: fingerprinter,
		metadata:      metadata,
		lockStore:     store,
		logger:        log,
		telemetry:     telemetry,
	}
}

// Identify returns the identifiers of the cookbook at path, with the version
// its metadata declares.
func (a *App) Identify(ctx context.Context, path string) (*domain.Identifiers, error) {
	profiles, err := a.profile(ctx, []target{{name: path, path: path}})
	if err != nil {
		return nil, err
	}
	return profiles[0].ids, nil
}

// target is a cookbook directory to profile.
type target struct {
	name string
	path string
}

// cookbookProfile is what a cookbook directory says about itself.
type cookbookProfile struct {
	ids  *domain.Identifiers
	meta *domain.CookbookMetadata
}

// profile fingerprints and reads the metadata of every target in parallel.
// Results keep the order of targets.
func (a *App) profile(ctx context.Context, targets []target) ([]cookbookProfile, error) {
	profiles := make([]cookbookProfile, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, t := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, vertex := a.telemetry.Record(ctx, "fingerprint "+t.name)
			p, err := a.profileOne(t.path)
			if err != nil {
				vertex.Complete(err)
				return zerr.With(zerr.Wrap(err, "failed to profile cookbook"), "cookbook", t.name)
			}
			_, _ = fmt.Fprintf(vertex.Stdout(), "%s %s\n", p.ids.Version(), p.ids.ContentIdentifier)
			vertex.Complete(nil)

			profiles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (a *App) profileOne(path string) (cookbookProfile, error) {
	ids, err := a.fingerprinter.Identify(path)
	if err != nil {
		return cookbookProfile{}, err
	}
	meta, err := a.metadata.ReadMetadata(path)
	if err != nil {
		return cookbookProfile{}, err
	}
	ids.SemverVersion = meta.Version
	return cookbookProfile{ids: ids, meta: meta}, nil
}

// checkName rejects metadata that declares a name other than expected.
func checkName(expected string, meta *domain.CookbookMetadata) error {
	if meta.Name == "" || meta.Name == expected {
		return nil
	}
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrCookbookNameMismatch, "metadata name differs"), "expected", expected), "declared", meta.Name)
}
