package app

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"maps"
	"slices"

	"go.trai.ch/pantry/internal/core/domain"
	"go.trai.ch/zerr"
)

// ValidationResult summarizes a successful validation.
type ValidationResult struct {
	// Updated lists the local cookbooks whose content changed and whose lock
	// entries were refreshed, sorted by name.
	Updated []string

	// Written reports whether the lock file was rewritten.
	Written bool
}

// Validate re-fingerprints every cookbook recorded in the lock at lockPath.
// Cookbook locations are resolved against the policy at policyPath.
//
// A missing cookbook, a cookbook whose metadata declares a different name and
// a modified cached cookbook all fail validation. A modified local cookbook
// is re-recorded with its current version and dependencies; if the solution
// stays consistent its lock entry is refreshed and the lock rewritten.
func (a *App) Validate(ctx context.Context, policyPath, lockPath string) (*ValidationResult, error) {
	result, err := a.validate(ctx, policyPath, lockPath)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrValidationFailed, err), "lock", lockPath)
	}
	return result, nil
}

func (a *App) validate(ctx context.Context, policyPath, lockPath string) (*ValidationResult, error) {
	policy, err := a.policyLoader.Load(policyPath)
	if err != nil {
		return nil, err
	}
	lock, err := a.lockStore.Load(lockPath)
	if err != nil {
		return nil, err
	}
	solution, err := domain.FromLock(lock.SolutionDependencies)
	if err != nil {
		return nil, err
	}

	names := slices.Sorted(maps.Keys(lock.CookbookLocks))
	targets := make([]target, len(names))
	for i, name := range names {
		targets[i] = target{name: name, path: policy.LockedCookbookPath(lock.CookbookLocks[name])}
	}
	profiles, err := a.profile(ctx, targets)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", domain.ErrMissingLockedCookbook, err)
		}
		return nil, err
	}

	result := &ValidationResult{}
	refreshed := make(map[string]domain.CookbookLock)
	for i, name := range names {
		entry, p := lock.CookbookLocks[name], profiles[i]
		if err := checkName(name, p.meta); err != nil {
			return nil, err
		}
		if p.ids.ContentIdentifier == entry.Identifier {
			continue
		}
		if !entry.IsLocal() {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrCachedCookbookModified, "content identifier changed"), "cookbook", name), "cache_key", entry.CacheKey)
		}

		a.logger.Warn(fmt.Sprintf("local cookbook %s changed, re-recording it at %s", name, p.ids.Version()))
		if err := solution.UpdateCookbookDependency(name, p.ids.Version(), p.meta.Dependencies); err != nil {
			return nil, err
		}
		entry.Version = p.ids.Version()
		entry.Identifier = p.ids.ContentIdentifier
		entry.DottedDecimalIdentifier = p.ids.DottedDecimalIdentifier
		refreshed[name] = entry
		result.Updated = append(result.Updated, name)
	}

	if len(result.Updated) == 0 {
		return result, nil
	}

	var conflicts []error
	for _, name := range result.Updated {
		if err := solution.TestConflict(name, refreshed[name].Version); err != nil {
			conflicts = append(conflicts, err)
		}
	}
	if len(conflicts) > 0 {
		return nil, errors.Join(conflicts...)
	}

	maps.Copy(lock.CookbookLocks, refreshed)
	lock.SolutionDependencies = solution.ToLock()
	result.Written, err = a.lockStore.Save(lockPath, lock)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Check tests whether recording the cookbook name at version with deps, in
// place of any locked version of name, would conflict with the lock at
// lockPath. Nothing is written.
func (a *App) Check(_ context.Context, lockPath, name, version string, deps []domain.DependencyRequest) error {
	lock, err := a.lockStore.Load(lockPath)
	if err != nil {
		return err
	}
	solution, err := domain.FromLock(lock.SolutionDependencies)
	if err != nil {
		return err
	}
	if err := solution.UpdateCookbookDependency(name, version, deps); err != nil {
		return err
	}
	return solution.TestConflict(name, version)
}
