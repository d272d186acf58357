package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/pantry/internal/core/domain"
	"go.trai.ch/zerr"
)

// Lock resolves the cookbooks declared by the policy at policyPath, checks
// the resulting solution for conflicts and writes the lock document to lockPath.
func (a *App) Lock(ctx context.Context, policyPath, lockPath string) (*domain.PolicyfileLock, error) {
	lock, err := a.lock(ctx, policyPath, lockPath)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrLockFailed, err), "policy", policyPath)
	}
	return lock, nil
}

func (a *App) lock(ctx context.Context, policyPath, lockPath string) (*domain.PolicyfileLock, error) {
	policy, err := a.policyLoader.Load(policyPath)
	if err != nil {
		return nil, err
	}

	targets := make([]target, len(policy.Cookbooks))
	for i, source := range policy.Cookbooks {
		targets[i] = target{name: source.Name, path: policy.CookbookPath(source)}
	}
	profiles, err := a.profile(ctx, targets)
	if err != nil {
		return nil, err
	}

	solution := domain.NewSolutionDependencies()
	for _, source := range policy.Cookbooks {
		if err := solution.AddPolicyDependency(source.Name, source.Constraint); err != nil {
			return nil, err
		}
	}
	for i, source := range policy.Cookbooks {
		p := profiles[i]
		if err := checkName(source.Name, p.meta); err != nil {
			return nil, err
		}
		if err := solution.AddCookbookDependency(source.Name, p.ids.Version(), p.meta.Dependencies); err != nil {
			return nil, err
		}
	}

	var conflicts []error
	for c := range solution.Cookbooks() {
		if err := solution.TestConflict(c.Name, c.Version); err != nil {
			conflicts = append(conflicts, err)
		}
	}
	if len(conflicts) > 0 {
		return nil, errors.Join(conflicts...)
	}

	lock := &domain.PolicyfileLock{
		Name:                 policy.Name,
		RunList:              policy.RunList,
		CookbookLocks:        make(map[string]domain.CookbookLock, len(policy.Cookbooks)),
		SolutionDependencies: solution.ToLock(),
	}
	for i, source := range policy.Cookbooks {
		lock.CookbookLocks[source.Name] = cookbookLock(source, profiles[i].ids)
	}

	written, err := a.lockStore.Save(lockPath, lock)
	if err != nil {
		return nil, err
	}
	if written {
		a.logger.Info(fmt.Sprintf("locked %d cookbooks in %s", len(lock.CookbookLocks), lockPath))
	} else {
		a.logger.Info(fmt.Sprintf("%s is up to date", lockPath))
	}
	return lock, nil
}

func cookbookLock(source domain.CookbookSource, ids *domain.Identifiers) domain.CookbookLock {
	entry := domain.CookbookLock{
		Version:                 ids.Version(),
		Identifier:              ids.ContentIdentifier,
		DottedDecimalIdentifier: ids.DottedDecimalIdentifier,
	}
	if source.IsLocal() {
		entry.Source = source.Path
		entry.SourceOptions = map[string]string{"path": source.Path}
		return entry
	}
	entry.CacheKey = source.CacheKey
	entry.Origin = source.Origin
	return entry
}
