// Package config provides the policy file loader for pantry.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/pantry/internal/core/domain"
	"go.trai.ch/pantry/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPolicyName is the policy file looked up when none is given.
	DefaultPolicyName = "policy.yaml"
	// DefaultCachePath is used, relative to the policy directory, when cached
	// cookbooks are declared without a cache_path.
	DefaultCachePath = ".pantry/cache"
)

var _ ports.PolicyLoader = (*Loader)(nil)

// Loader implements ports.PolicyLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the policy at path. Relative cookbook paths and the cache path
// are resolved against the directory holding the policy file.
func (l *Loader) Load(path string) (*domain.Policy, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrPolicyReadFailed, err), "path", path)
	}

	var file Policyfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrPolicyParseFailed, err), "path", path)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrPolicyReadFailed, err), "path", path)
	}

	policy, err := l.buildPolicy(&file, root)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return policy, nil
}

func (l *Loader) buildPolicy(file *Policyfile, root string) (*domain.Policy, error) {
	if file.Name == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrPolicyParseFailed, "policy name is required"), "field", "name")
	}

	policy := &domain.Policy{
		Name:      file.Name,
		RunList:   file.RunList,
		Root:      root,
		CachePath: resolvePath(root, file.CachePath),
		Cookbooks: make([]domain.CookbookSource, 0, len(file.Cookbooks)),
	}

	seen := make(map[string]bool, len(file.Cookbooks))
	for _, dto := range file.Cookbooks {
		source, err := l.buildCookbook(dto)
		if err != nil {
			return nil, err
		}
		if seen[source.Name] {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateCookbook, "cookbook declared more than once"), "cookbook", source.Name)
		}
		seen[source.Name] = true
		policy.Cookbooks = append(policy.Cookbooks, source)
	}

	if policy.CachePath == "" && hasCachedCookbook(policy.Cookbooks) {
		policy.CachePath = filepath.Join(root, DefaultCachePath)
		l.Logger.Warn(fmt.Sprintf("no cache_path set, using %s", policy.CachePath))
	}

	return policy, nil
}

func (l *Loader) buildCookbook(dto CookbookDTO) (domain.CookbookSource, error) {
	if dto.Name == "" {
		return domain.CookbookSource{}, zerr.With(zerr.Wrap(domain.ErrInvalidCookbookSource, "cookbook name is required"), "field", "name")
	}
	if (dto.Path == "") == (dto.CacheKey == "") {
		return domain.CookbookSource{}, zerr.With(zerr.Wrap(domain.ErrInvalidCookbookSource, "invalid cookbook source"), "cookbook", dto.Name)
	}

	constraint := dto.Constraint
	if constraint == "" {
		constraint = domain.DefaultConstraint
	}
	if _, err := domain.ParseConstraint(constraint); err != nil {
		return domain.CookbookSource{}, zerr.With(err, "cookbook", dto.Name)
	}

	if dto.Path != "" && dto.Origin != "" {
		l.Logger.Warn(fmt.Sprintf("'origin' has no effect for local cookbook %s", dto.Name))
	}

	source := domain.CookbookSource{
		Name:       dto.Name,
		Constraint: constraint,
		CacheKey:   dto.CacheKey,
		Origin:     dto.Origin,
	}
	if dto.Path != "" {
		source.Path = filepath.ToSlash(filepath.Clean(dto.Path))
	}
	return source, nil
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func hasCachedCookbook(cookbooks []domain.CookbookSource) bool {
	for _, c := range cookbooks {
		if !c.IsLocal() {
			return true
		}
	}
	return false
}
