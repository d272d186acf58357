package domain

import "path/filepath"

// Policy is a loaded policy definition: the cookbooks it pins and where they come from.
type Policy struct {
	Name    string
	RunList []string

	// Root is the directory relative cookbook paths are resolved against.
	Root string

	// CachePath is the directory holding cached cookbooks.
	CachePath string

	// Cookbooks are the declared cookbooks in declaration order.
	Cookbooks []CookbookSource
}

// CookbookSource declares one cookbook, its policy-level constraint and its location.
type CookbookSource struct {
	Name string

	// Constraint is the policy-level constraint, DefaultConstraint when omitted.
	Constraint string

	// Path is set for local cookbooks, relative to Policy.Root.
	Path string

	// CacheKey is set for cached cookbooks, relative to Policy.CachePath.
	CacheKey string

	// Origin records where a cached cookbook came from.
	Origin string
}

// IsLocal reports whether the cookbook is sourced from a local path.
func (s CookbookSource) IsLocal() bool {
	return s.Path != ""
}

// CookbookPath returns the directory holding the cookbook declared by source.
func (p *Policy) CookbookPath(source CookbookSource) string {
	if source.IsLocal() {
		return filepath.Join(p.Root, filepath.FromSlash(source.Path))
	}
	return filepath.Join(p.CachePath, source.CacheKey)
}

// LockedCookbookPath returns the directory holding a cookbook recorded in a lock.
func (p *Policy) LockedCookbookPath(lock CookbookLock) string {
	if lock.IsLocal() {
		return filepath.Join(p.Root, filepath.FromSlash(lock.Source))
	}
	return filepath.Join(p.CachePath, lock.CacheKey)
}
