package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// SolutionDependencies records the constraints of one locked solution: those
// declared by the policy and those declared by each resolved cookbook.
// It checks whether a recorded cookbook version is compatible with everything else.
//
// A SolutionDependencies is owned by a single resolution session and is not
// safe for concurrent mutation.
type SolutionDependencies struct {
	policy []Dependency

	// order keeps cookbook keys in insertion order so reports and lock output are deterministic.
	order     []Cookbook
	cookbooks map[Cookbook][]Dependency
}

// NewSolutionDependencies creates an empty solution.
func NewSolutionDependencies() *SolutionDependencies {
	return &SolutionDependencies{
		cookbooks: make(map[Cookbook][]Dependency),
	}
}

// FromLock builds a solution from its lock representation.
func FromLock(lock SolutionLock) (*SolutionDependencies, error) {
	s := NewSolutionDependencies()
	if err := s.ConsumeLock(lock); err != nil {
		return nil, err
	}
	return s, nil
}

// AddPolicyDependency appends a constraint declared directly by the policy.
func (s *SolutionDependencies) AddPolicyDependency(name, constraint string) error {
	c, err := ParseConstraint(constraint)
	if err != nil {
		return zerr.With(err, "dependency", name)
	}
	s.policy = append(s.policy, Dependency{Name: name, Constraint: c})
	return nil
}

// AddCookbookDependency records the dependencies of the cookbook name at version,
// replacing any entry for that exact key. Nothing is recorded if a constraint
// fails to parse.
func (s *SolutionDependencies) AddCookbookDependency(name, version string, deps []DependencyRequest) error {
	parsed, err := parseDependencies(deps)
	if err != nil {
		return zerr.With(err, "cookbook", NewCookbook(name, version).String())
	}
	s.put(NewCookbook(name, version), parsed)
	return nil
}

// UpdateCookbookDependency replaces every recorded version of name with the
// given version and dependencies.
func (s *SolutionDependencies) UpdateCookbookDependency(name, version string, deps []DependencyRequest) error {
	parsed, err := parseDependencies(deps)
	if err != nil {
		return zerr.With(err, "cookbook", NewCookbook(name, version).String())
	}
	s.removeName(name)
	s.put(NewCookbook(name, version), parsed)
	return nil
}

func (s *SolutionDependencies) put(c Cookbook, deps []Dependency) {
	if _, exists := s.cookbooks[c]; !exists {
		s.order = append(s.order, c)
	}
	s.cookbooks[c] = deps
}

func (s *SolutionDependencies) removeName(name string) {
	s.order = slices.DeleteFunc(s.order, func(c Cookbook) bool {
		if c.Name != name {
			return false
		}
		delete(s.cookbooks, c)
		return true
	})
}

// TestConflict checks the recorded cookbook name at version in both directions:
// first every policy and peer constraint pointing at it, then its own
// dependencies against the cookbooks already in the set. It returns a
// *ConflictError listing all violations of the failing pass, or
// ErrNotInWorkingSet if the cookbook was never recorded.
func (s *SolutionDependencies) TestConflict(name, version string) error {
	target := NewCookbook(name, version)
	if !s.HasCookbook(name, version) {
		return zerr.With(zerr.Wrap(ErrNotInWorkingSet, "cannot test for conflicts"), "cookbook", target.String())
	}

	if violations := s.incomingViolations(target); len(violations) > 0 {
		return &ConflictError{Cookbook: target, Kind: ConflictIncoming, Violations: violations}
	}
	if violations := s.outgoingViolations(target); len(violations) > 0 {
		return &ConflictError{Cookbook: target, Kind: ConflictOutgoing, Violations: violations}
	}
	return nil
}

// incomingViolations collects policy constraints first, then peer constraints
// in insertion order.
func (s *SolutionDependencies) incomingViolations(target Cookbook) []Violation {
	var violations []Violation

	for _, dep := range s.policy {
		if dep.Name == target.Name && !dep.Constraint.Satisfies(target.Version) {
			violations = append(violations, Violation{
				Reason:     ReasonPolicyConstraint,
				Source:     PolicySource,
				Dependency: dep.Name,
				Constraint: dep.Constraint,
			})
		}
	}

	for _, top := range s.order {
		if top == target {
			continue
		}
		for _, dep := range s.cookbooks[top] {
			if dep.Name == target.Name && !dep.Constraint.Satisfies(target.Version) {
				violations = append(violations, Violation{
					Reason:     ReasonPeerConstraint,
					Source:     top.String(),
					Dependency: dep.Name,
					Constraint: dep.Constraint,
				})
			}
		}
	}

	return violations
}

func (s *SolutionDependencies) outgoingViolations(target Cookbook) []Violation {
	var violations []Violation

	for _, dep := range s.cookbooks[target] {
		existing, ok := s.FindCookbook(dep.Name)
		switch {
		case !ok:
			violations = append(violations, Violation{
				Reason:     ReasonMissingDependency,
				Source:     target.String(),
				Dependency: dep.Name,
				Constraint: dep.Constraint,
			})
		case !dep.Constraint.Satisfies(existing.Version):
			violations = append(violations, Violation{
				Reason:       ReasonUnsatisfiedDependency,
				Source:       target.String(),
				Dependency:   dep.Name,
				Constraint:   dep.Constraint,
				FoundVersion: existing.Version,
			})
		}
	}

	return violations
}

// HasCookbook reports whether the exact key name at version is recorded.
func (s *SolutionDependencies) HasCookbook(name, version string) bool {
	_, ok := s.cookbooks[NewCookbook(name, version)]
	return ok
}

// FindCookbook returns the first recorded key with the given name, whatever its version.
func (s *SolutionDependencies) FindCookbook(name string) (Cookbook, bool) {
	for _, c := range s.order {
		if c.Name == name {
			return c, true
		}
	}
	return Cookbook{}, false
}

// Dependencies returns the recorded dependencies of c.
func (s *SolutionDependencies) Dependencies(c Cookbook) ([]Dependency, bool) {
	deps, ok := s.cookbooks[c]
	if !ok {
		return nil, false
	}
	return slices.Clone(deps), true
}

// PolicyDependencies returns the policy-level constraints in declaration order.
func (s *SolutionDependencies) PolicyDependencies() []Dependency {
	return slices.Clone(s.policy)
}

// Cookbooks yields every recorded cookbook and its dependencies in insertion order.
func (s *SolutionDependencies) Cookbooks() iter.Seq2[Cookbook, []Dependency] {
	return func(yield func(Cookbook, []Dependency) bool) {
		for _, c := range s.order {
			if !yield(c, slices.Clone(s.cookbooks[c])) {
				return
			}
		}
	}
}

// Len returns the number of recorded cookbooks.
func (s *SolutionDependencies) Len() int {
	return len(s.order)
}

// ToLock converts the solution to its lock representation.
func (s *SolutionDependencies) ToLock() SolutionLock {
	lock := SolutionLock{
		Policyfile:   make([]DependencyPair, 0, len(s.policy)),
		Dependencies: CookbookDependencyTable{},
	}
	for _, dep := range s.policy {
		lock.Policyfile = append(lock.Policyfile, DependencyPair{dep.Name, dep.Constraint.String()})
	}
	for _, c := range s.order {
		deps := s.cookbooks[c]
		pairs := make([]DependencyPair, 0, len(deps))
		for _, dep := range deps {
			pairs = append(pairs, DependencyPair{dep.Name, dep.Constraint.String()})
		}
		lock.Dependencies.Set(c.String(), pairs)
	}
	return lock
}

// ConsumeLock adds the contents of a lock representation to the solution.
// Either everything is added or, on error, nothing is.
func (s *SolutionDependencies) ConsumeLock(lock SolutionLock) error {
	policy := make([]Dependency, 0, len(lock.Policyfile))
	for _, pair := range lock.Policyfile {
		c, err := ParseConstraint(pair.Constraint())
		if err != nil {
			return zerr.With(err, "dependency", pair.Name())
		}
		policy = append(policy, Dependency{Name: pair.Name(), Constraint: c})
	}

	type entry struct {
		cookbook Cookbook
		deps     []Dependency
	}
	entries := make([]entry, 0, lock.Dependencies.Len())
	for key, pairs := range lock.Dependencies.All() {
		c, err := ParseCookbook(key)
		if err != nil {
			return err
		}
		deps, err := parseDependencies(pairs.Requests())
		if err != nil {
			return zerr.With(err, "cookbook", key)
		}
		entries = append(entries, entry{cookbook: c, deps: deps})
	}

	s.policy = append(s.policy, policy...)
	for _, e := range entries {
		s.put(e.cookbook, e.deps)
	}
	return nil
}
