package domain

import "go.trai.ch/zerr"

// DependencyRequest is a declared dependency before its constraint is parsed
// (e.g. from a cookbook's metadata or a lock file).
type DependencyRequest struct {
	// Name is the cookbook being depended on (e.g. "apt").
	Name string

	// Constraint is the raw constraint string (e.g. "~> 2.3").
	Constraint string
}

// Dependency is a dependency on a named cookbook with a parsed constraint.
type Dependency struct {
	Name       string
	Constraint Constraint
}

// DefaultConstraint is used when a dependency is declared without a constraint.
const DefaultConstraint = ">= 0.0.0"

func parseDependencies(reqs []DependencyRequest) ([]Dependency, error) {
	deps := make([]Dependency, 0, len(reqs))
	for _, req := range reqs {
		c, err := ParseConstraint(req.Constraint)
		if err != nil {
			return nil, zerr.With(err, "dependency", req.Name)
		}
		deps = append(deps, Dependency{Name: req.Name, Constraint: c})
	}
	return deps, nil
}
