package domain

import (
	"strings"
)

// PolicySource is the violation source used for constraints declared by the policy itself.
const PolicySource = "Policyfile"

// ConflictKind says which direction of the conflict check failed.
type ConflictKind int

const (
	// ConflictIncoming means constraints pointing at the cookbook reject its version.
	ConflictIncoming ConflictKind = iota
	// ConflictOutgoing means the cookbook's own dependencies cannot be met by the resolved set.
	ConflictOutgoing
)

// ViolationReason classifies a single violation.
type ViolationReason int

const (
	// ReasonPolicyConstraint is a policy-level constraint the version does not satisfy.
	ReasonPolicyConstraint ViolationReason = iota
	// ReasonPeerConstraint is another cookbook's constraint the version does not satisfy.
	ReasonPeerConstraint
	// ReasonMissingDependency is a dependency with no cookbook of that name in the set.
	ReasonMissingDependency
	// ReasonUnsatisfiedDependency is a dependency whose resolved version is out of range.
	ReasonUnsatisfiedDependency
)

// Violation is one violated constraint found by a conflict check.
type Violation struct {
	Reason ViolationReason

	// Source is "Policyfile" or the "name (version)" of the declaring cookbook.
	Source string

	// Dependency is the name of the cookbook the constraint applies to.
	Dependency string

	Constraint Constraint

	// FoundVersion is the resolved version that failed the constraint,
	// set for ReasonUnsatisfiedDependency only.
	FoundVersion string
}

// String renders the violation as one line of a conflict report.
func (v Violation) String() string {
	switch v.Reason {
	case ReasonMissingDependency:
		return "Cookbook " + v.Dependency + " isn't included in the existing cookbook set."
	case ReasonUnsatisfiedDependency:
		return "Dependency on " + v.Dependency + " " + v.Constraint.String() +
			" conflicts with existing version " + v.FoundVersion + "."
	default:
		return v.Source + " depends on " + v.Dependency + " " + v.Constraint.String()
	}
}

// ConflictError reports every violation found in one pass of a conflict check.
// It unwraps to ErrDependencyConflict.
type ConflictError struct {
	Cookbook   Cookbook
	Kind       ConflictKind
	Violations []Violation
}

// Error renders the aggregated, line-per-violation report.
func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString("Cookbook ")
	b.WriteString(e.Cookbook.String())
	if e.Kind == ConflictOutgoing {
		b.WriteString(" has dependency constraints that cannot be met by the existing cookbook set:\n")
	} else {
		b.WriteString(" conflicts with other dependencies:\n")
	}
	for i, v := range e.Violations {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrDependencyConflict.
func (e *ConflictError) Unwrap() error {
	return ErrDependencyConflict
}
