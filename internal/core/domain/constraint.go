package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Operator is a version constraint operator.
type Operator string

const (
	// OpEqual matches exactly the given version.
	OpEqual Operator = "="
	// OpNotEqual matches every version except the given one.
	OpNotEqual Operator = "!="
	// OpGreater matches versions strictly greater than the given one.
	OpGreater Operator = ">"
	// OpLess matches versions strictly less than the given one.
	OpLess Operator = "<"
	// OpGreaterEqual matches versions greater than or equal to the given one.
	OpGreaterEqual Operator = ">="
	// OpLessEqual matches versions less than or equal to the given one.
	OpLessEqual Operator = "<="
	// OpPessimistic ("~>") allows the last given component to increase.
	OpPessimistic Operator = "~>"
)

var constraintPattern = regexp.MustCompile(
	`^\s*(?:(>=|<=|~>|!=|>|<|=)\s*)?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?\s*$`,
)

// Constraint is a parsed version range such as "~> 1.0" or ">= 0.0.0".
// The zero value is not usable; build constraints with ParseConstraint.
type Constraint struct {
	op Operator

	// parts is the number of numeric components written in the constraint (1-3).
	parts int
	min   *semver.Version
}

// ParseConstraint parses a constraint string. A missing operator means "=".
func ParseConstraint(raw string) (Constraint, error) {
	m := constraintPattern.FindStringSubmatch(raw)
	if m == nil {
		return Constraint{}, zerr.With(zerr.Wrap(ErrInvalidConstraint, "cannot parse constraint"), "constraint", raw)
	}

	op := Operator(m[1])
	if op == "" {
		op = OpEqual
	}

	parts := 1
	minor, patch := "0", "0"
	if m[3] != "" {
		parts, minor = 2, m[3]
	}
	if m[4] != "" {
		parts, patch = 3, m[4]
	}

	normalized := m[2] + "." + minor + "." + patch
	if m[5] != "" {
		normalized += "-" + m[5]
	}
	if m[6] != "" {
		normalized += "+" + m[6]
	}

	v, err := semver.StrictNewVersion(normalized)
	if err != nil {
		return Constraint{}, zerr.With(fmt.Errorf("%w: %w", ErrInvalidConstraint, err), "constraint", raw)
	}

	return Constraint{op: op, parts: parts, min: v}, nil
}

// MustParseConstraint is like ParseConstraint but panics on error.
func MustParseConstraint(raw string) Constraint {
	c, err := ParseConstraint(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// Operator returns the constraint's operator.
func (c Constraint) Operator() Operator {
	return c.op
}

// Satisfies reports whether version falls inside the constraint.
// Versions that do not parse satisfy nothing.
func (c Constraint) Satisfies(version string) bool {
	if c.min == nil {
		return false
	}
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false
	}

	switch c.op {
	case OpEqual:
		return v.Equal(c.min)
	case OpNotEqual:
		return !v.Equal(c.min)
	case OpGreater:
		return v.GreaterThan(c.min)
	case OpLess:
		return v.LessThan(c.min)
	case OpGreaterEqual:
		return !v.LessThan(c.min)
	case OpLessEqual:
		return !v.GreaterThan(c.min)
	case OpPessimistic:
		return !v.LessThan(c.min) && v.LessThan(c.pessimisticCeiling())
	default:
		return false
	}
}

// pessimisticCeiling is the exclusive upper bound of a "~>" constraint.
func (c Constraint) pessimisticCeiling() *semver.Version {
	switch {
	case c.parts < 3:
		next := c.min.IncMajor()
		return &next
	case c.min.Prerelease() != "":
		return semver.New(c.min.Major(), c.min.Minor(), c.min.Patch()+1, "", "")
	default:
		next := c.min.IncMinor()
		return &next
	}
}

// String renders the canonical "{op} {version}" form, keeping as many
// numeric components as were written.
func (c Constraint) String() string {
	if c.min == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(string(c.op))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(c.min.Major(), 10))
	if c.parts > 1 {
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(c.min.Minor(), 10))
	}
	if c.parts > 2 {
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(c.min.Patch(), 10))
	}
	if pre := c.min.Prerelease(); pre != "" {
		b.WriteByte('-')
		b.WriteString(pre)
	}
	if meta := c.min.Metadata(); meta != "" {
		b.WriteByte('+')
		b.WriteString(meta)
	}
	return b.String()
}

// Equal reports whether two constraints are semantically identical.
func (c Constraint) Equal(other Constraint) bool {
	if c.min == nil || other.min == nil {
		return c.min == other.min
	}
	return c.op == other.op && c.parts == other.parts && c.min.Equal(other.min) &&
		c.min.Metadata() == other.min.Metadata()
}
