// Package domain contains the core domain models and the conflict-detection logic
// for locked cookbook solutions.
package domain

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Cookbook identifies one resolved cookbook by name and exact version.
// It is a comparable value type and can be used directly as a map key.
type Cookbook struct {
	Name    string
	Version string
}

// NewCookbook creates a Cookbook key.
func NewCookbook(name, version string) Cookbook {
	return Cookbook{Name: name, Version: version}
}

// ParseCookbook parses the "name (version)" form produced by String.
func ParseCookbook(s string) (Cookbook, error) {
	name, rest, ok := strings.Cut(s, " ")
	if !ok || name == "" {
		return Cookbook{}, zerr.With(zerr.Wrap(ErrInvalidCookbookKey, "cannot parse cookbook key"), "key", s)
	}

	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return Cookbook{}, zerr.With(zerr.Wrap(ErrInvalidCookbookKey, "cannot parse cookbook key"), "key", s)
	}
	end := strings.IndexByte(rest[open+1:], ')')
	if end <= 0 {
		return Cookbook{}, zerr.With(zerr.Wrap(ErrInvalidCookbookKey, "cannot parse cookbook key"), "key", s)
	}

	return Cookbook{Name: name, Version: rest[open+1 : open+1+end]}, nil
}

// String renders the key as "name (version)".
func (c Cookbook) String() string {
	return c.Name + " (" + c.Version + ")"
}

// Hash returns a stable 64-bit digest of the key's fields.
// Equal keys always hash identically, across processes and runs.
func (c Cookbook) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(c.Name)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(c.Version)
	return d.Sum64()
}
