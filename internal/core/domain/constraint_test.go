package domain_test

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pantry/internal/core/domain"
)

func TestParseConstraint_CanonicalForm(t *testing.T) {
	tests := map[string]string{
		"~> 1.0":      "~> 1.0",
		"~>3.4":       "~> 3.4",
		">= 0.0.0":    ">= 0.0.0",
		"= 1.2.3":     "= 1.2.3",
		"1.2.3":       "= 1.2.3",
		"< 2":         "< 2",
		"!= 1.0.1":    "!= 1.0.1",
		"  <=  4.5 ":  "<= 4.5",
		"> 1.0.0-rc1": "> 1.0.0-rc1",
		"~> 1.2.3+b7": "~> 1.2.3+b7",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			c, err := domain.ParseConstraint(in)
			require.NoError(t, err)
			assert.Equal(t, want, c.String())

			reparsed, err := domain.ParseConstraint(c.String())
			require.NoError(t, err)
			assert.True(t, c.Equal(reparsed))
			assert.Equal(t, c.String(), reparsed.String())
		})
	}
}

func TestParseConstraint_Invalid(t *testing.T) {
	for _, in := range []string{"", "~>", "latest", "~> 1.x", ">> 1.0", "1.2.3.4", "=~ 1.0"} {
		t.Run(in, func(t *testing.T) {
			_, err := domain.ParseConstraint(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConstraint)
		})
	}
}

func TestParseConstraint_LeadingZeroKeepsSemverCause(t *testing.T) {
	_, err := domain.ParseConstraint("~> 01.0")
	require.ErrorIs(t, err, domain.ErrInvalidConstraint)
	assert.ErrorIs(t, err, semver.ErrSegmentStartsZero)
}

func TestConstraint_Satisfies(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		want       bool
	}{
		{"~> 1.0", "1.0.0", true},
		{"~> 1.0", "1.2.3", true},
		{"~> 1.0", "2.0.0", false},
		{"~> 1.0", "0.9.9", false},
		{"~> 2.3", "2.5.6", true},
		{"~> 2.3", "3.0.0", false},
		{"~>3.4", "3.4.1", true},
		{"~>3.4", "3.5.0", true},
		{"~> 3", "3.9.0", true},
		{"~> 3", "4.0.0", false},
		{"~> 1.2.3", "1.2.9", true},
		{"~> 1.2.3", "1.3.0", false},
		{"~> 1.2.3", "1.2.2", false},
		{">= 0.0.0", "5.0.0", true},
		{">= 0.0.0", "56479847193686175.10855057214514295.269473688185993", true},
		{"= 1.2.3", "1.2.3", true},
		{"= 1.2.3", "1.2.4", false},
		{"!= 1.2.3", "1.2.4", true},
		{"!= 1.2.3", "1.2.3", false},
		{"> 1.0", "1.0.0", false},
		{"> 1.0", "1.0.1", true},
		{"< 2.0", "1.9.9", true},
		{"< 2.0", "2.0.0", false},
		{"<= 2.0", "2.0.0", true},
		{">= 1.0", "not-a-version", false},
	}

	for _, tt := range tests {
		t.Run(tt.constraint+"/"+tt.version, func(t *testing.T) {
			c := domain.MustParseConstraint(tt.constraint)
			assert.Equal(t, tt.want, c.Satisfies(tt.version))
		})
	}
}

func TestConstraint_ZeroValueSatisfiesNothing(t *testing.T) {
	var c domain.Constraint
	assert.False(t, c.Satisfies("1.0.0"))
	assert.Empty(t, c.String())
}

func TestMustParseConstraint_Panics(t *testing.T) {
	assert.Panics(t, func() { domain.MustParseConstraint("nope") })
}
