package commands

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/pantry/internal/core/domain"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	var depends []string

	cmd := &cobra.Command{
		Use:   "check NAME VERSION",
		Short: "Test whether a cookbook version fits the locked solution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, version := args[0], args[1]
			deps := parseDepends(depends)

			if err := c.app.Check(cmd.Context(), c.lockPath, name, version, deps); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is compatible with %s\n",
				domain.NewCookbook(name, version), c.lockPath)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&depends, "depends", "d", nil,
		`Dependency of the checked cookbook as "name", "name=constraint" or "name>=version", repeatable`)
	return cmd
}

// dependsPattern splits a --depends value into the cookbook name and an
// optional constraint, with an optional "=" between them.
var dependsPattern = regexp.MustCompile(`^\s*([A-Za-z0-9_-]+)\s*=?\s*(.*?)\s*$`)

// parseDepends reads "name", "name=constraint" and "name<op>version" flags,
// so "apt=~> 2.3", "apt>=1.0" and "runit== 1.0.0" all keep their operator.
// A bare name depends on any version.
func parseDepends(values []string) []domain.DependencyRequest {
	deps := make([]domain.DependencyRequest, 0, len(values))
	for _, v := range values {
		name, constraint := strings.TrimSpace(v), ""
		if m := dependsPattern.FindStringSubmatch(v); m != nil {
			name, constraint = m[1], m[2]
		}
		if constraint == "" {
			constraint = domain.DefaultConstraint
		}
		deps = append(deps, domain.DependencyRequest{Name: name, Constraint: constraint})
	}
	return deps
}
