package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that locked cookbooks still match the lock file",
		Long: "Re-fingerprints every locked cookbook. Changed local cookbooks are\n" +
			"re-recorded and the lock file is rewritten; any other change fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.app.Validate(cmd.Context(), c.policyPath, c.lockPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range result.Updated {
				_, _ = fmt.Fprintf(out, "refreshed %s\n", name)
			}
			_, _ = fmt.Fprintf(out, "%s is valid\n", c.lockPath)
			return nil
		},
	}
}
