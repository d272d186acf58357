package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Fingerprint the policy's cookbooks and write the lock file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Lock(cmd.Context(), c.policyPath, c.lockPath)
			return err
		},
	}
}
