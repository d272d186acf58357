package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pantry/internal/core/domain"
)

// identity is the JSON form printed by identify --json.
type identity struct {
	Path                    string                         `json:"path"`
	Version                 string                         `json:"version"`
	Identifier              string                         `json:"identifier"`
	DottedDecimalIdentifier string                         `json:"dotted_decimal_identifier"`
	Files                   map[string]domain.FileChecksum `json:"files"`
}

func (c *CLI) newIdentifyCmd() *cobra.Command {
	var (
		asJSON      bool
		fingerprint bool
	)

	cmd := &cobra.Command{
		Use:   "identify PATH",
		Short: "Print the content identifiers of a cookbook directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := c.app.Identify(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(identity{
					Path:                    ids.Path,
					Version:                 ids.Version(),
					Identifier:              ids.ContentIdentifier,
					DottedDecimalIdentifier: ids.DottedDecimalIdentifier,
					Files:                   ids.Files,
				})
			case fingerprint:
				_, _ = fmt.Fprint(out, ids.FingerprintText)
			default:
				_, _ = fmt.Fprintf(out, "version:    %s\n", ids.Version())
				_, _ = fmt.Fprintf(out, "identifier: %s\n", ids.ContentIdentifier)
				_, _ = fmt.Fprintf(out, "dotted:     %s\n", ids.DottedDecimalIdentifier)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print identifiers and file checksums as JSON")
	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "Print the fingerprint text the identifier is computed from")
	cmd.MarkFlagsMutuallyExclusive("json", "fingerprint")
	return cmd
}
