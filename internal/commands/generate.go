package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/fwenc/internal/encryption"
)

// NewGenerateCommand creates a new cobra command printing a random hex encoded key.
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a new encryption key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := encryption.NewKey()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), key) //nolint:errcheck

			return nil
		},
	}
}
