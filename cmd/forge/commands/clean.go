package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete all computed outputs and build state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, _ := cmd.Flags().GetString("manifest")
			return c.app.Clean(cmd.Context(), manifest)
		},
	}
}
