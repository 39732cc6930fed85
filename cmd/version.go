package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
