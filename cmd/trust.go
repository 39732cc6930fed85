package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/output"
	"github.com/mj1618/axcore/internal/platform"
)

var trustCmd = &cobra.Command{
	Use:   "trust",
	Short: "Report whether this process may use the accessibility API",
	Long: `Report whether this process is trusted for accessibility. With --prompt,
macOS shows the dialog that links to System Settings > Privacy & Security >
Accessibility when it is not.`,
	Args: cobra.NoArgs,
	RunE: runTrust,
}

func init() {
	rootCmd.AddCommand(trustCmd)
	trustCmd.Flags().Bool("prompt", false, "Ask the user to grant access if not trusted")
}

func runTrust(cmd *cobra.Command, args []string) error {
	prompt, _ := cmd.Flags().GetBool("prompt")
	if !cmd.Flags().Changed("prompt") {
		prompt = cfg.Prompt
	}
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	trusted := true
	if provider.Trust != nil {
		trusted = provider.Trust.IsTrusted(prompt)
	}
	return printResult(cmd, output.ValueResult{Element: "process", Name: "trusted", Value: trusted})
}
