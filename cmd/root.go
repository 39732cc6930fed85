package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/config"
	"github.com/mj1618/axcore/internal/logging"
	"github.com/mj1618/axcore/internal/output"
	"github.com/mj1618/axcore/internal/version"
)

var (
	cfg      = config.Default()
	logger   = slog.New(slog.DiscardHandler)
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "axcore",
	Short: "Inspect and drive macOS accessibility elements",
	Long: `axcore reads and writes attributes, performs actions and walks element
trees through the macOS accessibility API.

Every element command acts on a target: the system-wide element by default,
the application given by --pid, optionally hit-tested with --at x,y and then
walked down with --child i,j,k.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits 1 on error.
func Execute() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	flags := rootCmd.PersistentFlags()
	flags.String("format", "", "Output format: yaml, json, table (default: yaml on a terminal, json when piped)")
	flags.Bool("pretty", false, "Pretty-print JSON")
	flags.Int("pid", 0, "Target the application with this PID (default: system-wide element)")
	flags.String("at", "", "Hit-test the target at screen point x,y")
	flags.String("child", "", "Walk down from the target by child indexes (e.g. 0,2,1)")
	flags.Duration("timeout", 0, "Messaging timeout for the target element (e.g. 2s; 0 = system default)")
	flags.String("config", "", "Config file (default: $AXCORE_CONFIG or ~/.config/axcore/config.yaml)")
}

func setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Root().PersistentFlags()
	path, _ := flags.GetString("config")
	if path == "" {
		path = config.Path(os.Getenv)
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	closeLog()
	logger, closeLog = logging.New(logging.FromEnv(os.Getenv), os.Stderr)
	logger.Debug("config loaded", "path", path)

	// Flag beats config; otherwise json when piped, yaml for a terminal.
	format, _ := flags.GetString("format")
	if format == "" {
		format = cfg.Format
	}
	if format == "" {
		format = string(output.FormatYAML)
		if output.IsOutputPiped() {
			format = string(output.FormatJSON)
		}
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = flags.GetBool("pretty")
	return nil
}
