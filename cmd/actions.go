package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/output"
)

// PerformResult is the output of a successful perform command.
type PerformResult struct {
	Element   string `yaml:"element"   json:"element"`
	Action    string `yaml:"action"    json:"action"`
	Performed bool   `yaml:"performed" json:"performed"`
}

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the actions of the target element",
	Args:  cobra.NoArgs,
	RunE:  runActions,
}

var performCmd = &cobra.Command{
	Use:   "perform ACTION",
	Short: "Perform an action (e.g. AXPress, AXRaise, AXShowMenu) on the target element",
	Args:  cobra.ExactArgs(1),
	RunE:  runPerform,
}

func init() {
	rootCmd.AddCommand(actionsCmd, performCmd)
}

func runActions(cmd *cobra.Command, args []string) error {
	return withElement(func(el *ax.Element) error {
		names, err := el.Actions()
		if err != nil {
			return err
		}
		return printResult(cmd, output.ListResult{Element: el.String(), Names: names})
	})
}

func runPerform(cmd *cobra.Command, args []string) error {
	return withElement(func(el *ax.Element) error {
		ok, err := el.Perform(args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, PerformResult{Element: el.String(), Action: args[0], Performed: ok})
	})
}
