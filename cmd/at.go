package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/model"
	"github.com/mj1618/axcore/internal/output"
	"github.com/mj1618/axcore/internal/platform"
)

var atCmd = &cobra.Command{
	Use:   "at X,Y",
	Short: "Describe the element at a screen point",
	Long: `Hit-test a screen point (top-left origin) within the --pid application,
or system-wide, and describe the element found there. --child walks down
from the hit element.`,
	Args: cobra.ExactArgs(1),
	RunE: runAt,
}

var pidCmd = &cobra.Command{
	Use:   "pid",
	Short: "Print the PID of the application that owns the target element",
	Args:  cobra.NoArgs,
	RunE:  runPID,
}

func init() {
	rootCmd.AddCommand(atCmd, pidCmd)
}

func runAt(cmd *cobra.Command, args []string) error {
	p, err := platform.ParsePoint(args[0])
	if err != nil {
		return err
	}
	target, err := targetFromFlags()
	if err != nil {
		return err
	}
	target.At = &p
	return withTarget(target, func(el *ax.Element) error {
		info, err := model.Describe(el)
		if err != nil {
			return err
		}
		pid, err := el.PID()
		if err != nil {
			return err
		}
		return printResult(cmd, output.ElementResult{Handle: el.String(), PID: pid, Element: info})
	})
}

func runPID(cmd *cobra.Command, args []string) error {
	return withElement(func(el *ax.Element) error {
		pid, err := el.PID()
		if err != nil {
			return err
		}
		return printResult(cmd, output.ValueResult{Element: el.String(), Name: "pid", Value: pid})
	})
}
