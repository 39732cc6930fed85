package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/ax"
)

// TypeResult is the output of a successful type command.
type TypeResult struct {
	Element string   `yaml:"element" json:"element"`
	Keys    []string `yaml:"keys"    json:"keys"`
	Events  int      `yaml:"events"  json:"events"`
}

var typeCmd = &cobra.Command{
	Use:   "type KEY...",
	Short: "Post keyboard events to the target's application",
	Long: `Post key presses to the application that owns the target element. Each
KEY is a key name (a-z, 0-9, enter, tab, space, escape, up, f5, ...), a
virtual key code (36 or 0x24) or a combination such as cmd+shift+t.

--key-rate sets the delay between events: very_slow, slow, normal, fast,
zomg, or a number of seconds.

Examples:
  axcore type --pid 123 h i enter
  axcore type --pid 123 cmd+a delete --key-rate slow`,
	Args: cobra.MinimumNArgs(1),
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("key-rate", "", "Delay between key events (default from config, else normal)")
}

func runType(cmd *cobra.Command, args []string) error {
	rateName, _ := cmd.Flags().GetString("key-rate")
	if rateName == "" {
		rateName = cfg.KeyRate
	}
	rate, err := ax.ParseKeyRate(rateName)
	if err != nil {
		return err
	}

	var events []ax.KeyEvent
	for _, key := range args {
		evs, err := ax.KeyCombo(key)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", key, err)
		}
		events = append(events, evs...)
	}

	return withElement(func(el *ax.Element) error {
		if err := el.Post(events); err != nil {
			return err
		}
		return printResult(cmd, TypeResult{Element: el.String(), Keys: args, Events: len(events)})
	}, ax.WithKeyRate(rate))
}
