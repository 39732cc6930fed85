package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/output"
	"github.com/mj1618/axcore/internal/platform"
)

// newClient connects to the platform's accessibility backend.
func newClient(opts ...ax.Option) (*ax.Client, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	opts = append([]ax.Option{ax.WithLogger(logger)}, opts...)
	return provider.Client(cfg.Prompt, opts...)
}

// targetFromFlags builds the element target from the persistent flags.
func targetFromFlags() (platform.Target, error) {
	flags := rootCmd.PersistentFlags()
	pid, _ := flags.GetInt("pid")
	at, _ := flags.GetString("at")
	child, _ := flags.GetString("child")
	timeout, _ := flags.GetDuration("timeout")
	if !flags.Changed("timeout") {
		timeout = cfg.Timeout
	}

	t := platform.Target{PID: pid, Timeout: timeout}
	if at != "" {
		p, err := platform.ParsePoint(at)
		if err != nil {
			return t, err
		}
		t.At = &p
	}
	path, err := platform.ParseIndexPath(child)
	if err != nil {
		return t, err
	}
	t.Child = path
	return t, nil
}

// withTarget resolves target and runs fn on the element. The element and
// the client are closed afterwards.
func withTarget(target platform.Target, fn func(el *ax.Element) error, opts ...ax.Option) error {
	client, err := newClient(opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	el, err := target.Resolve(client)
	if err != nil {
		return err
	}
	defer el.Close()
	logger.Debug("resolved target", "target", target.String(), "element", el.String())
	return fn(el)
}

// withElement is withTarget for the target named by the flags.
func withElement(fn func(el *ax.Element) error, opts ...ax.Option) error {
	target, err := targetFromFlags()
	if err != nil {
		return err
	}
	return withTarget(target, fn, opts...)
}

// printResult writes v to the command's output in the selected format.
func printResult(cmd *cobra.Command, v any) error {
	return output.Fprint(cmd.OutOrStdout(), v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
