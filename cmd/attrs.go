package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/output"
	"github.com/mj1618/axcore/internal/platform"
)

var attrsCmd = &cobra.Command{
	Use:   "attrs",
	Short: "List the attributes of the target element",
	Args:  cobra.NoArgs,
	RunE:  runAttrs,
}

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Read an attribute of the target element",
	Long: `Read an attribute of the target element. With --param, reads a
parameterized attribute; --param-type selects how the parameter is parsed.

Examples:
  axcore get AXTitle --pid 123 --child 0
  axcore get AXStringForRange --param 0..9 --param-type range --pid 123 --child 0,1`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var setCmd = &cobra.Command{
	Use:   "set NAME VALUE",
	Short: "Write an attribute of the target element",
	Long: `Write an attribute of the target element. --type selects how VALUE is
parsed: ` + platform.ValueTypeNames + `.

Examples:
  axcore set AXValue "hello" --pid 123 --child 0,2
  axcore set AXPosition 100,200 --type point --pid 123 --child 0
  axcore set AXSelectedTextRange 0...0 --type range --pid 123 --child 0,2`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var countCmd = &cobra.Command{
	Use:   "count NAME",
	Short: "Count the values of an array attribute without reading them",
	Args:  cobra.ExactArgs(1),
	RunE:  runCount,
}

var writableCmd = &cobra.Command{
	Use:   "writable NAME",
	Short: "Report whether an attribute of the target element can be set",
	Args:  cobra.ExactArgs(1),
	RunE:  runWritable,
}

func init() {
	rootCmd.AddCommand(attrsCmd, getCmd, setCmd, countCmd, writableCmd)
	attrsCmd.Flags().Bool("param", false, "List parameterized attributes instead")
	getCmd.Flags().String("param", "", "Parameter for a parameterized attribute")
	getCmd.Flags().String("param-type", "string", "Parameter type: "+platform.ValueTypeNames)
	setCmd.Flags().String("type", "string", "Value type: "+platform.ValueTypeNames)
}

func runAttrs(cmd *cobra.Command, args []string) error {
	param, _ := cmd.Flags().GetBool("param")
	return withElement(func(el *ax.Element) error {
		var names []string
		var err error
		if param {
			names, err = el.ParameterizedAttributes()
		} else {
			names, err = el.Attributes()
		}
		if err != nil {
			return err
		}
		return printResult(cmd, output.ListResult{Element: el.String(), Names: names})
	})
}

func runGet(cmd *cobra.Command, args []string) error {
	name := args[0]
	var param any
	if cmd.Flags().Changed("param") {
		raw, _ := cmd.Flags().GetString("param")
		typeName, _ := cmd.Flags().GetString("param-type")
		typ, err := platform.ParseValueType(typeName)
		if err != nil {
			return err
		}
		if param, err = platform.ParseTyped(typ, raw); err != nil {
			return err
		}
	}
	return withElement(func(el *ax.Element) error {
		var v any
		var err error
		if param != nil {
			v, err = el.ParameterizedAttribute(name, param)
		} else {
			v, err = el.Attribute(name)
		}
		if err != nil {
			return err
		}
		defer ax.CloseValue(v)
		return printResult(cmd, output.ValueResult{Element: el.String(), Name: name, Value: v})
	})
}

func runSet(cmd *cobra.Command, args []string) error {
	name, raw := args[0], args[1]
	typeName, _ := cmd.Flags().GetString("type")
	typ, err := platform.ParseValueType(typeName)
	if err != nil {
		return err
	}
	value, err := platform.ParseTyped(typ, raw)
	if err != nil {
		return err
	}
	return withElement(func(el *ax.Element) error {
		v, err := el.Set(name, value)
		if err != nil {
			return err
		}
		return printResult(cmd, output.ValueResult{Element: el.String(), Name: name, Value: v})
	})
}

func runCount(cmd *cobra.Command, args []string) error {
	return withElement(func(el *ax.Element) error {
		n, err := el.SizeOf(args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, output.ValueResult{Element: el.String(), Name: args[0], Value: n})
	})
}

func runWritable(cmd *cobra.Command, args []string) error {
	return withElement(func(el *ax.Element) error {
		ok, err := el.Writable(args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, output.ValueResult{Element: el.String(), Name: args[0], Value: ok})
	})
}
