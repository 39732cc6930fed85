package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/model"
	"github.com/mj1618/axcore/internal/output"
	"github.com/mj1618/axcore/internal/platform"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Walk the element tree below the target",
	Long: `Walk the element tree below the target and print roles, titles, bounds,
actions and child index paths. The "c" key of each element is the value to
pass to --child to target it directly.

Examples:
  axcore tree --pid 123 --depth 3
  axcore tree --pid 123 --flat --roles pressable
  axcore tree --pid 123 --text "Save" --prune`,
	Args: cobra.NoArgs,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Int("depth", 0, "Max depth to traverse (0 = unlimited, default from config)")
	treeCmd.Flags().Bool("flat", false, "Flatten the tree into a list with path breadcrumbs")
	treeCmd.Flags().String("roles", "", "Comma-separated roles to include or capabilities (e.g. \"button,textfield\", \"AXSearchField\", \"pressable\", \"actionable\")")
	treeCmd.Flags().String("text", "", "Only include elements whose title, value or description contains this text")
	treeCmd.Flags().Bool("prune", false, "Drop anonymous group nodes and promote their children")
	treeCmd.Flags().String("bbox", "", "Only include elements intersecting bounding box (x,y,w,h)")
}

func runTree(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")
	if !cmd.Flags().Changed("depth") {
		depth = cfg.Depth
	}
	if depth < 0 {
		return fmt.Errorf("--depth must not be negative: %d", depth)
	}
	flat, _ := cmd.Flags().GetBool("flat")
	roles, _ := cmd.Flags().GetString("roles")
	text, _ := cmd.Flags().GetString("text")
	prune, _ := cmd.Flags().GetBool("prune")
	bboxStr, _ := cmd.Flags().GetString("bbox")

	var bbox *ax.Rect
	if bboxStr != "" {
		r, err := platform.ParseRect(bboxStr)
		if err != nil {
			return err
		}
		bbox = &r
	}

	return withElement(func(root *ax.Element) error {
		tree, err := model.Snapshot(root, model.TreeOptions{Depth: depth})
		if err != nil {
			return err
		}
		pid, err := root.PID()
		if err != nil {
			return err
		}

		elements := []model.Element{tree}
		if prune {
			elements = model.PruneEmptyGroups(elements)
		}
		if roles != "" || bbox != nil {
			elements = model.FilterElements(elements, splitList(roles), bbox)
		}
		if text != "" {
			elements = model.FilterByText(elements, text)
		}

		ts := time.Now().Unix()
		if flat {
			return printResult(cmd, output.TreeFlatResult{PID: pid, Root: root.String(), TS: ts, Elements: model.Flatten(elements)})
		}
		return printResult(cmd, output.TreeResult{PID: pid, Root: root.String(), TS: ts, Elements: elements})
	})
}
