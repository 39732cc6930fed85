package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mj1618/axcore/internal/model"
)

// WriteTable renders v as a borderless table. Values with no tabular shape
// fall back to YAML.
func WriteTable(w io.Writer, v any) error {
	switch v := v.(type) {
	case TreeResult:
		return writeElements(w, model.Flatten(v.Elements))
	case TreeFlatResult:
		return writeElements(w, v.Elements)
	case []model.FlatElement:
		return writeElements(w, v)
	case ListResult:
		return writeRows(w, []string{"Name"}, names(v.Names))
	case []string:
		return writeRows(w, []string{"Name"}, names(v))
	case ValueResult:
		return writeRows(w, []string{"Element", "Name", "Value"}, [][]string{{v.Element, v.Name, cell(v.Value)}})
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([][]string, len(keys))
		for i, k := range keys {
			rows[i] = []string{k, cell(v[k])}
		}
		return writeRows(w, []string{"Name", "Value"}, rows)
	}
	return WriteYAML(w, v)
}

func writeElements(w io.Writer, elements []model.FlatElement) error {
	rows := make([][]string, len(elements))
	for i, el := range elements {
		rows[i] = []string{
			strconv.Itoa(el.ID),
			el.Role,
			el.Title,
			el.Value,
			fmt.Sprintf("%d,%d,%d,%d", el.Bounds[0], el.Bounds[1], el.Bounds[2], el.Bounds[3]),
			el.Child,
			el.Path,
		}
	}
	return writeRows(w, []string{"ID", "Role", "Title", "Value", "Bounds", "Child", "Path"}, rows)
}

func writeRows(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func names(list []string) [][]string {
	rows := make([][]string, len(list))
	for i, n := range list {
		rows[i] = []string{n}
	}
	return rows
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any, map[string]any, point, size, rect:
		s, err := YAML(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}
