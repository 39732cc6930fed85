package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mj1618/axcore/internal/model"
)

func TestWriteTable_Tree(t *testing.T) {
	withFormat(t, FormatTable, false)
	result := TreeResult{
		Elements: []model.Element{
			{ID: 1, Role: "AXWindow", Title: "Main", Bounds: [4]int{0, 0, 800, 600}, Children: []model.Element{
				{ID: 2, Role: "AXButton", Title: "OK", Bounds: [4]int{10, 20, 100, 30}, Child: "0"},
			}},
		},
	}
	var buf bytes.Buffer
	if err := Fprint(&buf, result); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "Role", "Path", "Main", "10,20,100,30", "Window > Button"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table:\n%s", want, out)
		}
	}
	// header + 2 rows + separator
	if lines := strings.Count(strings.TrimRight(out, "\n"), "\n") + 1; lines != 4 {
		t.Errorf("expected 4 lines, got %d:\n%s", lines, out)
	}
}

func TestWriteTable_Map(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, map[string]any{"b": int64(2), "a": "one"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Index(out, "one") > strings.Index(out, "2") {
		t.Errorf("rows should be sorted by name:\n%s", out)
	}
}

func TestWriteTable_FallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, int64(42)); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "42" {
		t.Errorf("got %q", buf.String())
	}
}
