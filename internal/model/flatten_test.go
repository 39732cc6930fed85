package model

import (
	"encoding/json"
	"testing"
)

func TestFlatten_Paths(t *testing.T) {
	roots := []Element{
		{
			ID: 1, Role: "AXWindow", Title: "Main",
			Children: []Element{
				{
					ID: 2, Role: "AXGroup",
					Children: []Element{{ID: 3, Role: "AXButton", Title: "A"}},
				},
				{ID: 4, Role: "AXButton", Title: "B"},
			},
		},
		{ID: 5, Role: "AXMenuBar"},
	}
	got := Flatten(roots)
	want := []struct {
		id    int
		depth int
		path  string
	}{
		{1, 0, "Window"},
		{2, 1, "Window > Group"},
		{3, 2, "Window > Group > Button"},
		{4, 1, "Window > Button"},
		{5, 0, "MenuBar"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].Depth != w.depth || got[i].Path != w.path {
			t.Errorf("element %d: got id=%d depth=%d path=%q, want id=%d depth=%d path=%q",
				i, got[i].ID, got[i].Depth, got[i].Path, w.id, w.depth, w.path)
		}
		if got[i].Children != nil {
			t.Errorf("element %d: children should be dropped", i)
		}
	}
}

func TestFlatten_Empty(t *testing.T) {
	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("expected no elements, got %d", len(got))
	}
}

func TestFlatten_DoesNotModifyInput(t *testing.T) {
	roots := []Element{{ID: 1, Role: "AXGroup", Children: []Element{{ID: 2, Role: "AXButton"}}}}
	Flatten(roots)
	if len(roots[0].Children) != 1 {
		t.Error("input tree lost its children")
	}
}

func TestFlatElement_JSON(t *testing.T) {
	disabled := false
	flat := Flatten([]Element{{
		ID:      1,
		Role:    "AXTextField",
		Subrole: "AXSearchField",
		Title:   "Search",
		Enabled: &disabled,
		Child:   "3",
		Actions: []string{"AXConfirm"},
		Bounds:  [4]int{1, 2, 3, 4},
	}})
	data, err := json.Marshal(flat[0])
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for key, want := range map[string]any{
		"i": float64(1), "r": "AXTextField", "sr": "AXSearchField", "t": "Search",
		"e": false, "c": "3", "depth": float64(0), "p": "TextField",
	} {
		if m[key] != want {
			t.Errorf("%s: got %v, want %v", key, m[key], want)
		}
	}
	if _, ok := m["children"]; ok {
		t.Error("children should be omitted")
	}
}
