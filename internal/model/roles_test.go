package model

import "testing"

func TestShortRole(t *testing.T) {
	tests := []struct{ in, want string }{
		{"AXButton", "Button"},
		{"AXSearchField", "SearchField"},
		{"Button", "Button"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortRole(tt.in); got != tt.want {
			t.Errorf("ShortRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoleMatcher(t *testing.T) {
	disabled := false
	button := Element{Role: "AXButton", Actions: []string{"AXPress"}}
	search := Element{Role: "AXTextField", Subrole: "AXSearchField", Focused: true}
	text := Element{Role: "AXStaticText", Enabled: &disabled}
	menu := Element{Role: "AXMenuItem", Actions: []string{"AXCancel"}}

	tests := []struct {
		name  string
		names []string
		want  []bool // button, search, text, menu
	}{
		{"empty", nil, []bool{true, true, true, true}},
		{"raw role", []string{"AXButton"}, []bool{true, false, false, false}},
		{"short role", []string{"button"}, []bool{true, false, false, false}},
		{"case", []string{"STATICTEXT"}, []bool{false, false, true, false}},
		{"subrole", []string{"searchfield"}, []bool{false, true, false, false}},
		{"several", []string{"button", " textfield "}, []bool{true, true, false, false}},
		{"actionable", []string{"actionable"}, []bool{true, false, false, true}},
		{"pressable", []string{"pressable"}, []bool{true, false, false, false}},
		{"focused", []string{"focused"}, []bool{false, true, false, false}},
		{"disabled", []string{"disabled"}, []bool{false, false, true, false}},
		{"role or capability", []string{"statictext", "pressable"}, []bool{true, false, true, false}},
		{"blank entries", []string{"", " "}, []bool{true, true, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRoleMatcher(tt.names)
			for i, el := range []Element{button, search, text, menu} {
				if got := m.Match(el); got != tt.want[i] {
					t.Errorf("Match(%s) = %v, want %v", el.Role, got, tt.want[i])
				}
			}
		})
	}
}
