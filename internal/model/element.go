package model

// Element is a serialisable snapshot of one accessibility element.
type Element struct {
	ID          int       `yaml:"i"                  json:"i"`                  // Sequential integer ID
	Role        string    `yaml:"r"                  json:"r"`                  // AXRole
	Subrole     string    `yaml:"sr,omitempty"       json:"sr,omitempty"`       // Raw AXSubrole
	Title       string    `yaml:"t,omitempty"        json:"t,omitempty"`        // Visible label / title
	Value       string    `yaml:"v,omitempty"        json:"v,omitempty"`        // Current value
	Description string    `yaml:"d,omitempty"        json:"d,omitempty"`        // Accessibility description
	Bounds      [4]int    `yaml:"b,flow"             json:"b"`                  // [x, y, width, height]
	Focused     bool      `yaml:"f,omitempty"        json:"f,omitempty"`        // Has keyboard focus
	Enabled     *bool     `yaml:"e,omitempty"        json:"e,omitempty"`        // nil or true = enabled (omit); false = disabled (include)
	Actions     []string  `yaml:"a,omitempty,flow"   json:"a,omitempty"`        // Available actions
	Child       string    `yaml:"c,omitempty"        json:"c,omitempty"`        // Child index path from the root, for --child
	Children    []Element `yaml:"children,omitempty" json:"children,omitempty"`
}
