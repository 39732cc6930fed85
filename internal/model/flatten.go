package model

// FlatElement is one element of a flattened tree. Children are dropped;
// Depth and Path place the element in the tree instead.
type FlatElement struct {
	Element `yaml:",inline"`
	Depth   int    `yaml:"depth"          json:"depth"`
	Path    string `yaml:"p,omitempty"    json:"p,omitempty"`
}

// Flatten lists the elements of the given trees in depth-first order. Path
// is the chain of short roles from the root, e.g. "Window > Group > Button".
func Flatten(roots []Element) []FlatElement {
	var out []FlatElement
	var visit func(el Element, depth int, parent string)
	visit = func(el Element, depth int, parent string) {
		path := ShortRole(el.Role)
		if parent != "" {
			path = parent + " > " + path
		}
		kids := el.Children
		el.Children = nil
		out = append(out, FlatElement{Element: el, Depth: depth, Path: path})
		for _, kid := range kids {
			visit(kid, depth+1, path)
		}
	}
	for _, root := range roots {
		visit(root, 0, "")
	}
	return out
}
