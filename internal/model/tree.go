package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mj1618/axcore/internal/ax"
)

// TreeOptions controls how much of the tree Snapshot walks.
type TreeOptions struct {
	Depth int // Max traversal depth (0 = unlimited)
}

// Snapshot walks root and its descendants into an Element tree. IDs are
// assigned in depth-first order starting at 1. Child elements are closed as
// soon as they have been read; root stays owned by the caller.
func Snapshot(root *ax.Element, opts TreeOptions) (Element, error) {
	w := &walker{opts: opts}
	return w.walk(root, nil, 1)
}

type walker struct {
	opts   TreeOptions
	nextID int
}

func (w *walker) walk(el *ax.Element, path []int, depth int) (Element, error) {
	w.nextID++
	node, err := Describe(el)
	if err != nil {
		return Element{}, err
	}
	node.ID = w.nextID
	node.Child = IndexPath(path)

	if w.opts.Depth > 0 && depth >= w.opts.Depth {
		return node, nil
	}
	kids, err := el.Children()
	if err != nil {
		return Element{}, err
	}
	defer ax.CloseAll(kids)
	for i, kid := range kids {
		child, err := w.walk(kid, append(path[:len(path):len(path)], i), depth+1)
		if err != nil {
			return Element{}, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// Describe reads the summary attributes of a single element. Elements
// without a role or subrole attribute describe with those left empty.
func Describe(el *ax.Element) (Element, error) {
	role, err := optional(el.Role())
	if err != nil {
		return Element{}, err
	}
	subrole, err := optional(el.Subrole())
	if err != nil {
		return Element{}, err
	}
	node := Element{Role: role, Subrole: subrole}

	attrs := make(map[string]any, 7)
	defer ax.CloseValue(attrs)
	for _, name := range []string{
		ax.AttrTitle, ax.AttrValue, ax.AttrDesc,
		ax.AttrPosition, ax.AttrSize, ax.AttrFocused, ax.AttrEnabled,
	} {
		v, err := el.Attribute(name)
		if err != nil {
			return Element{}, err
		}
		attrs[name] = v
	}
	node.Title = Text(attrs[ax.AttrTitle])
	node.Value = Text(attrs[ax.AttrValue])
	node.Description = Text(attrs[ax.AttrDesc])
	node.Bounds = bounds(attrs[ax.AttrPosition], attrs[ax.AttrSize])
	if b, ok := attrs[ax.AttrFocused].(bool); ok {
		node.Focused = b
	}
	if b, ok := attrs[ax.AttrEnabled].(bool); ok && !b {
		node.Enabled = &b
	}

	actions, err := el.Actions()
	if err != nil {
		return Element{}, err
	}
	node.Actions = actions
	return node, nil
}

// optional treats a missing attribute as the empty string.
func optional(s string, err error) (string, error) {
	if errors.Is(err, ax.ErrAttributeUnsupported) {
		return "", nil
	}
	return s, err
}

// Text renders an attribute value as a single line of text. Elements and
// lists render as nothing. Text does not close v.
func Text(v any) string {
	switch v := v.(type) {
	case nil, *ax.Element, []any:
		return ""
	case string:
		return v
	case *ax.AttributedText:
		return v.Text()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

func bounds(pos, size any) [4]int {
	var b [4]int
	if p, ok := pos.(ax.Point); ok {
		b[0], b[1] = round(p.X), round(p.Y)
	}
	if s, ok := size.(ax.Size); ok {
		b[2], b[3] = round(s.Width), round(s.Height)
	}
	return b
}

func round(f float64) int {
	return int(math.Round(f))
}

// IndexPath renders a child index path the way --child accepts it.
func IndexPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
