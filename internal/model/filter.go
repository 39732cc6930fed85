package model

import (
	"strings"

	"github.com/mj1618/axcore/internal/ax"
)

// FilterElements keeps the elements accepted by roles (see RoleMatcher)
// that intersect bbox. A rejected element is replaced by its accepted
// descendants. Depth is limited while walking, not here.
func FilterElements(elements []Element, roles []string, bbox *ax.Rect) []Element {
	m := NewRoleMatcher(roles)
	if m.Empty() && bbox == nil {
		return elements
	}
	return filterTree(elements, m, bbox)
}

func filterTree(elements []Element, m RoleMatcher, bbox *ax.Rect) []Element {
	var result []Element
	for _, el := range elements {
		kids := filterTree(el.Children, m, bbox)
		if m.Match(el) && (bbox == nil || boundsIntersect(el.Bounds, *bbox)) {
			el.Children = kids
			result = append(result, el)
			continue
		}
		result = append(result, kids...)
	}
	return result
}

// FilterByText keeps the elements whose title, value or description
// contains text, ignoring case, along with their ancestors.
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	return filterText(elements, strings.ToLower(text))
}

func filterText(elements []Element, needle string) []Element {
	var result []Element
	for _, el := range elements {
		kids := filterText(el.Children, needle)
		if len(kids) == 0 && !containsText(el, needle) {
			continue
		}
		el.Children = kids
		result = append(result, el)
	}
	return result
}

func containsText(el Element, needle string) bool {
	for _, s := range []string{el.Title, el.Value, el.Description} {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// isEmptyGroup reports whether el is a layout container with no text and
// nothing to perform.
func isEmptyGroup(el Element) bool {
	switch el.Role {
	case "AXGroup", "AXSplitGroup", "AXLayoutArea", "AXUnknown", "":
	default:
		return false
	}
	return el.Title == "" && el.Value == "" && el.Description == "" && len(el.Actions) == 0
}

// PruneEmptyGroups removes empty layout containers from a tree, promoting
// their children to the parent.
func PruneEmptyGroups(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		kids := PruneEmptyGroups(el.Children)
		if isEmptyGroup(el) {
			result = append(result, kids...)
			continue
		}
		el.Children = kids
		result = append(result, el)
	}
	return result
}

// PruneEmptyGroupsFlat drops empty layout containers from a flat list. The
// paths of the remaining elements still name them.
func PruneEmptyGroupsFlat(elements []FlatElement) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		if !isEmptyGroup(el.Element) {
			result = append(result, el)
		}
	}
	return result
}

// boundsIntersect checks if an [x, y, width, height] rectangle overlaps r.
func boundsIntersect(a [4]int, r ax.Rect) bool {
	ax1, ay1 := float64(a[0]), float64(a[1])
	ax2, ay2 := ax1+float64(a[2]), ay1+float64(a[3])
	bx1, by1 := r.Origin.X, r.Origin.Y
	bx2, by2 := bx1+r.Size.Width, by1+r.Size.Height
	return ax1 < bx2 && ax2 > bx1 && ay1 < by2 && ay2 > by1
}
