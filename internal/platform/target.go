package platform

import (
	"fmt"
	"time"

	"github.com/mj1618/axcore/internal/ax"
)

// Target selects an element the way the CLI flags and MCP tool arguments
// describe it: an application (or the system-wide element), an optional hit
// test, then a walk down the children by index.
type Target struct {
	PID     int           // Application pid; 0 targets the system-wide element
	At      *ax.Point     // Hit-test point, applied before Child
	Child   []int         // Child indexes, applied in order
	Timeout time.Duration // Messaging timeout set on the resolved element (0 = default)
}

// String renders the target for logs and error messages.
func (t Target) String() string {
	s := "system-wide"
	if t.PID > 0 {
		s = fmt.Sprintf("pid=%d", t.PID)
	}
	if t.At != nil {
		s += " at=" + t.At.String()
	}
	if len(t.Child) > 0 {
		s += fmt.Sprintf(" child=%v", t.Child)
	}
	return s
}

// Resolve returns the owned element t selects. Intermediate elements are
// closed.
func (t Target) Resolve(c *ax.Client) (*ax.Element, error) {
	var el *ax.Element
	if t.PID > 0 {
		app, err := c.Application(t.PID)
		if err != nil {
			return nil, err
		}
		el = app
	} else {
		el = c.SystemWide()
	}
	if t.Timeout > 0 {
		if _, err := el.SetTimeout(ax.Timeout(t.Timeout)); err != nil {
			el.Close()
			return nil, err
		}
	}

	if t.At != nil {
		hit, err := el.ElementAt(*t.At)
		el.Close()
		if err != nil {
			return nil, err
		}
		if hit == nil {
			return nil, fmt.Errorf("no element at %s", t.At)
		}
		el = hit
	}

	for depth, idx := range t.Child {
		kids, err := el.Children()
		if err != nil {
			el.Close()
			return nil, err
		}
		if idx >= len(kids) {
			desc := el.String()
			ax.CloseAll(kids)
			el.Close()
			return nil, fmt.Errorf("child index %d out of range at depth %d: %s has %d children", idx, depth, desc, len(kids))
		}
		next := kids[idx]
		kids[idx] = nil
		ax.CloseAll(kids)
		el.Close()
		el = next
	}
	return el, nil
}
