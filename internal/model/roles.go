package model

import "strings"

// Capabilities select elements by what they can do rather than by role.
// They are accepted anywhere a role name is.
var Capabilities = map[string]func(Element) bool{
	"actionable": func(el Element) bool { return len(el.Actions) > 0 },
	"pressable":  func(el Element) bool { return hasAction(el, "AXPress") },
	"focused":    func(el Element) bool { return el.Focused },
	"disabled":   func(el Element) bool { return el.Enabled != nil && !*el.Enabled },
}

// ShortRole drops the "AX" prefix from a role or subrole name.
func ShortRole(role string) string {
	return strings.TrimPrefix(role, "AX")
}

func roleKey(role string) string {
	return strings.ToLower(ShortRole(strings.TrimSpace(role)))
}

// RoleMatcher matches elements against a --roles list. Role names compare
// case-insensitively with or without the "AX" prefix, against both the
// role and the subrole, so "button", "AXButton" and "searchfield" all work.
type RoleMatcher struct {
	roles map[string]bool
	caps  []func(Element) bool
}

// NewRoleMatcher builds a matcher from role names and capability names.
// An empty list matches everything.
func NewRoleMatcher(names []string) RoleMatcher {
	m := RoleMatcher{roles: make(map[string]bool, len(names))}
	for _, name := range names {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		if c, ok := Capabilities[strings.ToLower(name)]; ok {
			m.caps = append(m.caps, c)
			continue
		}
		m.roles[roleKey(name)] = true
	}
	return m
}

// Empty reports whether the matcher accepts every element.
func (m RoleMatcher) Empty() bool {
	return len(m.roles) == 0 && len(m.caps) == 0
}

// Match reports whether el has one of the roles or one of the capabilities.
func (m RoleMatcher) Match(el Element) bool {
	if m.Empty() {
		return true
	}
	if m.roles[roleKey(el.Role)] || (el.Subrole != "" && m.roles[roleKey(el.Subrole)]) {
		return true
	}
	for _, c := range m.caps {
		if c(el) {
			return true
		}
	}
	return false
}

func hasAction(el Element, action string) bool {
	for _, a := range el.Actions {
		if a == action {
			return true
		}
	}
	return false
}
