package ax

import (
	"fmt"
	"strconv"
	"strings"
)

// macOS virtual key codes from Carbon Events.h.
var keyCodes = map[string]uint16{
	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
	"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	"return": 0x24, "enter": 0x24, "tab": 0x30, "space": 0x31,
	"delete": 0x33, "backspace": 0x33, "escape": 0x35, "esc": 0x35,
	"up": 0x7E, "down": 0x7D, "left": 0x7B, "right": 0x7C,
	"home": 0x73, "end": 0x77, "pageup": 0x74, "pagedown": 0x79,
	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60,
	"f6": 0x61, "f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D,
	"f11": 0x67, "f12": 0x6F,
}

// Modifier keys are posted as their own key events around the main key.
var modifierCodes = map[string]uint16{
	"cmd": 0x37, "command": 0x37,
	"shift": 0x38,
	"alt": 0x3A, "opt": 0x3A, "option": 0x3A,
	"ctrl": 0x3B, "control": 0x3B,
}

// ParseKey converts a key name ("a", "enter", "f5") or a decimal or 0x
// prefixed virtual key code to a key code.
func ParseKey(s string) (uint16, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if code, ok := keyCodes[s]; ok {
		return code, nil
	}
	if code, ok := modifierCodes[s]; ok {
		return code, nil
	}
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown key %q", ErrInvalidArgument, s)
	}
	return uint16(n), nil
}

// KeyCombo returns the events for a combination such as "cmd+shift+t":
// modifiers go down in order, the key is pressed and released, then the
// modifiers come up in reverse order.
func KeyCombo(combo string) ([]KeyEvent, error) {
	var mods []uint16
	var key uint16
	found := false
	for _, part := range strings.Split(combo, "+") {
		name := strings.ToLower(strings.TrimSpace(part))
		if code, ok := modifierCodes[name]; ok {
			mods = append(mods, code)
			continue
		}
		if found {
			return nil, fmt.Errorf("%w: more than one key in combo %q", ErrInvalidArgument, combo)
		}
		code, err := ParseKey(name)
		if err != nil {
			return nil, err
		}
		key, found = code, true
	}
	if !found {
		return nil, fmt.Errorf("%w: no key specified in combo %q, only modifiers", ErrInvalidArgument, combo)
	}

	events := make([]KeyEvent, 0, 2*len(mods)+2)
	for _, m := range mods {
		events = append(events, KeyEvent{Key: m, Down: true})
	}
	events = append(events, Keystroke(key)...)
	for i := len(mods) - 1; i >= 0; i-- {
		events = append(events, KeyEvent{Key: mods[i], Down: false})
	}
	return events, nil
}
