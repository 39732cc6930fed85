package ax

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultKeyRate is the delay between posted keyboard events.
const DefaultKeyRate = 9 * time.Millisecond

var keyRates = map[string]time.Duration{
	"very_slow": 900 * time.Millisecond,
	"slow":      90 * time.Millisecond,
	"normal":    DefaultKeyRate,
	"default":   DefaultKeyRate,
	"fast":      900 * time.Microsecond,
	"zomg":      90 * time.Microsecond,
}

// ParseKeyRate accepts a named rate (very_slow, slow, normal, default, fast,
// zomg) or a number of seconds.
func ParseKeyRate(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if d, ok := keyRates[s]; ok {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("%w: unknown key rate %q", ErrInvalidArgument, s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// KeyEvent is a single key press or release.
type KeyEvent struct {
	Key  uint16
	Down bool
}

// Keystroke returns the down and up events for key.
func Keystroke(key uint16) []KeyEvent {
	return []KeyEvent{{Key: key, Down: true}, {Key: key, Down: false}}
}
