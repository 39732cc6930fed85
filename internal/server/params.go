package server

import (
	"fmt"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/platform"
)

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Numbers arrive as float64 from JSON
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func floatParam(params map[string]interface{}, key string) (float64, bool) {
	switch n := params[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// targetParam reads the pid, x/y and child arguments shared by every tool.
func targetParam(params map[string]interface{}) (platform.Target, error) {
	t := platform.Target{PID: intParam(params, "pid", 0)}
	x, hasX := floatParam(params, "x")
	y, hasY := floatParam(params, "y")
	switch {
	case hasX && hasY:
		t.At = &ax.Point{X: x, Y: y}
	case hasX || hasY:
		return t, fmt.Errorf("x and y must be given together")
	}
	path, err := platform.ParseIndexPath(stringParam(params, "child", ""))
	if err != nil {
		return t, err
	}
	t.Child = path
	return t, nil
}

// typedParam converts the string argument key using the type named by
// typeKey.
func typedParam(params map[string]interface{}, key, typeKey string) (any, error) {
	typ, err := platform.ParseValueType(stringParam(params, typeKey, "string"))
	if err != nil {
		return nil, err
	}
	return platform.ParseTyped(typ, stringParam(params, key, ""))
}
