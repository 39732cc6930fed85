package platform

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mj1618/axcore/internal/ax"
)

// ValueType selects how a command-line string is converted before it is
// handed to the bridge.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypePoint
	TypeSize
	TypeRect
	TypeRange
	TypeURL
	TypeDate
)

var valueTypeNames = map[string]ValueType{
	"string": TypeString,
	"int":    TypeInt,
	"float":  TypeFloat,
	"bool":   TypeBool,
	"point":  TypePoint,
	"size":   TypeSize,
	"rect":   TypeRect,
	"range":  TypeRange,
	"url":    TypeURL,
	"date":   TypeDate,
}

// ValueTypeNames lists the accepted --type values.
const ValueTypeNames = "string, int, float, bool, point, size, rect, range, url, date"

// ParseValueType converts a flag value to a ValueType.
func ParseValueType(s string) (ValueType, error) {
	if t, ok := valueTypeNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return TypeString, fmt.Errorf("unknown value type: %q (expected %s)", s, ValueTypeNames)
}

// ParseTyped converts raw to the Go value the bridge expects for typ.
func ParseTyped(typ ValueType, raw string) (any, error) {
	switch typ {
	case TypeString:
		return raw, nil
	case TypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int %q: %w", raw, err)
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", raw, err)
		}
		return f, nil
	case TypeBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q: %w", raw, err)
		}
		return b, nil
	case TypePoint:
		return ParsePoint(raw)
	case TypeSize:
		vals, err := parseFloats(raw, 2, "w,h")
		if err != nil {
			return nil, err
		}
		return ax.SizeOf(vals)
	case TypeRect:
		return ParseRect(raw)
	case TypeRange:
		return ParseRange(raw)
	case TypeURL:
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid url %q: %w", raw, err)
		}
		return u, nil
	case TypeDate:
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown value type %d", typ)
}

// ParsePoint parses an "x,y" string into a Point.
func ParsePoint(s string) (ax.Point, error) {
	vals, err := parseFloats(s, 2, "x,y")
	if err != nil {
		return ax.Point{}, err
	}
	return ax.PointOf(vals)
}

// ParseRect parses an "x,y,w,h" string into a Rect.
func ParseRect(s string) (ax.Rect, error) {
	vals, err := parseFloats(s, 4, "x,y,w,h")
	if err != nil {
		return ax.Rect{}, err
	}
	return ax.RectOf(vals)
}

func parseFloats(s string, n int, shape string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("invalid value %q: expected %s", s, shape)
	}
	vals := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", s, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// ParseRange parses "a..b" (inclusive) or "a...b" (exclusive). A bare
// number is the one-element range n..n.
func ParseRange(s string) (ax.Range, error) {
	s = strings.TrimSpace(s)
	sep, exclusive := "..", false
	if strings.Contains(s, "...") {
		sep, exclusive = "...", true
	}
	parts := strings.SplitN(s, sep, 2)
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ax.Range{}, fmt.Errorf("invalid range %q: expected a..b or a...b", s)
	}
	if len(parts) == 1 {
		return ax.Range{Start: start, End: start}, nil
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ax.Range{}, fmt.Errorf("invalid range %q: expected a..b or a...b", s)
	}
	return ax.Range{Start: start, End: end, Exclusive: exclusive}, nil
}

// ParseIndexPath parses "i,j,k" into child indexes. An empty string is the
// empty path.
func ParseIndexPath(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	path := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid child path %q: expected comma-separated indexes", s)
		}
		path[i] = v
	}
	return path, nil
}
