package output

import (
	"net/url"
	"time"

	"github.com/mj1618/axcore/internal/ax"
)

type point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

type size struct {
	Width  float64 `yaml:"w" json:"w"`
	Height float64 `yaml:"h" json:"h"`
}

type rect struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"w" json:"w"`
	Height float64 `yaml:"h" json:"h"`
}

// Normalize converts host values from the bridge into plain data the
// encoders understand. Elements become their description and attributed
// strings their text. Nothing is released.
func Normalize(v any) any {
	switch v := v.(type) {
	case *ax.Element:
		return v.String()
	case *ax.AttributedText:
		return v.Text()
	case []*ax.Element:
		out := make([]string, len(v))
		for i, el := range v {
			out[i] = el.String()
		}
		return out
	case ax.Point:
		return point{X: v.X, Y: v.Y}
	case ax.Size:
		return size{Width: v.Width, Height: v.Height}
	case ax.Rect:
		return rect{X: v.Origin.X, Y: v.Origin.Y, Width: v.Size.Width, Height: v.Size.Height}
	case ax.Range:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case *url.URL:
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = Normalize(item)
		}
		return out
	case ValueResult:
		v.Value = Normalize(v.Value)
		return v
	case *ValueResult:
		out := *v
		out.Value = Normalize(v.Value)
		return out
	}
	return v
}
