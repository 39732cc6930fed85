package ax

import "fmt"

// Point is a screen coordinate.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Size is a width/height pair. Negative dimensions are not rejected.
type Size struct {
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Rect is an origin plus a size. Whether the origin is top-left (flipped)
// or bottom-left (cartesian) is up to the caller.
type Rect struct {
	Origin Point `yaml:"origin" json:"origin"`
	Size   Size  `yaml:"size"   json:"size"`
}

// PointOf coerces the first two numbers of vals into a Point.
func PointOf(vals []float64) (Point, error) {
	if len(vals) < 2 {
		return Point{}, fmt.Errorf("%w: point needs 2 values, got %d", ErrInvalidArgument, len(vals))
	}
	return Point{X: vals[0], Y: vals[1]}, nil
}

// SizeOf coerces the first two numbers of vals into a Size.
func SizeOf(vals []float64) (Size, error) {
	if len(vals) < 2 {
		return Size{}, fmt.Errorf("%w: size needs 2 values, got %d", ErrInvalidArgument, len(vals))
	}
	return Size{Width: vals[0], Height: vals[1]}, nil
}

// RectOf coerces the first four numbers of vals into a Rect.
func RectOf(vals []float64) (Rect, error) {
	if len(vals) < 4 {
		return Rect{}, fmt.Errorf("%w: rect needs 4 values, got %d", ErrInvalidArgument, len(vals))
	}
	return Rect{
		Origin: Point{X: vals[0], Y: vals[1]},
		Size:   Size{Width: vals[2], Height: vals[3]},
	}, nil
}

// Contains reports whether p lies inside r (edges inclusive on the origin side).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.Height
}

// Flipped converts r between the flipped coordinate system used by the
// accessibility API (origin top-left) and the cartesian one used by AppKit
// (origin bottom-left), relative to the given screen frame. Applying it
// twice with the same screen returns the original rect.
func (r Rect) Flipped(screen Rect) Rect {
	screenHeight := screen.Origin.Y + screen.Size.Height
	maxY := r.Origin.Y + r.Size.Height
	r.Origin.Y = screenHeight - maxY
	return r
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

func (r Rect) String() string {
	return fmt.Sprintf("%s %s", r.Origin, r.Size)
}

// Range is a host-side integer interval. Start and End are both included
// unless Exclusive is set, in which case End is excluded.
type Range struct {
	Start     int  `yaml:"start"               json:"start"`
	End       int  `yaml:"end"                 json:"end"`
	Exclusive bool `yaml:"exclusive,omitempty" json:"exclusive,omitempty"`

	// collapsed marks a range decoded from a zero-length CFRange; it reads
	// as the single point Start..Start but encodes back to length 0.
	collapsed bool
}

// Len returns the number of positions the range covers.
func (r Range) Len() int {
	if r.collapsed {
		return 0
	}
	if r.Exclusive {
		return r.End - r.Start
	}
	return r.End - r.Start + 1
}

// Collapsed reports whether r was decoded from a zero-length foreign range.
func (r Range) Collapsed() bool {
	return r.collapsed
}

// RelativeTo resolves negative and out-of-bounds indices against a
// collection of length max, returning an inclusive range. -1 refers to the
// last position; indices past the end are clamped.
func (r Range) RelativeTo(max int) Range {
	start := r.adjust(r.Start, max)
	end := r.adjust(r.End, max)
	if r.Exclusive {
		end--
	}
	return Range{Start: start, End: end}
}

func (r Range) adjust(val, max int) int {
	switch {
	case val >= max:
		if r.Exclusive {
			return max
		}
		return max - 1
	case val < 0:
		return max + val
	default:
		return val
	}
}

func (r Range) String() string {
	if r.Exclusive {
		return fmt.Sprintf("%d...%d", r.Start, r.End)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
