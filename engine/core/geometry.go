package core

import "fmt"

// Direction is one of the four cardinal travel directions
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	numDirections
)

// Directions lists every direction in input priority order
var Directions = [...]Direction{Up, Down, Left, Right}

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool { return d < numDirections }

// MustValid panics on an out-of-range direction. A bad direction is a
// programming error, never a runtime condition.
func (d Direction) MustValid() Direction {
	if !d.Valid() {
		panic(fmt.Sprintf("core: invalid direction %d", uint8(d)))
	}
	return d
}

// Delta returns the unit step for d in screen coordinates (y grows down)
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Horizontal reports whether d travels along the x axis
func (d Direction) Horizontal() bool { return d == Left || d == Right }

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// DirSet is a bitset of directions
type DirSet uint8

func (s DirSet) Has(d Direction) bool   { return s&(1<<d) != 0 }
func (s DirSet) With(d Direction) DirSet { return s | 1<<d }
func (s DirSet) Without(d Direction) DirSet {
	return s &^ (1 << d)
}

// Len counts the directions in s
func (s DirSet) Len() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// List returns the members of s in priority order
func (s DirSet) List() []Direction {
	out := make([]Direction, 0, 4)
	for _, d := range Directions {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Rect is an axis-aligned pixel rectangle
type Rect struct {
	X, Y, W, H int
}

// RectCentered builds a w*h rect centered on (cx, cy)
func RectCentered(cx, cy, w, h int) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether r has no area
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Center returns the integer center point
func (r Rect) Center() (int, int) { return r.X + r.W/2, r.Y + r.H/2 }

// Translate returns r moved by (dx, dy)
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Overlaps reports whether r and o share any area. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely inside r
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersect returns the shared area of r and o, or the zero Rect
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// SnapToGrid rounds v to the nearest multiple of unit measured from origin.
// Halfway values round up.
func SnapToGrid(v, origin, unit int) int {
	if unit <= 0 {
		return v
	}
	off := v - origin
	r := off % unit
	if r < 0 {
		r += unit
	}
	if r < unit/2 {
		return v - r
	}
	return v + (unit - r)
}

// ClampInto shifts r so it lies inside bounds. r must not be larger than bounds.
func ClampInto(r, bounds Rect) Rect {
	if r.X < bounds.X {
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.Y = bounds.Y
	}
	if r.Right() > bounds.Right() {
		r.X = bounds.Right() - r.W
	}
	if r.Bottom() > bounds.Bottom() {
		r.Y = bounds.Bottom() - r.H
	}
	return r
}
