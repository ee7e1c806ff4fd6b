package systems

import (
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// MoveTank steps t one tick in dir. Paralyzed tanks only turn.
func MoveTank(w *core.World, t *core.Tank, dir core.Direction) {
	dir.MustValid()
	if t.State != core.TankActive {
		return
	}
	t.Dir = dir
	if t.Paralyzed(w.TickCount) {
		return
	}

	rules := w.Rules
	unit := rules.GridUnit()
	dx, dy := dir.Delta()
	r := t.Rect.Translate(dx*t.Speed, dy*t.Speed)
	if dir.Horizontal() {
		r.Y = core.SnapToGrid(r.Y, rules.Field.Y, unit)
	} else {
		r.X = core.SnapToGrid(r.X, rules.Field.X, unit)
	}
	t.Rect = core.ClampInto(r, rules.Field)
	t.Frame = (t.Frame + 1) % 2

	for _, other := range w.Tanks {
		if other == t || !other.Tangible() {
			continue
		}
		t.Rect = ResolveOverlap(t.Rect, other.Rect, dir)
	}
	for _, tile := range w.Tiles {
		if tile.Dead() || !tile.Impassable(t.Amphibious) {
			continue
		}
		t.Rect = ResolveOverlap(t.Rect, tile.Rect, dir)
	}
	if w.Base != nil && !w.Base.Rect.Empty() {
		t.Rect = ResolveOverlap(t.Rect, w.Base.Rect, dir)
	}
}

// ResolveOverlap pulls r back out of obstacle along the axis of travel only.
// Rects that do not overlap are returned unchanged.
func ResolveOverlap(r, obstacle core.Rect, dir core.Direction) core.Rect {
	if !r.Overlaps(obstacle) {
		return r
	}
	switch dir {
	case core.Right:
		r.X = obstacle.X - r.W
	case core.Left:
		r.X = obstacle.Right()
	case core.Up:
		r.Y = obstacle.Bottom()
	case core.Down:
		r.Y = obstacle.Y - r.H
	}
	return r
}
