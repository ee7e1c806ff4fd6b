package ai

import (
	"math/rand"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// ProbeRects returns the strip of depth px just beyond each side of r
func ProbeRects(r core.Rect, depth int) [4]core.Rect {
	var p [4]core.Rect
	p[core.Up] = core.Rect{X: r.X, Y: r.Y - depth, W: r.W, H: depth}
	p[core.Down] = core.Rect{X: r.X, Y: r.Bottom(), W: r.W, H: depth}
	p[core.Left] = core.Rect{X: r.X - depth, Y: r.Y, W: depth, H: r.H}
	p[core.Right] = core.Rect{X: r.Right(), Y: r.Y, W: depth, H: r.H}
	return p
}

type contact uint8

const (
	contactNone contact = iota
	contactGraze
	contactSolid
)

// Candidates returns the directions t could usefully turn to. A direction
// is dropped when its probe leaves the field, touches another tank, or runs
// into an obstacle. A probe that only grazes an obstacle edge, by less than
// grid snapping would clear, keeps the direction only if t already faces it.
func Candidates(w *core.World, t *core.Tank) core.DirSet {
	probes := ProbeRects(t.Rect, w.Rules.GridUnit())
	if t.AI != nil {
		t.AI.Probes = probes
	}
	var set core.DirSet
	for _, d := range core.Directions {
		p := probes[d]
		if !w.Rules.Field.Contains(p) || touchesTank(w, t, p) {
			continue
		}
		switch obstacleContact(w, t, p, d) {
		case contactSolid:
			continue
		case contactGraze:
			if d != t.Dir {
				continue
			}
		}
		set = set.With(d)
	}
	return set
}

func touchesTank(w *core.World, t *core.Tank, p core.Rect) bool {
	for _, o := range w.Tanks {
		if o != t && o.Present() && o.Rect.Overlaps(p) {
			return true
		}
	}
	return false
}

func obstacleContact(w *core.World, t *core.Tank, p core.Rect, d core.Direction) contact {
	graze := w.Rules.GridUnit() / 2
	result := contactNone
	check := func(r core.Rect) bool {
		ov := p.Intersect(r)
		if ov.Empty() {
			return false
		}
		cross := ov.W
		if d.Horizontal() {
			cross = ov.H
		}
		if cross >= graze {
			result = contactSolid
			return true
		}
		result = contactGraze
		return false
	}
	for _, tile := range w.Tiles {
		if tile.Dead() || !tile.Impassable(t.Amphibious) {
			continue
		}
		if check(tile.Rect) {
			return result
		}
	}
	if w.Base != nil && !w.Base.Rect.Empty() {
		check(w.Base.Rect)
	}
	return result
}

// Steer re-evaluates an AI tank's heading on its think interval and points
// its intent along that heading. Turns are drawn from rng.
func Steer(w *core.World, t *core.Tank, rng *rand.Rand) {
	st := t.AI
	now := w.TickCount
	if t.Paralyzed(now) {
		t.Intent.Moving = false
		return
	}
	if now >= st.NextThinkAt {
		cands := Candidates(w, t)
		if cands != 0 && (cands != st.Candidates || !cands.Has(t.Dir)) {
			list := cands.List()
			t.Dir = list[rng.Intn(len(list))]
		}
		st.Candidates = cands
		st.NextThinkAt = now + uint64(w.Rules.AIThinkTicks)
	}
	t.Intent.Moving = true
	t.Intent.Move = t.Dir
}

// Fire sets the fire intent when the tank's randomized shot timer has run out
func Fire(w *core.World, t *core.Tank, rng *rand.Rand) {
	st := t.AI
	now := w.TickCount
	if t.Paralyzed(now) || now < st.NextShotAt || t.BulletsInFlight >= t.BulletLimit {
		return
	}
	rules := w.Rules
	t.Intent.Fire = true
	spread := max(rules.AIShotMaxTicks-rules.AIShotMinTicks+1, 1)
	st.NextShotAt = now + uint64(rules.AIShotMinTicks+rng.Intn(spread))
}
