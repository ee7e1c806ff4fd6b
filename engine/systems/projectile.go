package systems

import (
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// ProjectileSystem moves bullets and resolves what they hit. Each bullet
// produces at most one outcome per tick, tested in order: field border,
// tanks, other bullets, terrain, base.
type ProjectileSystem struct{}

func (s *ProjectileSystem) Priority() int { return 20 }

func (s *ProjectileSystem) Update(w *core.World) {
	now := w.TickCount
	for _, b := range w.Bullets {
		if b.Dead() || b.BornAt == now {
			continue
		}
		dx, dy := b.Dir.Delta()
		b.Rect = b.Rect.Translate(dx*b.Speed, dy*b.Speed)

		switch {
		case hitBorder(w, b):
		case hitTank(w, b):
		case hitBullet(w, b):
		case hitTerrain(w, b):
		case hitBase(w, b):
		}
	}
}

func hitBorder(w *core.World, b *core.Bullet) bool {
	f := w.Rules.Field
	r := b.Rect
	if r.X > f.X && r.Y > f.Y && r.Right() < f.Right() && r.Bottom() < f.Bottom() {
		return false
	}
	cx, cy := clampPoint(r, f)
	w.AddExplosion(cx, cy, false)
	if !b.OwnerEnemy {
		w.PlaySound(core.SoundSteel)
	}
	consumeBullet(w, b)
	w.Emit(core.Event{Type: core.EvtBulletImpact, Entity: b.ID, Slot: b.OwnerSlot})
	return true
}

func clampPoint(r, f core.Rect) (int, int) {
	cx, cy := r.Center()
	return min(max(cx, f.X), f.Right()), min(max(cy, f.Y), f.Bottom())
}

func hitTank(w *core.World, b *core.Bullet) bool {
	bm := w.Masks.Bullet[b.Dir]
	for _, t := range w.Tanks {
		if t.ID == b.Owner || !t.Tangible() || !t.Rect.Overlaps(b.Rect) {
			continue
		}
		if !core.MasksOverlap(w.Masks.Tank[t.Dir], t.Rect, bm, b.Rect) {
			continue
		}
		targetEnemy := t.IsEnemy()
		switch {
		case !b.OwnerEnemy && !targetEnemy:
			// friendly fire stuns
			consumeBullet(w, b)
			ParalyzeTank(w, t, w.Rules.FriendlyParalysisTicks)
			cx, cy := b.Rect.Center()
			w.AddExplosion(cx, cy, false)
			return true
		case b.OwnerEnemy != targetEnemy:
			consumeBullet(w, b)
			if !DamageTank(w, t, b.OwnerSlot) {
				cx, cy := b.Rect.Center()
				w.AddExplosion(cx, cy, false)
			}
			return true
		}
		// enemy bullets pass through other enemies
	}
	return false
}

func hitBullet(w *core.World, b *core.Bullet) bool {
	bm := w.Masks.Bullet[b.Dir]
	for _, o := range w.Bullets {
		if o == b || o.Dead() || !o.Rect.Overlaps(b.Rect) {
			continue
		}
		if !core.MasksOverlap(bm, b.Rect, w.Masks.Bullet[o.Dir], o.Rect) {
			continue
		}
		consumeBullet(w, b)
		consumeBullet(w, o)
		return true
	}
	return false
}

func hitTerrain(w *core.World, b *core.Bullet) bool {
	rules := w.Rules
	hit := false
	for _, tile := range w.Tiles {
		if tile.Dead() || !tile.BulletTarget() || !tile.Rect.Overlaps(b.Rect) {
			continue
		}
		hit = true
		if !b.OwnerEnemy {
			if tile.Kind == core.TileSteel {
				w.PlaySound(core.SoundSteel)
			} else {
				w.PlaySound(core.SoundBrick)
			}
		}
		if tile.Hit(b.Dir, b.Power, rules.SteelBreakPower) {
			w.Emit(core.Event{Type: core.EvtTileDestroyed, Entity: tile.ID, Slot: b.OwnerSlot})
		}
	}
	if !hit {
		return false
	}
	cx, cy := b.Rect.Center()
	w.AddExplosion(cx, cy, false)
	consumeBullet(w, b)
	w.Emit(core.Event{Type: core.EvtBulletImpact, Entity: b.ID, Slot: b.OwnerSlot})
	return true
}

func hitBase(w *core.World, b *core.Bullet) bool {
	base := w.Base
	if base == nil || base.Rect.Empty() || !base.Rect.Overlaps(b.Rect) {
		return false
	}
	consumeBullet(w, b)
	if !base.Alive {
		return true
	}
	base.Alive = false
	cx, cy := base.Rect.Center()
	w.AddExplosion(cx, cy, true)
	w.PlaySound(core.SoundBaseDestroyed)
	w.Emit(core.Event{Type: core.EvtBaseDestroyed, Slot: b.OwnerSlot})
	w.Log.Info().Uint64("tick", w.TickCount).Int("shooter", b.OwnerSlot).Msg("Base destroyed")
	return true
}
