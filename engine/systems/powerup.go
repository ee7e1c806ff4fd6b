package systems

import (
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// PowerUpSystem expires power-ups and lets player tanks collect them
type PowerUpSystem struct{}

func (s *PowerUpSystem) Priority() int { return 25 }

func (s *PowerUpSystem) Update(w *core.World) {
	now := w.TickCount
	for _, p := range w.PowerUps {
		if p.Dead() {
			continue
		}
		if now >= p.ExpiresAt {
			p.Collect()
			continue
		}
		for _, t := range w.Tanks {
			if t.IsPlayer() && t.Tangible() && t.Rect.Overlaps(p.Rect) {
				CollectPowerUp(w, p, t)
				break
			}
		}
	}
}

// SpawnPowerUp drops a random power-up at a random spot in the field
func SpawnPowerUp(w *core.World) *core.PowerUp {
	rules := w.Rules
	f := rules.Field
	size := rules.TankSize
	kind := core.PowerUpKind(w.Rand.Intn(int(core.NumPowerUps)))
	x := f.X + w.Rand.Intn(f.W-size+1)
	y := f.Y + w.Rand.Intn(f.H-size+1)
	return PlacePowerUp(w, kind, x, y)
}

// PlacePowerUp drops a power-up of kind with its top-left at (x, y)
func PlacePowerUp(w *core.World, kind core.PowerUpKind, x, y int) *core.PowerUp {
	size := w.Rules.TankSize
	p := w.AddPowerUp(&core.PowerUp{
		Kind:      kind,
		Rect:      core.Rect{X: x, Y: y, W: size, H: size},
		ExpiresAt: w.TickCount + uint64(w.Rules.PowerUpTicks),
	})
	w.PlaySound(core.SoundPowerUpAppear)
	w.Emit(core.Event{Type: core.EvtPowerUpSpawned, Entity: p.ID, Kind: kind, Slot: -1})
	return p
}

// CollectPowerUp awards the bonus to t's player and applies the effect
func CollectPowerUp(w *core.World, p *core.PowerUp, t *core.Tank) {
	if p.Dead() {
		return
	}
	p.Collect()
	rules := w.Rules
	now := w.TickCount
	player := w.Player(t.Slot)
	if player != nil {
		player.Award(rules.PowerUpBonus)
	}
	cx, cy := p.Rect.Center()
	w.AddBanner(cx, cy, rules.PowerUpBonus)

	switch p.Kind {
	case core.PowerShield:
		t.ShieldUntil = now + uint64(rules.ShieldTicks)
	case core.PowerFreeze:
		for _, e := range w.Enemies() {
			ParalyzeTank(w, e, rules.FreezeTicks)
		}
	case core.PowerFortify:
		Fortify(w)
	case core.PowerBullet:
		t.BulletMod += rules.PowerStep
		if t.BulletMod > rules.PowerThreshold {
			t.BulletMod = 100
			t.BulletLimit++
		}
	case core.PowerExplosion:
		for _, e := range w.Enemies() {
			if e.Tangible() {
				DestroyTank(w, e, t.Slot)
			}
		}
	case core.PowerExtraLife:
		if player != nil {
			player.Lives++
		}
		w.PlaySound(core.SoundLifeUp)
	case core.PowerSpecial:
		if t.Level < core.MaxPlayerLevel {
			t.Level++
			limit, mod := t.BulletLimit-core.TierFor(t.Level-1).BulletLimit, t.BulletMod
			t.ApplyTier(rules)
			t.BulletLimit += limit
			t.BulletMod = mod
			if player != nil {
				player.Level = t.Level
			}
		} else {
			t.Amphibious = true
		}
	}
	w.PlaySound(core.SoundPowerUpPick)
	w.Emit(core.Event{Type: core.EvtPowerUpCollected, Entity: p.ID, Kind: p.Kind, Slot: t.Slot, Points: rules.PowerUpBonus})
	w.Log.Debug().Uint64("tick", now).Int("slot", t.Slot).Stringer("kind", p.Kind).Msg("Power-up collected")
}

// Fortify turns the ring around the base to steel, or extends an active ring
func Fortify(w *core.World) {
	until := w.TickCount + uint64(w.Rules.FortifyTicks)
	if w.Fortify.Active {
		w.Fortify.Until = until
		return
	}
	replaceRing(w, core.TileSteel, true)
	w.Fortify = core.FortifyState{Active: true, Until: until}
	w.Emit(core.Event{Type: core.EvtFortifyStart, Slot: -1})
}

// Unfortify restores the ring to full-health brick
func Unfortify(w *core.World) {
	if !w.Fortify.Active {
		return
	}
	replaceRing(w, core.TileBrick, false)
	w.Fortify = core.FortifyState{}
	w.Emit(core.Event{Type: core.EvtFortifyEnd, Slot: -1})
}

func replaceRing(w *core.World, kind core.TileKind, fortified bool) {
	if w.Base == nil || w.Base.Rect.Empty() {
		return
	}
	ring := w.Rules.BaseRing(w.Base.Rect)
	for _, tile := range w.Tiles {
		for _, cell := range ring {
			if tile.Cell == cell {
				tile.Destroy()
			}
		}
	}
	for _, cell := range ring {
		t := w.AddTile(core.NewTile(kind, cell))
		t.Fortified = fortified
	}
}
