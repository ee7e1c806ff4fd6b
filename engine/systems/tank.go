package systems

import (
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// TankSystem advances tank lifecycles and carries out each tank's intent
type TankSystem struct{}

func (s *TankSystem) Priority() int { return 10 }

func (s *TankSystem) Update(w *core.World) {
	now := w.TickCount
	for _, t := range w.Tanks {
		switch t.State {
		case core.TankRespawning:
			if now >= t.RespawnAt {
				respawn(w, t)
			}
			continue
		case core.TankSpawning:
			advanceSpawn(w, t)
			continue
		case core.TankRemoved:
			continue
		}

		if t.ParalyzedUntil != 0 && !t.Paralyzed(now) {
			t.ParalyzedUntil = 0
		}
		if t.ShieldUntil != 0 && !t.Shielded(now) {
			t.ShieldUntil = 0
		}

		in := t.Intent
		if in.Moving {
			MoveTank(w, t, in.Move)
		}
		if in.Fire {
			Shoot(w, t)
		}
		t.Intent.Fire = false
	}
}

// advanceSpawn plays the star animation and activates the tank when done.
// Active tanks never hold a spawn back; tanks spawning on top of each other
// finish one at a time, earliest first.
func advanceSpawn(w *core.World, t *core.Tank) {
	rules := w.Rules
	elapsed := w.TickCount - t.SpawnedAt
	if rules.SpawnFrameTicks > 0 {
		t.Frame = int(elapsed/uint64(rules.SpawnFrameTicks)) % 4
	}
	if elapsed < uint64(rules.SpawnTicks) {
		return
	}
	for _, other := range w.Tanks {
		if other == t || other.State != core.TankSpawning || !other.Rect.Overlaps(t.Rect) {
			continue
		}
		if other.SpawnedAt < t.SpawnedAt || (other.SpawnedAt == t.SpawnedAt && other.ID < t.ID) {
			return
		}
	}
	t.State = core.TankActive
	t.Frame = 0
	if t.Pending {
		t.Pending = false
		t.ShieldUntil = w.TickCount + uint64(rules.StartShieldTicks)
	}
	w.Emit(core.Event{Type: core.EvtTankActivated, Entity: t.ID, Slot: t.Slot, Level: t.Level})
}

func respawn(w *core.World, t *core.Tank) {
	t.Rect.X, t.Rect.Y = t.SpawnX, t.SpawnY
	t.Dir = core.Up
	t.State = core.TankSpawning
	t.SpawnedAt = w.TickCount
	t.Pending = true
	t.ParalyzedUntil = 0
	t.ShieldUntil = 0
	t.Intent = core.Intent{}
	t.ApplyTier(w.Rules)
	if p := w.Player(t.Slot); p != nil {
		p.Dead = false
	}
	w.Emit(core.Event{Type: core.EvtTankSpawned, Entity: t.ID, Slot: t.Slot, Level: t.Level})
}

// NewPlayerTank places a spawning player tank for slot
func NewPlayerTank(w *core.World, p *core.PlayerState) *core.Tank {
	rules := w.Rules
	sp := rules.PlayerSpawns[p.Slot%len(rules.PlayerSpawns)]
	t := &core.Tank{
		Control:   core.ControlPlayer,
		Slot:      p.Slot,
		Level:     min(p.Level, core.MaxPlayerLevel),
		Palette:   []core.Palette{core.PaletteGold, core.PaletteGreen}[p.Slot%2],
		Rect:      core.Rect{X: sp[0], Y: sp[1], W: rules.TankSize, H: rules.TankSize},
		Dir:       core.Up,
		SpawnX:    sp[0],
		SpawnY:    sp[1],
		State:     core.TankSpawning,
		SpawnedAt: w.TickCount,
		Pending:   true,
	}
	t.ApplyTier(rules)
	w.AddTank(t)
	p.TankID = t.ID
	w.Emit(core.Event{Type: core.EvtTankSpawned, Entity: t.ID, Slot: t.Slot, Level: t.Level})
	return t
}

// NewEnemyTank places a spawning enemy of class (0 basic .. 3 armor) at (x, y)
func NewEnemyTank(w *core.World, class, x, y int, special bool) *core.Tank {
	rules := w.Rules
	t := &core.Tank{
		Control:   core.ControlAI,
		Slot:      -1,
		Level:     core.EnemyLevel(class),
		Palette:   core.PaletteSilver,
		Rect:      core.Rect{X: x, Y: y, W: rules.TankSize, H: rules.TankSize},
		Dir:       core.Down,
		SpawnX:    x,
		SpawnY:    y,
		State:     core.TankSpawning,
		SpawnedAt: w.TickCount,
		AI:        &core.AIState{},
	}
	if special {
		t.Control = core.ControlSpecialAI
	}
	t.ApplyTier(rules)
	w.AddTank(t)
	w.Emit(core.Event{Type: core.EvtTankSpawned, Entity: t.ID, Slot: -1, Level: t.Level})
	return t
}

// Shoot fires a bullet from the center of t if its fire-rate gate allows
func Shoot(w *core.World, t *core.Tank) *core.Bullet {
	if t.State != core.TankActive || t.Paralyzed(w.TickCount) {
		return nil
	}
	if t.BulletsInFlight >= t.BulletLimit {
		return nil
	}
	rules := w.Rules
	cx, cy := t.Rect.Center()
	b := w.AddBullet(&core.Bullet{
		Owner:      t.ID,
		OwnerEnemy: t.IsEnemy(),
		OwnerSlot:  t.Slot,
		Rect:       core.RectCentered(cx, cy, rules.BulletSize, rules.BulletSize),
		Dir:        t.Dir,
		Speed:      rules.BulletSpeed(t.Level, t.BulletMod),
		Power:      t.Power,
		BornAt:     w.TickCount,
	})
	t.BulletsInFlight++
	w.Emit(core.Event{Type: core.EvtBulletFired, Entity: t.ID, Slot: t.Slot, Level: t.Level})
	if t.IsPlayer() {
		w.PlaySound(core.SoundFire)
	}
	return b
}
