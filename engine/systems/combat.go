package systems

import (
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// DamageTank applies one lethal hit to t, credited to player slot shooter
// (-1 for none). It reports whether t was destroyed.
func DamageTank(w *core.World, t *core.Tank, shooter int) bool {
	if t.State != core.TankActive {
		return false
	}
	if t.IsPlayer() && t.Shielded(w.TickCount) {
		return false
	}
	t.Health--
	if t.Health > 0 {
		w.Emit(core.Event{Type: core.EvtTankHit, Entity: t.ID, Slot: shooter, Level: t.Level})
		w.PlaySound(core.SoundSteel)
		return false
	}
	return DestroyTank(w, t, shooter)
}

// DestroyTank takes t out of play regardless of health. Enemy kills are
// credited to shooter when it is a player slot. Calling it twice is a no-op.
func DestroyTank(w *core.World, t *core.Tank, shooter int) bool {
	if t.State != core.TankActive && t.State != core.TankSpawning {
		return false
	}
	cx, cy := t.Rect.Center()
	w.AddExplosion(cx, cy, true)
	w.PlaySound(core.SoundExplosion)

	if t.IsEnemy() {
		t.Remove()
		w.Stage.AliveOrRemaining--
		ev := core.Event{Type: core.EvtTankDestroyed, Entity: t.ID, Slot: shooter, Level: t.Level}
		if p := w.Player(shooter); p != nil {
			ev.Points = p.Credit(t.Level)
			w.AddBanner(cx, cy, ev.Points)
		}
		w.Emit(ev)
		if t.IsSpecial() {
			SpawnPowerUp(w)
		}
		w.Log.Debug().Uint64("tick", w.TickCount).Int("level", t.Level).Int("shooter", shooter).
			Int("remaining", w.Stage.AliveOrRemaining).Msg("Enemy destroyed")
		return true
	}

	p := w.Player(t.Slot)
	if p == nil {
		t.Remove()
		return true
	}
	p.Lives--
	p.Dead = true
	t.Intent = core.Intent{}
	if p.Lives > 0 {
		t.State = core.TankRespawning
		t.RespawnAt = w.TickCount + uint64(w.Rules.RespawnTicks)
	} else {
		p.Lives = 0
		p.GameOver = true
		t.Remove()
	}
	w.Emit(core.Event{Type: core.EvtPlayerKilled, Entity: t.ID, Slot: t.Slot, Level: t.Level})
	w.Log.Info().Uint64("tick", w.TickCount).Int("slot", t.Slot).Int("lives", p.Lives).
		Bool("gameOver", p.GameOver).Msg("Player destroyed")
	return true
}

// ParalyzeTank freezes t in place for ticks
func ParalyzeTank(w *core.World, t *core.Tank, ticks int) {
	until := w.TickCount + uint64(ticks)
	if until > t.ParalyzedUntil {
		t.ParalyzedUntil = until
	}
}

// consumeBullet removes b and returns its slot to the owner, once
func consumeBullet(w *core.World, b *core.Bullet) {
	if !b.Consume() {
		return
	}
	if owner := w.TankByID(b.Owner); owner != nil {
		owner.ReleaseBullet()
	}
}
