package systems

import (
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// AnimationSystem steps explosion frames, floats and expires score banners, and
// ends the base fortification when its timer runs out
type AnimationSystem struct{}

func (s *AnimationSystem) Priority() int { return 5 }

func (s *AnimationSystem) Update(w *core.World) {
	now := w.TickCount
	frameTicks := uint64(max(w.Rules.ExplosionFrameTicks, 1))
	for _, e := range w.Explosions {
		if e.Dead() || now < e.NextFrameAt {
			continue
		}
		e.Frame++
		e.NextFrameAt = now + frameTicks
		if e.Frame >= e.Frames() {
			e.Finish()
		}
	}
	for _, b := range w.Banners {
		if b.Dead() {
			continue
		}
		if now >= b.ExpiresAt {
			b.Expire()
			continue
		}
		b.CY--
	}
	if w.Fortify.Active && now >= w.Fortify.Until {
		Unfortify(w)
	}
}
