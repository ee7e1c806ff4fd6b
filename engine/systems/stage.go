package systems

import (
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// StageSystem decides when a stage is won or lost
type StageSystem struct{}

func (s *StageSystem) Priority() int { return 100 }

func (s *StageSystem) Update(w *core.World) {
	st := &w.Stage
	now := w.TickCount
	rules := w.Rules

	lost := (w.Base != nil && !w.Base.Alive) || w.AllPlayersOut()
	switch st.Phase {
	case core.PhaseRunning, core.PhaseCompleting:
		if lost {
			st.Phase = core.PhaseGameOverPending
			st.PhaseAt = now + uint64(rules.GameOverTicks)
			w.Log.Info().Uint64("tick", now).Int("stage", st.Number).Msg("Game over pending")
			return
		}
		if st.Phase == core.PhaseRunning && st.AliveOrRemaining <= 0 && len(w.Enemies()) == 0 {
			st.Phase = core.PhaseCompleting
			st.PhaseAt = now + uint64(rules.StageTransitionTicks)
			return
		}
		if st.Phase == core.PhaseCompleting && now >= st.PhaseAt {
			st.Phase = core.PhaseComplete
			w.Emit(core.Event{Type: core.EvtStageComplete, Level: st.Number, Slot: -1})
			w.Log.Info().Uint64("tick", now).Int("stage", st.Number).Msg("Stage complete")
		}
	case core.PhaseGameOverPending:
		if now < st.PhaseAt {
			return
		}
		st.Phase = core.PhaseGameOver
		for _, p := range w.Players {
			p.GameOver = true
		}
		w.PlaySound(core.SoundGameOver)
		w.Emit(core.Event{Type: core.EvtGameOver, Level: st.Number, Slot: -1})
		w.Log.Info().Uint64("tick", now).Int("stage", st.Number).Msg("Game over")
	}
}

// Result tallies the stage for every player
func Result(w *core.World) core.StageResult {
	res := core.StageResult{
		Stage:    w.Stage.Number,
		Ticks:    w.TickCount - w.Stage.StartedAt,
		Phase:    w.Stage.Phase,
		BaseLost: w.Base != nil && !w.Base.Alive,
	}
	for _, p := range w.Players {
		res.Players = append(res.Players, p.Result())
	}
	return res
}

// Install registers the simulation systems on w. Enemy control is added
// separately by the ai package.
func Install(w *core.World) {
	w.AddSystem(&AnimationSystem{})
	w.AddSystem(&TankSystem{})
	w.AddSystem(&ProjectileSystem{})
	w.AddSystem(&PowerUpSystem{})
	w.AddSystem(&StageSystem{})
}
