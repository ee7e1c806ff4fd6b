package session

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/ai"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/maplib"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/systems"
)

// ErrStageNotComplete is returned by NextStage while the current stage is
// still being played or was lost
var ErrStageNotComplete = errors.New("stage not complete")

// Options configures a Session
type Options struct {
	Rules   core.Rules
	Players int // 0, 1 or 2
	Seed    int64
	Stages  *maplib.Catalogue // nil loads the embedded stages
	Logger  *zerolog.Logger
}

// Session runs a game across stages: one world, its systems, and the enemy
// director of the current stage
type Session struct {
	World    *core.World
	Director *ai.Director

	stages   *maplib.Catalogue
	director *ai.DirectorSystem
	pilot    *rand.Rand
}

// New builds a session with its systems installed. No stage is loaded yet.
func New(opts Options) (*Session, error) {
	if opts.Players < 0 || opts.Players > len(opts.Rules.PlayerSpawns) {
		return nil, fmt.Errorf("players: %d out of range", opts.Players)
	}
	stages := opts.Stages
	if stages == nil {
		var err error
		if stages, err = maplib.DefaultCatalogue(); err != nil {
			return nil, fmt.Errorf("load stages: %w", err)
		}
	}
	w := core.NewWorld(opts.Rules, opts.Seed)
	if opts.Logger != nil {
		w.Log = *opts.Logger
	}
	for slot := 0; slot < opts.Players; slot++ {
		w.Players = append(w.Players, core.NewPlayerState(slot, opts.Rules.StartLives))
	}
	s := &Session{
		World:    w,
		stages:   stages,
		director: &ai.DirectorSystem{},
		pilot:    rand.New(rand.NewSource(opts.Seed ^ 0x5eed)),
	}
	systems.Install(w)
	w.AddSystem(s.director)
	return s, nil
}

// LoadStage replaces the field with stage n. On error the current stage
// is left untouched.
func (s *Session) LoadStage(n int) error {
	tm, err := s.stages.Stage(n)
	if err != nil {
		return err
	}
	if err := tm.Validate(); err != nil {
		return fmt.Errorf("stage %d: %w", n, err)
	}
	w := s.World
	w.Reset()
	if err := tm.Build(w); err != nil {
		return err
	}
	w.Stage.Number = n
	w.Stage.StartedAt = w.TickCount
	for _, p := range w.Players {
		p.Dead = false
		if !p.GameOver {
			systems.NewPlayerTank(w, p)
		}
	}
	s.Director = ai.NewDirector(w)
	s.director.Director = s.Director

	w.Emit(core.Event{Type: core.EvtStageStart, Level: n, Slot: -1})
	w.PlaySound(core.SoundStageStart)
	w.Log.Info().Int("stage", n).Str("name", tm.Name).Int("tiles", len(w.Tiles)).
		Int("enemies", w.Stage.EnemyCount).Msg("Stage loaded")
	return nil
}

// NextStage carries the players into the following stage once the current
// one is complete
func (s *Session) NextStage() error {
	w := s.World
	if w.Stage.Phase != core.PhaseComplete {
		return fmt.Errorf("%w: stage %d is %s", ErrStageNotComplete, w.Stage.Number, w.Stage.Phase)
	}
	for _, p := range w.Players {
		p.ResetStage()
	}
	return s.LoadStage(w.Stage.Number + 1)
}

// Step feeds one intent per player slot into the world and advances it by
// one tick. Missing slots stand still.
func (s *Session) Step(intents []core.Intent) {
	w := s.World
	for slot := range w.Players {
		t := w.PlayerTank(slot)
		if t == nil {
			continue
		}
		if slot < len(intents) {
			t.Intent = intents[slot]
		} else {
			t.Intent = core.Intent{}
		}
	}
	w.Tick()
}

// Autopilot returns AI-driven intents for every player slot. It draws from
// its own random source, so recorded inputs replay without it.
func (s *Session) Autopilot() []core.Intent {
	w := s.World
	out := make([]core.Intent, len(w.Players))
	for slot := range w.Players {
		if t := w.PlayerTank(slot); t != nil {
			out[slot] = ai.Autopilot(w, t, s.pilot)
		}
	}
	return out
}

// Over reports whether the current stage has been won or lost
func (s *Session) Over() bool { return s.World.Stage.Over() }

// GameOver reports whether the run has ended for good
func (s *Session) GameOver() bool { return s.World.Stage.Phase == core.PhaseGameOver }

// Result tallies the current stage
func (s *Session) Result() core.StageResult { return systems.Result(s.World) }

// Draw renders the world onto c
func (s *Session) Draw(c core.Canvas) { s.World.Draw(c) }

// Stages returns the catalogue the session loads from
func (s *Session) Stages() *maplib.Catalogue { return s.stages }
