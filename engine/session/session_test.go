package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/maplib"
)

// openStage is an empty field with only the base
func openStage(name string) *maplib.TileMap {
	tm := maplib.NewTileMap(name)
	tm.Set(12, 24, maplib.CodeFlag)
	return tm
}

func newTestSession(t *testing.T, players int, stages ...*maplib.TileMap) *Session {
	t.Helper()
	opts := Options{Rules: core.DefaultRules(), Players: players, Seed: 5}
	if len(stages) > 0 {
		opts.Stages = maplib.NewCatalogue(stages...)
	}
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func TestNew_RejectsPlayerCount(t *testing.T) {
	_, err := New(Options{Rules: core.DefaultRules(), Players: 3})
	assert.Error(t, err)
}

func TestSession_LoadStage(t *testing.T) {
	s := newTestSession(t, 2)
	require.NoError(t, s.LoadStage(1))
	w := s.World

	assert.Equal(t, 1, w.Stage.Number)
	assert.True(t, w.Base.Alive)
	assert.NotEmpty(t, w.Tiles)
	for slot := 0; slot < 2; slot++ {
		tk := w.PlayerTank(slot)
		require.NotNil(t, tk)
		assert.Equal(t, core.TankSpawning, tk.State)
	}
	assert.Equal(t, 20, w.Stage.EnemyCount)
	assert.Len(t, s.Director.Queue, 20)
}

func TestSession_LoadStageFailureKeepsField(t *testing.T) {
	s := newTestSession(t, 1, openStage("open"), maplib.NewTileMap("no base"))
	require.NoError(t, s.LoadStage(1))
	w := s.World
	tank := w.PlayerTank(0)

	err := s.LoadStage(0)
	assert.ErrorIs(t, err, maplib.ErrUnknownStage)
	err = s.LoadStage(2)
	assert.ErrorIs(t, err, maplib.ErrNoBase)

	assert.Equal(t, 1, w.Stage.Number)
	assert.Same(t, tank, w.PlayerTank(0))
	assert.True(t, w.Base.Alive)
}

func TestSession_ReloadKeepsOneDirector(t *testing.T) {
	s := newTestSession(t, 1, openStage("open"))
	require.NoError(t, s.LoadStage(1))
	require.NoError(t, s.LoadStage(1))

	s.Step(nil)
	assert.Len(t, s.World.Enemies(), 1)
	assert.Equal(t, 1, s.Director.Spawned())
}

func TestSession_StepDrivesPlayers(t *testing.T) {
	s := newTestSession(t, 1, openStage("open"))
	require.NoError(t, s.LoadStage(1))
	w := s.World
	tk := w.PlayerTank(0)
	for i := 0; i < w.Rules.SpawnTicks+1 && tk.State != core.TankActive; i++ {
		s.Step(nil)
	}
	require.Equal(t, core.TankActive, tk.State)

	y := tk.Rect.Y
	s.Step([]core.Intent{{Moving: true, Move: core.Up}})
	assert.Less(t, tk.Rect.Y, y)
	assert.Equal(t, core.Up, tk.Dir)

	s.Step([]core.Intent{{Fire: true}})
	assert.Equal(t, 1, tk.BulletsInFlight)
	assert.False(t, tk.Intent.Fire, "fire is consumed")
}

func TestSession_NextStage(t *testing.T) {
	s := newTestSession(t, 1, openStage("one"), openStage("two"))
	require.NoError(t, s.LoadStage(1))
	w := s.World

	err := s.NextStage()
	require.ErrorIs(t, err, ErrStageNotComplete)

	p := w.Player(0)
	p.Credit(core.EnemyLevel(2))
	p.Level = 2
	w.Stage.Phase = core.PhaseComplete

	require.NoError(t, s.NextStage())
	assert.Equal(t, 2, w.Stage.Number)
	assert.Equal(t, core.PhaseRunning, w.Stage.Phase)
	assert.Equal(t, 300, p.Score)
	assert.Empty(t, p.Kills)

	tk := w.PlayerTank(0)
	require.NotNil(t, tk)
	assert.Equal(t, 2, tk.Level)
	assert.Equal(t, tk.ID, p.TankID)
}

func TestSession_GameOverPlayersStayOut(t *testing.T) {
	s := newTestSession(t, 2, openStage("one"), openStage("two"))
	require.NoError(t, s.LoadStage(1))
	w := s.World
	w.Player(1).GameOver = true
	w.Stage.Phase = core.PhaseComplete

	require.NoError(t, s.NextStage())
	assert.NotNil(t, w.PlayerTank(0))
	assert.Nil(t, w.PlayerTank(1))
}

func TestSession_SameSeedSameRun(t *testing.T) {
	run := func() (core.StageResult, []core.Rect) {
		s := newTestSession(t, 2)
		require.NoError(t, s.LoadStage(1))
		for i := 0; i < 900 && !s.Over(); i++ {
			s.Step(s.Autopilot())
		}
		var rects []core.Rect
		for _, tk := range s.World.Tanks {
			rects = append(rects, tk.Rect)
		}
		return s.Result(), rects
	}
	r1, t1 := run()
	r2, t2 := run()
	assert.Equal(t, r1, r2)
	assert.Equal(t, t1, t2)
}
