package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

func TestStageSystem_CompletesAfterLastEnemy(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	w.Stage.RemainingToSpawn = 0
	w.Stage.AliveOrRemaining = 1
	e := activeEnemy(w, 0, 320, 200, core.Down)

	var completed int
	w.Bus.On(core.EvtStageComplete, func(core.Event) { completed++ })

	w.Tick()
	assert.Equal(t, core.PhaseRunning, w.Stage.Phase)

	DestroyTank(w, e, 0)
	w.Tick()
	assert.Equal(t, core.PhaseCompleting, w.Stage.Phase)

	tickN(w, w.Rules.StageTransitionTicks)
	assert.Equal(t, core.PhaseComplete, w.Stage.Phase)
	w.Tick()
	assert.Equal(t, 1, completed)
	assert.True(t, w.Stage.Over())
}

func TestStageSystem_AllPlayersOut(t *testing.T) {
	w := newTestWorld(t, withPlayers(2))
	w.Player(0).GameOver = true
	w.Tick()
	assert.Equal(t, core.PhaseRunning, w.Stage.Phase)

	w.Player(1).GameOver = true
	w.Tick()
	assert.Equal(t, core.PhaseGameOverPending, w.Stage.Phase)
}

func TestStageSystem_BaseLossDuringTransition(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	w.Stage.RemainingToSpawn = 0
	w.Stage.AliveOrRemaining = 0
	w.Tick()
	require.Equal(t, core.PhaseCompleting, w.Stage.Phase)

	w.Base.Alive = false
	w.Tick()
	assert.Equal(t, core.PhaseGameOverPending, w.Stage.Phase)
}

func TestResult_AggregatesPerPlayer(t *testing.T) {
	w := newTestWorld(t, withPlayers(2))
	DestroyTank(w, activeEnemy(w, 0, 64, 32, core.Down), 0)
	DestroyTank(w, activeEnemy(w, 1, 448, 32, core.Down), 0)
	DestroyTank(w, activeEnemy(w, 3, 832, 32, core.Down), 1)
	DestroyTank(w, activeEnemy(w, 0, 320, 320, core.Down), -1)
	tickN(w, 30)

	res := Result(w)
	require.Len(t, res.Players, 2)
	assert.Equal(t, 1, res.Stage)
	assert.Equal(t, uint64(30), res.Ticks)
	assert.False(t, res.BaseLost)

	p0 := res.Players[0]
	assert.Equal(t, [core.NumEnemyClasses]int{1, 1, 0, 0}, p0.KillsByClass)
	assert.Equal(t, 300, p0.StagePoints)

	p1 := res.Players[1]
	assert.Equal(t, 1, p1.KillsByClass[3])
	assert.Equal(t, 400, p1.Score)
	assert.Equal(t, 16, w.Stage.AliveOrRemaining)
}

func TestAnimationSystem_ExplosionRunsItsFrames(t *testing.T) {
	w := newTestWorld(t)
	small := w.AddExplosion(100, 100, false)
	large := w.AddExplosion(200, 200, true)
	banner := w.AddBanner(100, 100, 200)

	frame := w.Rules.ExplosionFrameTicks
	tickN(w, 3*frame+1)
	assert.True(t, small.Dead())
	assert.False(t, large.Dead())

	tickN(w, 2*frame)
	assert.True(t, large.Dead())
	assert.Empty(t, w.Explosions)
	assert.False(t, banner.Dead())

	tickN(w, w.Rules.BannerTicks)
	assert.True(t, banner.Dead())
}

func TestAnimationSystem_BannerFloatsUp(t *testing.T) {
	w := newTestWorld(t)
	banner := w.AddBanner(100, 100, 100)

	tickN(w, 30)
	assert.Equal(t, 70, banner.CY)
	assert.Equal(t, 100, banner.CX)

	tickN(w, w.Rules.BannerTicks)
	assert.True(t, banner.Dead())
	assert.Equal(t, 100-w.Rules.BannerTicks, banner.CY, "stops rising once expired")
}
