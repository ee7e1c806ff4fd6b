package ai

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/systems"
)

func newTestWorld(t *testing.T, mut func(r *core.Rules)) (*core.World, *Director) {
	t.Helper()
	rules := core.DefaultRules()
	if mut != nil {
		mut(&rules)
	}
	w := core.NewWorld(rules, 11)
	w.Base = &core.Phoenix{Rect: core.Rect{X: rules.Field.X + 12*32, Y: rules.Field.Y + 24*32, W: 64, H: 64}, Alive: true}
	w.Stage.Number = 1
	systems.Install(w)
	d := NewDirector(w)
	w.AddSystem(&DirectorSystem{Director: d})
	return w, d
}

func steel(w *core.World, col, row int) {
	w.AddTile(core.NewTile(core.TileSteel, w.Rules.CellRect(col, row)))
}

func activeAI(w *core.World, x, y int, dir core.Direction) *core.Tank {
	t := systems.NewEnemyTank(w, 0, x, y, false)
	t.State = core.TankActive
	t.Dir = dir
	return t
}

func TestClassCounts(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		ratios [core.NumEnemyClasses]int
		want   [core.NumEnemyClasses]int
	}{
		{"stage one", 20, [4]int{50, 30, 20, 0}, [4]int{10, 6, 4, 0}},
		{"remainder to largest", 7, [4]int{50, 30, 20, 0}, [4]int{4, 2, 1, 0}},
		{"even split", 10, [4]int{25, 25, 25, 25}, [4]int{4, 2, 2, 2}},
		{"armor heavy", 20, [4]int{0, 25, 25, 50}, [4]int{0, 5, 5, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassCounts(tt.count, tt.ratios)
			assert.Equal(t, tt.want, got)
			sum := 0
			for _, n := range got {
				sum += n
			}
			assert.Equal(t, tt.count, sum)
		})
	}
}

func TestBuildQueue_ShufflesComposition(t *testing.T) {
	q := BuildQueue(rand.New(rand.NewSource(3)), 1, 20)
	require.Len(t, q, 20)
	var counts [core.NumEnemyClasses]int
	for _, c := range q {
		counts[c]++
	}
	assert.Equal(t, [4]int{10, 6, 4, 0}, counts)

	again := BuildQueue(rand.New(rand.NewSource(3)), 1, 20)
	assert.Equal(t, q, again, "same seed, same order")
}

func TestRatiosFor_Cycles(t *testing.T) {
	assert.Equal(t, RatiosFor(1), RatiosFor(9))
	assert.Equal(t, RatiosFor(1), RatiosFor(0))
	assert.Equal(t, CompositionRatios[7], RatiosFor(8))
}

func TestDirector_SpawnCadence(t *testing.T) {
	w, d := newTestWorld(t, func(r *core.Rules) {
		r.EnemyCountMin, r.EnemyCountMax = 5, 5
		r.MaxActiveEnemies = 0
	})
	w.Base = nil // keep stray enemy fire from ending the stage
	require.Equal(t, 5, w.Stage.RemainingToSpawn)

	w.Tick()
	assert.Equal(t, 1, d.Spawned())
	assert.Equal(t, 4, w.Stage.RemainingToSpawn)
	assert.Equal(t, 5, w.Stage.AliveOrRemaining)

	tickN(w, w.Rules.EnemySpawnTicks-1)
	assert.Equal(t, 1, d.Spawned())
	w.Tick()
	assert.Equal(t, 2, d.Spawned())

	tickN(w, 10*w.Rules.EnemySpawnTicks)
	assert.Equal(t, 5, d.Spawned())
	assert.Zero(t, w.Stage.RemainingToSpawn)
}

func TestDirector_SpawnPointsRotate(t *testing.T) {
	w, _ := newTestWorld(t, func(r *core.Rules) {
		r.EnemySpawnTicks = 1
		r.MaxActiveEnemies = 0
	})
	w.Base = nil // keep stray enemy fire from ending the stage
	tickN(w, 4)
	require.Len(t, w.Tanks, 4)
	for i, tk := range w.Tanks {
		sp := w.Rules.EnemySpawns[i%3]
		assert.Equal(t, sp[0], tk.SpawnX)
		assert.Equal(t, sp[1], tk.SpawnY)
	}
}

func TestDirector_RespectsActiveCap(t *testing.T) {
	w, d := newTestWorld(t, func(r *core.Rules) {
		r.EnemySpawnTicks = 1
		r.MaxActiveEnemies = 2
	})
	w.Base = nil // keep stray enemy fire from ending the stage
	tickN(w, 20)
	assert.Equal(t, 2, d.Spawned())

	systems.DestroyTank(w, w.Enemies()[0], -1)
	tickN(w, 2)
	assert.Equal(t, 3, d.Spawned())
}

func TestDirector_QueueWrapsWhenShort(t *testing.T) {
	w, d := newTestWorld(t, func(r *core.Rules) {
		r.EnemySpawnTicks = 1
		r.MaxActiveEnemies = 0
	})
	w.Base = nil // keep stray enemy fire from ending the stage
	d.Queue = []int{3}
	tickN(w, 3)
	for _, e := range w.Enemies() {
		assert.Equal(t, core.EnemyLevel(3), e.Level)
	}
	assert.Equal(t, 3, d.Spawned())
}

func TestDirector_NoSpawnAfterGameOver(t *testing.T) {
	w, d := newTestWorld(t, nil)
	w.Base.Alive = false
	tickN(w, 5)
	assert.Equal(t, 1, d.Spawned(), "first tick spawns before the stage system reacts")
	tickN(w, 5*w.Rules.EnemySpawnTicks)
	assert.Equal(t, 1, d.Spawned())
}

func TestCandidates_OnlyOpenSide(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	tk := activeAI(w, 320, 352, core.Up)
	steel(w, 8, 9)
	steel(w, 9, 9)
	steel(w, 7, 10)
	steel(w, 7, 11)
	steel(w, 10, 10)
	steel(w, 10, 11)

	got := Candidates(w, tk)
	assert.Equal(t, []core.Direction{core.Down}, got.List())

	Steer(w, tk, w.Rand)
	assert.Equal(t, core.Down, tk.Dir)
	assert.True(t, tk.Intent.Moving)
	assert.Equal(t, core.Down, tk.Intent.Move)
}

func TestCandidates_FieldEdgeAndTanks(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	tk := activeAI(w, 64, 32, core.Down)
	activeAI(w, 128, 32, core.Down)

	got := Candidates(w, tk)
	assert.Equal(t, []core.Direction{core.Down}, got.List())
}

func TestCandidates_GrazeKeepsOnlyCurrentDirection(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	steel(w, 10, 9) // y 320..352, right of the tank
	tk := activeAI(w, 320, 346, core.Up)

	assert.False(t, Candidates(w, tk).Has(core.Right))

	tk.Dir = core.Right
	assert.True(t, Candidates(w, tk).Has(core.Right))
}

func TestSteer_KeepsHeadingWhileCandidatesUnchanged(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	tk := activeAI(w, 320, 352, core.Left)
	tk.AI.Candidates = core.DirSet(0).With(core.Up).With(core.Down).With(core.Left).With(core.Right)

	Steer(w, tk, w.Rand)
	assert.Equal(t, core.Left, tk.Dir)
	assert.Equal(t, w.TickCount+uint64(w.Rules.AIThinkTicks), tk.AI.NextThinkAt)
}

func TestSteer_ParalyzedStandsStill(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	tk := activeAI(w, 320, 352, core.Left)
	tk.ParalyzedUntil = 100
	tk.Intent.Moving = true

	Steer(w, tk, w.Rand)
	assert.False(t, tk.Intent.Moving)
}

func TestFire_RandomizedInterval(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	tk := activeAI(w, 320, 352, core.Left)

	Fire(w, tk, w.Rand)
	require.True(t, tk.Intent.Fire)
	wait := tk.AI.NextShotAt - w.TickCount
	assert.GreaterOrEqual(t, wait, uint64(w.Rules.AIShotMinTicks))
	assert.LessOrEqual(t, wait, uint64(w.Rules.AIShotMaxTicks))

	tk.Intent.Fire = false
	Fire(w, tk, w.Rand)
	assert.False(t, tk.Intent.Fire, "timer still running")

	tk.AI.NextShotAt = 0
	tk.BulletsInFlight = tk.BulletLimit
	Fire(w, tk, w.Rand)
	assert.False(t, tk.Intent.Fire, "bullet limit reached")
}

func tickN(w *core.World, n int) {
	for i := 0; i < n; i++ {
		w.Tick()
	}
}

func TestAutopilot_LeavesTankUntouched(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	p := core.NewPlayerState(0, 3)
	w.Players = append(w.Players, p)
	tk := systems.NewPlayerTank(w, p)
	tk.Rect.X, tk.Rect.Y = 320, 352
	tk.Dir = core.Up
	steel(w, 8, 9)
	steel(w, 9, 9)
	steel(w, 7, 10)
	steel(w, 7, 11)
	steel(w, 10, 10)
	steel(w, 10, 11)

	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, core.Intent{}, Autopilot(w, tk, rng), "spawning tanks idle")

	tk.State = core.TankActive
	held := core.Intent{Moving: true, Move: core.Left}
	tk.Intent = held
	in := Autopilot(w, tk, rng)
	assert.Equal(t, core.Intent{Moving: true, Move: core.Down, Fire: true}, in)
	assert.Equal(t, core.Up, tk.Dir)
	assert.Equal(t, held, tk.Intent)
	require.NotNil(t, tk.AI)
}
