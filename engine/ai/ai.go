package ai

import (
	"math/rand"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/systems"
)

// Director releases a stage's enemies on a fixed cadence and drives them
type Director struct {
	Queue []int // enemy classes in spawn order

	queueIdx    int
	spawnIdx    int
	nextSpawnAt uint64
}

// NewDirector rolls the enemy budget for w's current stage, builds the
// spawn queue, and resets the stage counters. The first enemy may appear
// immediately.
func NewDirector(w *core.World) *Director {
	rules := w.Rules
	count := rules.EnemyCountMin
	if spread := rules.EnemyCountMax - rules.EnemyCountMin; spread > 0 {
		count += w.Rand.Intn(spread + 1)
	}
	st := &w.Stage
	st.EnemyCount = count
	st.RemainingToSpawn = count
	st.AliveOrRemaining = count
	d := &Director{
		Queue:       BuildQueue(w.Rand, st.Number, count),
		nextSpawnAt: w.TickCount,
	}
	w.Log.Debug().Int("stage", st.Number).Int("enemies", count).Ints("queue", d.Queue).Msg("Spawn queue built")
	return d
}

// DirectorSystem runs the director every tick
type DirectorSystem struct {
	Director *Director
}

func (s *DirectorSystem) Priority() int { return 30 }

func (s *DirectorSystem) Update(w *core.World) {
	if s.Director != nil {
		s.Director.spawn(w)
	}
	for _, t := range w.Tanks {
		if !t.IsEnemy() || !t.Tangible() || t.AI == nil {
			continue
		}
		Steer(w, t, w.Rand)
		Fire(w, t, w.Rand)
	}
}

func (d *Director) spawn(w *core.World) {
	st := &w.Stage
	rules := w.Rules
	if st.Phase != core.PhaseRunning || st.RemainingToSpawn <= 0 || len(d.Queue) == 0 {
		return
	}
	if w.TickCount < d.nextSpawnAt {
		return
	}
	if rules.MaxActiveEnemies > 0 && len(w.Enemies()) >= rules.MaxActiveEnemies {
		return
	}
	class := d.Queue[d.queueIdx%len(d.Queue)]
	d.queueIdx++
	sp := rules.EnemySpawns[d.spawnIdx%len(rules.EnemySpawns)]
	d.spawnIdx++
	special := w.Rand.Float64() < rules.SpecialChance

	t := systems.NewEnemyTank(w, class, sp[0], sp[1], special)
	st.RemainingToSpawn--
	d.nextSpawnAt = w.TickCount + uint64(rules.EnemySpawnTicks)
	w.Log.Debug().Uint64("tick", w.TickCount).Int("level", t.Level).Bool("special", special).
		Int("remaining", st.RemainingToSpawn).Msg("Enemy spawned")
}

// Autopilot drives a player tank with the enemy steering and firing
// rules and returns the resulting intent. The tank's heading and intent are
// left as they were, so the world only changes once the intent is stepped.
// rng must not be the world's own source or replays of the run diverge.
func Autopilot(w *core.World, t *core.Tank, rng *rand.Rand) core.Intent {
	if t.AI == nil {
		t.AI = &core.AIState{}
	}
	if !t.Tangible() {
		return core.Intent{}
	}
	dir, saved := t.Dir, t.Intent
	t.Intent = core.Intent{}
	Steer(w, t, rng)
	Fire(w, t, rng)
	in := t.Intent
	t.Dir, t.Intent = dir, saved
	return in
}

// Spawned returns how many enemies have been released so far
func (d *Director) Spawned() int { return d.queueIdx }
