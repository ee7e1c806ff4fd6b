package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

func TestProjectile_NotMovedOnFiringTick(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 320, 352, core.Up)
	b := Shoot(w, tk)
	require.NotNil(t, b)
	start := b.Rect

	w.Tick()
	assert.Equal(t, start, b.Rect)
	w.Tick()
	assert.Equal(t, start.Y-b.Speed, b.Rect.Y)
}

func TestProjectile_BrickDegradesThenBreaks(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 128, 352, core.Up)
	brick := tileAt(w, core.TileBrick, 2, 5)

	require.NotNil(t, Shoot(w, tk))
	tickUntil(t, w, 100, func() bool { return liveBullets(w) == 0 })

	assert.Equal(t, 1, brick.Health)
	assert.Equal(t, core.ShapeSmallTop, brick.Shape)
	assert.Equal(t, core.Rect{X: 128, Y: 192, W: 32, H: 16}, brick.Rect)
	assert.Zero(t, tk.BulletsInFlight)

	require.NotNil(t, Shoot(w, tk))
	tickUntil(t, w, 100, func() bool { return liveBullets(w) == 0 })
	assert.True(t, brick.Dead())
}

func TestProjectile_OneBulletDamagesAdjacentBricks(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 128, 352, core.Up)
	left := tileAt(w, core.TileBrick, 2, 5)
	right := tileAt(w, core.TileBrick, 3, 5)

	require.NotNil(t, Shoot(w, tk))
	tickUntil(t, w, 100, func() bool { return liveBullets(w) == 0 })

	assert.Equal(t, 1, left.Health)
	assert.Equal(t, 1, right.Health)
	assert.Zero(t, tk.BulletsInFlight)
}

func TestProjectile_SteelNeedsPowerfulBullet(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 128, 352, core.Up)
	steel := tileAt(w, core.TileSteel, 2, 5)

	require.NotNil(t, Shoot(w, tk))
	tickUntil(t, w, 100, func() bool { return liveBullets(w) == 0 })
	assert.False(t, steel.Dead())

	tk.Level = core.MaxPlayerLevel
	tk.ApplyTier(w.Rules)
	require.NotNil(t, Shoot(w, tk))
	tickUntil(t, w, 100, func() bool { return liveBullets(w) == 0 })
	assert.True(t, steel.Dead())
}

func TestProjectile_FriendlyFireParalyzes(t *testing.T) {
	w := newTestWorld(t, withPlayers(2))
	shooter := activePlayer(t, w, 0, 128, 352, core.Right)
	target := activePlayer(t, w, 1, 256, 352, core.Up)

	require.NotNil(t, Shoot(w, shooter))
	tickUntil(t, w, 60, func() bool { return liveBullets(w) == 0 })

	assert.True(t, target.Paralyzed(w.TickCount))
	assert.Equal(t, core.TankActive, target.State)
	assert.Equal(t, 3, w.Player(1).Lives)
	assert.Zero(t, shooter.BulletsInFlight)
}

func TestProjectile_ShieldAbsorbsEnemyFire(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	enemy := activeEnemy(w, 0, 128, 352, core.Right)
	player := activePlayer(t, w, 0, 256, 352, core.Up)
	player.ShieldUntil = 1000

	require.NotNil(t, Shoot(w, enemy))
	tickUntil(t, w, 60, func() bool { return liveBullets(w) == 0 })

	assert.Equal(t, core.TankActive, player.State)
	assert.Equal(t, 3, w.Player(0).Lives)
	assert.Zero(t, enemy.BulletsInFlight)
}

func TestProjectile_EnemyFireKillsPlayer(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	enemy := activeEnemy(w, 0, 128, 352, core.Right)
	player := activePlayer(t, w, 0, 256, 352, core.Up)

	require.NotNil(t, Shoot(w, enemy))
	tickUntil(t, w, 60, func() bool { return liveBullets(w) == 0 })

	assert.Equal(t, core.TankRespawning, player.State)
	assert.Equal(t, 2, w.Player(0).Lives)
}

func TestProjectile_PlayerKillScores(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	player := activePlayer(t, w, 0, 128, 352, core.Right)
	enemy := activeEnemy(w, 0, 256, 352, core.Left)

	require.NotNil(t, Shoot(w, player))
	tickUntil(t, w, 60, func() bool { return liveBullets(w) == 0 })

	assert.True(t, enemy.Removed())
	assert.Equal(t, 100, w.Player(0).Score)
	assert.Equal(t, 19, w.Stage.AliveOrRemaining)
	assert.Zero(t, player.BulletsInFlight)
}

func TestProjectile_ArmorTakesFourHits(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	enemy := activeEnemy(w, 3, 256, 352, core.Left)

	for i := 0; i < 3; i++ {
		assert.False(t, DamageTank(w, enemy, 0))
	}
	assert.Equal(t, 1, enemy.Health)
	assert.True(t, DamageTank(w, enemy, 0))
	assert.Equal(t, 400, w.Player(0).Score)
}

func TestProjectile_EnemyBulletsPassThroughEnemies(t *testing.T) {
	w := newTestWorld(t)
	shooter := activeEnemy(w, 0, 128, 352, core.Right)
	other := activeEnemy(w, 0, 256, 352, core.Up)

	require.NotNil(t, Shoot(w, shooter))
	tickUntil(t, w, 200, func() bool { return liveBullets(w) == 0 })

	assert.Equal(t, core.TankActive, other.State)
	assert.Equal(t, 1, other.Health)
	assert.Zero(t, shooter.BulletsInFlight)
}

func TestProjectile_BulletsAnnihilate(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	player := activePlayer(t, w, 0, 128, 352, core.Right)
	enemy := activeEnemy(w, 0, 512, 352, core.Left)

	require.NotNil(t, Shoot(w, player))
	require.NotNil(t, Shoot(w, enemy))
	tickUntil(t, w, 60, func() bool { return liveBullets(w) == 0 })

	assert.Equal(t, core.TankActive, player.State)
	assert.Equal(t, core.TankActive, enemy.State)
	assert.Zero(t, player.BulletsInFlight)
	assert.Zero(t, enemy.BulletsInFlight)
	assert.Zero(t, w.Player(0).Score)
}

func TestProjectile_BorderConsumesBullet(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 320, 352, core.Up)

	require.NotNil(t, Shoot(w, tk))
	tickUntil(t, w, 100, func() bool { return liveBullets(w) == 0 })

	assert.Zero(t, tk.BulletsInFlight)
	require.NotEmpty(t, w.Explosions)
	assert.False(t, w.Explosions[len(w.Explosions)-1].Large)
}

func TestProjectile_BaseHitEndsGame(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	enemy := activeEnemy(w, 0, 448, 600, core.Down)
	activePlayer(t, w, 0, 128, 352, core.Up)

	require.NotNil(t, Shoot(w, enemy))
	tickUntil(t, w, 100, func() bool { return !w.Base.Alive })
	w.Tick()
	assert.Equal(t, core.PhaseGameOverPending, w.Stage.Phase)

	tickN(w, w.Rules.GameOverTicks+1)
	assert.Equal(t, core.PhaseGameOver, w.Stage.Phase)
	assert.True(t, w.Player(0).GameOver)
}

func TestProjectile_TankBeforeTerrainSingleOutcome(t *testing.T) {
	w := newTestWorld(t, withPlayers(1))
	tk := activePlayer(t, w, 0, 128, 352, core.Up)
	armor := activeEnemy(w, 3, 128, 160, core.Up)
	require.Equal(t, 4, armor.Health)
	left := tileAt(w, core.TileBrick, 2, 5)
	right := tileAt(w, core.TileBrick, 3, 5)
	require.True(t, armor.Rect.Overlaps(left.Rect))

	require.NotNil(t, Shoot(w, tk))
	tickUntil(t, w, 100, func() bool { return liveBullets(w) == 0 })

	assert.Equal(t, 3, armor.Health)
	assert.Equal(t, core.TankActive, armor.State)
	assert.Equal(t, 2, left.Health)
	assert.Equal(t, 2, right.Health)
	assert.False(t, left.Dead())
	assert.Zero(t, tk.BulletsInFlight)
}
