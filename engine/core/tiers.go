package core

import "math"

// Level ranges. Player levels come first, enemy classes follow.
const (
	MaxPlayerLevel  = 3
	FirstEnemyLevel = 4
	LastEnemyLevel  = 7
	NumEnemyClasses = LastEnemyLevel - FirstEnemyLevel + 1
)

// TierStats is the stat block for one level
type TierStats struct {
	Name        string
	SpeedMul    float64 // relative to Rules.BaseTankSpeed
	Power       int
	BulletLimit int
	BulletMul   float64 // relative to Rules.BaseBulletSpeed
	Health      int
	Score       int
}

var tiers = [LastEnemyLevel + 1]TierStats{
	{Name: "player-0", SpeedMul: 1, Power: 1, BulletLimit: 1, BulletMul: 1, Health: 1},
	{Name: "player-1", SpeedMul: 1, Power: 2, BulletLimit: 1, BulletMul: 1.5, Health: 1},
	{Name: "player-2", SpeedMul: 1, Power: 2, BulletLimit: 2, BulletMul: 1.5, Health: 1},
	{Name: "player-3", SpeedMul: 1, Power: 3, BulletLimit: 2, BulletMul: 1.5, Health: 1},
	{Name: "basic", SpeedMul: 0.5, Power: 1, BulletLimit: 1, BulletMul: 1, Health: 1, Score: 100},
	{Name: "fast", SpeedMul: 1.5, Power: 1, BulletLimit: 1, BulletMul: 1, Health: 1, Score: 200},
	{Name: "power", SpeedMul: 1, Power: 2, BulletLimit: 1, BulletMul: 1.5, Health: 1, Score: 300},
	{Name: "armor", SpeedMul: 1, Power: 1, BulletLimit: 1, BulletMul: 1, Health: 4, Score: 400},
}

// TierFor returns the stats for level, clamped into the table
func TierFor(level int) TierStats {
	return tiers[clampLevel(level)]
}

// EnemyLevel maps an enemy class (0 basic .. 3 armor) to its level
func EnemyLevel(class int) int {
	return FirstEnemyLevel + min(max(class, 0), NumEnemyClasses-1)
}

// EnemyClass is the inverse of EnemyLevel
func EnemyClass(level int) int {
	return clampLevel(level) - FirstEnemyLevel
}

func clampLevel(level int) int {
	return min(max(level, 0), LastEnemyLevel)
}

// TankSpeed is the per-tick pixel speed of level under r
func (r Rules) TankSpeed(level int) int {
	return max(1, int(math.Round(float64(r.BaseTankSpeed)*TierFor(level).SpeedMul)))
}

// BulletSpeed is the per-tick pixel speed of a bullet fired at level with
// a percent modifier
func (r Rules) BulletSpeed(level, modPercent int) int {
	v := float64(r.BaseBulletSpeed) * TierFor(level).BulletMul * float64(modPercent) / 100
	return max(1, int(math.Round(v)))
}
