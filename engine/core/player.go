package core

// Kill is one enemy destroyed by a player
type Kill struct {
	Level  int
	Points int
}

// PlayerState is the per-slot record that outlives a stage
type PlayerState struct {
	Slot     int
	Lives    int // includes the life in play
	Level    int
	Score    int
	Bonus    int
	Kills    []Kill
	Dead     bool // waiting to respawn
	GameOver bool
	TankID   EntityID
}

// NewPlayerState returns a fresh slot record
func NewPlayerState(slot, lives int) *PlayerState {
	return &PlayerState{Slot: slot, Lives: lives}
}

// Credit records a kill and adds its points
func (p *PlayerState) Credit(level int) int {
	pts := TierFor(level).Score
	p.Kills = append(p.Kills, Kill{Level: level, Points: pts})
	p.Score += pts
	return pts
}

// Award adds bonus points from a power-up
func (p *PlayerState) Award(points int) {
	p.Bonus += points
	p.Score += points
}

// ResetStage clears the per-stage tallies
func (p *PlayerState) ResetStage() {
	p.Kills = nil
	p.Bonus = 0
	p.Dead = false
}

// PlayerResult is the end-of-stage tally for one player
type PlayerResult struct {
	Slot          int
	KillsByClass  [NumEnemyClasses]int
	PointsByClass [NumEnemyClasses]int
	TotalKills    int
	Bonus         int
	StagePoints   int
	Score         int
}

// Result aggregates this stage's kill list
func (p *PlayerState) Result() PlayerResult {
	r := PlayerResult{Slot: p.Slot, Bonus: p.Bonus, Score: p.Score}
	for _, k := range p.Kills {
		c := EnemyClass(k.Level)
		if c < 0 {
			continue
		}
		r.KillsByClass[c]++
		r.PointsByClass[c] += k.Points
		r.TotalKills++
		r.StagePoints += k.Points
	}
	r.StagePoints += p.Bonus
	return r
}
