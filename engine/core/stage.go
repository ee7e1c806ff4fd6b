package core

// StagePhase is where a stage is in its run
type StagePhase uint8

const (
	PhaseRunning StagePhase = iota
	PhaseCompleting
	PhaseComplete
	PhaseGameOverPending
	PhaseGameOver
)

var phaseNames = [...]string{"running", "completing", "complete", "game_over_pending", "game_over"}

func (p StagePhase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// StageState holds the enemy budget and phase of the current stage
type StageState struct {
	Number           int
	EnemyCount       int
	RemainingToSpawn int
	AliveOrRemaining int
	Phase            StagePhase
	PhaseAt          uint64 // tick at which a pending phase resolves
	StartedAt        uint64
}

// Over reports whether the stage has finished either way
func (s StageState) Over() bool {
	return s.Phase == PhaseComplete || s.Phase == PhaseGameOver
}

// FortifyState tracks the steel ring around the base
type FortifyState struct {
	Active bool
	Until  uint64
}

// StageResult is the end-of-stage report
type StageResult struct {
	Stage    int
	Ticks    uint64
	Phase    StagePhase
	BaseLost bool
	Players  []PlayerResult
}
