package render

import (
	"fmt"
	"strings"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// HUDLines lists the stage, the enemies still to come and each player's
// lives and score
func HUDLines(w *core.World) []string {
	lines := []string{
		fmt.Sprintf("STAGE %d", w.Stage.Number),
		fmt.Sprintf("ENEMY %d", w.Stage.RemainingToSpawn),
	}
	for _, p := range w.Players {
		lives := max(p.Lives-1, 0)
		if p.GameOver {
			lines = append(lines, fmt.Sprintf("%dP  OUT    %6d", p.Slot+1, p.Score))
			continue
		}
		lines = append(lines, fmt.Sprintf("%dP  x%-2d    %6d", p.Slot+1, lives, p.Score))
	}
	switch w.Stage.Phase {
	case core.PhaseGameOverPending, core.PhaseGameOver:
		lines = append(lines, "GAME OVER")
	case core.PhaseCompleting, core.PhaseComplete:
		lines = append(lines, "STAGE CLEAR")
	}
	return lines
}

var classNames = [core.NumEnemyClasses]string{"BASIC", "FAST", "POWER", "ARMOR"}

// Summary formats a stage result as plain text
func Summary(res core.StageResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "STAGE %d  %s  %d ticks\n", res.Stage, res.Phase, res.Ticks)
	if res.BaseLost {
		b.WriteString("base destroyed\n")
	}
	for _, p := range res.Players {
		fmt.Fprintf(&b, "%dP\n", p.Slot+1)
		for c, name := range classNames {
			fmt.Fprintf(&b, "  %-5s %2d x %3d = %5d\n", name, p.KillsByClass[c], core.TierFor(core.EnemyLevel(c)).Score, p.PointsByClass[c])
		}
		fmt.Fprintf(&b, "  TOTAL %2d\n", p.TotalKills)
		if p.Bonus > 0 {
			fmt.Fprintf(&b, "  BONUS %5d\n", p.Bonus)
		}
		fmt.Fprintf(&b, "  STAGE %5d  SCORE %6d\n", p.StagePoints, p.Score)
	}
	return b.String()
}
