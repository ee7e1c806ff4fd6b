package replay

import (
	"fmt"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/input"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/session"
)

// KeySource returns every slot's keys for tick
type KeySource func(tick uint64) []input.Keys

// Run steps s for up to n ticks with keys from src, feeding them through
// one controller per slot. Cleared stages are followed by the next one and
// the run stops at game over. rec, when set, receives every snapshot.
// It returns the results of the stages that finished.
func Run(s *session.Session, n int, src KeySource, rec *Recorder) ([]core.StageResult, error) {
	w := s.World
	ctrls := make([]input.Controller, len(w.Players))
	intents := make([]core.Intent, len(ctrls))
	var results []core.StageResult

	for i := 0; i < n; i++ {
		keys := src(w.TickCount)
		if rec != nil {
			if err := rec.Record(w.TickCount, keys); err != nil {
				return results, fmt.Errorf("record tick %d: %w", w.TickCount, err)
			}
		}
		for slot := range ctrls {
			var k input.Keys
			if slot < len(keys) {
				k = keys[slot]
			}
			intents[slot] = ctrls[slot].Intent(k)
		}
		s.Step(intents)

		if !s.Over() {
			continue
		}
		results = append(results, s.Result())
		if s.GameOver() {
			break
		}
		if err := s.NextStage(); err != nil {
			return results, err
		}
		for slot := range ctrls {
			ctrls[slot].Reset()
		}
	}
	return results, nil
}
