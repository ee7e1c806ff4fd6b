// Package telemetry exports gameplay counters through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

const instrumentationName = "github.com/frgonzalezb/Udemy-Battle-City/engine/telemetry"

// Totals is a local tally of everything counted, for summaries
type Totals struct {
	TanksDestroyed    int64
	BulletsFired      int64
	PowerUpsCollected int64
	TilesDestroyed    int64
	StagesCompleted   int64
	GameOvers         int64
}

// Metrics counts simulation events
type Metrics struct {
	destroyed metric.Int64Counter
	fired     metric.Int64Counter
	collected metric.Int64Counter
	tiles     metric.Int64Counter
	stages    metric.Int64Counter
	gameOvers metric.Int64Counter

	mu     sync.Mutex
	totals Totals
}

// New creates the counters on m. A nil meter uses the global provider.
func New(m metric.Meter) (*Metrics, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}
	var (
		mt  Metrics
		err error
	)
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&mt.destroyed, "battlecity.tanks.destroyed", "Tanks destroyed, by tier and killer"},
		{&mt.fired, "battlecity.bullets.fired", "Bullets fired, by side"},
		{&mt.collected, "battlecity.powerups.collected", "Power-ups collected, by kind"},
		{&mt.tiles, "battlecity.tiles.destroyed", "Brick tiles fully destroyed"},
		{&mt.stages, "battlecity.stages.completed", "Stages cleared"},
		{&mt.gameOvers, "battlecity.game_overs", "Games lost"},
	}
	for _, c := range counters {
		*c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("create %s counter: %w", c.name, err)
		}
	}
	return &mt, nil
}

// Attach counts every relevant event dispatched on bus
func (m *Metrics) Attach(bus *core.EventBus) {
	ctx := context.Background()

	bus.On(core.EvtTankDestroyed, func(e core.Event) {
		m.destroyed.Add(ctx, 1, metric.WithAttributes(
			attribute.String("tier", core.TierFor(e.Level).Name),
			attribute.String("killer", side(e.Slot)),
		))
		m.tally(func(t *Totals) { t.TanksDestroyed++ })
	})
	bus.On(core.EvtBulletFired, func(e core.Event) {
		m.fired.Add(ctx, 1, metric.WithAttributes(attribute.String("side", side(e.Slot))))
		m.tally(func(t *Totals) { t.BulletsFired++ })
	})
	bus.On(core.EvtPowerUpCollected, func(e core.Event) {
		m.collected.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", e.Kind.String())))
		m.tally(func(t *Totals) { t.PowerUpsCollected++ })
	})
	bus.On(core.EvtTileDestroyed, func(core.Event) {
		m.tiles.Add(ctx, 1)
		m.tally(func(t *Totals) { t.TilesDestroyed++ })
	})
	bus.On(core.EvtStageComplete, func(e core.Event) {
		m.stages.Add(ctx, 1, metric.WithAttributes(attribute.Int("stage", e.Level)))
		m.tally(func(t *Totals) { t.StagesCompleted++ })
	})
	bus.On(core.EvtGameOver, func(e core.Event) {
		m.gameOvers.Add(ctx, 1, metric.WithAttributes(attribute.Int("stage", e.Level)))
		m.tally(func(t *Totals) { t.GameOvers++ })
	})
}

// Totals returns a snapshot of the local tally
func (m *Metrics) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}

func (m *Metrics) tally(fn func(*Totals)) {
	m.mu.Lock()
	fn(&m.totals)
	m.mu.Unlock()
}

func side(slot int) string {
	if slot < 0 {
		return "enemy"
	}
	return fmt.Sprintf("player%d", slot+1)
}
