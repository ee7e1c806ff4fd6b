package core

// Sound names a sound effect cue
type Sound string

const (
	SoundFire          Sound = "fire"
	SoundBrick         Sound = "brick"
	SoundSteel         Sound = "steel"
	SoundExplosion     Sound = "explosion"
	SoundPowerUpAppear Sound = "powerup_appear"
	SoundPowerUpPick   Sound = "powerup_pick"
	SoundLifeUp        Sound = "life_up"
	SoundBaseDestroyed Sound = "base_destroyed"
	SoundStageStart    Sound = "stage_start"
	SoundGameOver      Sound = "game_over"
)

// Event represents a game event
type Event struct {
	Type   EventType
	Tick   uint64
	Entity EntityID
	Slot   int // player slot involved, -1 if none
	Level  int
	Kind   PowerUpKind
	Points int
	Sound  Sound
}

type EventType uint16

const (
	EvtTankSpawned EventType = iota
	EvtTankActivated
	EvtTankHit
	EvtTankDestroyed
	EvtPlayerKilled
	EvtBulletFired
	EvtBulletImpact
	EvtTileDestroyed
	EvtBaseDestroyed
	EvtPowerUpSpawned
	EvtPowerUpCollected
	EvtFortifyStart
	EvtFortifyEnd
	EvtStageStart
	EvtStageComplete
	EvtGameOver
	EvtSound
)

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// OnAll registers h for every event type
func (eb *EventBus) OnAll(h EventHandler) {
	for t := EvtTankSpawned; t <= EvtSound; t++ {
		eb.On(t, h)
	}
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events. Handlers may emit; those events
// are delivered on the next dispatch.
func (eb *EventBus) Dispatch() {
	queue := eb.queue
	eb.queue = nil
	for _, e := range queue {
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
}
