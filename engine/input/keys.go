package input

import (
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// Keys is a snapshot of one player's buttons
type Keys uint8

const (
	KeyUp Keys = 1 << iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
)

// Has reports whether every key in k2 is held
func (k Keys) Has(k2 Keys) bool { return k&k2 == k2 }

// movePriority is the order in which held direction keys are honoured.
// Diagonals are impossible: the first held key wins.
var movePriority = [...]struct {
	key Keys
	dir core.Direction
}{
	{KeyUp, core.Up},
	{KeyDown, core.Down},
	{KeyLeft, core.Left},
	{KeyRight, core.Right},
}

// Controller turns per-tick key snapshots into tank intents
type Controller struct {
	prevFire bool
}

// Intent maps k to at most one movement direction plus a fire request that
// triggers only on the tick the fire key goes down
func (c *Controller) Intent(k Keys) core.Intent {
	var in core.Intent
	for _, m := range movePriority {
		if k.Has(m.key) {
			in.Moving = true
			in.Move = m.dir
			break
		}
	}
	fire := k.Has(KeyFire)
	in.Fire = fire && !c.prevFire
	c.prevFire = fire
	return in
}

// KeysFor returns the buttons that request in from a released controller
func KeysFor(in core.Intent) Keys {
	var k Keys
	if in.Moving {
		for _, m := range movePriority {
			if m.dir == in.Move {
				k |= m.key
				break
			}
		}
	}
	if in.Fire {
		k |= KeyFire
	}
	return k
}

// Reset forgets the held fire key
func (c *Controller) Reset() { c.prevFire = false }

// Latch holds keys down for a number of ticks after each press. Terminals
// report presses and repeats but never releases.
type Latch struct {
	Hold  uint64
	until [8]uint64
}

// Press marks every key in k as held until now+Hold
func (l *Latch) Press(k Keys, now uint64) {
	for i := range l.until {
		if k&(1<<i) != 0 {
			l.until[i] = now + l.Hold
		}
	}
}

// Release drops every key in k at once
func (l *Latch) Release(k Keys) {
	for i := range l.until {
		if k&(1<<i) != 0 {
			l.until[i] = 0
		}
	}
}

// Keys returns the keys still held at now
func (l *Latch) Keys(now uint64) Keys {
	var k Keys
	for i, u := range l.until {
		if now < u {
			k |= 1 << i
		}
	}
	return k
}
