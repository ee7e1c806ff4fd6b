package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

const sampleRate = beep.SampleRate(44100)

// Cue describes a synthesized sound effect
type Cue struct {
	Freq  float64 // Hz; 0 plays noise
	Dur   time.Duration
	Level float64
}

// Cues maps every simulation sound to its effect
var Cues = map[core.Sound]Cue{
	core.SoundFire:          {Freq: 660, Dur: 40 * time.Millisecond, Level: 0.5},
	core.SoundBrick:         {Freq: 0, Dur: 80 * time.Millisecond, Level: 0.4},
	core.SoundSteel:         {Freq: 1320, Dur: 60 * time.Millisecond, Level: 0.4},
	core.SoundExplosion:     {Freq: 0, Dur: 300 * time.Millisecond, Level: 0.8},
	core.SoundPowerUpAppear: {Freq: 880, Dur: 120 * time.Millisecond, Level: 0.5},
	core.SoundPowerUpPick:   {Freq: 1040, Dur: 150 * time.Millisecond, Level: 0.6},
	core.SoundLifeUp:        {Freq: 1560, Dur: 250 * time.Millisecond, Level: 0.6},
	core.SoundBaseDestroyed: {Freq: 0, Dur: 800 * time.Millisecond, Level: 1},
	core.SoundStageStart:    {Freq: 440, Dur: 400 * time.Millisecond, Level: 0.5},
	core.SoundGameOver:      {Freq: 220, Dur: time.Second, Level: 0.6},
}

// AudioManager plays sound cues raised by the simulation
type AudioManager struct {
	MasterVolume float64
	SFXVolume    float64
	Muted        bool

	mu          sync.Mutex
	mixer       *beep.Mixer
	play        func(beep.Streamer)
	initialized bool
}

func NewAudioManager() *AudioManager {
	return &AudioManager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
		mixer:        &beep.Mixer{},
	}
}

// Initialize opens the output device. Without it cues are dropped.
func (am *AudioManager) Initialize() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	if am.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(am.mixer)
	am.play = func(s beep.Streamer) {
		speaker.Lock()
		am.mixer.Add(s)
		speaker.Unlock()
	}
	am.initialized = true
	return nil
}

// SetOutput routes cues to fn instead of the speaker
func (am *AudioManager) SetOutput(fn func(beep.Streamer)) {
	am.mu.Lock()
	am.play = fn
	am.mu.Unlock()
}

// Cleanup silences everything still playing
func (am *AudioManager) Cleanup() {
	am.mu.Lock()
	defer am.mu.Unlock()
	if !am.initialized {
		return
	}
	speaker.Lock()
	am.mixer.Clear()
	speaker.Unlock()
	am.play = nil
	am.initialized = false
}

// Attach plays every sound event dispatched on bus
func (am *AudioManager) Attach(bus *core.EventBus) {
	bus.On(core.EvtSound, func(e core.Event) {
		am.Play(e.Sound)
	})
}

// Play starts the cue for s. It reports whether anything was queued.
func (am *AudioManager) Play(s core.Sound) bool {
	am.mu.Lock()
	defer am.mu.Unlock()
	if am.play == nil || am.Muted {
		return false
	}
	cue, ok := Cues[s]
	if !ok {
		return false
	}
	st := am.streamer(cue)
	if st == nil {
		return false
	}
	am.play(st)
	return true
}

func (am *AudioManager) streamer(c Cue) beep.Streamer {
	var src beep.Streamer
	if c.Freq > 0 {
		tone, err := generators.SineTone(sampleRate, c.Freq)
		if err != nil {
			return nil
		}
		src = tone
	} else {
		src = &noise{sr: sampleRate, seed: 1}
	}
	vol := c.Level * am.SFXVolume * am.MasterVolume
	return beep.Take(sampleRate.N(c.Dur), &effects.Volume{
		Streamer: src,
		Base:     2,
		Volume:   math.Log2(math.Max(vol, 1e-6)),
		Silent:   vol <= 0,
	})
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	am.mu.Lock()
	am.MasterVolume = math.Min(math.Max(v, 0), 1)
	am.mu.Unlock()
}

// noise is a decaying white-noise burst for impacts and explosions
type noise struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

func (g *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		v := (float64(g.seed)/float64(0x7fffffff)*2 - 1) * math.Exp(-t*6)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }
