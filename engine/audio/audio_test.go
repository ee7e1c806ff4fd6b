package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestAudioManager_DropsCuesWithoutOutput(t *testing.T) {
	am := NewAudioManager()
	assert.False(t, am.Play(core.SoundFire))
	am.Cleanup()
}

func TestAudioManager_PlaysEveryCue(t *testing.T) {
	am := NewAudioManager()
	var got []beep.Streamer
	am.SetOutput(func(s beep.Streamer) { got = append(got, s) })

	for s, cue := range Cues {
		t.Run(string(s), func(t *testing.T) {
			got = nil
			require.True(t, am.Play(s))
			require.Len(t, got, 1)
			assert.Equal(t, sampleRate.N(cue.Dur), drain(got[0]))
		})
	}
}

func TestAudioManager_MutedAndUnknown(t *testing.T) {
	am := NewAudioManager()
	calls := 0
	am.SetOutput(func(beep.Streamer) { calls++ })

	assert.False(t, am.Play(core.Sound("nope")))
	am.Muted = true
	assert.False(t, am.Play(core.SoundFire))
	assert.Zero(t, calls)
}

func TestAudioManager_AttachFollowsBus(t *testing.T) {
	am := NewAudioManager()
	calls := 0
	am.SetOutput(func(beep.Streamer) { calls++ })

	w := core.NewWorld(core.DefaultRules(), 1)
	am.Attach(w.Bus)
	w.PlaySound(core.SoundExplosion)
	w.PlaySound(core.SoundBrick)
	w.Emit(core.Event{Type: core.EvtStageStart})
	assert.Zero(t, calls, "nothing before dispatch")

	w.Bus.Dispatch()
	assert.Equal(t, 2, calls)
}

func TestAudioManager_SetVolumeClamps(t *testing.T) {
	am := NewAudioManager()
	am.SetVolume(3)
	assert.Equal(t, 1.0, am.MasterVolume)
	am.SetVolume(-1)
	assert.Equal(t, 0.0, am.MasterVolume)
}
