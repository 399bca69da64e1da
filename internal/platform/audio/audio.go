// Package audio plays short synthesized cues for board events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue lengths.
const (
	clearDuration    = 180 * time.Millisecond
	rejectDuration   = 90 * time.Millisecond
	recreateDuration = 450 * time.Millisecond
)

// Player mixes cues into the speaker. Every method is safe to call before
// Initialize or after Close; cues are then dropped.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player with master volume in [0, 1].
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences every pending cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Cleared plays a rising two-note chime, higher for bigger groups.
func (p *Player) Cleared(size int) {
	base := clearPitch(size)
	p.play(beep.Mix(
		newVolume(newTone(sampleRate, base, clearDuration, waveSine), 0.7),
		newVolume(newTone(sampleRate, base*1.5, clearDuration, waveSine), 0.3),
	))
}

// Rejected plays a short low buzz.
func (p *Player) Rejected() {
	p.play(newTone(sampleRate, 110, rejectDuration, waveSquare))
}

// Recreated plays a falling sweep while the board is replaced.
func (p *Player) Recreated() {
	p.play(newSweep(sampleRate, 660, 220, recreateDuration))
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(newVolume(s, p.volume*0.5))
	speaker.Unlock()
}

// clearPitch maps a group size to a frequency: a semitone per extra tile
// above a pair, capped at two octaves.
func clearPitch(size int) float64 {
	steps := size - 2
	if steps < 0 {
		steps = 0
	}
	if steps > 24 {
		steps = 24
	}
	return 440 * math.Pow(2, float64(steps)/12)
}
