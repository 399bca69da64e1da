package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
)

// edge is the attack and release length of every tone.
const edge = 10 * time.Millisecond

// tone is a fixed-length oscillator with a linear attack and release.
type tone struct {
	sr       beep.SampleRate
	from, to float64 // frequency sweeps linearly from one to the other
	wave     wave
	phase    float64
	pos      int
	total    int
	edge     int
}

func newTone(sr beep.SampleRate, freq float64, d time.Duration, w wave) *tone {
	return &tone{sr: sr, from: freq, to: freq, wave: w, total: sr.N(d), edge: sr.N(edge)}
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration) *tone {
	return &tone{sr: sr, from: from, to: to, wave: waveSine, total: sr.N(d), edge: sr.N(edge)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case waveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= t.envelope()

		samples[i][0] = v
		samples[i][1] = v

		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.sr)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) envelope() float64 {
	if t.edge <= 0 {
		return 1
	}
	if t.pos < t.edge {
		return float64(t.pos) / float64(t.edge)
	}
	if left := t.total - t.pos; left < t.edge {
		return float64(left) / float64(t.edge)
	}
	return 1
}

// newVolume scales a stream linearly. Zero volume is silent since
// effects.Volume works in log2 steps.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
