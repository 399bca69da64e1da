package audio

import (
	"testing"
	"time"
)

func drain(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

func TestToneLengthAndRange(t *testing.T) {
	tests := []struct {
		name string
		w    wave
	}{
		{"sine", waveSine},
		{"square", waveSquare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := 50 * time.Millisecond
			samples := drain(t, newTone(sampleRate, 440, d, tt.w))
			if len(samples) != sampleRate.N(d) {
				t.Errorf("streamed %d samples, want %d", len(samples), sampleRate.N(d))
			}
			for i, s := range samples {
				if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
					t.Fatalf("sample %d = %v, want mono in [-1, 1]", i, s)
				}
			}
		})
	}
}

func TestToneEnvelope(t *testing.T) {
	samples := drain(t, newTone(sampleRate, 440, 100*time.Millisecond, waveSquare))
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want silence at attack start", samples[0][0])
	}
	mid := samples[len(samples)/2][0]
	if mid != 1 && mid != -1 {
		t.Errorf("sustain sample = %v, want full amplitude", mid)
	}
	last := samples[len(samples)-1][0]
	if last > 0.01 || last < -0.01 {
		t.Errorf("last sample = %v, want near silence", last)
	}
}

func TestExhaustedToneReportsDone(t *testing.T) {
	tn := newTone(sampleRate, 440, time.Millisecond, waveSine)
	drain(t, tn)
	n, ok := tn.Stream(make([][2]float64, 8))
	if n != 0 || ok {
		t.Errorf("Stream() after end = %d, %v, want 0, false", n, ok)
	}
	if tn.Err() != nil {
		t.Errorf("Err() = %v", tn.Err())
	}
}

func TestClearPitch(t *testing.T) {
	tests := []struct {
		size int
		want float64
	}{
		{0, 440},
		{2, 440},
		{14, 880},
		{26, 1760},
		{100, 1760},
	}
	for _, tt := range tests {
		got := clearPitch(tt.size)
		if got < tt.want-0.001 || got > tt.want+0.001 {
			t.Errorf("clearPitch(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
	for size := 3; size < 30; size++ {
		if clearPitch(size) < clearPitch(size-1) {
			t.Errorf("clearPitch(%d) < clearPitch(%d)", size, size-1)
		}
	}
}

func TestSilentVolume(t *testing.T) {
	samples := drain(t, newVolume(newTone(sampleRate, 440, 20*time.Millisecond, waveSquare), 0))
	for i, s := range samples {
		if s[0] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, s[0])
		}
	}
}

func TestUninitializedPlayerDropsCues(t *testing.T) {
	p := NewPlayer(1)
	p.Cleared(5)
	p.Rejected()
	p.Recreated()
	p.Close()
	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers, want 0", p.mixer.Len())
	}
}
