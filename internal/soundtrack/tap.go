package soundtrack

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// tap wraps a beep.Streamer and records the last N samples into a ring buffer
// so the HUD can show a level for what is playing.
type tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func newTap(src beep.Streamer, ringSize int) *tap {
	return &tap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.filled = min(t.filled+n, len(t.buffer))
		t.mu.Unlock()
	}
	return n, ok
}

func (t *tap) Err() error { return t.Source.Err() }

// snapshot returns up to the last n recorded samples, oldest first.
func (t *tap) snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, t.filled)
	out := make([][2]float64, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// rms is the compressed loudness of a window of stereo samples, in [0, 1]
// for normal material.
func rms(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	return math.Pow(math.Sqrt(sumSquares/float64(len(samples))), 0.3)
}
