package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a finite oscillator whose pitch glides linearly from freq to end
type tone struct {
	freq, end float64
	phase     float64
	pos, n    int
	wave      Wave
	rate      beep.SampleRate
}

// Tone creates a streamer of the given length. end equal to freq holds the
// pitch; anything else sweeps to it.
func Tone(wave Wave, freq, end float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, end: end, n: rate.N(d), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.n {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		f := t.freq + (t.end-t.freq)*float64(t.pos)/float64(t.n)
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope ramps a finite streamer in over attack and out over its last
// release samples
type envelope struct {
	s               beep.Streamer
	pos, n          int
	attack, release int
}

// Envelope shapes s, which must run for exactly d
func Envelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, n: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.pos < e.attack:
			vol = float64(e.pos) / float64(e.attack)
		case e.pos >= e.n-e.release && e.release > 0:
			vol = float64(e.n-e.pos) / float64(e.release)
		}
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// volume scales s linearly; zero or less is silent
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// note is one step of a melody; a zero freq is a rest
type note struct {
	freq float64
	d    time.Duration
}

// melody plays notes back to back with short attack and release
func melody(wave Wave, gain float64, rate beep.SampleRate, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		if n.freq == 0 {
			parts[i] = beep.Silence(rate.N(n.d))
			continue
		}
		osc := Tone(wave, n.freq, n.freq, n.d, rate)
		parts[i] = Envelope(osc, n.d, 5*time.Millisecond, n.d/3, rate)
	}
	return volume(beep.Seq(parts...), gain)
}
