package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
}

func newOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.position >= releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// eatChime is a short rising two-note sine.
func eatChime(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(beep.Seq(
		tone(1046.5, 60*time.Millisecond, WaveSine, rate),
		tone(1568.0, 90*time.Millisecond, WaveSine, rate),
	), vol)
}

// crashBuzz is a low square wave.
func crashBuzz(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(tone(110, 350*time.Millisecond, WaveSquare, rate), vol*0.5)
}
