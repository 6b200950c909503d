package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// Wave selects the oscillator shape of a tone.
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// tone is a finite oscillator whose frequency slides linearly from freq
// to freq+slide over its duration.
type tone struct {
	freq  float64
	slide float64
	wave  Wave
	rate  float64
	total int
	pos   int
	phase float64
	noise *rand.Rand
}

func newTone(freq, slide float64, wave Wave, d time.Duration, rate beep.SampleRate) *tone {
	return &tone{
		freq:  freq,
		slide: slide,
		wave:  wave,
		rate:  float64(rate),
		total: rate.N(d),
		noise: rand.New(rand.NewPCG(uint64(freq), uint64(d))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		progress := float64(t.pos) / float64(t.total)
		var v float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveNoise:
			v = t.noise.Float64()*2 - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		samples[i][0], samples[i][1] = v, v

		t.phase += (t.freq + t.slide*progress) / t.rate
		t.phase -= math.Floor(t.phase)
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error {
	return nil
}

// envelope applies a linear attack and release to a finite streamer.
type envelope struct {
	s       beep.Streamer
	total   int
	attack  int
	release int
	pos     int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		s:       s,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		switch {
		case e.attack > 0 && e.pos < e.attack:
			gain = float64(e.pos) / float64(e.attack)
		case e.release > 0 && e.pos >= e.total-e.release:
			gain = float64(e.total-e.pos) / float64(e.release)
		}
		gain = max(gain, 0)
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error {
	return e.s.Err()
}
