// Package sound turns simulation event tags into short synthesized cues
// played through beep.
package sound

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/tomz197/glasteroids/internal/event"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(48000)

// Output plays finished streamers. A nil Output makes the jukebox silent.
type Output interface {
	Play(s beep.Streamer)
}

// note is one segment of a cue.
type note struct {
	freq    float64
	slide   float64
	wave    Wave
	dur     time.Duration
	attack  time.Duration
	release time.Duration
}

// cue is the sequence of notes played for one tag, at a relative gain
// expressed in base-2 steps.
type cue struct {
	notes []note
	gain  float64
}

var cues = map[event.Tag]cue{
	event.Boost: {
		notes: []note{{freq: 90, wave: WaveNoise, dur: 40 * time.Millisecond, attack: 5 * time.Millisecond, release: 20 * time.Millisecond}},
		gain:  -3,
	},
	event.Damage: {
		notes: []note{{freq: 180, slide: -140, wave: WaveSquare, dur: 300 * time.Millisecond, attack: 5 * time.Millisecond, release: 200 * time.Millisecond}},
		gain:  -1,
	},
	event.Fire: {
		notes: []note{{freq: 1200, slide: -700, wave: WaveSquare, dur: 70 * time.Millisecond, attack: 2 * time.Millisecond, release: 40 * time.Millisecond}},
		gain:  -2.5,
	},
	event.LevelGoal: {
		notes: []note{
			{freq: 523.25, wave: WaveSine, dur: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond},
			{freq: 659.25, wave: WaveSine, dur: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond},
			{freq: 783.99, wave: WaveSine, dur: 240 * time.Millisecond, attack: 5 * time.Millisecond, release: 150 * time.Millisecond},
		},
	},
	event.LevelStart: {
		notes: []note{
			{freq: 440, wave: WaveSine, dur: 100 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond},
			{freq: 660, wave: WaveSine, dur: 160 * time.Millisecond, attack: 5 * time.Millisecond, release: 100 * time.Millisecond},
		},
		gain: -0.5,
	},
	event.Hit: {
		notes: []note{{freq: 300, wave: WaveNoise, dur: 150 * time.Millisecond, attack: 2 * time.Millisecond, release: 120 * time.Millisecond}},
		gain:  -1.5,
	},
}

// Duration returns how long the cue for tag plays, or zero for tags
// without a cue.
func Duration(tag event.Tag) time.Duration {
	var d time.Duration
	for _, n := range cues[tag].notes {
		d += n.dur
	}
	return d
}

// Jukebox is an event.Sink that plays one cue per flushed tag.
type Jukebox struct {
	mu      sync.Mutex
	out     Output
	enabled bool
	volume  float64
	logger  *log.Logger
}

// NewJukebox creates an enabled jukebox at the given master volume
// (base-2 gain, 0 is unchanged).
func NewJukebox(out Output, volume float64, logger *log.Logger) *Jukebox {
	if logger == nil {
		logger = log.Default()
	}
	return &Jukebox{
		out:     out,
		enabled: true,
		volume:  volume,
		logger:  logger,
	}
}

// Configure updates the enabled flag and master volume, typically after a
// settings reload.
func (j *Jukebox) Configure(enabled bool, volume float64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.enabled = enabled
	j.volume = volume
}

// Enabled reports whether cues are currently played.
func (j *Jukebox) Enabled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enabled && j.out != nil
}

// Play sounds the cue for tag. Unknown tags are ignored.
func (j *Jukebox) Play(tag event.Tag) {
	if j == nil {
		return
	}
	j.mu.Lock()
	out, enabled, volume := j.out, j.enabled, j.volume
	j.mu.Unlock()

	if out == nil || !enabled {
		return
	}
	s := Streamer(tag, volume)
	if s == nil {
		j.logger.Debug("no cue for event", "tag", tag)
		return
	}
	out.Play(s)
}

// Streamer builds a fresh, finite streamer for the cue of tag at the given
// master volume. It returns nil for tags without a cue.
func Streamer(tag event.Tag, volume float64) beep.Streamer {
	c, ok := cues[tag]
	if !ok || len(c.notes) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(c.notes))
	for _, n := range c.notes {
		osc := newTone(n.freq, n.slide, n.wave, n.dur, SampleRate)
		parts = append(parts, newEnvelope(osc, n.dur, n.attack, n.release, SampleRate))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volume + c.gain,
	}
}

var _ event.Sink = (*Jukebox)(nil)
