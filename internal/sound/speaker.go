package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SpeakerOutput mixes cues into the system audio device.
type SpeakerOutput struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// OpenSpeaker initializes the audio device and starts an empty mixer on it.
// The speaker can only be opened once per process.
func OpenSpeaker() (*SpeakerOutput, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("sound: init speaker: %w", err)
	}
	o := &SpeakerOutput{mixer: &beep.Mixer{}}
	speaker.Play(o.mixer)
	return o, nil
}

// Play adds s to the running mix.
func (o *SpeakerOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Close silences every cue and releases the device.
func (o *SpeakerOutput) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
