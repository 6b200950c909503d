// Package input turns raw terminal bytes into ship controls.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/glasteroids/internal/object"
)

// keyHoldDuration is how long a key is considered "held" after its last
// press. Terminals only report key repeats, so holding a key shows up as a
// stream of presses a few tens of milliseconds apart.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Thrust  bool
	Fire    bool
	Confirm bool   // Space or Enter: acknowledge a screen
	Closed  bool   // The reader hit EOF or an error
	Pressed []byte // Raw bytes read this frame
}

// Controls converts the held keys into simulation controls.
func (in Input) Controls() object.Controls {
	c := object.Controls{Thrust: in.Thrust, Fire: in.Fire}
	if in.Left {
		c.HorizontalFactor--
	}
	if in.Right {
		c.HorizontalFactor++
	}
	return c
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	thrust  time.Time
	fire    time.Time
	confirm time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	return ReadInputAt(s, time.Now())
}

// ReadInputAt is ReadInput with an explicit clock.
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInputAt(s *Stream, now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.thrust = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			case 'B':
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool {
		return now.Sub(t) < keyHoldDuration
	}
	return Input{
		Quit:    held(s.state.quit) || s.closed,
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Thrust:  held(s.state.thrust),
		Fire:    held(s.state.fire),
		Confirm: held(s.state.confirm),
		Closed:  s.closed,
		Pressed: buf,
	}
}

// ResetKeyInput forgets every held key, so a key used to dismiss a screen
// does not carry over into play.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.thrust = now
	case ' ':
		state.fire = now
		state.confirm = now
	case '\n', '\r':
		state.confirm = now
	}
}
