package client

import (
	"time"

	"github.com/tomz197/glasteroids/internal/draw"
	"github.com/tomz197/glasteroids/internal/input"
	"github.com/tomz197/glasteroids/internal/loop"
)

// Screen is the host-side phase a client is in. The simulation's own
// states are shown while the screen is ScreenPlaying.
type Screen int

const (
	ScreenTitle    Screen = iota // Title screen, simulation paused
	ScreenPlaying                // Simulation running
	ScreenShutdown               // Server is shutting down
)

// ClientState holds per-connection host state (input, timers, screen).
type ClientState struct {
	Input         input.Input
	Screen        Screen
	Running       bool              // Client loop running
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	delta         time.Duration     // Frame delta time
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	reportedScore int               // Last score sent to the hub

	// Previous frame values, used to clear the terminal on transitions
	prevScreen   Screen
	prevSimState loop.State
	wasInactive  bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:     ScreenTitle,
		prevScreen: ScreenTitle,
		Running:    true,
	}
}
