package loop

import "fmt"

// State is the game phase of a simulation.
type State int

const (
	StateActive      State = iota // Playing a level
	StateLevelFinish              // Level cleared, waiting for Confirm
	StateGameOver                 // Out of health, waiting for Confirm
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateLevelFinish:
		return "level-finish"
	case StateGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is what a HUD shows about the running game.
type Snapshot struct {
	State     State
	Level     int
	Score     int
	Health    int
	Shield    float64 // Seconds of spawn invulnerability left
	Asteroids int     // Live asteroids
	Bullets   int     // Live bullets
	Particles int     // Live particles
	Steps     uint64
	Simulated float64 // Seconds
}
