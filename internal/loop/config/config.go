// Package config centralizes the host-side tunables: timings and sizes used
// by the terminal client and the session hub around a simulation.
package config

import "time"

// Render resolution limits. Larger terminals are letterboxed.
const (
	MaxTermWidth  = 216 // Columns
	MaxTermHeight = 54  // Rows
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Leaderboard
const (
	TopScoreCount = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownGracePeriod    = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	PromptBlinkPeriod     = 600 * time.Millisecond
)

// MaxFrameDelta caps the wall time one frame may feed the simulation, so a
// stalled client does not replay a long backlog of steps.
const MaxFrameDelta = 250 * time.Millisecond
