package client

import (
	"fmt"
	"time"

	"github.com/tomz197/glasteroids/internal/loop"
	loopconfig "github.com/tomz197/glasteroids/internal/loop/config"
)

var titleArt = []string{
	`  ___  _       _    ___  _____  ___  ___   ___   ___  ___   ___ `,
	` / __|| |     /_\  / __||_   _|| __|| _ \ / _ \ |_ _||   \ / __|`,
	`| (_ || |__  / _ \ \__ \  | |  | _| |   /| (_) | | | | |) |\__ \`,
	` \___||____|/_/ \_\|___/  |_|  |___||_|_\ \___/ |___||___/ |___/`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	snap := c.sim.Snapshot()

	// On screen, game state or inactivity transitions, do a full terminal
	// clear so UI elements from the previous state don't persist on screen.
	screenChanged := c.state.Screen != c.state.prevScreen || snap.State != c.state.prevSimState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if screenChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.prevSimState = snap.State
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.sim.Render(c.camera.View(), c.projector)

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Draw UI overlay
	c.drawUI(snap, now)

	return c.chunkWriter.Flush()
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snap loop.Snapshot, now time.Time) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY, now)
		return
	}

	switch c.state.Screen {
	case ScreenTitle:
		c.drawStartScreen(centerX, centerY, now)
	case ScreenPlaying:
		c.drawPlayingHUD(termWidth, termHeight, snap)
		switch snap.State {
		case loop.StateLevelFinish:
			c.drawLevelFinishScreen(centerX, centerY, snap, now)
		case loop.StateGameOver:
			c.drawGameOverScreen(centerX, centerY, snap, now)
		}
	}
}

// blinkOn reports whether blinking prompts are visible at now.
func blinkOn(now time.Time) bool {
	return now.UnixMilli()/loopconfig.PromptBlinkPeriod.Milliseconds()%2 == 0
}

// drawArt draws lines centered on centerX starting at row and returns the
// row after the last line.
func (c *Client) drawArt(centerX, row int, lines []string) int {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	for i, line := range lines {
		c.chunkWriter.WriteAt(max(centerX-width/2, 1), row+i, line)
	}
	return row + len(lines)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int, now time.Time) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(loopconfig.InactivityDisconnectUser-now.Sub(c.lastInput).Seconds()),
	)
	cw.WriteCentered(centerX, centerY, msg)
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int, now time.Time) {
	cw := c.chunkWriter
	row := c.drawArt(centerX, centerY-8, titleArt)

	cw.WriteCentered(centerX, row+1, "~ Asteroids in your terminal ~")

	// Controls section
	controlsY := row + 3
	cw.WriteCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"W / Up  . . . . Thrust",
		"A D / < >  . .  Rotate",
		"SPACE  . . . . . Shoot",
		"Q  . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		cw.WriteCentered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt
	if blinkOn(now) {
		cw.WriteCentered(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE to Start  <<")
	}

	c.drawTopScores(centerX, controlsY+len(controlLines)+4)
}

// drawTopScores draws the leaderboard starting at row, if it has entries.
func (c *Client) drawTopScores(centerX, row int) {
	scores := c.hub.TopScores()
	if len(scores) == 0 {
		return
	}
	cw := c.chunkWriter
	cw.WriteCentered(centerX, row, "Top scores")
	for i, e := range scores {
		line := fmt.Sprintf("%d. %-*s %8d", i+1, loopconfig.MaxUsernameLength, e.Username, e.Score)
		cw.WriteCentered(centerX, row+1+i, line)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen (since we no longer clear every frame).
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snap loop.Snapshot) {
	cw := c.chunkWriter

	// Score display (top left), padded to 8 digits
	cw.WriteAt(2, 1, fmt.Sprintf("Score: %-8d", snap.Score))

	// Level (top center)
	cw.WriteCentered(termWidth/2, 1, fmt.Sprintf("Level %-3d", snap.Level))

	// Health display (top right)
	healthText := fmt.Sprintf("Health: %-3d", snap.Health)
	cw.WriteAt(termWidth-len(healthText)-1, 1, healthText)

	// Remaining asteroids (bottom left)
	cw.WriteAt(2, termHeight, fmt.Sprintf("Asteroids: %-4d", snap.Asteroids))

	// Spawn shield (bottom right), blank once it has run out
	shieldText := ""
	if snap.Shield > 0 {
		shieldText = fmt.Sprintf("Shield: %.1f", snap.Shield)
	}
	shieldText = fmt.Sprintf("%12s", shieldText)
	cw.WriteAt(termWidth-len(shieldText)-1, termHeight, shieldText)
}

// drawLevelFinishScreen draws the level cleared screen.
func (c *Client) drawLevelFinishScreen(centerX, centerY int, snap loop.Snapshot, now time.Time) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, fmt.Sprintf("LEVEL %d CLEARED", snap.Level))
	cw.WriteCentered(centerX, centerY-1, fmt.Sprintf("Score: %d", snap.Score))
	cw.WriteCentered(centerX, centerY, fmt.Sprintf("Health: %d", snap.Health))
	if blinkOn(now) {
		cw.WriteCentered(centerX, centerY+2, ">>  Press SPACE for the next level  <<")
	}
}

// drawGameOverScreen draws the game over screen.
func (c *Client) drawGameOverScreen(centerX, centerY int, snap loop.Snapshot, now time.Time) {
	cw := c.chunkWriter
	row := c.drawArt(centerX, centerY-6, gameOverArt)

	cw.WriteCentered(centerX, row+1, fmt.Sprintf("Score: %d", snap.Score))
	cw.WriteCentered(centerX, row+2, fmt.Sprintf("Reached level %d", snap.Level))

	if blinkOn(now) {
		cw.WriteCentered(centerX, row+4, ">>  Press SPACE to Restart  <<")
	}

	c.drawTopScores(centerX, row+6)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	cw.WriteCentered(centerX, centerY+4, "Press Q to disconnect now")
}
