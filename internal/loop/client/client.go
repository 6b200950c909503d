// Package client runs one player's game in a terminal: it reads keys,
// steps a private simulation and draws it with the HUD screens around it.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/glasteroids/internal/config"
	"github.com/tomz197/glasteroids/internal/draw"
	"github.com/tomz197/glasteroids/internal/input"
	"github.com/tomz197/glasteroids/internal/logging"
	"github.com/tomz197/glasteroids/internal/loop"
	loopconfig "github.com/tomz197/glasteroids/internal/loop/config"
	"github.com/tomz197/glasteroids/internal/loop/server"
	"github.com/tomz197/glasteroids/internal/object"
	"github.com/tomz197/glasteroids/internal/sound"
)

// Client handles rendering and input for a single connection.
type Client struct {
	hub          server.SessionHub
	session      *server.Session
	sim          *loop.Simulation
	jukebox      *sound.Jukebox
	state        *ClientState
	canvas       *draw.Canvas
	projector    *draw.Projector
	camera       *draw.Camera
	world        object.World
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	lastFrame    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Settings     config.Settings
	Logger       *log.Logger
	Jukebox      *sound.Jukebox // Optional; nil plays no audio
}

// NewClient creates a client registered with hub, reading keys from r and
// drawing to w.
func NewClient(hub server.SessionHub, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	session := hub.RegisterSession(opts.Username)
	logger = logger.With("session", session.ID)

	if err := opts.Settings.Validate(); err != nil {
		logger.Warn("using default settings", "err", err)
		opts.Settings = config.Default()
	}

	simOpts := []loop.Option{loop.WithSettings(opts.Settings), loop.WithLogger(logger)}
	if opts.Jukebox != nil {
		opts.Jukebox.Configure(opts.Settings.Audio.Enabled, opts.Settings.Audio.Volume)
		simOpts = append(simOpts, loop.WithSink(opts.Jukebox))
	}
	sim := loop.New(simOpts...)
	world := sim.World()

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerm(termWidth, termHeight, loopconfig.MaxTermWidth, loopconfig.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, world.Width, world.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	now := time.Now()
	return &Client{
		hub:          hub,
		session:      session,
		sim:          sim,
		jukebox:      opts.Jukebox,
		state:        state,
		canvas:       canvas,
		projector:    draw.NewProjector(canvas),
		camera:       draw.NewCamera(world),
		world:        world,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    now,
		lastFrame:    now,
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the player quits, the input
// closes or the hub shuts the session down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.hub.UnregisterSession(c.session.ID)

	c.lastFrame = time.Now()
	for c.state.Running {
		frameStart := time.Now()
		if err := c.frame(frameStart); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < loopconfig.ClientTargetFrameTime {
			time.Sleep(loopconfig.ClientTargetFrameTime - elapsed)
		}
	}

	c.reportScore()
	draw.ClearScreen(c.writer)
	snap := c.sim.Snapshot()
	c.logger.Info("session finished", "level", snap.Level, "score", snap.Score)
	return nil
}

// frame runs one iteration of the client loop at wall time now.
func (c *Client) frame(now time.Time) error {
	return c.tick(input.ReadInputAt(c.inputStream, now), now)
}

// tick runs one iteration with the given input.
func (c *Client) tick(in input.Input, now time.Time) error {
	c.state.delta = now.Sub(c.lastFrame)
	c.lastFrame = now

	c.applyInput(in, now)
	c.processHubEvents()
	c.updateScreen()

	switch c.state.Screen {
	case ScreenTitle:
		c.updateTitleState()
	case ScreenPlaying:
		c.updatePlayingState()
	case ScreenShutdown:
		c.updateShutdownState()
	}

	return c.drawFrame(now)
}

// applyInput stores this frame's input and tracks inactivity.
func (c *Client) applyInput(in input.Input, now time.Time) {
	c.state.Input = in

	idle := now.Sub(c.lastInput).Seconds()
	switch {
	case len(in.Pressed) > 0:
		c.lastInput = now
		c.state.isInactive = false
	case idle > loopconfig.InactivityDisconnectUser:
		c.logger.Info("disconnecting inactive player")
		c.state.Running = false
	case idle > loopconfig.InactivityWarnUser:
		c.state.isInactive = true
	}

	if in.Quit || in.Closed {
		c.state.Running = false
	}
}

// processHubEvents handles events from the hub.
func (c *Client) processHubEvents() {
	for {
		select {
		case ev, ok := <-c.session.EventsCh:
			if !ok {
				// Hub closed the channel
				c.state.Running = false
				return
			}
			switch ev.Type {
			case server.EventServerShutdown:
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = loopconfig.ShutdownDisplaySeconds
			case server.EventSettingsChanged:
				c.sim.ApplySettings(ev.Settings)
				if c.jukebox != nil {
					c.jukebox.Configure(ev.Settings.Audio.Enabled, ev.Settings.Audio.Volume)
				}
				c.logger.Debug("settings queued for next level")
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerm(termWidth, termHeight, loopconfig.MaxTermWidth, loopconfig.MaxTermHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// updateTitleState waits for the player to start.
func (c *Client) updateTitleState() {
	if c.state.Input.Confirm {
		input.ResetKeyInput(c.inputStream)
		c.state.Screen = ScreenPlaying
		c.logger.Info("game started", "user", c.session.Username)
	}
}

// updatePlayingState feeds input to the simulation and advances it by the
// frame's wall time.
func (c *Client) updatePlayingState() {
	in := c.state.Input
	c.sim.SetControls(in.Controls())
	if in.Confirm && c.sim.State() != loop.StateActive && c.sim.Confirm() {
		input.ResetKeyInput(c.inputStream)
	}

	c.sim.AdvanceBy(min(c.state.delta, loopconfig.MaxFrameDelta))
	c.syncWorld()

	p := c.sim.Player()
	c.camera.LookAt(p.X, p.Y)
	c.reportScore()
}

// syncWorld follows a world size change applied at a level load.
func (c *Client) syncWorld() {
	w := c.sim.World()
	if w == c.world {
		return
	}
	c.world = w
	c.camera = draw.NewCamera(w)
	c.canvas.SetLogicalSize(w.Width, w.Height)
	c.canvas.ForceRedraw()
}

func (c *Client) reportScore() {
	score := c.sim.Snapshot().Score
	if score > c.state.reportedScore {
		c.hub.ReportScore(c.session.ID, score)
	}
	c.state.reportedScore = score
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
