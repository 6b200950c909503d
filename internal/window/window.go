// Package window plays a simulation in a desktop window through ebiten.
package window

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/glasteroids/internal/config"
	"github.com/tomz197/glasteroids/internal/draw"
	"github.com/tomz197/glasteroids/internal/loop"
	"github.com/tomz197/glasteroids/internal/object"
	"github.com/tomz197/glasteroids/internal/sound"
)

// PixelsPerMeter sets the initial window size from the world size.
const PixelsPerMeter = 8

var background = color.RGBA{A: 255}

// Game adapts a Simulation to ebiten.Game.
type Game struct {
	sim      *loop.Simulation
	camera   *draw.Camera
	world    object.World
	renderer vectorRenderer
	jukebox  *sound.Jukebox
	reload   <-chan config.Settings
	logger   *log.Logger
	now      func() time.Time
}

// Options configures a Game.
type Options struct {
	Settings config.Settings
	Logger   *log.Logger
	Jukebox  *sound.Jukebox         // Optional
	Reload   <-chan config.Settings // Optional source of reloaded settings
}

// New creates a game with level 1 loaded.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	simOpts := []loop.Option{loop.WithSettings(opts.Settings), loop.WithLogger(logger)}
	if opts.Jukebox != nil {
		simOpts = append(simOpts, loop.WithSink(opts.Jukebox))
	}
	sim := loop.New(simOpts...)
	return &Game{
		sim:     sim,
		camera:  draw.NewCamera(sim.World()),
		world:   sim.World(),
		jukebox: opts.Jukebox,
		reload:  opts.Reload,
		logger:  logger,
		now:     time.Now,
	}
}

// WindowSize returns the initial window size for the current world.
func (g *Game) WindowSize() (int, int) {
	return int(g.world.Width * PixelsPerMeter), int(g.world.Height * PixelsPerMeter)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollSettings()

	g.sim.SetControls(readControls())
	confirm := inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	if confirm && g.sim.State() != loop.StateActive {
		g.sim.Confirm()
	}

	g.sim.Advance(g.now())
	if w := g.sim.World(); w != g.world {
		g.world = w
		g.camera = draw.NewCamera(w)
	}
	return nil
}

func (g *Game) pollSettings() {
	for {
		select {
		case cfg, ok := <-g.reload:
			if !ok {
				g.reload = nil
				return
			}
			g.sim.ApplySettings(cfg)
			if g.jukebox != nil {
				g.jukebox.Configure(cfg.Audio.Enabled, cfg.Audio.Volume)
			}
			g.logger.Info("settings reloaded, applied at next level")
		default:
			return
		}
	}
}

func readControls() object.Controls {
	var c object.Controls
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		c.HorizontalFactor--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		c.HorizontalFactor++
	}
	c.Thrust = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	c.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	return c
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.renderer.reset(screen)
	g.sim.Render(g.camera.View(), &g.renderer)

	snap := g.sim.Snapshot()
	ebitenutil.DebugPrint(screen, hudText(snap))
	if msg := bannerText(snap); msg != "" {
		b := screen.Bounds()
		ebitenutil.DebugPrintAt(screen, msg, b.Dx()/2-len(msg)*3, b.Dy()/2)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func hudText(snap loop.Snapshot) string {
	return fmt.Sprintf("Score: %d  Health: %d  Level: %d  Asteroids: %d", snap.Score, snap.Health, snap.Level, snap.Asteroids)
}

func bannerText(snap loop.Snapshot) string {
	switch snap.State {
	case loop.StateLevelFinish:
		return fmt.Sprintf("LEVEL %d CLEARED - press SPACE", snap.Level)
	case loop.StateGameOver:
		return fmt.Sprintf("GAME OVER - score %d - press SPACE", snap.Score)
	default:
		return ""
	}
}
