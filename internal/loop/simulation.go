// Package loop drives the game: a fixed-step Simulation that owns every
// entity, and the Clock that feeds it.
package loop

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/glasteroids/internal/collision"
	"github.com/tomz197/glasteroids/internal/config"
	"github.com/tomz197/glasteroids/internal/event"
	"github.com/tomz197/glasteroids/internal/geom"
	"github.com/tomz197/glasteroids/internal/logging"
	"github.com/tomz197/glasteroids/internal/object"
	"github.com/tomz197/glasteroids/internal/spawn"
)

// StartingLevel is the level a new game begins at.
const StartingLevel = 1

// ShieldBlinkFrequency is how often, in Hz, the shielded ship blinks.
const ShieldBlinkFrequency = 10.0

// Simulation is one single-player game. It is not safe for concurrent use:
// the host calls Advance, Render and the input setters from one goroutine.
type Simulation struct {
	world          object.World
	step           time.Duration
	seed           uint64
	startingHealth int
	spawnShield    time.Duration
	useGrid        bool
	logger         *log.Logger
	sink           event.Sink

	clock     *Clock
	rng       *rand.Rand
	events    *event.Queue
	detector  *collision.Detector
	populator *spawn.Populator
	ctx       object.Context
	controls  object.Controls

	player    *object.Entity
	border    *object.Entity
	stars     []*object.Entity
	asteroids []*object.Entity
	pending   spawn.Buffer
	bullets   *object.Pool
	particles *object.Pool

	state        State
	level        int
	score        int
	health       int
	shield       float64 // Seconds of invulnerability left
	steps        uint64
	levelToLoad  int // 0 when nothing is pending
	nextSettings *config.Settings
}

// New creates a simulation with level 1 loaded.
func New(opts ...Option) *Simulation {
	def := config.Default()
	s := &Simulation{
		populator: spawn.NewPopulator(),
		seed:      rand.Uint64(),
		logger:    logging.Discard(),
		events:    event.NewQueue(),
		bullets:   object.NewBulletPool(object.BulletPoolSize),
		particles: object.NewParticlePool(object.ParticleCount),
	}
	s.applySettings(def)
	for _, opt := range opts {
		opt(s)
	}

	s.clock = NewClock(s.step)
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	s.detector = s.newDetector()
	s.player = object.NewPlayer(s.world.Width/2, s.world.Height/2)
	s.border = object.NewBorder(s.world, object.White)
	s.ctx = object.Context{
		World:  s.world,
		Events: s.events,
		Hooks:  simHooks{s},
		Rand:   s.rng,
	}

	s.loadLevel(StartingLevel)
	return s
}

func (s *Simulation) applySettings(cfg config.Settings) {
	s.world = object.World{Width: cfg.World.Width, Height: cfg.World.Height}
	s.step = cfg.Simulation.Step
	s.startingHealth = cfg.Simulation.StartingHealth
	s.spawnShield = cfg.Simulation.SpawnShield
	s.useGrid = cfg.Simulation.SpatialGrid
	s.populator.StarCount = cfg.Simulation.StarCount
	s.populator.AsteroidsPerLevel = cfg.Simulation.AsteroidsPerLevel
}

// gridCellSize covers the largest asteroid touching the ship, the widest
// pair the detector tests.
func gridCellSize() float64 {
	rock := object.AsteroidSize * object.TierLarge.Scale() / 2
	ship := max(geom.HullWidth, geom.HullHeight) * object.PlayerScale / 2
	return rock + ship
}

func (s *Simulation) newDetector() *collision.Detector {
	if !s.useGrid {
		return collision.NewDetector()
	}
	return collision.NewDetector(collision.WithGrid(s.world, gridCellSize()))
}

// World returns the current world size.
func (s *Simulation) World() object.World {
	return s.world
}

// Player returns the ship, for cameras.
func (s *Simulation) Player() *object.Entity {
	return s.player
}

// State returns the current game phase.
func (s *Simulation) State() State {
	return s.state
}

// SetControls sets the input used by every following step until changed.
func (s *Simulation) SetControls(c object.Controls) {
	s.controls = c
}

// Confirm acknowledges an end-of-level or game-over screen: the next step
// loads the following level, or restarts from level 1. It reports whether
// anything was scheduled.
func (s *Simulation) Confirm() bool {
	switch s.state {
	case StateGameOver:
		s.levelToLoad = StartingLevel
	case StateLevelFinish:
		s.levelToLoad = s.level + 1
	default:
		return false
	}
	return true
}

// ApplySettings stores settings to take effect at the next level load.
// The seed is never changed on a running simulation. Settings that fail
// Validate are dropped.
func (s *Simulation) ApplySettings(cfg config.Settings) {
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("ignoring invalid settings", "err", err)
		return
	}
	s.nextSettings = &cfg
}

// Advance runs every step due by wall time now and returns how many ran.
func (s *Simulation) Advance(now time.Time) int {
	dt := s.clock.Step().Seconds()
	n := s.clock.Tick(now)
	s.run(n, dt)
	return n
}

// AdvanceBy banks d of elapsed time and runs the steps that are due.
func (s *Simulation) AdvanceBy(d time.Duration) int {
	dt := s.clock.Step().Seconds()
	n := s.clock.Accumulate(d)
	s.run(n, dt)
	return n
}

// run takes n steps of dt seconds. A step size change loaded midway only
// affects later batches, since these n were counted at dt.
func (s *Simulation) run(n int, dt float64) {
	for i := 0; i < n; i++ {
		s.stepBy(dt)
	}
}

// Step runs one fixed step: pending level load, kinematics, collisions,
// removal of the dead, promotion of new asteroids and the level check.
// Event tags raised during the step are then delivered to the sink.
func (s *Simulation) Step() {
	s.stepBy(s.clock.Step().Seconds())
}

func (s *Simulation) stepBy(dt float64) {

	if s.levelToLoad > 0 {
		s.loadLevel(s.levelToLoad)
	}

	s.ctx.Controls = s.controls
	for _, a := range s.asteroids {
		if !a.IsDead() {
			a.Update(&s.ctx, dt)
		}
	}
	s.bullets.Update(&s.ctx, dt)
	s.particles.Update(&s.ctx, dt)
	playing := s.state == StateActive
	if playing {
		s.player.Update(&s.ctx, dt)
	}
	s.shield = max(s.shield-dt, 0)

	s.detector.Pass(&s.ctx, s.bullets, s.asteroids, s.player, playing && s.shield <= 0)

	s.asteroids = spawn.RemoveDead(s.asteroids)
	s.asteroids = s.pending.DrainInto(s.asteroids)

	if s.state == StateActive && spawn.LevelCleared(s.asteroids, s.health) {
		s.state = StateLevelFinish
		s.events.Emit(event.LevelGoal)
		s.logger.Info("level cleared", "level", s.level, "score", s.score, "health", s.health)
	}

	s.steps++
	s.events.Flush(s.sink)
}

func (s *Simulation) loadLevel(n int) {
	s.levelToLoad = 0
	if cfg := s.nextSettings; cfg != nil {
		s.nextSettings = nil
		s.reconfigure(*cfg)
	}

	if n == StartingLevel {
		s.score = 0
		s.health = s.startingHealth
	}
	s.level = n

	lvl := s.populator.Build(s.rng, s.world, n)
	s.stars = lvl.Stars
	clear(s.asteroids)
	s.asteroids = append(s.asteroids[:0], lvl.Asteroids...)
	s.border.Color = lvl.Color

	s.pending.Reset()
	s.bullets.Reset()
	s.particles.Reset()

	p := s.player
	p.X, p.Y = s.world.Width/2, s.world.Height/2
	p.VX, p.VY = 0, 0
	p.Rotation = 0
	p.Cooldown = 0
	p.Color = object.White
	p.Alive = true
	s.shield = s.spawnShield.Seconds()

	s.state = StateActive
	s.events.Emit(event.LevelStart)
	s.logger.Info("level loaded", "level", n, "asteroids", len(s.asteroids), "health", s.health)
}

// reconfigure swaps in new settings between levels.
func (s *Simulation) reconfigure(cfg config.Settings) {
	oldWorld, oldStep, oldGrid := s.world, s.step, s.useGrid
	s.applySettings(cfg)

	if s.step != oldStep {
		s.clock.SetStep(s.step)
	}
	if s.world != oldWorld {
		s.ctx.World = s.world
		s.border = object.NewBorder(s.world, s.border.Color)
	}
	if s.world != oldWorld || s.useGrid != oldGrid {
		s.detector = s.newDetector()
	}
	s.logger.Debug("settings applied", "world", s.world, "step", s.step, "grid", s.useGrid)
}

// Render draws back to front through view: border, stars, asteroids,
// particles, then bullets and the ship while a level is being played.
// A shielded ship blinks.
func (s *Simulation) Render(view mgl32.Mat4, r Renderer) {
	drawEntity(r, view, s.border)
	for _, st := range s.stars {
		drawEntity(r, view, st)
	}
	for _, a := range s.asteroids {
		if !a.IsDead() {
			drawEntity(r, view, a)
		}
	}
	s.particles.Each(func(e *object.Entity) bool {
		drawEntity(r, view, e)
		return true
	})
	if s.state != StateActive {
		return
	}
	s.bullets.Each(func(e *object.Entity) bool {
		drawEntity(r, view, e)
		return true
	})
	if s.shield > 0 && int(s.shield*ShieldBlinkFrequency*2)%2 == 1 {
		return
	}
	drawEntity(r, view, s.player)
}

// Snapshot reports the HUD values.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		State:     s.state,
		Level:     s.level,
		Score:     s.score,
		Health:    s.health,
		Shield:    s.shield,
		Asteroids: len(s.asteroids),
		Bullets:   s.bullets.Live(),
		Particles: s.particles.Live(),
		Steps:     s.steps,
		Simulated: s.clock.Simulated().Seconds(),
	}
}

// simHooks routes entity callbacks back into the simulation.
type simHooks struct {
	s *Simulation
}

func (h simHooks) FireBullet(source *object.Entity) bool {
	s := h.s
	if s.bullets.FireFrom(&s.ctx, source) {
		return true
	}
	s.logger.Debug("pool exhausted", "kind", s.bullets.Kind(), "capacity", s.bullets.Cap())
	return false
}

func (h simHooks) AsteroidHit(a *object.Entity) {
	s := h.s
	s.score += a.Tier.Points()
	spawn.Split(s.rng, a, &s.pending)
	s.particles.Burst(&s.ctx, a, object.BurstSize(&s.ctx, a.Tier))
}

func (h simHooks) PlayerDamaged(*object.Entity) {
	s := h.s
	if s.health <= 0 {
		return
	}
	s.health--
	if s.health == 0 {
		s.state = StateGameOver
		s.logger.Info("game over", "level", s.level, "score", s.score)
	}
}
