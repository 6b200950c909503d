package loop

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/glasteroids/internal/config"
	"github.com/tomz197/glasteroids/internal/event"
	"github.com/tomz197/glasteroids/internal/object"
	"github.com/tomz197/glasteroids/internal/spawn"
)

// Option configures a Simulation.
type Option func(*Simulation)

// WithWorld sets the world size in meters.
func WithWorld(w object.World) Option {
	return func(s *Simulation) {
		s.world = w
	}
}

// WithStep sets the fixed simulation step.
func WithStep(step time.Duration) Option {
	return func(s *Simulation) {
		s.step = step
	}
}

// WithSeed makes the simulation's randomness reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Simulation) {
		s.seed = seed
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		s.logger = l
	}
}

// WithSink sets where the per-step event tags are delivered.
func WithSink(sink event.Sink) Option {
	return func(s *Simulation) {
		s.sink = sink
	}
}

// WithStartingHealth sets the health a new game starts with.
func WithStartingHealth(h int) Option {
	return func(s *Simulation) {
		s.startingHealth = h
	}
}

// WithPopulator replaces the level builder.
func WithPopulator(p *spawn.Populator) Option {
	return func(s *Simulation) {
		s.populator = p
	}
}

// WithSpawnShield sets how long the ship cannot be damaged after a level
// loads. Zero disables it.
func WithSpawnShield(d time.Duration) Option {
	return func(s *Simulation) {
		s.spawnShield = d
	}
}

// WithGrid turns the spatial grid collision prefilter on or off.
func WithGrid(enabled bool) Option {
	return func(s *Simulation) {
		s.useGrid = enabled
	}
}

// WithSettings applies every simulation-relevant field of settings.
// A zero seed leaves the seed random. Settings that fail Validate leave
// the defaults in place.
func WithSettings(cfg config.Settings) Option {
	return func(s *Simulation) {
		if err := cfg.Validate(); err != nil {
			s.logger.Warn("ignoring invalid settings", "err", err)
			return
		}
		s.applySettings(cfg)
		if cfg.Simulation.Seed != 0 {
			s.seed = cfg.Simulation.Seed
		}
	}
}
