package object

import (
	"math/rand/v2"

	"github.com/tomz197/glasteroids/internal/event"
)

// World is the toroidal play area in meters.
type World struct {
	Width, Height float64
}

// Controls is the input state sampled once per step.
type Controls struct {
	HorizontalFactor float64 // Signed steering, -1..1
	Thrust           bool
	Fire             bool
}

// Hooks are the simulation callbacks entities use instead of reaching into
// a global engine.
type Hooks interface {
	// FireBullet asks for a bullet from source. False means no pool slot was free.
	FireBullet(source *Entity) bool
	// AsteroidHit is called once when a bullet destroys an asteroid.
	AsteroidHit(asteroid *Entity)
	// PlayerDamaged is called when an asteroid strikes the ship.
	PlayerDamaged(player *Entity)
}

// Context is handed to every update and collision callback.
// It is owned by the simulation and only valid during the current step.
type Context struct {
	World    World
	Controls Controls
	Events   event.Emitter
	Hooks    Hooks
	Rand     *rand.Rand
}

func (c *Context) emit(tag event.Tag) {
	if c.Events != nil {
		c.Events.Emit(tag)
	}
}

func (c *Context) fireBullet(source *Entity) bool {
	if c.Hooks == nil {
		return false
	}
	return c.Hooks.FireBullet(source)
}

// Between returns a uniform value in [lo, hi).
func Between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
