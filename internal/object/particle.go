package object

import "github.com/tomz197/glasteroids/internal/geom"

// Particle tuning.
const (
	ParticleCount  = 100 // Pool capacity
	ParticleSpread = 8.0 // Max offset from the source on each axis, meters
	ParticleSpeed  = 8.0 // Max speed on each axis, meters/second
	ParticleTTL    = 0.5 // Seconds
)

// NewParticlePool creates a particle pool with the given capacity.
func NewParticlePool(capacity int) *Pool {
	return NewPool(KindParticle, capacity, func(e *Entity) {
		e.Mesh = geom.Dot()
		e.Color = Cyan
	})
}

// fireParticle scatters e around the source with a random drift.
func fireParticle(e *Entity, ctx *Context, source *Entity) {
	e.X = source.X + Between(ctx.Rand, -ParticleSpread, ParticleSpread)
	e.Y = source.Y + Between(ctx.Rand, -ParticleSpread, ParticleSpread)
	e.VX = Between(ctx.Rand, -ParticleSpeed, ParticleSpeed)
	e.VY = Between(ctx.Rand, -ParticleSpeed, ParticleSpeed)
	e.TTL = ParticleTTL
}

// BurstSize returns how many particles a shot asteroid of the given tier
// throws off: smaller rocks are worth more and burst less.
func BurstSize(ctx *Context, tier Tier) int {
	n := ParticleCount / tier.Points()
	if n <= 0 {
		return 1
	}
	return ctx.Rand.IntN(n) + 1
}
