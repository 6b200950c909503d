package object

import "github.com/tomz197/glasteroids/internal/event"

type (
	updateFunc  func(e *Entity, ctx *Context, dt float64)
	collideFunc func(e *Entity, ctx *Context, other *Entity)
	fireFunc    func(e *Entity, ctx *Context, source *Entity)
)

// behavior is the per-kind capability row.
type behavior struct {
	update  updateFunc
	collide collideFunc // fallback when no pair resolution exists
	fire    fireFunc    // pooled kinds: reinitialize a dead slot from a source
}

// pooled marks kinds that live in TTL pools. It is separate from behaviors
// to avoid an initialization cycle through Kill.
var pooled = [kindCount]bool{
	KindBullet:   true,
	KindParticle: true,
}

var behaviors = [kindCount]behavior{
	KindPlayer:   {update: updatePlayer, collide: die},
	KindAsteroid: {update: updateAsteroid, collide: die},
	KindBullet:   {update: updateTTL, fire: fireBullet},
	KindParticle: {update: updateTTL, collide: die, fire: fireParticle},
	KindStar:     {},
	KindBorder:   {},
}

// resolutions maps (self, other) kind pairs to outcomes. Pairs missing here
// fall back to the kind's default.
var resolutions = [kindCount][kindCount]collideFunc{
	KindBullet: {
		KindAsteroid: die,
	},
	KindAsteroid: {
		KindBullet: asteroidShot,
		KindPlayer: die,
	},
	KindPlayer: {
		KindAsteroid: playerStruck,
	},
}

func die(e *Entity, _ *Context, _ *Entity) {
	e.Kill()
}

func updateTTL(e *Entity, ctx *Context, dt float64) {
	if e.TTL <= 0 {
		return
	}
	e.TTL -= dt
	e.integrate(ctx, dt)
}

func updateAsteroid(e *Entity, ctx *Context, dt float64) {
	e.Rotation += e.Spin * dt
	e.integrate(ctx, dt)
}

func asteroidShot(e *Entity, ctx *Context, _ *Entity) {
	if !e.Alive {
		return
	}
	e.Alive = false
	ctx.emit(event.Hit)
	if ctx.Hooks != nil {
		ctx.Hooks.AsteroidHit(e)
	}
}

func playerStruck(e *Entity, ctx *Context, _ *Entity) {
	ctx.emit(event.Damage)
	if ctx.Hooks != nil {
		ctx.Hooks.PlayerDamaged(e)
	}
}
