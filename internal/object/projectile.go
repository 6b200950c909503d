package object

import (
	"github.com/tomz197/glasteroids/internal/event"
	"github.com/tomz197/glasteroids/internal/geom"
)

// Bullet tuning.
const (
	BulletSpeed = 120.0 // Meters per second, added to the shooter's velocity
	BulletTTL   = 0.5   // Seconds
)

// BulletPoolSize is the most bullets that can be alive at once given the
// fire cooldown, so a full pool never drops a shot the cooldown allows.
const BulletPoolSize = int(BulletTTL/FireCooldown) + 1

// NewBulletPool creates a bullet pool with the given capacity.
func NewBulletPool(capacity int) *Pool {
	return NewPool(KindBullet, capacity, func(e *Entity) {
		e.Mesh = geom.Dot()
		e.Color = Magenta
	})
}

// fireBullet launches e from the source's nose along its heading.
func fireBullet(e *Entity, ctx *Context, source *Entity) {
	hx, hy := source.Heading()
	e.X, e.Y = source.NosePosition()
	e.VX = source.VX + hx*BulletSpeed
	e.VY = source.VY + hy*BulletSpeed
	e.Rotation = source.Rotation
	e.TTL = BulletTTL
	ctx.emit(event.Fire)
}
