package object

import (
	"math"

	"github.com/tomz197/glasteroids/internal/event"
	"github.com/tomz197/glasteroids/internal/geom"
)

// Ship handling.
const (
	PlayerScale    = 5.0
	RotationSpeed  = 360.0 // Degrees per second at full steering
	ThrustAccel    = 40.0  // Meters per second squared
	Drag           = 0.99  // Velocity kept per fixed step
	FireCooldown   = 0.25  // Seconds between shots
	RecoilImpulse  = 2.0   // Meters per second pushed back per shot
	playerDragStep = 0.01
)

const toRadians = math.Pi / 180

// FireColor tints the ship while the trigger is held.
var FireColor = Magenta

// NewPlayer creates the ship at (x, y) pointing up.
func NewPlayer(x, y float64) *Entity {
	return &Entity{
		Kind:   KindPlayer,
		X:      x,
		Y:      y,
		Scale:  PlayerScale,
		Width:  geom.HullWidth,
		Height: geom.HullHeight,
		Mesh:   geom.Hull(),
		Color:  White,
		Alive:  true,
	}
}

// Heading returns the unit vector the nose points along.
// Zero degrees points toward -y.
func (e *Entity) Heading() (x, y float64) {
	sin, cos := math.Sincos(e.Rotation * toRadians)
	return sin, -cos
}

// NosePosition returns the world position of the ship's nose.
func (e *Entity) NosePosition() (x, y float64) {
	hx, hy := e.Heading()
	reach := e.Height * e.Scale * 0.5
	return e.X + hx*reach, e.Y + hy*reach
}

func updatePlayer(e *Entity, ctx *Context, dt float64) {
	e.Cooldown -= dt

	if ctx.Controls.Fire && e.Cooldown <= 0 {
		e.Color = FireColor
		if ctx.fireBullet(e) {
			e.Cooldown = FireCooldown
			hx, hy := e.Heading()
			e.VX -= hx * RecoilImpulse
			e.VY -= hy * RecoilImpulse
		}
	} else {
		e.Color = White
	}

	e.Rotation += dt * RotationSpeed * ctx.Controls.HorizontalFactor
	e.Rotation = math.Mod(e.Rotation, 360)

	if ctx.Controls.Thrust {
		hx, hy := e.Heading()
		e.VX += hx * ThrustAccel * dt
		e.VY += hy * ThrustAccel * dt
		ctx.emit(event.Boost)
	}

	// Drag is tuned per 10ms step; scale it so other step sizes match.
	keep := math.Pow(Drag, dt/playerDragStep)
	e.VX *= keep
	e.VY *= keep

	e.integrate(ctx, dt)
}
