// Package object holds the simulated entities: one Entity record whose Kind
// selects its update and collision behavior.
package object

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/glasteroids/internal/geom"
)

// Kind discriminates entity behavior.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindAsteroid
	KindBullet
	KindParticle
	KindStar
	KindBorder

	kindCount
)

var kindNames = [kindCount]string{
	KindPlayer:   "player",
	KindAsteroid: "asteroid",
	KindBullet:   "bullet",
	KindParticle: "particle",
	KindStar:     "star",
	KindBorder:   "border",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Pooled reports whether entities of this kind live in a TTL pool.
func (k Kind) Pooled() bool {
	return k < kindCount && pooled[k]
}

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

var (
	White   = Color{1, 1, 1, 1}
	Magenta = Color{1, 0, 1, 1}
	Cyan    = Color{0, 1, 1, 1}
	Blue    = Color{0, 0, 1, 1}
	Yellow  = Color{1, 1, 0, 1}
	Green   = Color{0, 1, 0, 1}
	Red     = Color{1, 0, 0, 1}
)

// Palette is the set of level accent colors.
var Palette = []Color{Magenta, Cyan, Blue, Yellow, Green, Red}

// Transform is what a renderer needs to place an entity.
type Transform struct {
	X, Y     float64
	Depth    float64
	Rotation float64 // Degrees, clockwise on a y-down screen
	Scale    float64
}

// Entity is any simulated object.
//
// Width and Height are the unscaled size of Mesh; world-space bounds are
// the position plus mesh bounds times Scale.
type Entity struct {
	Kind Kind

	X, Y     float64 // Position (center), meters
	VX, VY   float64 // Velocity, meters/second
	Rotation float64 // Heading in degrees
	Spin     float64 // Degrees per second
	Scale    float64

	Width, Height float64
	Depth         float64
	Mesh          *geom.Mesh
	Color         Color
	Alive         bool

	TTL      float64 // Seconds left, pooled kinds only
	Tier     Tier    // Asteroids only
	Sides    int     // Asteroid outline vertex count
	Cooldown float64 // Player fire cooldown
}

// SetColor sets the RGBA color. Anything other than four components is a
// programming error.
func (e *Entity) SetColor(rgba ...float32) {
	if len(rgba) != 4 {
		panic(fmt.Sprintf("object: color needs 4 components, got %d", len(rgba)))
	}
	copy(e.Color[:], rgba)
}

// IsDead reports whether the entity should be skipped or removed.
// Pooled entities are dead once their TTL runs out.
func (e *Entity) IsDead() bool {
	if pooled[e.Kind] {
		return e.TTL <= 0
	}
	return !e.Alive
}

// Kill marks the entity dead.
func (e *Entity) Kill() {
	e.Alive = false
	if pooled[e.Kind] {
		e.TTL = 0
	}
}

// Update advances the entity by dt seconds using its kind's behavior.
func (e *Entity) Update(ctx *Context, dt float64) {
	if fn := behaviors[e.Kind].update; fn != nil {
		fn(e, ctx, dt)
	}
}

// OnCollision notifies e that it touched other. What happens depends on
// the pair of kinds; the default is to die.
func (e *Entity) OnCollision(ctx *Context, other *Entity) {
	if fn := resolutions[e.Kind][other.Kind]; fn != nil {
		fn(e, ctx, other)
		return
	}
	if fn := behaviors[e.Kind].collide; fn != nil {
		fn(e, ctx, other)
	}
}

// integrate moves the entity along its velocity and wraps it around the world.
func (e *Entity) integrate(ctx *Context, dt float64) {
	e.X += e.VX * dt
	e.Y += e.VY * dt
	e.Wrap(ctx.World)
}

// Wrap applies toroidal wrapping by edge rather than center, so an entity
// whose left edge passes the world width by k reappears with its left edge
// at k. The world is treated as half-open on both axes.
func (e *Entity) Wrap(w World) {
	if w.Width > 0 {
		if e.Left() >= w.Width {
			e.X -= w.Width
		} else if e.Right() < 0 {
			e.X += w.Width
		}
	}
	if w.Height > 0 {
		if e.Top() >= w.Height {
			e.Y -= w.Height
		} else if e.Bottom() < 0 {
			e.Y += w.Height
		}
	}
}

func (e *Entity) scaled(v float32) float64 {
	return float64(v) * e.Scale
}

// Left returns the world-space left edge.
func (e *Entity) Left() float64 { return e.X + e.scaled(e.Mesh.Left()) }

// Right returns the world-space right edge.
func (e *Entity) Right() float64 { return e.X + e.scaled(e.Mesh.Right()) }

// Top returns the world-space top edge (smallest y).
func (e *Entity) Top() float64 { return e.Y + e.scaled(e.Mesh.Top()) }

// Bottom returns the world-space bottom edge (largest y).
func (e *Entity) Bottom() float64 { return e.Y + e.scaled(e.Mesh.Bottom()) }

// SetLeft moves the entity so its left edge is at v.
func (e *Entity) SetLeft(v float64) { e.X = v - e.scaled(e.Mesh.Left()) }

// SetRight moves the entity so its right edge is at v.
func (e *Entity) SetRight(v float64) { e.X = v - e.scaled(e.Mesh.Right()) }

// SetTop moves the entity so its top edge is at v.
func (e *Entity) SetTop(v float64) { e.Y = v - e.scaled(e.Mesh.Top()) }

// SetBottom moves the entity so its bottom edge is at v.
func (e *Entity) SetBottom(v float64) { e.Y = v - e.scaled(e.Mesh.Bottom()) }

// CenterX assumes the mesh is centered on the origin.
func (e *Entity) CenterX() float64 { return e.X }

// CenterY assumes the mesh is centered on the origin.
func (e *Entity) CenterY() float64 { return e.Y }

// Radius is half the longer scaled side.
func (e *Entity) Radius() float64 {
	return math.Max(e.Width, e.Height) * e.Scale * 0.5
}

// Transform returns the render transform.
func (e *Entity) Transform() Transform {
	return Transform{X: e.X, Y: e.Y, Depth: e.Depth, Rotation: e.Rotation, Scale: e.Scale}
}

// ModelMatrix builds translate * rotateZ * scale for the entity.
func (e *Entity) ModelMatrix() mgl32.Mat4 {
	s := float32(e.Scale)
	return mgl32.Translate3D(float32(e.X), float32(e.Y), float32(e.Depth)).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(float32(e.Rotation)))).
		Mul4(mgl32.Scale3D(s, s, 1))
}

// PointList returns the mesh vertices in world space.
func (e *Entity) PointList() []geom.Point {
	return e.AppendPointList(make([]geom.Point, 0, e.Mesh.VertexCount()))
}

// AppendPointList appends the world-space vertices to dst.
func (e *Entity) AppendPointList(dst []geom.Point) []geom.Point {
	return e.Mesh.AppendScaledPointList(dst, e.X, e.Y, e.Rotation, e.Scale)
}
