package collision

import (
	"fmt"
	"slices"

	"github.com/tomz197/glasteroids/internal/geom"
	"github.com/tomz197/glasteroids/internal/object"
	"github.com/tomz197/glasteroids/internal/physics"
)

type pair struct {
	a, b object.Kind
}

type testFunc func(d *Detector, a, b *object.Entity) bool

// pairTests picks the geometric test by kind pair. Pairs not listed use
// IsAABBOverlapping.
var pairTests = map[pair]testFunc{
	{object.KindBullet, object.KindAsteroid}: pointVsHull,
	{object.KindAsteroid, object.KindBullet}: swapped(pointVsHull),
	{object.KindPlayer, object.KindAsteroid}: hullVsHull,
	{object.KindAsteroid, object.KindPlayer}: swapped(hullVsHull),
}

func swapped(fn testFunc) testFunc {
	return func(d *Detector, a, b *object.Entity) bool {
		return fn(d, b, a)
	}
}

// Detector runs collision tests and owns the scratch buffers they need.
// It is not safe for concurrent use; each simulation owns one.
type Detector struct {
	narrow Narrow
	grid   *physics.Grid[int]
	near   []int // grid candidates, sorted into slice order

	hullA []geom.Point
	hullB []geom.Point
}

// Option configures a Detector.
type Option func(*Detector)

// WithNarrow replaces the polygon stage.
func WithNarrow(n Narrow) Option {
	return func(d *Detector) {
		d.narrow = n
	}
}

// WithGrid buckets asteroids in a uniform grid during Pass so each bullet
// is only tested against nearby rocks. cellSize must be at least the
// largest sum of radii of any tested pair.
func WithGrid(world object.World, cellSize float64) Option {
	return func(d *Detector) {
		d.grid = physics.NewGrid[int](world.Width, world.Height, cellSize)
	}
}

// NewDetector creates a detector using the physics polygon tests unless
// configured otherwise.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		narrow: PhysicsNarrow{},
		hullA:  make([]geom.Point, 0, 32),
		hullB:  make([]geom.Point, 0, 32),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Colliding reports whether a and b touch. Testing an entity against
// itself is a programming error and panics.
func (d *Detector) Colliding(a, b *object.Entity) bool {
	if a == b {
		panic(fmt.Sprintf("collision: %s tested against itself", a.Kind))
	}
	if fn, ok := pairTests[pair{a.Kind, b.Kind}]; ok {
		return fn(d, a, b)
	}
	return IsAABBOverlapping(a, b)
}

// pointVsHull treats pt as a point and tests it against the outline of hull.
func pointVsHull(d *Detector, pt, hull *object.Entity) bool {
	if !AreBoundingSpheresOverlapping(pt, hull) {
		return false
	}
	d.hullB = hull.AppendPointList(d.hullB[:0])
	return d.narrow.PointInPolygon(d.hullB, pt.X, pt.Y)
}

// hullVsHull tests two outlines, then whether ship's center has already
// sunk inside hull without any edges crossing.
func hullVsHull(d *Detector, ship, hull *object.Entity) bool {
	if !AreBoundingSpheresOverlapping(ship, hull) {
		return false
	}
	d.hullA = ship.AppendPointList(d.hullA[:0])
	d.hullB = hull.AppendPointList(d.hullB[:0])
	if d.narrow.PolygonsIntersect(d.hullA, d.hullB) {
		return true
	}
	return d.narrow.PointInPolygon(d.hullB, ship.CenterX(), ship.CenterY())
}

// Pass tests every live bullet and, when playerVulnerable, the player
// against every live asteroid, notifying both sides of each hit. Entities
// that die during the pass are skipped for the rest of it. It returns the
// number of hits.
func (d *Detector) Pass(ctx *object.Context, bullets *object.Pool, asteroids []*object.Entity, player *object.Entity, playerVulnerable bool) int {
	hits := 0
	d.index(asteroids)

	if bullets != nil {
		bullets.Each(func(b *object.Entity) bool {
			d.candidates(asteroids, b, func(a *object.Entity) bool {
				if b.IsDead() {
					return true
				}
				if d.Colliding(b, a) {
					b.OnCollision(ctx, a)
					a.OnCollision(ctx, b)
					hits++
				}
				return false
			})
			return true
		})
	}

	if player == nil || !playerVulnerable || player.IsDead() {
		return hits
	}
	d.candidates(asteroids, player, func(a *object.Entity) bool {
		if d.Colliding(player, a) {
			player.OnCollision(ctx, a)
			a.OnCollision(ctx, player)
			hits++
		}
		return player.IsDead()
	})
	return hits
}

func (d *Detector) index(asteroids []*object.Entity) {
	if d.grid == nil {
		return
	}
	d.grid.Clear()
	for i, a := range asteroids {
		if !a.IsDead() {
			d.grid.Insert(a.X, a.Y, i)
		}
	}
}

// candidates calls fn with each live asteroid that could touch e, in slice
// order with or without a grid. fn returning true ends the walk.
func (d *Detector) candidates(asteroids []*object.Entity, e *object.Entity, fn func(a *object.Entity) bool) {
	if d.grid == nil {
		for _, a := range asteroids {
			if a.IsDead() {
				continue
			}
			if fn(a) {
				return
			}
		}
		return
	}
	d.near = d.near[:0]
	d.grid.QueryAround(e.X, e.Y, func(i int) bool {
		d.near = append(d.near, i)
		return false
	})
	slices.Sort(d.near)
	for _, i := range d.near {
		a := asteroids[i]
		if a.IsDead() {
			continue
		}
		if fn(a) {
			return
		}
	}
}
