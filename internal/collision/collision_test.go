package collision

import (
	"math/rand/v2"
	"testing"

	"github.com/tomz197/glasteroids/internal/event"
	"github.com/tomz197/glasteroids/internal/geom"
	"github.com/tomz197/glasteroids/internal/object"
)

var testWorld = object.World{Width: 144, Height: 70}

// countingNarrow records how often the polygon stage runs.
type countingNarrow struct {
	PhysicsNarrow
	pointCalls   int
	polygonCalls int
	hullsMiss    bool // force PolygonsIntersect to report no contact
}

func (c *countingNarrow) PointInPolygon(polygon []geom.Point, px, py float64) bool {
	c.pointCalls++
	return c.PhysicsNarrow.PointInPolygon(polygon, px, py)
}

func (c *countingNarrow) PolygonsIntersect(a, b []geom.Point) bool {
	c.polygonCalls++
	if c.hullsMiss {
		return false
	}
	return c.PhysicsNarrow.PolygonsIntersect(a, b)
}

type hooks struct {
	hits    int
	damaged int
}

func (h *hooks) FireBullet(*object.Entity) bool { return false }

func (h *hooks) AsteroidHit(*object.Entity) { h.hits++ }

func (h *hooks) PlayerDamaged(*object.Entity) { h.damaged++ }

func newContext() (*object.Context, *hooks) {
	h := &hooks{}
	return &object.Context{
		World:  testWorld,
		Events: event.NewQueue(),
		Hooks:  h,
		Rand:   rand.New(rand.NewPCG(11, 12)),
	}, h
}

func rockAt(ctx *object.Context, x, y float64, tier object.Tier) *object.Entity {
	a := object.NewAsteroid(ctx.Rand, x, y, tier)
	a.VX, a.VY, a.Spin = 0, 0, 0
	return a
}

// bulletAt fires a bullet from the pool and parks it at (x, y).
func bulletAt(ctx *object.Context, pool *object.Pool, x, y float64) *object.Entity {
	ship := object.NewPlayer(x, y)
	if !pool.FireFrom(ctx, ship) {
		panic("pool full")
	}
	// The fresh bullet is the only one still moving; parked ones are at rest.
	var b *object.Entity
	pool.Each(func(e *object.Entity) bool {
		if e.VX != 0 || e.VY != 0 {
			b = e
		}
		return true
	})
	b.X, b.Y, b.VX, b.VY = x, y, 0, 0
	return b
}

func TestBroadPhaseGatesNarrowPhase(t *testing.T) {
	ctx, _ := newContext()
	pool := object.NewBulletPool(2)

	tests := []struct {
		name        string
		bx, by      float64
		wantHit     bool
		wantNarrow  int
		shipInstead bool
	}{
		{name: "bullet far away", bx: 100, by: 60, wantHit: false, wantNarrow: 0},
		{name: "bullet at center", bx: 30, by: 30, wantHit: true, wantNarrow: 1},
		{name: "ship far away", bx: 100, by: 60, wantHit: false, wantNarrow: 0, shipInstead: true},
		{name: "ship on top", bx: 30, by: 30, wantHit: true, wantNarrow: 1, shipInstead: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			narrow := &countingNarrow{}
			d := NewDetector(WithNarrow(narrow))
			rock := rockAt(ctx, 30, 30, object.TierLarge)

			var other *object.Entity
			if tt.shipInstead {
				other = object.NewPlayer(tt.bx, tt.by)
			} else {
				pool.Reset()
				other = bulletAt(ctx, pool, tt.bx, tt.by)
			}

			if got := d.Colliding(other, rock); got != tt.wantHit {
				t.Errorf("Colliding = %v, want %v", got, tt.wantHit)
			}
			if calls := narrow.pointCalls + narrow.polygonCalls; calls != tt.wantNarrow {
				t.Errorf("narrow phase ran %d times, want %d", calls, tt.wantNarrow)
			}
		})
	}
}

func TestPointInsideSphereRunsPointTest(t *testing.T) {
	ctx, _ := newContext()
	narrow := &countingNarrow{}
	d := NewDetector(WithNarrow(narrow))
	rock := rockAt(ctx, 30, 30, object.TierLarge)

	// Just inside the bounding circle of radius 6.
	pool := object.NewBulletPool(1)
	b := bulletAt(ctx, pool, 30+4.2, 30+4.2)

	if !AreBoundingSpheresOverlapping(b, rock) {
		t.Fatal("test point should pass the sphere gate")
	}
	d.Colliding(b, rock)
	if narrow.pointCalls != 1 {
		t.Errorf("point test ran %d times", narrow.pointCalls)
	}
}

func TestShipCenterInsideHullCountsAsHit(t *testing.T) {
	ctx, _ := newContext()
	narrow := &countingNarrow{hullsMiss: true}
	d := NewDetector(WithNarrow(narrow))

	// A large rock swallowing the ship; the hull test is forced to miss.
	rock := rockAt(ctx, 50, 35, object.TierLarge)
	ship := object.NewPlayer(50, 35)
	ship.Scale = 0.5

	if !d.Colliding(ship, rock) {
		t.Fatal("ship inside rock not colliding")
	}
	if narrow.polygonCalls != 1 || narrow.pointCalls != 1 {
		t.Errorf("polygon calls %d, point calls %d; want 1 and 1", narrow.polygonCalls, narrow.pointCalls)
	}
}

func TestSymmetricKindPairs(t *testing.T) {
	ctx, _ := newContext()
	d := NewDetector()
	rock := rockAt(ctx, 30, 30, object.TierMedium)
	ship := object.NewPlayer(31, 30)
	if d.Colliding(ship, rock) != d.Colliding(rock, ship) {
		t.Error("ship/rock test is not symmetric")
	}
}

func TestAABBFallback(t *testing.T) {
	tests := []struct {
		name string
		a, b *object.Entity
		want bool
	}{
		{
			name: "overlapping borders",
			a:    object.NewBorder(object.World{Width: 10, Height: 10}, object.Red),
			b:    object.NewBorder(object.World{Width: 14, Height: 14}, object.Red),
			want: true,
		},
		{
			name: "ship and far star",
			a:    object.NewPlayer(10, 10),
			b:    object.NewStar(100, 60, object.White),
			want: false,
		},
	}
	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Colliding(tt.a, tt.b); got != tt.want {
				t.Errorf("Colliding = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelfTestPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("testing an entity against itself did not panic")
		}
	}()
	ship := object.NewPlayer(0, 0)
	NewDetector().Colliding(ship, ship)
}

func TestGetOverlap(t *testing.T) {
	a := object.NewBorder(object.World{Width: 10, Height: 10}, object.Red) // centered at (5, 5)
	b := object.NewBorder(object.World{Width: 10, Height: 10}, object.Red)

	b.X, b.Y = 13, 6
	got, ok := GetOverlap(a, b)
	if !ok {
		t.Fatal("boxes should overlap")
	}
	// x penetration 2, y penetration 9: push along x, away from b.
	if got.X != -2 || got.Y != 0 {
		t.Errorf("overlap = %+v, want {-2 0}", got)
	}

	b.X, b.Y = 25, 5
	if _, ok := GetOverlap(a, b); ok {
		t.Error("separated boxes reported overlapping")
	}
}

func TestPassResolvesHits(t *testing.T) {
	for _, withGrid := range []bool{false, true} {
		name := "linear"
		if withGrid {
			name = "grid"
		}
		t.Run(name, func(t *testing.T) {
			ctx, h := newContext()
			var opts []Option
			if withGrid {
				opts = append(opts, WithGrid(testWorld, object.AsteroidSize))
			}
			d := NewDetector(opts...)

			// Two rocks stacked on one bullet: only one may be destroyed.
			pool := object.NewBulletPool(3)
			bulletAt(ctx, pool, 20, 20)
			rocks := []*object.Entity{
				rockAt(ctx, 20, 20, object.TierLarge),
				rockAt(ctx, 20, 20, object.TierSmall),
				rockAt(ctx, 100, 50, object.TierMedium),
			}
			ship := object.NewPlayer(100, 50)

			hits := d.Pass(ctx, pool, rocks, ship, true)
			if h.hits != 1 {
				t.Errorf("asteroid hits = %d, want 1", h.hits)
			}
			if pool.Live() != 0 {
				t.Errorf("bullet survived its hit")
			}
			dead := 0
			for _, r := range rocks[:2] {
				if r.IsDead() {
					dead++
				}
			}
			if dead != 1 {
				t.Errorf("%d stacked rocks died, want 1", dead)
			}
			if h.damaged != 1 || !rocks[2].IsDead() {
				t.Errorf("ship damage %d, rammed rock dead %v", h.damaged, rocks[2].IsDead())
			}
			if hits != 2 {
				t.Errorf("Pass returned %d, want 2", hits)
			}
		})
	}
}

func TestPassSkipsInvulnerablePlayer(t *testing.T) {
	ctx, h := newContext()
	d := NewDetector()
	rocks := []*object.Entity{rockAt(ctx, 40, 40, object.TierLarge)}
	ship := object.NewPlayer(40, 40)

	if n := d.Pass(ctx, object.NewBulletPool(1), rocks, ship, false); n != 0 {
		t.Errorf("hits = %d", n)
	}
	if h.damaged != 0 || rocks[0].IsDead() {
		t.Error("invulnerable ship collided")
	}
}

func TestPassIgnoresDeadAsteroids(t *testing.T) {
	ctx, h := newContext()
	narrow := &countingNarrow{}
	d := NewDetector(WithNarrow(narrow))
	rock := rockAt(ctx, 40, 40, object.TierLarge)
	rock.Kill()
	pool := object.NewBulletPool(1)
	bulletAt(ctx, pool, 40, 40)

	d.Pass(ctx, pool, []*object.Entity{rock}, object.NewPlayer(40, 40), true)
	if h.hits != 0 || h.damaged != 0 || narrow.pointCalls+narrow.polygonCalls != 0 {
		t.Error("dead asteroid took part in the pass")
	}
}

func TestGridVisitsRocksInSliceOrder(t *testing.T) {
	for _, withGrid := range []bool{false, true} {
		name := "linear"
		if withGrid {
			name = "grid"
		}
		t.Run(name, func(t *testing.T) {
			ctx, h := newContext()
			var opts []Option
			if withGrid {
				opts = append(opts, WithGrid(testWorld, object.AsteroidSize))
			}
			d := NewDetector(opts...)

			// The first rock sits in a later grid cell than the second;
			// both contain the bullet.
			pool := object.NewBulletPool(1)
			bulletAt(ctx, pool, 50, 35)
			rocks := []*object.Entity{
				rockAt(ctx, 53, 35, object.TierLarge),
				rockAt(ctx, 47, 35, object.TierLarge),
			}

			d.Pass(ctx, pool, rocks, nil, false)
			if h.hits != 1 {
				t.Fatalf("asteroid hits = %d, want 1", h.hits)
			}
			if !rocks[0].IsDead() || rocks[1].IsDead() {
				t.Errorf("dead: first=%v second=%v, want first only", rocks[0].IsDead(), rocks[1].IsDead())
			}
		})
	}
}
