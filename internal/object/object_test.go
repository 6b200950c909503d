package object

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tomz197/glasteroids/internal/event"
)

var testWorld = World{Width: 144, Height: 70}

type recordingHooks struct {
	pool    *Pool
	ctx     *Context
	fired   int
	hits    []*Entity
	damaged int
}

func (h *recordingHooks) FireBullet(source *Entity) bool {
	h.fired++
	if h.pool == nil {
		return true
	}
	return h.pool.FireFrom(h.ctx, source)
}

func (h *recordingHooks) AsteroidHit(a *Entity) { h.hits = append(h.hits, a) }

func (h *recordingHooks) PlayerDamaged(*Entity) { h.damaged++ }

func newTestContext() (*Context, *recordingHooks, *event.Queue) {
	q := event.NewQueue()
	hooks := &recordingHooks{}
	ctx := &Context{
		World:  testWorld,
		Events: q,
		Hooks:  hooks,
		Rand:   rand.New(rand.NewPCG(1, 2)),
	}
	hooks.ctx = ctx
	return ctx, hooks, q
}

func TestWrapByEdge(t *testing.T) {
	ctx, _, _ := newTestContext()

	tests := []struct {
		name  string
		place func(e *Entity, k float64)
		check func(e *Entity) float64
		want  func(k float64) float64
	}{
		{
			name:  "left edge past width",
			place: func(e *Entity, k float64) { e.SetLeft(testWorld.Width + k) },
			check: (*Entity).Left,
			want:  func(k float64) float64 { return k },
		},
		{
			name:  "right edge before zero",
			place: func(e *Entity, k float64) { e.SetRight(-k) },
			check: (*Entity).Right,
			want:  func(k float64) float64 { return testWorld.Width - k },
		},
		{
			name:  "top edge past height",
			place: func(e *Entity, k float64) { e.SetTop(testWorld.Height + k) },
			check: (*Entity).Top,
			want:  func(k float64) float64 { return k },
		},
		{
			name:  "bottom edge before zero",
			place: func(e *Entity, k float64) { e.SetBottom(-k) },
			check: (*Entity).Bottom,
			want:  func(k float64) float64 { return testWorld.Height - k },
		},
	}

	for _, tt := range tests {
		for _, k := range []float64{0.5, 3, 7.25} {
			t.Run(tt.name, func(t *testing.T) {
				e := NewAsteroid(ctx.Rand, 50, 30, TierLarge)
				e.VX, e.VY, e.Spin = 0, 0, 0
				tt.place(e, k)
				e.Update(ctx, 0.01)
				if got, want := tt.check(e), tt.want(k); math.Abs(got-want) > 1e-9 {
					t.Errorf("k=%v: edge at %v, want %v", k, got, want)
				}
			})
		}
	}
}

func TestWrapLeftEdgeAtWidth(t *testing.T) {
	ctx, _, _ := newTestContext()
	e := NewPlayer(0, 30)
	e.SetLeft(testWorld.Width)
	e.Wrap(ctx.World)
	if math.Abs(e.Left()) > 1e-9 {
		t.Errorf("left edge %v, want 0", e.Left())
	}
}

func TestWorldBoundsUseScale(t *testing.T) {
	e := NewPlayer(20, 20)
	if got, want := e.Right()-e.Left(), e.Width*e.Scale; math.Abs(got-want) > 1e-5 {
		t.Errorf("scaled width %v, want %v", got, want)
	}
	if got, want := e.Radius(), e.Height*e.Scale/2; got != want {
		t.Errorf("radius %v, want %v", got, want)
	}
}

func TestPoolCapacity(t *testing.T) {
	ctx, _, q := newTestContext()
	pool := NewBulletPool(BulletPoolSize)
	ship := NewPlayer(70, 35)

	for i := 0; i < BulletPoolSize; i++ {
		if !pool.FireFrom(ctx, ship) {
			t.Fatalf("fire %d failed with free slots", i)
		}
	}
	if pool.FireFrom(ctx, ship) {
		t.Fatal("fire beyond capacity succeeded")
	}
	if pool.Live() != BulletPoolSize {
		t.Errorf("Live = %d, want %d", pool.Live(), BulletPoolSize)
	}
	if !q.Pending(event.Fire) {
		t.Error("firing did not emit Fire")
	}

	// Once the TTL runs out every slot is reusable.
	for i := 0; i < 60; i++ {
		pool.Update(ctx, 0.01)
	}
	if pool.Live() != 0 {
		t.Fatalf("Live after TTL = %d", pool.Live())
	}
	if !pool.FireFrom(ctx, ship) {
		t.Error("fire after expiry failed")
	}
}

func TestBulletPoolSizeCoversCooldown(t *testing.T) {
	if BulletPoolSize != 3 {
		t.Errorf("BulletPoolSize = %d, want 3", BulletPoolSize)
	}
}

func TestDeadSlotsDoNotMove(t *testing.T) {
	ctx, _, _ := newTestContext()
	pool := NewParticlePool(4)
	pool.Update(ctx, 0.01)
	pool.Each(func(*Entity) bool {
		t.Error("dead slot visited")
		return true
	})
	if pool.items[0].X != 0 || pool.items[0].Y != 0 {
		t.Error("dead slot moved")
	}
}

func TestBurst(t *testing.T) {
	ctx, _, _ := newTestContext()
	pool := NewParticlePool(10)
	src := NewAsteroid(ctx.Rand, 50, 30, TierMedium)

	if n := pool.Burst(ctx, src, 4); n != 4 {
		t.Errorf("Burst(4) fired %d", n)
	}
	if n := pool.Burst(ctx, src, 20); n != 6 {
		t.Errorf("Burst into 6 free slots fired %d", n)
	}
	pool.Each(func(e *Entity) bool {
		if math.Abs(e.X-src.X) > ParticleSpread || math.Abs(e.Y-src.Y) > ParticleSpread {
			t.Errorf("particle at (%v, %v) outside spread", e.X, e.Y)
		}
		return true
	})
	pool.Reset()
	if pool.Live() != 0 {
		t.Errorf("Live after Reset = %d", pool.Live())
	}
}

func TestBurstSize(t *testing.T) {
	ctx, _, _ := newTestContext()
	for _, tier := range Tiers() {
		limit := ParticleCount / tier.Points()
		for i := 0; i < 50; i++ {
			if n := BurstSize(ctx, tier); n < 1 || n > limit {
				t.Fatalf("%s burst %d outside [1, %d]", tier, n, limit)
			}
		}
	}
}

func TestNewPoolRejectsUnpooledKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewPool(KindAsteroid) did not panic")
		}
	}()
	NewPool(KindAsteroid, 1, nil)
}

func TestCollisionResolution(t *testing.T) {
	ctx, hooks, q := newTestContext()
	bullets := NewBulletPool(1)
	ship := NewPlayer(20, 20)
	bullets.FireFrom(ctx, ship)
	bullet := &bullets.items[0]
	rock := NewAsteroid(ctx.Rand, 20, 20, TierLarge)
	star := NewStar(1, 1, White)

	bullet.OnCollision(ctx, star)
	if bullet.IsDead() {
		t.Fatal("bullet died against a star")
	}

	bullet.OnCollision(ctx, rock)
	rock.OnCollision(ctx, bullet)
	if !bullet.IsDead() || !rock.IsDead() {
		t.Fatalf("bullet dead %v, rock dead %v", bullet.IsDead(), rock.IsDead())
	}
	if len(hooks.hits) != 1 || hooks.hits[0] != rock {
		t.Errorf("AsteroidHit calls: %d", len(hooks.hits))
	}
	if !q.Pending(event.Hit) {
		t.Error("Hit not emitted")
	}

	// A second notification on an already dead rock is ignored.
	rock.OnCollision(ctx, bullet)
	if len(hooks.hits) != 1 {
		t.Errorf("dead rock reported another hit")
	}

	q.Flush(nil)
	rammed := NewAsteroid(ctx.Rand, 20, 20, TierSmall)
	ship.OnCollision(ctx, rammed)
	rammed.OnCollision(ctx, ship)
	if ship.IsDead() {
		t.Error("ship died on impact")
	}
	if !rammed.IsDead() {
		t.Error("rammed asteroid survived")
	}
	if hooks.damaged != 1 {
		t.Errorf("PlayerDamaged calls = %d", hooks.damaged)
	}
	if len(hooks.hits) != 1 || q.Pending(event.Hit) {
		t.Error("ramming an asteroid counted as a hit")
	}
	if !q.Pending(event.Damage) {
		t.Error("Damage not emitted")
	}
}

func TestPlayerFiresThroughHooks(t *testing.T) {
	ctx, hooks, _ := newTestContext()
	hooks.pool = NewBulletPool(BulletPoolSize)
	ship := NewPlayer(70, 35)
	ctx.Controls = Controls{Fire: true}

	ship.Update(ctx, 0.01)
	if hooks.fired != 1 || hooks.pool.Live() != 1 {
		t.Fatalf("fired %d, live %d", hooks.fired, hooks.pool.Live())
	}
	if ship.Color != FireColor {
		t.Errorf("ship color %v while firing", ship.Color)
	}
	// Recoil pushes the ship away from its heading (+y at rotation 0).
	if ship.VY <= 0 {
		t.Errorf("recoil VY = %v, want > 0", ship.VY)
	}

	// Cooldown blocks the next shot.
	ship.Update(ctx, 0.01)
	if hooks.pool.Live() != 1 {
		t.Errorf("fired during cooldown")
	}

	var b *Entity
	hooks.pool.Each(func(e *Entity) bool {
		b = e
		return false
	})
	nx, ny := ship.NosePosition()
	if b.VY >= ship.VY || math.Abs(b.X-nx) > 1 || math.Abs(b.Y-ny) > 2 {
		t.Errorf("bullet at (%v, %v) v=(%v, %v), nose (%v, %v)", b.X, b.Y, b.VX, b.VY, nx, ny)
	}
}

func TestPlayerSteersAndThrusts(t *testing.T) {
	ctx, _, q := newTestContext()
	ship := NewPlayer(70, 35)

	ctx.Controls = Controls{HorizontalFactor: 1}
	ship.Update(ctx, 0.25)
	if math.Abs(ship.Rotation-90) > 1e-9 {
		t.Fatalf("rotation %v, want 90", ship.Rotation)
	}

	ctx.Controls = Controls{Thrust: true}
	ship.Update(ctx, 0.01)
	if ship.VX <= 0 || math.Abs(ship.VY) > 1e-9 {
		t.Errorf("thrust at 90 degrees gave v=(%v, %v)", ship.VX, ship.VY)
	}
	if !q.Pending(event.Boost) {
		t.Error("Boost not emitted")
	}

	// Drag slows the ship once thrust stops.
	ctx.Controls = Controls{}
	v := ship.VX
	ship.Update(ctx, 0.01)
	if ship.VX >= v {
		t.Errorf("VX %v did not decay from %v", ship.VX, v)
	}
}

func TestTierTable(t *testing.T) {
	tests := []struct {
		tier      Tier
		points    int
		split     int
		child     Tier
		hasChild  bool
		scaleLess float64
	}{
		{TierLarge, 20, 2, TierMedium, true, 1.01},
		{TierMedium, 50, 2, TierSmall, true, 1.0},
		{TierSmall, 100, 0, 0, false, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			if tt.tier.Points() != tt.points || tt.tier.SplitCount() != tt.split {
				t.Errorf("points %d split %d", tt.tier.Points(), tt.tier.SplitCount())
			}
			child, ok := tt.tier.Child()
			if ok != tt.hasChild || (ok && child != tt.child) {
				t.Errorf("Child() = %v, %v", child, ok)
			}
			if tt.tier.Scale() >= tt.scaleLess {
				t.Errorf("scale %v not below %v", tt.tier.Scale(), tt.scaleLess)
			}
		})
	}
}

func TestNewAsteroid(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for _, tier := range Tiers() {
		for i := 0; i < 20; i++ {
			a := NewAsteroid(rng, 10, 10, tier)
			if a.Sides < MinAsteroidSides || a.Sides > MaxAsteroidSides {
				t.Fatalf("sides %d", a.Sides)
			}
			if a.Mesh.VertexCount() != 2*a.Sides {
				t.Fatalf("mesh has %d vertices for %d sides", a.Mesh.VertexCount(), a.Sides)
			}
			if math.Abs(a.VX) > tier.Speed() || math.Abs(a.VY) > tier.Speed() {
				t.Fatalf("velocity (%v, %v) beyond ±%v", a.VX, a.VY, tier.Speed())
			}
			if a.Width != AsteroidSize || a.Scale != tier.Scale() {
				t.Fatalf("width %v scale %v", a.Width, a.Scale)
			}
		}
	}
}

func TestAsteroidsOwnTheirMesh(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	a := NewAsteroid(rng, 0, 0, TierLarge)
	b := NewAsteroid(rng, 0, 0, TierLarge)
	if a.Mesh == b.Mesh {
		t.Error("asteroids share a mesh")
	}
	if NewPlayer(0, 0).Mesh != NewPlayer(1, 1).Mesh {
		t.Error("ships do not share the hull")
	}
}

func TestSetColor(t *testing.T) {
	e := NewStar(0, 0, White)
	e.SetColor(0.1, 0.2, 0.3, 0.4)
	if e.Color != (Color{0.1, 0.2, 0.3, 0.4}) {
		t.Errorf("color %v", e.Color)
	}

	for _, n := range []int{0, 3, 5} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("SetColor with %d components did not panic", n)
				}
			}()
			e.SetColor(make([]float32, n)...)
		}()
	}
}

func TestModelMatrixMatchesPointList(t *testing.T) {
	ship := NewPlayer(30, 40)
	ship.Rotation = 125
	points := ship.PointList()
	m := ship.ModelMatrix()
	for i, v := range ship.Mesh.Vertices() {
		w := m.Mul4x1(v.Vec4(1))
		if math.Abs(float64(w.X())-points[i].X) > 1e-3 || math.Abs(float64(w.Y())-points[i].Y) > 1e-3 {
			t.Errorf("vertex %d: matrix %v, points %+v", i, w, points[i])
		}
	}
}

func TestStaticKindsDoNotMove(t *testing.T) {
	ctx, _, _ := newTestContext()
	star := NewStar(5, 6, Red)
	star.VX = 10
	star.Update(ctx, 1)
	border := NewBorder(testWorld, Red)
	border.Update(ctx, 1)
	if star.X != 5 || border.X != testWorld.Width/2 {
		t.Error("scenery moved")
	}
	if border.Left() != 0 || border.Right() != testWorld.Width {
		t.Errorf("border spans [%v, %v]", border.Left(), border.Right())
	}
}
