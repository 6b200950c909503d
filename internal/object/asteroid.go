package object

import (
	"fmt"
	"math/rand/v2"

	"github.com/tomz197/glasteroids/internal/geom"
)

// Tier is an asteroid size category.
type Tier uint8

const (
	TierLarge Tier = iota
	TierMedium
	TierSmall

	tierCount
)

type tierSpec struct {
	name       string
	scale      float64
	speed      float64
	points     int
	splitCount int
	child      Tier
	terminal   bool
}

// tiers is the closed size hierarchy: large -> medium -> small -> nothing.
var tiers = [tierCount]tierSpec{
	TierLarge:  {name: "large", scale: 1.0, speed: 8, points: 20, splitCount: 2, child: TierMedium},
	TierMedium: {name: "medium", scale: 0.6, speed: 12, points: 50, splitCount: 2, child: TierSmall},
	TierSmall:  {name: "small", scale: 0.35, speed: 16, points: 100, terminal: true},
}

// Asteroid construction.
const (
	AsteroidSize     = 12.0 // Unscaled width and height, meters
	MinAsteroidSides = 5
	MaxAsteroidSides = 9
	MaxAsteroidSpin  = 45.0 // Degrees per second
)

// Tiers returns every tier, largest first.
func Tiers() []Tier {
	return []Tier{TierLarge, TierMedium, TierSmall}
}

func (t Tier) spec() tierSpec {
	if t >= tierCount {
		panic(fmt.Sprintf("object: invalid asteroid tier %d", uint8(t)))
	}
	return tiers[t]
}

func (t Tier) String() string {
	if t >= tierCount {
		return fmt.Sprintf("tier(%d)", uint8(t))
	}
	return tiers[t].name
}

// Scale is the entity scale of asteroids in this tier.
func (t Tier) Scale() float64 { return t.spec().scale }

// Speed bounds each velocity component to ±Speed.
func (t Tier) Speed() float64 { return t.spec().speed }

// Points is the score awarded for shooting an asteroid of this tier.
func (t Tier) Points() int { return t.spec().points }

// SplitCount is how many children a shot asteroid leaves behind.
func (t Tier) SplitCount() int { return t.spec().splitCount }

// Child returns the next smaller tier. ok is false for the smallest tier.
func (t Tier) Child() (child Tier, ok bool) {
	s := t.spec()
	return s.child, !s.terminal
}

// NewAsteroid creates an asteroid of the given tier at (x, y) with a random
// outline and a velocity drawn uniformly from ±tier speed on each axis.
func NewAsteroid(rng *rand.Rand, x, y float64, tier Tier) *Entity {
	spec := tier.spec()
	sides := MinAsteroidSides + rng.IntN(MaxAsteroidSides-MinAsteroidSides+1)

	mesh := geom.NewMesh(geom.GeneratePolygonOutline(sides, AsteroidSize/2), geom.Lines)
	mesh.SetWidthHeight(AsteroidSize, AsteroidSize)

	return &Entity{
		Kind:     KindAsteroid,
		X:        x,
		Y:        y,
		VX:       Between(rng, -spec.speed, spec.speed),
		VY:       Between(rng, -spec.speed, spec.speed),
		Rotation: rng.Float64() * 360,
		Spin:     Between(rng, -MaxAsteroidSpin, MaxAsteroidSpin),
		Scale:    spec.scale,
		Width:    AsteroidSize,
		Height:   AsteroidSize,
		Mesh:     mesh,
		Color:    White,
		Alive:    true,
		Tier:     tier,
		Sides:    sides,
	}
}
