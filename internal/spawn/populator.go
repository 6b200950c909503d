package spawn

import (
	"math/rand/v2"

	"github.com/tomz197/glasteroids/internal/object"
)

// Level population defaults.
const (
	DefaultStarCount         = 100
	DefaultAsteroidsPerLevel = 2
)

// Populator builds the scenery and asteroid field for a level.
type Populator struct {
	StarCount         int
	AsteroidsPerLevel int
	// Tiers to pick from; empty means all of them.
	Tiers []object.Tier
}

// NewPopulator creates a populator with the default counts.
func NewPopulator() *Populator {
	return &Populator{
		StarCount:         DefaultStarCount,
		AsteroidsPerLevel: DefaultAsteroidsPerLevel,
	}
}

// Level is a freshly built level.
type Level struct {
	Number    int
	Color     object.Color
	Stars     []*object.Entity
	Asteroids []*object.Entity
}

// AsteroidCount returns how many asteroids the given level starts with.
func (p *Populator) AsteroidCount(level int) int {
	return max(p.AsteroidsPerLevel*level, 0)
}

// Build populates level n with stars and asteroids at random whole-meter
// positions inside world, each asteroid of a random tier.
func (p *Populator) Build(rng *rand.Rand, world object.World, level int) Level {
	color := object.Palette[rng.IntN(len(object.Palette))]
	tiers := p.Tiers
	if len(tiers) == 0 {
		tiers = object.Tiers()
	}

	stars := make([]*object.Entity, 0, max(p.StarCount, 0))
	for i := 0; i < p.StarCount; i++ {
		x, y := randomCell(rng, world)
		stars = append(stars, object.NewStar(x, y, color))
	}

	count := p.AsteroidCount(level)
	asteroids := make([]*object.Entity, 0, count)
	for i := 0; i < count; i++ {
		x, y := randomCell(rng, world)
		tier := tiers[rng.IntN(len(tiers))]
		asteroids = append(asteroids, object.NewAsteroid(rng, x, y, tier))
	}

	return Level{
		Number:    level,
		Color:     color,
		Stars:     stars,
		Asteroids: asteroids,
	}
}

func randomCell(rng *rand.Rand, world object.World) (float64, float64) {
	return float64(rng.IntN(max(int(world.Width), 1))), float64(rng.IntN(max(int(world.Height), 1)))
}
