// Package spawn builds levels and turns shot asteroids into their children.
package spawn

import (
	"math/rand/v2"

	"github.com/tomz197/glasteroids/internal/object"
)

// Buffer stages asteroids created during a collision pass until the pass
// is over, so the live list is never appended to while it is iterated.
type Buffer struct {
	pending []*object.Entity
}

// Stage queues a new asteroid.
func (b *Buffer) Stage(e *object.Entity) {
	b.pending = append(b.pending, e)
}

// Len returns the number of staged asteroids.
func (b *Buffer) Len() int {
	return len(b.pending)
}

// DrainInto appends everything staged to live, empties the buffer and
// returns the grown slice.
func (b *Buffer) DrainInto(live []*object.Entity) []*object.Entity {
	live = append(live, b.pending...)
	clear(b.pending)
	b.pending = b.pending[:0]
	return live
}

// Reset drops everything staged.
func (b *Buffer) Reset() {
	clear(b.pending)
	b.pending = b.pending[:0]
}

// Split stages the children of a shot asteroid at its last position and
// returns how many were staged. The smallest tier leaves nothing behind.
func Split(rng *rand.Rand, parent *object.Entity, buf *Buffer) int {
	child, ok := parent.Tier.Child()
	if !ok {
		return 0
	}
	n := parent.Tier.SplitCount()
	for i := 0; i < n; i++ {
		buf.Stage(object.NewAsteroid(rng, parent.X, parent.Y, child))
	}
	return n
}

// RemoveDead compacts live in place, dropping dead asteroids while keeping
// the survivors in order.
func RemoveDead(live []*object.Entity) []*object.Entity {
	kept := live[:0]
	for _, e := range live {
		if !e.IsDead() {
			kept = append(kept, e)
		}
	}
	clear(live[len(kept):])
	return kept
}

// LevelCleared reports whether the level is won: no asteroids left while
// the player still has health.
func LevelCleared(live []*object.Entity, health int) bool {
	return len(live) == 0 && health > 0
}
