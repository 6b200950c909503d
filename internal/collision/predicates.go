// Package collision decides which entity pairs touch and notifies them.
package collision

import (
	"math"

	"github.com/tomz197/glasteroids/internal/geom"
	"github.com/tomz197/glasteroids/internal/object"
	"github.com/tomz197/glasteroids/internal/physics"
)

// AreBoundingSpheresOverlapping is the cheap rejection test run before any
// polygon math. Radius is half an entity's longer scaled side.
func AreBoundingSpheresOverlapping(a, b *object.Entity) bool {
	return physics.CirclesOverlap(a.CenterX(), a.CenterY(), a.Radius(), b.CenterX(), b.CenterY(), b.Radius())
}

// IsAABBOverlapping compares world-space bounding boxes. Touching boxes do
// not overlap.
func IsAABBOverlapping(a, b *object.Entity) bool {
	return !(a.Right() <= b.Left() || b.Right() <= a.Left() ||
		a.Bottom() <= b.Top() || b.Bottom() <= a.Top())
}

// GetOverlap reports whether the boxes of a and b overlap and, if so, the
// push along the axis of least penetration that would separate a from b.
// When both axes penetrate equally both components are set.
//
// Nothing in the default resolution uses this; it is here for callers that
// want a physical push-apart.
func GetOverlap(a, b *object.Entity) (geom.Point, bool) {
	var overlap geom.Point

	centerDeltaX := a.CenterX() - b.CenterX()
	halfWidths := (a.Width*a.Scale + b.Width*b.Scale) * 0.5
	dx := math.Abs(centerDeltaX)
	if dx > halfWidths {
		return overlap, false
	}

	centerDeltaY := a.CenterY() - b.CenterY()
	halfHeights := (a.Height*a.Scale + b.Height*b.Scale) * 0.5
	dy := math.Abs(centerDeltaY)
	if dy > halfHeights {
		return overlap, false
	}

	dx = halfWidths - dx
	dy = halfHeights - dy
	switch {
	case dy < dx:
		overlap.Y = math.Copysign(dy, centerDeltaY)
	case dy > dx:
		overlap.X = math.Copysign(dx, centerDeltaX)
	default:
		overlap.X = math.Copysign(dx, centerDeltaX)
		overlap.Y = math.Copysign(dy, centerDeltaY)
	}
	return overlap, true
}

// Narrow is the exact polygon stage. It only runs after the bounding
// spheres overlap.
type Narrow interface {
	PointInPolygon(polygon []geom.Point, px, py float64) bool
	PolygonsIntersect(a, b []geom.Point) bool
}

// PhysicsNarrow implements Narrow with the physics package.
type PhysicsNarrow struct{}

// PointInPolygon implements Narrow.
func (PhysicsNarrow) PointInPolygon(polygon []geom.Point, px, py float64) bool {
	return physics.PointInPolygon(polygon, px, py)
}

// PolygonsIntersect implements Narrow.
func (PhysicsNarrow) PolygonsIntersect(a, b []geom.Point) bool {
	return physics.PolygonsIntersect(a, b)
}
