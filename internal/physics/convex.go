package physics

import (
	"github.com/solarlune/resolv"

	"github.com/tomz197/glasteroids/internal/geom"
)

// ringEpsilon is the squared distance under which two vertices are one.
const ringEpsilon = 1e-12

// Ring drops repeated vertices from an outline: consecutive duplicates
// from line-pair meshes and a closing vertex equal to the first.
func Ring(vertices []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(vertices))
	for _, v := range vertices {
		if n := len(out); n > 0 && samePoint(out[n-1], v) {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func samePoint(a, b geom.Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy < ringEpsilon
}

// IsConvex reports whether ring, without repeated vertices, turns the same
// way at every corner. Collinear corners are allowed.
func IsConvex(ring []geom.Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	turn := 0
	for i := range ring {
		s := sign(orientation(ring[i], ring[(i+1)%n], ring[(i+2)%n]))
		if s == 0 {
			continue
		}
		if turn != 0 && s != turn {
			return false
		}
		turn = s
	}
	return turn != 0
}

// convexPolygon builds a resolv shape at the origin with ring's vertices
// as absolute coordinates.
func convexPolygon(ring []geom.Point) *resolv.ConvexPolygon {
	coords := make([]float64, 0, len(ring)*2)
	for _, p := range ring {
		coords = append(coords, p.X, p.Y)
	}
	return resolv.NewConvexPolygon(0, 0, coords...)
}

// convexIntersect runs resolv's separating axis test on two convex rings,
// then checks containment, which produces no crossing edges.
func convexIntersect(a, b []geom.Point) bool {
	if convexPolygon(a).Intersection(0, 0, convexPolygon(b)) != nil {
		return true
	}
	return PointInPolygon(b, a[0].X, a[0].Y) || PointInPolygon(a, b[0].X, b[0].Y)
}
