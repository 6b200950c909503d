package physics

import "github.com/tomz197/glasteroids/internal/geom"

// PointInPolygon reports whether (px, py) lies inside the closed polygon
// described by vertices, using the even-odd ray crossing rule.
//
// Consecutive duplicate vertices (as produced by line-pair outlines) form
// zero-length edges, which never cross the ray and are therefore harmless.
func PointInPolygon(vertices []geom.Point, px, py float64) bool {
	inside := false
	n := len(vertices)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := vertices[i], vertices[j]
		if (a.Y > py) != (b.Y > py) {
			crossX := (b.X-a.X)*(py-a.Y)/(b.Y-a.Y) + a.X
			if px < crossX {
				inside = !inside
			}
		}
	}
	return inside
}

// orientation returns >0 for a counterclockwise turn a->b->c, <0 for
// clockwise and 0 for collinear points.
func orientation(a, b, c geom.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment reports whether c, known to be collinear with a-b, lies within its box.
func onSegment(a, b, c geom.Point) bool {
	return min(a.X, b.X) <= c.X && c.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= c.Y && c.Y <= max(a.Y, b.Y)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// SegmentsIntersect reports whether segment p1-p2 touches or crosses q1-q2.
func SegmentsIntersect(p1, p2, q1, q2 geom.Point) bool {
	d1 := sign(orientation(q1, q2, p1))
	d2 := sign(orientation(q1, q2, p2))
	d3 := sign(orientation(p1, p2, q1))
	d4 := sign(orientation(p1, p2, q2))

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// PolygonsIntersect reports whether any edge of polygon a crosses an edge of
// polygon b, or whether either polygon has a vertex inside the other.
// Both polygons are treated as closed rings. Two convex rings go through
// resolv; anything else is tested edge by edge.
func PolygonsIntersect(a, b []geom.Point) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	ra, rb := Ring(a), Ring(b)
	if IsConvex(ra) && IsConvex(rb) {
		return convexIntersect(ra, rb)
	}
	return segmentsIntersect(a, b)
}

func segmentsIntersect(a, b []geom.Point) bool {
	for i := range a {
		a1, a2 := a[i], a[(i+1)%len(a)]
		for j := range b {
			if SegmentsIntersect(a1, a2, b[j], b[(j+1)%len(b)]) {
				return true
			}
		}
	}
	return PointInPolygon(b, a[0].X, a[0].Y) || PointInPolygon(a, b[0].X, b[0].Y)
}
