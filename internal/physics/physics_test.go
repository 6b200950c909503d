package physics

import (
	"math"
	"sort"
	"testing"

	"github.com/tomz197/glasteroids/internal/geom"
)

func hexagon(cx, cy, r float64) []geom.Point {
	pts := make([]geom.Point, 6)
	for i := range pts {
		theta := float64(i) * math.Pi / 3
		pts[i] = geom.Point{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)}
	}
	return pts
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name       string
		x1, y1, r1 float64
		x2, y2, r2 float64
		want       bool
	}{
		{"same center", 0, 0, 1, 0, 0, 1, true},
		{"overlapping", 0, 0, 2, 3, 0, 2, true},
		{"touching", 0, 0, 1, 2, 0, 1, false},
		{"apart", 0, 0, 1, 5, 5, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesOverlap(tt.x1, tt.y1, tt.r1, tt.x2, tt.y2, tt.r2); got != tt.want {
				t.Errorf("CirclesOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	hex := hexagon(10, 10, 5)

	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"centroid", 10, 10, true},
		{"inside near edge", 14, 10, true},
		{"outside radius", 16, 10, false},
		{"far away", -50, 3, false},
		{"above", 10, 16, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(hex, tt.px, tt.py); got != tt.want {
				t.Errorf("PointInPolygon(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestPointInPolygonLinePairs(t *testing.T) {
	// Outline meshes repeat each shared vertex; the test must still work.
	hex := hexagon(0, 0, 5)
	var pairs []geom.Point
	for i := range hex {
		pairs = append(pairs, hex[i], hex[(i+1)%len(hex)])
	}
	if !PointInPolygon(pairs, 0, 0) {
		t.Error("center not inside line-pair ring")
	}
	if PointInPolygon(pairs, 6, 0) {
		t.Error("outside point reported inside line-pair ring")
	}
}

func TestPointInPolygonDegenerate(t *testing.T) {
	if PointInPolygon(nil, 0, 0) {
		t.Error("empty polygon contains point")
	}
	if PointInPolygon([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0.5, 0.5) {
		t.Error("two-point polygon contains point")
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, q1, q2 geom.Point
		want           bool
	}{
		{"crossing", geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 2}, geom.Point{X: 0, Y: 2}, geom.Point{X: 2, Y: 0}, true},
		{"parallel", geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}, geom.Point{X: 0, Y: 1}, geom.Point{X: 2, Y: 1}, false},
		{"touching end", geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 1}, geom.Point{X: 1, Y: 1}, geom.Point{X: 2, Y: 0}, true},
		{"collinear overlap", geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}, geom.Point{X: 1, Y: 0}, geom.Point{X: 3, Y: 0}, true},
		{"collinear apart", geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0}, geom.Point{X: 2, Y: 0}, geom.Point{X: 3, Y: 0}, false},
		{"zero length on segment", geom.Point{X: 1, Y: 0}, geom.Point{X: 1, Y: 0}, geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}, true},
		{"zero length off segment", geom.Point{X: 1, Y: 1}, geom.Point{X: 1, Y: 1}, geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.p1, tt.p2, tt.q1, tt.q2); got != tt.want {
				t.Errorf("SegmentsIntersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygonsIntersect(t *testing.T) {
	hex := hexagon(10, 10, 5)
	tri := func(ox, oy float64) []geom.Point {
		return []geom.Point{{X: ox, Y: oy - 1}, {X: ox - 1, Y: oy + 1}, {X: ox + 1, Y: oy + 1}}
	}

	tests := []struct {
		name string
		a    []geom.Point
		want bool
	}{
		{"edge crossing", tri(15, 10), true},
		{"fully inside", tri(10, 10), true},
		{"outside", tri(30, 30), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonsIntersect(tt.a, hex); got != tt.want {
				t.Errorf("PolygonsIntersect = %v, want %v", got, tt.want)
			}
		})
	}

	// Containment is detected in both directions.
	big := hexagon(0, 0, 50)
	if !PolygonsIntersect(big, tri(0, 0)) {
		t.Error("container polygon does not intersect contained polygon")
	}
}

func TestGridQueryAround(t *testing.T) {
	g := NewGrid[int](100, 50, 10)
	g.Insert(5, 5, 1)   // cell (0,0)
	g.Insert(15, 5, 2)  // cell (1,0)
	g.Insert(95, 45, 3) // cell (9,4), wraps next to (0,0)
	g.Insert(55, 25, 4) // far away
	g.Insert(-3, 60, 5) // clamped to (0,4)

	if g.Len() != 5 {
		t.Fatalf("Len = %d, want 5", g.Len())
	}

	var found []int
	g.QueryAround(5, 5, func(item int) bool {
		found = append(found, item)
		return false
	})
	sort.Ints(found)
	want := []int{1, 2, 3, 5}
	if len(found) != len(want) {
		t.Fatalf("found %v, want %v", found, want)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Fatalf("found %v, want %v", found, want)
		}
	}

	calls := 0
	g.QueryAround(5, 5, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("early stop made %d calls, want 1", calls)
	}

	g.Clear()
	if g.Len() != 0 {
		t.Errorf("Len after Clear = %d", g.Len())
	}
	g.QueryAround(5, 5, func(int) bool {
		t.Error("item found after Clear")
		return false
	})
}

func TestGridSmallWorldVisitsCellsOnce(t *testing.T) {
	g := NewGrid[string](10, 10, 10)
	g.Insert(1, 1, "only")
	calls := 0
	g.QueryAround(5, 5, func(string) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Errorf("single-cell grid visited item %d times", calls)
	}
}

func TestRing(t *testing.T) {
	hex := hexagon(0, 0, 5)
	var pairs []geom.Point
	for i := range hex {
		pairs = append(pairs, hex[i], hex[(i+1)%len(hex)])
	}
	if got := Ring(pairs); len(got) != len(hex) {
		t.Errorf("Ring of line pairs has %d vertices, want %d", len(got), len(hex))
	}
	if got := Ring(nil); len(got) != 0 {
		t.Errorf("Ring(nil) = %v", got)
	}
}

func TestIsConvex(t *testing.T) {
	tests := []struct {
		name string
		ring []geom.Point
		want bool
	}{
		{"hexagon", hexagon(3, 3, 2), true},
		{"square with collinear vertex", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, true},
		{"arrow", []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 4}, {X: 1, Y: 2}}, false},
		{"line", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, false},
		{"too short", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConvex(tt.ring); got != tt.want {
				t.Errorf("IsConvex = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygonsIntersectPaths(t *testing.T) {
	// The arrow's notch at x=1 leaves room for a small square that
	// touches neither edge.
	arrow := []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 4}, {X: 1, Y: 2}}
	notch := []geom.Point{{X: 0.1, Y: 1.9}, {X: 0.3, Y: 1.9}, {X: 0.3, Y: 2.1}, {X: 0.1, Y: 2.1}}
	tip := []geom.Point{{X: 3, Y: 1.9}, {X: 3.2, Y: 1.9}, {X: 3.2, Y: 2.1}, {X: 3, Y: 2.1}}

	tests := []struct {
		name string
		a, b []geom.Point
		want bool
	}{
		{"convex overlap", hexagon(0, 0, 5), hexagon(8, 0, 5), true},
		{"convex apart", hexagon(0, 0, 5), hexagon(11, 0, 5), false},
		{"convex contained", hexagon(0, 0, 5), hexagon(0, 0, 1), true},
		{"concave notch misses", arrow, notch, false},
		{"concave tip hits", arrow, tip, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonsIntersect(tt.a, tt.b); got != tt.want {
				t.Errorf("PolygonsIntersect = %v, want %v", got, tt.want)
			}
			if got := PolygonsIntersect(tt.b, tt.a); got != tt.want {
				t.Errorf("PolygonsIntersect swapped = %v, want %v", got, tt.want)
			}
		})
	}
}
