package geom

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Ship hull dimensions in meters, before entity scale.
const (
	HullWidth  = 1.0
	HullHeight = 1.5
)

// GeneratePolygonOutline returns 2n vertices tracing a regular n-gon of the
// given radius as line segments, two vertices per edge.
func GeneratePolygonOutline(n int, radius float32) []mgl32.Vec3 {
	if n < 3 {
		panic(fmt.Sprintf("geom: a polygon requires at least 3 points, got %d", n))
	}

	verts := make([]mgl32.Vec3, 0, n*2)
	step := 2 * math.Pi / float64(n)
	for point := 0; point < n; point++ {
		for _, k := range [2]int{point, point + 1} {
			theta := float64(k) * step
			verts = append(verts, mgl32.Vec3{
				float32(math.Cos(theta)) * radius,
				float32(math.Sin(theta)) * radius,
				0,
			})
		}
	}
	return verts
}

var (
	dotOnce  sync.Once
	dotMesh  *Mesh
	hullOnce sync.Once
	hullMesh *Mesh
)

// Dot returns the shared single-point mesh used by bullets, particles and stars.
func Dot() *Mesh {
	dotOnce.Do(func() {
		dotMesh = NewRawMesh([]mgl32.Vec3{{0, 0, 0}}, Points)
	})
	return dotMesh
}

// Hull returns the shared ship triangle, sized HullWidth x HullHeight with
// its nose pointing toward -y.
func Hull() *Mesh {
	hullOnce.Do(func() {
		m := NewMesh([]mgl32.Vec3{
			{0.0, 0.622008459, 0.0},
			{-0.5, -0.311004243, 0.0},
			{0.5, -0.311004243, 0.0},
		}, Triangles)
		m.SetWidthHeight(HullWidth, HullHeight)
		m.Flip(AxisY)
		hullMesh = m
	})
	return hullMesh
}

// NewBorder builds a rectangular outline of the given size centered on the origin.
func NewBorder(width, height float32) *Mesh {
	m := NewMesh([]mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0},
		{1, 0, 0}, {1, 1, 0},
		{1, 1, 0}, {0, 1, 0},
		{0, 1, 0}, {0, 0, 0},
	}, Lines)
	m.SetWidthHeight(width, height)
	return m
}
