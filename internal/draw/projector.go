package draw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/glasteroids/internal/geom"
	"github.com/tomz197/glasteroids/internal/loop"
)

// Projector rasterises render items onto a canvas. Vertices are taken
// through the item's MVP to normalized device coordinates and then
// stretched over the canvas's logical area, y pointing down.
type Projector struct {
	canvas *Canvas
	pts    []Point // reused between items
}

var _ loop.Renderer = (*Projector)(nil)

// NewProjector creates a projector drawing onto c.
func NewProjector(c *Canvas) *Projector {
	return &Projector{canvas: c, pts: make([]Point, 0, 32)}
}

// Draw implements loop.Renderer.
func (p *Projector) Draw(item loop.RenderItem) {
	if item.Mesh == nil {
		return
	}
	ink := NearestInk(item.Color)
	if ink == InkNone {
		return
	}
	p.canvas.SetInk(ink)

	p.pts = p.pts[:0]
	for _, v := range item.Mesh.Vertices() {
		p.pts = append(p.pts, p.project(item.MVP, v))
	}

	switch item.Mesh.Topology {
	case geom.Lines:
		for i := 0; i+1 < len(p.pts); i += 2 {
			p.canvas.DrawLine(p.pts[i], p.pts[i+1])
		}
	case geom.Triangles:
		for i := 0; i+2 < len(p.pts); i += 3 {
			p.canvas.DrawPolygon(p.pts[i:i+3], false)
		}
	case geom.Points:
		for _, pt := range p.pts {
			p.canvas.SetFloat(pt.X, pt.Y)
		}
	}
}

// project maps a model-space vertex to canvas logical coordinates.
func (p *Projector) project(mvp mgl32.Mat4, v mgl32.Vec3) Point {
	clip := mvp.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w == 0 {
		w = 1
	}
	ndcX, ndcY := float64(clip.X()/w), float64(clip.Y()/w)
	return Point{
		X: (ndcX + 1) / 2 * p.canvas.LogicalWidth(),
		Y: (1 - ndcY) / 2 * p.canvas.LogicalHeight(),
	}
}
