package window

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/glasteroids/internal/geom"
	"github.com/tomz197/glasteroids/internal/loop"
	"github.com/tomz197/glasteroids/internal/object"
)

// strokeWidth is the outline width in screen pixels.
const strokeWidth = 1.5

// vectorRenderer strokes render items onto an ebiten image.
type vectorRenderer struct {
	dst  *ebiten.Image
	w, h float32
	pts  []mgl32.Vec2
}

var _ loop.Renderer = (*vectorRenderer)(nil)

func (r *vectorRenderer) reset(dst *ebiten.Image) {
	r.dst = dst
	b := dst.Bounds()
	r.w, r.h = float32(b.Dx()), float32(b.Dy())
}

// Draw implements loop.Renderer.
func (r *vectorRenderer) Draw(item loop.RenderItem) {
	if item.Mesh == nil || item.Color[3] <= 0 {
		return
	}
	clr := toRGBA(item.Color)

	r.pts = r.pts[:0]
	for _, v := range item.Mesh.Vertices() {
		r.pts = append(r.pts, toScreen(item.MVP, v, r.w, r.h))
	}

	switch item.Mesh.Topology {
	case geom.Lines:
		for i := 0; i+1 < len(r.pts); i += 2 {
			r.line(r.pts[i], r.pts[i+1], clr)
		}
	case geom.Triangles:
		for i := 0; i+2 < len(r.pts); i += 3 {
			r.line(r.pts[i], r.pts[i+1], clr)
			r.line(r.pts[i+1], r.pts[i+2], clr)
			r.line(r.pts[i+2], r.pts[i], clr)
		}
	case geom.Points:
		for _, p := range r.pts {
			vector.DrawFilledRect(r.dst, p.X()-1, p.Y()-1, 2, 2, clr, false)
		}
	}
}

func (r *vectorRenderer) line(a, b mgl32.Vec2, clr color.RGBA) {
	vector.StrokeLine(r.dst, a.X(), a.Y(), b.X(), b.Y(), strokeWidth, clr, true)
}

// toScreen takes a model-space vertex through mvp and maps the result onto
// a w x h pixel image, y pointing down.
func toScreen(mvp mgl32.Mat4, v mgl32.Vec3, w, h float32) mgl32.Vec2 {
	clip := mvp.Mul4x1(v.Vec4(1))
	cw := clip.W()
	if cw == 0 {
		cw = 1
	}
	return mgl32.Vec2{
		(clip.X()/cw + 1) / 2 * w,
		(1 - clip.Y()/cw) / 2 * h,
	}
}

func toRGBA(c object.Color) color.RGBA {
	ch := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}
