package loop

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/glasteroids/internal/geom"
	"github.com/tomz197/glasteroids/internal/object"
)

// RenderItem is one entity to draw.
type RenderItem struct {
	Kind      object.Kind
	MVP       mgl32.Mat4 // View times Model
	Model     mgl32.Mat4
	Transform object.Transform
	Mesh      *geom.Mesh
	Color     object.Color
}

// Renderer receives items in back-to-front order. Items are only valid
// during the call.
type Renderer interface {
	Draw(item RenderItem)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(item RenderItem)

// Draw calls f(item).
func (f RendererFunc) Draw(item RenderItem) {
	f(item)
}

func drawEntity(r Renderer, view mgl32.Mat4, e *object.Entity) {
	model := e.ModelMatrix()
	r.Draw(RenderItem{
		Kind:      e.Kind,
		MVP:       view.Mul4(model),
		Model:     model,
		Transform: e.Transform(),
		Mesh:      e.Mesh,
		Color:     e.Color,
	})
}
