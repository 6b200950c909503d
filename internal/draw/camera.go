package draw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/glasteroids/internal/object"
)

// Camera shows a Width x Height meter window of the world centered on
// (X, Y). When the window is smaller than the world it is kept inside it.
type Camera struct {
	Width, Height float64
	X, Y          float64
	world         object.World
}

// NewCamera shows the whole world.
func NewCamera(w object.World) *Camera {
	return &Camera{
		Width:  w.Width,
		Height: w.Height,
		X:      w.Width / 2,
		Y:      w.Height / 2,
		world:  w,
	}
}

// LookAt centers the window on (x, y) as far as the world allows.
func (c *Camera) LookAt(x, y float64) {
	c.X = clampCenter(x, c.Width, c.world.Width)
	c.Y = clampCenter(y, c.Height, c.world.Height)
}

func clampCenter(v, view, world float64) float64 {
	if view >= world {
		return world / 2
	}
	return min(max(v, view/2), world-view/2)
}

// View returns the orthographic projection for the window, y down.
func (c *Camera) View() mgl32.Mat4 {
	left := float32(c.X - c.Width/2)
	top := float32(c.Y - c.Height/2)
	return mgl32.Ortho2D(left, left+float32(c.Width), top+float32(c.Height), top)
}
