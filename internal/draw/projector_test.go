package draw

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/glasteroids/internal/geom"
	"github.com/tomz197/glasteroids/internal/loop"
	"github.com/tomz197/glasteroids/internal/object"
)

func TestCameraShowsWholeWorld(t *testing.T) {
	cam := NewCamera(object.World{Width: 144, Height: 70})
	view := cam.View()

	tests := []struct {
		x, y       float32
		ndcX, ndcY float32
	}{
		{0, 0, -1, 1},
		{144, 70, 1, -1},
		{72, 35, 0, 0},
	}
	for _, tt := range tests {
		v := view.Mul4x1(mgl32.Vec4{tt.x, tt.y, 0, 1})
		if math.Abs(float64(v.X()-tt.ndcX)) > 1e-5 || math.Abs(float64(v.Y()-tt.ndcY)) > 1e-5 {
			t.Errorf("(%v, %v) -> (%v, %v), want (%v, %v)", tt.x, tt.y, v.X(), v.Y(), tt.ndcX, tt.ndcY)
		}
	}
}

func TestCameraStaysInsideWorld(t *testing.T) {
	cam := NewCamera(object.World{Width: 144, Height: 70})
	cam.Width, cam.Height = 40, 20

	cam.LookAt(5, 5)
	if cam.X != 20 || cam.Y != 10 {
		t.Errorf("corner look at (%v, %v), want (20, 10)", cam.X, cam.Y)
	}
	cam.LookAt(70, 30)
	if cam.X != 70 || cam.Y != 30 {
		t.Errorf("center look at (%v, %v)", cam.X, cam.Y)
	}

	cam.Width, cam.Height = 144, 70
	cam.LookAt(5, 5)
	if cam.X != 72 || cam.Y != 35 {
		t.Errorf("whole-world camera moved to (%v, %v)", cam.X, cam.Y)
	}
}

func TestProjectorDrawsThroughMVP(t *testing.T) {
	world := object.World{Width: 144, Height: 70}
	canvas := NewScaledCanvas(144, 35, world.Width, world.Height)
	proj := NewProjector(canvas)
	view := NewCamera(world).View()

	star := object.NewStar(100, 50, object.Yellow)
	proj.Draw(loop.RenderItem{
		Kind:  star.Kind,
		MVP:   view.Mul4(star.ModelMatrix()),
		Mesh:  star.Mesh,
		Color: star.Color,
	})
	if got := canvas.Pixel(100, 50); got != InkYellow {
		t.Errorf("star pixel = %v, want yellow", got)
	}

	border := object.NewBorder(world, object.Green)
	proj.Draw(loop.RenderItem{
		MVP:   view.Mul4(border.ModelMatrix()),
		Mesh:  border.Mesh,
		Color: border.Color,
	})
	if canvas.Pixel(0, 30) != InkGreen || canvas.Pixel(72, 0) != InkGreen {
		t.Error("border edges not drawn")
	}
	if canvas.Pixel(72, 35) != InkNone {
		t.Error("border drawn through the middle")
	}
}

func TestProjectorDrawsTriangles(t *testing.T) {
	canvas := NewCanvas(40, 20)
	proj := NewProjector(canvas)
	view := mgl32.Ortho2D(0, 40, 40, 0)

	ship := object.NewPlayer(20, 20)
	proj.Draw(loop.RenderItem{
		MVP:   view.Mul4(ship.ModelMatrix()),
		Mesh:  geom.Hull(),
		Color: object.White,
	})
	nx, ny := ship.NosePosition()
	if canvas.Pixel(int(math.Round(nx)), int(math.Round(ny))) != InkWhite {
		t.Errorf("nose pixel (%v, %v) not drawn", nx, ny)
	}
}
