package object

import "github.com/tomz197/glasteroids/internal/geom"

// NewStar creates a static background point.
func NewStar(x, y float64, color Color) *Entity {
	return &Entity{
		Kind:  KindStar,
		X:     x,
		Y:     y,
		Scale: 1,
		Mesh:  geom.Dot(),
		Color: color,
		Alive: true,
	}
}

// NewBorder creates the outline of the world, centered on it.
func NewBorder(w World, color Color) *Entity {
	return &Entity{
		Kind:   KindBorder,
		X:      w.Width / 2,
		Y:      w.Height / 2,
		Scale:  1,
		Width:  w.Width,
		Height: w.Height,
		Mesh:   geom.NewBorder(float32(w.Width), float32(w.Height)),
		Color:  color,
		Alive:  true,
	}
}
