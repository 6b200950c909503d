// Package geom is the geometry kernel shared by rendering and collision.
//
// A Mesh holds 3-coordinate vertices in local space. The same vertex data is
// handed to the render collaborator and turned into world-space point lists
// for the narrow-phase collision tests, so both always agree on shape.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Topology selects how a mesh's vertices are assembled when drawn.
type Topology int

const (
	Lines     Topology = iota // Vertex pairs, one pair per edge segment
	Triangles                 // Vertex triples, filled
	Points                    // Single points
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case Lines:
		return "lines"
	case Triangles:
		return "triangles"
	case Points:
		return "points"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// Axis names a coordinate axis of a vertex.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func mustAxis(axis Axis) {
	if axis < AxisX || axis > AxisZ {
		panic(fmt.Sprintf("geom: invalid axis %d", int(axis)))
	}
}

// Point is a 2D world-space coordinate.
type Point struct {
	X, Y float64
}

// Mesh is a polygon or point list with an axis-aligned bounding box.
//
// Shared meshes (see Dot and Hull) must not be mutated once constructed.
// Per-instance meshes are mutated only while their owner is being built.
type Mesh struct {
	vertices []mgl32.Vec3
	Topology Topology

	Min, Max mgl32.Vec3
	Width    float32
	Height   float32
	Depth    float32
	Radius   float32
}

// NewMesh copies vertices into a new mesh and normalizes it to [-1, 1].
func NewMesh(vertices []mgl32.Vec3, topology Topology) *Mesh {
	m := NewRawMesh(vertices, topology)
	m.Normalize()
	return m
}

// NewRawMesh copies vertices into a new mesh without normalizing.
func NewRawMesh(vertices []mgl32.Vec3, topology Topology) *Mesh {
	if topology < Lines || topology > Points {
		panic(fmt.Sprintf("geom: unsupported topology %d", int(topology)))
	}
	m := &Mesh{
		vertices: append([]mgl32.Vec3(nil), vertices...),
		Topology: topology,
	}
	m.updateBounds()
	return m
}

// Vertices returns the mesh's vertex data. Callers must treat it as read-only.
func (m *Mesh) Vertices() []mgl32.Vec3 {
	return m.vertices
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

func (m *Mesh) updateBounds() {
	if len(m.vertices) == 0 {
		m.Min, m.Max = mgl32.Vec3{}, mgl32.Vec3{}
		m.Width, m.Height, m.Depth, m.Radius = 0, 0, 0, 0
		return
	}

	lo := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, v := range m.vertices {
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], v[axis])
			hi[axis] = max(hi[axis], v[axis])
		}
	}

	m.Min, m.Max = lo, hi
	m.Width = hi.X() - lo.X()
	m.Height = hi.Y() - lo.Y()
	m.Depth = hi.Z() - lo.Z()
	m.Radius = max(m.Width, m.Height, m.Depth) * 0.5
}

// Normalize maps every vertex linearly so the bounding box becomes [-1, 1]
// on each axis with nonzero extent. Axes without extent collapse to 0.
// An axis already spanning exactly [-1, 1] is left untouched, which makes a
// normalized mesh a bit-exact fixed point.
func (m *Mesh) Normalize() {
	m.updateBounds()

	for axis := 0; axis < 3; axis++ {
		lo, hi := m.Min[axis], m.Max[axis]
		if lo == -1 && hi == 1 {
			continue
		}
		extent := hi - lo
		for i := range m.vertices {
			if extent == 0 {
				m.vertices[i][axis] = 0
				continue
			}
			// Divide rather than multiply by the inverse so the maximum lands on exactly 1.
			m.vertices[i][axis] = 2*((m.vertices[i][axis]-lo)/extent) - 1
		}
	}

	m.updateBounds()
}

// SetWidthHeight normalizes the mesh, then scales it so its half-extents are
// w/2 and h/2. Depth is left unscaled.
func (m *Mesh) SetWidthHeight(w, h float32) {
	m.Normalize()
	m.Scale(w*0.5, h*0.5, 1)
}

// Scale multiplies every vertex component-wise.
func (m *Mesh) Scale(x, y, z float32) {
	for i := range m.vertices {
		m.vertices[i] = mgl32.Vec3{m.vertices[i].X() * x, m.vertices[i].Y() * y, m.vertices[i].Z() * z}
	}
	m.updateBounds()
}

// Flip mirrors the mesh along one axis.
func (m *Mesh) Flip(axis Axis) {
	mustAxis(axis)
	factors := mgl32.Vec3{1, 1, 1}
	factors[axis] = -1
	m.Scale(factors.X(), factors.Y(), factors.Z())
}

// Rotate rotates every vertex by theta radians around the given axis.
func (m *Mesh) Rotate(axis Axis, theta float32) {
	mustAxis(axis)

	var rot mgl32.Mat3
	switch axis {
	case AxisX:
		rot = mgl32.Rotate3DX(theta)
	case AxisY:
		rot = mgl32.Rotate3DY(theta)
	case AxisZ:
		rot = mgl32.Rotate3DZ(theta)
	}
	for i := range m.vertices {
		m.vertices[i] = rot.Mul3x1(m.vertices[i])
	}
	m.updateBounds()
}

// Left returns the minimum x of the bounding box.
func (m *Mesh) Left() float32 { return m.Min.X() }

// Right returns the maximum x of the bounding box.
func (m *Mesh) Right() float32 { return m.Max.X() }

// Top returns the minimum y of the bounding box (y grows downward on screen).
func (m *Mesh) Top() float32 { return m.Min.Y() }

// Bottom returns the maximum y of the bounding box.
func (m *Mesh) Bottom() float32 { return m.Max.Y() }

// CenterX returns the x midpoint of the bounding box.
func (m *Mesh) CenterX() float32 { return m.Min.X() + m.Width*0.5 }

// CenterY returns the y midpoint of the bounding box.
func (m *Mesh) CenterY() float32 { return m.Min.Y() + m.Height*0.5 }

// PointListInWorld returns the mesh's vertices rotated by the heading and
// translated to (originX, originY).
//
// Rotation uses the same convention as the render model matrix: with y
// growing downward, increasing degrees turn clockwise on screen.
func (m *Mesh) PointListInWorld(originX, originY, rotationDegrees float64) []Point {
	return m.AppendPointListInWorld(make([]Point, 0, len(m.vertices)), originX, originY, rotationDegrees)
}

// AppendPointListInWorld is PointListInWorld appending into dst, so callers
// holding scratch buffers avoid per-test allocations.
func (m *Mesh) AppendPointListInWorld(dst []Point, originX, originY, rotationDegrees float64) []Point {
	return m.AppendScaledPointList(dst, originX, originY, rotationDegrees, 1)
}

// AppendScaledPointList is AppendPointListInWorld with a uniform scale
// applied before rotation, matching the render model matrix.
func (m *Mesh) AppendScaledPointList(dst []Point, originX, originY, rotationDegrees, scale float64) []Point {
	theta := rotationDegrees * math.Pi / 180
	sinTheta, cosTheta := math.Sincos(theta)
	for _, v := range m.vertices {
		x := float64(v.X()) * scale
		y := float64(v.Y()) * scale
		dst = append(dst, Point{
			X: x*cosTheta - y*sinTheta + originX,
			Y: y*cosTheta + x*sinTheta + originY,
		})
	}
	return dst
}
