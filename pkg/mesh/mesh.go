// Package mesh holds the flat triangle meshes produced by the contour
// builder and the sink interface through which they are handed to
// renderers and exporters.
package mesh

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z) and
// indices has 3 uint32s per triangle. Triangles are clockwise when viewed
// from +z.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // which chunk (and layer) this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(p v2.Vec, z float64) uint32 {
	i := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(z))
	return i
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i uint32) (x, y, z float32) {
	return m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]
}

// Vertex2 returns the xy part of vertex i.
func (m *Mesh) Vertex2(i uint32) v2.Vec {
	return v2.Vec{X: float64(m.Vertices[3*i]), Y: float64(m.Vertices[3*i+1])}
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c uint32) {
	return m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]
}

// SignedArea returns the signed xy area of triangle t. Clockwise triangles
// have a negative area.
func (m *Mesh) SignedArea(t int) float64 {
	a, b, c := m.Triangle(t)
	p, q, r := m.Vertex2(a), m.Vertex2(b), m.Vertex2(c)
	return ((q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)) / 2
}

// Area returns the total unsigned xy area of the mesh.
func (m *Mesh) Area() float64 {
	var sum float64
	for t := 0; t < m.TriangleCount(); t++ {
		sum += math.Abs(m.SignedArea(t))
	}
	return sum
}

// Translate moves every vertex by (dx, dy, dz) in place.
func (m *Mesh) Translate(dx, dy, dz float64) {
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		m.Vertices[i] += float32(dx)
		m.Vertices[i+1] += float32(dy)
		m.Vertices[i+2] += float32(dz)
	}
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]float32(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
		Name:     m.Name,
	}
}

// Bounds returns the xy bounding box of the mesh. An empty mesh has a zero
// box.
func (m *Mesh) Bounds() sdf.Box2 {
	if m.IsEmpty() {
		return sdf.Box2{}
	}
	min := m.Vertex2(0)
	max := min
	for i := uint32(1); i < uint32(m.VertexCount()); i++ {
		p := m.Vertex2(i)
		min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
		max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
	}
	return sdf.Box2{Min: min, Max: max}
}

// Validate checks that the arrays are internally consistent: whole
// vertices, whole triangles, and every index below the vertex count.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return errors.New("vertex array is not a multiple of 3").
			WithTag("mesh", m.Name).
			WithTag("len", len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return errors.New("index array is not a multiple of 3").
			WithTag("mesh", m.Name).
			WithTag("len", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return errors.New("index out of range").
				WithTag("mesh", m.Name).
				WithTag("position", i).
				WithTag("index", idx).
				WithTag("vertices", n)
		}
	}
	return nil
}
