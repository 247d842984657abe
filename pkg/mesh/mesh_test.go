package mesh

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 0}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	if !(&Mesh{}).IsEmpty() {
		t.Error("IsEmpty() = false for empty mesh, want true")
	}
	if (&Mesh{Vertices: []float32{1, 2, 3}}).IsEmpty() {
		t.Error("IsEmpty() = true for non-empty mesh, want false")
	}
}

// square builds a clockwise unit square.
func square() *Mesh {
	m := &Mesh{Name: "square"}
	a := m.AddVertex(v2.Vec{X: 0, Y: 0}, 0)
	b := m.AddVertex(v2.Vec{X: 0, Y: 1}, 0)
	c := m.AddVertex(v2.Vec{X: 1, Y: 1}, 0)
	d := m.AddVertex(v2.Vec{X: 1, Y: 0}, 0)
	m.AddTriangle(a, b, c)
	m.AddTriangle(a, c, d)
	return m
}

func TestMeshBuilders(t *testing.T) {
	m := square()
	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
	for i := 0; i < m.TriangleCount(); i++ {
		if a := m.SignedArea(i); a >= 0 {
			t.Errorf("triangle %d has area %v, want clockwise", i, a)
		}
	}
	if a := m.Area(); a != 1 {
		t.Errorf("Area() = %v, want 1", a)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestMeshTranslateAndBounds(t *testing.T) {
	m := square()
	c := m.Clone()
	m.Translate(2, 3, 1)

	b := m.Bounds()
	if b.Min != (v2.Vec{X: 2, Y: 3}) || b.Max != (v2.Vec{X: 3, Y: 4}) {
		t.Errorf("Bounds() = %+v", b)
	}
	if _, _, z := m.Vertex(0); z != 1 {
		t.Errorf("z = %v, want 1", z)
	}
	if c.Vertex2(0) != (v2.Vec{}) {
		t.Error("clone shares vertex storage")
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name string
		mesh Mesh
		ok   bool
	}{
		{"empty", Mesh{}, true},
		{"partial vertex", Mesh{Vertices: []float32{0, 1}}, false},
		{"partial triangle", Mesh{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 0}}, false},
		{"index out of range", Mesh{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 0, 1}}, false},
		{"valid", Mesh{Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, Indices: []uint32{0, 2, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestSinks(t *testing.T) {
	var a, b Latest
	s := Multi(&a, &b, Discard)
	m := square()
	s.SetMesh(m)
	s.SetMesh(m)
	if a.Mesh != m || b.Mesh != m {
		t.Fatal("Multi did not forward the mesh")
	}
	if a.Updates != 2 {
		t.Errorf("Updates = %d, want 2", a.Updates)
	}
}
