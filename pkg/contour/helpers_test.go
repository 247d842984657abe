package contour

import (
	"math"
	"testing"

	"github.com/chazu/contour/pkg/mesh"
	"github.com/chazu/contour/pkg/voxel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/require"
)

// withAxisCrossings puts a crossing in the middle of every edge between
// voxels of different state, with an axis-aligned normal pointing from the
// solid voxel to the empty one.
func withAxisCrossings(g *Grid) {
	r := g.resolution
	for y := 0; y < r; y++ {
		for x := 0; x < r; x++ {
			v := &g.voxels[y*r+x]
			v.ClearXEdge()
			v.ClearYEdge()
			if x < r-1 {
				n := g.voxels[y*r+x+1]
				if n.State != v.State {
					v.XEdge = (v.Position.X + n.Position.X) / 2
					v.XNormal = v2.Vec{X: sign(v.State)}
				}
			}
			if y < r-1 {
				n := g.voxels[(y+1)*r+x]
				if n.State != v.State {
					v.YEdge = (v.Position.Y + n.Position.Y) / 2
					v.YNormal = v2.Vec{Y: sign(v.State)}
				}
			}
		}
	}
}

func sign(solid bool) float64 {
	if solid {
		return 1
	}
	return -1
}

// cellGrid returns a 2x2 grid holding a single cell of the given case.
func cellGrid(code int, opts ...Option) *Grid {
	g := New(2, 2, opts...)
	for i := range g.voxels {
		g.voxels[i].State = code&(1<<i) != 0
	}
	withAxisCrossings(g)
	return g
}

func circle(fill bool, x, y, r float64) *voxel.Stencil {
	s := voxel.NewStencil(voxel.Circle)
	s.Initialize(fill, r)
	s.SetCenter(x, y)
	return s
}

func square(fill bool, x, y, r float64) *voxel.Stencil {
	s := voxel.NewStencil(voxel.Square)
	s.Initialize(fill, r)
	s.SetCenter(x, y)
	return s
}

func requireClockwise(t *testing.T, m *mesh.Mesh) {
	t.Helper()
	for i := 0; i < m.TriangleCount(); i++ {
		require.LessOrEqual(t, m.SignedArea(i), 1e-9, "triangle %d is counter-clockwise", i)
	}
}

// components counts the groups of triangles connected through shared
// vertices.
func components(m *mesh.Mesh) int {
	parent := make([]int, m.VertexCount())
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	used := make([]bool, m.VertexCount())
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		used[a], used[b], used[c] = true, true, true
		parent[find(int(b))] = find(int(a))
		parent[find(int(c))] = find(int(a))
	}
	roots := map[int]bool{}
	for i := range parent {
		if used[i] {
			roots[find(i)] = true
		}
	}
	return len(roots)
}

// vertices returns the xy positions of a mesh.
func vertices(m *mesh.Mesh) []v2.Vec {
	out := make([]v2.Vec, m.VertexCount())
	for i := range out {
		out[i] = m.Vertex2(uint32(i))
	}
	return out
}

// requireSameVertices checks that both lists hold the same points, in any
// order, within tolerance.
func requireSameVertices(t *testing.T, want, got []v2.Vec, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	taken := make([]bool, len(got))
	for _, w := range want {
		found := false
		for j, g := range got {
			if !taken[j] && math.Abs(w.X-g.X) <= tol && math.Abs(w.Y-g.Y) <= tol {
				taken[j] = true
				found = true
				break
			}
		}
		require.True(t, found, "vertex %v missing", w)
	}
}

func requireHasVertex(t *testing.T, m *mesh.Mesh, p v2.Vec) {
	t.Helper()
	for _, v := range vertices(m) {
		if math.Abs(v.X-p.X) < 1e-5 && math.Abs(v.Y-p.Y) < 1e-5 {
			return
		}
	}
	t.Fatalf("mesh has no vertex at %v", p)
}
