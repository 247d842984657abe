package contour

import (
	"math"
	"testing"

	"github.com/chazu/contour/pkg/mesh"
	"github.com/chazu/contour/pkg/voxel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/require"
)

// applyAll runs one edit over grids placed at the given offsets.
func applyAll(s *voxel.Stencil, center v2.Vec, grids []*Grid, offsets []v2.Vec) {
	regions := make([]Region, len(grids))
	for i, g := range grids {
		s.SetCenter(center.X-offsets[i].X, center.Y-offsets[i].Y)
		regions[i] = g.Stamp(s)
	}
	for i, g := range grids {
		s.SetCenter(center.X-offsets[i].X, center.Y-offsets[i].Y)
		g.Cross(s, regions[i])
	}
	for _, g := range grids {
		g.Refresh()
	}
	for _, g := range grids {
		g.Settle()
	}
}

type edgeKey [4]float32

func keyOf(m *mesh.Mesh, a, b uint32) edgeKey {
	ax, ay, _ := m.Vertex(a)
	bx, by, _ := m.Vertex(b)
	if ax > bx || (ax == bx && ay > by) {
		ax, ay, bx, by = bx, by, ax, ay
	}
	return edgeKey{ax, ay, bx, by}
}

// seamEdges counts the triangle edges lying on the vertical line x.
func seamEdges(counts map[edgeKey]int, m *mesh.Mesh, x float64) {
	on := func(i uint32) bool {
		return math.Abs(m.Vertex2(i).X-x) < 1e-5
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		for _, e := range [][2]uint32{{a, b}, {b, c}, {c, a}} {
			if on(e[0]) && on(e[1]) {
				counts[keyOf(m, e[0], e[1])]++
			}
		}
	}
}

func seamVertices(m *mesh.Mesh, x float64) []v2.Vec {
	var out []v2.Vec
	for _, p := range vertices(m) {
		if math.Abs(p.X-x) < 1e-5 {
			out = append(out, p)
		}
	}
	return out
}

func TestSeamBetweenXNeighbors(t *testing.T) {
	left, right := New(4, 4), New(4, 4)
	left.SetNeighbors(right, nil, nil)

	grids := []*Grid{left, right}
	offsets := []v2.Vec{{}, {X: 4}}
	applyAll(circle(true, 0, 0, 1.4), v2.Vec{X: 4.5, Y: 2}, grids, offsets)

	require.True(t, left.State(3, 1))
	require.True(t, right.State(0, 1))
	require.True(t, right.State(1, 2))

	lm := left.Mesh().Clone()
	rm := right.Mesh().Clone()
	rm.Translate(4, 0, 0)
	require.NoError(t, lm.Validate())
	require.NoError(t, rm.Validate())
	requireClockwise(t, lm)
	requireClockwise(t, rm)

	// the seam runs through the first column of the right grid
	requireSameVertices(t, seamVertices(rm, 4.5), seamVertices(lm, 4.5), 1e-5)
	require.Len(t, seamVertices(lm, 4.5), 4)

	counts := map[edgeKey]int{}
	seamEdges(counts, lm, 4.5)
	seamEdges(counts, rm, 4.5)
	require.Len(t, counts, 3)
	for k, n := range counts {
		require.Equal(t, 2, n, "seam edge %v", k)
	}

	// the two sides together cover the disc without overlap
	area := lm.Area() + rm.Area()
	require.Greater(t, area, 0.0)
	require.Less(t, area, math.Pi*1.4*1.4)
}

func TestSeamWithoutNeighborIsOpen(t *testing.T) {
	left, right := New(4, 4), New(4, 4)
	grids := []*Grid{left, right}
	offsets := []v2.Vec{{}, {X: 4}}
	applyAll(circle(true, 0, 0, 1.4), v2.Vec{X: 4.5, Y: 2}, grids, offsets)

	// no gap cells: nothing is emitted past the last voxel column
	b := left.Mesh().Bounds()
	require.LessOrEqual(t, b.Max.X, 3.5+1e-6)
}

func TestCornerGapCell(t *testing.T) {
	// 2x2 lattice of grids, edited across the shared corner
	g00, g10, g01, g11 := New(4, 4), New(4, 4), New(4, 4), New(4, 4)
	g00.SetNeighbors(g10, g01, g11)
	g01.SetNeighbors(g11, nil, nil)
	g10.SetNeighbors(nil, g11, nil)

	grids := []*Grid{g00, g10, g01, g11}
	offsets := []v2.Vec{{}, {X: 4}, {Y: 4}, {X: 4, Y: 4}}
	applyAll(circle(true, 0, 0, 1.6), v2.Vec{X: 4, Y: 4}, grids, offsets)

	var all []*mesh.Mesh
	var area float64
	for i, g := range grids {
		m := g.Mesh().Clone()
		m.Translate(offsets[i].X, offsets[i].Y, 0)
		require.NoError(t, m.Validate())
		requireClockwise(t, m)
		area += m.Area()
		all = append(all, m)
	}
	// the four samples around the corner are solid, so the corner cell
	// is full and belongs to the lower left grid
	require.True(t, g00.State(3, 3))
	require.True(t, g11.State(0, 0))
	require.InDelta(t, 4.5, float64(all[0].Bounds().Max.X), 1e-5)
	require.InDelta(t, 4.5, float64(all[0].Bounds().Max.Y), 1e-5)
	require.Greater(t, area, 1.0)
	require.Less(t, area, math.Pi*1.6*1.6)
}
