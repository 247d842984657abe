package contour

import (
	"testing"

	"github.com/chazu/contour/pkg/voxel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/require"
)

type edit struct {
	kind   voxel.Kind
	fill   bool
	center v2.Vec
	radius float64
}

// rotate turns p a quarter counter-clockwise about the centre of a grid of
// the given size.
func rotate(p v2.Vec, size float64) v2.Vec {
	return v2.Vec{X: size - p.Y, Y: p.X}
}

func build(size float64, edits []edit, turns int) *Grid {
	g := New(int(size), size)
	for _, e := range edits {
		c := e.center
		for i := 0; i < turns; i++ {
			c = rotate(c, size)
		}
		s := voxel.NewStencil(e.kind)
		s.Initialize(e.fill, e.radius)
		s.SetCenter(c.X, c.Y)
		g.Apply(s)
	}
	return g
}

func TestRotationSymmetry(t *testing.T) {
	const size = 10
	edits := []edit{
		{voxel.Circle, true, v2.Vec{X: 3.3, Y: 4.6}, 2.1},
		{voxel.Square, true, v2.Vec{X: 6.2, Y: 4.1}, 1.25},
	}
	base := build(size, edits, 0)
	bm := base.Mesh()
	require.False(t, bm.IsEmpty())

	for turns := 1; turns < 4; turns++ {
		g := build(size, edits, turns)
		m := g.Mesh()

		want := vertices(bm)
		for i := range want {
			for k := 0; k < turns; k++ {
				want[i] = rotate(want[i], size)
			}
		}
		requireSameVertices(t, want, vertices(m), 1e-4)
		require.Equal(t, bm.TriangleCount(), m.TriangleCount(), "turns %d", turns)
		require.InDelta(t, bm.Area(), m.Area(), 1e-3, "turns %d", turns)
		requireClockwise(t, m)
	}
}
