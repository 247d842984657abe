package export

import (
	"github.com/chazu/contour/pkg/voxelmap"
)

// Dots returns every voxel sample of the map in world coordinates.
func Dots(m *voxelmap.Map) []Dot {
	n, r := m.ChunkResolution(), m.VoxelResolution()
	dots := make([]Dot, 0, n*n*r*r)
	for cy := 0; cy < n; cy++ {
		for cx := 0; cx < n; cx++ {
			g, origin := m.Chunk(cx, cy), m.ChunkOrigin(cx, cy)
			for y := 0; y < r; y++ {
				for x := 0; x < r; x++ {
					v := g.Voxel(x, y)
					dots = append(dots, Dot{
						Position: origin.Add(v.Position),
						Solid:    v.State,
					})
				}
			}
		}
	}
	return dots
}
