package contour

import (
	"github.com/chazu/contour/pkg/mesh"
	"github.com/chazu/contour/pkg/voxel"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Triangulate rebuilds the contour mesh, and the wall mesh when enabled,
// from the current voxel states. The previous meshes are replaced, not
// reused, so sinks may keep them.
func (g *Grid) Triangulate() {
	g.mesh = &mesh.Mesh{Name: g.name}
	g.wallMesh = &mesh.Mesh{Name: g.wallName()}
	g.wallPairs = g.wallPairs[:0]

	g.fillFirstRowCache()
	g.triangulateCellRows()
	if g.yNeighbor != nil {
		g.triangulateGapRow()
	}
}

func (g *Grid) fillFirstRowCache() {
	g.cacheFirstCorner(g.voxels[0])
	i := 0
	for ; i < g.resolution-1; i++ {
		g.cacheNextEdgeAndCorner(i*2, g.voxels[i], g.voxels[i+1])
	}
	if g.xNeighbor != nil {
		g.cacheNextEdgeAndCorner(i*2, g.voxels[i], voxel.ProjectX(g.xNeighbor.voxels[0], g.size))
	}
}

func (g *Grid) triangulateCellRows() {
	cells := g.resolution - 1
	for i, y := 0, 0; y < cells; y, i = y+1, i+1 {
		g.swapRowCaches()
		g.cacheFirstCorner(g.voxels[i+g.resolution])
		g.cacheNextMiddleEdge(g.voxels[i], g.voxels[i+g.resolution])

		for x := 0; x < cells; x, i = x+1, i+1 {
			a, b := g.voxels[i], g.voxels[i+1]
			c, d := g.voxels[i+g.resolution], g.voxels[i+g.resolution+1]
			cacheIndex := x * 2
			g.cacheNextEdgeAndCorner(cacheIndex, c, d)
			g.cacheNextMiddleEdge(b, d)
			g.triangulateCell(cacheIndex, a, b, c, d)
		}
		if g.xNeighbor != nil {
			g.triangulateGapCell(y, i)
		}
	}
}

// triangulateGapCell fills the cell between the last voxel of row y, at
// index i, and the first voxel of the same row in the +x neighbour.
func (g *Grid) triangulateGapCell(y, i int) {
	b := voxel.ProjectX(g.xNeighbor.voxels[y*g.resolution], g.size)
	d := voxel.ProjectX(g.xNeighbor.voxels[(y+1)*g.resolution], g.size)
	cacheIndex := (g.resolution - 1) * 2
	g.cacheNextEdgeAndCorner(cacheIndex, g.voxels[i+g.resolution], d)
	g.cacheNextMiddleEdge(b, d)
	g.triangulateCell(cacheIndex, g.voxels[i], b, g.voxels[i+g.resolution], d)
}

// triangulateGapRow fills the row of cells between the last row of voxels
// and the first row of the +y neighbour, and the corner cell shared with the
// +x and +x+y neighbours.
func (g *Grid) triangulateGapRow() {
	cells := g.resolution - 1
	offset := cells * g.resolution
	yn := g.yNeighbor

	c := voxel.ProjectY(yn.voxels[0], g.size)
	g.swapRowCaches()
	g.cacheFirstCorner(c)
	g.cacheNextMiddleEdge(g.voxels[offset], c)

	for x := 0; x < cells; x++ {
		c = voxel.ProjectY(yn.voxels[x], g.size)
		d := voxel.ProjectY(yn.voxels[x+1], g.size)
		cacheIndex := x * 2
		g.cacheNextEdgeAndCorner(cacheIndex, c, d)
		g.cacheNextMiddleEdge(g.voxels[x+offset+1], d)
		g.triangulateCell(cacheIndex, g.voxels[x+offset], g.voxels[x+offset+1], c, d)
	}

	if g.xNeighbor != nil && g.xyNeighbor != nil {
		c = voxel.ProjectY(yn.voxels[cells], g.size)
		b := voxel.ProjectX(g.xNeighbor.voxels[offset], g.size)
		d := voxel.ProjectXY(g.xyNeighbor.voxels[0], g.size)
		cacheIndex := cells * 2
		g.cacheNextEdgeAndCorner(cacheIndex, c, d)
		g.cacheNextMiddleEdge(b, d)
		g.triangulateCell(cacheIndex, g.voxels[offset+cells], b, c, d)
	}
}

func (g *Grid) swapRowCaches() {
	g.rowCacheMin, g.rowCacheMax = g.rowCacheMax, g.rowCacheMin
}

func (g *Grid) cacheFirstCorner(v voxel.Voxel) {
	if v.State {
		g.rowCacheMax[0] = g.mesh.AddVertex(v.Position, 0)
	}
}

func (g *Grid) cacheNextEdgeAndCorner(i int, xMin, xMax voxel.Voxel) {
	if xMin.State != xMax.State {
		g.rowCacheMax[i+1] = g.mesh.AddVertex(xMin.XEdgePoint(), 0)
	}
	if xMax.State {
		g.rowCacheMax[i+2] = g.mesh.AddVertex(xMax.Position, 0)
	}
}

func (g *Grid) cacheNextMiddleEdge(yMin, yMax voxel.Voxel) {
	g.edgeCacheMin = g.edgeCacheMax
	if yMin.State != yMax.State {
		g.edgeCacheMax = g.mesh.AddVertex(yMin.YEdgePoint(), 0)
	}
}

// cached returns the mesh index of a corner or edge slot of the cell whose
// row cache index is i.
func (g *Grid) cached(i int, s slot) uint32 {
	switch s {
	case slotA:
		return g.rowCacheMin[i]
	case slotX0:
		return g.rowCacheMin[i+1]
	case slotB:
		return g.rowCacheMin[i+2]
	case slotC:
		return g.rowCacheMax[i]
	case slotX1:
		return g.rowCacheMax[i+1]
	case slotD:
		return g.rowCacheMax[i+2]
	case slotY0:
		return g.edgeCacheMin
	case slotY1:
		return g.edgeCacheMax
	}
	panic("contour: slot has no cache entry")
}

// cell is the 2x2 block being triangulated.
type cell struct {
	i          int
	a, b, c, d voxel.Voxel
}

func (c *cell) point(s slot) v2.Vec {
	switch s {
	case slotA:
		return c.a.Position
	case slotB:
		return c.b.Position
	case slotC:
		return c.c.Position
	case slotD:
		return c.d.Position
	case slotX0:
		return c.a.XEdgePoint()
	case slotX1:
		return c.c.XEdgePoint()
	case slotY0:
		return c.a.YEdgePoint()
	case slotY1:
		return c.b.YEdgePoint()
	}
	return v2.Vec{}
}

func (c *cell) normal(s slot) v2.Vec {
	switch s {
	case slotX0:
		return c.a.XNormal
	case slotX1:
		return c.c.XNormal
	case slotY0:
		return c.a.YNormal
	case slotY1:
		return c.b.YNormal
	}
	return v2.Vec{}
}

func (g *Grid) triangulateCell(i int, a, b, c, d voxel.Voxel) {
	cc := &cases[caseIndex(a.State, b.State, c.State, d.State)]
	cl := cell{i: i, a: a, b: b, c: c, d: d}
	if cc.saddle != nil {
		g.triangulateSaddle(&cl, cc.saddle)
		return
	}
	for _, s := range cc.shapes {
		p, ok := g.feature(&cl, s)
		g.emit(&cl, s, p, ok)
	}
}

// triangulateSaddle decides whether the two set corners of a saddle cell
// are joined. Each corner's feature vertex, when there is one, reaching
// across the other corner's boundary joins them.
func (g *Grid) triangulateSaddle(c *cell, s *saddle) {
	p0, sharp0 := g.feature(c, s.first)
	p1, sharp1 := g.feature(c, s.second)
	from0, to0 := c.point(s.first.from), c.point(s.first.to)
	from1, to1 := c.point(s.second.from), c.point(s.second.to)

	var connected bool
	switch {
	case sharp0 && sharp1:
		if below(p1, from0, p0) {
			connected = below(p1, p0, to0) || below(p0, p1, to1)
		} else {
			connected = below(p1, p0, to0) && below(p0, from1, p1)
		}
	case sharp0:
		connected = below(p0, from1, to1)
	case sharp1:
		connected = below(p1, from0, to0)
	}

	if connected {
		for _, h := range s.halves {
			p, ok := g.feature(c, h)
			g.emit(c, h, p, ok)
		}
		return
	}
	g.emit(c, s.first, p0, sharp0)
	g.emit(c, s.second, p1, sharp1)
}

// emit adds a polygon to the mesh as a fan from its first vertex. The
// feature slot is included only when sharp is set.
func (g *Grid) emit(c *cell, s shape, feature v2.Vec, sharp bool) {
	var idx [6]uint32
	var slots [6]slot
	n := 0
	for _, sl := range s.polygon {
		if sl == slotF {
			if !sharp {
				continue
			}
			idx[n] = g.mesh.AddVertex(feature, 0)
		} else {
			idx[n] = g.cached(c.i, sl)
		}
		slots[n] = sl
		n++
	}
	for k := 1; k+1 < n; k++ {
		g.mesh.AddTriangle(idx[0], idx[k], idx[k+1])
	}
	if !g.walls {
		return
	}
	for k := 0; k < n; k++ {
		next := (k + 1) % n
		if !slots[k].corner() && !slots[next].corner() {
			g.addWall(idx[k], idx[next])
		}
	}
}
