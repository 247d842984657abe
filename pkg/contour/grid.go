package contour

import (
	"math"

	"github.com/chazu/contour/pkg/mesh"
	"github.com/chazu/contour/pkg/voxel"
)

// Grid is a square patch of voxels with its contour and wall meshes.
// Coordinates are local to the grid: the grid covers [0, size] on both axes.
type Grid struct {
	resolution int
	size       float64
	voxelSize  float64
	voxels     []voxel.Voxel
	changed    []bool

	// Neighbours on +x, +y and the +x+y diagonal. Any of them may be nil.
	xNeighbor  *Grid
	yNeighbor  *Grid
	xyNeighbor *Grid

	name       string
	sharp      bool
	sharpLimit float64

	walls      bool
	wallBottom float64
	wallTop    float64

	sink     mesh.Sink
	wallSink mesh.Sink

	mesh     *mesh.Mesh
	wallMesh *mesh.Mesh

	rowCacheMin  []uint32
	rowCacheMax  []uint32
	edgeCacheMin uint32
	edgeCacheMax uint32
	wallPairs    []int32
}

// New returns an empty grid of resolution x resolution voxels covering a
// square of the given size.
func New(resolution int, size float64, opts ...Option) *Grid {
	g := &Grid{
		resolution:  resolution,
		size:        size,
		voxelSize:   size / float64(resolution),
		voxels:      make([]voxel.Voxel, resolution*resolution),
		changed:     make([]bool, resolution*resolution),
		rowCacheMin: make([]uint32, resolution*2+1),
		rowCacheMax: make([]uint32, resolution*2+1),
		mesh:        &mesh.Mesh{},
		wallMesh:    &mesh.Mesh{},
	}
	g.setFeatureAngle(DefaultMaxFeatureAngle)
	for i, y := 0, 0; y < resolution; y++ {
		for x := 0; x < resolution; x, i = x+1, i+1 {
			g.voxels[i] = voxel.New(x, y, g.voxelSize)
		}
	}
	for _, opt := range opts {
		opt(g)
	}
	g.mesh.Name = g.name
	g.wallMesh.Name = g.wallName()
	return g
}

func (g *Grid) setFeatureAngle(deg float64) {
	g.sharp = deg > 0
	g.sharpLimit = math.Cos(deg * math.Pi / 180)
}

func (g *Grid) wallName() string {
	if g.name == "" {
		return "wall"
	}
	return g.name + "/wall"
}

// SetNeighbors wires the grids lying one grid size to the +x, +y and +x+y
// of this one. The gap cells between this grid and its neighbours belong
// to this grid.
func (g *Grid) SetNeighbors(x, y, xy *Grid) {
	g.xNeighbor = x
	g.yNeighbor = y
	g.xyNeighbor = xy
}

// Resolution returns the number of voxels per axis.
func (g *Grid) Resolution() int { return g.resolution }

// Size returns the side length of the grid.
func (g *Grid) Size() float64 { return g.size }

// VoxelSize returns the side length of one voxel.
func (g *Grid) VoxelSize() float64 { return g.voxelSize }

// Name returns the grid name.
func (g *Grid) Name() string { return g.name }

// Voxel returns a copy of voxel (x, y).
func (g *Grid) Voxel(x, y int) voxel.Voxel {
	return g.voxels[y*g.resolution+x]
}

// State reports whether voxel (x, y) is solid.
func (g *Grid) State(x, y int) bool {
	return g.voxels[y*g.resolution+x].State
}

// States returns the voxel states in row-major order.
func (g *Grid) States() []bool {
	states := make([]bool, len(g.voxels))
	for i := range g.voxels {
		states[i] = g.voxels[i].State
	}
	return states
}

// Mesh returns the contour mesh of the last rebuild.
func (g *Grid) Mesh() *mesh.Mesh { return g.mesh }

// WallMesh returns the wall mesh of the last rebuild. It is empty unless
// walls are enabled.
func (g *Grid) WallMesh() *mesh.Mesh { return g.wallMesh }

// Region is an inclusive rectangle of voxel indices.
type Region struct {
	X0, Y0, X1, Y1 int
}

// Apply edits the grid with a stencil given in grid-local coordinates and
// rebuilds the meshes. Edits that span several wired grids must run the
// phases (Stamp, Cross, Refresh, Settle) across all of them instead.
func (g *Grid) Apply(s *voxel.Stencil) {
	r := g.Stamp(s)
	g.Cross(s, r)
	g.Refresh()
	g.Settle()
}

// Stamp sets the state of every voxel inside the stencil and returns the
// clamped voxel rectangle covered by the stencil's bounds. Voxels that
// flipped are remembered until Settle.
func (g *Grid) Stamp(s *voxel.Stencil) Region {
	r := Region{
		X0: g.clampIndex(int(math.Floor(s.XStart() / g.voxelSize))),
		Y0: g.clampIndex(int(math.Floor(s.YStart() / g.voxelSize))),
		X1: g.clampIndex(int(math.Floor(s.XEnd() / g.voxelSize))),
		Y1: g.clampIndex(int(math.Floor(s.YEnd() / g.voxelSize))),
	}
	for y := r.Y0; y <= r.Y1; y++ {
		i := y*g.resolution + r.X0
		for x := r.X0; x <= r.X1; x, i = x+1, i+1 {
			if s.Apply(&g.voxels[i]) {
				g.changed[i] = true
			}
		}
	}
	return r
}

// Cross recomputes the crossings of every edge leaving the region grown by
// one voxel, including the edges into the +x and +y neighbours. An edge
// with an endpoint that flipped since the last Settle is cleared before the
// stencil records its crossing.
func (g *Grid) Cross(s *voxel.Stencil, r Region) {
	r = Region{
		X0: g.clampIndex(r.X0 - 1),
		Y0: g.clampIndex(r.Y0 - 1),
		X1: g.clampIndex(r.X1 + 1),
		Y1: g.clampIndex(r.Y1 + 1),
	}
	for y := r.Y0; y <= r.Y1; y++ {
		i := y*g.resolution + r.X0
		for x := r.X0; x <= r.X1; x, i = x+1, i+1 {
			g.crossX(s, x, y, i)
			g.crossY(s, x, y, i)
		}
	}
}

func (g *Grid) crossX(s *voxel.Stencil, x, y, i int) {
	v := &g.voxels[i]
	var next voxel.Voxel
	var flipped bool
	switch {
	case x < g.resolution-1:
		next, flipped = g.voxels[i+1], g.changed[i+1]
	case g.xNeighbor != nil:
		j := y * g.resolution
		next, flipped = voxel.ProjectX(g.xNeighbor.voxels[j], g.size), g.xNeighbor.changed[j]
	default:
		v.ClearXEdge()
		return
	}
	if flipped || g.changed[i] {
		v.ClearXEdge()
	}
	s.SetHorizontalCrossing(v, next)
}

func (g *Grid) crossY(s *voxel.Stencil, x, y, i int) {
	v := &g.voxels[i]
	var next voxel.Voxel
	var flipped bool
	switch {
	case y < g.resolution-1:
		next, flipped = g.voxels[i+g.resolution], g.changed[i+g.resolution]
	case g.yNeighbor != nil:
		next, flipped = voxel.ProjectY(g.yNeighbor.voxels[x], g.size), g.yNeighbor.changed[x]
	default:
		v.ClearYEdge()
		return
	}
	if flipped || g.changed[i] {
		v.ClearYEdge()
	}
	s.SetVerticalCrossing(v, next)
}

// Refresh rebuilds the meshes and hands them to the sinks.
func (g *Grid) Refresh() {
	g.Triangulate()
	if g.sink != nil {
		g.sink.SetMesh(g.mesh)
	}
	if g.walls && g.wallSink != nil {
		g.wallSink.SetMesh(g.wallMesh)
	}
}

// Settle forgets which voxels flipped during the current edit.
func (g *Grid) Settle() {
	for i := range g.changed {
		g.changed[i] = false
	}
}

func (g *Grid) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= g.resolution {
		return g.resolution - 1
	}
	return i
}
