// Package voxelmap tiles a square field with contour grids and routes
// world-space edits to every chunk they touch.
package voxelmap

import (
	"fmt"
	"math"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/contour/pkg/config"
	"github.com/chazu/contour/pkg/contour"
	"github.com/chazu/contour/pkg/mesh"
	"github.com/chazu/contour/pkg/voxel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Edit is one request to change the field.
type Edit struct {
	X, Y   float64
	Kind   voxel.Kind
	Fill   bool
	Radius float64
}

// SinkFactory returns the sink for the chunk at lattice position (x, y).
// It may return nil.
type SinkFactory func(x, y int) mesh.Sink

// Option configures a Map.
type Option func(*Map)

// WithChunkSinks sets the sinks receiving each chunk's contour mesh.
func WithChunkSinks(f SinkFactory) Option {
	return func(m *Map) {
		m.sinks = f
	}
}

// WithWallSinks sets the sinks receiving each chunk's wall mesh.
func WithWallSinks(f SinkFactory) Option {
	return func(m *Map) {
		m.wallSinks = f
	}
}

// Map is a square lattice of chunks. Chunk (x, y) covers the world square
// starting at origin + (x, y) * chunkSize.
type Map struct {
	size            float64
	origin          v2.Vec
	chunkResolution int
	voxelResolution int
	chunkSize       float64
	voxelSize       float64

	chunks   []*contour.Grid
	stencils map[voxel.Kind]*voxel.Stencil

	sinks     SinkFactory
	wallSinks SinkFactory
}

// New builds the chunks described by cfg and wires their neighbours.
// cfg is expected to be validated.
func New(cfg config.Config, opts ...Option) *Map {
	ox, oy := cfg.Origin()
	m := &Map{
		size:            cfg.Size,
		origin:          v2.Vec{X: ox, Y: oy},
		chunkResolution: cfg.ChunkResolution,
		voxelResolution: cfg.VoxelResolution,
		chunkSize:       cfg.ChunkSize(),
		voxelSize:       cfg.VoxelSize(),
		chunks:          make([]*contour.Grid, cfg.ChunkResolution*cfg.ChunkResolution),
		stencils:        map[voxel.Kind]*voxel.Stencil{},
	}
	for _, opt := range opts {
		opt(m)
	}

	for i, y := 0, 0; y < m.chunkResolution; y++ {
		for x := 0; x < m.chunkResolution; x, i = x+1, i+1 {
			m.chunks[i] = contour.New(m.voxelResolution, m.chunkSize, m.gridOptions(cfg, x, y)...)
		}
	}
	for y := 0; y < m.chunkResolution; y++ {
		for x := 0; x < m.chunkResolution; x++ {
			m.Chunk(x, y).SetNeighbors(m.Chunk(x+1, y), m.Chunk(x, y+1), m.Chunk(x+1, y+1))
		}
	}
	return m
}

func (m *Map) gridOptions(cfg config.Config, x, y int) []contour.Option {
	opts := []contour.Option{
		contour.WithName(ChunkName(x, y)),
		contour.WithMaxFeatureAngle(cfg.MaxFeatureAngle),
	}
	if cfg.Wall.Enabled {
		opts = append(opts, contour.WithWalls(cfg.Wall.Bottom, cfg.Wall.Top))
	}
	if m.sinks != nil {
		if s := m.sinks(x, y); s != nil {
			opts = append(opts, contour.WithSink(s))
		}
	}
	if m.wallSinks != nil {
		if s := m.wallSinks(x, y); s != nil {
			opts = append(opts, contour.WithWallSink(s))
		}
	}
	return opts
}

// ChunkName is the mesh name of chunk (x, y).
func ChunkName(x, y int) string {
	return fmt.Sprintf("chunk_%d_%d", x, y)
}

// Chunk returns the grid at lattice position (x, y), or nil outside the
// lattice.
func (m *Map) Chunk(x, y int) *contour.Grid {
	if x < 0 || y < 0 || x >= m.chunkResolution || y >= m.chunkResolution {
		return nil
	}
	return m.chunks[y*m.chunkResolution+x]
}

// ChunkOrigin returns the world position of the lower left corner of chunk
// (x, y).
func (m *Map) ChunkOrigin(x, y int) v2.Vec {
	return v2.Vec{
		X: m.origin.X + float64(x)*m.chunkSize,
		Y: m.origin.Y + float64(y)*m.chunkSize,
	}
}

// ChunkResolution returns the number of chunks per axis.
func (m *Map) ChunkResolution() int { return m.chunkResolution }

// VoxelResolution returns the number of voxels per chunk axis.
func (m *Map) VoxelResolution() int { return m.voxelResolution }

// ChunkSize returns the side length of one chunk.
func (m *Map) ChunkSize() float64 { return m.chunkSize }

// VoxelSize returns the side length of one voxel.
func (m *Map) VoxelSize() float64 { return m.voxelSize }

// Bounds returns the world extent of the map.
func (m *Map) Bounds() sdf.Box2 {
	return sdf.Box2{
		Min: m.origin,
		Max: v2.Vec{X: m.origin.X + m.size, Y: m.origin.Y + m.size},
	}
}

// StateAt returns the state of the voxel whose square contains the world
// point p. ok is false outside the map.
func (m *Map) StateAt(p v2.Vec) (state, ok bool) {
	local := p.Sub(m.origin)
	vx := int(math.Floor(local.X / m.voxelSize))
	vy := int(math.Floor(local.Y / m.voxelSize))
	n := m.chunkResolution * m.voxelResolution
	if vx < 0 || vy < 0 || vx >= n || vy >= n {
		return false, false
	}
	g := m.Chunk(vx/m.voxelResolution, vy/m.voxelResolution)
	return g.State(vx%m.voxelResolution, vy%m.voxelResolution), true
}

// Apply runs one edit and returns the number of chunks it touched.
func (m *Map) Apply(e Edit) int {
	return m.EditAt(v2.Vec{X: e.X, Y: e.Y}, e.Kind, e.Fill, e.Radius)
}

// EditAt fills or clears the shape of the given kind and radius centred
// on the world point p. Every chunk within one voxel of the shape's bounds
// is stamped before any of them recomputes crossings, and all crossings
// are current before any mesh is rebuilt. It returns the number of chunks
// touched; edits that miss the map touch none.
func (m *Map) EditAt(p v2.Vec, kind voxel.Kind, fill bool, radius float64) int {
	if radius < 0 {
		logs.WithTag("radius", radius).Debug("edit with negative radius ignored")
		return 0
	}
	local := p.Sub(m.origin)
	pad := radius + m.voxelSize
	xStart := int(math.Floor((local.X - pad) / m.chunkSize))
	xEnd := int(math.Floor((local.X + pad) / m.chunkSize))
	yStart := int(math.Floor((local.Y - pad) / m.chunkSize))
	yEnd := int(math.Floor((local.Y + pad) / m.chunkSize))
	if xEnd < 0 || yEnd < 0 || xStart >= m.chunkResolution || yStart >= m.chunkResolution {
		return 0
	}
	xStart, yStart = max(xStart, 0), max(yStart, 0)
	xEnd, yEnd = min(xEnd, m.chunkResolution-1), min(yEnd, m.chunkResolution-1)

	s := m.stencil(kind)
	s.Initialize(fill, radius)

	type target struct {
		grid   *contour.Grid
		center v2.Vec
		region contour.Region
	}
	var targets []target
	for y := yStart; y <= yEnd; y++ {
		for x := xStart; x <= xEnd; x++ {
			targets = append(targets, target{
				grid:   m.Chunk(x, y),
				center: p.Sub(m.ChunkOrigin(x, y)),
			})
		}
	}

	for i := range targets {
		t := &targets[i]
		s.SetCenter(t.center.X, t.center.Y)
		t.region = t.grid.Stamp(s)
	}
	for _, t := range targets {
		s.SetCenter(t.center.X, t.center.Y)
		t.grid.Cross(s, t.region)
	}
	for _, t := range targets {
		start := time.Now()
		t.grid.Refresh()
		instrumentRebuild(start, t.grid.Mesh().TriangleCount())
	}
	for _, t := range targets {
		t.grid.Settle()
	}

	instrumentEdit(kind.String(), fill)
	logs.WithTag("chunks", len(targets)).
		WithTag("kind", kind.String()).
		WithTag("fill", fill).
		WithTag("radius", radius).
		Debug("edit applied")
	return len(targets)
}

func (m *Map) stencil(kind voxel.Kind) *voxel.Stencil {
	s, ok := m.stencils[kind]
	if !ok {
		s = voxel.NewStencil(kind)
		m.stencils[kind] = s
	}
	return s
}
