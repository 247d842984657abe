// Package tessellate walks a voxel map and produces world-space triangle
// meshes. One mesh is produced per chunk, plus one wall mesh per chunk
// when walls are requested.
package tessellate

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/contour/pkg/contour"
	"github.com/chazu/contour/pkg/mesh"
	"github.com/chazu/contour/pkg/voxelmap"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Options selects what Tessellate collects.
type Options struct {
	// Walls adds each chunk's wall mesh after its contour mesh.
	Walls bool
	// KeepEmpty keeps chunks that produced no triangles.
	KeepEmpty bool
}

// Tessellate walks the chunks of m row by row and returns copies of their
// meshes moved into world coordinates. The map is never mutated.
func Tessellate(m *voxelmap.Map, opts Options) ([]*mesh.Mesh, error) {
	if m == nil {
		return nil, nil
	}

	var meshes []*mesh.Mesh
	n := m.ChunkResolution()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			collected, err := walkChunk(m.Chunk(x, y), m.ChunkOrigin(x, y), opts)
			if err != nil {
				return nil, errors.New("tessellating chunk failed").
					WithTag("chunk", voxelmap.ChunkName(x, y)).
					Wrap(err)
			}
			meshes = append(meshes, collected...)
		}
	}
	return meshes, nil
}

func walkChunk(g *contour.Grid, origin v2.Vec, opts Options) ([]*mesh.Mesh, error) {
	sources := []*mesh.Mesh{g.Mesh()}
	if opts.Walls {
		sources = append(sources, g.WallMesh())
	}

	var meshes []*mesh.Mesh
	for _, src := range sources {
		if src == nil || (src.IsEmpty() && !opts.KeepEmpty) {
			continue
		}
		placed, err := place(src, origin)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, placed)
	}
	return meshes, nil
}

// place returns a validated copy of src translated by origin.
func place(src *mesh.Mesh, origin v2.Vec) (*mesh.Mesh, error) {
	if err := src.Validate(); err != nil {
		return nil, errors.New("invalid mesh").
			WithTag("mesh", src.Name).
			Wrap(err)
	}
	m := src.Clone()
	m.Translate(origin.X, origin.Y, 0)
	return m, nil
}

// Merge concatenates meshes into a single mesh with the given name.
func Merge(name string, meshes []*mesh.Mesh) *mesh.Mesh {
	out := &mesh.Mesh{Name: name}
	for _, m := range meshes {
		base := uint32(out.VertexCount())
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, i := range m.Indices {
			out.Indices = append(out.Indices, base+i)
		}
	}
	return out
}
