package voxel

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// NoCrossing is the edge coordinate of an edge without a boundary crossing.
const NoCrossing = -math.MaxFloat64

// Voxel is a point sample of the field in grid-local coordinates.
//
// XEdge is the x coordinate where the boundary crosses the horizontal edge
// to the voxel on the right; YEdge is the y coordinate on the vertical edge
// to the voxel above. Normals point from the solid side to the empty side.
type Voxel struct {
	Position v2.Vec
	State    bool
	XEdge    float64
	YEdge    float64
	XNormal  v2.Vec
	YNormal  v2.Vec
}

// New returns the empty voxel with index (x, y) in a grid of cells of the
// given size. Its sample point sits in the middle of the cell.
func New(x, y int, size float64) Voxel {
	return Voxel{
		Position: v2.Vec{X: (float64(x) + 0.5) * size, Y: (float64(y) + 0.5) * size},
		XEdge:    NoCrossing,
		YEdge:    NoCrossing,
	}
}

// HasXEdge reports whether the edge to the right carries a crossing.
func (v *Voxel) HasXEdge() bool { return v.XEdge != NoCrossing }

// HasYEdge reports whether the edge above carries a crossing.
func (v *Voxel) HasYEdge() bool { return v.YEdge != NoCrossing }

// XEdgePoint is the crossing on the edge to the right.
func (v *Voxel) XEdgePoint() v2.Vec { return v2.Vec{X: v.XEdge, Y: v.Position.Y} }

// YEdgePoint is the crossing on the edge above.
func (v *Voxel) YEdgePoint() v2.Vec { return v2.Vec{X: v.Position.X, Y: v.YEdge} }

// ClearXEdge forgets the crossing on the edge to the right.
func (v *Voxel) ClearXEdge() {
	v.XEdge = NoCrossing
	v.XNormal = v2.Vec{}
}

// ClearYEdge forgets the crossing on the edge above.
func (v *Voxel) ClearYEdge() {
	v.YEdge = NoCrossing
	v.YNormal = v2.Vec{}
}

// ProjectX returns a copy of v moved offset along x. It is how a grid sees
// the first column of its +x neighbour in its own coordinate frame.
func ProjectX(v Voxel, offset float64) Voxel {
	v.Position.X += offset
	if v.HasXEdge() {
		v.XEdge += offset
	}
	return v
}

// ProjectY returns a copy of v moved offset along y.
func ProjectY(v Voxel, offset float64) Voxel {
	v.Position.Y += offset
	if v.HasYEdge() {
		v.YEdge += offset
	}
	return v
}

// ProjectXY returns a copy of v moved offset along both axes.
func ProjectXY(v Voxel, offset float64) Voxel {
	return ProjectY(ProjectX(v, offset), offset)
}

// BecomeXDummyOf overwrites v with the x projection of src.
func (v *Voxel) BecomeXDummyOf(src *Voxel, offset float64) { *v = ProjectX(*src, offset) }

// BecomeYDummyOf overwrites v with the y projection of src.
func (v *Voxel) BecomeYDummyOf(src *Voxel, offset float64) { *v = ProjectY(*src, offset) }

// BecomeXYDummyOf overwrites v with the diagonal projection of src.
func (v *Voxel) BecomeXYDummyOf(src *Voxel, offset float64) { *v = ProjectXY(*src, offset) }
