package voxel

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Kind enumerates the stencil shapes.
type Kind int

const (
	Square Kind = iota
	Circle
)

func (k Kind) String() string {
	switch k {
	case Square:
		return "square"
	case Circle:
		return "circle"
	default:
		return "unknown"
	}
}

// Stencil edits the voxels inside a shape and records where the shape's
// boundary crosses voxel edges. One stencil is reused across many grids by
// moving its center into each grid's local frame.
type Stencil struct {
	kind   Kind
	fill   bool
	center v2.Vec
	radius float64
	shape  Shape
}

// NewStencil returns a stencil of the given kind. Initialize must be called
// before use.
func NewStencil(kind Kind) *Stencil {
	s := &Stencil{kind: kind}
	s.shape = s.build()
	return s
}

// Initialize sets the fill type and radius. For squares the radius is half
// the side length.
func (s *Stencil) Initialize(fill bool, radius float64) {
	s.fill = fill
	s.radius = radius
	s.shape = s.build()
}

// SetCenter moves the stencil.
func (s *Stencil) SetCenter(x, y float64) {
	s.center = v2.Vec{X: x, Y: y}
	s.shape = s.build()
}

func (s *Stencil) build() Shape {
	switch s.kind {
	case Circle:
		return newCircle(s.center, s.radius)
	default:
		return newSquare(s.center, s.radius)
	}
}

func (s *Stencil) Kind() Kind       { return s.kind }
func (s *Stencil) FillType() bool   { return s.fill }
func (s *Stencil) Center() v2.Vec   { return s.center }
func (s *Stencil) Radius() float64  { return s.radius }
func (s *Stencil) Shape() Shape     { return s.shape }
func (s *Stencil) Bounds() sdf.Box2 { return s.shape.Bounds() }

func (s *Stencil) XStart() float64 { return s.center.X - s.radius }
func (s *Stencil) XEnd() float64   { return s.center.X + s.radius }
func (s *Stencil) YStart() float64 { return s.center.Y - s.radius }
func (s *Stencil) YEnd() float64   { return s.center.Y + s.radius }

// Apply sets the voxel to the fill type when its sample point lies inside
// the shape. It reports whether the state changed.
func (s *Stencil) Apply(v *Voxel) bool {
	if !s.shape.Contains(v.Position) || v.State == s.fill {
		return false
	}
	v.State = s.fill
	return true
}

// SetHorizontalCrossing records on xMin the crossing of the edge between
// xMin and its right neighbour xMax. Equal states clear the crossing.
//
// When the edge already has a crossing with the same orientation, the one
// that extends the region of the stencil's fill type further wins, so
// overlapping stencils of one fill type behave as their union.
func (s *Stencil) SetHorizontalCrossing(xMin *Voxel, xMax Voxel) {
	if xMin.State == xMax.State {
		xMin.ClearXEdge()
		return
	}
	switch {
	case xMin.State == s.fill && s.shape.Contains(xMin.Position):
		x, n := s.shape.Boundary(xMin.Position, AxisX, 1)
		x = clamp(x, xMin.Position.X, xMax.Position.X)
		if !xMin.HasXEdge() || xMin.XEdge < x {
			xMin.XEdge = x
			xMin.XNormal = s.solidNormal(n)
		}
	case xMax.State == s.fill && s.shape.Contains(xMax.Position):
		x, n := s.shape.Boundary(xMax.Position, AxisX, -1)
		x = clamp(x, xMin.Position.X, xMax.Position.X)
		if !xMin.HasXEdge() || xMin.XEdge > x {
			xMin.XEdge = x
			xMin.XNormal = s.solidNormal(n)
		}
	}
	if !xMin.HasXEdge() {
		xMin.XEdge = (xMin.Position.X + xMax.Position.X) / 2
		xMin.XNormal = axisNormal(xMin.State, AxisX)
	}
}

// SetVerticalCrossing records on yMin the crossing of the edge between yMin
// and the voxel yMax above it.
func (s *Stencil) SetVerticalCrossing(yMin *Voxel, yMax Voxel) {
	if yMin.State == yMax.State {
		yMin.ClearYEdge()
		return
	}
	switch {
	case yMin.State == s.fill && s.shape.Contains(yMin.Position):
		y, n := s.shape.Boundary(yMin.Position, AxisY, 1)
		y = clamp(y, yMin.Position.Y, yMax.Position.Y)
		if !yMin.HasYEdge() || yMin.YEdge < y {
			yMin.YEdge = y
			yMin.YNormal = s.solidNormal(n)
		}
	case yMax.State == s.fill && s.shape.Contains(yMax.Position):
		y, n := s.shape.Boundary(yMax.Position, AxisY, -1)
		y = clamp(y, yMin.Position.Y, yMax.Position.Y)
		if !yMin.HasYEdge() || yMin.YEdge > y {
			yMin.YEdge = y
			yMin.YNormal = s.solidNormal(n)
		}
	}
	if !yMin.HasYEdge() {
		yMin.YEdge = (yMin.Position.Y + yMax.Position.Y) / 2
		yMin.YNormal = axisNormal(yMin.State, AxisY)
	}
}

// solidNormal turns the shape's outward normal into one pointing from solid
// to empty. Clearing stencils leave the solid outside the shape.
func (s *Stencil) solidNormal(n v2.Vec) v2.Vec {
	if s.fill {
		return n
	}
	return v2.Vec{X: -n.X, Y: -n.Y}
}

// axisNormal is the normal of an edge crossing whose lower voxel has the
// given state, with no shape information available.
func axisNormal(minState bool, axis Axis) v2.Vec {
	sign := -1.0
	if minState {
		sign = 1
	}
	if axis == AxisX {
		return v2.Vec{X: sign}
	}
	return v2.Vec{Y: sign}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Contains reports whether p lies inside the stencil's shape.
func (s *Stencil) Contains(p v2.Vec) bool { return s.shape.Contains(p) }
