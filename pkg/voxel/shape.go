package voxel

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Axis selects the direction of a voxel edge.
type Axis int

const (
	AxisX Axis = iota // horizontal edge, to the right
	AxisY             // vertical edge, upwards
)

// Shape is the geometry behind a stencil.
type Shape interface {
	// Contains reports whether p lies inside the shape, boundary included.
	Contains(p v2.Vec) bool
	// Boundary walks from the inside point p along axis in direction dir
	// (+1 or -1) and returns the coordinate on that axis where it leaves
	// the shape, with the outward unit normal at that point.
	Boundary(p v2.Vec, axis Axis, dir float64) (float64, v2.Vec)
	// Bounds is the axis-aligned bounding box of the shape.
	Bounds() sdf.Box2
}

// square is an axis-aligned box.
type square struct {
	box sdf.Box2
}

func newSquare(center v2.Vec, radius float64) square {
	return square{box: sdf.Box2{
		Min: v2.Vec{X: center.X - radius, Y: center.Y - radius},
		Max: v2.Vec{X: center.X + radius, Y: center.Y + radius},
	}}
}

func (s square) Contains(p v2.Vec) bool {
	return p.X >= s.box.Min.X && p.X <= s.box.Max.X &&
		p.Y >= s.box.Min.Y && p.Y <= s.box.Max.Y
}

func (s square) Boundary(_ v2.Vec, axis Axis, dir float64) (float64, v2.Vec) {
	if axis == AxisX {
		if dir > 0 {
			return s.box.Max.X, v2.Vec{X: 1}
		}
		return s.box.Min.X, v2.Vec{X: -1}
	}
	if dir > 0 {
		return s.box.Max.Y, v2.Vec{Y: 1}
	}
	return s.box.Min.Y, v2.Vec{Y: -1}
}

func (s square) Bounds() sdf.Box2 { return s.box }

// circle is a disc.
type circle struct {
	center    v2.Vec
	radius    float64
	sqrRadius float64
}

func newCircle(center v2.Vec, radius float64) circle {
	return circle{center: center, radius: radius, sqrRadius: radius * radius}
}

func (c circle) Contains(p v2.Vec) bool {
	d := p.Sub(c.center)
	return d.X*d.X+d.Y*d.Y <= c.sqrRadius
}

func (c circle) Boundary(p v2.Vec, axis Axis, dir float64) (float64, v2.Vec) {
	var q v2.Vec
	if axis == AxisX {
		dy := p.Y - c.center.Y
		q = v2.Vec{X: c.center.X + dir*math.Sqrt(math.Max(0, c.sqrRadius-dy*dy)), Y: p.Y}
	} else {
		dx := p.X - c.center.X
		q = v2.Vec{X: p.X, Y: c.center.Y + dir*math.Sqrt(math.Max(0, c.sqrRadius-dx*dx))}
	}
	n := q.Sub(c.center)
	l := n.Length()
	if l == 0 {
		// degenerate radius: fall back to the walking direction
		if axis == AxisX {
			return q.X, v2.Vec{X: dir}
		}
		return q.Y, v2.Vec{Y: dir}
	}
	n = n.MulScalar(1 / l)
	if axis == AxisX {
		return q.X, n
	}
	return q.Y, n
}

func (c circle) Bounds() sdf.Box2 {
	return sdf.Box2{
		Min: v2.Vec{X: c.center.X - c.radius, Y: c.center.Y - c.radius},
		Max: v2.Vec{X: c.center.X + c.radius, Y: c.center.Y + c.radius},
	}
}
