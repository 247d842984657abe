package contour

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// parallelLimit excludes normals so close to opposite that the tangents
// are nearly parallel.
const parallelLimit = 0.9999

// isSharp reports whether the boundary turns enough between two crossings
// with normals n1 and n2 to deserve a feature vertex.
func (g *Grid) isSharp(n1, n2 v2.Vec) bool {
	if !g.sharp {
		return false
	}
	dot := -n1.Dot(n2)
	return dot >= g.sharpLimit && dot < parallelLimit
}

// feature returns the feature vertex of a shape, fitted to the cell.
func (g *Grid) feature(c *cell, s shape) (v2.Vec, bool) {
	if !s.hasFeature() {
		return v2.Vec{}, false
	}
	n1, n2 := c.normal(s.from), c.normal(s.to)
	if !g.isSharp(n1, n2) {
		return v2.Vec{}, false
	}
	p, ok := intersection(c.point(s.from), n1, c.point(s.to), n2)
	if !ok {
		return v2.Vec{}, false
	}
	min, max := c.a.Position, c.d.Position
	switch s.fit {
	case fitCornerA:
		return clampCornerA(p, min, max)
	case fitCornerB:
		return clampCornerB(p, min, max)
	case fitCornerC:
		return clampCornerC(p, min, max)
	case fitCornerD:
		return clampCornerD(p, min, max)
	case fitInside:
		return p, insideCell(p, min, max)
	case fitInsideBelow:
		return p, insideCell(p, min, max) && below(p, c.point(s.side[0]), c.point(s.side[1]))
	}
	return v2.Vec{}, false
}

// intersection returns where the line through p1 perpendicular to n1 meets
// the line through p2 perpendicular to n2.
func intersection(p1, n1, p2, n2 v2.Vec) (v2.Vec, bool) {
	d2 := v2.Vec{X: -n2.Y, Y: n2.X}
	den := n1.Dot(d2)
	if math.Abs(den) < 1e-9 {
		return v2.Vec{}, false
	}
	u := -n1.Dot(p2.Sub(p1)) / den
	return p2.Add(d2.MulScalar(u)), true
}

// below reports whether p lies strictly to the right of the directed line
// from start to end.
func below(p, start, end v2.Vec) bool {
	return (end.X-start.X)*(p.Y-start.Y)-(end.Y-start.Y)*(p.X-start.X) < 0
}

func insideCell(p, min, max v2.Vec) bool {
	return p.X > min.X && p.Y > min.Y && p.X < max.X && p.Y < max.Y
}

func clampCornerA(p, min, max v2.Vec) (v2.Vec, bool) {
	if p.X < min.X || p.Y < min.Y {
		return p, false
	}
	p.X = math.Min(p.X, max.X)
	p.Y = math.Min(p.Y, max.Y)
	return p, true
}

func clampCornerB(p, min, max v2.Vec) (v2.Vec, bool) {
	if p.X > max.X || p.Y < min.Y {
		return p, false
	}
	p.X = math.Max(p.X, min.X)
	p.Y = math.Min(p.Y, max.Y)
	return p, true
}

func clampCornerC(p, min, max v2.Vec) (v2.Vec, bool) {
	if p.X < min.X || p.Y > max.Y {
		return p, false
	}
	p.X = math.Min(p.X, max.X)
	p.Y = math.Max(p.Y, min.Y)
	return p, true
}

func clampCornerD(p, min, max v2.Vec) (v2.Vec, bool) {
	if p.X > max.X || p.Y > max.Y {
		return p, false
	}
	p.X = math.Max(p.X, min.X)
	p.Y = math.Max(p.Y, min.Y)
	return p, true
}
