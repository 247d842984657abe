package contour

// slot names a vertex position within a cell. Corners are the voxel sample
// points, X0/X1 the crossings on the bottom/top edges, Y0/Y1 those on the
// left/right edges and F the feature vertex.
type slot uint8

const (
	slotA slot = iota // bottom left corner
	slotB             // bottom right corner
	slotC             // top left corner
	slotD             // top right corner
	slotX0
	slotX1
	slotY0
	slotY1
	slotF
)

func (s slot) corner() bool { return s <= slotD }

// fit says how a candidate feature vertex is fitted to the cell.
type fit uint8

const (
	fitNone fit = iota
	// fitCornerA..D reject a point on the far side of the named corner and
	// clamp it to the cell otherwise.
	fitCornerA
	fitCornerB
	fitCornerC
	fitCornerD
	// fitInside accepts points strictly inside the cell.
	fitInside
	// fitInsideBelow additionally requires the point to lie below the line
	// through side[0] and side[1].
	fitInsideBelow
)

// shape is one polygon of a case, clockwise. Polygons with a feature slot
// start at it: the polygon is star-shaped around the feature vertex even
// when that vertex is reflex. The vertex is placed where the tangents at
// the crossings from and to meet; without a sharp feature the F slot is
// skipped and the remaining polygon is convex.
type shape struct {
	polygon []slot
	from    slot
	to      slot
	fit     fit
	side    [2]slot
}

func (s shape) hasFeature() bool { return s.fit != fitNone }

// saddle resolves a case with two diagonal corners set. The pieces are the
// polygons around each corner alone; the halves split the connected region
// along the diagonal through the two corners.
type saddle struct {
	first  shape
	second shape
	halves [2]shape
}

// cellCase describes the geometry of one of the sixteen cases. The case
// index has bit 0 set for a, bit 1 for b, bit 2 for c and bit 3 for d.
type cellCase struct {
	shapes []shape
	saddle *saddle
}

var cases = [16]cellCase{
	0: {},
	1: {shapes: []shape{{
		polygon: []slot{slotF, slotX0, slotA, slotY0},
		from:    slotX0, to: slotY0, fit: fitCornerA,
	}}},
	2: {shapes: []shape{{
		polygon: []slot{slotF, slotY1, slotB, slotX0},
		from:    slotX0, to: slotY1, fit: fitCornerB,
	}}},
	3: {shapes: []shape{{
		polygon: []slot{slotF, slotY1, slotB, slotA, slotY0},
		from:    slotY0, to: slotY1, fit: fitInside,
	}}},
	4: {shapes: []shape{{
		polygon: []slot{slotF, slotY0, slotC, slotX1},
		from:    slotX1, to: slotY0, fit: fitCornerC,
	}}},
	5: {shapes: []shape{{
		polygon: []slot{slotF, slotX0, slotA, slotC, slotX1},
		from:    slotX1, to: slotX0, fit: fitInside,
	}}},
	6: {saddle: &saddle{
		first: shape{
			polygon: []slot{slotF, slotY1, slotB, slotX0},
			from:    slotX0, to: slotY1, fit: fitCornerB,
		},
		second: shape{
			polygon: []slot{slotF, slotY0, slotC, slotX1},
			from:    slotX1, to: slotY0, fit: fitCornerC,
		},
		halves: [2]shape{
			{
				polygon: []slot{slotF, slotY0, slotC, slotB, slotX0},
				from:    slotX0, to: slotY0, fit: fitInsideBelow,
				side: [2]slot{slotC, slotB},
			},
			{
				polygon: []slot{slotF, slotY1, slotB, slotC, slotX1},
				from:    slotX1, to: slotY1, fit: fitInsideBelow,
				side: [2]slot{slotB, slotC},
			},
		},
	}},
	7: {shapes: []shape{{
		polygon: []slot{slotF, slotY1, slotB, slotA, slotC, slotX1},
		from:    slotX1, to: slotY1, fit: fitInside,
	}}},
	8: {shapes: []shape{{
		polygon: []slot{slotF, slotX1, slotD, slotY1},
		from:    slotY1, to: slotX1, fit: fitCornerD,
	}}},
	9: {saddle: &saddle{
		first: shape{
			polygon: []slot{slotF, slotX1, slotD, slotY1},
			from:    slotY1, to: slotX1, fit: fitCornerD,
		},
		second: shape{
			polygon: []slot{slotF, slotX0, slotA, slotY0},
			from:    slotY0, to: slotX0, fit: fitCornerA,
		},
		halves: [2]shape{
			{
				polygon: []slot{slotF, slotX0, slotA, slotD, slotY1},
				from:    slotY1, to: slotX0, fit: fitInsideBelow,
				side: [2]slot{slotA, slotD},
			},
			{
				polygon: []slot{slotF, slotX1, slotD, slotA, slotY0},
				from:    slotY0, to: slotX1, fit: fitInsideBelow,
				side: [2]slot{slotD, slotA},
			},
		},
	}},
	10: {shapes: []shape{{
		polygon: []slot{slotF, slotX1, slotD, slotB, slotX0},
		from:    slotX0, to: slotX1, fit: fitInside,
	}}},
	11: {shapes: []shape{{
		polygon: []slot{slotF, slotX1, slotD, slotB, slotA, slotY0},
		from:    slotY0, to: slotX1, fit: fitInside,
	}}},
	12: {shapes: []shape{{
		polygon: []slot{slotF, slotY0, slotC, slotD, slotY1},
		from:    slotY1, to: slotY0, fit: fitInside,
	}}},
	13: {shapes: []shape{{
		polygon: []slot{slotF, slotX0, slotA, slotC, slotD, slotY1},
		from:    slotY1, to: slotX0, fit: fitInside,
	}}},
	14: {shapes: []shape{{
		polygon: []slot{slotF, slotY0, slotC, slotD, slotB, slotX0},
		from:    slotX0, to: slotY0, fit: fitInside,
	}}},
	15: {shapes: []shape{{
		polygon: []slot{slotA, slotC, slotD, slotB},
	}}},
}

// caseIndex returns the case of a cell from its corner states.
func caseIndex(a, b, c, d bool) int {
	i := 0
	if a {
		i |= 1
	}
	if b {
		i |= 2
	}
	if c {
		i |= 4
	}
	if d {
		i |= 8
	}
	return i
}
