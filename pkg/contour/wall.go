package contour

// addWall extrudes the boundary segment between contour vertices p and q
// into a quad between the bottom and top heights.
func (g *Grid) addWall(p, q uint32) {
	pb, pt := g.wallPair(p)
	qb, qt := g.wallPair(q)
	g.wallMesh.AddTriangle(pb, qb, qt)
	g.wallMesh.AddTriangle(pb, qt, pt)
}

// wallPair returns the bottom and top wall vertices above contour vertex
// i. Contour vertices are shared through the row caches, so wall vertices
// at crossings are shared the same way.
func (g *Grid) wallPair(i uint32) (uint32, uint32) {
	for int(i) >= len(g.wallPairs) {
		g.wallPairs = append(g.wallPairs, -1)
	}
	if b := g.wallPairs[i]; b >= 0 {
		return uint32(b), uint32(b) + 1
	}
	p := g.mesh.Vertex2(i)
	b := g.wallMesh.AddVertex(p, g.wallBottom)
	g.wallMesh.AddVertex(p, g.wallTop)
	g.wallPairs[i] = int32(b)
	return b, b + 1
}
