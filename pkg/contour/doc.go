// Package contour turns a square grid of voxels into a triangle mesh.
//
// Every 2x2 block of voxels forms a cell. The cell's four states select one
// of sixteen cases; the case decides which polygon covers the solid part of
// the cell. Where the boundary normals on two edges of a cell meet at a
// sharp angle an extra feature vertex is placed at the intersection of the
// two tangent lines, so corners of the edited shapes survive. The two
// saddle cases are resolved by comparing the candidate feature vertices.
//
// Vertices on cell corners and edges are shared through row caches. A grid
// wired to neighbours on +x, +y and the +x+y diagonal also fills the gap
// between itself and those neighbours, so the contour of a chunked field
// has no seams.
package contour
