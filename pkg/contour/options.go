package contour

import "github.com/chazu/contour/pkg/mesh"

// DefaultMaxFeatureAngle is the largest angle, in degrees, between the
// boundary on either side of a corner for which a sharp feature vertex is
// placed.
const DefaultMaxFeatureAngle = 135.0

// Option configures a Grid.
type Option func(*Grid)

// WithMaxFeatureAngle sets the sharp feature threshold in degrees. Zero or
// less disables sharp features.
func WithMaxFeatureAngle(deg float64) Option {
	return func(g *Grid) {
		g.setFeatureAngle(deg)
	}
}

// WithWalls enables the wall mesh: the contour boundary extruded along z
// between bottom and top.
func WithWalls(bottom, top float64) Option {
	return func(g *Grid) {
		g.walls = true
		g.wallBottom = bottom
		g.wallTop = top
	}
}

// WithSink sets the sink that receives the contour mesh after every rebuild.
func WithSink(s mesh.Sink) Option {
	return func(g *Grid) {
		g.sink = s
	}
}

// WithWallSink sets the sink that receives the wall mesh after every
// rebuild.
func WithWallSink(s mesh.Sink) Option {
	return func(g *Grid) {
		g.wallSink = s
	}
}

// WithName sets the name carried by the grid's meshes.
func WithName(name string) Option {
	return func(g *Grid) {
		g.name = name
	}
}
