// Package voxel defines the point samples of a 2D occupancy field and the
// stencils that edit them. A voxel carries its solid/empty state and, for
// the edges to its right and above, the coordinate where the boundary
// crosses that edge together with the boundary normal at the crossing.
package voxel
