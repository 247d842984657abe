// Package export renders contour meshes as SVG drawings, PNG previews and
// JSON documents, either in one shot or as mesh sinks fed by a grid.
package export

import (
	"image/color"
	"io"
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Frame maps a world rectangle onto an image whose y axis points down.
type Frame struct {
	Bounds sdf.Box2
	// Scale is in pixels per world unit.
	Scale float64
}

// NewFrame returns a frame showing bounds at the given pixel width.
func NewFrame(bounds sdf.Box2, width int) (Frame, error) {
	size := bounds.Size()
	if size.X <= 0 || size.Y <= 0 {
		return Frame{}, errors.New("empty frame bounds").
			WithTag("min", bounds.Min).
			WithTag("max", bounds.Max)
	}
	if width <= 0 {
		return Frame{}, errors.New("frame width must be positive").
			WithTag("width", width)
	}
	return Frame{Bounds: bounds, Scale: float64(width) / size.X}, nil
}

// Size returns the image size in pixels.
func (f Frame) Size() (w, h int) {
	size := f.Bounds.Size()
	return int(math.Ceil(size.X * f.Scale)), int(math.Ceil(size.Y * f.Scale))
}

// Point converts a world point to image coordinates.
func (f Frame) Point(p v2.Vec) (x, y float64) {
	return (p.X - f.Bounds.Min.X) * f.Scale, (f.Bounds.Max.Y - p.Y) * f.Scale
}

// Style sets the colours used by the renderers.
type Style struct {
	Background color.RGBA
	Fill       color.RGBA
	Stroke     color.RGBA
	// StrokeWidth is in pixels; zero disables outlines.
	StrokeWidth float64
	// DotRadius is in pixels; zero hides voxel dots.
	DotRadius float64
	Solid     color.RGBA
	Empty     color.RGBA
}

// DefaultStyle is a light theme with filled triangles and thin outlines.
var DefaultStyle = Style{
	Background:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	Fill:        color.RGBA{R: 0x8d, G: 0xa0, B: 0xcb, A: 0xff},
	Stroke:      color.RGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff},
	StrokeWidth: 1,
	Solid:       color.RGBA{R: 0x1b, G: 0x1b, B: 0x1b, A: 0xff},
	Empty:       color.RGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff},
}

// Dot is one voxel sample drawn on top of the mesh.
type Dot struct {
	Position v2.Vec
	Solid    bool
}

// errWriter keeps the first write error so renderers that ignore errors
// can still report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
