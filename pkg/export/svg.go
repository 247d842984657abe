package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/contour/pkg/mesh"
)

// WriteSVG draws the xy projection of every triangle as a polygon, one
// group per mesh, followed by the optional voxel dots.
func WriteSVG(w io.Writer, f Frame, meshes []*mesh.Mesh, dots []Dot, s Style) error {
	ew := &errWriter{w: w}
	width, height := f.Size()

	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+css(s.Background))

	triangleStyle := "fill:" + css(s.Fill)
	if s.StrokeWidth > 0 {
		triangleStyle += fmt.Sprintf(";stroke:%s;stroke-width:%g;stroke-linejoin:round", css(s.Stroke), s.StrokeWidth)
	}

	for _, m := range meshes {
		canvas.Gid(m.Name)
		xs, ys := make([]int, 3), make([]int, 3)
		for t := 0; t < m.TriangleCount(); t++ {
			a, b, c := m.Triangle(t)
			for k, i := range []uint32{a, b, c} {
				x, y := f.Point(m.Vertex2(i))
				xs[k], ys[k] = round(x), round(y)
			}
			canvas.Polygon(xs, ys, triangleStyle)
		}
		canvas.Gend()
	}

	if s.DotRadius > 0 && len(dots) > 0 {
		r := max(1, round(s.DotRadius))
		canvas.Gid("voxels")
		for _, d := range dots {
			x, y := f.Point(d.Position)
			fill := s.Empty
			if d.Solid {
				fill = s.Solid
			}
			canvas.Circle(round(x), round(y), r, "fill:"+css(fill))
		}
		canvas.Gend()
	}

	canvas.End()
	if ew.err != nil {
		return errors.New("writing svg failed").Wrap(ew.err)
	}
	return nil
}

// SVGSink redraws a single mesh every time it receives one.
type SVGSink struct {
	Frame Frame
	Style Style
	// Open returns the writer for the next drawing.
	Open func(m *mesh.Mesh) (io.WriteCloser, error)

	err error
}

// SetMesh implements mesh.Sink.
func (s *SVGSink) SetMesh(m *mesh.Mesh) {
	w, err := s.Open(m)
	if err != nil {
		s.fail(errors.New("opening svg output failed").WithTag("mesh", m.Name).Wrap(err))
		return
	}
	err = WriteSVG(w, s.Frame, []*mesh.Mesh{m}, nil, s.Style)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = errors.New("closing svg output failed").Wrap(cerr)
	}
	if err != nil {
		s.fail(errors.New("svg sink failed").WithTag("mesh", m.Name).Wrap(err))
	}
}

func (s *SVGSink) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first error met by the sink.
func (s *SVGSink) Err() error { return s.err }

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func round(v float64) int {
	return int(math.Round(v))
}
