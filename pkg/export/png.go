package export

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/contour/pkg/mesh"
	"golang.org/x/image/vector"
)

// Render rasterizes the meshes, and the optional voxel dots, into a new
// image.
func Render(f Frame, meshes []*mesh.Mesh, dots []Dot, s Style) *image.RGBA {
	width, height := f.Size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(width, height)
	for _, m := range meshes {
		for t := 0; t < m.TriangleCount(); t++ {
			a, b, c := m.Triangle(t)
			for k, i := range []uint32{a, b, c} {
				x, y := f.Point(m.Vertex2(i))
				if k == 0 {
					z.MoveTo(float32(x), float32(y))
				} else {
					z.LineTo(float32(x), float32(y))
				}
			}
			z.ClosePath()
		}
	}
	z.Draw(img, img.Bounds(), image.NewUniform(s.Fill), image.Point{})

	if s.DotRadius > 0 {
		for _, d := range dots {
			fill := s.Empty
			if d.Solid {
				fill = s.Solid
			}
			x, y := f.Point(d.Position)
			dot := vector.NewRasterizer(width, height)
			disc(dot, float32(x), float32(y), float32(s.DotRadius))
			dot.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{})
		}
	}
	return img
}

// disc adds a 16-sided approximation of a circle to z.
func disc(z *vector.Rasterizer, cx, cy, r float32) {
	const sides = 16
	for i := 0; i <= sides; i++ {
		a := 2 * math.Pi * float64(i) / sides
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// WritePNG renders the meshes and encodes them as PNG.
func WritePNG(w io.Writer, f Frame, meshes []*mesh.Mesh, dots []Dot, s Style) error {
	if err := png.Encode(w, Render(f, meshes, dots, s)); err != nil {
		return errors.New("encoding png failed").Wrap(err)
	}
	return nil
}
