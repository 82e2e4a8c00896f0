package internal

import (
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
)

// Padding around the mesh so edge triangles aren't clipped
const dbgDrawPadding = 20

// Render the triangles onto a new context, scaled by the given factor. The
// context is flipped so that the origin is at the bottom left.
func (tl TriangleList) Draw(scale float64) *gg.Context {
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, t := range tl {
		for _, p := range t.Points() {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if len(tl) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	c.SetLineWidth(1)
	for i, t := range tl {
		c.MoveTo(t.A.X, t.A.Y)
		c.LineTo(t.B.X, t.B.Y)
		c.LineTo(t.C.X, t.C.Y)
		c.ClosePath()
		// Alternate shades so neighbors are distinguishable
		shade := 0.3 + 0.2*float64(i%3)
		c.SetRGBA(0, shade, 0.2, 0.8)
		c.FillPreserve()
		c.SetRGB(0, 1, 1)
		c.Stroke()
	}

	c.SetRGB(1, 1, 1)
	for _, t := range tl {
		for _, p := range t.Points() {
			c.DrawCircle(p.X, p.Y, 2/scale)
			c.Fill()
		}
	}
	return c
}

// Like Draw, with each triangle's circumcircle outlined on top.
func (tl TriangleList) DrawCircumcircles(scale float64) *gg.Context {
	c := tl.Draw(scale)
	c.SetRGBA(1, 0.6, 0, 0.5)
	for _, t := range tl {
		circle := Circumcircle(t.A, t.B, t.C)
		if circle.IsNaP() {
			continue
		}
		c.DrawCircle(circle.Center.X, circle.Center.Y, circle.Radius)
		c.Stroke()
	}
	return c
}

func (tl TriangleList) WritePNG(w io.Writer, scale float64) error {
	return writePNG(w, tl.Draw(scale))
}

func (tl TriangleList) WriteCircumcirclesPNG(w io.Writer, scale float64) error {
	return writePNG(w, tl.DrawCircumcircles(scale))
}

func writePNG(w io.Writer, c *gg.Context) error {
	return errors.Wrap(c.EncodePNG(w), "failed to encode png")
}

// Print the triangles to the terminal as an image (iTerm only).
func (tl TriangleList) Cat(scale float64) error {
	f, err := os.CreateTemp("", "delaunay-*.png")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(f.Name())

	err = tl.WritePNG(f, scale)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	imgcat.CatFile(f.Name(), os.Stdout)
	return nil
}
