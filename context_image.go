package pixcore

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/pixcore/composite"
	"github.com/gogpu/pixcore/internal/blit"
	"github.com/gogpu/pixcore/surface"
)

// DrawImage composites img with its top-left corner at user-space (x, y).
// When bg is not nil it is composited under every image pixel first, so
// transparent parts of the image show bg.
//
// Under an integer translation the image rows are copied directly; any
// other transform samples the nearest source pixel. Rows of a partially
// decoded image that are not yet valid are skipped.
func (c *Context) DrawImage(img *surface.Surface, x, y float64, bg color.Color) error {
	return c.DrawImageTransformed(img, Translate(x, y), bg)
}

// DrawImageTransformed composites img mapped through m and then the
// current transform. m maps image pixel coordinates to user space.
func (c *Context) DrawImageTransformed(img *surface.Surface, m Matrix, bg color.Color) error {
	if img == nil {
		return ErrNilSurface
	}
	if _, err := c.begin(); err != nil {
		return err
	}
	if err := img.Err(); err != nil {
		return err
	}
	t := c.state.Transform.Multiply(m)
	if _, ok := t.Invert(); !ok {
		return nil
	}
	op := c.blitOp()
	op.Transform = t.Aff3()
	if bg != nil {
		rgba := color.RGBAModel.Convert(bg).(color.RGBA)
		op.Background = &rgba
	}
	_, err := blit.Surface(c.dst, image.Point{}, img, img.Bounds(), op)
	return err
}

// CopyArea copies the w×h rectangle at (x, y) to (x+dx, y+dy) within the
// destination surface, replacing the pixels there. Only the translation
// part of the current transform applies, rounded to whole pixels.
// Overlapping source and destination areas are handled.
func (c *Context) CopyArea(x, y, w, h, dx, dy int) error {
	if _, err := c.begin(); err != nil {
		return err
	}
	m := c.state.Transform
	if math.IsNaN(m.C) || math.IsNaN(m.F) || math.Abs(m.C) > 1<<30 || math.Abs(m.F) > 1<<30 {
		return nil
	}
	src := image.Rect(x, y, x+w, y+h).Add(image.Pt(int(math.Round(m.C)), int(math.Round(m.F))))
	op := c.blitOp()
	op.Composite = composite.New(composite.Src, 1)
	_, err := blit.Surface(c.dst, src.Min.Add(image.Pt(dx, dy)), c.dst, src, op)
	return err
}
