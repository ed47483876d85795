package main

import (
	"image/color"
	"math"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/pixcore"
	"github.com/gogpu/pixcore/composite"
	"github.com/gogpu/pixcore/glyph"
	"github.com/gogpu/pixcore/surface"
)

var (
	ink    = color.RGBA{0x20, 0x20, 0x30, 0xff}
	accent = color.RGBA{0xe0, 0x50, 0x30, 0xff}
	sky    = color.RGBA{0x30, 0x80, 0xd0, 0xff}
	leaf   = color.RGBA{0x40, 0xa0, 0x50, 0xff}
)

// drawScene paints the demonstration into dc. The scene is laid out for
// 480x320 and scaled to the surface size.
func drawScene(dc *pixcore.Context) error {
	s := dc.Surface()
	dc.Scale(float64(s.Width())/480, float64(s.Height())/320)

	bg := pixcore.NewLinearGradient(0, 0, 0, 320).
		AddColorStop(0, color.RGBA{0xf4, 0xf0, 0xe8, 0xff}).
		AddColorStop(1, color.RGBA{0xc8, 0xd8, 0xe8, 0xff})
	dc.SetPaint(bg)
	if err := dc.FillRect(0, 0, 480, 320); err != nil {
		return err
	}

	for _, step := range []func(*pixcore.Context) error{
		drawLines, drawShapes, drawArcs, drawClipped, drawPattern, drawXOR, drawText,
	} {
		dc.Push()
		err := step(dc)
		dc.Pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func drawLines(dc *pixcore.Context) error {
	dc.SetColor(ink)
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 16
		if err := dc.DrawLine(20, 20, 20+90*math.Cos(a), 20+90*math.Sin(a)); err != nil {
			return err
		}
	}

	// One dash pattern carried across separate segments.
	dc.SetDash(6, 3)
	cur := dc.NewDashCursor()
	pts := []pixcore.Point{{X: 130, Y: 20}, {X: 200, Y: 20}, {X: 200, Y: 90}, {X: 130, Y: 90}}
	for i := 0; i+1 < len(pts); i++ {
		if err := dc.DrawSegment(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, cur); err != nil {
			return err
		}
	}

	dc.SetDash()
	dc.SetStroke(pixcore.DefaultStroke().
		WithWidth(6).
		WithCap(pixcore.LineCapRound).
		WithJoin(pixcore.LineJoinRound))
	dc.SetColor(accent)
	return dc.DrawPolyline(
		pixcore.Pt(220, 90), pixcore.Pt(250, 30), pixcore.Pt(280, 90), pixcore.Pt(310, 30))
}

func drawShapes(dc *pixcore.Context) error {
	dc.SetColor(sky)
	if err := dc.FillRoundRect(20, 120, 110, 70, 16, 16); err != nil {
		return err
	}
	dc.SetColor(ink)
	dc.SetLineWidth(2)
	if err := dc.DrawRoundRect(20, 120, 110, 70, 16, 16); err != nil {
		return err
	}

	star := make([]pixcore.Point, 0, 5)
	for i := 0; i < 5; i++ {
		a := -math.Pi/2 + float64(i)*4*math.Pi/5
		star = append(star, pixcore.Pt(200+40*math.Cos(a), 155+40*math.Sin(a)))
	}
	dc.SetColor(leaf)
	if err := dc.Fill(pixcore.Polygon{Points: star, Rule: pixcore.FillRuleNonZero}); err != nil {
		return err
	}
	dc.SetColor(ink)
	dc.SetLineWidth(1)
	return dc.DrawPolygon(star...)
}

func drawArcs(dc *pixcore.Context) error {
	dc.SetColor(accent)
	if err := dc.FillArc(260, 120, 70, 70, -math.Pi/2, 1.5*math.Pi); err != nil {
		return err
	}
	dc.SetColor(ink)
	if err := dc.DrawOval(350, 20, 110, 70); err != nil {
		return err
	}
	if err := dc.DrawArc(360, 30, 90, 50, 0, math.Pi); err != nil {
		return err
	}

	// Rotated ellipses take the outline path.
	dc.Translate(405, 155)
	dc.Rotate(math.Pi / 6)
	dc.SetLineWidth(3)
	dc.SetColor(sky)
	return dc.DrawOval(-50, -25, 100, 50)
}

func drawClipped(dc *pixcore.Context) error {
	dc.ClipRect(20, 210, 140, 90)
	dc.Clip(pixcore.Ellipse{X: 40, Y: 200, W: 130, H: 110})
	for y := 210.0; y < 300; y += 8 {
		c := leaf
		if int(y)/8%2 == 0 {
			c = sky
		}
		dc.SetColor(c)
		if err := dc.FillRect(0, y, 480, 4); err != nil {
			return err
		}
	}
	return nil
}

func drawPattern(dc *pixcore.Context) error {
	tile, err := surface.New(surface.RGBAModel, 8, 8)
	if err != nil {
		return err
	}
	defer tile.Dispose()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if (x/4+y/4)%2 == 0 {
				tile.SetRGBA(x, y, color.RGBA{0x60, 0x60, 0x70, 0xff})
			}
		}
	}
	dc.SetPaint(pixcore.NewImagePattern(tile))
	if err := dc.FillOval(180, 215, 90, 80); err != nil {
		return err
	}

	// The same tile, blitted scaled with a background for transparent pixels.
	m := pixcore.Translate(290, 220).Multiply(pixcore.Scale(4, 4))
	return dc.DrawImageTransformed(tile, m, color.White)
}

func drawXOR(dc *pixcore.Context) error {
	dc.SetComposite(composite.NewXOR(color.White))
	dc.SetColor(ink)
	if err := dc.FillRect(340, 200, 60, 60); err != nil {
		return err
	}
	if err := dc.FillRect(370, 230, 60, 60); err != nil {
		return err
	}
	dc.SetPaintMode()
	dc.SetComposite(composite.New(composite.SrcOver, 0.5))
	dc.SetColor(accent)
	return dc.FillOval(400, 250, 60, 50)
}

func drawText(dc *pixcore.Context) error {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	e := glyph.NewExtractor(64)
	var buf sfnt.Buffer
	var run []pixcore.Glyph
	x := 20.0
	for _, r := range "pixcore" {
		gid, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return err
		}
		p, err := e.Load(f, gid, 28)
		if err != nil {
			return err
		}
		run = append(run, pixcore.Glyph{Outline: p, X: x, Y: 112})
		adv, err := f.GlyphAdvance(&buf, gid, 28*64, 0)
		if err != nil {
			return err
		}
		x += float64(adv) / 64
	}
	dc.SetColor(ink)
	return dc.DrawGlyphs(run)
}
