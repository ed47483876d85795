package main

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/pixcore/surface"
)

// preview shows s in the terminal using half-block cells, two pixels per
// cell, until a key is pressed. The image is fitted to the screen.
func preview(s *surface.Surface) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	render := func() error {
		cols, rows := screen.Size()
		img, err := fit(s, cols, rows*2)
		if err != nil {
			return err
		}
		screen.Clear()
		paintHalfBlocks(screen, img)
		screen.Show()
		return nil
	}
	if err := render(); err != nil {
		return err
	}
	for {
		switch screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			if err := render(); err != nil {
				return err
			}
		case *tcell.EventKey:
			return nil
		case nil:
			return nil
		}
	}
}

// fit scales the surface into a w by h pixel box keeping its aspect ratio.
func fit(s *surface.Surface, w, h int) (*image.RGBA, error) {
	v, err := s.Interop()
	if err != nil {
		return nil, err
	}
	b := v.Image.Bounds()
	if w <= 0 || h <= 0 || b.Empty() {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	scale := min(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	dw, dh := max(1, int(float64(b.Dx())*scale)), max(1, int(float64(b.Dy())*scale))
	out := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), v.Image, b, draw.Src, nil)
	return out, nil
}

// paintHalfBlocks draws img with the upper pixel of each pair as the
// foreground of '▀' and the lower one as its background.
func paintHalfBlocks(screen tcell.Screen, img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := color.RGBA{}
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			style := tcell.StyleDefault.
				Foreground(cellColor(top)).
				Background(cellColor(bottom))
			screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
