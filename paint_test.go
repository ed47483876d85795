package pixcore

import (
	"image/color"
	"testing"

	"github.com/gogpu/pixcore/surface"
)

func row(pc PaintContext, x, y, n int) []color.RGBA {
	out := make([]color.RGBA, n)
	pc.Row(x, y, out)
	return out
}

func TestSolidPaint(t *testing.T) {
	s := NewSolid(color.NRGBA{R: 0xff, A: 0x80})
	got := row(s.Context(Scale(3, 3)), 0, 0, 3)
	want := color.RGBA{R: 0x80, A: 0x80}
	for i, c := range got {
		if c != want {
			t.Errorf("pixel %d = %v, want premultiplied %v", i, c, want)
		}
	}
}

func TestLinearGradient(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0).
		AddColorStop(1, color.White).
		AddColorStop(0, color.Black)

	tests := []struct {
		name   string
		extend ExtendMode
		x      int
		want   uint8
	}{
		{"start", ExtendPad, 0, 13},
		{"middle", ExtendPad, 4, 115},
		{"pad before", ExtendPad, -5, 0},
		{"pad after", ExtendPad, 20, 255},
		{"repeat", ExtendRepeat, 14, 115},
		{"reflect", ExtendReflect, 11, 217},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.SetExtend(tt.extend)
			c := row(g.Context(Identity()), tt.x, 3, 1)[0]
			if d := int(c.R) - int(tt.want); d < -1 || d > 1 || c.A != 0xff {
				t.Errorf("pixel %d = %v, want gray %d", tt.x, c, tt.want)
			}
		})
	}
}

func TestLinearGradientTransform(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0).
		AddColorStop(0, color.Black).
		AddColorStop(1, color.White)
	// Under a 2x scale the gradient spans 20 device pixels.
	c := row(g.Context(Scale(2, 2)), 9, 0, 1)[0]
	if c.R < 120 || c.R > 135 {
		t.Errorf("midpoint = %v, want about 128", c)
	}
	if got := row(g.Context(Scale(0, 0)), 0, 0, 1)[0]; got != (color.RGBA{}) {
		t.Errorf("singular transform painted %v", got)
	}
	if got := row(NewLinearGradient(0, 0, 1, 0).Context(Identity()), 0, 0, 1)[0]; got != (color.RGBA{}) {
		t.Errorf("gradient without stops painted %v", got)
	}
}

func TestImagePatternTiles(t *testing.T) {
	img, err := surface.New(surface.RGBAModel, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	img.SetRGBA(1, 1, red)
	p := NewImagePattern(img)

	got := row(p.Context(Identity()), -1, 1, 4)
	want := []color.RGBA{red, {}, red, {}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %v, want %v", i-1, got[i], want[i])
		}
	}

	img.Dispose()
	if c := row(p.Context(Identity()), 1, 1, 1)[0]; c != (color.RGBA{}) {
		t.Errorf("disposed pattern painted %v", c)
	}
}

func TestGradientFill(t *testing.T) {
	dc, dst := newTestContext(t, 20, 4)
	dc.SetPaint(NewLinearGradient(0, 0, 20, 0).
		AddColorStop(0, color.Black).
		AddColorStop(1, color.White))
	if err := dc.FillRect(0, 0, 20, 4); err != nil {
		t.Fatal(err)
	}
	if l, r := dst.RGBAAt(1, 1), dst.RGBAAt(18, 1); l.R >= r.R {
		t.Errorf("gradient not increasing: left %v right %v", l, r)
	}
}
