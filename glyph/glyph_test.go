package glyph

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/pixcore"
	"github.com/gogpu/pixcore/surface"
)

func newTarget(t *testing.T, w, h int) (*pixcore.Context, *surface.Surface) {
	t.Helper()
	dst, err := surface.New(surface.RGBAModel, w, h)
	if err != nil {
		t.Fatal(err)
	}
	dc, err := pixcore.NewContext(dst)
	if err != nil {
		t.Fatal(err)
	}
	dc.SetColor(color.Black)
	return dc, dst
}

func painted(s *surface.Surface, x, y int) bool { return s.RGBAAt(x, y).A != 0 }

func TestFromSegments(t *testing.T) {
	pt := func(x, y int) fixed.Point26_6 { return fixed.P(x, y) }
	segs := sfnt.Segments{
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{pt(0, 0)}},
		{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{pt(10, 0)}},
		{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{pt(0, 10)}},
	}
	p := FromSegments(segs)
	els := p.Elements()
	if len(els) != 4 {
		t.Fatalf("got %d elements, want 4", len(els))
	}
	if _, ok := els[3].(pixcore.Close); !ok {
		t.Errorf("contour not closed: %T", els[3])
	}

	dc, dst := newTarget(t, 12, 12)
	if err := dc.DrawGlyphs([]pixcore.Glyph{{Outline: p, X: 1, Y: 1}}); err != nil {
		t.Fatal(err)
	}
	if !painted(dst, 3, 3) || painted(dst, 9, 9) {
		t.Error("triangle drawn at the wrong place")
	}
}

func TestFromOutlineFlipsY(t *testing.T) {
	// A 500x500 unit square sitting on the baseline, 1000 units per em.
	o := font.GlyphOutline{Segments: []font.Segment{
		{Op: ot.SegmentOpMoveTo, Args: [3]ot.SegmentPoint{{X: 0, Y: 0}}},
		{Op: ot.SegmentOpLineTo, Args: [3]ot.SegmentPoint{{X: 500, Y: 0}}},
		{Op: ot.SegmentOpLineTo, Args: [3]ot.SegmentPoint{{X: 500, Y: 500}}},
		{Op: ot.SegmentOpLineTo, Args: [3]ot.SegmentPoint{{X: 0, Y: 500}}},
	}}
	p := FromOutline(o, 20, 1000)

	dc, dst := newTarget(t, 30, 30)
	if err := dc.DrawGlyphs([]pixcore.Glyph{{Outline: p, X: 5, Y: 20}}); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 15, true},  // above the baseline
		{10, 22, false}, // below it
		{16, 15, false}, // past the 10px width
	}
	for _, tt := range tests {
		if got := painted(dst, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) painted = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestExtractorRune(t *testing.T) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	var e Extractor
	p, err := e.Rune(f, 'I', 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Elements()) == 0 {
		t.Fatal("empty outline for 'I'")
	}

	dc, dst := newTarget(t, 40, 40)
	if err := dc.DrawGlyphs([]pixcore.Glyph{{Outline: p, X: 4, Y: 36}}); err != nil {
		t.Fatal(err)
	}
	b := dst.Dirty().Bounds()
	if b.Empty() || b.Max.Y > 37 || b.Min.Y < 5 {
		t.Errorf("'I' covers %v, want a stem above the baseline", b)
	}
}

func TestFaceGlyphs(t *testing.T) {
	face, err := font.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	a, ok := face.NominalGlyph('A')
	if !ok {
		t.Fatal("no glyph for 'A'")
	}
	space, _ := face.NominalGlyph(' ')

	glyphs, err := FaceGlyphs(face, 24, []Placement{
		{GID: a, X: 2, Y: 28},
		{GID: space, X: 18, Y: 28},
		{GID: a, X: 26, Y: 28},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2 (space dropped)", len(glyphs))
	}

	dc, dst := newTarget(t, 50, 32)
	if err := dc.DrawGlyphs(glyphs); err != nil {
		t.Fatal(err)
	}
	b := dst.Dirty().Bounds()
	if b.Min.X > 4 || b.Max.X < 34 {
		t.Errorf("run covers %v, want both glyphs", b)
	}
}

func TestExtractorCache(t *testing.T) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	e := NewExtractor(8)
	a, err := e.Rune(f, 'a', 16)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Rune(f, 'a', 16)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second load did not come from the cache")
	}
	if c, _ := e.Rune(f, 'a', 17); c == a {
		t.Error("different sizes share an outline")
	}
	var s Stats = e.Stats()
	if s.Hits != 1 || s.Len != 2 {
		t.Errorf("stats = %+v, want 1 hit and 2 entries", s)
	}
}
