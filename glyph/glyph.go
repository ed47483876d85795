// Package glyph converts pre-shaped glyph outlines into pixcore paths.
//
// Shaping and layout happen elsewhere; this package only turns the outline
// of each positioned glyph into a *pixcore.Path in pixel units with the
// y axis pointing down, ready for Context.DrawGlyphs.
package glyph

import (
	"errors"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/pixcore"
	"github.com/gogpu/pixcore/internal/cache"
)

// ErrNoOutline is returned for glyphs drawn as bitmaps or SVG documents.
var ErrNoOutline = errors.New("glyph: glyph has no vector outline")

// FromSegments converts sfnt segments, already scaled to pixels in 26.6
// fixed point, into a path. Every contour is closed.
func FromSegments(segs sfnt.Segments) *pixcore.Path {
	p := pixcore.NewPath()
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			x, y := fixedPoint(s.Args[0])
			p.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := fixedPoint(s.Args[0])
			p.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := fixedPoint(s.Args[0])
			x, y := fixedPoint(s.Args[1])
			p.QuadraticTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := fixedPoint(s.Args[0])
			c2x, c2y := fixedPoint(s.Args[1])
			x, y := fixedPoint(s.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		p.Close()
	}
	return p
}

func fixedPoint(p fixed.Point26_6) (float64, float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

// FromOutline converts a go-text outline in font units into a path at the
// given pixel size. Font units have y pointing up, so the outline is
// flipped about the baseline.
func FromOutline(o font.GlyphOutline, size float64, upem uint16) *pixcore.Path {
	scale := 1.0
	if upem != 0 {
		scale = size / float64(upem)
	}
	pt := func(sp ot.SegmentPoint) (float64, float64) {
		return float64(sp.X) * scale, -float64(sp.Y) * scale
	}
	p := pixcore.NewPath()
	open := false
	for _, s := range o.Segments {
		switch s.Op {
		case ot.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			x, y := pt(s.Args[0])
			p.MoveTo(x, y)
			open = true
		case ot.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			p.LineTo(x, y)
		case ot.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			x, y := pt(s.Args[1])
			p.QuadraticTo(cx, cy, x, y)
		case ot.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			x, y := pt(s.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		p.Close()
	}
	return p
}

// Placement is a shaped glyph: its id and the pen position of its origin.
type Placement struct {
	GID  font.GID
	X, Y float64
}

// FaceGlyphs looks up the outlines of a shaped run in face and returns
// them ready for Context.DrawGlyphs. Glyphs without an outline, such as
// spaces, are dropped; a bitmap or SVG glyph fails with ErrNoOutline.
func FaceGlyphs(face *font.Face, size float64, run []Placement) ([]pixcore.Glyph, error) {
	out := make([]pixcore.Glyph, 0, len(run))
	upem := face.Upem()
	for _, g := range run {
		o, ok := face.GlyphData(g.GID).(font.GlyphOutline)
		if !ok {
			return nil, ErrNoOutline
		}
		if len(o.Segments) == 0 {
			continue
		}
		out = append(out, pixcore.Glyph{Outline: FromOutline(o, size, upem), X: g.X, Y: g.Y})
	}
	return out, nil
}

// Extractor loads sfnt glyphs as paths, reusing one segment buffer.
// An Extractor made by NewExtractor also keeps recently loaded outlines;
// the zero value loads every glyph afresh.
//
// Cached paths are shared between calls and must not be modified.
// An Extractor is not safe for concurrent use.
type Extractor struct {
	buf   sfnt.Buffer
	paths *cache.Cache[pathKey, *pixcore.Path]
}

type pathKey struct {
	font *sfnt.Font
	gid  sfnt.GlyphIndex
	ppem fixed.Int26_6
}

// NewExtractor returns an Extractor caching up to limit outlines.
func NewExtractor(limit int) *Extractor {
	return &Extractor{paths: cache.New[pathKey, *pixcore.Path](limit)}
}

// Load returns the outline of glyph gid at size pixels per em.
func (e *Extractor) Load(f *sfnt.Font, gid sfnt.GlyphIndex, size float64) (*pixcore.Path, error) {
	ppem := fixed.Int26_6(size * 64)
	load := func() (*pixcore.Path, error) {
		segs, err := f.LoadGlyph(&e.buf, gid, ppem, nil)
		if err != nil {
			return nil, err
		}
		return FromSegments(segs), nil
	}
	if e.paths == nil {
		return load()
	}
	return e.paths.GetOrLoad(pathKey{f, gid, ppem}, load)
}

// Stats holds the outline cache counters of an Extractor.
type Stats = cache.Stats

// Stats reports the outline cache counters.
func (e *Extractor) Stats() Stats {
	if e.paths == nil {
		return Stats{}
	}
	return e.paths.Stats()
}

// Rune is Load for the glyph f maps r to.
func (e *Extractor) Rune(f *sfnt.Font, r rune, size float64) (*pixcore.Path, error) {
	gid, err := f.GlyphIndex(&e.buf, r)
	if err != nil {
		return nil, err
	}
	return e.Load(f, gid, size)
}
