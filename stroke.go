package pixcore

import "github.com/gogpu/pixcore/internal/stroke"

// LineCap is the decoration added to the open ends of a wide stroke.
// Butt ends exactly at the endpoint; round and square extend it by half
// the line width.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape drawn where two wide segments meet.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota // sharp corner, bevelled past MiterLimit
	LineJoinRound
	LineJoinBevel
)

var (
	capStyles  = [...]stroke.Cap{LineCapButt: stroke.CapButt, LineCapRound: stroke.CapRound, LineCapSquare: stroke.CapSquare}
	joinStyles = [...]stroke.Join{LineJoinMiter: stroke.JoinMiter, LineJoinRound: stroke.JoinRound, LineJoinBevel: stroke.JoinBevel}
)

// Stroke describes how outlines are drawn.
//
// A Width that maps to one device pixel or less (zero included) selects
// the thin-line rasterizers, which ignore Cap, Join and MiterLimit. Wider
// strokes are expanded into a polygon and filled.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64

	// Dash is nil for solid lines. Lengths are in user units.
	Dash *Dash
}

// DefaultStroke is a solid one unit line with butt caps, miter joins and a
// miter limit of 10.
func DefaultStroke() Stroke {
	return Stroke{Width: 1, MiterLimit: 10}
}

func (s Stroke) WithWidth(w float64) Stroke {
	s.Width = w
	return s
}

func (s Stroke) WithCap(c LineCap) Stroke {
	s.Cap = c
	return s
}

func (s Stroke) WithJoin(j LineJoin) Stroke {
	s.Join = j
	return s
}

func (s Stroke) WithMiterLimit(limit float64) Stroke {
	s.MiterLimit = limit
	return s
}

// WithDash replaces the dash pattern with a copy of d. A nil d means solid.
func (s Stroke) WithDash(d *Dash) Stroke {
	s.Dash = d.Clone()
	return s
}

func (s Stroke) IsDashed() bool { return s.Dash.IsDashed() }

// Clone copies s so that its dash pattern is not shared.
func (s Stroke) Clone() Stroke {
	return s.WithDash(s.Dash)
}

// style converts s for the stroke expander. Out of range caps and joins
// fall back to butt and miter.
func (s Stroke) style() stroke.Style {
	st := stroke.Style{Width: s.Width, MiterLimit: s.MiterLimit}
	if s.Cap >= 0 && int(s.Cap) < len(capStyles) {
		st.Cap = capStyles[s.Cap]
	}
	if s.Join >= 0 && int(s.Join) < len(joinStyles) {
		st.Join = joinStyles[s.Join]
	}
	return st
}
