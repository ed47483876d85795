package pixcore

import (
	"math"

	"github.com/gogpu/pixcore/internal/path"
)

// Dash is an on/off pattern applied along strokes. Lengths alternate
// between drawn and skipped spans starting with a drawn one; an odd
// count is repeated once to make it even. Phase shifts where in the
// pattern every stroked subpath starts.
type Dash struct {
	Lengths []float64
	Phase   float64
}

// NewDash builds a pattern from lengths, taking absolute values.
// It returns nil, meaning solid, when no length is positive.
//
//	NewDash(5, 3)       // 5 on, 3 off
//	NewDash(4)          // 4 on, 4 off
//	NewDash(8, 2, 1, 2) // dash dot
func NewDash(lengths ...float64) *Dash {
	var (
		out   = make([]float64, len(lengths))
		total float64
	)
	for i, l := range lengths {
		out[i] = math.Abs(l)
		if l > 0 {
			total += l
		}
	}
	if total == 0 {
		return nil
	}
	return &Dash{Lengths: out}
}

// WithPhase returns a copy of d starting phase units into the pattern.
func (d *Dash) WithPhase(phase float64) *Dash {
	if d == nil {
		return nil
	}
	c := d.Clone()
	c.Phase = phase
	return c
}

// IsDashed is false for a nil pattern and for one with nothing to draw.
func (d *Dash) IsDashed() bool {
	if d == nil {
		return false
	}
	for _, l := range d.Lengths {
		if l > 0 {
			return true
		}
	}
	return false
}

func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Lengths: append([]float64(nil), d.Lengths...), Phase: d.Phase}
}

// Cursor starts a walk over the pattern at its phase.
func (d *Dash) Cursor() *DashCursor {
	if !d.IsDashed() {
		return new(DashCursor)
	}
	return &DashCursor{c: path.NewDashCursor(d.Lengths, d.Phase)}
}

// DashCursor is a position within a dash pattern. Segments drawn with
// Context.DrawSegment through one cursor continue each other's pattern.
// A zero DashCursor draws solid.
type DashCursor struct {
	c *path.DashCursor
}

// On is true while the cursor is inside a drawn span.
func (dc *DashCursor) On() bool { return dc.internal().On() }

// Remaining is the length left in the current span; +Inf when solid.
func (dc *DashCursor) Remaining() float64 { return dc.internal().Remaining() }

// Reset rewinds to the pattern's phase.
func (dc *DashCursor) Reset() {
	if c := dc.internal(); c != nil {
		c.Reset()
	}
}

func (dc *DashCursor) internal() *path.DashCursor {
	if dc == nil {
		return nil
	}
	return dc.c
}
