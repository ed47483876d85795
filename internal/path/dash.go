package path

import "math"

// DashCursor walks a dash pattern. It remembers which pattern entry is
// current and how much of it is left, so one cursor can be threaded through
// consecutive segments of a polyline without restarting the pattern.
//
// A cursor built from an empty or all-zero pattern is solid: it is always on.
type DashCursor struct {
	pattern   []float64
	total     float64
	offset    float64
	index     int
	remaining float64
}

// NewDashCursor returns a cursor positioned offset units into the pattern.
// Negative lengths are treated as positive and an odd-length pattern is
// repeated to make on/off pairs.
func NewDashCursor(pattern []float64, offset float64) *DashCursor {
	c := &DashCursor{}
	var total float64
	for _, l := range pattern {
		if !math.IsNaN(l) && !math.IsInf(l, 0) {
			total += math.Abs(l)
		}
	}
	if !(total > 0) {
		return c
	}
	n := len(pattern)
	if n%2 != 0 {
		n *= 2
		total *= 2
	}
	c.pattern = make([]float64, n)
	for i := range c.pattern {
		l := pattern[i%len(pattern)]
		if math.IsNaN(l) || math.IsInf(l, 0) {
			l = 0
		}
		c.pattern[i] = math.Abs(l)
	}
	c.total = total
	if !math.IsNaN(offset) && !math.IsInf(offset, 0) {
		c.offset = offset
	}
	c.Reset()
	return c
}

// Solid reports whether the cursor never turns off.
func (c *DashCursor) Solid() bool { return c == nil || c.pattern == nil }

// On reports whether the current position is inside a dash.
func (c *DashCursor) On() bool { return c.Solid() || c.index%2 == 0 }

// Remaining returns the length left in the current pattern entry, or +Inf
// for a solid cursor.
func (c *DashCursor) Remaining() float64 {
	if c.Solid() {
		return math.Inf(1)
	}
	return c.remaining
}

// Reset moves the cursor back to its starting offset.
func (c *DashCursor) Reset() {
	if c.Solid() {
		return
	}
	c.index = 0
	c.remaining = c.pattern[0]
	off := math.Mod(c.offset, c.total)
	if off < 0 {
		off += c.total
	}
	c.Advance(off)
}

// Clone returns an independent copy positioned at the same place.
func (c *DashCursor) Clone() *DashCursor {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Advance moves the cursor forward by d units.
func (c *DashCursor) Advance(d float64) {
	if c.Solid() || !(d >= 0) || math.IsInf(d, 0) {
		return
	}
	if d > c.total {
		d = math.Mod(d, c.total)
	}
	for {
		if d < c.remaining {
			c.remaining -= d
			return
		}
		d -= c.remaining
		c.index = (c.index + 1) % len(c.pattern)
		c.remaining = c.pattern[c.index]
		if d == 0 && c.remaining > 0 {
			return
		}
	}
}

// DashPolyline splits p into the runs that fall inside dashes, appending
// them to out. The cursor is advanced by the length of p.
func DashPolyline(out []Polyline, p Polyline, c *DashCursor) []Polyline {
	if c.Solid() {
		return append(out, p)
	}
	var run []Point
	emit := func() {
		if len(run) > 1 {
			out = append(out, Polyline{Points: run})
		}
		run = nil
	}
	p.Edges(func(a, b Point) {
		l := a.Distance(b)
		if !(l > 0) {
			return
		}
		for t := 0.0; t < l; {
			step := l - t
			if c.remaining < step {
				step = c.remaining
			}
			on := c.On()
			p0 := a.Lerp(b, t/l)
			t += step
			p1 := a.Lerp(b, t/l)
			if on && step > 0 {
				if len(run) == 0 {
					run = append(run, p0)
				}
				run = append(run, p1)
			}
			c.Advance(step)
			if on && !c.On() {
				emit()
			}
		}
	})
	emit()
	return out
}
