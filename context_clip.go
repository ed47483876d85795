package pixcore

import (
	"image"
	"math"

	"github.com/gogpu/pixcore/region"
)

// Clip intersects the clip with the interior of s under the current
// transform. Clipping can only shrink the drawable area; use SetClip or
// ResetClip to enlarge it.
func (c *Context) Clip(s Shape) {
	r := c.shapeRegion(s)
	if c.state.Clip != nil {
		r = c.state.Clip.Intersect(r)
	}
	c.state.Clip = r
}

// SetClip replaces the clip with the interior of s under the current
// transform. A nil shape removes the clip.
func (c *Context) SetClip(s Shape) {
	if s == nil {
		c.state.Clip = nil
		return
	}
	c.state.Clip = c.shapeRegion(s)
}

// ClipRect intersects the clip with a rectangle.
func (c *Context) ClipRect(x, y, w, h float64) {
	c.Clip(Rect{x, y, w, h})
}

// SetClipRect replaces the clip with a rectangle.
func (c *Context) SetClipRect(x, y, w, h float64) {
	c.SetClip(Rect{x, y, w, h})
}

// SetClipRegion replaces the clip with a device-space region, such as the
// visible area of a window. Nil removes the clip.
func (c *Context) SetClipRegion(r *region.Region) {
	c.state.Clip = r
}

// ResetClip removes the clip, making the whole surface drawable.
func (c *Context) ResetClip() {
	c.state.Clip = nil
}

// ClipRegion returns the device-space clip, or nil when unclipped.
func (c *Context) ClipRegion() *region.Region {
	return c.state.Clip
}

// ClipBounds returns the device-space bounds of the clip. It reports false
// when there is no clip.
func (c *Context) ClipBounds() (image.Rectangle, bool) {
	if c.state.Clip == nil {
		return image.Rectangle{}, false
	}
	return c.state.Clip.Bounds(), true
}

// HitClip reports whether the user-space rectangle may intersect the clip.
// The test uses the device bounding box of the rectangle, so it can report
// true for rectangles that only come close.
func (c *Context) HitClip(x, y, w, h float64) bool {
	box, ok := c.deviceBounds(Rect{x, y, w, h})
	if !ok {
		return false
	}
	if c.state.Clip == nil {
		return true
	}
	return !c.state.Clip.IntersectRect(box).IsEmpty()
}

// shapeRegion rasterizes the interior of s within the surface bounds.
func (c *Context) shapeRegion(s Shape) *region.Region {
	if s == nil {
		return region.Empty()
	}
	var b region.Builder
	c.fillInto(&b, s, c.state.Transform, c.dst.Bounds())
	return b.Build()
}

// deviceBounds returns the pixel bounding box of r under the current
// transform.
func (c *Context) deviceBounds(r Rect) (image.Rectangle, bool) {
	m := c.state.Transform
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4]Point{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X + r.W, r.Y + r.H}, {r.X, r.Y + r.H}} {
		q := m.TransformPoint(p)
		if math.IsNaN(q.X) || math.IsNaN(q.Y) {
			return image.Rectangle{}, false
		}
		minX, maxX = min(minX, q.X), max(maxX, q.X)
		minY, maxY = min(minY, q.Y), max(maxY, q.Y)
	}
	const limit = 1 << 30
	box := image.Rect(
		int(max(-limit, math.Floor(minX))), int(max(-limit, math.Floor(minY))),
		int(min(limit, math.Ceil(maxX))), int(min(limit, math.Ceil(maxY))),
	)
	return box, !box.Empty()
}
