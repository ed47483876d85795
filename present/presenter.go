// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pixcore"
	"github.com/gogpu/pixcore/region"
	"github.com/gogpu/pixcore/surface"
)

// Common errors returned by Presenter operations.
var (
	// ErrPresenterClosed is returned when operations are attempted on a closed presenter.
	ErrPresenterClosed = errors.New("present: presenter is closed")

	// ErrNilDrawer is returned when Present is called without a TextureDrawer.
	ErrNilDrawer = errors.New("present: nil TextureDrawer")

	// ErrNilSurface is returned when New is called without a surface.
	ErrNilSurface = errors.New("present: nil surface")
)

// maxRegionRects is the number of dirty rectangles above which a single
// bounding-box upload replaces per-rectangle uploads.
const maxRegionRects = 16

// textureDestroyer matches the Destroy method of host textures.
type textureDestroyer interface {
	Destroy()
}

// Presenter uploads a surface to a GPU texture and draws it.
type Presenter struct {
	surf       *surface.Surface
	window     gpucontext.WindowProvider
	texture    gpucontext.Texture
	oldTexture gpucontext.Texture
	generation uint64 // surface generation of the last upload
	full       bool   // next upload must cover the whole surface
	fallback   bool
	closed     bool
	scratch    []byte
}

// New creates a Presenter for s. window may be nil; when set, Invalidate
// asks it for a new frame.
func New(s *surface.Surface, window gpucontext.WindowProvider) (*Presenter, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return &Presenter{surf: s, window: window, full: true}, nil
}

// Surface returns the presented surface.
func (p *Presenter) Surface() *surface.Surface { return p.surf }

// Texture returns the current texture, or nil before the first upload
// and while in software fallback.
func (p *Presenter) Texture() gpucontext.Texture { return p.texture }

// Fallback reports whether texture creation failed and uploads are off.
func (p *Presenter) Fallback() bool { return p.fallback }

// Retry leaves software fallback; the next Flush tries to create a texture again.
func (p *Presenter) Retry() {
	p.fallback = false
	p.full = true
}

// Invalidate marks r as changed and requests a redraw from the window.
// It is the entry point for expose events from the windowing layer.
func (p *Presenter) Invalidate(r image.Rectangle) {
	if p.closed {
		return
	}
	p.surf.MarkDirty(r)
	p.requestRedraw()
}

// InvalidateRegion is Invalidate for an arbitrary region.
func (p *Presenter) InvalidateRegion(r *region.Region) {
	if p.closed || r == nil {
		return
	}
	p.surf.MarkDirtyRegion(r)
	p.requestRedraw()
}

func (p *Presenter) requestRedraw() {
	if p.window != nil {
		p.window.RequestRedraw()
	}
}

// Pending reports whether the surface changed since the last upload.
func (p *Presenter) Pending() bool {
	return p.full || p.surf.Generation() != p.generation || !p.surf.Dirty().IsEmpty()
}

// Flush brings the texture up to date with the surface and returns it.
// The texture is nil while in software fallback.
func (p *Presenter) Flush(creator gpucontext.TextureCreator) (gpucontext.Texture, error) {
	if p.closed {
		return nil, ErrPresenterClosed
	}
	if err := p.surf.Err(); err != nil {
		return nil, err
	}
	if p.fallback {
		p.surf.TakeDirty()
		p.generation = p.surf.Generation()
		return nil, nil
	}

	w, h := p.surf.Width(), p.surf.Height()
	if p.texture != nil && (p.texture.Width() != w || p.texture.Height() != h) {
		p.destroy(p.oldTexture)
		p.oldTexture = p.texture
		p.texture = nil
	}

	if p.texture != nil && !p.Pending() {
		return p.texture, nil
	}

	view, err := p.surf.Interop()
	if err != nil {
		return nil, fmt.Errorf("present: interop view: %w", err)
	}
	if p.texture == nil && creator == nil {
		return nil, ErrNilDrawer
	}
	dirty := p.surf.TakeDirty()

	if p.texture == nil {
		tex, err := creator.NewTextureFromRGBA(w, h, p.pack(view, view.Image.Bounds()))
		if err != nil {
			pixcore.Logger().Warn("present: texture creation failed, using software fallback",
				"width", w, "height", h, "error", err)
			p.fallback = true
			p.generation = p.surf.Generation()
			return nil, nil
		}
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			_, premul := view.Image.(*image.RGBA)
			pt.SetPremultiplied(premul)
		}
		p.texture = tex
		p.finish()
		return tex, nil
	}

	if err := p.upload(view, dirty); err != nil {
		return nil, err
	}
	p.finish()
	return p.texture, nil
}

func (p *Presenter) finish() {
	p.full = false
	p.generation = p.surf.Generation()
}

// upload sends the dirty rectangles, or the whole surface when the texture
// cannot take partial updates.
func (p *Presenter) upload(view *surface.Interop, dirty *region.Region) error {
	bounds := view.Image.Bounds()
	ru, partial := p.texture.(gpucontext.TextureRegionUpdater)
	if !p.full && partial && !dirty.IsEmpty() {
		rects := dirty.Rects()
		if len(rects) > maxRegionRects {
			rects = []image.Rectangle{dirty.Bounds()}
		}
		for _, r := range rects {
			if err := ru.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), p.pack(view, r)); err != nil {
				return fmt.Errorf("present: region update failed: %w", err)
			}
		}
		pixcore.Logger().Debug("present: uploaded dirty region", "rects", len(rects), "area", dirty.Area())
		return nil
	}
	if u, ok := p.texture.(gpucontext.TextureUpdater); ok {
		if err := u.UpdateData(p.pack(view, bounds)); err != nil {
			return fmt.Errorf("present: texture update failed: %w", err)
		}
	}
	return nil
}

// pack returns the RGBA8 bytes of r densely packed, reusing a scratch
// buffer when the view rows are not already contiguous.
func (p *Presenter) pack(view *surface.Interop, r image.Rectangle) []byte {
	pix, stride := view.Pix(), view.Stride()
	rowLen := 4 * r.Dx()
	if r == view.Image.Bounds() && stride == rowLen {
		return pix[:rowLen*r.Dy()]
	}
	n := rowLen * r.Dy()
	if cap(p.scratch) < n {
		p.scratch = make([]byte, n)
	}
	buf := p.scratch[:n]
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := y*stride + 4*r.Min.X
		copy(buf[(y-r.Min.Y)*rowLen:], pix[off:off+rowLen])
	}
	return buf
}

// Present flushes the surface and draws its texture at the origin.
func (p *Presenter) Present(drawer gpucontext.TextureDrawer) error {
	return p.PresentAt(drawer, 0, 0)
}

// PresentAt flushes the surface and draws its texture with its top-left
// corner at (x, y). In software fallback nothing is drawn.
func (p *Presenter) PresentAt(drawer gpucontext.TextureDrawer, x, y float32) error {
	if p.closed {
		return ErrPresenterClosed
	}
	if drawer == nil {
		return ErrNilDrawer
	}
	tex, err := p.Flush(drawer.TextureCreator())
	if err != nil {
		return err
	}
	if tex == nil {
		return nil
	}
	if err := drawer.DrawTexture(tex, x, y); err != nil {
		return fmt.Errorf("present: draw failed: %w", err)
	}
	// The resized-away texture is no longer referenced once a frame using
	// its replacement has been recorded.
	p.destroy(p.oldTexture)
	p.oldTexture = nil
	return nil
}

// Close releases the textures. The surface is left to its owner.
// Close is idempotent.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.destroy(p.oldTexture)
	p.destroy(p.texture)
	p.oldTexture, p.texture = nil, nil
	p.window = nil
	p.scratch = nil
	return nil
}

func (p *Presenter) destroy(t gpucontext.Texture) {
	if d, ok := t.(textureDestroyer); ok {
		d.Destroy()
	}
}
