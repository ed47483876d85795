// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present hands pixcore surfaces to a GPU host for display.
//
// A Presenter is the windowing-layer consumer of a surface's dirty region.
// Drawing happens in software through pixcore.Context; Present uploads only
// the rectangles that changed since the last frame and draws the resulting
// texture through a gpucontext.TextureDrawer.
//
// # Usage
//
//	dst, _ := surface.New(surface.RGBAModel, 800, 600)
//	dc, _ := pixcore.NewContext(dst)
//	p, _ := present.New(dst, app.WindowProvider())
//
//	app.OnDraw(func(drawer gpucontext.TextureDrawer) {
//	    dc.FillRect(0, 0, 100, 100)
//	    _ = p.Present(drawer)
//	})
//
// # Texture lifecycle
//
// The texture is created lazily on the first Present, when a
// gpucontext.TextureCreator is available. Later frames upload the dirty
// rectangles through gpucontext.TextureRegionUpdater when the texture
// supports it, or the whole surface through gpucontext.TextureUpdater.
// When the surface is resized the old texture is kept alive until the next
// frame has been drawn, since in-flight command buffers may still sample it.
//
// # Software fallback
//
// If the host cannot create a texture the failure is logged at Warn and
// the presenter stops uploading. The surface is unaffected and can still be
// read back or saved; Retry re-enables uploads.
//
// # Thread safety
//
// A Presenter is NOT safe for concurrent use and must be driven from the
// goroutine that draws into its surface.
package present
