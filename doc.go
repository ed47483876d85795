// Package pixcore is a software 2D rendering and compositing engine.
//
// # Overview
//
// pixcore turns shapes, strokes and images into changes to pixel surfaces.
// Coverage is binary: a pixel is drawn when its center lies inside the
// geometry. There is no antialiasing and no GPU involvement; surfaces can
// be handed to a GPU afterwards through the present package.
//
// # Quick Start
//
//	dst, _ := surface.New(surface.ARGBModel, 256, 256)
//	dc, _ := pixcore.NewContext(dst)
//
//	dc.SetColor(color.Black)
//	dc.DrawLine(10, 10, 200, 40)
//	dc.FillOval(50, 50, 100, 60)
//
//	dirty := dst.TakeDirty() // what changed since the last repaint
//
// # Architecture
//
// The library is organized into:
//   - Public API: Context, State, Shape, Paint, Stroke, Matrix
//   - region: canonical rectangle-run clip regions
//   - surface: pixel buffers with direct, indexed and component color models
//   - composite: Porter-Duff and XOR compositing rules
//   - Internal: raster (scanline, line and arc rasterizers), stroke
//     (outline construction), blit (pixel transfer), path (flattening)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increases towards +y (clockwise on screen)
//
// # Concurrency
//
// Nothing in pixcore locks. A surface, and every Context drawing into it,
// must be used by one goroutine at a time.
package pixcore
