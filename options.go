package pixcore

import "github.com/gogpu/pixcore/internal/path"

// ContextOption adjusts how a Context picks its rendering paths. Options
// are applied once, by NewContext:
//
//	dc, err := pixcore.NewContext(dst,
//	    pixcore.WithFlatness(0.1),
//	    pixcore.WithInteropBlits(false))
type ContextOption func(*contextOptions)

type contextOptions struct {
	flatness     float64
	lineFastPath bool
	arcFastPath  bool
	interopBlits bool
}

func defaultOptions() contextOptions {
	return contextOptions{
		flatness:     path.DefaultTolerance,
		lineFastPath: true,
		arcFastPath:  true,
		interopBlits: true,
	}
}

// WithFlatness sets the largest distance, in device pixels, allowed between
// a curve and the line segments that replace it. Non-positive values keep
// the default of 0.25.
func WithFlatness(f float64) ContextOption {
	return func(o *contextOptions) {
		if f > 0 {
			o.flatness = f
		}
	}
}

// WithLineFastPath enables or disables rasterizing thin straight strokes
// directly with the line rasterizer. Disabling it routes every stroke
// through outline construction, which is mainly useful for testing.
func WithLineFastPath(enabled bool) ContextOption {
	return func(o *contextOptions) {
		o.lineFastPath = enabled
	}
}

// WithArcFastPath enables or disables closed-form rasterization of ellipses
// and arcs under translation-only transforms.
func WithArcFastPath(enabled bool) ContextOption {
	return func(o *contextOptions) {
		o.arcFastPath = enabled
	}
}

// WithInteropBlits allows image blits between RGBA-layout surfaces to go
// through golang.org/x/image/draw.
func WithInteropBlits(enabled bool) ContextOption {
	return func(o *contextOptions) {
		o.interopBlits = enabled
	}
}
