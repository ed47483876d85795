package pixcore

import (
	"image/color"

	"github.com/gogpu/pixcore/composite"
	"github.com/gogpu/pixcore/region"
)

// State is the render state read by every drawing call.
//
// State is a value. Copying it copies everything a Context may change: the
// transform, the stroke (including its dash array), the clip and the
// composite descriptor. Clip regions are immutable, so sharing one between
// copies is safe; clipping replaces the region rather than editing it.
// Paint and Font values are shared and must not be mutated while in use.
// The destination surface is not part of the state.
type State struct {
	Transform Matrix
	Paint     Paint
	Stroke    Stroke

	// Clip is the device-space region drawing may touch. Nil means
	// unclipped; an empty region means nothing may be drawn.
	Clip *region.Region

	Composite composite.Descriptor

	// Font is an opaque reference for text layers built on top of the
	// context. The rasterizers never look at it.
	Font any
}

// DefaultState returns the state of a new Context: identity transform,
// opaque black paint, a default stroke, no clip and source-over.
func DefaultState() State {
	return State{
		Transform: Identity(),
		Paint:     NewSolid(color.Black),
		Stroke:    DefaultStroke(),
		Composite: composite.SrcOverDescriptor,
	}
}

// Clone returns an independent copy of s.
func (s State) Clone() State {
	s.Stroke = s.Stroke.Clone()
	return s
}
