package pixcore

import (
	"errors"

	"github.com/gogpu/pixcore/surface"
)

var (
	// ErrNilSurface is returned when a Context is created without a
	// destination surface.
	ErrNilSurface = errors.New("pixcore: nil destination surface")

	// ErrDisposed is returned when drawing into, or blitting from, a
	// disposed surface.
	ErrDisposed = surface.ErrDisposed

	// ErrIncompatibleColorModel is returned when a blit involves a color
	// model that cannot be read or written.
	ErrIncompatibleColorModel = surface.ErrIncompatibleColorModel
)
