// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides pixel buffers described by a color model.
//
// A color model is one of three variants:
//
//   - [DirectColor]: channels packed into one 8, 16 or 32-bit element by masks
//   - [IndexedColor]: 1, 2, 4 or 8-bit palette indices
//   - [ComponentColor]: separate 8 or 16-bit samples per channel
//
// Surfaces record changes in two ways. The dirty region accumulates the area
// touched since the consumer last called [Surface.TakeDirty], and the
// generation counter grows with every change. The interop view compares its
// stored generation with the surface's to decide whether it must be rebuilt.
//
// Example:
//
//	s, err := surface.New(surface.ARGBPreModel, 640, 480)
//	if err != nil {
//	    return err
//	}
//	defer s.Dispose()
package surface
