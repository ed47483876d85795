package blit

import (
	"fmt"
	"image/color"

	"github.com/gogpu/pixcore/surface"
)

// pair keys the dispatch table by source and destination model kinds.
type pair struct{ src, dst surface.Kind }

// convertFunc maps a raw source pixel to a raw destination pixel. A nil
// convertFunc means raw values are copied unchanged.
type convertFunc func(raw uint64) uint64

// converters builds the raw conversion used when a blit reduces to a plain
// copy. Every pair of kinds has an entry.
var converters = map[pair]func(src, dst surface.ColorModel) convertFunc{
	{surface.KindDirect, surface.KindDirect}:       sameOrGeneric,
	{surface.KindComponent, surface.KindComponent}: sameOrGeneric,
	{surface.KindIndexed, surface.KindIndexed}:     indexedRemap,
	{surface.KindIndexed, surface.KindDirect}:      indexedLUT,
	{surface.KindIndexed, surface.KindComponent}:   indexedLUT,
	{surface.KindDirect, surface.KindComponent}:    generic,
	{surface.KindComponent, surface.KindDirect}:    generic,
	{surface.KindDirect, surface.KindIndexed}:      generic,
	{surface.KindComponent, surface.KindIndexed}:   generic,
}

// checkModels rejects descriptors whose layout cannot be trusted.
func checkModels(src, dst surface.ColorModel) error {
	for _, m := range [...]surface.ColorModel{src, dst} {
		if m == nil {
			return fmt.Errorf("%w: nil color model", surface.ErrIncompatibleColorModel)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: %w", surface.ErrIncompatibleColorModel, err)
		}
	}
	if _, ok := converters[pair{src.Kind(), dst.Kind()}]; !ok {
		return fmt.Errorf("%w: %v to %v", surface.ErrIncompatibleColorModel, src, dst)
	}
	return nil
}

func converterFor(src, dst surface.ColorModel) convertFunc {
	return converters[pair{src.Kind(), dst.Kind()}](src, dst)
}

func sameOrGeneric(src, dst surface.ColorModel) convertFunc {
	if surface.SameLayout(src, dst) {
		return nil
	}
	return generic(src, dst)
}

func generic(src, dst surface.ColorModel) convertFunc {
	return func(raw uint64) uint64 { return dst.FromRGBA(src.ToRGBA(raw)) }
}

func indexedRemap(src, dst surface.ColorModel) convertFunc {
	if surface.SameLayout(src, dst) {
		return nil
	}
	return indexedLUT(src, dst)
}

// indexedLUT converts every palette entry once.
func indexedLUT(src, dst surface.ColorModel) convertFunc {
	lut := make([]uint64, 1<<src.BitsPerPixel())
	for i := range lut {
		lut[i] = dst.FromRGBA(src.ToRGBA(uint64(i)))
	}
	mask := uint64(len(lut) - 1)
	return func(raw uint64) uint64 { return lut[raw&mask] }
}

// decoderFor returns the raw-to-RGBA decoder of m, table driven for indexed
// models.
func decoderFor(m surface.ColorModel) func(raw uint64) color.RGBA {
	if m.Kind() != surface.KindIndexed {
		return m.ToRGBA
	}
	lut := make([]color.RGBA, 1<<m.BitsPerPixel())
	for i := range lut {
		lut[i] = m.ToRGBA(uint64(i))
	}
	mask := uint64(len(lut) - 1)
	return func(raw uint64) color.RGBA { return lut[raw&mask] }
}
