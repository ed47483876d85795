// Package cache provides a small generic LRU cache.
//
// It backs the glyph outline cache: converting a font outline into a path
// costs far more than a map lookup, and text repeats the same few glyphs.
//
//	c := cache.New[key, *pixcore.Path](512)
//	p, err := c.GetOrLoad(k, func() (*pixcore.Path, error) { ... })
//
// # Thread Safety
//
// Cache is safe for concurrent use. Loaders run under the cache lock, so a
// key is never loaded twice.
package cache
