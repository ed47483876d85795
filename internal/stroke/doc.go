// Package stroke converts stroked polylines into filled outlines.
//
// Instead of tracing one offset contour around the whole path, the expander
// emits a set of small convex pieces, all wound the same way:
//   - one quadrilateral per segment, width/2 either side of it
//   - one piece per join on the outer side of the turn
//   - one piece per cap at the ends of open polylines
//
// Filled with the nonzero rule their union is the stroke. Overlaps between
// pieces are harmless because coverage is decided per pixel, and sharp turns
// cannot fold the outline back on itself.
//
// # Line Caps
//
//   - CapButt: flat, ending exactly at the endpoint
//   - CapRound: a disc of radius width/2 around the endpoint
//   - CapSquare: extends width/2 beyond the endpoint
//
// # Line Joins
//
//   - JoinMiter: sharp corner, falling back to bevel past the miter limit
//   - JoinRound: a disc of radius width/2 around the vertex
//   - JoinBevel: straight line across the corner
//
// # Usage
//
//	e := stroke.NewExpander(stroke.Style{Width: 4, Cap: stroke.CapRound, Join: stroke.JoinMiter, MiterLimit: 10})
//	outline := e.Expand(polylines, dashCursor)
//	covered := raster.Fill(outline, raster.NonZero, clip)
package stroke
