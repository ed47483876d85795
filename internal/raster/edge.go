package raster

import (
	"slices"

	"github.com/gogpu/pixcore/internal/path"
)

// Edge is a non-horizontal line segment oriented top to bottom.
type Edge struct {
	x0, y0 float64 // top
	x1, y1 float64 // bottom
	dxdy   float64
	dir    int // +1 when the original segment pointed down
}

// NewEdge creates an edge from p0 to p1. The second result is false for
// horizontal segments, which never cross a sample row.
func NewEdge(p0, p1 path.Point) (Edge, bool) {
	if p0.Y == p1.Y {
		return Edge{}, false
	}
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	return Edge{
		x0:   p0.X,
		y0:   p0.Y,
		x1:   p1.X,
		y1:   p1.Y,
		dxdy: (p1.X - p0.X) / (p1.Y - p0.Y),
		dir:  dir,
	}, true
}

// XAtY returns the x coordinate of the edge at y. It is evaluated from the
// top vertex each time so long edges do not accumulate error.
func (e *Edge) XAtY(y float64) float64 {
	if y >= e.y1 {
		return e.x1
	}
	return e.x0 + (y-e.y0)*e.dxdy
}

// crossing is an edge intersecting the current sample row.
type crossing struct {
	x   float64
	dir int
}

// ActiveEdgeTable walks sample rows top to bottom, keeping the edges that
// straddle the current row. Edges are half-open in y: an edge covers a row
// sampled at yc when y0 <= yc < y1.
type ActiveEdgeTable struct {
	pending []Edge // sorted by y0, consumed from the front
	active  []Edge
	xs      []crossing
}

// NewActiveEdgeTable creates a table over edges. The slice is sorted in
// place.
func NewActiveEdgeTable(edges []Edge) *ActiveEdgeTable {
	slices.SortFunc(edges, func(a, b Edge) int {
		switch {
		case a.y0 < b.y0:
			return -1
		case a.y0 > b.y0:
			return 1
		}
		return 0
	})
	return &ActiveEdgeTable{pending: edges, active: make([]Edge, 0, 16)}
}

// Done reports whether no edge remains at or below the last sampled row.
func (aet *ActiveEdgeTable) Done() bool {
	return len(aet.pending) == 0 && len(aet.active) == 0
}

// Crossings advances to sample row yc and returns the crossings sorted by x.
// Rows must be visited in increasing order. The result is reused by the next
// call.
func (aet *ActiveEdgeTable) Crossings(yc float64) []crossing {
	aet.active = slices.DeleteFunc(aet.active, func(e Edge) bool { return e.y1 <= yc })
	for len(aet.pending) > 0 && aet.pending[0].y0 <= yc {
		if e := aet.pending[0]; e.y1 > yc {
			aet.active = append(aet.active, e)
		}
		aet.pending = aet.pending[1:]
	}

	aet.xs = aet.xs[:0]
	for i := range aet.active {
		e := &aet.active[i]
		aet.xs = append(aet.xs, crossing{x: e.XAtY(yc), dir: e.dir})
	}
	// Insertion sort; rows are short and nearly ordered.
	for i := 1; i < len(aet.xs); i++ {
		key := aet.xs[i]
		j := i - 1
		for j >= 0 && aet.xs[j].x > key.x {
			aet.xs[j+1] = aet.xs[j]
			j--
		}
		aet.xs[j+1] = key
	}
	return aet.xs
}

// NextY returns the top of the next edge not yet activated. It reports
// false when none remain.
func (aet *ActiveEdgeTable) NextY() (float64, bool) {
	if len(aet.pending) == 0 {
		return 0, false
	}
	return aet.pending[0].y0, true
}
