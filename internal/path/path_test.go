package path

import (
	"math"
	"testing"
)

func TestFlattenLines(t *testing.T) {
	elems := []Element{
		MoveTo{Point{0, 0}},
		LineTo{Point{10, 0}},
		LineTo{Point{10, 10}},
		Close{},
		MoveTo{Point{20, 20}},
		LineTo{Point{30, 20}},
	}
	got := Flatten(elems, 0.1)
	if len(got) != 2 {
		t.Fatalf("Flatten() returned %d polylines, want 2", len(got))
	}
	if !got[0].Closed || len(got[0].Points) != 3 {
		t.Errorf("first polyline = %+v, want 3 closed points", got[0])
	}
	if got[1].Closed || len(got[1].Points) != 2 {
		t.Errorf("second polyline = %+v, want 2 open points", got[1])
	}

	var edges int
	got[0].Edges(func(a, b Point) { edges++ })
	if edges != 3 {
		t.Errorf("closed triangle has %d edges, want 3", edges)
	}
}

func TestFlattenCurveTolerance(t *testing.T) {
	// Quarter circle approximated by a cubic.
	const k = 0.5522847498307936
	r := 100.0
	elems := []Element{
		MoveTo{Point{r, 0}},
		CubicTo{Point{r, r * k}, Point{r * k, r}, Point{0, r}},
	}
	for _, tol := range []float64{1, 0.25, 0.05} {
		polys := Flatten(elems, tol)
		if len(polys) != 1 {
			t.Fatalf("tol %v: %d polylines", tol, len(polys))
		}
		pts := polys[0].Points
		if pts[len(pts)-1] != (Point{0, r}) {
			t.Errorf("tol %v: curve ends at %v", tol, pts[len(pts)-1])
		}
		for i := 0; i+1 < len(pts); i++ {
			mid := pts[i].Lerp(pts[i+1], 0.5)
			// The cubic deviates from a true circle by about 0.027%.
			if d := math.Abs(mid.Length() - r); d > tol+0.03 {
				t.Errorf("tol %v: chord midpoint %v is %v from the arc", tol, mid, d)
			}
		}
	}
	if !HasCurves(elems) {
		t.Error("HasCurves() = false for a cubic")
	}
}

func TestFlattenSkipsInvalid(t *testing.T) {
	nan := math.NaN()
	elems := []Element{
		MoveTo{Point{0, 0}},
		LineTo{Point{nan, 5}},
		LineTo{Point{5, 0}},
		QuadTo{Point{math.Inf(1), 0}, Point{9, 9}},
		CubicTo{Point{1, 1}, Point{2, nan}, Point{3, 3}},
		LineTo{Point{5, 5}},
	}
	polys := Flatten(elems, 0.1)
	if len(polys) != 1 {
		t.Fatalf("Flatten() = %d polylines, want 1", len(polys))
	}
	want := []Point{{0, 0}, {5, 0}, {5, 5}}
	if len(polys[0].Points) != len(want) {
		t.Fatalf("points = %v, want %v", polys[0].Points, want)
	}
	for i := range want {
		if polys[0].Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, polys[0].Points[i], want[i])
		}
	}
}

func TestDashCursor(t *testing.T) {
	c := NewDashCursor([]float64{4, 2}, 0)
	steps := []struct {
		advance float64
		on      bool
	}{
		{0, true},
		{3, true},
		{1, false},
		{1.5, false},
		{0.5, true},
		{6, true},
		{4, false},
	}
	for i, s := range steps {
		c.Advance(s.advance)
		if c.On() != s.on {
			t.Errorf("step %d: On() = %v, want %v", i, c.On(), s.on)
		}
	}

	c.Reset()
	if !c.On() || c.Remaining() != 4 {
		t.Errorf("after Reset: On=%v Remaining=%v", c.On(), c.Remaining())
	}
}

func TestDashCursorOffsetAndOdd(t *testing.T) {
	c := NewDashCursor([]float64{3}, 4)
	// [3] becomes [3 3]; offset 4 lands one unit into the gap.
	if c.On() || c.Remaining() != 2 {
		t.Errorf("On=%v Remaining=%v, want off with 2 left", c.On(), c.Remaining())
	}

	neg := NewDashCursor([]float64{3, 3}, -1)
	if neg.On() || neg.Remaining() != 1 {
		t.Errorf("negative offset: On=%v Remaining=%v", neg.On(), neg.Remaining())
	}

	solid := NewDashCursor([]float64{0, 0}, 0)
	if !solid.Solid() || !solid.On() {
		t.Error("all-zero pattern should be solid")
	}
	solid.Advance(100)
	if !solid.On() {
		t.Error("solid cursor turned off")
	}

	var nilCursor *DashCursor
	if !nilCursor.On() {
		t.Error("nil cursor should be solid")
	}
}

func TestDashCursorZeroLengthEntries(t *testing.T) {
	c := NewDashCursor([]float64{0, 5}, 0)
	if c.On() {
		t.Error("zero-length dash should be skipped at start")
	}
	c.Advance(5)
	if c.On() {
		t.Error("zero-length dash should be skipped after a gap")
	}
}

func TestDashPolyline(t *testing.T) {
	p := Polyline{Points: []Point{{0, 0}, {10, 0}, {10, 10}}}
	runs := DashPolyline(nil, p, NewDashCursor([]float64{4, 2}, 0))
	// Total length 20: dashes at [0,4] [6,10] [12,16] [18,20].
	if len(runs) != 4 {
		t.Fatalf("got %d runs, want 4: %v", len(runs), runs)
	}
	corner := runs[1]
	if len(corner.Points) != 2 || corner.Points[1] != (Point{10, 0}) {
		t.Errorf("second run = %v", corner.Points)
	}
	turn := runs[2]
	if turn.Points[0] != (Point{10, 2}) || turn.Points[len(turn.Points)-1] != (Point{10, 6}) {
		t.Errorf("third run = %v", turn.Points)
	}

	// Continuing the cursor across two calls equals dashing the joined path.
	c := NewDashCursor([]float64{3, 2}, 1)
	split := DashPolyline(nil, Polyline{Points: []Point{{0, 0}, {7, 0}}}, c)
	split = DashPolyline(split, Polyline{Points: []Point{{7, 0}, {7, 9}}}, c)
	whole := DashPolyline(nil, Polyline{Points: []Point{{0, 0}, {7, 0}, {7, 9}}}, NewDashCursor([]float64{3, 2}, 1))
	var splitLen, wholeLen float64
	for _, r := range split {
		r.Edges(func(a, b Point) { splitLen += a.Distance(b) })
	}
	for _, r := range whole {
		r.Edges(func(a, b Point) { wholeLen += a.Distance(b) })
	}
	if math.Abs(splitLen-wholeLen) > 1e-9 {
		t.Errorf("dashed length split=%v whole=%v", splitLen, wholeLen)
	}
}
