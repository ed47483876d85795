package raster

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/pixcore/internal/path"
	"github.com/gogpu/pixcore/region"
)

var big = image.Rect(-100, -100, 200, 200)

func poly(closed bool, xy ...float64) path.Polyline {
	p := path.Polyline{Closed: closed}
	for i := 0; i+1 < len(xy); i += 2 {
		p.Points = append(p.Points, path.Point{X: xy[i], Y: xy[i+1]})
	}
	return p
}

func TestFillRectPath(t *testing.T) {
	rect := poly(true, 10, 10, 60, 10, 60, 40, 10, 40)
	want := region.FromRect(image.Rect(10, 10, 60, 40))

	for _, rule := range []FillRule{NonZero, EvenOdd} {
		got := Fill([]path.Polyline{rect}, rule, big)
		if !got.Equal(want) {
			t.Errorf("%v: Fill(rect) = %v, want %v", rule, got, want)
		}
	}
	if r := Rect(10, 10, 60, 40, big); r != want.Bounds() {
		t.Errorf("Rect = %v, want %v", r, want.Bounds())
	}
	// Reversed winding covers the same pixels.
	rev := poly(true, 10, 40, 60, 40, 60, 10, 10, 10)
	if got := Fill([]path.Polyline{rev}, NonZero, big); !got.Equal(want) {
		t.Errorf("Fill(reversed rect) = %v, want %v", got, want)
	}
}

func TestFillFractionalEdges(t *testing.T) {
	tests := []struct {
		x0, y0, x1, y1 float64
		want           image.Rectangle
	}{
		{0, 0, 1, 1, image.Rect(0, 0, 1, 1)},
		{0.4, 0.4, 1.6, 1.6, image.Rect(0, 0, 2, 2)},
		{0.6, 0.6, 2.6, 2.6, image.Rect(1, 1, 3, 3)},
		{0.6, 0.6, 1.4, 1.4, image.Rectangle{}},
		{0.6, 0.6, 1.4, 0.9, image.Rectangle{}},
		{-5, -5, 3.5, 2.5, image.Rect(-5, -5, 3, 2)},
	}
	for _, tt := range tests {
		p := poly(true, tt.x0, tt.y0, tt.x1, tt.y0, tt.x1, tt.y1, tt.x0, tt.y1)
		got := Fill([]path.Polyline{p}, NonZero, big)
		if got.Bounds() != tt.want || got.Area() != int64(tt.want.Dx()*tt.want.Dy()) {
			t.Errorf("Fill(%v,%v,%v,%v) = %v, want %v", tt.x0, tt.y0, tt.x1, tt.y1, got, tt.want)
		}
		if r := Rect(tt.x0, tt.y0, tt.x1, tt.y1, big); r != tt.want {
			t.Errorf("Rect(%v,%v,%v,%v) = %v, want %v", tt.x0, tt.y0, tt.x1, tt.y1, r, tt.want)
		}
	}
}

func TestFillRules(t *testing.T) {
	outer := poly(true, 0, 0, 30, 0, 30, 30, 0, 30)
	inner := poly(true, 10, 10, 20, 10, 20, 20, 10, 20)
	polys := []path.Polyline{outer, inner}

	nz := Fill(polys, NonZero, big)
	if nz.Area() != 900 {
		t.Errorf("nonzero area = %d, want 900", nz.Area())
	}
	eo := Fill(polys, EvenOdd, big)
	if eo.Area() != 800 {
		t.Errorf("evenodd area = %d, want 800", eo.Area())
	}
	if eo.Contains(image.Pt(15, 15)) {
		t.Error("evenodd filled the hole")
	}
}

func TestFillClip(t *testing.T) {
	tri := poly(true, 0, 0, 100, 0, 0, 100)
	clip := image.Rect(10, 10, 20, 20)
	got := Fill([]path.Polyline{tri}, NonZero, clip)
	if !got.Bounds().In(clip) {
		t.Errorf("Fill escaped clip: %v", got.Bounds())
	}
	if got.Area() != 100 {
		t.Errorf("area = %d, want 100", got.Area())
	}

	outside := poly(true, 50, 50, 60, 50, 60, 60)
	if got := Fill([]path.Polyline{outside}, NonZero, clip); !got.IsEmpty() {
		t.Errorf("Fill outside clip = %v, want empty", got)
	}
}

func TestFillInvalid(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		p    path.Polyline
	}{
		{"all-nan", poly(true, nan, nan, nan, 1, 1, nan)},
		{"degenerate", poly(true, 5, 5, 5, 5)},
		{"horizontal", poly(true, 0, 5, 10, 5, 20, 5)},
		{"empty", path.Polyline{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fill([]path.Polyline{tt.p}, NonZero, big); !got.IsEmpty() {
				t.Errorf("Fill = %v, want empty", got)
			}
		})
	}

	huge := poly(true, -1e300, -1e300, 1e300, -1e300, 1e300, 1e300, -1e300, 1e300)
	if got := Fill([]path.Polyline{huge}, NonZero, big); !got.Equal(region.FromRect(big)) {
		t.Errorf("Fill(huge) = %v, want %v", got, big)
	}
}

func TestFillSparseRows(t *testing.T) {
	a := poly(true, 0, 0, 4, 0, 4, 2, 0, 2)
	b := poly(true, 0, 150, 4, 150, 4, 152, 0, 152)
	got := Fill([]path.Polyline{a, b}, NonZero, big)
	want := region.New(image.Rect(0, 0, 4, 2), image.Rect(0, 150, 4, 152))
	if !got.Equal(want) {
		t.Errorf("Fill = %v, want %v", got, want)
	}
}

func line(p0, p1 path.Point, cur *path.DashCursor, clip image.Rectangle) *region.Region {
	var b region.Builder
	Line(&b, p0, p1, p0.Distance(p1), cur, clip)
	return b.Build()
}

func TestLineInclusive(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 path.Point
		want   *region.Region
	}{
		{"horizontal", path.Point{X: 0, Y: 0}, path.Point{X: 10, Y: 0}, region.FromRect(image.Rect(0, 0, 11, 1))},
		{"reversed", path.Point{X: 10, Y: 0}, path.Point{X: 0, Y: 0}, region.FromRect(image.Rect(0, 0, 11, 1))},
		{"vertical", path.Point{X: 3, Y: 2}, path.Point{X: 3, Y: 7}, region.FromRect(image.Rect(3, 2, 4, 8))},
		{"point", path.Point{X: 4.7, Y: 4.2}, path.Point{X: 4.7, Y: 4.2}, region.FromRect(image.Rect(4, 4, 5, 5))},
		{"diagonal", path.Point{X: 0, Y: 0}, path.Point{X: 3, Y: 3}, region.New(
			image.Rect(0, 0, 1, 1), image.Rect(1, 1, 2, 2), image.Rect(2, 2, 3, 3), image.Rect(3, 3, 4, 4))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := line(tt.p0, tt.p1, nil, big); !got.Equal(tt.want) {
				t.Errorf("Line = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineClipped(t *testing.T) {
	clip := image.Rect(0, 0, 20, 20)
	got := line(path.Point{X: -1e9, Y: 5}, path.Point{X: 1e9, Y: 5}, nil, clip)
	if want := region.FromRect(image.Rect(0, 5, 20, 6)); !got.Equal(want) {
		t.Errorf("Line = %v, want %v", got, want)
	}
	if got := line(path.Point{X: 30, Y: 30}, path.Point{X: 40, Y: 40}, nil, clip); !got.IsEmpty() {
		t.Errorf("Line outside clip = %v", got)
	}
	if got := line(path.Point{X: math.NaN(), Y: 0}, path.Point{X: 4, Y: 0}, nil, clip); !got.IsEmpty() {
		t.Errorf("Line with NaN = %v", got)
	}
}

func TestLineDashContinuity(t *testing.T) {
	pts := []path.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	// Two calls sharing a cursor.
	var shared region.Builder
	cur := path.NewDashCursor([]float64{3, 2}, 0)
	for i := 0; i+1 < len(pts); i++ {
		Line(&shared, pts[i], pts[i+1], pts[i].Distance(pts[i+1]), cur, big)
	}
	got := shared.Build()

	want := region.New(
		image.Rect(0, 0, 3, 1), image.Rect(5, 0, 8, 1), image.Rect(10, 0, 11, 3),
		image.Rect(10, 5, 11, 8), image.Rect(10, 10, 11, 11),
	)
	if !got.Equal(want) {
		t.Errorf("dashed polyline = %v, want %v", got, want)
	}

	// Splitting a segment at a pixel boundary leaves the pattern unchanged.
	var split region.Builder
	cur = path.NewDashCursor([]float64{3, 2}, 0)
	mid := path.Point{X: 5, Y: 0}
	Line(&split, pts[0], mid, 5, cur, big)
	Line(&split, mid, pts[1], 5, cur, big)
	Line(&split, pts[1], pts[2], 10, cur, big)
	if s := split.Build(); !s.Equal(got) {
		t.Errorf("split polyline = %v, want %v", s, got)
	}
}

func TestLineDashUserLength(t *testing.T) {
	// A segment scaled 2x on screen still dashes in user units.
	cur := path.NewDashCursor([]float64{1, 1}, 0)
	var b region.Builder
	Line(&b, path.Point{X: 0, Y: 0}, path.Point{X: 8, Y: 0}, 4, cur, big)
	want := region.New(image.Rect(0, 0, 2, 1), image.Rect(4, 0, 6, 1), image.Rect(8, 0, 9, 1))
	if got := b.Build(); !got.Equal(want) {
		t.Errorf("Line = %v, want %v", got, want)
	}
}

func TestFillEllipse(t *testing.T) {
	e := Ellipse{CX: 10, CY: 10, RX: 5, RY: 5}
	var b region.Builder
	FillEllipse(&b, e, big)
	got := b.Build()

	if a := got.Area(); a < 70 || a > 90 {
		t.Errorf("area = %d, want about 78", a)
	}
	for _, p := range []image.Point{{9, 9}, {5, 9}, {14, 10}, {9, 5}} {
		if !got.Contains(p) {
			t.Errorf("missing %v", p)
		}
	}
	for _, p := range []image.Point{{4, 9}, {15, 10}, {5, 5}, {14, 14}} {
		if got.Contains(p) {
			t.Errorf("unexpected %v", p)
		}
	}
	// Symmetric about the center.
	got.Each(func(r image.Rectangle) bool {
		m := image.Rect(20-r.Max.X, 20-r.Max.Y, 20-r.Min.X, 20-r.Min.Y)
		if got.IntersectRect(m).Area() != int64(m.Dx()*m.Dy()) {
			t.Errorf("mirror of %v not covered", r)
		}
		return true
	})

	var empty region.Builder
	FillEllipse(&empty, Ellipse{CX: 10, CY: 10, RX: 0, RY: 5}, big)
	FillEllipse(&empty, Ellipse{CX: math.NaN(), CY: 10, RX: 5, RY: 5}, big)
	if empty.Len() != 0 {
		t.Errorf("degenerate ellipses produced %d rects", empty.Len())
	}
}

func TestFillPie(t *testing.T) {
	e := Ellipse{CX: 10, CY: 10, RX: 8, RY: 8}
	var b region.Builder
	FillPie(&b, e, 0, math.Pi/2, big)
	got := b.Build()

	if !got.Contains(image.Pt(12, 12)) {
		t.Error("quarter pie missing (12,12)")
	}
	for _, p := range []image.Point{{7, 7}, {12, 7}, {7, 12}} {
		if got.Contains(p) {
			t.Errorf("quarter pie contains %v", p)
		}
	}

	var full, whole region.Builder
	FillPie(&full, e, 1, 2*math.Pi, big)
	FillEllipse(&whole, e, big)
	if !full.Build().Equal(whole.Build()) {
		t.Error("full sweep differs from ellipse")
	}

	var neg region.Builder
	FillPie(&neg, e, math.Pi/2, -math.Pi/2, big)
	if !neg.Build().Equal(got) {
		t.Error("negative sweep differs from the equivalent positive sweep")
	}
}

func TestStrokeArc(t *testing.T) {
	e := Ellipse{CX: 10.5, CY: 10.5, RX: 5, RY: 5}
	var b region.Builder
	StrokeArc(&b, e, 0, 2*math.Pi, nil, big)
	got := b.Build()
	for _, p := range []image.Point{{15, 10}, {5, 10}, {10, 15}, {10, 5}} {
		if !got.Contains(p) {
			t.Errorf("outline missing %v", p)
		}
	}
	if got.Contains(image.Pt(10, 10)) {
		t.Error("outline contains the center")
	}

	// A half circle stays on one side.
	var half region.Builder
	StrokeArc(&half, e, 0, math.Pi, nil, big)
	if r := half.Build().Bounds(); r.Min.Y < 10 {
		t.Errorf("lower half outline bounds = %v", r)
	}
}

func TestInSweep(t *testing.T) {
	tests := []struct {
		theta, start, extent float64
		want                 bool
	}{
		{0.5, 0, 1, true},
		{1.5, 0, 1, false},
		{-0.5, 0, -1, true},
		{0.5, 0, -1, false},
		{2*math.Pi + 0.5, 0, 1, true},
		{-math.Pi + 0.1, math.Pi - 0.2, 0.4, true},
	}
	for _, tt := range tests {
		if got := inSweep(tt.theta, tt.start, tt.extent); got != tt.want {
			t.Errorf("inSweep(%v, %v, %v) = %v, want %v", tt.theta, tt.start, tt.extent, got, tt.want)
		}
	}
}
