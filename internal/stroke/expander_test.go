package stroke

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/pixcore/internal/path"
	"github.com/gogpu/pixcore/internal/raster"
	"github.com/gogpu/pixcore/region"
)

var clip = image.Rect(-50, -50, 150, 150)

func pl(closed bool, xy ...float64) path.Polyline {
	p := path.Polyline{Closed: closed}
	for i := 0; i+1 < len(xy); i += 2 {
		p.Points = append(p.Points, path.Point{X: xy[i], Y: xy[i+1]})
	}
	return p
}

func coverage(e *Expander, dash *path.DashCursor, polys ...path.Polyline) *region.Region {
	return raster.Fill(e.Expand(polys, dash), raster.NonZero, clip)
}

func TestExpandCaps(t *testing.T) {
	line := pl(false, 10, 10, 30, 10)
	tests := []struct {
		name string
		cap  Cap
		want *region.Region
	}{
		{"butt", CapButt, region.FromRect(image.Rect(10, 8, 30, 12))},
		{"square", CapSquare, region.FromRect(image.Rect(8, 8, 32, 12))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExpander(Style{Width: 4, Cap: tt.cap})
			if got := coverage(e, nil, line); !got.Equal(tt.want) {
				t.Errorf("coverage = %v, want %v", got, tt.want)
			}
		})
	}

	e := NewExpander(Style{Width: 4, Cap: CapRound})
	got := coverage(e, nil, line)
	if !got.Contains(image.Pt(8, 9)) || got.Contains(image.Pt(7, 7)) {
		t.Errorf("round cap coverage = %v", got)
	}
	if b := got.Bounds(); b != image.Rect(8, 8, 32, 12) {
		t.Errorf("round cap bounds = %v", b)
	}
}

func TestExpandJoins(t *testing.T) {
	corner := pl(false, 10, 10, 30, 10, 30, 30)

	miter := coverage(NewExpander(Style{Width: 4, Join: JoinMiter, MiterLimit: 10}), nil, corner)
	if !miter.Contains(image.Pt(31, 8)) {
		t.Error("miter join missing its outer corner")
	}
	bevel := coverage(NewExpander(Style{Width: 4, Join: JoinBevel}), nil, corner)
	if bevel.Contains(image.Pt(31, 8)) {
		t.Error("bevel join covers the miter tip")
	}
	if !bevel.Contains(image.Pt(30, 9)) {
		t.Error("bevel join missing its triangle")
	}
	if bevel.Area() >= miter.Area() {
		t.Errorf("bevel area %d >= miter area %d", bevel.Area(), miter.Area())
	}

	// A limit below sqrt(2) turns the right angle into a bevel.
	limited := coverage(NewExpander(Style{Width: 4, Join: JoinMiter, MiterLimit: 1.2}), nil, corner)
	if !limited.Equal(bevel) {
		t.Errorf("limited miter = %v, want bevel %v", limited, bevel)
	}
}

func TestExpandClosed(t *testing.T) {
	square := pl(true, 10, 10, 40, 10, 40, 40, 10, 40)
	got := coverage(NewExpander(Style{Width: 2, Join: JoinMiter, MiterLimit: 10}), nil, square)
	want := region.FromRect(image.Rect(9, 9, 41, 41)).Subtract(region.FromRect(image.Rect(11, 11, 39, 39)))
	if !got.Equal(want) {
		t.Errorf("closed square = %v, want %v", got, want)
	}
}

func TestExpandDashed(t *testing.T) {
	line := pl(false, 0, 10, 20, 10)
	dash := path.NewDashCursor([]float64{5, 5}, 0)
	got := coverage(NewExpander(Style{Width: 2}), dash, line)
	want := region.New(image.Rect(0, 9, 5, 11), image.Rect(10, 9, 15, 11))
	if !got.Equal(want) {
		t.Errorf("dashed = %v, want %v", got, want)
	}
	if r := dash.Remaining(); math.Abs(r-5) > 1e-9 || !dash.On() {
		t.Errorf("cursor after 20 units: on=%v remaining=%v", dash.On(), r)
	}
}

func TestExpandDegenerate(t *testing.T) {
	dot := pl(false, 5, 5, 5, 5)
	if got := NewExpander(Style{Width: 4}).Expand([]path.Polyline{dot}, nil); len(got) != 0 {
		t.Errorf("butt dot produced %d pieces", len(got))
	}
	sq := coverage(NewExpander(Style{Width: 4, Cap: CapSquare}), nil, dot)
	if want := region.FromRect(image.Rect(3, 3, 7, 7)); !sq.Equal(want) {
		t.Errorf("square dot = %v, want %v", sq, want)
	}
	if got := NewExpander(Style{Width: 0}).Expand([]path.Polyline{pl(false, 0, 0, 10, 0)}, nil); got != nil {
		t.Errorf("zero width produced %d pieces", len(got))
	}
	nan := pl(false, math.NaN(), 0, 10, 0)
	if got := NewExpander(Style{Width: 2}).Expand([]path.Polyline{nan}, nil); len(got) != 0 {
		t.Errorf("NaN polyline produced %d pieces", len(got))
	}
}

func TestEmitOrientation(t *testing.T) {
	e := NewExpander(DefaultStyle())
	e.emit(path.Point{X: 0, Y: 0}, path.Point{X: 0, Y: 1}, path.Point{X: 1, Y: 1})
	e.emit(path.Point{X: 0, Y: 0}, path.Point{X: 1, Y: 1}, path.Point{X: 0, Y: 1})
	for i, p := range e.out {
		area := 0.0
		for j := range p.Points {
			area += p.Points[j].Cross(p.Points[(j+1)%len(p.Points)])
		}
		if area <= 0 {
			t.Errorf("piece %d has area %v", i, area)
		}
	}
}
