package pixcore

import (
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

func TestMatrixClassify(t *testing.T) {
	tests := []struct {
		name             string
		m                Matrix
		ident, translate bool
		axisAligned      bool
	}{
		{"identity", Identity(), true, true, true},
		{"translate", Translate(-5, 12), false, true, true},
		{"unit scale", Scale(1, 1), true, true, true},
		{"scale", Scale(2, 0.5), false, false, true},
		{"quarter turn", Rotate(math.Pi / 2), false, false, false},
		{"shear", Shear(0.5, 0), false, false, false},
		{"zero", Matrix{}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsIdentity(); got != tt.ident {
				t.Errorf("IsIdentity = %v", got)
			}
			if got := tt.m.IsTranslation(); got != tt.translate {
				t.Errorf("IsTranslation = %v", got)
			}
			if got := tt.m.IsAxisAligned(); got != tt.axisAligned {
				t.Errorf("IsAxisAligned = %v", got)
			}
		})
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(3, -7).Multiply(Rotate(0.3)).Multiply(Scale(2, 0.5)).Multiply(Shear(0.2, 0))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported singular")
	}
	for _, p := range []Point{Pt(0, 0), Pt(12.5, -4), Pt(-100, 3)} {
		if q := inv.TransformPoint(m.TransformPoint(p)); q.Distance(p) > 1e-9 {
			t.Errorf("round trip of %v = %v", p, q)
		}
	}
	if got := m.Multiply(inv); maxDiff(got, Identity()) > 1e-12 {
		t.Errorf("m * inv = %+v", got)
	}

	for _, m := range []Matrix{Scale(0, 1), Scale(math.NaN(), 1), {A: 1, B: 2, D: 2, E: 4}} {
		if inv, ok := m.Invert(); ok || inv != Identity() {
			t.Errorf("Invert(%+v) = %+v, %v", m, inv, ok)
		}
	}
}

func maxDiff(m, n Matrix) float64 {
	a, b := m.Aff3(), n.Aff3()
	var d float64
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}

func TestMatrixMultiplyOrder(t *testing.T) {
	m := Translate(10, 0).Multiply(Scale(2, 2))
	if got := m.TransformPoint(Pt(1, 1)); got != Pt(12, 2) {
		t.Errorf("TransformPoint = %v, want (12, 2)", got)
	}
	if got := m.TransformVector(Pt(1, 1)); got != Pt(2, 2) {
		t.Errorf("TransformVector = %v, want (2, 2)", got)
	}
	if got := Scale(2, 2).Multiply(Translate(10, 0)).TransformPoint(Pt(1, 1)); got != Pt(22, 2) {
		t.Errorf("reversed order = %v, want (22, 2)", got)
	}
}

func TestMaxScale(t *testing.T) {
	tests := []struct {
		m    Matrix
		want float64
	}{
		{Identity(), 1},
		{Translate(100, 5), 1},
		{Rotate(1.1), 1},
		{Scale(2, 3), 3},
		{Scale(-4, 1), 4},
		{Rotate(0.7).Multiply(Scale(0.5, 0.25)), 0.5},
		{Scale(0, 0), 0},
	}
	for _, tt := range tests {
		if got := tt.m.MaxScale(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%+v.MaxScale() = %v, want %v", tt.m, got, tt.want)
		}
	}
}

func TestMatrixAff3(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	if got := m.Aff3(); got != (f64.Aff3{1, 2, 3, 4, 5, 6}) {
		t.Errorf("Aff3() = %v", got)
	}
	if !m.Finite() || (Matrix{A: math.Inf(1), E: 1}).Finite() {
		t.Error("Finite misreports")
	}
}
