package synth

import "testing"

func TestCurveBoundaryClosure(t *testing.T) {
	curves := []Curve{
		{0.7},
		{0, 1},
		{0.2, 0.9, 0.4},
		{1, 0.75, 0.5, 0.25, 0},
	}
	for _, c := range curves {
		want := c[len(c)-1]
		if got := c.At(1); got != want {
			t.Errorf("Curve%v.At(1) = %v, want exactly %v", c, got, want)
		}
	}
}

func TestCurveConstant(t *testing.T) {
	c := Curve{0.35}
	for _, at := range []float32{0, 0.1, 0.5, 0.99, 1} {
		if got := c.At(at); got != 0.35 {
			t.Errorf("single-point curve At(%v) = %v, want 0.35", at, got)
		}
	}
}

func TestCurveInterpolation(t *testing.T) {
	tests := []struct {
		c    Curve
		at   float32
		want float32
	}{
		{Curve{0, 1}, 0, 0},
		{Curve{0, 1}, 0.5, 0.5},
		{Curve{0, 1}, 0.25, 0.25},
		{Curve{0, 1, 0}, 0.25, 0.5},
		{Curve{0, 1, 0}, 0.5, 1},
		{Curve{0, 1, 0}, 0.75, 0.5},
		{Curve{1, 0.5, 0, 0.5}, 1.0 / 3.0, 0.5},
	}
	for _, tt := range tests {
		got := tt.c.At(tt.at)
		if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("Curve%v.At(%v) = %v, want %v", tt.c, tt.at, got, tt.want)
		}
	}
}

func TestCurveAppendDuplicatesLast(t *testing.T) {
	c := Curve{0.1, 0.8}
	c.Append()
	if len(c) != 3 || c[2] != 0.8 {
		t.Errorf("after Append: %v, want last point duplicated", c)
	}
	// Shape must be unchanged until the new point is edited.
	if got := c.At(1); got != 0.8 {
		t.Errorf("At(1) after Append = %v, want 0.8", got)
	}
}

func TestCurvePopRefusesLastPoint(t *testing.T) {
	c := Curve{0.1, 0.8}
	c.Pop()
	if len(c) != 1 || c[0] != 0.1 {
		t.Errorf("after Pop: %v, want [0.1]", c)
	}
	c.Pop() // silently refused
	if len(c) != 1 {
		t.Errorf("Pop on single-point curve removed it: %v", c)
	}
}

func TestCurveCloneIndependent(t *testing.T) {
	c := Curve{0.1, 0.2}
	d := c.Clone()
	d[0] = 9
	if c[0] != 0.1 {
		t.Errorf("mutating clone changed original: %v", c)
	}
}
