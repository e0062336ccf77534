package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestAABBIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     AABB
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewAABB(0, 0, 10, 10),
			b:        NewAABB(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewAABB(0, 0, 10, 10),
			b:        NewAABB(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewAABB(0, 0, 10, 10),
			b:        NewAABB(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewAABB(0, 0, 10, 10),
			b:        NewAABB(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewAABB(0, 0, 10, 10),
			b:        NewAABB(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewAABB(0, 0, 20, 20),
			b:        NewAABB(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "sub-unit overlap",
			a:        NewAABB(0, 0, 10, 10),
			b:        NewAABB(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestAABBDisjoint(t *testing.T) {
	box := NewAABB(0, 0, 10, 10)

	// A horizontal segment's bounds have zero height but still touch the box
	flat := AABB{Min: V(-5, 5), Max: V(15, 5)}
	if box.Disjoint(flat) {
		t.Error("zero-height bounds crossing the box should not be disjoint")
	}
	if !box.Disjoint(NewAABB(11, 0, 2, 2)) {
		t.Error("separated boxes should be disjoint")
	}
	if box.Disjoint(NewAABB(10, 0, 2, 2)) {
		t.Error("touching boxes are not disjoint")
	}
}

func TestAABBContains(t *testing.T) {
	b := NewAABB(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"inside", V(15, 15), true},
		{"top-left corner", V(10, 10), false},
		{"on right edge", V(30, 20), false},
		{"outside left", V(5, 15), false},
		{"outside bottom", V(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := b.Contains(tc.p)
			if result != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, result, tc.expected)
			}
		})
	}
}

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([]Vec{V(3, -1), V(-2, 4), V(0, 0)})
	if b.Min != V(-2, -1) || b.Max != V(3, 4) {
		t.Errorf("BoundsOf() = %v, expected min (-2,-1) max (3,4)", b)
	}
	if b.Width() != 5 || b.Height() != 5 {
		t.Errorf("size = %vx%v, expected 5x5", b.Width(), b.Height())
	}
	if (BoundsOf(nil) != AABB{}) {
		t.Error("BoundsOf(nil) should be the zero box")
	}
}

func TestRotateMatchesLengthDir(t *testing.T) {
	for _, deg := range []float64{0, 30, 90, 135, 180, 270, -45} {
		r := V(1, 0).Rotate(deg)
		l := LengthDir(1, deg)
		if !near(r.X, l.X) || !near(r.Y, l.Y) {
			t.Errorf("Rotate(%v) = %v, LengthDir = %v", deg, r, l)
		}
	}

	up := LengthDir(10, 90)
	if !near(up.X, 0) || !near(up.Y, -10) {
		t.Errorf("LengthDir(10, 90) = %v, expected (0, -10)", up)
	}
}

func TestPointDirection(t *testing.T) {
	tests := []struct {
		x2, y2   float64
		expected float64
	}{
		{10, 0, 0},
		{0, -10, 90},
		{-10, 0, 180},
		{0, 10, -90},
	}

	for _, tc := range tests {
		result := PointDirection(0, 0, tc.x2, tc.y2)
		if !near(result, tc.expected) {
			t.Errorf("PointDirection(0, 0, %v, %v) = %v, expected %v", tc.x2, tc.y2, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(-3) != -1 || Sign(0) != 0 || Sign(0.001) != 1 {
		t.Error("Sign() should return -1, 0, 1")
	}
}
