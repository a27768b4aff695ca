package common

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}

	cases := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 20, 30, true},
		{"left_edge", 10, 30, true},
		{"right_edge", 40, 30, false},
		{"above", 20, 10, false},
		{"below", 20, 60, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := r.Contains(c.x, c.y); got != c.want {
				t.Fatalf("Contains(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		vals []float64
		want float64
	}{
		{"empty_passthrough", 7, nil, 7},
		{"picks_closest", -150, []float64{0, -220, -420}, -220},
		{"ties_keep_first", 5, []float64{0, 10}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Nearest(c.v, c.vals); got != c.want {
				t.Fatalf("Nearest(%v, %v) = %v, want %v", c.v, c.vals, got, c.want)
			}
		})
	}
}
