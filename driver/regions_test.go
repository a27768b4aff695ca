package driver

import (
	"testing"

	"github.com/milk9111/dragtrack/common"
)

func TestRegionsHit(t *testing.T) {
	regions := NewRegions(
		Region{Name: "backdrop", Bounds: common.Rect{X: 0, Y: 0, Width: 100, Height: 100}},
		Region{Name: "card", Bounds: common.Rect{X: 25, Y: 25, Width: 50, Height: 50}},
	)

	cases := []struct {
		name string
		x, y float64
		want string
	}{
		{"topmost_wins_overlap", 50, 50, "card"},
		{"outer_region_only", 10, 10, "backdrop"},
		{"miss", 150, 150, ""},
		{"left_top_edge_inclusive", 25, 25, "card"},
		{"right_bottom_edge_exclusive", 100, 100, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := regions.Hit(c.x, c.y); got != c.want {
				t.Fatalf("Hit(%v, %v) = %q, want %q", c.x, c.y, got, c.want)
			}
		})
	}
}

func TestRegionsNilAndEmpty(t *testing.T) {
	var nilRegions *Regions
	if got := nilRegions.Hit(1, 1); got != "" {
		t.Fatalf("nil regions should miss, got %q", got)
	}
	if got := NewRegions().Hit(1, 1); got != "" {
		t.Fatalf("empty regions should miss, got %q", got)
	}
}
