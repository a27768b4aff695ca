package driver

import "github.com/milk9111/dragtrack/common"

// Region is a named rectangle on the input surface. Its name becomes the
// touched-element identifier on press events that land inside it.
type Region struct {
	Name   string
	Bounds common.Rect
}

// Regions is an ordered region list; later entries are treated as drawn on
// top of earlier ones.
type Regions struct {
	list []Region
}

func NewRegions(regions ...Region) *Regions {
	return &Regions{list: regions}
}

func (r *Regions) Add(region Region) {
	r.list = append(r.list, region)
}

// Hit returns the name of the topmost region containing the point, or ""
// when none does.
func (r *Regions) Hit(x, y float64) string {
	if r == nil {
		return ""
	}
	for i := len(r.list) - 1; i >= 0; i-- {
		if r.list[i].Bounds.Contains(x, y) {
			return r.list[i].Name
		}
	}
	return ""
}
