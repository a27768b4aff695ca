package common

type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside the rectangle. Points on
// the left/top edge are inside; points on the right/bottom edge are not.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}
