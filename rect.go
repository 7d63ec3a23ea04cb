package main

type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside r. A zero rect contains
// nothing.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}
