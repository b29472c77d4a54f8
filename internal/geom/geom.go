// Package geom provides integer cell geometry for terminal layouts.
// All coordinates are in character cells with the origin at the top left.
package geom

// Point is a cell position.
type Point struct {
	X int
	Y int
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width/height pair in cells.
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether either dimension is zero or negative.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is a placed rectangle.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the rect's top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// WithOrigin returns a copy of r moved to the given origin.
func (r Rect) WithOrigin(p Point) Rect {
	r.X = p.X
	r.Y = p.Y
	return r
}

// WithSize returns a copy of r with the given size.
func (r Rect) WithSize(s Size) Rect {
	r.Width = s.Width
	r.Height = s.Height
	return r
}

// Constraints is the maximum box a child may occupy during measurement.
// There is no minimum; children clamp themselves and never fail to measure.
type Constraints struct {
	MaxWidth  int
	MaxHeight int
}

// Constrain returns c with both axes capped at the given size.
func Constrain(s Size) Constraints {
	return Constraints{MaxWidth: s.Width, MaxHeight: s.Height}
}

// Clamp returns s reduced to fit within the constraints.
// Negative dimensions clamp to zero.
func (c Constraints) Clamp(s Size) Size {
	if s.Width > c.MaxWidth {
		s.Width = c.MaxWidth
	}
	if s.Height > c.MaxHeight {
		s.Height = c.MaxHeight
	}
	if s.Width < 0 {
		s.Width = 0
	}
	if s.Height < 0 {
		s.Height = 0
	}
	return s
}

// Max returns the largest size the constraints allow.
func (c Constraints) Max() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}
