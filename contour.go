package cpn

import "math"

// Point is a 2D coordinate in pixel space
type Point struct {
	X float64
	Y float64
}

// Contour is an ordered closed sequence of points approximating an
// instance's outer boundary.  The first and last points are implicitly
// connected.  Contours produced by this module wind counter-clockwise,
// meaning positive signed area under the shoelace formula
type Contour []Point

// SignedArea calculates the signed area of the closed contour using the
// shoelace formula.  Positive means counter-clockwise winding
func (c Contour) SignedArea() float64 {

	area := 0.0
	n := len(c)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += c[i].X*c[j].Y - c[j].X*c[i].Y
	}

	return area / 2.0
}

// Area returns the enclosed area of the closed contour
func (c Contour) Area() float64 {
	return math.Abs(c.SignedArea())
}

// Perimeter returns the length of the closed contour including the edge
// connecting the last point back to the first
func (c Contour) Perimeter() float64 {

	dist := 0.0
	n := len(c)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dist += math.Hypot(c[j].X-c[i].X, c[j].Y-c[i].Y)
	}

	return dist
}

// Centroid returns the mean of the contour points
func (c Contour) Centroid() Point {

	if len(c) == 0 {
		return Point{}
	}

	var sx, sy float64

	for _, p := range c {
		sx += p.X
		sy += p.Y
	}

	n := float64(len(c))
	return Point{X: sx / n, Y: sy / n}
}

// Bounds returns the minimum and maximum corners of the contour's axis
// aligned bounding box
func (c Contour) Bounds() (min, max Point) {

	if len(c) == 0 {
		return Point{}, Point{}
	}

	min = c[0]
	max = c[0]

	for _, p := range c[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}

	return min, max
}

// Reverse flips the winding direction of the contour in place keeping the
// starting point fixed
func (c Contour) Reverse() {
	for i, j := 1, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// Clone returns a copy of the contour
func (c Contour) Clone() Contour {
	out := make(Contour, len(c))
	copy(out, c)
	return out
}

// Translate returns the contour shifted by (dx,dy)
func (c Contour) Translate(dx, dy float64) Contour {

	out := make(Contour, len(c))

	for i, p := range c {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}

	return out
}
