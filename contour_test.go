package cpn

import (
	"math"
	"testing"
)

// unit test square with counter-clockwise winding under the shoelace sign
// convention used by Contour
var square = Contour{
	{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
}

func TestContourArea(t *testing.T) {

	if got := square.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("square area = %f, want 100", got)
	}

	if got := square.SignedArea(); got <= 0 {
		t.Errorf("square signed area = %f, want positive", got)
	}
}

func TestContourPerimeter(t *testing.T) {

	if got := square.Perimeter(); math.Abs(got-40) > 1e-9 {
		t.Errorf("square perimeter = %f, want 40", got)
	}
}

func TestContourCentroid(t *testing.T) {

	c := square.Centroid()

	if math.Abs(c.X-5) > 1e-9 || math.Abs(c.Y-5) > 1e-9 {
		t.Errorf("square centroid = %+v, want (5,5)", c)
	}
}

func TestContourReverse(t *testing.T) {

	c := square.Clone()
	c.Reverse()

	if c.SignedArea() >= 0 {
		t.Errorf("reversed square signed area = %f, want negative", c.SignedArea())
	}

	// starting point stays fixed
	if c[0] != square[0] {
		t.Errorf("reverse moved the starting point to %+v", c[0])
	}

	if got := c.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("reversed square area = %f, want 100", got)
	}
}

func TestContourBounds(t *testing.T) {

	min, max := square.Bounds()

	if min.X != 0 || min.Y != 0 || max.X != 10 || max.Y != 10 {
		t.Errorf("square bounds = %+v %+v, want (0,0) (10,10)", min, max)
	}
}
