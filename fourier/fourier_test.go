package fourier

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/celldet/go-cpn"
)

// circleContour builds an n-gon approximation of a circle
func circleContour(cx, cy, r float64, n int) cpn.Contour {

	c := make(cpn.Contour, n)

	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		c[i] = cpn.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}

	return c
}

// squareDistance returns the distance from p to the boundary of the axis
// aligned square [0,s]x[0,s]
func squareDistance(p cpn.Point, s float64) float64 {

	h := s / 2
	dx := math.Abs(p.X - h)
	dy := math.Abs(p.Y - h)

	return math.Abs(math.Max(dx, dy) - h)
}

func TestEncodeDecodeCircle(t *testing.T) {

	c := circleContour(32, 32, 20, 64)

	desc, center, err := Encode(c, 8)

	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if len(desc) != 8 {
		t.Fatalf("descriptor has %d coefficients, want 8", len(desc))
	}

	if math.Hypot(center.X-32, center.Y-32) > 0.01 {
		t.Errorf("center = %+v, want (32,32)", center)
	}

	out, err := Decode(desc, center, 64)

	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(out) != 64 {
		t.Fatalf("decoded %d points, want 64", len(out))
	}

	for i, p := range out {
		d := math.Hypot(p.X-32, p.Y-32)
		if math.Abs(d-20) > 0.5 {
			t.Fatalf("point %d at radius %f, want 20", i, d)
		}
	}
}

func TestSquareRoundTripErrorShrinksWithOrder(t *testing.T) {

	side := 20.0
	c := cpn.Contour{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	}

	maxErr := func(order int) float64 {

		desc, center, err := Encode(c, order)

		if err != nil {
			t.Fatalf("Encode order %d: %v", order, err)
		}

		out, err := Decode(desc, center, 128)

		if err != nil {
			t.Fatalf("Decode order %d: %v", order, err)
		}

		worst := 0.0

		for _, p := range out {
			if d := squareDistance(p, side); d > worst {
				worst = d
			}
		}

		return worst
	}

	low := maxErr(4)
	high := maxErr(16)

	if high >= low {
		t.Errorf("max error did not shrink with order: order 4 = %f, order 16 = %f",
			low, high)
	}

	if high > 1.5 {
		t.Errorf("order 16 max error = %f, want within 1.5 of the square boundary", high)
	}
}

func TestDecodeDeterministic(t *testing.T) {

	desc, center, err := Encode(circleContour(10, 10, 5, 32), 6)

	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	a, _ := Decode(desc, center, 17)
	b, _ := Decode(desc, center, 17)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between identical decodes: %+v vs %+v",
				i, a[i], b[i])
		}
	}
}

func TestNormalizeCancelsStartingPoint(t *testing.T) {

	c := cpn.Contour{
		{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20},
	}

	// the same square extracted with a different starting corner
	rotated := append(c[1:].Clone(), c[0])

	da, _, err := Encode(c, 8)

	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	db, _, err := Encode(rotated, 8)

	if err != nil {
		t.Fatalf("Encode rotated: %v", err)
	}

	// raw coefficients differ in phase
	if cmplx.Abs(da[0]-db[0]) < 1e-9 {
		t.Fatalf("rotating the starting point did not change coefficient phase")
	}

	na := da.Normalize()
	nb := db.Normalize()

	for i := range na {
		if cmplx.Abs(na[i]-nb[i]) > 1e-6 {
			t.Errorf("normalized coefficient %d differs: %v vs %v", i, na[i], nb[i])
		}
	}
}

func TestEncodeRejectsBadInput(t *testing.T) {

	if _, _, err := Encode(circleContour(0, 0, 1, 8), 0); !errors.Is(err, cpn.ErrInvalidConfig) {
		t.Errorf("zero order: expected ErrInvalidConfig, got %v", err)
	}

	if _, _, err := Encode(cpn.Contour{}, 4); !errors.Is(err, cpn.ErrShapeMismatch) {
		t.Errorf("empty contour: expected ErrShapeMismatch, got %v", err)
	}
}

func TestFreqInterleaving(t *testing.T) {

	want := []int{1, -1, 2, -2, 3, -3}

	for i, w := range want {
		if got := Freq(i); got != w {
			t.Errorf("Freq(%d) = %d, want %d", i, got, w)
		}
	}
}
