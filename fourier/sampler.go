package fourier

import (
	"fmt"
	"math"

	"github.com/celldet/go-cpn"
)

// Sample draws exactly n points from the closed contour c, approximately
// equidistant along its arc length.  Spacing by arc length rather than by
// point index avoids clustering samples on high curvature segments.  The
// first output point is the contour's first point
func Sample(c cpn.Contour, n int) (cpn.Contour, error) {

	if n <= 0 {
		return nil, fmt.Errorf("%w: sample count must be positive, got %d",
			cpn.ErrInvalidConfig, n)
	}

	if len(c) == 0 {
		return nil, fmt.Errorf("%w: cannot sample an empty contour",
			cpn.ErrShapeMismatch)
	}

	total := c.Perimeter()

	if total == 0 {
		// single point or fully degenerate contour
		out := make(cpn.Contour, n)
		for i := range out {
			out[i] = c[0]
		}
		return out, nil
	}

	// cumulative length at the start of each edge, edge i runs from point
	// i to point (i+1) mod len
	edges := len(c)
	cum := make([]float64, edges+1)

	for i := 0; i < edges; i++ {
		j := (i + 1) % edges
		cum[i+1] = cum[i] + math.Hypot(c[j].X-c[i].X, c[j].Y-c[i].Y)
	}

	out := make(cpn.Contour, n)
	edge := 0

	for m := 0; m < n; m++ {

		target := float64(m) * total / float64(n)

		// targets are monotonic so the edge pointer only moves forward
		for edge < edges-1 && cum[edge+1] <= target {
			edge++
		}

		span := cum[edge+1] - cum[edge]
		frac := 0.0

		if span > 0 {
			frac = (target - cum[edge]) / span
		}

		a := c[edge]
		b := c[(edge+1)%edges]

		out[m] = cpn.Point{
			X: a.X + (b.X-a.X)*frac,
			Y: a.Y + (b.Y-a.Y)*frac,
		}
	}

	return out, nil
}

// FromDescriptor draws exactly n points from the Fourier reconstruction of
// a descriptor anchored at the given location.  It honors the same output
// contract as Sample: n ordered points forming a closed contour
func FromDescriptor(d Descriptor, at cpn.Point, n int) (cpn.Contour, error) {
	return Decode(d, at, n)
}
