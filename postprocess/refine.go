package postprocess

import (
	"fmt"
	"math"

	"github.com/celldet/go-cpn"
)

// Scorer supplies the externally learned or heuristic boundary support a
// refinement step maximizes.  Higher values mark better supported boundary
// positions
type Scorer interface {
	// Score returns the boundary support at the integer pixel (x,y)
	Score(x, y int) float32
}

// ScoreMap adapts a dense row-major H x W float32 map, the usual network
// boundary head output, to the Scorer interface.  Positions outside the
// map score negative infinity so refinement never moves a point off grid
type ScoreMap struct {
	Width  int
	Height int
	Data   []float32
}

// NewScoreMap wraps a row-major float32 buffer as a ScoreMap
func NewScoreMap(data []float32, width, height int) (*ScoreMap, error) {

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: score map size must be positive, got %dx%d",
			cpn.ErrInvalidConfig, width, height)
	}

	if len(data) != width*height {
		return nil, fmt.Errorf("%w: score buffer has %d values, want %d",
			cpn.ErrShapeMismatch, len(data), width*height)
	}

	return &ScoreMap{Width: width, Height: height, Data: data}, nil
}

// Score implements Scorer
func (s *ScoreMap) Score(x, y int) float32 {

	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return float32(math.Inf(-1))
	}

	return s.Data[y*s.Width+x]
}

// Refine runs exactly RefinementIterations passes of bucketed local
// refinement over each proposal's sampled contour and returns proposals
// carrying the refined point sets.  There is no early exit on convergence,
// the iteration count is a fixed cost bound, not a fixed-point solver.
// Buckets are recomputed from the current contour state every pass
func (c *CPN) Refine(proposals []Proposal, s Scorer) []Proposal {

	out := make([]Proposal, len(proposals))

	for i, p := range proposals {
		out[i] = p
		out[i].Contour = c.refineContour(p.Contour, s)
	}

	return out
}

// refineContour iterates the per-point bucketed update over a copy of the
// contour
func (c *CPN) refineContour(pts cpn.Contour, s Scorer) cpn.Contour {

	if len(pts) == 0 {
		return pts
	}

	cur := pts.Clone()

	for it := 0; it < c.Params.RefinementIterations; it++ {

		next := make(cpn.Contour, len(cur))
		centroid := cur.Centroid()

		for i := range cur {
			next[i] = c.refinePoint(cur, centroid, i, s)
		}

		cur = next
	}

	return cur
}

// refinePoint moves one sampled point to the best supported integer
// position inside its angular bucket, or leaves it unchanged when no
// candidate scores higher than the current position.  The point's bucket
// is the angular partition its outward normal falls in, so a step may only
// move the point across the boundary, not along it
func (c *CPN) refinePoint(cur cpn.Contour, centroid cpn.Point, i int, s Scorer) cpn.Point {

	n := len(cur)
	p := cur[i]

	// outward normal from the neighboring points, oriented away from the
	// contour centroid
	prev := cur[(i-1+n)%n]
	next := cur[(i+1)%n]

	tx := next.X - prev.X
	ty := next.Y - prev.Y

	nx := ty
	ny := -tx

	if nx*(p.X-centroid.X)+ny*(p.Y-centroid.Y) < 0 {
		nx = -nx
		ny = -ny
	}

	if nx == 0 && ny == 0 {
		nx = p.X - centroid.X
		ny = p.Y - centroid.Y
	}

	bucket := angularBucket(nx, ny, c.Params.RefinementBuckets)

	cx := int(math.Round(p.X))
	cy := int(math.Round(p.Y))

	bestScore := s.Score(cx, cy)
	best := p

	radius := c.Params.RefinementRadius

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {

			if dx == 0 && dy == 0 {
				continue
			}

			if dx*dx+dy*dy > radius*radius {
				continue
			}

			if angularBucket(float64(dx), float64(dy), c.Params.RefinementBuckets) != bucket {
				continue
			}

			if sc := s.Score(cx+dx, cy+dy); sc > bestScore {
				bestScore = sc
				best = cpn.Point{X: float64(cx + dx), Y: float64(cy + dy)}
			}
		}
	}

	return best
}

// angularBucket partitions direction (dx,dy) into one of count equal
// angular sectors starting at the positive x axis
func angularBucket(dx, dy float64, count int) int {

	a := math.Atan2(dy, dx)

	if a < 0 {
		a += 2 * math.Pi
	}

	b := int(a / (2 * math.Pi / float64(count)))

	if b >= count {
		b = count - 1
	}

	return b
}
