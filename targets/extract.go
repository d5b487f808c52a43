// Package targets converts per-pixel instance label maps into the
// supervision bundle a contour proposal model trains against: instance
// locations, Fourier descriptors, sampled contour point sets and a reduced
// dense classification map.
package targets

import (
	"log"

	"github.com/celldet/go-cpn"
)

// reduced label classes
const (
	ReducedBackground uint8 = 0
	ReducedForeground uint8 = 1
	ReducedIgnore     uint8 = 2
)

// ReducedLabels is a label map collapsed to a dense classification target,
// foreground/background with an optional ignore margin around ambiguous
// boundary pixels
type ReducedLabels struct {
	Width  int
	Height int
	// Pix holds one reduced class per pixel in row-major order
	Pix []uint8
}

// At returns the reduced class at (x,y), background outside the map
func (r *ReducedLabels) At(x, y int) uint8 {

	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return ReducedBackground
	}

	return r.Pix[y*r.Width+x]
}

// instanceInfo holds the per-instance state collected while scanning and
// tracing a label map
type instanceInfo struct {
	id      int
	contour cpn.Contour
	area    int
	// first pixel encountered in row-major order, the trace start
	firstX int
	firstY int
}

// moore neighborhood in clockwise screen order starting west, y grows down
var mooreDirs = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// mooreIndex maps a (dx+1, dy+1) offset to its mooreDirs index
var mooreIndex = [3][3]int{}

func init() {
	for i, d := range mooreDirs {
		mooreIndex[d[0]+1][d[1]+1] = i
	}
}

// extractInstances scans the label map row-major and returns the boundary
// contour and pixel statistics for every non-degenerate instance, in the
// order instance ids are first encountered.  Degenerate instances (area
// below minArea or a boundary of fewer than 3 points) are dropped and
// logged, never fatal
func extractInstances(m *cpn.LabelMap, minArea int) []instanceInfo {

	stats := make(map[int]*instanceInfo)
	order := make([]int, 0)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {

			id := m.Pix[y*m.Width+x]

			if id <= 0 {
				continue
			}

			st, ok := stats[id]

			if !ok {
				st = &instanceInfo{id: id, firstX: x, firstY: y}
				stats[id] = st
				order = append(order, id)
			}

			st.area++
		}
	}

	out := make([]instanceInfo, 0, len(order))

	for _, id := range order {

		st := stats[id]

		if st.area < minArea {
			log.Printf("dropping degenerate instance %d: area %d below minimum %d",
				id, st.area, minArea)
			continue
		}

		c := traceBoundary(m, id, st.firstX, st.firstY)

		if len(c) < 3 {
			log.Printf("dropping degenerate instance %d: boundary has %d points",
				id, len(c))
			continue
		}

		// normalize winding to counter-clockwise, the trace direction
		// depends on the region shape at the start pixel
		if c.SignedArea() < 0 {
			c.Reverse()
		}

		st.contour = c
		out = append(out, *st)
	}

	return out
}

// traceBoundary follows the outer boundary of the instance with the given
// id using Moore neighbor tracing, starting from its first row-major pixel.
// The start pixel is the leftmost pixel of the instance's topmost row, so
// its west neighbor is guaranteed background and serves as the initial
// backtrack.  The trace stops when it is about to leave the start pixel the
// same way it left on the first step.  Comparing the departure move instead
// of the arrival backtrack keeps the criterion firing on thin regions,
// where the trace re-enters the start with a backtrack that never matches
// the artificial initial one
func traceBoundary(m *cpn.LabelMap, id, sx, sy int) cpn.Contour {

	contour := make(cpn.Contour, 0, 8)

	px, py := sx, sy
	bdir := 0 // direction from the current pixel to its backtrack, west
	firstMove := -1

	// a closed boundary visits each pixel at most a handful of times
	maxSteps := 4 * (m.Width*m.Height + 2)

	for step := 0; step < maxSteps; step++ {

		// scan clockwise starting just past the backtrack neighbor
		found := -1

		for i := 1; i <= 8; i++ {
			d := (bdir + i) % 8
			nx := px + mooreDirs[d][0]
			ny := py + mooreDirs[d][1]

			if m.At(nx, ny) == id {
				found = d
				break
			}
		}

		if found == -1 {
			// isolated single pixel instance
			contour = append(contour, cpn.Point{X: float64(px), Y: float64(py)})
			break
		}

		if px == sx && py == sy {
			if firstMove == -1 {
				firstMove = found
			} else if found == firstMove {
				// back at the start and about to repeat the first
				// move, the boundary is fully traversed
				break
			}
		}

		// a pixel is appended each time the trace departs it, so thin
		// regions record both traversals of their shared pixels
		contour = append(contour, cpn.Point{X: float64(px), Y: float64(py)})

		// the neighbor scanned just before the found pixel is background
		// and becomes the new backtrack
		prev := (found + 7) % 8
		bx := px + mooreDirs[prev][0]
		by := py + mooreDirs[prev][1]

		px += mooreDirs[found][0]
		py += mooreDirs[found][1]

		bdir = mooreIndex[bx-px+1][by-py+1]
	}

	return contour
}

// reduceLabels collapses a label map to foreground/background/ignore.
// Foreground pixels closer than minFGDist to the background and background
// pixels closer than maxBGDist to the foreground become ignore, a soft
// margin for ambiguous boundary pixels.  Pixels beyond the map edge count
// as background
func reduceLabels(m *cpn.LabelMap, minFGDist, maxBGDist int) *ReducedLabels {

	size := m.Width * m.Height
	r := &ReducedLabels{
		Width:  m.Width,
		Height: m.Height,
		Pix:    make([]uint8, size),
	}

	for i, v := range m.Pix {
		if v > 0 {
			r.Pix[i] = ReducedForeground
		}
	}

	if minFGDist > 0 {
		dist := boundaryDistance(m, true)

		for i, d := range dist {
			if r.Pix[i] == ReducedForeground && d > 0 && d <= minFGDist {
				r.Pix[i] = ReducedIgnore
			}
		}
	}

	if maxBGDist > 0 {
		dist := boundaryDistance(m, false)

		for i, d := range dist {
			if r.Pix[i] == ReducedBackground && d > 0 && d <= maxBGDist {
				r.Pix[i] = ReducedIgnore
			}
		}
	}

	return r
}

// boundaryDistance returns, for each pixel on the intoForeground (or
// background) side, its 4-connected step distance to the nearest pixel of
// the opposite class.  Seed pixels of the opposite class carry distance 0,
// unreached pixels carry -1.  The map edge counts as background, so
// foreground pixels on the border are distance 1
func boundaryDistance(m *cpn.LabelMap, intoForeground bool) []int {

	size := m.Width * m.Height
	dist := make([]int, size)
	queue := make([]int, 0, size)

	for i := range dist {
		dist[i] = -1
	}

	// seed with every pixel of the side we measure distance from
	for i, v := range m.Pix {
		fg := v > 0
		if fg != intoForeground {
			dist[i] = 0
			queue = append(queue, i)
		}
	}

	if intoForeground {
		// the border ring beyond the map is background, seed edge
		// foreground pixels at distance 1
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if y != 0 && y != m.Height-1 && x != 0 && x != m.Width-1 {
					continue
				}
				i := y*m.Width + x
				if m.Pix[i] > 0 && dist[i] == -1 {
					dist[i] = 1
					queue = append(queue, i)
				}
			}
		}
	}

	for head := 0; head < len(queue); head++ {

		i := queue[head]
		x := i % m.Width
		y := i / m.Width

		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {

			nx := x + d[0]
			ny := y + d[1]

			if nx < 0 || ny < 0 || nx >= m.Width || ny >= m.Height {
				continue
			}

			j := ny*m.Width + nx

			if dist[j] != -1 {
				continue
			}

			fg := m.Pix[j] > 0

			if fg != intoForeground {
				continue
			}

			dist[j] = dist[i] + 1
			queue = append(queue, j)
		}
	}

	return dist
}
