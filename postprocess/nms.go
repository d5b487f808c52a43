package postprocess

import (
	"math"
	"sort"

	"github.com/celldet/go-cpn"
	clipper "github.com/ctessum/go.clipper"
)

// clipperScale converts float pixel coordinates to the integer grid the
// clipping library operates on
const clipperScale = 1000.0

// NMS removes duplicate overlapping proposals by greedy score-ranked
// suppression on contour IoU.  The highest scoring remaining proposal is
// accepted, then every remaining proposal whose contour overlap with it
// exceeds the NMS threshold is removed, until none remain.  Suppression is
// per class unless ClassAgnosticNMS is set.  Output order is descending
// score, ties broken by the original detection index.  The result is
// truncated to MaxDetections
func (c *CPN) NMS(proposals []Proposal) []Proposal {

	order := make([]int, len(proposals))

	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := proposals[order[a]], proposals[order[b]]
		if pa.Score != pb.Score {
			return pa.Score > pb.Score
		}
		return pa.index < pb.index
	})

	kept := make([]Proposal, 0, len(proposals))

	for _, i := range order {

		cand := proposals[i]
		suppressed := false

		for k := range kept {

			if !c.Params.ClassAgnosticNMS && kept[k].Class != cand.Class {
				continue
			}

			if contourIoU(kept[k].Contour, cand.Contour) > float64(c.Params.NMSThreshold) {
				suppressed = true
				break
			}
		}

		if suppressed {
			continue
		}

		kept = append(kept, cand)

		if len(kept) >= c.Params.MaxDetections {
			break
		}
	}

	return kept
}

// contourIoU calculates the area overlap ratio of two closed contours,
// intersection area over union area, using polygon clipping
func contourIoU(a, b cpn.Contour) float64 {

	pa := toClipperPath(a)
	pb := toClipperPath(b)

	areaA := pathArea(pa)
	areaB := pathArea(pb)

	if areaA == 0 && areaB == 0 {
		return 0
	}

	cl := clipper.NewClipper(0)
	cl.AddPath(pa, clipper.PtSubject, true)
	cl.AddPath(pb, clipper.PtClip, true)

	solution, ok := cl.Execute1(clipper.CtIntersection,
		clipper.PftNonZero, clipper.PftNonZero)

	if !ok {
		return 0
	}

	inter := 0.0

	for _, path := range solution {
		inter += pathArea(path)
	}

	union := areaA + areaB - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}

// toClipperPath converts a contour to an integer clipping path
func toClipperPath(c cpn.Contour) clipper.Path {

	path := make(clipper.Path, 0, len(c))

	for _, p := range c {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(math.Round(p.X * clipperScale)),
			Y: clipper.CInt(math.Round(p.Y * clipperScale)),
		})
	}

	return path
}

// pathArea calculates the unsigned shoelace area of an integer path
func pathArea(p clipper.Path) float64 {

	area := 0.0
	n := len(p)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += float64(p[i].X)*float64(p[j].Y) - float64(p[j].X)*float64(p[i].Y)
	}

	return math.Abs(area / 2.0)
}
