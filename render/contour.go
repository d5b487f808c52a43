// Package render draws detected contours and their labels on images
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/celldet/go-cpn"
	"github.com/celldet/go-cpn/postprocess"
	"gocv.io/x/gocv"
)

// toImagePoint rounds a contour point to its nearest integer pixel.
// math.Round keeps negative coordinates rounding away from zero, refined
// or decoded points may land outside the image
func toImagePoint(p cpn.Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// Contours draws each proposal's closed boundary on the image, one palette
// color per proposal
func Contours(img *gocv.Mat, proposals []postprocess.Proposal, thickness int) {

	colors := Palette(len(proposals))

	for i, p := range proposals {

		pts := make([]image.Point, len(p.Contour))

		for j, q := range p.Contour {
			pts[j] = toImagePoint(q)
		}

		pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
		gocv.Polylines(img, pv, true, colors[i], thickness)
		pv.Close()
	}
}

// Labels writes each proposal's class name and score next to its anchor
// location.  classNames indexes class ids, an out of range class falls
// back to the numeric id
func Labels(img *gocv.Mat, proposals []postprocess.Proposal, classNames []string) {

	for _, p := range proposals {

		name := fmt.Sprintf("%d", p.Class)

		if p.Class >= 0 && p.Class < len(classNames) {
			name = classNames[p.Class]
		}

		text := fmt.Sprintf("%s %.2f", name, p.Score)
		org := toImagePoint(p.Location)

		gocv.PutText(img, text, org, gocv.FontHersheySimplex, 0.5, White, 1)
	}
}
