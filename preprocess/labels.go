package preprocess

import (
	"fmt"
	"image"

	"github.com/celldet/go-cpn"
	"golang.org/x/image/draw"
)

// maxScaleLabel is the largest instance id ScaleLabels can carry through
// the 16 bit intermediate image
const maxScaleLabel = 0xFFFF

// ScaleLabels resizes a label map to the given size with nearest neighbor
// interpolation so instance ids survive unblended.  Training label maps
// must follow the geometry applied to their images; nearest neighbor is
// the only interpolation that keeps ids intact
func ScaleLabels(m *cpn.LabelMap, width, height int) (*cpn.LabelMap, error) {

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size must be positive, got %dx%d",
			cpn.ErrInvalidConfig, width, height)
	}

	src := image.NewGray16(image.Rect(0, 0, m.Width, m.Height))

	for i, v := range m.Pix {
		if v < 0 || v > maxScaleLabel {
			return nil, fmt.Errorf("%w: instance id %d exceeds the %d limit for scaling",
				cpn.ErrShapeMismatch, v, maxScaleLabel)
		}

		src.Pix[2*i] = uint8(v >> 8)
		src.Pix[2*i+1] = uint8(v)
	}

	dst := image.NewGray16(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out, err := cpn.NewLabelMap(width, height)

	if err != nil {
		return nil, err
	}

	for i := range out.Pix {
		out.Pix[i] = int(dst.Pix[2*i])<<8 | int(dst.Pix[2*i+1])
	}

	return out, nil
}
