package cpn

import "fmt"

// LabelMap is a dense instance annotation with the same spatial size as the
// source image.  Pixel value 0 is background, each distinct positive value
// identifies the pixels of exactly one instance.  Instance ids are only
// unique within one map and carry no meaning across samples.
type LabelMap struct {
	// Width and Height are the spatial dimensions in pixels
	Width  int
	Height int
	// Pix holds the labels in row-major order, length Width*Height
	Pix []int
}

// NewLabelMap returns an all-background label map of the given size
func NewLabelMap(width, height int) (*LabelMap, error) {

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: label map size must be positive, got %dx%d",
			ErrInvalidConfig, width, height)
	}

	return &LabelMap{
		Width:  width,
		Height: height,
		Pix:    make([]int, width*height),
	}, nil
}

// NewLabelMapFrom wraps an existing row-major label buffer
func NewLabelMapFrom(pix []int, width, height int) (*LabelMap, error) {

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: label map size must be positive, got %dx%d",
			ErrInvalidConfig, width, height)
	}

	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: label buffer has %d values, want %d",
			ErrShapeMismatch, len(pix), width*height)
	}

	return &LabelMap{Width: width, Height: height, Pix: pix}, nil
}

// At returns the label at (x,y).  Coordinates outside the map read as
// background so boundary tracing does not need border special cases
func (m *LabelMap) At(x, y int) int {

	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}

	return m.Pix[y*m.Width+x]
}

// Set writes the label at (x,y).  Out of range coordinates are ignored
func (m *LabelMap) Set(x, y, label int) {

	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}

	m.Pix[y*m.Width+x] = label
}
