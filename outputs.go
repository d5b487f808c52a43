package cpn

import "fmt"

// Output is one dense prediction map produced by the network, stored
// channel-major: the value for channel c at cell (x,y) lives at index
// (c*Height+y)*Width+x.  This matches the CHW layout inference runtimes
// return their buffers in
type Output struct {
	// Channels is the number of prediction channels per spatial cell
	Channels int
	// Height and Width are the spatial grid dimensions
	Height int
	Width  int
	// BufFloat holds the prediction values, length Channels*Height*Width
	BufFloat []float32
}

// NewOutput wraps a float32 buffer as a dense prediction map
func NewOutput(buf []float32, channels, height, width int) (*Output, error) {

	if channels <= 0 || height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: output dimensions must be positive, got %dx%dx%d",
			ErrInvalidConfig, channels, height, width)
	}

	if len(buf) != channels*height*width {
		return nil, fmt.Errorf("%w: output buffer has %d values, want %d",
			ErrShapeMismatch, len(buf), channels*height*width)
	}

	return &Output{
		Channels: channels,
		Height:   height,
		Width:    width,
		BufFloat: buf,
	}, nil
}

// NewOutputFromFloat16 wraps a raw float16 buffer as a dense prediction
// map, converting it to float32 via the precomputed lookup table
func NewOutputFromFloat16(buf []uint16, channels, height, width int) (*Output, error) {
	return NewOutput(Float16ToFloat32(buf), channels, height, width)
}

// At returns the value of channel c at cell (x,y)
func (o *Output) At(c, y, x int) float32 {
	return o.BufFloat[(c*o.Height+y)*o.Width+x]
}
