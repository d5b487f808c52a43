package cpn

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a configuration parameter is out
	// of range, such as a non-positive order or samples count
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrShapeMismatch is returned when an input's spatial or channel
	// dimensions disagree with the configuration it is processed under
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Config defines the parameters shared by target generation and inference
// post processing.  A Config is validated once with Validate() at component
// construction and treated as immutable afterwards, so it is safe to share
// read-only across workers.
type Config struct {
	// Order is the number of complex harmonic coefficients in a Fourier
	// descriptor.  Higher orders represent more complex shapes
	Order int
	// Samples is the fixed number of points drawn along a contour for
	// supervision and refinement
	Samples int
	// MinArea is the minimum pixel area an instance must have to be
	// extracted, instances below it are dropped as degenerate
	MinArea int
	// MinFGDist is the pixel distance from the background boundary below
	// which foreground pixels are marked ignore in the reduced labels
	MinFGDist int
	// MaxBGDist is the pixel distance from the foreground boundary below
	// which background pixels are marked ignore in the reduced labels
	MaxBGDist int
	// Width and Height pin the expected label map size.  Zero means any
	// size is accepted
	Width  int
	Height int
	// ScoreThresh is the minimum score required for a spatial location
	// to be turned into a proposal
	ScoreThresh float32
	// NMSThresh is the maximum allowed contour overlap (IoU) between two
	// proposals for both to be kept
	NMSThresh float32
	// ClassAgnosticNMS suppresses overlapping proposals across class
	// boundaries instead of per class
	ClassAgnosticNMS bool
	// RefinementIterations is the exact number of refinement passes run
	// over each proposal's sampled contour
	RefinementIterations int
	// RefinementBuckets is the number of angular partitions around a
	// sampled point that bound where a refinement step may move it
	RefinementBuckets int
	// RefinementRadius is the pixel radius of the neighborhood searched
	// around a sampled point during refinement
	RefinementRadius int
	// MaxDetections is the maximum number of proposals returned per
	// image after suppression
	MaxDetections int
}

// DefaultConfig returns a Config with values suited to cell-sized
// instances in images up to around 1024 pixels per side:
//   - Order: 8 harmonics, enough for most convex and mildly concave shapes
//   - Samples: 32 contour points
//   - Score Threshold: 0.5
//   - NMS Threshold: 0.5
//   - Refinement: 4 iterations over 6 angular buckets within 3 pixels
func DefaultConfig() Config {
	return Config{
		Order:                8,
		Samples:              32,
		MinArea:              2,
		MinFGDist:            0,
		MaxBGDist:            0,
		ScoreThresh:          0.5,
		NMSThresh:            0.5,
		RefinementIterations: 4,
		RefinementBuckets:    6,
		RefinementRadius:     3,
		MaxDetections:        1000,
	}
}

// Validate checks all Config parameters and returns ErrInvalidConfig
// wrapped with the offending field on the first violation found
func (c Config) Validate() error {

	if c.Order <= 0 {
		return fmt.Errorf("%w: order must be positive, got %d",
			ErrInvalidConfig, c.Order)
	}

	if c.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d",
			ErrInvalidConfig, c.Samples)
	}

	if c.MinArea < 0 {
		return fmt.Errorf("%w: min area must not be negative, got %d",
			ErrInvalidConfig, c.MinArea)
	}

	if c.MinFGDist < 0 || c.MaxBGDist < 0 {
		return fmt.Errorf("%w: fg/bg distance margins must not be negative, got %d/%d",
			ErrInvalidConfig, c.MinFGDist, c.MaxBGDist)
	}

	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: width/height must not be negative, got %d/%d",
			ErrInvalidConfig, c.Width, c.Height)
	}

	if c.ScoreThresh < 0 || c.ScoreThresh > 1 {
		return fmt.Errorf("%w: score threshold must be within [0,1], got %f",
			ErrInvalidConfig, c.ScoreThresh)
	}

	if c.NMSThresh < 0 || c.NMSThresh > 1 {
		return fmt.Errorf("%w: nms threshold must be within [0,1], got %f",
			ErrInvalidConfig, c.NMSThresh)
	}

	if c.RefinementIterations < 0 {
		return fmt.Errorf("%w: refinement iterations must not be negative, got %d",
			ErrInvalidConfig, c.RefinementIterations)
	}

	if c.RefinementBuckets <= 0 {
		return fmt.Errorf("%w: refinement buckets must be positive, got %d",
			ErrInvalidConfig, c.RefinementBuckets)
	}

	if c.RefinementRadius <= 0 {
		return fmt.Errorf("%w: refinement radius must be positive, got %d",
			ErrInvalidConfig, c.RefinementRadius)
	}

	if c.MaxDetections <= 0 {
		return fmt.Errorf("%w: max detections must be positive, got %d",
			ErrInvalidConfig, c.MaxDetections)
	}

	return nil
}
