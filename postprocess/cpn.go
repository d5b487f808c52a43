// Package postprocess decodes raw contour proposal network output into
// ranked, de-duplicated and iteratively refined contour detections.
package postprocess

import (
	"fmt"

	"github.com/celldet/go-cpn"
	"github.com/celldet/go-cpn/fourier"
)

// CPN defines the struct for contour proposal model inference post
// processing
type CPN struct {
	// Params are the model configuration parameters
	Params CPNParams
}

// CPNParams defines the parameters used for post processing operations
type CPNParams struct {
	// Order is the number of harmonic coefficients per descriptor, the
	// coefficient output must carry 2*Order channels (real and imaginary
	// interleaved per harmonic)
	Order int
	// Samples is the number of contour points decoded per proposal
	Samples int
	// ScoreThreshold is the minimum score required for a spatial location
	// to be considered for processing
	ScoreThreshold float32
	// NMSThreshold is the Non-Maximum Suppression threshold used for
	// defining the maximum allowed contour overlap (IoU) between two
	// proposals for both to be kept
	NMSThreshold float32
	// ClassAgnosticNMS suppresses overlapping proposals across class
	// boundaries instead of per class
	ClassAgnosticNMS bool
	// RefinementIterations is the exact number of refinement passes
	RefinementIterations int
	// RefinementBuckets is the number of angular partitions bounding a
	// refinement step
	RefinementBuckets int
	// RefinementRadius is the pixel radius searched around each point
	RefinementRadius int
	// MaxDetections is the maximum number of proposals returned
	MaxDetections int
}

// CPNParamsFromConfig derives post processing parameters from the shared
// configuration
func CPNParamsFromConfig(cfg cpn.Config) CPNParams {
	return CPNParams{
		Order:                cfg.Order,
		Samples:              cfg.Samples,
		ScoreThreshold:       cfg.ScoreThresh,
		NMSThreshold:         cfg.NMSThresh,
		ClassAgnosticNMS:     cfg.ClassAgnosticNMS,
		RefinementIterations: cfg.RefinementIterations,
		RefinementBuckets:    cfg.RefinementBuckets,
		RefinementRadius:     cfg.RefinementRadius,
		MaxDetections:        cfg.MaxDetections,
	}
}

// NewCPN returns an instance of the CPN post processor.  Parameters are
// validated here once
func NewCPN(p CPNParams) (*CPN, error) {

	cfg := cpn.Config{
		Order:                p.Order,
		Samples:              p.Samples,
		ScoreThresh:          p.ScoreThreshold,
		NMSThresh:            p.NMSThreshold,
		ClassAgnosticNMS:     p.ClassAgnosticNMS,
		RefinementIterations: p.RefinementIterations,
		RefinementBuckets:    p.RefinementBuckets,
		RefinementRadius:     p.RefinementRadius,
		MaxDetections:        p.MaxDetections,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &CPN{Params: p}, nil
}

// Proposal is one detected object instance, its boundary decoded from the
// Fourier descriptor predicted at a spatial location.  Proposals are
// created per inference call and discarded after it
type Proposal struct {
	// Class is the class channel with the highest score at the location
	Class int
	// Score is the confidence of the detection
	Score float32
	// Location is the spatial cell the proposal is anchored at
	Location cpn.Point
	// Descriptor is the predicted shape, translation free
	Descriptor fourier.Descriptor
	// Contour is the sampled boundary, descriptor-decoded at first and
	// replaced by the refined point set after refinement
	Contour cpn.Contour
	// index is the row-major cell index, the stable tie-break order
	index int
}

// DecodeProposals turns dense network output into proposals.  scores holds
// one channel per class, coeffs holds 2*Order coefficient channels, both on
// the same spatial grid.  Locations whose best class score does not exceed
// the score threshold are discarded before any decoding
func (c *CPN) DecodeProposals(scores, coeffs *cpn.Output) ([]Proposal, error) {

	if scores == nil || coeffs == nil {
		return nil, fmt.Errorf("%w: nil output", cpn.ErrShapeMismatch)
	}

	if coeffs.Channels != 2*c.Params.Order {
		return nil, fmt.Errorf("%w: coefficient output has %d channels, want %d for order %d",
			cpn.ErrShapeMismatch, coeffs.Channels, 2*c.Params.Order, c.Params.Order)
	}

	if scores.Height != coeffs.Height || scores.Width != coeffs.Width {
		return nil, fmt.Errorf("%w: score grid %dx%d does not match coefficient grid %dx%d",
			cpn.ErrShapeMismatch, scores.Width, scores.Height, coeffs.Width, coeffs.Height)
	}

	proposals := make([]Proposal, 0)

	for y := 0; y < scores.Height; y++ {
		for x := 0; x < scores.Width; x++ {

			classID := 0
			best := scores.At(0, y, x)

			for k := 1; k < scores.Channels; k++ {
				if v := scores.At(k, y, x); v > best {
					best = v
					classID = k
				}
			}

			if best <= c.Params.ScoreThreshold {
				continue
			}

			desc := make(fourier.Descriptor, c.Params.Order)

			for j := 0; j < c.Params.Order; j++ {
				desc[j] = complex(
					float64(coeffs.At(2*j, y, x)),
					float64(coeffs.At(2*j+1, y, x)),
				)
			}

			loc := cpn.Point{X: float64(x), Y: float64(y)}

			contour, err := fourier.FromDescriptor(desc, loc, c.Params.Samples)

			if err != nil {
				return nil, err
			}

			proposals = append(proposals, Proposal{
				Class:      classID,
				Score:      best,
				Location:   loc,
				Descriptor: desc,
				Contour:    contour,
				index:      y*scores.Width + x,
			})
		}
	}

	return proposals, nil
}

// DetectContours runs the full inference post processing pipeline,
// thresholded proposal decoding, non-maximum suppression and, when a
// scorer is supplied, iterative contour refinement
func (c *CPN) DetectContours(scores, coeffs *cpn.Output, s Scorer) ([]Proposal, error) {

	proposals, err := c.DecodeProposals(scores, coeffs)

	if err != nil {
		return nil, err
	}

	proposals = c.NMS(proposals)

	if s != nil {
		proposals = c.Refine(proposals, s)
	}

	return proposals, nil
}
