package targets

import (
	"fmt"
	"log"

	"github.com/celldet/go-cpn"
	"github.com/celldet/go-cpn/fourier"
)

// Bundle is the full per-sample supervision output of the Generator.  The
// Locations, Fourier, SampledContours and Sampling sequences are in 1:1
// correspondence with the surviving instances of the input label map, in
// the order their ids are first encountered during extraction
type Bundle struct {
	// Ids are the surviving instance ids, the index into the other
	// sequences for a given instance
	Ids []int
	// Classes are the class ids per instance, zero when no class map
	// was supplied
	Classes []int
	// Locations are the extraction anchors, one per instance.  A location
	// is the zero frequency (translation) term the descriptor omits
	Locations []cpn.Point
	// Fourier are the shape descriptors, one per instance
	Fourier []fourier.Descriptor
	// SampledContours are the descriptor reconstructions sampled at the
	// configured count, the point-correspondence supervision target
	SampledContours []cpn.Contour
	// Sampling are drawn directly from the raw extracted boundaries at
	// the same count, a secondary correspondence set independent of
	// descriptor fidelity
	Sampling []cpn.Contour
	// ReducedLabels is the dense foreground/background/ignore target
	ReducedLabels *ReducedLabels
}

// Generator converts one label map into a Bundle.  It is a pure function
// of its input and immutable configuration, calling it twice on the same
// map yields identical output, and distinct Generators share no state so
// target generation parallelizes across workers without synchronization
type Generator struct {
	cfg cpn.Config
}

// NewGenerator returns a Generator for the given configuration.  The
// configuration is validated here once, never per call
func NewGenerator(cfg cpn.Config) (*Generator, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Generator{cfg: cfg}, nil
}

// Config returns the immutable configuration the Generator was built with
func (g *Generator) Config() cpn.Config {
	return g.cfg
}

// Generate produces the supervision bundle for one label map.  A map with
// zero instances yields empty but valid sequences.  Per-instance
// degeneracies are absorbed (the instance is skipped and logged) so one
// malformed annotation never fails the sample
func (g *Generator) Generate(m *cpn.LabelMap) (*Bundle, error) {
	return g.GenerateWithClasses(m, nil)
}

// GenerateWithClasses is Generate with an optional map from instance id to
// class id.  Instances missing from the map get class zero
func (g *Generator) GenerateWithClasses(m *cpn.LabelMap, classes map[int]int) (*Bundle, error) {

	if m == nil || m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("%w: label map has no spatial dimensions",
			cpn.ErrShapeMismatch)
	}

	if len(m.Pix) != m.Width*m.Height {
		return nil, fmt.Errorf("%w: label buffer has %d values, want %d",
			cpn.ErrShapeMismatch, len(m.Pix), m.Width*m.Height)
	}

	if (g.cfg.Width > 0 && m.Width != g.cfg.Width) ||
		(g.cfg.Height > 0 && m.Height != g.cfg.Height) {
		return nil, fmt.Errorf("%w: label map is %dx%d, configured for %dx%d",
			cpn.ErrShapeMismatch, m.Width, m.Height, g.cfg.Width, g.cfg.Height)
	}

	instances := extractInstances(m, g.cfg.MinArea)

	b := &Bundle{
		Ids:             make([]int, 0, len(instances)),
		Classes:         make([]int, 0, len(instances)),
		Locations:       make([]cpn.Point, 0, len(instances)),
		Fourier:         make([]fourier.Descriptor, 0, len(instances)),
		SampledContours: make([]cpn.Contour, 0, len(instances)),
		Sampling:        make([]cpn.Contour, 0, len(instances)),
	}

	for _, inst := range instances {

		desc, loc, err := fourier.Encode(inst.contour, g.cfg.Order)

		if err != nil {
			log.Printf("dropping instance %d: %v", inst.id, err)
			continue
		}

		sampled, err := fourier.FromDescriptor(desc, loc, g.cfg.Samples)

		if err != nil {
			return nil, err
		}

		raw, err := fourier.Sample(inst.contour, g.cfg.Samples)

		if err != nil {
			return nil, err
		}

		b.Ids = append(b.Ids, inst.id)
		b.Classes = append(b.Classes, classes[inst.id])
		b.Locations = append(b.Locations, loc)
		b.Fourier = append(b.Fourier, desc)
		b.SampledContours = append(b.SampledContours, sampled)
		b.Sampling = append(b.Sampling, raw)
	}

	b.ReducedLabels = reduceLabels(m, g.cfg.MinFGDist, g.cfg.MaxBGDist)

	return b, nil
}
