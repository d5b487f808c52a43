package postprocess

import (
	"errors"
	"math"
	"testing"

	"github.com/celldet/go-cpn"
)

func TestNewCPNValidates(t *testing.T) {

	p := CPNParams{
		Order:                0,
		Samples:              16,
		ScoreThreshold:       0.5,
		NMSThreshold:         0.5,
		RefinementIterations: 1,
		RefinementBuckets:    4,
		RefinementRadius:     2,
		MaxDetections:        10,
	}

	if _, err := NewCPN(p); !errors.Is(err, cpn.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestDecodeProposalsCoefficientShapeCheck(t *testing.T) {

	c := testCPN(t, 0.5) // order 4 wants 8 coefficient channels

	scores, _ := cpn.NewOutput(make([]float32, 16), 1, 4, 4)
	coeffs, _ := cpn.NewOutput(make([]float32, 6*16), 6, 4, 4)

	if _, err := c.DecodeProposals(scores, coeffs); !errors.Is(err, cpn.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestDecodeProposalsGridMismatch(t *testing.T) {

	c := testCPN(t, 0.5)

	scores, _ := cpn.NewOutput(make([]float32, 16), 1, 4, 4)
	coeffs, _ := cpn.NewOutput(make([]float32, 8*25), 8, 5, 5)

	if _, err := c.DecodeProposals(scores, coeffs); !errors.Is(err, cpn.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestDecodeProposalsThresholdAndDecode(t *testing.T) {

	c := testCPN(t, 0.5) // order 4, 16 samples, score threshold 0.5

	const w, h = 4, 4

	scoreBuf := make([]float32, w*h)
	scoreBuf[1*w+2] = 0.9  // cell (x=2, y=1), above threshold
	scoreBuf[3*w+3] = 0.5  // exactly at threshold, must be discarded
	scoreBuf[2*w+0] = 0.49 // below threshold

	coeffBuf := make([]float32, 8*w*h)
	// first harmonic (re,im) = (2,0) at cell (2,1): a circle of radius 2
	coeffBuf[0*w*h+1*w+2] = 2

	scores, _ := cpn.NewOutput(scoreBuf, 1, h, w)
	coeffs, _ := cpn.NewOutput(coeffBuf, 8, h, w)

	got, err := c.DecodeProposals(scores, coeffs)

	if err != nil {
		t.Fatalf("DecodeProposals: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got %d proposals, want 1", len(got))
	}

	p := got[0]

	if p.Class != 0 || p.Score != 0.9 {
		t.Errorf("proposal class/score = %d/%f, want 0/0.9", p.Class, p.Score)
	}

	if p.Location.X != 2 || p.Location.Y != 1 {
		t.Errorf("proposal location = %+v, want (2,1)", p.Location)
	}

	if len(p.Contour) != 16 {
		t.Fatalf("contour has %d points, want 16", len(p.Contour))
	}

	for i, q := range p.Contour {
		d := math.Hypot(q.X-2, q.Y-1)
		if math.Abs(d-2) > 1e-6 {
			t.Errorf("contour point %d at radius %f from the anchor, want 2", i, d)
		}
	}
}

func TestDecodeProposalsMultiClass(t *testing.T) {

	c := testCPN(t, 0.5)

	const w, h = 2, 2

	// two classes, class 1 wins at cell (0,0)
	scoreBuf := make([]float32, 2*w*h)
	scoreBuf[0*w*h+0] = 0.6
	scoreBuf[1*w*h+0] = 0.8

	coeffBuf := make([]float32, 8*w*h)
	coeffBuf[0*w*h+0] = 1

	scores, _ := cpn.NewOutput(scoreBuf, 2, h, w)
	coeffs, _ := cpn.NewOutput(coeffBuf, 8, h, w)

	got, err := c.DecodeProposals(scores, coeffs)

	if err != nil {
		t.Fatalf("DecodeProposals: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got %d proposals, want 1", len(got))
	}

	if got[0].Class != 1 || got[0].Score != 0.8 {
		t.Errorf("proposal class/score = %d/%f, want 1/0.8", got[0].Class, got[0].Score)
	}
}

func TestDetectContoursPipeline(t *testing.T) {

	c := testCPN(t, 0.5)

	const w, h = 8, 8

	scoreBuf := make([]float32, w*h)
	scoreBuf[3*w+3] = 0.9
	scoreBuf[3*w+4] = 0.8 // overlapping neighbor, suppressed

	coeffBuf := make([]float32, 8*w*h)
	coeffBuf[0*w*h+3*w+3] = 3
	coeffBuf[0*w*h+3*w+4] = 3

	scores, _ := cpn.NewOutput(scoreBuf, 1, h, w)
	coeffs, _ := cpn.NewOutput(coeffBuf, 8, h, w)

	sm, _ := NewScoreMap(make([]float32, w*h), w, h)

	got, err := c.DetectContours(scores, coeffs, sm)

	if err != nil {
		t.Fatalf("DetectContours: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got %d detections, want 1 after suppression", len(got))
	}

	if got[0].Score != 0.9 {
		t.Errorf("survivor score = %f, want 0.9", got[0].Score)
	}
}
