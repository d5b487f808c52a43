// Package fourier converts closed contours to and from truncated Fourier
// series descriptors in the complex plane, and samples fixed-count point
// sets from either representation.
package fourier

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/celldet/go-cpn"
	gfourier "gonum.org/v1/gonum/dsp/fourier"
)

// Descriptor is a fixed-length sequence of complex harmonic coefficients
// approximating a closed contour.  Entry i holds the coefficient for
// frequency Freq(i), interleaving positive and negative harmonics as
// +1, -1, +2, -2, ...  The zero frequency (translation) term is never part
// of a Descriptor, it is carried separately as the instance location
type Descriptor []complex128

// Freq returns the harmonic frequency encoded at descriptor index i
func Freq(i int) int {

	k := i/2 + 1

	if i%2 == 1 {
		return -k
	}

	return k
}

// resampleSize returns the FFT input length used when encoding, a power of
// two large enough to resolve all requested harmonics
func resampleSize(order int) int {

	n := 256

	for n < 4*order {
		n *= 2
	}

	return n
}

// Encode converts a closed contour into order complex coefficients plus the
// contour's center (the zero frequency term of its arc-length uniform
// resampling).  Decoding the coefficients at the returned center
// approximates the input contour with error decreasing as order increases.
//
// Coefficients depend on the contour's starting point, see
// Descriptor.Normalize for the canonical phase alignment
func Encode(c cpn.Contour, order int) (Descriptor, cpn.Point, error) {

	if order <= 0 {
		return nil, cpn.Point{}, fmt.Errorf("%w: order must be positive, got %d",
			cpn.ErrInvalidConfig, order)
	}

	if len(c) == 0 {
		return nil, cpn.Point{}, fmt.Errorf("%w: cannot encode an empty contour",
			cpn.ErrShapeMismatch)
	}

	n := resampleSize(order)

	// parameterize by arc length so high curvature segments do not
	// dominate the spectrum
	pts, err := Sample(c, n)

	if err != nil {
		return nil, cpn.Point{}, err
	}

	seq := make([]complex128, n)

	for i, p := range pts {
		seq[i] = complex(p.X, p.Y)
	}

	fft := gfourier.NewCmplxFFT(n)
	coeff := fft.Coefficients(nil, seq)

	scale := complex(1/float64(n), 0)
	center := coeff[0] * scale

	desc := make(Descriptor, order)

	for i := range desc {
		f := Freq(i)
		desc[i] = coeff[(f+n)%n] * scale
	}

	return desc, cpn.Point{X: real(center), Y: imag(center)}, nil
}

// Decode evaluates the truncated Fourier series at samples points uniformly
// spaced in the curve parameter, producing a closed contour translated to
// the given location.  Decoding is deterministic, the same descriptor,
// location and sample count always yield the same points
func Decode(d Descriptor, at cpn.Point, samples int) (cpn.Contour, error) {

	if samples <= 0 {
		return nil, fmt.Errorf("%w: sample count must be positive, got %d",
			cpn.ErrInvalidConfig, samples)
	}

	if len(d) == 0 {
		return nil, fmt.Errorf("%w: cannot decode an empty descriptor",
			cpn.ErrShapeMismatch)
	}

	out := make(cpn.Contour, samples)
	origin := complex(at.X, at.Y)

	for m := 0; m < samples; m++ {

		t := float64(m) / float64(samples)
		z := origin

		for i, coeff := range d {
			f := float64(Freq(i))
			z += coeff * cmplx.Exp(complex(0, 2*math.Pi*f*t))
		}

		out[m] = cpn.Point{X: real(z), Y: imag(z)}
	}

	return out, nil
}

// Normalize returns a copy of the descriptor rotated to a canonical
// starting phase, making coefficients invariant to the starting point
// chosen during contour extraction.  The parameter origin is shifted so the
// first positive harmonic has zero phase
func (d Descriptor) Normalize() Descriptor {

	out := make(Descriptor, len(d))

	if len(d) == 0 {
		return out
	}

	phi := cmplx.Phase(d[0])

	for i, coeff := range d {
		f := float64(Freq(i))
		out[i] = coeff * cmplx.Exp(complex(0, -f*phi))
	}

	return out
}
