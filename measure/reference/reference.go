// Package reference computes FFT-based phasors for cross-checking the
// winding estimator at bin-aligned frequencies.
//
// For a length-N block and bin k at f = k*rate/N the winding estimate
// equals i*X[k]/N, where X is the forward DFT. The two agree only on those
// bin frequencies; between bins the FFT has no value to compare against.
//
// Bins runs a planned radix-2 transform over the largest power-of-two
// prefix. FullBins transforms the whole sample at any length, so its bins
// sit at multiples of 1/duration.
package reference

import (
	"errors"
	"fmt"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/cwbudde/algo-winding/dsp/spectrum"
	"github.com/mjibson/go-dsp/fft"
)

// ErrTooShort is returned when the sample holds fewer than two amplitudes.
var ErrTooShort = errors.New("reference: sample needs at least 2 amplitudes")

// BlockSize returns the largest power of two not exceeding n, or 0.
func BlockSize(n int) int {
	if n <= 0 {
		return 0
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

// Bins transforms the largest power-of-two prefix of s and returns the
// non-negative frequency bins [0, N/2] as phasors in winding orientation.
func Bins(s sample.Sample) (spectrum.Spectrum, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	n := BlockSize(s.Len())
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooShort, s.Len())
	}

	in := make([]complex128, n)
	for i := range in {
		in[i] = complex(s.Amplitudes[i], 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("reference: fft plan for %d points: %w", n, err)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("reference: forward fft: %w", err)
	}

	return toPhasors(out, n, s.Rate), nil
}

// FullBins transforms every amplitude of s, whatever its length, and
// returns bins [0, N/2] in winding orientation.
func FullBins(s sample.Sample) (spectrum.Spectrum, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	n := s.Len()
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooShort, n)
	}
	return toPhasors(fft.FFTReal(s.Amplitudes), n, s.Rate), nil
}

// For returns Bins when the length of s is a power of two and FullBins
// otherwise.
func For(s sample.Sample) (spectrum.Spectrum, error) {
	if n := s.Len(); n >= 2 && BlockSize(n) == n {
		return Bins(s)
	}
	return FullBins(s)
}

// toPhasors scales the non-negative half of a length-n DFT by i/n.
func toPhasors(out []complex128, n, rate int) spectrum.Spectrum {
	scale := complex(0, 1/float64(n))
	binHz := float64(rate) / float64(n)
	bins := make(spectrum.Spectrum, n/2+1)
	for k := range bins {
		bins[k] = spectrum.Phasor{
			Frequency: float64(k) * binHz,
			Value:     out[k] * scale,
		}
	}
	return bins
}

// Nearest returns the bin closest to frequency. bins must be ascending and
// evenly spaced as returned by Bins.
func Nearest(bins spectrum.Spectrum, frequency float64) (spectrum.Phasor, bool) {
	if len(bins) < 2 || frequency < 0 {
		return spectrum.Phasor{}, false
	}
	binHz := bins[1].Frequency - bins[0].Frequency
	k := int(frequency/binHz + 0.5)
	if k >= len(bins) {
		return spectrum.Phasor{}, false
	}
	return bins[k], true
}
