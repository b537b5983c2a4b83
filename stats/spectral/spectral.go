// Package spectral computes shape descriptors of a swept spectrum.
//
// Unlike bin-indexed FFT statistics, every descriptor here reads the trial
// frequency from the spectrum entries, so any sweep range and step works.
package spectral

import (
	"math"

	"github.com/cwbudde/algo-winding/dsp/spectrum"
	"gonum.org/v1/gonum/floats"
)

// DefaultRolloff is the energy fraction used by Describe.
const DefaultRolloff = 0.85

// Shape holds spectral shape descriptors in Hz, except Flatness.
type Shape struct {
	Centroid     float64 `json:"centroid" yaml:"centroid"`
	Spread       float64 `json:"spread" yaml:"spread"`
	Flatness     float64 `json:"flatness" yaml:"flatness"`
	Rolloff      float64 `json:"rolloff" yaml:"rolloff"`
	Bandwidth3dB float64 `json:"bandwidth_3db" yaml:"bandwidth_3db"`
}

// Describe computes every descriptor of s. Fewer than two entries yield a
// zero Shape.
func Describe(s spectrum.Spectrum) Shape {
	if len(s) < 2 {
		return Shape{}
	}
	freqs := s.Frequencies()
	mags := s.Magnitudes()

	cent := Centroid(freqs, mags)
	return Shape{
		Centroid:     cent,
		Spread:       spread(freqs, mags, cent),
		Flatness:     Flatness(freqs, mags),
		Rolloff:      Rolloff(freqs, s.Powers(), DefaultRolloff),
		Bandwidth3dB: Bandwidth(freqs, mags),
	}
}

// Centroid returns the magnitude-weighted mean frequency.
func Centroid(freqs, mags []float64) float64 {
	total := floats.Sum(mags)
	if total == 0 {
		return 0
	}
	return floats.Dot(freqs, mags) / total
}

func spread(freqs, mags []float64, cent float64) float64 {
	total := floats.Sum(mags)
	if total == 0 {
		return 0
	}
	var acc float64
	for i, m := range mags {
		d := freqs[i] - cent
		acc += d * d * m
	}
	return math.Sqrt(acc / total)
}

// Flatness returns the ratio of geometric to arithmetic mean magnitude in
// 0..1. Entries at 0 Hz are skipped and any zero magnitude gives 0.
func Flatness(freqs, mags []float64) float64 {
	var sumLin, sumLog float64
	n := 0
	for i, m := range mags {
		if freqs[i] == 0 {
			continue
		}
		if m <= 0 {
			return 0
		}
		sumLin += m
		sumLog += math.Log(m)
		n++
	}
	if n == 0 || sumLin == 0 {
		return 0
	}
	return math.Exp(sumLog/float64(n)) / (sumLin / float64(n))
}

// Rolloff returns the first frequency at or below which fraction of the
// spectral energy lies. power holds re²+im² per entry.
func Rolloff(freqs, power []float64, fraction float64) float64 {
	if len(power) == 0 {
		return 0
	}
	total := floats.Sum(power)
	if total == 0 {
		return 0
	}
	threshold := fraction * total
	var cum float64
	for i, p := range power {
		cum += p
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// Bandwidth returns the width between the -3 dB points around the largest
// magnitude, interpolating linearly between entries. An edge of the sweep
// bounds the width when the magnitude never falls that far.
func Bandwidth(freqs, mags []float64) float64 {
	if len(mags) < 2 {
		return 0
	}
	peak := floats.MaxIdx(mags)
	if mags[peak] == 0 {
		return 0
	}
	threshold := mags[peak] / math.Sqrt2

	lo := freqs[0]
	for i := peak; i > 0; i-- {
		if mags[i-1] < threshold {
			lo = cross(freqs[i-1], freqs[i], mags[i-1], mags[i], threshold)
			break
		}
	}
	hi := freqs[len(freqs)-1]
	for i := peak; i < len(mags)-1; i++ {
		if mags[i+1] < threshold {
			hi = cross(freqs[i], freqs[i+1], mags[i], mags[i+1], threshold)
			break
		}
	}
	return hi - lo
}

func cross(f0, f1, m0, m1, level float64) float64 {
	if m1 == m0 {
		return f0
	}
	return f0 + (level-m0)/(m1-m0)*(f1-f0)
}
