// Package level summarises the time-domain level of a sample: DC offset,
// RMS and peak level, crest factor and zero crossings.
package level

import (
	"math"

	"github.com/cwbudde/algo-winding/dsp/core"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the level statistics of one sample.
type Summary struct {
	Length        int     `json:"length" yaml:"length"`
	Seconds       float64 `json:"seconds" yaml:"seconds"`
	DC            float64 `json:"dc" yaml:"dc"`
	RMS           float64 `json:"rms" yaml:"rms"`
	Peak          float64 `json:"peak" yaml:"peak"`
	CrestFactor   float64 `json:"crest_factor" yaml:"crest_factor"`
	ZeroCrossings int     `json:"zero_crossings" yaml:"zero_crossings"`
}

// Summarize computes the summary of s. An empty sample yields a zero
// Summary.
func Summarize(s sample.Sample) Summary {
	x := s.Amplitudes
	if len(x) == 0 {
		return Summary{}
	}

	rms := floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
	peak := floats.Norm(x, math.Inf(1))

	sum := Summary{
		Length:        len(x),
		Seconds:       s.TimeSpan(),
		DC:            stat.Mean(x, nil),
		RMS:           rms,
		Peak:          peak,
		ZeroCrossings: ZeroCrossings(x),
	}
	if rms > 0 {
		sum.CrestFactor = peak / rms
	}
	return sum
}

// ZeroCrossings counts sign changes between neighbours. Exact zeros do not
// count as a crossing on either side.
func ZeroCrossings(x []float64) int {
	n := 0
	for i := 1; i < len(x); i++ {
		if x[i-1]*x[i] < 0 {
			n++
		}
	}
	return n
}

// RMSdB returns the RMS level in dBFS.
func (s Summary) RMSdB() float64 { return core.LinearToDB(s.RMS) }

// PeakdB returns the peak level in dBFS.
func (s Summary) PeakdB() float64 { return core.LinearToDB(s.Peak) }

// CrestFactordB returns the crest factor in dB, or 0 for silence.
func (s Summary) CrestFactordB() float64 {
	if s.CrestFactor == 0 {
		return 0
	}
	return core.LinearToDB(s.CrestFactor)
}

// CrossingRate returns half the zero crossings per second. For a single
// sine it approximates the frequency and is a quick upper bound for a
// sweep range.
func (s Summary) CrossingRate() float64 {
	if s.Seconds <= 0 {
		return 0
	}
	return float64(s.ZeroCrossings) / (2 * s.Seconds)
}
