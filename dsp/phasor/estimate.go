package phasor

import (
	"math"

	"github.com/cwbudde/algo-winding/dsp/sample"
)

// wind rotates amplitude a by the angle 2*pi*f*t.
func wind(p sample.Point, omega float64) complex128 {
	sin, cos := math.Sincos(omega * p.Time)
	return complex(p.Amplitude*sin, p.Amplitude*cos)
}

// Wind returns the wound coordinate of every point at frequency. It is the
// picture the estimate averages and is meant for display.
func Wind(points []sample.Point, frequency float64) []complex128 {
	if len(points) == 0 {
		return nil
	}
	omega := 2 * math.Pi * frequency
	out := make([]complex128, len(points))
	for i, p := range points {
		out[i] = wind(p, omega)
	}
	return out
}

// Estimate returns the phasor of frequency in points. An empty input yields
// 0. Frequency 0 is valid and maps every amplitude onto one axis.
func Estimate(points []sample.Point, frequency float64) complex128 {
	omega := 2 * math.Pi * frequency
	var m Mean
	for _, p := range points {
		m = m.Add(wind(p, omega))
	}
	return m.Value()
}

// EstimateSample estimates frequency over every point of s.
func EstimateSample(s sample.Sample, frequency float64) complex128 {
	if s.IsEmpty() || s.Rate <= 0 {
		return 0
	}
	omega := 2 * math.Pi * frequency
	var m Mean
	for i := range s.Amplitudes {
		m = m.Add(wind(s.At(i), omega))
	}
	return m.Value()
}
