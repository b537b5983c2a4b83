package sample

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidRate is returned for a non-positive sample rate.
var ErrInvalidRate = errors.New("sample: rate must be > 0")

// Point is one amplitude at its time offset in seconds.
type Point struct {
	Time      float64
	Amplitude float64
}

// Sample is a single-channel amplitude series. Amplitudes are expected in
// [-1, 1] for decoded audio but any finite value is accepted.
type Sample struct {
	Amplitudes []float64
	Rate       int // samples per second
}

// New validates rate and wraps amplitudes without copying them.
func New(amplitudes []float64, rate int) (Sample, error) {
	s := Sample{Amplitudes: amplitudes, Rate: rate}
	if err := s.Validate(); err != nil {
		return Sample{}, err
	}
	return s, nil
}

// Validate reports whether the sample can be analysed.
func (s Sample) Validate() error {
	if s.Rate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, s.Rate)
	}
	return nil
}

// IsEmpty reports whether the sample has no amplitudes.
func (s Sample) IsEmpty() bool { return len(s.Amplitudes) == 0 }

// Len returns the number of amplitudes.
func (s Sample) Len() int { return len(s.Amplitudes) }

// MaxAmplitude returns the largest absolute amplitude, or 0 when empty.
func (s Sample) MaxAmplitude() float64 {
	if s.IsEmpty() {
		return 0
	}
	return floats.Norm(s.Amplitudes, math.Inf(1))
}

// TimeSpan returns the duration covered by the sample in seconds.
func (s Sample) TimeSpan() float64 {
	if s.Rate <= 0 {
		return 0
	}
	return float64(len(s.Amplitudes)) / float64(s.Rate)
}

// At returns the point for index i. i must be in [0, Len()).
func (s Sample) At(i int) Point {
	return Point{
		Time:      float64(i) / float64(s.Rate),
		Amplitude: s.Amplitudes[i],
	}
}

// WithTime maps every index i to (i/rate, amplitude[i]).
func (s Sample) WithTime() []Point {
	return s.WithTimeResolution(0)
}

// WithTimeResolution returns roughly points evenly strided entries for
// display. points <= 0 returns every index. The estimator never uses the
// strided form.
func (s Sample) WithTimeResolution(points int) []Point {
	if s.IsEmpty() || s.Rate <= 0 {
		return nil
	}

	stride := strideFor(len(s.Amplitudes), points)
	out := make([]Point, 0, (len(s.Amplitudes)+stride-1)/stride)
	for i := 0; i < len(s.Amplitudes); i += stride {
		out = append(out, s.At(i))
	}
	return out
}

// Stride thins an existing series, such as the output of Simplify, the
// same way WithTimeResolution thins a sample. points <= 0 or a series no
// longer than points returns pts unchanged.
func Stride(pts []Point, points int) []Point {
	stride := strideFor(len(pts), points)
	if stride == 1 {
		return pts
	}
	out := make([]Point, 0, (len(pts)+stride-1)/stride)
	for i := 0; i < len(pts); i += stride {
		out = append(out, pts[i])
	}
	return out
}

func strideFor(n, points int) int {
	if points > 0 && n > points {
		return n / points
	}
	return 1
}
