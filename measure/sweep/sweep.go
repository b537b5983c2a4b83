package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-winding/dsp/core"
	"github.com/cwbudde/algo-winding/dsp/phasor"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/cwbudde/algo-winding/dsp/spectrum"
)

// maxExactIndex is the largest step index that float64 still represents
// exactly; past it min + k*step no longer advances reliably.
const maxExactIndex = 1 << 53

// Errors returned by sweep functions.
var (
	ErrInvalidStep       = errors.New("sweep: step must be a finite value > 0")
	ErrInvalidFrequency  = errors.New("sweep: frequencies must be finite and >= 0")
	ErrInvalidResolution = errors.New("sweep: resolution must be > 0")
	ErrTooManySteps      = errors.New("sweep: step too small for the frequency range")
)

// Config is the frequency range of a sweep in Hz.
type Config struct {
	Min  float64 // first trial frequency
	Max  float64 // inclusive upper bound
	Step float64 // spacing, > 0
}

// Validate checks that the sweep terminates. A range with Min > Max is
// valid and yields no frequencies.
func (c Config) Validate() error {
	if c.Step <= 0 || !core.IsFinite(c.Step) {
		return fmt.Errorf("%w: %v", ErrInvalidStep, c.Step)
	}
	if c.Min < 0 || c.Max < 0 || !core.IsFinite(c.Min) || !core.IsFinite(c.Max) {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidFrequency, c.Min, c.Max)
	}
	if (c.Max-c.Min)/c.Step >= maxExactIndex {
		return fmt.Errorf("%w: (%v-%v)/%v", ErrTooManySteps, c.Max, c.Min, c.Step)
	}
	return nil
}

// StepForResolution returns the step that divides [min, max] into
// resolution intervals. The step stays positive when the range is empty or
// a single frequency, so such a sweep is valid and yields 0 or 1 entries.
func StepForResolution(min, max float64, resolution int) (float64, error) {
	if resolution <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}
	span := math.Abs(max - min)
	if span == 0 {
		return 1, nil
	}
	return span / float64(resolution), nil
}

// FrequencyAt returns the k-th trial frequency, min + k*step.
func (c Config) FrequencyAt(k int) float64 {
	return c.Min + float64(k)*c.Step
}

// Count returns the number of trial frequencies. It is 0 for an invalid
// config and for Min > Max.
func (c Config) Count() int {
	if c.Validate() != nil || c.Min > c.Max {
		return 0
	}
	n := int(math.Floor((c.Max-c.Min)/c.Step)) + 1
	for n > 0 && c.FrequencyAt(n-1) > c.Max {
		n--
	}
	for c.FrequencyAt(n) <= c.Max {
		n++
	}
	return n
}

// Step computes the k-th phasor of the sweep. It reports false when k is
// outside the sweep or cfg is invalid.
func Step(points []sample.Point, cfg Config, k int) (spectrum.Phasor, bool) {
	if k < 0 || k >= cfg.Count() {
		return spectrum.Phasor{}, false
	}
	f := cfg.FrequencyAt(k)
	return spectrum.Phasor{Frequency: f, Value: phasor.Estimate(points, f)}, true
}

// Run estimates every trial frequency of cfg in ascending order. An empty
// range returns an empty spectrum.
func Run(points []sample.Point, cfg Config) (spectrum.Spectrum, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.Count()
	if n == 0 {
		return spectrum.Spectrum{}, nil
	}
	out := make(spectrum.Spectrum, n)
	for k := range out {
		f := cfg.FrequencyAt(k)
		out[k] = spectrum.Phasor{Frequency: f, Value: phasor.Estimate(points, f)}
	}
	return out, nil
}
