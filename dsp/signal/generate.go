package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-winding/dsp/core"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"gonum.org/v1/gonum/floats"
)

// Errors returned by generator functions.
var (
	ErrInvalidDuration  = errors.New("signal: duration must be > 0")
	ErrInvalidSamples   = errors.New("signal: samples must be > 0")
	ErrInvalidAmplitude = errors.New("signal: amplitude must be >= 0")
	ErrNoTones          = errors.New("signal: at least one tone is required")
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SampleCount returns the number of samples covering duration seconds.
func (g *Generator) SampleCount(duration float64) (int, error) {
	if duration <= 0 || !core.IsFinite(duration) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	if g.cfg.SampleRate <= 0 {
		return 0, fmt.Errorf("%w: %d", sample.ErrInvalidRate, g.cfg.SampleRate)
	}
	return int(math.Round(duration * float64(g.cfg.SampleRate))), nil
}

// Sine generates amplitude*sin(2*pi*f*t + phase) with phase in degrees.
func (g *Generator) Sine(freqHz, phaseDeg, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSamples, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", sample.ErrInvalidRate, g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / float64(g.cfg.SampleRate)
	rad := core.DegToRad(phaseDeg)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+rad)
	}
	return out, nil
}

// Tones mixes unit-amplitude sines, one per tone, over duration seconds.
func (g *Generator) Tones(duration float64, tones ...Tone) (sample.Sample, error) {
	if len(tones) == 0 {
		return sample.Sample{}, ErrNoTones
	}
	n, err := g.SampleCount(duration)
	if err != nil {
		return sample.Sample{}, err
	}
	if n == 0 {
		return sample.New(nil, g.cfg.SampleRate)
	}

	mix := make([]float64, n)
	for _, tone := range tones {
		s, err := g.Sine(tone.Frequency, tone.Phase, 1, n)
		if err != nil {
			return sample.Sample{}, err
		}
		vecmath.AddBlockInPlace(mix, s)
	}
	return sample.New(mix, g.cfg.SampleRate)
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSamples, samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidAmplitude, amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.cfg.Seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// AddNoise returns a copy of s with deterministic white noise mixed in.
// A zero amplitude or an empty sample returns s unchanged.
func (g *Generator) AddNoise(s sample.Sample, amplitude float64) (sample.Sample, error) {
	if amplitude < 0 {
		return sample.Sample{}, fmt.Errorf("%w: %f", ErrInvalidAmplitude, amplitude)
	}
	if amplitude == 0 || s.IsEmpty() {
		return s, nil
	}
	noise, err := g.WhiteNoise(amplitude, s.Len())
	if err != nil {
		return sample.Sample{}, err
	}
	vecmath.AddBlockInPlace(noise, s.Amplitudes)
	return sample.Sample{Amplitudes: noise, Rate: s.Rate}, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("%w: normalize target %f", ErrInvalidAmplitude, targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: normalize input is empty", ErrInvalidSamples)
	}

	maxAbs := floats.Norm(data, math.Inf(1))

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/maxAbs)
	return out, nil
}
