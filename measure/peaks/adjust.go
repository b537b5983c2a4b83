package peaks

import "github.com/cwbudde/algo-winding/dsp/spectrum"

// significanceDivisor sets the cut-off at one third of the strongest peak.
const significanceDivisor = 3

type adjustConfig struct {
	centered bool
}

// AdjustOption configures Adjust.
type AdjustOption func(*adjustConfig)

// WithCenteredPlateaus relocates a plateau peak to p0 + floor((p1-p0)/2)
// instead of p1.
func WithCenteredPlateaus() AdjustOption {
	return func(cfg *adjustConfig) {
		cfg.centered = true
	}
}

type candidate struct {
	magnitude float64
	index     int
}

// Adjust merges plateaus, drops insignificant peaks and collapses adjacent
// duplicates. raw must hold valid indices into s. Results past the end of
// s, from a plateau that reaches the last entry, are clamped to len(s)-1.
func Adjust(s spectrum.Spectrum, raw []int, opts ...AdjustOption) []int {
	if len(raw) == 0 || len(s) == 0 {
		return nil
	}

	var cfg adjustConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	mag := s.Magnitudes()

	candidates := make([]candidate, len(raw))
	maxMag := 0.0
	for i, p0 := range raw {
		p1 := p0 + 1
		for p1 < len(mag) && mag[p1] == mag[p0] {
			p1++
		}

		// p0 + floor(p1-p0) reduces to p1 for integer indices.
		idx := p0 + (p1 - p0)
		if cfg.centered {
			idx = p0 + (p1-p0)/2
		}
		if idx > len(s)-1 {
			idx = len(s) - 1
		}

		candidates[i] = candidate{magnitude: mag[p0], index: idx}
		maxMag = max(maxMag, mag[p0])
	}

	threshold := maxMag / significanceDivisor
	out := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if !(c.magnitude > threshold) {
			continue
		}
		if n := len(out); n > 0 && out[n-1] == c.index {
			continue
		}
		out = append(out, c.index)
	}
	return out
}

// Find detects and adjusts the peaks of a complete spectrum.
func Find(s spectrum.Spectrum, opts ...AdjustOption) []int {
	return Adjust(s, Detect(s), opts...)
}
