package signal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-winding/dsp/core"
)

// ErrInvalidTone is returned for a tone spec that cannot be parsed.
var ErrInvalidTone = errors.New("signal: invalid tone")

// Tone is one sinusoidal component: frequency in Hz and phase in degrees.
type Tone struct {
	Frequency float64
	Phase     float64
}

// String formats the tone as "frequency:phase".
func (t Tone) String() string {
	return strconv.FormatFloat(t.Frequency, 'g', -1, 64) + ":" + strconv.FormatFloat(t.Phase, 'g', -1, 64)
}

// ParseTone parses "frequency[:phase]". The phase defaults to 0.
func ParseTone(spec string) (Tone, error) {
	freqStr, phaseStr, hasPhase := strings.Cut(strings.TrimSpace(spec), ":")

	freq, err := strconv.ParseFloat(strings.TrimSpace(freqStr), 64)
	if err != nil || !core.IsFinite(freq) || freq < 0 {
		return Tone{}, fmt.Errorf("%w %q: bad frequency", ErrInvalidTone, spec)
	}

	tone := Tone{Frequency: freq}
	if hasPhase {
		phase, err := strconv.ParseFloat(strings.TrimSpace(phaseStr), 64)
		if err != nil || !core.IsFinite(phase) {
			return Tone{}, fmt.Errorf("%w %q: bad phase", ErrInvalidTone, spec)
		}
		tone.Phase = phase
	}
	return tone, nil
}

// ParseTones parses every spec and stops at the first error.
func ParseTones(specs []string) ([]Tone, error) {
	tones := make([]Tone, 0, len(specs))
	for _, spec := range specs {
		tone, err := ParseTone(spec)
		if err != nil {
			return nil, err
		}
		tones = append(tones, tone)
	}
	return tones, nil
}
