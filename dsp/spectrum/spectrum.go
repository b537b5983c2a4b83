package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-winding/dsp/core"
	"gonum.org/v1/gonum/floats"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Spectrum is an ordered sequence of phasors, indexed by sweep order.
type Spectrum []Phasor

// Frequencies returns the frequency of every entry.
func (s Spectrum) Frequencies() []float64 {
	if len(s) == 0 {
		return nil
	}
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Frequency
	}
	return out
}

// Values returns the complex value of every entry.
func (s Spectrum) Values() []complex128 {
	if len(s) == 0 {
		return nil
	}
	out := make([]complex128, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

func (s Spectrum) parts() (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(s))
	for i, p := range s {
		re[i] = real(p.Value)
		im[i] = imag(p.Value)
	}
	return re, im, buf
}

// Magnitudes returns |value| for every entry.
//
// Uses the SIMD kernels of algo-vecmath when available. Scratch buffers are
// pooled, so in steady state this allocates only the output slice.
func (s Spectrum) Magnitudes() []float64 {
	if len(s) == 0 {
		return nil
	}
	out := make([]float64, len(s))
	re, im, buf := s.parts()
	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Powers returns re²+im² for every entry.
func (s Spectrum) Powers() []float64 {
	if len(s) == 0 {
		return nil
	}
	out := make([]float64, len(s))
	re, im, buf := s.parts()
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Phases returns atan2(im, re) in radians for every entry.
func (s Spectrum) Phases() []float64 {
	if len(s) == 0 {
		return nil
	}
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Phase()
	}
	return out
}

// PhasesDegrees returns the phase of every entry in degrees.
func (s Spectrum) PhasesDegrees() []float64 {
	out := s.Phases()
	for i := range out {
		out[i] = core.RadToDeg(out[i])
	}
	return out
}

// MaxMagnitude returns the index and magnitude of the strongest entry.
// It returns (-1, 0) for an empty spectrum.
func (s Spectrum) MaxMagnitude() (int, float64) {
	if len(s) == 0 {
		return -1, 0
	}
	mag := s.Magnitudes()
	i := floats.MaxIdx(mag)
	return i, mag[i]
}

// UnwrapPhase returns a new phase slice in which every step between
// neighbours is reduced to [-pi, pi], so the phase of a swept spectrum reads
// as a continuous curve.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	for i := 1; i < len(phase); i++ {
		out[i] = out[i-1] + math.Remainder(phase[i]-phase[i-1], 2*math.Pi)
	}
	return out
}
