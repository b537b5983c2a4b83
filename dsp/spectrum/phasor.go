package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-winding/dsp/core"
)

// Phasor is the estimated complex amplitude of a signal at Frequency (Hz).
type Phasor struct {
	Frequency float64
	Value     complex128
}

// Magnitude returns |Value|.
func (p Phasor) Magnitude() float64 { return cmplx.Abs(p.Value) }

// Power returns re²+im² without taking a square root.
func (p Phasor) Power() float64 {
	re, im := real(p.Value), imag(p.Value)
	return re*re + im*im
}

// Phase returns atan2(im, re) in radians.
func (p Phasor) Phase() float64 { return math.Atan2(imag(p.Value), real(p.Value)) }

// PhaseDegrees returns the phase in degrees, in [-180, 180].
func (p Phasor) PhaseDegrees() float64 { return core.RadToDeg(p.Phase()) }
