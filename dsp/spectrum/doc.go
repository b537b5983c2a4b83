// Package spectrum defines the Phasor and Spectrum types produced by a
// frequency sweep, plus magnitude, power and phase views over them.
//
// A Phasor is the complex amplitude estimated for one trial frequency. A
// Spectrum is the ordered sequence of phasors in sweep order; peak indices
// always refer back into it.
package spectrum
