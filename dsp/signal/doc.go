// Package signal generates synthetic test signals for the winding analyser:
// mixtures of phase-shifted unit sines described as "frequency:phase" tones,
// plus deterministic white noise.
package signal
