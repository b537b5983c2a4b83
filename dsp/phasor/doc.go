// Package phasor estimates the complex amplitude of one trial frequency in a
// sampled signal by direct summation ("winding").
//
// Each point (t, a) is wound around the origin at angular rate 2*pi*f and
// the mean of the wound points is the phasor:
//
//	re = a * sin(2*pi*f*t)
//	im = a * cos(2*pi*f*t)
//
// With this orientation a unit sine sin(2*pi*f*t + phi) estimated at its own
// frequency over whole periods yields 0.5 * e^(i*phi): magnitude 0.5 and the
// generating phase. Frequencies that do not complete whole periods in the
// window leak into neighbouring estimates; no window function is applied.
//
// The mean is accumulated in a single streaming pass through [Mean], so a
// host can interleave estimation with display without buffering the wound
// points.
package phasor
