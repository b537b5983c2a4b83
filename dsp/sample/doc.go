// Package sample holds the time-domain signal that the winding estimator
// analyses: a single-channel amplitude series and its sampling rate.
//
// A Sample is read-only once built. Its views ([Sample.WithTime],
// [Sample.Simplify]) produce (time, amplitude) points, which is the form the
// phasor estimator consumes. [Sample.Simplify] keeps only envelope turning
// points and trades accuracy for a much cheaper per-frequency estimate.
package sample
