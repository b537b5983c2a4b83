// Package sweep drives the winding phasor estimator across an ascending
// range of trial frequencies and collects the results into a Spectrum.
//
// Frequencies are min, min+step, min+2*step, ... up to and including max.
// A non-positive step is rejected before anything is computed; a range with
// min > max is valid and sweeps nothing.
//
// # Usage
//
// Batch:
//
//	cfg := sweep.Config{Min: 1, Max: 100, Step: 1}
//	spec, err := sweep.Run(s.WithTime(), cfg)
//
// Step by step, for a host loop that redraws between frequencies:
//
//	sw, err := sweep.NewSweeper(s.WithTime(), cfg)
//	for {
//	    p, ok := sw.Next()
//	    if !ok {
//	        break
//	    }
//	    // draw p, sw.Spectrum(), ...
//	}
//
// Each step is independent of the others; a host aborts a sweep by no
// longer calling Next.
package sweep
