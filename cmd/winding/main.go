// Command winding finds the dominant frequencies of a signal by winding it
// around the origin at every trial frequency of a sweep.
//
// Usage:
//
//	winding analyze [flags]
//	winding version
//
// Examples:
//
//	winding analyze --freqs 5:90,60 --t 2
//	winding analyze --file take.wav --min 20 --max 2000 --resolution 400
//	winding analyze --freqs 5,20:45 --interactive --centered-peaks
//	winding analyze --freqs 440 --max 1000 --compare-fft --output json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
