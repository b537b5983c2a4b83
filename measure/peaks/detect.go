package peaks

import "github.com/cwbudde/algo-winding/dsp/spectrum"

// WindowSize is the number of consecutive entries DetectPeak compares.
const WindowSize = 3

// DetectPeak returns the index in window with the largest power. Scanning
// left to right, the incumbent is replaced unless it is strictly larger, so
// ties select the later index.
func DetectPeak(window [WindowSize]spectrum.Phasor) int {
	best := 0
	bestPower := window[0].Power()
	for i := 1; i < WindowSize; i++ {
		p := window[i].Power()
		if bestPower > p {
			continue
		}
		best, bestPower = i, p
	}
	return best
}

// isPeak reports whether the entry before end-1 is a local peak, using the
// window s[end-3:end].
func isPeak(s spectrum.Spectrum, end int) bool {
	var w [WindowSize]spectrum.Phasor
	copy(w[:], s[end-WindowSize:end])
	return DetectPeak(w) == 1
}

// Detect slides the detection window over a complete spectrum and returns
// the absolute index of every local peak in ascending order.
func Detect(s spectrum.Spectrum) []int {
	var out []int
	for end := WindowSize; end <= len(s); end++ {
		if isPeak(s, end) {
			out = append(out, end-WindowSize+1)
		}
	}
	return out
}

// Tracker detects peaks while a spectrum grows one entry at a time.
type Tracker struct {
	seen  int
	peaks []int
}

// Observe inspects the newest window of s, which must have grown by exactly
// one entry since the previous call. It returns the absolute peak index and
// true when the middle of that window is a peak.
func (t *Tracker) Observe(s spectrum.Spectrum) (int, bool) {
	t.seen = len(s)
	if len(s) < WindowSize || !isPeak(s, len(s)) {
		return 0, false
	}
	idx := len(s) - WindowSize + 1
	t.peaks = append(t.peaks, idx)
	return idx, true
}

// Peaks returns the raw peak indices recorded so far.
func (t *Tracker) Peaks() []int { return t.peaks }

// Seen returns the spectrum length at the last Observe.
func (t *Tracker) Seen() int { return t.seen }

// Reset forgets every recorded peak.
func (t *Tracker) Reset() {
	t.seen = 0
	t.peaks = nil
}
