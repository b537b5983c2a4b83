package spectral

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/cwbudde/algo-winding/dsp/spectrum"
	"github.com/cwbudde/algo-winding/internal/testutil"
	"github.com/cwbudde/algo-winding/measure/sweep"
)

func TestDescriptorsTriangle(t *testing.T) {
	freqs := []float64{1, 2, 3, 4, 5}
	mags := []float64{0, 1, 2, 1, 0}

	testutil.RequireNearlyEqual(t, "Centroid", Centroid(freqs, mags), 3, 1e-12)
	testutil.RequireNearlyEqual(t, "spread", spread(freqs, mags, 3), math.Sqrt(0.5), 1e-12)
	testutil.RequireNearlyEqual(t, "Flatness", Flatness(freqs, mags), 0, 0)
	testutil.RequireNearlyEqual(t, "Rolloff", Rolloff(freqs, []float64{0, 1, 4, 1, 0}, 0.85), 4, 0)
	testutil.RequireNearlyEqual(t, "Bandwidth", Bandwidth(freqs, mags), 2*(2-math.Sqrt2), 1e-12)
}

func TestDescriptorsFlat(t *testing.T) {
	freqs := []float64{0, 1, 2, 3, 4}
	mags := []float64{5, 1, 1, 1, 1}

	testutil.RequireNearlyEqual(t, "Flatness", Flatness(freqs, mags), 1, 1e-12)
	testutil.RequireNearlyEqual(t, "Bandwidth", Bandwidth(freqs[1:], mags[1:]), 3, 0)
}

func TestRolloffWeighsPower(t *testing.T) {
	// Magnitudes 1 and 2 carry energy 1 and 4, so 30% of the energy is
	// reached only at the second entry. Weighing magnitudes would stop at
	// the first.
	freqs := []float64{10, 20}
	testutil.RequireNearlyEqual(t, "Rolloff", Rolloff(freqs, []float64{1, 4}, 0.3), 20, 0)

	spec := spectrum.Spectrum{{Frequency: 10, Value: 1}, {Frequency: 20, Value: 2i}}
	testutil.RequireNearlyEqual(t, "Describe.Rolloff", Describe(spec).Rolloff, Rolloff(freqs, spec.Powers(), DefaultRolloff), 0)
	testutil.RequireNearlyEqual(t, "Describe.Rolloff", Describe(spec).Rolloff, 20, 0)
}

func TestDescribeSweep(t *testing.T) {
	s := sample.Sample{Amplitudes: testutil.DeterministicSine(5, 0, 200, 1, 200), Rate: 200}
	spec, err := sweep.Run(s.WithTime(), sweep.Config{Min: 1, Max: 10, Step: 0.25})
	if err != nil {
		t.Fatal(err)
	}

	shape := Describe(spec)
	testutil.RequireNearlyEqual(t, "Centroid", shape.Centroid, 5, 0.5)
	if shape.Bandwidth3dB <= 0 || shape.Bandwidth3dB > 2 {
		t.Fatalf("Bandwidth3dB = %v, want a narrow lobe", shape.Bandwidth3dB)
	}
	if shape.Rolloff < 5 || shape.Rolloff > 10 {
		t.Fatalf("Rolloff = %v", shape.Rolloff)
	}
	if shape.Flatness < 0 || shape.Flatness >= 1 {
		t.Fatalf("Flatness = %v, want inside [0, 1)", shape.Flatness)
	}
}

func TestDescribeDegenerate(t *testing.T) {
	if got := Describe(nil); got != (Shape{}) {
		t.Fatalf("Describe(nil) = %+v", got)
	}
	one := spectrum.Spectrum{{Frequency: 1, Value: 1}}
	if got := Describe(one); got != (Shape{}) {
		t.Fatalf("Describe(one) = %+v", got)
	}
	silent := spectrum.Spectrum{{Frequency: 1}, {Frequency: 2}}
	if got := Describe(silent); got != (Shape{}) {
		t.Fatalf("Describe(silent) = %+v", got)
	}
}
