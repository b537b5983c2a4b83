package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-winding/dsp/core"
)

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("%s = %v, want %v (diff %v > eps %v)", name, got, want, math.Abs(got-want), eps)
	}
}

// RequireComplexNearlyEqual fails t if |got-want| exceeds eps.
func RequireComplexNearlyEqual(t *testing.T, name string, got, want complex128, eps float64) {
	t.Helper()
	if d := cmplx.Abs(got - want); d > eps {
		t.Fatalf("%s = %v, want %v (|diff| %v > eps %v)", name, got, want, d, eps)
	}
}

// RequirePhaseDeg fails t if the angle gotDeg is not within epsDeg of
// wantDeg, comparing on the circle so that -180 and 180 agree.
func RequirePhaseDeg(t *testing.T, name string, gotDeg, wantDeg, epsDeg float64) {
	t.Helper()
	d := core.AngleDiffDeg(gotDeg, wantDeg)
	if math.Abs(d) > epsDeg {
		t.Fatalf("%s = %v°, want %v° (diff %v° > eps %v°)", name, gotDeg, wantDeg, d, epsDeg)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireIntsEqual fails t unless got and want hold the same indices.
func RequireIntsEqual(t *testing.T, name string, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", name, got, want)
		}
	}
}

// PhaseDeg returns the argument of c in degrees.
func PhaseDeg(c complex128) float64 {
	return core.RadToDeg(cmplx.Phase(c))
}
