package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(250, 0, 1000, 1.0, 8)
	if len(s) != 8 {
		t.Fatalf("len = %d, want 8", len(s))
	}
	want := []float64{0, 1, 0, -1}
	for i, w := range want {
		if math.Abs(s[i]-w) > 1e-12 {
			t.Fatalf("s[%d] = %v, want %v", i, s[i], w)
		}
	}
}

func TestDeterministicSinePhase(t *testing.T) {
	s := DeterministicSine(5, 90, 1000, 0.5, 1)
	if math.Abs(s[0]-0.5) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0.5 for a 90 degree phase", s[0])
	}
}

func TestMix(t *testing.T) {
	got := Mix([]float64{1, 2}, []float64{0.5, -2}, []float64{0, 1})
	if got[0] != 1.5 || got[1] != 1 {
		t.Fatalf("Mix() = %v, want [1.5 1]", got)
	}
	if Mix() != nil {
		t.Fatal("Mix() of nothing should be nil")
	}
}

func TestMixLongSignals(t *testing.T) {
	a := DeterministicSine(5, 0, 100, 1, 37)
	b := DeterministicNoise(3, 0.5, 37)
	got := Mix(a, b, DC(0.25, 37))
	for i := range got {
		if want := a[i] + b[i] + 0.25; math.Abs(got[i]-want) > 1e-15 {
			t.Fatalf("Mix()[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("noise[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}
