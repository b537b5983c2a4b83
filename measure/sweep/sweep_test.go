package sweep

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-winding/dsp/phasor"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/cwbudde/algo-winding/internal/testutil"
)

func toneSample(freq, phase float64) sample.Sample {
	return sample.Sample{Amplitudes: testutil.DeterministicSine(freq, phase, 1000, 1, 1000), Rate: 1000}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid", Config{1, 100, 1}, nil},
		{"single frequency", Config{5, 5, 1}, nil},
		{"zero step", Config{1, 100, 0}, ErrInvalidStep},
		{"negative step", Config{1, 100, -1}, ErrInvalidStep},
		{"NaN step", Config{1, 100, math.NaN()}, ErrInvalidStep},
		{"Inf step", Config{1, 100, math.Inf(1)}, ErrInvalidStep},
		{"negative min", Config{-1, 100, 1}, ErrInvalidFrequency},
		{"Inf max", Config{1, math.Inf(1), 1}, ErrInvalidFrequency},
		{"min > max", Config{100, 1, 1}, nil},
		{"fine step", Config{0, 20000, 0.001}, nil},
		{"wide range", Config{0, 1e8, 1}, nil},
		{"step below precision", Config{0, 1, 1e-17}, ErrTooManySteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		cfg  Config
		want int
	}{
		{Config{1, 100, 1}, 100},
		{Config{0, 10, 2.5}, 5},
		{Config{0, 1, 0.1}, 11},
		{Config{0, 0.95, 0.1}, 10},
		{Config{5, 5, 1}, 1},
		{Config{1, 100, 0}, 0},
		{Config{10, 5, 1}, 0},
		{Config{5, 4.5, 1}, 0},
		{Config{0, 1e8, 1}, 100000001},
	}

	for _, tt := range tests {
		got := tt.cfg.Count()
		if got != tt.want {
			t.Errorf("%+v.Count() = %d, want %d", tt.cfg, got, tt.want)
		}
		if got > 0 && tt.cfg.FrequencyAt(got-1) > tt.cfg.Max {
			t.Errorf("%+v: last frequency %v exceeds max", tt.cfg, tt.cfg.FrequencyAt(got-1))
		}
	}
}

func TestCountFineStep(t *testing.T) {
	cfg := Config{Min: 0, Max: 20000, Step: 0.001}
	n := cfg.Count()
	if n < 20000000 || n > 20000001 {
		t.Fatalf("Count() = %d, want about 2e7", n)
	}
	if cfg.FrequencyAt(n-1) > cfg.Max || cfg.FrequencyAt(n) <= cfg.Max {
		t.Fatalf("Count() = %d does not end at the last frequency <= max", n)
	}
}

func TestStepForResolution(t *testing.T) {
	step, err := StepForResolution(1, 101, 50)
	if err != nil {
		t.Fatal(err)
	}
	if step != 2 {
		t.Fatalf("step = %v, want 2", step)
	}

	if _, err := StepForResolution(1, 100, 0); !errors.Is(err, ErrInvalidResolution) {
		t.Fatalf("err = %v, want ErrInvalidResolution", err)
	}

	for _, tt := range []struct {
		min, max float64
		want     int
	}{
		{100, 10, 0},
		{7, 7, 1},
	} {
		step, err := StepForResolution(tt.min, tt.max, 20)
		if err != nil {
			t.Fatalf("StepForResolution(%v, %v) error = %v", tt.min, tt.max, err)
		}
		if n := (Config{Min: tt.min, Max: tt.max, Step: step}).Count(); n != tt.want {
			t.Fatalf("range %v..%v: Count() = %d, want %d", tt.min, tt.max, n, tt.want)
		}
	}
}

func TestRunMonotonic(t *testing.T) {
	s := toneSample(5, 0)
	spec, err := Run(s.WithTime(), Config{Min: 1, Max: 100, Step: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(spec) != 100 {
		t.Fatalf("len = %d, want 100", len(spec))
	}
	for i, p := range spec {
		if p.Frequency != float64(i+1) {
			t.Fatalf("spec[%d].Frequency = %v, want %v", i, p.Frequency, i+1)
		}
		if i > 0 && !(p.Frequency > spec[i-1].Frequency) {
			t.Fatalf("frequencies not strictly ascending at %d", i)
		}
	}

	peak, mag := spec.MaxMagnitude()
	if spec[peak].Frequency != 5 {
		t.Fatalf("strongest frequency = %v, want 5", spec[peak].Frequency)
	}
	if mag < 0.45 {
		t.Fatalf("peak magnitude = %v, want > 0.45", mag)
	}
}

func TestRunMatchesEstimator(t *testing.T) {
	s := toneSample(12, 30)
	pts := s.WithTime()
	spec, err := Run(pts, Config{Min: 10, Max: 14, Step: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range spec {
		want := phasor.Estimate(pts, p.Frequency)
		if cmplx.Abs(p.Value-want) != 0 {
			t.Fatalf("spec at %v = %v, want %v", p.Frequency, p.Value, want)
		}
	}
}

func TestRunRejectsBadStep(t *testing.T) {
	s := toneSample(5, 0)
	for _, step := range []float64{0, -1} {
		if _, err := Run(s.WithTime(), Config{Min: 1, Max: 10, Step: step}); !errors.Is(err, ErrInvalidStep) {
			t.Fatalf("step %v: err = %v, want ErrInvalidStep", step, err)
		}
	}
}

func TestRunEmptyRange(t *testing.T) {
	s := toneSample(5, 0)
	spec, err := Run(s.WithTime(), Config{Min: 10, Max: 5, Step: 1})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if spec == nil || len(spec) != 0 {
		t.Fatalf("Run() = %v, want empty non-nil spectrum", spec)
	}
}

func TestRunEmptySample(t *testing.T) {
	spec, err := Run(nil, Config{Min: 1, Max: 3, Step: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(spec) != 3 {
		t.Fatalf("len = %d, want 3", len(spec))
	}
	for _, p := range spec {
		if p.Value != 0 {
			t.Fatalf("value at %v = %v, want 0", p.Frequency, p.Value)
		}
	}
}

func TestStep(t *testing.T) {
	s := toneSample(5, 0)
	cfg := Config{Min: 1, Max: 10, Step: 1}

	p, ok := Step(s.WithTime(), cfg, 4)
	if !ok {
		t.Fatal("Step(4) reported out of range")
	}
	if p.Frequency != 5 {
		t.Fatalf("frequency = %v, want 5", p.Frequency)
	}

	for _, k := range []int{-1, 10} {
		if _, ok := Step(s.WithTime(), cfg, k); ok {
			t.Fatalf("Step(%d) should be out of range", k)
		}
	}
	if _, ok := Step(s.WithTime(), Config{Min: 1, Max: 10}, 0); ok {
		t.Fatal("Step with zero step should fail")
	}
}
