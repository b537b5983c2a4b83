package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-winding/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(1000),
		core.WithSeed(7),
	)

	fmt.Printf("sampleRate=%d seed=%d\n", cfg.SampleRate, cfg.Seed)

	// Output:
	// sampleRate=1000 seed=7
}

func ExampleAngleDiffDeg() {
	fmt.Printf("%.0f\n", core.AngleDiffDeg(-179, 179))

	// Output:
	// 2
}
