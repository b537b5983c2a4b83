package peaks_test

import (
	"fmt"

	"github.com/cwbudde/algo-winding/dsp/spectrum"
	"github.com/cwbudde/algo-winding/measure/peaks"
)

func ExampleDetectPeak() {
	w := [peaks.WindowSize]spectrum.Phasor{{Value: 1}, {Value: 2}, {Value: 2}}
	fmt.Println(peaks.DetectPeak(w))
	// Output:
	// 2
}

func ExampleAdjust() {
	s := spectrum.Spectrum{{Value: 0}, {Value: 9}, {Value: 0}, {Value: 1}, {Value: 0}, {Value: 3}, {Value: 0}}
	raw := peaks.Detect(s)
	fmt.Println(raw, peaks.Adjust(s, raw), peaks.Adjust(s, raw, peaks.WithCenteredPlateaus()))
	// Output:
	// [1 3 5] [2] [1]
}
