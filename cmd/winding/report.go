package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-winding/dsp/core"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/cwbudde/algo-winding/dsp/spectrum"
	"github.com/cwbudde/algo-winding/internal/config"
	"github.com/cwbudde/algo-winding/measure/reference"
	"github.com/cwbudde/algo-winding/measure/sweep"
	"github.com/cwbudde/algo-winding/stats/level"
	"github.com/cwbudde/algo-winding/stats/spectral"
	"gopkg.in/yaml.v3"
)

// floorDB stands in for the level of a zero magnitude; JSON has no infinity.
const floorDB = -999

// binTolerance is how close in Hz a peak must be to its FFT bin to count as
// lying on it.
const binTolerance = 1e-9

type report struct {
	Source  string         `json:"source" yaml:"source"`
	Rate    int            `json:"rate" yaml:"rate"`
	Samples int            `json:"samples" yaml:"samples"`
	Level   level.Summary  `json:"level" yaml:"level"`
	Sweep   sweepReport    `json:"sweep" yaml:"sweep"`
	Shape   spectral.Shape `json:"shape" yaml:"shape"`
	// Strongest is the largest-magnitude entry, nil for an empty sweep.
	Strongest *entryRow `json:"strongest,omitempty" yaml:"strongest,omitempty"`
	Peaks     []peakRow `json:"peaks" yaml:"peaks"`
}

type entryRow struct {
	Frequency   float64 `json:"frequency" yaml:"frequency"`
	Magnitude   float64 `json:"magnitude" yaml:"magnitude"`
	MagnitudeDB float64 `json:"magnitude_db" yaml:"magnitude_db"`
}

type sweepReport struct {
	Min         float64 `json:"min" yaml:"min"`
	Max         float64 `json:"max" yaml:"max"`
	Step        float64 `json:"step" yaml:"step"`
	Frequencies int     `json:"frequencies" yaml:"frequencies"`
}

type peakRow struct {
	Index       int      `json:"index" yaml:"index"`
	Frequency   float64  `json:"frequency" yaml:"frequency"`
	Magnitude   float64  `json:"magnitude" yaml:"magnitude"`
	MagnitudeDB float64  `json:"magnitude_db" yaml:"magnitude_db"`
	PhaseDeg    float64  `json:"phase_deg" yaml:"phase_deg"`
	FFT         *fftCell `json:"fft,omitempty" yaml:"fft,omitempty"`
}

// fftCell is the FFT bin nearest to a peak. PhaseDiffDeg is the peak phase
// minus the bin phase, wrapped into (-180, 180]; it is only meaningful when
// OnBin holds.
type fftCell struct {
	Frequency    float64 `json:"frequency" yaml:"frequency"`
	Magnitude    float64 `json:"magnitude" yaml:"magnitude"`
	PhaseDeg     float64 `json:"phase_deg" yaml:"phase_deg"`
	PhaseDiffDeg float64 `json:"phase_diff_deg" yaml:"phase_diff_deg"`
	OnBin        bool    `json:"on_bin" yaml:"on_bin"`
}

func buildReport(s sample.Sample, source string, sc sweep.Config, spec spectrum.Spectrum, idx []int, compareFFT bool) (report, error) {
	rep := report{
		Source:  source,
		Rate:    s.Rate,
		Samples: s.Len(),
		Level:   level.Summarize(s),
		Sweep:   sweepReport{Min: sc.Min, Max: sc.Max, Step: sc.Step, Frequencies: len(spec)},
		Shape:   spectral.Describe(spec),
		Peaks:   make([]peakRow, 0, len(idx)),
	}
	if i, mag := spec.MaxMagnitude(); i >= 0 {
		rep.Strongest = &entryRow{
			Frequency:   spec[i].Frequency,
			Magnitude:   mag,
			MagnitudeDB: math.Max(core.LinearToDB(mag), floorDB),
		}
	}

	var bins spectrum.Spectrum
	if compareFFT {
		var err error
		if bins, err = reference.For(s); err != nil {
			return report{}, fmt.Errorf("fft reference: %w", err)
		}
	}

	for _, i := range idx {
		p := spec[i]
		row := peakRow{
			Index:       i,
			Frequency:   p.Frequency,
			Magnitude:   p.Magnitude(),
			MagnitudeDB: math.Max(core.LinearToDB(p.Magnitude()), floorDB),
			PhaseDeg:    p.PhaseDegrees(),
		}
		if bin, ok := reference.Nearest(bins, p.Frequency); ok {
			row.FFT = &fftCell{
				Frequency:    bin.Frequency,
				Magnitude:    bin.Magnitude(),
				PhaseDeg:     bin.PhaseDegrees(),
				PhaseDiffDeg: core.AngleDiffDeg(row.PhaseDeg, bin.PhaseDegrees()),
				OnBin:        core.NearlyEqual(bin.Frequency, p.Frequency, binTolerance),
			}
		}
		rep.Peaks = append(rep.Peaks, row)
	}
	return rep, nil
}

func writeReport(w io.Writer, format string, rep report) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeTable(w, rep)
	}
}

func writeTable(w io.Writer, rep report) error {
	lv, sh := rep.Level, rep.Shape
	if _, err := fmt.Fprintf(w, "Source: %s  Rate: %d  Samples: %d\n", rep.Source, rep.Rate, rep.Samples); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Level: RMS %.2f dBFS  Peak %.2f dBFS  Crest %.2f dB  DC %.4g  Crossing rate %.1f Hz\n",
		lv.RMSdB(), lv.PeakdB(), lv.CrestFactordB(), lv.DC, lv.CrossingRate()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sweep: %g..%g Hz, step %g (%d frequencies)\n",
		rep.Sweep.Min, rep.Sweep.Max, rep.Sweep.Step, rep.Sweep.Frequencies); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Shape: centroid %.2f Hz  spread %.2f Hz  flatness %.3f  rolloff %.2f Hz  -3 dB width %.2f Hz\n",
		sh.Centroid, sh.Spread, sh.Flatness, sh.Rolloff, sh.Bandwidth3dB); err != nil {
		return err
	}
	if st := rep.Strongest; st != nil {
		if _, err := fmt.Fprintf(w, "Strongest: %.4f Hz  magnitude %.6f (%.2f dB)\n", st.Frequency, st.Magnitude, st.MagnitudeDB); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if len(rep.Peaks) == 0 {
		_, err := fmt.Fprintln(w, "No peaks found.")
		return err
	}

	withFFT := false
	for _, p := range rep.Peaks {
		withFFT = withFFT || p.FFT != nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Frequency [Hz]\tMagnitude\tMagnitude [dB]\tPhase [deg]"
	rule := "--------------\t---------\t--------------\t-----------"
	if withFFT {
		header += "\tFFT Bin [Hz]\tFFT Magnitude\tFFT Phase [deg]\tPhase Diff [deg]"
		rule += "\t------------\t-------------\t---------------\t----------------"
	}
	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return err
	}

	for _, p := range rep.Peaks {
		line := fmt.Sprintf("%.4f\t%.6f\t%.2f\t%.2f", p.Frequency, p.Magnitude, p.MagnitudeDB, p.PhaseDeg)
		if withFFT {
			switch {
			case p.FFT == nil:
				line += "\t-\t-\t-\t-"
			case p.FFT.OnBin:
				line += fmt.Sprintf("\t%.4f\t%.6f\t%.2f\t%.2f", p.FFT.Frequency, p.FFT.Magnitude, p.FFT.PhaseDeg, p.FFT.PhaseDiffDeg)
			default:
				line += fmt.Sprintf("\t%.4f*\t%.6f\t%.2f\t-", p.FFT.Frequency, p.FFT.Magnitude, p.FFT.PhaseDeg)
			}
		}
		if _, err := fmt.Fprintln(tw, line); err != nil {
			return err
		}
	}
	return tw.Flush()
}
