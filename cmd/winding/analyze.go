package main

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-winding/dsp/core"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/cwbudde/algo-winding/dsp/signal"
	"github.com/cwbudde/algo-winding/dsp/spectrum"
	"github.com/cwbudde/algo-winding/internal/audiofile"
	"github.com/cwbudde/algo-winding/internal/config"
	"github.com/cwbudde/algo-winding/internal/logging"
	"github.com/cwbudde/algo-winding/internal/tui"
	"github.com/cwbudde/algo-winding/measure/peaks"
	"github.com/cwbudde/algo-winding/measure/sweep"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errAborted = errors.New("sweep aborted")

// analyzeKeys maps analyze flags to configuration keys.
var analyzeKeys = map[string]string{
	"freqs":          "signal.tones",
	"t":              "signal.duration",
	"rate":           "signal.rate",
	"noise":          "signal.noise",
	"seed":           "signal.seed",
	"file":           "signal.file",
	"save-wav":       "signal.save",
	"min":            "sweep.min",
	"max":            "sweep.max",
	"step":           "sweep.step",
	"resolution":     "sweep.resolution",
	"simplify":       "sweep.simplify",
	"max-steps":      "sweep.max_steps",
	"centered-peaks": "peaks.centered",
	"compare-fft":    "compare_fft",
	"interactive":    "interactive",
}

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Sweep a signal and report its peaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd)
		},
	}

	f := cmd.Flags()
	f.StringSlice("freqs", []string{"5:90", "60"}, "tones to synthesise as frequency[:phase-degrees]")
	f.Float64("t", 2, "synthesised signal duration in seconds")
	f.Int("rate", 44100, "synthesised sample rate in samples per second")
	f.Float64("noise", 0, "white noise amplitude mixed into the synthesised signal")
	f.Int64("seed", 1, "noise seed")
	f.String("file", "", "analyse a PCM WAV file instead of synthesised tones")
	f.String("save-wav", "", "write the analysed signal to a WAV file")
	f.Float64("min", 1, "first trial frequency in Hz")
	f.Float64("max", 100, "last trial frequency in Hz (inclusive)")
	f.Float64("step", 1, "frequency step in Hz")
	f.Int("resolution", 0, "number of steps between min and max; overrides --step")
	f.Bool("simplify", false, "estimate against turning points only")
	f.Int("max-steps", config.DefaultMaxSteps, "refuse sweeps with more trial frequencies; 0 disables the limit")
	f.Bool("centered-peaks", false, "place plateau peaks in the plateau centre")
	f.Bool("compare-fft", false, "report the nearest FFT bin for every peak")
	f.Bool("interactive", false, "run the sweep in an interactive terminal view")
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if a.configUsed != "" {
		log.Debug("config loaded", zap.String("file", a.configUsed))
	}

	s, source, err := loadSample(cfg)
	if err != nil {
		return err
	}
	log.Info("sample ready",
		zap.String("source", source),
		zap.Int("rate", s.Rate),
		zap.Int("samples", s.Len()),
		zap.Float64("seconds", s.TimeSpan()),
	)

	if cfg.Signal.Save != "" {
		if err := saveSample(cfg.Signal.Save, s, log); err != nil {
			return err
		}
	}

	sc, err := cfg.SweepRange()
	if err != nil {
		return err
	}

	points := s.WithTime()
	if cfg.Sweep.Simplify {
		points = s.Simplify()
		log.Info("simplified sample", zap.Int("points", len(points)), zap.Int("samples", s.Len()))
	}

	log.Info("sweep started",
		zap.Float64("min", sc.Min),
		zap.Float64("max", sc.Max),
		zap.Float64("step", sc.Step),
		zap.Int("frequencies", sc.Count()),
	)
	start := time.Now()

	var (
		spec spectrum.Spectrum
		raw  []int
	)
	if cfg.Interactive {
		spec, raw, err = runInteractive(cmd, points, sc)
	} else {
		spec, err = sweep.Run(points, sc)
		raw = peaks.Detect(spec)
	}
	if err != nil {
		return err
	}

	var opts []peaks.AdjustOption
	if cfg.Peaks.Centered {
		opts = append(opts, peaks.WithCenteredPlateaus())
	}
	adjusted := peaks.Adjust(spec, raw, opts...)

	log.Info("sweep finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("raw_peaks", len(raw)),
		zap.Int("peaks", len(adjusted)),
	)

	rep, err := buildReport(s, source, sc, spec, adjusted, cfg.CompareFFT)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), cfg.Output, rep)
}

func loadSample(cfg config.Config) (sample.Sample, string, error) {
	if cfg.Signal.File != "" {
		s, err := audiofile.Load(cfg.Signal.File)
		if err != nil {
			return sample.Sample{}, "", fmt.Errorf("loading %s: %w", cfg.Signal.File, err)
		}
		return s, cfg.Signal.File, nil
	}

	tones, err := cfg.ParsedTones()
	if err != nil {
		return sample.Sample{}, "", err
	}
	gen := signal.NewGenerator(core.WithSampleRate(cfg.Signal.Rate), core.WithSeed(cfg.Signal.Seed))
	s, err := gen.Tones(cfg.Signal.Duration, tones...)
	if err != nil {
		return sample.Sample{}, "", err
	}
	s, err = gen.AddNoise(s, cfg.Signal.Noise)
	if err != nil {
		return sample.Sample{}, "", err
	}
	return s, fmt.Sprintf("tones %v", cfg.Signal.Tones), nil
}

// saveSample writes s as 16-bit PCM. Mixed tones exceed full scale, so the
// written copy is normalised to a peak of 1 when needed.
func saveSample(path string, s sample.Sample, log *zap.Logger) error {
	out := s
	if peak := s.MaxAmplitude(); peak > 1 {
		scaled, err := signal.Normalize(s.Amplitudes, 1)
		if err != nil {
			return err
		}
		out = sample.Sample{Amplitudes: scaled, Rate: s.Rate}
		log.Warn("normalised signal for WAV output", zap.Float64("peak", peak))
	}
	if err := audiofile.Write(path, out, audiofile.DefaultBitDepth); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	log.Info("signal saved", zap.String("file", path))
	return nil
}

func runInteractive(cmd *cobra.Command, points []sample.Point, sc sweep.Config) (spectrum.Spectrum, []int, error) {
	sw, err := sweep.NewSweeper(points, sc)
	if err != nil {
		return nil, nil, err
	}

	// Aim for a sweep of a few seconds regardless of its length.
	perTick := max(1, sc.Count()/200)
	model := tui.New(sw, tui.WithStepsPerTick(perTick))

	prog := tea.NewProgram(model, tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.ErrOrStderr()))
	final, err := prog.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("interactive sweep: %w", err)
	}
	m, ok := final.(tui.Model)
	if !ok || m.Aborted() {
		return nil, nil, errAborted
	}
	return sw.Spectrum(), m.RawPeaks(), nil
}
