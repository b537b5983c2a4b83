// Package config loads the winding tool configuration from defaults, a
// YAML file, WINDING_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-winding/dsp/signal"
	"github.com/cwbudde/algo-winding/measure/sweep"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "WINDING"

// Name is the config file base name searched for when none is given.
const Name = "winding"

// Output formats understood by the report writer.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// DefaultMaxSteps is the default sweep.max_steps guard.
const DefaultMaxSteps = 1 << 24

// Errors returned by Validate.
var (
	ErrInvalidOutput = errors.New("config: unknown output format")
	ErrInvalidRate   = errors.New("config: signal rate must be > 0")
	ErrInvalidSignal = errors.New("config: invalid signal")
	ErrTooManySteps  = errors.New("config: sweep exceeds sweep.max_steps")
)

// Config is the complete tool configuration.
type Config struct {
	LogLevel    string       `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	Output      string       `mapstructure:"output" json:"output" yaml:"output"`
	Signal      SignalConfig `mapstructure:"signal" json:"signal" yaml:"signal"`
	Sweep       SweepConfig  `mapstructure:"sweep" json:"sweep" yaml:"sweep"`
	Peaks       PeaksConfig  `mapstructure:"peaks" json:"peaks" yaml:"peaks"`
	CompareFFT  bool         `mapstructure:"compare_fft" json:"compare_fft" yaml:"compare_fft"`
	Interactive bool         `mapstructure:"interactive" json:"interactive" yaml:"interactive"`
}

// SignalConfig selects the analysed sample.
type SignalConfig struct {
	Duration float64  `mapstructure:"duration" json:"duration" yaml:"duration"`
	Rate     int      `mapstructure:"rate" json:"rate" yaml:"rate"`
	Tones    []string `mapstructure:"tones" json:"tones" yaml:"tones"`
	Noise    float64  `mapstructure:"noise" json:"noise" yaml:"noise"`
	Seed     int64    `mapstructure:"seed" json:"seed" yaml:"seed"`
	File     string   `mapstructure:"file" json:"file" yaml:"file"`
	Save     string   `mapstructure:"save" json:"save" yaml:"save"`
}

// SweepConfig is the frequency range. Resolution > 0 overrides Step.
// MaxSteps caps the number of trial frequencies; 0 disables the cap.
type SweepConfig struct {
	Min        float64 `mapstructure:"min" json:"min" yaml:"min"`
	Max        float64 `mapstructure:"max" json:"max" yaml:"max"`
	Step       float64 `mapstructure:"step" json:"step" yaml:"step"`
	Resolution int     `mapstructure:"resolution" json:"resolution" yaml:"resolution"`
	Simplify   bool    `mapstructure:"simplify" json:"simplify" yaml:"simplify"`
	MaxSteps   int     `mapstructure:"max_steps" json:"max_steps" yaml:"max_steps"`
}

// PeaksConfig controls the peak adjuster.
type PeaksConfig struct {
	Centered bool `mapstructure:"centered" json:"centered" yaml:"centered"`
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("output", OutputTable)

	v.SetDefault("signal.duration", 2.0)
	v.SetDefault("signal.rate", 44100)
	v.SetDefault("signal.tones", []string{"5:90", "60"})
	v.SetDefault("signal.noise", 0.0)
	v.SetDefault("signal.seed", 1)
	v.SetDefault("signal.file", "")
	v.SetDefault("signal.save", "")

	v.SetDefault("sweep.min", 1.0)
	v.SetDefault("sweep.max", 100.0)
	v.SetDefault("sweep.step", 1.0)
	v.SetDefault("sweep.resolution", 0)
	v.SetDefault("sweep.simplify", false)
	v.SetDefault("sweep.max_steps", DefaultMaxSteps)

	v.SetDefault("peaks.centered", false)
	v.SetDefault("compare_fft", false)
	v.SetDefault("interactive", false)
}

// New returns a viper instance with defaults and environment binding set.
// When file is empty, winding.yaml is searched in the working directory
// and in $HOME/.config/winding.
func New(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the configured file. A missing file is not an error unless
// it was named explicitly; the returned path is empty in that case.
func ReadFile(v *viper.Viper) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	// A comma-separated env or flag value arrives as one element.
	cfg.Signal.Tones = splitList(cfg.Signal.Tones)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks everything that can be checked before a sample exists.
func (c Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}
	if c.Signal.Rate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, c.Signal.Rate)
	}
	if c.Signal.Noise < 0 {
		return fmt.Errorf("%w: noise amplitude %v", ErrInvalidSignal, c.Signal.Noise)
	}
	if c.Signal.File == "" {
		if c.Signal.Duration <= 0 {
			return fmt.Errorf("%w: duration %v", ErrInvalidSignal, c.Signal.Duration)
		}
		if _, err := c.ParsedTones(); err != nil {
			return err
		}
	}
	if c.Sweep.Resolution < 0 {
		return fmt.Errorf("%w: %d", sweep.ErrInvalidResolution, c.Sweep.Resolution)
	}
	if c.Sweep.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps %d", ErrTooManySteps, c.Sweep.MaxSteps)
	}
	sc, err := c.SweepRange()
	if err != nil {
		return err
	}
	if n := sc.Count(); c.Sweep.MaxSteps > 0 && n > c.Sweep.MaxSteps {
		return fmt.Errorf("%w: %d > %d", ErrTooManySteps, n, c.Sweep.MaxSteps)
	}
	return nil
}

// ParsedTones parses Signal.Tones.
func (c Config) ParsedTones() ([]signal.Tone, error) {
	if len(c.Signal.Tones) == 0 {
		return nil, signal.ErrNoTones
	}
	return signal.ParseTones(c.Signal.Tones)
}

// SweepRange returns the validated sweep configuration, with the step
// derived from Resolution when it is set.
func (c Config) SweepRange() (sweep.Config, error) {
	sc := sweep.Config{Min: c.Sweep.Min, Max: c.Sweep.Max, Step: c.Sweep.Step}
	if c.Sweep.Resolution > 0 {
		step, err := sweep.StepForResolution(c.Sweep.Min, c.Sweep.Max, c.Sweep.Resolution)
		if err != nil {
			return sweep.Config{}, err
		}
		sc.Step = step
	}
	if err := sc.Validate(); err != nil {
		return sweep.Config{}, err
	}
	return sc, nil
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
