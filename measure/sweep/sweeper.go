package sweep

import (
	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/cwbudde/algo-winding/dsp/spectrum"
)

// Sweeper produces one spectrum entry per call to Next. It is not safe for
// concurrent use; the spectrum it accumulates belongs to its caller.
type Sweeper struct {
	points []sample.Point
	cfg    Config
	total  int
	spec   spectrum.Spectrum
}

// NewSweeper validates cfg and prepares an incremental sweep over points.
func NewSweeper(points []sample.Point, cfg Config) (*Sweeper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	total := cfg.Count()
	return &Sweeper{
		points: points,
		cfg:    cfg,
		total:  total,
		spec:   make(spectrum.Spectrum, 0, total),
	}, nil
}

// Next estimates the next frequency and appends it to the spectrum.
// It reports false once the sweep is complete.
func (s *Sweeper) Next() (spectrum.Phasor, bool) {
	p, ok := Step(s.points, s.cfg, len(s.spec))
	if !ok {
		return spectrum.Phasor{}, false
	}
	s.spec = append(s.spec, p)
	return p, true
}

// Done reports whether every frequency has been estimated.
func (s *Sweeper) Done() bool { return len(s.spec) >= s.total }

// Progress returns how many of the total frequencies are done.
func (s *Sweeper) Progress() (done, total int) { return len(s.spec), s.total }

// Config returns the sweep range.
func (s *Sweeper) Config() Config { return s.cfg }

// Points returns the series the sweep estimates against.
func (s *Sweeper) Points() []sample.Point { return s.points }

// Spectrum returns the entries estimated so far. The slice aliases the
// sweeper's storage and is only appended to by later calls to Next.
func (s *Sweeper) Spectrum() spectrum.Spectrum { return s.spec }

// Reset restarts the sweep from Min with an empty spectrum.
func (s *Sweeper) Reset() {
	s.spec = make(spectrum.Spectrum, 0, s.total)
}
