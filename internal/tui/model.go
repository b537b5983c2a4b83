// Package tui runs a sweep interactively, estimating one frequency per tick
// and drawing the growing magnitude spectrum next to the current winding.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-winding/measure/peaks"
	"github.com/cwbudde/algo-winding/measure/sweep"
)

const (
	defaultInterval = 20 * time.Millisecond
	defaultWidth    = 80
	defaultHeight   = 24
)

// Option configures a Model.
type Option func(*Model)

// WithInterval sets the delay between sweep steps.
func WithInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithStepsPerTick estimates n frequencies per tick instead of one.
func WithStepsPerTick(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.stepsPerTick = n
		}
	}
}

// WithWinding starts with the winding panel shown.
func WithWinding(show bool) Option {
	return func(m *Model) {
		m.showWinding = show
	}
}

// Model is the bubbletea model of an interactive sweep.
type Model struct {
	sweeper      *sweep.Sweeper
	tracker      peaks.Tracker
	interval     time.Duration
	stepsPerTick int
	width        int
	height       int
	paused       bool
	showWinding  bool
	showPhase    bool
	done         bool
	aborted      bool
}

// New returns a model that drives sw from its current position.
func New(sw *sweep.Sweeper, opts ...Option) Model {
	m := Model{
		sweeper:      sw,
		interval:     defaultInterval,
		stepsPerTick: 1,
		width:        defaultWidth,
		height:       defaultHeight,
		showWinding:  true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.done = sw.Done()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.done {
		return nil
	}
	return tickCmd(m.interval)
}

// Update handles ticks, keys and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.aborted = !m.done
			return m, tea.Quit
		}
		switch msg.String() {
		case " ", "space":
			if m.done {
				return m, nil
			}
			m.paused = !m.paused
			if !m.paused {
				return m, tickCmd(m.interval)
			}
		case "w":
			m.showWinding = !m.showWinding
		case "p":
			m.showPhase = !m.showPhase
		case "enter":
			if m.done {
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.paused || m.done {
			return m, nil
		}
		m.step()
		if m.done {
			return m, nil
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

func (m *Model) step() {
	for range m.stepsPerTick {
		if _, ok := m.sweeper.Next(); !ok {
			break
		}
		m.tracker.Observe(m.sweeper.Spectrum())
	}
	m.done = m.sweeper.Done()
}

// Finished reports whether the sweep ran to completion.
func (m Model) Finished() bool { return m.done }

// Aborted reports whether the user quit before the sweep completed.
func (m Model) Aborted() bool { return m.aborted }

// RawPeaks returns the peak indices detected while sweeping.
func (m Model) RawPeaks() []int { return m.tracker.Peaks() }

// Sweeper returns the driven sweeper.
func (m Model) Sweeper() *sweep.Sweeper { return m.sweeper }
