package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-winding/dsp/phasor"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/cwbudde/algo-winding/dsp/spectrum"
	"github.com/cwbudde/algo-winding/internal/testutil"
	"github.com/cwbudde/algo-winding/measure/peaks"
	"github.com/cwbudde/algo-winding/measure/sweep"
)

func newTestSweeper(t *testing.T) *sweep.Sweeper {
	t.Helper()
	s := sample.Sample{Amplitudes: testutil.DeterministicSine(5, 90, 100, 1, 100), Rate: 100}
	sw, err := sweep.NewSweeper(s.WithTime(), sweep.Config{Min: 1, Max: 10, Step: 1})
	if err != nil {
		t.Fatal(err)
	}
	return sw
}

func runToEnd(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; !m.Finished(); i++ {
		if i > 1000 {
			t.Fatal("sweep did not finish")
		}
		next, _ := m.Update(tickMsg(time.Time{}))
		m = next.(Model)
	}
	return m
}

func TestTickStepsOneFrequency(t *testing.T) {
	m := New(newTestSweeper(t))
	if m.Init() == nil {
		t.Fatal("Init should start the tick loop")
	}

	next, cmd := m.Update(tickMsg(time.Time{}))
	m = next.(Model)
	if done, total := m.Sweeper().Progress(); done != 1 || total != 10 {
		t.Fatalf("progress = %d/%d, want 1/10", done, total)
	}
	if cmd == nil {
		t.Fatal("expected next tick")
	}
}

func TestSweepFindsPeakWhileRunning(t *testing.T) {
	sw := newTestSweeper(t)
	m := runToEnd(t, New(sw, WithStepsPerTick(3)))

	want := peaks.Detect(sw.Spectrum())
	testutil.RequireIntsEqual(t, "raw peaks", m.RawPeaks(), want)

	found := false
	for _, idx := range m.RawPeaks() {
		if sw.Spectrum()[idx].Frequency == 5 {
			found = true
		}
	}
	if !found {
		t.Fatalf("no peak at 5 Hz in %v", m.RawPeaks())
	}

	_, cmd := m.Update(tickMsg(time.Time{}))
	if cmd != nil {
		t.Fatal("finished sweep should stop ticking")
	}
}

func TestPauseStopsStepping(t *testing.T) {
	m := New(newTestSweeper(t))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)

	next, cmd := m.Update(tickMsg(time.Time{}))
	m = next.(Model)
	if done, _ := m.Sweeper().Progress(); done != 0 {
		t.Fatalf("paused model stepped to %d", done)
	}
	if cmd != nil {
		t.Fatal("paused model should not schedule ticks")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatal("resume should schedule a tick")
	}
}

func TestQuitMarksAborted(t *testing.T) {
	m := New(newTestSweeper(t))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	if !m.Aborted() {
		t.Fatal("quit before completion should abort")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.Quit")
	}

	finished := runToEnd(t, New(newTestSweeper(t)))
	next, cmd = finished.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next.(Model).Aborted() {
		t.Fatal("enter after completion is not an abort")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.Quit on enter")
	}
}

func TestViewRendersPanels(t *testing.T) {
	m := New(newTestSweeper(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = runToEnd(t, next.(Model))

	view := m.View()
	for _, want := range []string{"winding sweep", "10/10", "done", "█", "▲", "●"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	if strings.Contains(next.(Model).View(), "●") {
		t.Fatal("winding panel still shown after toggle")
	}
}

func TestRenderBarsBuckets(t *testing.T) {
	out := renderBars([]float64{0, 1, 0, 0.5}, []int{1}, 2, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "█ ") || !strings.Contains(lines[1], "██") {
		t.Fatalf("unexpected bars:\n%s", out)
	}
	if !strings.Contains(lines[2], "▲ ") {
		t.Fatalf("peak marker not under first column:\n%s", out)
	}
}

func TestRenderWindingEmpty(t *testing.T) {
	out := renderWinding(nil, 5)
	if strings.ContainsAny(out, "•●") {
		t.Fatalf("empty winding plotted points:\n%s", out)
	}
	if got := len(strings.Split(out, "\n")); got != 5 {
		t.Fatalf("rows = %d, want 5", got)
	}
}

func TestViewShowsStrongestAndPhase(t *testing.T) {
	m := runToEnd(t, New(newTestSweeper(t)))
	view := m.View()
	if !strings.Contains(view, "@ 5.00 Hz") {
		t.Fatalf("header missing strongest frequency:\n%s", view)
	}
	if strings.Contains(view, "◆") {
		t.Fatal("phase plot shown before toggle")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if !strings.Contains(next.(Model).View(), "◆") {
		t.Fatalf("phase plot missing after toggle:\n%s", next.(Model).View())
	}
}

func TestEmptySweepStartsDone(t *testing.T) {
	sw, err := sweep.NewSweeper(nil, sweep.Config{Min: 10, Max: 5, Step: 1})
	if err != nil {
		t.Fatal(err)
	}
	m := New(sw)
	if !m.Finished() || m.Init() != nil {
		t.Fatal("empty sweep should be finished without ticking")
	}
	if view := m.View(); !strings.Contains(view, "0/0") || strings.Contains(view, "max ") {
		t.Fatalf("unexpected empty view:\n%s", view)
	}
}

func TestRenderPhaseFollowsUnwrappedSlope(t *testing.T) {
	// The wrapped ramp jumps by 2*pi after the first entry; unwrapped it
	// descends from the top row to the bottom row.
	wrapped := []float64{-3, 3, 2.5, 2}
	out := renderPhase(spectrum.UnwrapPhase(wrapped), 4, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("rows = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "◆") {
		t.Fatalf("first entry not on top row:\n%s", out)
	}
	if !strings.HasSuffix(lines[2], "◆") {
		t.Fatalf("last entry not on bottom row:\n%s", out)
	}
}

func TestWindingOfStridesLongSeries(t *testing.T) {
	s := sample.Sample{Amplitudes: testutil.DeterministicSine(5, 0, 1000, 1, 4500), Rate: 1000}
	got := windingOf(s.WithTime(), 5)
	want := phasor.Wind(s.WithTimeResolution(maxWindPoints), 5)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], want[i])
		}
	}

	short := s.WithTime()[:100]
	if n := len(windingOf(short, 5)); n != 100 {
		t.Fatalf("short series len = %d, want 100", n)
	}
}
