package tui

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-winding/dsp/phasor"
	"github.com/cwbudde/algo-winding/dsp/sample"
	"github.com/cwbudde/algo-winding/dsp/spectrum"
)

const (
	maxWindPoints = 2000
	minWindWidth  = 60
	chromeRows    = 7
	phaseRows     = 5
)

// View renders the header, the spectrum panel with the optional phase plot
// and, when enabled and there is room, the winding panel.
func (m Model) View() string {
	done, total := m.sweeper.Progress()
	spec := m.sweeper.Spectrum()

	freq := m.sweeper.Config().Min
	if len(spec) > 0 {
		freq = spec[len(spec)-1].Frequency
	}

	status := fmt.Sprintf("f = %.2f Hz  %d/%d  peaks %d", freq, done, total, len(m.tracker.Peaks()))
	if i, mag := spec.MaxMagnitude(); i >= 0 {
		status += fmt.Sprintf("  max %.3f @ %.2f Hz", mag, spec[i].Frequency)
	}
	switch {
	case m.done:
		status += "  done"
	case m.paused:
		status += "  paused"
	}

	rows := max(4, m.height-chromeRows)
	if m.showPhase {
		rows = max(4, rows-phaseRows-2)
	}
	windRows := 0
	if m.showWinding && m.width >= minWindWidth {
		windRows = min(rows, m.width/6)
	}
	chartCols := max(8, m.width-4)
	if windRows > 0 {
		chartCols = max(8, m.width-2*windRows-8)
	}

	chart := renderBars(spec.Magnitudes(), m.tracker.Peaks(), chartCols, rows)
	if m.showPhase {
		chart += "\n" + renderPhase(spectrum.UnwrapPhase(spec.Phases()), chartCols, phaseRows)
	}
	chart = panelStyle.Render(chart)
	body := chart
	if windRows > 0 {
		wind := renderWinding(windingOf(m.sweeper.Points(), freq), windRows)
		body = lipgloss.JoinHorizontal(lipgloss.Top, chart, panelStyle.Render(wind))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("winding sweep"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpText(m.done)))
	return b.String()
}

func windingOf(points []sample.Point, freq float64) []complex128 {
	return phasor.Wind(sample.Stride(points, maxWindPoints), freq)
}

// renderBars draws mags as a column chart of cols by rows characters with a
// marker line under every column that holds a peak index. Entries are
// bucketed by maximum when there are more of them than columns.
func renderBars(mags []float64, peakIdx []int, cols, rows int) string {
	n := len(mags)
	if n < cols {
		cols = max(n, 1)
	}

	heights := make([]int, cols)
	marked := make([]bool, cols)
	bucket := func(i int) int { return i * cols / max(n, 1) }

	var top float64
	for _, v := range mags {
		top = math.Max(top, v)
	}
	if top > 0 {
		levels := make([]float64, cols)
		for i, v := range mags {
			b := bucket(i)
			levels[b] = math.Max(levels[b], v)
		}
		for b, v := range levels {
			heights[b] = int(math.Round(v / top * float64(rows)))
		}
	}
	for _, p := range peakIdx {
		if p >= 0 && p < n {
			marked[bucket(p)] = true
		}
	}

	lines := make([]string, 0, rows+1)
	line := make([]rune, cols)
	for r := range rows {
		level := rows - r
		for c := range cols {
			line[c] = ' '
			if heights[c] >= level {
				line[c] = '█'
			}
		}
		lines = append(lines, barStyle.Render(string(line)))
	}
	for c := range cols {
		line[c] = ' '
		if marked[c] {
			line[c] = '▲'
		}
	}
	lines = append(lines, peakStyle.Render(string(line)))
	return strings.Join(lines, "\n")
}

// renderPhase draws the unwrapped phase of the swept entries as a line of
// cols by rows characters scaled between its extremes. Each column shows the
// last entry that falls into it.
func renderPhase(phase []float64, cols, rows int) string {
	n := len(phase)
	if n < cols {
		cols = max(n, 1)
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}
	if n > 0 {
		lo, hi := phase[0], phase[0]
		for _, v := range phase {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		for i, v := range phase {
			y := rows / 2
			if hi > lo {
				y = int(math.Round((hi - v) / (hi - lo) * float64(rows-1)))
			}
			grid[y][i*cols/n] = '◆'
		}
	}

	lines := make([]string, rows)
	for r, row := range grid {
		lines[r] = phaseStyle.Render(string(row))
	}
	return strings.Join(lines, "\n")
}

// renderWinding plots the wound points on a grid rows high and twice as
// wide, scaled to the largest magnitude, with the centre of mass marked.
func renderWinding(wound []complex128, rows int) string {
	cols := 2 * rows
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
		grid[r][cols/2] = '·'
	}
	for c := range cols {
		grid[rows/2][c] = '·'
	}

	var radius float64
	var centre phasor.Mean
	for _, z := range wound {
		radius = math.Max(radius, cmplx.Abs(z))
		centre = centre.Add(z)
	}

	if radius > 0 {
		place := func(z complex128, mark rune) {
			x := int(math.Round((real(z)/radius + 1) / 2 * float64(cols-1)))
			y := int(math.Round((1 - imag(z)/radius) / 2 * float64(rows-1)))
			grid[y][x] = mark
		}
		for _, z := range wound {
			place(z, '•')
		}
		place(centre.Value(), '●')
	}

	lines := make([]string, rows)
	for r, row := range grid {
		lines[r] = windStyle.Render(string(row))
	}
	return strings.Join(lines, "\n")
}
