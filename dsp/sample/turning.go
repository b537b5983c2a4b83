package sample

import "math"

type slope int8

const (
	flat slope = iota
	rising
	falling
)

// envelope is the accumulator threaded through the turning point scan.
type envelope struct {
	last   slope
	points []int
}

func (e envelope) step(i int, prev, cur float64) envelope {
	var s slope
	switch d := math.Abs(cur) - math.Abs(prev); {
	case d > 0:
		s = rising
	case d < 0:
		s = falling
	default:
		return e
	}

	if e.last != flat && s != e.last {
		e.points = append(e.points, i-1)
	}
	e.last = s
	return e
}

// TurningPoints returns the indices where the absolute amplitude envelope
// changes direction. Only odd indices are compared with their predecessor,
// so the scan reads every sample once and keeps a single slope of state.
// Equal neighbours keep the previous direction. The recorded index is the
// first sample of the pair in which the new direction was seen, so it can
// be one past the true extremum when that falls on an odd index.
func (s Sample) TurningPoints() []int {
	acc := envelope{}
	for i := 1; i < len(s.Amplitudes); i += 2 {
		acc = acc.step(i, s.Amplitudes[i-1], s.Amplitudes[i])
	}
	return acc.points
}

// Simplify returns the (time, amplitude) point of every turning point.
//
// It is a lossy proxy for [Sample.WithTime]: estimating against it costs
// O(turning points) per frequency instead of O(Len()).
func (s Sample) Simplify() []Point {
	idx := s.TurningPoints()
	if len(idx) == 0 {
		return nil
	}
	out := make([]Point, len(idx))
	for k, i := range idx {
		out[k] = s.At(i)
	}
	return out
}
