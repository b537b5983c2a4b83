package phasor

// Mean is a running arithmetic mean of complex values. It is a value type:
// Add returns the updated accumulator and leaves the receiver untouched.
type Mean struct {
	value complex128
	n     int
}

// Add folds c into the mean as m <- (m*n + c) / (n+1).
func (m Mean) Add(c complex128) Mean {
	n := complex(float64(m.n), 0)
	return Mean{
		value: (m.value*n + c) / (n + 1),
		n:     m.n + 1,
	}
}

// Value returns the current mean, 0 when nothing was added.
func (m Mean) Value() complex128 { return m.value }

// Count returns the number of values folded in.
func (m Mean) Count() int { return m.n }
