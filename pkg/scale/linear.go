// Package scale maps data values onto pixel positions.
//
// Linear maps a continuous numeric domain to a pixel range; Band maps an
// ordered set of category labels to evenly sized, padded slots. Both are
// plain values: construct once per render and share freely between
// goroutines.
package scale

import (
	"math"
)

// Tick is one labelled axis position. Position is the raw scaled value;
// axes centre band ticks using Bandwidth.
type Tick struct {
	Label    string
	Position float64
}

// Linear is a continuous mapping from [D0, D1] to [R0, R1].
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear returns a linear scale with the given domain and range.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Scale maps x from the domain to the range. A zero-width domain maps
// every value to the midpoint of the range.
func (s Linear) Scale(x float64) float64 {
	span := s.D1 - s.D0
	var t float64
	switch {
	case math.IsNaN(span):
		t = math.NaN()
	case span == 0:
		t = 0.5
	default:
		t = (x - s.D0) / span
	}
	return s.R0*(1-t) + s.R1*t
}

// Range returns the output extent.
func (s Linear) Range() (float64, float64) {
	return s.R0, s.R1
}

// Bandwidth is zero for continuous scales.
func (s Linear) Bandwidth() float64 {
	return 0
}

// Ticks returns approximately count representative domain values.
func (s Linear) Ticks(count float64) []float64 {
	return Ticks(s.D0, s.D1, count)
}

// TickFormat returns a formatter suited to the ticks produced for count.
// An empty specifier selects ",f" with precision derived from the tick
// step; "d" formats rounded integers.
func (s Linear) TickFormat(count float64, specifier string) func(float64) string {
	if specifier == "d" {
		return FormatInteger
	}
	step := TickStep(s.D0, s.D1, count)
	return GroupedFixed(PrecisionFixed(step))
}

// AxisTicks returns the labelled ticks for an axis requesting count ticks.
func (s Linear) AxisTicks(count float64) []Tick {
	values := s.Ticks(count)
	format := s.TickFormat(count, "")
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Label: format(v), Position: s.Scale(v)}
	}
	return ticks
}
