package scale

import "math"

// Band maps categories to evenly sized slots along [R0, R1].
type Band struct {
	domain    []string
	index     map[string]int
	r0, r1    float64
	inner     float64
	outer     float64
	align     float64
	step      float64
	bandwidth float64
	starts    []float64
}

// NewBand returns a band scale over labels. Repeated labels keep the
// slot of their first occurrence.
func NewBand(labels []string, r0, r1 float64) *Band {
	b := &Band{
		index: make(map[string]int, len(labels)),
		r0:    r0,
		r1:    r1,
		align: 0.5,
	}
	for _, l := range labels {
		if _, dup := b.index[l]; dup {
			continue
		}
		b.index[l] = len(b.domain)
		b.domain = append(b.domain, l)
	}
	b.rescale()
	return b
}

// Padding sets both inner and outer padding as a fraction of the step.
func (b *Band) Padding(p float64) *Band {
	b.inner = math.Min(1, p)
	b.outer = p
	b.rescale()
	return b
}

// PaddingInner sets the gap between bands as a fraction of the step.
func (b *Band) PaddingInner(p float64) *Band {
	b.inner = math.Min(1, p)
	b.rescale()
	return b
}

// PaddingOuter sets the space before the first and after the last band.
func (b *Band) PaddingOuter(p float64) *Band {
	b.outer = p
	b.rescale()
	return b
}

// Align positions the bands within leftover space; 0.5 centres them.
func (b *Band) Align(a float64) *Band {
	b.align = math.Max(0, math.Min(1, a))
	b.rescale()
	return b
}

func (b *Band) rescale() {
	n := float64(len(b.domain))
	start, stop := b.r0, b.r1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	b.step = (stop - start) / math.Max(1, n-b.inner+b.outer*2)
	start += (stop - start - b.step*(n-b.inner)) * b.align
	b.bandwidth = b.step * (1 - b.inner)

	b.starts = make([]float64, len(b.domain))
	for i := range b.starts {
		b.starts[i] = start + b.step*float64(i)
	}
	if reverse {
		for i, j := 0, len(b.starts)-1; i < j; i, j = i+1, j-1 {
			b.starts[i], b.starts[j] = b.starts[j], b.starts[i]
		}
	}
}

// Scale returns the start of the band for label, and false when label is
// not part of the domain.
func (b *Band) Scale(label string) (float64, bool) {
	i, ok := b.index[label]
	if !ok {
		return 0, false
	}
	return b.starts[i], true
}

// Domain returns the distinct labels in slot order.
func (b *Band) Domain() []string {
	return append([]string(nil), b.domain...)
}

// Range returns the output extent.
func (b *Band) Range() (float64, float64) {
	return b.r0, b.r1
}

// Bandwidth returns the width of each band.
func (b *Band) Bandwidth() float64 {
	return b.bandwidth
}

// Step returns the distance between the starts of adjacent bands.
func (b *Band) Step() float64 {
	return b.step
}

// AxisTicks returns one tick per category; count is ignored.
func (b *Band) AxisTicks(float64) []Tick {
	ticks := make([]Tick, len(b.domain))
	for i, l := range b.domain {
		ticks[i] = Tick{Label: l, Position: b.starts[i]}
	}
	return ticks
}
