// Package barchart renders a horizontal bar chart as an SVG vdom tree.
//
// Each input position i becomes one bar and one value label, keyed by i,
// whose geometry is computed from values[i] and labels[i]:
//
//	node, err := barchart.Render([]float64{3, 12, 45}, []string{"a", "b", "c"})
//
// The x axis runs along the top with faint gridlines into the plot; the
// category axis runs down the left. Value labels sit inside the end of
// their bar unless the bar is too short, in which case they are drawn just
// past it in a darker colour.
//
// Rendering is pure: no inputs are retained or mutated and a Chart may be
// used from multiple goroutines.
package barchart

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/recera/vangochart/pkg/axis"
	"github.com/recera/vangochart/pkg/scale"
	"github.com/recera/vangochart/pkg/vango/vdom"
	"github.com/recera/vangochart/pkg/vex/builder"
)

var (
	// ErrLengthMismatch is returned when values and labels differ in length.
	ErrLengthMismatch = errors.New("barchart: values and labels differ in length")
	// ErrInvalidValue is returned for negative, NaN or infinite values.
	ErrInvalidValue = errors.New("barchart: values must be finite and non-negative")
)

// Bar is the computed geometry of one bar and its value label.
type Bar struct {
	Index int
	Label string
	Value float64

	X, Y          float64
	Width, Height float64
	// End is the scaled value, where the bar stops.
	End float64

	// Text is the formatted value drawn next to the bar end.
	Text string
	// Inside reports whether Text fits inside the bar.
	Inside bool
}

// Layout is the resolved geometry of a chart.
type Layout struct {
	Options Options
	X       scale.Linear
	Y       *scale.Band
	Bars    []Bar
}

// Chart renders bar charts with fixed options.
type Chart struct {
	opts Options
}

// New returns a Chart using opts, with unset fields defaulted.
func New(opts Options) *Chart {
	return &Chart{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (c *Chart) Options() Options {
	return c.opts
}

// Render renders values and labels with DefaultOptions.
func Render(values []float64, labels []string) (*vdom.VNode, error) {
	return New(DefaultOptions()).Render(values, labels)
}

// Validate checks the preconditions Render enforces.
func Validate(values []float64, labels []string) error {
	if len(values) != len(labels) {
		return fmt.Errorf("%w: %d values, %d labels", ErrLengthMismatch, len(values), len(labels))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: values[%d] = %v", ErrInvalidValue, i, v)
		}
	}
	return nil
}

// Layout computes scales and per-bar geometry without building nodes.
func (c *Chart) Layout(values []float64, labels []string) (*Layout, error) {
	if err := Validate(values, labels); err != nil {
		return nil, err
	}
	o := c.opts

	// An empty series has no maximum; [0, 0] keeps the scale finite.
	var hi float64
	if len(values) > 0 {
		hi = floats.Max(values)
	}

	x := scale.NewLinear(0, hi, o.Margin.Left, o.Width-o.Margin.Right)
	y := scale.NewBand(labels, o.Margin.Top, o.Height-o.Margin.Bottom).Padding(o.Padding)
	format := x.TickFormat(100, "d")
	x0 := x.Scale(0)

	bars := make([]Bar, len(values))
	for i := range values {
		v := values[i]
		top, _ := y.Scale(labels[i])
		end := x.Scale(v)
		width := end - x0
		bars[i] = Bar{
			Index:  i,
			Label:  labels[i],
			Value:  v,
			X:      x0,
			Y:      top,
			Width:  width,
			Height: y.Bandwidth(),
			End:    end,
			Text:   format(v),
			Inside: !(width < o.MinInsideWidth),
		}
	}

	return &Layout{Options: o, X: x, Y: y, Bars: bars}, nil
}

// Render builds the chart. The returned node is an <svg> element of
// Options.Width x Options.Height carrying its own viewBox.
func (c *Chart) Render(values []float64, labels []string) (*vdom.VNode, error) {
	l, err := c.Layout(values, labels)
	if err != nil {
		return nil, err
	}
	return l.Node(), nil
}

// Node builds the svg tree for the layout.
func (l *Layout) Node() *vdom.VNode {
	o := l.Options

	return builder.SVG().
		Width(o.Width).
		Height(o.Height).
		ViewBox(0, 0, o.Width, o.Height).
		Style(o.Style).
		Children(
			l.xAxis(),
			l.bars(),
			l.valueLabels(),
			l.yAxis(),
		).
		Build()
}

func (l *Layout) xAxis() *vdom.VNode {
	o := l.Options
	caption := builder.Text().
		X(o.Width - o.Margin.Right).
		Y(-22).
		Fill("black").
		TextAnchor("end").
		Content(o.Caption).
		Build()

	return axis.New(axis.Top, l.X).
		Ticks(o.Width/o.PixelsPerTick).
		GridLines(o.Height-o.Margin.Top-o.Margin.Bottom, o.GridOpacity).
		Append(caption).
		Render(builder.G().Translate(0, o.Margin.Top))
}

func (l *Layout) yAxis() *vdom.VNode {
	return axis.New(axis.Left, l.Y).
		TickSizeOuter(0).
		Render(builder.G().Translate(l.Options.Margin.Left, 0))
}

func (l *Layout) bars() *vdom.VNode {
	g := builder.G().Fill(l.Options.BarColor)
	for _, b := range l.Bars {
		g.Child(builder.Rect().
			Key(strconv.Itoa(b.Index)).
			X(b.X).
			Y(b.Y).
			Width(b.Width).
			Height(b.Height))
	}
	return g.Build()
}

func (l *Layout) valueLabels() *vdom.VNode {
	o := l.Options
	g := builder.G().
		Fill(o.LabelColor).
		TextAnchor("end").
		FontFamily(o.FontFamily).
		FontSize(o.FontSize)

	for _, b := range l.Bars {
		t := builder.Text().
			Key(strconv.Itoa(b.Index)).
			X(b.End).
			Y(b.Y + b.Height/2).
			Dy("0.35em").
			Dx(-o.LabelInset)
		if !b.Inside {
			t.Dx(o.LabelInset).
				Fill(o.OutsideLabelColor).
				TextAnchor("start")
		}
		g.Child(t.Content(b.Text))
	}
	return g.Build()
}
