// Package axis renders labelled chart axes as SVG groups.
//
// An Axis is configured against any scale that can report its range and
// produce labelled ticks, then rendered into a caller-supplied group so the
// caller controls placement:
//
//	x := axis.New(axis.Top, xScale).Ticks(600 / 80).GridLines(240, 0.1)
//	node := x.Render(builder.G().Translate(0, 30))
//
// Tick marks, labels and the domain line are drawn with currentColor so the
// host document decides the ink.
package axis

import (
	"fmt"
	"math"
	"strconv"

	"github.com/recera/vangochart/pkg/scale"
	"github.com/recera/vangochart/pkg/vango/vdom"
	"github.com/recera/vangochart/pkg/vex/builder"
)

// Orient is the side of the plot an axis is drawn on.
type Orient uint8

const (
	Top Orient = iota
	Right
	Bottom
	Left
)

func (o Orient) String() string {
	switch o {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("Orient(%d)", o)
	}
}

// offset aligns one-pixel strokes to the pixel grid.
const offset = 0.5

// Scale is the view of a scale an axis needs.
type Scale interface {
	Range() (float64, float64)
	Bandwidth() float64
	AxisTicks(count float64) []scale.Tick
}

// Axis describes one axis. The zero value is not usable; call New.
type Axis struct {
	orient        Orient
	scale         Scale
	count         float64
	tickSizeInner float64
	tickSizeOuter float64
	tickPadding   float64

	gridLength  float64
	gridOpacity float64

	extras []*vdom.VNode
}

// New returns an axis with 6px tick marks, 3px label padding and ten
// requested ticks.
func New(orient Orient, s Scale) *Axis {
	return &Axis{
		orient:        orient,
		scale:         s,
		count:         10,
		tickSizeInner: 6,
		tickSizeOuter: 6,
		tickPadding:   3,
	}
}

// Ticks sets the approximate number of ticks requested from the scale.
func (a *Axis) Ticks(count float64) *Axis {
	a.count = count
	return a
}

// TickSize sets both inner and outer tick sizes.
func (a *Axis) TickSize(size float64) *Axis {
	a.tickSizeInner = size
	a.tickSizeOuter = size
	return a
}

// TickSizeInner sets the length of the per-tick marks.
func (a *Axis) TickSizeInner(size float64) *Axis {
	a.tickSizeInner = size
	return a
}

// TickSizeOuter sets the length of the end caps of the domain line.
func (a *Axis) TickSizeOuter(size float64) *Axis {
	a.tickSizeOuter = size
	return a
}

// TickPadding sets the gap between tick marks and labels.
func (a *Axis) TickPadding(padding float64) *Axis {
	a.tickPadding = padding
	return a
}

// GridLines extends every tick into the plot by length pixels, drawn at
// the given stroke opacity. A zero length disables gridlines.
func (a *Axis) GridLines(length, opacity float64) *Axis {
	a.gridLength = length
	a.gridOpacity = opacity
	return a
}

// Append adds nodes after the ticks, e.g. an axis caption.
func (a *Axis) Append(nodes ...*vdom.VNode) *Axis {
	a.extras = append(a.extras, nodes...)
	return a
}

// k is -1 for axes whose marks point away from the plot towards negative
// coordinates.
func (a *Axis) k() float64 {
	if a.orient == Top || a.orient == Left {
		return -1
	}
	return 1
}

func (a *Axis) vertical() bool {
	return a.orient == Left || a.orient == Right
}

// Render draws the axis into g and returns the finished group.
func (a *Axis) Render(g *builder.ElementBuilder) *vdom.VNode {
	anchor := "middle"
	switch a.orient {
	case Left:
		anchor = "end"
	case Right:
		anchor = "start"
	}

	g.Fill("none").
		FontSize(10).
		FontFamily("sans-serif").
		TextAnchor(anchor).
		Child(builder.Path().Class("domain").Stroke("currentColor").D(a.domainPath()))

	for _, t := range a.scale.AxisTicks(a.count) {
		g.Children(a.tick(t))
	}
	g.Children(a.extras...)

	return g.Build()
}

func (a *Axis) domainPath() string {
	r0, r1 := a.scale.Range()
	r0 += offset
	r1 += offset
	outer := a.k() * a.tickSizeOuter

	if a.vertical() {
		if a.tickSizeOuter != 0 {
			return "M" + num(outer) + "," + num(r0) + "H" + num(offset) + "V" + num(r1) + "H" + num(outer)
		}
		return "M" + num(offset) + "," + num(r0) + "V" + num(r1)
	}
	if a.tickSizeOuter != 0 {
		return "M" + num(r0) + "," + num(outer) + "V" + num(offset) + "H" + num(r1) + "V" + num(outer)
	}
	return "M" + num(r0) + "," + num(offset) + "H" + num(r1)
}

func (a *Axis) position(t scale.Tick) float64 {
	p := t.Position
	if bw := a.scale.Bandwidth(); bw > 0 {
		p += math.Max(0, bw-offset*2) / 2
	}
	return p + offset
}

func (a *Axis) tick(t scale.Tick) *vdom.VNode {
	k := a.k()
	spacing := math.Max(a.tickSizeInner, 0) + a.tickPadding
	pos := a.position(t)

	g := builder.G().Class("tick").Opacity(1).Key(t.Label)
	line := builder.Line().Stroke("currentColor")
	text := builder.Text().Fill("currentColor").Content(t.Label)

	var grid *builder.ElementBuilder
	if a.gridLength != 0 {
		grid = builder.Line().Stroke("currentColor").StrokeOpacity(a.gridOpacity)
	}

	if a.vertical() {
		g.Translate(0, pos)
		line.X2(k * a.tickSizeInner)
		text.X(k * spacing).Dy("0.32em")
		if grid != nil {
			grid.X2(-k * a.gridLength)
		}
	} else {
		g.Translate(pos, 0)
		line.Y2(k * a.tickSizeInner)
		dy := "0.71em"
		if a.orient == Top {
			dy = "0em"
		}
		text.Y(k * spacing).Dy(dy)
		if grid != nil {
			grid.Y2(-k * a.gridLength)
		}
	}

	g.Child(line)
	if grid != nil {
		g.Child(grid)
	}
	return g.Child(text).Build()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
