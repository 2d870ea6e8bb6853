package terminal

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recera/vangochart/pkg/barchart"
)

const (
	minCols  = 10
	barRune  = "█"
	gutter   = " │"
	axisRune = "─"
)

// Render draws l as text: a top axis of tick labels followed by one row
// per bar. The plot area is cols cells wide and uses the same x scale as
// the SVG chart, so proportions and tick labels match.
func Render(l *barchart.Layout, cols int) string {
	if cols < minCols {
		cols = minCols
	}

	labelWidth := 0
	for _, b := range l.Bars {
		if w := lipgloss.Width(b.Label); w > labelWidth {
			labelWidth = w
		}
	}

	r0, r1 := l.X.Range()
	cell := func(px float64) int {
		if r1 == r0 {
			return 0
		}
		c := int(math.Round((px - r0) / (r1 - r0) * float64(cols)))
		return max(0, min(cols, c))
	}

	indent := strings.Repeat(" ", labelWidth+lipgloss.Width(gutter))
	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteString(axisStyle.Render(tickRow(l, cols, cell)))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", labelWidth+1))
	sb.WriteString(axisStyle.Render("┌" + strings.Repeat(axisRune, cols)))
	sb.WriteString("\n")

	for _, b := range l.Bars {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label))
		sb.WriteString(pad)
		sb.WriteString(labelStyle.Render(b.Label))
		sb.WriteString(axisStyle.Render(gutter))
		sb.WriteString(bar(b, cell(b.End)-cell(b.X)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// bar draws one bar n cells long. Values that fit are drawn inside the bar
// end, mirroring the SVG label placement; the rest follow the bar.
func bar(b barchart.Bar, n int) string {
	text := " " + b.Text
	w := lipgloss.Width(text)
	if b.Inside && n > w {
		return barStyle.Render(strings.Repeat(barRune, n-w)) + insideValueStyle.Render(text)
	}
	return barStyle.Render(strings.Repeat(barRune, n)) + outsideValueStyle.Render(text)
}

// tickRow lays out x tick labels centred on their cells, dropping any that
// would overlap the previous label.
func tickRow(l *barchart.Layout, cols int, cell func(float64) int) string {
	o := l.Options
	row := []rune(strings.Repeat(" ", cols+1))
	end := -1
	for _, t := range l.X.AxisTicks(o.Width / o.PixelsPerTick) {
		label := []rune(t.Label)
		start := cell(t.Position) - len(label)/2
		start = max(0, min(len(row)-len(label), start))
		if start <= end || start < 0 {
			continue
		}
		copy(row[start:], label)
		end = start + len(label)
	}
	return strings.TrimRight(string(row), " ")
}
