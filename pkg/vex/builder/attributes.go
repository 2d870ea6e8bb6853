package builder

import (
	"fmt"
	"strings"

	"github.com/recera/vangochart/pkg/vango/vdom"
)

// === Geometry ===

// X sets the x attribute
func (b *ElementBuilder) X(x float64) *ElementBuilder {
	b.props["x"] = x
	return b
}

// Y sets the y attribute
func (b *ElementBuilder) Y(y float64) *ElementBuilder {
	b.props["y"] = y
	return b
}

// X1 sets the x1 attribute (for lines)
func (b *ElementBuilder) X1(x float64) *ElementBuilder {
	b.props["x1"] = x
	return b
}

// Y1 sets the y1 attribute (for lines)
func (b *ElementBuilder) Y1(y float64) *ElementBuilder {
	b.props["y1"] = y
	return b
}

// X2 sets the x2 attribute (for lines)
func (b *ElementBuilder) X2(x float64) *ElementBuilder {
	b.props["x2"] = x
	return b
}

// Y2 sets the y2 attribute (for lines)
func (b *ElementBuilder) Y2(y float64) *ElementBuilder {
	b.props["y2"] = y
	return b
}

// Width sets the width attribute
func (b *ElementBuilder) Width(width float64) *ElementBuilder {
	b.props["width"] = width
	return b
}

// Height sets the height attribute
func (b *ElementBuilder) Height(height float64) *ElementBuilder {
	b.props["height"] = height
	return b
}

// ViewBox sets the viewBox attribute, comma separated
func (b *ElementBuilder) ViewBox(minX, minY, width, height float64) *ElementBuilder {
	parts := []string{
		vdom.PropString(minX), vdom.PropString(minY),
		vdom.PropString(width), vdom.PropString(height),
	}
	b.props["viewBox"] = strings.Join(parts, ",")
	return b
}

// D sets the path data
func (b *ElementBuilder) D(d string) *ElementBuilder {
	b.props["d"] = d
	return b
}

// Translate sets transform="translate(x,y)"
func (b *ElementBuilder) Translate(x, y float64) *ElementBuilder {
	b.props["transform"] = fmt.Sprintf("translate(%s,%s)", vdom.PropString(x), vdom.PropString(y))
	return b
}

// === Presentation ===

// Fill sets the fill attribute
func (b *ElementBuilder) Fill(fill string) *ElementBuilder {
	b.props["fill"] = fill
	return b
}

// Stroke sets the stroke attribute
func (b *ElementBuilder) Stroke(stroke string) *ElementBuilder {
	b.props["stroke"] = stroke
	return b
}

// StrokeOpacity sets the stroke-opacity attribute
func (b *ElementBuilder) StrokeOpacity(opacity float64) *ElementBuilder {
	b.props["stroke-opacity"] = opacity
	return b
}

// Opacity sets the opacity attribute
func (b *ElementBuilder) Opacity(opacity float64) *ElementBuilder {
	b.props["opacity"] = opacity
	return b
}

// Style sets the inline style attribute
func (b *ElementBuilder) Style(style string) *ElementBuilder {
	b.props["style"] = style
	return b
}

// Class sets the class attribute
func (b *ElementBuilder) Class(class string) *ElementBuilder {
	b.props["class"] = class
	return b
}

// === Text ===

// TextAnchor sets the text-anchor attribute (start, middle, end)
func (b *ElementBuilder) TextAnchor(anchor string) *ElementBuilder {
	b.props["text-anchor"] = anchor
	return b
}

// FontFamily sets the font-family attribute
func (b *ElementBuilder) FontFamily(family string) *ElementBuilder {
	b.props["font-family"] = family
	return b
}

// FontSize sets the font-size attribute
func (b *ElementBuilder) FontSize(size float64) *ElementBuilder {
	b.props["font-size"] = size
	return b
}

// Dx sets the dx attribute
func (b *ElementBuilder) Dx(dx float64) *ElementBuilder {
	b.props["dx"] = dx
	return b
}

// Dy sets the dy attribute. Accepts units, e.g. "0.35em"
func (b *ElementBuilder) Dy(dy string) *ElementBuilder {
	b.props["dy"] = dy
	return b
}

// === Identity ===

// Key sets the reconciliation key; it is never serialised
func (b *ElementBuilder) Key(key string) *ElementBuilder {
	b.props["key"] = key
	return b
}

// ID sets the id attribute
func (b *ElementBuilder) ID(id string) *ElementBuilder {
	b.props["id"] = id
	return b
}

// Data sets a data attribute
func (b *ElementBuilder) Data(key, value string) *ElementBuilder {
	b.props["data-"+key] = value
	return b
}

// Attr sets a custom attribute
func (b *ElementBuilder) Attr(key string, value any) *ElementBuilder {
	b.props[key] = value
	return b
}
