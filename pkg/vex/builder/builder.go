// Package builder provides a fluent API for assembling SVG vdom trees.
//
//	builder.Rect().X(50).Y(34).Width(120).Height(20).Key("0").Build()
package builder

import "github.com/recera/vangochart/pkg/vango/vdom"

// ElementBuilder accumulates the tag, props and children of one element
type ElementBuilder struct {
	tag      string
	props    vdom.Props
	children []*vdom.VNode
}

// El starts a builder for an arbitrary tag
func El(tag string) *ElementBuilder {
	return &ElementBuilder{
		tag:   tag,
		props: make(vdom.Props),
	}
}

// SVG starts an <svg> root element
func SVG() *ElementBuilder { return El("svg") }

// G starts a <g> group element
func G() *ElementBuilder { return El("g") }

// Rect starts a <rect> element
func Rect() *ElementBuilder { return El("rect") }

// Line starts a <line> element
func Line() *ElementBuilder { return El("line") }

// Path starts a <path> element
func Path() *ElementBuilder { return El("path") }

// Text starts a <text> element
func Text() *ElementBuilder { return El("text") }

// Children appends child nodes; nil children are ignored
func (b *ElementBuilder) Children(children ...*vdom.VNode) *ElementBuilder {
	b.children = append(b.children, children...)
	return b
}

// Child appends the result of another builder
func (b *ElementBuilder) Child(child *ElementBuilder) *ElementBuilder {
	if child != nil {
		b.children = append(b.children, child.Build())
	}
	return b
}

// Content appends a text node
func (b *ElementBuilder) Content(text string) *ElementBuilder {
	b.children = append(b.children, vdom.NewText(text))
	return b
}

// Build produces the immutable node. The builder must not be reused afterwards.
func (b *ElementBuilder) Build() *vdom.VNode {
	return vdom.NewElement(b.tag, b.props, b.children...)
}
