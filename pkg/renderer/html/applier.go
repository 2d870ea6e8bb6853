package html

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/recera/vangochart/pkg/vango/vdom"
)

// svgNamespace is added to a root <svg> when rendering standalone documents
const svgNamespace = "http://www.w3.org/2000/svg"

// Applier renders VNodes to SVG markup. Attributes are written in sorted
// order so equal trees always produce identical bytes, and childless
// elements self-close.
type Applier struct {
	w          io.Writer
	standalone bool
	err        error
}

// Option configures an Applier
type Option func(*Applier)

// Standalone adds the SVG namespace to a root <svg> element so the output
// is a valid .svg file on its own.
func Standalone() Option {
	return func(a *Applier) {
		a.standalone = true
	}
}

// NewApplier creates a new markup applier
func NewApplier(w io.Writer, opts ...Option) *Applier {
	a := &Applier{w: w}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply renders a VNode tree. Incremental updates are not supported;
// use vdom.Diff to compute patches instead.
func (a *Applier) Apply(prev, next *vdom.VNode) error {
	if prev != nil {
		return fmt.Errorf("html applier does not support incremental updates")
	}
	if next == nil {
		return nil
	}

	if a.standalone && next.Kind == vdom.KindElement && next.Tag == "svg" {
		if _, ok := next.Props["xmlns"]; !ok {
			root := *next
			root.Props = make(vdom.Props, len(next.Props)+1)
			for k, v := range next.Props {
				root.Props[k] = v
			}
			root.Props["xmlns"] = svgNamespace
			next = &root
		}
	}

	a.renderNode(next)
	return a.err
}

// write helper that tracks errors
func (a *Applier) write(s string) {
	if a.err != nil {
		return
	}
	_, a.err = io.WriteString(a.w, s)
}

func (a *Applier) renderNode(node *vdom.VNode) {
	if node == nil || a.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindText:
		a.write(html.EscapeString(node.Text))

	case vdom.KindElement:
		a.renderElement(node)

	case vdom.KindFragment:
		for i := range node.Kids {
			a.renderNode(&node.Kids[i])
		}
	}
}

func (a *Applier) renderElement(node *vdom.VNode) {
	a.write("<")
	a.write(node.Tag)

	for _, key := range node.Props.Keys() {
		a.write(" ")
		a.write(key)
		a.write(`="`)
		a.write(html.EscapeString(vdom.PropString(node.Props[key])))
		a.write(`"`)
	}

	if len(node.Kids) == 0 {
		a.write("/>")
		return
	}

	a.write(">")
	for i := range node.Kids {
		a.renderNode(&node.Kids[i])
	}
	a.write("</")
	a.write(node.Tag)
	a.write(">")
}

// RenderToString is a convenience function to render a VNode to a string
func RenderToString(node *vdom.VNode, opts ...Option) (string, error) {
	var buf strings.Builder
	if err := NewApplier(&buf, opts...).Apply(nil, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}
