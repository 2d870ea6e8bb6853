package vdom

import (
	"fmt"
	"sort"
	"strings"
)

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents an element node (svg, g, rect, ...)
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindFragment represents a fragment (multiple children without parent)
	KindFragment
)

// Props represents the attributes of a VNode
type Props map[string]any

// Keys returns the attribute names in sorted order, skipping "key".
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		if k == "key" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// VNode represents a virtual drawable node.
// This struct is immutable - once created, it should never be modified
type VNode struct {
	// Kind determines the type of this node
	Kind VKind

	// Tag is the element tag name (e.g., "svg", "rect")
	// Only used when Kind == KindElement
	Tag string

	// Props contains all attributes for this node
	Props Props

	// Kids contains child nodes
	Kids []VNode

	// Key identifies the node among its siblings, e.g. the data index a bar
	// was generated from. Empty string means no key
	Key string

	// Text content (only used when Kind == KindText)
	Text string
}

// NewElement creates a new element VNode
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	var key string
	if props != nil {
		if k, ok := props["key"].(string); ok {
			key = k
		}
	}

	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  collect(children),
		Key:   key,
	}
}

// NewText creates a new text VNode
func NewText(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// NewFragment creates a new fragment VNode
func NewFragment(children ...*VNode) *VNode {
	return &VNode{
		Kind: KindFragment,
		Kids: collect(children),
	}
}

// collect converts children pointers to values, dropping nils
func collect(children []*VNode) []VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return kids
}

// IsElement returns true if this is an element node
func (v VNode) IsElement() bool {
	return v.Kind == KindElement
}

// IsText returns true if this is a text node
func (v VNode) IsText() bool {
	return v.Kind == KindText
}

// IsFragment returns true if this is a fragment node
func (v VNode) IsFragment() bool {
	return v.Kind == KindFragment
}

// GetKey returns the key of this node, handling the Props map safely
func (v VNode) GetKey() string {
	if v.Key != "" {
		return v.Key
	}
	if v.Props != nil {
		if key, ok := v.Props["key"].(string); ok {
			return key
		}
	}
	return ""
}

// Attr returns the attribute value formatted as a string and whether it was set.
func (v VNode) Attr(name string) (string, bool) {
	if v.Props == nil {
		return "", false
	}
	val, ok := v.Props[name]
	if !ok {
		return "", false
	}
	return PropString(val), true
}

// TextContent returns the concatenated text of the node and its descendants.
func (v VNode) TextContent() string {
	if v.Kind == KindText {
		return v.Text
	}
	var sb strings.Builder
	for i := range v.Kids {
		sb.WriteString(v.Kids[i].TextContent())
	}
	return sb.String()
}

// PropString formats an attribute value the way it is serialised.
// Floats use the shortest representation that round-trips.
func PropString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
