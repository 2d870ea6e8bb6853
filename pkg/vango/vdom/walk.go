package vdom

import (
	"math"
	"strconv"
)

// Walk visits v and its descendants depth-first in document order.
// Returning false from fn stops descent into that node's children.
func Walk(v *VNode, fn func(n *VNode) bool) {
	if v == nil {
		return
	}
	if !fn(v) {
		return
	}
	for i := range v.Kids {
		Walk(&v.Kids[i], fn)
	}
}

// FindAll returns every element below (and including) v that matches pred.
func FindAll(v *VNode, pred func(n *VNode) bool) []*VNode {
	var out []*VNode
	Walk(v, func(n *VNode) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first node matching pred, or nil.
func Find(v *VNode, pred func(n *VNode) bool) *VNode {
	var found *VNode
	Walk(v, func(n *VNode) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// ByTag matches element nodes with the given tag.
func ByTag(tag string) func(n *VNode) bool {
	return func(n *VNode) bool {
		return n.Kind == KindElement && n.Tag == tag
	}
}

// ByClass matches element nodes whose class attribute equals class.
func ByClass(class string) func(n *VNode) bool {
	return func(n *VNode) bool {
		c, ok := n.Attr("class")
		return n.Kind == KindElement && ok && c == class
	}
}

func formatFloat(f float64) string {
	if f == 0 {
		return "0" // drops the sign of -0
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
