package vdom

import (
	"fmt"
)

// PatchOp represents the type of patch operation
type PatchOp uint8

const (
	// OpReplaceText replaces text node content
	OpReplaceText PatchOp = 0x01
	// OpSetAttribute sets or replaces an attribute
	OpSetAttribute PatchOp = 0x02
	// OpRemoveNode removes a node
	OpRemoveNode PatchOp = 0x03
	// OpInsertNode inserts a new node
	OpInsertNode PatchOp = 0x04
	// OpRemoveAttribute removes an attribute
	OpRemoveAttribute PatchOp = 0x06
	// OpMoveNode moves a node to a new position
	OpMoveNode PatchOp = 0x07
)

// Patch represents a single mutation of a rendered tree
type Patch struct {
	Op       PatchOp
	NodeID   uint32
	ParentID uint32 // For insert and move operations
	BeforeID uint32 // For move operations (0 means append)
	Key      string // Attribute key for set/remove attribute
	Value    string // Text content or attribute value
	Node     *VNode // For insert operations
}

// String returns a human-readable representation of the patch
func (p Patch) String() string {
	switch p.Op {
	case OpReplaceText:
		return fmt.Sprintf("ReplaceText(node=%d, text=%q)", p.NodeID, p.Value)
	case OpSetAttribute:
		return fmt.Sprintf("SetAttribute(node=%d, key=%q, value=%q)", p.NodeID, p.Key, p.Value)
	case OpRemoveAttribute:
		return fmt.Sprintf("RemoveAttribute(node=%d, key=%q)", p.NodeID, p.Key)
	case OpRemoveNode:
		return fmt.Sprintf("RemoveNode(node=%d)", p.NodeID)
	case OpInsertNode:
		return fmt.Sprintf("InsertNode(node=%d, parent=%d)", p.NodeID, p.ParentID)
	case OpMoveNode:
		return fmt.Sprintf("MoveNode(node=%d, parent=%d, before=%d)", p.NodeID, p.ParentID, p.BeforeID)
	default:
		return fmt.Sprintf("Unknown(op=%d)", p.Op)
	}
}

// diffContext holds state during diffing
type diffContext struct {
	patches     []Patch
	nodeCounter uint32
	nodeMap     map[*VNode]uint32
}

func newDiffContext() *diffContext {
	return &diffContext{
		patches:     make([]Patch, 0, 16),
		nodeCounter: 1,
		nodeMap:     make(map[*VNode]uint32),
	}
}

// getNodeID gets or assigns a node ID
func (ctx *diffContext) getNodeID(node *VNode) uint32 {
	if node == nil {
		return 0
	}
	if id, ok := ctx.nodeMap[node]; ok {
		return id
	}
	id := ctx.nodeCounter
	ctx.nodeCounter++
	ctx.nodeMap[node] = id
	return id
}

func (ctx *diffContext) addPatch(patch Patch) {
	ctx.patches = append(ctx.patches, patch)
}

// Diff computes the patches needed to transform prev into next.
// Two structurally identical trees produce an empty slice.
func Diff(prev, next *VNode) []Patch {
	ctx := newDiffContext()
	diffNode(ctx, prev, next, 0)
	return ctx.patches
}

// Equal reports whether two trees render identically.
func Equal(a, b *VNode) bool {
	return len(Diff(a, b)) == 0
}

func diffNode(ctx *diffContext, prev, next *VNode, parentID uint32) {
	if prev == nil && next == nil {
		return
	}

	if prev != nil && next == nil {
		ctx.addPatch(Patch{
			Op:     OpRemoveNode,
			NodeID: ctx.getNodeID(prev),
		})
		return
	}

	if prev == nil {
		ctx.addPatch(Patch{
			Op:       OpInsertNode,
			NodeID:   ctx.getNodeID(next),
			ParentID: parentID,
			Node:     next,
		})
		return
	}

	// Different node types - replace
	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		ctx.addPatch(Patch{
			Op:     OpRemoveNode,
			NodeID: ctx.getNodeID(prev),
		})
		ctx.addPatch(Patch{
			Op:       OpInsertNode,
			NodeID:   ctx.getNodeID(next),
			ParentID: parentID,
			Node:     next,
		})
		return
	}

	nodeID := ctx.getNodeID(prev)
	ctx.nodeMap[next] = nodeID

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			ctx.addPatch(Patch{
				Op:     OpReplaceText,
				NodeID: nodeID,
				Value:  next.Text,
			})
		}

	case KindElement:
		diffProps(ctx, nodeID, prev.Props, next.Props)
		diffChildren(ctx, nodeID, prev.Kids, next.Kids)

	case KindFragment:
		diffChildren(ctx, nodeID, prev.Kids, next.Kids)
	}
}

// diffProps diffs attributes in sorted key order so patch lists are stable
func diffProps(ctx *diffContext, nodeID uint32, prevProps, nextProps Props) {
	for _, key := range prevProps.Keys() {
		nextVal, exists := nextProps[key]
		if !exists {
			ctx.addPatch(Patch{
				Op:     OpRemoveAttribute,
				NodeID: nodeID,
				Key:    key,
			})
			continue
		}
		if PropString(prevProps[key]) != PropString(nextVal) {
			ctx.addPatch(Patch{
				Op:     OpSetAttribute,
				NodeID: nodeID,
				Key:    key,
				Value:  PropString(nextVal),
			})
		}
	}

	for _, key := range nextProps.Keys() {
		if _, exists := prevProps[key]; exists {
			continue
		}
		ctx.addPatch(Patch{
			Op:     OpSetAttribute,
			NodeID: nodeID,
			Key:    key,
			Value:  PropString(nextProps[key]),
		})
	}
}

// diffChildren diffs child nodes with keyed and unkeyed reconciliation
func diffChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []VNode) {
	if len(prevKids) == 0 && len(nextKids) == 0 {
		return
	}

	hasKeys := false
	for i := range nextKids {
		if nextKids[i].GetKey() != "" {
			hasKeys = true
			break
		}
	}

	if hasKeys {
		diffKeyedChildren(ctx, parentID, prevKids, nextKids)
	} else {
		diffUnkeyedChildren(ctx, parentID, prevKids, nextKids)
	}
}

// diffUnkeyedChildren performs simple index-based diffing
func diffUnkeyedChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []VNode) {
	minLen := min(len(prevKids), len(nextKids))

	for i := 0; i < minLen; i++ {
		diffNode(ctx, &prevKids[i], &nextKids[i], parentID)
	}
	for i := minLen; i < len(prevKids); i++ {
		diffNode(ctx, &prevKids[i], nil, parentID)
	}
	for i := minLen; i < len(nextKids); i++ {
		diffNode(ctx, nil, &nextKids[i], parentID)
	}
}

// diffKeyedChildren matches children by key, so a bar that keeps its index
// is updated in place rather than recreated
func diffKeyedChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []VNode) {
	prevKeyed := make(map[string]int)
	for i := range prevKids {
		if key := prevKids[i].GetKey(); key != "" {
			prevKeyed[key] = i
		}
	}

	matched := make([]bool, len(prevKids))

	type move struct {
		nodeID   uint32
		newIndex int
	}
	var moves []move

	for nextIdx := range nextKids {
		nextChild := &nextKids[nextIdx]
		key := nextChild.GetKey()

		if key != "" {
			if prevIdx, found := prevKeyed[key]; found {
				matched[prevIdx] = true
				nodeID := ctx.getNodeID(&prevKids[prevIdx])
				diffNode(ctx, &prevKids[prevIdx], nextChild, parentID)
				if prevIdx != nextIdx {
					moves = append(moves, move{nodeID, nextIdx})
				}
			} else {
				diffNode(ctx, nil, nextChild, parentID)
			}
			continue
		}

		if nextIdx < len(prevKids) && prevKids[nextIdx].GetKey() == "" && !matched[nextIdx] {
			matched[nextIdx] = true
			diffNode(ctx, &prevKids[nextIdx], nextChild, parentID)
		} else {
			diffNode(ctx, nil, nextChild, parentID)
		}
	}

	for i, wasMatched := range matched {
		if !wasMatched {
			diffNode(ctx, &prevKids[i], nil, parentID)
		}
	}

	for _, m := range moves {
		var beforeID uint32
		if m.newIndex+1 < len(nextKids) {
			beforeID = ctx.getNodeID(&nextKids[m.newIndex+1])
		}
		ctx.addPatch(Patch{
			Op:       OpMoveNode,
			NodeID:   m.nodeID,
			ParentID: parentID,
			BeforeID: beforeID,
		})
	}
}
