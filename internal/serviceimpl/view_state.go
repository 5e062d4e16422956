package serviceimpl

import (
	"github.com/PayRam/go-team-tree/models"
	"github.com/PayRam/go-team-tree/service"
)

// treeViewState is the expand/collapse set of a single consumer. It keys on
// MemberID, which is unique across the tree, and holds a reference to the
// tree's root so ExpandAll can enumerate every node.
type treeViewState struct {
	root     *models.MemberNode
	expanded map[string]bool
}

var _ service.TreeViewState = &treeViewState{}

func newTreeViewState(root *models.MemberNode) *treeViewState {
	v := &treeViewState{}
	v.Reset(root)
	return v
}

// Reset discards all state and reinitialises against a freshly built tree.
// Must be called on every re-fetch; ids from a previous tree generation are
// never carried forward.
func (v *treeViewState) Reset(root *models.MemberNode) {
	v.root = root
	v.expanded = make(map[string]bool)
	if root != nil {
		v.expanded[root.MemberID] = true
	}
}

// Toggle flips a node between expanded and collapsed. Toggling a leaf is
// legal and has no visible effect; the UI hides the control for leaves rather
// than rejecting the call here.
func (v *treeViewState) Toggle(id string) {
	if v.expanded[id] {
		delete(v.expanded, id)
		return
	}
	v.expanded[id] = true
}

// ExpandAll replaces the set wholesale with every id in the tree, so the
// result is the same regardless of prior state.
func (v *treeViewState) ExpandAll() {
	next := make(map[string]bool)
	var walk func(node *models.MemberNode)
	walk = func(node *models.MemberNode) {
		if node == nil {
			return
		}
		next[node.MemberID] = true
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(v.root)
	v.expanded = next
}

// CollapseAll resets to just the root. Idempotent.
func (v *treeViewState) CollapseAll() {
	v.expanded = make(map[string]bool)
	if v.root != nil {
		v.expanded[v.root.MemberID] = true
	}
}

// IsExpanded reports false for unknown ids, which covers refresh races where
// a previously expanded id no longer exists in the current tree.
func (v *treeViewState) IsExpanded(id string) bool {
	return v.expanded[id]
}
