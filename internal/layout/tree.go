package layout

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRatio = errors.New("layout: split ratio must be within (0, 1)")
	ErrPaneNotFound = errors.New("layout: pane not found")
)

// Node is either a leaf holding a pane id or a split with two children.
// Leaves have nil First and Second.
type Node struct {
	PaneID    string
	Direction Direction
	Ratio     float64
	First     *Node
	Second    *Node
}

func NewLeaf(paneID string) *Node {
	return &Node{PaneID: paneID}
}

// NewSplit joins two subtrees. Ratios outside (0, 1) are rejected.
func NewSplit(dir Direction, ratio float64, first, second *Node) (*Node, error) {
	if !(ratio > 0 && ratio < 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}
	if first == nil || second == nil {
		return nil, errors.New("layout: split requires two children")
	}
	return &Node{Direction: dir, Ratio: ratio, First: first, Second: second}, nil
}

func (n *Node) IsLeaf() bool {
	return n != nil && n.First == nil && n.Second == nil
}

// PaneIDs lists leaves in stable in-order (first before second).
func PaneIDs(root *Node) []string {
	var out []string
	walkLeaves(root, func(n *Node) { out = append(out, n.PaneID) })
	return out
}

func walkLeaves(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		fn(n)
		return
	}
	walkLeaves(n.First, fn)
	walkLeaves(n.Second, fn)
}

func Count(root *Node) int {
	count := 0
	walkLeaves(root, func(*Node) { count++ })
	return count
}

func Contains(root *Node, paneID string) bool {
	return findLeaf(root, paneID) != nil
}

func FirstPaneID(root *Node) string {
	ids := PaneIDs(root)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func findLeaf(n *Node, paneID string) *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		if n.PaneID == paneID {
			return n
		}
		return nil
	}
	if leaf := findLeaf(n.First, paneID); leaf != nil {
		return leaf
	}
	return findLeaf(n.Second, paneID)
}

// pathTo returns the chain of nodes from root to the leaf, inclusive.
func pathTo(root *Node, paneID string) []*Node {
	if root == nil {
		return nil
	}
	if root.IsLeaf() {
		if root.PaneID == paneID {
			return []*Node{root}
		}
		return nil
	}
	for _, child := range []*Node{root.First, root.Second} {
		if p := pathTo(child, paneID); p != nil {
			return append([]*Node{root}, p...)
		}
	}
	return nil
}

// Clone deep-copies the tree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.First = n.First.Clone()
	out.Second = n.Second.Clone()
	return &out
}

// SplitAt replaces the leaf for target with a split holding the old leaf
// first and newID second. The input tree is not modified.
func SplitAt(root *Node, target, newID string, dir Direction, ratio float64) (*Node, error) {
	if root == nil {
		return nil, ErrPaneNotFound
	}
	if root.IsLeaf() {
		if root.PaneID != target {
			return nil, ErrPaneNotFound
		}
		return NewSplit(dir, ratio, NewLeaf(root.PaneID), NewLeaf(newID))
	}
	out := *root
	var err error
	if Contains(root.First, target) {
		out.First, err = SplitAt(root.First, target, newID, dir, ratio)
	} else {
		out.Second, err = SplitAt(root.Second, target, newID, dir, ratio)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Remove drops the leaf for paneID and collapses its parent split into the
// sibling. Removing the last leaf yields nil.
func Remove(root *Node, paneID string) (*Node, error) {
	if !Contains(root, paneID) {
		return root, ErrPaneNotFound
	}
	return remove(root, paneID), nil
}

func remove(n *Node, paneID string) *Node {
	if n.IsLeaf() {
		return nil
	}
	if n.First.IsLeaf() && n.First.PaneID == paneID {
		return n.Second
	}
	if n.Second.IsLeaf() && n.Second.PaneID == paneID {
		return n.First
	}
	out := *n
	if Contains(n.First, paneID) {
		out.First = remove(n.First, paneID)
	} else {
		out.Second = remove(n.Second, paneID)
	}
	return &out
}
