// Package tree implements an array-backed rose tree with O(1)
// parent/sibling navigation, built incrementally from an XML-like
// open/close event stream.
//
// Nodes live in a single slice in document order. A parallel
// neighbour table gives, per index, the parent, previous sibling and
// next sibling indices (-1 at a boundary). The root is always index
// 0, and the parent of node i always has an index smaller than i.
package tree

import "iter"

// noIndex marks the absence of a parent/sibling.
const noIndex = -1

// Tree is an immutable, array-backed rose tree of values of type V.
//
// A Tree is built once via a Builder and then only navigated, except
// for SetNode, which lets a single owner overwrite a node's value in
// place (used to stamp matching identifiers onto nodes after the fact
// without reshaping the tree).
type Tree[V any] struct {
	nodes       []V
	parent      []int
	prevSibling []int
	nextSibling []int
}

// Len returns the number of nodes in t.
func (t *Tree[V]) Len() int { return len(t.nodes) }

// Node returns the value stored at index i.
func (t *Tree[V]) Node(i int) V { return t.nodes[i] }

// SetNode overwrites the value stored at index i.
func (t *Tree[V]) SetNode(i int, v V) { t.nodes[i] = v }

// Parent returns the parent of i, or (-1, false) if i is the root.
func (t *Tree[V]) Parent(i int) (int, bool) {
	p := t.parent[i]
	return p, p != noIndex
}

// PrevSibling returns the node immediately before i under the same
// parent, or (-1, false) if i is a first child.
func (t *Tree[V]) PrevSibling(i int) (int, bool) {
	p := t.prevSibling[i]
	return p, p != noIndex
}

// NextSibling returns the node immediately after i under the same
// parent, or (-1, false) if i is a last child.
func (t *Tree[V]) NextSibling(i int) (int, bool) {
	n := t.nextSibling[i]
	return n, n != noIndex
}

// FirstChild returns the first child of i, or (0, false) if i is a
// leaf.
//
// The tree invariant that a node's first child is always at index
// i+1 means this is a single bounds check and a parent-pointer
// comparison, with no table lookup needed.
func (t *Tree[V]) FirstChild(i int) (int, bool) {
	c := i + 1
	if c >= len(t.nodes) {
		return 0, false
	}
	if p, ok := t.Parent(c); !ok || p != i {
		return 0, false
	}
	return c, true
}

// IsLeaf reports whether i has no children.
func (t *Tree[V]) IsLeaf(i int) bool {
	_, ok := t.FirstChild(i)
	return !ok
}

// Children iterates the direct children of i in document order.
func (t *Tree[V]) Children(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		c, ok := t.FirstChild(i)
		for ok {
			if !yield(c) {
				return
			}
			c, ok = t.NextSibling(c)
		}
	}
}

// ChildCount returns the number of direct children of i.
func (t *Tree[V]) ChildCount(i int) int {
	n := 0
	for range t.Children(i) {
		n++
	}
	return n
}

// DFS iterates every node of t in document (pre-)order, starting at
// the root.
func (t *Tree[V]) DFS() iter.Seq[int] {
	return func(yield func(int) bool) {
		var walk func(int) bool
		walk = func(i int) bool {
			if !yield(i) {
				return false
			}
			for c := range t.Children(i) {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		if t.Len() > 0 {
			walk(0)
		}
	}
}

// Fold computes, for every node of t, a result value built from the
// node and the already-computed results of its children.
//
// f is called with children already processed, because Fold walks
// indices in reverse: the tree invariant that a parent's index is
// always smaller than any of its descendants' guarantees every child
// result is ready before its parent needs it.
func Fold[V any, R any](t *Tree[V], f func(idx int, node V, children []R) R) []R {
	n := t.Len()
	results := make([]R, n)
	for i := n - 1; i >= 0; i-- {
		var childResults []R
		for c := range t.Children(i) {
			childResults = append(childResults, results[c])
		}
		results[i] = f(i, t.Node(i), childResults)
	}
	return results
}

// Collect recursively collects the indices of every node for which
// keep returns true, in document order.
func Collect[V any](t *Tree[V], keep func(idx int, v V) bool) []int {
	var ret []int
	for i := range t.DFS() {
		if keep(i, t.Node(i)) {
			ret = append(ret, i)
		}
	}
	return ret
}
