package treecache

import "github.com/pbehr/axscope/internal/hierarchy"

// Node is a cached snapshot of one element in the inspected hierarchy. Nodes
// are created by the cache on first access and owned by it for the cache's
// whole lifetime; identity is pointer identity, so two lookups of the same
// element always return the same *Node. A node whose element has been
// destroyed keeps its last known attributes but reports Exists() == false and
// stays a permanent leaf.
type Node struct {
	ref    hierarchy.ElementRef
	parent *Node
	index  int // index within the parent's children; 0 for the root

	attrs  hierarchy.AttributeSet
	exists bool

	children  map[int]*Node
	populated bool // children fetched (or permanently empty for gone nodes)
}

// Ref returns the provider reference of the element this node mirrors.
func (n *Node) Ref() hierarchy.ElementRef {
	return n.ref
}

// Exists reports whether the underlying element still existed at the last
// provider contact. Once false it never flips back.
func (n *Node) Exists() bool {
	return n != nil && n.exists
}

// Attributes returns the cached attribute snapshot.
func (n *Node) Attributes() hierarchy.AttributeSet {
	if n == nil {
		return hierarchy.AttributeSet{}
	}
	return n.attrs
}

// HasChildren reports whether the element had children at fetch time. A
// destroyed node never has children.
func (n *Node) HasChildren() bool {
	return n != nil && n.exists && n.attrs.ChildCount > 0
}

// dropDescendants forgets all cached children below n. The nodes themselves
// become unreachable; the next child access re-fetches from the provider.
// Gone nodes stay populated-and-empty so they are never re-fetched.
func (n *Node) dropDescendants() {
	if n == nil {
		return
	}
	n.children = nil
	if n.exists {
		n.populated = false
	}
}

// markGone records that the provider reported the element destroyed. The
// cached attributes stay addressable; the child list is permanently empty.
func (n *Node) markGone() {
	n.exists = false
	n.attrs.ChildCount = 0
	n.children = nil
	n.populated = true
}
