package treecache

import (
	"strconv"
	"strings"
)

// IndexPath is a root-to-node address: an ordered sequence of child indices.
// The first component is always 0, the single synthetic root-selector slot; a
// node's level is its position in the sequence, so a path of length n+1
// addresses a node at level n.
type IndexPath []int

// Level returns the level of the node the path addresses, or -1 for an empty
// path.
func (p IndexPath) Level() int {
	return len(p) - 1
}

// Clone returns an independent copy of the path.
func (p IndexPath) Clone() IndexPath {
	if p == nil {
		return nil
	}
	out := make(IndexPath, len(p))
	copy(out, p)
	return out
}

// Equal reports whether p and q address the same node.
func (p IndexPath) Equal(q IndexPath) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether p is a (not necessarily proper) prefix of q.
// Two nodes are on the same selection branch iff one's path is a prefix of
// the other's.
func (p IndexPath) IsPrefixOf(q IndexPath) bool {
	if len(p) > len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// String renders the path in the conventional bracketed form, e.g. "[0 2 1]".
func (p IndexPath) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, idx := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	b.WriteByte(']')
	return b.String()
}
