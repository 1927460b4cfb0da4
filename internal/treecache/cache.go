// Package treecache owns a lazily populated, index-addressed mirror of the
// inspected hierarchy. It is the single component that talks to the
// hierarchy provider, and it maintains the one Current Selection Path every
// presentation reflects, plus a single-slot checkpoint used for speculative
// navigation rollback.
//
// All operations are synchronous and run on the UI goroutine. Provider
// failures never cross the package boundary: a destroyed or unreachable
// element becomes a cached node with Exists() == false and zero children, and
// the rest of the tree keeps working.
package treecache

import (
	"log/slog"

	"github.com/pbehr/axscope/internal/hierarchy"
)

// Cache is the tree cache. The zero value is not usable; construct with New.
type Cache struct {
	logger   *slog.Logger
	provider hierarchy.Provider
	term     Terminology

	root     *Node
	current  IndexPath
	saved    IndexPath
	hasSaved bool
}

// New creates an empty cache over the given provider. A nil logger falls
// back to slog.Default.
func New(provider hierarchy.Provider, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		logger:   logger,
		provider: provider,
		term:     TermNatural,
	}
}

// IsEmpty reports whether no target hierarchy is loaded.
func (c *Cache) IsEmpty() bool {
	return c.root == nil
}

// Seed discards all prior content and loads a new root element. The root's
// immediate children are fetched eagerly so every presentation can show the
// first level right away.
func (c *Cache) Seed(ref hierarchy.ElementRef) {
	c.Reset()

	root := &Node{ref: ref, exists: true}
	attrs, err := c.provider.FetchAttributes(ref)
	if err != nil {
		c.logger.Warn("root attributes unavailable", "ref", string(ref), "err", err)
		root.markGone()
	} else {
		root.attrs = attrs
	}

	c.root = root
	c.current = IndexPath{0}
	c.populateChildren(root)
}

// Reset removes the target; the cache returns to its empty state.
func (c *Cache) Reset() {
	c.root = nil
	c.current = nil
	c.saved = nil
	c.hasSaved = false
}

// Root returns the root node, or nil when the cache is empty.
func (c *Cache) Root() *Node {
	return c.root
}

// NodeAt returns the index-th sibling at the given level along the current
// selection path: ancestors below the requested level are taken from the
// path, the last step takes index. Level 0 is the synthetic root slot.
// Returns nil for anything unresolvable.
func (c *Cache) NodeAt(level, index int) *Node {
	if c.root == nil || level < 0 || index < 0 {
		return nil
	}
	if level == 0 {
		if index != 0 {
			return nil
		}
		return c.root
	}
	parent := c.cachedNodeAt(c.current, level-1)
	if parent == nil {
		return nil
	}
	return c.ChildNode(parent, index)
}

// ChildNode returns child i of n, fetching and caching n's children first if
// needed. Idempotent: repeated calls return the identical *Node with no
// further provider contact.
func (c *Cache) ChildNode(n *Node, i int) *Node {
	if c.root == nil || n == nil || i < 0 {
		return nil
	}
	if !n.populated {
		c.populateChildren(n)
	}
	return n.children[i]
}

// ChildCount returns the cached child count of n; 0 for nil, destroyed or
// leaf nodes. Never triggers a fetch: the count was cached with the node's
// attributes.
func (c *Cache) ChildCount(n *Node) int {
	if n == nil || !n.exists {
		return 0
	}
	return n.attrs.ChildCount
}

// IndexPathOf returns the index path of a node obtained from this cache.
func (c *Cache) IndexPathOf(n *Node) IndexPath {
	if n == nil {
		return nil
	}
	depth := 0
	for m := n; m != nil; m = m.parent {
		depth++
	}
	path := make(IndexPath, depth)
	for m := n; m != nil; m = m.parent {
		depth--
		path[depth] = m.index
	}
	return path
}

// NodeAtPath resolves a full index path, fetching levels on demand. Returns
// nil if the path is malformed or runs past the hierarchy.
func (c *Cache) NodeAtPath(p IndexPath) *Node {
	if c.root == nil || len(p) == 0 || p[0] != 0 {
		return nil
	}
	n := c.root
	for _, idx := range p[1:] {
		n = c.ChildNode(n, idx)
		if n == nil {
			return nil
		}
	}
	return n
}

// CurrentSelectionPath returns a copy of the current selection path, or nil
// when the cache is empty.
func (c *Cache) CurrentSelectionPath() IndexPath {
	return c.current.Clone()
}

// CurrentNode returns the deepest node on the current selection path.
func (c *Cache) CurrentNode() *Node {
	return c.cachedNodeAt(c.current, len(c.current)-1)
}

// UpdateCurrentSelection moves the selection to the node at (level, index).
// Cached children of branches that left the path at or below the changed
// level are discarded, and the newly selected node's immediate children are
// populated eagerly, one level of read-ahead.
//
// An unresolvable (level, index) is a silent no-op; the selector's
// close/commit race produces these in normal operation.
func (c *Cache) UpdateCurrentSelection(level, index int) {
	if c.root == nil {
		return
	}
	target := c.NodeAt(level, index)
	if target == nil {
		c.logger.Debug("selection update ignored",
			"level", level, "index", index, "path", c.current.String())
		return
	}
	old := c.current
	c.current = c.IndexPathOf(target)
	c.discardOffPath(old, c.current)
	c.populateChildren(target)
}

// SaveCurrentSelection checkpoints the current selection path. A second save
// overwrites the first; there is at most one outstanding checkpoint.
func (c *Cache) SaveCurrentSelection() {
	if c.root == nil {
		return
	}
	c.saved = c.current.Clone()
	c.hasSaved = true
}

// RestoreSavedSelection rolls the selection back to the checkpoint and drops
// the branches the abandoned speculative path had populated. No-op without a
// checkpoint.
func (c *Cache) RestoreSavedSelection() {
	if !c.hasSaved {
		return
	}
	old := c.current
	c.current = c.saved
	c.saved = nil
	c.hasSaved = false
	c.discardOffPath(old, c.current)
}

// DiscardSavedSelection commits the current selection: the checkpoint is
// dropped, and branches only the checkpoint was keeping alive are pruned.
func (c *Cache) DiscardSavedSelection() {
	if !c.hasSaved {
		return
	}
	old := c.saved
	c.saved = nil
	c.hasSaved = false
	c.discardOffPath(old, c.current)
}

// HasSavedSelection reports whether a checkpoint is outstanding.
func (c *Cache) HasSavedSelection() bool {
	return c.hasSaved
}

// RefreshAttributes re-fetches a node's attributes on user demand. An
// element reported gone flips the node to destroyed; other failures keep the
// last known snapshot.
func (c *Cache) RefreshAttributes(n *Node) {
	if c.root == nil || n == nil || !n.exists {
		return
	}
	attrs, err := c.provider.FetchAttributes(n.ref)
	if err != nil {
		if hierarchy.IsGone(err) {
			n.markGone()
		} else {
			c.logger.Warn("attribute refresh failed", "ref", string(n.ref), "err", err)
		}
		return
	}
	n.attrs = attrs
	if n.populated && len(n.children) != attrs.ChildCount {
		n.dropDescendants()
	}
}

// CachedChildren returns the currently cached children of n in index order
// without triggering any fetch. Used by snapshot export.
func (c *Cache) CachedChildren(n *Node) []*Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for i := 0; i < n.attrs.ChildCount; i++ {
		if ch, ok := n.children[i]; ok {
			out = append(out, ch)
		}
	}
	return out
}

// populateChildren fetches and caches n's immediate children. A destroyed
// or unreachable element becomes a permanent leaf; re-querying a dead
// reference can hang the provider, so it is never attempted again.
func (c *Cache) populateChildren(n *Node) {
	if n == nil || n.populated {
		return
	}
	refs, err := c.provider.FetchChildren(n.ref)
	if err != nil {
		if !hierarchy.IsGone(err) {
			c.logger.Warn("children fetch failed", "ref", string(n.ref), "err", err)
		}
		n.markGone()
		return
	}

	n.children = make(map[int]*Node, len(refs))
	for i, ref := range refs {
		child := &Node{ref: ref, parent: n, index: i, exists: true}
		attrs, err := c.provider.FetchAttributes(ref)
		if err != nil {
			child.markGone()
		} else {
			child.attrs = attrs
		}
		n.children[i] = child
	}
	n.attrs.ChildCount = len(refs)
	n.populated = true
}

// discardOffPath drops the cached population of the first branch along old
// that is neither on the new path nor pinned by the checkpoint. Branches on
// the checkpoint path must survive speculative navigation so a rollback can
// show them again without re-fetching.
func (c *Cache) discardOffPath(old, new IndexPath) {
	l := 0
	for l < len(old) && l < len(new) && old[l] == new[l] {
		l++
	}
	if l == len(old) {
		return // old path is a prefix of the new one; nothing left the path
	}
	for ; l < len(old); l++ {
		if c.hasSaved && old[:l+1].IsPrefixOf(c.saved) {
			continue // reachable through the checkpoint; pruned on commit
		}
		c.cachedNodeAt(old, l).dropDescendants()
		return
	}
}

// cachedNodeAt resolves path[level] through cached nodes only.
func (c *Cache) cachedNodeAt(path IndexPath, level int) *Node {
	if c.root == nil || level < 0 || level >= len(path) || path[0] != 0 {
		return nil
	}
	n := c.root
	for l := 1; l <= level; l++ {
		if n == nil || n.children == nil {
			return nil
		}
		n = n.children[path[l]]
	}
	return n
}
