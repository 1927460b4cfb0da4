// Package output provides snapshot exports of a cached element hierarchy.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/pbehr/axscope/internal/treecache"
)

// Exporter writes snapshots of a tree cache. Exports read only what the
// cache already holds after PopulateToDepth; they never race the provider
// behind the cache's back.
type Exporter struct {
	cache *treecache.Cache
}

// NewExporter creates an Exporter over the given cache.
func NewExporter(cache *treecache.Cache) *Exporter {
	return &Exporter{cache: cache}
}

// PopulateToDepth walks the hierarchy breadth-first until depth levels below
// the root are cached. Depth 1 is the root's immediate children, which Seed
// already fetched.
func (e *Exporter) PopulateToDepth(depth int) {
	root := e.cache.Root()
	if root == nil {
		return
	}
	frontier := []*treecache.Node{root}
	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []*treecache.Node
		for _, n := range frontier {
			count := e.cache.ChildCount(n)
			for i := 0; i < count; i++ {
				if ch := e.cache.ChildNode(n, i); ch != nil {
					next = append(next, ch)
				}
			}
		}
		frontier = next
	}
}

// Export writes the snapshot in the named format ("json" or "text").
func (e *Exporter) Export(format string, w io.Writer) error {
	switch format {
	case "json":
		return e.ExportJSON(w)
	case "text":
		return e.ExportText(w)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

// ExportJSON writes the cached hierarchy as pretty-printed JSON.
func (e *Exporter) ExportJSON(w io.Writer) error {
	root := e.cache.Root()
	if root == nil {
		return fmt.Errorf("nothing to export: no target hierarchy loaded")
	}
	doc := e.snapshot(root)
	if _, err := io.WriteString(w, oj.JSON(doc, 2)); err != nil {
		return fmt.Errorf("failed to write JSON export: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// snapshot converts a cached subtree into a plain map for serialization.
// Only cached children appear; unvisited branches show up as a child count
// with no child list.
func (e *Exporter) snapshot(n *treecache.Node) map[string]any {
	attrs := n.Attributes()
	doc := map[string]any{
		"role": attrs.Role,
	}
	if attrs.Subrole != "" {
		doc["subrole"] = attrs.Subrole
	}
	if attrs.Title != "" {
		doc["title"] = attrs.Title
	}
	if attrs.TypeDescription != "" {
		doc["type"] = attrs.TypeDescription
	}
	if attrs.Help != "" {
		doc["help"] = attrs.Help
	}
	if !n.Exists() {
		doc["destroyed"] = true
	}
	doc["childCount"] = attrs.ChildCount

	children := e.cache.CachedChildren(n)
	if len(children) > 0 {
		docs := make([]any, 0, len(children))
		for _, ch := range children {
			docs = append(docs, e.snapshot(ch))
		}
		doc["children"] = docs
	}
	return doc
}

// ExportText writes the cached hierarchy as an indented outline.
func (e *Exporter) ExportText(w io.Writer) error {
	root := e.cache.Root()
	if root == nil {
		return fmt.Errorf("nothing to export: no target hierarchy loaded")
	}
	var b strings.Builder
	e.writeOutline(&b, root, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func (e *Exporter) writeOutline(b *strings.Builder, n *treecache.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(e.cache.FullDescription(n))
	b.WriteByte('\n')

	children := e.cache.CachedChildren(n)
	for _, ch := range children {
		e.writeOutline(b, ch, depth+1)
	}
	// Children beyond the populated depth are summarized rather than
	// silently missing.
	if remaining := e.cache.ChildCount(n) - len(children); remaining > 0 {
		b.WriteString(strings.Repeat("  ", depth+1))
		b.WriteString(fmt.Sprintf("… %d more not populated\n", remaining))
	}
}

// Formats lists the supported export format names.
func Formats() []string {
	return []string{"json", "text"}
}
