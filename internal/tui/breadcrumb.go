package tui

import (
	"strings"
)

// RebuildBreadcrumb derives the breadcrumb trail from the cache's current
// selection path: one item per ancestor level, deepest last. The cursor is
// clamped onto the new trail.
func RebuildBreadcrumb(state *State) {
	path := state.Cache.CurrentSelectionPath()
	if path == nil {
		state.Breadcrumb = nil
		state.BreadcrumbCursor = 0
		return
	}

	items := make([]BreadcrumbItem, 0, len(path))
	for level := range path {
		node := state.Cache.NodeAtPath(path[:level+1])
		title := truncate(state.Cache.BriefDescription(node), MaxBreadcrumbItemLength)
		if title == "" {
			title = "?"
		}
		items = append(items, BreadcrumbItem{
			Level: level,
			Title: title,
			Gone:  !node.Exists(),
		})
	}
	state.Breadcrumb = items

	if state.BreadcrumbCursor >= len(items) {
		state.BreadcrumbCursor = len(items) - 1
	}
	if state.BreadcrumbCursor < 0 {
		state.BreadcrumbCursor = 0
	}
}

// RenderBreadcrumb renders the trail as a single bar line.
func RenderBreadcrumb(state *State, styles StyleManager) string {
	if len(state.Breadcrumb) == 0 {
		return styles.DimText("no target")
	}

	var parts []string
	for i, item := range state.Breadcrumb {
		text := item.Title
		if item.Gone {
			text = styles.Destroyed(text)
		}
		parts = append(parts, styles.BreadcrumbItem(text, i == state.BreadcrumbCursor))
	}
	return strings.Join(parts, styles.BreadcrumbSeparator())
}
