package tui

import (
	"strings"
	"testing"
)

func TestRebuildBreadcrumbTracksPath(t *testing.T) {
	state, _ := newTestState()

	RebuildBreadcrumb(state)
	if len(state.Breadcrumb) != 1 {
		t.Fatalf("breadcrumb items = %d, want 1", len(state.Breadcrumb))
	}

	state.Cache.UpdateCurrentSelection(1, 0)
	state.Cache.UpdateCurrentSelection(2, 1)
	RebuildBreadcrumb(state)

	if len(state.Breadcrumb) != 3 {
		t.Fatalf("breadcrumb items = %d, want 3", len(state.Breadcrumb))
	}
	for i, item := range state.Breadcrumb {
		if item.Level != i {
			t.Errorf("item %d has Level %d", i, item.Level)
		}
	}
	if !strings.Contains(state.Breadcrumb[2].Title, "hello") {
		t.Errorf("deepest item = %q, want the text element", state.Breadcrumb[2].Title)
	}
}

func TestRebuildBreadcrumbClampsCursor(t *testing.T) {
	state, _ := newTestState()
	state.Cache.UpdateCurrentSelection(1, 0)
	RebuildBreadcrumb(state)
	state.BreadcrumbCursor = 1

	// Selection retreats to the root; the cursor follows.
	state.Cache.UpdateCurrentSelection(0, 0)
	RebuildBreadcrumb(state)
	if state.BreadcrumbCursor != 0 {
		t.Errorf("cursor = %d, want 0 after clamp", state.BreadcrumbCursor)
	}
}

func TestRebuildBreadcrumbMarksGoneItems(t *testing.T) {
	state, fake := newTestState()
	state.Cache.UpdateCurrentSelection(1, 0)

	fake.MarkGone("A")
	state.Cache.RefreshAttributes(state.Cache.CurrentNode())
	RebuildBreadcrumb(state)

	if !state.Breadcrumb[1].Gone {
		t.Error("destroyed element's breadcrumb item should be marked gone")
	}
	// The destroyed item still shows its last-known title.
	if !strings.Contains(state.Breadcrumb[1].Title, "Main") {
		t.Errorf("gone item title = %q, want last-known attributes", state.Breadcrumb[1].Title)
	}
}

func TestRenderBreadcrumbEmpty(t *testing.T) {
	state, _ := newTestState()
	_, styles, _ := newTestManagers()
	state.Cache.Reset()
	RebuildBreadcrumb(state)

	out := RenderBreadcrumb(state, styles)
	if !strings.Contains(out, "no target") {
		t.Errorf("empty breadcrumb = %q, want placeholder", out)
	}
}
