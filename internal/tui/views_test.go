package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbehr/axscope/internal/hierarchy"
	"github.com/pbehr/axscope/internal/nav"
	"github.com/pbehr/axscope/internal/treecache"
)

// newTestState builds a state over a scripted hierarchy:
//
//	R (application)
//	├── A (window)  ── A0 (button), A1 (text)
//	└── B (menu bar)
func newTestState() (*State, *hierarchy.Fake) {
	fake := hierarchy.NewFake()
	fake.Add("R", hierarchy.AttributeSet{Role: "AXApplication", Title: "App"}, "A", "B")
	fake.Add("A", hierarchy.AttributeSet{Role: "AXWindow", Title: "Main"}, "A0", "A1")
	fake.Add("B", hierarchy.AttributeSet{Role: "AXMenuBar"})
	fake.Add("A0", hierarchy.AttributeSet{Role: "AXButton", Title: "OK"})
	fake.Add("A1", hierarchy.AttributeSet{Role: "AXStaticText", Title: "hello"})

	cache := treecache.New(fake, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cache.Seed("R")

	state := NewState(cache, ViewColumn)
	state.Machine = nav.New(cache, nil)
	return state, fake
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestColumnViewDescendAndMove(t *testing.T) {
	state, _ := newTestState()
	_, styles, _ := newTestManagers()
	cv := NewColumnView(styles)
	cv.UpdateForNewTarget(state)

	// Descend into the root's first child.
	cv.Update(keyMsg("l"), state)
	path := state.Cache.CurrentSelectionPath()
	if !path.Equal(treecache.IndexPath{0, 0}) {
		t.Fatalf("path after descend = %v, want [0 0]", path)
	}
	if state.ColumnState.FocusLevel != 1 {
		t.Errorf("FocusLevel = %d, want 1", state.ColumnState.FocusLevel)
	}

	// Next sibling.
	cv.Update(keyMsg("j"), state)
	path = state.Cache.CurrentSelectionPath()
	if !path.Equal(treecache.IndexPath{0, 1}) {
		t.Fatalf("path after move = %v, want [0 1]", path)
	}

	// B is a leaf; descending is a no-op.
	cv.Update(keyMsg("l"), state)
	if !state.Cache.CurrentSelectionPath().Equal(treecache.IndexPath{0, 1}) {
		t.Error("descend into leaf should not move the selection")
	}

	// Back up to the root.
	cv.Update(keyMsg("h"), state)
	if !state.Cache.CurrentSelectionPath().Equal(treecache.IndexPath{0}) {
		t.Error("ascend should select the parent")
	}
}

func TestColumnViewRenderShowsReadAheadColumn(t *testing.T) {
	state, _ := newTestState()
	_, styles, _ := newTestManagers()
	cv := NewColumnView(styles)
	cv.UpdateForNewTarget(state)

	out := cv.Render(state)
	// Root selected, root has children: a level 0 and a level 1 column.
	if !strings.Contains(out, "level 0") || !strings.Contains(out, "level 1") {
		t.Errorf("render missing expected columns:\n%s", out)
	}
	if !strings.Contains(out, "App") || !strings.Contains(out, "Main") {
		t.Errorf("render missing node titles:\n%s", out)
	}
}

func TestTreeViewRowsFollowSelectionPath(t *testing.T) {
	state, _ := newTestState()
	_, styles, _ := newTestManagers()
	tv := NewTreeView(styles)
	tv.UpdateForNewTarget(state)

	// Root selected: root row plus its two children.
	if got := len(state.TreeState.Rows); got != 3 {
		t.Fatalf("rows = %d, want 3", got)
	}
	if state.TreeState.SelectedRow != 0 {
		t.Errorf("SelectedRow = %d, want 0 (root)", state.TreeState.SelectedRow)
	}

	// Select A: its children become visible too.
	state.Cache.UpdateCurrentSelection(1, 0)
	tv.ShowCurrentSelection(state)
	if got := len(state.TreeState.Rows); got != 5 {
		t.Fatalf("rows after descend = %d, want 5", got)
	}
	if state.TreeState.SelectedRow != 1 {
		t.Errorf("SelectedRow = %d, want 1 (A)", state.TreeState.SelectedRow)
	}

	// Moving back to B collapses A's branch.
	state.Cache.UpdateCurrentSelection(1, 1)
	tv.ShowCurrentSelection(state)
	if got := len(state.TreeState.Rows); got != 3 {
		t.Fatalf("rows after reselect = %d, want 3", got)
	}
}

func TestTreeViewMovementIsAPick(t *testing.T) {
	state, _ := newTestState()
	_, styles, _ := newTestManagers()
	tv := NewTreeView(styles)
	tv.UpdateForNewTarget(state)

	// Move down one row: from the root to A.
	tv.Update(keyMsg("j"), state)
	if !state.Cache.CurrentSelectionPath().Equal(treecache.IndexPath{0, 0}) {
		t.Errorf("path = %v, want [0 0]", state.Cache.CurrentSelectionPath())
	}

	// Expand right: first child of A.
	tv.Update(keyMsg("l"), state)
	if !state.Cache.CurrentSelectionPath().Equal(treecache.IndexPath{0, 0, 0}) {
		t.Errorf("path = %v, want [0 0 0]", state.Cache.CurrentSelectionPath())
	}

	// Collapse left: back to A.
	tv.Update(keyMsg("h"), state)
	if !state.Cache.CurrentSelectionPath().Equal(treecache.IndexPath{0, 0}) {
		t.Errorf("path = %v, want [0 0]", state.Cache.CurrentSelectionPath())
	}
}

func TestListViewShowsSiblingsAtCurrentLevel(t *testing.T) {
	state, _ := newTestState()
	_, styles, filter := newTestManagers()
	lv := NewListView(styles, filter)
	lv.UpdateForNewTarget(state)

	// Root level: a single row.
	if got := len(state.ListState.List.Items()); got != 1 {
		t.Fatalf("root level rows = %d, want 1", got)
	}

	// Level 1: both children of the root.
	state.Cache.UpdateCurrentSelection(1, 1)
	lv.ShowCurrentSelection(state)
	if state.ListState.Level != 1 {
		t.Errorf("Level = %d, want 1", state.ListState.Level)
	}
	if got := len(state.ListState.List.Items()); got != 2 {
		t.Fatalf("level 1 rows = %d, want 2", got)
	}
	if state.ListState.List.Index() != 1 {
		t.Errorf("list cursor = %d, want 1 (the selected sibling)", state.ListState.List.Index())
	}
}

func TestListViewDescendAndAscend(t *testing.T) {
	state, _ := newTestState()
	_, styles, filter := newTestManagers()
	lv := NewListView(styles, filter)
	lv.UpdateForNewTarget(state)

	lv.Update(keyMsg("l"), state)
	if !state.Cache.CurrentSelectionPath().Equal(treecache.IndexPath{0, 0}) {
		t.Fatalf("path after descend = %v, want [0 0]", state.Cache.CurrentSelectionPath())
	}
	if state.ListState.Level != 1 {
		t.Errorf("Level = %d, want 1", state.ListState.Level)
	}

	lv.Update(keyMsg("h"), state)
	if !state.Cache.CurrentSelectionPath().Equal(treecache.IndexPath{0}) {
		t.Errorf("path after ascend = %v, want [0]", state.Cache.CurrentSelectionPath())
	}
}

func TestListViewFilterKeepsSiblingIndices(t *testing.T) {
	state, _ := newTestState()
	_, styles, filter := newTestManagers()
	lv := NewListView(styles, filter)
	lv.UpdateForNewTarget(state)

	state.Cache.UpdateCurrentSelection(1, 0)
	filter.SetActive(true)
	filter.UpdateInput(keyMsg("menu"))
	lv.ShowCurrentSelection(state)

	items := state.ListState.List.Items()
	if len(items) != 1 {
		t.Fatalf("filtered rows = %d, want 1", len(items))
	}
	row := items[0].(ListRow)
	if row.RowIndex != 1 {
		t.Errorf("filtered row keeps RowIndex = %d, want 1", row.RowIndex)
	}
}

func TestViewsClearOnEmptyCache(t *testing.T) {
	state, _ := newTestState()
	_, styles, filter := newTestManagers()

	views := []View{NewColumnView(styles), NewTreeView(styles), NewListView(styles, filter)}
	for _, v := range views {
		v.UpdateForNewTarget(state)
	}

	state.Cache.Reset()
	for _, v := range views {
		v.Clear(state)
		out := v.Render(state)
		if !strings.Contains(out, "no target hierarchy loaded") {
			t.Errorf("%s view should show the placeholder after Clear", v.Name())
		}
	}
}

func TestHelpViewRender(t *testing.T) {
	state, _ := newTestState()
	_, styles, _ := newTestManagers()
	hv := NewHelpView(styles)

	out := hv.Render(state)
	for _, want := range []string{"Navigation", "Views", "selector", "terminology"} {
		if !strings.Contains(out, want) {
			t.Errorf("help view missing %q:\n%s", want, out)
		}
	}
}
