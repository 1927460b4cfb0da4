package nav

import (
	"io"
	"log/slog"
	"testing"

	"github.com/pbehr/axscope/internal/hierarchy"
	"github.com/pbehr/axscope/internal/treecache"
)

// recorder counts terminal notifications.
type recorder struct {
	committed int
	cancelled int
}

func (r *recorder) SelectionCommitted() { r.committed++ }
func (r *recorder) SelectionCancelled() { r.cancelled++ }

// newTestMachine builds a machine over root R with children [A, B]; A has
// children [A0, A1, A2], B has child B0.
func newTestMachine(t *testing.T) (*Machine, *treecache.Cache, *hierarchy.Fake, *recorder) {
	t.Helper()
	f := hierarchy.NewFake()
	f.Add("R", hierarchy.AttributeSet{Role: "AXApplication", Title: "App"}, "A", "B")
	f.Add("A", hierarchy.AttributeSet{Role: "AXWindow", Title: "Alpha"}, "A0", "A1", "A2")
	f.Add("B", hierarchy.AttributeSet{Role: "AXWindow", Title: "Beta"}, "B0")
	f.Add("A0", hierarchy.AttributeSet{Role: "AXButton", Title: "OK"})
	f.Add("A1", hierarchy.AttributeSet{Role: "AXButton", Title: "Cancel"})
	f.Add("A2", hierarchy.AttributeSet{Role: "AXTextField", Title: "Search"})
	f.Add("B0", hierarchy.AttributeSet{Role: "AXStaticText", Title: "Label"})

	cache := treecache.New(f, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cache.Seed("R")

	rec := &recorder{}
	return New(cache, rec), cache, f, rec
}

func TestMachineInitialState(t *testing.T) {
	m, _, _, _ := newTestMachine(t)
	if m.State() != StateClosed {
		t.Errorf("State() = %v, want StateClosed", m.State())
	}
	if m.IsOpen() {
		t.Error("new machine should not be open")
	}
}

func TestOpenOnEmptyCacheReturnsNil(t *testing.T) {
	f := hierarchy.NewFake()
	cache := treecache.New(f, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := New(cache, &recorder{})

	if entries := m.Open(0); entries != nil {
		t.Errorf("Open on empty cache = %v, want nil", entries)
	}
	if m.IsOpen() {
		t.Error("machine should stay closed over an empty cache")
	}
}

func TestOpenShowsSiblingsWithoutMovingSelection(t *testing.T) {
	m, cache, _, _ := newTestMachine(t)
	cache.UpdateCurrentSelection(1, 0) // A selected

	entries := m.Open(1)
	if len(entries) != 2 {
		t.Fatalf("Open(1) returned %d entries, want 2", len(entries))
	}
	if m.State() != StateRootOpen {
		t.Errorf("State() = %v, want StateRootOpen", m.State())
	}

	// The selection path is untouched until a highlight arrives.
	if got := cache.CurrentSelectionPath(); !got.Equal(treecache.IndexPath{0, 0}) {
		t.Errorf("selection moved on open: %v", got)
	}

	// The entry for the clicked breadcrumb item is the aligned one.
	if !entries[0].Aligned {
		t.Error("entry 0 (the current selection) should be aligned")
	}
	if entries[1].Aligned {
		t.Error("entry 1 should not be aligned")
	}
	if !entries[0].HasChildren {
		t.Error("entry for A should report children")
	}
}

func TestOpenBeyondPathReturnsNil(t *testing.T) {
	m, _, _, _ := newTestMachine(t)
	// Selection is just the root; level 1 is not on the breadcrumb yet.
	if entries := m.Open(1); entries != nil {
		t.Errorf("Open(1) = %v, want nil", entries)
	}
}

func TestHighlightDescends(t *testing.T) {
	m, cache, _, _ := newTestMachine(t)

	if entries := m.Open(0); len(entries) != 1 {
		t.Fatalf("Open(0) returned %d entries, want 1 (the root slot)", len(entries))
	}

	// Highlighting the root yields its children as the next submenu level.
	sub := m.Highlight(0, 0)
	if len(sub) != 2 {
		t.Fatalf("Highlight(0,0) returned %d entries, want 2", len(sub))
	}

	// Descend to A; its children come back, and the machine reports depth 1.
	sub = m.Highlight(1, 0)
	if len(sub) != 3 {
		t.Fatalf("Highlight(1,0) returned %d entries, want 3", len(sub))
	}
	if m.State() != StateDescended {
		t.Errorf("State() = %v, want StateDescended", m.State())
	}
	if m.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", m.Depth())
	}
	if got := cache.CurrentSelectionPath(); !got.Equal(treecache.IndexPath{0, 0}) {
		t.Errorf("selection path = %v, want [0 0]", got)
	}
}

func TestHighlightLeafHasNoSubmenu(t *testing.T) {
	m, _, _, _ := newTestMachine(t)

	m.Open(0)
	m.Highlight(0, 0)
	m.Highlight(1, 0)
	if sub := m.Highlight(2, 0); sub != nil { // A0 is a leaf
		t.Errorf("leaf entry got a submenu: %v", sub)
	}
}

func TestCommitKeepsHighlightedSelection(t *testing.T) {
	m, cache, _, rec := newTestMachine(t)

	m.Open(0)
	m.Highlight(0, 0)
	m.Highlight(1, 1) // highlight B
	m.Commit()
	m.MenuClosed() // the input layer always delivers the trailing close

	if got := cache.CurrentSelectionPath(); !got.Equal(treecache.IndexPath{0, 1}) {
		t.Errorf("selection path = %v, want [0 1]", got)
	}
	if rec.committed != 1 {
		t.Errorf("committed notifications = %d, want 1", rec.committed)
	}
	if rec.cancelled != 0 {
		t.Errorf("cancelled notifications = %d, want 0", rec.cancelled)
	}
	if m.IsOpen() {
		t.Error("machine should be closed after commit + close")
	}
	if cache.HasSavedSelection() {
		t.Error("checkpoint should be consumed by commit")
	}
}

func TestCloseWithoutCommitCancels(t *testing.T) {
	m, cache, f, rec := newTestMachine(t)

	cache.UpdateCurrentSelection(1, 0) // A selected, children cached
	fetchesA := f.ChildrenFetches["A"]

	m.Open(1)
	m.Highlight(1, 1) // speculatively highlight B
	m.MenuClosed()    // dismissed with no commit

	if got := cache.CurrentSelectionPath(); !got.Equal(treecache.IndexPath{0, 0}) {
		t.Errorf("selection path = %v, want the pre-open [0 0]", got)
	}
	if rec.cancelled != 1 {
		t.Errorf("cancelled notifications = %d, want 1", rec.cancelled)
	}
	if rec.committed != 0 {
		t.Errorf("committed notifications = %d, want 0", rec.committed)
	}

	// A's children survived the speculative excursion: no re-fetch needed.
	a := cache.NodeAt(1, 0)
	if cache.ChildNode(a, 0) == nil {
		t.Fatal("A's children should still be cached")
	}
	if f.ChildrenFetches["A"] != fetchesA {
		t.Errorf("A was re-fetched %d times after cancel, want 0",
			f.ChildrenFetches["A"]-fetchesA)
	}
}

func TestCommittedFlagConsumedOncePerSession(t *testing.T) {
	m, cache, _, rec := newTestMachine(t)

	// Session one commits.
	m.Open(0)
	m.Highlight(0, 0)
	m.Highlight(1, 1)
	m.Commit()
	m.MenuClosed()

	// Session two is dismissed; the stale committed flag from session one
	// must not turn this cancel into a commit.
	m.Open(0)
	m.Highlight(0, 0)
	m.Highlight(1, 0)
	m.MenuClosed()

	if got := cache.CurrentSelectionPath(); !got.Equal(treecache.IndexPath{0, 1}) {
		t.Errorf("selection path = %v, want [0 1] from session one", got)
	}
	if rec.committed != 1 || rec.cancelled != 1 {
		t.Errorf("notifications = %d committed / %d cancelled, want 1/1",
			rec.committed, rec.cancelled)
	}
}

func TestReHighlightShallowerEntry(t *testing.T) {
	m, _, f, _ := newTestMachine(t)

	m.Open(0)
	m.Highlight(0, 0)
	m.Highlight(1, 0) // A open
	m.Highlight(2, 0) // A0 highlighted

	// Moving back up to B discards the deeper speculative population.
	sub := m.Highlight(1, 1)
	if len(sub) != 1 {
		t.Fatalf("Highlight(1,1) returned %d entries, want 1", len(sub))
	}
	if m.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", m.Depth())
	}

	// Hover traversal costs one fetch per branch, not an accumulation.
	if f.ChildrenFetches["A"] != 1 {
		t.Errorf("A fetched %d times during hover, want 1", f.ChildrenFetches["A"])
	}
}

func TestEventsIgnoredWhileClosed(t *testing.T) {
	m, cache, _, rec := newTestMachine(t)

	m.Commit()
	m.MenuClosed()
	if sub := m.Highlight(1, 0); sub != nil {
		t.Errorf("Highlight while closed = %v, want nil", sub)
	}
	if rec.committed != 0 || rec.cancelled != 0 {
		t.Error("closed machine should not notify")
	}
	if got := cache.CurrentSelectionPath(); !got.Equal(treecache.IndexPath{0}) {
		t.Errorf("selection path = %v, want [0]", got)
	}
}

func TestGoneEntryMarked(t *testing.T) {
	m, cache, f, _ := newTestMachine(t)

	b := cache.NodeAt(1, 1)
	f.MarkGone("B")
	cache.ChildNode(b, 0) // discovers the destruction

	m.Open(0)
	sub := m.Highlight(0, 0)
	if len(sub) != 2 {
		t.Fatalf("got %d entries, want 2", len(sub))
	}
	if !sub[1].Gone {
		t.Error("destroyed element's entry should be marked gone")
	}
	if sub[1].HasChildren {
		t.Error("destroyed element's entry should never offer a submenu")
	}
}
