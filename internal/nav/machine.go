// Package nav drives the cascading drill-down selector that opens from a
// breadcrumb item. It is an explicit state machine over the tree cache:
// input events arrive as method calls (Open, Highlight, Commit, MenuClosed)
// and all cache mutation goes through the cache's selection operations, so a
// whole menu session can be tested without any UI attached.
package nav

import (
	"github.com/pbehr/axscope/internal/treecache"
)

// State is the selector's lifecycle state.
type State int

const (
	// StateClosed means no menu session is active.
	StateClosed State = iota
	// StateRootOpen means the anchor level's sibling entries are shown and
	// nothing deeper has been highlighted.
	StateRootOpen
	// StateDescended means one or more submenu levels below the anchor are
	// open.
	StateDescended
)

// Notifier receives the session's terminal outcomes. The TUI uses it to
// rebuild the breadcrumb and redisplay the active view.
type Notifier interface {
	// SelectionCommitted fires after a commit made the highlighted entry the
	// new selection.
	SelectionCommitted()

	// SelectionCancelled fires after a dismissed menu rolled the selection
	// back to its pre-open value.
	SelectionCancelled()
}

// Entry is one selectable row in an open menu level.
type Entry struct {
	Level       int
	Index       int
	Title       string
	HasChildren bool
	Gone        bool
	// Aligned marks the entry representing the originally clicked breadcrumb
	// item; it is the one visually lined up with that item when the selector
	// opens.
	Aligned bool
}

// Machine is the drill-down selector state machine. One Machine serves one
// cache; sessions are strictly sequential.
type Machine struct {
	cache    *treecache.Cache
	notifier Notifier

	state       State
	anchorLevel int
	depth       int
	// committed distinguishes commit from cancel when the menu-closed event
	// arrives; it is consumed exactly once per session.
	committed bool
}

// New creates a selector machine over the given cache.
func New(cache *treecache.Cache, notifier Notifier) *Machine {
	return &Machine{cache: cache, notifier: notifier}
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	return m.state
}

// IsOpen reports whether a menu session is active.
func (m *Machine) IsOpen() bool {
	return m.state != StateClosed
}

// AnchorLevel returns the breadcrumb level the open session was started from.
func (m *Machine) AnchorLevel() int {
	return m.anchorLevel
}

// Depth returns how many submenu levels below the anchor are open.
func (m *Machine) Depth() int {
	return m.depth
}

// Open starts a menu session from the breadcrumb item at the given level:
// the selection is checkpointed and the level's sibling entries are returned
// without touching the current selection path. Returns nil if the cache is
// empty, the level is not on the current path, or a session is already open.
func (m *Machine) Open(level int) []Entry {
	if m.state != StateClosed || m.cache.IsEmpty() {
		return nil
	}
	current := m.cache.CurrentSelectionPath()
	if level < 0 || level >= len(current) {
		return nil
	}

	entries := m.entriesAt(level)
	if len(entries) == 0 {
		return nil
	}

	m.cache.SaveCurrentSelection()
	m.state = StateRootOpen
	m.anchorLevel = level
	m.depth = 0
	m.committed = false
	return entries
}

// Highlight moves the menu focus to the entry at (level, index), updating
// the speculative selection. If the highlighted node has children their
// entries are returned for the next submenu level; a childless entry never
// gets a submenu.
func (m *Machine) Highlight(level, index int) []Entry {
	if m.state == StateClosed || level < m.anchorLevel {
		return nil
	}
	m.cache.UpdateCurrentSelection(level, index)

	m.depth = level - m.anchorLevel
	if m.depth > 0 {
		m.state = StateDescended
	} else {
		m.state = StateRootOpen
	}

	node := m.cache.NodeAt(level, index)
	if m.cache.ChildCount(node) == 0 {
		return nil
	}
	return m.entriesAt(level + 1)
}

// Commit accepts the highlighted entry: the checkpoint is discarded and the
// notifier is told to redisplay. The session ends when the input layer
// delivers the trailing MenuClosed event.
func (m *Machine) Commit() {
	if m.state == StateClosed {
		return
	}
	m.committed = true
	m.cache.DiscardSavedSelection()
	if m.notifier != nil {
		m.notifier.SelectionCommitted()
	}
}

// MenuClosed ends the session. If no commit was observed first, the close is
// a cancel: the checkpointed selection is restored and the notifier is told
// to redisplay the rolled-back state.
func (m *Machine) MenuClosed() {
	if m.state == StateClosed {
		return
	}
	m.state = StateClosed
	m.depth = 0
	if m.committed {
		m.committed = false
		return
	}
	m.cache.RestoreSavedSelection()
	if m.notifier != nil {
		m.notifier.SelectionCancelled()
	}
}

// entriesAt builds the sibling entries for one level along the current
// selection path.
func (m *Machine) entriesAt(level int) []Entry {
	current := m.cache.CurrentSelectionPath()
	aligned := -1
	if level < len(current) {
		aligned = current[level]
	}

	if level == 0 {
		root := m.cache.NodeAt(0, 0)
		if root == nil {
			return nil
		}
		return []Entry{{
			Level:       0,
			Index:       0,
			Title:       m.cache.BriefDescription(root),
			HasChildren: m.cache.ChildCount(root) > 0,
			Gone:        !root.Exists(),
			Aligned:     aligned == 0,
		}}
	}

	parent := m.cache.NodeAt(level-1, current[level-1])
	count := m.cache.ChildCount(parent)
	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		node := m.cache.ChildNode(parent, i)
		if node == nil {
			continue
		}
		entries = append(entries, Entry{
			Level:       level,
			Index:       i,
			Title:       m.cache.BriefDescription(node),
			HasChildren: m.cache.ChildCount(node) > 0,
			Gone:        !node.Exists(),
			Aligned:     aligned == i,
		})
	}
	return entries
}
