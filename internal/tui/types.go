package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/pbehr/axscope/internal/nav"
	"github.com/pbehr/axscope/internal/treecache"
)

// State is the complete application state shared by the model and the views.
// The cache and the selector machine are owned here and passed by reference;
// there is no ambient global lookup anywhere in the program.
type State struct {
	// Core data
	Cache   *treecache.Cache
	Machine *nav.Machine

	// Current view state
	CurrentView  string
	PreviousView string

	// Window dimensions
	WindowWidth   int
	WindowHeight  int
	ContentWidth  int
	ContentHeight int

	// View-specific display state
	ColumnState *ColumnViewState
	TreeState   *TreeViewState
	ListState   *ListViewState

	// Breadcrumb trail
	Breadcrumb       []BreadcrumbItem
	BreadcrumbCursor int

	// Drill-down selector overlay; nil while closed
	Selector *SelectorState

	// Status
	StatusMessage string
	StatusType    string // "info", "success", "warning", "error"
}

// BreadcrumbItem is one visible item of the breadcrumb trail: one per
// ancestor level of the current selection path.
type BreadcrumbItem struct {
	Level int
	Title string
	Gone  bool
}

// ColumnViewState holds display state for the miller-column view.
type ColumnViewState struct {
	FocusLevel    int         // column the cursor is in
	ScrollOffsets map[int]int // per-level scroll position
}

// TreeViewState holds display state for the collapsible tree view.
type TreeViewState struct {
	Rows         []TreeRow
	SelectedRow  int
	ScrollOffset int
}

// TreeRow is one visible row of the tree view.
type TreeRow struct {
	Node        *treecache.Node
	Path        treecache.IndexPath
	Depth       int
	Expanded    bool
	HasChildren bool
}

// ListViewState holds display state for the flat list view.
type ListViewState struct {
	List  list.Model
	Level int // the sibling level the rows show
	ready bool
}

// ListRow is one row of the flat list view. Descriptions are prerendered
// when the rows are rebuilt so the list never reaches back into the cache.
type ListRow struct {
	Node       *treecache.Node
	RowLevel   int
	RowIndex   int
	TitleText  string
	DescText   string
	FilterText string
}

// Title implements list.Item (via list.DefaultItem).
func (r ListRow) Title() string { return r.TitleText }

// Description implements list.DefaultItem.
func (r ListRow) Description() string { return r.DescText }

// FilterValue implements list.Item.
func (r ListRow) FilterValue() string { return r.FilterText }

// SelectorState holds the open drill-down selector overlay: one entry column
// per open menu level, anchored at a breadcrumb item.
type SelectorState struct {
	AnchorLevel int
	Levels      [][]nav.Entry
	FocusDepth  int // which of Levels the cursor is in
	Cursor      []int
}

// FocusedEntry returns the entry the cursor is on.
func (s *SelectorState) FocusedEntry() *nav.Entry {
	if s == nil || s.FocusDepth >= len(s.Levels) {
		return nil
	}
	level := s.Levels[s.FocusDepth]
	idx := s.Cursor[s.FocusDepth]
	if idx < 0 || idx >= len(level) {
		return nil
	}
	return &level[idx]
}

// Constants for view names.
const (
	ViewColumn = "column"
	ViewTree   = "tree"
	ViewList   = "list"
	ViewHelp   = "help"
)

// Constants for status types.
const (
	StatusInfo    = "info"
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// Display limits.
const (
	MaxBreadcrumbItemLength = 24
	MaxColumnWidth          = 32
	MinColumnWidth          = 16
	EllipsisString          = "…"
	DefaultListHeight       = 30
)

// truncate shortens s to max display characters, ellipsis included.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + EllipsisString
}

// KeyBinding is one keyboard shortcut in the help view.
type KeyBinding struct {
	Key         string
	Description string
	Context     string // "global", "column", "tree", "list", "selector"
}

// HelpSection groups key bindings in the help view.
type HelpSection struct {
	Title    string
	Bindings []KeyBinding
}

// DefaultKeyBindings returns the help view's content.
func DefaultKeyBindings() []HelpSection {
	return []HelpSection{
		{
			Title: "Navigation",
			Bindings: []KeyBinding{
				{Key: "j/↓", Description: "Next sibling", Context: "global"},
				{Key: "k/↑", Description: "Previous sibling", Context: "global"},
				{Key: "l/→", Description: "Descend into children", Context: "global"},
				{Key: "h/←", Description: "Ascend to parent", Context: "global"},
				{Key: "q", Description: "Quit", Context: "global"},
			},
		},
		{
			Title: "Views",
			Bindings: []KeyBinding{
				{Key: "1", Description: "Column view", Context: "global"},
				{Key: "2", Description: "Tree view", Context: "global"},
				{Key: "3", Description: "List view", Context: "global"},
				{Key: "?", Description: "Help", Context: "global"},
			},
		},
		{
			Title: "Breadcrumb & selector",
			Bindings: []KeyBinding{
				{Key: "[ / ]", Description: "Move along the breadcrumb", Context: "global"},
				{Key: "b/space", Description: "Open drill-down selector", Context: "global"},
				{Key: "enter", Description: "Commit highlighted entry", Context: "selector"},
				{Key: "esc", Description: "Dismiss without committing", Context: "selector"},
			},
		},
		{
			Title: "Inspection",
			Bindings: []KeyBinding{
				{Key: "m", Description: "Cycle terminology mode", Context: "global"},
				{Key: "r", Description: "Refresh selected element", Context: "global"},
				{Key: "/", Description: "Filter rows", Context: "list"},
			},
		},
	}
}
