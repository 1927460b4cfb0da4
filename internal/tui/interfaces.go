// Package tui provides the terminal user interface for browsing an element
// hierarchy through three interchangeable presentations: miller columns, a
// collapsible tree and a flat list. All three render the same tree cache and
// the same current selection path; none of them keeps hierarchy data of its
// own.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/pbehr/axscope/internal/tui/theme"
)

// TUI provides the main terminal user interface.
type TUI interface {
	// Run starts the TUI over the given state and blocks until the user
	// exits.
	Run(state *State) error
}

// View is one presentation of the tree cache. Besides the bubbletea plumbing
// every view implements the synchronization contract: UpdateForNewTarget,
// ShowCurrentSelection and Clear, all pure functions of the cache contents
// and the current selection path.
type View interface {
	// Name returns the view's name.
	Name() string

	// Render renders the view for the given application state.
	Render(state *State) string

	// Update handles view-specific messages.
	Update(msg tea.Msg, state *State) (*State, tea.Cmd)

	// CanHandle reports whether this view wants the given message.
	CanHandle(msg tea.Msg, state *State) bool

	// UpdateForNewTarget resets the view's display state for a freshly
	// seeded hierarchy: only the root is shown, selected when it is the
	// sole element at level 0.
	UpdateForNewTarget(state *State)

	// ShowCurrentSelection redisplays the current selection path: branches
	// off the path collapse, every level on the path is shown, the deepest
	// node is marked selected. Calling it twice with no intervening cache
	// change is a no-op on the visible state.
	ShowCurrentSelection(state *State)

	// Clear shows the empty/placeholder state after the target is removed.
	Clear(state *State)
}

// ViewManager manages the registered views and the active one.
type ViewManager interface {
	// GetCurrentView returns the currently active view.
	GetCurrentView(state *State) View

	// SwitchView switches to the specified view.
	SwitchView(viewName string) error

	// GetView returns a view by name.
	GetView(viewName string) View

	// RegisterView registers a new view.
	RegisterView(view View)

	// GetAllViews returns all registered views.
	GetAllViews() map[string]View
}

// StyleManager provides consistent styling across the TUI.
type StyleManager interface {
	// Header renders the top bar.
	Header(text string, width int) string

	// Footer renders the key-hint bar.
	Footer(text string, width int) string

	// SelectedItem renders a selected row.
	SelectedItem(text string) string

	// DimText renders de-emphasized text.
	DimText(text string) string

	// Error renders error text.
	Error(text string) string

	// Destroyed renders the label of a destroyed element.
	Destroyed(text string) string

	// RoleText renders text in the accent color of an element role.
	RoleText(text, role string) string

	// BreadcrumbItem renders one breadcrumb trail item.
	BreadcrumbItem(text string, active bool) string

	// BreadcrumbSeparator renders the separator between breadcrumb items.
	BreadcrumbSeparator() string

	// MenuEntry renders one drill-down selector entry.
	MenuEntry(text string, highlighted bool) string

	// Box renders bordered content (the selector overlay).
	Box(text string) string

	// ColumnTitle renders a column header in the column view.
	ColumnTitle(text string, focused bool) string

	// GetTheme returns the underlying theme.
	GetTheme() *theme.Theme
}

// FilterManager handles the list view's type-to-filter input.
type FilterManager interface {
	// ApplyFilter returns the items whose filter value matches the filter
	// text.
	ApplyFilter(items []list.Item, filter string) []list.Item

	// IsActive reports whether filtering is currently capturing input.
	IsActive() bool

	// SetActive sets the filter active state.
	SetActive(active bool)

	// GetFilter returns the underlying filter input model.
	GetFilter() textinput.Model

	// UpdateInput feeds a message to the filter input.
	UpdateInput(msg tea.Msg) tea.Cmd

	// ClearFilter clears the filter text and deactivates it.
	ClearFilter()

	// GetFilterText returns the current filter text.
	GetFilterText() string
}
