package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// filterManager implements the FilterManager interface.
type filterManager struct {
	input  textinput.Model
	active bool
}

// NewFilterManager creates a new FilterManager instance.
func NewFilterManager() FilterManager {
	input := textinput.New()
	input.Placeholder = "Filter by role, title or help text..."
	input.CharLimit = 100
	input.Width = 50
	input.Prompt = ""

	return &filterManager{input: input}
}

// ApplyFilter returns the rows whose filter value contains the filter text.
// Rows keep their original (level, index) so a pick on a filtered list still
// addresses the right sibling.
func (fm *filterManager) ApplyFilter(items []list.Item, filter string) []list.Item {
	if filter == "" {
		return items
	}

	filter = strings.ToLower(filter)
	var filtered []list.Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.FilterValue()), filter) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// IsActive returns true if filtering is currently capturing input.
func (fm *filterManager) IsActive() bool {
	return fm.active
}

// GetFilter returns the current filter input.
func (fm *filterManager) GetFilter() textinput.Model {
	return fm.input
}

// SetActive sets the filter active state.
func (fm *filterManager) SetActive(active bool) {
	fm.active = active
	if active {
		fm.input.Focus()
	} else {
		fm.input.Blur()
	}
}

// UpdateInput updates the filter input model and returns a command.
func (fm *filterManager) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	fm.input, cmd = fm.input.Update(msg)
	return cmd
}

// ClearFilter clears the current filter.
func (fm *filterManager) ClearFilter() {
	fm.input.SetValue("")
	fm.active = false
	fm.input.Blur()
}

// GetFilterText returns the current filter text.
func (fm *filterManager) GetFilterText() string {
	return fm.input.Value()
}
