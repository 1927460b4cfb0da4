package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pbehr/axscope/internal/nav"
)

// OpenSelector starts a drill-down session anchored at the breadcrumb
// cursor. Returns false when no session could start (empty cache, or a
// session already open).
func OpenSelector(state *State) bool {
	if state.Selector != nil {
		return false
	}
	level := state.BreadcrumbCursor
	entries := state.Machine.Open(level)
	if entries == nil {
		return false
	}

	state.Selector = &SelectorState{
		AnchorLevel: level,
		Levels:      [][]nav.Entry{entries},
		FocusDepth:  0,
		Cursor:      []int{alignedPosition(entries)},
	}
	return true
}

// alignedPosition finds the slice position of the entry on the current
// selection path, so the session opens with the cursor on it.
func alignedPosition(entries []nav.Entry) int {
	for i, e := range entries {
		if e.Aligned {
			return i
		}
	}
	return 0
}

// SelectorHandleKey routes one key press into an open session. Returns
// false when no session is open, so callers fall through to the view.
func SelectorHandleKey(state *State, key string) bool {
	sel := state.Selector
	if sel == nil {
		return false
	}

	switch key {
	case "down", "j":
		moveSelectorCursor(state, 1)
	case "up", "k":
		moveSelectorCursor(state, -1)
	case "right", "l":
		descendSelector(state)
	case "left", "h":
		ascendSelector(state)
	case "enter":
		state.Machine.Commit()
		state.Machine.MenuClosed()
		state.Selector = nil
	case "esc", "b", "q":
		state.Machine.MenuClosed()
		state.Selector = nil
	}
	return true
}

// moveSelectorCursor moves the cursor within the focused menu level and
// highlights the entry it lands on. A highlight on an entry with children
// opens its submenu as the next cascade level.
func moveSelectorCursor(state *State, delta int) {
	sel := state.Selector
	d := sel.FocusDepth
	pos := sel.Cursor[d] + delta
	if pos < 0 || pos >= len(sel.Levels[d]) {
		return
	}
	sel.Cursor[d] = pos
	highlightFocused(state)
}

// descendSelector moves the focus into the submenu of the highlighted
// entry, when it has one.
func descendSelector(state *State) {
	sel := state.Selector
	if sel.FocusDepth+1 >= len(sel.Levels) {
		return
	}
	sel.FocusDepth++
	sel.Cursor = append(sel.Cursor[:sel.FocusDepth], alignedPosition(sel.Levels[sel.FocusDepth]))
	highlightFocused(state)
}

// ascendSelector moves the focus back to the parent menu level and
// re-highlights the entry the cursor sits on there.
func ascendSelector(state *State) {
	sel := state.Selector
	if sel.FocusDepth == 0 {
		return
	}
	sel.FocusDepth--
	sel.Cursor = sel.Cursor[:sel.FocusDepth+1]
	highlightFocused(state)
}

// highlightFocused tells the state machine about the entry under the
// cursor and refreshes the cascade below the focused level from the
// machine's answer.
func highlightFocused(state *State) {
	sel := state.Selector
	d := sel.FocusDepth
	entry := sel.Levels[d][sel.Cursor[d]]

	submenu := state.Machine.Highlight(entry.Level, entry.Index)

	sel.Levels = sel.Levels[:d+1]
	if submenu != nil {
		sel.Levels = append(sel.Levels, submenu)
	}

	// The speculative selection moved; the breadcrumb tracks it live.
	RebuildBreadcrumb(state)
}

// RenderSelector renders the open cascade as side-by-side boxed menus.
func RenderSelector(state *State, styles StyleManager) string {
	sel := state.Selector
	if sel == nil {
		return ""
	}

	menus := make([]string, 0, len(sel.Levels))
	for d, entries := range sel.Levels {
		menus = append(menus, renderSelectorLevel(state, styles, d, entries))
	}
	cascade := lipgloss.JoinHorizontal(lipgloss.Top, menus...)

	hint := styles.DimText("↑↓ highlight │ ←→ levels │ enter commit │ esc cancel")
	return cascade + "\n" + hint
}

func renderSelectorLevel(state *State, styles StyleManager, depth int, entries []nav.Entry) string {
	sel := state.Selector
	focused := depth == sel.FocusDepth
	cursor := -1
	if depth < len(sel.Cursor) {
		cursor = sel.Cursor[depth]
	}

	var lines []string
	for i, e := range entries {
		text := truncate(e.Title, MaxColumnWidth-4)
		if e.HasChildren {
			text += " ▸"
		}
		if e.Gone {
			text = styles.Destroyed(text)
		}
		highlighted := i == cursor && focused
		if !focused && i == cursor {
			// Cursor trail through ancestor levels stays visible
			// without stealing the highlight.
			text = "▸ " + text
		}
		lines = append(lines, styles.MenuEntry(text, highlighted))
	}
	return styles.Box(strings.Join(lines, "\n"))
}
