package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pbehr/axscope/internal/treecache"
)

// pick applies a direct user pick inside a view: selection update first,
// then the view redisplays itself, then the breadcrumb is rebuilt. Never
// the reverse order.
func pick(state *State, v View, level, index int) {
	state.Cache.UpdateCurrentSelection(level, index)
	v.ShowCurrentSelection(state)
	RebuildBreadcrumb(state)
}

// nodeLabel renders a node's one-line label with role color and destroyed
// styling applied.
func nodeLabel(state *State, styles StyleManager, node *treecache.Node, width int) string {
	if node == nil {
		return ""
	}
	text := truncate(state.Cache.BriefDescription(node), width)
	if !node.Exists() {
		return styles.Destroyed(text)
	}
	return styles.RoleText(text, node.Attributes().Role)
}

// ═══════════════════════════════════════════════════════════════════════════════
// COLUMN VIEW
// ═══════════════════════════════════════════════════════════════════════════════

// columnView implements the View interface as a miller-column browser: one
// column per level of the current selection path plus the read-ahead column
// of the selected node's children.
type columnView struct {
	styles StyleManager
}

// NewColumnView creates the column view.
func NewColumnView(styles StyleManager) View {
	return &columnView{styles: styles}
}

func (cv *columnView) Name() string {
	return ViewColumn
}

func (cv *columnView) UpdateForNewTarget(state *State) {
	state.ColumnState = &ColumnViewState{
		FocusLevel:    0,
		ScrollOffsets: make(map[int]int),
	}
	cv.ShowCurrentSelection(state)
}

func (cv *columnView) ShowCurrentSelection(state *State) {
	if state.ColumnState == nil {
		state.ColumnState = &ColumnViewState{ScrollOffsets: make(map[int]int)}
	}
	path := state.Cache.CurrentSelectionPath()
	if path == nil {
		cv.Clear(state)
		return
	}
	// The focused column follows the deepest selected level; stale scroll
	// offsets for deeper, no longer displayed columns are dropped.
	state.ColumnState.FocusLevel = path.Level()
	for level := range state.ColumnState.ScrollOffsets {
		if level > path.Level()+1 {
			delete(state.ColumnState.ScrollOffsets, level)
		}
	}
}

func (cv *columnView) Clear(state *State) {
	state.ColumnState = &ColumnViewState{ScrollOffsets: make(map[int]int)}
}

func (cv *columnView) CanHandle(msg tea.Msg, state *State) bool {
	_, ok := msg.(tea.KeyMsg)
	return ok && state.CurrentView == ViewColumn
}

func (cv *columnView) Update(msg tea.Msg, state *State) (*State, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || state.Cache.IsEmpty() {
		return state, nil
	}
	path := state.Cache.CurrentSelectionPath()
	level := path.Level()
	index := path[level]

	switch keyMsg.String() {
	case "down", "j":
		if index+1 < cv.siblingCount(state, level) {
			pick(state, cv, level, index+1)
		}
	case "up", "k":
		if index > 0 {
			pick(state, cv, level, index-1)
		}
	case "right", "l", "enter":
		node := state.Cache.NodeAt(level, index)
		if state.Cache.ChildCount(node) > 0 {
			pick(state, cv, level+1, 0)
		}
	case "left", "h":
		if level > 0 {
			pick(state, cv, level-1, path[level-1])
		}
	}
	return state, nil
}

// siblingCount returns the number of entries in the column at the given
// level along the current path.
func (cv *columnView) siblingCount(state *State, level int) int {
	if level == 0 {
		return 1
	}
	path := state.Cache.CurrentSelectionPath()
	parent := state.Cache.NodeAt(level-1, path[level-1])
	return state.Cache.ChildCount(parent)
}

func (cv *columnView) Render(state *State) string {
	if state.Cache.IsEmpty() {
		return renderPlaceholder(state, cv.styles, "column")
	}
	if state.ColumnState == nil {
		cv.ShowCurrentSelection(state)
	}
	path := state.Cache.CurrentSelectionPath()

	// One column per path level, plus the read-ahead column when the
	// selected node has children.
	levels := path.Level() + 1
	selected := state.Cache.NodeAtPath(path)
	if state.Cache.ChildCount(selected) > 0 {
		levels++
	}

	colWidth := MaxColumnWidth
	if avail := state.ContentWidth / levels; avail < colWidth {
		colWidth = avail
	}
	if colWidth < MinColumnWidth {
		colWidth = MinColumnWidth
	}
	colHeight := state.ContentHeight - 2
	if colHeight < 3 {
		colHeight = 3
	}

	columns := make([]string, 0, levels)
	for level := 0; level < levels; level++ {
		columns = append(columns, cv.renderColumn(state, level, colWidth, colHeight))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	return composeScreen(state, cv.styles, "COLUMNS", body, cv.footerHint())
}

func (cv *columnView) renderColumn(state *State, level, width, height int) string {
	path := state.Cache.CurrentSelectionPath()

	title := fmt.Sprintf("level %d", level)
	focused := level == path.Level()
	lines := []string{cv.styles.ColumnTitle(truncate(title, width), focused)}

	count := cv.siblingCount(state, level)
	selectedIdx := -1
	if level < len(path) {
		selectedIdx = path[level]
	}

	// Keep the selected row inside the visible window.
	offset := state.ColumnState.ScrollOffsets[level]
	visible := height - 1
	if selectedIdx >= 0 {
		if selectedIdx < offset {
			offset = selectedIdx
		}
		if selectedIdx >= offset+visible {
			offset = selectedIdx - visible + 1
		}
		state.ColumnState.ScrollOffsets[level] = offset
	}

	for i := offset; i < count && len(lines) <= visible; i++ {
		node := state.Cache.NodeAt(level, i)
		marker := "  "
		if state.Cache.ChildCount(node) > 0 {
			marker = " ▸"
		}
		label := nodeLabel(state, cv.styles, node, width-3)
		if i == selectedIdx {
			label = cv.styles.SelectedItem(truncate(state.Cache.BriefDescription(node), width-3))
		}
		lines = append(lines, label+marker)
	}

	col := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(width).Render(col)
}

func (cv *columnView) footerHint() string {
	return "↑↓ siblings │ ←→ levels │ b selector │ 1/2/3 views │ m terminology │ q quit"
}

// ═══════════════════════════════════════════════════════════════════════════════
// TREE VIEW
// ═══════════════════════════════════════════════════════════════════════════════

// treeView implements the View interface as a collapsible outline. The
// expansion state is not stored: a branch is expanded exactly when its path
// is a prefix of the current selection path, which makes redisplay a pure
// function of the cache.
type treeView struct {
	styles StyleManager
}

// NewTreeView creates the tree view.
func NewTreeView(styles StyleManager) View {
	return &treeView{styles: styles}
}

func (tv *treeView) Name() string {
	return ViewTree
}

func (tv *treeView) UpdateForNewTarget(state *State) {
	state.TreeState = &TreeViewState{}
	tv.ShowCurrentSelection(state)
}

func (tv *treeView) ShowCurrentSelection(state *State) {
	if state.TreeState == nil {
		state.TreeState = &TreeViewState{}
	}
	path := state.Cache.CurrentSelectionPath()
	if path == nil {
		tv.Clear(state)
		return
	}

	rows := make([]TreeRow, 0, 16)
	tv.appendRows(state, &rows, treecache.IndexPath{0}, path)
	state.TreeState.Rows = rows

	state.TreeState.SelectedRow = 0
	for i, row := range rows {
		if row.Path.Equal(path) {
			state.TreeState.SelectedRow = i
			break
		}
	}
}

// appendRows walks the displayed portion of the tree: every node on the
// selection path expands, everything else collapses.
func (tv *treeView) appendRows(state *State, rows *[]TreeRow, path treecache.IndexPath, current treecache.IndexPath) {
	node := state.Cache.NodeAtPath(path)
	if node == nil {
		return
	}
	expanded := path.IsPrefixOf(current)
	hasChildren := state.Cache.ChildCount(node) > 0

	*rows = append(*rows, TreeRow{
		Node:        node,
		Path:        path.Clone(),
		Depth:       path.Level(),
		Expanded:    expanded && hasChildren,
		HasChildren: hasChildren,
	})

	if !expanded || !hasChildren {
		return
	}
	count := state.Cache.ChildCount(node)
	for i := 0; i < count; i++ {
		tv.appendRows(state, rows, append(path.Clone(), i), current)
	}
}

func (tv *treeView) Clear(state *State) {
	state.TreeState = &TreeViewState{}
}

func (tv *treeView) CanHandle(msg tea.Msg, state *State) bool {
	_, ok := msg.(tea.KeyMsg)
	return ok && state.CurrentView == ViewTree
}

func (tv *treeView) Update(msg tea.Msg, state *State) (*State, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || state.Cache.IsEmpty() || state.TreeState == nil {
		return state, nil
	}
	rows := state.TreeState.Rows
	sel := state.TreeState.SelectedRow

	switch keyMsg.String() {
	case "down", "j":
		if sel+1 < len(rows) {
			tv.pickRow(state, rows[sel+1])
		}
	case "up", "k":
		if sel > 0 {
			tv.pickRow(state, rows[sel-1])
		}
	case "right", "l", "enter":
		row := rows[sel]
		if row.HasChildren {
			pick(state, tv, row.Path.Level()+1, 0)
		}
	case "left", "h":
		row := rows[sel]
		if row.Path.Level() > 0 {
			parent := row.Path[:len(row.Path)-1]
			pick(state, tv, parent.Level(), parent[len(parent)-1])
		}
	}
	return state, nil
}

// pickRow selects the node a row displays.
func (tv *treeView) pickRow(state *State, row TreeRow) {
	pick(state, tv, row.Path.Level(), row.Path[len(row.Path)-1])
}

func (tv *treeView) Render(state *State) string {
	if state.Cache.IsEmpty() {
		return renderPlaceholder(state, tv.styles, "tree")
	}
	ts := state.TreeState
	if ts == nil {
		tv.ShowCurrentSelection(state)
		ts = state.TreeState
	}

	visible := state.ContentHeight - 2
	if visible < 3 {
		visible = 3
	}
	if ts.SelectedRow < ts.ScrollOffset {
		ts.ScrollOffset = ts.SelectedRow
	}
	if ts.SelectedRow >= ts.ScrollOffset+visible {
		ts.ScrollOffset = ts.SelectedRow - visible + 1
	}

	var b strings.Builder
	for i := ts.ScrollOffset; i < len(ts.Rows) && i < ts.ScrollOffset+visible; i++ {
		b.WriteString(tv.renderRow(state, ts.Rows[i], i == ts.SelectedRow))
		b.WriteByte('\n')
	}

	return composeScreen(state, tv.styles, "TREE", strings.TrimRight(b.String(), "\n"), tv.footerHint())
}

func (tv *treeView) renderRow(state *State, row TreeRow, selected bool) string {
	indent := strings.Repeat("  ", row.Depth)
	icon := "•"
	if row.HasChildren {
		if row.Expanded {
			icon = "▼"
		} else {
			icon = "▶"
		}
	}

	width := state.ContentWidth - len(indent) - 4
	if selected {
		text := truncate(state.Cache.MediumDescription(row.Node), width)
		return indent + icon + " " + tv.styles.SelectedItem(text)
	}
	return indent + tv.styles.DimText(icon) + " " + nodeLabel(state, tv.styles, row.Node, width)
}

func (tv *treeView) footerHint() string {
	return "↑↓ rows │ → expand │ ← collapse │ b selector │ 1/2/3 views │ q quit"
}

// ═══════════════════════════════════════════════════════════════════════════════
// LIST VIEW
// ═══════════════════════════════════════════════════════════════════════════════

// listView implements the View interface as a flat list of the siblings at
// the selection's deepest level, with type-to-filter.
type listView struct {
	styles StyleManager
	filter FilterManager
}

// NewListView creates the list view.
func NewListView(styles StyleManager, filter FilterManager) View {
	return &listView{styles: styles, filter: filter}
}

func (lv *listView) Name() string {
	return ViewList
}

func (lv *listView) UpdateForNewTarget(state *State) {
	state.ListState = &ListViewState{}
	lv.ShowCurrentSelection(state)
}

func (lv *listView) ShowCurrentSelection(state *State) {
	if state.ListState == nil {
		state.ListState = &ListViewState{}
	}
	ls := state.ListState
	path := state.Cache.CurrentSelectionPath()
	if path == nil {
		lv.Clear(state)
		return
	}

	if !ls.ready {
		lv.initList(state)
	}

	ls.Level = path.Level()
	items := lv.buildRows(state, ls.Level)
	if text := lv.filter.GetFilterText(); text != "" {
		items = lv.filter.ApplyFilter(items, text)
	}
	ls.List.SetItems(items)

	// Reselect the row showing the current selection.
	selectedIdx := path[ls.Level]
	for i, item := range items {
		if row, ok := item.(ListRow); ok && row.RowIndex == selectedIdx {
			ls.List.Select(i)
			break
		}
	}
}

// buildRows prerenders the sibling rows at one level.
func (lv *listView) buildRows(state *State, level int) []list.Item {
	path := state.Cache.CurrentSelectionPath()

	count := 1
	if level > 0 {
		parent := state.Cache.NodeAt(level-1, path[level-1])
		count = state.Cache.ChildCount(parent)
	}

	items := make([]list.Item, 0, count)
	for i := 0; i < count; i++ {
		node := state.Cache.NodeAt(level, i)
		if node == nil {
			continue
		}
		title := state.Cache.BriefDescription(node)
		if !node.Exists() {
			title += " ✗"
		}
		attrs := node.Attributes()
		items = append(items, ListRow{
			Node:       node,
			RowLevel:   level,
			RowIndex:   i,
			TitleText:  title,
			DescText:   state.Cache.FullDescription(node),
			FilterText: attrs.Role + " " + attrs.Title + " " + attrs.Help,
		})
	}
	return items
}

func (lv *listView) initList(state *State) {
	t := lv.styles.GetTheme()
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(t.Text).
		Background(t.Selection).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(t.Subtle).
		Background(t.Selection)

	l := list.New(nil, delegate, state.ContentWidth, DefaultListHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	if state.ContentHeight > 0 {
		l.SetHeight(state.ContentHeight)
	}

	state.ListState.List = l
	state.ListState.ready = true
}

func (lv *listView) Clear(state *State) {
	state.ListState = &ListViewState{}
	lv.filter.ClearFilter()
}

func (lv *listView) CanHandle(msg tea.Msg, state *State) bool {
	_, ok := msg.(tea.KeyMsg)
	return ok && state.CurrentView == ViewList
}

func (lv *listView) Update(msg tea.Msg, state *State) (*State, tea.Cmd) {
	if state.Cache.IsEmpty() || state.ListState == nil || !state.ListState.ready {
		return state, nil
	}
	ls := state.ListState
	path := state.Cache.CurrentSelectionPath()

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "right", "l", "enter":
			node := state.Cache.NodeAtPath(path)
			if state.Cache.ChildCount(node) > 0 {
				pick(state, lv, path.Level()+1, 0)
			}
			return state, nil
		case "left", "h", "backspace":
			if path.Level() > 0 {
				pick(state, lv, path.Level()-1, path[path.Level()-1])
			}
			return state, nil
		}
	}

	// Everything else goes to the list model; a cursor move is a pick.
	var cmd tea.Cmd
	ls.List, cmd = ls.List.Update(msg)
	if row, ok := ls.List.SelectedItem().(ListRow); ok {
		if row.RowLevel == ls.Level && row.RowIndex != path[ls.Level] {
			state.Cache.UpdateCurrentSelection(row.RowLevel, row.RowIndex)
			RebuildBreadcrumb(state)
			// No rebuild of the rows themselves: the sibling set is
			// unchanged and the list already shows the moved cursor.
		}
	}
	return state, cmd
}

func (lv *listView) Render(state *State) string {
	if state.Cache.IsEmpty() {
		return renderPlaceholder(state, lv.styles, "list")
	}
	ls := state.ListState
	if ls == nil || !ls.ready {
		lv.ShowCurrentSelection(state)
		ls = state.ListState
	}

	var filterBar string
	if lv.filter.IsActive() {
		filterBar = "/" + lv.filter.GetFilter().View()
	} else if text := lv.filter.GetFilterText(); text != "" {
		filterBar = lv.styles.DimText("filter: " + text)
	}

	body := ls.List.View()
	if filterBar != "" {
		body = filterBar + "\n" + body
	}

	return composeScreen(state, lv.styles, fmt.Sprintf("LIST · level %d", ls.Level),
		body, lv.footerHint())
}

func (lv *listView) footerHint() string {
	return "↑↓ siblings │ ←→ levels │ / filter │ b selector │ 1/2/3 views │ q quit"
}

// ═══════════════════════════════════════════════════════════════════════════════
// HELP VIEW
// ═══════════════════════════════════════════════════════════════════════════════

// helpView renders the key binding overlay. It has no hierarchy display of
// its own, so the synchronization contract is a no-op.
type helpView struct {
	styles StyleManager
}

// NewHelpView creates the help view.
func NewHelpView(styles StyleManager) View {
	return &helpView{styles: styles}
}

func (hv *helpView) Name() string                      { return ViewHelp }
func (hv *helpView) UpdateForNewTarget(state *State)   {}
func (hv *helpView) ShowCurrentSelection(state *State) {}
func (hv *helpView) Clear(state *State)                {}

func (hv *helpView) CanHandle(msg tea.Msg, state *State) bool {
	return false
}

func (hv *helpView) Update(msg tea.Msg, state *State) (*State, tea.Cmd) {
	return state, nil
}

func (hv *helpView) Render(state *State) string {
	var b strings.Builder
	for _, section := range DefaultKeyBindings() {
		b.WriteString(hv.styles.ColumnTitle(section.Title, false))
		b.WriteByte('\n')
		for _, kb := range section.Bindings {
			b.WriteString(fmt.Sprintf("  %-10s %s\n", kb.Key, kb.Description))
		}
		b.WriteByte('\n')
	}
	return composeScreen(state, hv.styles, "HELP",
		strings.TrimRight(b.String(), "\n"), "? or esc to go back")
}

// ═══════════════════════════════════════════════════════════════════════════════
// SHARED CHROME
// ═══════════════════════════════════════════════════════════════════════════════

// composeScreen stacks the standard chrome around a view body: header,
// breadcrumb bar, body, status line and footer. The selector overlay, when
// open, replaces the body.
func composeScreen(state *State, styles StyleManager, title, body, footer string) string {
	width := state.WindowWidth
	if width < 40 {
		width = 80
	}

	header := styles.Header("AXSCOPE │ "+title+" │ "+state.Cache.Terminology().String(), width)
	crumb := RenderBreadcrumb(state, styles)

	if state.Selector != nil {
		body = RenderSelector(state, styles)
	}

	status := renderStatus(state, styles)

	parts := []string{header, crumb, Separator(styles, width), body}
	if detail := renderDetailLine(state, styles, width); detail != "" {
		parts = append(parts, detail)
	}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, styles.Footer(footer, width))
	return strings.Join(parts, "\n")
}

// renderDetailLine shows the full description of the selected node under the
// body, in whatever terminology mode is active.
func renderDetailLine(state *State, styles StyleManager, width int) string {
	node := state.Cache.CurrentNode()
	if node == nil {
		return ""
	}
	return styles.DimText(truncate(state.Cache.FullDescription(node), width))
}

func renderStatus(state *State, styles StyleManager) string {
	if state.StatusMessage == "" {
		return ""
	}
	if state.StatusType == StatusError {
		return styles.Error(state.StatusMessage)
	}
	return styles.DimText(state.StatusMessage)
}

// renderPlaceholder is the empty-cache display shared by all projections.
func renderPlaceholder(state *State, styles StyleManager, viewName string) string {
	body := styles.DimText("no target hierarchy loaded")
	return composeScreen(state, styles, strings.ToUpper(viewName), body, "q quit")
}
