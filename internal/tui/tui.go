package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbehr/axscope/internal/nav"
	"github.com/pbehr/axscope/internal/treecache"
)

// tui implements the TUI interface.
type tui struct {
	logger      *slog.Logger
	viewManager ViewManager
	styles      StyleManager
	filter      FilterManager
}

// NewTUI creates a new TUI instance.
func NewTUI(logger *slog.Logger, styles StyleManager) TUI {
	filter := NewFilterManager()
	viewManager := NewViewManager(styles, filter)

	return &tui{
		logger:      logger,
		viewManager: viewManager,
		styles:      styles,
		filter:      filter,
	}
}

// Run starts the TUI over the given state and blocks until the user exits.
func (t *tui) Run(state *State) error {
	if state == nil || state.Cache == nil {
		return fmt.Errorf("state with a cache is required")
	}

	model := NewModel(state, t.viewManager, t.styles, t.filter, t.logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// model is the main bubbletea application model. It is also the selector
// machine's notifier: committed and cancelled sessions both end in a
// redisplay of the active view plus a breadcrumb rebuild.
type model struct {
	state       *State
	viewManager ViewManager
	styles      StyleManager
	filter      FilterManager
	logger      *slog.Logger
}

// NewModel creates the application model over a prepared state. The state
// must carry a seeded (or deliberately empty) cache; the selector machine is
// created here so the model can serve as its notifier.
func NewModel(state *State, vm ViewManager, styles StyleManager, filter FilterManager, logger *slog.Logger) tea.Model {
	if state.CurrentView == "" {
		state.CurrentView = ViewColumn
	}
	if state.WindowWidth == 0 {
		state.WindowWidth = 80
		state.WindowHeight = 30
		state.ContentWidth = 76
		state.ContentHeight = 24
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &model{
		state:       state,
		viewManager: vm,
		styles:      styles,
		filter:      filter,
		logger:      logger,
	}
	state.Machine = nav.New(state.Cache, m)

	// A freshly attached target shows up in every presentation, not just
	// the active one.
	m.updateAllForNewTarget()
	return m
}

// SelectionCommitted implements nav.Notifier.
func (m *model) SelectionCommitted() {
	m.redisplayAfterSession()
}

// SelectionCancelled implements nav.Notifier.
func (m *model) SelectionCancelled() {
	m.redisplayAfterSession()
}

func (m *model) redisplayAfterSession() {
	RebuildBreadcrumb(m.state)
	for _, view := range m.viewManager.GetAllViews() {
		view.ShowCurrentSelection(m.state)
	}
}

// updateAllForNewTarget runs the new-target arm of the synchronization
// contract across every registered view.
func (m *model) updateAllForNewTarget() {
	if m.state.Cache.IsEmpty() {
		for _, view := range m.viewManager.GetAllViews() {
			view.Clear(m.state)
		}
		m.state.Breadcrumb = nil
		m.state.BreadcrumbCursor = 0
		return
	}
	for _, view := range m.viewManager.GetAllViews() {
		view.UpdateForNewTarget(m.state)
	}
	RebuildBreadcrumb(m.state)
}

// Init initializes the model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	default:
		if m.filter.IsActive() {
			cmd := m.filter.UpdateInput(msg)
			m.refreshListRows()
			return m, cmd
		}

		currentView := m.viewManager.GetCurrentView(m.state)
		if currentView != nil && currentView.CanHandle(msg, m.state) {
			newState, cmd := currentView.Update(msg, m.state)
			m.state = newState
			return m, cmd
		}
		return m, nil
	}
}

// View renders the current view.
func (m *model) View() string {
	currentView := m.viewManager.GetCurrentView(m.state)
	if currentView == nil {
		return "Error: No view available"
	}
	return currentView.Render(m.state)
}

// handleWindowResize handles window resize messages.
func (m *model) handleWindowResize(msg tea.WindowSizeMsg) {
	m.state.WindowWidth = msg.Width
	m.state.WindowHeight = msg.Height

	headerHeight := 2
	crumbHeight := 2
	detailHeight := 1
	footerHeight := 2
	m.state.ContentWidth = msg.Width - 4
	m.state.ContentHeight = msg.Height - headerHeight - crumbHeight - detailHeight - footerHeight

	if m.state.ListState != nil && m.state.ListState.ready {
		m.state.ListState.List.SetWidth(m.state.ContentWidth)
		height := m.state.ContentHeight
		if height < 10 {
			height = 10
		}
		m.state.ListState.List.SetHeight(height)
	}
}

// handleKeyPress handles key press messages.
func (m *model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// An open selector owns the keyboard until the session ends.
	if SelectorHandleKey(m.state, key) {
		return m, nil
	}

	// Filter input capture, list view only.
	if m.filter.IsActive() && m.state.CurrentView == ViewList {
		switch key {
		case "esc":
			m.filter.ClearFilter()
			m.refreshListRows()
			return m, nil
		case "enter", "tab":
			// Keep the text, stop capturing.
			m.filter.SetActive(false)
			return m, nil
		case "up", "down":
			m.filter.SetActive(false)
			// Fall through to navigation below.
		default:
			cmd := m.filter.UpdateInput(msg)
			m.refreshListRows()
			return m, cmd
		}
	} else if m.filter.IsActive() {
		m.filter.SetActive(false)
	}

	switch key {
	case "q":
		if m.state.CurrentView == ViewHelp {
			return m.handleHelpToggle()
		}
		return m, tea.Quit

	case "esc":
		if m.state.CurrentView == ViewHelp {
			return m.handleHelpToggle()
		}
		return m, nil

	case "?":
		return m.handleHelpToggle()

	case "1":
		m.switchView(ViewColumn)
		return m, nil

	case "2":
		m.switchView(ViewTree)
		return m, nil

	case "3":
		m.switchView(ViewList)
		return m, nil

	case "/":
		if m.state.CurrentView == ViewList {
			m.filter.SetActive(!m.filter.IsActive())
			if !m.filter.IsActive() {
				m.refreshListRows()
			}
		}
		return m, nil

	case "m":
		m.cycleTerminology()
		return m, nil

	case "r":
		m.refreshSelected()
		return m, nil

	case "[":
		if m.state.BreadcrumbCursor > 0 {
			m.state.BreadcrumbCursor--
		}
		return m, nil

	case "]":
		if m.state.BreadcrumbCursor < len(m.state.Breadcrumb)-1 {
			m.state.BreadcrumbCursor++
		}
		return m, nil

	case "b", " ":
		if !OpenSelector(m.state) {
			m.setStatus("nothing to select here", StatusWarning)
		}
		return m, nil
	}

	m.state.StatusMessage = ""

	currentView := m.viewManager.GetCurrentView(m.state)
	if currentView != nil && currentView.CanHandle(msg, m.state) {
		newState, cmd := currentView.Update(msg, m.state)
		m.state = newState
		return m, cmd
	}
	return m, nil
}

// switchView activates another presentation. The newly shown view redisplays
// the current selection so all presentations stay interchangeable.
func (m *model) switchView(name string) {
	if name == m.state.CurrentView {
		return
	}
	m.state.PreviousView = m.state.CurrentView
	m.state.CurrentView = name
	if err := m.viewManager.SwitchView(name); err != nil {
		m.logger.Warn("view switch failed", "view", name, "error", err)
		return
	}
	if view := m.viewManager.GetView(name); view != nil {
		view.ShowCurrentSelection(m.state)
	}
}

// handleHelpToggle toggles the help view.
func (m *model) handleHelpToggle() (tea.Model, tea.Cmd) {
	if m.state.CurrentView == ViewHelp {
		restored := m.state.PreviousView
		if restored == "" {
			restored = ViewColumn
		}
		m.state.CurrentView = restored
		m.viewManager.SwitchView(restored)
	} else {
		m.state.PreviousView = m.state.CurrentView
		m.state.CurrentView = ViewHelp
		m.viewManager.SwitchView(ViewHelp)
	}
	return m, nil
}

// cycleTerminology advances the description terminology and redisplays all
// presentations; descriptions are formatting only, so the cache contents are
// untouched.
func (m *model) cycleTerminology() {
	next := m.state.Cache.Terminology().Next()
	m.state.Cache.SetTerminology(next)
	RebuildBreadcrumb(m.state)
	for _, view := range m.viewManager.GetAllViews() {
		view.ShowCurrentSelection(m.state)
	}
	m.setStatus("terminology: "+next.String(), StatusInfo)
}

// refreshSelected refetches the selected element's attributes and
// redisplays.
func (m *model) refreshSelected() {
	node := m.state.Cache.CurrentNode()
	if node == nil {
		return
	}
	m.state.Cache.RefreshAttributes(node)
	if !node.Exists() {
		m.setStatus("element no longer exists", StatusWarning)
	} else {
		m.setStatus("refreshed", StatusInfo)
	}
	RebuildBreadcrumb(m.state)
	for _, view := range m.viewManager.GetAllViews() {
		view.ShowCurrentSelection(m.state)
	}
}

// refreshListRows rebuilds the list view rows after a filter change.
func (m *model) refreshListRows() {
	if view := m.viewManager.GetView(ViewList); view != nil {
		view.ShowCurrentSelection(m.state)
	}
}

func (m *model) setStatus(message, statusType string) {
	m.state.StatusMessage = message
	m.state.StatusType = statusType
}

// NewState assembles the shared application state over a cache. The selector
// machine is attached later by NewModel, which supplies the notifier.
func NewState(cache *treecache.Cache, initialView string) *State {
	if initialView == "" {
		initialView = ViewColumn
	}
	return &State{
		Cache:         cache,
		CurrentView:   initialView,
		WindowWidth:   80,
		WindowHeight:  30,
		ContentWidth:  76,
		ContentHeight: 24,
	}
}
