package tui

import (
	"fmt"
)

// viewManager implements the ViewManager interface.
type viewManager struct {
	views       map[string]View
	currentView string
	styles      StyleManager
	filter      FilterManager
}

// NewViewManager creates a ViewManager with the three projections and the
// help overlay registered.
func NewViewManager(styles StyleManager, filter FilterManager) ViewManager {
	vm := &viewManager{
		views:       make(map[string]View),
		currentView: ViewColumn,
		styles:      styles,
		filter:      filter,
	}

	vm.RegisterView(NewColumnView(styles))
	vm.RegisterView(NewTreeView(styles))
	vm.RegisterView(NewListView(styles, filter))
	vm.RegisterView(NewHelpView(styles))

	return vm
}

// GetCurrentView returns the currently active view.
func (vm *viewManager) GetCurrentView(state *State) View {
	if state == nil {
		return vm.views[vm.currentView]
	}

	viewName := state.CurrentView
	if viewName == "" {
		viewName = vm.currentView
	}
	if view, ok := vm.views[viewName]; ok {
		return view
	}
	return vm.views[ViewColumn]
}

// SwitchView switches to the specified view.
func (vm *viewManager) SwitchView(viewName string) error {
	if _, ok := vm.views[viewName]; !ok {
		return fmt.Errorf("view '%s' not found", viewName)
	}
	vm.currentView = viewName
	return nil
}

// GetView returns a view by name.
func (vm *viewManager) GetView(viewName string) View {
	return vm.views[viewName]
}

// RegisterView registers a new view.
func (vm *viewManager) RegisterView(view View) {
	if view != nil {
		vm.views[view.Name()] = view
	}
}

// GetAllViews returns all registered views.
func (vm *viewManager) GetAllViews() map[string]View {
	views := make(map[string]View, len(vm.views))
	for k, v := range vm.views {
		views[k] = v
	}
	return views
}
