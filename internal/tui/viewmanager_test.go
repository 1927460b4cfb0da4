package tui

import (
	"testing"

	"github.com/pbehr/axscope/internal/tui/theme"
)

func newTestManagers() (ViewManager, StyleManager, FilterManager) {
	styles := NewStyleManager(theme.DefaultTheme())
	filter := NewFilterManager()
	return NewViewManager(styles, filter), styles, filter
}

func TestNewViewManagerRegistersViews(t *testing.T) {
	vm, _, _ := newTestManagers()

	for _, name := range []string{ViewColumn, ViewTree, ViewList, ViewHelp} {
		if vm.GetView(name) == nil {
			t.Errorf("view %q not registered", name)
		}
	}
	if len(vm.GetAllViews()) != 4 {
		t.Errorf("registered views = %d, want 4", len(vm.GetAllViews()))
	}
}

func TestSwitchView(t *testing.T) {
	vm, _, _ := newTestManagers()

	if err := vm.SwitchView(ViewTree); err != nil {
		t.Errorf("SwitchView(tree) error = %v", err)
	}
	if err := vm.SwitchView("nonexistent"); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestGetCurrentViewFallback(t *testing.T) {
	vm, _, _ := newTestManagers()

	// Nil state falls back to the manager's own current view.
	if v := vm.GetCurrentView(nil); v == nil || v.Name() != ViewColumn {
		t.Errorf("GetCurrentView(nil) = %v, want column view", v)
	}

	// A state naming an unknown view falls back to the column view.
	state := &State{CurrentView: "bogus"}
	if v := vm.GetCurrentView(state); v == nil || v.Name() != ViewColumn {
		t.Errorf("GetCurrentView(bogus) = %v, want column view", v)
	}

	state.CurrentView = ViewList
	if v := vm.GetCurrentView(state); v.Name() != ViewList {
		t.Errorf("GetCurrentView(list) = %q, want list", v.Name())
	}
}
