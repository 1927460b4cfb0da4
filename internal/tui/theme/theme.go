// Package theme provides the visual theme for the TUI: a dark default
// palette plus per-role accent colors so every element role reads at a
// glance across the three presentations.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents the complete visual theme for the application.
type Theme struct {
	// Base colors
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color
	Muted   lipgloss.Color
	Subtle  lipgloss.Color
	Text    lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Element role colors
	Application lipgloss.Color
	Window      lipgloss.Color
	Group       lipgloss.Color
	Control     lipgloss.Color
	TextRole    lipgloss.Color
	Menu        lipgloss.Color

	// UI element colors
	Border    lipgloss.Color
	Selection lipgloss.Color
	Highlight lipgloss.Color
	Destroyed lipgloss.Color
}

// DefaultTheme returns the default dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Base:    lipgloss.Color("#0d1117"),
		Surface: lipgloss.Color("#161b22"),
		Overlay: lipgloss.Color("#21262d"),
		Muted:   lipgloss.Color("#484f58"),
		Subtle:  lipgloss.Color("#6e7681"),
		Text:    lipgloss.Color("#e6edf3"),

		Primary:   lipgloss.Color("#58a6ff"),
		Secondary: lipgloss.Color("#bc8cff"),

		Success: lipgloss.Color("#3fb950"),
		Warning: lipgloss.Color("#d29922"),
		Error:   lipgloss.Color("#f85149"),
		Info:    lipgloss.Color("#58a6ff"),

		Application: lipgloss.Color("#a371f7"),
		Window:      lipgloss.Color("#58a6ff"),
		Group:       lipgloss.Color("#79c0ff"),
		Control:     lipgloss.Color("#7ee787"),
		TextRole:    lipgloss.Color("#ffa657"),
		Menu:        lipgloss.Color("#d2a8ff"),

		Border:    lipgloss.Color("#30363d"),
		Selection: lipgloss.Color("#388bfd"),
		Highlight: lipgloss.Color("#1f6feb"),
		Destroyed: lipgloss.Color("#f85149"),
	}
}

// LightTheme returns a light palette for bright terminals.
func LightTheme() *Theme {
	return &Theme{
		Base:    lipgloss.Color("#ffffff"),
		Surface: lipgloss.Color("#f6f8fa"),
		Overlay: lipgloss.Color("#eaeef2"),
		Muted:   lipgloss.Color("#8c959f"),
		Subtle:  lipgloss.Color("#57606a"),
		Text:    lipgloss.Color("#1f2328"),

		Primary:   lipgloss.Color("#0969da"),
		Secondary: lipgloss.Color("#8250df"),

		Success: lipgloss.Color("#1a7f37"),
		Warning: lipgloss.Color("#9a6700"),
		Error:   lipgloss.Color("#cf222e"),
		Info:    lipgloss.Color("#0969da"),

		Application: lipgloss.Color("#8250df"),
		Window:      lipgloss.Color("#0969da"),
		Group:       lipgloss.Color("#218bff"),
		Control:     lipgloss.Color("#1a7f37"),
		TextRole:    lipgloss.Color("#bc4c00"),
		Menu:        lipgloss.Color("#a475f9"),

		Border:    lipgloss.Color("#d0d7de"),
		Selection: lipgloss.Color("#218bff"),
		Highlight: lipgloss.Color("#0969da"),
		Destroyed: lipgloss.Color("#cf222e"),
	}
}

// ByName returns the named theme; unknown names fall back to the default.
func ByName(name string) *Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DefaultTheme()
	}
}

// RoleColor maps an accessibility role constant to its accent color.
func (t *Theme) RoleColor(role string) lipgloss.Color {
	switch {
	case role == "AXApplication":
		return t.Application
	case role == "AXWindow", role == "AXSheet", role == "AXDrawer":
		return t.Window
	case strings.Contains(role, "Menu"):
		return t.Menu
	case role == "AXStaticText", role == "AXTextField", role == "AXTextArea":
		return t.TextRole
	case role == "AXButton", role == "AXCheckBox", role == "AXRadioButton",
		role == "AXSlider", role == "AXPopUpButton":
		return t.Control
	default:
		return t.Group
	}
}
