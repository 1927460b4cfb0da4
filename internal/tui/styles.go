package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pbehr/axscope/internal/tui/theme"
)

// styleManager implements the StyleManager interface on top of a theme.
type styleManager struct {
	theme *theme.Theme

	headerStyle    lipgloss.Style
	footerStyle    lipgloss.Style
	selectedStyle  lipgloss.Style
	dimStyle       lipgloss.Style
	errorStyle     lipgloss.Style
	destroyedStyle lipgloss.Style
	crumbStyle     lipgloss.Style
	crumbActive    lipgloss.Style
	crumbSep       lipgloss.Style
	menuStyle      lipgloss.Style
	menuHighlight  lipgloss.Style
	boxStyle       lipgloss.Style
	columnTitle    lipgloss.Style
	columnFocused  lipgloss.Style
}

// NewStyleManager creates a StyleManager for the given theme.
func NewStyleManager(t *theme.Theme) StyleManager {
	return &styleManager{
		theme: t,

		headerStyle: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Bold(true).
			Padding(0, 2),

		footerStyle: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Background(t.Surface).
			Padding(0, 1),

		selectedStyle: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Selection).
			Bold(true),

		dimStyle: lipgloss.NewStyle().
			Foreground(t.Muted),

		errorStyle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		destroyedStyle: lipgloss.NewStyle().
			Foreground(t.Destroyed).
			Strikethrough(true),

		crumbStyle: lipgloss.NewStyle().
			Foreground(t.Subtle),

		crumbActive: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Overlay).
			Bold(true),

		crumbSep: lipgloss.NewStyle().
			Foreground(t.Muted),

		menuStyle: lipgloss.NewStyle().
			Foreground(t.Text).
			Padding(0, 1),

		menuHighlight: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Highlight).
			Bold(true).
			Padding(0, 1),

		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		columnTitle: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Underline(true),

		columnFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Underline(true),
	}
}

func (sm *styleManager) Header(text string, width int) string {
	return sm.headerStyle.Width(max(width, 0)).Render(text)
}

func (sm *styleManager) Footer(text string, width int) string {
	return sm.footerStyle.Width(max(width, 0)).Render(text)
}

func (sm *styleManager) SelectedItem(text string) string {
	return sm.selectedStyle.Render(text)
}

func (sm *styleManager) DimText(text string) string {
	return sm.dimStyle.Render(text)
}

func (sm *styleManager) Error(text string) string {
	return sm.errorStyle.Render(text)
}

func (sm *styleManager) Destroyed(text string) string {
	return sm.destroyedStyle.Render(text)
}

func (sm *styleManager) RoleText(text, role string) string {
	return lipgloss.NewStyle().Foreground(sm.theme.RoleColor(role)).Render(text)
}

func (sm *styleManager) BreadcrumbItem(text string, active bool) string {
	if active {
		return sm.crumbActive.Render(" " + text + " ")
	}
	return sm.crumbStyle.Render(text)
}

func (sm *styleManager) BreadcrumbSeparator() string {
	return sm.crumbSep.Render(" ▸ ")
}

func (sm *styleManager) MenuEntry(text string, highlighted bool) string {
	if highlighted {
		return sm.menuHighlight.Render(text)
	}
	return sm.menuStyle.Render(text)
}

func (sm *styleManager) Box(text string) string {
	return sm.boxStyle.Render(text)
}

func (sm *styleManager) ColumnTitle(text string, focused bool) string {
	if focused {
		return sm.columnFocused.Render(text)
	}
	return sm.columnTitle.Render(text)
}

func (sm *styleManager) GetTheme() *theme.Theme {
	return sm.theme
}

// Separator renders a horizontal rule of the given width.
func Separator(sm StyleManager, width int) string {
	if width <= 0 {
		return ""
	}
	return sm.DimText(strings.Repeat("─", width))
}
