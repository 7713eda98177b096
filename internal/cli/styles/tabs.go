package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabnav/internal/domain/entity"
)

// TabItem is one rendered entry of a tab or sub-tab bar.
type TabItem struct {
	Label    string
	Active   bool
	Disabled bool
	Pinned   bool
	Open     bool
	Badge    *entity.TabBadge
}

// TabBarModel renders the top-level tab bar.
type TabBarModel struct {
	Items []TabItem
	// Collapsed renders labels shortened to their first rune.
	Collapsed bool
	Width     int
	theme     *Theme
}

// NewTabBar creates a tab bar for the given items.
func NewTabBar(theme *Theme, items []TabItem) TabBarModel {
	return TabBarModel{Items: items, Width: 80, theme: theme}
}

// View renders the tab bar.
func (m TabBarModel) View() string {
	t := m.theme
	rendered := make([]string, 0, len(m.Items))

	for _, item := range m.Items {
		label := item.Label
		if m.Collapsed && label != "" {
			label = string([]rune(label)[:1])
		}
		if item.Pinned {
			label = IconPin + " " + label
		}
		if !item.Open && !item.Active {
			label = "·" + label
		}

		style := t.InactiveTab
		switch {
		case item.Active:
			style = t.ActiveTab
		case item.Disabled:
			style = t.DisabledTab
		}

		cell := style.Render(label)
		if badge := t.TabBadge(item.Badge); badge != "" {
			cell = lipgloss.JoinHorizontal(lipgloss.Center, cell, " ", badge)
		}
		rendered = append(rendered, cell)
	}

	gap := lipgloss.NewStyle().
		Foreground(t.Border).
		Render(" │ ")

	row := strings.Join(rendered, gap)
	if m.Width > 0 {
		return t.TabBar.Width(m.Width).Render(row)
	}
	return t.TabBar.Render(row)
}

// SubTabBar renders the sub-tab row under the active tab.
func SubTabBar(theme *Theme, items []TabItem) string {
	if len(items) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(items))
	for _, item := range items {
		style := theme.InactiveSubTab
		switch {
		case item.Active:
			style = theme.ActiveSubTab
		case item.Disabled:
			style = theme.DisabledSubTab
		}
		cell := style.Render(item.Label)
		if badge := theme.TabBadge(item.Badge); badge != "" {
			cell += " " + badge
		}
		rendered = append(rendered, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, join(rendered, theme.Subtle.Render("·"))...)
}

// join inserts a separator between items.
func join(items []string, sep string) []string {
	if len(items) == 0 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}
