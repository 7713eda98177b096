package styles

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/tabnav/internal/domain/entity"
)

func TestTabBadge(t *testing.T) {
	theme := NewTheme()
	three := 3
	many := 4200

	assert.Empty(t, theme.TabBadge(nil))
	assert.Empty(t, theme.TabBadge(&entity.TabBadge{}))
	assert.Contains(t, theme.TabBadge(&entity.TabBadge{Count: &three, Color: entity.BadgeRed}), "3")
	assert.Contains(t, theme.TabBadge(&entity.TabBadge{Count: &many}), "999+")
	assert.Contains(t, theme.TabBadge(&entity.TabBadge{Text: "new", Count: &three}), "new")
	assert.Contains(t, theme.TabBadge(&entity.TabBadge{Dot: true, Color: entity.BadgeYellow}), IconDot)
}

func TestBadgeColorFallsBackToAccent(t *testing.T) {
	theme := NewTheme()
	assert.Equal(t, theme.Error, theme.BadgeColor(entity.BadgeRed))
	assert.Equal(t, theme.Accent, theme.BadgeColor("purple"))
}

func TestTabBarView(t *testing.T) {
	theme := NewTheme()
	bar := NewTabBar(theme, []TabItem{
		{Label: "Home", Active: true, Open: true},
		{Label: "Admin", Disabled: true},
		{Label: "Reports", Pinned: true, Open: true},
	})
	view := bar.View()
	assert.Contains(t, view, "Home")
	assert.Contains(t, view, "Admin")
	assert.Contains(t, view, IconPin)

	bar.Collapsed = true
	assert.NotContains(t, bar.View(), "Reports")
}

func TestSubTabBar(t *testing.T) {
	theme := NewTheme()
	assert.Empty(t, SubTabBar(theme, nil))
	view := SubTabBar(theme, []TabItem{{Label: "Data", Active: true}, {Label: "Charts"}})
	assert.Contains(t, view, "Data")
	assert.Contains(t, view, "Charts")
}

func TestRelativeTo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", relativeTo(now, now.Add(-10*time.Second)))
	assert.Equal(t, "5m ago", relativeTo(now, now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", relativeTo(now, now.Add(-3*time.Hour)))
	assert.Equal(t, "2d ago", relativeTo(now, now.Add(-49*time.Hour)))
	assert.Equal(t, "2026-02-01", relativeTo(now, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestConfirmModel(t *testing.T) {
	m := NewConfirm(NewTheme(), "End session?")
	assert.False(t, m.Done())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Done())
	assert.True(t, m.Result())

	c := NewConfirm(NewTheme(), "End session?")
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, c.Done())
	assert.False(t, c.Result())
}
