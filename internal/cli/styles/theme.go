// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabnav/internal/domain/entity"
)

// Palette is the set of base colors a Theme derives its styles from.
type Palette struct {
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
}

// Theme holds lipgloss colors and styles.
type Theme struct {
	Background     lipgloss.Color
	Surface        lipgloss.Color
	SurfaceVariant lipgloss.Color
	Text           lipgloss.Color
	Muted          lipgloss.Color
	Accent         lipgloss.Color
	Border         lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	DisabledTab lipgloss.Style
	TabBar      lipgloss.Style

	ActiveSubTab   lipgloss.Style
	InactiveSubTab lipgloss.Style
	DisabledSubTab lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Box lipgloss.Style

	badgeColors map[entity.BadgeColor]lipgloss.Color
}

// DefaultDarkPalette returns the dashboard's dark palette.
func DefaultDarkPalette() Palette {
	return Palette{
		Background:     "#0b0d12",
		Surface:        "#161a22",
		SurfaceVariant: "#232a36",
		Text:           "#e6e9ef",
		Muted:          "#8a93a5",
		Accent:         "#38bdf8",
		Border:         "#2c3340",
	}
}

// NewTheme creates a Theme from the default dark palette.
func NewTheme() *Theme {
	return NewThemeFromPalette(DefaultDarkPalette())
}

// NewThemeFromPalette creates a Theme from a Palette.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Background:     lipgloss.Color(p.Background),
		Surface:        lipgloss.Color(p.Surface),
		SurfaceVariant: lipgloss.Color(p.SurfaceVariant),
		Text:           lipgloss.Color(p.Text),
		Muted:          lipgloss.Color(p.Muted),
		Accent:         lipgloss.Color(p.Accent),
		Border:         lipgloss.Color(p.Border),

		Error:   lipgloss.Color("#ef4444"),
		Warning: lipgloss.Color("#f59e0b"),
		Success: lipgloss.Color("#22c55e"),
	}
	t.badgeColors = map[entity.BadgeColor]lipgloss.Color{
		entity.BadgeRed:    t.Error,
		entity.BadgeYellow: t.Warning,
		entity.BadgeGreen:  t.Success,
		entity.BadgeBlue:   t.Accent,
		entity.BadgeGray:   t.Muted,
	}

	t.buildStyles()
	return t
}

func (t *Theme) buildStyles() {
	t.Title = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Normal = lipgloss.NewStyle().
		Foreground(t.Text)

	t.Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Highlight = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	t.ActiveTab = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 2).
		Bold(true)

	t.InactiveTab = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Padding(0, 2)

	t.DisabledTab = lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Surface).
		Padding(0, 2).
		Strikethrough(true)

	t.TabBar = lipgloss.NewStyle().
		Background(t.Surface).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border)

	// Sub-tabs read as underlined links under the tab bar.
	t.ActiveSubTab = lipgloss.NewStyle().
		Foreground(t.Accent).
		Underline(true).
		Padding(0, 1)

	t.InactiveSubTab = lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 1)

	t.DisabledSubTab = lipgloss.NewStyle().
		Foreground(t.Border).
		Padding(0, 1)

	t.Badge = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1)

	t.BadgeMuted = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.SurfaceVariant).
		Padding(0, 1)

	t.Input = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.InputFocused = t.Input.
		BorderForeground(t.Accent)

	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
}

// BadgeColor maps a tab badge tint to a theme color. Unknown tints use the accent.
func (t *Theme) BadgeColor(c entity.BadgeColor) lipgloss.Color {
	if col, ok := t.badgeColors[c]; ok {
		return col
	}
	return t.Accent
}
