package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabnav/internal/domain/entity"
)

// TabBadge renders a tab or sub-tab badge. Nil renders nothing.
// Text wins over Count; a Dot renders as a bare bullet.
func (t *Theme) TabBadge(b *entity.TabBadge) string {
	if b == nil {
		return ""
	}
	col := t.BadgeColor(b.Color)

	var text string
	switch {
	case b.Text != "":
		text = b.Text
	case b.Count != nil:
		text = formatCount(*b.Count)
	case b.Dot:
		return lipgloss.NewStyle().Foreground(col).Render(IconDot)
	default:
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(col).
		Padding(0, 1)
	if b.Pulse {
		style = style.Bold(true).Blink(true)
	}
	return style.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// formatCount caps badge counts at 999+.
func formatCount(n int) string {
	if n > 999 {
		return "999+"
	}
	return fmt.Sprintf("%d", n)
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	return relativeTo(time.Now(), tm)
}

func relativeTo(now, tm time.Time) string {
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return tm.Format("2006-01-02")
	}
}

// MillisTime converts a history timestamp to a time.Time.
func MillisTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}
