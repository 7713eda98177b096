// Package input maps terminal key presses to navigation intents.
package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key is a tab-bar movement key.
type Key string

const (
	KeyNone  Key = ""
	KeyLeft  Key = "left"
	KeyRight Key = "right"
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyHome  Key = "home"
	KeyEnd   Key = "end"
)

// Step returns the index offset a key applies in the rendered order:
// -1 for previous, +1 for next, 0 for the Home/End jumps and unknown keys.
func (k Key) Step() int {
	switch k {
	case KeyLeft, KeyUp:
		return -1
	case KeyRight, KeyDown:
		return 1
	default:
		return 0
	}
}

// movementBindings is the ordered key table for tab-bar movement.
// Vim-style aliases sit next to the arrows.
var movementBindings = []struct {
	key     Key
	binding key.Binding
}{
	{KeyLeft, key.NewBinding(key.WithKeys("left", "h"))},
	{KeyRight, key.NewBinding(key.WithKeys("right", "l"))},
	{KeyUp, key.NewBinding(key.WithKeys("up", "k"))},
	{KeyDown, key.NewBinding(key.WithKeys("down", "j"))},
	{KeyHome, key.NewBinding(key.WithKeys("home", "g"))},
	{KeyEnd, key.NewBinding(key.WithKeys("end", "G"))},
}

// ParseKey maps a Bubble Tea key string ("left", "home", "l") to a Key.
func ParseKey(s string) (Key, bool) {
	for _, m := range movementBindings {
		for _, k := range m.binding.Keys() {
			if k == s {
				return m.key, true
			}
		}
	}
	return KeyNone, false
}

// KeyFromMsg maps a key press to a movement Key.
func KeyFromMsg(msg tea.KeyMsg) (Key, bool) {
	for _, m := range movementBindings {
		if key.Matches(msg, m.binding) {
			return m.key, true
		}
	}
	return KeyNone, false
}
