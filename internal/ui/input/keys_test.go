package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		ok   bool
	}{
		{"left", KeyLeft, true},
		{"h", KeyLeft, true},
		{"right", KeyRight, true},
		{"up", KeyUp, true},
		{"down", KeyDown, true},
		{"home", KeyHome, true},
		{"end", KeyEnd, true},
		{"G", KeyEnd, true},
		{"enter", KeyNone, false},
		{"", KeyNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKey(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyFromMsg(t *testing.T) {
	got, ok := KeyFromMsg(tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, ok)
	assert.Equal(t, KeyRight, got)

	got, ok = KeyFromMsg(tea.KeyMsg{Type: tea.KeyHome})
	assert.True(t, ok)
	assert.Equal(t, KeyHome, got)

	_, ok = KeyFromMsg(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, ok)
}

func TestKeyStep(t *testing.T) {
	assert.Equal(t, -1, KeyLeft.Step())
	assert.Equal(t, -1, KeyUp.Step())
	assert.Equal(t, 1, KeyRight.Step())
	assert.Equal(t, 1, KeyDown.Step())
	assert.Equal(t, 0, KeyHome.Step())
	assert.Equal(t, 0, KeyEnd.Step())
}

func TestKeyMap_Resolve(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Action
	}{
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, ActionNextTab},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, ActionPrevTab},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, ActionNextSubTab},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, ActionPrevSubTab},
		{"pin", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, ActionTogglePin},
		{"search", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}, ActionSearch},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit},
		{"ctrl+l", tea.KeyMsg{Type: tea.KeyCtrlL}, ActionToggleLock},
		{"bracket", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}}, ActionLocationBack},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.Resolve(tt.msg))
		})
	}
}

func TestMovementKey(t *testing.T) {
	k, ok := MovementKey(ActionNextTab)
	assert.True(t, ok)
	assert.Equal(t, KeyRight, k)

	_, ok = MovementKey(ActionSearch)
	assert.False(t, ok)
}
