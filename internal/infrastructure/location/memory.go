// Package location provides an in-process fragment history.
package location

import (
	"strings"
	"sync"

	"github.com/bnema/tabnav/internal/application/port"
)

// Memory is a port.Location with a back/forward stack, the way a browser
// keeps session history for one document.
type Memory struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners map[uint64]func(string)
	nextID    uint64
}

var _ port.Location = (*Memory)(nil)

// NewMemory starts with a single entry holding fragment.
func NewMemory(fragment string) *Memory {
	return &Memory{
		entries:   []string{normalize(fragment)},
		listeners: make(map[uint64]func(string)),
	}
}

func normalize(fragment string) string {
	return strings.TrimPrefix(fragment, "#")
}

func (m *Memory) Fragment() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.index]
}

// Push drops any forward entries and appends fragment.
// Pushing the current fragment again is a no-op.
func (m *Memory) Push(fragment string) {
	fragment = normalize(fragment)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[m.index] == fragment {
		return
	}
	m.entries = append(m.entries[:m.index+1], fragment)
	m.index = len(m.entries) - 1
}

func (m *Memory) Replace(fragment string) {
	m.mu.Lock()
	m.entries[m.index] = normalize(fragment)
	m.mu.Unlock()
}

func (m *Memory) OnPopState(fn func(fragment string)) func() {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Back moves one entry back and fires pop-state listeners.
// It reports false at the oldest entry.
func (m *Memory) Back() bool {
	return m.traverse(-1)
}

// Forward moves one entry forward and fires pop-state listeners.
func (m *Memory) Forward() bool {
	return m.traverse(1)
}

// CanGoBack reports whether Back would move.
func (m *Memory) CanGoBack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index > 0
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) traverse(delta int) bool {
	m.mu.Lock()
	next := m.index + delta
	if next < 0 || next >= len(m.entries) {
		m.mu.Unlock()
		return false
	}
	m.index = next
	fragment := m.entries[next]
	listeners := make([]func(string), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(fragment)
	}
	return true
}
