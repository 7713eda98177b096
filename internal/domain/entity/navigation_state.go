package entity

// HistoryEntry records one activation for back-navigation.
// Entries are appended only; they are never edited in place.
type HistoryEntry struct {
	TabID     TabID    `json:"tabId"`
	SubTabID  SubTabID `json:"subTabId,omitempty"`
	Timestamp int64    `json:"timestamp"` // unix millis
}

// NavigationState is the single mutable navigation entity.
// An empty ActiveTab or ActiveSubTab means none is active.
type NavigationState struct {
	ActiveTab         TabID
	ActiveSubTab      SubTabID
	History           []HistoryEntry
	OpenTabs          []TabID
	PinnedTabs        []TabID
	TabOrder          []TabID
	LastActiveSubTabs map[TabID]SubTabID
	Collapsed         bool
}

// NewNavigationState returns the empty initial state.
// Collections are non-nil so that states compare equal after a storage round trip.
func NewNavigationState() NavigationState {
	return NavigationState{
		History:           []HistoryEntry{},
		OpenTabs:          []TabID{},
		PinnedTabs:        []TabID{},
		TabOrder:          []TabID{},
		LastActiveSubTabs: map[TabID]SubTabID{},
	}
}

// Clone returns a deep copy.
func (s NavigationState) Clone() NavigationState {
	out := s
	out.History = append(make([]HistoryEntry, 0, len(s.History)), s.History...)
	out.OpenTabs = cloneIDs(s.OpenTabs)
	out.PinnedTabs = cloneIDs(s.PinnedTabs)
	out.TabOrder = cloneIDs(s.TabOrder)
	out.LastActiveSubTabs = make(map[TabID]SubTabID, len(s.LastActiveSubTabs))
	for k, v := range s.LastActiveSubTabs {
		out.LastActiveSubTabs[k] = v
	}
	return out
}

// HasActiveTab reports whether a tab is active.
func (s NavigationState) HasActiveTab() bool {
	return s.ActiveTab != ""
}

// CanGoBack reports whether GO_BACK would change anything.
func (s NavigationState) CanGoBack() bool {
	return len(s.History) > 1
}

// IsOpen reports whether the tab is in OpenTabs.
func (s NavigationState) IsOpen(id TabID) bool {
	return containsID(s.OpenTabs, id)
}

// IsPinned reports whether the tab is in PinnedTabs.
func (s NavigationState) IsPinned(id TabID) bool {
	return containsID(s.PinnedTabs, id)
}

// LastActiveSubTab returns the remembered sub-tab for a parent tab.
func (s NavigationState) LastActiveSubTab(parent TabID) (SubTabID, bool) {
	sub, ok := s.LastActiveSubTabs[parent]
	return sub, ok
}

// Path renders the active location as "tab" or "tab/sub", "" when nothing is active.
func (s NavigationState) Path() string {
	return FormatPath(s.ActiveTab, s.ActiveSubTab)
}

// FormatPath renders a deep-link path for a tab and optional sub-tab.
func FormatPath(tab TabID, sub SubTabID) string {
	if tab == "" {
		return ""
	}
	if sub == "" {
		return string(tab)
	}
	return string(tab) + "/" + string(sub)
}

func cloneIDs(ids []TabID) []TabID {
	return append(make([]TabID, 0, len(ids)), ids...)
}

func containsID(ids []TabID, id TabID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
