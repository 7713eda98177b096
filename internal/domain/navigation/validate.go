package navigation

import (
	"encoding/json"

	"github.com/bnema/tabnav/internal/domain/entity"
)

// wireState is the persisted form of entity.NavigationState.
// Absent tab/sub-tab ids serialize as null.
type wireState struct {
	ActiveTab         *entity.TabID                    `json:"activeTab"`
	ActiveSubTab      *entity.SubTabID                 `json:"activeSubTab"`
	History           []entity.HistoryEntry            `json:"history"`
	Collapsed         bool                             `json:"collapsed"`
	OpenTabs          []entity.TabID                   `json:"openTabs"`
	PinnedTabs        []entity.TabID                   `json:"pinnedTabs"`
	TabOrder          []entity.TabID                   `json:"tabOrder"`
	LastActiveSubTabs map[entity.TabID]entity.SubTabID `json:"lastActiveSubTabs"`
}

// Encode serializes a state for the durable slot.
func Encode(state entity.NavigationState) ([]byte, error) {
	s := state.Clone()
	w := wireState{
		History:           s.History,
		Collapsed:         s.Collapsed,
		OpenTabs:          s.OpenTabs,
		PinnedTabs:        s.PinnedTabs,
		TabOrder:          s.TabOrder,
		LastActiveSubTabs: s.LastActiveSubTabs,
	}
	if s.ActiveTab != "" {
		w.ActiveTab = &s.ActiveTab
	}
	if s.ActiveSubTab != "" {
		w.ActiveSubTab = &s.ActiveSubTab
	}
	return json.Marshal(w)
}

// ValidateTabState rehydrates a persisted snapshot against the live tree.
// It never fails: fields that do not decode are reset, ids the tree does not
// know are dropped, and input that is not a JSON object yields the empty
// initial state.
func ValidateTabState(raw []byte, tree *entity.TabTree) entity.NavigationState {
	state, _ := DecodeTabState(raw, tree)
	return state
}

// DecodeTabState is ValidateTabState that also reports whether the snapshot
// describes a state of this tree. It is not usable when raw is not a JSON
// object or names an active tab the tree does not know. A snapshot with no
// active tab at all is usable.
func DecodeTabState(raw []byte, tree *entity.TabTree) (entity.NavigationState, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return entity.NewNavigationState(), false
	}

	state := entity.NewNavigationState()
	state.ActiveTab = entity.TabID(decodeString(fields["activeTab"]))
	state.ActiveSubTab = entity.SubTabID(decodeString(fields["activeSubTab"]))
	state.Collapsed = decodeBool(fields["collapsed"])
	state.OpenTabs = decodeIDs(fields["openTabs"])
	state.PinnedTabs = decodeIDs(fields["pinnedTabs"])
	state.TabOrder = decodeIDs(fields["tabOrder"])
	state.History = decodeHistory(fields["history"])
	state.LastActiveSubTabs = decodeSubTabMap(fields["lastActiveSubTabs"])

	named := state.ActiveTab
	out := Sanitize(state, tree)
	return out, named == out.ActiveTab
}

// Sanitize drops every id the tree does not know and every sub-tab reference
// whose parent does not match.
func Sanitize(state entity.NavigationState, tree *entity.TabTree) entity.NavigationState {
	out := entity.NewNavigationState()
	out.Collapsed = state.Collapsed

	if tree.HasTab(state.ActiveTab) {
		out.ActiveTab = state.ActiveTab
		if tree.BelongsTo(state.ActiveSubTab, state.ActiveTab) {
			out.ActiveSubTab = state.ActiveSubTab
		}
	}

	for _, h := range state.History {
		if !tree.HasTab(h.TabID) {
			continue
		}
		if h.SubTabID != "" && !tree.BelongsTo(h.SubTabID, h.TabID) {
			h.SubTabID = ""
		}
		out.History = append(out.History, h)
	}

	out.OpenTabs = filterIDs(state.OpenTabs, tree)
	out.PinnedTabs = filterIDs(state.PinnedTabs, tree)
	out.TabOrder = filterIDs(state.TabOrder, tree)

	for tab, sub := range state.LastActiveSubTabs {
		if tree.BelongsTo(sub, tab) {
			out.LastActiveSubTabs[tab] = sub
		}
	}

	return out
}

// DefaultState is the state a fresh instance starts from: the preferred tab
// active and open, or the tree's first usable tab when the preference is unknown.
func DefaultState(tree *entity.TabTree, preferred entity.TabID) entity.NavigationState {
	state := entity.NewNavigationState()
	tab := preferred
	if !tree.HasTab(tab) {
		tab = tree.DefaultTabID()
	}
	if tab == "" {
		return state
	}
	state.ActiveTab = tab
	state.OpenTabs = []entity.TabID{tab}
	return state
}

func filterIDs(ids []entity.TabID, tree *entity.TabTree) []entity.TabID {
	out := make([]entity.TabID, 0, len(ids))
	seen := make(map[entity.TabID]struct{}, len(ids))
	for _, id := range ids {
		if !tree.HasTab(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func decodeString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func decodeBool(raw json.RawMessage) bool {
	var b bool
	if len(raw) == 0 || json.Unmarshal(raw, &b) != nil {
		return false
	}
	return b
}

func decodeIDs(raw json.RawMessage) []entity.TabID {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	ids := make([]entity.TabID, 0, len(items))
	for _, item := range items {
		if s := decodeString(item); s != "" {
			ids = append(ids, entity.TabID(s))
		}
	}
	return ids
}

func decodeHistory(raw json.RawMessage) []entity.HistoryEntry {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	history := make([]entity.HistoryEntry, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if json.Unmarshal(item, &fields) != nil || fields == nil {
			continue
		}
		tab := decodeString(fields["tabId"])
		if tab == "" {
			continue
		}
		var ts json.Number
		if raw, ok := fields["timestamp"]; ok {
			_ = json.Unmarshal(raw, &ts)
		}
		millis, _ := ts.Int64()
		history = append(history, entity.HistoryEntry{
			TabID:     entity.TabID(tab),
			SubTabID:  entity.SubTabID(decodeString(fields["subTabId"])),
			Timestamp: millis,
		})
	}
	return history
}

func decodeSubTabMap(raw json.RawMessage) map[entity.TabID]entity.SubTabID {
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return nil
	}
	out := make(map[entity.TabID]entity.SubTabID, len(fields))
	for tab, v := range fields {
		if sub := decodeString(v); sub != "" {
			out[entity.TabID(tab)] = entity.SubTabID(sub)
		}
	}
	return out
}
