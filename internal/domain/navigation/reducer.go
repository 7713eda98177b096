// Package navigation holds the pure tab navigation transitions.
package navigation

import (
	"github.com/bnema/tabnav/internal/domain/entity"
)

// Reducer computes the next navigation state for an action.
// It is pure: the same state and action always yield the same result.
type Reducer struct {
	Tree *entity.TabTree
	// Initial is what RESET_STATE restores.
	Initial entity.NavigationState
	// MaxHistory trims the oldest entries on append. Zero keeps everything.
	MaxHistory int
}

// NewReducer builds a reducer whose reset target is the given initial state.
func NewReducer(tree *entity.TabTree, initial entity.NavigationState, maxHistory int) Reducer {
	return Reducer{Tree: tree, Initial: initial.Clone(), MaxHistory: maxHistory}
}

// Reduce returns the next state and the event the transition produces, if any.
// Actions whose precondition fails return the state unchanged and no event.
// The input state is never modified.
func (r Reducer) Reduce(state entity.NavigationState, action entity.Action) (entity.NavigationState, *entity.Event) {
	switch action.Type {
	case entity.ActionSetActiveTab:
		return r.setActiveTab(state, action)
	case entity.ActionSetActiveSubTab:
		return r.setActiveSubTab(state, action)
	case entity.ActionGoBack:
		return goBack(state), nil
	case entity.ActionToggleCollapsed:
		next := state.Clone()
		next.Collapsed = !state.Collapsed
		return next, nil
	case entity.ActionOpenTab:
		return r.openTab(state, action)
	case entity.ActionCloseTab:
		return closeTab(state, action)
	case entity.ActionPinTab:
		return r.pinTab(state, action)
	case entity.ActionUnpinTab:
		return unpinTab(state, action)
	case entity.ActionReorderTabs:
		return r.reorderTabs(state, action)
	case entity.ActionRestoreState:
		if action.State == nil {
			return state, nil
		}
		return action.State.Clone(), nil
	case entity.ActionResetState:
		return r.Initial.Clone(), nil
	case entity.ActionClearHistory:
		next := state.Clone()
		next.History = []entity.HistoryEntry{}
		return next, nil
	default:
		return state, nil
	}
}

func (r Reducer) setActiveTab(state entity.NavigationState, action entity.Action) (entity.NavigationState, *entity.Event) {
	if !r.Tree.HasTab(action.TabID) {
		return state, nil
	}
	if action.SubTabID != "" && !r.Tree.BelongsTo(action.SubTabID, action.TabID) {
		return state, nil
	}

	next := state.Clone()
	next.ActiveTab = action.TabID
	next.ActiveSubTab = action.SubTabID
	next.History = r.appendHistory(next.History, entity.HistoryEntry{
		TabID:     action.TabID,
		SubTabID:  action.SubTabID,
		Timestamp: action.At,
	})
	if action.SubTabID != "" {
		next.LastActiveSubTabs[action.TabID] = action.SubTabID
	}

	return next, &entity.Event{
		Type:      entity.EventTabActivated,
		TabID:     action.TabID,
		SubTabID:  action.SubTabID,
		Timestamp: action.At,
	}
}

func (r Reducer) setActiveSubTab(state entity.NavigationState, action entity.Action) (entity.NavigationState, *entity.Event) {
	if state.ActiveTab == "" || action.SubTabID == "" {
		return state, nil
	}
	if !r.Tree.BelongsTo(action.SubTabID, state.ActiveTab) {
		return state, nil
	}

	next := state.Clone()
	next.ActiveSubTab = action.SubTabID
	next.LastActiveSubTabs[state.ActiveTab] = action.SubTabID

	return next, &entity.Event{
		Type:      entity.EventSubTabActivated,
		TabID:     state.ActiveTab,
		SubTabID:  action.SubTabID,
		Timestamp: action.At,
	}
}

// goBack drops the current entry and activates the one before it
// without pushing a new entry.
func goBack(state entity.NavigationState) entity.NavigationState {
	if len(state.History) < 2 {
		return state
	}
	next := state.Clone()
	next.History = next.History[:len(next.History)-1]
	prev := next.History[len(next.History)-1]
	next.ActiveTab = prev.TabID
	next.ActiveSubTab = prev.SubTabID
	return next
}

func (r Reducer) openTab(state entity.NavigationState, action entity.Action) (entity.NavigationState, *entity.Event) {
	if !r.Tree.HasTab(action.TabID) || state.IsOpen(action.TabID) {
		return state, nil
	}
	next := state.Clone()
	next.OpenTabs = append(next.OpenTabs, action.TabID)
	return next, &entity.Event{Type: entity.EventTabOpened, TabID: action.TabID, Timestamp: action.At}
}

// closeTab removes the tab from OpenTabs. Closing the active tab activates the
// last remaining open tab with no sub-tab; its LastActiveSubTabs entry is kept.
func closeTab(state entity.NavigationState, action entity.Action) (entity.NavigationState, *entity.Event) {
	if !state.IsOpen(action.TabID) {
		return state, nil
	}
	next := state.Clone()
	next.OpenTabs = removeID(next.OpenTabs, action.TabID)
	if state.ActiveTab == action.TabID {
		next.ActiveTab = ""
		if n := len(next.OpenTabs); n > 0 {
			next.ActiveTab = next.OpenTabs[n-1]
		}
		next.ActiveSubTab = ""
	}
	return next, &entity.Event{Type: entity.EventTabClosed, TabID: action.TabID, Timestamp: action.At}
}

func (r Reducer) pinTab(state entity.NavigationState, action entity.Action) (entity.NavigationState, *entity.Event) {
	if !r.Tree.HasTab(action.TabID) || state.IsPinned(action.TabID) {
		return state, nil
	}
	next := state.Clone()
	next.PinnedTabs = append(next.PinnedTabs, action.TabID)
	return next, &entity.Event{Type: entity.EventTabPinned, TabID: action.TabID, Timestamp: action.At}
}

func unpinTab(state entity.NavigationState, action entity.Action) (entity.NavigationState, *entity.Event) {
	if !state.IsPinned(action.TabID) {
		return state, nil
	}
	next := state.Clone()
	next.PinnedTabs = removeID(next.PinnedTabs, action.TabID)
	return next, &entity.Event{Type: entity.EventTabUnpinned, TabID: action.TabID, Timestamp: action.At}
}

// reorderTabs accepts a permutation of the open tabs, of the current order,
// or of every configured tab.
func (r Reducer) reorderTabs(state entity.NavigationState, action entity.Action) (entity.NavigationState, *entity.Event) {
	order := action.TabOrder
	if len(order) == 0 {
		return state, nil
	}
	if !isPermutation(order, state.OpenTabs) &&
		!isPermutation(order, state.TabOrder) &&
		!isPermutation(order, r.Tree.TabIDs()) {
		return state, nil
	}

	next := state.Clone()
	next.TabOrder = append(make([]entity.TabID, 0, len(order)), order...)
	return next, &entity.Event{
		Type:      entity.EventTabReordered,
		Timestamp: action.At,
		TabOrder:  append([]entity.TabID(nil), order...),
	}
}

func (r Reducer) appendHistory(history []entity.HistoryEntry, entry entity.HistoryEntry) []entity.HistoryEntry {
	history = append(history, entry)
	if r.MaxHistory > 0 && len(history) > r.MaxHistory {
		trimmed := make([]entity.HistoryEntry, r.MaxHistory)
		copy(trimmed, history[len(history)-r.MaxHistory:])
		return trimmed
	}
	return history
}

func removeID(ids []entity.TabID, id entity.TabID) []entity.TabID {
	out := make([]entity.TabID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func isPermutation(order, of []entity.TabID) bool {
	if len(order) != len(of) || len(of) == 0 {
		return false
	}
	want := make(map[entity.TabID]int, len(of))
	for _, id := range of {
		want[id]++
	}
	for _, id := range order {
		if want[id] == 0 {
			return false
		}
		want[id]--
	}
	return true
}
