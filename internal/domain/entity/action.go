package entity

// ActionType names a navigation intent understood by the reducer.
type ActionType string

const (
	ActionSetActiveTab    ActionType = "SET_ACTIVE_TAB"
	ActionSetActiveSubTab ActionType = "SET_ACTIVE_SUBTAB"
	ActionGoBack          ActionType = "GO_BACK"
	ActionToggleCollapsed ActionType = "TOGGLE_COLLAPSED"
	ActionOpenTab         ActionType = "OPEN_TAB"
	ActionCloseTab        ActionType = "CLOSE_TAB"
	ActionPinTab          ActionType = "PIN_TAB"
	ActionUnpinTab        ActionType = "UNPIN_TAB"
	ActionReorderTabs     ActionType = "REORDER_TABS"
	ActionRestoreState    ActionType = "RESTORE_STATE"
	ActionResetState      ActionType = "RESET_STATE"
	ActionClearHistory    ActionType = "CLEAR_HISTORY"
)

// Action is a navigation intent. Only the fields relevant to Type are read.
type Action struct {
	Type     ActionType
	TabID    TabID
	SubTabID SubTabID
	TabOrder []TabID
	State    *NavigationState // RESTORE_STATE payload, already validated
	At       int64            // unix millis, stamped by the store before reducing
}

func SetActiveTab(tab TabID, sub SubTabID) Action {
	return Action{Type: ActionSetActiveTab, TabID: tab, SubTabID: sub}
}

func SetActiveSubTab(sub SubTabID) Action {
	return Action{Type: ActionSetActiveSubTab, SubTabID: sub}
}

func GoBack() Action { return Action{Type: ActionGoBack} }
func ToggleCollapsed() Action { return Action{Type: ActionToggleCollapsed} }
func OpenTab(tab TabID) Action { return Action{Type: ActionOpenTab, TabID: tab} }
func CloseTab(tab TabID) Action { return Action{Type: ActionCloseTab, TabID: tab} }
func PinTab(tab TabID) Action { return Action{Type: ActionPinTab, TabID: tab} }
func UnpinTab(tab TabID) Action { return Action{Type: ActionUnpinTab, TabID: tab} }
func ResetState() Action { return Action{Type: ActionResetState} }
func ClearHistory() Action { return Action{Type: ActionClearHistory} }

func ReorderTabs(order []TabID) Action {
	return Action{Type: ActionReorderTabs, TabOrder: cloneIDs(order)}
}

// RestoreState replaces the whole state. The caller must have validated it.
func RestoreState(state NavigationState) Action {
	s := state.Clone()
	return Action{Type: ActionRestoreState, State: &s}
}
