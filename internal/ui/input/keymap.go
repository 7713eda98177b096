package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a navigator command bound to a key.
type Action string

const (
	ActionNone            Action = ""
	ActionPrevTab         Action = "prev_tab"
	ActionNextTab         Action = "next_tab"
	ActionFirstTab        Action = "first_tab"
	ActionLastTab         Action = "last_tab"
	ActionPrevSubTab      Action = "prev_subtab"
	ActionNextSubTab      Action = "next_subtab"
	ActionGoBack          Action = "go_back"
	ActionOpenTab         Action = "open_tab"
	ActionCloseTab        Action = "close_tab"
	ActionTogglePin       Action = "toggle_pin"
	ActionToggleCollapsed Action = "toggle_collapsed"
	ActionGoTo            Action = "go_to"
	ActionSearch          Action = "search"
	ActionEndSession      Action = "end_session"
	ActionToggleLock      Action = "toggle_lock"
	ActionLocationBack    Action = "location_back"
	ActionLocationForward Action = "location_forward"
	ActionHelp            Action = "help"
	ActionQuit            Action = "quit"
)

// KeyMap holds the navigator bindings. It implements help.KeyMap.
type KeyMap struct {
	PrevTab         key.Binding
	NextTab         key.Binding
	FirstTab        key.Binding
	LastTab         key.Binding
	PrevSubTab      key.Binding
	NextSubTab      key.Binding
	GoBack          key.Binding
	OpenTab         key.Binding
	CloseTab        key.Binding
	TogglePin       key.Binding
	ToggleCollapsed key.Binding
	GoTo            key.Binding
	Search          key.Binding
	EndSession      key.Binding
	ToggleLock      key.Binding
	LocationBack    key.Binding
	LocationForward key.Binding
	Help            key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the standard navigator bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevTab: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tab"),
		),
		FirstTab: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first tab"),
		),
		LastTab: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last tab"),
		),
		PrevSubTab: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("↑/k", "prev sub-tab"),
		),
		NextSubTab: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("↓/j", "next sub-tab"),
		),
		GoBack: key.NewBinding(
			key.WithKeys("backspace", "b"),
			key.WithHelp("b", "back"),
		),
		OpenTab: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close"),
		),
		TogglePin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin/unpin"),
		),
		ToggleCollapsed: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse"),
		),
		GoTo: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to path"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		EndSession: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "end session"),
		),
		ToggleLock: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "lock navigation"),
		),
		LocationBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "link back"),
		),
		LocationForward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "link forward"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.NextTab, k.NextSubTab, k.GoBack, k.Search, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.NextTab, k.FirstTab, k.LastTab},
		{k.PrevSubTab, k.NextSubTab, k.GoBack, k.LocationBack, k.LocationForward},
		{k.OpenTab, k.CloseTab, k.TogglePin, k.ToggleCollapsed},
		{k.GoTo, k.Search, k.ToggleLock, k.EndSession},
		{k.Help, k.Quit},
	}
}

// Resolve returns the action bound to msg, or ActionNone.
// Order matters where bindings overlap: tab movement wins over sub-tab keys.
func (k KeyMap) Resolve(msg tea.KeyMsg) Action {
	table := []struct {
		binding key.Binding
		action  Action
	}{
		{k.Quit, ActionQuit},
		{k.PrevTab, ActionPrevTab},
		{k.NextTab, ActionNextTab},
		{k.FirstTab, ActionFirstTab},
		{k.LastTab, ActionLastTab},
		{k.PrevSubTab, ActionPrevSubTab},
		{k.NextSubTab, ActionNextSubTab},
		{k.GoBack, ActionGoBack},
		{k.OpenTab, ActionOpenTab},
		{k.CloseTab, ActionCloseTab},
		{k.TogglePin, ActionTogglePin},
		{k.ToggleCollapsed, ActionToggleCollapsed},
		{k.GoTo, ActionGoTo},
		{k.Search, ActionSearch},
		{k.EndSession, ActionEndSession},
		{k.ToggleLock, ActionToggleLock},
		{k.LocationBack, ActionLocationBack},
		{k.LocationForward, ActionLocationForward},
		{k.Help, ActionHelp},
	}
	for _, e := range table {
		if key.Matches(msg, e.binding) {
			return e.action
		}
	}
	return ActionNone
}

// MovementKey returns the tab-bar Key for a tab movement action.
func MovementKey(a Action) (Key, bool) {
	switch a {
	case ActionPrevTab:
		return KeyLeft, true
	case ActionNextTab:
		return KeyRight, true
	case ActionFirstTab:
		return KeyHome, true
	case ActionLastTab:
		return KeyEnd, true
	default:
		return KeyNone, false
	}
}
