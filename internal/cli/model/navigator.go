// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/tabnav/internal/application/port"
	"github.com/bnema/tabnav/internal/application/store"
	"github.com/bnema/tabnav/internal/cli/styles"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
	"github.com/bnema/tabnav/internal/logging"
	"github.com/bnema/tabnav/internal/ui/coordinator"
	"github.com/bnema/tabnav/internal/ui/input"
)

const (
	historyTail   = 5
	searchResults = 8
	lockMessage   = "navigation locked, ctrl+l to unlock"
)

// StateChangedMsg is sent when the store changes outside Update, for
// instance after a sibling instance wrote the shared slot. The model reads
// the store again, so late deliveries never roll the view back.
type StateChangedMsg struct{}

// ConfigReloadedMsg carries settings picked up from a reloaded config file.
type ConfigReloadedMsg struct {
	Wrap bool
}

type sessionEndedMsg struct {
	err error
}

// SessionEnder resets the navigation session and clears what was persisted.
type SessionEnder interface {
	EndSession(ctx context.Context) error
}

// LocationHistory walks the fragment history.
type LocationHistory interface {
	Back() bool
	Forward() bool
}

// NavigatorConfig wires the navigator to the navigation core.
type NavigatorConfig struct {
	Store   *store.Store
	Nav     *coordinator.NavigationCoordinator
	SubTabs *coordinator.SubTabCoordinator
	// Session and History are optional.
	Session SessionEnder
	History LocationHistory
}

type navMode int

const (
	modeNormal navMode = iota
	modeGoTo
	modeSearch
	modeConfirm
)

// NavigatorModel is the interactive tab navigator.
type NavigatorModel struct {
	// UI components
	help    help.Model
	keys    input.KeyMap
	path    textinput.Model
	search  textinput.Model
	confirm *styles.ConfirmModel

	// State
	state     entity.NavigationState
	mode      navMode
	results   []entity.SearchResult
	selected  int
	locked    bool
	showHelp  bool
	status    string
	statusErr bool
	width     int
	height    int

	// Dependencies
	ctx   context.Context
	cfg   NavigatorConfig
	theme *styles.Theme
}

// NewNavigatorModel creates a new navigator model.
func NewNavigatorModel(ctx context.Context, theme *styles.Theme, cfg NavigatorConfig) NavigatorModel {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating navigator model")

	return NavigatorModel{
		help:   styles.NewStyledHelp(theme),
		keys:   input.DefaultKeyMap(),
		path:   styles.NewPathInput(theme),
		search: styles.NewSearchInput(theme),
		state:  cfg.Store.State(),
		ctx:    ctx,
		cfg:    cfg,
		theme:  theme,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (m NavigatorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m NavigatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case StateChangedMsg:
		m.state = m.cfg.Store.State()
		return m, nil

	case ConfigReloadedMsg:
		m.cfg.Nav.SetWrap(msg.Wrap)
		m.setStatus("config reloaded", false)
		return m, nil

	case sessionEndedMsg:
		m.cfg.Nav.SyncFragment()
		m.state = m.cfg.Store.State()
		if msg.err != nil {
			m.setStatus("end session: "+msg.err.Error(), true)
		} else {
			m.setStatus("session ended", false)
		}
		return m, nil

	case tea.KeyMsg:
		updated, cmd := m.handleKey(msg)
		updated.state = updated.cfg.Store.State()
		return updated, cmd
	}

	return m, nil
}

func (m NavigatorModel) handleKey(msg tea.KeyMsg) (NavigatorModel, tea.Cmd) {
	switch m.mode {
	case modeGoTo:
		return m.handleGoToKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m NavigatorModel) handleNormalKey(msg tea.KeyMsg) (NavigatorModel, tea.Cmd) {
	action := m.keys.Resolve(msg)
	if k, ok := input.MovementKey(action); ok {
		if !m.cfg.Nav.HandleKey(m.ctx, k) && m.locked {
			m.setStatus(lockMessage, true)
		}
		return m, nil
	}

	active := m.cfg.Store.State().ActiveTab

	switch action {
	case input.ActionQuit:
		return m, tea.Quit
	case input.ActionHelp:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case input.ActionNextSubTab:
		m.cfg.SubTabs.GoToNext(m.ctx)
		m.cfg.Nav.SyncFragment()
	case input.ActionPrevSubTab:
		m.cfg.SubTabs.GoToPrevious(m.ctx)
		m.cfg.Nav.SyncFragment()
	case input.ActionGoBack:
		if !m.cfg.Store.CanGoBack() {
			m.setStatus("no earlier tab in history", false)
			break
		}
		m.cfg.Store.Dispatch(entity.GoBack())
		m.cfg.Nav.SyncFragment()
	case input.ActionOpenTab:
		m.cfg.Store.Dispatch(entity.OpenTab(active))
	case input.ActionCloseTab:
		m.closeTab(active)
	case input.ActionTogglePin:
		if m.cfg.Store.State().IsPinned(active) {
			m.cfg.Store.Dispatch(entity.UnpinTab(active))
		} else {
			m.cfg.Store.Dispatch(entity.PinTab(active))
		}
	case input.ActionToggleCollapsed:
		m.cfg.Store.Dispatch(entity.ToggleCollapsed())
	case input.ActionToggleLock:
		m.toggleLock()
	case input.ActionLocationBack, input.ActionLocationForward:
		m.walkLocation(action == input.ActionLocationBack)
	case input.ActionGoTo:
		m.mode = modeGoTo
		m.path.SetValue("")
		m.cfg.Nav.SetTextInputFocused(true)
		cmd := m.path.Focus()
		return m, cmd
	case input.ActionSearch:
		m.mode = modeSearch
		m.search.SetValue("")
		m.results = nil
		m.selected = 0
		m.cfg.Nav.SetTextInputFocused(true)
		cmd := m.search.Focus()
		return m, cmd
	case input.ActionEndSession:
		if m.cfg.Session == nil {
			break
		}
		confirm := styles.NewConfirm(m.theme, "End the session and forget saved navigation?")
		m.confirm = &confirm
		m.mode = modeConfirm
	}
	return m, nil
}

func (m *NavigatorModel) closeTab(tab entity.TabID) {
	if tab == "" {
		return
	}
	m.cfg.Store.Dispatch(entity.CloseTab(tab))
	m.cfg.Nav.SyncFragment()
}

func (m *NavigatorModel) toggleLock() {
	m.locked = !m.locked
	if !m.locked {
		m.cfg.Nav.SetGuard(nil)
		m.setStatus("navigation unlocked", false)
		return
	}
	m.cfg.Nav.SetGuard(port.GuardFunc{
		Fn: func(context.Context, entity.TabID, entity.TabID) (bool, error) {
			return false, nil
		},
		Msg: lockMessage,
	})
	m.setStatus("navigation locked", false)
}

func (m *NavigatorModel) walkLocation(back bool) {
	if m.cfg.History == nil {
		return
	}
	var moved bool
	if back {
		moved = m.cfg.History.Back()
	} else {
		moved = m.cfg.History.Forward()
	}
	if !moved {
		m.setStatus("no further link in history", false)
	}
}

func (m NavigatorModel) handleGoToKey(msg tea.KeyMsg) (NavigatorModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.path.Value())
		m.leaveInput()
		tab, sub, ok := navigation.ParsePath(value)
		if !ok {
			m.setStatus("empty path", true)
			return m, nil
		}
		m.navigate(tab, sub)
		return m, nil
	default:
		var cmd tea.Cmd
		m.path, cmd = m.path.Update(msg)
		return m, cmd
	}
}

func (m NavigatorModel) handleSearchKey(msg tea.KeyMsg) (NavigatorModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		return m, nil
	case "enter":
		m.leaveInput()
		if m.selected >= len(m.results) {
			m.setStatus("no matching tab", true)
			return m, nil
		}
		r := m.results[m.selected]
		var sub entity.SubTabID
		if r.SubTab != nil {
			sub = r.SubTab.ID
		}
		m.navigate(r.Tab.ID, sub)
		return m, nil
	case "up", "ctrl+p":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.selected < len(m.results)-1 {
			m.selected++
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.results = m.cfg.Store.Tree().Search(m.search.Value(), entity.SearchOptions{
			IncludeSubTabs:     true,
			FilterByPermission: true,
			Viewer:             m.cfg.Nav.Viewer(),
		})
		if len(m.results) > searchResults {
			m.results = m.results[:searchResults]
		}
		m.selected = 0
		return m, cmd
	}
}

func (m NavigatorModel) handleConfirmKey(msg tea.KeyMsg) (NavigatorModel, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if !m.confirm.Done() {
		return m, cmd
	}
	confirmed := m.confirm.Result()
	m.confirm = nil
	m.mode = modeNormal
	if confirmed {
		return m, m.endSession()
	}
	return m, cmd
}

func (m NavigatorModel) endSession() tea.Cmd {
	ctx, session := m.ctx, m.cfg.Session
	return func() tea.Msg {
		return sessionEndedMsg{err: session.EndSession(ctx)}
	}
}

func (m *NavigatorModel) leaveInput() {
	m.mode = modeNormal
	m.path.Blur()
	m.search.Blur()
	m.cfg.Nav.SetTextInputFocused(false)
}

func (m *NavigatorModel) navigate(tab entity.TabID, sub entity.SubTabID) {
	res := m.cfg.Nav.NavigateToTab(m.ctx, tab, sub, coordinator.NavigateOptions{RestoreSubTab: sub == ""})
	if res.Navigated {
		m.setStatus("", false)
		return
	}
	m.setStatus(abortText(res), true)
}

func (m *NavigatorModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func abortText(res coordinator.NavigateResult) string {
	switch res.Reason {
	case coordinator.ReasonUnknownTab:
		return fmt.Sprintf("unknown tab %q", res.TabID)
	case coordinator.ReasonUnknownSub:
		return fmt.Sprintf("%q is not a sub-tab of %q", res.SubTabID, res.TabID)
	case coordinator.ReasonNotAllowed:
		return fmt.Sprintf("%s is not available", entity.FormatPath(res.TabID, res.SubTabID))
	case coordinator.ReasonGuardDenied:
		if res.Message != "" {
			return res.Message
		}
		return "navigation declined"
	case coordinator.ReasonGuardError:
		return "navigation guard failed"
	default:
		return "navigation aborted"
	}
}

// View implements tea.Model.
func (m NavigatorModel) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	if subs := m.renderSubTabs(); subs != "" {
		b.WriteString(subs)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderDetails())

	switch m.mode {
	case modeGoTo:
		b.WriteString("\n")
		b.WriteString(t.InputBox(m.path.View(), true))
	case modeSearch:
		b.WriteString("\n")
		b.WriteString(t.InputBox(m.search.View(), true))
		b.WriteString("\n")
		b.WriteString(m.renderResults())
	case modeConfirm:
		if m.confirm != nil {
			b.WriteString("\n")
			b.WriteString(m.confirm.View())
		}
	}

	if m.status != "" {
		style := t.Subtle
		if m.statusErr {
			style = t.WarningStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.status))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m NavigatorModel) renderHeader() string {
	t := m.theme
	parts := []string{t.Title.Render(styles.IconDashboard + " tabnav")}
	if m.locked {
		parts = append(parts, t.WarningStyle.Render(styles.IconLock+" locked"))
	}
	if m.state.Collapsed {
		parts = append(parts, t.MutedBadge("collapsed"))
	}
	return strings.Join(parts, "  ")
}

func (m NavigatorModel) renderTabBar() string {
	tree := m.cfg.Store.Tree()
	viewer := m.cfg.Nav.Viewer()

	order := m.cfg.Nav.RenderedOrder()
	items := make([]styles.TabItem, 0, len(order))
	for _, tab := range order {
		items = append(items, styles.TabItem{
			Label:    tabLabel(tab),
			Active:   tab.ID == m.state.ActiveTab,
			Disabled: !navigation.IsNavigable(tree, viewer, tab.ID),
			Pinned:   m.state.IsPinned(tab.ID),
			Open:     m.state.IsOpen(tab.ID),
			Badge:    tab.Badge,
		})
	}
	bar := styles.NewTabBar(m.theme, items)
	bar.Collapsed = m.state.Collapsed
	bar.Width = m.width
	return bar.View()
}

func (m NavigatorModel) renderSubTabs() string {
	tree := m.cfg.Store.Tree()
	viewer := m.cfg.Nav.Viewer()

	subs := tree.SubTabsOf(m.state.ActiveTab)
	items := make([]styles.TabItem, 0, len(subs))
	for _, sub := range subs {
		label := sub.Label
		if label == "" {
			label = string(sub.ID)
		}
		items = append(items, styles.TabItem{
			Label:    label,
			Active:   sub.ID == m.state.ActiveSubTab,
			Disabled: !navigation.IsSubTabNavigable(tree, viewer, sub.ID),
			Badge:    sub.Badge,
		})
	}
	return styles.SubTabBar(m.theme, items)
}

func (m NavigatorModel) renderDetails() string {
	t := m.theme
	var lines []string

	path := entity.FormatPath(m.state.ActiveTab, m.state.ActiveSubTab)
	if path == "" {
		path = "(no active tab)"
	} else {
		path = "#" + path
	}
	lines = append(lines, t.Subtle.Render(styles.IconTab+" path   ")+t.Highlight.Render(path))
	lines = append(lines, t.Subtle.Render("  open   ")+t.Normal.Render(joinIDs(m.state.OpenTabs)))
	if len(m.state.PinnedTabs) > 0 {
		lines = append(lines, t.Subtle.Render(styles.IconPin+" pinned ")+t.Normal.Render(joinIDs(m.state.PinnedTabs)))
	}

	history := m.state.History
	if n := len(history); n > 0 {
		lines = append(lines, t.Subtle.Render(styles.IconHistory+" history"))
		start := max(0, n-historyTail)
		for i := n - 1; i >= start; i-- {
			h := history[i]
			when := styles.RelativeTime(styles.MillisTime(h.Timestamp))
			lines = append(lines, "    "+t.Normal.Render(entity.FormatPath(h.TabID, h.SubTabID))+"  "+t.Subtle.Render(when))
		}
	}
	return strings.Join(lines, "\n")
}

func (m NavigatorModel) renderResults() string {
	t := m.theme
	if len(m.results) == 0 {
		if m.search.Value() == "" {
			return ""
		}
		return t.Subtle.Render("  no matches")
	}
	lines := make([]string, 0, len(m.results))
	for i, r := range m.results {
		label := tabLabel(r.Tab)
		if r.SubTab != nil {
			label += " › " + r.SubTab.Label
		}
		if i == m.selected {
			lines = append(lines, t.Highlight.Render(styles.IconCursor+" "+label))
		} else {
			lines = append(lines, t.Normal.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}

func tabLabel(tab entity.TabConfig) string {
	if tab.Label != "" {
		return tab.Label
	}
	return string(tab.ID)
}

func joinIDs(ids []entity.TabID) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
