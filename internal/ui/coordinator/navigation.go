// Package coordinator drives the navigation store from keyboard, deep-link
// and programmatic input.
package coordinator

import (
	"context"
	"sync"

	"github.com/bnema/tabnav/internal/application/port"
	"github.com/bnema/tabnav/internal/application/store"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
	"github.com/bnema/tabnav/internal/logging"
	"github.com/bnema/tabnav/internal/ui/input"
)

// AbortReason explains why NavigateToTab did not dispatch.
type AbortReason string

const (
	ReasonNone        AbortReason = ""
	ReasonUnknownTab  AbortReason = "unknown_tab"
	ReasonUnknownSub  AbortReason = "unknown_subtab"
	ReasonNotAllowed  AbortReason = "not_navigable"
	ReasonGuardDenied AbortReason = "guard_declined"
	ReasonGuardError  AbortReason = "guard_error"
)

// NavigateOptions tunes NavigateToTab.
type NavigateOptions struct {
	// Replace rewrites the current fragment instead of pushing a new entry.
	Replace bool
	// SkipFragment leaves the location untouched.
	SkipFragment bool
	// RestoreSubTab reopens the remembered sub-tab when none is given.
	RestoreSubTab bool
	// OnComplete runs after a successful dispatch.
	OnComplete func(tab entity.TabID, sub entity.SubTabID)
}

// NavigateResult reports the outcome of NavigateToTab.
type NavigateResult struct {
	Navigated bool
	TabID     entity.TabID
	SubTabID  entity.SubTabID
	Reason    AbortReason
	// Message carries the guard's explanation on decline.
	Message string
}

// NavigationOptions configures a NavigationCoordinator.
type NavigationOptions struct {
	// Location mirrors the active path. Nil disables deep links.
	Location port.Location
	// Focus reports text-field focus. Nil means never focused.
	Focus port.FocusProvider
	// Wrap makes arrow keys wrap around the ends of the tab bar.
	Wrap   bool
	Viewer entity.Viewer
}

// NavigationCoordinator resolves keyboard, deep-link and guarded navigation
// into store dispatches.
type NavigationCoordinator struct {
	store    *store.Store
	location port.Location
	focus    port.FocusProvider

	mu          sync.Mutex
	wrap        bool
	guard       port.NavigationGuard
	blocked     bool
	textFocused bool
	viewer      entity.Viewer
	removePop   func()
}

// NewNavigationCoordinator creates a new NavigationCoordinator.
func NewNavigationCoordinator(ctx context.Context, st *store.Store, opts NavigationOptions) *NavigationCoordinator {
	log := logging.FromContext(ctx)
	log.Debug().Bool("wrap", opts.Wrap).Bool("deep_links", opts.Location != nil).Msg("creating navigation coordinator")

	return &NavigationCoordinator{
		store:    st,
		location: opts.Location,
		focus:    opts.Focus,
		wrap:     opts.Wrap,
		viewer:   opts.Viewer,
	}
}

// Start applies the current fragment and follows back/forward traversal.
func (c *NavigationCoordinator) Start(ctx context.Context) {
	if c.location == nil {
		return
	}
	c.ApplyFragment(ctx, c.location.Fragment())

	remove := c.location.OnPopState(func(fragment string) {
		c.ApplyFragment(ctx, fragment)
	})
	c.mu.Lock()
	c.removePop = remove
	c.mu.Unlock()
}

// Stop detaches from the location.
func (c *NavigationCoordinator) Stop() {
	c.mu.Lock()
	remove := c.removePop
	c.removePop = nil
	c.mu.Unlock()
	if remove != nil {
		remove()
	}
}

// ApplyFragment activates the tab a deep link names. Unknown tabs are ignored;
// a sub-tab that does not belong to the tab is dropped. The location is not
// written back and no guard is consulted.
func (c *NavigationCoordinator) ApplyFragment(ctx context.Context, fragment string) bool {
	log := logging.FromContext(ctx)
	tab, sub, ok := navigation.ParsePath(fragment)
	tree := c.store.Tree()
	if !ok || !tree.HasTab(tab) {
		if ok {
			log.Debug().Str("fragment", fragment).Msg("ignoring unknown deep link")
		}
		return false
	}
	if sub != "" && !tree.BelongsTo(sub, tab) {
		sub = ""
	}

	log.Debug().Str("tab_id", string(tab)).Str("subtab_id", string(sub)).Msg("applying deep link")
	c.store.Dispatch(entity.SetActiveTab(tab, sub))
	return true
}

// SetGuard installs g, replacing any previous guard. Nil removes it.
func (c *NavigationCoordinator) SetGuard(g port.NavigationGuard) {
	c.mu.Lock()
	c.guard = g
	c.mu.Unlock()
}

// SetNavigationBlocked freezes keyboard navigation while set.
func (c *NavigationCoordinator) SetNavigationBlocked(blocked bool) {
	c.mu.Lock()
	c.blocked = blocked
	c.mu.Unlock()
}

// NavigationBlocked reports whether keyboard navigation is frozen.
func (c *NavigationCoordinator) NavigationBlocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocked
}

// SetTextInputFocused marks a text field as focused. It is combined with the
// FocusProvider, if any.
func (c *NavigationCoordinator) SetTextInputFocused(focused bool) {
	c.mu.Lock()
	c.textFocused = focused
	c.mu.Unlock()
}

// SetWrap changes whether arrow keys wrap around the ends of the tab bar.
func (c *NavigationCoordinator) SetWrap(wrap bool) {
	c.mu.Lock()
	c.wrap = wrap
	c.mu.Unlock()
}

// SetViewer changes who permission checks are made for.
func (c *NavigationCoordinator) SetViewer(v entity.Viewer) {
	c.mu.Lock()
	c.viewer = v
	c.mu.Unlock()
}

// Viewer returns the current viewer.
func (c *NavigationCoordinator) Viewer() entity.Viewer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewer
}

// RenderedOrder is the tab bar as shown: viewer-visible tabs, with ids from
// the state's tab order first and the rest in declaration order.
func (c *NavigationCoordinator) RenderedOrder() []entity.TabConfig {
	visible := c.store.Tree().TabsByPermission(c.Viewer())
	order := c.store.State().TabOrder
	if len(order) == 0 {
		return visible
	}

	byID := make(map[entity.TabID]entity.TabConfig, len(visible))
	for _, tab := range visible {
		byID[tab.ID] = tab
	}
	out := make([]entity.TabConfig, 0, len(visible))
	placed := make(map[entity.TabID]bool, len(order))
	for _, id := range order {
		if tab, ok := byID[id]; ok && !placed[id] {
			out = append(out, tab)
			placed[id] = true
		}
	}
	for _, tab := range visible {
		if !placed[tab.ID] {
			out = append(out, tab)
		}
	}
	return out
}

func (c *NavigationCoordinator) keyboardSuppressed() bool {
	c.mu.Lock()
	suppressed := c.blocked || c.textFocused
	c.mu.Unlock()
	if suppressed {
		return true
	}
	return c.focus != nil && c.focus.TextInputFocused()
}

// HandleKey moves along the rendered tab bar, skipping tabs that are not
// navigable. It reports whether a navigation took place.
func (c *NavigationCoordinator) HandleKey(ctx context.Context, k input.Key) bool {
	log := logging.FromContext(ctx)
	if c.keyboardSuppressed() {
		log.Trace().Str("key", string(k)).Msg("keyboard navigation suppressed")
		return false
	}

	target, ok := c.keyTarget(k)
	if !ok {
		return false
	}
	res := c.NavigateToTab(ctx, target, "", NavigateOptions{RestoreSubTab: true})
	return res.Navigated
}

func (c *NavigationCoordinator) keyTarget(k input.Key) (entity.TabID, bool) {
	order := c.RenderedOrder()
	tree := c.store.Tree()
	viewer := c.Viewer()
	c.mu.Lock()
	wrap := c.wrap
	c.mu.Unlock()
	navigable := func(i int) bool {
		return navigation.IsNavigable(tree, viewer, order[i].ID)
	}

	n := len(order)
	switch k {
	case input.KeyHome:
		for i := 0; i < n; i++ {
			if navigable(i) {
				return order[i].ID, true
			}
		}
		return "", false
	case input.KeyEnd:
		for i := n - 1; i >= 0; i-- {
			if navigable(i) {
				return order[i].ID, true
			}
		}
		return "", false
	}

	step := k.Step()
	if step == 0 || n == 0 {
		return "", false
	}

	active := c.store.State().ActiveTab
	cur := -1
	for i, tab := range order {
		if tab.ID == active {
			cur = i
			break
		}
	}
	if cur < 0 {
		// Nothing visible is active: enter from the matching end.
		if step > 0 {
			return c.keyTarget(input.KeyHome)
		}
		return c.keyTarget(input.KeyEnd)
	}

	i := cur
	for range n - 1 {
		i += step
		if i < 0 || i >= n {
			if !wrap {
				return "", false
			}
			i = (i + n) % n
		}
		if navigable(i) {
			return order[i].ID, true
		}
	}
	return "", false
}

// NavigateToTab activates tab (and sub, if given) after consulting the guard.
// The dispatch is skipped when the target is unknown or not navigable for the
// current viewer, or when the guard declines or fails.
func (c *NavigationCoordinator) NavigateToTab(
	ctx context.Context,
	tab entity.TabID,
	sub entity.SubTabID,
	opts NavigateOptions,
) NavigateResult {
	ctx = logging.WithTabID(ctx, string(tab))
	log := logging.FromContext(ctx)
	tree := c.store.Tree()
	viewer := c.Viewer()
	res := NavigateResult{TabID: tab, SubTabID: sub}

	if !tree.HasTab(tab) {
		res.Reason = ReasonUnknownTab
		log.Debug().Msg("navigation aborted: unknown tab")
		return res
	}
	if !navigation.IsNavigable(tree, viewer, tab) {
		res.Reason = ReasonNotAllowed
		log.Debug().Msg("navigation aborted: tab not navigable")
		return res
	}
	if sub != "" {
		if !tree.BelongsTo(sub, tab) {
			res.Reason = ReasonUnknownSub
			log.Debug().Str("subtab_id", string(sub)).Msg("navigation aborted: unknown sub-tab")
			return res
		}
		if !navigation.IsSubTabNavigable(tree, viewer, sub) {
			res.Reason = ReasonNotAllowed
			log.Debug().Str("subtab_id", string(sub)).Msg("navigation aborted: sub-tab not navigable")
			return res
		}
	}

	current := c.store.State()
	if sub == "" && opts.RestoreSubTab {
		if last, ok := current.LastActiveSubTab(tab); ok && navigation.IsSubTabNavigable(tree, viewer, last) {
			sub = last
			res.SubTabID = last
		}
	}

	c.mu.Lock()
	guard := c.guard
	c.mu.Unlock()

	if guard != nil {
		allowed, err := guard.CanNavigate(ctx, current.ActiveTab, tab)
		if err != nil {
			res.Reason = ReasonGuardError
			res.Message = guard.Message()
			log.Warn().Err(err).Str("from", string(current.ActiveTab)).Msg("navigation guard failed")
			return res
		}
		if !allowed {
			res.Reason = ReasonGuardDenied
			res.Message = guard.Message()
			log.Info().Str("from", string(current.ActiveTab)).Str("message", res.Message).Msg("navigation declined by guard")
			return res
		}
	}

	c.store.Dispatch(entity.SetActiveTab(tab, sub))
	res.Navigated = true

	if opts.OnComplete != nil {
		opts.OnComplete(tab, sub)
	}

	if c.location != nil && !opts.SkipFragment {
		path := entity.FormatPath(tab, sub)
		if opts.Replace {
			c.location.Replace(path)
		} else {
			c.location.Push(path)
		}
	}

	log.Debug().Str("subtab_id", string(sub)).Msg("navigated")
	return res
}

// SyncFragment rewrites the current location entry to match the store, for
// changes made without NavigateToTab such as going back or closing a tab.
func (c *NavigationCoordinator) SyncFragment() {
	if c.location == nil {
		return
	}
	state := c.store.State()
	path := entity.FormatPath(state.ActiveTab, state.ActiveSubTab)
	if c.location.Fragment() != path {
		c.location.Replace(path)
	}
}
