package coordinator

import (
	"context"

	"github.com/bnema/tabnav/internal/application/store"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/logging"
)

// SubTabCoordinator derives the sub-tab bar of the active tab and cycles
// through it. Disabled and permission checks are lookups only; callers decide
// whether to honor them.
type SubTabCoordinator struct {
	store *store.Store
}

// NewSubTabCoordinator creates a new SubTabCoordinator.
func NewSubTabCoordinator(ctx context.Context, st *store.Store) *SubTabCoordinator {
	logging.FromContext(ctx).Debug().Msg("creating sub-tab coordinator")
	return &SubTabCoordinator{store: st}
}

// SubTabs returns the sub-tabs of the active tab, empty when none is active.
func (c *SubTabCoordinator) SubTabs() []entity.SubTabConfig {
	active := c.store.State().ActiveTab
	if active == "" {
		return nil
	}
	return c.store.Tree().SubTabsOf(active)
}

// ActiveSubTabID mirrors the store.
func (c *SubTabCoordinator) ActiveSubTabID() entity.SubTabID {
	return c.store.State().ActiveSubTab
}

// GoToNext activates the following sub-tab, wrapping after the last.
func (c *SubTabCoordinator) GoToNext(ctx context.Context) bool {
	return c.step(ctx, 1)
}

// GoToPrevious activates the preceding sub-tab, wrapping before the first.
func (c *SubTabCoordinator) GoToPrevious(ctx context.Context) bool {
	return c.step(ctx, -1)
}

func (c *SubTabCoordinator) step(ctx context.Context, delta int) bool {
	subs := c.SubTabs()
	n := len(subs)
	if n == 0 {
		return false
	}

	active := c.ActiveSubTabID()
	cur := -1
	for i, sub := range subs {
		if sub.ID == active {
			cur = i
			break
		}
	}

	var next int
	switch {
	case cur < 0 && delta > 0:
		next = 0
	case cur < 0:
		next = n - 1
	default:
		next = ((cur+delta)%n + n) % n
	}

	logging.FromContext(ctx).Debug().
		Str("from", string(active)).
		Str("to", string(subs[next].ID)).
		Msg("cycling sub-tab")
	return c.SetActiveSubTab(subs[next].ID)
}

// SetActiveSubTab dispatches SET_ACTIVE_SUBTAB and reports whether the state
// now shows sub.
func (c *SubTabCoordinator) SetActiveSubTab(sub entity.SubTabID) bool {
	c.store.Dispatch(entity.SetActiveSubTab(sub))
	return c.store.State().ActiveSubTab == sub
}

// GetLastActiveSubTab reads the remembered sub-tab of a parent tab.
func (c *SubTabCoordinator) GetLastActiveSubTab(parent entity.TabID) (entity.SubTabID, bool) {
	return c.store.State().LastActiveSubTab(parent)
}

// IsSubTabDisabled reports whether the sub-tab is configured disabled.
// Unknown ids count as disabled.
func (c *SubTabCoordinator) IsSubTabDisabled(id entity.SubTabID) bool {
	sub, ok := c.store.Tree().SubTab(id)
	return !ok || sub.Disabled
}

// HasSubTabPermission reports whether v may see the sub-tab.
func (c *SubTabCoordinator) HasSubTabPermission(id entity.SubTabID, v entity.Viewer) bool {
	sub, ok := c.store.Tree().SubTab(id)
	return ok && sub.Permission.Allows(v)
}
