package navigation

import (
	"strings"

	"github.com/bnema/tabnav/internal/domain/entity"
)

// IsNavigable reports whether a tab can currently be navigated to: it exists,
// is not disabled, and its permission admits the viewer.
// Keyboard traversal and guarded navigation both decide through this predicate.
func IsNavigable(tree *entity.TabTree, v entity.Viewer, id entity.TabID) bool {
	tab, ok := tree.Tab(id)
	if !ok || tab.Disabled {
		return false
	}
	return tab.Permission.Allows(v)
}

// IsSubTabNavigable applies the same rules to a sub-tab and its parent.
func IsSubTabNavigable(tree *entity.TabTree, v entity.Viewer, id entity.SubTabID) bool {
	sub, ok := tree.SubTab(id)
	if !ok || sub.Disabled || !sub.Permission.Allows(v) {
		return false
	}
	return IsNavigable(tree, v, sub.ParentID)
}

// ParsePath splits a deep-link fragment of the form "tab" or "tab/sub".
// A leading '#' or '/' is tolerated. ok is false when no tab id is present.
func ParsePath(fragment string) (tab entity.TabID, sub entity.SubTabID, ok bool) {
	fragment = strings.TrimLeft(fragment, "#/")
	if fragment == "" {
		return "", "", false
	}
	tabPart, subPart, _ := strings.Cut(fragment, "/")
	return entity.TabID(tabPart), entity.SubTabID(subPart), true
}
