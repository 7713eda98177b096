package entity

// TabPermission describes what a viewer needs to see or edit a tab.
// It is a capability descriptor; enforcement belongs to the navigation coordinator.
type TabPermission struct {
	CanView      bool     `yaml:"can_view" json:"canView"`
	CanEdit      bool     `yaml:"can_edit,omitempty" json:"canEdit,omitempty"`
	RequiresAuth bool     `yaml:"requires_auth,omitempty" json:"requiresAuth,omitempty"`
	Roles        []string `yaml:"roles,omitempty" json:"roles,omitempty"`
}

// Viewer is the identity navigation checks permissions against.
type Viewer struct {
	Authenticated bool
	Roles         []string
}

// AnonymousViewer has no session and no roles.
var AnonymousViewer = Viewer{}

// HasRole reports whether the viewer carries the given role.
func (v Viewer) HasRole(role string) bool {
	for _, r := range v.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Allows reports whether the viewer satisfies the permission.
// A nil permission allows everyone.
func (p *TabPermission) Allows(v Viewer) bool {
	if p == nil {
		return true
	}
	if !p.CanView {
		return false
	}
	if p.RequiresAuth && !v.Authenticated {
		return false
	}
	if len(p.Roles) == 0 {
		return true
	}
	for _, role := range p.Roles {
		if v.HasRole(role) {
			return true
		}
	}
	return false
}
