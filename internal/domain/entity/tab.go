package entity

// TabID uniquely identifies a top-level tab.
type TabID string

// SubTabID uniquely identifies a sub-tab within its parent tab.
type SubTabID string

// BadgeColor is one of the presentational badge tints.
type BadgeColor string

const (
	BadgeRed    BadgeColor = "red"
	BadgeBlue   BadgeColor = "blue"
	BadgeGreen  BadgeColor = "green"
	BadgeYellow BadgeColor = "yellow"
	BadgeGray   BadgeColor = "gray"
)

// TabBadge is carried unchanged through the store; renderers decide how to show it.
type TabBadge struct {
	Count *int       `yaml:"count,omitempty" json:"count,omitempty"`
	Color BadgeColor `yaml:"color,omitempty" json:"color,omitempty"`
	Pulse bool       `yaml:"pulse,omitempty" json:"pulse,omitempty"`
	Text  string     `yaml:"text,omitempty" json:"text,omitempty"`
	Dot   bool       `yaml:"dot,omitempty" json:"dot,omitempty"`
}

// TabConfig declares a top-level section of the dashboard.
type TabConfig struct {
	ID    TabID  `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon,omitempty" json:"icon,omitempty"`
	// Component names the renderable body. It is opaque to navigation.
	Component  string         `yaml:"component,omitempty" json:"component,omitempty"`
	SubTabs    []SubTabConfig `yaml:"sub_tabs,omitempty" json:"subTabs,omitempty"`
	Disabled   bool           `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Badge      *TabBadge      `yaml:"badge,omitempty" json:"badge,omitempty"`
	Permission *TabPermission `yaml:"permission,omitempty" json:"permission,omitempty"`
	Closable   bool           `yaml:"closable,omitempty" json:"closable,omitempty"`
	Pinned     bool           `yaml:"pinned,omitempty" json:"pinned,omitempty"`
	Order      *int           `yaml:"order,omitempty" json:"order,omitempty"`
}

// HasSubTabs reports whether the tab declares any sub-tabs.
func (t *TabConfig) HasSubTabs() bool {
	return len(t.SubTabs) > 0
}

// SubTabConfig declares a second-level section scoped to exactly one parent.
type SubTabConfig struct {
	ID         SubTabID       `yaml:"id" json:"id"`
	Label      string         `yaml:"label" json:"label"`
	Icon       string         `yaml:"icon,omitempty" json:"icon,omitempty"`
	Component  string         `yaml:"component,omitempty" json:"component,omitempty"`
	ParentID   TabID          `yaml:"parent_id,omitempty" json:"parentId"`
	Disabled   bool           `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Badge      *TabBadge      `yaml:"badge,omitempty" json:"badge,omitempty"`
	Permission *TabPermission `yaml:"permission,omitempty" json:"permission,omitempty"`
}
