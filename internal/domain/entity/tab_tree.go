package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"
)

// ErrInvalidTabTree is returned when a declarative tab tree breaks its invariants.
var ErrInvalidTabTree = errors.New("invalid tab tree")

// TabTree is the immutable, indexed form of the tab configuration.
// Sub-tab ownership is resolved once at construction.
type TabTree struct {
	tabs     []TabConfig
	tabIndex map[TabID]int
	subTabs  map[TabID][]SubTabConfig
	parents  map[SubTabID]TabID
}

// NewTabTree indexes the given tabs. Sub-tabs without a parent id inherit the
// owning tab's id; a mismatching parent id or a duplicate id is rejected.
func NewTabTree(tabs []TabConfig) (*TabTree, error) {
	t := &TabTree{
		tabs:     make([]TabConfig, 0, len(tabs)),
		tabIndex: make(map[TabID]int, len(tabs)),
		subTabs:  make(map[TabID][]SubTabConfig, len(tabs)),
		parents:  make(map[SubTabID]TabID),
	}

	for _, tab := range tabs {
		if tab.ID == "" {
			return nil, fmt.Errorf("%w: tab %q has an empty id", ErrInvalidTabTree, tab.Label)
		}
		if _, dup := t.tabIndex[tab.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate tab id %q", ErrInvalidTabTree, tab.ID)
		}

		subs := make([]SubTabConfig, 0, len(tab.SubTabs))
		for _, sub := range tab.SubTabs {
			if sub.ID == "" {
				return nil, fmt.Errorf("%w: sub-tab %q of %q has an empty id", ErrInvalidTabTree, sub.Label, tab.ID)
			}
			if sub.ParentID == "" {
				sub.ParentID = tab.ID
			}
			if sub.ParentID != tab.ID {
				return nil, fmt.Errorf("%w: sub-tab %q declares parent %q but belongs to %q",
					ErrInvalidTabTree, sub.ID, sub.ParentID, tab.ID)
			}
			if owner, dup := t.parents[sub.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate sub-tab id %q (already under %q)", ErrInvalidTabTree, sub.ID, owner)
			}
			t.parents[sub.ID] = tab.ID
			subs = append(subs, sub)
		}
		tab.SubTabs = subs

		t.tabIndex[tab.ID] = len(t.tabs)
		t.tabs = append(t.tabs, tab)
		t.subTabs[tab.ID] = subs
	}

	return t, nil
}

// MustTabTree is NewTabTree for static trees known to be valid.
func MustTabTree(tabs []TabConfig) *TabTree {
	t, err := NewTabTree(tabs)
	if err != nil {
		panic(err)
	}
	return t
}

// Tabs returns the configured tabs in declaration order.
func (t *TabTree) Tabs() []TabConfig {
	out := make([]TabConfig, len(t.tabs))
	copy(out, t.tabs)
	return out
}

// TabIDs returns every tab id in declaration order.
func (t *TabTree) TabIDs() []TabID {
	ids := make([]TabID, 0, len(t.tabs))
	for _, tab := range t.tabs {
		ids = append(ids, tab.ID)
	}
	return ids
}

// Len returns the number of top-level tabs.
func (t *TabTree) Len() int {
	return len(t.tabs)
}

// Tab returns the tab with the given id.
func (t *TabTree) Tab(id TabID) (TabConfig, bool) {
	i, ok := t.tabIndex[id]
	if !ok {
		return TabConfig{}, false
	}
	return t.tabs[i], true
}

// HasTab reports whether id names a configured tab.
func (t *TabTree) HasTab(id TabID) bool {
	_, ok := t.tabIndex[id]
	return ok
}

// SubTabsOf returns the sub-tabs of a tab, or nil if it has none or is unknown.
func (t *TabTree) SubTabsOf(id TabID) []SubTabConfig {
	return t.subTabs[id]
}

// SubTab returns the sub-tab with the given id.
func (t *TabTree) SubTab(id SubTabID) (SubTabConfig, bool) {
	parent, ok := t.parents[id]
	if !ok {
		return SubTabConfig{}, false
	}
	for _, sub := range t.subTabs[parent] {
		if sub.ID == id {
			return sub, true
		}
	}
	return SubTabConfig{}, false
}

// ParentOf returns the tab that owns a sub-tab.
func (t *TabTree) ParentOf(id SubTabID) (TabID, bool) {
	parent, ok := t.parents[id]
	return parent, ok
}

// BelongsTo reports whether sub is a sub-tab of tab.
func (t *TabTree) BelongsTo(sub SubTabID, tab TabID) bool {
	parent, ok := t.parents[sub]
	return ok && parent == tab
}

// DefaultTabID returns the first non-disabled tab, or "" when none is usable.
func (t *TabTree) DefaultTabID() TabID {
	for _, tab := range t.tabs {
		if !tab.Disabled {
			return tab.ID
		}
	}
	return ""
}

// TabsByPermission returns the tabs the viewer is allowed to see.
func (t *TabTree) TabsByPermission(v Viewer) []TabConfig {
	out := make([]TabConfig, 0, len(t.tabs))
	for _, tab := range t.tabs {
		if tab.Permission.Allows(v) {
			out = append(out, tab)
		}
	}
	return out
}

// SearchOptions tunes TabTree.Search.
type SearchOptions struct {
	IncludeSubTabs     bool
	FilterByPermission bool
	Viewer             Viewer
}

// SearchResult is one match of a tab search. SubTab is nil for tab-level hits.
type SearchResult struct {
	Tab    TabConfig
	SubTab *SubTabConfig
	Score  int
}

type searchCandidate struct {
	text   string
	tab    int
	subTab int
}

type searchSource []searchCandidate

func (s searchSource) String(i int) string { return s[i].text }
func (s searchSource) Len() int            { return len(s) }

// Search fuzzy-matches the query against tab (and optionally sub-tab) labels.
// Results are ordered by descending score.
func (t *TabTree) Search(query string, opts SearchOptions) []SearchResult {
	if query == "" {
		return nil
	}

	source := make(searchSource, 0, len(t.tabs))
	for i, tab := range t.tabs {
		if opts.FilterByPermission && !tab.Permission.Allows(opts.Viewer) {
			continue
		}
		source = append(source, searchCandidate{text: tab.Label + " " + string(tab.ID), tab: i, subTab: -1})
		if !opts.IncludeSubTabs {
			continue
		}
		for j, sub := range tab.SubTabs {
			if opts.FilterByPermission && !sub.Permission.Allows(opts.Viewer) {
				continue
			}
			source = append(source, searchCandidate{text: sub.Label + " " + string(sub.ID), tab: i, subTab: j})
		}
	}

	matches := fuzzy.FindFrom(query, source)
	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		c := source[m.Index]
		res := SearchResult{Tab: t.tabs[c.tab], Score: m.Score}
		if c.subTab >= 0 {
			sub := t.tabs[c.tab].SubTabs[c.subTab]
			res.SubTab = &sub
		}
		results = append(results, res)
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}
