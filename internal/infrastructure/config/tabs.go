package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bnema/tabnav/internal/domain/entity"
)

//go:embed default_tabs.yaml
var defaultTabsYAML []byte

type tabsDocument struct {
	Tabs []entity.TabConfig `yaml:"tabs"`
}

// DefaultTabsYAML returns the built-in tab tree document.
func DefaultTabsYAML() []byte {
	out := make([]byte, len(defaultTabsYAML))
	copy(out, defaultTabsYAML)
	return out
}

// ParseTabs decodes a YAML tab tree. Tabs that set order are sorted by it;
// the rest keep their position.
func ParseTabs(data []byte) (*entity.TabTree, error) {
	var doc tabsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tab tree: %w", err)
	}
	if len(doc.Tabs) == 0 {
		return nil, fmt.Errorf("%w: no tabs defined", entity.ErrInvalidTabTree)
	}

	rank := func(i int) int {
		if o := doc.Tabs[i].Order; o != nil {
			return *o
		}
		return i
	}
	ranks := make(map[entity.TabID]int, len(doc.Tabs))
	for i := range doc.Tabs {
		ranks[doc.Tabs[i].ID] = rank(i)
	}
	sort.SliceStable(doc.Tabs, func(i, j int) bool {
		return ranks[doc.Tabs[i].ID] < ranks[doc.Tabs[j].ID]
	})

	return entity.NewTabTree(doc.Tabs)
}

// LoadTabTree reads the tab tree from path, or the built-in tree when path is empty.
func LoadTabTree(path string) (*entity.TabTree, error) {
	if path == "" {
		return ParseTabs(defaultTabsYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tab tree %s: %w", path, err)
	}
	tree, err := ParseTabs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}
