package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tabnav/internal/cli/styles"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
)

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "List the configured tab tree",
	Long: `List the configured tabs and sub-tabs with their badges.

Tabs the viewer cannot see are hidden; disabled or locked ones are marked.`,
	Args: cobra.NoArgs,
	RunE: runTabs,
}

func init() {
	rootCmd.AddCommand(tabsCmd)
}

func runTabs(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	t := a.Theme
	state := a.Store.State()

	for _, tab := range a.Tree.TabsByPermission(a.Viewer) {
		cursor := "  "
		if tab.ID == state.ActiveTab {
			cursor = t.Highlight.Render(styles.IconCursor + " ")
		}
		line := cursor + t.Title.Render(tab.Label) + " " + t.Subtle.Render(string(tab.ID))
		line += marks(a.Tree, a.Viewer, tab.ID, tab.Disabled, tab.Permission)
		if state.IsPinned(tab.ID) {
			line += " " + styles.IconPin
		}
		if badge := t.TabBadge(tab.Badge); badge != "" {
			line += " " + badge
		}
		fmt.Println(line)

		for _, sub := range a.Tree.SubTabsOf(tab.ID) {
			prefix := "      "
			if tab.ID == state.ActiveTab && sub.ID == state.ActiveSubTab {
				prefix = "    " + t.Highlight.Render(styles.IconCursor) + " "
			}
			subLine := prefix + sub.Label + " " + t.Subtle.Render(string(sub.ID))
			if sub.Disabled {
				subLine += " " + t.WarningStyle.Render("disabled")
			} else if !navigation.IsSubTabNavigable(a.Tree, a.Viewer, sub.ID) {
				subLine += " " + t.WarningStyle.Render(styles.IconLock)
			}
			if badge := t.TabBadge(sub.Badge); badge != "" {
				subLine += " " + badge
			}
			fmt.Println(subLine)
		}
	}
	return nil
}

func marks(tree *entity.TabTree, v entity.Viewer, id entity.TabID, disabled bool, perm *entity.TabPermission) string {
	switch {
	case disabled:
		return " (disabled)"
	case !navigation.IsNavigable(tree, v, id):
		return " " + styles.IconLock
	case perm != nil && perm.RequiresAuth:
		return " (auth)"
	default:
		return ""
	}
}
