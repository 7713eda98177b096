package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/tabnav/internal/cli"
	"github.com/bnema/tabnav/internal/cli/styles"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
	"github.com/bnema/tabnav/internal/ui/coordinator"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved navigation state",
	Long:  `Print the active tab, open and pinned tabs, history and remembered sub-tabs.`,
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var goCmd = &cobra.Command{
	Use:   "go <tab[/sub-tab]>",
	Short: "Navigate to a tab or sub-tab",
	Long: `Navigate to a tab or sub-tab, the same way the navigator does.

Without a sub-tab, the tab reopens on the sub-tab it last showed.

Examples:
  tabnav go kpi                   # KPI dashboard, last sub-tab
  tabnav go analysis/analysis-charts`,
	Args: cobra.ExactArgs(1),
	RunE: runGo,
}

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Return to the previous tab in history",
	Args:  cobra.NoArgs,
	RunE:  runBack,
}

var collapseCmd = &cobra.Command{
	Use:   "collapse",
	Short: "Toggle the collapsed tab bar",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		a.Store.Dispatch(entity.ToggleCollapsed())
		fmt.Printf("collapsed: %t\n", a.Store.State().Collapsed)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "End the session and forget saved navigation",
	Long: `Reset navigation to the default tab and remove the saved state.

Other running instances reset as well.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		if err := a.Snapshot.EndSession(a.Ctx()); err != nil {
			return fmt.Errorf("end session: %w", err)
		}
		fmt.Println(a.Theme.Highlight.Render(styles.IconCheck) + " session ended")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd, goCmd, backCmd, collapseCmd, resetCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the persisted JSON form")
}

func runShow(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	state := a.Store.State()

	if showJSON {
		raw, err := navigation.Encode(state)
		if err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		fmt.Println(string(raw))
		return nil
	}

	fmt.Println(renderState(a, state))
	return nil
}

func runGo(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	tab, sub, ok := navigation.ParsePath(args[0])
	if !ok {
		return fmt.Errorf("empty path")
	}

	nav := a.NewNavigator()
	res := nav.NavigateToTab(a.Ctx(), tab, sub, coordinator.NavigateOptions{
		RestoreSubTab: sub == "",
		SkipFragment:  true,
	})
	if !res.Navigated {
		return fmt.Errorf("navigation to %s aborted: %s", args[0], res.Reason)
	}

	state := a.Store.State()
	fmt.Println(a.Theme.Highlight.Render("#" + entity.FormatPath(state.ActiveTab, state.ActiveSubTab)))
	return nil
}

func runBack(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if !a.Store.CanGoBack() {
		return fmt.Errorf("no earlier tab in history")
	}
	a.Store.Dispatch(entity.GoBack())

	state := a.Store.State()
	fmt.Println(a.Theme.Highlight.Render("#" + entity.FormatPath(state.ActiveTab, state.ActiveSubTab)))
	return nil
}

func renderState(a *cli.App, state entity.NavigationState) string {
	t := a.Theme
	label := func(s string) string { return t.Subtle.Render(fmt.Sprintf("%-10s", s)) }

	active := "-"
	if state.ActiveTab != "" {
		active = "#" + entity.FormatPath(state.ActiveTab, state.ActiveSubTab)
	}

	lines := []string{
		label("active") + t.Highlight.Render(active),
		label("open") + idList(state.OpenTabs),
		label("pinned") + idList(state.PinnedTabs),
		label("order") + idList(state.TabOrder),
		label("collapsed") + fmt.Sprint(state.Collapsed),
		label("history") + fmt.Sprint(len(state.History)),
	}
	lines = append(lines, historyLines(a, state.History)...)

	if len(state.LastActiveSubTabs) > 0 {
		lines = append(lines, label("remembered"))
		tabs := make([]string, 0, len(state.LastActiveSubTabs))
		for tab := range state.LastActiveSubTabs {
			tabs = append(tabs, string(tab))
		}
		sort.Strings(tabs)
		for _, tab := range tabs {
			lines = append(lines, fmt.Sprintf("  %s → %s", tab, state.LastActiveSubTabs[entity.TabID(tab)]))
		}
	}

	if a.Snapshot.Abandoned() {
		lines = append(lines, t.WarningStyle.Render(styles.IconWarning+" persistence abandoned: the slot is full"))
	}
	return strings.Join(lines, "\n")
}

// historyLines lists entries newest first.
func historyLines(a *cli.App, history []entity.HistoryEntry) []string {
	lines := make([]string, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		when := styles.RelativeTime(styles.MillisTime(h.Timestamp))
		lines = append(lines, fmt.Sprintf("  %3d  %-32s %s",
			i+1, entity.FormatPath(h.TabID, h.SubTabID), a.Theme.Subtle.Render(when)))
	}
	return lines
}

func idList(ids []entity.TabID) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
