package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bnema/tabnav/internal/cli"
	"github.com/bnema/tabnav/internal/domain/entity"
)

var tabCmd = &cobra.Command{
	Use:   "tab",
	Short: "Open, close, pin and reorder tabs",
}

var tabOpenCmd = &cobra.Command{
	Use:   "open <tab>",
	Short: "Add a tab to the open tabs",
	Args:  cobra.ExactArgs(1),
	RunE: tabAction(func(a *cli.App, id entity.TabID) (entity.Action, error) {
		if a.Store.State().IsOpen(id) {
			return entity.Action{}, fmt.Errorf("%s is already open", id)
		}
		return entity.OpenTab(id), nil
	}),
}

var tabCloseCmd = &cobra.Command{
	Use:   "close <tab>",
	Short: "Close an open tab",
	Long: `Close an open tab. Closing the active tab activates the last remaining
open tab; its remembered sub-tab is kept for the next visit.`,
	Args: cobra.ExactArgs(1),
	RunE: tabAction(func(a *cli.App, id entity.TabID) (entity.Action, error) {
		if !a.Store.State().IsOpen(id) {
			return entity.Action{}, fmt.Errorf("%s is not open", id)
		}
		return entity.CloseTab(id), nil
	}),
}

var tabPinCmd = &cobra.Command{
	Use:   "pin <tab>",
	Short: "Pin a tab",
	Args:  cobra.ExactArgs(1),
	RunE: tabAction(func(_ *cli.App, id entity.TabID) (entity.Action, error) {
		return entity.PinTab(id), nil
	}),
}

var tabUnpinCmd = &cobra.Command{
	Use:   "unpin <tab>",
	Short: "Unpin a tab",
	Args:  cobra.ExactArgs(1),
	RunE: tabAction(func(a *cli.App, id entity.TabID) (entity.Action, error) {
		if !a.Store.State().IsPinned(id) {
			return entity.Action{}, fmt.Errorf("%s is not pinned", id)
		}
		return entity.UnpinTab(id), nil
	}),
}

var tabReorderCmd = &cobra.Command{
	Use:   "reorder <tab>...",
	Short: "Set the tab bar order",
	Long: `Set the tab bar order. The ids must be a permutation of the open tabs,
of the current order, or of every configured tab.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTabReorder,
}

func init() {
	rootCmd.AddCommand(tabCmd)
	tabCmd.AddCommand(tabOpenCmd, tabCloseCmd, tabPinCmd, tabUnpinCmd, tabReorderCmd)
}

// tabAction checks the id against the tree, then dispatches what build returns.
func tabAction(build func(a *cli.App, id entity.TabID) (entity.Action, error)) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		id := entity.TabID(args[0])
		if !a.Tree.HasTab(id) {
			return fmt.Errorf("unknown tab %q", id)
		}
		action, err := build(a, id)
		if err != nil {
			return err
		}
		a.Store.Dispatch(action)
		fmt.Println(renderState(a, a.Store.State()))
		return nil
	}
}

func runTabReorder(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	order := make([]entity.TabID, len(args))
	for i, arg := range args {
		order[i] = entity.TabID(arg)
	}

	a.Store.Dispatch(entity.ReorderTabs(order))
	if !slices.Equal(a.Store.State().TabOrder, order) {
		return fmt.Errorf("order rejected: not a permutation of the open tabs, the current order or all tabs")
	}
	fmt.Println(renderState(a, a.Store.State()))
	return nil
}
