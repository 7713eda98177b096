package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow navigation changes made by other instances",
	Long: `Print the active path every time another tabnav instance changes the
shared navigation state. Stop with ctrl+c.

The memory backend has no siblings to follow.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	changes := make(chan entity.NavigationState, 16)
	unsubscribe := a.Store.Subscribe(func(prev, next entity.NavigationState) {
		if samePath(prev, next) && len(prev.History) == len(next.History) {
			return
		}
		select {
		case changes <- next:
		default:
			logging.FromContext(ctx).Debug().Msg("watch output behind, dropping change")
		}
	})
	defer unsubscribe()

	t := a.Theme
	fmt.Println(t.Subtle.Render("watching ") + t.Highlight.Render(pathOf(a.Store.State())))
	for {
		select {
		case <-ctx.Done():
			return nil
		case state := <-changes:
			fmt.Printf("%s %s\n",
				t.Subtle.Render(time.Now().Format("15:04:05")),
				t.Highlight.Render(pathOf(state)))
		}
	}
}

func samePath(a, b entity.NavigationState) bool {
	return a.ActiveTab == b.ActiveTab && a.ActiveSubTab == b.ActiveSubTab
}

func pathOf(state entity.NavigationState) string {
	if state.ActiveTab == "" {
		return "(no active tab)"
	}
	return "#" + entity.FormatPath(state.ActiveTab, state.ActiveSubTab)
}
