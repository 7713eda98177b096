package cmd

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/tabnav/internal/cli/model"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/infrastructure/config"
	"github.com/bnema/tabnav/internal/logging"
	"github.com/bnema/tabnav/internal/ui/coordinator"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [tab[/sub-tab]]",
	Short: "Open the interactive tab navigator",
	Long: `Open the interactive tab navigator.

An optional path deep-links to a tab or sub-tab on start. Changes made by
other tabnav instances show up live.

Examples:
  tabnav tui                          # Resume where you left off
  tabnav tui kpi/kpi-table            # Start on the KPI table`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()
	log := logging.FromContext(ctx)

	nav := a.NewNavigator()
	nav.Start(ctx)
	defer nav.Stop()
	// Without a deep link the location starts empty; mirror the restored state.
	nav.SyncFragment()

	m := model.NewNavigatorModel(ctx, a.Theme, model.NavigatorConfig{
		Store:   a.Store,
		Nav:     nav,
		SubTabs: coordinator.NewSubTabCoordinator(ctx, a.Store),
		Session: a.Snapshot,
		History: a.Location,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Listeners also fire for dispatches made inside Update, where a
	// blocking Send would deadlock the event loop.
	unsubscribe := a.Store.Subscribe(func(_, _ entity.NavigationState) {
		go p.Send(model.StateChangedMsg{})
	})
	defer unsubscribe()

	if err := a.WatchConfig(func(cfg *config.Config) {
		p.Send(model.ConfigReloadedMsg{Wrap: cfg.Navigation.WrapKeyboard})
	}); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		defer stop()
		_, runErr := p.Run()
		return runErr
	})
	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})
	return g.Wait()
}
