// Package cmd provides Cobra CLI commands for tabnav.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tabnav/internal/cli"
	"github.com/bnema/tabnav/internal/domain/build"
	"github.com/bnema/tabnav/internal/domain/entity"
)

var (
	app       *cli.App
	buildInfo build.Info

	viewerAuth  bool
	viewerRoles []string

	rootCmd = &cobra.Command{
		Use:   "tabnav",
		Short: "Tab and sub-tab navigation for a financial dashboard",
		Long: `tabnav - the navigation state of a tabbed financial dashboard.

It keeps track of the active tab and sub-tab, back-navigation history,
open and pinned tabs, and remembers the last sub-tab of every tab.
State is saved to a durable slot and shared live between instances.

Use 'tabnav tui' for the interactive navigator, or the subcommands to
inspect and drive the saved state from scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "path", "default-tabs":
				return nil
			}

			opts := cli.AppOptions{
				Viewer: entity.Viewer{Authenticated: viewerAuth, Roles: viewerRoles},
			}
			if cmd.Name() == "tui" {
				opts.Interactive = true
				if len(args) > 0 {
					opts.Fragment = args[0]
				}
			}

			var err error
			app, err = cli.NewApp(opts)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			// Set build info from main.go
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&viewerAuth, "auth", false, "navigate as an authenticated viewer")
	rootCmd.PersistentFlags().StringSliceVar(&viewerRoles, "role", nil, "viewer role (repeatable)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
