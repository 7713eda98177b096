package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tabnav/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where config, state and logs live",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configDefaultTabsCmd = &cobra.Command{
	Use:   "default-tabs",
	Short: "Print the built-in tab tree as YAML",
	Long: `Print the built-in tab tree. Save it and point navigation.tabs_file at
the copy to customize the dashboard tabs.

Example:
  tabnav config default-tabs > ~/.config/tabnav/tabs.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.DefaultTabsYAML())
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configDefaultTabsCmd)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	configFile, err := config.GetConfigFile()
	if err != nil {
		return fmt.Errorf("resolve config file: %w", err)
	}
	stateDir, err := config.GetStateDir()
	if err != nil {
		return fmt.Errorf("resolve state dir: %w", err)
	}
	logFile, err := config.GetLogFile()
	if err != nil {
		return fmt.Errorf("resolve log file: %w", err)
	}

	exists := "missing, defaults in use"
	if _, statErr := os.Stat(configFile); statErr == nil {
		exists = "present"
	}
	fmt.Printf("config  %s (%s)\n", configFile, exists)
	fmt.Printf("state   %s\n", stateDir)
	fmt.Printf("logs    %s\n", logFile)
	return nil
}
