package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tabnav/internal/domain/entity"
)

var (
	historyClear bool
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear the back-navigation history",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "empty the history, keeping the active tab")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
}

func runHistory(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if historyClear {
		a.Store.Dispatch(entity.ClearHistory())
		fmt.Println("history cleared")
		return nil
	}

	history := a.Store.State().History
	if historyJSON {
		if history == nil {
			history = []entity.HistoryEntry{}
		}
		return writeJSON(history)
	}
	if len(history) == 0 {
		fmt.Println(a.Theme.Subtle.Render("history is empty"))
		return nil
	}
	for _, line := range historyLines(a, history) {
		fmt.Println(line)
	}
	return nil
}
