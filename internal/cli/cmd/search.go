package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/tabnav/internal/domain/entity"
)

var (
	searchSubTabs bool
	searchJSON    bool
	searchMax     int
)

const defaultSearchMax = 10

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search tabs by label or id",
	Long: `Fuzzy-search the tab tree. Only tabs the viewer may see are listed.

Examples:
  tabnav search kpi
  tabnav search --subtabs chart --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVarP(&searchSubTabs, "subtabs", "s", false, "include sub-tabs")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.Flags().IntVar(&searchMax, "max", defaultSearchMax, "maximum results")
}

type searchHit struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

func runSearch(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	results := a.Tree.Search(strings.Join(args, " "), entity.SearchOptions{
		IncludeSubTabs:     searchSubTabs,
		FilterByPermission: true,
		Viewer:             a.Viewer,
	})
	if searchMax > 0 && len(results) > searchMax {
		results = results[:searchMax]
	}

	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hit := searchHit{Path: string(r.Tab.ID), Label: r.Tab.Label, Score: r.Score}
		if r.SubTab != nil {
			hit.Path = entity.FormatPath(r.Tab.ID, r.SubTab.ID)
			hit.Label = r.Tab.Label + " › " + r.SubTab.Label
		}
		hits = append(hits, hit)
	}

	if searchJSON {
		return writeJSON(hits)
	}
	if len(hits) == 0 {
		fmt.Println(a.Theme.Subtle.Render("no matches"))
		return nil
	}
	for _, h := range hits {
		fmt.Printf("%s  %s %s\n",
			a.Theme.Highlight.Render(fmt.Sprintf("%-36s", h.Path)),
			h.Label,
			a.Theme.Subtle.Render(fmt.Sprintf("(%d)", h.Score)))
	}
	return nil
}
