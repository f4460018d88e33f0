package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specgraph-dev/specgraph/internal/config"
	"github.com/specgraph-dev/specgraph/internal/fileutil"
)

func RunSummary(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	topN, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}

	cfg, err := config.LoadProject(".")
	if err != nil {
		return err
	}
	graph, err := buildGraphFromIndex(args[0], cfg)
	if err != nil {
		return err
	}

	summary := graph.Summarize(topN)
	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	fmt.Printf("functions: total=%d local=%d external=%d\n",
		summary.TotalFunctions, summary.LocalFunctions, summary.ExternalFunctions)
	fmt.Printf("shape: entry-points=%d leaves=%d call-edges=%d\n",
		summary.EntryPoints, summary.LeafFunctions, summary.TotalCallEdges)
	fmt.Printf("modes: exec=%d proof=%d spec=%d\n",
		summary.ModeCounts["exec"], summary.ModeCounts["proof"], summary.ModeCounts["spec"])

	if len(summary.MostCalled) > 0 {
		fmt.Printf("most called (%d):\n", len(summary.MostCalled))
		for _, ranked := range summary.MostCalled {
			fmt.Printf("- %s (%d callers)\n", ranked.DisplayName, ranked.Count)
		}
	}
	if len(summary.MostCalling) > 0 {
		fmt.Printf("most calling (%d):\n", len(summary.MostCalling))
		for _, ranked := range summary.MostCalling {
			fmt.Printf("- %s (%d callees)\n", ranked.DisplayName, ranked.Count)
		}
	}
	return nil
}
