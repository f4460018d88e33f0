package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/specgraph-dev/specgraph/internal/config"
	"github.com/specgraph-dev/specgraph/internal/export"
	"github.com/specgraph-dev/specgraph/internal/fileutil"
)

func RunSubgraph(cmd *cobra.Command, args []string) error {
	entries, err := cmd.Flags().GetStringSlice("entry")
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("at least one --entry is required")
	}
	depth, err := cmd.Flags().GetInt("depth")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
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

	sub := graph.Subgraph(entries, depth)
	if len(sub.Nodes) == 0 {
		return fmt.Errorf("no entry matched: %v", entries)
	}

	doc := export.BuildGraph(sub, time.Now())
	if err := fileutil.WriteJSON(output, doc); err != nil {
		return fmt.Errorf("writing subgraph document: %w", err)
	}

	fmt.Printf("subgraph: %d of %d nodes -> %s\n", len(sub.Nodes), len(graph.Nodes), output)
	return nil
}
