package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/specgraph-dev/specgraph/internal/config"
	"github.com/specgraph-dev/specgraph/internal/export"
	"github.com/specgraph-dev/specgraph/internal/fileutil"
)

func RunGraph(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	githubURL, err := cmd.Flags().GetString("github-url")
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

	doc := export.BuildGraph(graph, time.Now())
	doc.Metadata.GithubURL = githubURL
	if err := fileutil.WriteJSON(output, doc); err != nil {
		return fmt.Errorf("writing graph document: %w", err)
	}

	fmt.Printf("graph: %d nodes, %d links -> %s\n", doc.Metadata.TotalNodes, doc.Metadata.TotalEdges, output)
	return nil
}
