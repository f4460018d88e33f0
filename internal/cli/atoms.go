package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specgraph-dev/specgraph/internal/config"
	"github.com/specgraph-dev/specgraph/internal/export"
	"github.com/specgraph-dev/specgraph/internal/fileutil"
)

func RunAtoms(cmd *cobra.Command, args []string) error {
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

	atoms := export.BuildAtoms(graph)
	if err := fileutil.WriteJSON(output, atoms); err != nil {
		return fmt.Errorf("writing atoms: %w", err)
	}

	fmt.Printf("atoms: %d records -> %s\n", len(atoms), output)
	return nil
}
