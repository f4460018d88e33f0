package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specgraph-dev/specgraph/internal/export"
	"github.com/specgraph-dev/specgraph/internal/fileutil"
)

func RunCallers(cmd *cobra.Command, args []string) error {
	return runNav(cmd, args[0], "callers", func(n export.GraphNode) []string {
		return n.Dependents
	})
}

func RunCallees(cmd *cobra.Command, args []string) error {
	return runNav(cmd, args[0], "callees", func(n export.GraphNode) []string {
		return n.Dependencies
	})
}

func runNav(cmd *cobra.Command, query, direction string, pick func(export.GraphNode) []string) error {
	graphPath, err := cmd.Flags().GetString("graph")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	doc, err := loadGraphDoc(graphPath)
	if err != nil {
		return err
	}

	node, ok := resolveGraphNode(doc, query)
	if !ok {
		return fmt.Errorf("function %q not found in %s", query, graphPath)
	}

	byID := make(map[string]export.GraphNode, len(doc.Nodes))
	for _, n := range doc.Nodes {
		byID[n.ID] = n
	}

	var related []export.GraphNode
	for _, id := range pick(node) {
		if neighbor, ok := byID[id]; ok {
			related = append(related, neighbor)
		}
	}

	if asJSON {
		return fileutil.PrintJSON(map[string]any{
			"query":   query,
			"node":    node,
			direction: related,
		})
	}

	fmt.Printf("%s for %s (%d)\n", direction, node.DisplayName, len(related))
	if len(related) == 0 {
		fmt.Printf("no %s found\n", direction)
		return nil
	}
	for _, neighbor := range related {
		line := ""
		if neighbor.StartLine != nil {
			line = fmt.Sprintf(":%d", *neighbor.StartLine)
		}
		fmt.Printf("- %s [%s] %s%s\n", neighbor.DisplayName, neighbor.Mode, neighbor.RelativePath, line)
	}
	return nil
}

// resolveGraphNode matches by exact symbol first, then by display name in
// ascending symbol order.
func resolveGraphNode(doc *export.GraphDoc, query string) (export.GraphNode, bool) {
	var byName *export.GraphNode
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if n.Symbol == query {
			return *n, true
		}
		if n.DisplayName == query && (byName == nil || n.Symbol < byName.Symbol) {
			byName = n
		}
	}
	if byName != nil {
		return *byName, true
	}
	return export.GraphNode{}, false
}
