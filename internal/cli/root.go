package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "specgraph",
		Short: "Build call graphs and specification metrics from SCIP indexes",
		Long: `Specgraph turns a SCIP JSON index of a Verus-annotated Rust project
into a call graph, per-function specification metrics (Halstead scores
over requires/ensures clauses, proof expansion) and an enriched
function tracking list.`,
	}

	// Pipeline
	pipelineCmd := &cobra.Command{
		Use:   "pipeline <project>",
		Short: "Run the full index -> graph -> atoms -> metrics -> enrich pipeline",
		Args:  cobra.ExactArgs(1),
		RunE:  RunPipeline,
	}
	pipelineCmd.Flags().String("index", "", "SCIP JSON index file for the project")
	pipelineCmd.Flags().String("csv", "", "Function tracking list to enrich")
	pipelineCmd.Flags().String("output", ".", "Directory for pipeline artifacts")
	pipelineCmd.Flags().Bool("skip-enrich", false, "Stop after metrics, do not touch the CSV")
	pipelineCmd.Flags().Bool("use-cached-index", false, "Reuse the copied index artifact instead of --index")
	pipelineCmd.Flags().String("github-url", "", "Repository URL embedded in the graph export")

	// Single stages
	graphCmd := &cobra.Command{
		Use:   "graph <index.json>",
		Short: "Export the call graph document from an index",
		Args:  cobra.ExactArgs(1),
		RunE:  RunGraph,
	}
	graphCmd.Flags().String("output", "graph.json", "Graph document output file")
	graphCmd.Flags().String("github-url", "", "Repository URL embedded in the export")

	atomsCmd := &cobra.Command{
		Use:   "atoms <index.json>",
		Short: "Export the flat per-function atom records from an index",
		Args:  cobra.ExactArgs(1),
		RunE:  RunAtoms,
	}
	atomsCmd.Flags().String("output", "atoms.json", "Atoms output file")

	metricsCmd := &cobra.Command{
		Use:   "metrics <atoms.json>",
		Short: "Compute spec Halstead and proof metrics over atom records",
		Args:  cobra.ExactArgs(1),
		RunE:  RunMetrics,
	}
	metricsCmd.Flags().String("output", "metrics.json", "Metrics output file")
	metricsCmd.Flags().Int("depth", 0, "Override the transitive proof depth bound")

	enrichCmd := &cobra.Command{
		Use:   "enrich <metrics.json> <in.csv> <out.csv>",
		Short: "Append metric columns to a function tracking list",
		Args:  cobra.ExactArgs(3),
		RunE:  RunEnrich,
	}

	// Inspect Commands
	summaryCmd := &cobra.Command{
		Use:   "summary <index.json>",
		Short: "Print call-graph statistics for an index",
		Args:  cobra.ExactArgs(1),
		RunE:  RunSummary,
	}
	summaryCmd.Flags().Bool("json", false, "Print machine-readable summary")
	summaryCmd.Flags().Int("top", 10, "Number of ranked functions to show")

	subgraphCmd := &cobra.Command{
		Use:   "subgraph <index.json>",
		Short: "Export the subgraph reachable from entry symbols",
		Args:  cobra.ExactArgs(1),
		RunE:  RunSubgraph,
	}
	subgraphCmd.Flags().StringSlice("entry", nil, "Entry symbol or display name (repeatable)")
	subgraphCmd.Flags().Int("depth", -1, "Traversal depth; 0 keeps entries only, negative is unlimited")
	subgraphCmd.Flags().String("output", "subgraph.json", "Subgraph document output file")

	// Navigate Commands
	callersCmd := &cobra.Command{
		Use:   "callers <name>",
		Short: "Show direct callers of a function in an exported graph",
		Args:  cobra.ExactArgs(1),
		RunE:  RunCallers,
	}
	callersCmd.Flags().String("graph", "graph.json", "Exported graph document")
	callersCmd.Flags().Bool("json", false, "Print machine-readable caller results")

	calleesCmd := &cobra.Command{
		Use:   "callees <name>",
		Short: "Show direct callees of a function in an exported graph",
		Args:  cobra.ExactArgs(1),
		RunE:  RunCallees,
	}
	calleesCmd.Flags().String("graph", "graph.json", "Exported graph document")
	calleesCmd.Flags().Bool("json", false, "Print machine-readable callee results")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("specgraph %s\n", version)
		},
	}

	rootCmd.AddCommand(
		pipelineCmd,
		graphCmd,
		atomsCmd,
		metricsCmd,
		enrichCmd,
		summaryCmd,
		subgraphCmd,
		callersCmd,
		calleesCmd,
		versionCmd,
	)

	return rootCmd
}
