package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/specgraph-dev/specgraph/internal/config"
	"github.com/specgraph-dev/specgraph/internal/export"
	"github.com/specgraph-dev/specgraph/internal/fileutil"
	"github.com/specgraph-dev/specgraph/internal/scip"
)

func RunPipeline(cmd *cobra.Command, args []string) error {
	project := args[0]
	indexPath, err := cmd.Flags().GetString("index")
	if err != nil {
		return err
	}
	csvPath, err := cmd.Flags().GetString("csv")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	skipEnrich, err := cmd.Flags().GetBool("skip-enrich")
	if err != nil {
		return err
	}
	useCached, err := cmd.Flags().GetBool("use-cached-index")
	if err != nil {
		return err
	}
	githubURL, err := cmd.Flags().GetString("github-url")
	if err != nil {
		return err
	}

	cfg, err := config.LoadProject(project)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", outDir, err)
	}

	start := time.Now()

	// Stage 1: settle the index artifact.
	indexArtifact := fileutil.ArtifactPath(outDir, project, "index")
	switch {
	case useCached:
		if _, err := os.Stat(indexArtifact); err != nil {
			return fmt.Errorf("--use-cached-index: no cached index at %s", indexArtifact)
		}
	case indexPath == "":
		return fmt.Errorf("--index is required unless --use-cached-index is set")
	default:
		data, err := os.ReadFile(indexPath)
		if err != nil {
			return fmt.Errorf("reading index %s: %w", indexPath, err)
		}
		if err := fileutil.WriteIfChanged(indexArtifact, data); err != nil {
			return fmt.Errorf("caching index: %w", err)
		}
	}

	idx, err := scip.ReadIndex(indexArtifact)
	if err != nil {
		return err
	}
	graph := callgraphBuild(idx, cfg)

	// Stage 2: graph document.
	graphDoc := export.BuildGraph(graph, time.Now())
	graphDoc.Metadata.GithubURL = githubURL
	graphArtifact := fileutil.ArtifactPath(outDir, project, "graph")
	if err := fileutil.WriteJSON(graphArtifact, graphDoc); err != nil {
		return fmt.Errorf("writing graph document: %w", err)
	}

	// Stage 3: atoms.
	atoms := export.BuildAtoms(graph)
	atomsArtifact := fileutil.ArtifactPath(outDir, project, "atoms")
	if err := fileutil.WriteJSON(atomsArtifact, atoms); err != nil {
		return fmt.Errorf("writing atoms: %w", err)
	}

	// Stage 4: metrics.
	records := computeMetrics(atoms, cfg, 0)
	metricsArtifact := fileutil.ArtifactPath(outDir, project, "metrics")
	if err := fileutil.WriteJSON(metricsArtifact, records); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}

	fmt.Printf("pipeline: %d functions, %d links in %dms\n",
		graphDoc.Metadata.TotalNodes, graphDoc.Metadata.TotalEdges, time.Since(start).Milliseconds())
	fmt.Printf("artifacts: %s %s %s\n", graphArtifact, atomsArtifact, metricsArtifact)

	// Stage 5: enrichment is optional and never blocks the artifacts above.
	if csvPath == "" || skipEnrich {
		return nil
	}
	enriched := enrichedCSVPath(csvPath)
	stats, err := enrichCSV(records, csvPath, enriched)
	if err != nil {
		return err
	}
	fmt.Printf("enrich: %d/%d rows matched -> %s\n", stats.Matched, stats.Total, enriched)
	return nil
}

func enrichedCSVPath(csvPath string) string {
	base := strings.TrimSuffix(csvPath, ".csv")
	return base + ".enriched.csv"
}
