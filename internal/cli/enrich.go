package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specgraph-dev/specgraph/internal/enrich"
)

func RunEnrich(cmd *cobra.Command, args []string) error {
	records, err := loadMetricsRecords(args[0])
	if err != nil {
		return err
	}
	stats, err := enrichCSV(records, args[1], args[2])
	if err != nil {
		return err
	}

	fmt.Printf("enrich: %d/%d rows matched -> %s\n", stats.Matched, stats.Total, args[2])
	if stats.Ambiguous > 0 {
		warnf("enrich: %d ambiguous matches, see match_ambiguity column", stats.Ambiguous)
	}
	return nil
}

func enrichCSV(records []MetricsRecord, inPath, outPath string) (enrich.Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return enrich.Stats{}, fmt.Errorf("opening tracking list %s: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return enrich.Stats{}, fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	index := enrich.NewIndex(enrichRecords(records))
	stats, err := enrich.Enrich(index, in, out)
	if err != nil {
		return stats, err
	}
	return stats, out.Close()
}
