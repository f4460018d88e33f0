package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/specgraph-dev/specgraph/internal/callgraph"
	"github.com/specgraph-dev/specgraph/internal/config"
	"github.com/specgraph-dev/specgraph/internal/enrich"
	"github.com/specgraph-dev/specgraph/internal/export"
	"github.com/specgraph-dev/specgraph/internal/proof"
	"github.com/specgraph-dev/specgraph/internal/scip"
	"github.com/specgraph-dev/specgraph/internal/specs"
)

// MetricsRecord is one function's row in the metrics artifact: identity
// fields from its atom plus the computed spec and proof metrics.
type MetricsRecord struct {
	Identifier   string                `json:"identifier"`
	DisplayName  string                `json:"display_name"`
	FullPath     string                `json:"full_path"`
	RelativePath string                `json:"relative_path"`
	Spec         specs.FunctionMetrics `json:"spec_metrics"`
	Proof        *proof.Metrics        `json:"proof_metrics,omitempty"`
}

func buildGraphFromIndex(indexPath string, cfg config.Config) (*callgraph.Graph, error) {
	idx, err := scip.ReadIndex(indexPath)
	if err != nil {
		return nil, err
	}
	return callgraphBuild(idx, cfg), nil
}

func callgraphBuild(idx *scip.Index, cfg config.Config) *callgraph.Graph {
	return callgraph.Build(idx, callgraph.BuildOptions{
		FunctionKinds: cfg.FunctionKinds,
	})
}

func loadGraphDoc(path string) (*export.GraphDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph document %s: %w", path, err)
	}
	var doc export.GraphDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing graph document %s: %w", path, err)
	}
	return &doc, nil
}

func loadAtoms(path string) ([]export.Atom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading atoms %s: %w", path, err)
	}
	var atoms []export.Atom
	if err := json.Unmarshal(data, &atoms); err != nil {
		return nil, fmt.Errorf("parsing atoms %s: %w", path, err)
	}
	return atoms, nil
}

func loadMetricsRecords(path string) ([]MetricsRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metrics %s: %w", path, err)
	}
	var records []MetricsRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing metrics %s: %w", path, err)
	}
	return records, nil
}

func enrichRecords(records []MetricsRecord) []enrich.Record {
	out := make([]enrich.Record, 0, len(records))
	for _, r := range records {
		out = append(out, enrich.Record{
			FullPath:     r.Identifier,
			DisplayName:  r.DisplayName,
			RelativePath: r.RelativePath,
			Metrics:      r.Spec,
			Proof:        r.Proof,
		})
	}
	return out
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
