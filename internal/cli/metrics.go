package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specgraph-dev/specgraph/internal/callgraph"
	"github.com/specgraph-dev/specgraph/internal/config"
	"github.com/specgraph-dev/specgraph/internal/export"
	"github.com/specgraph-dev/specgraph/internal/fileutil"
	"github.com/specgraph-dev/specgraph/internal/proof"
	"github.com/specgraph-dev/specgraph/internal/specs"
)

func RunMetrics(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	depth, err := cmd.Flags().GetInt("depth")
	if err != nil {
		return err
	}

	cfg, err := config.LoadProject(".")
	if err != nil {
		return err
	}
	atoms, err := loadAtoms(args[0])
	if err != nil {
		return err
	}

	records := computeMetrics(atoms, cfg, depth)
	if err := fileutil.WriteJSON(output, records); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}

	fmt.Printf("metrics: %d records -> %s\n", len(records), output)
	return nil
}

// computeMetrics scores every atom. A depth of 0 keeps the configured proof
// depth bound.
func computeMetrics(atoms []export.Atom, cfg config.Config, depth int) []MetricsRecord {
	computer := specs.NewComputer()
	computer.SetTables(cfg.ProseFilter(), cfg.Rewriter())

	graph := graphFromAtoms(atoms)
	expander := proof.NewExpander(graph)
	expander.SetTables(cfg.ProseFilter(), cfg.Rewriter())
	if depth > 0 {
		expander.SetMaxDepth(depth)
	} else {
		expander.SetMaxDepth(cfg.MaxProofDepth)
	}

	records := make([]MetricsRecord, 0, len(atoms))
	for _, atom := range atoms {
		records = append(records, MetricsRecord{
			Identifier:   atom.Identifier,
			DisplayName:  atom.DisplayName,
			FullPath:     atom.FullPath,
			RelativePath: atom.RelativePath,
			Spec:         computer.Compute(atom.Body),
			Proof:        expander.Expand(graph.Nodes[atom.Identifier]),
		})
	}
	return records
}

// graphFromAtoms rebuilds the node arena the proof expander walks. Atom
// records carry everything lemma resolution needs: identifier, display name,
// mode and body.
func graphFromAtoms(atoms []export.Atom) *callgraph.Graph {
	g := callgraph.NewGraph("")
	for _, atom := range atoms {
		g.Nodes[atom.Identifier] = nodeFromAtom(atom)
	}
	return g
}

func nodeFromAtom(atom export.Atom) *callgraph.FunctionNode {
	return &callgraph.FunctionNode{
		Symbol:       atom.Identifier,
		DisplayName:  atom.DisplayName,
		FilePath:     atom.FullPath,
		RelativePath: atom.RelativePath,
		Body:         atom.Body,
		HasBody:      atom.Body != "",
		Mode:         modeFromStatementType(atom.StatementType),
	}
}

func modeFromStatementType(statementType string) callgraph.FunctionMode {
	switch statementType {
	case "proof fn":
		return callgraph.ModeProof
	case "spec fn":
		return callgraph.ModeSpec
	default:
		return callgraph.ModeExec
	}
}
