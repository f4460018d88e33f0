package export

import (
	"path"

	"github.com/specgraph-dev/specgraph/internal/callgraph"
	"github.com/specgraph-dev/specgraph/internal/scip"
)

// Atom is the flat per-function record consumed by downstream metric tools.
// Identifier is the human-readable qualified path, not the raw symbol.
type Atom struct {
	Identifier    string   `json:"identifier"`
	StatementType string   `json:"statement_type"`
	Deps          []string `json:"deps"`
	Body          string   `json:"body"`
	DisplayName   string   `json:"display_name"`
	FullPath      string   `json:"full_path"`
	RelativePath  string   `json:"relative_path"`
	FileName      string   `json:"file_name"`
	ParentFolder  string   `json:"parent_folder"`
}

// BuildAtoms renders every node of g as an atom, in ascending symbol order.
// Deps reference other atoms by their cleaned identifier; callees that left
// the graph are dropped.
func BuildAtoms(g *callgraph.Graph) []Atom {
	atoms := make([]Atom, 0, len(g.Nodes))
	for _, symbol := range g.Symbols() {
		node := g.Nodes[symbol]

		var deps []string
		for _, callee := range node.SortedCallees() {
			calleeNode, ok := g.Nodes[callee]
			if !ok {
				continue
			}
			deps = append(deps, scip.CleanIdentifier(calleeNode.Symbol, calleeNode.DisplayName))
		}

		parentFolder := "unknown"
		if dir := path.Dir(node.FilePath); dir != "." {
			parentFolder = path.Base(dir)
		}

		atoms = append(atoms, Atom{
			Identifier:    scip.CleanIdentifier(node.Symbol, node.DisplayName),
			StatementType: statementType(node.Mode),
			Deps:          deps,
			Body:          node.Body,
			DisplayName:   node.DisplayName,
			FullPath:      node.FilePath,
			RelativePath:  node.RelativePath,
			FileName:      path.Base(node.FilePath),
			ParentFolder:  parentFolder,
		})
	}
	return atoms
}

// statementType labels an atom by its Verus mode; exec functions keep the
// generic label downstream tools expect.
func statementType(mode callgraph.FunctionMode) string {
	switch mode {
	case callgraph.ModeProof:
		return "proof fn"
	case callgraph.ModeSpec:
		return "spec fn"
	default:
		return "function"
	}
}
