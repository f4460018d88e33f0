package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/specgraph-dev/specgraph/internal/callgraph"
)

const (
	symCaller = "rust-analyzer cargo proj 0.1.0 lib/do_work()."
	symCallee = "rust-analyzer cargo proj 0.1.0 lib/spec_ok()."
	symExt    = "rust-analyzer cargo vstd 0.1.0 arithmetic/lemma_mul_basics()."
)

func exportGraph() *callgraph.Graph {
	g := callgraph.NewGraph("file:///proj")
	g.Nodes[symCaller] = &callgraph.FunctionNode{
		Symbol:       symCaller,
		DisplayName:  "do_work",
		FilePath:     "file:///proj/src/lib.rs",
		RelativePath: "src/lib.rs",
		Range:        []int{4, 3, 12, 1},
		Body:         "fn do_work() {\n}",
		HasBody:      true,
		Mode:         callgraph.ModeExec,
		Callers:      map[string]bool{},
		Callees:      map[string]bool{symCallee: true, symExt: true},
		CalleeOccurrences: []callgraph.CalleeOccurrence{
			{Symbol: symCallee, Line: 5, Location: callgraph.LocationPrecondition},
			{Symbol: symCallee, Line: 6, Location: callgraph.LocationPrecondition},
			{Symbol: symCallee, Line: 9, Location: callgraph.LocationInner},
			{Symbol: symExt, Line: 10},
		},
	}
	g.Nodes[symCallee] = &callgraph.FunctionNode{
		Symbol:       symCallee,
		DisplayName:  "spec_ok",
		FilePath:     "file:///proj/src/lib.rs",
		RelativePath: "src/lib.rs",
		Range:        []int{20, 8, 20, 15},
		Mode:         callgraph.ModeSpec,
		Callers:      map[string]bool{symCaller: true},
		Callees:      map[string]bool{},
	}
	g.Nodes[symExt] = &callgraph.FunctionNode{
		Symbol:       symExt,
		DisplayName:  "lemma_mul_basics",
		FilePath:     "external:" + symExt,
		RelativePath: "vstd::arithmetic::lemma_mul_basics",
		Mode:         callgraph.ModeExec,
		Callers:      map[string]bool{symCaller: true},
		Callees:      map[string]bool{},
	}
	return g
}

func TestBuildGraphDocument(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	doc := BuildGraph(exportGraph(), now)

	require.Len(t, doc.Nodes, 3)
	require.Equal(t, 3, doc.Metadata.TotalNodes)
	require.Equal(t, "file:///proj", doc.Metadata.ProjectRoot)
	require.Equal(t, "2026-03-14T09:30:00Z", doc.Metadata.GeneratedAt)

	var caller, ext *GraphNode
	for i := range doc.Nodes {
		switch doc.Nodes[i].Symbol {
		case symCaller:
			caller = &doc.Nodes[i]
		case symExt:
			ext = &doc.Nodes[i]
		}
	}
	require.NotNil(t, caller)
	require.NotNil(t, ext)

	require.Equal(t, "lib.rs", caller.FileName)
	require.Equal(t, "src", caller.ParentFolder)
	require.Equal(t, 5, *caller.StartLine)
	require.Equal(t, 13, *caller.EndLine)
	require.Equal(t, []string{symCallee, symExt}, caller.Dependencies)

	// External placeholders report their crate on both path fields.
	require.Equal(t, "vstd", ext.FileName)
	require.Equal(t, "vstd", ext.ParentFolder)
	require.Nil(t, ext.StartLine)
}

func TestBuildGraphLinksDeduplicated(t *testing.T) {
	doc := BuildGraph(exportGraph(), time.Now())

	// Four occurrences collapse to three distinct (source, target, type)
	// links; the unclassified one defaults to inner.
	require.Len(t, doc.Links, 3)
	require.Equal(t, 3, doc.Metadata.TotalEdges)

	types := make(map[string]int)
	for _, link := range doc.Links {
		require.Equal(t, symCaller, link.Source)
		types[link.LinkType]++
	}
	require.Equal(t, map[string]int{"precondition": 1, "inner": 2}, types)
}

func TestGraphDependenciesAndDependentsConsistent(t *testing.T) {
	doc := BuildGraph(exportGraph(), time.Now())

	byID := make(map[string]GraphNode)
	for _, n := range doc.Nodes {
		byID[n.ID] = n
	}
	for _, n := range doc.Nodes {
		for _, dep := range n.Dependencies {
			require.Contains(t, byID[dep].Dependents, n.ID)
		}
		for _, dependent := range n.Dependents {
			require.Contains(t, byID[dependent].Dependencies, n.ID)
		}
	}
}

func TestBuildAtoms(t *testing.T) {
	atoms := BuildAtoms(exportGraph())
	require.Len(t, atoms, 3)

	byName := make(map[string]Atom)
	for _, a := range atoms {
		byName[a.DisplayName] = a
	}

	caller := byName["do_work"]
	require.Equal(t, "lib::do_work", caller.Identifier)
	require.Equal(t, "function", caller.StatementType)
	require.Equal(t, []string{"lib::spec_ok", "arithmetic::lemma_mul_basics"}, caller.Deps)
	require.Equal(t, "fn do_work() {\n}", caller.Body)

	require.Equal(t, "spec fn", byName["spec_ok"].StatementType)
}
