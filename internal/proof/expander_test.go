package proof

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specgraph-dev/specgraph/internal/callgraph"
)

func proofNode(symbol, display string, mode callgraph.FunctionMode, body string) *callgraph.FunctionNode {
	return &callgraph.FunctionNode{
		Symbol:      symbol,
		DisplayName: display,
		Body:        body,
		HasBody:     body != "",
		Mode:        mode,
		Callers:     make(map[string]bool),
		Callees:     make(map[string]bool),
	}
}

func testGraph() *callgraph.Graph {
	g := callgraph.NewGraph("file:///proj")
	g.Nodes["a"] = proofNode("a", "checked_op", callgraph.ModeExec,
		"fn checked_op() {\n    proof {\n        lemma_b(x + 1);\n    }\n    work();\n}")
	g.Nodes["b"] = proofNode("b", "lemma_b", callgraph.ModeProof,
		"proof fn lemma_b(x: int) {\n    proof {\n        lemma_c();\n    }\n}")
	g.Nodes["c"] = proofNode("c", "lemma_c", callgraph.ModeProof,
		"proof fn lemma_c() {\n    proof { assert(true); }\n}")
	return g
}

func TestExtractProofBlocks(t *testing.T) {
	blocks := ExtractProofBlocks("fn f() {\n    proof {\n        lemma_x();\n    }\n    proof{ lemma_y(); }\n}")
	require.Len(t, blocks, 2)
	require.Contains(t, blocks[0], "lemma_x()")
	require.Contains(t, blocks[1], "lemma_y()")

	// Identifier suffixes and plain words do not open blocks.
	require.Empty(t, ExtractProofBlocks("fn my_proof() { x }"))
	require.Empty(t, ExtractProofBlocks("// the proof is trivial"))
	require.Empty(t, ExtractProofBlocks("fn f() { proof { unbalanced"))

	// Nested braces stay inside the block.
	nested := ExtractProofBlocks("proof {\n    if x {\n        lemma_z();\n    }\n}")
	require.Len(t, nested, 1)
	require.Contains(t, nested[0], "lemma_z()")
}

func TestExtractLemmaCalls(t *testing.T) {
	calls := ExtractLemmaCalls("lemma_a(x); helper(); lemma_b (y); lemma_a(z);")
	require.Equal(t, []string{"lemma_a", "lemma_b", "lemma_a"}, calls)
	require.Empty(t, ExtractLemmaCalls("let lemma_like = 3;"))
}

func TestExpandTransitiveChain(t *testing.T) {
	g := testGraph()
	e := NewExpander(g)

	m := e.Expand(g.Nodes["a"])
	require.NotNil(t, m)
	require.Equal(t, []string{"lemma_b"}, m.DirectLemmas)
	require.Equal(t, []string{"lemma_b", "lemma_c"}, m.TransitiveLemmas)
	require.Equal(t, 2, m.ProofDepth)

	// Transitive counts subsume the direct block's counts.
	require.GreaterOrEqual(t, m.TransitiveHalstead.Length, m.DirectHalstead.Length)
	require.Positive(t, m.DirectHalstead.Length)
	require.Positive(t, m.ProofOverhead)
}

func TestExpandCycleTerminates(t *testing.T) {
	g := callgraph.NewGraph("file:///proj")
	g.Nodes["b"] = proofNode("b", "lemma_b", callgraph.ModeProof,
		"proof fn lemma_b() {\n    proof {\n        lemma_b();\n    }\n}")

	m := NewExpander(g).Expand(g.Nodes["b"])
	require.NotNil(t, m)
	require.Equal(t, []string{"lemma_b"}, m.DirectLemmas)
	require.Equal(t, []string{"lemma_b"}, m.TransitiveLemmas)
}

func TestExpandDepthBound(t *testing.T) {
	g := testGraph()
	e := NewExpander(g)
	e.SetMaxDepth(1)

	m := e.Expand(g.Nodes["a"])
	require.NotNil(t, m)
	// lemma_b is reached at depth 1; lemma_c's blocks are cut off at the
	// bound but its call is still recorded from lemma_b's block text.
	require.Contains(t, m.TransitiveLemmas, "lemma_b")
	require.Equal(t, 2, m.ProofDepth)
}

func TestExpandNoProofBlocks(t *testing.T) {
	g := testGraph()
	plain := proofNode("p", "plain", callgraph.ModeExec, "fn plain() { work(); }")
	require.Nil(t, NewExpander(g).Expand(plain))
}

func TestExpandLemmaResolutionPrefersExactName(t *testing.T) {
	g := callgraph.NewGraph("file:///proj")
	g.Nodes["long"] = proofNode("long", "lemma_add_extended", callgraph.ModeProof,
		"proof fn lemma_add_extended() { proof { assert(x == 1); } }")
	g.Nodes["short"] = proofNode("short", "lemma_add", callgraph.ModeProof,
		"proof fn lemma_add() { proof { assert(y == 2); } }")
	g.Nodes["caller"] = proofNode("caller", "driver", callgraph.ModeExec,
		"fn driver() { proof { lemma_add(1); } }")

	m := NewExpander(g).Expand(g.Nodes["caller"])
	require.NotNil(t, m)
	require.Equal(t, 1, m.ProofDepth)
	require.Equal(t, []string{"lemma_add"}, m.TransitiveLemmas)
}
