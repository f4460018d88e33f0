// Package proof extracts proof blocks from function bodies and expands the
// lemma-call graph beneath them into transitive Halstead metrics.
package proof

import (
	"regexp"
	"sort"
	"strings"

	"github.com/specgraph-dev/specgraph/internal/callgraph"
	"github.com/specgraph-dev/specgraph/internal/halstead"
)

// DefaultMaxDepth bounds the transitive walk. Proof chains deeper than this
// are truncated rather than followed.
const DefaultMaxDepth = 10

var lemmaCall = regexp.MustCompile(`\b(lemma_[A-Za-z0-9_]+)\s*\(`)

// Metrics is the proof-complexity record for one function.
type Metrics struct {
	DirectHalstead     halstead.Metrics `json:"direct_proof_halstead"`
	TransitiveHalstead halstead.Metrics `json:"transitive_proof_halstead"`
	DirectLemmas       []string         `json:"direct_lemmas"`
	TransitiveLemmas   []string         `json:"transitive_lemmas"`
	ProofDepth         int              `json:"proof_depth"`
	ProofOverhead      float64          `json:"proof_overhead"`
}

// Expander walks the frozen graph. Not safe for concurrent use: it shares
// one clause analyzer across calls.
type Expander struct {
	graph    *callgraph.Graph
	analyzer *halstead.Analyzer
	maxDepth int

	// displayOrder caches the symbols sorted ascending so lemma resolution
	// is deterministic regardless of map iteration.
	displayOrder []string
}

// NewExpander returns an expander over g with the default depth bound.
func NewExpander(g *callgraph.Graph) *Expander {
	return &Expander{
		graph:        g,
		analyzer:     halstead.NewAnalyzer(),
		maxDepth:     DefaultMaxDepth,
		displayOrder: g.Symbols(),
	}
}

// SetMaxDepth overrides the transitive depth bound.
func (e *Expander) SetMaxDepth(depth int) {
	e.maxDepth = depth
}

// SetTables overrides the prose filter and rewrite rules of the underlying
// clause analyzer.
func (e *Expander) SetTables(prose halstead.ProseFilter, rewrite halstead.Rewriter) {
	e.analyzer.Prose = prose
	e.analyzer.Rewrite = rewrite
}

// Expand computes proof metrics for one node. Functions without proof blocks
// return nil.
func (e *Expander) Expand(node *callgraph.FunctionNode) *Metrics {
	blocks := ExtractProofBlocks(node.Body)
	if len(blocks) == 0 {
		return nil
	}

	direct := halstead.NewCounts()
	var directLemmas []string
	for _, block := range blocks {
		if counts, err := e.analyzer.CountBody(block); err == nil {
			direct.Merge(counts)
		}
		// Lexical order, duplicates preserved.
		directLemmas = append(directLemmas, ExtractLemmaCalls(block)...)
	}

	visited := make(map[string]bool)
	transitive, transitiveLemmas, depth := e.walk(node, visited, 0)

	sort.Strings(transitiveLemmas)
	transitiveLemmas = dedupeSorted(transitiveLemmas)

	directMetrics := direct.Metrics()
	transitiveMetrics := transitive.Metrics()

	overhead := 0.0
	if directMetrics.Effort > 0 {
		overhead = transitiveMetrics.Effort / directMetrics.Effort
	}

	return &Metrics{
		DirectHalstead:     directMetrics,
		TransitiveHalstead: transitiveMetrics,
		DirectLemmas:       directLemmas,
		TransitiveLemmas:   transitiveLemmas,
		ProofDepth:         depth,
		ProofOverhead:      overhead,
	}
}

// walk recursively aggregates proof-block counts. Guards: the visited set
// breaks cycles, the depth bound truncates chains, and only proof-mode or
// lemma_-named nodes are recursed into.
func (e *Expander) walk(node *callgraph.FunctionNode, visited map[string]bool, depth int) (*halstead.Counts, []string, int) {
	counts := halstead.NewCounts()
	if depth > e.maxDepth || visited[node.Symbol] {
		return counts, nil, depth
	}
	visited[node.Symbol] = true

	var lemmas []string
	maxObserved := depth

	for _, block := range ExtractProofBlocks(node.Body) {
		if blockCounts, err := e.analyzer.CountBody(block); err == nil {
			counts.Merge(blockCounts)
		}
		for _, lemma := range ExtractLemmaCalls(block) {
			lemmas = append(lemmas, lemma)
			callee := e.resolveLemma(lemma)
			if callee == nil {
				continue
			}
			calleeCounts, calleeLemmas, calleeDepth := e.walk(callee, visited, depth+1)
			counts.Merge(calleeCounts)
			lemmas = append(lemmas, calleeLemmas...)
			if calleeDepth > maxObserved {
				maxObserved = calleeDepth
			}
		}
	}
	return counts, lemmas, maxObserved
}

// resolveLemma finds the node a lemma name refers to: first an exact display
// name match, then a substring match, in ascending symbol order. Only
// proof-mode functions and lemma_-named nodes qualify.
func (e *Expander) resolveLemma(name string) *callgraph.FunctionNode {
	var fallback *callgraph.FunctionNode
	for _, symbol := range e.displayOrder {
		node := e.graph.Nodes[symbol]
		if node.Mode != callgraph.ModeProof && !strings.HasPrefix(node.DisplayName, "lemma_") {
			continue
		}
		if node.DisplayName == name {
			return node
		}
		if fallback == nil && strings.Contains(node.DisplayName, name) {
			fallback = node
		}
	}
	return fallback
}

// ExtractProofBlocks returns the contents of every `proof { ... }` block in
// body, in order. The scan is textual: `proof` followed by a balanced brace
// block, with a boundary check so identifiers like `my_proof` do not match.
func ExtractProofBlocks(body string) []string {
	var blocks []string
	for i := 0; i+5 <= len(body); i++ {
		if body[i:i+5] != "proof" {
			continue
		}
		if i > 0 && isIdentByte(body[i-1]) {
			continue
		}
		j := i + 5
		for j < len(body) && (body[j] == ' ' || body[j] == '\t' || body[j] == '\n') {
			j++
		}
		if j >= len(body) || body[j] != '{' {
			continue
		}
		if block, end, ok := balancedBlock(body, j); ok {
			blocks = append(blocks, block)
			i = end - 1
		}
	}
	return blocks
}

// balancedBlock returns the contents between the brace at open and its
// match, plus the offset just past the closing brace.
func balancedBlock(body string, open int) (string, int, bool) {
	depth := 0
	for j := open; j < len(body); j++ {
		switch body[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return body[open+1 : j], j + 1, true
			}
		}
	}
	return "", 0, false
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// ExtractLemmaCalls returns every lemma_-prefixed call in code, in lexical
// order with duplicates.
func ExtractLemmaCalls(code string) []string {
	var calls []string
	for _, match := range lemmaCall.FindAllStringSubmatch(code, -1) {
		calls = append(calls, match[1])
	}
	return calls
}

func dedupeSorted(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := values[:1]
	for _, v := range values[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
