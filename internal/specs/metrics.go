package specs

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/specgraph-dev/specgraph/internal/halstead"
)

// ClauseMetrics is one scored clause. Halstead is nil when the clause was
// filtered as prose or failed to parse, with ParseError saying which.
type ClauseMetrics struct {
	Text       string            `json:"text"`
	Halstead   *halstead.Metrics `json:"halstead,omitempty"`
	ParseError string            `json:"parse_error,omitempty"`
}

// FunctionMetrics is the per-function specification metric record.
type FunctionMetrics struct {
	RequiresCount   int             `json:"requires_count"`
	RequiresLengths []int           `json:"requires_lengths,omitempty"`
	RequiresSpecs   []ClauseMetrics `json:"requires_specs,omitempty"`
	EnsuresCount    int             `json:"ensures_count"`
	EnsuresLengths  []int           `json:"ensures_lengths,omitempty"`
	EnsuresSpecs    []ClauseMetrics `json:"ensures_specs,omitempty"`
	DecreasesCount  int             `json:"decreases_count"`
	DecreasesSpecs  []ClauseMetrics `json:"decreases_specs,omitempty"`
	BodyLength      int             `json:"body_length"`
	Operators       map[string]int  `json:"operators,omitempty"`
	Complexity
}

// TotalSpecEffort sums the effort of every scored requires and ensures clause.
func (m FunctionMetrics) TotalSpecEffort() float64 {
	total := 0.0
	for _, clause := range m.RequiresSpecs {
		if clause.Halstead != nil {
			total += clause.Halstead.Effort
		}
	}
	for _, clause := range m.EnsuresSpecs {
		if clause.Halstead != nil {
			total += clause.Halstead.Effort
		}
	}
	return total
}

// Computer scores function bodies. Not safe for concurrent use.
type Computer struct {
	analyzer *halstead.Analyzer
	parser   *sitter.Parser
}

// NewComputer returns a Computer with default prose and rewrite tables.
func NewComputer() *Computer {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &Computer{analyzer: halstead.NewAnalyzer(), parser: p}
}

// SetTables overrides the prose filter and rewrite rules.
func (c *Computer) SetTables(prose halstead.ProseFilter, rewrite halstead.Rewriter) {
	c.analyzer.Prose = prose
	c.analyzer.Rewrite = rewrite
}

// Compute extracts and scores the specification clauses of one function body
// and measures its executable region.
func (c *Computer) Compute(body string) FunctionMetrics {
	var m FunctionMetrics

	requiresBlock := ExtractClause(body, "requires")
	requiresConds := c.filterProse(SplitConditions(requiresBlock))
	m.RequiresCount = len(requiresConds)
	m.RequiresLengths = clauseLengths(requiresConds)
	m.RequiresSpecs = c.scoreClauses(requiresConds)

	ensuresBlock := ExtractClause(body, "ensures")
	ensuresConds := c.filterProse(SplitConditions(ensuresBlock))
	m.EnsuresCount = len(ensuresConds)
	m.EnsuresLengths = clauseLengths(ensuresConds)
	m.EnsuresSpecs = c.scoreClauses(ensuresConds)

	// Decreases expressions are code by construction, no prose filter.
	decreasesConds := SplitConditions(ExtractClause(body, "decreases"))
	m.DecreasesCount = len(decreasesConds)
	m.DecreasesSpecs = c.scoreClauses(decreasesConds)

	executable := body[FindBodyStart(body):]
	m.BodyLength = len(executable)
	m.Operators = CountOperators(executable)
	m.Complexity = c.measureComplexity(executable)

	return m
}

func (c *Computer) filterProse(conds []string) []string {
	var kept []string
	for _, cond := range conds {
		if !c.analyzer.Prose.IsProse(cond) {
			kept = append(kept, cond)
		}
	}
	return kept
}

func (c *Computer) scoreClauses(conds []string) []ClauseMetrics {
	var out []ClauseMetrics
	for _, cond := range conds {
		counts, err := c.analyzer.CountClause(cond)
		if err != nil {
			out = append(out, ClauseMetrics{Text: cond, ParseError: err.Error()})
			continue
		}
		metrics := counts.Metrics()
		out = append(out, ClauseMetrics{Text: cond, Halstead: &metrics})
	}
	return out
}

// measureComplexity parses the executable region best-effort; whatever the
// grammar recovers contributes decision points. A region that is pure
// whitespace scores the floor of 1/0.
func (c *Computer) measureComplexity(executable string) Complexity {
	complexity := Complexity{Cyclomatic: 1}
	if strings.TrimSpace(executable) == "" {
		return complexity
	}
	source := []byte("fn __region() " + executable)
	tree, err := c.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return complexity
	}
	defer tree.Close()
	walkComplexity(tree.RootNode(), source, 0, &complexity)
	return complexity
}

func clauseLengths(conds []string) []int {
	if len(conds) == 0 {
		return nil
	}
	lengths := make([]int, len(conds))
	for i, cond := range conds {
		lengths[i] = len(strings.TrimSpace(cond))
	}
	return lengths
}

// operatorTokens is ordered longest first so `<=` never double-counts `<`.
var operatorTokens = []string{
	"<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+", "-", "*", "/", "%",
	"&", "|", "^",
	"<", ">",
	"!",
}

// CountOperators tallies operator tokens in code with strings and comments
// removed. The scan is textual: it needs no parse and tolerates any input.
func CountOperators(code string) map[string]int {
	cleaned := stripStrings(RemoveComments(code))
	counts := make(map[string]int)

	i := 0
	for i < len(cleaned) {
		matched := false
		for _, op := range operatorTokens {
			if strings.HasPrefix(cleaned[i:], op) {
				counts[op]++
				i += len(op)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	if len(counts) == 0 {
		return nil
	}
	return counts
}

func stripStrings(code string) string {
	var b strings.Builder
	inString := false
	escaped := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString:
			b.WriteByte(c)
		}
	}
	return b.String()
}
