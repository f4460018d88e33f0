package halstead

import (
	"regexp"
	"strings"
)

// Replacement is one literal token substitution applied during preprocessing.
type Replacement struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// DefaultReplacements normalise verification-only operators into plain Rust
// tokens the grammar accepts. Order matters: `<==>` must rewrite before `==>`
// or the leftover `<` corrupts the expression.
var DefaultReplacements = []Replacement{
	{From: "<==>", To: "=="},
	{From: "=~=", To: "=="},
	{From: "==>", To: "||"},
	{From: "&&&", To: "&&"},
	{From: "|||", To: "||"},
}

var (
	triggerAttr   = regexp.MustCompile(`#!?\[trigger[^\]]*\]`)
	binderKeyword = regexp.MustCompile(`\b(forall|exists|choose)\s*\|`)
)

// Rewriter turns a verification clause into an expression tree-sitter's Rust
// grammar can parse. The zero value applies the default replacements.
type Rewriter struct {
	Replacements []Replacement
}

func (r Rewriter) replacements() []Replacement {
	if r.Replacements != nil {
		return r.Replacements
	}
	return DefaultReplacements
}

// Preprocess rewrites a clause. It strips line comments and trigger
// annotations, drops the ghost view operator, maps extended operators to
// their plain counterparts, turns quantifier binders into closures, and
// expands depth-0 chained comparisons. An empty result (or a fragment cut
// off at an opening paren) means the clause is not an expression; callers
// treat that as unparseable.
func (r Rewriter) Preprocess(text string) string {
	var kept []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if pos := strings.Index(line, "//"); pos != -1 {
			line = line[:pos]
		}
		kept = append(kept, line)
	}
	result := strings.TrimSpace(strings.Join(kept, "\n"))

	result = triggerAttr.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, "@", "")
	for _, rep := range r.replacements() {
		result = strings.ReplaceAll(result, rep.From, rep.To)
	}
	result = binderKeyword.ReplaceAllString(result, "|")
	result = expandChainedComparisons(result)

	result = strings.TrimSpace(result)
	if result == "" || strings.HasSuffix(result, "(") {
		return ""
	}
	return result
}

// expandChainedComparisons rewrites `0 <= i < 5` as `((0 <= i) && (i < 5))`.
// Only depth-0 chains are expanded; segments are delimited by depth-0 logical
// connectives so `a < b && c < d` stays untouched.
func expandChainedComparisons(text string) string {
	segments, separators := splitLogical(text)
	if len(segments) == 1 && len(separators) == 0 {
		return expandSegment(text)
	}
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(expandSegment(seg))
		if i < len(separators) {
			b.WriteString(separators[i])
		}
	}
	return b.String()
}

// splitLogical splits at depth-0 && and || while keeping the separators.
func splitLogical(text string) (segments, separators []string) {
	depth := 0
	last := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '&', '|':
			if depth == 0 && text[i+1] == text[i] {
				segments = append(segments, text[last:i])
				separators = append(separators, text[i:i+2])
				i++
				last = i + 1
			}
		}
	}
	segments = append(segments, text[last:])
	return segments, separators
}

// expandSegment expands one connective-free segment when it holds two or
// more depth-0 comparisons.
func expandSegment(seg string) string {
	type cmp struct {
		pos int
		op  string
	}
	var comparisons []cmp
	depth := 0
	for i := 0; i < len(seg); i++ {
		switch seg[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '<', '>':
			if depth != 0 {
				continue
			}
			// Skip shifts, arrows and the tails of other operators.
			if i > 0 && (seg[i-1] == '<' || seg[i-1] == '>' || seg[i-1] == '-' || seg[i-1] == '=') {
				continue
			}
			if i+1 < len(seg) && (seg[i+1] == '<' || seg[i+1] == '>') {
				continue
			}
			op := string(seg[i])
			if i+1 < len(seg) && seg[i+1] == '=' {
				op += "="
			}
			comparisons = append(comparisons, cmp{pos: i, op: op})
		}
	}
	if len(comparisons) < 2 {
		return seg
	}

	// n comparisons split the segment into n+1 operands.
	operands := make([]string, 0, len(comparisons)+1)
	start := 0
	for _, c := range comparisons {
		operands = append(operands, strings.TrimSpace(seg[start:c.pos]))
		start = c.pos + len(c.op)
	}
	operands = append(operands, strings.TrimSpace(seg[start:]))

	// Empty operands mean the angle brackets were generics, not a chain.
	for _, operand := range operands {
		if operand == "" {
			return seg
		}
	}

	parts := make([]string, len(comparisons))
	for i, c := range comparisons {
		parts[i] = "(" + operands[i] + " " + c.op + " " + operands[i+1] + ")"
	}
	return "(" + strings.Join(parts, " && ") + ")"
}
