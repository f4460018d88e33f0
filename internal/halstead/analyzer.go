package halstead

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// ErrProse marks a clause skipped by the prose filter.
var ErrProse = errors.New("prose clause")

// ErrParseFailure marks a non-prose clause the grammar rejected.
var ErrParseFailure = errors.New("parse failure")

// Analyzer computes Halstead counts for verification clauses and proof-block
// bodies. Not safe for concurrent use: the underlying parser is stateful.
type Analyzer struct {
	parser  *sitter.Parser
	Prose   ProseFilter
	Rewrite Rewriter
}

// NewAnalyzer returns an analyzer with the default prose and rewrite tables.
func NewAnalyzer() *Analyzer {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &Analyzer{parser: p}
}

// CountClause analyses one requires/ensures clause. Empty clauses yield empty
// counts; prose is rejected with ErrProse; anything else that fails to parse
// as an expression is an ErrParseFailure.
func (a *Analyzer) CountClause(clause string) (*Counts, error) {
	if strings.TrimSpace(clause) == "" {
		return NewCounts(), nil
	}
	if a.Prose.IsProse(clause) {
		return nil, fmt.Errorf("%w: %q", ErrProse, truncate(clause))
	}
	preprocessed := a.Rewrite.Preprocess(clause)
	if preprocessed == "" {
		return nil, fmt.Errorf("%w: not an expression: %q", ErrParseFailure, truncate(clause))
	}
	return a.count(preprocessed, true)
}

// CountBody analyses a statement sequence (a proof-block body) best-effort:
// whatever the grammar recovers is counted, parse errors do not abort.
func (a *Analyzer) CountBody(body string) (*Counts, error) {
	preprocessed := a.Rewrite.Preprocess(body)
	if preprocessed == "" {
		return NewCounts(), nil
	}
	return a.count(preprocessed, false)
}

// count wraps the fragment in a function so the grammar sees a complete
// compilation unit, then walks the wrapper's block.
func (a *Analyzer) count(fragment string, strict bool) (*Counts, error) {
	source := []byte("fn __fragment() {\n" + fragment + "\n}")
	tree, err := a.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if strict && root.HasError() {
		return nil, fmt.Errorf("%w: %q", ErrParseFailure, truncate(fragment))
	}

	counts := NewCounts()
	fn := root.NamedChild(0)
	if fn == nil {
		return nil, fmt.Errorf("%w: empty parse tree", ErrParseFailure)
	}
	block := fn.ChildByFieldName("body")
	if block == nil {
		return nil, fmt.Errorf("%w: %q", ErrParseFailure, truncate(fragment))
	}
	countNode(block, source, counts)
	return counts, nil
}

// countNode classifies one CST node and recurses per the counting table:
// operators are binary/unary tokens, call markers, method and field names,
// indexing, grouping, casts and references; operands are paths, field names
// and literals. Everything else falls through to plain traversal.
func countNode(node *sitter.Node, source []byte, counts *Counts) {
	switch node.Type() {
	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			counts.AddOperator(op.Content(source))
		}
		countField(node, "left", source, counts)
		countField(node, "right", source, counts)

	case "unary_expression":
		if node.ChildCount() > 0 {
			counts.AddOperator(node.Child(0).Content(source))
		}
		if operand := node.NamedChild(0); operand != nil {
			countNode(operand, source, counts)
		}

	case "reference_expression":
		counts.AddOperator("&")
		countField(node, "value", source, counts)

	case "call_expression":
		fn := node.ChildByFieldName("function")
		for fn != nil && fn.Type() == "generic_function" {
			fn = fn.ChildByFieldName("function")
		}
		if fn != nil && fn.Type() == "field_expression" {
			// x.m(...) counts the method name itself as the operator.
			if method := fn.ChildByFieldName("field"); method != nil {
				counts.AddOperator(method.Content(source))
			}
			countField(fn, "value", source, counts)
		} else {
			counts.AddOperator("call")
			if fn != nil {
				countNode(fn, source, counts)
			}
		}
		if args := node.ChildByFieldName("arguments"); args != nil {
			countChildren(args, source, counts)
		}

	case "field_expression":
		counts.AddOperator(".")
		if field := node.ChildByFieldName("field"); field != nil {
			counts.AddOperand(field.Content(source))
		}
		countField(node, "value", source, counts)

	case "index_expression":
		counts.AddOperator("[]")
		countChildren(node, source, counts)

	case "parenthesized_expression":
		counts.AddOperator("()")
		countChildren(node, source, counts)

	case "type_cast_expression":
		counts.AddOperator("as")
		countField(node, "value", source, counts)

	case "closure_expression":
		// Quantifier binders were rewritten into closures; only the
		// predicate body contributes tokens.
		countField(node, "body", source, counts)

	case "identifier", "scoped_identifier", "self":
		counts.AddOperand(node.Content(source))

	case "integer_literal", "float_literal", "string_literal",
		"raw_string_literal", "char_literal", "boolean_literal",
		"byte_literal", "byte_string_literal":
		counts.AddOperand(node.Content(source))

	default:
		countChildren(node, source, counts)
	}
}

func countField(node *sitter.Node, field string, source []byte, counts *Counts) {
	if child := node.ChildByFieldName(field); child != nil {
		countNode(child, source, counts)
	}
}

func countChildren(node *sitter.Node, source []byte, counts *Counts) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		countNode(node.NamedChild(i), source, counts)
	}
}

func truncate(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 60 {
		return text[:60] + "..."
	}
	return text
}
