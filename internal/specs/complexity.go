package specs

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Complexity pairs the two classic control-flow scores for an executable
// region. Cyclomatic counts independent paths; cognitive additionally
// penalises nesting.
type Complexity struct {
	Cyclomatic int `json:"cyclomatic_complexity"`
	Cognitive  int `json:"cognitive_complexity"`
}

// walkComplexity accumulates decision points during a single CST traversal.
func walkComplexity(node *sitter.Node, source []byte, nesting int, c *Complexity) {
	childNesting := nesting

	switch node.Type() {
	case "if_expression", "while_expression", "loop_expression", "for_expression":
		c.Cyclomatic++
		c.Cognitive += 1 + nesting
		childNesting++

	case "match_expression":
		c.Cognitive += 1 + nesting
		childNesting++

	case "match_arm":
		c.Cyclomatic++

	case "else_clause":
		c.Cognitive++

	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			switch op.Content(source) {
			case "&&", "||":
				c.Cyclomatic++
				c.Cognitive++
			}
		}

	case "closure_expression":
		childNesting++
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		walkComplexity(node.NamedChild(i), source, childNesting, c)
	}
}
