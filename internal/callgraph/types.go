package callgraph

import (
	"sort"
	"strings"
)

// CallLocation says where inside its caller a call site appears.
type CallLocation string

const (
	// LocationPrecondition marks a call inside a requires clause.
	LocationPrecondition CallLocation = "precondition"
	// LocationPostcondition marks a call inside an ensures clause.
	LocationPostcondition CallLocation = "postcondition"
	// LocationInner marks a call in the executable body (or anywhere a
	// section classification was impossible).
	LocationInner CallLocation = "inner"
)

// FunctionMode is the Verus mode of a function.
type FunctionMode string

const (
	ModeExec  FunctionMode = "exec"
	ModeProof FunctionMode = "proof"
	ModeSpec  FunctionMode = "spec"
)

// CalleeOccurrence is one call site inside a function, classified by the
// section of the caller it falls in. Location is never empty after a build.
type CalleeOccurrence struct {
	Symbol   string
	Line     int
	Location CallLocation
}

// FunctionSections holds the line ranges of the spec and body regions of a
// function. All line numbers are 0-based; ranges are inclusive on both ends.
type FunctionSections struct {
	StartLine     int
	RequiresRange *LineRange
	EnsuresRange  *LineRange
	BodyStartLine *int
}

// LineRange is an inclusive [Start, End] pair of line numbers.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether line falls inside the range.
func (r *LineRange) Contains(line int) bool {
	return r != nil && line >= r.Start && line <= r.End
}

// FunctionNode is one function in the call graph. Nodes are created and
// mutated during Build only; afterwards the graph is read-only.
type FunctionNode struct {
	Symbol            string
	DisplayName       string
	FilePath          string
	RelativePath      string
	Range             []int
	Body              string
	HasBody           bool
	Mode              FunctionMode
	Sections          FunctionSections
	Callers           map[string]bool
	Callees           map[string]bool
	CalleeOccurrences []CalleeOccurrence
}

// External reports whether the node is a placeholder for a function defined
// outside the indexed project.
func (n *FunctionNode) External() bool {
	return strings.HasPrefix(n.FilePath, externalPrefix)
}

const externalPrefix = "external:"

// SortedCallees returns the callee symbols in ascending order.
func (n *FunctionNode) SortedCallees() []string {
	return sortedKeys(n.Callees)
}

// SortedCallers returns the caller symbols in ascending order.
func (n *FunctionNode) SortedCallers() []string {
	return sortedKeys(n.Callers)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Graph is the call graph: an arena of nodes keyed by symbol. Edges are sets
// of symbol ids, never node pointers, so cycles cost nothing.
type Graph struct {
	Nodes       map[string]*FunctionNode
	ProjectRoot string
}

// NewGraph creates an empty graph.
func NewGraph(projectRoot string) *Graph {
	return &Graph{
		Nodes:       make(map[string]*FunctionNode),
		ProjectRoot: projectRoot,
	}
}

// Symbols returns all node symbols in ascending order.
func (g *Graph) Symbols() []string {
	out := make([]string, 0, len(g.Nodes))
	for s := range g.Nodes {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
