package callgraph

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/specgraph-dev/specgraph/internal/scip"
)

// defaultFunctionKinds are the SCIP kind values that denote callable
// entities: 6 constructor, 12 function, 17 macro, 80 method.
var defaultFunctionKinds = []int{6, 12, 17, 80}

// BuildOptions tune the graph build. The zero value is ready to use.
type BuildOptions struct {
	// FunctionKinds overrides the set of function-like SCIP kinds.
	FunctionKinds []int
	// ReadFile overrides source-file access (tests use an in-memory map).
	ReadFile func(path string) ([]byte, error)
	// Warnf receives one-line diagnostics for degraded nodes. Defaults to
	// stderr. No per-node failure aborts the build.
	Warnf func(format string, args ...any)
}

func (o *BuildOptions) fill() {
	if len(o.FunctionKinds) == 0 {
		o.FunctionKinds = defaultFunctionKinds
	}
	if o.ReadFile == nil {
		o.ReadFile = os.ReadFile
	}
	if o.Warnf == nil {
		o.Warnf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
}

// Build constructs the call graph from an index in four passes:
//
//  1. resolve where every symbol is defined,
//  2. allocate nodes for local function-like symbols (plus placeholders for
//     external ones),
//  3. walk occurrences in source order linking call edges, and
//  4. extract bodies, segment them, and classify every call site.
//
// The returned graph is frozen: nothing mutates it afterwards.
func Build(idx *scip.Index, opts BuildOptions) *Graph {
	opts.fill()
	g := NewGraph(idx.Metadata.ProjectRoot)

	functionKind := make(map[int]bool, len(opts.FunctionKinds))
	for _, k := range opts.FunctionKinds {
		functionKind[k] = true
	}

	// Pass 1: where is each symbol defined?
	type defLocation struct {
		absPath string
		relPath string
	}
	definitions := make(map[string]defLocation)
	for _, doc := range idx.Documents {
		relPath := strings.TrimPrefix(doc.RelativePath, "/")
		absPath := idx.Metadata.ProjectRoot + "/" + relPath
		for _, occ := range doc.Occurrences {
			if occ.IsDefinition() {
				definitions[occ.Symbol] = defLocation{absPath: absPath, relPath: relPath}
			}
		}
	}

	// Pass 2: allocate nodes for local functions. Function-like symbols with
	// no recorded definition are re-exports or external references.
	localFunctions := make(map[string]bool)
	for _, doc := range idx.Documents {
		for _, sym := range doc.Symbols {
			if !functionKind[sym.Kind] {
				continue
			}
			def, ok := definitions[sym.Symbol]
			if !ok {
				continue
			}
			localFunctions[sym.Symbol] = true
			displayName := sym.DisplayName
			if displayName == "" {
				displayName = "unknown"
			}
			g.Nodes[sym.Symbol] = &FunctionNode{
				Symbol:       sym.Symbol,
				DisplayName:  displayName,
				FilePath:     def.absPath,
				RelativePath: def.relPath,
				Mode:         ModeExec,
				Callers:      make(map[string]bool),
				Callees:      make(map[string]bool),
			}
		}
	}

	// Pass 2.5: placeholder nodes for external functions. A symbol counts as
	// external when it is declared function-like but has no local definition,
	// or when an occurrence symbol is shaped like a call path.
	externalFunctions := make(map[string]bool)
	externalNames := make(map[string]string)
	for _, doc := range idx.Documents {
		for _, sym := range doc.Symbols {
			if functionKind[sym.Kind] && !localFunctions[sym.Symbol] {
				externalFunctions[sym.Symbol] = true
				if sym.DisplayName != "" {
					externalNames[sym.Symbol] = sym.DisplayName
				}
			}
		}
	}
	for _, doc := range idx.Documents {
		for _, occ := range doc.Occurrences {
			if occ.IsDefinition() || localFunctions[occ.Symbol] || externalFunctions[occ.Symbol] {
				continue
			}
			if looksLikeFunctionSymbol(occ.Symbol) {
				externalFunctions[occ.Symbol] = true
			}
		}
	}
	for symbol := range externalFunctions {
		displayName := externalNames[symbol]
		if displayName == "" {
			displayName = scip.DisplayNameFromSymbol(symbol)
		}
		fullPath, _, _ := scip.PathInfoFromSymbol(symbol)
		g.Nodes[symbol] = &FunctionNode{
			Symbol:       symbol,
			DisplayName:  displayName,
			FilePath:     externalPrefix + symbol,
			RelativePath: fullPath,
			Mode:         ModeExec,
			Callers:      make(map[string]bool),
			Callees:      make(map[string]bool),
		}
	}

	// Pass 3: walk occurrences in (line, col) order, tracking the current
	// function and linking every reference to a known function as an edge.
	for _, doc := range idx.Documents {
		ordered := make([]scip.Occurrence, len(doc.Occurrences))
		copy(ordered, doc.Occurrences)
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i].Range, ordered[j].Range
			al, ac := rangeStart(a)
			bl, bc := rangeStart(b)
			if al != bl {
				return al < bl
			}
			return ac < bc
		})

		currentFunction := ""
		for _, occ := range ordered {
			if occ.IsDefinition() && localFunctions[occ.Symbol] {
				currentFunction = occ.Symbol
				g.Nodes[occ.Symbol].Range = occ.Range
			}
			if occ.IsDefinition() || currentFunction == "" {
				continue
			}
			callee, known := g.Nodes[occ.Symbol]
			if !known || occ.Symbol == currentFunction {
				continue
			}
			caller := g.Nodes[currentFunction]
			caller.Callees[occ.Symbol] = true
			caller.CalleeOccurrences = append(caller.CalleeOccurrences, CalleeOccurrence{
				Symbol: occ.Symbol,
				Line:   occ.StartLine(),
			})
			callee.Callers[currentFunction] = true
		}
	}

	// Pass 4: recover bodies, segment them and classify call sites. An
	// unreadable file or unbalanced body degrades the node: edges stay,
	// occurrences default to inner.
	for _, node := range g.Nodes {
		if len(node.Range) == 0 || node.External() {
			continue
		}
		path := strings.TrimPrefix(node.FilePath, "file://")
		source, err := opts.ReadFile(path)
		if err != nil {
			opts.Warnf("callgraph: %s: cannot read %s: %v", node.DisplayName, path, err)
			continue
		}
		body, err := ExtractBody(string(source), node.Range[0])
		if err != nil {
			opts.Warnf("callgraph: %s: %v", node.DisplayName, err)
			continue
		}
		node.Body = body
		node.HasBody = true
		node.Mode = DetectMode(body)
		node.Sections = ParseSections(body, node.Range[0])
		for i := range node.CalleeOccurrences {
			node.CalleeOccurrences[i].Location = ClassifyCallLocation(node.CalleeOccurrences[i].Line, node.Sections)
		}
	}

	// Any occurrence still unclassified (missing body, external caller)
	// defaults to inner.
	for _, node := range g.Nodes {
		for i := range node.CalleeOccurrences {
			if node.CalleeOccurrences[i].Location == "" {
				node.CalleeOccurrences[i].Location = LocationInner
			}
		}
	}

	return g
}

// looksLikeFunctionSymbol is the heuristic for call-shaped occurrence
// symbols: a '()' or trailing '.' marker plus a path separator, excluding
// nested-call forms.
func looksLikeFunctionSymbol(symbol string) bool {
	if !strings.Contains(symbol, "()") && !strings.HasSuffix(symbol, ".") {
		return false
	}
	if !strings.Contains(symbol, "#") && !strings.Contains(symbol, "/") {
		return false
	}
	return !strings.Contains(symbol, "().(")
}

func rangeStart(r []int) (line, col int) {
	if len(r) > 0 {
		line = r[0]
	}
	if len(r) > 1 {
		col = r[1]
	}
	return line, col
}
