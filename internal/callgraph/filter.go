package callgraph

import "sort"

// Subgraph returns the portion of the graph reachable from the given entry
// points by following callee edges, up to maxDepth hops (0 means the entry
// nodes alone; negative means unlimited). Entry points are matched by symbol
// or by display name. Edges in the result are restricted to the kept node
// set so the subgraph satisfies the same symmetry as the full graph.
func (g *Graph) Subgraph(entries []string, maxDepth int) *Graph {
	keep := make(map[string]bool)
	frontier := make([]string, 0, len(entries))
	for _, entry := range entries {
		for _, symbol := range g.resolveEntry(entry) {
			if !keep[symbol] {
				keep[symbol] = true
				frontier = append(frontier, symbol)
			}
		}
	}

	depth := 0
	for len(frontier) > 0 && (maxDepth < 0 || depth < maxDepth) {
		var next []string
		for _, symbol := range frontier {
			for callee := range g.Nodes[symbol].Callees {
				if !keep[callee] {
					keep[callee] = true
					next = append(next, callee)
				}
			}
		}
		frontier = next
		depth++
	}

	sub := NewGraph(g.ProjectRoot)
	for symbol := range keep {
		src := g.Nodes[symbol]
		node := &FunctionNode{
			Symbol:       src.Symbol,
			DisplayName:  src.DisplayName,
			FilePath:     src.FilePath,
			RelativePath: src.RelativePath,
			Range:        src.Range,
			Body:         src.Body,
			HasBody:      src.HasBody,
			Mode:         src.Mode,
			Sections:     src.Sections,
			Callers:      make(map[string]bool),
			Callees:      make(map[string]bool),
		}
		for callee := range src.Callees {
			if keep[callee] {
				node.Callees[callee] = true
			}
		}
		for caller := range src.Callers {
			if keep[caller] {
				node.Callers[caller] = true
			}
		}
		for _, occ := range src.CalleeOccurrences {
			if keep[occ.Symbol] {
				node.CalleeOccurrences = append(node.CalleeOccurrences, occ)
			}
		}
		sub.Nodes[symbol] = node
	}
	return sub
}

// resolveEntry maps an entry to node symbols. An exact symbol match wins;
// otherwise every node whose display name equals the entry is used.
func (g *Graph) resolveEntry(entry string) []string {
	if _, ok := g.Nodes[entry]; ok {
		return []string{entry}
	}
	var matches []string
	for symbol, node := range g.Nodes {
		if node.DisplayName == entry {
			matches = append(matches, symbol)
		}
	}
	sort.Strings(matches)
	return matches
}
