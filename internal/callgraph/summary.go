package callgraph

import "sort"

// Summary is an overview of a graph's shape, suitable for a quick terminal
// report or a JSON dump.
type Summary struct {
	TotalFunctions    int            `json:"total_functions"`
	LocalFunctions    int            `json:"local_functions"`
	ExternalFunctions int            `json:"external_functions"`
	EntryPoints       int            `json:"entry_points"`
	LeafFunctions     int            `json:"leaf_functions"`
	TotalCallEdges    int            `json:"total_call_edges"`
	ModeCounts        map[string]int `json:"mode_counts"`
	MostCalled        []RankedNode   `json:"most_called"`
	MostCalling       []RankedNode   `json:"most_calling"`
}

// RankedNode pairs a function with the count it is ranked by.
type RankedNode struct {
	Symbol      string `json:"symbol"`
	DisplayName string `json:"display_name"`
	Count       int    `json:"count"`
}

// Summarize computes graph statistics. Entry points are local functions with
// no callers; leaves are local functions with no callees. Rankings hold at
// most topN entries, ties broken by ascending symbol.
func (g *Graph) Summarize(topN int) Summary {
	s := Summary{ModeCounts: make(map[string]int)}
	var byCallers, byCallees []RankedNode

	for _, symbol := range g.Symbols() {
		node := g.Nodes[symbol]
		s.TotalFunctions++
		s.TotalCallEdges += len(node.Callees)
		if node.External() {
			s.ExternalFunctions++
			continue
		}
		s.LocalFunctions++
		s.ModeCounts[string(node.Mode)]++
		if len(node.Callers) == 0 {
			s.EntryPoints++
		}
		if len(node.Callees) == 0 {
			s.LeafFunctions++
		}
		byCallers = append(byCallers, RankedNode{Symbol: symbol, DisplayName: node.DisplayName, Count: len(node.Callers)})
		byCallees = append(byCallees, RankedNode{Symbol: symbol, DisplayName: node.DisplayName, Count: len(node.Callees)})
	}

	s.MostCalled = topRanked(byCallers, topN)
	s.MostCalling = topRanked(byCallees, topN)
	return s
}

func topRanked(nodes []RankedNode, topN int) []RankedNode {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Count != nodes[j].Count {
			return nodes[i].Count > nodes[j].Count
		}
		return nodes[i].Symbol < nodes[j].Symbol
	})
	if topN >= 0 && len(nodes) > topN {
		nodes = nodes[:topN]
	}
	return nodes
}
