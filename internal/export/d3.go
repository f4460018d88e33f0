// Package export renders a call graph into its JSON artifact shapes: the
// D3-style graph document for visualisation and the flat atom array.
package export

import (
	"path"
	"strings"
	"time"

	"github.com/specgraph-dev/specgraph/internal/callgraph"
)

// highlightMarkers tag nodes belonging to the verified core under study so
// the visualiser can tint them. Matched against symbol and relative path.
var highlightMarkers = []string{
	"libsignal-protocol",
	"libsignal-core",
	"libsignal-net",
	"libsignal-keytrans",
	"libsignal-svrb",
	"libsignal",
	"zkcredential",
	"usernames",
}

// GraphNode is one function in the exported graph document.
type GraphNode struct {
	ID           string                 `json:"id"`
	DisplayName  string                 `json:"display_name"`
	Symbol       string                 `json:"symbol"`
	FullPath     string                 `json:"full_path"`
	RelativePath string                 `json:"relative_path"`
	FileName     string                 `json:"file_name"`
	ParentFolder string                 `json:"parent_folder"`
	StartLine    *int                   `json:"start_line"`
	EndLine      *int                   `json:"end_line"`
	IsLibsignal  bool                   `json:"is_libsignal"`
	Dependencies []string               `json:"dependencies"`
	Dependents   []string               `json:"dependents"`
	Mode         callgraph.FunctionMode `json:"mode"`
}

// GraphLink is one deduplicated call edge with its section classification.
type GraphLink struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	LinkType string `json:"link_type"`
}

// GraphMetadata describes the exported document.
type GraphMetadata struct {
	TotalNodes  int    `json:"total_nodes"`
	TotalEdges  int    `json:"total_edges"`
	ProjectRoot string `json:"project_root"`
	GeneratedAt string `json:"generated_at"`
	GithubURL   string `json:"github_url,omitempty"`
}

// GraphDoc is the complete graph export.
type GraphDoc struct {
	Nodes    []GraphNode   `json:"nodes"`
	Links    []GraphLink   `json:"links"`
	Metadata GraphMetadata `json:"metadata"`
}

// BuildGraph renders g. Nodes and links are emitted in ascending symbol
// order and links are deduplicated by (source, target, type), so the same
// graph always serialises identically apart from the timestamp.
func BuildGraph(g *callgraph.Graph, now time.Time) GraphDoc {
	symbols := g.Symbols()

	nodes := make([]GraphNode, 0, len(symbols))
	for _, symbol := range symbols {
		node := g.Nodes[symbol]
		fileName, parentFolder := locate(node)
		startLine, endLine := lineSpan(node.Range)

		nodes = append(nodes, GraphNode{
			ID:           node.Symbol,
			DisplayName:  node.DisplayName,
			Symbol:       node.Symbol,
			FullPath:     node.FilePath,
			RelativePath: node.RelativePath,
			FileName:     fileName,
			ParentFolder: parentFolder,
			StartLine:    startLine,
			EndLine:      endLine,
			IsLibsignal:  highlighted(node),
			Dependencies: node.SortedCallees(),
			Dependents:   node.SortedCallers(),
			Mode:         node.Mode,
		})
	}

	seen := make(map[GraphLink]bool)
	var links []GraphLink
	for _, symbol := range symbols {
		node := g.Nodes[symbol]
		for _, occ := range node.CalleeOccurrences {
			if _, ok := g.Nodes[occ.Symbol]; !ok {
				continue
			}
			linkType := string(occ.Location)
			if linkType == "" {
				linkType = string(callgraph.LocationInner)
			}
			link := GraphLink{Source: node.Symbol, Target: occ.Symbol, LinkType: linkType}
			if !seen[link] {
				seen[link] = true
				links = append(links, link)
			}
		}
	}

	return GraphDoc{
		Nodes: nodes,
		Links: links,
		Metadata: GraphMetadata{
			TotalNodes:  len(nodes),
			TotalEdges:  len(links),
			ProjectRoot: g.ProjectRoot,
			GeneratedAt: now.UTC().Format(time.RFC3339),
		},
	}
}

// locate derives file name and parent folder for a node. External
// placeholders report the crate name from their symbol on both.
func locate(node *callgraph.FunctionNode) (fileName, parentFolder string) {
	if node.External() {
		symbol := strings.TrimPrefix(node.FilePath, "external:")
		fields := strings.Fields(symbol)
		crate := "external"
		if len(fields) > 2 {
			crate = fields[2]
		}
		return crate, crate
	}
	parent := "unknown"
	if dir := path.Dir(node.FilePath); dir != "." {
		parent = path.Base(dir)
	}
	return path.Base(node.FilePath), parent
}

// lineSpan converts a 0-based SCIP range into 1-based start/end lines.
func lineSpan(r []int) (start, end *int) {
	if len(r) == 0 {
		return nil, nil
	}
	s := r[0] + 1
	e := s
	if len(r) >= 4 {
		e = r[2] + 1
	}
	return &s, &e
}

func highlighted(node *callgraph.FunctionNode) bool {
	for _, marker := range highlightMarkers {
		if strings.Contains(node.Symbol, marker) || strings.Contains(node.RelativePath, marker) {
			return true
		}
	}
	return false
}
