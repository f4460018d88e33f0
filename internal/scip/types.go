package scip

// Index is the root of a SCIP JSON index file.
type Index struct {
	Metadata  Metadata   `json:"metadata"`
	Documents []Document `json:"documents"`
}

// Metadata describes the indexed project.
type Metadata struct {
	ToolInfo             ToolInfo `json:"tool_info"`
	ProjectRoot          string   `json:"project_root"`
	TextDocumentEncoding int      `json:"text_document_encoding"`
}

// ToolInfo identifies the tool that produced the index.
type ToolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Document is one source file in the index.
type Document struct {
	Language         string       `json:"language"`
	RelativePath     string       `json:"relative_path"`
	Occurrences      []Occurrence `json:"occurrences"`
	Symbols          []SymbolInfo `json:"symbols"`
	PositionEncoding int          `json:"position_encoding"`
}

// Occurrence is a single range of source text referring to a symbol.
// Range is [startLine, startCol, endLine, endCol], 0-based.
type Occurrence struct {
	Range       []int  `json:"range"`
	Symbol      string `json:"symbol"`
	SymbolRoles int    `json:"symbol_roles,omitempty"`
}

// roleDefinition is bit 0 of symbol_roles. Other bits are producer-specific
// and ignored; if a producer moves definitions, this is the one place to change.
const roleDefinition = 1

// IsDefinition reports whether the occurrence defines its symbol.
func (o Occurrence) IsDefinition() bool {
	return o.SymbolRoles&roleDefinition == roleDefinition
}

// StartLine returns the 0-based line the occurrence begins on.
func (o Occurrence) StartLine() int {
	if len(o.Range) == 0 {
		return 0
	}
	return o.Range[0]
}

// SymbolInfo is a symbol descriptor attached to a document.
type SymbolInfo struct {
	Symbol                 string                  `json:"symbol"`
	Kind                   int                     `json:"kind"`
	DisplayName            string                  `json:"display_name,omitempty"`
	Documentation          []string                `json:"documentation,omitempty"`
	SignatureDocumentation *SignatureDocumentation `json:"signature_documentation,omitempty"`
	EnclosingSymbol        string                  `json:"enclosing_symbol,omitempty"`
}

// SignatureDocumentation carries the rendered signature of a symbol.
type SignatureDocumentation struct {
	Language         string `json:"language"`
	Text             string `json:"text"`
	PositionEncoding int    `json:"position_encoding"`
}
