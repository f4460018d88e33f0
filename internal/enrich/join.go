// Package enrich joins metric records onto a user-supplied tracking list.
package enrich

import (
	"errors"
	"sort"
	"strings"

	"github.com/specgraph-dev/specgraph/internal/proof"
	"github.com/specgraph-dev/specgraph/internal/specs"
)

// ErrLookupMiss marks a tracking-list row no strategy could resolve.
var ErrLookupMiss = errors.New("no record matched tracking row")

// Record is one function's joinable metric payload.
type Record struct {
	FullPath     string
	DisplayName  string
	RelativePath string
	Metrics      specs.FunctionMetrics
	Proof        *proof.Metrics
}

// traitImplMethods maps method names to the operator trait that declares
// them. A tracking list naming `Add::add` usually means the impl on the
// receiver type, not the trait itself.
var traitImplMethods = map[string]string{
	"add":        "Add",
	"add_assign": "AddAssign",
	"sub":        "Sub",
	"sub_assign": "SubAssign",
	"mul":        "Mul",
	"mul_assign": "MulAssign",
	"neg":        "Neg",
	"not":        "Not",
	"index":      "Index",
	"eq":         "PartialEq",
	"cmp":        "Ord",
}

// Index resolves (function, module) pairs against the record set.
type Index struct {
	records    []*Record
	byFullPath map[string][]*Record
	byDisplay  map[string][]*Record
}

// NewIndex builds the lookup structures. Records are held in ascending
// full-path order so every resolution is deterministic.
func NewIndex(records []Record) *Index {
	ix := &Index{
		byFullPath: make(map[string][]*Record),
		byDisplay:  make(map[string][]*Record),
	}
	for i := range records {
		ix.records = append(ix.records, &records[i])
	}
	sort.Slice(ix.records, func(i, j int) bool {
		return ix.records[i].FullPath < ix.records[j].FullPath
	})
	for _, r := range ix.records {
		ix.byFullPath[r.FullPath] = append(ix.byFullPath[r.FullPath], r)
		ix.byDisplay[r.DisplayName] = append(ix.byDisplay[r.DisplayName], r)
	}
	return ix
}

// Match is a resolved row. Candidates says how many records the winning
// strategy produced; anything above 1 is an ambiguous match and the chosen
// record is the candidate with the smallest full path.
type Match struct {
	Record     *Record
	Strategy   int
	Candidates int
}

// Resolve runs the strategy chain for one tracking-list row. Strategies are
// tried in order and the first that yields candidates wins; a full miss is
// ErrLookupMiss.
func (ix *Index) Resolve(function, module string) (Match, error) {
	strategies := []func(string, string) []*Record{
		ix.exactQualified,
		ix.typeMethod,
		ix.pathSubstring,
		ix.displayWithModule,
		ix.displayAlone,
	}
	for i, strategy := range strategies {
		if candidates := strategy(function, module); len(candidates) > 0 {
			return Match{Record: candidates[0], Strategy: i + 1, Candidates: len(candidates)}, nil
		}
	}
	return Match{}, ErrLookupMiss
}

// exactQualified is strategy 1: the full path is exactly module::function.
func (ix *Index) exactQualified(function, module string) []*Record {
	return ix.byFullPath[module+"::"+function]
}

// typeMethod is strategy 2: treat the tail of the module as a type and look
// for Type::function. When the type is actually an operator trait, impls on
// the receiver type are preferred over the trait's own path.
func (ix *Index) typeMethod(function, module string) []*Record {
	typ := lastSegment(module)
	if typ == "" {
		return nil
	}
	typedSuffix := "::" + typ + "::" + function

	if trait, ok := traitImplMethods[function]; ok && trait == typ {
		var onReceiver []*Record
		for _, r := range ix.records {
			if strings.HasSuffix(r.FullPath, "::"+function) && !strings.HasSuffix(r.FullPath, typedSuffix) {
				onReceiver = append(onReceiver, r)
			}
		}
		if len(onReceiver) > 0 {
			return onReceiver
		}
	}

	var out []*Record
	for _, r := range ix.records {
		if r.FullPath == typ+"::"+function || strings.HasSuffix(r.FullPath, typedSuffix) {
			out = append(out, r)
		}
	}
	return out
}

// pathSubstring is strategy 3: any full path containing the module and
// ending with ::function.
func (ix *Index) pathSubstring(function, module string) []*Record {
	var out []*Record
	for _, r := range ix.records {
		if strings.Contains(r.FullPath, module) && strings.HasSuffix(r.FullPath, "::"+function) {
			out = append(out, r)
		}
	}
	return out
}

// displayWithModule is strategy 4: display-name match narrowed to records
// whose file path lies under the module (:: mapped to /).
func (ix *Index) displayWithModule(function, module string) []*Record {
	modulePath := strings.ReplaceAll(module, "::", "/")
	var out []*Record
	for _, r := range ix.byDisplay[function] {
		if strings.Contains(r.RelativePath, modulePath) {
			out = append(out, r)
		}
	}
	return out
}

// displayAlone is strategy 5, the last resort.
func (ix *Index) displayAlone(function, _ string) []*Record {
	return ix.byDisplay[function]
}

func lastSegment(module string) string {
	if idx := strings.LastIndex(module, "::"); idx != -1 {
		return module[idx+2:]
	}
	return module
}
