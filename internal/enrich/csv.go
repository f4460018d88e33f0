package enrich

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specgraph-dev/specgraph/internal/specs"
)

// ErrBadHeader is returned when the tracking list does not begin with the
// required `function, module` columns.
var ErrBadHeader = errors.New("tracking list must start with function and module columns")

// metricColumns are appended to every output row, in this order.
var metricColumns = []string{
	"requires_halstead_length",
	"requires_halstead_difficulty",
	"requires_halstead_effort",
	"ensures_halstead_length",
	"ensures_halstead_difficulty",
	"ensures_halstead_effort",
	"decreases_count",
	"proof_depth",
	"proof_overhead",
	"match_ambiguity",
}

// Stats summarises one enrichment run.
type Stats struct {
	Total     int
	Matched   int
	Ambiguous int
}

// Enrich reads a tracking-list CSV from r, appends the metric columns for
// every row and writes the result to w. Rows that resolve to no record keep
// their original cells and get empty metric columns. Extra input columns
// pass through unchanged.
func Enrich(ix *Index, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	writer := csv.NewWriter(w)

	header, err := reader.Read()
	if err != nil {
		return stats, fmt.Errorf("reading tracking-list header: %w", err)
	}
	if len(header) < 2 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "function") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "module") {
		return stats, ErrBadHeader
	}
	if err := writer.Write(append(header, metricColumns...)); err != nil {
		return stats, err
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("reading tracking-list row: %w", err)
		}
		stats.Total++

		function := strings.TrimSpace(row[0])
		module := strings.TrimSpace(row[1])

		match, err := ix.Resolve(function, module)
		cells := emptyMetricCells()
		switch {
		case errors.Is(err, ErrLookupMiss):
			// Misses keep their row with empty metric columns.
		case err != nil:
			return stats, err
		default:
			stats.Matched++
			if match.Candidates > 1 {
				stats.Ambiguous++
			}
			cells = metricCells(match)
		}

		if err := writer.Write(append(row, cells...)); err != nil {
			return stats, err
		}
	}

	writer.Flush()
	return stats, writer.Error()
}

func emptyMetricCells() []string {
	return make([]string, len(metricColumns))
}

// metricCells renders the appended columns for a matched row. Absent values
// (no parseable clauses, no proof blocks, unambiguous match) stay empty.
func metricCells(match Match) []string {
	m := match.Record.Metrics

	reqLength, reqDifficulty, reqEffort := aggregateClauses(m.RequiresSpecs)
	ensLength, ensDifficulty, ensEffort := aggregateClauses(m.EnsuresSpecs)

	cells := []string{
		reqLength, reqDifficulty, reqEffort,
		ensLength, ensDifficulty, ensEffort,
	}

	if m.DecreasesCount > 0 {
		cells = append(cells, strconv.Itoa(m.DecreasesCount))
	} else {
		cells = append(cells, "")
	}

	if p := match.Record.Proof; p != nil {
		cells = append(cells, strconv.Itoa(p.ProofDepth), formatFloat(p.ProofOverhead))
	} else {
		cells = append(cells, "", "")
	}

	if match.Candidates > 1 {
		cells = append(cells, strconv.Itoa(match.Candidates))
	} else {
		cells = append(cells, "")
	}
	return cells
}

// aggregateClauses folds the scored clauses of one kind into (total length,
// average difficulty, total effort). Clauses that failed to parse are
// excluded; when none parsed all three cells are empty.
func aggregateClauses(clauses []specs.ClauseMetrics) (length, difficulty, effort string) {
	totalLength := 0
	totalDifficulty := 0.0
	totalEffort := 0.0
	valid := 0
	for _, clause := range clauses {
		if clause.Halstead == nil {
			continue
		}
		valid++
		totalLength += clause.Halstead.Length
		totalDifficulty += clause.Halstead.Difficulty
		totalEffort += clause.Halstead.Effort
	}
	if valid == 0 {
		return "", "", ""
	}
	return strconv.Itoa(totalLength),
		formatFloat(totalDifficulty/float64(valid)),
		formatFloat(totalEffort)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
