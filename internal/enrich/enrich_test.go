package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specgraph-dev/specgraph/internal/halstead"
	"github.com/specgraph-dev/specgraph/internal/proof"
	"github.com/specgraph-dev/specgraph/internal/specs"
)

func clause(length int, difficulty, effort float64) specs.ClauseMetrics {
	return specs.ClauseMetrics{
		Text:     "x > 0",
		Halstead: &halstead.Metrics{Length: length, Difficulty: difficulty, Effort: effort},
	}
}

func testIndex() *Index {
	return NewIndex([]Record{
		{
			FullPath:     "curve::scalar::reduce",
			DisplayName:  "reduce",
			RelativePath: "src/curve/scalar.rs",
			Metrics: specs.FunctionMetrics{
				RequiresSpecs:  []specs.ClauseMetrics{clause(7, 2.0, 60.0), clause(5, 4.0, 40.0)},
				EnsuresSpecs:   []specs.ClauseMetrics{clause(9, 3.0, 81.5)},
				DecreasesCount: 1,
			},
			Proof: &proof.Metrics{ProofDepth: 2, ProofOverhead: 3.5},
		},
		{
			FullPath:     "curve::point::add",
			DisplayName:  "add",
			RelativePath: "src/curve/point.rs",
		},
		{
			FullPath:     "curve::Add::add",
			DisplayName:  "add",
			RelativePath: "src/curve/traits.rs",
		},
		{
			FullPath:     "hash::digest",
			DisplayName:  "digest",
			RelativePath: "src/hash.rs",
		},
		{
			FullPath:     "other::digest",
			DisplayName:  "digest",
			RelativePath: "src/other.rs",
		},
		{
			FullPath:     "m::checksum",
			DisplayName:  "checksum",
			RelativePath: "src/verify/sum.rs",
		},
	})
}

func TestResolveExactQualified(t *testing.T) {
	match, err := testIndex().Resolve("reduce", "curve::scalar")
	require.NoError(t, err)
	require.Equal(t, 1, match.Strategy)
	require.Equal(t, 1, match.Candidates)
	require.Equal(t, "curve::scalar::reduce", match.Record.FullPath)
}

func TestResolveTypeMethodPrefersReceiverImpl(t *testing.T) {
	// `Add::add` should land on the impl for the receiver type, not the
	// trait's own path.
	match, err := testIndex().Resolve("add", "ops::Add")
	require.NoError(t, err)
	require.Equal(t, 2, match.Strategy)
	require.Equal(t, "curve::point::add", match.Record.FullPath)
}

func TestResolvePathSubstring(t *testing.T) {
	match, err := testIndex().Resolve("reduce", "scalar")
	require.NoError(t, err)
	require.Equal(t, 3, match.Strategy)
	require.Equal(t, "curve::scalar::reduce", match.Record.FullPath)
}

func TestResolveDisplayWithModule(t *testing.T) {
	// The module names a directory, not a path prefix, so the earlier
	// strategies all miss and the file-path fallback decides.
	match, err := testIndex().Resolve("checksum", "src::verify")
	require.NoError(t, err)
	require.Equal(t, 4, match.Strategy)
	require.Equal(t, "m::checksum", match.Record.FullPath)
}

func TestResolveDisplayAloneReportsAmbiguity(t *testing.T) {
	match, err := testIndex().Resolve("digest", "nowhere")
	require.NoError(t, err)
	require.Equal(t, 5, match.Strategy)
	require.Equal(t, 2, match.Candidates)
	// Deterministic tie-break: smallest full path.
	require.Equal(t, "hash::digest", match.Record.FullPath)
}

func TestResolveMiss(t *testing.T) {
	_, err := testIndex().Resolve("missing", "nowhere")
	require.ErrorIs(t, err, ErrLookupMiss)
}

func TestEnrichAppendsMetricColumns(t *testing.T) {
	in := strings.Join([]string{
		"function,module,status",
		"reduce,curve::scalar,done",
		"missing,nowhere,todo",
		"",
	}, "\n")

	var out strings.Builder
	stats, err := Enrich(testIndex(), strings.NewReader(in), &out)
	require.NoError(t, err)
	require.Equal(t, Stats{Total: 2, Matched: 1}, stats)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t,
		"function,module,status,"+strings.Join(metricColumns, ","),
		lines[0])

	// requires: total length 12, mean difficulty 3.00, total effort 100.00.
	require.Equal(t,
		"reduce,curve::scalar,done,12,3.00,100.00,9,3.00,81.50,1,2,3.50,",
		lines[1])

	// Misses keep their cells and get empty metric columns.
	require.Equal(t,
		"missing,nowhere,todo,,,,,,,,,,",
		lines[2])
}

func TestEnrichAmbiguousRowFillsLastColumn(t *testing.T) {
	in := "function,module\ndigest,nowhere\n"
	var out strings.Builder
	stats, err := Enrich(testIndex(), strings.NewReader(in), &out)
	require.NoError(t, err)
	require.Equal(t, Stats{Total: 1, Matched: 1, Ambiguous: 1}, stats)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.True(t, strings.HasSuffix(lines[1], ",2"), lines[1])
}

func TestEnrichRejectsBadHeader(t *testing.T) {
	_, err := Enrich(testIndex(), strings.NewReader("name,file\nfoo,bar\n"), &strings.Builder{})
	require.ErrorIs(t, err, ErrBadHeader)
}
