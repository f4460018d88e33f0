package callgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	g := Build(testIndex(), BuildOptions{ReadFile: testReadFile})
	s := g.Summarize(2)

	require.Equal(t, 5, s.TotalFunctions)
	require.Equal(t, 4, s.LocalFunctions)
	require.Equal(t, 1, s.ExternalFunctions)
	// main has no callers; spec_sum and the external lemma have no callees
	// but only local nodes count as leaves.
	require.Equal(t, 1, s.EntryPoints)
	require.Equal(t, 1, s.LeafFunctions)
	require.Equal(t, 6, s.TotalCallEdges)

	require.Equal(t, map[string]int{"exec": 2, "spec": 1, "proof": 1}, s.ModeCounts)

	require.Len(t, s.MostCalled, 2)
	require.Equal(t, 2, s.MostCalled[0].Count)
	require.Len(t, s.MostCalling, 2)
	require.Equal(t, "checked_add", s.MostCalling[0].DisplayName)
	require.Equal(t, 3, s.MostCalling[0].Count)
}

func TestSummarizeEmptyGraph(t *testing.T) {
	s := NewGraph("file:///empty").Summarize(5)
	require.Zero(t, s.TotalFunctions)
	require.Empty(t, s.MostCalled)
	require.Empty(t, s.MostCalling)
}
