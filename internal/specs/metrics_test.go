package specs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeScoresClauses(t *testing.T) {
	c := NewComputer()
	m := c.Compute(verifiedFn)

	require.Equal(t, 2, m.RequiresCount)
	require.Len(t, m.RequiresSpecs, 2)
	for _, clause := range m.RequiresSpecs {
		require.Empty(t, clause.ParseError)
		require.NotNil(t, clause.Halstead)
		require.Positive(t, clause.Halstead.Length)
	}

	require.Equal(t, 1, m.EnsuresCount)
	require.Len(t, m.EnsuresSpecs, 1)
	require.Equal(t, "r == a + b", m.EnsuresSpecs[0].Text)

	require.Equal(t, 1, m.DecreasesCount)
	require.Positive(t, m.BodyLength)
	require.Positive(t, m.TotalSpecEffort())
}

func TestComputeFiltersProse(t *testing.T) {
	c := NewComputer()
	body := "fn f()\n    requires\n        The caller guarantees the buffer is initialised properly,\n        x > 0,\n{\n}"
	m := c.Compute(body)

	require.Equal(t, 1, m.RequiresCount)
	require.Equal(t, "x > 0", m.RequiresSpecs[0].Text)
}

func TestComputeRecordsParseErrors(t *testing.T) {
	c := NewComputer()
	body := "fn f()\n    requires\n        x === y,\n{\n}"
	m := c.Compute(body)

	require.Equal(t, 1, m.RequiresCount)
	require.NotEmpty(t, m.RequiresSpecs[0].ParseError)
	require.Nil(t, m.RequiresSpecs[0].Halstead)
}

func TestComputeNoSpecFunction(t *testing.T) {
	c := NewComputer()
	m := c.Compute("fn plain(a: u64) -> u64 {\n    if a > 2 && a < 10 {\n        a * 2\n    } else {\n        a\n    }\n}")

	require.Zero(t, m.RequiresCount)
	require.Zero(t, m.EnsuresCount)
	require.Empty(t, m.RequiresSpecs)

	// if + (&&) + base path.
	require.Equal(t, 3, m.Cyclomatic)
	require.Positive(t, m.Cognitive)
	require.Equal(t, 1, m.Operators["*"])
	require.Equal(t, 1, m.Operators[">"])
	require.Equal(t, 1, m.Operators["<"])
	require.Equal(t, 1, m.Operators["&&"])
}

func TestCountOperatorsLongestFirst(t *testing.T) {
	counts := CountOperators("a <= b && c << 2")
	require.Equal(t, 1, counts["<="])
	require.Equal(t, 1, counts["&&"])
	require.Equal(t, 1, counts["<<"])
	require.Zero(t, counts["<"])
	require.Zero(t, counts["&"])

	require.Nil(t, CountOperators(`"a + b"`))
}
