package halstead

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsProse(t *testing.T) {
	var f ProseFilter
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"short string", "x > 0", false},
		{"doc comment", "/// Returns the length of the sequence", true},
		{"inner doc comment", "//! Module invariants", true},
		{"connective", "Thus, the result follows from the lemma", true},
		{"indicator mid-sentence", "the two values are swapped here", true},
		{"starter without operators", "The result is a valid permutation", true},
		{"starter with comparison", "The result == expected_value holds", false},
		{"comment tail", "end of the argument */", true},
		{"long prose ratio", strings.Repeat("word ", 15), true},
		{"code", "result.len() == old(self).len() + 1", false},
		{"quantifier", "forall|i: int| 0 <= i < 5 ==> a[i] > 0", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, f.IsProse(tc.text))
		})
	}
}

func TestIsProseCustomTables(t *testing.T) {
	f := ProseFilter{
		Indicators: []string{"NOTE:"},
		Starters:   []string{"Observe "},
	}
	require.True(t, f.IsProse("NOTE: bounds were checked"))
	require.True(t, f.IsProse("Observe the loop variant"))
	// Default tables are replaced, not extended.
	require.False(t, f.IsProse("Thus, it holds trivially"))
}
