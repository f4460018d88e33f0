package specs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const verifiedFn = `pub fn checked_add(a: u64, b: u64) -> (r: u64)
    requires
        a < 100, // bound on a
        b < 100,
    ensures
        r == a + b,
    decreases a,
{
    a + b
}`

func TestHasSignature(t *testing.T) {
	require.True(t, HasSignature(verifiedFn))
	require.True(t, HasSignature("  proof fn lemma_x()\n{ }"))
	require.True(t, HasSignature("spec fn f() -> bool { true }"))
	require.False(t, HasSignature("let x = 1;\nassert(x > 0);"))
	require.False(t, HasSignature("impl Foo {"))
}

func TestFindBodyStart(t *testing.T) {
	require.Equal(t, len("fn f() "), FindBodyStart("fn f() { 1 }"))

	// Braces inside parens do not open the body.
	src := "fn f(g: spec_fn(int) -> int) { g(1) }"
	require.Equal(t, len("fn f(g: spec_fn(int) -> int) "), FindBodyStart(src))

	// A spec block ending in `},` is skipped.
	withSpecBlock := "fn f()\n    ensures x ==> { y },\n{ body }"
	require.Equal(t, '{', rune(withSpecBlock[FindBodyStart(withSpecBlock)]))
	require.Contains(t, withSpecBlock[FindBodyStart(withSpecBlock):], "body")

	// No body at all.
	require.Equal(t, len("fn f();"), FindBodyStart("fn f();"))
}

func TestCleanSignature(t *testing.T) {
	in := "fn f()\n    requires // comment\n        x@.len() > 0,\n        #![trigger g(x)] g(x),"
	out := CleanSignature(in)
	require.NotContains(t, out, "//")
	require.NotContains(t, out, "comment")
	require.NotContains(t, out, "@")
	require.NotContains(t, out, "trigger")
	require.NotContains(t, out, "\n")
	require.Contains(t, out, "x.len() > 0")
}

func TestRemoveCommentsKeepsStrings(t *testing.T) {
	require.Equal(t, `x == "a//b"`, RemoveComments(`x == "a//b"`))
	require.Equal(t, "x  y", RemoveComments("x /* gone */ y"))
	require.Equal(t, "x \n y", RemoveComments("x // gone\n y"))
}

func TestSplitConditions(t *testing.T) {
	conds := SplitConditions("\n    a < 100,\n    f(x, y) == z,\n    s == \"a,b\",\n")
	require.Equal(t, []string{"a < 100", "f(x, y) == z", `s == "a,b"`}, conds)

	require.Empty(t, SplitConditions(""))
	require.Equal(t, []string{"matches(m, [1, 2])"}, SplitConditions("matches(m, [1, 2]),"))
}

func TestExtractClause(t *testing.T) {
	requires := ExtractClause(verifiedFn, "requires")
	require.Contains(t, requires, "a < 100")
	require.Contains(t, requires, "b < 100")
	require.NotContains(t, requires, "ensures")
	require.NotContains(t, requires, "r == a + b")

	ensures := ExtractClause(verifiedFn, "ensures")
	require.Contains(t, ensures, "r == a + b")
	require.NotContains(t, ensures, "a < 100")

	decreases := ExtractClause(verifiedFn, "decreases")
	require.Contains(t, decreases, "a")
	require.NotContains(t, decreases, "ensures")

	require.Empty(t, ExtractClause("fn plain() { 1 }", "requires"))
	require.Empty(t, ExtractClause("assert(x); // no signature", "requires"))
}
