package routemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfold/dispatch/core/routemap"
)

func buildTable(t *testing.T, entries ...struct {
	pattern string
	exact   bool
	value   string
}) *routemap.Table[string] {
	t.Helper()
	tbl := routemap.New[string]()
	for _, e := range entries {
		_, err := tbl.Add(e.pattern, e.exact, e.value)
		require.NoError(t, err)
	}
	tbl.Finalize()
	return tbl
}

func entry(pattern string, exact bool, value string) struct {
	pattern string
	exact   bool
	value   string
} {
	return struct {
		pattern string
		exact   bool
		value   string
	}{pattern, exact, value}
}

func TestTable_ExactMatch(t *testing.T) {
	t.Parallel()

	tbl := buildTable(t,
		entry("/login", true, "login"),
		entry("/logout", true, "logout"),
	)

	v, kind, ok := tbl.Lookup("/login")
	require.True(t, ok)
	assert.Equal(t, "login", v)
	assert.Equal(t, routemap.MatchExact, kind)

	// An exact pattern does not cover extended paths.
	_, _, ok = tbl.Lookup("/loginx")
	assert.False(t, ok)

	_, _, ok = tbl.Lookup("/unknown")
	assert.False(t, ok)
}

func TestTable_PrefixAndExactPrecedence(t *testing.T) {
	t.Parallel()

	// Descriptor patterns "/a/*" and "/a/b".
	tbl := buildTable(t,
		entry("/a/", false, "prefix"),
		entry("/a/b", true, "exact"),
	)

	v, kind, ok := tbl.Lookup("/a/b")
	require.True(t, ok)
	assert.Equal(t, "exact", v)
	assert.Equal(t, routemap.MatchExact, kind)

	v, kind, ok = tbl.Lookup("/a/c")
	require.True(t, ok)
	assert.Equal(t, "prefix", v)
	assert.Equal(t, routemap.MatchPrefix, kind)

	_, _, ok = tbl.Lookup("/z")
	assert.False(t, ok)
}

func TestTable_DetalizationWins(t *testing.T) {
	t.Parallel()

	// "/a/*" then "/a/b/*": the deeper registration answers deeper paths.
	tbl := buildTable(t,
		entry("/a/", false, "a"),
		entry("/a/b/", false, "ab"),
	)

	v, _, ok := tbl.Lookup("/a/b/c")
	require.True(t, ok)
	assert.Equal(t, "ab", v)

	v, _, ok = tbl.Lookup("/a/x")
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestTable_DetalizationInsertedInReverseOrder(t *testing.T) {
	t.Parallel()

	// The narrower pattern arrives first; inserting the broader one must
	// demote it to a detalization.
	tbl := buildTable(t,
		entry("/a/b/", false, "ab"),
		entry("/a/b/c/", false, "abc"),
		entry("/a/", false, "a"),
	)

	v, _, ok := tbl.Lookup("/a/b/c/d")
	require.True(t, ok)
	assert.Equal(t, "abc", v)

	v, _, ok = tbl.Lookup("/a/b/x")
	require.True(t, ok)
	assert.Equal(t, "ab", v)

	v, _, ok = tbl.Lookup("/a/q")
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestTable_CatchAll(t *testing.T) {
	t.Parallel()

	tbl := routemap.New[string]()
	inserted, err := tbl.Add("/", false, "catchall")
	require.NoError(t, err)
	assert.True(t, inserted)

	// The second catch-all registration is ignored, not an error.
	inserted, err = tbl.Add("/", false, "other")
	require.NoError(t, err)
	assert.False(t, inserted)

	_, err = tbl.Add("/app/", false, "app")
	require.NoError(t, err)
	tbl.Finalize()

	v, kind, ok := tbl.Lookup("/anything")
	require.True(t, ok)
	assert.Equal(t, "catchall", v)
	assert.Equal(t, routemap.MatchCatchAll, kind)

	v, kind, ok = tbl.Lookup("/app/x")
	require.True(t, ok)
	assert.Equal(t, "app", v)
	assert.Equal(t, routemap.MatchPrefix, kind)
}

func TestTable_ExactRootPattern(t *testing.T) {
	t.Parallel()

	tbl := buildTable(t, entry("/", true, "root"))

	v, kind, ok := tbl.Lookup("/")
	require.True(t, ok)
	assert.Equal(t, "root", v)
	assert.Equal(t, routemap.MatchExact, kind)

	_, _, ok = tbl.Lookup("/x")
	assert.False(t, ok)
}

func TestTable_ProperPrefixRequired(t *testing.T) {
	t.Parallel()

	tbl := buildTable(t, entry("/a/", false, "a"))

	// A prefix pattern does not match its own pattern path.
	_, _, ok := tbl.Lookup("/a/")
	assert.False(t, ok)

	_, _, ok = tbl.Lookup("/a/x")
	assert.True(t, ok)
}

func TestTable_EqualPatternDifferentExactness(t *testing.T) {
	t.Parallel()

	tbl := buildTable(t,
		entry("/a", false, "prefix"),
		entry("/a", true, "exact"),
	)

	v, kind, ok := tbl.Lookup("/a")
	require.True(t, ok)
	assert.Equal(t, "exact", v)
	assert.Equal(t, routemap.MatchExact, kind)

	v, kind, ok = tbl.Lookup("/ab")
	require.True(t, ok)
	assert.Equal(t, "prefix", v)
	assert.Equal(t, routemap.MatchPrefix, kind)
}

func TestTable_ConflictWithoutMerge(t *testing.T) {
	t.Parallel()

	tbl := routemap.New[string]()
	_, err := tbl.Add("/a", true, "one")
	require.NoError(t, err)

	_, err = tbl.Add("/a", true, "two")
	require.ErrorIs(t, err, routemap.ErrConflict)
}

func TestTable_MergeAccumulates(t *testing.T) {
	t.Parallel()

	tbl := routemap.New(routemap.WithMerge(func(existing, incoming string) string {
		return existing + "+" + incoming
	}))

	inserted, err := tbl.Add("/a", true, "one")
	require.NoError(t, err)
	assert.True(t, inserted)

	// The duplicate merges and reports "not newly inserted".
	inserted, err = tbl.Add("/a", true, "two")
	require.NoError(t, err)
	assert.False(t, inserted)

	tbl.Finalize()

	v, _, ok := tbl.Lookup("/a")
	require.True(t, ok)
	assert.Equal(t, "one+two", v)
}

func TestTable_AddAfterFinalize(t *testing.T) {
	t.Parallel()

	tbl := routemap.New[string]()
	tbl.Finalize()

	_, err := tbl.Add("/a", true, "v")
	assert.ErrorIs(t, err, routemap.ErrFinalized)
}

func TestTable_EmptyTable(t *testing.T) {
	t.Parallel()

	tbl := routemap.New[string]()
	tbl.Finalize()

	_, _, ok := tbl.Lookup("/anything")
	assert.False(t, ok)
}

func TestTable_Walk(t *testing.T) {
	t.Parallel()

	tbl := routemap.New[string]()
	for _, p := range []string{"/", "/a/", "/a/b/", "/c/"} {
		_, err := tbl.Add(p, false, p)
		require.NoError(t, err)
	}

	type edge struct{ parent, child string }
	var edges []edge
	tbl.Walk(func(parent, child string) {
		edges = append(edges, edge{parent, child})
	})

	assert.ElementsMatch(t, []edge{
		{"/", "/a/"},
		{"/", "/c/"},
		{"/a/", "/a/b/"},
	}, edges)
}

func TestTable_Each(t *testing.T) {
	t.Parallel()

	tbl := buildTable(t,
		entry("/", false, "catchall"),
		entry("/a/", false, "a"),
		entry("/a/b", true, "ab"),
	)

	seen := map[string]bool{}
	tbl.Each(func(pattern string, exact bool, v string) {
		seen[v] = true
	})
	assert.Len(t, seen, 3)
}
