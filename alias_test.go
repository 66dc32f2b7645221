package alias_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irtools/alias"
)

func newTracker() *alias.Tracker[string, string] {
	return alias.New[string, string]()
}

func TestFreshIsolation(t *testing.T) {
	tr := newTracker()
	tr.MakeFreshValue("v")
	tr.MakeFreshValue("w")

	assert.True(t, tr.Contains("v"))
	assert.True(t, tr.Contains("w"))
	assert.False(t, tr.Contains("u"))

	assert.False(t, tr.MayAlias("v", "w"))
	assert.False(t, tr.MayAlias("w", "v"))
	assert.Empty(t, tr.Aliases("v"))
}

func TestPointerPropagation(t *testing.T) {
	tr := newTracker()
	tr.MakePointerTo("a", "b")

	assert.True(t, tr.Contains("a"), "MakePointerTo should create missing elements")
	assert.True(t, tr.Contains("b"))

	assert.True(t, tr.MayAlias("a", "b"))
	assert.True(t, tr.MayAlias("b", "a"))

	assert.Equal(t, map[string]bool{"b": true}, tr.Aliases("a"))
	assert.Equal(t, map[string]bool{"a": true}, tr.Aliases("b"))
}

func TestSharedPointeeTransitivity(t *testing.T) {
	// a and b both point to c without a direct edge between them; the
	// shared pointee makes them aliases of each other.
	tr := newTracker()
	tr.MakePointerTo("a", "c")
	tr.MakePointerTo("b", "c")

	assert.True(t, tr.MayAlias("a", "b"))
	assert.True(t, tr.MayAlias("b", "a"))

	aliases := tr.Aliases("a")
	assert.True(t, aliases["b"])
	assert.True(t, aliases["c"])
}

func TestControlFlowJoin(t *testing.T) {
	// Conditional assignment: p may point at either branch's target.
	tr := newTracker()
	tr.MakeFreshValue("x")
	tr.MakeFreshValue("y")
	tr.MakePointerTo("p", "x")
	tr.MakePointerTo("p", "y")

	assert.True(t, tr.MayAlias("p", "x"))
	assert.True(t, tr.MayAlias("p", "y"))
	assert.False(t, tr.MayAlias("x", "y"))
}

func TestWildcardDominance(t *testing.T) {
	tr := newTracker()
	tr.SetWildcard("w")
	tr.SetWildcard("w2")
	tr.MakeFreshValue("x")

	assert.True(t, tr.IsWildcard("w"))
	assert.False(t, tr.IsWildcard("x"))

	assert.True(t, tr.MayAlias("w", "x"))
	assert.True(t, tr.MayAlias("x", "w"))
	assert.True(t, tr.MayAlias("w", "w2"))
}

func TestSymmetry(t *testing.T) {
	tr := newTracker()
	tr.MakeFreshValue("p")
	tr.MakeFreshValue("q")
	tr.MakePointerTo("r", "p")
	tr.MakePointerTo("s", "p")
	tr.SetWildcard("w")

	values := []string{"p", "q", "r", "s", "w"}
	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, tr.MayAlias(a, b), tr.MayAlias(b, a),
				"MayAlias(%s, %s) should be symmetric", a, b)
		}
	}
}

func TestWriteRegistry(t *testing.T) {
	tr := newTracker()
	tr.MakeFreshValue("v")
	tr.MakeFreshValue("u")
	tr.RegisterWrite("v", "n1")

	assert.True(t, tr.WritesTo("n1", "v"))
	assert.False(t, tr.WritesTo("n1", "u"), "WritesTo should not expand through aliases")
	assert.False(t, tr.WritesTo("n2", "v"))
	assert.Equal(t, 1, tr.NumWrites())

	// y aliases v, so the write to v reaches y's memory locations.
	tr.MakePointerTo("y", "v")
	assert.True(t, tr.HasWriters("v"))
	assert.True(t, tr.HasWriters("y"))
	assert.False(t, tr.HasWriters("u"))
	assert.False(t, tr.HasWriters("untracked"))
}

func TestWildcardWriters(t *testing.T) {
	tr := newTracker()
	tr.MakeFreshValue("v")
	tr.SetWildcard("w")
	tr.RegisterWrite("w", "n")

	assert.Equal(t, map[string]bool{"n": true}, tr.WildcardWriters())
	assert.True(t, tr.WritesTo("n", "w"))
	assert.Equal(t, 1, tr.NumWrites())

	// An unresolved wildcard write could touch any location.
	assert.True(t, tr.HasWriters("v"))
	assert.True(t, tr.HasWriters("w"))
}

func TestHasWritersOnWildcardValue(t *testing.T) {
	tr := newTracker()
	tr.SetWildcard("w")
	assert.False(t, tr.HasWriters("w"), "no writes registered yet")

	tr.MakeFreshValue("v")
	tr.RegisterWrite("v", "n")
	assert.True(t, tr.HasWriters("w"), "a wildcard may denote any written location")
}

func TestCacheConsistencyUnderMutation(t *testing.T) {
	tr := newTracker()
	tr.MakeFreshValue("a")
	tr.MakeFreshValue("b")
	require.False(t, tr.MayAlias("a", "b"))

	tr.MakePointerTo("a", "b")
	assert.True(t, tr.MayAlias("a", "b"), "edge added after a query must be observed")

	tr.MakeFreshValue("v")
	tr.MakeFreshValue("x")
	tr.RegisterWrite("v", "n")
	require.False(t, tr.HasWriters("x"))

	tr.MakePointerTo("x", "v")
	assert.True(t, tr.HasWriters("x"), "write cache must be rebuilt after an edge insertion")

	require.False(t, tr.HasWriters("b"))
	tr.RegisterWrite("b", "n2")
	assert.True(t, tr.HasWriters("b"), "write cache must be rebuilt after a new write")
}

func TestGroupAlias(t *testing.T) {
	tr := newTracker()
	tr.MakeFreshValue("p1")
	tr.MakeFreshValue("p2")
	tr.MakeFreshValue("p3")
	tr.MakePointerTo("p1", "p3")
	tr.MakePointerTo("p2", "p3")
	tr.MakeFreshValue("q")

	assert.True(t, tr.MayAliasSets([]string{"p1"}, []string{"p2"}))
	assert.False(t, tr.MayAliasSets([]string{"p1"}, []string{"q"}))

	t.Run("Empty", func(t *testing.T) {
		assert.False(t, tr.MayAliasSets(nil, []string{"p1"}))
		assert.False(t, tr.MayAliasSets([]string{"p1"}, nil))
		assert.False(t, tr.MayAliasSets(nil, nil))
	})

	t.Run("Multiset", func(t *testing.T) {
		assert.True(t, tr.MayAliasSets(
			[]string{"p1", "p1", "q"},
			[]string{"p2", "p2"}))
	})

	t.Run("Wildcard", func(t *testing.T) {
		tr.SetWildcard("w")
		assert.True(t, tr.MayAliasSets([]string{"q"}, []string{"w"}))
		assert.True(t, tr.MayAliasSets([]string{"w"}, []string{"q"}))
	})

	t.Run("AbsentValues", func(t *testing.T) {
		assert.False(t, tr.MayAliasSets([]string{"nope"}, []string{"p1"}))
		assert.False(t, tr.MayAliasSets([]string{"nope"}, []string{"other"}))
	})
}

func TestUntrackedValuePanics(t *testing.T) {
	tr := newTracker()
	tr.MakeFreshValue("v")

	assert.Panics(t, func() { tr.MayAlias("v", "untracked") })
	assert.Panics(t, func() { tr.Aliases("untracked") })
	assert.Panics(t, func() { tr.RegisterWrite("untracked", "n") })
}

func TestMakeFreshValueOverwrites(t *testing.T) {
	tr := newTracker()
	tr.MakePointerTo("a", "b")
	require.True(t, tr.MayAlias("a", "b"))

	// a gets a new identity; the old element keeps b's alias history.
	tr.MakeFreshValue("a")
	assert.False(t, tr.MayAlias("a", "b"))
	assert.True(t, tr.Aliases("b")["a"], "superseded elements preserve alias history")
}

func TestDump(t *testing.T) {
	tr := newTracker()
	tr.MakePointerTo("a", "b")
	tr.MakeFreshValue("a")
	tr.SetWildcard("w")
	tr.RegisterWrite("b", "n")
	tr.SetWildcard("ww")
	tr.RegisterWrite("ww", "n2")

	out := tr.String()
	for _, want := range []string{
		"points-to graph",
		"superseded",
		"wildcards",
		"w",
		"writes (2 registered)",
		"n writes b",
		"write through a wildcard",
	} {
		assert.Contains(t, out, want)
	}
}

func BenchmarkMayAlias(b *testing.B) {
	tr := newTracker()
	// A fan of pointers sharing one target among many isolated values.
	for i := 0; i < 1000; i++ {
		v := fmt.Sprint("v", i)
		tr.MakeFreshValue(v)
		if i%10 == 0 {
			tr.MakePointerTo(fmt.Sprint("p", i), v)
		}
	}
	tr.MakePointerTo("p0", "v10")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.MayAlias("p0", "p10")
	}
}
