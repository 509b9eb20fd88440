package include

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

func directiveTo(target string) Directive {
	return Directive{IsValid: true, ResolvedURI: target}
}

func TestGraphTransitiveIncludes(t *testing.T) {
	g := New(logr.Discard())
	g.Update("a", []Directive{directiveTo("b")})
	g.Update("b", []Directive{directiveTo("c")})

	got := g.TransitiveIncludes("a")
	require.Equal(t, []string{"b", "c"}, got)
}

func TestGraphCycleDoesNotLoopAndExcludesSelf(t *testing.T) {
	g := New(logr.Discard())
	g.Update("a", []Directive{directiveTo("b")})
	g.Update("b", []Directive{directiveTo("a")})

	got := g.TransitiveIncludes("a")
	require.Equal(t, []string{"b"}, got)
	require.NotContains(t, got, "a")
}

func TestGraphHasCycle(t *testing.T) {
	g := New(logr.Discard())
	g.Update("a", []Directive{directiveTo("b")})
	g.Update("b", []Directive{directiveTo("a")})
	require.True(t, g.HasCycle("a"))

	g2 := New(logr.Discard())
	g2.Update("a", []Directive{directiveTo("b")})
	require.False(t, g2.HasCycle("a"))
}

func TestGraphRemoveClearsReverseEdges(t *testing.T) {
	g := New(logr.Discard())
	g.Update("a", []Directive{directiveTo("b")})
	require.Equal(t, []string{"a"}, g.Includers("b"))

	g.Remove("a")
	require.Empty(t, g.Includers("b"))
	require.Empty(t, g.DirectIncludes("a"))
}

func TestGraphUpdateReturnsChangedSet(t *testing.T) {
	g := New(logr.Discard())
	changed := g.Update("a", []Directive{directiveTo("b"), directiveTo("c")})
	require.ElementsMatch(t, []string{"a", "b", "c"}, changed)
}
