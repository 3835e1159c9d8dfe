package prolog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/sldprolog/internal/parser"
)

func mustParse(t *testing.T, e *Engine, src string) *parser.Sentence {
	t.Helper()
	p, err := parser.New(e.in, strings.NewReader(src))
	require.NoError(t, err)
	s, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func consultAndQuery(t *testing.T, program, query string) *SolutionIterator {
	t.Helper()
	e, err := New()
	require.NoError(t, err)
	require.NoError(t, e.Consult(strings.NewReader(program)))

	it, err := e.Resolve(context.Background(), mustParse(t, e, query))
	require.NoError(t, err)
	return it
}

func names(sol Solution) []string {
	out := make([]string, len(sol))
	for i, b := range sol {
		out[i] = b.Term.String()
	}
	return out
}

func TestEngineParentSingleSolution(t *testing.T) {
	it := consultAndQuery(t, `
parent(tom, bob).
parent(bob, ann).
`, "?- parent(tom, X).")

	sol, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"bob"}, names(sol))

	_, ok, err = it.Next(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEngineAncestorMultipleSolutionsInOrder(t *testing.T) {
	it := consultAndQuery(t, `
parent(tom, bob).
parent(bob, ann).
parent(bob, pat).
ancestor(X, Y) :- parent(X, Y).
ancestor(X, Y) :- parent(X, Z), ancestor(Z, Y).
`, "?- ancestor(tom, X).")

	var got []string
	for {
		sol, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, names(sol)[0])
	}
	require.Equal(t, []string{"bob", "ann", "pat"}, got)
}

func TestEngineMemberUsesEmbeddedBuiltins(t *testing.T) {
	it := consultAndQuery(t, "", "?- member(X, [a,b,c]).")

	var got []string
	for {
		sol, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, names(sol)[0])
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("member/2 solutions mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineArithmeticEvaluatesBeforeUnifying(t *testing.T) {
	it := consultAndQuery(t, "", "?- X is (3 + 4) * 2.")

	sol, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"14"}, names(sol))
}

func TestEngineCutCommitsToFirstSolution(t *testing.T) {
	it := consultAndQuery(t, `
choice(1).
choice(2).
choice(3).
first(X) :- choice(X), !.
`, "?- first(X).")

	sol, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"1"}, names(sol))

	_, ok, err = it.Next(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEngineDisjunctionAndMetaCall(t *testing.T) {
	it := consultAndQuery(t, `
p(X) :- (X = 1 ; X = 2).
run(G) :- call(G).
`, "?- run(p(X)).")

	var got []string
	for {
		sol, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, names(sol)[0])
	}
	require.Equal(t, []string{"1", "2"}, got)
}

func TestEngineConsultReportsMalformedInput(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	err = e.Consult(strings.NewReader("p(X) :- .\nq(X) :- r(.\n"))
	require.Error(t, err)
}

func TestEngineResetReloadsEmbeddedBuiltins(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	require.NoError(t, e.Consult(strings.NewReader("extra(1).")))
	require.NoError(t, e.Reset())

	it, err := e.Resolve(context.Background(), mustParse(t, e, "?- extra(X)."))
	require.NoError(t, err)
	_, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.False(t, ok, "Reset must clear previously consulted clauses")
}
