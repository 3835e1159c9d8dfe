package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/sldprolog/internal/interner"
	"github.com/gitrdm/sldprolog/internal/term"
)

func parseOne(t *testing.T, src string) *Sentence {
	t.Helper()
	in := interner.New()
	p, err := New(in, strings.NewReader(src))
	require.NoError(t, err)
	s, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func TestParseFact(t *testing.T) {
	s := parseOne(t, "parent(tom, bob).")
	require.NotNil(t, s.Clause.Head)
	require.Nil(t, s.Clause.Body)
	require.Equal(t, 2, s.Clause.Head.Arity())
}

func TestParseRuleSplitsConjunctionIntoBody(t *testing.T) {
	s := parseOne(t, "ancestor(X,Y) :- parent(X,Z), ancestor(Z,Y).")
	require.NotNil(t, s.Clause.Head)
	require.Len(t, s.Clause.Body, 2)
}

func TestParseQueryHasNilHead(t *testing.T) {
	s := parseOne(t, "?- parent(tom, X).")
	require.Nil(t, s.Clause.Head)
	require.Len(t, s.Clause.Body, 1)
}

func TestParseListSugarDesugarsToConsFunctor(t *testing.T) {
	in := interner.New()
	p, err := New(in, strings.NewReader("?- member(X, [1,2,3])."))
	require.NoError(t, err)
	s, err := p.Next()
	require.NoError(t, err)

	memberGoal := s.Clause.Body[0]
	listArg := memberGoal.Args[1].(*term.Functor)
	consID := in.Functor(".", 2)
	require.Equal(t, consID, listArg.NameID)
	require.Equal(t, int64(1), listArg.Args[0].(*term.Int).Value)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	s := parseOne(t, "?- X is 3 + 4 * 2.")
	is := s.Clause.Body[0]
	rhs := is.Args[1].(*term.Functor)
	// 3 + (4 * 2): the outermost functor must be "+", whose second
	// argument is the nested "*" term.
	_, rhsIsTimes := rhs.Args[1].(*term.Functor)
	require.True(t, rhsIsTimes)
	require.Equal(t, int64(3), rhs.Args[0].(*term.Int).Value)
}

func TestParseDisjunctionStaysSingleBodyGoal(t *testing.T) {
	s := parseOne(t, "p(X) :- (X = 1 ; X = 2).")
	require.Len(t, s.Clause.Body, 1)
	disj := s.Clause.Body[0]
	require.Equal(t, 2, disj.Arity())
}

func TestParseCommaNestedInsideDisjunctionBranch(t *testing.T) {
	s := parseOne(t, "p(X, Y) :- (X = 1, Y = a ; X = 2).")
	require.Len(t, s.Clause.Body, 1)
	disj := s.Clause.Body[0]
	require.Equal(t, 2, disj.Arity())

	left := disj.Args[0].(*term.Functor)
	require.Equal(t, 2, left.Arity())
}

func TestPeekAndConsumeMoreReportsEndOfInput(t *testing.T) {
	in := interner.New()
	p, err := New(in, strings.NewReader("a. b."))
	require.NoError(t, err)
	require.True(t, p.PeekAndConsumeMore())
	_, err = p.Next()
	require.NoError(t, err)
	require.True(t, p.PeekAndConsumeMore())
	_, err = p.Next()
	require.NoError(t, err)
	require.False(t, p.PeekAndConsumeMore())
	s, err := p.Next()
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestParseNegativeNumberLiteral(t *testing.T) {
	s := parseOne(t, "?- X is -5 + 1.")
	is := s.Clause.Body[0]
	rhs := is.Args[1].(*term.Functor)
	require.Equal(t, int64(-5), rhs.Args[0].(*term.Int).Value)
}
