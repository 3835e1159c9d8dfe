package compile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/sldprolog/internal/interner"
	"github.com/gitrdm/sldprolog/internal/registry"
	"github.com/gitrdm/sldprolog/internal/term"
)

// parent(X, Y) :- father(X, Y).
func TestCompileProgramClauseAssignsStackSlotsByIdentity(t *testing.T) {
	in := interner.New()
	parent := in.Functor("parent", 2)
	father := in.Functor("father", 2)

	x := term.NewVar(in.Var("X"), false)
	y := term.NewVar(in.Var("Y"), false)

	sc := &SourceClause{
		Head: term.NewFunctor(parent, x, y),
		Body: []*term.Functor{term.NewFunctor(father, x, y)},
	}

	cc, err := New(in).Compile(sc)
	require.NoError(t, err)
	require.False(t, cc.IsQuery)
	require.Equal(t, 2, cc.StackSize)
	require.Equal(t, parent, cc.Name)
	require.Equal(t, 2, cc.Arity)

	headX := cc.Head.Args[0].(*term.StackVar)
	headY := cc.Head.Args[1].(*term.StackVar)
	require.Equal(t, 0, headX.Slot)
	require.Equal(t, 1, headY.Slot)

	require.Len(t, cc.Body, 1)
	bodyArgs := cc.Body[0].Functor.Args
	require.Equal(t, headX.Slot, bodyArgs[0].(*term.StackVar).Slot)
	require.Equal(t, headY.Slot, bodyArgs[1].(*term.StackVar).Slot)
}

// likes(mary, X) :- likes(X, wine).  -- X recurs across head and body and
// must reuse a single slot.
func TestCompileReusesSlotForRepeatedVariable(t *testing.T) {
	in := interner.New()
	likes := in.Functor("likes", 2)
	mary := in.Functor("mary", 0)
	wine := in.Functor("wine", 0)

	x := term.NewVar(in.Var("X"), false)

	sc := &SourceClause{
		Head: term.NewFunctor(likes, term.NewFunctor(mary), x),
		Body: []*term.Functor{term.NewFunctor(likes, x, term.NewFunctor(wine))},
	}

	cc, err := New(in).Compile(sc)
	require.NoError(t, err)
	require.Equal(t, 1, cc.StackSize)

	headSlot := cc.Head.Args[1].(*term.StackVar).Slot
	bodySlot := cc.Body[0].Functor.Args[0].(*term.StackVar).Slot
	require.Equal(t, headSlot, bodySlot)
}

// A query's variables stay as Var, never StackVar, and its body goals are
// still wrapped as built-ins where recognized.
func TestCompileQueryLeavesVarsFreeAndWrapsBuiltins(t *testing.T) {
	in := interner.New()
	foo := in.Functor("foo", 1)
	x := term.NewVar(in.Var("X"), false)

	sc := &SourceClause{
		Body: []*term.Functor{
			term.NewFunctor(foo, x),
			term.NewFunctor(in.Functor("true", 0)),
		},
	}

	cc, err := New(in).Compile(sc)
	require.NoError(t, err)
	require.True(t, cc.IsQuery)
	require.Equal(t, 0, cc.StackSize)
	require.Nil(t, cc.Head)

	require.Equal(t, registry.Default, cc.Body[0].Kind)
	_, isVar := cc.Body[0].Functor.Args[0].(*term.Var)
	require.True(t, isVar)

	require.Equal(t, registry.True, cc.Body[1].Kind)
}

// p(X) :- (X = a ; X = b).  -- disjunction pre-wraps both branches.
func TestCompileWrapsDisjunctionBranches(t *testing.T) {
	in := interner.New()
	p := in.Functor("p", 1)
	eq := in.Functor("=", 2)
	disj := in.Functor(";", 2)
	a := in.Functor("a", 0)
	b := in.Functor("b", 0)

	x := term.NewVar(in.Var("X"), false)

	sc := &SourceClause{
		Head: term.NewFunctor(p, x),
		Body: []*term.Functor{
			term.NewFunctor(disj,
				term.NewFunctor(eq, x, term.NewFunctor(a)),
				term.NewFunctor(eq, x, term.NewFunctor(b)),
			),
		},
	}

	cc, err := New(in).Compile(sc)
	require.NoError(t, err)

	disjGoal := cc.Body[0]
	require.Equal(t, registry.Disj, disjGoal.Kind)
	require.Len(t, disjGoal.SubGoals, 2)
	require.Equal(t, registry.UnifyGoal, disjGoal.SubGoals[0].Kind)
	require.Equal(t, registry.UnifyGoal, disjGoal.SubGoals[1].Kind)
}

func TestCompileRejectsNilClauseAndNilBodyElement(t *testing.T) {
	in := interner.New()
	c := New(in)

	_, err := c.Compile(nil)
	require.ErrorIs(t, err, errNilClause)

	_, err = c.Compile(&SourceClause{Body: []*term.Functor{nil}})
	require.ErrorIs(t, err, errNilBodyElement)
}
