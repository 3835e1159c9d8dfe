package interner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunctorInterningIsStableAndDistinguishesArity(t *testing.T) {
	in := New()
	p2 := in.Functor("parent", 2)
	p2again := in.Functor("parent", 2)
	p1 := in.Functor("parent", 1)

	require.Equal(t, p2, p2again)
	require.NotEqual(t, p2, p1)

	key, ok := in.FunctorName(p2)
	require.True(t, ok)
	require.Equal(t, FunctorKey{Name: "parent", Arity: 2}, key)
}

func TestVarInterningMonotonicIDs(t *testing.T) {
	in := New()
	x := in.Var("X")
	y := in.Var("Y")
	xAgain := in.Var("X")

	require.Equal(t, x, xAgain)
	require.NotEqual(t, x, y)
	require.Less(t, x, y)

	name, ok := in.VarName(y)
	require.True(t, ok)
	require.Equal(t, "Y", name)
}

func TestUnknownIDLookupFails(t *testing.T) {
	in := New()
	_, ok := in.FunctorName(42)
	require.False(t, ok)
	_, ok = in.VarName(42)
	require.False(t, ok)
}
