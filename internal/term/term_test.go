package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnifyIdenticalGivesNoBindings(t *testing.T) {
	v := NewVar(1, false)
	trail := NewTrail()
	ok := Unify(v, nil, trail, v, nil, trail)
	require.True(t, ok)
	require.Equal(t, 0, trail.Len())
}

func TestUnifyGroundAtomsStructurallyEqual(t *testing.T) {
	a := NewFunctor(7)
	b := NewFunctor(7)
	trail := NewTrail()
	require.True(t, Unify(a, nil, trail, b, nil, trail))

	c := NewFunctor(8)
	require.False(t, Unify(a, nil, trail, c, nil, trail))
}

func TestUnifyBindsFreeVariable(t *testing.T) {
	x := NewVar(1, false)
	five := NewInt(5)
	trail := NewTrail()

	ok := Unify(x, nil, trail, five, nil, trail)
	require.True(t, ok)
	require.Equal(t, 1, trail.Len())

	d, _ := Deref(x, nil)
	require.Equal(t, five, d)
}

func TestTrailUndoRestoresFreeState(t *testing.T) {
	x := NewVar(1, false)
	trail := NewTrail()
	require.True(t, Unify(x, nil, trail, NewInt(5), nil, trail))

	trail.Undo()
	require.Equal(t, 0, trail.Len())
	d, _ := Deref(x, nil)
	_, stillVar := d.(*Var)
	require.True(t, stillVar)
	require.False(t, x.Cell().Bound)
}

func TestStackFrameIsolation(t *testing.T) {
	// Two activations of "the same" clause (same slot layout) must not
	// observe each other's bindings.
	frameA := NewFrame(1)
	frameB := NewFrame(1)
	sv := NewStackVar(1, 0)

	trailA := NewTrail()
	require.True(t, Unify(sv, frameA, trailA, NewInt(1), nil, trailA))

	trailB := NewTrail()
	require.True(t, Unify(sv, frameB, trailB, NewInt(2), nil, trailB))

	da, _ := Deref(sv, frameA)
	db, _ := Deref(sv, frameB)
	require.Equal(t, int64(1), da.(*Int).Value)
	require.Equal(t, int64(2), db.(*Int).Value)
}

func TestUnifyFunctorArgsRecursively(t *testing.T) {
	x := NewVar(1, false)
	y := NewVar(2, false)
	left := NewFunctor(100, x, NewInt(2))
	right := NewFunctor(100, NewInt(1), y)

	trail := NewTrail()
	require.True(t, Unify(left, nil, trail, right, nil, trail))

	dx, _ := Deref(x, nil)
	dy, _ := Deref(y, nil)
	require.Equal(t, int64(1), dx.(*Int).Value)
	require.Equal(t, int64(2), dy.(*Int).Value)
}

func TestUnifyFunctorArityMismatchFails(t *testing.T) {
	left := NewFunctor(100, NewInt(1))
	right := NewFunctor(100, NewInt(1), NewInt(2))
	trail := NewTrail()
	require.False(t, Unify(left, nil, trail, right, nil, trail))
}

func TestResolveDetachesUnboundStackVarFromFrame(t *testing.T) {
	frame := NewFrame(1)
	sv := NewStackVar(3, 0)
	resolved := Resolve(sv, frame)
	v, ok := resolved.(*Var)
	require.True(t, ok)
	require.False(t, v.Cell().Bound)
}

func TestIsGround(t *testing.T) {
	x := NewVar(1, false)
	require.False(t, IsGround(x, nil))
	trail := NewTrail()
	require.True(t, Unify(x, nil, trail, NewInt(1), nil, trail))
	require.True(t, IsGround(x, nil))
}
