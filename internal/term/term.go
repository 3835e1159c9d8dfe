// Package term implements the core term representation for the resolution
// engine: free variables, stack-slot variables, functors (compound terms
// and atoms), and the two numeric literal kinds. Terms are immutable in
// structure once built; only the storage cells reachable through a
// Variable or StackVariable change state, and only via bindVar (called
// from Unify).
package term

import (
	"fmt"
	"strconv"
)

// Term is any value in the engine's universe. The set of implementations
// is closed (Var, StackVar, Functor, Int, Float); isTerm seals the
// interface so a switch over these five types can be exhaustive without
// a default case hiding a missing variant.
type Term interface {
	String() string
	isTerm()
}

// Var is a free logic variable, directly holding its own storage cell.
// Query variables are always Var, never StackVar: "a free variable in a
// query is bound directly (no stack redirection)".
type Var struct {
	NameID    int32 // interned variable name id
	Anonymous bool  // true for "_" and its generated siblings
	cell      Cell
}

// NewVar creates a free variable with the given interned name id.
func NewVar(nameID int32, anonymous bool) *Var {
	return &Var{NameID: nameID, Anonymous: anonymous}
}

func (v *Var) isTerm() {}

func (v *Var) String() string {
	if v.Anonymous {
		return "_"
	}
	return fmt.Sprintf("_V%d", v.NameID)
}

// Cell returns the variable's own storage cell.
func (v *Var) Cell() *Cell { return &v.cell }

// StackVar is a variable rewritten by the compiler into a numbered slot of
// a compiled clause's stack frame. Its binding is never stored on the
// StackVar itself; it is always read from whatever Frame the resolver
// currently has active for that clause's invocation (see Frame, Deref).
type StackVar struct {
	NameID int32 // interned name id, for pretty-printing/tracing only
	Slot   int   // index into the owning clause's stack frame, [0, StackSize)
}

// NewStackVar creates a stack-slot variable for the given slot.
func NewStackVar(nameID int32, slot int) *StackVar {
	return &StackVar{NameID: nameID, Slot: slot}
}

func (v *StackVar) isTerm() {}

func (v *StackVar) String() string {
	return fmt.Sprintf("_S%d", v.Slot)
}

// Functor is a named, fixed-arity compound term. A zero-arity Functor is
// an atom. Name is an interned (name,arity) id from the interner.
type Functor struct {
	NameID int32
	Args   []Term
}

// NewFunctor creates a compound term (or an atom, if args is empty).
func NewFunctor(nameID int32, args ...Term) *Functor {
	return &Functor{NameID: nameID, Args: args}
}

func (f *Functor) isTerm() {}

func (f *Functor) Arity() int { return len(f.Args) }

func (f *Functor) String() string {
	if len(f.Args) == 0 {
		return fmt.Sprintf("atom#%d", f.NameID)
	}
	s := fmt.Sprintf("functor#%d(", f.NameID)
	for i, a := range f.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// Int is a 64-bit signed integer literal.
type Int struct {
	Value int64
}

func NewInt(v int64) *Int { return &Int{Value: v} }

func (i *Int) isTerm() {}

func (i *Int) String() string { return strconv.FormatInt(i.Value, 10) }

// Float is an IEEE-754 double literal.
type Float struct {
	Value float64
}

func NewFloat(v float64) *Float { return &Float{Value: v} }

func (f *Float) isTerm() {}

func (f *Float) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// IsVar reports whether t is a free or stack-slot variable.
func IsVar(t Term) bool {
	switch t.(type) {
	case *Var, *StackVar:
		return true
	default:
		return false
	}
}
