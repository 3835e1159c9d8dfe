package compile

import (
	"github.com/gitrdm/sldprolog/internal/interner"
	"github.com/gitrdm/sldprolog/internal/registry"
	"github.com/gitrdm/sldprolog/internal/term"
)

// BuiltinGoal is the tagged dispatch node every goal on the resolver's
// goal stack is made of (spec.md §3: "The goal stack of a resolution
// state contains BuiltInFunctor nodes only"). Functor carries the
// original (stack-rewritten) functor so the Default variant can still
// use it for head unification and so arithmetic/comparison/type-check
// variants can read their operands out of its Args.
type BuiltinGoal struct {
	Kind      registry.Kind
	CompareOp registry.CompareOp
	TypeOp    registry.TypeCheckOp
	Functor   *term.Functor

	// SubGoals holds the two pre-wrapped arguments of a Disj or Conj node.
	// It is nil for every other Kind. Both sides of ";" and "," are
	// wrapped eagerly at compile time; a side that is a bare variable
	// rather than a functor is wrapped as a call/1 goal over that
	// variable (see wrapBranch).
	SubGoals []*BuiltinGoal
}

// Wrap applies the built-in substitution of spec.md §4.2 to a single goal
// functor: if (name, arity) is in the registry, the matching dispatch
// Kind is produced; otherwise f is wrapped as a Default goal. Wrap is
// also what the resolver must call on any goal it constructs at runtime
// before pushing it onto the goal stack (spec.md §3's builtin_transform
// requirement) - see internal/resolve's handling of call/1.
func Wrap(in *interner.Interner, f *term.Functor) *BuiltinGoal {
	entry, ok := lookup(in, f)
	if !ok {
		return &BuiltinGoal{Kind: registry.Default, Functor: f}
	}

	g := &BuiltinGoal{Kind: entry.Kind, CompareOp: entry.CompareOp, TypeOp: entry.TypeOp, Functor: f}
	if (entry.Kind == registry.Disj || entry.Kind == registry.Conj) && len(f.Args) == 2 {
		g.SubGoals = append(g.SubGoals, wrapBranch(in, f.Args[0]))
		g.SubGoals = append(g.SubGoals, wrapBranch(in, f.Args[1]))
	}
	return g
}

// wrapBranch wraps one side of a disjunction or conjunction. A branch
// that isn't syntactically a functor (a bare variable, e.g. "p(G) :- (G ;
// true)") can't be looked up in the registry yet - its actual goal isn't
// known until it's bound at runtime - so it is deferred to call/1's own
// dereference-and-call handling instead.
func wrapBranch(in *interner.Interner, t term.Term) *BuiltinGoal {
	if f, ok := t.(*term.Functor); ok {
		return Wrap(in, f)
	}
	return &BuiltinGoal{Kind: registry.Call, Functor: term.NewFunctor(in.Functor("call", 1), t)}
}

func lookup(in *interner.Interner, f *term.Functor) (registry.Entry, bool) {
	key, ok := in.FunctorName(f.NameID)
	if !ok {
		return registry.Entry{}, false
	}
	return registry.Lookup(key.Name, key.Arity)
}
