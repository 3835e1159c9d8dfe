package compile

import (
	"fmt"

	"github.com/gitrdm/sldprolog/internal/interner"
	"github.com/gitrdm/sldprolog/internal/term"
)

// Compiler turns parser-produced SourceClauses into CompiledClauses,
// sharing one Interner with the rest of an engine instance so that the
// built-in lookup in Wrap sees the same (name, arity) ids the parser
// assigned.
type Compiler struct {
	in *interner.Interner
}

// New creates a Compiler over the given interner.
func New(in *interner.Interner) *Compiler {
	return &Compiler{in: in}
}

// Compile rewrites a SourceClause into a CompiledClause (spec.md §4.2).
// Program clauses have every free variable replaced by a numbered
// StackVar, keyed by pointer identity so that repeated occurrences of
// the same source variable land on the same slot; queries are left with
// their original Var nodes untouched, since "a free variable in a query
// is bound directly". Every body goal, in both cases, is wrapped via
// Wrap.
func (c *Compiler) Compile(sc *SourceClause) (*CompiledClause, error) {
	if sc == nil {
		return nil, errNilClause
	}
	for _, g := range sc.Body {
		if g == nil {
			return nil, errNilBodyElement
		}
	}

	if sc.IsQuery() {
		body := make([]*BuiltinGoal, len(sc.Body))
		for i, g := range sc.Body {
			body[i] = Wrap(c.in, g)
		}
		return &CompiledClause{Body: body, IsQuery: true}, nil
	}

	slots := make(map[*term.Var]*term.StackVar)
	counter := 0

	rewrittenHead, ok := c.rewrite(sc.Head, slots, &counter).(*term.Functor)
	if !ok {
		return nil, fmt.Errorf("compile: clause head did not rewrite to a functor")
	}

	body := make([]*BuiltinGoal, len(sc.Body))
	for i, g := range sc.Body {
		rewritten, ok := c.rewrite(g, slots, &counter).(*term.Functor)
		if !ok {
			return nil, fmt.Errorf("compile: body goal %d did not rewrite to a functor", i)
		}
		body[i] = Wrap(c.in, rewritten)
	}

	return &CompiledClause{
		Head:      rewrittenHead,
		Body:      body,
		StackSize: counter,
		Name:      rewrittenHead.NameID,
		Arity:     rewrittenHead.Arity(),
	}, nil
}

// rewrite post-order walks t, replacing every *term.Var reachable from it
// with a *term.StackVar allocated from slots/counter. Functor structure
// is copied (never mutated in place, since the same Functor literal in
// source text may be compiled more than once - e.g. shared library
// clauses); Int, Float and already-rewritten StackVar nodes pass through
// unchanged.
func (c *Compiler) rewrite(t term.Term, slots map[*term.Var]*term.StackVar, counter *int) term.Term {
	switch n := t.(type) {
	case *term.Var:
		if sv, ok := slots[n]; ok {
			return sv
		}
		sv := term.NewStackVar(n.NameID, *counter)
		*counter++
		slots[n] = sv
		return sv
	case *term.Functor:
		if len(n.Args) == 0 {
			return n
		}
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = c.rewrite(a, slots, counter)
		}
		return term.NewFunctor(n.NameID, args...)
	default:
		return t
	}
}
