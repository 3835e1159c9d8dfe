// Package resolve implements the proof-search engine of spec.md §4.3: a
// depth-first, backtracking resolver that drives a knowledge base of
// compiled clauses against a compiled query, using a flat choice-point
// stack with cut barriers (the memory-efficient alternative spec.md §9
// explicitly sanctions in place of materializing a full ResolutionState
// tree).
package resolve

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/sldprolog/internal/compile"
	"github.com/gitrdm/sldprolog/internal/interner"
	"github.com/gitrdm/sldprolog/internal/registry"
	"github.com/gitrdm/sldprolog/internal/term"
)

// Binding is one entry of a Solution: the source name of a query
// variable paired with its fully dereferenced value.
type Binding struct {
	Name  string
	Value term.Term
}

// Solution is the ordered set of bindings for a query's free,
// non-anonymous variables, in first-occurrence order (spec.md §6).
type Solution []Binding

// Resolver ties a knowledge base, interner and arithmetic evaluator
// together and starts new proof searches against them. MaxDepth, when
// positive, bounds the number of clause-resolution steps a single query
// may take before it fails with a ResourceError (spec.md §7); zero means
// unbounded.
type Resolver struct {
	KB       *KnowledgeBase
	Interner *interner.Interner
	Eval     *Evaluator
	Log      hclog.Logger
	MaxDepth int

	// TraceOnBacktrack, when set, makes every backtrack step and choice
	// point exhaustion emit a Log.Debug line naming the goal
	// involved (SPEC_FULL.md §2).
	TraceOnBacktrack bool
}

// NewResolver builds a Resolver sharing in across the knowledge base,
// interner and arithmetic evaluator.
func NewResolver(kb *KnowledgeBase, in *interner.Interner, log hclog.Logger) *Resolver {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Resolver{KB: kb, Interner: in, Eval: NewEvaluator(in), Log: log}
}

// Resolve starts a depth-first search for query, a compiled query clause
// (compile.CompiledClause.IsQuery == true). The returned SolutionIterator
// yields one Solution per call to Next until the search is exhausted.
func (r *Resolver) Resolve(query *compile.CompiledClause) *SolutionIterator {
	trail := term.NewTrail()
	vars := queryVars(query)

	return &SolutionIterator{
		r:     r,
		trail: trail,
		cont:  push(nil, query.Body, nil, 0),
		vars:  vars,
	}
}

// queryVars collects the distinct free variables reachable from a
// query's body, in first-occurrence order, skipping anonymous ones -
// these are exactly the variables a Solution reports bindings for.
func queryVars(query *compile.CompiledClause) []*term.Var {
	seen := make(map[*term.Var]bool)
	var vars []*term.Var
	var visit func(t term.Term)
	visit = func(t term.Term) {
		switch n := t.(type) {
		case *term.Var:
			if n.Anonymous || seen[n] {
				return
			}
			seen[n] = true
			vars = append(vars, n)
		case *term.Functor:
			for _, a := range n.Args {
				visit(a)
			}
		}
	}
	for _, g := range query.Body {
		visit(g.Functor)
	}
	return vars
}

// SolutionIterator walks the choice-point stack of one query, producing
// solutions on demand (spec.md §5: "a solution is produced by running
// the search until the next leaf with an empty goal stack; control then
// returns to the caller, which may request the next answer"). It is not
// safe for concurrent use by multiple goroutines.
type SolutionIterator struct {
	r     *Resolver
	trail *term.Trail
	cont  *goalNode
	cps   []*choicePoint
	vars  []*term.Var

	depth       int
	hasSolution bool
	exhausted   bool
}

// Next advances the search to the next solution. ok is false once the
// search space is exhausted; err is non-nil only for the typed errors of
// spec.md §7 (ArithmeticError, TypeError, ResourceError) or for ctx's own
// error once it is cancelled or past its deadline, and either aborts the
// query.
func (it *SolutionIterator) Next(ctx context.Context) (Solution, bool, error) {
	if it.exhausted {
		return nil, false, nil
	}
	if it.hasSolution {
		it.hasSolution = false
		if !it.backtrack() {
			it.exhausted = true
			return nil, false, nil
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			it.exhausted = true
			return nil, false, err
		}

		if it.cont == nil {
			it.hasSolution = true
			return it.readSolution(), true, nil
		}

		ok, err := it.step()
		if err != nil {
			it.exhausted = true
			return nil, false, err
		}
		if !ok {
			if !it.backtrack() {
				it.exhausted = true
				return nil, false, nil
			}
		}
	}
}

// readSolution dereferences every query variable's current binding.
func (it *SolutionIterator) readSolution() Solution {
	sol := make(Solution, len(it.vars))
	for i, v := range it.vars {
		name, _ := it.r.Interner.VarName(v.NameID)
		sol[i] = Binding{Name: name, Value: term.Resolve(v, nil)}
	}
	return sol
}

// backtrack restores the trail to the most recent live choice point and
// asks it for its next alternative, popping exhausted choice points
// along the way.
func (it *SolutionIterator) backtrack() bool {
	for len(it.cps) > 0 {
		cp := it.cps[len(it.cps)-1]
		it.trail.UndoTo(cp.trailLen)
		if cont, ok := cp.next(it.trail); ok {
			if it.r.TraceOnBacktrack {
				it.r.Log.Debug("backtrack", "goal", cp.label(), "choice_points", len(it.cps))
			}
			it.cont = cont
			return true
		}
		if it.r.TraceOnBacktrack {
			it.r.Log.Debug("choice point exhausted", "goal", cp.label(), "choice_points", len(it.cps)-1)
		}
		it.cps = it.cps[:len(it.cps)-1]
	}
	return false
}

// step pops the top goal and dispatches it by Kind. ok is false if the
// goal failed (the caller must backtrack); err is non-nil for a fatal
// typed error.
func (it *SolutionIterator) step() (bool, error) {
	g := it.cont
	it.cont = g.next

	switch g.goal.Kind {
	case registry.True:
		return true, nil

	case registry.Fail:
		return false, nil

	case registry.Cut:
		if g.cutParent < len(it.cps) {
			it.cps = it.cps[:g.cutParent]
		}
		return true, nil

	case registry.UnifyGoal:
		args := g.goal.Functor.Args
		ok := term.Unify(args[0], g.frame, it.trail, args[1], g.frame, it.trail)
		return ok, nil

	case registry.NotUnifiable:
		args := g.goal.Functor.Args
		mark := it.trail.Len()
		ok := term.Unify(args[0], g.frame, it.trail, args[1], g.frame, it.trail)
		it.trail.UndoTo(mark)
		return !ok, nil

	case registry.Is:
		args := g.goal.Functor.Args
		val, err := it.r.Eval.Eval(args[1], g.frame)
		if err != nil {
			return false, err
		}
		ok := term.Unify(args[0], g.frame, it.trail, val, nil, it.trail)
		return ok, nil

	case registry.Compare:
		args := g.goal.Functor.Args
		ok, err := it.r.Eval.Compare(compareOps[g.goal.CompareOp], args[0], args[1], g.frame)
		return ok, err

	case registry.TypeCheck:
		return it.typeCheck(g), nil

	case registry.Disj:
		return it.stepDisj(g), nil

	case registry.Conj:
		second := &goalNode{goal: g.goal.SubGoals[1], frame: g.frame, cutParent: g.cutParent, next: it.cont}
		it.cont = &goalNode{goal: g.goal.SubGoals[0], frame: g.frame, cutParent: g.cutParent, next: second}
		return true, nil

	case registry.Call:
		return it.stepCall(g)

	case registry.Default:
		return it.stepDefault(g)

	default:
		return false, &TypeError{Goal: "unknown", Detail: "unrecognized built-in kind"}
	}
}

func (it *SolutionIterator) typeCheck(g *goalNode) bool {
	v, _ := term.Deref(g.goal.Functor.Args[0], g.frame)
	switch g.goal.TypeOp {
	case registry.CheckInteger:
		_, ok := v.(*term.Int)
		return ok
	case registry.CheckFloat:
		_, ok := v.(*term.Float)
		return ok
	case registry.CheckVar:
		return term.IsVar(v)
	case registry.CheckNonVar:
		return !term.IsVar(v)
	default:
		return false
	}
}

func (it *SolutionIterator) stepDisj(g *goalNode) bool {
	left := &goalNode{goal: g.goal.SubGoals[0], frame: g.frame, cutParent: g.cutParent, next: it.cont}
	right := &goalNode{goal: g.goal.SubGoals[1], frame: g.frame, cutParent: g.cutParent, next: it.cont}

	it.cps = append(it.cps, &choicePoint{trailLen: it.trail.Len(), alt: []*goalNode{left, right}, idx: 1})
	it.cont = left
	return true
}

func (it *SolutionIterator) stepCall(g *goalNode) (bool, error) {
	arg := g.goal.Functor.Args[0]
	target, targetFrame := term.Deref(arg, g.frame)

	switch t := target.(type) {
	case *term.Functor:
		wrapped := compile.Wrap(it.r.Interner, t)
		it.cont = &goalNode{goal: wrapped, frame: targetFrame, cutParent: len(it.cps), next: it.cont}
		return true, nil
	case *term.Var, *term.StackVar:
		return false, &TypeError{Goal: "call/1", Detail: "instantiation error: unbound goal"}
	default:
		return false, &TypeError{Goal: "call/1", Detail: "not callable"}
	}
}

func (it *SolutionIterator) stepDefault(g *goalNode) (bool, error) {
	it.depth++
	if it.r.MaxDepth > 0 && it.depth > it.r.MaxDepth {
		return false, &ResourceError{Detail: "maximum resolution depth exceeded"}
	}

	candidates := it.r.KB.ClausesFor(g.goal.Functor.NameID, g.goal.Functor.Arity())
	if len(candidates) == 0 {
		return false, nil
	}

	cp := &choicePoint{
		trailLen:    it.trail.Len(),
		candidates:  candidates,
		goalFunctor: g.goal.Functor,
		goalFrame:   g.frame,
		cont:        it.cont,
		bodyCut:     len(it.cps),
	}
	it.cps = append(it.cps, cp)

	cont, ok := cp.next(it.trail)
	if !ok {
		it.cps = it.cps[:len(it.cps)-1]
		return false, nil
	}
	it.cont = cont
	return true, nil
}

// compareOps maps each registry.CompareOp to its int/float test,
// constructed once at package init rather than per-goal.
var compareOps = map[registry.CompareOp]compareFn{
	registry.LessThan:        {int: func(a, b int64) bool { return a < b }, float: func(a, b float64) bool { return a < b }},
	registry.LessOrEqual:     {int: func(a, b int64) bool { return a <= b }, float: func(a, b float64) bool { return a <= b }},
	registry.GreaterThan:     {int: func(a, b int64) bool { return a > b }, float: func(a, b float64) bool { return a > b }},
	registry.GreaterOrEqual:  {int: func(a, b int64) bool { return a >= b }, float: func(a, b float64) bool { return a >= b }},
	registry.ArithEqual:      {int: func(a, b int64) bool { return a == b }, float: func(a, b float64) bool { return a == b }},
	registry.ArithNotEqual:   {int: func(a, b int64) bool { return a != b }, float: func(a, b float64) bool { return a != b }},
}
