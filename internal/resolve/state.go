package resolve

import (
	"github.com/gitrdm/sldprolog/internal/compile"
	"github.com/gitrdm/sldprolog/internal/term"
)

// goalNode is one cons cell of the goal stack described in spec.md §4.3:
// a BuiltinGoal together with the stack frame its StackVariables must be
// read from, and the cutParent barrier that a Cut goal reached through
// this node prunes back to. Sharing the tail (next) across sibling
// choice points is what makes "clone the same goal stack" in spec.md's
// choice-point-creation paragraph cheap: every candidate for a goal gets
// the same cont pointer, and only the head changes.
type goalNode struct {
	goal      *compile.BuiltinGoal
	frame     *term.Frame
	cutParent int
	next      *goalNode
}

// push prepends body, in reverse order, onto cont - "pushes the clause
// body onto the goal stack in reverse order so that body[0] is examined
// first" (spec.md §4.3).
func push(cont *goalNode, body []*compile.BuiltinGoal, frame *term.Frame, cutParent int) *goalNode {
	for i := len(body) - 1; i >= 0; i-- {
		cont = &goalNode{goal: body[i], frame: frame, cutParent: cutParent, next: cont}
	}
	return cont
}

// choicePoint is a single entry of the flat choice-point stack variant
// spec.md §9 sanctions as an alternative to materializing a full
// ResolutionState tree: "a flat choice-point stack plus a cut barrier
// recorded on each call frame... implementers may choose either,
// provided the observable semantics... are preserved". Each entry knows
// how to produce its next alternative continuation, or report that it
// is exhausted.
type choicePoint struct {
	trailLen int // term.Trail length to restore to before trying the next alternative

	// Clause-resolution alternatives (Default built-in): candidates is the
	// declared-order list of matching clauses, idx is the next untried one.
	candidates  []*compile.CompiledClause
	idx         int
	goalFunctor *term.Functor
	goalFrame   *term.Frame
	cont        *goalNode // continuation to resume once a candidate's body is pushed
	bodyCut     int       // cutParent assigned to the pushed body's goals

	// Disjunction alternatives (";"/2): precomputed full continuations,
	// tried in order. alt[0] is consumed at push time by the caller, so
	// idx starts at 1.
	alt []*goalNode
}

// label names this choice point for tracing: the clause-resolution goal
// it was raised for, or "disjunction" for a ";"/2 alternative.
func (cp *choicePoint) label() string {
	if cp.goalFunctor != nil {
		return cp.goalFunctor.String()
	}
	return "disjunction"
}

// next produces the continuation for this choice point's next untried
// alternative, or ok=false once exhausted. trail is the single shared
// trail the whole resolution uses for both sides of every Unify call.
func (cp *choicePoint) next(trail *term.Trail) (cont *goalNode, ok bool) {
	if cp.alt != nil {
		if cp.idx >= len(cp.alt) {
			return nil, false
		}
		cont = cp.alt[cp.idx]
		cp.idx++
		return cont, true
	}

	for cp.idx < len(cp.candidates) {
		clause := cp.candidates[cp.idx]
		cp.idx++
		frame := term.NewFrame(clause.StackSize)
		if term.Unify(cp.goalFunctor, cp.goalFrame, trail, clause.Head, frame, trail) {
			return push(cp.cont, clause.Body, frame, cp.bodyCut), true
		}
		trail.UndoTo(cp.trailLen)
	}
	return nil, false
}
