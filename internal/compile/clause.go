// Package compile rewrites a source clause - as produced by the parser,
// using plain term.Var and term.Functor nodes - into an executable
// CompiledClause: every free variable of a program clause becomes a
// numbered stack-slot variable, and every body goal is wrapped into a
// BuiltinGoal dispatch node (spec.md §4.2).
package compile

import (
	"errors"

	"github.com/gitrdm/sldprolog/internal/term"
)

// SourceClause is the parser's output shape for one clause: an optional
// Head (nil for a query) and an ordered Body of goal functors. Head and
// Body terms use plain term.Var nodes; the same *term.Var pointer is
// reused for every occurrence of one source variable within the clause,
// so the compiler can tell repeated occurrences apart by identity.
type SourceClause struct {
	Head *term.Functor
	Body []*term.Functor
}

// IsQuery reports whether this is a headless query.
func (sc *SourceClause) IsQuery() bool { return sc.Head == nil }

// CompiledClause is a clause ready to be loaded into a knowledge base or
// run as a query: its variables are stack-slot variables sized to
// StackSize (program clauses) or left as free term.Var (queries), and
// every body element is a BuiltinGoal.
type CompiledClause struct {
	Head      *term.Functor // nil for a query
	Body      []*BuiltinGoal
	StackSize int // required frame size; 0 for queries
	IsQuery   bool

	// Name/Arity mirror Head's identity for knowledge-base indexing, and
	// are zero for a query (which is never loaded into a knowledge base).
	Name  int32
	Arity int
}

var errNilClause = errors.New("compile: nil source clause")
var errNilBodyElement = errors.New("compile: nil body element")
