package resolve

import (
	"github.com/pkg/errors"

	"github.com/gitrdm/sldprolog/internal/interner"
	"github.com/gitrdm/sldprolog/internal/term"
)

// Evaluator implements the numeric evaluation rules of spec.md §4.3: if
// both operands are integer the result is integer, if either is double
// the result is double. It holds the interned functor ids for the fixed
// operator set so it never needs a name-string comparison on the hot
// path.
type Evaluator struct {
	plus, minus, times, quotient, mod, negate int32
}

// NewEvaluator interns the arithmetic operator functors against in.
func NewEvaluator(in *interner.Interner) *Evaluator {
	return &Evaluator{
		plus:     in.Functor("+", 2),
		minus:    in.Functor("-", 2),
		times:    in.Functor("*", 2),
		quotient: in.Functor("/", 2),
		mod:      in.Functor("mod", 2),
		negate:   in.Functor("-", 1),
	}
}

// Eval reduces t, interpreted in frame, to a fully instantiated *term.Int
// or *term.Float. is/2's instantiation requirement - every variable in
// the expression must already be bound - is checked once up front with
// term.IsGround rather than threaded through every case below.
func (e *Evaluator) Eval(t term.Term, frame *term.Frame) (term.Term, error) {
	if !term.IsGround(t, frame) {
		return nil, &ArithmeticError{Expr: t.String(), Cause: errors.New("unbound variable in arithmetic expression")}
	}

	v, vf := term.Deref(t, frame)

	switch n := v.(type) {
	case *term.Int:
		return n, nil
	case *term.Float:
		return n, nil
	case *term.Functor:
		return e.evalFunctor(n, vf)
	default:
		return nil, &ArithmeticError{Expr: v.String(), Cause: errors.New("not a number")}
	}
}

func (e *Evaluator) evalFunctor(f *term.Functor, frame *term.Frame) (term.Term, error) {
	switch len(f.Args) {
	case 1:
		if f.NameID != e.negate {
			return nil, &ArithmeticError{Expr: f.String(), Cause: errors.Errorf("unknown unary arithmetic functor")}
		}
		operand, err := e.Eval(f.Args[0], frame)
		if err != nil {
			return nil, err
		}
		switch o := operand.(type) {
		case *term.Int:
			return term.NewInt(-o.Value), nil
		case *term.Float:
			return term.NewFloat(-o.Value), nil
		}
		return nil, &ArithmeticError{Expr: f.String(), Cause: errors.New("not a number")}

	case 2:
		left, err := e.Eval(f.Args[0], frame)
		if err != nil {
			return nil, err
		}
		right, err := e.Eval(f.Args[1], frame)
		if err != nil {
			return nil, err
		}
		return e.combine(f.NameID, left, right)

	default:
		return nil, &ArithmeticError{Expr: f.String(), Cause: errors.Errorf("wrong arity for arithmetic functor")}
	}
}

func (e *Evaluator) combine(op int32, left, right term.Term) (term.Term, error) {
	li, lIsInt := left.(*term.Int)
	ri, rIsInt := right.(*term.Int)

	if lIsInt && rIsInt {
		switch op {
		case e.plus:
			return term.NewInt(li.Value + ri.Value), nil
		case e.minus:
			return term.NewInt(li.Value - ri.Value), nil
		case e.times:
			return term.NewInt(li.Value * ri.Value), nil
		case e.quotient:
			if ri.Value == 0 {
				return nil, &ArithmeticError{Expr: "/", Cause: errors.New("division by zero")}
			}
			return term.NewInt(li.Value / ri.Value), nil
		case e.mod:
			if ri.Value == 0 {
				return nil, &ArithmeticError{Expr: "mod", Cause: errors.New("division by zero")}
			}
			return term.NewInt(li.Value % ri.Value), nil
		default:
			return nil, &ArithmeticError{Expr: "?", Cause: errors.Errorf("unknown binary arithmetic functor")}
		}
	}

	lf, rf := asFloat(left), asFloat(right)
	switch op {
	case e.plus:
		return term.NewFloat(lf + rf), nil
	case e.minus:
		return term.NewFloat(lf - rf), nil
	case e.times:
		return term.NewFloat(lf * rf), nil
	case e.quotient:
		if rf == 0 {
			return nil, &ArithmeticError{Expr: "/", Cause: errors.New("division by zero")}
		}
		return term.NewFloat(lf / rf), nil
	case e.mod:
		return nil, &ArithmeticError{Expr: "mod", Cause: errors.New("mod requires integer operands")}
	default:
		return nil, &ArithmeticError{Expr: "?", Cause: errors.Errorf("unknown binary arithmetic functor")}
	}
}

func asFloat(t term.Term) float64 {
	switch v := t.(type) {
	case *term.Int:
		return float64(v.Value)
	case *term.Float:
		return v.Value
	default:
		return 0
	}
}

// Compare evaluates both sides of a comparison built-in and reports
// whether op holds between them, promoting to float per the same rules
// as Eval/combine.
func (e *Evaluator) Compare(op compareFn, left, right term.Term, frame *term.Frame) (bool, error) {
	l, err := e.Eval(left, frame)
	if err != nil {
		return false, err
	}
	r, err := e.Eval(right, frame)
	if err != nil {
		return false, err
	}

	li, lIsInt := l.(*term.Int)
	ri, rIsInt := r.(*term.Int)
	if lIsInt && rIsInt {
		return op.int(li.Value, ri.Value), nil
	}
	return op.float(asFloat(l), asFloat(r)), nil
}

// compareFn bundles the integer and float forms of a comparison so
// Compare need not switch on the CompareOp itself.
type compareFn struct {
	int   func(a, b int64) bool
	float func(a, b float64) bool
}
