package prolog

import (
	"strconv"
	"strings"

	"github.com/gitrdm/sldprolog/internal/interner"
	"github.com/gitrdm/sldprolog/internal/term"
)

// PrintTerm is a fully resolved term paired with the interner needed to
// render its functor and variable ids back to source names.
type PrintTerm struct {
	t  term.Term
	in *interner.Interner
}

func (p PrintTerm) String() string {
	return printTerm(p.t, p.in)
}

// Binding pairs a query variable's source name with its solution value.
type Binding struct {
	Name string
	Term PrintTerm
}

// Solution is the ordered set of bindings for a query's free,
// non-anonymous variables, in first-occurrence order (spec.md §6).
type Solution []Binding

func printTerm(t term.Term, in *interner.Interner) string {
	switch v := t.(type) {
	case *term.Int:
		return strconv.FormatInt(v.Value, 10)
	case *term.Float:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case *term.Var:
		if v.Anonymous {
			return "_"
		}
		name, ok := in.VarName(v.NameID)
		if !ok {
			return "_"
		}
		return name
	case *term.Functor:
		return printFunctor(v, in)
	default:
		return "?"
	}
}

func printFunctor(f *term.Functor, in *interner.Interner) string {
	key, ok := in.FunctorName(f.NameID)
	name := key.Name
	if !ok {
		name = "?"
	}

	if name == "." && len(f.Args) == 2 {
		return printList(f, in)
	}
	if len(f.Args) == 0 {
		return name
	}

	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = printTerm(a, in)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// printList renders a "."/2 chain as conventional list syntax,
// preserving an improper tail (e.g. "[1, 2|X]") when present.
func printList(f *term.Functor, in *interner.Interner) string {
	var items []string
	var cur term.Term = f
	for {
		cf, ok := cur.(*term.Functor)
		if !ok {
			break
		}
		key, ok := in.FunctorName(cf.NameID)
		if !ok || key.Name != "." || len(cf.Args) != 2 {
			break
		}
		items = append(items, printTerm(cf.Args[0], in))
		cur = cf.Args[1]
	}

	if af, ok := cur.(*term.Functor); ok {
		if key, ok := in.FunctorName(af.NameID); ok && key.Name == "[]" && len(af.Args) == 0 {
			return "[" + strings.Join(items, ", ") + "]"
		}
	}
	return "[" + strings.Join(items, ", ") + "|" + printTerm(cur, in) + "]"
}
