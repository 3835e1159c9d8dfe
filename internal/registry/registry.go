// Package registry is the built-in lookup table of spec.md §4.4: a pure,
// data-driven mapping from a functor's (name, arity) to the tagged
// dispatch variant the compiler should rewrite it into. It holds no
// behavior - execution of each Kind lives in internal/resolve, which is
// the only package that needs to know what a Kind actually does. Keeping
// the table here lets the compiler depend on it without depending on the
// resolver, and avoids reflective or name-based dispatch at proof-search
// time (spec.md §9).
package registry

// Kind tags a recognized built-in functor. Default is not a table entry;
// it is what the compiler assigns to any functor that misses the table.
type Kind int

const (
	Default Kind = iota
	True
	Fail
	Cut
	UnifyGoal
	NotUnifiable
	Is
	Disj
	Conj
	Call
	Compare
	TypeCheck
)

func (k Kind) String() string {
	switch k {
	case Default:
		return "default"
	case True:
		return "true"
	case Fail:
		return "fail"
	case Cut:
		return "cut"
	case UnifyGoal:
		return "unify"
	case NotUnifiable:
		return "not_unifiable"
	case Is:
		return "is"
	case Disj:
		return "disj"
	case Conj:
		return "conj"
	case Call:
		return "call"
	case Compare:
		return "compare"
	case TypeCheck:
		return "type_check"
	default:
		return "unknown"
	}
}

// CompareOp distinguishes the comparison built-ins, all of which share
// the Compare Kind.
type CompareOp int

const (
	LessThan CompareOp = iota
	LessOrEqual
	GreaterThan
	GreaterOrEqual
	ArithEqual
	ArithNotEqual
)

// TypeCheckOp distinguishes the type-check built-ins, all of which share
// the TypeCheck Kind.
type TypeCheckOp int

const (
	CheckInteger TypeCheckOp = iota
	CheckFloat
	CheckVar
	CheckNonVar
)

// Entry is one built-in table row: its dispatch Kind, plus whichever of
// CompareOp/TypeCheckOp disambiguates it (the unused one is zero and
// ignored by the resolver).
type Entry struct {
	Kind      Kind
	CompareOp CompareOp
	TypeOp    TypeCheckOp
}

type key struct {
	name  string
	arity int
}

// table is the fixed built-in set: the 14 named in spec.md §4.4 (true/0,
// fail/0, !/0, =/2, \=/2, is/2, ;/2, call/1, >/2, >=/2, </2, =</2,
// integer/1, float/1) plus the small, ISO-standard supplement documented
// in SPEC_FULL.md §9 (=:=/2, =\=/2, var/1, nonvar/1), plus ','/2
// (conjunction): the parser only leaves a ','/2 functor in a goal when a
// comma appears nested inside another term, such as a disjunction branch
// or a call/1 argument (a clause's top-level comma-separated goals are
// split directly into Body, per spec.md §3), but that nested case still
// needs a dispatch Kind of its own to splice
// both arguments onto the goal stack rather than looking them up as a
// user predicate.
var table = map[key]Entry{
	{"true", 0}: {Kind: True},
	{"fail", 0}: {Kind: Fail},
	{"!", 0}:    {Kind: Cut},

	{"=", 2}:  {Kind: UnifyGoal},
	{"\\=", 2}: {Kind: NotUnifiable},
	{"is", 2}: {Kind: Is},
	{";", 2}:  {Kind: Disj},
	{",", 2}:  {Kind: Conj},
	{"call", 1}: {Kind: Call},

	{">", 2}:  {Kind: Compare, CompareOp: GreaterThan},
	{">=", 2}: {Kind: Compare, CompareOp: GreaterOrEqual},
	{"<", 2}:  {Kind: Compare, CompareOp: LessThan},
	{"=<", 2}: {Kind: Compare, CompareOp: LessOrEqual},
	{"=:=", 2}: {Kind: Compare, CompareOp: ArithEqual},
	{"=\\=", 2}: {Kind: Compare, CompareOp: ArithNotEqual},

	{"integer", 1}: {Kind: TypeCheck, TypeOp: CheckInteger},
	{"float", 1}:   {Kind: TypeCheck, TypeOp: CheckFloat},
	{"var", 1}:     {Kind: TypeCheck, TypeOp: CheckVar},
	{"nonvar", 1}:  {Kind: TypeCheck, TypeOp: CheckNonVar},
}

// Lookup reports the dispatch Entry for (name, arity), if any. A miss
// means the compiler should wrap the functor as a Default built-in goal
// instead.
func Lookup(name string, arity int) (Entry, bool) {
	e, ok := table[key{name, arity}]
	return e, ok
}
