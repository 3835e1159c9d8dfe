package term

// Trail is an append-only record of cells bound while resolving one step
// of a proof. Undo clears every recorded cell in reverse order; because a
// cell only ever transitions free -> bound once within a trail's
// lifetime, clearing is enough to restore it, with no separate log of
// prior values required.
type Trail struct {
	cells []*Cell
}

// NewTrail returns an empty trail.
func NewTrail() *Trail { return &Trail{} }

// record appends a newly-bound cell. Called only by bindVar.
func (t *Trail) record(c *Cell) {
	t.cells = append(t.cells, c)
}

// Len reports how many bindings this trail currently holds.
func (t *Trail) Len() int { return len(t.cells) }

// Undo unbinds every cell this trail recorded, most recent first, and
// empties the trail.
func (t *Trail) Undo() {
	t.UndoTo(0)
}

// UndoTo unbinds every cell recorded since mark (a previously observed
// Len()), most recent first, and truncates the trail back to mark. This
// is the mark/release pattern a resolver uses at every choice point: Len()
// is recorded before a candidate is tried, and UndoTo(mark) restores
// exactly the state before that candidate's bindings were made, leaving
// everything recorded prior to the choice point untouched.
func (t *Trail) UndoTo(mark int) {
	for i := len(t.cells) - 1; i >= mark; i-- {
		c := t.cells[i]
		c.Bound = false
		c.Value = nil
		c.Frame = nil
	}
	t.cells = t.cells[:mark]
}

// Deref walks t through bound Var/StackVar cells until it reaches an
// unbound variable or a non-variable term, returning that term together
// with the Frame in which the term's own nested StackVariables (if any)
// must be interpreted. A Functor's arguments are only meaningful relative
// to the Frame returned alongside it, not the Frame passed in.
func Deref(t Term, frame *Frame) (Term, *Frame) {
	for {
		switch v := t.(type) {
		case *Var:
			c := v.Cell()
			if !c.Bound {
				return t, frame
			}
			t, frame = c.Value, c.Frame
		case *StackVar:
			c := frame.At(v.Slot)
			if !c.Bound {
				return t, frame
			}
			t, frame = c.Value, c.Frame
		default:
			return t, frame
		}
	}
}

// bindVar binds cell (owned, post-redirection, by the variable being
// bound) to t interpreted in tFrame, and records the binding on trail so
// it can later be undone.
func bindVar(cell *Cell, t Term, tFrame *Frame, trail *Trail) {
	cell.Bound = true
	cell.Value = t
	cell.Frame = tFrame
	trail.record(cell)
}

// Unify implements the two-sided Robinson unification of spec.md §4.1:
// left is interpreted in leftFrame and any binding made to one of its
// variables is recorded on leftTrail; right and rightFrame/rightTrail are
// symmetric. Every binding made is recorded on its trail regardless of
// the final outcome, so a caller that gets false back is responsible for
// undoing leftTrail/rightTrail itself (typically by discarding the whole
// resolution state the trail belongs to).
//
// There is no occurs check, matching spec.md's stated non-goal.
func Unify(left Term, leftFrame *Frame, leftTrail *Trail, right Term, rightFrame *Frame, rightTrail *Trail) bool {
	l, lf := Deref(left, leftFrame)
	r, rf := Deref(right, rightFrame)

	if sameCell(l, lf, r, rf) {
		return true
	}

	if cell, ok := varCell(l, lf); ok {
		bindVar(cell, r, rf, leftTrail)
		return true
	}
	if cell, ok := varCell(r, rf); ok {
		bindVar(cell, l, lf, rightTrail)
		return true
	}

	switch lv := l.(type) {
	case *Int:
		rv, ok := r.(*Int)
		return ok && rv.Value == lv.Value
	case *Float:
		rv, ok := r.(*Float)
		return ok && rv.Value == lv.Value
	case *Functor:
		rv, ok := r.(*Functor)
		if !ok || rv.NameID != lv.NameID || len(rv.Args) != len(lv.Args) {
			return false
		}
		for i := range lv.Args {
			if !Unify(lv.Args[i], lf, leftTrail, rv.Args[i], rf, rightTrail) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// varCell returns the storage cell of t (an unbound Var or StackVar,
// already dereferenced) along with ok=true, or ok=false if t is not a
// variable.
func varCell(t Term, frame *Frame) (*Cell, bool) {
	switch v := t.(type) {
	case *Var:
		return v.Cell(), true
	case *StackVar:
		return frame.At(v.Slot), true
	default:
		return nil, false
	}
}

// sameCell reports whether l and r, both already dereferenced, denote the
// exact same storage location - the "identical objects" fast path of
// spec.md §4.1 step 1, which must contribute zero new bindings.
func sameCell(l Term, lf *Frame, r Term, rf *Frame) bool {
	switch lv := l.(type) {
	case *Var:
		rv, ok := r.(*Var)
		return ok && lv.Cell() == rv.Cell()
	case *StackVar:
		rv, ok := r.(*StackVar)
		return ok && lf == rf && lv.Slot == rv.Slot
	default:
		return false
	}
}
