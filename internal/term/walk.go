package term

// Resolve fully dereferences t (and, recursively, every argument of every
// Functor reachable from t) into a self-contained term that no longer
// depends on frame: any StackVar still unbound at read-out time is
// rewritten to a fresh, non-anonymous Var carrying the same name id, so
// that the returned term survives the frame being discarded on
// backtrack. Used to read a solution's bindings out of their storage
// cells once a proof has succeeded.
func Resolve(t Term, frame *Frame) Term {
	d, df := Deref(t, frame)
	switch v := d.(type) {
	case *StackVar:
		// Still unbound: detach from the doomed frame.
		return NewVar(v.NameID, false)
	case *Functor:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = Resolve(a, df)
		}
		return NewFunctor(v.NameID, args...)
	default:
		return d
	}
}

// IsGround reports whether t, read in frame, contains no unbound
// variable anywhere in its structure.
func IsGround(t Term, frame *Frame) bool {
	d, df := Deref(t, frame)
	switch v := d.(type) {
	case *Var:
		return false
	case *StackVar:
		return false
	case *Functor:
		for _, a := range v.Args {
			if !IsGround(a, df) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
