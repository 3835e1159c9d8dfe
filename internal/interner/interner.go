// Package interner implements the name<->id maps the core consumes as an
// external collaborator (spec.md §6): a compact integer id for every
// distinct functor identity (name, arity) and every distinct variable
// name encountered while compiling source clauses.
//
// An Interner is a process-wide structure: ids increase monotonically and
// are never reused, and there is no mid-query reset (spec.md §5). It is
// safe for concurrent use.
package interner

import "sync"

// FunctorKey identifies a functor by its surface name and arity, exactly
// as spec.md describes: "functor names are compound of (string-name,
// arity)".
type FunctorKey struct {
	Name  string
	Arity int
}

// Interner maps functor and variable names to compact int32 ids, and
// back.
type Interner struct {
	mu sync.RWMutex

	functorIDs   map[FunctorKey]int32
	functorNames []FunctorKey

	varIDs   map[string]int32
	varNames []string
}

// New creates an empty interner.
func New() *Interner {
	return &Interner{
		functorIDs: make(map[FunctorKey]int32),
		varIDs:     make(map[string]int32),
	}
}

// Functor returns the id for (name, arity), allocating a new one on first
// use.
func (in *Interner) Functor(name string, arity int) int32 {
	key := FunctorKey{Name: name, Arity: arity}

	in.mu.RLock()
	if id, ok := in.functorIDs[key]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.functorIDs[key]; ok {
		return id
	}
	id := int32(len(in.functorNames))
	in.functorIDs[key] = id
	in.functorNames = append(in.functorNames, key)
	return id
}

// FunctorName returns the (name, arity) for a previously interned
// functor id. ok is false for an id never issued by this interner.
func (in *Interner) FunctorName(id int32) (FunctorKey, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id < 0 || int(id) >= len(in.functorNames) {
		return FunctorKey{}, false
	}
	return in.functorNames[id], true
}

// Var returns the id for a variable name, allocating a new one on first
// use within whatever scope the caller is interning (typically: one
// source clause). Callers that need scoping per-clause should use a
// fresh Interner per clause read, or track their own per-clause variable
// map instead of relying on this for program variables (internal/compile
// keys its slot map by *term.Var identity).
func (in *Interner) Var(name string) int32 {
	in.mu.RLock()
	if id, ok := in.varIDs[name]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.varIDs[name]; ok {
		return id
	}
	id := int32(len(in.varNames))
	in.varIDs[name] = id
	in.varNames = append(in.varNames, name)
	return id
}

// VarName returns the name for a previously interned variable id.
func (in *Interner) VarName(id int32) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id < 0 || int(id) >= len(in.varNames) {
		return "", false
	}
	return in.varNames[id], true
}
