package resolve

import (
	"sync"

	"github.com/gitrdm/sldprolog/internal/compile"
)

type predicateKey struct {
	name  int32
	arity int
}

// KnowledgeBase indexes compiled program clauses by (name, arity).
// Clauses are kept in declared insertion order within each
// bucket, matching spec.md §5's "candidate clauses for a goal are tried
// in their declared insertion order".
//
// A KnowledgeBase is shared read-only for the duration of a query
// (spec.md §5); Add/Clear must not be called while a query from Resolve
// is still being iterated.
type KnowledgeBase struct {
	mu      sync.RWMutex
	clauses map[predicateKey][]*compile.CompiledClause
}

// NewKnowledgeBase returns an empty knowledge base.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{clauses: make(map[predicateKey][]*compile.CompiledClause)}
}

// Add loads a compiled program clause, appending it after any existing
// clauses for the same (name, arity).
func (kb *KnowledgeBase) Add(cc *compile.CompiledClause) {
	key := predicateKey{cc.Name, cc.Arity}
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.clauses[key] = append(kb.clauses[key], cc)
}

// ClausesFor returns the candidate clauses for (name, arity), in
// declared order. The returned slice must not be mutated by the caller;
// it aliases the knowledge base's own storage.
func (kb *KnowledgeBase) ClausesFor(name int32, arity int) []*compile.CompiledClause {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return kb.clauses[predicateKey{name, arity}]
}

// Clear empties the knowledge base, as required by reset() (spec.md §6).
func (kb *KnowledgeBase) Clear() {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.clauses = make(map[predicateKey][]*compile.CompiledClause)
}
