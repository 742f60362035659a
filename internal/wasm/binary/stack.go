package binary

import "github.com/appcypher/wasmo/internal/wasm"

// stackEntry is a typed operand-stack slot: the value type produced, and the
// index (into the enclosing operator vector) of the operator that produced
// it. Popping an entry and wiring its OperatorRef into a consuming
// operator's OperandRefs is how the decoder replaces a reified runtime stack
// with explicit data-flow edges.
type stackEntry struct {
	valueType wasm.ValueType
	operatorRef int
}

// validationStack is the per-function (and per-block) typed operand stack
// the function decoder threads through operator emission. It starts with a
// modest preallocated capacity — most function bodies never come close to
// needing more — and grows on demand.
type validationStack struct {
	entries []stackEntry
}

func newValidationStack() *validationStack {
	return &validationStack{entries: make([]stackEntry, 0, 30)}
}

func (s *validationStack) push(e stackEntry) {
	s.entries = append(s.entries, e)
}

func (s *validationStack) pop() (stackEntry, bool) {
	if len(s.entries) == 0 {
		return stackEntry{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

func (s *validationStack) size() int {
	return len(s.entries)
}

// peekTopN returns, without popping, the top n entries in bottom-to-top
// order. Callers must ensure size() >= n.
func (s *validationStack) peekTopN(n int) []stackEntry {
	return s.entries[len(s.entries)-n:]
}

// refs returns every entry's operatorRef, bottom-to-top. Called once a
// sequence's trailing End has been reached, to recover which operators
// produced the sequence's result values without re-threading a stack through
// the lowering walk.
func (s *validationStack) refs() []int {
	refs := make([]int, len(s.entries))
	for i, e := range s.entries {
		refs[i] = e.operatorRef
	}
	return refs
}

// typesMatch compares the top len(expected) entries, bottom-to-top, against
// expected in order.
func (s *validationStack) typesMatch(expected []wasm.ValueType) bool {
	if len(s.entries) < len(expected) {
		return false
	}
	top := s.peekTopN(len(expected))
	for i, t := range expected {
		if top[i].valueType != t {
			return false
		}
	}
	return true
}

// popExpecting pops len(expected) entries and verifies, in declared order,
// that their types match expected. Two-input binary operators call this with
// [lhsType, rhsType]; the rhs (pushed later, and therefore on top) is popped
// first, matching the source's "rhs before lhs" discipline, but the
// returned refs are always reported lhs-then-rhs to match the operator's
// declared input order.
func (s *validationStack) popExpecting(expected []wasm.ValueType) (refs []int, ok bool) {
	if !s.typesMatch(expected) {
		return nil, false
	}
	refs = make([]int, len(expected))
	for i := len(expected) - 1; i >= 0; i-- {
		e, _ := s.pop()
		refs[i] = e.operatorRef
	}
	return refs, true
}
