package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appcypher/wasmo/internal/wasm"
)

func TestValidationStack_pushPopOrder(t *testing.T) {
	s := newValidationStack()
	s.push(stackEntry{valueType: wasm.ValueTypeI32, operatorRef: 0})
	s.push(stackEntry{valueType: wasm.ValueTypeI64, operatorRef: 1})
	require.Equal(t, 2, s.size())

	top, ok := s.pop()
	require.True(t, ok)
	require.Equal(t, wasm.ValueTypeI64, top.valueType)
	require.Equal(t, 1, top.operatorRef)

	top, ok = s.pop()
	require.True(t, ok)
	require.Equal(t, wasm.ValueTypeI32, top.valueType)

	_, ok = s.pop()
	require.False(t, ok)
}

func TestValidationStack_refs_bottomToTop(t *testing.T) {
	s := newValidationStack()
	s.push(stackEntry{valueType: wasm.ValueTypeI32, operatorRef: 3})
	s.push(stackEntry{valueType: wasm.ValueTypeI32, operatorRef: 7})
	require.Equal(t, []int{3, 7}, s.refs())
}

func TestValidationStack_typesMatch(t *testing.T) {
	s := newValidationStack()
	s.push(stackEntry{valueType: wasm.ValueTypeI32, operatorRef: 0})
	s.push(stackEntry{valueType: wasm.ValueTypeF64, operatorRef: 1})

	require.True(t, s.typesMatch([]wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeF64}))
	require.False(t, s.typesMatch([]wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI32}))
	require.False(t, s.typesMatch([]wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeF64, wasm.ValueTypeI32}))
}

// popExpecting pops rhs first (top of stack) but reports refs in declared
// lhs-then-rhs order, matching a binary operator's operand convention.
func TestValidationStack_popExpecting_reportsLhsThenRhs(t *testing.T) {
	s := newValidationStack()
	s.push(stackEntry{valueType: wasm.ValueTypeI32, operatorRef: 10}) // lhs, pushed first
	s.push(stackEntry{valueType: wasm.ValueTypeI32, operatorRef: 20}) // rhs, pushed second (top)

	refs, ok := s.popExpecting([]wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI32})
	require.True(t, ok)
	require.Equal(t, []int{10, 20}, refs)
	require.Equal(t, 0, s.size())
}

func TestValidationStack_popExpecting_typeMismatch(t *testing.T) {
	s := newValidationStack()
	s.push(stackEntry{valueType: wasm.ValueTypeI32, operatorRef: 0})
	s.push(stackEntry{valueType: wasm.ValueTypeF64, operatorRef: 1})

	_, ok := s.popExpecting([]wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI32})
	require.False(t, ok)
	// A failed popExpecting must not mutate the stack.
	require.Equal(t, 2, s.size())
}
