package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpcode_string(t *testing.T) {
	require.Equal(t, "i32.add", OpI32Add.String())
	require.Equal(t, "local.get", OpLocalGet.String())
	require.Contains(t, Opcode(0xFF).String(), "Opcode")
}

func TestOpcode_arithmeticInputType(t *testing.T) {
	for _, c := range []struct {
		op   Opcode
		want ValueType
	}{
		{OpI32Add, ValueTypeI32},
		{OpI64Sub, ValueTypeI64},
		{OpF32Mul, ValueTypeF32},
		{OpF64Add, ValueTypeF64},
	} {
		vt, ok := c.op.ArithmeticInputType()
		require.True(t, ok)
		require.Equal(t, c.want, vt)
	}

	_, ok := OpLocalGet.ArithmeticInputType()
	require.False(t, ok)
}

func TestOpcode_isFloat(t *testing.T) {
	require.True(t, OpF32Add.IsFloat())
	require.True(t, OpF64Mul.IsFloat())
	require.False(t, OpI32Add.IsFloat())
	require.False(t, OpLocalGet.IsFloat())
}
