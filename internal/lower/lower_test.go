package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appcypher/wasmo/internal/backend/refbackend"
	"github.com/appcypher/wasmo/internal/wasm"
)

// addTwoConstsModule builds a single function `() -> i32` whose body is
// `i32.const 2; i32.const 3; i32.add; end`.
func addTwoConstsModule() *wasm.Module {
	ops := []wasm.Operator{
		{Opcode: wasm.OpI32Const, ConstI32: 2},
		{Opcode: wasm.OpI32Const, ConstI32: 3},
		{Opcode: wasm.OpI32Add, OperandRefs: []int{0, 1}},
	}
	return &wasm.Module{
		Types:               []wasm.FuncSignature{{Results: []wasm.ValueType{wasm.ValueTypeI32}}},
		FunctionTypeIndices: []uint32{0},
		Functions: []wasm.Function{
			{TypeIndex: 0, Operators: ops, ResultRefs: []int{2}},
		},
	}
}

func TestModule_lowersAndAssembles(t *testing.T) {
	ctx := refbackend.NewContext()
	compiled, err := Module(ctx, addTwoConstsModule())
	require.NoError(t, err)
	require.NotNil(t, compiled)
	require.NotEmpty(t, compiled.FunctionCode(0))
}

func TestFunction_localGetSetAndParams(t *testing.T) {
	// (param i32) (result i32): local.get 0; local.set 1 (declared local);
	// local.get 1; end — exercises param indexing, declared-local
	// zero-initialization being overwritten, and the +1 instance-context shift.
	ops := []wasm.Operator{
		{Opcode: wasm.OpLocalGet, LocalIndex: 0},
		{Opcode: wasm.OpLocalSet, LocalIndex: 1, OperandRefs: []int{0}},
		{Opcode: wasm.OpLocalGet, LocalIndex: 1},
	}
	m := &wasm.Module{
		Types:               []wasm.FuncSignature{{Params: []wasm.ValueType{wasm.ValueTypeI32}, Results: []wasm.ValueType{wasm.ValueTypeI32}}},
		FunctionTypeIndices: []uint32{0},
		Functions: []wasm.Function{
			{
				TypeIndex:  0,
				Locals:     []wasm.Local{{Count: 1, Type: wasm.ValueTypeI32}},
				Operators:  ops,
				ResultRefs: []int{2},
			},
		},
	}
	ctx := refbackend.NewContext()
	compiled, err := Module(ctx, m)
	require.NoError(t, err)
	require.NotEmpty(t, compiled.FunctionCode(0))
}

func TestFunction_blockResultFlowsToReturn(t *testing.T) {
	// () -> i32: block (result i32) { i32.const 9 } end; end
	block := wasm.Operator{
		Opcode:        wasm.OpBlock,
		Body:          []wasm.Operator{{Opcode: wasm.OpI32Const, ConstI32: 9}},
		ResultType:    wasm.BlockType(wasm.ValueTypeI32),
		BodyResultRef: 0,
	}
	m := &wasm.Module{
		Types:               []wasm.FuncSignature{{Results: []wasm.ValueType{wasm.ValueTypeI32}}},
		FunctionTypeIndices: []uint32{0},
		Functions: []wasm.Function{
			{TypeIndex: 0, Operators: []wasm.Operator{block}, ResultRefs: []int{0}},
		},
	}
	ctx := refbackend.NewContext()
	compiled, err := Module(ctx, m)
	require.NoError(t, err)
	require.NotEmpty(t, compiled.FunctionCode(0))
}

func TestOperator_globalGetLowersThroughInstanceContext(t *testing.T) {
	// () -> i32: global.get 0; end
	m := &wasm.Module{
		Types:               []wasm.FuncSignature{{Results: []wasm.ValueType{wasm.ValueTypeI32}}},
		FunctionTypeIndices: []uint32{0},
		Globals:             []wasm.Global{{Type: wasm.ValueTypeI32, Mutable: true}},
		Functions: []wasm.Function{
			{
				TypeIndex:  0,
				Operators:  []wasm.Operator{{Opcode: wasm.OpGlobalGet, GlobalIndex: 0}},
				ResultRefs: []int{0},
			},
		},
	}
	ctx := refbackend.NewContext()
	compiled, err := Module(ctx, m)
	require.NoError(t, err)
	require.NotEmpty(t, compiled.FunctionCode(0))
}

func TestOperator_globalSetLowersThroughInstanceContext(t *testing.T) {
	// (param i32): global.set 0; end
	m := &wasm.Module{
		Types:               []wasm.FuncSignature{{Params: []wasm.ValueType{wasm.ValueTypeI32}}},
		FunctionTypeIndices: []uint32{0},
		Globals:             []wasm.Global{{Type: wasm.ValueTypeI32, Mutable: true}},
		Functions: []wasm.Function{
			{
				TypeIndex: 0,
				Operators: []wasm.Operator{
					{Opcode: wasm.OpLocalGet, LocalIndex: 0},
					{Opcode: wasm.OpGlobalSet, GlobalIndex: 0, OperandRefs: []int{0}},
				},
			},
		},
	}
	ctx := refbackend.NewContext()
	compiled, err := Module(ctx, m)
	require.NoError(t, err)
	require.NotEmpty(t, compiled.FunctionCode(0))
}

func TestOperator_globalGetUnknownIndexErrors(t *testing.T) {
	m := &wasm.Module{
		Types:               []wasm.FuncSignature{{}},
		FunctionTypeIndices: []uint32{0},
		Functions: []wasm.Function{
			{TypeIndex: 0, Operators: []wasm.Operator{{Opcode: wasm.OpGlobalGet, GlobalIndex: 5}}},
		},
	}
	ctx := refbackend.NewContext()
	_, err := Module(ctx, m)
	require.Error(t, err)
}

func TestOperator_unsupportedOpcodeErrors(t *testing.T) {
	m := &wasm.Module{
		Types:               []wasm.FuncSignature{{}},
		FunctionTypeIndices: []uint32{0},
		Functions: []wasm.Function{
			{TypeIndex: 0, Operators: []wasm.Operator{{Opcode: wasm.Opcode(0xFC)}}},
		},
	}
	ctx := refbackend.NewContext()
	_, err := Module(ctx, m)
	require.Error(t, err)
}

func TestToFnType_prependsInstanceContext(t *testing.T) {
	ctx := refbackend.NewContext()
	instanceCtxType := ctx.I64Type() // stand-in handle, shape irrelevant to the count assertion
	sig := wasm.FuncSignature{Params: []wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeF64}}
	fnType := toFnType(ctx, instanceCtxType, sig)
	require.Len(t, fnType.Params, 3)
}
