package runtimedata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appcypher/wasmo/internal/wasm"
)

func sampleModule() *wasm.Module {
	return &wasm.Module{
		Types: []wasm.FuncSignature{
			{Results: []wasm.ValueType{wasm.ValueTypeI32}},
		},
		Imports: []wasm.Import{
			{Module: "env", Field: "log", Desc: wasm.ImportDesc{Kind: wasm.ExternalKindFunction, FunctionTypeIndex: 0}},
		},
		Tables:   []wasm.Table{{ElementType: wasm.ElemTypeFuncRef, Limits: wasm.ResizableLimits{Minimum: 1, HasMax: true, Maximum: 4}}},
		Memories: []wasm.Memory{{Limits: wasm.ResizableLimits{Minimum: 2}}},
		Globals:  []wasm.Global{{Type: wasm.ValueTypeI64, Mutable: true}},
		Functions: []wasm.Function{
			{TypeIndex: 0},
		},
		Exports: []wasm.Export{
			{Name: "main", Desc: wasm.ExportDesc{Kind: wasm.ExternalKindFunction, Index: 1}},
		},
	}
}

func TestBuildModuleData_exportsAndImports(t *testing.T) {
	data := BuildModuleData(sampleModule())

	require.Contains(t, data.Exports, "main")
	require.Equal(t, wasm.ExternalKindFunction, data.Exports["main"].Kind)

	require.Contains(t, data.Imports, "env")
	require.Contains(t, data.Imports["env"], "log")
	require.Equal(t, uint32(0), data.Imports["env"]["log"].FunctionTypeIndex)
}

func TestBuildModuleData_localsPopulatedUnbound(t *testing.T) {
	data := BuildModuleData(sampleModule())

	require.Len(t, data.Locals.Tables, 1)
	require.Equal(t, uint32(1), data.Locals.Tables[0].Limits.Minimum)
	require.True(t, data.Locals.Tables[0].Limits.HasMax)
	require.Nil(t, data.Locals.Tables[0].Ptr.Data)

	require.Len(t, data.Locals.Memories, 1)
	require.Equal(t, uint32(2), data.Locals.Memories[0].Limits.Minimum)
	require.Nil(t, data.Locals.Memories[0].Ptr)

	require.Len(t, data.Locals.Globals, 1)
	require.True(t, data.Locals.Globals[0].Mutable)
	require.Equal(t, wasm.ValueTypeI64, data.Locals.Globals[0].Type)

	require.Len(t, data.Locals.Functions, 1)
	require.Equal(t, []wasm.ValueType{wasm.ValueTypeI32}, data.Locals.Functions[0].Signature.Results)
}

func TestBuildModuleData_emptyModule(t *testing.T) {
	data := BuildModuleData(&wasm.Module{})
	require.Empty(t, data.Exports)
	require.Empty(t, data.Imports)
	require.Empty(t, data.Locals.Tables)
	require.Empty(t, data.Locals.Memories)
	require.Empty(t, data.Locals.Globals)
	require.Empty(t, data.Locals.Functions)
}
