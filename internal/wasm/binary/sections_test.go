package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appcypher/wasmo/internal/leb128"
	"github.com/appcypher/wasmo/internal/wasm"
	"github.com/appcypher/wasmo/internal/wasmerr"
)

func TestDecodeResizableLimits_withoutMax(t *testing.T) {
	c := leb128.NewCursor([]byte{0x00, 0x05})
	limits, err := decodeResizableLimits(c)
	require.NoError(t, err)
	require.False(t, limits.HasMax)
	require.Equal(t, uint32(5), limits.Minimum)
}

func TestDecodeResizableLimits_withMax(t *testing.T) {
	c := leb128.NewCursor([]byte{0x01, 0x05, 0x0a})
	limits, err := decodeResizableLimits(c)
	require.NoError(t, err)
	require.True(t, limits.HasMax)
	require.Equal(t, uint32(5), limits.Minimum)
	require.Equal(t, uint32(10), limits.Maximum)
}

func TestReadValueType_allFour(t *testing.T) {
	for _, c := range []struct {
		b    byte
		want wasm.ValueType
	}{
		{0x7f, wasm.ValueTypeI32},
		{0x7e, wasm.ValueTypeI64},
		{0x7d, wasm.ValueTypeF32},
		{0x7c, wasm.ValueTypeF64},
	} {
		vt, err := readValueType(leb128.NewCursor([]byte{c.b}))
		require.NoError(t, err)
		require.Equal(t, c.want, vt)
	}
}

func TestReadValueType_invalid(t *testing.T) {
	_, err := readValueType(leb128.NewCursor([]byte{0x00}))
	require.Error(t, err)
	require.Equal(t, wasmerr.InvalidValueType, err.(*wasmerr.Error).Kind)
}

func TestDecodeTypeSection_rejectsNonFuncForm(t *testing.T) {
	c := leb128.NewCursor([]byte{0x01, 0x40}) // 1 entry, form byte 0x40 != func (0x60)
	m := &wasm.Module{}
	err := decodeTypeSection(c, m)
	require.Error(t, err)
	require.Equal(t, wasmerr.MalformedTypeInTypeSection, err.(*wasmerr.Error).Kind)
}

func TestDecodeTypeSection_paramsAndSingleResult(t *testing.T) {
	c := leb128.NewCursor([]byte{
		0x01,             // 1 entry
		0x60,             // func
		0x02, 0x7f, 0x7e, // 2 params: i32, i64
		0x01, 0x7d, // 1 result: f32
	})
	m := &wasm.Module{}
	require.NoError(t, decodeTypeSection(c, m))
	require.Len(t, m.Types, 1)
	require.Equal(t, []wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI64}, m.Types[0].Params)
	require.Equal(t, []wasm.ValueType{wasm.ValueTypeF32}, m.Types[0].Results)
}

func TestDecodeImportEntry_function(t *testing.T) {
	m := &wasm.Module{Types: []wasm.FuncSignature{{}}}
	payload := []byte{
		0x03, 'e', 'n', 'v', // module "env"
		0x01, 'f', // field "f"
		0x00, // kind = function
		0x00, // type index 0
	}
	c := leb128.NewCursor(payload)
	imp, err := decodeImportEntry(c, m)
	require.NoError(t, err)
	require.Equal(t, "env", imp.Module)
	require.Equal(t, "f", imp.Field)
	require.Equal(t, wasm.ExternalKindFunction, imp.Desc.Kind)
	require.Equal(t, uint32(0), imp.Desc.FunctionTypeIndex)
}

func TestDecodeImportEntry_invalidTypeIndex(t *testing.T) {
	m := &wasm.Module{Types: nil}
	payload := []byte{0x03, 'e', 'n', 'v', 0x01, 'f', 0x00, 0x00}
	_, err := decodeImportEntry(leb128.NewCursor(payload), m)
	require.Error(t, err)
	require.Equal(t, wasmerr.InvalidTypeIndexInFunctionImport, err.(*wasmerr.Error).Kind)
}

func TestDecodeConstExpr_i32Const(t *testing.T) {
	payload := append([]byte{0x41}, leb128.EncodeVarint32(7)...)
	payload = append(payload, 0x0B)
	op, err := decodeConstExpr(leb128.NewCursor(payload), &wasm.Module{})
	require.NoError(t, err)
	require.Equal(t, wasm.OpI32Const, op.Opcode)
	require.Equal(t, int32(7), op.ConstI32)
}

func TestDecodeConstExpr_globalGet_rejectsMutableGlobal(t *testing.T) {
	m := &wasm.Module{
		Imports: []wasm.Import{{Module: "env", Field: "g", Desc: wasm.ImportDesc{
			Kind: wasm.ExternalKindGlobal, GlobalType: wasm.ValueTypeI32, GlobalMutable: true,
		}}},
	}
	payload := []byte{0x23, 0x00, 0x0B} // global.get 0, end
	_, err := decodeConstExpr(leb128.NewCursor(payload), m)
	require.Error(t, err)
}

func TestDecodeConstExpr_globalGet_immutableImportedGlobalOK(t *testing.T) {
	m := &wasm.Module{
		Imports: []wasm.Import{{Module: "env", Field: "g", Desc: wasm.ImportDesc{
			Kind: wasm.ExternalKindGlobal, GlobalType: wasm.ValueTypeI32, GlobalMutable: false,
		}}},
	}
	payload := []byte{0x23, 0x00, 0x0B}
	op, err := decodeConstExpr(leb128.NewCursor(payload), m)
	require.NoError(t, err)
	require.Equal(t, wasm.OpGlobalGet, op.Opcode)
	require.Equal(t, uint32(0), op.GlobalIndex)
}

func TestDecodeConstExpr_globalGet_rejectsLocalImmutableGlobal(t *testing.T) {
	// A locally defined (non-imported) global is immutable here, so the
	// mutability check alone would accept it; only the imported-global
	// range check catches it.
	m := &wasm.Module{Globals: []wasm.Global{{Type: wasm.ValueTypeI32, Mutable: false}}}
	payload := []byte{0x23, 0x00, 0x0B} // global.get 0, end
	_, err := decodeConstExpr(leb128.NewCursor(payload), m)
	require.Error(t, err)
}

func TestDecodeConstExpr_missingEnd(t *testing.T) {
	payload := append([]byte{0x41}, leb128.EncodeVarint32(7)...)
	// no trailing 0x0B
	_, err := decodeConstExpr(leb128.NewCursor(payload), &wasm.Module{})
	require.Error(t, err)
	require.Equal(t, wasmerr.MalformedEndByteInExpression, err.(*wasmerr.Error).Kind)
}

func TestValidateExportIndex_outOfRangeTable(t *testing.T) {
	m := &wasm.Module{Tables: nil}
	err := validateExportIndex(m, wasm.ExternalKindTable, 0, 99)
	require.Error(t, err)
	require.Equal(t, 99, err.(*wasmerr.Error).Offset)
}

func TestValidateExportIndex_validMemory(t *testing.T) {
	m := &wasm.Module{Memories: []wasm.Memory{{}}}
	require.NoError(t, validateExportIndex(m, wasm.ExternalKindMemory, 0, 0))
}
