package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appcypher/wasmo/internal/leb128"
	"github.com/appcypher/wasmo/internal/wasm"
	"github.com/appcypher/wasmo/internal/wasmerr"
)

// section frames payload under id, with its varuint32 length prefix, exactly
// as DecodeModule expects to find it in the top-level section loop.
func section(id wasm.SectionID, payload []byte) []byte {
	out := []byte{byte(id)}
	out = append(out, leb128.EncodeVaruint32(uint32(len(payload)))...)
	return append(out, payload...)
}

func preamble() []byte {
	return []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}
}

func buildModule(sections ...[]byte) []byte {
	out := preamble()
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

func vec(items ...byte) []byte { return items }

func TestDecodeModule_emptyModule(t *testing.T) {
	m, err := DecodeModule(preamble())
	require.NoError(t, err)
	require.Empty(t, m.Types)
	require.Empty(t, m.Functions)
}

func TestDecodeModule_invalidMagic(t *testing.T) {
	bin := []byte{0x01, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}
	_, err := DecodeModule(bin)
	require.Error(t, err)
	require.Equal(t, wasmerr.InvalidMagicNumber, err.(*wasmerr.Error).Kind)
}

func TestDecodeModule_invalidVersion(t *testing.T) {
	bin := []byte{0x00, 'a', 's', 'm', 0x02, 0x00, 0x00, 0x00}
	_, err := DecodeModule(bin)
	require.Error(t, err)
	require.Equal(t, wasmerr.InvalidVersionNumber, err.(*wasmerr.Error).Kind)
}

func TestDecodeModule_incompletePreamble(t *testing.T) {
	_, err := DecodeModule([]byte{0x00, 'a', 's'})
	require.Error(t, err)
	require.Equal(t, wasmerr.IncompletePreamble, err.(*wasmerr.Error).Kind)
}

func TestDecodeModule_malformedSectionId(t *testing.T) {
	bin := buildModule(section(wasm.SectionID(0x0C), nil))
	_, err := DecodeModule(bin)
	require.Error(t, err)
	require.Equal(t, wasmerr.MalformedSectionId, err.(*wasmerr.Error).Kind)
}

func TestDecodeModule_sectionsOutOfOrder(t *testing.T) {
	typeSection := section(wasm.SectionType, vec(0x00)) // 0 entries
	globalSection := section(wasm.SectionGlobal, vec(0x00))
	// Global (0x06) then Type (0x01): descending, rejected.
	bin := buildModule(globalSection, typeSection)
	_, err := DecodeModule(bin)
	require.Error(t, err)
	require.Equal(t, wasmerr.SectionAlreadyDefined, err.(*wasmerr.Error).Kind)
}

func TestDecodeModule_duplicateNonCustomSection(t *testing.T) {
	typeSection := section(wasm.SectionType, vec(0x00))
	bin := buildModule(typeSection, typeSection)
	_, err := DecodeModule(bin)
	require.Error(t, err)
	require.Equal(t, wasmerr.SectionAlreadyDefined, err.(*wasmerr.Error).Kind)
}

func TestDecodeModule_repeatableCustomSections(t *testing.T) {
	custom := func(name string) []byte {
		payload := append(leb128.EncodeVaruint32(uint32(len(name))), []byte(name)...)
		return section(wasm.SectionCustom, payload)
	}
	bin := buildModule(custom("name"), custom("name"))
	_, err := DecodeModule(bin)
	require.NoError(t, err)
}

// buildSimpleModule assembles: one type () -> i32, one function of that
// type, body `i32.const 42; end`, and an export of that function as "f".
func buildSimpleModule(t *testing.T) []byte {
	t.Helper()

	typeSection := section(wasm.SectionType, vec(
		0x01,       // 1 entry
		0x60,       // form = func (-0x20 as byte 0x60)
		0x00,       // 0 params
		0x01, 0x7f, // 1 result, i32 (-0x01 as byte 0x7f)
	))
	funcSection := section(wasm.SectionFunction, vec(0x01, 0x00)) // 1 entry, type index 0

	body := append([]byte{0x00}, // 0 local groups
		0x41, // i32.const
	)
	body = append(body, leb128.EncodeVarint32(42)...)
	body = append(body, 0x0B) // end
	bodyLen := leb128.EncodeVaruint32(uint32(len(body)))
	codePayload := append([]byte{0x01}, bodyLen...) // 1 entry
	codePayload = append(codePayload, body...)
	codeSection := section(wasm.SectionCode, codePayload)

	name := "f"
	exportPayload := append([]byte{0x01}, // 1 entry
		leb128.EncodeVaruint32(uint32(len(name)))...)
	exportPayload = append(exportPayload, []byte(name)...)
	exportPayload = append(exportPayload, 0x00, 0x00) // kind=function, index=0
	exportSection := section(wasm.SectionExport, exportPayload)

	return buildModule(typeSection, funcSection, exportSection, codeSection)
}

func TestDecodeModule_simpleFunctionReturningConstant(t *testing.T) {
	bin := buildSimpleModule(t)
	m, err := DecodeModule(bin)
	require.NoError(t, err)

	require.Len(t, m.Types, 1)
	require.Empty(t, m.Types[0].Params)
	require.Equal(t, []wasm.ValueType{wasm.ValueTypeI32}, m.Types[0].Results)
	require.Len(t, m.Functions, 1)

	fn := m.Functions[0]
	require.Len(t, fn.Operators, 1)
	require.Equal(t, wasm.OpI32Const, fn.Operators[0].Opcode)
	require.Equal(t, int32(42), fn.Operators[0].ConstI32)
	require.Equal(t, []int{0}, fn.ResultRefs)

	require.Len(t, m.Exports, 1)
	require.Equal(t, "f", m.Exports[0].Name)
	require.Equal(t, wasm.ExternalKindFunction, m.Exports[0].Desc.Kind)
}

func TestDecodeModule_codeSectionEntryCountMismatch(t *testing.T) {
	typeSection := section(wasm.SectionType, vec(0x01, 0x60, 0x00, 0x00))
	funcSection := section(wasm.SectionFunction, vec(0x01, 0x00))
	codeSection := section(wasm.SectionCode, vec(0x00)) // 0 entries, but 1 function declared
	bin := buildModule(typeSection, funcSection, codeSection)

	_, err := DecodeModule(bin)
	require.Error(t, err)
	require.Equal(t, wasmerr.EntriesDoNotMatchEntryCountInTypeSection, err.(*wasmerr.Error).Kind)
}

func TestDecodeModule_errorOffsetIsRebasedToWholeBuffer(t *testing.T) {
	// An invalid element type inside the Table section's payload must report
	// an offset relative to the whole module buffer, not the section payload.
	tableSection := section(wasm.SectionTable, vec(0x01, 0x7f, 0x00, 0x00)) // elem type byte 0x7f is not FuncRef
	bin := buildModule(tableSection)

	_, err := DecodeModule(bin)
	require.Error(t, err)
	we := err.(*wasmerr.Error)
	require.Equal(t, wasmerr.InvalidElementTypeInTableEntry, we.Kind)
	// Offset must land inside the table section's payload, past the preamble
	// and the section id/length prefix bytes.
	require.Greater(t, we.Offset, len(preamble()))
}
