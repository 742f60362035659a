package binary

import (
	"github.com/appcypher/wasmo/internal/leb128"
	"github.com/appcypher/wasmo/internal/wasm"
	"github.com/appcypher/wasmo/internal/wasmerr"
)

func decodeResizableLimits(c *leb128.Cursor) (wasm.ResizableLimits, error) {
	hasMax, err := c.ReadVaruint1()
	if err != nil {
		return wasm.ResizableLimits{}, wasmerr.New(wasmerr.MalformedFlagsInLimits, c.Offset())
	}
	min, err := c.ReadVaruint32()
	if err != nil {
		return wasm.ResizableLimits{}, wasmerr.New(wasmerr.MalformedMinimumInLimits, c.Offset())
	}
	limits := wasm.ResizableLimits{Minimum: min, HasMax: hasMax}
	if hasMax {
		max, err := c.ReadVaruint32()
		if err != nil {
			return wasm.ResizableLimits{}, wasmerr.New(wasmerr.MalformedMaximumInLimits, c.Offset())
		}
		limits.Maximum = max
	}
	return limits, nil
}

func readValueType(c *leb128.Cursor) (wasm.ValueType, error) {
	entry := c.Offset()
	raw, err := c.ReadVarint7()
	if err != nil {
		return 0, err
	}
	vt, ok := wasm.ValueTypeFromByte(raw)
	if !ok {
		return 0, wasmerr.New(wasmerr.InvalidValueType, entry)
	}
	return vt, nil
}

func decodeTypeSection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedEntryCountInTypeSection, c.Offset())
	}
	m.Types = make([]wasm.FuncSignature, 0, count)
	for i := uint32(0); i < count; i++ {
		entry := c.Offset()
		form, err := c.ReadVarint7()
		if err != nil || wasm.BlockType(form) != wasm.BlockTypeFunc {
			return wasmerr.New(wasmerr.MalformedTypeInTypeSection, entry)
		}
		paramCount, err := c.ReadVaruint32()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedParamCountInFunctionType, c.Offset())
		}
		params := make([]wasm.ValueType, paramCount)
		for p := range params {
			params[p], err = readValueType(c)
			if err != nil {
				return wasmerr.New(wasmerr.MalformedParamTypeInFunctionType, c.Offset())
			}
		}
		returnCount, err := c.ReadVaruint1()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedReturnCountInFunctionType, c.Offset())
		}
		var results []wasm.ValueType
		if returnCount {
			vt, err := readValueType(c)
			if err != nil {
				return wasmerr.New(wasmerr.MalformedReturnTypeInFunctionType, c.Offset())
			}
			results = []wasm.ValueType{vt}
		}
		m.Types = append(m.Types, wasm.FuncSignature{Params: params, Results: results})
	}
	return nil
}

func decodeImportSection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedEntryCountInImportSection, c.Offset())
	}
	for i := uint32(0); i < count; i++ {
		imp, err := decodeImportEntry(c, m)
		if err != nil {
			return err
		}
		m.Imports = append(m.Imports, imp)
	}
	return nil
}

func decodeImportEntry(c *leb128.Cursor, m *wasm.Module) (wasm.Import, error) {
	moduleLen, err := c.ReadVaruint32()
	if err != nil {
		return wasm.Import{}, wasmerr.New(wasmerr.MalformedModuleNameLengthInImportEntry, c.Offset())
	}
	moduleName, err := c.EatBytes(int(moduleLen))
	if err != nil || !validateUTF8(moduleName) {
		return wasm.Import{}, wasmerr.New(wasmerr.ModuleStringDoesNotMatchModuleLengthInImportEntry, c.Offset())
	}
	fieldLen, err := c.ReadVaruint32()
	if err != nil {
		return wasm.Import{}, wasmerr.New(wasmerr.MalformedFieldNameLengthInImportEntry, c.Offset())
	}
	fieldName, err := c.EatBytes(int(fieldLen))
	if err != nil || !validateUTF8(fieldName) {
		return wasm.Import{}, wasmerr.New(wasmerr.FieldStringDoesNotMatchFieldLengthInImportEntry, c.Offset())
	}
	kindByte, err := c.EatByte()
	if err != nil {
		return wasm.Import{}, wasmerr.New(wasmerr.MalformedImportTypeInImportEntry, c.Offset())
	}
	kind := wasm.ExternalKind(kindByte)

	desc := wasm.ImportDesc{Kind: kind}
	switch kind {
	case wasm.ExternalKindFunction:
		typeIdx, err := c.ReadVaruint32()
		if err != nil {
			return wasm.Import{}, wasmerr.New(wasmerr.MalformedTypeIndexInFunctionImport, c.Offset())
		}
		if int(typeIdx) >= len(m.Types) {
			return wasm.Import{}, wasmerr.New(wasmerr.InvalidTypeIndexInFunctionImport, c.Offset())
		}
		desc.FunctionTypeIndex = typeIdx
	case wasm.ExternalKindTable:
		elemEntry := c.Offset()
		elemType, err := c.ReadVarint7()
		if err != nil || wasm.ElemType(elemType) != wasm.ElemTypeFuncRef {
			return wasm.Import{}, wasmerr.New(wasmerr.MalformedElementTypeInTableImport, elemEntry)
		}
		limits, err := decodeResizableLimits(c)
		if err != nil {
			return wasm.Import{}, err
		}
		desc.Table = wasm.Table{ElementType: wasm.ElemTypeFuncRef, Limits: limits}
	case wasm.ExternalKindMemory:
		limits, err := decodeResizableLimits(c)
		if err != nil {
			return wasm.Import{}, err
		}
		desc.Memory = wasm.Memory{Limits: limits}
	case wasm.ExternalKindGlobal:
		vt, err := readValueType(c)
		if err != nil {
			return wasm.Import{}, wasmerr.New(wasmerr.MalformedContentTypeInGlobalImport, c.Offset())
		}
		mut, err := c.ReadVaruint1()
		if err != nil {
			return wasm.Import{}, wasmerr.New(wasmerr.MalformedMutabilityInGlobalImport, c.Offset())
		}
		desc.GlobalType, desc.GlobalMutable = vt, mut
	default:
		return wasm.Import{}, wasmerr.New(wasmerr.InvalidImportTypeInImportEntry, c.Offset())
	}

	return wasm.Import{Module: string(moduleName), Field: string(fieldName), Desc: desc}, nil
}

func decodeFunctionSection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedEntryCountInFunctionSection, c.Offset())
	}
	m.FunctionTypeIndices = make([]uint32, 0, count)
	for i := uint32(0); i < count; i++ {
		typeIdx, err := c.ReadVaruint32()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedEntryInFunctionSection, c.Offset())
		}
		if int(typeIdx) >= len(m.Types) {
			return wasmerr.New(wasmerr.MalformedEntryInFunctionSection, c.Offset())
		}
		m.FunctionTypeIndices = append(m.FunctionTypeIndices, typeIdx)
	}
	return nil
}

func decodeTableSection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedEntryCountInTableSection, c.Offset())
	}
	for i := uint32(0); i < count; i++ {
		elemEntry := c.Offset()
		elemType, err := c.ReadVarint7()
		if err != nil || wasm.ElemType(elemType) != wasm.ElemTypeFuncRef {
			return wasmerr.New(wasmerr.InvalidElementTypeInTableEntry, elemEntry)
		}
		limits, err := decodeResizableLimits(c)
		if err != nil {
			return err
		}
		m.Tables = append(m.Tables, wasm.Table{ElementType: wasm.ElemTypeFuncRef, Limits: limits})
	}
	return nil
}

func decodeMemorySection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedEntryCountInMemorySection, c.Offset())
	}
	for i := uint32(0); i < count; i++ {
		limits, err := decodeResizableLimits(c)
		if err != nil {
			return err
		}
		m.Memories = append(m.Memories, wasm.Memory{Limits: limits})
	}
	return nil
}

// decodeConstExpr decodes §4.3c's restricted constant initializer: a single
// producing operator followed by End.
func decodeConstExpr(c *leb128.Cursor, m *wasm.Module) (wasm.Operator, error) {
	entry := c.Offset()
	opByte, err := c.EatByte()
	if err != nil {
		return wasm.Operator{}, wasmerr.New(wasmerr.IncompleteExpression, entry)
	}
	op := wasm.Operator{Opcode: wasm.Opcode(opByte)}
	switch op.Opcode {
	case wasm.OpI32Const:
		v, err := c.ReadVarint32()
		if err != nil {
			return wasm.Operator{}, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
		}
		op.ConstI32 = v
	case wasm.OpI64Const:
		v, err := c.ReadVarint64()
		if err != nil {
			return wasm.Operator{}, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
		}
		op.ConstI64 = v
	case wasm.OpF32Const:
		v, err := c.ReadUint32()
		if err != nil {
			return wasm.Operator{}, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
		}
		op.ConstF32 = float32FromBits(v)
	case wasm.OpF64Const:
		v, err := c.ReadUint64()
		if err != nil {
			return wasm.Operator{}, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
		}
		op.ConstF64 = float64FromBits(v)
	case wasm.OpGlobalGet:
		idx, err := c.ReadVaruint32()
		if err != nil {
			return wasm.Operator{}, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
		}
		_, mutable, ok := m.GlobalType(idx)
		if !ok {
			return wasm.Operator{}, wasmerr.New(wasmerr.GlobalDoesNotExist, entry)
		}
		if mutable {
			return wasm.Operator{}, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
		}
		// A constant-initializer global.get may only reference an imported
		// global: a locally defined one isn't initialized yet at the point
		// any other global's initializer runs.
		if idx >= uint32(m.NumImportedGlobals()) {
			return wasm.Operator{}, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
		}
		op.GlobalIndex = idx
	default:
		return wasm.Operator{}, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
	}
	end, err := c.EatByte()
	if err != nil || wasm.Opcode(end) != wasm.OpEnd {
		return wasm.Operator{}, wasmerr.New(wasmerr.MalformedEndByteInExpression, c.Offset())
	}
	return op, nil
}

func decodeGlobalSection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedEntryCountInGlobalSection, c.Offset())
	}
	for i := uint32(0); i < count; i++ {
		vt, err := readValueType(c)
		if err != nil {
			return wasmerr.New(wasmerr.MalformedContentTypeInGlobalEntry, c.Offset())
		}
		mut, err := c.ReadVaruint1()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedMutabilityInGlobalEntry, c.Offset())
		}
		init, err := decodeConstExpr(c, m)
		if err != nil {
			return err
		}
		m.Globals = append(m.Globals, wasm.Global{Type: vt, Mutable: mut, Init: init})
	}
	return nil
}

func decodeExportSection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedEntryCountInExportSection, c.Offset())
	}
	for i := uint32(0); i < count; i++ {
		nameLen, err := c.ReadVaruint32()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedNameLengthInExportEntry, c.Offset())
		}
		name, err := c.EatBytes(int(nameLen))
		if err != nil || !validateUTF8(name) {
			return wasmerr.New(wasmerr.MalformedNameLengthInExportEntry, c.Offset())
		}
		kindByte, err := c.EatByte()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedExportKindInExportEntry, c.Offset())
		}
		kind := wasm.ExternalKind(kindByte)
		if kind > wasm.ExternalKindGlobal {
			return wasmerr.New(wasmerr.InvalidExportTypeInExportEntry, c.Offset())
		}
		idxEntry := c.Offset()
		idx, err := c.ReadVaruint32()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedExportIndexInExportEntry, idxEntry)
		}
		if err := validateExportIndex(m, kind, idx, idxEntry); err != nil {
			return err
		}
		m.Exports = append(m.Exports, wasm.Export{Name: string(name), Desc: wasm.ExportDesc{Kind: kind, Index: idx}})
	}
	return nil
}

func validateExportIndex(m *wasm.Module, kind wasm.ExternalKind, idx uint32, entry int) error {
	switch kind {
	case wasm.ExternalKindFunction:
		if _, ok := m.FunctionTypeIndex(idx); !ok {
			return wasmerr.New(wasmerr.MalformedExportIndexInExportEntry, entry)
		}
	case wasm.ExternalKindGlobal:
		if _, _, ok := m.GlobalType(idx); !ok {
			return wasmerr.New(wasmerr.MalformedExportIndexInExportEntry, entry)
		}
	case wasm.ExternalKindTable, wasm.ExternalKindMemory:
		n := len(m.Memories)
		if kind == wasm.ExternalKindTable {
			n = len(m.Tables)
		}
		for _, imp := range m.Imports {
			if imp.Desc.Kind == kind {
				n++
			}
		}
		if int(idx) >= n {
			return wasmerr.New(wasmerr.MalformedExportIndexInExportEntry, entry)
		}
	}
	return nil
}

func decodeStartSection(c *leb128.Cursor, m *wasm.Module) error {
	entry := c.Offset()
	idx, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedFunctionIndexInStartSection, entry)
	}
	sig, ok := m.FunctionTypeIndex(idx)
	if !ok {
		return wasmerr.New(wasmerr.MalformedFunctionIndexInStartSection, entry)
	}
	ty := m.Types[sig]
	if len(ty.Params) != 0 || len(ty.Results) != 0 {
		return wasmerr.New(wasmerr.MalformedFunctionIndexInStartSection, entry)
	}
	m.HasStart, m.Start = true, idx
	return nil
}

func decodeElementSection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedEntryCountInElementSection, c.Offset())
	}
	for i := uint32(0); i < count; i++ {
		tableIdx, err := c.ReadVaruint32()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedTableIndexInElementEntry, c.Offset())
		}
		numTables := len(m.Tables)
		for _, imp := range m.Imports {
			if imp.Desc.Kind == wasm.ExternalKindTable {
				numTables++
			}
		}
		if int(tableIdx) >= numTables {
			return wasmerr.New(wasmerr.MalformedTableIndexInElementEntry, c.Offset())
		}
		offset, err := decodeConstExpr(c, m)
		if err != nil {
			return err
		}
		funcCount, err := c.ReadVaruint32()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedFunctionCountInElementEntry, c.Offset())
		}
		indices := make([]uint32, funcCount)
		for f := range indices {
			idx, err := c.ReadVaruint32()
			if err != nil {
				return wasmerr.New(wasmerr.MalformedFunctionIndexInElementEntry, c.Offset())
			}
			if _, ok := m.FunctionTypeIndex(idx); !ok {
				return wasmerr.New(wasmerr.MalformedFunctionIndexInElementEntry, c.Offset())
			}
			indices[f] = idx
		}
		m.Elements = append(m.Elements, wasm.Element{TableIndex: tableIdx, Offset: offset, FuncIndices: indices})
	}
	return nil
}

func decodeDataSection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedEntryCountInDataSection, c.Offset())
	}
	for i := uint32(0); i < count; i++ {
		memIdx, err := c.ReadVaruint32()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedMemoryIndexInDataEntry, c.Offset())
		}
		numMemories := len(m.Memories)
		for _, imp := range m.Imports {
			if imp.Desc.Kind == wasm.ExternalKindMemory {
				numMemories++
			}
		}
		if int(memIdx) >= numMemories {
			return wasmerr.New(wasmerr.MalformedMemoryIndexInDataEntry, c.Offset())
		}
		offset, err := decodeConstExpr(c, m)
		if err != nil {
			return err
		}
		byteCount, err := c.ReadVaruint32()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedByteCountInDataEntry, c.Offset())
		}
		bytes, err := c.EatBytes(int(byteCount))
		if err != nil {
			return wasmerr.New(wasmerr.MalformedByteCountInDataEntry, c.Offset())
		}
		m.Data = append(m.Data, wasm.Data{MemoryIndex: memIdx, Offset: offset, Bytes: append([]byte(nil), bytes...)})
	}
	return nil
}

func decodeCodeSection(c *leb128.Cursor, m *wasm.Module) error {
	count, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedBodyCountInCodeSection, c.Offset())
	}
	if int(count) != len(m.FunctionTypeIndices) {
		return wasmerr.New(wasmerr.EntriesDoNotMatchEntryCountInTypeSection, c.Offset())
	}
	m.Functions = make([]wasm.Function, 0, count)
	for i := uint32(0); i < count; i++ {
		bodySize, err := c.ReadVaruint32()
		if err != nil {
			return wasmerr.New(wasmerr.MalformedBodySizeInFunctionBody, c.Offset())
		}
		bodyStart := c.Offset()
		body, err := c.EatBytes(int(bodySize))
		if err != nil {
			return wasmerr.New(wasmerr.IncompleteFunctionBody, c.Offset())
		}
		fn, err := decodeFunctionBody(body, m, i)
		if err != nil {
			return rebaseError(err, bodyStart)
		}
		m.Functions = append(m.Functions, fn)
	}
	return nil
}
