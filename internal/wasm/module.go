package wasm

// SectionID identifies a top-level section. Non-custom ids must appear at
// most once and in strictly ascending order; Custom may appear any number of
// times, anywhere.
type SectionID byte

const (
	SectionCustom SectionID = 0x00
	SectionType   SectionID = 0x01
	SectionImport SectionID = 0x02
	SectionFunction SectionID = 0x03
	SectionTable  SectionID = 0x04
	SectionMemory SectionID = 0x05
	SectionGlobal SectionID = 0x06
	SectionExport SectionID = 0x07
	SectionStart  SectionID = 0x08
	SectionElement SectionID = 0x09
	SectionCode   SectionID = 0x0A
	SectionData   SectionID = 0x0B
)

func (id SectionID) String() string {
	names := [...]string{"custom", "type", "import", "function", "table", "memory", "global", "export", "start", "element", "code", "data"}
	if int(id) < len(names) {
		return names[id]
	}
	return "unknown"
}

// ExternalKind classifies what an Import or Export refers to.
type ExternalKind byte

const (
	ExternalKindFunction ExternalKind = 0
	ExternalKindTable    ExternalKind = 1
	ExternalKindMemory   ExternalKind = 2
	ExternalKindGlobal   ExternalKind = 3
)

// Table declares a resizable array of FuncRef elements.
type Table struct {
	ElementType ElemType
	Limits      ResizableLimits
}

// Memory declares a resizable linear memory, measured in 64 KiB pages.
type Memory struct {
	Limits ResizableLimits
}

// Global declares one module-level variable, with its initializer expression
// decoded into the same Operator IR a function body uses (restricted to a
// single producing operator per §4.3c).
type Global struct {
	Type       ValueType
	Mutable    bool
	Init       Operator
}

// Local is one local-variable declaration group: count repetitions of Type.
type Local struct {
	Count uint32
	Type  ValueType
}

// Function is a decoded code-section entry: its declared local groups
// (parameters are not included; their types come from the signature at
// TypeIndex) and its dense, zero-indexed operator vector.
type Function struct {
	Locals    []Local
	Operators []Operator
	TypeIndex uint32

	// ResultRefs holds, in declared-result order, the index (into Operators)
	// of the operator that produced the function's return value. Empty for a
	// void-returning function. The lowering walk reads Operators[ref]'s
	// already-lowered backend.Value instead of re-deriving it from a stack.
	ResultRefs []int
}

// Element is a table initializer: active entries carry a table index and an
// offset initializer expression; this module does not support passive
// elements (bulk-memory is out of scope), so TableIndex/Offset are always
// populated.
type Element struct {
	TableIndex uint32
	Offset     Operator
	FuncIndices []uint32
}

// Data is a memory initializer: active entries carry a memory index and an
// offset initializer expression, followed by the raw bytes to copy.
type Data struct {
	MemoryIndex uint32
	Offset      Operator
	Bytes       []byte
}

// ImportDesc is the kind-specific payload of an Import.
type ImportDesc struct {
	Kind ExternalKind

	FunctionTypeIndex uint32 // ExternalKindFunction
	Table             Table  // ExternalKindTable
	Memory            Memory // ExternalKindMemory
	GlobalType        ValueType // ExternalKindGlobal
	GlobalMutable     bool      // ExternalKindGlobal
}

// Import declares one imported entity, identified by its originating module
// and field name. Imported functions/tables/memories/globals occupy the low
// indices of their respective index spaces; locally defined entries follow.
type Import struct {
	Module string
	Field  string
	Desc   ImportDesc
}

// ExportDesc names the index space an Export resolves in.
type ExportDesc struct {
	Kind  ExternalKind
	Index uint32
}

// Export makes a module entity visible under a name.
type Export struct {
	Name string
	Desc ExportDesc
}

// Module is the fully decoded result of §4.3: one vector per section kind,
// populated additively as the section decoder advances. Index spaces
// (functions, tables, memories, globals) are the concatenation of imported
// entries (in Import order) followed by locally declared entries.
type Module struct {
	Types     []FuncSignature
	Imports   []Import
	Functions []Function   // local function bodies; FunctionTypeIndices holds their type indices
	FunctionTypeIndices []uint32
	Tables    []Table
	Memories  []Memory
	Globals   []Global
	Exports   []Export
	HasStart  bool
	Start     uint32
	Elements  []Element
	Data      []Data
}

// NumImportedFunctions returns how many entries at the front of the function
// index space are imports rather than locally defined functions.
func (m *Module) NumImportedFunctions() int {
	n := 0
	for _, imp := range m.Imports {
		if imp.Desc.Kind == ExternalKindFunction {
			n++
		}
	}
	return n
}

// NumImportedGlobals returns how many entries at the front of the global
// index space are imports.
func (m *Module) NumImportedGlobals() int {
	n := 0
	for _, imp := range m.Imports {
		if imp.Desc.Kind == ExternalKindGlobal {
			n++
		}
	}
	return n
}

// FunctionTypeIndex resolves a function-space index (import-space followed
// by local-space) to its type index.
func (m *Module) FunctionTypeIndex(funcIdx uint32) (uint32, bool) {
	imported := uint32(m.NumImportedFunctions())
	if funcIdx < imported {
		i := 0
		for _, imp := range m.Imports {
			if imp.Desc.Kind == ExternalKindFunction {
				if uint32(i) == funcIdx {
					return imp.Desc.FunctionTypeIndex, true
				}
				i++
			}
		}
		return 0, false
	}
	local := funcIdx - imported
	if int(local) >= len(m.FunctionTypeIndices) {
		return 0, false
	}
	return m.FunctionTypeIndices[local], true
}

// GlobalType resolves a global-space index to its declared type and mutability.
func (m *Module) GlobalType(globalIdx uint32) (ValueType, bool, bool) {
	imported := uint32(m.NumImportedGlobals())
	if globalIdx < imported {
		i := 0
		for _, imp := range m.Imports {
			if imp.Desc.Kind == ExternalKindGlobal {
				if uint32(i) == globalIdx {
					return imp.Desc.GlobalType, imp.Desc.GlobalMutable, true
				}
				i++
			}
		}
		return 0, false, false
	}
	local := globalIdx - imported
	if int(local) >= len(m.Globals) {
		return 0, false, false
	}
	g := m.Globals[local]
	return g.Type, g.Mutable, true
}
