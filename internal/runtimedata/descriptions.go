package runtimedata

import "github.com/appcypher/wasmo/internal/wasm"

// TableDesc, MemoryDesc, GlobalDesc, and FuncDesc are the declared shape of
// one local entity before instantiation: everything the compiler knows
// without running anything. Ptr is the zero value (nil) until an
// instantiator allocates and binds the backing storage.
type TableDesc struct {
	Ptr    TablePtr
	Limits ResizableLimits
}

type MemoryDesc struct {
	Ptr    MemoryPtr
	Limits ResizableLimits
}

type GlobalDesc struct {
	Ptr     GlobalPtr
	Mutable bool
	Type    wasm.ValueType
}

type FuncDesc struct {
	Ptr       FuncPtr
	Signature wasm.FuncSignature
}

// Locals collects every entity this module defines locally (as opposed to
// imports), indexed in local-space — i.e. not yet offset into the combined
// import+local index space a Wasm index addresses.
type Locals struct {
	Tables    []TableDesc
	Memories  []MemoryDesc
	Globals   []GlobalDesc
	Functions []FuncDesc
}
