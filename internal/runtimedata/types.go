// Package runtimedata holds the compile-time side tables an instantiator
// needs to lay out and populate a module's InstanceContext: per-entity
// descriptors (nullable until bound to real memory), plus the
// export/import name tables a host uses to wire modules together. Nothing
// in this package allocates memory or runs code — it is pure bookkeeping
// built from the decoded module and consumed by whatever instantiates the compiled
// module, which is out of this module's scope.
package runtimedata

import "unsafe"

// BoundPtr is a (data, size) pair describing a bounds-checked region —
// the runtime counterpart of backend.BoundPtr, instantiated once an actual
// table or memory has been allocated.
type BoundPtr[T any] struct {
	Data unsafe.Pointer
	Size uintptr
}

// TablePtr addresses a table's backing storage: one u32 function-index slot
// per element.
type TablePtr BoundPtr[uint32]

// MemoryPtr addresses a linear memory's backing storage directly. Unlike
// TablePtr it carries no size, and the InstanceContext's memories field
// likewise holds one plain base pointer per memory.
type MemoryPtr = unsafe.Pointer

// GlobalPtr addresses a single global's 8-byte storage slot.
type GlobalPtr = unsafe.Pointer

// FuncPtr addresses a compiled function's entry point.
type FuncPtr = unsafe.Pointer

// ResizableLimits mirrors wasm.ResizableLimits in the narrower range a
// runtime instance actually needs once validated.
type ResizableLimits struct {
	Minimum uint32
	Maximum uint32
	HasMax  bool
}
