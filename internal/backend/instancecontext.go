package backend

// BoundPtr is a (base, size) pair describing a bounded region. The tables
// field of InstanceContext points at an array of these, one per table.
//
//	struct BoundPtr {
//	    base ptr<i32>
//	    size machine_int
//	}
type BoundPtr struct {
	Base Type // ptr<i32>
	Size Type // machine-word sized integer
}

// InstanceContextFields names the four fields of the InstanceContext struct,
// in declaration order. Every compiled function receives ptr<InstanceContext>
// as its first parameter; the instantiator populates the struct before
// invoking any function.
//
//	struct InstanceContext {
//	    memories  **u8      // pointer-to-pointer-to-byte
//	    tables    *BoundPtr // pointer-to BoundPtr, one per table
//	    globals   **u64     // pointer-to-pointer-to-i64
//	    functions **u8      // pointer-to-pointer-to-byte (opaque code pointers)
//	}
//
// This backend has no i8/u8 type, so fields documented above as byte
// pointers (memories, functions) are actually built from I64Type — a forced
// substitution, not a claim that the backend models sub-word types. Every
// field is a single machine pointer, so InstanceContextFieldOffset's
// field-index*pointer-width arithmetic is exact regardless of the
// substitution.
const (
	InstanceContextFieldMemories = iota
	InstanceContextFieldTables
	InstanceContextFieldGlobals
	InstanceContextFieldFunctions
)

// pointerWidth is the size in bytes of every InstanceContext field: this
// backend targets amd64 only, where every field (a pointer, regardless of
// what it points to) is 8 bytes.
const pointerWidth = 8

// InstanceContextFieldOffset returns field's byte offset within
// InstanceContext. Every field is pointer-sized, so the struct has no
// padding to account for.
func InstanceContextFieldOffset(field int) int64 {
	return int64(field) * pointerWidth
}

// BuildInstanceContextType constructs the InstanceContext struct type (and
// the BoundPtr struct type it depends on) against ctx's type system, and
// returns ptr<InstanceContext> — the type every compiled function's first
// parameter carries.
func BuildInstanceContextType(ctx Context) Type {
	i32Ptr := ctx.PtrType(ctx.I32Type())
	machineInt := ctx.I64Type()
	boundPtr := ctx.StructType("BoundPtr", []Type{i32Ptr, machineInt})

	bytePtr := ctx.PtrType(ctx.I64Type())
	memories := ctx.PtrType(bytePtr)     // **u8 (forced substitution: **i64, see field comment above)
	tables := ctx.PtrType(boundPtr)      // *BoundPtr
	globals := ctx.PtrType(ctx.PtrType(ctx.I64Type()))
	functions := ctx.PtrType(bytePtr) // **u8 (forced substitution: **i64, see field comment above)

	instanceContext := ctx.StructType("InstanceContext", []Type{memories, tables, globals, functions})
	return ctx.PtrType(instanceContext)
}
