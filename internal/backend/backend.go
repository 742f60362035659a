// Package backend declares the capability set a native code generator must
// expose to the lowering walk in internal/lower: primitive types, a module
// that can hold functions, a function that can hold basic blocks and
// parameters, and a builder that turns operand values into SSA instructions.
//
// internal/backend/refbackend provides the one concrete, amd64-only
// implementation built on golang-asm; any backend exposing this capability
// set can be substituted in its place.
package backend

import "fmt"

// Kind classifies a Type.
type Kind int

const (
	KindI32 Kind = iota
	KindI64
	KindF32
	KindF64
	KindVoid
	KindPtr
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindVoid:
		return "void"
	case KindPtr:
		return "ptr"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is an opaque handle to a primitive, pointer, or struct type vended by
// a Context. Equality between two Types produced by the same Context is
// value equality on the handle.
type Type interface {
	Kind() Kind
	fmt.Stringer
}

// Value is an opaque SSA value handle classified by its Type.
type Value interface {
	Type() Type
	fmt.Stringer
}

// Linkage controls whether a function is visible to the module's callers.
type Linkage int

const (
	LinkageExternal Linkage = iota
	LinkageInternal
)

// FnType is the signature a Module function is declared with. Params always
// begins with the injected ptr<InstanceContext> parameter; see
// internal/lower for the shift this implies on Wasm local indices.
type FnType struct {
	Params  []Type
	Results []Type
}

// BasicBlock is an opaque handle to a function's basic block. The lowering
// walk this backend serves never branches, so every function has exactly
// one block, but the capability is still block-structured to match what a
// conventional SSA builder exposes.
type BasicBlock interface {
	Name() string
}

// Function is a handle to a single function within a Module.
type Function interface {
	// AppendBasicBlock creates and appends a new basic block.
	AppendBasicBlock(name string) BasicBlock
	// GetNthParam returns the i'th parameter value. Fails if i >= CountParams().
	GetNthParam(i int) (Value, error)
	// CountParams returns the number of parameters, including the injected context pointer.
	CountParams() int
}

// Module groups the functions compiled from a single Wasm module.
type Module interface {
	// AddFunction declares a new function with the given name, signature, and linkage.
	AddFunction(name string, fnType FnType, linkage Linkage) (Function, error)
	// Finish freezes the module and returns its serialized or in-memory form.
	// The concrete shape is backend-specific; callers above the core treat it opaquely.
	Finish() (CompiledModule, error)
}

// CompiledModule is the opaque result of Module.Finish.
type CompiledModule interface {
	// FunctionCode returns the assembled machine code for the function added
	// at the given index, in declaration order.
	FunctionCode(index int) []byte
}

// Builder positions instruction emission within a function and lowers
// individual Wasm operators to backend instructions.
type Builder interface {
	// PositionAtEnd moves subsequent Build* calls to the end of bb.
	PositionAtEnd(bb BasicBlock)

	// BuildReturn terminates the current basic block. value is nil for a void return.
	BuildReturn(value Value) error

	BuildIntAdd(lhs, rhs Value) (Value, error)
	BuildIntSub(lhs, rhs Value) (Value, error)
	BuildIntMul(lhs, rhs Value) (Value, error)

	BuildFloatAdd(lhs, rhs Value) (Value, error)
	BuildFloatSub(lhs, rhs Value) (Value, error)
	BuildFloatMul(lhs, rhs Value) (Value, error)

	// BuildLoad reads a value of type ty from the address held in ptr, offset by a constant byte offset.
	BuildLoad(ty Type, ptr Value, offset int64) (Value, error)
	// BuildStore writes value to the address held in ptr, offset by a constant byte offset.
	BuildStore(value Value, ptr Value, offset int64) error

	// ConstInt materializes a constant of an integer Type.
	ConstInt(ty Type, value int64) Value
	// ConstFloat materializes a constant of a float Type.
	ConstFloat(ty Type, value float64) Value
}

// Context is the entry point a lowering walk uses to create a Module, a
// Builder bound to it, and the primitive types it needs.
type Context interface {
	I32Type() Type
	I64Type() Type
	F32Type() Type
	F64Type() Type
	VoidType() Type
	// PtrType returns the pointer-to-elem type, in the address space the
	// backend considers global. Pointer-to-pointer is legal: PtrType may be
	// called again on a previously returned pointer Type.
	PtrType(elem Type) Type
	// StructType declares a named struct type with the given field types, in order.
	StructType(name string, fields []Type) Type

	CreateModule(name string) Module
	CreateBuilder() Builder
}
