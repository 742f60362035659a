// Package wasm holds the decoder's typed intermediate representation: value
// types, module-level entities, and the per-function operator IR, with
// every operator's inputs wired as indices into its function's flat
// operator vector rather than as positions on a reified runtime stack.
package wasm

import "fmt"

// ValueType is the closed set of value types a local, global, parameter, or
// stack entry can carry.
type ValueType int8

const (
	ValueTypeI32 ValueType = -0x01
	ValueTypeI64 ValueType = -0x02
	ValueTypeF32 ValueType = -0x03
	ValueTypeF64 ValueType = -0x04
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	default:
		return fmt.Sprintf("ValueType(%d)", int8(t))
	}
}

// ValueTypeFromByte maps the signed 7-bit binary encoding to a ValueType. ok
// is false for any value outside {I32, I64, F32, F64}.
func ValueTypeFromByte(v int8) (ValueType, bool) {
	switch ValueType(v) {
	case ValueTypeI32, ValueTypeI64, ValueTypeF32, ValueTypeF64:
		return ValueType(v), true
	default:
		return 0, false
	}
}

// BlockType is the wider type universe a block or function signature marker
// can carry: either one of the four value types, or the empty marker.
type BlockType int8

const (
	BlockTypeFuncRef BlockType = -0x10
	BlockTypeFunc    BlockType = -0x20
	BlockTypeEmpty   BlockType = -0x40
)

// ElemType is the element type a table may hold. FuncRef is the only legal
// value; the binary format reserves the encoding space for future types.
type ElemType int8

const ElemTypeFuncRef ElemType = -0x10

// FuncSignature is an ordered parameter list and an ordered result list.
// The decoder rejects more than one result (multi-value is out of scope);
// Results therefore has length 0 or 1 for every signature this module
// constructs, though the field remains a slice to keep equality and
// formatting uniform.
type FuncSignature struct {
	Params  []ValueType
	Results []ValueType
}

func (s FuncSignature) Equal(o FuncSignature) bool {
	if len(s.Params) != len(o.Params) || len(s.Results) != len(o.Results) {
		return false
	}
	for i := range s.Params {
		if s.Params[i] != o.Params[i] {
			return false
		}
	}
	for i := range s.Results {
		if s.Results[i] != o.Results[i] {
			return false
		}
	}
	return true
}

func (s FuncSignature) String() string {
	return fmt.Sprintf("%v -> %v", s.Params, s.Results)
}

// ResizableLimits governs memory and table growth: minimum is required,
// maximum is optional. Memory limits are measured in 64 KiB pages.
type ResizableLimits struct {
	Minimum uint32
	Maximum uint32
	HasMax  bool
}
