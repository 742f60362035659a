package wasm

import "fmt"

// Opcode is the single-byte (or, for the rejected extension pages, prefixed)
// instruction tag read from a function body. Only the opcodes this module
// lowers have a named constant; everything else is decoded just far enough
// to report UnsupportedOperator at a precise offset without desynchronizing
// the byte stream.
type Opcode byte

const (
	OpUnreachable Opcode = 0x00
	OpNop         Opcode = 0x01
	OpBlock       Opcode = 0x02
	OpEnd         Opcode = 0x0B

	OpDrop Opcode = 0x1A

	OpLocalGet  Opcode = 0x20
	OpLocalSet  Opcode = 0x21
	OpLocalTee  Opcode = 0x22
	OpGlobalGet Opcode = 0x23
	OpGlobalSet Opcode = 0x24

	OpI32Load Opcode = 0x28
	OpI64Load Opcode = 0x29
	OpF32Load Opcode = 0x2A
	OpF64Load Opcode = 0x2B

	OpI32Store Opcode = 0x36
	OpI64Store Opcode = 0x37
	OpF32Store Opcode = 0x38
	OpF64Store Opcode = 0x39

	OpI32Const Opcode = 0x41
	OpI64Const Opcode = 0x42
	OpF32Const Opcode = 0x43
	OpF64Const Opcode = 0x44

	OpI32Add Opcode = 0x6A
	OpI32Sub Opcode = 0x6B
	OpI32Mul Opcode = 0x6C

	OpI64Add Opcode = 0x7C
	OpI64Sub Opcode = 0x7D
	OpI64Mul Opcode = 0x7E

	OpF32Add Opcode = 0x92
	OpF32Sub Opcode = 0x93
	OpF32Mul Opcode = 0x94

	OpF64Add Opcode = 0xA0
	OpF64Sub Opcode = 0xA1
	OpF64Mul Opcode = 0xA2
)

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(0x%02x)", byte(op))
}

var opcodeNames = map[Opcode]string{
	OpUnreachable: "unreachable",
	OpNop:         "nop",
	OpBlock:       "block",
	OpEnd:         "end",
	OpDrop:        "drop",
	OpLocalGet:    "local.get",
	OpLocalSet:    "local.set",
	OpLocalTee:    "local.tee",
	OpGlobalGet:   "global.get",
	OpGlobalSet:   "global.set",
	OpI32Load:     "i32.load",
	OpI64Load:     "i64.load",
	OpF32Load:     "f32.load",
	OpF64Load:     "f64.load",
	OpI32Store:    "i32.store",
	OpI64Store:    "i64.store",
	OpF32Store:    "f32.store",
	OpF64Store:    "f64.store",
	OpI32Const:    "i32.const",
	OpI64Const:    "i64.const",
	OpF32Const:    "f32.const",
	OpF64Const:    "f64.const",
	OpI32Add:      "i32.add",
	OpI32Sub:      "i32.sub",
	OpI32Mul:      "i32.mul",
	OpI64Add:      "i64.add",
	OpI64Sub:      "i64.sub",
	OpI64Mul:      "i64.mul",
	OpF32Add:      "f32.add",
	OpF32Sub:      "f32.sub",
	OpF32Mul:      "f32.mul",
	OpF64Add:      "f64.add",
	OpF64Sub:      "f64.sub",
	OpF64Mul:      "f64.mul",
}

// MemArg carries a memory operator's immediates verbatim. The decoder
// rejects an AlignLog2 larger than the access's natural width; Offset is
// recorded without any check.
type MemArg struct {
	AlignLog2 uint32
	Offset    uint32
}

// Operator is one entry in a function's flat, dense, zero-indexed operator
// vector. OperandRefs holds forward-only indices into that same vector
// (or, for operators inside a Block, into the block's own vector) pointing
// at the operators that produced this operator's inputs — the data-flow
// edges that replace a reified runtime value stack.
type Operator struct {
	Opcode Opcode

	// OperandRefs are, in declared-input order, indices of the operators
	// producing this operator's stack inputs. A binary arithmetic operator
	// stores [lhs_ref, rhs_ref]; a store stores [base_ref, value_ref].
	OperandRefs []int

	// LocalIndex / GlobalIndex address the variable space for Local*/Global* ops.
	LocalIndex  uint32
	GlobalIndex uint32

	// Mem carries the alignment/offset immediates for load/store operators.
	Mem MemArg

	// ConstI32 / ConstI64 / ConstF32 / ConstF64 carry the literal payload for
	// the matching *Const opcode.
	ConstI32 int32
	ConstI64 int64
	ConstF32 float32
	ConstF64 float64

	// Body holds the nested, independently-indexed operator vector of a
	// Block. ResultType is the block's declared result type; BlockTypeEmpty
	// if the block produces no value. BodyResultRef indexes into Body for the
	// operator producing the block's result; -1 if ResultType is Empty.
	Body          []Operator
	ResultType    BlockType
	BodyResultRef int
}

// ArithmeticInputType returns the operand type a binary int/float arithmetic
// operator declares for both of its inputs, used by the function decoder to
// check against the validation stack. ok is false for any other opcode, including
// the local/global and memory operators whose operand type instead comes
// from the declared type of the variable or the result of the address
// computation — those are resolved against the module's side tables at the
// decode site, not from the opcode alone.
func (op Opcode) ArithmeticInputType() (ValueType, bool) {
	switch op {
	case OpI32Add, OpI32Sub, OpI32Mul:
		return ValueTypeI32, true
	case OpI64Add, OpI64Sub, OpI64Mul:
		return ValueTypeI64, true
	case OpF32Add, OpF32Sub, OpF32Mul:
		return ValueTypeF32, true
	case OpF64Add, OpF64Sub, OpF64Mul:
		return ValueTypeF64, true
	default:
		return 0, false
	}
}

// IsFloat reports whether an arithmetic opcode operates on floats.
func (op Opcode) IsFloat() bool {
	switch op {
	case OpF32Add, OpF32Sub, OpF32Mul, OpF64Add, OpF64Sub, OpF64Mul:
		return true
	default:
		return false
	}
}
