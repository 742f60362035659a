package binary

import (
	"github.com/appcypher/wasmo/internal/leb128"
	"github.com/appcypher/wasmo/internal/wasm"
	"github.com/appcypher/wasmo/internal/wasmerr"
)

// functionDecoder holds the state threaded through one function body's
// operator-by-operator decode: the byte cursor, the enclosing module (for
// global/type lookups), and the local-index space (parameters followed by
// declared locals).
type functionDecoder struct {
	c          *leb128.Cursor
	m          *wasm.Module
	localTypes []wasm.ValueType
}

// decodeFunctionBody decodes one code-section entry's local declarations and
// operator stream into a wasm.Function. localFuncIdx is the function's index
// within the Code section (equivalently, within the local — not import —
// function space), used to resolve its declared signature.
func decodeFunctionBody(body []byte, m *wasm.Module, localFuncIdx uint32) (wasm.Function, error) {
	c := leb128.NewCursor(body)

	localGroupCount, err := c.ReadVaruint32()
	if err != nil {
		return wasm.Function{}, wasmerr.New(wasmerr.IncompleteLocalEntry, c.Offset())
	}
	locals := make([]wasm.Local, 0, localGroupCount)
	for i := uint32(0); i < localGroupCount; i++ {
		count, err := c.ReadVaruint32()
		if err != nil {
			return wasm.Function{}, wasmerr.New(wasmerr.MalformedCountInLocalEntry, c.Offset())
		}
		typ, err := readValueType(c)
		if err != nil {
			return wasm.Function{}, wasmerr.New(wasmerr.MalformedLocalTypeInLocalEntry, c.Offset())
		}
		locals = append(locals, wasm.Local{Count: count, Type: typ})
	}

	if int(localFuncIdx) >= len(m.FunctionTypeIndices) {
		return wasm.Function{}, wasmerr.New(wasmerr.FunctionDoesNotExist, c.Offset())
	}
	typeIdx := m.FunctionTypeIndices[localFuncIdx]
	sig := m.Types[typeIdx]

	localTypes := make([]wasm.ValueType, 0, len(sig.Params)+int(localGroupCount))
	localTypes = append(localTypes, sig.Params...)
	for _, l := range locals {
		for i := uint32(0); i < l.Count; i++ {
			localTypes = append(localTypes, l.Type)
		}
	}

	fd := &functionDecoder{c: c, m: m, localTypes: localTypes}
	stack := newValidationStack()
	ops, err := fd.decodeOperatorSequence(stack)
	if err != nil {
		return wasm.Function{}, err
	}
	if stack.size() != len(sig.Results) || !stack.typesMatch(sig.Results) {
		return wasm.Function{}, wasmerr.New(wasmerr.MismatchedFunctionReturnSignature, c.Offset())
	}
	if !c.AtEnd() {
		return wasm.Function{}, wasmerr.New(wasmerr.BodySizeDoesNotMatchContentOfFunctionBody, c.Offset())
	}

	return wasm.Function{Locals: locals, Operators: ops, TypeIndex: typeIdx, ResultRefs: stack.refs()}, nil
}

// loadResultType returns the value type a load operator pushes.
func loadResultType(op wasm.Opcode) wasm.ValueType {
	switch op {
	case wasm.OpI32Load:
		return wasm.ValueTypeI32
	case wasm.OpI64Load:
		return wasm.ValueTypeI64
	case wasm.OpF32Load:
		return wasm.ValueTypeF32
	default:
		return wasm.ValueTypeF64
	}
}

// storeValueType returns the value type a store operator consumes.
func storeValueType(op wasm.Opcode) wasm.ValueType {
	switch op {
	case wasm.OpI32Store:
		return wasm.ValueTypeI32
	case wasm.OpI64Store:
		return wasm.ValueTypeI64
	case wasm.OpF32Store:
		return wasm.ValueTypeF32
	default:
		return wasm.ValueTypeF64
	}
}

func decodeMemArg(c *leb128.Cursor) (wasm.MemArg, error) {
	align, err := c.ReadVaruint32()
	if err != nil {
		return wasm.MemArg{}, wasmerr.New(wasmerr.MalformedAlignmentInMemoryOperator, c.Offset())
	}
	offset, err := c.ReadVaruint32()
	if err != nil {
		return wasm.MemArg{}, wasmerr.New(wasmerr.MalformedOffsetInMemoryOperator, c.Offset())
	}
	return wasm.MemArg{AlignLog2: align, Offset: offset}, nil
}

// naturalAlignLog2 returns the base-2 log of a load/store opcode's access
// width in bytes: 2 for the i32/f32 forms (4 bytes), 3 for the i64/f64
// forms (8 bytes).
func naturalAlignLog2(opcode wasm.Opcode) uint32 {
	switch opcode {
	case wasm.OpI64Load, wasm.OpF64Load, wasm.OpI64Store, wasm.OpF64Store:
		return 3
	default:
		return 2
	}
}

// decodeOperatorSequence decodes operators into a dense vector local to this
// call — the function's top-level vector, or a Block's own nested vector —
// until it consumes a matching End, which it does not emit as an Operator.
// stack starts empty and is validated against as each operator is decoded;
// its final contents (after the trailing End) are the sequence's result.
func (d *functionDecoder) decodeOperatorSequence(stack *validationStack) ([]wasm.Operator, error) {
	var ops []wasm.Operator

	for {
		entry := d.c.Offset()
		opByte, err := d.c.EatByte()
		if err != nil {
			return nil, wasmerr.New(wasmerr.IncompleteExpression, entry)
		}
		opcode := wasm.Opcode(opByte)

		switch opcode {
		case wasm.OpEnd:
			return ops, nil

		case wasm.OpUnreachable, wasm.OpNop:
			ops = append(ops, wasm.Operator{Opcode: opcode})

		case wasm.OpBlock:
			rtByte, err := d.c.ReadVarint7()
			if err != nil {
				return nil, wasmerr.New(wasmerr.UnsupportedOperator, entry)
			}
			var resultType wasm.BlockType
			var resultValues []wasm.ValueType
			if wasm.BlockType(rtByte) == wasm.BlockTypeEmpty {
				resultType = wasm.BlockTypeEmpty
			} else {
				vt, ok := wasm.ValueTypeFromByte(rtByte)
				if !ok {
					return nil, wasmerr.New(wasmerr.InvalidValueType, entry)
				}
				resultType = wasm.BlockType(vt)
				resultValues = []wasm.ValueType{vt}
			}
			blockStack := newValidationStack()
			body, err := d.decodeOperatorSequence(blockStack)
			if err != nil {
				return nil, err
			}
			if blockStack.size() != len(resultValues) || !blockStack.typesMatch(resultValues) {
				return nil, wasmerr.New(wasmerr.MismatchedBlockResultSignature, entry)
			}
			bodyResultRef := -1
			if refs := blockStack.refs(); len(refs) > 0 {
				bodyResultRef = refs[0]
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: wasm.OpBlock, Body: body, ResultType: resultType, BodyResultRef: bodyResultRef})
			if len(resultValues) > 0 {
				stack.push(stackEntry{valueType: resultValues[0], operatorRef: opIdx})
			}

		case wasm.OpDrop:
			if _, ok := stack.pop(); !ok {
				return nil, wasmerr.New(wasmerr.MismatchedOperandTypes, entry)
			}
			ops = append(ops, wasm.Operator{Opcode: opcode})

		case wasm.OpLocalGet:
			idx, err := d.c.ReadVaruint32()
			if err != nil {
				return nil, wasmerr.New(wasmerr.LocalDoesNotExist, entry)
			}
			if int(idx) >= len(d.localTypes) {
				return nil, wasmerr.New(wasmerr.LocalDoesNotExist, entry)
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: opcode, LocalIndex: idx})
			stack.push(stackEntry{valueType: d.localTypes[idx], operatorRef: opIdx})

		case wasm.OpLocalSet, wasm.OpLocalTee:
			idx, err := d.c.ReadVaruint32()
			if err != nil {
				return nil, wasmerr.New(wasmerr.LocalDoesNotExist, entry)
			}
			if int(idx) >= len(d.localTypes) {
				return nil, wasmerr.New(wasmerr.LocalDoesNotExist, entry)
			}
			top, ok := stack.pop()
			if !ok || top.valueType != d.localTypes[idx] {
				return nil, wasmerr.New(wasmerr.MismatchedOperandTypes, entry)
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: opcode, LocalIndex: idx, OperandRefs: []int{top.operatorRef}})
			if opcode == wasm.OpLocalTee {
				stack.push(stackEntry{valueType: d.localTypes[idx], operatorRef: opIdx})
			}

		case wasm.OpGlobalGet:
			idx, err := d.c.ReadVaruint32()
			if err != nil {
				return nil, wasmerr.New(wasmerr.GlobalDoesNotExist, entry)
			}
			vt, _, ok := d.m.GlobalType(idx)
			if !ok {
				return nil, wasmerr.New(wasmerr.GlobalDoesNotExist, entry)
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: opcode, GlobalIndex: idx})
			stack.push(stackEntry{valueType: vt, operatorRef: opIdx})

		case wasm.OpGlobalSet:
			idx, err := d.c.ReadVaruint32()
			if err != nil {
				return nil, wasmerr.New(wasmerr.GlobalDoesNotExist, entry)
			}
			vt, mutable, ok := d.m.GlobalType(idx)
			if !ok || !mutable {
				return nil, wasmerr.New(wasmerr.GlobalDoesNotExist, entry)
			}
			top, ok := stack.pop()
			if !ok || top.valueType != vt {
				return nil, wasmerr.New(wasmerr.MismatchedOperandTypes, entry)
			}
			ops = append(ops, wasm.Operator{Opcode: opcode, GlobalIndex: idx, OperandRefs: []int{top.operatorRef}})

		case wasm.OpI32Load, wasm.OpI64Load, wasm.OpF32Load, wasm.OpF64Load:
			mem, err := decodeMemArg(d.c)
			if err != nil {
				return nil, err
			}
			if mem.AlignLog2 > naturalAlignLog2(opcode) {
				return nil, wasmerr.New(wasmerr.MalformedAlignmentInMemoryOperator, entry)
			}
			base, ok := stack.pop()
			if !ok || base.valueType != wasm.ValueTypeI32 {
				return nil, wasmerr.New(wasmerr.MismatchedOperandTypes, entry)
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: opcode, Mem: mem, OperandRefs: []int{base.operatorRef}})
			stack.push(stackEntry{valueType: loadResultType(opcode), operatorRef: opIdx})

		case wasm.OpI32Store, wasm.OpI64Store, wasm.OpF32Store, wasm.OpF64Store:
			mem, err := decodeMemArg(d.c)
			if err != nil {
				return nil, err
			}
			if mem.AlignLog2 > naturalAlignLog2(opcode) {
				return nil, wasmerr.New(wasmerr.MalformedAlignmentInMemoryOperator, entry)
			}
			value, ok := stack.pop()
			if !ok || value.valueType != storeValueType(opcode) {
				return nil, wasmerr.New(wasmerr.MismatchedOperandTypes, entry)
			}
			base, ok := stack.pop()
			if !ok || base.valueType != wasm.ValueTypeI32 {
				return nil, wasmerr.New(wasmerr.MismatchedOperandTypes, entry)
			}
			ops = append(ops, wasm.Operator{Opcode: opcode, Mem: mem, OperandRefs: []int{base.operatorRef, value.operatorRef}})

		case wasm.OpI32Const:
			v, err := d.c.ReadVarint32()
			if err != nil {
				return nil, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: opcode, ConstI32: v})
			stack.push(stackEntry{valueType: wasm.ValueTypeI32, operatorRef: opIdx})

		case wasm.OpI64Const:
			v, err := d.c.ReadVarint64()
			if err != nil {
				return nil, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: opcode, ConstI64: v})
			stack.push(stackEntry{valueType: wasm.ValueTypeI64, operatorRef: opIdx})

		case wasm.OpF32Const:
			v, err := d.c.ReadUint32()
			if err != nil {
				return nil, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: opcode, ConstF32: float32FromBits(v)})
			stack.push(stackEntry{valueType: wasm.ValueTypeF32, operatorRef: opIdx})

		case wasm.OpF64Const:
			v, err := d.c.ReadUint64()
			if err != nil {
				return nil, wasmerr.New(wasmerr.MalformedOpcodeInExpression, entry)
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: opcode, ConstF64: float64FromBits(v)})
			stack.push(stackEntry{valueType: wasm.ValueTypeF64, operatorRef: opIdx})

		case wasm.OpI32Add, wasm.OpI32Sub, wasm.OpI32Mul,
			wasm.OpI64Add, wasm.OpI64Sub, wasm.OpI64Mul,
			wasm.OpF32Add, wasm.OpF32Sub, wasm.OpF32Mul,
			wasm.OpF64Add, wasm.OpF64Sub, wasm.OpF64Mul:
			vt, _ := opcode.ArithmeticInputType()
			refs, ok := stack.popExpecting([]wasm.ValueType{vt, vt})
			if !ok {
				return nil, wasmerr.New(wasmerr.MismatchedOperandTypes, entry)
			}
			opIdx := len(ops)
			ops = append(ops, wasm.Operator{Opcode: opcode, OperandRefs: refs})
			stack.push(stackEntry{valueType: vt, operatorRef: opIdx})

		default:
			return nil, wasmerr.New(wasmerr.UnsupportedOperator, entry)
		}
	}
}
