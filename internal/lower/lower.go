// Package lower drives the backend.Context/Module/Function/Builder
// capability set to turn a decoded, validated wasm.Module into native code.
// It walks each function's operand-reference operator vector once, in
// order, carrying one backend.Value per already-lowered operator — there is
// no re-derived value stack, since the decoder already recorded, as
// OperandRefs, exactly which prior operator produced each operand.
package lower

import (
	"fmt"

	"github.com/appcypher/wasmo/internal/backend"
	"github.com/appcypher/wasmo/internal/wasm"
	"github.com/appcypher/wasmo/internal/wasmolog"
	"go.uber.org/zap"
)

// Module lowers every function in m against ctx and returns the assembled
// result. Functions are declared first, in index order, so that a future
// call instruction (out of scope today — this module never lowers `call`)
// could resolve forward references; bodies are then lowered in a second
// pass.
func Module(ctx backend.Context, m *wasm.Module) (backend.CompiledModule, error) {
	instanceCtxType := backend.BuildInstanceContextType(ctx)
	mod := ctx.CreateModule("wasm")

	fns := make([]backend.Function, len(m.Functions))
	for i, fn := range m.Functions {
		sig := m.Types[fn.TypeIndex]
		fnType := toFnType(ctx, instanceCtxType, sig)
		bf, err := mod.AddFunction(fmt.Sprintf("f%d", i), fnType, backend.LinkageInternal)
		if err != nil {
			return nil, fmt.Errorf("lower: declaring function %d: %w", i, err)
		}
		fns[i] = bf
	}

	for i, fn := range m.Functions {
		if err := function(ctx, fns[i], m, fn); err != nil {
			return nil, fmt.Errorf("lower: function %d: %w", i, err)
		}
		wasmolog.L().Debug("lowered function", zap.Int("index", i), zap.Int("operators", len(fn.Operators)))
	}

	return mod.Finish()
}

// toFnType builds the backend signature for a Wasm function, prepending the
// injected ptr<InstanceContext> parameter every compiled function carries —
// the reason every Wasm local index used below is shifted by one against
// the backend's own parameter numbering.
func toFnType(ctx backend.Context, instanceCtxType backend.Type, sig wasm.FuncSignature) backend.FnType {
	params := make([]backend.Type, 0, len(sig.Params)+1)
	params = append(params, instanceCtxType)
	for _, p := range sig.Params {
		params = append(params, backendType(ctx, p))
	}
	var results []backend.Type
	if len(sig.Results) > 0 {
		results = []backend.Type{backendType(ctx, sig.Results[0])}
	}
	return backend.FnType{Params: params, Results: results}
}

func backendType(ctx backend.Context, vt wasm.ValueType) backend.Type {
	switch vt {
	case wasm.ValueTypeI32:
		return ctx.I32Type()
	case wasm.ValueTypeI64:
		return ctx.I64Type()
	case wasm.ValueTypeF32:
		return ctx.F32Type()
	default:
		return ctx.F64Type()
	}
}

func zeroValue(ctx backend.Context, b backend.Builder, vt wasm.ValueType) backend.Value {
	ty := backendType(ctx, vt)
	if vt == wasm.ValueTypeF32 || vt == wasm.ValueTypeF64 {
		return b.ConstFloat(ty, 0)
	}
	return b.ConstInt(ty, 0)
}

// function lowers one function body into bf. locals holds the current
// backend.Value of every Wasm local, indexed in Wasm local-index space
// (parameters, then declared locals); declared locals are materialized to
// their type's zero value up front, since this backend has no merge points
// at which a lazier initialization would matter.
func function(ctx backend.Context, bf backend.Function, m *wasm.Module, fn wasm.Function) error {
	bb := bf.AppendBasicBlock("entry")
	b := ctx.CreateBuilder()
	b.PositionAtEnd(bb)

	sig := m.Types[fn.TypeIndex]
	numLocals := len(sig.Params)
	for _, l := range fn.Locals {
		numLocals += int(l.Count)
	}
	locals := make([]backend.Value, 0, numLocals)

	instanceCtx, err := bf.GetNthParam(0)
	if err != nil {
		return fmt.Errorf("instance context parameter: %w", err)
	}

	for i := range sig.Params {
		v, err := bf.GetNthParam(i + 1) // +1: shift past the injected instance-context parameter
		if err != nil {
			return err
		}
		locals = append(locals, v)
	}
	for _, l := range fn.Locals {
		zero := zeroValue(ctx, b, l.Type)
		for k := uint32(0); k < l.Count; k++ {
			locals = append(locals, zero)
		}
	}

	values := make([]backend.Value, len(fn.Operators))
	for i, op := range fn.Operators {
		v, err := operator(ctx, b, m, instanceCtx, locals, values, op)
		if err != nil {
			return fmt.Errorf("operator %d (%s): %w", i, op.Opcode, err)
		}
		values[i] = v
	}

	if len(fn.ResultRefs) == 0 {
		return b.BuildReturn(nil)
	}
	return b.BuildReturn(values[fn.ResultRefs[0]])
}

// operator lowers a single decoded operator to zero or one backend
// instructions, consulting locals for Local* operators and values (this
// function's own already-lowered results, addressed by OperandRefs) for
// everything else. m and instanceCtx are threaded through (including into
// nested block bodies) because Global* operators need to resolve a global's
// declared type against the module and address it through the injected
// instance-context parameter.
func operator(ctx backend.Context, b backend.Builder, m *wasm.Module, instanceCtx backend.Value, locals []backend.Value, values []backend.Value, op wasm.Operator) (backend.Value, error) {
	switch op.Opcode {
	case wasm.OpUnreachable, wasm.OpNop, wasm.OpDrop:
		return nil, nil

	case wasm.OpBlock:
		if op.BodyResultRef < 0 {
			return nil, nil
		}
		blockValues := make([]backend.Value, len(op.Body))
		for i, inner := range op.Body {
			v, err := operator(ctx, b, m, instanceCtx, locals, blockValues, inner)
			if err != nil {
				return nil, err
			}
			blockValues[i] = v
		}
		return blockValues[op.BodyResultRef], nil

	case wasm.OpLocalGet:
		return locals[op.LocalIndex], nil

	case wasm.OpLocalSet, wasm.OpLocalTee:
		locals[op.LocalIndex] = values[op.OperandRefs[0]]
		if op.Opcode == wasm.OpLocalTee {
			return locals[op.LocalIndex], nil
		}
		return nil, nil

	case wasm.OpGlobalGet:
		vt, _, ok := m.GlobalType(op.GlobalIndex)
		if !ok {
			return nil, fmt.Errorf("global %d: no such global", op.GlobalIndex)
		}
		cell, err := globalCellPtr(ctx, b, instanceCtx, op.GlobalIndex)
		if err != nil {
			return nil, err
		}
		return b.BuildLoad(backendType(ctx, vt), cell, 0)

	case wasm.OpGlobalSet:
		cell, err := globalCellPtr(ctx, b, instanceCtx, op.GlobalIndex)
		if err != nil {
			return nil, err
		}
		return nil, b.BuildStore(values[op.OperandRefs[0]], cell, 0)

	case wasm.OpI32Load, wasm.OpI64Load, wasm.OpF32Load, wasm.OpF64Load:
		base := values[op.OperandRefs[0]]
		return b.BuildLoad(resultType(ctx, op.Opcode), base, int64(op.Mem.Offset))

	case wasm.OpI32Store, wasm.OpI64Store, wasm.OpF32Store, wasm.OpF64Store:
		base := values[op.OperandRefs[0]]
		value := values[op.OperandRefs[1]]
		return nil, b.BuildStore(value, base, int64(op.Mem.Offset))

	case wasm.OpI32Const:
		return b.ConstInt(ctx.I32Type(), int64(op.ConstI32)), nil
	case wasm.OpI64Const:
		return b.ConstInt(ctx.I64Type(), op.ConstI64), nil
	case wasm.OpF32Const:
		return b.ConstFloat(ctx.F32Type(), float64(op.ConstF32)), nil
	case wasm.OpF64Const:
		return b.ConstFloat(ctx.F64Type(), op.ConstF64), nil

	case wasm.OpI32Add, wasm.OpI64Add:
		return b.BuildIntAdd(values[op.OperandRefs[0]], values[op.OperandRefs[1]])
	case wasm.OpI32Sub, wasm.OpI64Sub:
		return b.BuildIntSub(values[op.OperandRefs[0]], values[op.OperandRefs[1]])
	case wasm.OpI32Mul, wasm.OpI64Mul:
		return b.BuildIntMul(values[op.OperandRefs[0]], values[op.OperandRefs[1]])

	case wasm.OpF32Add, wasm.OpF64Add:
		return b.BuildFloatAdd(values[op.OperandRefs[0]], values[op.OperandRefs[1]])
	case wasm.OpF32Sub, wasm.OpF64Sub:
		return b.BuildFloatSub(values[op.OperandRefs[0]], values[op.OperandRefs[1]])
	case wasm.OpF32Mul, wasm.OpF64Mul:
		return b.BuildFloatMul(values[op.OperandRefs[0]], values[op.OperandRefs[1]])

	default:
		return nil, fmt.Errorf("unsupported operator %s", op.Opcode)
	}
}

// globalCellPtr resolves the address of a global's storage cell: the
// InstanceContext's globals field is a **u64, one *u64 element per global,
// each pointing at the cell holding that global's current value. Reaching
// the cell therefore takes two loads — the array base out of the instance
// context, then the element out of the array — mirroring how
// OpI32Load/OpI32Store already address raw memory through a base pointer
// plus offset, since this backend has no struct-field-addressing primitive
// beyond BuildLoad/BuildStore's (ptr, offset) pair.
func globalCellPtr(ctx backend.Context, b backend.Builder, instanceCtx backend.Value, index uint32) (backend.Value, error) {
	arrayPtrType := ctx.PtrType(ctx.PtrType(ctx.I64Type()))
	globalsArray, err := b.BuildLoad(arrayPtrType, instanceCtx, backend.InstanceContextFieldOffset(backend.InstanceContextFieldGlobals))
	if err != nil {
		return nil, err
	}
	cellPtrType := ctx.PtrType(ctx.I64Type())
	return b.BuildLoad(cellPtrType, globalsArray, int64(index)*8)
}

func resultType(ctx backend.Context, op wasm.Opcode) backend.Type {
	switch op {
	case wasm.OpI32Load:
		return ctx.I32Type()
	case wasm.OpI64Load:
		return ctx.I64Type()
	case wasm.OpF32Load:
		return ctx.F32Type()
	default:
		return ctx.F64Type()
	}
}
