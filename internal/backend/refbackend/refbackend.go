// Package refbackend is the one concrete implementation of internal/backend's
// capability set, targeting amd64 via github.com/twitchyliquid64/golang-asm.
// It exists to ground the backend interfaces in a real emitter; it is not a
// general-purpose code generator and only emits what the lowering walk in
// internal/lower ever asks for: constants, loads/stores, int/float
// add/sub/mul, and a single return per function.
package refbackend

import (
	"fmt"
	"math"

	"github.com/appcypher/wasmo/internal/asm"
	"github.com/appcypher/wasmo/internal/backend"
)

type refType struct {
	kind   backend.Kind
	name   string
	elem   *refType
	fields []*refType
}

func (t *refType) Kind() backend.Kind { return t.kind }

func (t *refType) String() string {
	switch t.kind {
	case backend.KindPtr:
		return "ptr<" + t.elem.String() + ">"
	case backend.KindStruct:
		return t.name
	default:
		return t.kind.String()
	}
}

func asRefType(t backend.Type) *refType {
	rt, ok := t.(*refType)
	if !ok {
		panic(fmt.Sprintf("refbackend: foreign type %v", t))
	}
	return rt
}

// isFloat reports whether values of this type live in the XMM register file.
func (t *refType) isFloat() bool {
	return t.kind == backend.KindF32 || t.kind == backend.KindF64
}

// is64 reports whether this type occupies a full 64-bit register lane.
func (t *refType) is64() bool {
	return t.kind == backend.KindI64 || t.kind == backend.KindF64 || t.kind == backend.KindPtr
}

type refValue struct {
	ty  *refType
	reg asm.Register
}

func (v *refValue) Type() backend.Type { return v.ty }
func (v *refValue) String() string     { return fmt.Sprintf("%%r%d:%s", v.reg, v.ty) }

type refBasicBlock struct {
	name string
	fn   *refFunction
}

func (b *refBasicBlock) Name() string { return b.name }

// refFunction holds one function's declared signature and its own
// instruction stream; every function gets its own assembler since golang-asm
// assembles one linear instruction list at a time.
type refFunction struct {
	name    string
	fnType  backend.FnType
	asm     *assembler
	params  []*refValue
	code    []byte
	emitted bool
}

func (f *refFunction) AppendBasicBlock(name string) backend.BasicBlock {
	return &refBasicBlock{name: name, fn: f}
}

func (f *refFunction) GetNthParam(i int) (backend.Value, error) {
	if i < 0 || i >= len(f.params) {
		return nil, fmt.Errorf("refbackend: param %d out of range (function has %d)", i, len(f.params))
	}
	return f.params[i], nil
}

func (f *refFunction) CountParams() int { return len(f.params) }

// allocateParamRegisters assigns each parameter a register per the System V
// AMD64 calling convention: integer/pointer parameters consume
// intArgRegisters in order, float parameters consume floatArgRegisters in
// order, independently of each other's position in the signature.
func allocateParamRegisters(params []backend.Type) ([]*refValue, error) {
	vals := make([]*refValue, len(params))
	nextInt, nextFloat := 0, 0
	for i, p := range params {
		rt := asRefType(p)
		if rt.isFloat() {
			if nextFloat >= len(floatArgRegisters) {
				return nil, fmt.Errorf("refbackend: function exceeds %d float parameters", len(floatArgRegisters))
			}
			vals[i] = &refValue{ty: rt, reg: floatArgRegisters[nextFloat]}
			nextFloat++
		} else {
			if nextInt >= len(intArgRegisters) {
				return nil, fmt.Errorf("refbackend: function exceeds %d integer parameters", len(intArgRegisters))
			}
			vals[i] = &refValue{ty: rt, reg: intArgRegisters[nextInt]}
			nextInt++
		}
	}
	return vals, nil
}

type compiledModule struct {
	functions []*refFunction
}

func (m *compiledModule) FunctionCode(index int) []byte {
	return m.functions[index].code
}

type refModule struct {
	name      string
	functions []*refFunction
}

func (m *refModule) AddFunction(name string, fnType backend.FnType, _ backend.Linkage) (backend.Function, error) {
	params, err := allocateParamRegisters(fnType.Params)
	if err != nil {
		return nil, err
	}
	a, err := newAMD64Assembler()
	if err != nil {
		return nil, err
	}
	fn := &refFunction{name: name, fnType: fnType, asm: a, params: params}
	m.functions = append(m.functions, fn)
	return fn, nil
}

func (m *refModule) Finish() (backend.CompiledModule, error) {
	for _, fn := range m.functions {
		if !fn.emitted {
			return nil, fmt.Errorf("refbackend: function %q has no terminating return", fn.name)
		}
		code, err := fn.asm.Assemble()
		if err != nil {
			return nil, fmt.Errorf("refbackend: assembling %q: %w", fn.name, err)
		}
		fn.code = code
	}
	return &compiledModule{functions: m.functions}, nil
}

// scratchAllocator hands out registers from a small fixed pool. The
// lowering walk only ever produces straight-line code with a handful of
// live values at once (the spec's backend has no branches), so a real
// register allocator is unnecessary; running out of scratch registers
// indicates a function far larger than anything in scope.
type scratchAllocator struct {
	nextInt, nextFloat int
}

var intScratchRegisters = []asm.Register{REG_AX, REG_BX, REG_CX, REG_DX, REG_R10, REG_R11}
var floatScratchRegisters = []asm.Register{REG_X0, REG_X1, REG_X2, REG_X3, REG_X4, REG_X5}

func (s *scratchAllocator) allocate(rt *refType) (asm.Register, error) {
	if rt.isFloat() {
		if s.nextFloat >= len(floatScratchRegisters) {
			return 0, fmt.Errorf("refbackend: exceeded %d live float values", len(floatScratchRegisters))
		}
		r := floatScratchRegisters[s.nextFloat]
		s.nextFloat++
		return r, nil
	}
	if s.nextInt >= len(intScratchRegisters) {
		return 0, fmt.Errorf("refbackend: exceeded %d live integer values", len(intScratchRegisters))
	}
	r := intScratchRegisters[s.nextInt]
	s.nextInt++
	return r, nil
}

type refBuilder struct {
	fn        *refFunction
	allocator scratchAllocator
}

func (b *refBuilder) PositionAtEnd(bb backend.BasicBlock) {
	b.fn = bb.(*refBasicBlock).fn
	b.allocator = scratchAllocator{}
}

func movInstruction(rt *refType) asm.Instruction {
	switch {
	case rt.isFloat() && rt.is64():
		return MOVSD
	case rt.isFloat():
		return MOVSS
	case rt.is64():
		return MOVQ
	default:
		return MOVL
	}
}

// moveInto copies v's value into a fresh scratch register of the same class
// so arithmetic never clobbers a still-live parameter or prior value.
func (b *refBuilder) moveInto(v *refValue) (*refValue, error) {
	dst, err := b.allocator.allocate(v.ty)
	if err != nil {
		return nil, err
	}
	b.fn.asm.CompileRegisterToRegister(movInstruction(v.ty), v.reg, dst)
	return &refValue{ty: v.ty, reg: dst}, nil
}

func (b *refBuilder) binOp(intOp, intOp64, floatOpS, floatOpD asm.Instruction, lhs, rhs backend.Value) (backend.Value, error) {
	l := lhs.(*refValue)
	r := rhs.(*refValue)
	if l.ty.kind != r.ty.kind {
		return nil, fmt.Errorf("refbackend: operand type mismatch %s vs %s", l.ty, r.ty)
	}
	acc, err := b.moveInto(l)
	if err != nil {
		return nil, err
	}
	var instr asm.Instruction
	switch {
	case l.ty.isFloat() && l.ty.is64():
		instr = floatOpD
	case l.ty.isFloat():
		instr = floatOpS
	case l.ty.is64():
		instr = intOp64
	default:
		instr = intOp
	}
	b.fn.asm.CompileRegisterToRegister(instr, r.reg, acc.reg)
	return acc, nil
}

func (b *refBuilder) BuildIntAdd(lhs, rhs backend.Value) (backend.Value, error) {
	return b.binOp(ADDL, ADDQ, 0, 0, lhs, rhs)
}

func (b *refBuilder) BuildIntSub(lhs, rhs backend.Value) (backend.Value, error) {
	return b.binOp(SUBL, SUBQ, 0, 0, lhs, rhs)
}

func (b *refBuilder) BuildIntMul(lhs, rhs backend.Value) (backend.Value, error) {
	return b.binOp(IMULL, IMULQ, 0, 0, lhs, rhs)
}

func (b *refBuilder) BuildFloatAdd(lhs, rhs backend.Value) (backend.Value, error) {
	return b.binOp(0, 0, ADDSS, ADDSD, lhs, rhs)
}

func (b *refBuilder) BuildFloatSub(lhs, rhs backend.Value) (backend.Value, error) {
	return b.binOp(0, 0, SUBSS, SUBSD, lhs, rhs)
}

func (b *refBuilder) BuildFloatMul(lhs, rhs backend.Value) (backend.Value, error) {
	return b.binOp(0, 0, MULSS, MULSD, lhs, rhs)
}

func (b *refBuilder) BuildLoad(ty backend.Type, ptr backend.Value, offset int64) (backend.Value, error) {
	rt := asRefType(ty)
	p := ptr.(*refValue)
	dst, err := b.allocator.allocate(rt)
	if err != nil {
		return nil, err
	}
	b.fn.asm.CompileMemoryToRegister(movInstruction(rt), p.reg, offset, dst)
	return &refValue{ty: rt, reg: dst}, nil
}

func (b *refBuilder) BuildStore(value backend.Value, ptr backend.Value, offset int64) error {
	v := value.(*refValue)
	p := ptr.(*refValue)
	b.fn.asm.CompileRegisterToMemory(movInstruction(v.ty), v.reg, p.reg, offset)
	return nil
}

// ConstInt materializes an integer constant directly into a scratch register.
func (b *refBuilder) ConstInt(ty backend.Type, value int64) backend.Value {
	rt := asRefType(ty)
	reg, err := b.allocator.allocate(rt)
	if err != nil {
		panic(err)
	}
	instr := MOVL
	if rt.is64() {
		instr = MOVQ
	}
	b.fn.asm.CompileConstToRegister(instr, value, reg)
	return &refValue{ty: rt, reg: reg}
}

// ConstFloat materializes a float constant by loading its IEEE-754 bit
// pattern into a general-purpose scratch register, then transferring those
// bits into an XMM register. x86 has no immediate-to-XMM move; every real
// backend instead pools float constants in a read-only data section, which
// is out of scope for a reference emitter with no linker.
func (b *refBuilder) ConstFloat(ty backend.Type, value float64) backend.Value {
	rt := asRefType(ty)
	bits := int64(float64bits(rt, value))

	gp, err := b.allocator.allocate(&refType{kind: backend.KindI64})
	if err != nil {
		panic(err)
	}
	b.fn.asm.CompileConstToRegister(MOVQ, bits, gp)

	xmm, err := b.allocator.allocate(rt)
	if err != nil {
		panic(err)
	}
	b.fn.asm.CompileRegisterToRegister(MOVQ, gp, xmm)
	return &refValue{ty: rt, reg: xmm}
}

func float64bits(rt *refType, value float64) uint64 {
	if rt.kind == backend.KindF32 {
		return uint64(math.Float32bits(float32(value)))
	}
	return math.Float64bits(value)
}

func (b *refBuilder) BuildReturn(value backend.Value) error {
	if value != nil {
		v := value.(*refValue)
		ret := REG_AX
		if v.ty.isFloat() {
			ret = REG_X0
		}
		if v.reg != ret {
			b.fn.asm.CompileRegisterToRegister(movInstruction(v.ty), v.reg, ret)
		}
	}
	b.fn.asm.CompileStandAlone(RET)
	b.fn.emitted = true
	return nil
}

// Context is the entry point the lowering walk uses to create modules,
// builders, and primitive types targeting amd64.
type Context struct {
	i32, i64, f32, f64, void *refType
}

func NewContext() *Context {
	return &Context{
		i32:  &refType{kind: backend.KindI32},
		i64:  &refType{kind: backend.KindI64},
		f32:  &refType{kind: backend.KindF32},
		f64:  &refType{kind: backend.KindF64},
		void: &refType{kind: backend.KindVoid},
	}
}

func (c *Context) I32Type() backend.Type  { return c.i32 }
func (c *Context) I64Type() backend.Type  { return c.i64 }
func (c *Context) F32Type() backend.Type  { return c.f32 }
func (c *Context) F64Type() backend.Type  { return c.f64 }
func (c *Context) VoidType() backend.Type { return c.void }

func (c *Context) PtrType(elem backend.Type) backend.Type {
	return &refType{kind: backend.KindPtr, elem: asRefType(elem)}
}

func (c *Context) StructType(name string, fields []backend.Type) backend.Type {
	rfields := make([]*refType, len(fields))
	for i, f := range fields {
		rfields[i] = asRefType(f)
	}
	return &refType{kind: backend.KindStruct, name: name, fields: rfields}
}

func (c *Context) CreateModule(name string) backend.Module {
	return &refModule{name: name}
}

func (c *Context) CreateBuilder() backend.Builder {
	return &refBuilder{}
}
