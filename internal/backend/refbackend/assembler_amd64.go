package refbackend

import (
	"github.com/twitchyliquid64/golang-asm/obj"
	"github.com/twitchyliquid64/golang-asm/obj/x86"

	"github.com/appcypher/wasmo/internal/asm"
	"github.com/appcypher/wasmo/internal/asm/golang_asm"
)

// Instruction opcodes the reference backend emits. Only the handful the
// lowering walk actually drives: no branches, no jumps, no calls.
const (
	MOVL asm.Instruction = iota + 1
	MOVQ
	MOVSS
	MOVSD
	ADDL
	ADDQ
	SUBL
	SUBQ
	IMULL
	IMULQ
	ADDSS
	ADDSD
	SUBSS
	SUBSD
	MULSS
	MULSD
	RET
)

var castAsGolangAsmInstruction = [...]obj.As{
	MOVL:  x86.AMOVL,
	MOVQ:  x86.AMOVQ,
	MOVSS: x86.AMOVSS,
	MOVSD: x86.AMOVSD,
	ADDL:  x86.AADDL,
	ADDQ:  x86.AADDQ,
	SUBL:  x86.ASUBL,
	SUBQ:  x86.ASUBQ,
	IMULL: x86.AIMULL,
	IMULQ: x86.AIMULQ,
	ADDSS: x86.AADDSS,
	ADDSD: x86.AADDSD,
	SUBSS: x86.ASUBSS,
	SUBSD: x86.ASUBSD,
	MULSS: x86.AMULSS,
	MULSD: x86.AMULSD,
	RET:   x86.ARET,
}

// General-purpose and floating-point registers the reference backend uses.
// Parameters are assigned per the System V AMD64 calling convention
// (intArgRegisters/floatArgRegisters below), so the injected
// ptr<InstanceContext> parameter, always the first integer parameter,
// arrives in DI. Intermediate values come from the scratch pools in
// refbackend.go, and BuildReturn places an integer result in AX and a float
// result in X0.
const (
	REG_AX asm.Register = iota + 1
	REG_BX
	REG_CX
	REG_DX
	REG_SI
	REG_DI
	REG_R8
	REG_R9
	REG_R10
	REG_R11
	REG_X0
	REG_X1
	REG_X2
	REG_X3
	REG_X4
	REG_X5
)

var castAsGolangAsmRegister = map[asm.Register]int16{
	REG_AX:  x86.REG_AX,
	REG_BX:  x86.REG_BX,
	REG_CX:  x86.REG_CX,
	REG_DX:  x86.REG_DX,
	REG_SI:  x86.REG_SI,
	REG_DI:  x86.REG_DI,
	REG_R8:  x86.REG_R8,
	REG_R9:  x86.REG_R9,
	REG_R10: x86.REG_R10,
	REG_R11: x86.REG_R11,
	REG_X0:  x86.REG_X0,
	REG_X1:  x86.REG_X1,
	REG_X2:  x86.REG_X2,
	REG_X3:  x86.REG_X3,
	REG_X4:  x86.REG_X4,
	REG_X5:  x86.REG_X5,
}

// intArgRegisters and floatArgRegisters enumerate the registers the System V
// AMD64 ABI assigns to the first few integer/pointer and float parameters.
// The reference backend never spills past this count: the spec's functions
// always carry the injected context pointer plus a small fixed arity.
var intArgRegisters = []asm.Register{REG_DI, REG_SI, REG_DX, REG_CX, REG_R8, REG_R9}
var floatArgRegisters = []asm.Register{REG_X0, REG_X1, REG_X2, REG_X3, REG_X4, REG_X5}

// assembler builds a single function's instruction list on golang-asm.
type assembler struct {
	*golang_asm.GolangAsmBaseAssembler
}

func newAMD64Assembler() (*assembler, error) {
	b, err := golang_asm.NewGolangAsmBaseAssembler("amd64")
	if err != nil {
		return nil, err
	}
	return &assembler{GolangAsmBaseAssembler: b}, nil
}

// CompileStandAlone implements asm.Assembler.CompileStandAlone.
func (a *assembler) CompileStandAlone(instruction asm.Instruction) asm.Node {
	p := a.NewProg()
	p.As = castAsGolangAsmInstruction[instruction]
	a.AddInstruction(p)
	return golang_asm.NewGolangAsmNode(p)
}

// CompileConstToRegister implements asm.Assembler.CompileConstToRegister.
func (a *assembler) CompileConstToRegister(instruction asm.Instruction, value asm.ConstantValue, destinationReg asm.Register) asm.Node {
	p := a.NewProg()
	p.As = castAsGolangAsmInstruction[instruction]
	p.From.Type = obj.TYPE_CONST
	p.From.Offset = value
	p.To.Type = obj.TYPE_REG
	p.To.Reg = castAsGolangAsmRegister[destinationReg]
	a.AddInstruction(p)
	return golang_asm.NewGolangAsmNode(p)
}

// CompileRegisterToRegister implements asm.Assembler.CompileRegisterToRegister.
// The destination register is also the implicit left-hand accumulator for
// two-operand arithmetic: dst = dst <op> src.
func (a *assembler) CompileRegisterToRegister(instruction asm.Instruction, from, to asm.Register) asm.Node {
	p := a.NewProg()
	p.As = castAsGolangAsmInstruction[instruction]
	p.From.Type = obj.TYPE_REG
	p.From.Reg = castAsGolangAsmRegister[from]
	p.To.Type = obj.TYPE_REG
	p.To.Reg = castAsGolangAsmRegister[to]
	a.AddInstruction(p)
	return golang_asm.NewGolangAsmNode(p)
}

// CompileMemoryToRegister implements asm.Assembler.CompileMemoryToRegister.
func (a *assembler) CompileMemoryToRegister(instruction asm.Instruction, baseReg asm.Register, offsetConst asm.ConstantValue, destinationReg asm.Register) asm.Node {
	p := a.NewProg()
	p.As = castAsGolangAsmInstruction[instruction]
	p.From.Type = obj.TYPE_MEM
	p.From.Reg = castAsGolangAsmRegister[baseReg]
	p.From.Offset = offsetConst
	p.To.Type = obj.TYPE_REG
	p.To.Reg = castAsGolangAsmRegister[destinationReg]
	a.AddInstruction(p)
	return golang_asm.NewGolangAsmNode(p)
}

// CompileRegisterToMemory implements asm.Assembler.CompileRegisterToMemory.
func (a *assembler) CompileRegisterToMemory(instruction asm.Instruction, sourceReg asm.Register, destinationBaseReg asm.Register, offsetConst asm.ConstantValue) asm.Node {
	p := a.NewProg()
	p.As = castAsGolangAsmInstruction[instruction]
	p.From.Type = obj.TYPE_REG
	p.From.Reg = castAsGolangAsmRegister[sourceReg]
	p.To.Type = obj.TYPE_MEM
	p.To.Reg = castAsGolangAsmRegister[destinationBaseReg]
	p.To.Offset = offsetConst
	a.AddInstruction(p)
	return golang_asm.NewGolangAsmNode(p)
}
