// Package golang_asm wraps github.com/twitchyliquid64/golang-asm so the
// backend's per-architecture emitters can build a linked list of instructions
// and assemble them into a machine-code byte slice, without depending on the
// Go toolchain's internal assembler package directly.
package golang_asm

import (
	"fmt"

	goasm "github.com/twitchyliquid64/golang-asm"
	"github.com/twitchyliquid64/golang-asm/obj"

	"github.com/appcypher/wasmo/internal/asm"
)

// GolangAsmNode implements asm.Node for golang-asm library.
type GolangAsmNode struct {
	prog *obj.Prog
}

func NewGolangAsmNode(p *obj.Prog) asm.Node {
	return &GolangAsmNode{prog: p}
}

// String implements fmt.Stringer.
func (n *GolangAsmNode) String() string {
	return n.prog.String()
}

// OffsetInBinary implements asm.Node.OffsetInBinary.
func (n *GolangAsmNode) OffsetInBinary() asm.NodeOffsetInBinary {
	return asm.NodeOffsetInBinary(n.prog.Pc)
}

// AssignDestinationConstant implements asm.Node.AssignDestinationConstant.
func (n *GolangAsmNode) AssignDestinationConstant(value asm.ConstantValue) {
	n.prog.To.Offset = value
}

// AssignSourceConstant implements asm.Node.AssignSourceConstant.
func (n *GolangAsmNode) AssignSourceConstant(value asm.ConstantValue) {
	n.prog.From.Offset = value
}

// GolangAsmBaseAssembler implements the instruction-list bookkeeping shared by
// every architecture's concrete assembler built on golang-asm.
type GolangAsmBaseAssembler struct {
	b *goasm.Builder
}

func NewGolangAsmBaseAssembler(arch string) (*GolangAsmBaseAssembler, error) {
	b, err := goasm.NewBuilder(arch, 1024)
	if err != nil {
		return nil, fmt.Errorf("failed to create a new assembly builder: %w", err)
	}
	return &GolangAsmBaseAssembler{b: b}, nil
}

// Assemble implements asm.Assembler.Assemble.
func (a *GolangAsmBaseAssembler) Assemble() ([]byte, error) {
	return a.b.Assemble(), nil
}

// AddInstruction is used by architecture-specific assemblers built on golang-asm.
func (a *GolangAsmBaseAssembler) AddInstruction(next *obj.Prog) {
	a.b.AddInstruction(next)
}

// NewProg is used by architecture-specific assemblers built on golang-asm.
func (a *GolangAsmBaseAssembler) NewProg() (prog *obj.Prog) {
	return a.b.NewProg()
}
