// Package asm defines architecture-independent types shared by the backend's
// concrete code emitters. It mirrors only the slice of a general assembler
// abstraction that a straight-line, branch-free function body needs: no jump
// targets, no jump tables, no conditional register state.
package asm

import "fmt"

// Register represents an architecture-specific register.
type Register byte

// NilRegister indicates that no register is specified.
const NilRegister Register = 0

// Instruction represents an architecture-specific instruction opcode.
type Instruction byte

// NodeOffsetInBinary is the offset of a Node in the assembled binary.
type NodeOffsetInBinary = uint64

// ConstantValue is a constant operand embedded directly in an instruction.
type ConstantValue = int64

// Node represents one instruction in the assembled linked list.
type Node interface {
	fmt.Stringer
	// AssignDestinationConstant assigns the constant destination operand.
	AssignDestinationConstant(value ConstantValue)
	// AssignSourceConstant assigns the constant source operand.
	AssignSourceConstant(value ConstantValue)
	// OffsetInBinary returns this node's offset once assembled.
	OffsetInBinary() NodeOffsetInBinary
}

// Assembler is the common interface implemented by each architecture's
// concrete emitter. The backend never supports branches, so this surface
// intentionally omits jump and jump-table operations.
type Assembler interface {
	// Assemble produces the final machine code for the instructions added so far.
	Assemble() ([]byte, error)
	// CompileStandAlone adds an instruction that takes no operands.
	CompileStandAlone(instruction Instruction) Node
	// CompileConstToRegister adds an instruction with a constant source and register destination.
	CompileConstToRegister(instruction Instruction, value ConstantValue, destinationReg Register) Node
	// CompileRegisterToRegister adds an instruction whose source and destination are both registers.
	CompileRegisterToRegister(instruction Instruction, from, to Register) Node
	// CompileMemoryToRegister adds a load from baseReg+offsetConst into destinationReg.
	CompileMemoryToRegister(instruction Instruction, baseReg Register, offsetConst ConstantValue, destinationReg Register) Node
	// CompileRegisterToMemory adds a store of sourceReg into destinationBaseReg+offsetConst.
	CompileRegisterToMemory(instruction Instruction, sourceReg Register, destinationBaseReg Register, offsetConst ConstantValue) Node
}
