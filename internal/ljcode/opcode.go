// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

//go:generate go tool stringer -type=Format,OperandType -linecomment -output=opcode_string.go

package ljcode

import "fmt"

// OpCode is an instruction type.
// Opcode numbering differs between dump format versions,
// so an OpCode is always one of [Op20] or [Op21].
type OpCode interface {
	// Version returns the instruction set the opcode belongs to.
	Version() Version
	// Number returns the opcode's numeric value within its version.
	Number() uint8
	Name() string
	Format() Format
	OperandTypes() [3]OperandType
	String() string

	isOpCode()
}

// LookupOpCode returns the opcode with the given number in the given version.
// It returns an error wrapping [ErrInvalidOpcode]
// if n is out of range for the version.
func LookupOpCode(v Version, n uint8) (OpCode, error) {
	switch v {
	case Version20:
		if op := Op20(n); op.IsValid() {
			return op, nil
		}
	case Version21:
		if op := Op21(n); op.IsValid() {
			return op, nil
		}
	default:
		return nil, fmt.Errorf("%w %v", ErrInvalidVersion, v)
	}
	return nil, fmt.Errorf("%w %#02x for LuaJIT %v", ErrInvalidOpcode, n, v)
}

// Format is an enumeration of [Instruction] operand layouts.
type Format uint8

// Instruction formats.
const (
	// FormatABC has three 8-bit operands: A in bits 8-15, C in bits 16-23, and B in bits 24-31.
	FormatABC Format = 1 + iota // ABC
	// FormatAD has an 8-bit A operand in bits 8-15 and a 16-bit D operand in bits 16-31.
	FormatAD // AD
)

// OperandType is the meaning of an instruction operand.
type OperandType uint8

// Operand types.
// Equivalent to the BCM* modes in LuaJIT.
const (
	// OperandNone marks an unused operand slot.
	OperandNone OperandType = iota // ___
	// OperandVar is a variable slot.
	OperandVar // var
	// OperandDst is a destination slot.
	OperandDst // dst
	// OperandBase is the first of a range of slots.
	OperandBase // base
	// OperandRBase is a base slot that is only read.
	OperandRBase // rbase
	// OperandUpvalue is an upvalue index.
	OperandUpvalue // uv
	// OperandLit is an unsigned literal.
	OperandLit // lit
	// OperandSignedLit is a 16-bit literal holding a two's complement value.
	// The operand is stored as the unsigned field;
	// [OperandType.Value] sign-extends it.
	OperandSignedLit // lits
	// OperandPri is a primitive type tag (0 = nil, 1 = false, 2 = true).
	OperandPri // pri
	// OperandNum is an index into [Constants.Numeric].
	OperandNum // num
	// OperandStr is an index of a string in [Constants.Complex].
	OperandStr // str
	// OperandTab is an index of a table template in [Constants.Complex].
	OperandTab // tab
	// OperandFunc is an index of a child prototype in [Constants.Complex].
	OperandFunc // func
	// OperandCData is an index of a cdata constant in [Constants.Complex].
	OperandCData // cdata
	// OperandJump is a branch offset relative to the next instruction.
	OperandJump // jump
)

// Value returns the number that an operand of type t with stored value v denotes.
// It sign-extends [OperandSignedLit] operands
// and returns other operands unchanged.
func (t OperandType) Value(v int32) int32 {
	if t == OperandSignedLit {
		return int32(int16(uint16(v)))
	}
	return v
}

// IsComplexConstant reports whether the operand indexes [Constants.Complex].
// Such operands are stored in the bytecode counting backwards from the end
// of the constant table.
func (t OperandType) IsComplexConstant() bool {
	switch t {
	case OperandStr, OperandTab, OperandFunc, OperandCData:
		return true
	default:
		return false
	}
}

type opInfo struct {
	name   string
	format Format
	a      OperandType
	b      OperandType
	cd     OperandType
}

func (info opInfo) operandTypes() [3]OperandType {
	return [3]OperandType{info.a, info.b, info.cd}
}
