// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import (
	"fmt"
	"math"
	"strings"
)

// Instruction is a single decoded bytecode instruction.
//
// Operands that index [Constants.Complex] are stored as forward indices
// and jump operands are stored as offsets relative to the next instruction.
// Both transforms happen during decoding,
// so [Instruction.Raw] cannot be reinterpreted without them.
// A forward index can exceed the width of its raw field,
// so operands other than A are stored as int32.
type Instruction struct {
	op  OpCode
	a   uint8
	b   int32
	c   int32
	d   int32
	n   uint8
	raw uint32
}

// OpCode returns the instruction's opcode.
func (i Instruction) OpCode() OpCode {
	return i.op
}

// Format returns the instruction's operand layout.
func (i Instruction) Format() Format {
	if i.op == nil {
		return 0
	}
	return i.op.Format()
}

// ABC returns the instruction's operands
// if the instruction is in [FormatABC].
func (i Instruction) ABC() (a uint8, b, c int32, ok bool) {
	if i.Format() != FormatABC {
		return 0, 0, 0, false
	}
	return i.a, i.b, i.c, true
}

// AD returns the instruction's operands
// if the instruction is in [FormatAD].
func (i Instruction) AD() (a uint8, d int32, ok bool) {
	if i.Format() != FormatAD {
		return 0, 0, false
	}
	return i.a, i.d, true
}

// NumOperands returns the number of operand slots
// that the opcode gives a meaning.
func (i Instruction) NumOperands() int {
	return int(i.n)
}

// Raw returns the 32-bit code word the instruction was decoded from.
func (i Instruction) Raw() uint32 {
	return i.raw
}

// Operand returns the value and type of the operand in the given slot:
// 0 for A, 1 for B, and 2 for C or D.
// Slots that are not used by the opcode have type [OperandNone].
func (i Instruction) Operand(slot int) (int32, OperandType) {
	if i.op == nil || slot < 0 || slot > 2 {
		return 0, OperandNone
	}
	t := i.op.OperandTypes()[slot]
	switch slot {
	case 0:
		return int32(i.a), t
	case 1:
		return i.b, t
	default:
		if i.Format() == FormatABC {
			return i.c, t
		}
		return i.d, t
	}
}

// String formats the instruction in the style of a LuaJIT listing,
// like "KSTR     0   1".
// Only operands that the opcode uses are shown.
// Signed literals are shown sign-extended.
func (i Instruction) String() string {
	if i.op == nil {
		return fmt.Sprintf("<invalid %#08x>", i.raw)
	}
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "%-6s", i.op.Name())
	for slot := range 3 {
		v, t := i.Operand(slot)
		if t == OperandNone {
			continue
		}
		if t == OperandJump {
			fmt.Fprintf(sb, " %+4d", v)
		} else {
			fmt.Fprintf(sb, " %4d", t.Value(v))
		}
	}
	return sb.String()
}

// constantIndex converts a complex constant operand
// to an index into a prototype's complex constant slice.
// LuaJIT stores these operands counting back from the end of the slice.
func constantIndex(count uint32, raw uint32) int64 {
	return int64(count) - int64(raw) - 1
}

// jumpBias is added to jump offsets when they are encoded.
const jumpBias = 0x8000

// jumpOffset converts a jump operand
// to an offset relative to the instruction after the jump.
func jumpOffset(raw uint32) int64 {
	return int64(raw) - jumpBias
}

// transformOperand converts a raw operand field to its stored value.
func transformOperand(t OperandType, raw uint32, complexCount uint32) (int64, error) {
	switch {
	case t.IsComplexConstant():
		idx := constantIndex(complexCount, raw)
		if idx < 0 {
			return 0, fmt.Errorf("%v operand %d with %d complex constants: %w", t, raw, complexCount, ErrNarrowing)
		}
		return idx, nil
	case t == OperandJump:
		return jumpOffset(raw), nil
	default:
		return int64(raw), nil
	}
}

// narrowA stores a transformed value in the 8-bit A operand slot.
func narrowA(v int64) (uint8, error) {
	if v < 0 || v > 0xff {
		return 0, fmt.Errorf("operand %d does not fit in 8 bits: %w", v, ErrNarrowing)
	}
	return uint8(v), nil
}

// narrowOperand stores a transformed value in a B, C, or D operand slot.
func narrowOperand(v int64) (int32, error) {
	if v < -jumpBias || v > math.MaxInt32 {
		return 0, fmt.Errorf("operand %d does not fit in 32 bits: %w", v, ErrNarrowing)
	}
	return int32(v), nil
}

// decodeInstruction decodes a single code word
// from a prototype with the given number of complex constants.
func decodeInstruction(word uint32, v Version, complexCount uint32) (Instruction, error) {
	op, err := LookupOpCode(v, uint8(word))
	if err != nil {
		return Instruction{}, err
	}
	inst := Instruction{op: op, raw: word}
	types := op.OperandTypes()
	for _, t := range types {
		if t != OperandNone {
			inst.n++
		}
	}

	rawA := (word >> 8) & 0xff
	a, err := transformOperand(types[0], rawA, complexCount)
	if err != nil {
		return Instruction{}, fmt.Errorf("%v: A: %w", op, err)
	}
	if inst.a, err = narrowA(a); err != nil {
		return Instruction{}, fmt.Errorf("%v: A: %w", op, err)
	}

	switch op.Format() {
	case FormatABC:
		rawB := word >> 24
		rawC := (word >> 16) & 0xff
		b, err := transformOperand(types[1], rawB, complexCount)
		if err != nil {
			return Instruction{}, fmt.Errorf("%v: B: %w", op, err)
		}
		if inst.b, err = narrowOperand(b); err != nil {
			return Instruction{}, fmt.Errorf("%v: B: %w", op, err)
		}
		c, err := transformOperand(types[2], rawC, complexCount)
		if err != nil {
			return Instruction{}, fmt.Errorf("%v: C: %w", op, err)
		}
		if inst.c, err = narrowOperand(c); err != nil {
			return Instruction{}, fmt.Errorf("%v: C: %w", op, err)
		}
	case FormatAD:
		rawD := word >> 16
		d, err := transformOperand(types[2], rawD, complexCount)
		if err != nil {
			return Instruction{}, fmt.Errorf("%v: D: %w", op, err)
		}
		if inst.d, err = narrowOperand(d); err != nil {
			return Instruction{}, fmt.Errorf("%v: D: %w", op, err)
		}
	}
	return inst, nil
}
