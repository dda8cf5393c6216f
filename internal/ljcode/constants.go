// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

//go:generate go tool stringer -type=ComplexKind -linecomment -output=constants_string.go

package ljcode

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Constants is the constant pool of a [Prototype].
type Constants struct {
	// Upvalues holds one reference per upvalue.
	// The low bits are the slot or upvalue index in the enclosing function.
	// LuaJIT sets bit 15 for references to an enclosing local
	// and bit 14 for immutable locals.
	Upvalues []uint16
	// Complex holds strings, table templates, and child prototypes,
	// indexed by operands of type
	// [OperandStr], [OperandTab], [OperandFunc], and [OperandCData].
	Complex []ComplexConstant
	// Numeric is indexed by operands of type [OperandNum].
	Numeric []NumericConstant
}

// Complex constant dump tags.
// Equivalent to the BCDUMP_KGC_* constants in LuaJIT.
const (
	kgcChild   = 0
	kgcTable   = 1
	kgcI64     = 2
	kgcU64     = 3
	kgcComplex = 4
	kgcString  = 5
)

// ComplexKind is an enumeration of [ComplexConstant] variants.
type ComplexKind uint8

// Complex constant kinds.
const (
	ComplexString ComplexKind = 1 + iota // string
	// ComplexTable is a table template.
	// Decoding table templates is not supported,
	// so no decoded constant has this kind.
	ComplexTable // table
	ComplexChild // child
)

// ComplexConstant is a non-numeric constant.
// The zero value is not a valid constant.
// ComplexConstants can be compared for equality with the == operator.
type ComplexConstant struct {
	s     string
	child int
	kind  ComplexKind
}

// StringConstant returns a [ComplexConstant] holding a string.
func StringConstant(s string) ComplexConstant {
	return ComplexConstant{kind: ComplexString, s: s}
}

// ChildConstant returns a [ComplexConstant] referring to the prototype
// at the given index in [Chunk.Prototypes].
// A negative index is an unresolved reference.
func ChildConstant(index int) ComplexConstant {
	if index < 0 {
		index = -1
	}
	return ComplexConstant{kind: ComplexChild, child: index}
}

// Kind returns the constant's variant.
func (k ComplexConstant) Kind() ComplexKind {
	return k.kind
}

// StringValue returns the constant's string
// and reports whether the constant is a string.
func (k ComplexConstant) StringValue() (_ string, isString bool) {
	return k.s, k.kind == ComplexString
}

// Child returns the index of the prototype the constant refers to.
// ok is false if the constant is not a child reference
// or the reference was not resolved during decoding
// (see [DecodeOptions.ResolveChildren]).
func (k ComplexConstant) Child() (index int, ok bool) {
	if k.kind != ComplexChild || k.child < 0 {
		return -1, false
	}
	return k.child, true
}

// String formats the constant for a listing.
// Strings are quoted.
func (k ComplexConstant) String() string {
	switch k.kind {
	case ComplexString:
		return strconv.Quote(k.s)
	case ComplexTable:
		return "<table>"
	case ComplexChild:
		if k.child < 0 {
			return "<function>"
		}
		return "<function: " + strconv.Itoa(k.child) + ">"
	default:
		return "<invalid>"
	}
}

// NumericConstant is a number constant.
// The zero value is the integer zero.
// NumericConstants can be compared for equality with the == operator
// (floats are compared by bit pattern).
type NumericConstant struct {
	bits    uint64
	isFloat bool
}

// IntegerConstant returns a [NumericConstant] holding an integer.
func IntegerConstant(i uint32) NumericConstant {
	return NumericConstant{bits: uint64(i)}
}

// FloatConstant returns a [NumericConstant] holding a double.
func FloatConstant(f float64) NumericConstant {
	return NumericConstant{bits: math.Float64bits(f), isFloat: true}
}

// IsFloat reports whether the constant is a double.
func (k NumericConstant) IsFloat() bool {
	return k.isFloat
}

// Int returns the constant's value if it is an integer.
func (k NumericConstant) Int() (_ uint32, isInteger bool) {
	if k.isFloat {
		return 0, false
	}
	return uint32(k.bits), true
}

// Float64 returns the constant as a floating-point number.
// Integers are converted.
func (k NumericConstant) Float64() float64 {
	if !k.isFloat {
		return float64(uint32(k.bits))
	}
	return math.Float64frombits(k.bits)
}

// Bits returns the IEEE 754 bit pattern of a float constant
// or the value of an integer constant.
func (k NumericConstant) Bits() uint64 {
	return k.bits
}

// String formats the constant like Lua would.
func (k NumericConstant) String() string {
	if !k.isFloat {
		return strconv.FormatUint(k.bits, 10)
	}
	f := math.Float64frombits(k.bits)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', 14, 64)
}

// childResolver maps child prototype constants to prototype indices.
// When disabled, every reference decodes as unresolved.
type childResolver struct {
	enabled bool
	// pending is a stack of decoded prototypes
	// that have not yet been claimed by a parent.
	pending []int
}

// push records that the prototype at index has been decoded.
func (cr *childResolver) push(index int) {
	if cr.enabled {
		cr.pending = append(cr.pending, index)
	}
}

// pop claims the most recently decoded unclaimed prototype.
func (cr *childResolver) pop() (ComplexConstant, error) {
	if !cr.enabled {
		return ChildConstant(-1), nil
	}
	n := len(cr.pending)
	if n == 0 {
		return ComplexConstant{}, ErrInvalidChildReference
	}
	index := cr.pending[n-1]
	cr.pending = cr.pending[:n-1]
	return ChildConstant(index), nil
}

// readConstants reads the upvalue references, complex constants,
// and numeric constants of a prototype, in that order.
func readConstants(r *chunkReader, numUpvalues uint8, numComplex, numNumeric uint32, children *childResolver) (Constants, error) {
	var k Constants
	if numUpvalues > 0 {
		k.Upvalues = make([]uint16, numUpvalues)
		for i := range k.Upvalues {
			uv, err := r.readUint(2)
			if err != nil {
				return Constants{}, fmt.Errorf("upvalue %d: %w", i, err)
			}
			k.Upvalues[i] = uint16(uv)
		}
	}

	if numComplex > 0 {
		k.Complex = make([]ComplexConstant, 0, min(numComplex, maxPrealloc))
		for i := range numComplex {
			c, err := readComplexConstant(r, children)
			if err != nil {
				return Constants{}, fmt.Errorf("complex constant %d: %w", i, err)
			}
			k.Complex = append(k.Complex, c)
		}
	}

	if numNumeric > 0 {
		k.Numeric = make([]NumericConstant, 0, min(numNumeric, maxPrealloc))
		for i := range numNumeric {
			n, err := readNumericConstant(r)
			if err != nil {
				return Constants{}, fmt.Errorf("numeric constant %d: %w", i, err)
			}
			k.Numeric = append(k.Numeric, n)
		}
	}
	return k, nil
}

func readComplexConstant(r *chunkReader, children *childResolver) (ComplexConstant, error) {
	tag, err := r.readULEB128()
	if err != nil {
		return ComplexConstant{}, err
	}
	switch {
	case tag == kgcChild:
		return children.pop()
	case tag == kgcTable:
		return ComplexConstant{}, fmt.Errorf("table: %w", ErrUnsupportedConstant)
	case tag == kgcI64, tag == kgcU64:
		return ComplexConstant{}, fmt.Errorf("64-bit integer (tag %d): %w", tag, ErrUnsupportedConstant)
	case tag == kgcComplex:
		return ComplexConstant{}, fmt.Errorf("complex number: %w", ErrUnsupportedConstant)
	default:
		s, err := r.readString(tag - kgcString)
		if err != nil {
			return ComplexConstant{}, err
		}
		return StringConstant(s), nil
	}
}

// readNumericConstant reads a numeric constant.
// The tag bit of the first value selects between an integer and a double.
// A double's two 32-bit halves are combined according to the chunk's byte order.
func readNumericConstant(r *chunkReader) (NumericConstant, error) {
	isFloat, lo, err := r.readTaggedULEB128()
	if err != nil {
		return NumericConstant{}, err
	}
	if !isFloat {
		return IntegerConstant(lo), nil
	}
	hi, err := r.readULEB128()
	if err != nil {
		return NumericConstant{}, err
	}
	return NumericConstant{
		bits:    combineDoubleHalves(lo, hi, r.byteOrder == binary.BigEndian),
		isFloat: true,
	}, nil
}

// combineDoubleHalves joins the two halves of a double constant.
func combineDoubleHalves(first, second uint32, bigEndian bool) uint64 {
	if bigEndian {
		return uint64(first)<<32 | uint64(second)
	}
	return uint64(second)<<32 | uint64(first)
}
