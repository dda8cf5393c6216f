// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import (
	"fmt"
	"strings"
)

// PrototypeFlags is a set of per-function flags.
type PrototypeFlags uint8

// Prototype flags.
// Equivalent to the PROTO_* constants in LuaJIT
// that are preserved in dumps.
const (
	// PrototypeHasChild indicates that the function creates closures.
	PrototypeHasChild PrototypeFlags = 1 << 0
	// PrototypeVariadic indicates that the function takes a variable number of arguments.
	PrototypeVariadic PrototypeFlags = 1 << 1
	// PrototypeFFI indicates that the function uses FFI constants.
	PrototypeFFI PrototypeFlags = 1 << 2
	// PrototypeJITDisabled indicates that the function must not be compiled.
	PrototypeJITDisabled PrototypeFlags = 1 << 3
	// PrototypeHasILoop indicates that the function contains loops
	// that were patched to not be compiled.
	PrototypeHasILoop PrototypeFlags = 1 << 4

	knownPrototypeFlags = PrototypeHasChild | PrototypeVariadic | PrototypeFFI | PrototypeJITDisabled | PrototypeHasILoop
)

var prototypeFlagNames = []struct {
	flag PrototypeFlags
	name string
}{
	{PrototypeHasChild, "CHILD"},
	{PrototypeVariadic, "VARARG"},
	{PrototypeFFI, "FFI"},
	{PrototypeJITDisabled, "NOJIT"},
	{PrototypeHasILoop, "ILOOP"},
}

// ParsePrototypeFlags validates a raw prototype flag byte.
// It returns an error wrapping [ErrInvalidPrototypeFlags]
// if raw has any bits set that are not known prototype flags.
func ParsePrototypeFlags(raw uint8) (PrototypeFlags, error) {
	f := PrototypeFlags(raw)
	if unknown := f &^ knownPrototypeFlags; unknown != 0 {
		return 0, fmt.Errorf("%w %#02x", ErrInvalidPrototypeFlags, uint8(unknown))
	}
	return f, nil
}

// Has reports whether all the bits in flag are set in f.
func (f PrototypeFlags) Has(flag PrototypeFlags) bool {
	return f&flag == flag
}

// String returns the set flags separated by "|", or "0" if none are set.
func (f PrototypeFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for _, n := range prototypeFlagNames {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
			f &^= n.flag
		}
	}
	if f != 0 {
		parts = append(parts, fmt.Sprintf("%#02x", uint8(f)))
	}
	return strings.Join(parts, "|")
}

// Prototype represents a decoded function.
type Prototype struct {
	Flags PrototypeFlags
	// NumParams is the number of fixed (named) parameters.
	NumParams uint8
	// FrameSize is the number of stack slots needed by this function.
	FrameSize uint8

	Instructions []Instruction
	Constants    Constants

	// Debug information:

	// DebugSize is the number of bytes of debug information in the dump.
	// It is always zero for stripped chunks.
	DebugSize uint32
	// FirstLine and NumLines describe the function's source lines.
	// They are only set if DebugSize is nonzero.
	FirstLine uint32
	NumLines  uint32
	DebugInfo DebugInfo
}

// LineRange returns the first source line of the function
// and the number of lines it spans.
// ok is false if the prototype has no debug information.
func (p *Prototype) LineRange() (first, count uint32, ok bool) {
	if p.DebugSize == 0 {
		return 0, 0, false
	}
	return p.FirstLine, p.NumLines, true
}

// prototypeCounts is the fixed-size part of a prototype dump
// that precedes the variable-length sections.
type prototypeCounts struct {
	numUpvalues     uint8
	numComplex      uint32
	numNumeric      uint32
	numInstructions uint32
}

// readPrototype reads a single prototype.
// ok is false if the reader is positioned at the prototype list terminator.
func readPrototype(r *chunkReader, h Header, opts *DecodeOptions, children *childResolver) (_ *Prototype, ok bool, err error) {
	size, err := r.readULEB128()
	if err != nil {
		return nil, false, fmt.Errorf("size: %w", err)
	}
	if size == 0 {
		return nil, false, nil
	}

	p := new(Prototype)
	rawFlags, err := r.readByte()
	if err != nil {
		return nil, false, fmt.Errorf("flags: %w", err)
	}
	p.Flags, err = ParsePrototypeFlags(rawFlags)
	if err != nil {
		return nil, false, err
	}

	var counts prototypeCounts
	if p.NumParams, err = r.readByte(); err != nil {
		return nil, false, fmt.Errorf("number of parameters: %w", err)
	}
	if p.FrameSize, err = r.readByte(); err != nil {
		return nil, false, fmt.Errorf("frame size: %w", err)
	}
	if counts.numUpvalues, err = r.readByte(); err != nil {
		return nil, false, fmt.Errorf("upvalue count: %w", err)
	}
	if counts.numComplex, err = r.readULEB128(); err != nil {
		return nil, false, fmt.Errorf("complex constant count: %w", err)
	}
	if counts.numNumeric, err = r.readULEB128(); err != nil {
		return nil, false, fmt.Errorf("numeric constant count: %w", err)
	}
	if counts.numInstructions, err = r.readULEB128(); err != nil {
		return nil, false, fmt.Errorf("instruction count: %w", err)
	}

	if !h.Flags.Has(HeaderStripped) {
		if p.DebugSize, err = r.readULEB128(); err != nil {
			return nil, false, fmt.Errorf("debug size: %w", err)
		}
		if p.DebugSize != 0 {
			if p.FirstLine, err = r.readULEB128(); err != nil {
				return nil, false, fmt.Errorf("first line: %w", err)
			}
			if p.NumLines, err = r.readULEB128(); err != nil {
				return nil, false, fmt.Errorf("line count: %w", err)
			}
		}
	}

	if counts.numInstructions > 0 {
		p.Instructions = make([]Instruction, 0, min(counts.numInstructions, maxPrealloc))
		for pc := range counts.numInstructions {
			word, err := r.readUint(4)
			if err != nil {
				return nil, false, fmt.Errorf("instruction %d: %w", pc, err)
			}
			inst, err := decodeInstruction(uint32(word), h.Version, counts.numComplex)
			if err != nil {
				return nil, false, fmt.Errorf("instruction %d: %w", pc, err)
			}
			p.Instructions = append(p.Instructions, inst)
		}
	}

	p.Constants, err = readConstants(r, counts.numUpvalues, counts.numComplex, counts.numNumeric, children)
	if err != nil {
		return nil, false, err
	}

	if p.DebugSize != 0 {
		width := opts.LineWidth.width(p.FirstLine, p.NumLines)
		p.DebugInfo, err = readDebugInfo(r, counts.numInstructions, counts.numUpvalues, p.FirstLine, width)
		if err != nil {
			return nil, false, fmt.Errorf("debug info: %w", err)
		}
	}
	return p, true, nil
}
