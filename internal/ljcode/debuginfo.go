// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

//go:generate go tool stringer -type=Visibility -linecomment -output=debuginfo_string.go

package ljcode

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// DebugInfo is the optional debugging information of a [Prototype].
// It is empty for stripped chunks.
type DebugInfo struct {
	// LineTable holds the absolute source line of each instruction,
	// parallel to [Prototype.Instructions].
	LineTable []uint64
	// UpvalueNames is parallel to [Constants.Upvalues].
	UpvalueNames []string
	// Variables lists the function's local variables
	// ordered by their Start address.
	Variables []VariableInfo
}

// IsEmpty reports whether info has no line, upvalue, or variable information.
func (info DebugInfo) IsEmpty() bool {
	return len(info.LineTable) == 0 && len(info.UpvalueNames) == 0 && len(info.Variables) == 0
}

// LineAt returns the source line of the instruction at pc.
func (info DebugInfo) LineAt(pc int) (_ uint64, ok bool) {
	if pc < 0 || pc >= len(info.LineTable) {
		return 0, false
	}
	return info.LineTable[pc], true
}

// LocalName returns the name of the local variable the given slot represents
// during the execution of the instruction at pc,
// or the empty string if the slot does not hold a local variable
// (or the debug information has been stripped).
func (info DebugInfo) LocalName(slot uint8, pc int) string {
	for _, v := range info.Variables {
		if int64(v.Start) > int64(pc) {
			// Variables are ordered by Start,
			// so this variable and any subsequent ones are not yet live.
			break
		}
		if int64(pc) < int64(v.End) {
			if slot == 0 {
				return v.Name
			}
			slot--
		}
	}
	return ""
}

// Visibility is an enumeration of local variable kinds.
type Visibility uint8

const (
	// Named is a variable declared in source.
	Named Visibility = 1 + iota // named
	// InternalSlot is a hidden variable that the compiler allocates
	// for a loop's control state.
	InternalSlot // internal
)

// VariableInfo describes the live range of a local variable.
type VariableInfo struct {
	Name       string
	Visibility Visibility
	// Start is the address of the first instruction where the variable is live.
	Start uint32
	// End is the address of the first instruction where the variable is dead.
	End uint32
}

// Variable name tags.
// Equivalent to the VARNAME_* constants in LuaJIT.
const (
	varNameEnd = 0
	// varNameMax is the first tag byte that begins a source name.
	varNameMax = 7
)

var internalVariableNames = [varNameMax]string{
	1: "<index>",
	2: "<limit>",
	3: "<step>",
	4: "<generator>",
	5: "<state>",
	6: "<control>",
}

// lineWidth returns the size in bytes of each line table entry.
func lineWidth(base uint32) int {
	switch {
	case base < 0x100:
		return 1
	case base < 0x10000:
		return 2
	default:
		return 4
	}
}

// readDebugInfo reads a prototype's line table, upvalue names,
// and variable records.
// width is the size of each line table entry as returned by [lineWidth].
func readDebugInfo(r *chunkReader, numInstructions uint32, numUpvalues uint8, firstLine uint32, width int) (DebugInfo, error) {
	var info DebugInfo
	if numInstructions > 0 {
		info.LineTable = make([]uint64, 0, min(numInstructions, maxPrealloc))
		for pc := range numInstructions {
			delta, err := r.readUint(width)
			if err != nil {
				return DebugInfo{}, fmt.Errorf("line table [%d]: %w", pc, err)
			}
			info.LineTable = append(info.LineTable, uint64(firstLine)+delta)
		}
	}

	if numUpvalues > 0 {
		info.UpvalueNames = make([]string, numUpvalues)
		for i := range info.UpvalueNames {
			var err error
			info.UpvalueNames[i], err = r.readZString()
			if err != nil {
				return DebugInfo{}, fmt.Errorf("upvalue name %d: %w", i, err)
			}
		}
	}

	var prevStart uint32
	for i := 0; ; i++ {
		v, ok, err := readVariableInfo(r, prevStart)
		if err != nil {
			return DebugInfo{}, fmt.Errorf("variable %d: %w", i, err)
		}
		if !ok {
			break
		}
		info.Variables = append(info.Variables, v)
		prevStart = v.Start
	}
	return info, nil
}

// readVariableInfo reads a single variable record.
// ok is false if the record is the list terminator.
func readVariableInfo(r *chunkReader, prevStart uint32) (_ VariableInfo, ok bool, err error) {
	tag, err := r.readByte()
	if err != nil {
		return VariableInfo{}, false, err
	}
	var v VariableInfo
	switch {
	case tag == varNameEnd:
		return VariableInfo{}, false, nil
	case tag < varNameMax:
		v.Visibility = InternalSlot
		v.Name = internalVariableNames[tag]
	default:
		v.Visibility = Named
		name, err := r.readZBytes([]byte{tag})
		if err != nil {
			return VariableInfo{}, false, err
		}
		if !utf8.Valid(name) {
			return VariableInfo{}, false, fmt.Errorf("name %q: %w", name, ErrEncoding)
		}
		v.Name = string(name)
	}

	startDelta, err := r.readULEB128()
	if err != nil {
		return VariableInfo{}, false, fmt.Errorf("%s: start: %w", v.Name, err)
	}
	length, err := r.readULEB128()
	if err != nil {
		return VariableInfo{}, false, fmt.Errorf("%s: length: %w", v.Name, err)
	}
	start := uint64(prevStart) + uint64(startDelta)
	end := start + uint64(length)
	if end > math.MaxUint32 {
		return VariableInfo{}, false, fmt.Errorf("%s: address range [%d, %d): %w", v.Name, start, end, ErrInvalidDebugVariable)
	}
	v.Start = uint32(start)
	v.End = uint32(end)
	return v, true, nil
}
