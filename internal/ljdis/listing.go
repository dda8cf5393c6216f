// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljdis

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"zb.256lights.llc/ljbc/internal/ljcode"
)

type listingOptions struct {
	full bool
	// width is the maximum number of columns in an instruction line,
	// or zero for no limit.
	width int
}

// printChunk writes a listing of every prototype in the chunk
// in the order they appear in the dump.
func printChunk(w io.Writer, name string, c *ljcode.Chunk, opts *listingOptions) error {
	source := name
	if chunkName, ok := c.Header.ChunkName(); ok && chunkName != "" {
		source = strings.TrimLeft(chunkName, "@=")
	}
	for i, p := range c.Prototypes {
		if err := printPrototype(w, source, c, i, p, opts); err != nil {
			return err
		}
	}
	return nil
}

func functionName(c *ljcode.Chunk, i int) string {
	if i == len(c.Prototypes)-1 {
		return "main"
	}
	return fmt.Sprintf("F[%d]", i)
}

func printPrototype(w io.Writer, source string, c *ljcode.Chunk, index int, p *ljcode.Prototype, opts *listingOptions) error {
	plural := func(n int, unit string, unitPlural string) string {
		if n == 1 {
			return "1 " + unit
		}
		return fmt.Sprintf("%d %s", n, unitPlural)
	}
	pluralUnit := func(n int, unit string, unitPlural string) string {
		if n == 1 {
			return unit
		}
		return unitPlural
	}

	lines := "-"
	if first, count, ok := p.LineRange(); ok {
		lines = fmt.Sprintf("%d,%d", first, first+count)
	}
	kind := "function"
	if index == len(c.Prototypes)-1 {
		kind = "main"
	}
	_, err := fmt.Fprintf(w,
		"\n%s <%s:%s> (%s for %s)\n",
		kind,
		source,
		lines,
		plural(len(p.Instructions), "instruction", "instructions"),
		functionName(c, index),
	)
	if err != nil {
		return err
	}
	vararg := ""
	if p.Flags.Has(ljcode.PrototypeVariadic) {
		vararg = "+"
	}
	_, err = fmt.Fprintf(w,
		"%d%s %s, %s, %s, %s, %s, %s, flags %v\n",
		p.NumParams,
		vararg,
		pluralUnit(int(p.NumParams), "param", "params"),
		plural(int(p.FrameSize), "slot", "slots"),
		plural(len(p.Constants.Upvalues), "upvalue", "upvalues"),
		plural(len(p.DebugInfo.Variables), "local", "locals"),
		plural(len(p.Constants.Complex), "constant", "constants"),
		plural(len(p.Constants.Numeric), "number", "numbers"),
		p.Flags,
	)
	if err != nil {
		return err
	}

	lineBuf := new(bytes.Buffer)
	for pc, inst := range p.Instructions {
		lineBuf.Reset()
		fmt.Fprintf(lineBuf, "\t%d\t", pc+1)
		if line, ok := p.DebugInfo.LineAt(pc); ok {
			fmt.Fprintf(lineBuf, "[%d]\t", line)
		} else {
			lineBuf.WriteString("[-]\t")
		}
		lineBuf.WriteString(inst.String())
		if comment := instructionComment(c, p, pc, inst); comment != "" {
			lineBuf.WriteString("\t; ")
			lineBuf.WriteString(comment)
		}
		line := truncateLine(lineBuf.String(), opts.width)
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}

	if !opts.full {
		return nil
	}

	name := functionName(c, index)
	if _, err := fmt.Fprintf(w, "constants (%d) for %s\n", len(p.Constants.Complex), name); err != nil {
		return err
	}
	for i, k := range p.Constants.Complex {
		kind := "?"
		switch k.Kind() {
		case ljcode.ComplexString:
			kind = "S"
		case ljcode.ComplexTable:
			kind = "T"
		case ljcode.ComplexChild:
			kind = "F"
		}
		line := truncateLine(fmt.Sprintf("\t%d\t%s\t%v", i, kind, k), opts.width)
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "numbers (%d) for %s\n", len(p.Constants.Numeric), name); err != nil {
		return err
	}
	for i, k := range p.Constants.Numeric {
		kind := "I"
		if k.IsFloat() {
			kind = "F"
		}
		if _, err := fmt.Fprintf(w, "\t%d\t%s\t%v\n", i, kind, k); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "locals (%d) for %s\n", len(p.DebugInfo.Variables), name); err != nil {
		return err
	}
	for i, v := range p.DebugInfo.Variables {
		if _, err := fmt.Fprintf(w, "\t%d\t%s\t%d\t%d\n", i, v.Name, v.Start+1, v.End+1); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "upvalues (%d) for %s\n", len(p.Constants.Upvalues), name); err != nil {
		return err
	}
	for i, uv := range p.Constants.Upvalues {
		uvName := "-"
		if i < len(p.DebugInfo.UpvalueNames) {
			uvName = p.DebugInfo.UpvalueNames[i]
		}
		if _, err := fmt.Fprintf(w, "\t%d\t%s\t%#04x\n", i, uvName, uv); err != nil {
			return err
		}
	}
	return nil
}

// instructionComment returns a description of the instruction's constant
// or jump target, if any.
func instructionComment(c *ljcode.Chunk, p *ljcode.Prototype, pc int, inst ljcode.Instruction) string {
	var parts []string
	for slot := range 3 {
		v, t := inst.Operand(slot)
		switch {
		case t == ljcode.OperandJump:
			parts = append(parts, fmt.Sprintf("to %d", pc+1+1+int(v)))
		case t == ljcode.OperandNum:
			if int(v) < len(p.Constants.Numeric) {
				parts = append(parts, p.Constants.Numeric[v].String())
			}
		case t == ljcode.OperandFunc:
			if int(v) < len(p.Constants.Complex) {
				k := p.Constants.Complex[v]
				if child, ok := k.Child(); ok {
					parts = append(parts, functionName(c, child))
				} else {
					parts = append(parts, k.String())
				}
			}
		case t.IsComplexConstant():
			if int(v) < len(p.Constants.Complex) {
				parts = append(parts, p.Constants.Complex[v].String())
			}
		}
	}
	return strings.Join(parts, " ")
}

// truncateLine shortens line to at most width columns,
// marking the cut with "...".
// Tabs are counted as a single column.
func truncateLine(line string, width int) string {
	const ellipsis = "..."
	if width <= len(ellipsis) || utf8.RuneCountInString(line) <= width {
		return line
	}
	n := 0
	for i := range line {
		if n == width-len(ellipsis) {
			return line[:i] + ellipsis
		}
		n++
	}
	return line
}
