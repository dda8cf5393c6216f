// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljdis

import (
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"zb.256lights.llc/ljbc/internal/ljcode"
)

// chunkDocument is the JSON representation of a decoded chunk.
type chunkDocument struct {
	File       string              `json:"file"`
	Version    string              `json:"version"`
	Flags      string              `json:"flags"`
	Name       *string             `json:"name,omitempty"`
	Prototypes []prototypeDocument `json:"prototypes"`
}

type prototypeDocument struct {
	Flags        string                `json:"flags"`
	NumParams    uint8                 `json:"numParams"`
	FrameSize    uint8                 `json:"frameSize"`
	FirstLine    *uint32               `json:"firstLine,omitempty"`
	NumLines     *uint32               `json:"numLines,omitempty"`
	Instructions []instructionDocument `json:"instructions"`
	Upvalues     []uint16              `json:"upvalues,omitempty"`
	Constants    []constantDocument    `json:"constants,omitempty"`
	Numbers      []numberDocument      `json:"numbers,omitempty"`
	Lines        []uint64              `json:"lines,omitempty"`
	UpvalueNames []string              `json:"upvalueNames,omitempty"`
	Variables    []variableDocument    `json:"variables,omitempty"`
}

type instructionDocument struct {
	Op       string  `json:"op"`
	Operands []int32 `json:"operands"`
}

type constantDocument struct {
	Kind   string  `json:"kind"`
	String *string `json:"string,omitempty"`
	Child  *int    `json:"child,omitempty"`
}

type numberDocument struct {
	Integer *uint32 `json:"integer,omitempty"`
	// Float is formatted as a string so that infinities and NaN survive.
	Float *string `json:"float,omitempty"`
}

type variableDocument struct {
	Name     string `json:"name"`
	Internal bool   `json:"internal,omitempty"`
	Start    uint32 `json:"start"`
	End      uint32 `json:"end"`
}

func newChunkDocument(file string, c *ljcode.Chunk) *chunkDocument {
	doc := &chunkDocument{
		File:       file,
		Version:    c.Header.Version.String(),
		Flags:      c.Header.Flags.String(),
		Prototypes: make([]prototypeDocument, 0, len(c.Prototypes)),
	}
	if name, ok := c.Header.ChunkName(); ok {
		doc.Name = &name
	}
	for _, p := range c.Prototypes {
		doc.Prototypes = append(doc.Prototypes, newPrototypeDocument(p))
	}
	return doc
}

func newPrototypeDocument(p *ljcode.Prototype) prototypeDocument {
	pdoc := prototypeDocument{
		Flags:        p.Flags.String(),
		NumParams:    p.NumParams,
		FrameSize:    p.FrameSize,
		Instructions: make([]instructionDocument, 0, len(p.Instructions)),
		Upvalues:     p.Constants.Upvalues,
		Lines:        p.DebugInfo.LineTable,
		UpvalueNames: p.DebugInfo.UpvalueNames,
	}
	if first, count, ok := p.LineRange(); ok {
		pdoc.FirstLine = &first
		pdoc.NumLines = &count
	}
	for _, inst := range p.Instructions {
		idoc := instructionDocument{
			Op:       inst.OpCode().Name(),
			Operands: make([]int32, 0, inst.NumOperands()),
		}
		for slot := range 3 {
			if v, t := inst.Operand(slot); t != ljcode.OperandNone {
				idoc.Operands = append(idoc.Operands, t.Value(v))
			}
		}
		pdoc.Instructions = append(pdoc.Instructions, idoc)
	}
	for _, k := range p.Constants.Complex {
		kdoc := constantDocument{Kind: k.Kind().String()}
		if s, ok := k.StringValue(); ok {
			kdoc.String = &s
		}
		if child, ok := k.Child(); ok {
			kdoc.Child = &child
		}
		pdoc.Constants = append(pdoc.Constants, kdoc)
	}
	for _, k := range p.Constants.Numeric {
		var ndoc numberDocument
		if i, ok := k.Int(); ok {
			ndoc.Integer = &i
		} else {
			s := k.String()
			ndoc.Float = &s
		}
		pdoc.Numbers = append(pdoc.Numbers, ndoc)
	}
	for _, v := range p.DebugInfo.Variables {
		pdoc.Variables = append(pdoc.Variables, variableDocument{
			Name:     v.Name,
			Internal: v.Visibility == ljcode.InternalSlot,
			Start:    v.Start,
			End:      v.End,
		})
	}
	return pdoc
}

func marshalChunk(file string, c *ljcode.Chunk) ([]byte, error) {
	data, err := jsonv2.Marshal(newChunkDocument(file, c), jsontext.Multiline(true))
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
