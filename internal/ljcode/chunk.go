// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import (
	"bytes"
	"errors"
	"fmt"
)

// Chunk is a decoded LuaJIT bytecode dump.
type Chunk struct {
	Header Header
	// Prototypes is the list of functions in the order they appear in the dump.
	// LuaJIT writes child functions before their parents,
	// so the main function is last.
	Prototypes []*Prototype
}

// Main returns the chunk's main function
// or nil if the chunk has no prototypes.
func (c *Chunk) Main() *Prototype {
	if len(c.Prototypes) == 0 {
		return nil
	}
	return c.Prototypes[len(c.Prototypes)-1]
}

// UnmarshalBinary decodes a chunk like those produced by "luajit -b"
// using the default [DecodeOptions].
// Unlike [Decode], it returns an error if data has bytes
// after the prototype list terminator.
func (c *Chunk) UnmarshalBinary(data []byte) error {
	br := bytes.NewReader(data)
	c2, err := decodeChunk(newChunkReader(br), new(DecodeOptions))
	if err != nil {
		return err
	}
	if br.Len() > 0 {
		return &DecodeError{
			Offset: int64(len(data) - br.Len()),
			Err:    errors.New("trailing data"),
		}
	}
	*c = *c2
	return nil
}

// scanState is a step of the chunk decoding loop.
type scanState uint8

const (
	scanHeader scanState = iota
	scanPrototype
	scanDone
)

// decodeChunk reads a header followed by prototypes until the terminator.
func decodeChunk(r *chunkReader, opts *DecodeOptions) (*Chunk, error) {
	c := new(Chunk)
	children := &childResolver{enabled: opts.ResolveChildren}
	for state := scanHeader; state != scanDone; {
		switch state {
		case scanHeader:
			var err error
			c.Header, err = readHeader(r)
			if err != nil {
				return nil, &DecodeError{Offset: r.offset(), Err: err}
			}
			r.byteOrder = c.Header.ByteOrder()
			state = scanPrototype
		case scanPrototype:
			i := len(c.Prototypes)
			p, ok, err := readPrototype(r, c.Header, opts, children)
			if err != nil {
				return nil, &DecodeError{
					Offset: r.offset(),
					Err:    fmt.Errorf("prototype %d: %w", i, err),
				}
			}
			if !ok {
				state = scanDone
				break
			}
			c.Prototypes = append(c.Prototypes, p)
			children.push(i)
		}
	}
	return c, nil
}
