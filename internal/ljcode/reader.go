// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// maxPrealloc bounds how many elements are allocated up front
// for a count read from the input.
// Larger sequences grow as their elements decode,
// so a corrupt count fails with a short read instead of a huge allocation.
const maxPrealloc = 1024

// chunkReader provides the primitive decoding operations.
// It only moves forward through the input.
type chunkReader struct {
	r   io.ByteReader
	pos int64

	byteOrder binary.ByteOrder
}

func newChunkReader(r io.Reader) *chunkReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &chunkReader{
		r:         br,
		byteOrder: binary.LittleEndian,
	}
}

// offset returns the number of bytes consumed so far.
func (r *chunkReader) offset() int64 {
	return r.pos
}

func (r *chunkReader) readByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	r.pos++
	return b, nil
}

// readUint reads an unsigned integer of the given size in bytes
// using the chunk's byte order.
func (r *chunkReader) readUint(size int) (uint64, error) {
	var buf [8]byte
	switch size {
	case 1, 2, 4, 8:
	default:
		return 0, fmt.Errorf("read %d-byte integer: unsupported size", size)
	}
	for i := range size {
		var err error
		buf[i], err = r.readByte()
		if err != nil {
			return 0, err
		}
	}
	switch size {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(r.byteOrder.Uint16(buf[:])), nil
	case 4:
		return uint64(r.byteOrder.Uint32(buf[:])), nil
	default:
		return r.byteOrder.Uint64(buf[:]), nil
	}
}

// readULEB128 reads an unsigned LEB128 integer.
// At most 5 bytes are accepted.
// As in LuaJIT, bits beyond the 32nd are discarded.
func (r *chunkReader) readULEB128() (uint32, error) {
	b, err := r.readByte()
	if err != nil {
		return 0, err
	}
	v := uint32(b)
	if v < 0x80 {
		return v, nil
	}
	v &= 0x7f
	for shift := 7; ; shift += 7 {
		if shift > 28 {
			return 0, fmt.Errorf("uleb128: %w", ErrNarrowing)
		}
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		v |= uint32(b&0x7f) << shift
		if b < 0x80 {
			return v, nil
		}
	}
}

// readTaggedULEB128 reads a 33-bit unsigned LEB128 integer
// whose lowest bit is a tag.
// It returns the tag and the remaining 32 bits.
//
// Equivalent to `bcread_uleb128_33` in LuaJIT.
func (r *chunkReader) readTaggedULEB128() (tag bool, v uint32, err error) {
	b, err := r.readByte()
	if err != nil {
		return false, 0, err
	}
	tag = b&1 != 0
	v = uint32(b >> 1)
	if v < 0x40 {
		return tag, v, nil
	}
	v &= 0x3f
	for shift := 6; ; shift += 7 {
		if shift > 27 {
			return false, 0, fmt.Errorf("tagged uleb128: %w", ErrNarrowing)
		}
		b, err := r.readByte()
		if err != nil {
			return false, 0, err
		}
		v |= uint32(b&0x7f) << shift
		if b < 0x80 {
			return tag, v, nil
		}
	}
}

// readZString reads a zero-terminated UTF-8 string.
// The terminator is consumed but not included in the result.
func (r *chunkReader) readZString() (string, error) {
	buf, err := r.readZBytes(nil)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("string %q: %w", buf, ErrEncoding)
	}
	return string(buf), nil
}

// readZBytes appends bytes to buf up to (but not including) the next zero byte.
func (r *chunkReader) readZBytes(buf []byte) ([]byte, error) {
	for {
		b, err := r.readByte()
		if err != nil {
			return buf, err
		}
		if b == 0 {
			return buf, nil
		}
		buf = append(buf, b)
	}
}

// readString reads a UTF-8 string of exactly n bytes.
func (r *chunkReader) readString(n uint32) (string, error) {
	buf := make([]byte, 0, min(n, maxPrealloc))
	for range n {
		b, err := r.readByte()
		if err != nil {
			return "", err
		}
		buf = append(buf, b)
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("string %q: %w", buf, ErrEncoding)
	}
	return string(buf), nil
}
