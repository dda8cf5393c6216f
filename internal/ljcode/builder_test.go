// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import (
	"encoding/binary"
	"math"
)

// This file builds reference dumps byte by byte for tests.

func appendULEB128(buf []byte, v uint32) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

func appendTaggedULEB128(buf []byte, tag bool, v uint32) []byte {
	b := byte(v&0x3f) << 1
	if tag {
		b |= 1
	}
	v >>= 6
	if v != 0 {
		b |= 0x80
	}
	buf = append(buf, b)
	if v != 0 {
		buf = appendULEB128(buf, v)
	}
	return buf
}

func appendTestHeader(buf []byte, h Header) []byte {
	buf = append(buf, Signature...)
	buf = append(buf, byte(h.Version))
	buf = appendULEB128(buf, uint32(h.Flags))
	if !h.Flags.Has(HeaderStripped) {
		buf = appendULEB128(buf, uint32(len(h.Name)))
		buf = append(buf, h.Name...)
	}
	return buf
}

// testPrototype is the encoded form of a prototype.
type testPrototype struct {
	flags     uint8
	numParams uint8
	frameSize uint8
	upvalues  []uint16
	// complex holds encoded complex constants.
	complex [][]byte
	// numeric holds encoded numeric constants.
	numeric [][]byte
	code    []uint32

	// debug is the encoded debug section.
	// It is omitted if empty.
	debug     []byte
	firstLine uint32
	numLines  uint32
}

func (tp *testPrototype) appendTo(buf []byte, h Header) []byte {
	order := h.ByteOrder().(binary.AppendByteOrder)
	var body []byte
	body = append(body, tp.flags, tp.numParams, tp.frameSize, byte(len(tp.upvalues)))
	body = appendULEB128(body, uint32(len(tp.complex)))
	body = appendULEB128(body, uint32(len(tp.numeric)))
	body = appendULEB128(body, uint32(len(tp.code)))
	if !h.Flags.Has(HeaderStripped) {
		body = appendULEB128(body, uint32(len(tp.debug)))
		if len(tp.debug) > 0 {
			body = appendULEB128(body, tp.firstLine)
			body = appendULEB128(body, tp.numLines)
		}
	}
	for _, word := range tp.code {
		body = order.AppendUint32(body, word)
	}
	for _, uv := range tp.upvalues {
		body = order.AppendUint16(body, uv)
	}
	for _, k := range tp.complex {
		body = append(body, k...)
	}
	for _, k := range tp.numeric {
		body = append(body, k...)
	}
	if !h.Flags.Has(HeaderStripped) {
		body = append(body, tp.debug...)
	}

	buf = appendULEB128(buf, uint32(len(body)))
	return append(buf, body...)
}

func buildTestChunk(h Header, protos ...*testPrototype) []byte {
	buf := appendTestHeader(nil, h)
	for _, tp := range protos {
		buf = tp.appendTo(buf, h)
	}
	return append(buf, 0)
}

func encodeStringConstant(s string) []byte {
	buf := appendULEB128(nil, uint32(kgcString+len(s)))
	return append(buf, s...)
}

func encodeIntegerConstant(i uint32) []byte {
	return appendTaggedULEB128(nil, false, i)
}

// encodeFloatConstant encodes a double using the half order
// that the decoder expects for the given byte order.
func encodeFloatConstant(f float64, order binary.ByteOrder) []byte {
	bits := math.Float64bits(f)
	lo, hi := uint32(bits), uint32(bits>>32)
	if order == binary.BigEndian {
		lo, hi = hi, lo
	}
	buf := appendTaggedULEB128(nil, true, lo)
	return appendULEB128(buf, hi)
}

func abc(op OpCode, a, b, c uint8) uint32 {
	return uint32(op.Number()) | uint32(a)<<8 | uint32(c)<<16 | uint32(b)<<24
}

func ad(op OpCode, a uint8, d uint16) uint32 {
	return uint32(op.Number()) | uint32(a)<<8 | uint32(d)<<16
}
