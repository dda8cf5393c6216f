// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestReadULEB128(t *testing.T) {
	tests := []struct {
		data    []byte
		want    uint32
		wantErr error
	}{
		{data: []byte{0x00}, want: 0},
		{data: []byte{0x7f}, want: 0x7f},
		{data: []byte{0x80, 0x01}, want: 0x80},
		{data: []byte{0xe5, 0x8e, 0x26}, want: 624485},
		{data: []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, want: 0xffffffff},
		{data: []byte{0x80, 0x80, 0x80, 0x80, 0x08}, want: 0x80000000},
		{data: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}, wantErr: ErrNarrowing},
		{data: []byte{}, wantErr: io.ErrUnexpectedEOF},
		{data: []byte{0x80}, wantErr: io.ErrUnexpectedEOF},
	}
	for _, test := range tests {
		r := newChunkReader(bytes.NewReader(test.data))
		got, err := r.readULEB128()
		if test.wantErr != nil {
			if !errors.Is(err, test.wantErr) {
				t.Errorf("readULEB128(%#v) = %d, %v; want error %v", test.data, got, err, test.wantErr)
			}
			continue
		}
		if got != test.want || err != nil {
			t.Errorf("readULEB128(%#v) = %d, %v; want %d, <nil>", test.data, got, err, test.want)
		}
		if r.offset() != int64(len(test.data)) {
			t.Errorf("readULEB128(%#v) consumed %d bytes; want %d", test.data, r.offset(), len(test.data))
		}
	}
}

func TestReadTaggedULEB128(t *testing.T) {
	tests := []struct {
		data    []byte
		wantTag bool
		want    uint32
	}{
		{data: []byte{0x00}, wantTag: false, want: 0},
		{data: []byte{0x54}, wantTag: false, want: 42},
		{data: []byte{0x55}, wantTag: true, want: 42},
		{data: []byte{0x7f}, wantTag: true, want: 0x3f},
		{data: []byte{0x80, 0x01}, wantTag: false, want: 0x40},
		{data: []byte{0x81, 0x01}, wantTag: true, want: 0x40},
		{data: []byte{0xff, 0xff, 0xff, 0xff, 0x3f}, wantTag: true, want: 0xffffffff},
	}
	for _, test := range tests {
		r := newChunkReader(bytes.NewReader(test.data))
		gotTag, got, err := r.readTaggedULEB128()
		if gotTag != test.wantTag || got != test.want || err != nil {
			t.Errorf("readTaggedULEB128(%#v) = %t, %d, %v; want %t, %d, <nil>",
				test.data, gotTag, got, err, test.wantTag, test.want)
		}
		if r.offset() != int64(len(test.data)) {
			t.Errorf("readTaggedULEB128(%#v) consumed %d bytes; want %d", test.data, r.offset(), len(test.data))
		}
	}

	t.Run("RoundTrip", func(t *testing.T) {
		for _, v := range []uint32{0, 1, 0x3f, 0x40, 0x1fff, 0x2000, 0xfffff, 0x7fffffff, 0xffffffff} {
			for _, tag := range []bool{false, true} {
				data := appendTaggedULEB128(nil, tag, v)
				gotTag, got, err := newChunkReader(bytes.NewReader(data)).readTaggedULEB128()
				if gotTag != tag || got != v || err != nil {
					t.Errorf("readTaggedULEB128(%#v) = %t, %d, %v; want %t, %d, <nil>", data, gotTag, got, err, tag, v)
				}
			}
		}
	})

	t.Run("TooLong", func(t *testing.T) {
		data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
		_, _, err := newChunkReader(bytes.NewReader(data)).readTaggedULEB128()
		if !errors.Is(err, ErrNarrowing) {
			t.Errorf("readTaggedULEB128(%#v) error = %v; want %v", data, err, ErrNarrowing)
		}
	})
}

func TestReadUint(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	tests := []struct {
		size  int
		order binary.ByteOrder
		want  uint64
	}{
		{1, binary.LittleEndian, 0x01},
		{1, binary.BigEndian, 0x01},
		{2, binary.LittleEndian, 0x0201},
		{2, binary.BigEndian, 0x0102},
		{4, binary.LittleEndian, 0x04030201},
		{4, binary.BigEndian, 0x01020304},
		{8, binary.LittleEndian, 0x0807060504030201},
		{8, binary.BigEndian, 0x0102030405060708},
	}
	for _, test := range tests {
		r := newChunkReader(bytes.NewReader(data))
		r.byteOrder = test.order
		got, err := r.readUint(test.size)
		if got != test.want || err != nil {
			t.Errorf("readUint(%d) [%v] = %#x, %v; want %#x, <nil>", test.size, test.order, got, err, test.want)
		}
	}

	if _, err := newChunkReader(bytes.NewReader(data[:3])).readUint(4); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("readUint(4) on 3 bytes error = %v; want %v", err, io.ErrUnexpectedEOF)
	}
	if _, err := newChunkReader(bytes.NewReader(data)).readUint(3); err == nil {
		t.Error("readUint(3) did not return an error")
	}
}

func TestReadZString(t *testing.T) {
	tests := []struct {
		data    []byte
		want    string
		wantErr error
	}{
		{data: []byte("\x00"), want: ""},
		{data: []byte("foo\x00"), want: "foo"},
		{data: []byte("h\xc3\xa9\x00"), want: "hé"},
		{data: []byte("\xff\x00"), wantErr: ErrEncoding},
		{data: []byte("foo"), wantErr: io.ErrUnexpectedEOF},
	}
	for _, test := range tests {
		got, err := newChunkReader(bytes.NewReader(test.data)).readZString()
		if test.wantErr != nil {
			if !errors.Is(err, test.wantErr) {
				t.Errorf("readZString(%q) = %q, %v; want error %v", test.data, got, err, test.wantErr)
			}
			continue
		}
		if got != test.want || err != nil {
			t.Errorf("readZString(%q) = %q, %v; want %q, <nil>", test.data, got, err, test.want)
		}
	}
}

func TestReadString(t *testing.T) {
	r := newChunkReader(bytes.NewReader([]byte("abcdef")))
	if got, err := r.readString(3); got != "abc" || err != nil {
		t.Errorf("readString(3) = %q, %v; want \"abc\", <nil>", got, err)
	}
	if got, err := r.readString(0); got != "" || err != nil {
		t.Errorf("readString(0) = %q, %v; want \"\", <nil>", got, err)
	}
	if _, err := r.readString(4); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("readString(4) with 3 bytes left error = %v; want %v", err, io.ErrUnexpectedEOF)
	}

	if _, err := newChunkReader(bytes.NewReader([]byte{0xc3})).readString(1); !errors.Is(err, ErrEncoding) {
		t.Errorf("readString(1) on truncated UTF-8 error = %v; want %v", err, ErrEncoding)
	}
}
