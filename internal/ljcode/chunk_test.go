// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var chunkDiffOptions = cmp.Options{
	cmp.AllowUnexported(Instruction{}, ComplexConstant{}, NumericConstant{}),
	cmpopts.EquateEmpty(),
}

func TestDecodeEmpty(t *testing.T) {
	data := buildTestChunk(Header{Version: Version21, Flags: HeaderStripped})
	got, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Prototypes) != 0 {
		t.Errorf("len(Prototypes) = %d; want 0", len(got.Prototypes))
	}
	if got.Main() != nil {
		t.Errorf("Main() = %p; want nil", got.Main())
	}
}

func TestDecodeStrippedPrototype(t *testing.T) {
	h := Header{Version: Version21, Flags: HeaderStripped}
	data := buildTestChunk(h, &testPrototype{frameSize: 2})
	got, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	want := &Chunk{
		Header:     h,
		Prototypes: []*Prototype{{FrameSize: 2}},
	}
	if diff := cmp.Diff(want, got, chunkDiffOptions); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	p := got.Main()
	if len(p.Instructions) != 0 || !p.DebugInfo.IsEmpty() {
		t.Errorf("prototype = %+v; want empty", p)
	}
	if _, _, ok := p.LineRange(); ok {
		t.Error("LineRange() ok = true for stripped chunk")
	}
}

func TestDecodeManyConstants(t *testing.T) {
	// Operands count back from the end of the constant table,
	// so the first of 300 strings is at index 299
	// even though the raw C field is 8 bits wide.
	const n = 300
	tp := &testPrototype{frameSize: 2}
	for i := range n {
		tp.complex = append(tp.complex, encodeStringConstant(fmt.Sprintf("k%d", i)))
	}
	tp.code = []uint32{
		abc(Op21TGetS, 0, 0, 0),
		abc(Op21TSetS, 1, 0, 255),
		ad(Op21KStr, 1, 0),
		ad(Op21Ret0, 0, 1),
	}
	data := buildTestChunk(Header{Version: Version21, Flags: HeaderStripped}, tp)
	got, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	p := got.Main()
	if _, _, c, _ := p.Instructions[0].ABC(); c != n-1 {
		t.Errorf("TGETS C = %d; want %d", c, n-1)
	} else if s, _ := p.Constants.Complex[c].StringValue(); s != "k0" {
		t.Errorf("Constants.Complex[%d] = %q; want \"k0\"", c, s)
	}
	if _, _, c, _ := p.Instructions[1].ABC(); c != n-256 {
		t.Errorf("TSETS C = %d; want %d", c, n-256)
	}
	if _, d, _ := p.Instructions[2].AD(); d != n-1 {
		t.Errorf("KSTR D = %d; want %d", d, n-1)
	}
}

// helloChunk returns a chunk equivalent to compiling:
//
//	local function f(x) return x end
//	print(f(1.5), "hi")
func helloChunk(t testing.TB, flags HeaderFlags) (*Header, []byte) {
	t.Helper()
	h := &Header{Version: Version21, Flags: flags}
	if !flags.Has(HeaderStripped) {
		h.Name = "@hello.lua"
	}
	order := h.ByteOrder()
	child := &testPrototype{
		numParams: 1,
		frameSize: 1,
		code: []uint32{
			ad(Op21Ret1, 0, 2),
		},
		debug:     []byte{0x00, 'x', 0, 0x00, 0x01, 0},
		firstLine: 1,
		numLines:  0,
	}
	main := &testPrototype{
		flags:     uint8(PrototypeHasChild | PrototypeVariadic),
		frameSize: 5,
		complex: [][]byte{
			encodeStringConstant("hi"),
			encodeStringConstant("print"),
			{kgcChild},
		},
		numeric: [][]byte{
			encodeFloatConstant(1.5, order),
		},
		code: []uint32{
			ad(Op21FNew, 0, 0),
			ad(Op21GGet, 1, 1),
			ad(Op21Mov, 2, 0),
			ad(Op21KNum, 3, 0),
			abc(Op21Call, 2, 2, 2),
			ad(Op21KStr, 3, 2),
			abc(Op21Call, 1, 1, 3),
			ad(Op21Ret0, 0, 1),
		},
		debug: []byte{
			0x00, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01,
			'f', 0, 0x01, 0x07,
			0,
		},
		firstLine: 0,
		numLines:  1,
	}
	return h, buildTestChunk(*h, child, main)
}

func TestDecodeChunk(t *testing.T) {
	for _, flags := range []HeaderFlags{0, HeaderBigEndian, HeaderFR2} {
		h, data := helloChunk(t, flags)
		for _, resolve := range []bool{false, true} {
			opts := &DecodeOptions{ResolveChildren: resolve}
			got, err := opts.Decode(bytes.NewReader(data))
			if err != nil {
				t.Errorf("flags=%v resolve=%t: %v", flags, resolve, err)
				continue
			}
			if diff := cmp.Diff(*h, got.Header); diff != "" {
				t.Errorf("flags=%v resolve=%t header (-want +got):\n%s", flags, resolve, diff)
			}
			if len(got.Prototypes) != 2 {
				t.Errorf("flags=%v resolve=%t: len(Prototypes) = %d; want 2", flags, resolve, len(got.Prototypes))
				continue
			}

			child := got.Prototypes[0]
			if child.NumParams != 1 || child.Flags != 0 {
				t.Errorf("flags=%v resolve=%t: child = %+v", flags, resolve, child)
			}
			if diff := cmp.Diff([]VariableInfo{{Name: "x", Visibility: Named, Start: 0, End: 1}}, child.DebugInfo.Variables); diff != "" {
				t.Errorf("flags=%v resolve=%t child variables (-want +got):\n%s", flags, resolve, diff)
			}

			main := got.Main()
			if main != got.Prototypes[1] {
				t.Errorf("flags=%v resolve=%t: Main() is not the last prototype", flags, resolve)
			}
			if want := PrototypeHasChild | PrototypeVariadic; main.Flags != want {
				t.Errorf("flags=%v resolve=%t: main.Flags = %v; want %v", flags, resolve, main.Flags, want)
			}
			wantChild := ChildConstant(-1)
			if resolve {
				wantChild = ChildConstant(0)
			}
			wantConstants := Constants{
				Complex: []ComplexConstant{
					StringConstant("hi"),
					StringConstant("print"),
					wantChild,
				},
				Numeric: []NumericConstant{FloatConstant(1.5)},
			}
			if diff := cmp.Diff(wantConstants, main.Constants, chunkDiffOptions); diff != "" {
				t.Errorf("flags=%v resolve=%t main constants (-want +got):\n%s", flags, resolve, diff)
			}

			// FNEW 0 refers to the last complex constant.
			if _, d, _ := main.Instructions[0].AD(); d != 2 {
				t.Errorf("flags=%v resolve=%t: FNEW D = %d; want 2", flags, resolve, d)
			}
			// GGET 1 "print"
			if _, d, _ := main.Instructions[1].AD(); d != 1 {
				t.Errorf("flags=%v resolve=%t: GGET D = %d; want 1", flags, resolve, d)
			}
			// KSTR 3 "hi"
			if _, d, _ := main.Instructions[5].AD(); d != 0 {
				t.Errorf("flags=%v resolve=%t: KSTR D = %d; want 0", flags, resolve, d)
			}

			first, count, ok := main.LineRange()
			if !ok || first != 0 || count != 1 {
				t.Errorf("flags=%v resolve=%t: main.LineRange() = %d, %d, %t; want 0, 1, true", flags, resolve, first, count, ok)
			}
			wantLines := []uint64{0, 1, 1, 1, 1, 1, 1, 1}
			if diff := cmp.Diff(wantLines, main.DebugInfo.LineTable); diff != "" {
				t.Errorf("flags=%v resolve=%t main line table (-want +got):\n%s", flags, resolve, diff)
			}
			if got := main.DebugInfo.LocalName(0, 3); got != "f" {
				t.Errorf("flags=%v resolve=%t: main.DebugInfo.LocalName(0, 3) = %q; want \"f\"", flags, resolve, got)
			}
		}
	}
}

func TestDecodeStrippedChunk(t *testing.T) {
	_, data := helloChunk(t, HeaderStripped)
	got, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.Header.ChunkName(); ok {
		t.Error("ChunkName() ok = true for stripped chunk")
	}
	for i, p := range got.Prototypes {
		if p.DebugSize != 0 || !p.DebugInfo.IsEmpty() {
			t.Errorf("Prototypes[%d] has debug info: %+v", i, p.DebugInfo)
		}
	}
}

func TestDecodeLineWidth(t *testing.T) {
	// With a first line of 0x100 and a line count of 1,
	// the two rules disagree on the width of line table entries.
	h := Header{Version: Version20}
	data := buildTestChunk(h, &testPrototype{
		code:      []uint32{ad(Op20Ret0, 0, 1)},
		debug:     []byte{0x01, 0},
		firstLine: 0x100,
		numLines:  1,
	})

	got, err := (&DecodeOptions{LineWidth: LineWidthFromLineCount}).Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint64{0x101}, got.Main().DebugInfo.LineTable); diff != "" {
		t.Errorf("line table (-want +got):\n%s", diff)
	}

	// Reading two bytes for the single delta consumes the variable list terminator.
	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Error("Decode with first-line rule did not return an error")
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := buildTestChunk(Header{Version: Version20, Flags: HeaderStripped}, &testPrototype{
		code: []uint32{ad(Op20Ret0, 0, 1)},
	})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "BadSignature",
			data: append([]byte("\x1bLK"), valid[3:]...),
			want: ErrMalformedHeader,
		},
		{
			name: "BadPrototypeFlags",
			data: buildTestChunk(Header{Version: Version20, Flags: HeaderStripped}, &testPrototype{flags: 0x20}),
			want: ErrInvalidPrototypeFlags,
		},
		{
			name: "BadOpcode",
			data: buildTestChunk(Header{Version: Version20, Flags: HeaderStripped}, &testPrototype{
				code: []uint32{0x5d},
			}),
			want: ErrInvalidOpcode,
		},
		{
			name: "TableConstant",
			data: buildTestChunk(Header{Version: Version21, Flags: HeaderStripped}, &testPrototype{
				complex: [][]byte{{kgcTable, 0, 0}},
			}),
			want: ErrUnsupportedConstant,
		},
		{
			name: "NoTerminator",
			data: valid[:len(valid)-1],
			want: io.ErrUnexpectedEOF,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(test.data))
			if !errors.Is(err, test.want) {
				t.Errorf("Decode(%q) error = %v; want %v", test.data, err, test.want)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("Decode(%q) error = %v (%T); want *DecodeError", test.data, err, err)
			}
		})
	}
}

func TestDecodeChildReferenceError(t *testing.T) {
	data := buildTestChunk(Header{Version: Version21, Flags: HeaderStripped}, &testPrototype{
		complex: [][]byte{{kgcChild}},
	})
	opts := &DecodeOptions{ResolveChildren: true}
	if _, err := opts.Decode(bytes.NewReader(data)); !errors.Is(err, ErrInvalidChildReference) {
		t.Errorf("Decode error = %v; want %v", err, ErrInvalidChildReference)
	}
	if _, err := Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("Decode without ResolveChildren: %v", err)
	}
}

func TestDecodeErrorOffset(t *testing.T) {
	h := Header{Version: Version20, Flags: HeaderStripped}
	good := &testPrototype{code: []uint32{ad(Op20Ret0, 0, 1)}}
	data := appendTestHeader(nil, h)
	data = good.appendTo(data, h)
	badStart := len(data)
	data = (&testPrototype{code: []uint32{ad(Op20Ret0, 0, 1), 0xff}}).appendTo(data, h)
	data = append(data, 0)

	_, err := Decode(bytes.NewReader(data))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Decode error = %v; want *DecodeError", err)
	}
	// size, flags, params, frame size, upvalues, 3 counts, 2 instructions
	if want := int64(badStart + 8 + 8); decodeErr.Offset != want {
		t.Errorf("Offset = %d; want %d", decodeErr.Offset, want)
	}
	const wantMessage = "decode luajit chunk: offset 33: prototype 1: instruction 1: invalid opcode 0xff for LuaJIT 2.0"
	if got := err.Error(); got != wantMessage {
		t.Errorf("Error() = %q; want %q", got, wantMessage)
	}
}

func TestDecodeTruncated(t *testing.T) {
	_, data := helloChunk(t, 0)
	for n := range len(data) {
		_, err := Decode(bytes.NewReader(data[:n]))
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("Decode(data[:%d]) error = %v; want %v", n, err, io.ErrUnexpectedEOF)
		}
	}
}

func TestDecodeOneByteReader(t *testing.T) {
	_, data := helloChunk(t, HeaderBigEndian)
	want, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(iotest.OneByteReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got, chunkDiffOptions); diff != "" {
		t.Errorf("(-bytes.Reader +iotest.OneByteReader):\n%s", diff)
	}
}

func TestUnmarshalBinary(t *testing.T) {
	_, data := helloChunk(t, 0)
	c := new(Chunk)
	if err := c.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if len(c.Prototypes) != 2 {
		t.Errorf("len(Prototypes) = %d; want 2", len(c.Prototypes))
	}

	err := new(Chunk).UnmarshalBinary(append(data, 0x42))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Offset != int64(len(data)) {
		t.Errorf("UnmarshalBinary with trailing byte error = %v; want *DecodeError at offset %d", err, len(data))
	}
}

func FuzzDecode(f *testing.F) {
	for _, flags := range []HeaderFlags{0, HeaderStripped, HeaderBigEndian} {
		_, data := helloChunk(f, flags)
		f.Add(data, false)
		f.Add(data, true)
	}
	f.Add(buildTestChunk(Header{Version: Version20, Flags: HeaderStripped}), false)

	f.Fuzz(func(t *testing.T, data []byte, resolve bool) {
		opts := &DecodeOptions{ResolveChildren: resolve}
		c, err := opts.Decode(bytes.NewReader(data))
		if err != nil {
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("error %v is %T; want *DecodeError", err, err)
			}
			if c != nil {
				t.Error("Decode returned a chunk along with an error")
			}
			return
		}
		for i, p := range c.Prototypes {
			if p == nil {
				t.Fatalf("Prototypes[%d] is nil", i)
			}
			if p.DebugSize != 0 && len(p.DebugInfo.LineTable) != len(p.Instructions) {
				t.Errorf("Prototypes[%d] has %d lines for %d instructions", i, len(p.DebugInfo.LineTable), len(p.Instructions))
			}
			for pc, inst := range p.Instructions {
				if inst.OpCode() == nil {
					t.Errorf("Prototypes[%d].Instructions[%d] has no opcode", i, pc)
				}
				_ = inst.String()
			}
		}
	})
}
