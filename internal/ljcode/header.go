// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

//go:generate go tool stringer -type=Version -linecomment -output=version_string.go

package ljcode

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Signature is the magic header for a LuaJIT bytecode chunk.
const Signature = "\x1bLJ"

// Version is a LuaJIT bytecode dump format version.
type Version uint8

// Known versions.
const (
	Version20 Version = 1 // 2.0
	Version21 Version = 2 // 2.1
)

// IsValid reports whether v is one of the known versions.
func (v Version) IsValid() bool {
	return v == Version20 || v == Version21
}

// HeaderFlags is a set of chunk-wide flags.
type HeaderFlags uint32

// Header flags.
// Equivalent to the BCDUMP_F_* constants in LuaJIT.
const (
	// HeaderBigEndian indicates that fixed-width values are big-endian.
	HeaderBigEndian HeaderFlags = 1 << 0
	// HeaderStripped indicates that the chunk has no name or debug information.
	HeaderStripped HeaderFlags = 1 << 1
	// HeaderFFI indicates that the chunk uses FFI constants.
	HeaderFFI HeaderFlags = 1 << 2
	// HeaderFR2 indicates that the chunk was produced for two-slot frames (LJ_FR2).
	HeaderFR2 HeaderFlags = 1 << 3
	// HeaderDeterministic indicates a chunk dumped in deterministic mode.
	HeaderDeterministic HeaderFlags = 1 << 31

	knownHeaderFlags = HeaderBigEndian | HeaderStripped | HeaderFFI | HeaderFR2 | HeaderDeterministic
)

var headerFlagNames = []struct {
	flag HeaderFlags
	name string
}{
	{HeaderBigEndian, "BE"},
	{HeaderStripped, "STRIP"},
	{HeaderFFI, "FFI"},
	{HeaderFR2, "FR2"},
	{HeaderDeterministic, "DETERMINISTIC"},
}

// ParseHeaderFlags validates a raw header flag value.
// It returns an error wrapping [ErrInvalidHeaderFlags]
// if raw has any bits set that are not known header flags.
func ParseHeaderFlags(raw uint32) (HeaderFlags, error) {
	f := HeaderFlags(raw)
	if unknown := f &^ knownHeaderFlags; unknown != 0 {
		return 0, fmt.Errorf("%w %#x", ErrInvalidHeaderFlags, uint32(unknown))
	}
	return f, nil
}

// Has reports whether all the bits in flag are set in f.
func (f HeaderFlags) Has(flag HeaderFlags) bool {
	return f&flag == flag
}

// String returns the set flags separated by "|", or "0" if none are set.
func (f HeaderFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for _, n := range headerFlagNames {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
			f &^= n.flag
		}
	}
	if f != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(f)))
	}
	return strings.Join(parts, "|")
}

// Header is the chunk header.
type Header struct {
	Version Version
	Flags   HeaderFlags
	// Name is the chunk name (typically the source file name).
	// It is always empty if Flags has [HeaderStripped] set.
	Name string
}

// ChunkName returns the chunk name.
// ok is false if the chunk is stripped and thus has no name.
func (h Header) ChunkName() (_ string, ok bool) {
	if h.Flags.Has(HeaderStripped) {
		return "", false
	}
	return h.Name, true
}

// ByteOrder returns the byte order of fixed-width values in the chunk.
func (h Header) ByteOrder() binary.ByteOrder {
	if h.Flags.Has(HeaderBigEndian) {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func readHeader(r *chunkReader) (Header, error) {
	var magic [len(Signature)]byte
	for i := range magic {
		var err error
		magic[i], err = r.readByte()
		if err != nil {
			return Header{}, fmt.Errorf("header: signature: %w", err)
		}
	}
	if string(magic[:]) != Signature {
		return Header{}, fmt.Errorf("header: signature %q: %w", magic[:], ErrMalformedHeader)
	}

	rawVersion, err := r.readByte()
	if err != nil {
		return Header{}, fmt.Errorf("header: version: %w", err)
	}
	h := Header{Version: Version(rawVersion)}
	if !h.Version.IsValid() {
		return Header{}, fmt.Errorf("header: %w %d", ErrInvalidVersion, rawVersion)
	}

	rawFlags, err := r.readULEB128()
	if err != nil {
		return Header{}, fmt.Errorf("header: flags: %w", err)
	}
	h.Flags, err = ParseHeaderFlags(rawFlags)
	if err != nil {
		return Header{}, fmt.Errorf("header: %w", err)
	}

	if !h.Flags.Has(HeaderStripped) {
		n, err := r.readULEB128()
		if err != nil {
			return Header{}, fmt.Errorf("header: chunk name: %w", err)
		}
		h.Name, err = r.readString(n)
		if err != nil {
			return Header{}, fmt.Errorf("header: chunk name: %w", err)
		}
	}
	return h, nil
}
