// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import (
	"fmt"
	"io"
)

// DecodeOptions holds optional parameters for decoding a chunk.
// The zero value is the default configuration.
type DecodeOptions struct {
	// ResolveChildren enables resolving child prototype constants
	// to indices in [Chunk.Prototypes].
	// LuaJIT writes every child prototype before its parent,
	// and each child constant in a parent claims the most recently written
	// unclaimed prototype.
	// If false, child constants are left unresolved.
	ResolveChildren bool
	// LineWidth selects how the size of line table entries is determined.
	LineWidth LineWidthRule
}

// Decode decodes a LuaJIT bytecode chunk from r.
// It reads up to and including the prototype list terminator.
// Bytes after the terminator are not consumed
// unless r needs to be buffered (i.e. r does not implement [io.ByteReader]).
//
// Errors returned by Decode are of type [*DecodeError].
func (opts *DecodeOptions) Decode(r io.Reader) (*Chunk, error) {
	if opts == nil {
		opts = new(DecodeOptions)
	}
	return decodeChunk(newChunkReader(r), opts)
}

// Decode decodes a LuaJIT bytecode chunk from r
// using the default [DecodeOptions].
func Decode(r io.Reader) (*Chunk, error) {
	return new(DecodeOptions).Decode(r)
}

// LineWidthRule is an enumeration of methods
// for determining the size of line table entries.
// LineWidthRule implements [github.com/spf13/pflag.Value]
// and [encoding.TextUnmarshaler].
type LineWidthRule uint8

const (
	// LineWidthFromFirstLine sizes line table entries
	// by the prototype's first line number.
	LineWidthFromFirstLine LineWidthRule = iota
	// LineWidthFromLineCount sizes line table entries
	// by the prototype's number of lines.
	// This matches what LuaJIT's loader does.
	LineWidthFromLineCount
)

var lineWidthRuleNames = [...]string{
	LineWidthFromFirstLine: "first-line",
	LineWidthFromLineCount: "line-count",
}

// String returns the name of the rule as accepted by [*LineWidthRule.Set].
func (rule LineWidthRule) String() string {
	if int(rule) >= len(lineWidthRuleNames) {
		return fmt.Sprintf("LineWidthRule(%d)", uint8(rule))
	}
	return lineWidthRuleNames[rule]
}

// Set parses a rule name ("first-line" or "line-count").
func (rule *LineWidthRule) Set(s string) error {
	for i, name := range lineWidthRuleNames {
		if s == name {
			*rule = LineWidthRule(i)
			return nil
		}
	}
	return fmt.Errorf("unknown line width rule %q", s)
}

// Type returns the flag value type name shown in usage messages.
func (rule *LineWidthRule) Type() string {
	return "rule"
}

// MarshalText returns the name of the rule.
func (rule LineWidthRule) MarshalText() ([]byte, error) {
	if int(rule) >= len(lineWidthRuleNames) {
		return nil, fmt.Errorf("marshal line width rule: invalid value %d", uint8(rule))
	}
	return []byte(rule.String()), nil
}

// UnmarshalText parses a rule name like [*LineWidthRule.Set].
func (rule *LineWidthRule) UnmarshalText(text []byte) error {
	return rule.Set(string(text))
}

// width returns the size of a prototype's line table entries.
func (rule LineWidthRule) width(firstLine, numLines uint32) int {
	if rule == LineWidthFromLineCount {
		return lineWidth(numLines)
	}
	return lineWidth(firstLine)
}
