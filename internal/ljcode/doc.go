// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

/*
Package ljcode decodes precompiled LuaJIT bytecode chunks
(the output of `luajit -b`) for dump format versions 2.0 and 2.1.
See [Decode] for the entry point.

A chunk is a header followed by a sequence of function prototypes.
LuaJIT writes child prototypes before their parents,
so the last prototype in [Chunk.Prototypes] is the main function.
Decoded values are read-only:
the decoder builds every [Prototype] in a single forward pass over the input
and never exposes a partially decoded one.

# Provenance

The binary layout follows LuaJIT's dump format, specifically:

  - lj_bcdump.h (header flags, constant tags, variable name tags)
  - lj_bc.h (opcode numbering and operand modes)
  - lj_bcread.c (reader semantics)

Encoding chunks is not supported.
Inline table constants and 64-bit integer and complex number constants
are reported as [ErrUnsupportedConstant] rather than decoded.
*/
package ljcode
