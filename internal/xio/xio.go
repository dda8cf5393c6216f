// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package xio provides I/O utilities.
package xio

import (
	"errors"
	"io"
)

type onceCloser struct {
	c      io.Closer
	err    error
	closed bool
}

// CloseOnce returns an [io.Closer] that calls c at most once.
func CloseOnce(c io.Closer) io.Closer {
	return &onceCloser{c: c}
}

func (oc *onceCloser) Close() error {
	if !oc.closed {
		oc.err = oc.c.Close()
		oc.closed = true
	}
	return oc.err
}

type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

// ReadCloser returns an [io.ReadCloser] that reads from r.
// Its Close method calls each of the closers in order
// and returns the errors joined together.
// It is typically used for a decompressing reader
// layered on top of a file:
// the decompressor is closed first, then the file.
func ReadCloser(r io.Reader, closers ...io.Closer) io.ReadCloser {
	return &stackedReadCloser{Reader: r, closers: closers}
}

func (rc *stackedReadCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
