// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

// Package ljdis provides a Cobra command that disassembles LuaJIT bytecode.
// Its listing is modeled after luac -l.
package ljdis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/dsnet/compress/brotli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"zb.256lights.llc/ljbc/internal/ljcode"
	"zb.256lights.llc/ljbc/internal/xio"
	"zombiezen.com/go/log"
	"zombiezen.com/go/xcontext"
)

type options struct {
	files      []string
	configPath string
	list       int
	json       bool

	debug           bool
	resolveChildren bool
	lineWidth       ljcode.LineWidthRule
	jobs            int
}

// New returns a new ljdis command.
func New() *cobra.Command {
	c := &cobra.Command{
		Use:                   "ljdis [options] FILE [...]",
		Short:                 "disassemble LuaJIT bytecode",
		Args:                  cobra.MinimumNArgs(1),
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(options)
	c.Flags().CountVarP(&opts.list, "list", "l", "produce a listing (give twice for constants and locals)")
	c.Flags().BoolVar(&opts.json, "json", false, "print a JSON document for each file")
	c.Flags().BoolVar(&opts.resolveChildren, "resolve-children", false, "resolve function constants to prototypes")
	c.Flags().Var(&opts.lineWidth, "line-width", "line table entry size `rule` (first-line or line-count)")
	c.Flags().IntVarP(&opts.jobs, "jobs", "j", defaultJobs, "decode up to `n` files concurrently")
	c.Flags().StringVar(&opts.configPath, "config", defaultConfigPath(), "`path` to configuration file")
	c.Flags().BoolVar(&opts.debug, "debug", false, "show debugging output")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		opts.files = args
		cfg, err := loadConfig(cmd.Flags(), opts)
		if err != nil {
			return err
		}
		initLogging(cfg.Debug)
		return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, opts)
	}
	return c
}

// loadConfig reads the configuration file
// and then applies any flags set on the command line.
func loadConfig(flags *pflag.FlagSet, opts *options) (*config, error) {
	cfg := defaultConfig()
	if opts.configPath != "" {
		if err := cfg.mergeFiles(slices.Values([]string{opts.configPath})); err != nil {
			return nil, err
		}
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("resolve-children") {
		cfg.ResolveChildren = opts.resolveChildren
	}
	if flags.Changed("line-width") {
		cfg.LineWidth = opts.lineWidth
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "ljdis: ", log.StdFlags, nil),
		})
	})
}

// errFailed is returned from run when at least one file could not be decoded.
// The individual errors have already been reported.
var errFailed = errors.New("one or more files could not be decoded")

// fileResult is the rendered output for a single input.
type fileResult struct {
	output []byte
	err    error
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, cfg *config, opts *options) error {
	// Stdin can only be read once.
	if n := countStdin(opts.files); n > 1 {
		return fmt.Errorf("stdin (-) given %d times", n)
	}
	lopts := &listingOptions{
		full:  opts.list > 1,
		width: terminalWidth(stdout),
	}
	decodeOpts := cfg.decodeOptions()

	results := make([]fileResult, len(opts.files))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(cfg.Jobs)
	for i, name := range opts.files {
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}
			c, err := decodeFile(grpCtx, stdin, name, decodeOpts)
			if err != nil {
				results[i].err = err
				return nil
			}
			log.Debugf(grpCtx, "%s: LuaJIT %v chunk with %d prototypes", name, c.Header.Version, len(c.Prototypes))
			results[i].output, results[i].err = render(name, c, opts, lopts)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	failed := false
	for i, r := range results {
		if r.err != nil {
			failed = true
			fmt.Fprintf(stderr, "ljdis: %s: %v\n", opts.files[i], r.err)
			continue
		}
		if _, err := stdout.Write(r.output); err != nil {
			return err
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

func countStdin(files []string) int {
	n := 0
	for _, name := range files {
		if name == "-" {
			n++
		}
	}
	return n
}

func render(name string, c *ljcode.Chunk, opts *options, lopts *listingOptions) ([]byte, error) {
	if opts.json {
		return marshalChunk(name, c)
	}
	if opts.list == 0 {
		return nil, nil
	}
	buf := new(bytes.Buffer)
	if err := printChunk(buf, name, c, lopts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeFile decodes the chunk in the named file.
// The name "-" refers to stdin.
// Files ending in ".br" are decompressed with brotli first.
func decodeFile(ctx context.Context, stdin io.Reader, name string, opts *ljcode.DecodeOptions) (*ljcode.Chunk, error) {
	rc, err := openInput(ctx, stdin, name)
	if err != nil {
		return nil, err
	}
	closer := xio.CloseOnce(rc)
	defer closer.Close()

	c, err := opts.Decode(rc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return c, nil
}

func openInput(ctx context.Context, stdin io.Reader, name string) (io.ReadCloser, error) {
	var r io.Reader
	var closers []io.Closer
	if name == "-" {
		r = stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		// Closing the file on cancellation unblocks a pending read.
		r = f
		closers = append(closers, xcontext.CloseWhenDone(ctx, f))
	}

	if strings.HasSuffix(name, ".br") {
		br, err := brotli.NewReader(r, nil)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, err
		}
		closers = append([]io.Closer{br}, closers...)
		r = br
	}
	return xio.ReadCloser(r, closers...), nil
}

// terminalWidth returns the width of w if it is a terminal
// or zero otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
