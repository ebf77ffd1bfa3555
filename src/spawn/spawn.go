// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/H0llyW00dzZ/spawn-sync/src/logger"
)

// Request describes one child to run.
type Request struct {
	// Dir is the child's working directory. Empty means the caller's.
	Dir string
	// Argv is the program followed by its arguments. Argv[0] must be set.
	Argv []string
	// CaptureStdout and CaptureStderr select which streams are returned.
	// Streams that are not captured are still read and thrown away.
	CaptureStdout bool
	CaptureStderr bool
	// DrainConcurrently reads stdout and stderr in parallel instead of
	// stdout first and stderr second.
	DrainConcurrently bool
}

// Result is what a spawn obtained. It is returned alongside any error, with
// whatever was collected before the failure.
type Result struct {
	// Started reports whether the process was created.
	Started bool
	// Stdout and Stderr hold the captured bytes. A requested stream with
	// no output is empty, not nil; an unrequested stream is nil.
	Stdout []byte
	Stderr []byte
	// ExitCode is the child's exit code, or -1 when unknown. A child
	// killed by a signal on Unix reports 128 plus the signal number.
	ExitCode int
	// CommandLine is the command line the child was launched with.
	CommandLine CommandLine
	// ReadErrors lists non-fatal read failures, one per affected stream.
	ReadErrors []error
}

// Spawner runs a child synchronously.
type Spawner interface {
	Spawn(req Request) (*Result, error)
}

// Backend selects a [Spawner] implementation.
type Backend int

const (
	// Native drives pipes and process creation directly.
	Native Backend = iota
	// Exec delegates to os/exec.
	Exec
)

// ErrUnknownBackend is returned by [ParseBackend] for unrecognized names.
var ErrUnknownBackend = errors.New("spawn: unknown backend")

func (b Backend) String() string {
	switch b {
	case Native:
		return "native"
	case Exec:
		return "exec"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend maps "native" or "exec" (any case) to a Backend. The empty
// string selects Native.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "native":
		return Native, nil
	case "exec":
		return Exec, nil
	default:
		return Native, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

type options struct {
	log   logger.Logger
	sys   sysCalls
	limit int
}

// Option configures [New].
type Option func(*options)

// WithLogger sends diagnostics to l. Without it they are discarded.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// withSys replaces the OS layer of the native backend.
func withSys(s sysCalls) Option {
	return func(o *options) { o.sys = s }
}

// withCaptureLimit caps each captured stream at n bytes.
func withCaptureLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// New returns a Spawner for backend. Unknown backends fall back to Native.
func New(backend Backend, opts ...Option) Spawner {
	o := options{log: logger.Discard}
	for _, opt := range opts {
		opt(&o)
	}

	if backend == Exec {
		return &execBackend{log: o.log, limit: o.limit}
	}
	if o.sys == nil {
		o.sys = nativeSys()
	}
	return &native{sys: o.sys, log: o.log, limit: o.limit}
}

// Sync runs argv in dir with the native backend and reports whether the
// process was created. stdout, stderr and exitStatus are optional; each one
// given is filled in when the value was obtained. Diagnostics go to standard
// error.
//
// Sync returns true even if the exit code could not be read afterwards, in
// which case *exitStatus is left untouched. Use [New] for the typed error.
func Sync(dir string, argv []string, stdout, stderr *[]byte, exitStatus *int) bool {
	s := New(Native, WithLogger(logger.NewCLILogger()))
	res, _ := s.Spawn(Request{
		Dir:           dir,
		Argv:          argv,
		CaptureStdout: stdout != nil,
		CaptureStderr: stderr != nil,
	})

	if stdout != nil && res.Stdout != nil {
		*stdout = res.Stdout
	}
	if stderr != nil && res.Stderr != nil {
		*stderr = res.Stderr
	}
	if exitStatus != nil && res.ExitCode != -1 {
		*exitStatus = res.ExitCode
	}
	return res.Started
}

func validate(req Request) error {
	if len(req.Argv) == 0 || req.Argv[0] == "" {
		return newError(InvalidArgument, "validate", errors.New("empty program"))
	}
	if len(req.Argv[0]) >= MaxCommandLine {
		return newError(InvalidArgument, "validate",
			fmt.Errorf("program name of %d bytes exceeds the %d byte command line", len(req.Argv[0]), MaxCommandLine))
	}
	return nil
}
