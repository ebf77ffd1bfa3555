// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

import (
	"errors"
	"fmt"
)

// Kind classifies a spawn failure.
type Kind int

const (
	// InvalidArgument: the request had no program.
	InvalidArgument Kind = iota + 1
	// PipeCreationFailure: one of the three stdio pipes could not be created.
	PipeCreationFailure
	// HandleConfigurationFailure: a parent-side pipe end could not be made non-inheritable.
	HandleConfigurationFailure
	// ProcessCreationFailure: the OS refused to start the program.
	ProcessCreationFailure
	// ReadFailure: a drain read failed before end-of-stream. Never fatal.
	ReadFailure
	// ExitCodeRetrievalFailure: the child was waited for but its status could not be read.
	ExitCodeRetrievalFailure
	// AllocationFailure: a capture or scratch buffer could not grow.
	AllocationFailure
)

var kindNames = map[Kind]string{
	InvalidArgument:            "invalid argument",
	PipeCreationFailure:        "pipe creation failure",
	HandleConfigurationFailure: "handle configuration failure",
	ProcessCreationFailure:     "process creation failure",
	ReadFailure:                "read failure",
	ExitCodeRetrievalFailure:   "exit code retrieval failure",
	AllocationFailure:          "allocation failure",
}

// String returns the human readable kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinel errors, one per [Kind], for use with [errors.Is].
var (
	ErrInvalidArgument     = errors.New("spawn: invalid argument")
	ErrPipeCreation        = errors.New("spawn: pipe creation failed")
	ErrHandleConfiguration = errors.New("spawn: handle configuration failed")
	ErrProcessCreation     = errors.New("spawn: process creation failed")
	ErrRead                = errors.New("spawn: read failed")
	ErrExitCodeRetrieval   = errors.New("spawn: exit code retrieval failed")
	ErrAllocation          = errors.New("spawn: allocation failed")
)

var kindSentinels = map[Kind]error{
	InvalidArgument:            ErrInvalidArgument,
	PipeCreationFailure:        ErrPipeCreation,
	HandleConfigurationFailure: ErrHandleConfiguration,
	ProcessCreationFailure:     ErrProcessCreation,
	ReadFailure:                ErrRead,
	ExitCodeRetrievalFailure:   ErrExitCodeRetrieval,
	AllocationFailure:          ErrAllocation,
}

// Error is the typed failure returned by a [Spawner].
//
// Op names the step that failed ("pipe", "configure", "start", "read stdout",
// "wait", ...) and Err carries the platform error, whose text is what the
// diagnostic log shows.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("spawn: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("spawn: %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying platform error.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Fatal reports whether the kind aborts the call. Only read failures are
// tolerated.
func (k Kind) Fatal() bool { return k != ReadFailure }

// KindOf returns the kind of err, or 0 when err is not a spawn error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
