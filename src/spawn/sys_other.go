// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

//go:build !unix && !windows

package spawn

import (
	"errors"
	"io"
	"os"
)

// unsupportedSys fails at pipe creation, so the native backend reports a
// PipeCreationFailure on platforms without pipes and fork.
type unsupportedSys struct{}

func nativeSys() sysCalls { return unsupportedSys{} }

func (unsupportedSys) pipe() (Handle, Handle, error) {
	return InvalidHandle, InvalidHandle, errors.ErrUnsupported
}

func (unsupportedSys) setInheritable(Handle, bool) error { return errors.ErrUnsupported }

func (unsupportedSys) start([]string, CommandLine, string, [3]Handle) (Process, error) {
	return Process{}, errors.ErrUnsupported
}

func (unsupportedSys) read(Handle, []byte) (int, error) { return 0, io.EOF }

func (unsupportedSys) wait(Process) (int, error) { return -1, errors.ErrUnsupported }

func (unsupportedSys) closeHandle(Handle) error { return nil }

func exitCodeOf(ps *os.ProcessState) int {
	if ps == nil {
		return -1
	}
	return ps.ExitCode()
}
