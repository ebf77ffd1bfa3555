// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

//go:build unix

package spawn

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/H0llyW00dzZ/spawn-sync/src/internal/helper/posix"
	"golang.org/x/sys/unix"
)

// unixSys implements sysCalls with file descriptors. Pipes are created
// close-on-exec; the child receives its ends through the Files list of
// ForkExec, which dups them onto descriptors 0, 1 and 2.
type unixSys struct{}

func nativeSys() sysCalls { return unixSys{} }

func (unixSys) pipe() (Handle, Handle, error) {
	var p [2]int
	if err := pipeCloexec(&p); err != nil {
		return InvalidHandle, InvalidHandle, err
	}
	return Handle(p[0]), Handle(p[1]), nil
}

func (unixSys) setInheritable(h Handle, inherit bool) error {
	flags, err := unix.FcntlInt(uintptr(h), unix.F_GETFD, 0)
	if err != nil {
		return err
	}
	if inherit {
		flags &^= unix.FD_CLOEXEC
	} else {
		flags |= unix.FD_CLOEXEC
	}
	_, err = unix.FcntlInt(uintptr(h), unix.F_SETFD, flags)
	return err
}

func (unixSys) start(argv []string, cl CommandLine, dir string, stdio [3]Handle) (Process, error) {
	if cl.Args < 1 || cl.Args > len(argv) {
		return Process{}, fmt.Errorf("command line holds %d of %d arguments", cl.Args, len(argv))
	}
	path, err := posix.ResolveExecutable(argv[0])
	if err != nil {
		return Process{}, err
	}
	attr := &syscall.ProcAttr{
		Dir:   dir,
		Env:   os.Environ(),
		Files: []uintptr{uintptr(stdio[0]), uintptr(stdio[1]), uintptr(stdio[2])},
	}
	pid, err := syscall.ForkExec(path, argv[:cl.Args], attr)
	if err != nil {
		return Process{}, err
	}
	return Process{Pid: pid, Handle: InvalidHandle, Thread: InvalidHandle}, nil
}

func (unixSys) read(h Handle, p []byte) (int, error) {
	for {
		n, err := unix.Read(int(h), p)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 && len(p) > 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

func (unixSys) wait(p Process) (int, error) {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(p.Pid, &ws, 0, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return -1, err
		}
		break
	}
	switch {
	case ws.Exited():
		return ws.ExitStatus(), nil
	case ws.Signaled():
		// Shell convention.
		return 128 + int(ws.Signal()), nil
	default:
		return -1, fmt.Errorf("unexpected wait status %#x", uint32(ws))
	}
}

func (unixSys) closeHandle(h Handle) error { return unix.Close(int(h)) }

// exitCodeOf reports a signal death the same way wait does.
func exitCodeOf(ps *os.ProcessState) int {
	if ps == nil {
		return -1
	}
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ps.ExitCode()
}
