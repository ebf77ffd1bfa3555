// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

import (
	"errors"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsSys implements sysCalls with kernel handles. Pipes are created
// inheritable; the parent's ends are then marked non-inheritable and the
// child is started with handle inheritance on.
type windowsSys struct{}

func nativeSys() sysCalls { return windowsSys{} }

func (windowsSys) pipe() (Handle, Handle, error) {
	sa := &windows.SecurityAttributes{InheritHandle: 1}
	sa.Length = uint32(unsafe.Sizeof(*sa))

	var r, w windows.Handle
	if err := windows.CreatePipe(&r, &w, sa, 0); err != nil {
		return InvalidHandle, InvalidHandle, err
	}
	return Handle(r), Handle(w), nil
}

func (windowsSys) setInheritable(h Handle, inherit bool) error {
	var flags uint32
	if inherit {
		flags = windows.HANDLE_FLAG_INHERIT
	}
	return windows.SetHandleInformation(windows.Handle(h), windows.HANDLE_FLAG_INHERIT, flags)
}

func (windowsSys) start(_ []string, cl CommandLine, dir string, stdio [3]Handle) (Process, error) {
	line, err := windows.UTF16PtrFromString(cl.Line)
	if err != nil {
		return Process{}, err
	}
	var cwd *uint16
	if dir != "" {
		if cwd, err = windows.UTF16PtrFromString(dir); err != nil {
			return Process{}, err
		}
	}

	si := &windows.StartupInfo{
		Flags:     windows.STARTF_USESTDHANDLES,
		StdInput:  windows.Handle(stdio[0]),
		StdOutput: windows.Handle(stdio[1]),
		StdErr:    windows.Handle(stdio[2]),
	}
	si.Cb = uint32(unsafe.Sizeof(*si))

	var pi windows.ProcessInformation
	// nil environment inherits the parent's.
	err = windows.CreateProcess(nil, line, nil, nil, true, windows.CREATE_NO_WINDOW, nil, cwd, si, &pi)
	if err != nil {
		return Process{}, err
	}
	return Process{
		Pid:    int(pi.ProcessId),
		Handle: Handle(pi.Process),
		Thread: Handle(pi.Thread),
	}, nil
}

func (windowsSys) read(h Handle, p []byte) (int, error) {
	var n uint32
	err := windows.ReadFile(windows.Handle(h), p, &n, nil)
	if errors.Is(err, windows.ERROR_BROKEN_PIPE) {
		return 0, io.EOF
	}
	if err != nil {
		return 0, err
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return int(n), nil
}

func (windowsSys) wait(p Process) (int, error) {
	h := windows.Handle(p.Handle)
	if _, err := windows.WaitForSingleObject(h, windows.INFINITE); err != nil {
		return -1, err
	}
	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return -1, err
	}
	return int(code), nil
}

func (windowsSys) closeHandle(h Handle) error {
	return windows.CloseHandle(windows.Handle(h))
}

func exitCodeOf(ps *os.ProcessState) int {
	if ps == nil {
		return -1
	}
	return ps.ExitCode()
}
