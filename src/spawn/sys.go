// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

// Handle is an OS file descriptor or Windows HANDLE.
type Handle uintptr

// InvalidHandle marks a slot that holds nothing (never opened, or already
// closed).
const InvalidHandle = ^Handle(0)

// Process identifies a started child. Handle and Thread are Windows process
// and primary-thread handles; on Unix both are InvalidHandle and the child is
// addressed by Pid.
type Process struct {
	Pid    int
	Handle Handle
	Thread Handle
}

// sysCalls is the set of OS primitives the native engine is built on.
// Each platform provides one; tests substitute a recording fake.
type sysCalls interface {
	// pipe creates an anonymous pipe whose ends are both inheritable by a
	// child started with inheritance enabled.
	pipe() (r, w Handle, err error)
	// setInheritable flips the inheritance flag of h.
	setInheritable(h Handle, inherit bool) error
	// start launches the program. argv is the list of arguments that fit
	// in cl; stdio holds the child's stdin, stdout and stderr ends.
	start(argv []string, cl CommandLine, dir string, stdio [3]Handle) (Process, error)
	// read fills p from h and returns io.EOF once the writer side is gone.
	read(h Handle, p []byte) (int, error)
	// wait blocks until p exits and returns its exit code.
	wait(p Process) (int, error)
	// closeHandle releases h.
	closeHandle(h Handle) error
}
