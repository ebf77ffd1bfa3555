// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// fakeSys is an in-memory OS layer that records every handle it hands out
// and every close, and fails on request.
type fakeSys struct {
	mu sync.Mutex

	next        Handle
	open        map[Handle]bool
	inheritable map[Handle]bool
	opened      int
	closed      int
	doubleClose []Handle

	pipeReads  []Handle
	pipeWrites []Handle
	data       map[Handle][]byte
	readErr    map[Handle]error

	// Output served on the stdout and stderr pipes.
	stdout, stderr []byte
	// Error returned by a read once the corresponding data is consumed.
	stdoutErr, stderrErr error

	failPipe      int // 1-based index of the pipe call that fails
	failConfigure bool
	failStart     error
	failWait      error
	exitCode      int

	started    bool
	startArgv  []string
	startCL    CommandLine
	startDir   string
	startStdio [3]Handle
	// Inheritance of each child/parent end observed at start.
	childInherit, parentInherit [3]bool
}

func newFakeSys() *fakeSys {
	return &fakeSys{
		next:        100,
		open:        make(map[Handle]bool),
		inheritable: make(map[Handle]bool),
		data:        make(map[Handle][]byte),
		readErr:     make(map[Handle]error),
	}
}

func (f *fakeSys) alloc() Handle {
	h := f.next
	f.next++
	f.open[h] = true
	f.opened++
	return h
}

func (f *fakeSys) pipe() (Handle, Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pipeReads)+1 == f.failPipe {
		return InvalidHandle, InvalidHandle, errors.New("too many open files")
	}
	r, w := f.alloc(), f.alloc()
	f.inheritable[r], f.inheritable[w] = true, true

	switch len(f.pipeReads) {
	case 1:
		f.data[r], f.readErr[r] = f.stdout, f.stdoutErr
	case 2:
		f.data[r], f.readErr[r] = f.stderr, f.stderrErr
	}
	f.pipeReads = append(f.pipeReads, r)
	f.pipeWrites = append(f.pipeWrites, w)
	return r, w, nil
}

func (f *fakeSys) setInheritable(h Handle, inherit bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failConfigure {
		return errors.New("the handle is invalid")
	}
	if !f.open[h] {
		return fmt.Errorf("handle %d not open", h)
	}
	f.inheritable[h] = inherit
	return nil
}

func (f *fakeSys) start(argv []string, cl CommandLine, dir string, stdio [3]Handle) (Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.startArgv, f.startCL, f.startDir, f.startStdio = argv, cl, dir, stdio
	for i := range 3 {
		f.childInherit[i] = f.inheritable[stdio[i]]
	}
	f.parentInherit = [3]bool{
		f.inheritable[f.pipeWrites[0]],
		f.inheritable[f.pipeReads[1]],
		f.inheritable[f.pipeReads[2]],
	}
	if f.failStart != nil {
		return Process{}, f.failStart
	}
	f.started = true
	return Process{Pid: 4242, Handle: f.alloc(), Thread: f.alloc()}, nil
}

func (f *fakeSys) read(h Handle, p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open[h] {
		return 0, fmt.Errorf("read on closed handle %d", h)
	}
	d := f.data[h]
	if len(d) == 0 {
		if err := f.readErr[h]; err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	n := copy(p, d)
	f.data[h] = d[n:]
	return n, nil
}

func (f *fakeSys) wait(Process) (int, error) {
	if f.failWait != nil {
		return -1, f.failWait
	}
	return f.exitCode, nil
}

func (f *fakeSys) closeHandle(h Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open[h] {
		f.doubleClose = append(f.doubleClose, h)
		return fmt.Errorf("handle %d closed twice", h)
	}
	delete(f.open, h)
	f.closed++
	return nil
}

// unread reports how many bytes of a pipe were never consumed.
func (f *fakeSys) unread(pipe int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data[f.pipeReads[pipe]])
}

// recordLogger keeps every line logged through it.
type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordLogger) Printf(format string, v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, v...))
}

func (r *recordLogger) Println(v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (r *recordLogger) SetOutput(io.Writer) {}

func (r *recordLogger) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}
