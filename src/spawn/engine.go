// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

import (
	"github.com/H0llyW00dzZ/spawn-sync/src/logger"
)

// native is the [Spawner] built directly on pipes and process creation.
type native struct {
	sys   sysCalls
	log   logger.Logger
	limit int
}

// Spawn runs one child to completion.
//
// Every handle acquired along the way lives in a handle table whose teardown
// is deferred first, so each return below leaves nothing open.
func (n *native) Spawn(req Request) (*Result, error) {
	res := &Result{ExitCode: -1}
	if err := validate(req); err != nil {
		return res, err
	}

	res.CommandLine = BuildCommandLine(req.Argv)
	if res.CommandLine.Truncated {
		n.log.Printf("spawn: command line truncated to %d of %d arguments (limit %d)",
			res.CommandLine.Args, len(req.Argv), MaxCommandLine)
	}

	t := newHandleTable(n.sys, n.log.Printf)
	defer t.teardown()

	if err := t.openPipes(); err != nil {
		return res, n.fail(err)
	}
	if err := t.configure(); err != nil {
		return res, n.fail(err)
	}

	p, err := n.sys.start(req.Argv, res.CommandLine, req.Dir, t.childStdio())
	if err != nil {
		return res, n.fail(newError(ProcessCreationFailure, "start "+req.Argv[0], err))
	}
	res.Started = true
	t.adopt(p)

	// The child holds its own copies now. Dropping the stdin write end as
	// well gives a child that reads stdin an immediate end-of-file.
	t.releaseChildEnds()
	t.release(slotStdinW)

	stdout, stderr := drainBoth(n.sys, t.get(slotStdoutR), t.get(slotStderrR), req, n.limit)
	t.release(slotStdoutR)
	t.release(slotStderrR)

	allocErr := collect(n.log, res, req, stdout, stderr)

	code, err := n.sys.wait(p)
	if err != nil {
		return res, n.fail(newError(ExitCodeRetrievalFailure, "wait", err))
	}
	res.ExitCode = code

	if allocErr != nil {
		return res, n.fail(allocErr)
	}
	return res, nil
}

// collect moves drained output into res, records read failures and returns
// the first growth failure.
func collect(log logger.Logger, res *Result, req Request, stdout, stderr drained) error {
	var allocErr error
	streams := [2]struct {
		name    string
		capture bool
		d       drained
		dst     *[]byte
	}{
		{"stdout", req.CaptureStdout, stdout, &res.Stdout},
		{"stderr", req.CaptureStderr, stderr, &res.Stderr},
	}

	for _, s := range streams {
		if s.capture {
			*s.dst = s.d.data
		}
		if s.d.readErr != nil {
			rerr := newError(ReadFailure, "read "+s.name, s.d.readErr)
			res.ReadErrors = append(res.ReadErrors, rerr)
			log.Printf("%v (possible read failure, output may be partial)", rerr)
		}
		if s.d.growErr != nil && allocErr == nil {
			allocErr = newError(AllocationFailure, "capture "+s.name, s.d.growErr)
		}
	}
	return allocErr
}

func (n *native) fail(err error) error {
	n.log.Printf("%v", err)
	return err
}
