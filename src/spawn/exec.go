// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

import (
	"errors"
	"io"
	"os/exec"
	"sync"

	"github.com/H0llyW00dzZ/spawn-sync/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/spawn-sync/src/logger"
)

// execBackend forwards to [os/exec]: bare names are searched on PATH, the
// environment is inherited and stdin reads from the null device. Output and
// errors come back in the same shape as the native backend.
type execBackend struct {
	log   logger.Logger
	limit int
}

func (e *execBackend) Spawn(req Request) (*Result, error) {
	res := &Result{ExitCode: -1}
	if err := validate(req); err != nil {
		return res, err
	}
	// Informational only; os/exec builds its own line from the full argv.
	res.CommandLine = BuildCommandLine(req.Argv)

	cmd := exec.Command(req.Argv[0], req.Argv[1:]...)
	cmd.Dir = req.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return res, e.fail(newError(PipeCreationFailure, "pipe stdout", err))
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return res, e.fail(newError(PipeCreationFailure, "pipe stderr", err))
	}

	if err := cmd.Start(); err != nil {
		return res, e.fail(newError(ProcessCreationFailure, "start "+req.Argv[0], err))
	}
	res.Started = true

	var o, s drained
	if req.DrainConcurrently {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			s = drainReader(stderr, req.CaptureStderr, e.limit)
		}()
		o = drainReader(stdout, req.CaptureStdout, e.limit)
		wg.Wait()
	} else {
		o = drainReader(stdout, req.CaptureStdout, e.limit)
		s = drainReader(stderr, req.CaptureStderr, e.limit)
	}

	allocErr := collect(e.log, res, req, o, s)

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return res, e.fail(newError(ExitCodeRetrievalFailure, "wait", err))
		}
	}
	res.ExitCode = exitCodeOf(cmd.ProcessState)

	if allocErr != nil {
		return res, e.fail(allocErr)
	}
	return res, nil
}

// drainReader is drainPipe for an [io.Reader].
func drainReader(r io.Reader, capture bool, limit int) drained {
	var out drained
	if !capture {
		if _, err := io.Copy(io.Discard, r); err != nil {
			out.readErr = err
		}
		return out
	}

	s := gc.NewLimitedStream(gc.DefaultStreamSize, limit)
	_, err := s.ReadFrom(r)
	out.data = s.Bytes()
	switch {
	case errors.Is(err, gc.ErrGrow):
		out.growErr = err
		if _, err := io.Copy(io.Discard, r); err != nil {
			out.readErr = err
		}
	case err != nil:
		out.readErr = err
	}
	return out
}

func (e *execBackend) fail(err error) error {
	e.log.Printf("%v", err)
	return err
}
