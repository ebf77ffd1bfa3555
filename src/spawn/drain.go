// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

import (
	"errors"
	"io"
	"sync"

	"github.com/H0llyW00dzZ/spawn-sync/src/internal/helper/gc"
)

// discardSize is the scratch read size for streams nobody asked for.
const discardSize = 4096

// drained is what one drain produced.
type drained struct {
	data    []byte
	readErr error // non-fatal
	growErr error // fatal, but only after the pipe is empty
}

// drainPipe reads h until end-of-stream. With capture set the bytes land in
// a growable stream of at most limit bytes (0 for no limit); otherwise they
// are read into a local array and dropped. If the stream cannot grow, the
// rest of the pipe is still consumed so the child is never left blocked on a
// full pipe.
func drainPipe(sys sysCalls, h Handle, capture bool, limit int) drained {
	var out drained
	var s *gc.Stream
	if capture {
		s = gc.NewLimitedStream(gc.DefaultStreamSize, limit)
	}

	var scratch [discardSize]byte
	for {
		buf := scratch[:]
		if s != nil {
			buf = s.Free()
		}

		n, err := sys.read(h, buf)
		if n > 0 && s != nil {
			if gerr := s.Advance(n); gerr != nil {
				// Keep what fit, discard the rest.
				out.growErr = gerr
				out.data = s.Bytes()
				s = nil
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			out.readErr = err
			break
		}
	}

	if s != nil {
		out.data = s.Bytes()
	}
	return out
}

// drainBoth drains stdout and stderr. Sequentially, stdout is read to its end
// before stderr is touched, so a child that fills the stderr pipe while
// keeping stdout open will block until stdout closes.
func drainBoth(sys sysCalls, stdout, stderr Handle, req Request, limit int) (drained, drained) {
	if !req.DrainConcurrently {
		o := drainPipe(sys, stdout, req.CaptureStdout, limit)
		e := drainPipe(sys, stderr, req.CaptureStderr, limit)
		return o, e
	}

	var (
		wg sync.WaitGroup
		e  drained
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		e = drainPipe(sys, stderr, req.CaptureStderr, limit)
	}()
	o := drainPipe(sys, stdout, req.CaptureStdout, limit)
	wg.Wait()
	return o, e
}
