// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"errors"
	"fmt"
	"io"
	"runtime"
)

// DefaultStreamSize is the initial capacity of a [Stream] created with a
// non-positive size.
const DefaultStreamSize = 1024

// ErrGrow is returned when a [Stream] cannot allocate a larger backing array.
var ErrGrow = errors.New("gc: stream buffer growth failed")

// Stream is a growable byte buffer with a logical length and an allocated
// capacity. Callers read directly into [Stream.Free] and then commit the bytes
// with [Stream.Advance]; the capacity doubles once the length reaches three
// quarters of it, so Free never returns an empty slice.
//
// A Stream is not safe for concurrent use. Unlike pooled buffers, its bytes
// belong to whoever holds the Stream and may outlive the call that filled it.
type Stream struct {
	b     []byte
	limit int
}

// NewStream returns an empty stream with the given initial capacity.
func NewStream(size int) *Stream {
	return NewLimitedStream(size, 0)
}

// NewLimitedStream returns a stream whose capacity never exceeds limit
// bytes; growing past it fails with [ErrGrow]. A non-positive limit means
// no limit.
func NewLimitedStream(size, limit int) *Stream {
	if size <= 0 {
		size = DefaultStreamSize
	}
	if limit > 0 && size > limit {
		size = limit
	}
	return &Stream{b: make([]byte, 0, size), limit: limit}
}

// Free returns the unused tail of the backing array. A zero Stream
// allocates [DefaultStreamSize] bytes on first use.
func (s *Stream) Free() []byte {
	if cap(s.b) == 0 {
		_ = s.grow(DefaultStreamSize)
	}
	return s.b[len(s.b):cap(s.b)]
}

// Advance commits n bytes previously written into Free and grows the
// backing array when the high-water mark is crossed.
func (s *Stream) Advance(n int) error {
	if n < 0 || len(s.b)+n > cap(s.b) {
		return fmt.Errorf("gc: advance %d out of range (len %d, cap %d)", n, len(s.b), cap(s.b))
	}
	s.b = s.b[:len(s.b)+n]
	if len(s.b) >= 3*cap(s.b)/4 {
		return s.grow(2 * cap(s.b))
	}
	return nil
}

// grow reallocates to size, turning an allocation panic into ErrGrow.
func (s *Stream) grow(size int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			err = fmt.Errorf("%w: %v", ErrGrow, r)
		}
	}()
	if size <= 0 {
		return fmt.Errorf("%w: capacity overflow", ErrGrow)
	}
	if s.limit > 0 && size > s.limit {
		return fmt.Errorf("%w: capacity %d over limit %d", ErrGrow, size, s.limit)
	}
	nb := make([]byte, len(s.b), size)
	copy(nb, s.b)
	s.b = nb
	return nil
}

// ReadFrom reads r until EOF into the stream.
func (s *Stream) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		n, err := r.Read(s.Free())
		total += int64(n)
		if aerr := s.Advance(n); aerr != nil {
			return total, aerr
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Bytes returns the committed bytes. The slice aliases the stream.
func (s *Stream) Bytes() []byte { return s.b }

// Len returns the number of committed bytes.
func (s *Stream) Len() int { return len(s.b) }

// Cap returns the allocated capacity.
func (s *Stream) Cap() int { return cap(s.b) }

// Reset drops the committed bytes but keeps the allocation.
func (s *Stream) Reset() { s.b = s.b[:0] }
