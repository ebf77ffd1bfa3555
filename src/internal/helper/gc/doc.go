// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides reusable byte buffer pooling and growable capture
// buffers to reduce garbage collection overhead.
//
// The pool abstracts the [bytebufferpool] library so the spawn engine can take
// a private scratch buffer per call (command-line construction, diagnostic
// formatting) instead of sharing static storage between goroutines.
//
// [Stream] is the buffer that child process output is drained into. It starts
// small and doubles its capacity once three quarters of it are in use.
//
// [bytebufferpool]: https://github.com/valyala/bytebufferpool
package gc
