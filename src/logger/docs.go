// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for diagnostic logging.
// It defines the Logger interface and provides three implementations: CLILogger for
// human-readable lines on standard error, JSONLogger for one structured object per
// line (used by the tool server, whose stdout carries the protocol), and Discard.
// All implementations are safe for concurrent use; JSONLogger encodes through the
// shared buffer pool.
package logger
