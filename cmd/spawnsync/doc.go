// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// spawnsync runs a program to completion and prints what it wrote to
// standard output and standard error, then exits with the program's exit
// code.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/spawn-sync/cmd/spawnsync@latest
//
// # Usage
//
//	spawnsync [FLAGS] [--] PROGRAM [ARGS...]
//	spawnsync quote [--] PROGRAM [ARGS...]
//
// Flags must come before PROGRAM; everything after it is passed to PROGRAM
// unchanged.
//
// # Flags
//
//	-C, --dir               Working directory for PROGRAM
//	-c, --config            Configuration file (.json, .yaml, .yml)
//	    --backend           Spawn backend: native or exec
//	    --concurrent-drain  Read stdout and stderr in parallel
//	    --no-stdout         Do not capture standard output
//	    --no-stderr         Do not capture standard error
//	-e, --encoding          Character set PROGRAM writes (e.g. windows-1252)
//	-j, --json              Print a JSON report instead of raw output
//	    --table             Print a markdown summary table
//	    --log-json          Write diagnostics as JSON lines
//
// # Exit status
//
// spawnsync exits with PROGRAM's exit code. A program killed by signal N
// yields 128+N. If PROGRAM could not be started the status is 127, and 130
// if spawnsync itself is interrupted.
//
// # Examples
//
// Run a build and keep its output:
//
//	spawnsync -- go build ./...
//
// Inspect the command line a Windows child would receive:
//
//	spawnsync quote cc -o "hello world" main.c
//
// Produce a JSON report of a program written for a legacy code page:
//
//	spawnsync --json -e windows-1252 legacy.exe
package main
