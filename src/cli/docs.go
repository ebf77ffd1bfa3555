// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for spawnsync.
// It implements a Cobra-based CLI that runs one program to completion,
// prints what it wrote to stdout and stderr (raw, as a JSON document, or as
// a markdown summary table) and exits with the program's exit code.
// The quote subcommand prints the command line a program would be launched
// with on Windows. Settings come from flags layered over the config package.
package cli
