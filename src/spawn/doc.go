// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package spawn runs a child process to completion and hands back its
// entire standard output, standard error and exit code.
//
// The call is synchronous: it creates three anonymous pipes, starts the
// program with its stdio bound to the child's ends, reads stdout and then
// stderr until each one closes, and waits for the process to exit. Every
// pipe end and process handle is closed before the call returns, on success
// and on every failure path.
//
// Basic usage:
//
//	s := spawn.New(spawn.Native, spawn.WithLogger(logger.NewCLILogger()))
//	res, err := s.Spawn(spawn.Request{
//		Argv:          []string{"cc", "-c", "main.c"},
//		CaptureStdout: true,
//		CaptureStderr: true,
//	})
//	if err != nil {
//		// res.Started tells whether the program ran at all.
//	}
//	fmt.Printf("exit %d\n%s", res.ExitCode, res.Stderr)
//
// On Windows the arguments are joined into one command line, see
// [BuildCommandLine]. Arguments that would push it past [MaxCommandLine] are
// dropped and [CommandLine.Truncated] is set.
//
// Draining stdout fully before stderr stalls when a child fills the stderr
// pipe while keeping stdout open. [Request.DrainConcurrently] avoids this.
//
// The [Exec] backend offers the same contract on top of os/exec.
package spawn
