// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/spawn-sync/src/cli"
	"github.com/H0llyW00dzZ/spawn-sync/src/logger"
	verpkg "github.com/H0llyW00dzZ/spawn-sync/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	log := logger.NewCLILogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	select {
	case err := <-done:
		os.Exit(exitCode(err, log))
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		// The child keeps running until it exits on its own; give the
		// CLI a moment to notice and then leave without it.
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		os.Exit(130) // Standard exit code for SIGINT
	}
}

// exitCode maps the result of the CLI to the process exit status.
func exitCode(err error, log logger.Logger) int {
	if err == nil {
		return 0
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			log.Printf("spawnsync: %v", exitErr.Err)
		}
		return exitErr.Code
	}

	log.Printf("spawnsync: %v", err)
	return 1
}
