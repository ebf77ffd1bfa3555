// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// mcp-server serves synchronous process spawning over the Model Context
// Protocol on standard input and output.
//
// Usage:
//
//	mcp-server [--config FILE] [--instructions]
//
// Only programs listed in server.allowedPrograms of the configuration file
// can be started. The file is taken from --config, then from the
// SPAWNSYNC_CONFIG_FILE environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/spawn-sync/src/mcp-server"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = mcpserver.GetVersion()
	}
}

func main() {
	if err := mcpserver.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
