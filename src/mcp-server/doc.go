// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes synchronous process spawning as a Model Context
// Protocol ([MCP]) server.
//
// The server offers three tools:
//   - spawn_sync runs an allowed program to completion and returns a JSON
//     report with its output, exit code and command line
//   - quote_command_line shows the command line a program would get
//   - get_resource_usage reports runtime memory and spawn counters
//
// Only programs listed in server.allowedPrograms of the configuration may be
// started; an empty list allows nothing. Diagnostics go to standard error
// because standard output carries the protocol.
//
// The server is assembled with [ServerBuilder]:
//
//	s, err := mcpserver.NewServerBuilder().
//	    WithConfig(cfg).
//	    WithVersion(version.Version).
//	    WithDefaultTools().
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
