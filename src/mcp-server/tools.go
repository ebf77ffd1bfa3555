// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names.
const (
	ToolSpawnSync        = "spawn_sync"
	ToolQuoteCommandLine = "quote_command_line"
	ToolResourceUsage    = "get_resource_usage"
)

// createTools creates and returns all MCP tool definitions with their handlers.
//
// Returns:
//   - A slice of ToolDefinition for tools without dependencies
//   - A slice of ToolDefinitionWithConfig for tools that use the configuration, spawner or stats
//
// The function defines the following tools:
//   - spawn_sync: Runs an allowed program to completion and returns its output and exit code
//   - quote_command_line: Shows the command line a program would be launched with
//   - get_resource_usage: Provides server resource usage and spawn statistics
func createTools() ([]ToolDefinition, []ToolDefinitionWithConfig) {
	tools := []ToolDefinition{
		{
			Tool: mcp.NewTool(ToolQuoteCommandLine,
				mcp.WithDescription("Build the single command line string a program and its arguments are launched with on Windows, without running anything"),
				mcp.WithString("program",
					mcp.Required(),
					mcp.Description("Program name or path, written first and unquoted"),
				),
				mcp.WithArray("args",
					mcp.Description("Arguments, each quoted and escaped"),
					mcp.WithStringItems(),
				),
			),
			Handler: handleQuoteCommandLine,
			Role:    "quoter",
		},
	}

	toolsWithConfig := []ToolDefinitionWithConfig{
		{
			Tool: mcp.NewTool(ToolSpawnSync,
				mcp.WithDescription("Run a program to completion and return its stdout, stderr and exit code. Blocks until the program exits; stdin is empty"),
				mcp.WithString("program",
					mcp.Required(),
					mcp.Description("Program name or path; must be on the server allowlist"),
				),
				mcp.WithArray("args",
					mcp.Description("Arguments passed to the program, unquoted"),
					mcp.WithStringItems(),
				),
				mcp.WithString("working_dir",
					mcp.Description("Working directory for the program (default: server setting, then the server's own directory)"),
				),
				mcp.WithBoolean("capture_stdout",
					mcp.Description("Return standard output (default: true)"),
					mcp.DefaultBool(true),
				),
				mcp.WithBoolean("capture_stderr",
					mcp.Description("Return standard error (default: true)"),
					mcp.DefaultBool(true),
				),
				mcp.WithBoolean("drain_concurrently",
					mcp.Description("Read stdout and stderr at the same time, for programs that write heavily to both (default: server setting)"),
				),
			),
			Handler: handleSpawnSync,
			Role:    "spawner",
		},
		{
			Tool: mcp.NewTool(ToolResourceUsage,
				mcp.WithDescription("Get current resource usage statistics including memory, GC and spawn counters"),
				mcp.WithBoolean("detailed",
					mcp.Description("Include detailed memory breakdown (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'json' or 'markdown' (default: 'json')"),
					mcp.DefaultString("json"),
					mcp.Enum("json", "markdown"),
				),
			),
			Handler: handleGetResourceUsage,
			Role:    "resourceMonitor",
		},
	}

	return tools, toolsWithConfig
}
