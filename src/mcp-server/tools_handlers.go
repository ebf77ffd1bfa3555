// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/H0llyW00dzZ/spawn-sync/src/internal/report"
	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
	"github.com/mark3labs/mcp-go/mcp"
)

// spawnOutcome carries a finished spawn out of its goroutine.
type spawnOutcome struct {
	res *spawn.Result
	err error
}

// handleSpawnSync runs an allowed program and returns a JSON report of the run.
//
// Parameters:
//   - ctx: Context for cancellation; a cancelled call stops waiting but the program still runs to completion
//   - request: MCP tool call request containing program, args and capture options
//   - deps: Server dependencies providing the allowlist, spawner, logger and stats
//
// Returns:
//   - The report as JSON text. The result is marked as an error when the
//     program could not be started or its output or exit code was lost.
//   - An error only when the context is cancelled
//
// Programs not on the allowlist are refused without being looked up.
func handleSpawnSync(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	program, err := request.RequireString("program")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("program parameter required: %v", err)), nil
	}

	cfg := deps.Config
	if !cfg.Allowed(program) {
		deps.Stats.denied.Add(1)
		deps.Logger.Printf("mcp: refused to start %q: not on the allowlist", program)
		return mcp.NewToolResultError(fmt.Sprintf("program %q is not allowed by this server", program)), nil
	}

	dir := request.GetString("working_dir", cfg.Server.WorkingDir)
	if dir == "" {
		dir = cfg.Server.WorkingDir
	}

	req := spawn.Request{
		Dir:               dir,
		Argv:              append([]string{program}, request.GetStringSlice("args", nil)...),
		CaptureStdout:     request.GetBool("capture_stdout", true),
		CaptureStderr:     request.GetBool("capture_stderr", true),
		DrainConcurrently: request.GetBool("drain_concurrently", cfg.DrainConcurrently),
	}

	dec, err := report.NewDecoder(cfg.Output.Encoding)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("output encoding: %v", err)), nil
	}

	// The spawn itself cannot be interrupted, so wait for it off the
	// request goroutine and give up on cancellation. The outcome is counted
	// even when nobody is left to receive it.
	done := make(chan spawnOutcome, 1)
	go func() {
		res, err := deps.Spawner.Spawn(req)
		deps.Stats.record(res, err)
		done <- spawnOutcome{res, err}
	}()

	var out spawnOutcome
	select {
	case out = <-done:
	case <-ctx.Done():
		deps.Logger.Printf("mcp: stopped waiting for %q: %v", program, ctx.Err())
		return nil, ctx.Err()
	}

	rep := report.New(deps.Backend, req, out.res, out.err, dec)
	body, err := rep.JSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format report: %v", err)), nil
	}

	result := mcp.NewToolResultText(string(body))
	result.IsError = out.err != nil
	return result, nil
}

// handleQuoteCommandLine builds the command line for a program and its
// arguments without running anything.
//
// Returns:
//   - JSON text with the line, the number of arguments that fit, and whether any were dropped
func handleQuoteCommandLine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	program, err := request.RequireString("program")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("program parameter required: %v", err)), nil
	}

	argv := append([]string{program}, request.GetStringSlice("args", nil)...)
	cl := spawn.BuildCommandLine(argv)

	body, err := json.MarshalIndent(map[string]any{
		"line":      cl.Line,
		"args":      cl.Args,
		"truncated": cl.Truncated,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format command line: %v", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

// handleGetResourceUsage reports runtime memory statistics and spawn
// counters in JSON or markdown.
func handleGetResourceUsage(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	detailed := request.GetBool("detailed", false)
	format := request.GetString("format", "json")

	data := CollectResourceUsage(detailed, deps.Stats)

	switch format {
	case "markdown":
		return mcp.NewToolResultText(FormatResourceUsageAsMarkdown(data)), nil
	default:
		jsonData, err := FormatResourceUsageAsJSON(data)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format resource usage: %v", err)), nil
		}
		return mcp.NewToolResultText(jsonData), nil
	}
}
