// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/spawn-sync/src/config"
	"github.com/H0llyW00dzZ/spawn-sync/src/internal/report"
	"github.com/H0llyW00dzZ/spawn-sync/src/logger"
	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "GO_WANT_HELPER_PROCESS"

// TestHelperProcess is not a real test. It is the child program the spawn
// tool runs: "streams OUT ERR CODE" writes OUT and ERR and exits with CODE.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) != 5 || args[1] != "streams" {
		fmt.Fprintln(os.Stderr, "helper: usage: -- streams OUT ERR CODE")
		os.Exit(2)
	}
	fmt.Fprint(os.Stdout, args[2])
	fmt.Fprint(os.Stderr, args[3])
	code, _ := strconv.Atoi(args[4])
	os.Exit(code)
}

// helper returns the helper program and the arguments selecting its mode.
func helper(t *testing.T, out, errOut string, code int) (string, []any) {
	t.Helper()
	exe, err := os.Executable()
	require.NoError(t, err)
	t.Setenv(helperEnv, "1")
	return exe, []any{"-test.run=^TestHelperProcess$", "--", "streams", out, errOut, strconv.Itoa(code)}
}

// startServer starts an in-process MCP server with every tool, resource and
// prompt, configured by cfg.
func startServer(t *testing.T, cfg *config.Config) (*client.Client, *SpawnStats) {
	t.Helper()

	b := NewServerBuilder().WithConfig(cfg).WithDefaultTools()
	tools, err := b.ServerTools()
	require.NoError(t, err)

	srv := mcptest.NewUnstartedServer(t)
	srv.AddTools(tools...)
	srv.AddResources(createResources()...)
	srv.AddPrompts(createPrompts()...)
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(srv.Close)

	return srv.Client(), b.deps.Stats
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	result, err := c.CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	var text strings.Builder
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			text.WriteString(tc.Text)
		}
	}
	return result, text.String()
}

func allowing(programs ...string) *config.Config {
	cfg := config.Default()
	cfg.Server.AllowedPrograms = programs
	return cfg
}

func TestSpawnSyncTool(t *testing.T) {
	exe, args := helper(t, "to stdout", "to stderr", 3)
	c, stats := startServer(t, allowing(exe))

	result, text := callTool(t, c, ToolSpawnSync, map[string]any{
		"program": exe,
		"args":    args,
	})
	require.False(t, result.IsError, text)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(text), &rep))
	assert.True(t, rep.Started)
	assert.Equal(t, 3, rep.ExitCode)
	assert.Equal(t, exe, rep.Program)
	assert.Equal(t, "native", rep.Backend)
	require.NotNil(t, rep.Stdout)
	require.NotNil(t, rep.Stderr)
	assert.Equal(t, "to stdout", *rep.Stdout)
	assert.Equal(t, "to stderr", *rep.Stderr)
	assert.False(t, rep.Truncated)

	snap := stats.Snapshot()
	assert.EqualValues(t, 1, snap["total"])
	assert.EqualValues(t, 1, snap["started"])
	assert.EqualValues(t, 1, snap["non_zero_exit"])
}

func TestSpawnSyncToolCaptureFlags(t *testing.T) {
	exe, args := helper(t, "dropped", "kept", 0)
	c, _ := startServer(t, allowing(exe))

	result, text := callTool(t, c, ToolSpawnSync, map[string]any{
		"program":        exe,
		"args":           args,
		"capture_stdout": false,
	})
	require.False(t, result.IsError, text)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(text), &rep))
	assert.Nil(t, rep.Stdout)
	require.NotNil(t, rep.Stderr)
	assert.Equal(t, "kept", *rep.Stderr)
}

func TestSpawnSyncToolWorkingDir(t *testing.T) {
	exe, args := helper(t, "", "", 0)
	dir := t.TempDir()
	cfg := allowing(exe)
	cfg.Server.WorkingDir = dir
	c, _ := startServer(t, cfg)

	_, text := callTool(t, c, ToolSpawnSync, map[string]any{"program": exe, "args": args})
	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(text), &rep))
	assert.Equal(t, dir, rep.Dir)
	assert.True(t, rep.Started)
}

func TestSpawnSyncToolRefused(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		program string
	}{
		{name: "empty allowlist", allowed: nil, program: "go"},
		{name: "not listed", allowed: []string{"git"}, program: "go"},
		{name: "exact match only", allowed: []string{"go"}, program: "/usr/bin/go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, stats := startServer(t, allowing(tt.allowed...))
			result, text := callTool(t, c, ToolSpawnSync, map[string]any{"program": tt.program})
			assert.True(t, result.IsError)
			assert.Contains(t, text, "not allowed")
			assert.EqualValues(t, 1, stats.Snapshot()["denied"])
			assert.EqualValues(t, 0, stats.Snapshot()["total"])
		})
	}
}

func TestSpawnSyncToolNotStarted(t *testing.T) {
	c, stats := startServer(t, allowing(config.AllowAny))

	program := "spawnsync-test-no-such-program-" + strconv.Itoa(os.Getpid())
	result, text := callTool(t, c, ToolSpawnSync, map[string]any{"program": program})
	assert.True(t, result.IsError)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(text), &rep))
	assert.False(t, rep.Started)
	assert.Equal(t, -1, rep.ExitCode)
	assert.Equal(t, "process creation failure", rep.ErrorKind)
	assert.Nil(t, rep.Stdout)
	assert.EqualValues(t, 1, stats.Snapshot()["not_started"])
}

func TestSpawnSyncToolMissingProgram(t *testing.T) {
	c, _ := startServer(t, allowing(config.AllowAny))
	result, text := callTool(t, c, ToolSpawnSync, map[string]any{})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "program parameter required")
}

// blockingSpawner never finishes until its channel is closed.
type blockingSpawner struct{ release chan struct{} }

func (b blockingSpawner) Spawn(req spawn.Request) (*spawn.Result, error) {
	<-b.release
	return &spawn.Result{Started: true}, nil
}

func TestSpawnSyncCancelled(t *testing.T) {
	block := make(chan struct{})
	deps := &ServerDependencies{
		Config:  allowing("slow"),
		Spawner: blockingSpawner{block},
		Logger:  logger.Discard,
		Stats:   &SpawnStats{},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{
		Name:      ToolSpawnSync,
		Arguments: map[string]any{"program": "slow"},
	}}
	result, err := handleSpawnSync(ctx, req, deps)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, result)

	// The abandoned spawn still shows up in the counters once it finishes.
	assert.Equal(t, uint64(0), deps.Stats.Snapshot()["total"])
	close(block)
	assert.Eventually(t, func() bool {
		snap := deps.Stats.Snapshot()
		return snap["total"] == uint64(1) && snap["started"] == uint64(1)
	}, 5*time.Second, 10*time.Millisecond)
}

func TestQuoteCommandLineTool(t *testing.T) {
	c, _ := startServer(t, nil)

	result, text := callTool(t, c, ToolQuoteCommandLine, map[string]any{
		"program": "cc",
		"args":    []any{"a b", `x"y`, `dir\`},
	})
	require.False(t, result.IsError, text)

	var got struct {
		Line      string `json:"line"`
		Args      int    `json:"args"`
		Truncated bool   `json:"truncated"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, `cc "a b" "x\"y" "dir\\"`, got.Line)
	assert.Equal(t, 4, got.Args)
	assert.False(t, got.Truncated)
}

func TestQuoteCommandLineToolTruncates(t *testing.T) {
	c, _ := startServer(t, nil)

	_, text := callTool(t, c, ToolQuoteCommandLine, map[string]any{
		"program": "cc",
		"args":    []any{strings.Repeat("x", 40000)},
	})
	assert.Contains(t, text, `"truncated": true`)
	assert.Contains(t, text, `"args": 1`)
}

func TestResourceUsageTool(t *testing.T) {
	c, _ := startServer(t, nil)

	result, text := callTool(t, c, ToolResourceUsage, map[string]any{"detailed": true})
	require.False(t, result.IsError)
	var data ResourceUsageData
	require.NoError(t, json.Unmarshal([]byte(text), &data))
	assert.NotEmpty(t, data.Timestamp)
	assert.Contains(t, data.SystemInfo, "go_version")
	assert.Contains(t, data.Spawns, "total")
	assert.NotNil(t, data.DetailedMemory)

	_, md := callTool(t, c, ToolResourceUsage, map[string]any{"format": "markdown"})
	assert.Contains(t, md, "# Resource Usage Report")
	assert.Contains(t, md, "## Spawns")
	assert.Contains(t, md, "## Memory Usage")
	assert.NotContains(t, md, "## Detailed Memory Statistics")
}

func TestResources(t *testing.T) {
	c, _ := startServer(t, nil)

	tests := []struct {
		uri      string
		mime     string
		contains []string
	}{
		{uri: ResourceConfigTemplate, mime: "application/json", contains: []string{`"allowedPrograms"`, `"backend": "native"`}},
		{uri: ResourceConfigSchema, mime: "application/schema+json", contains: []string{`"additionalProperties"`}},
		{uri: ResourceVersion, mime: "application/json", contains: []string{ServerName, ToolSpawnSync, PromptTroubleshoot, `"maxCommandLine": 32767`}},
		{uri: ResourceQuotingDocs, mime: "text/markdown", contains: []string{"# Command Line Quoting"}},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			result, err := c.ReadResource(context.Background(), mcp.ReadResourceRequest{
				Params: mcp.ReadResourceParams{URI: tt.uri},
			})
			require.NoError(t, err)
			require.Len(t, result.Contents, 1)

			tc, ok := result.Contents[0].(mcp.TextResourceContents)
			require.True(t, ok)
			assert.Equal(t, tt.uri, tc.URI)
			assert.Equal(t, tt.mime, tc.MIMEType)
			for _, want := range tt.contains {
				assert.Contains(t, tc.Text, want)
			}
		})
	}
}

func TestConfigTemplateIsValid(t *testing.T) {
	contents, err := handleConfigResource(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	tc := contents[0].(mcp.TextResourceContents)

	cfg, err := config.Parse([]byte(tc.Text), config.FormatJSON)
	require.NoError(t, err)
	assert.True(t, cfg.Allowed("go"))
}

func TestTroubleshootPrompt(t *testing.T) {
	c, _ := startServer(t, nil)

	result, err := c.GetPrompt(context.Background(), mcp.GetPromptRequest{
		Params: mcp.GetPromptParams{
			Name:      PromptTroubleshoot,
			Arguments: map[string]string{"program": "make", "args": "-j4 all"},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)

	tc, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, tc.Text, "`make` was run with arguments `-j4 all`")
	assert.Contains(t, tc.Text, "128 plus N")
}

func TestTroubleshootPromptRequiresProgram(t *testing.T) {
	_, err := handleTroubleshootPrompt(context.Background(), mcp.GetPromptRequest{})
	assert.Error(t, err)
}

func TestLoadInstructions(t *testing.T) {
	tools, toolsWithConfig := createTools()
	text, err := loadInstructions(tools, toolsWithConfig)
	require.NoError(t, err)

	for _, name := range []string{ToolSpawnSync, ToolQuoteCommandLine, ToolResourceUsage} {
		assert.Contains(t, text, "`"+name+"`")
	}
	assert.Contains(t, text, "Call `spawn_sync` with")
	assert.Contains(t, text, "Use `quote_command_line` to see")
	assert.NotContains(t, text, "<no value>")
}

func TestBuild(t *testing.T) {
	s, err := NewServerBuilder().
		WithConfig(allowing("go")).
		WithVersion("1.2.3").
		WithDefaultTools().
		WithResources(createResources()...).
		WithPrompts(createPrompts()...).
		WithInstructions("hello").
		Build()
	require.NoError(t, err)
	assert.NotNil(t, s)

	cfg := config.Default()
	cfg.Backend = "fork"
	_, err = NewServerBuilder().WithConfig(cfg).Build()
	assert.Error(t, err)
}

func TestServeStopsOnCancel(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, config.Default(), "test", logger.Discard, in, io.Discard)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestNewCommandInstructions(t *testing.T) {
	cmd := NewCommand("test")
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--instructions"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "# Synchronous Process Spawner")
}

func TestNewCommandRejectsArguments(t *testing.T) {
	cmd := NewCommand("test")
	cmd.SetArgs([]string{"serve", "now"})
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected arguments: serve now")
}

func TestNewCommandBadConfig(t *testing.T) {
	cmd := NewCommand("test")
	cmd.SetArgs([]string{"--config", t.TempDir() + "/missing.json"})
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestStdLoggerForwardsLines(t *testing.T) {
	var buf strings.Builder
	l := logger.NewJSONLogger(&buf, false)
	stdLogger(l).Println("boom")
	assert.Contains(t, buf.String(), "mcp: boom")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}
