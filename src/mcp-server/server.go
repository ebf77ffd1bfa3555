// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"

	"github.com/H0llyW00dzZ/spawn-sync/src/config"
	"github.com/H0llyW00dzZ/spawn-sync/src/logger"
	"github.com/H0llyW00dzZ/spawn-sync/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/spawn-sync/src/version"
	"github.com/mark3labs/mcp-go/server"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server exposing the spawn tools over stdio.
//
// Run builds the root command (see [NewCommand]) and executes it with the
// process arguments, so the server honours --config and --instructions.
//
// Parameters:
//   - version: Version string to set for the server (e.g., "0.1.0")
//
// Returns:
//   - error: Configuration, build or transport errors; nil after a signal-initiated shutdown
//
// Configuration:
//   - Loads config from --config, then the SPAWNSYNC_CONFIG_FILE environment variable
//   - Falls back to the default config, which allows no programs
func Run(version string) error {
	appVersion = version
	return NewCommand(version).Execute()
}

// newLogger picks the diagnostic logger for cfg. Output always goes to w,
// never to the protocol stream.
func newLogger(cfg *config.Config, w io.Writer) logger.Logger {
	switch {
	case cfg.Log.Silent:
		return logger.Discard
	case cfg.Log.Format == config.LogFormatJSON:
		return logger.NewJSONLogger(w, false)
	default:
		l := logger.NewCLILogger()
		l.SetOutput(w)
		return l
	}
}

// buildServer assembles the MCP server with the default tools, resources
// and prompts.
func buildServer(cfg *config.Config, version string, log logger.Logger) (*server.MCPServer, error) {
	tools, toolsWithConfig := createTools()

	instructions, err := loadInstructions(tools, toolsWithConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load instructions: %w", err)
	}

	return NewServerBuilder().
		WithConfig(cfg).
		WithEmbed(templates.MagicEmbed).
		WithVersion(version).
		WithLogger(log).
		WithTools(tools...).
		WithToolsWithConfig(toolsWithConfig...).
		WithResources(createResources()...).
		WithPrompts(createPrompts()...).
		WithInstructions(instructions).
		Build()
}

// Serve runs the MCP server on in and out until ctx is cancelled or the
// input stream ends.
//
// Returns:
//   - nil when ctx was cancelled (graceful shutdown)
//   - error: Server build or transport errors
func Serve(ctx context.Context, cfg *config.Config, version string, log logger.Logger, in io.Reader, out io.Writer) error {
	s, err := buildServer(cfg, version, log)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	if len(cfg.Server.AllowedPrograms) == 0 {
		log.Printf("mcp: no programs are allowed; set server.allowedPrograms in the configuration file")
	}

	stdioServer := server.NewStdioServer(s)
	stdioServer.SetErrorLogger(stdLogger(log))

	err = stdioServer.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// serveStdio is Serve on the process's standard streams.
func serveStdio(ctx context.Context, cfg *config.Config, version string, log logger.Logger) error {
	return Serve(ctx, cfg, version, log, os.Stdin, os.Stdout)
}

// logWriter forwards lines written by a standard library logger to a
// [logger.Logger].
type logWriter struct{ l logger.Logger }

func (w logWriter) Write(p []byte) (int, error) {
	w.l.Printf("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// stdLogger adapts l for APIs that want a [stdlog.Logger].
func stdLogger(l logger.Logger) *stdlog.Logger {
	return stdlog.New(logWriter{l}, "mcp: ", 0)
}
