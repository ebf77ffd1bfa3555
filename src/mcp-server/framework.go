// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/H0llyW00dzZ/spawn-sync/src/config"
	"github.com/H0llyW00dzZ/spawn-sync/src/logger"
	"github.com/H0llyW00dzZ/spawn-sync/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is the implementation name reported to [MCP] clients.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
const ServerName = "Synchronous Process Spawner"

// ToolHandler defines the signature for tool handlers that matches [MCP] server expectations.
// It processes tool calls and returns results.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: The MCP tool call request containing arguments and metadata
//
// Returns:
//   - The tool execution result or an error if the tool failed
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithConfig defines tool handlers that require access to the
// server's dependencies: the configuration, the spawner and the logger.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: The MCP tool call request containing arguments and metadata
//   - deps: The dependencies the server was built with
//
// Returns:
//   - The tool execution result or an error if the tool failed
type ToolHandlerWithConfig func(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error)

// ToolDefinition holds a tool definition and its handler.
//
// Fields:
//   - Tool: The MCP tool definition containing name, description, and input schema
//   - Handler: The function that implements the tool's logic
//   - Role: Short name the instructions template refers to the tool by
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	Role    string
}

// ToolDefinitionWithConfig holds a tool definition whose handler receives
// the server dependencies.
type ToolDefinitionWithConfig struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithConfig
	Role    string
}

// ServerDependencies holds all dependencies needed to create the MCP server.
//
// Fields:
//   - Config: Server configuration; the allowlist and default working directory live here
//   - Embed: Embedded filesystem for templates and documentation resources
//   - Version: Server version string
//   - Spawner: Runs the programs requested by the spawn tool
//   - Backend: Which backend Spawner was created with, for reporting
//   - Logger: Destination for server diagnostics; never stdout, which carries the protocol
//   - Stats: Counters updated by the spawn tool
//   - Tools: List of tool definitions without configuration requirements
//   - ToolsWithConfig: List of tool definitions that need dependency access
//   - Resources: List of resources provided by the server
//   - Prompts: List of predefined prompts
//   - Instructions: Text sent to clients on initialization
type ServerDependencies struct {
	Config          *config.Config
	Embed           templates.EmbedFS
	Version         string
	Spawner         spawn.Spawner
	Backend         spawn.Backend
	Logger          logger.Logger
	Stats           *SpawnStats
	Tools           []ToolDefinition
	ToolsWithConfig []ToolDefinitionWithConfig
	Resources       []server.ServerResource
	Prompts         []server.ServerPrompt
	Instructions    string
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(cfg).
//	    WithVersion("1.0.0").
//	    WithDefaultTools().
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new server builder with default empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the server configuration. A nil config is replaced with
// [config.Default] at build time, which allows no programs.
func (b *ServerBuilder) WithConfig(cfg *config.Config) *ServerBuilder {
	b.deps.Config = cfg
	return b
}

// WithEmbed sets the embedded filesystem for templates and documentation.
func (b *ServerBuilder) WithEmbed(embed templates.EmbedFS) *ServerBuilder {
	b.deps.Embed = embed
	return b
}

// WithVersion sets the server version string used for identification.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithSpawner sets the spawner used by the spawn tool and the backend it
// was created with. Without one, Build creates a spawner from the
// configured backend.
func (b *ServerBuilder) WithSpawner(s spawn.Spawner, backend spawn.Backend) *ServerBuilder {
	b.deps.Spawner = s
	b.deps.Backend = backend
	return b
}

// WithLogger sets the logger for server diagnostics.
func (b *ServerBuilder) WithLogger(l logger.Logger) *ServerBuilder {
	b.deps.Logger = l
	return b
}

// WithTools adds tool definitions to the server that don't require dependency access.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithToolsWithConfig adds tool definitions whose handlers receive the
// server dependencies.
func (b *ServerBuilder) WithToolsWithConfig(tools ...ToolDefinitionWithConfig) *ServerBuilder {
	b.deps.ToolsWithConfig = append(b.deps.ToolsWithConfig, tools...)
	return b
}

// WithResources adds resources to the MCP server. Clients access them by
// URI, such as "info://version".
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithPrompts adds predefined prompts to the MCP server.
func (b *ServerBuilder) WithPrompts(prompts ...server.ServerPrompt) *ServerBuilder {
	b.deps.Prompts = append(b.deps.Prompts, prompts...)
	return b
}

// WithInstructions sets the instructions sent to clients on initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// WithDefaultTools adds the spawn, quoting and resource usage tools.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	tools, toolsWithConfig := createTools()
	b.deps.Tools = append(b.deps.Tools, tools...)
	b.deps.ToolsWithConfig = append(b.deps.ToolsWithConfig, toolsWithConfig...)
	return b
}

// resolve fills in every dependency left unset.
func (b *ServerBuilder) resolve() error {
	d := &b.deps
	if d.Config == nil {
		d.Config = config.Default()
	}
	if d.Embed == nil {
		d.Embed = templates.MagicEmbed
	}
	if d.Logger == nil {
		d.Logger = logger.Discard
	}
	if d.Stats == nil {
		d.Stats = &SpawnStats{}
	}
	if d.Spawner == nil {
		backend, err := d.Config.SpawnBackend()
		if err != nil {
			return err
		}
		d.Spawner, d.Backend = spawn.New(backend, spawn.WithLogger(d.Logger)), backend
	}
	return nil
}

// ServerTools returns every configured tool bound to its handler, in the
// form [server.MCPServer.AddTools] and mcptest accept.
func (b *ServerBuilder) ServerTools() ([]server.ServerTool, error) {
	if err := b.resolve(); err != nil {
		return nil, err
	}

	out := make([]server.ServerTool, 0, len(b.deps.Tools)+len(b.deps.ToolsWithConfig))
	for _, tool := range b.deps.Tools {
		out = append(out, server.ServerTool{Tool: tool.Tool, Handler: tool.Handler})
	}
	deps := &b.deps
	for _, tool := range b.deps.ToolsWithConfig {
		handler := tool.Handler
		out = append(out, server.ServerTool{
			Tool: tool.Tool,
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handler(ctx, request, deps)
			},
		})
	}
	return out, nil
}

// Build creates the [MCP] server with all configured dependencies.
//
// Returns:
//   - A pointer to the configured MCPServer instance
//   - An error if the configured backend is unknown
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	tools, err := b.ServerTools()
	if err != nil {
		return nil, err
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	}
	if b.deps.Instructions != "" {
		opts = append(opts, server.WithInstructions(b.deps.Instructions))
	}
	s := server.NewMCPServer(ServerName, b.deps.Version, opts...)

	s.AddTools(tools...)
	for _, resource := range b.deps.Resources {
		s.AddResource(resource.Resource, resource.Handler)
	}
	for _, prompt := range b.deps.Prompts {
		s.AddPrompt(prompt.Prompt, prompt.Handler)
	}
	return s, nil
}
