// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	ResourceConfigTemplate = "config://template"
	ResourceConfigSchema   = "config://schema"
	ResourceVersion        = "info://version"
	ResourceQuotingDocs    = "docs://command-line-quoting"
)

// createResources creates and returns all MCP resource definitions with their handlers.
//
// The function defines the following resources:
//   - config://template: Example configuration file
//   - config://schema: JSON Schema configuration files are validated against
//   - info://version: Server name, version and capabilities
//   - docs://command-line-quoting: How arguments are quoted into a command line
func createResources() []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(ResourceConfigTemplate, "Server Configuration Template",
				mcp.WithResourceDescription("Example configuration file with every setting"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleConfigResource,
		},
		{
			Resource: mcp.NewResource(ResourceConfigSchema, "Server Configuration Schema",
				mcp.WithResourceDescription("JSON Schema configuration files must satisfy"),
				mcp.WithMIMEType("application/schema+json"),
			),
			Handler: handleConfigSchemaResource,
		},
		{
			Resource: mcp.NewResource(ResourceVersion, "Server Version Information",
				mcp.WithResourceDescription("Server version, capabilities and supported platforms"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleVersionResource,
		},
		{
			Resource: mcp.NewResource(ResourceQuotingDocs, "Command Line Quoting",
				mcp.WithResourceDescription("How program arguments are quoted into a single command line and when they are truncated"),
				mcp.WithMIMEType("text/markdown"),
			),
			Handler: handleQuotingDocsResource,
		},
	}
}
