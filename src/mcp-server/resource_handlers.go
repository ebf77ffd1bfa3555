// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/H0llyW00dzZ/spawn-sync/src/config"
	"github.com/H0llyW00dzZ/spawn-sync/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleConfigResource handles requests for the configuration template resource.
// It provides the default configuration with an example allowlist filled in.
//
// Returns:
//   - A slice containing the configuration template as JSON content
//   - An error if JSON marshaling fails
func handleConfigResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	example := config.Default()
	example.Server.AllowedPrograms = []string{"go", "git"}

	jsonData, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config template: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ResourceConfigTemplate,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleConfigSchemaResource serves the configuration schema.
func handleConfigSchemaResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ResourceConfigSchema,
			MIMEType: "application/schema+json",
			Text:     config.Schema(),
		},
	}, nil
}

// handleVersionResource handles requests for version information resource.
// It provides server metadata including version, tools, resources, prompts
// and the spawn backends available on this platform.
//
// Returns:
//   - A slice containing version and capability information as JSON content
//   - An error if JSON marshaling fails
func handleVersionResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tools, toolsWithConfig := createTools()
	var toolNames []string
	for _, t := range tools {
		toolNames = append(toolNames, t.Tool.Name)
	}
	for _, t := range toolsWithConfig {
		toolNames = append(toolNames, t.Tool.Name)
	}

	var resourceURIs []string
	for _, r := range createResources() {
		resourceURIs = append(resourceURIs, r.Resource.URI)
	}

	var promptNames []string
	for _, p := range createPrompts() {
		promptNames = append(promptNames, p.Prompt.Name)
	}

	versionInfo := map[string]any{
		"name":      ServerName,
		"version":   GetVersion(),
		"type":      "MCP Server",
		"tools":     toolNames,
		"resources": resourceURIs,
		"prompts":   promptNames,
		"backends":  []string{spawn.Native.String(), spawn.Exec.String()},
		"limits": map[string]any{
			"maxCommandLine": spawn.MaxCommandLine,
		},
	}

	jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal version info: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ResourceVersion,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleQuotingDocsResource serves the command line quoting reference.
func handleQuotingDocsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := templates.MagicEmbed.ReadFile(templates.CommandLineQuoting)
	if err != nil {
		return nil, fmt.Errorf("failed to read quoting reference: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ResourceQuotingDocs,
			MIMEType: "text/markdown",
			Text:     string(content),
		},
	}, nil
}
