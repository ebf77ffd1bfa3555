// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/spawn-sync/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PromptTroubleshoot is the name of the failed-run troubleshooting prompt.
const PromptTroubleshoot = "troubleshoot-spawn"

// promptTemplateData holds the data used to populate prompt templates.
type promptTemplateData struct {
	Program string
	Args    string
}

// createPrompts creates and returns all MCP prompt definitions with their handlers
func createPrompts() []server.ServerPrompt {
	return []server.ServerPrompt{
		{
			Prompt: mcp.NewPrompt(PromptTroubleshoot,
				mcp.WithPromptDescription("Work out why a program run through spawn_sync failed or misbehaved"),
				mcp.WithArgument("program",
					mcp.ArgumentDescription("Program that was run"),
					mcp.RequiredArgument(),
				),
				mcp.WithArgument("args",
					mcp.ArgumentDescription("Arguments it was run with, space separated"),
				),
			),
			Handler: handleTroubleshootPrompt,
		},
	}
}

// parsePromptTemplate reads a prompt template from the embedded filesystem
// and executes it with data.
func parsePromptTemplate(name string, data promptTemplateData) (string, error) {
	content, err := templates.MagicEmbed.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// handleTroubleshootPrompt builds the troubleshooting checklist for one program.
func handleTroubleshootPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	program := request.Params.Arguments["program"]
	if program == "" {
		return nil, fmt.Errorf("program argument is required")
	}

	text, err := parsePromptTemplate(templates.TroubleshootingText, promptTemplateData{
		Program: program,
		Args:    request.Params.Arguments["args"],
	})
	if err != nil {
		return nil, err
	}

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Troubleshooting %s", program),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
