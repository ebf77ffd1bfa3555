// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for MCP server template files:
// the server instructions, the command line quoting reference served as a
// resource, and the troubleshooting prompt.
//
// The instructions and the prompt are [text/template] sources filled in by the
// server; the quoting reference is served as is.
//
// Example usage:
//
//	// List all available template files
//	entries, err := templates.MagicEmbed.ReadDir(".")
//	if err != nil {
//		return fmt.Errorf("failed to list templates: %w", err)
//	}
package templates
