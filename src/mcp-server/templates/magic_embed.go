// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"embed"
	"io/fs"
)

//go:embed *.md
var embeddedFS embed.FS

// EmbedFS defines the interface for accessing embedded template files.
// It abstracts the [embed.FS] type so callers and tests can substitute
// their own file set.
type EmbedFS interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)
	// ReadDir reads the named directory and returns its entries.
	ReadDir(name string) ([]fs.DirEntry, error)
	// Open opens the named file for reading.
	Open(name string) (fs.File, error)
}

// embedFS wraps [embed.FS] to implement EmbedFS interface.
type embedFS struct{ fs embed.FS }

func (e *embedFS) ReadFile(name string) ([]byte, error) { return e.fs.ReadFile(name) }

func (e *embedFS) ReadDir(name string) ([]fs.DirEntry, error) { return e.fs.ReadDir(name) }

func (e *embedFS) Open(name string) (fs.File, error) { return e.fs.Open(name) }

// Template file names.
const (
	Instructions        = "instructions.md"
	CommandLineQuoting  = "command-line-quoting.md"
	TroubleshootingText = "troubleshooting-prompt.md"
)

// MagicEmbed is the embedded filesystem holding the server's markdown
// templates.
//
// Example usage for reading the server instructions template:
//
//	tmpl, err := templates.MagicEmbed.ReadFile(templates.Instructions)
//	if err != nil {
//		return "", fmt.Errorf("failed to load instructions template: %w", err)
//	}
//
// Example usage for serving the quoting rules as a resource:
//
//	doc, err := templates.MagicEmbed.ReadFile(templates.CommandLineQuoting)
var MagicEmbed EmbedFS = &embedFS{fs: embeddedFS}
