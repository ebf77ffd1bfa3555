// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-flavoured helpers for program names and
// executable lookup that behave the same on every supported platform.
//
// Key functions:
//   - ExecutableName: the running binary's name without extension, for usage strings
//   - ResolveExecutable: PATH lookup for bare program names before a native spawn
//   - HasPathSeparator: whether a program name already names a path
//
// # Usage Examples
//
//	rootCmd := &cobra.Command{
//	    Use:     posix.ExecutableName() + " [flags] -- PROGRAM [ARGS...]",
//	    Example: fmt.Sprintf("  %s -- cc -c main.c", posix.ExecutableName()),
//	}
//
//	path, err := posix.ResolveExecutable("cc") // "/usr/bin/cc", or exec.ErrNotFound
//
// Cross-Platform Behavior:
//
//   - Linux/macOS: "/usr/bin/myapp" → "myapp"
//   - Windows: "C:\bin\myapp.exe" → "myapp"
//   - Fallback: Empty args → "spawnsync"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
