// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// fallbackName is reported when the process has no usable argv[0].
const fallbackName = "spawnsync"

// ExecutableName returns the running binary's name without directory or
// ".exe" suffix, for CLI usage strings.
//
// Both separators are honoured regardless of the host OS, so a Windows-style
// argv[0] seen on a Unix host (or the reverse) still yields the bare name.
func ExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return fallbackName
	}
	return strings.TrimSuffix(baseName(os.Args[0]), ".exe")
}

// baseName returns the last non-empty element of p split on '/' and '\'.
func baseName(p string) string {
	name := filepath.Base(p)
	if !strings.ContainsAny(name, `/\`) {
		return name
	}
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return name
	}
	return parts[len(parts)-1]
}
