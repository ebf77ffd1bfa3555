// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os/exec"
	"strings"
)

// HasPathSeparator reports whether name contains a directory separator,
// in which case it is used as given and never searched for.
func HasPathSeparator(name string) bool {
	return strings.ContainsAny(name, `/\`)
}

// ResolveExecutable returns the absolute path of a bare program name found
// on PATH. Names that already contain a separator are returned unchanged.
// A bare name that is not on PATH, or only resolves through a relative PATH
// entry such as ".", is an error wrapping [exec.ErrNotFound] or
// [exec.ErrDot]; it is never looked up in the working directory.
func ResolveExecutable(name string) (string, error) {
	if name == "" {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	if HasPathSeparator(name) {
		return name, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", err
	}
	return path, nil
}
