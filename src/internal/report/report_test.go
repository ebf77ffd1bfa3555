// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromResult(t *testing.T) {
	req := spawn.Request{
		Dir:           "/work",
		Argv:          []string{"cc", "-c", "main.c"},
		CaptureStdout: true,
		CaptureStderr: false,
	}
	res := &spawn.Result{
		Started:     true,
		Stdout:      []byte("ok\n"),
		ExitCode:    2,
		CommandLine: spawn.BuildCommandLine(req.Argv),
		ReadErrors:  []error{errors.New("pipe broke")},
	}

	r := New(spawn.Exec, req, res, nil, nil)
	assert.Equal(t, "cc", r.Program)
	assert.Equal(t, []string{"-c", "main.c"}, r.Args)
	assert.Equal(t, "exec", r.Backend)
	assert.True(t, r.Started)
	assert.Equal(t, 2, r.ExitCode)
	assert.Equal(t, `cc "-c" "main.c"`, r.CommandLine)
	require.NotNil(t, r.Stdout)
	assert.Equal(t, "ok\n", *r.Stdout)
	assert.Nil(t, r.Stderr)
	assert.Equal(t, []string{"pipe broke"}, r.ReadErrors)
	assert.Empty(t, r.Error)
}

func TestNewNotStarted(t *testing.T) {
	req := spawn.Request{Argv: []string{"/missing"}, CaptureStdout: true, CaptureStderr: true}
	_, err := spawn.New(spawn.Native).Spawn(req)
	require.Error(t, err)

	r := New(spawn.Native, req, &spawn.Result{ExitCode: -1}, err, nil)
	assert.False(t, r.Started)
	assert.Equal(t, -1, r.ExitCode)
	assert.Nil(t, r.Stdout)
	assert.Nil(t, r.Stderr)
	assert.Equal(t, []string{}, r.Args)
	assert.Equal(t, "process creation failure", r.ErrorKind)
	assert.Contains(t, r.Error, "/missing")
}

func TestJSON(t *testing.T) {
	out := "hello\n"
	r := &Report{Program: "echo", Args: []string{"hello"}, Backend: "native", Started: true, Stdout: &out}

	data, err := r.JSON()
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "echo", got["program"])
	assert.Equal(t, "hello\n", got["stdout"])
	assert.NotContains(t, got, "stderr")
	assert.NotContains(t, got, "error")
	assert.Equal(t, float64(0), got["exitCode"])
}

func TestTable(t *testing.T) {
	out := "12345"
	r := &Report{
		Program:  "cc",
		Args:     []string{"a"},
		Backend:  "native",
		Started:  true,
		ExitCode: -1,
		Stdout:   &out,
		Error:    "spawn: wait: exit code retrieval failure",
	}

	table := r.Table()
	// Header case depends on the renderer's auto-format.
	lower := strings.ToLower(table)
	for _, want := range []string{"field", "value", "cc", "native", "unknown", "5 bytes", "not captured", "exit code retrieval failure"} {
		assert.Contains(t, lower, want)
	}
	assert.Contains(t, table, "|")
}

func TestDecoder(t *testing.T) {
	t.Run("utf-8 passes through", func(t *testing.T) {
		for _, label := range []string{"", "utf-8", "UTF8", "unicode-1-1-utf-8"} {
			d, err := NewDecoder(label)
			require.NoError(t, err, label)
			assert.Nil(t, d, label)
			assert.Equal(t, "utf-8", d.Name())

			out, err := d.Bytes([]byte("ünï"))
			require.NoError(t, err)
			assert.Equal(t, "ünï", string(out))
		}
	})

	t.Run("windows-1252", func(t *testing.T) {
		d, err := NewDecoder("cp1252")
		require.NoError(t, err)
		assert.Equal(t, "windows-1252", d.Name())

		out, err := d.Bytes([]byte{'c', 'a', 'f', 0xE9, 0x80})
		require.NoError(t, err)
		assert.Equal(t, "café€", string(out))
	})

	t.Run("utf-16le", func(t *testing.T) {
		d, err := NewDecoder("utf-16le")
		require.NoError(t, err)

		out, err := d.Bytes([]byte{'h', 0, 'i', 0})
		require.NoError(t, err)
		assert.Equal(t, "hi", string(out))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewDecoder("klingon")
		assert.ErrorIs(t, err, ErrUnknownEncoding)
	})
}

func TestNewDecodesOutput(t *testing.T) {
	d, err := NewDecoder("windows-1252")
	require.NoError(t, err)

	req := spawn.Request{Argv: []string{"tool"}, CaptureStdout: true, CaptureStderr: true}
	res := &spawn.Result{Started: true, Stdout: []byte{0xE9}, Stderr: []byte{}}

	r := New(spawn.Native, req, res, nil, d)
	assert.Equal(t, "é", *r.Stdout)
	assert.Equal(t, "", *r.Stderr)
}
