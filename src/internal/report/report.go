// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"encoding/json"

	"github.com/H0llyW00dzZ/spawn-sync/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
)

// Report describes one finished spawn.
type Report struct {
	Program     string   `json:"program"`
	Args        []string `json:"args"`
	Dir         string   `json:"dir,omitempty"`
	Backend     string   `json:"backend"`
	Started     bool     `json:"started"`
	ExitCode    int      `json:"exitCode"`
	CommandLine string   `json:"commandLine"`
	Truncated   bool     `json:"truncated"`
	// Stdout and Stderr are nil when the stream was not captured.
	Stdout     *string  `json:"stdout,omitempty"`
	Stderr     *string  `json:"stderr,omitempty"`
	ReadErrors []string `json:"readErrors,omitempty"`
	Error      string   `json:"error,omitempty"`
	ErrorKind  string   `json:"errorKind,omitempty"`
}

// New builds a report. Captured output is converted with dec, which may be
// nil for UTF-8 output; conversion failures keep the raw bytes.
func New(backend spawn.Backend, req spawn.Request, res *spawn.Result, err error, dec *Decoder) *Report {
	r := &Report{
		Dir:      req.Dir,
		Backend:  backend.String(),
		ExitCode: -1,
	}
	if len(req.Argv) > 0 {
		r.Program = req.Argv[0]
		r.Args = req.Argv[1:]
	}
	if r.Args == nil {
		r.Args = []string{}
	}

	if res != nil {
		r.Started = res.Started
		r.ExitCode = res.ExitCode
		r.CommandLine = res.CommandLine.Line
		r.Truncated = res.CommandLine.Truncated
		if req.CaptureStdout && res.Started {
			r.Stdout = text(dec, res.Stdout)
		}
		if req.CaptureStderr && res.Started {
			r.Stderr = text(dec, res.Stderr)
		}
		for _, rerr := range res.ReadErrors {
			r.ReadErrors = append(r.ReadErrors, rerr.Error())
		}
	}

	if err != nil {
		r.Error = err.Error()
		if k := spawn.KindOf(err); k != 0 {
			r.ErrorKind = k.String()
		}
	}
	return r
}

func text(dec *Decoder, b []byte) *string {
	if out, err := dec.Bytes(b); err == nil {
		b = out
	}
	s := string(b)
	return &s
}

// JSON returns the report as indented JSON followed by a newline.
func (r *Report) JSON() ([]byte, error) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	// Copy out before the buffer goes back to the pool.
	return append([]byte(nil), buf.Bytes()...), nil
}
